// Package config loads server configuration from SANDBOX_* environment
// variables. Command-line flags may override individual fields afterwards.
package config

import (
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/agent-sandbox/internal/errors"
)

// Game log backends
const (
	LogBackendRedis  = "redis"
	LogBackendSQLite = "sqlite"
)

// Config is the full server configuration
type Config struct {
	GRPCPort    int      `env:"SANDBOX_GRPC_PORT" envDefault:"50051"`
	HTTPPort    int      `env:"SANDBOX_HTTP_PORT" envDefault:"8080"`
	CORSOrigins []string `env:"SANDBOX_CORS_ORIGINS" envSeparator:"," envDefault:"*"`

	RedisAddr     string `env:"SANDBOX_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisDB       int    `env:"SANDBOX_REDIS_DB" envDefault:"0"`
	RedisPassword string `env:"SANDBOX_REDIS_PASSWORD"`

	LogLevel  string `env:"SANDBOX_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"SANDBOX_LOG_FORMAT" envDefault:"text"`

	LogBackend    string `env:"SANDBOX_LOG_BACKEND" envDefault:"redis"`
	SQLitePath    string `env:"SANDBOX_SQLITE_PATH" envDefault:"data/game_logs.db"`
	LogMaxEntries int    `env:"SANDBOX_LOG_MAX_ENTRIES" envDefault:"5000"`

	LLM LLM `envPrefix:"SANDBOX_"`

	BaseLocation     string        `env:"SANDBOX_BASE_LOCATION" envDefault:"camp"`
	MemoryLimit      int           `env:"SANDBOX_MEMORY_LIMIT" envDefault:"3"`
	TurnTimeout      time.Duration `env:"SANDBOX_TURN_TIMEOUT" envDefault:"60s"`
	DecisionFallback string        `env:"SANDBOX_DECISION_FALLBACK" envDefault:"passthrough"`
	NarrativeSummary bool          `env:"SANDBOX_NARRATIVE_SUMMARY" envDefault:"false"`

	// ScenarioPath points at a YAML scenario; empty uses the built-in one
	ScenarioPath string `env:"SANDBOX_SCENARIO_PATH"`
}

// LLM configures both gateway tiers
type LLM struct {
	GroqKeys    []string `env:"GROQ_KEYS" envSeparator:","`
	SiliconKeys []string `env:"SILICON_KEYS" envSeparator:","`
	// KeyOffset picks the first key used in each pool
	KeyOffset int `env:"KEY_OFFSET" envDefault:"0"`

	FastEndpoint  string `env:"FAST_ENDPOINT" envDefault:"https://api.groq.com/openai/v1/chat/completions"`
	FastModel     string `env:"FAST_MODEL" envDefault:"llama3-8b-8192"`
	FastMaxTokens int    `env:"FAST_MAX_TOKENS" envDefault:"800"`

	DeepEndpoint  string `env:"DEEP_ENDPOINT" envDefault:"https://api.siliconflow.cn/v1/chat/completions"`
	DeepModel     string `env:"DEEP_MODEL" envDefault:"deepseek-ai/DeepSeek-V3"`
	DeepMaxTokens int    `env:"DEEP_MAX_TOKENS" envDefault:"2000"`

	Temperature    float64       `env:"LLM_TEMPERATURE" envDefault:"0.7"`
	RequestTimeout time.Duration `env:"LLM_REQUEST_TIMEOUT" envDefault:"60s"`
}

// Load parses the environment and validates the result
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges and enumerations
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRange("grpc_port", c.GRPCPort, 1, 65535, vb)
	errors.ValidateRange("http_port", c.HTTPPort, 1, 65535, vb)
	errors.ValidateRequired("redis_addr", c.RedisAddr, vb)
	errors.ValidateEnum("log_level", c.LogLevel, []string{"debug", "info", "warn", "error"}, vb)
	errors.ValidateEnum("log_format", c.LogFormat, []string{"text", "json"}, vb)
	errors.ValidateEnum("log_backend", c.LogBackend, []string{LogBackendRedis, LogBackendSQLite}, vb)
	if c.LogBackend == LogBackendSQLite {
		errors.ValidateRequired("sqlite_path", c.SQLitePath, vb)
	}
	if c.LogMaxEntries < 0 {
		vb.Field("log_max_entries", "cannot be negative")
	}
	errors.ValidateRequired("base_location", c.BaseLocation, vb)
	if c.MemoryLimit < 0 {
		vb.Field("memory_limit", "cannot be negative")
	}
	if c.TurnTimeout <= 0 {
		vb.Field("turn_timeout", "must be positive")
	}
	errors.ValidateEnum("decision_fallback", c.DecisionFallback, []string{"passthrough", "defaults"}, vb)

	if c.LLM.FastMaxTokens <= 0 {
		vb.Field("fast_max_tokens", "must be positive")
	}
	if c.LLM.DeepMaxTokens <= 0 {
		vb.Field("deep_max_tokens", "must be positive")
	}
	if c.LLM.KeyOffset < 0 {
		vb.Field("key_offset", "cannot be negative")
	}

	return vb.Build()
}
