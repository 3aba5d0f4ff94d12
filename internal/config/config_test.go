package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/agent-sandbox/internal/config"
	"github.com/KirkDiggler/agent-sandbox/internal/errors"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 50051, cfg.GRPCPort)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, config.LogBackendRedis, cfg.LogBackend)
	assert.Equal(t, "camp", cfg.BaseLocation)
	assert.Equal(t, 3, cfg.MemoryLimit)
	assert.Equal(t, 60*time.Second, cfg.TurnTimeout)
	assert.Equal(t, "passthrough", cfg.DecisionFallback)
	assert.False(t, cfg.NarrativeSummary)

	assert.Equal(t, "llama3-8b-8192", cfg.LLM.FastModel)
	assert.Equal(t, 800, cfg.LLM.FastMaxTokens)
	assert.Equal(t, "deepseek-ai/DeepSeek-V3", cfg.LLM.DeepModel)
	assert.Equal(t, 2000, cfg.LLM.DeepMaxTokens)
	assert.InDelta(t, 0.7, cfg.LLM.Temperature, 1e-9)
	assert.Empty(t, cfg.LLM.GroqKeys)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SANDBOX_GROQ_KEYS", "g1,g2,g3")
	t.Setenv("SANDBOX_SILICON_KEYS", "s1")
	t.Setenv("SANDBOX_KEY_OFFSET", "2")
	t.Setenv("SANDBOX_LOG_BACKEND", "sqlite")
	t.Setenv("SANDBOX_SQLITE_PATH", "/tmp/logs.db")
	t.Setenv("SANDBOX_TURN_TIMEOUT", "90s")
	t.Setenv("SANDBOX_NARRATIVE_SUMMARY", "true")
	t.Setenv("SANDBOX_CORS_ORIGINS", "http://a.test,http://b.test")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"g1", "g2", "g3"}, cfg.LLM.GroqKeys)
	assert.Equal(t, []string{"s1"}, cfg.LLM.SiliconKeys)
	assert.Equal(t, 2, cfg.LLM.KeyOffset)
	assert.Equal(t, config.LogBackendSQLite, cfg.LogBackend)
	assert.Equal(t, 90*time.Second, cfg.TurnTimeout)
	assert.True(t, cfg.NarrativeSummary)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "unparseable port", key: "SANDBOX_HTTP_PORT", value: "http"},
		{name: "port out of range", key: "SANDBOX_GRPC_PORT", value: "70000"},
		{name: "unknown backend", key: "SANDBOX_LOG_BACKEND", value: "postgres"},
		{name: "unknown fallback", key: "SANDBOX_DECISION_FALLBACK", value: "shrug"},
		{name: "zero timeout", key: "SANDBOX_TURN_TIMEOUT", value: "0s"},
		{name: "unknown log level", key: "SANDBOX_LOG_LEVEL", value: "loud"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := config.Load()
			require.Error(t, err)
			assert.True(t, errors.IsInvalidArgument(err))
		})
	}
}
