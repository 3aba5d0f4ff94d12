// Package llm is the gateway to the OpenAI-compatible chat completion
// providers that drive NPC decisions. It never fails a caller: transport
// problems degrade to an empty completion and a warning.
package llm

//go:generate mockgen -destination=mock/mock_client.go -package=llmmock github.com/KirkDiggler/agent-sandbox/internal/clients/llm Client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/KirkDiggler/agent-sandbox/internal/errors"
)

// Tier selects a provider profile
type Tier string

// Tiers
const (
	// TierFast is the cheap, JSON-mode tier used for per-NPC decisions
	TierFast Tier = "fast"
	// TierDeep is the slower, higher quality tier used for narration
	TierDeep Tier = "deep"
)

// Provider defaults
const (
	DefaultFastEndpoint  = "https://api.groq.com/openai/v1/chat/completions"
	DefaultFastModel     = "llama3-8b-8192"
	DefaultFastMaxTokens = 800
	DefaultDeepEndpoint  = "https://api.siliconflow.cn/v1/chat/completions"
	DefaultDeepModel     = "deepseek-ai/DeepSeek-V3"
	DefaultDeepMaxTokens = 2000
	DefaultTemperature   = 0.7

	// maxErrorBody caps how much of a failed response body is logged
	maxErrorBody = 4096
)

// Client requests completions from a tier
type Client interface {
	// Complete returns the model's text. Provider failures are not errors:
	// they yield an empty Text with Degraded set. Only bad input errors.
	Complete(ctx context.Context, input *CompleteInput) (*CompleteOutput, error)
}

// CompleteInput is a single system+user exchange
type CompleteInput struct {
	Tier   Tier
	System string
	User   string
}

// CompleteOutput carries the raw model text
type CompleteOutput struct {
	Text     string
	Degraded bool
}

// TierConfig describes one provider profile
type TierConfig struct {
	Endpoint    string
	Model       string
	MaxTokens   int
	Temperature float64
	// JSONMode asks the provider for a JSON object response
	JSONMode bool
	Keys     *KeyRing
}

// Config holds the dependencies for the gateway client
type Config struct {
	Fast       TierConfig
	Deep       TierConfig
	HTTPClient *http.Client
}

// Validate ensures every tier is usable
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	for name, tc := range map[string]TierConfig{"Fast": c.Fast, "Deep": c.Deep} {
		if strings.TrimSpace(tc.Endpoint) == "" {
			vb.RequiredField(name + ".Endpoint")
		}
		if strings.TrimSpace(tc.Model) == "" {
			vb.RequiredField(name + ".Model")
		}
		if tc.MaxTokens <= 0 {
			vb.Field(name+".MaxTokens", "must be positive")
		}
		if tc.Keys == nil {
			vb.RequiredField(name + ".Keys")
		}
	}

	return vb.Build()
}

type client struct {
	tiers      map[Tier]TierConfig
	httpClient *http.Client
}

// NewClient creates a gateway client
func NewClient(cfg *Config) (Client, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}

	if cfg.Fast.Keys.Len() == 0 {
		slog.Warn("no fast tier keys configured, decisions will fall back to defaults")
	}
	if cfg.Deep.Keys.Len() == 0 {
		slog.Warn("no deep tier keys configured, narration is disabled")
	}

	return &client{
		tiers: map[Tier]TierConfig{
			TierFast: cfg.Fast,
			TierDeep: cfg.Deep,
		},
		httpClient: httpClient,
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *client) Complete(ctx context.Context, input *CompleteInput) (*CompleteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	tc, ok := c.tiers[input.Tier]
	if !ok {
		return nil, errors.InvalidArgumentf("unknown tier %q", input.Tier)
	}

	key, ok := tc.Keys.Next()
	if !ok {
		slog.WarnContext(ctx, "llm tier has no keys", "tier", input.Tier)
		return &CompleteOutput{Degraded: true}, nil
	}

	text, err := c.do(ctx, tc, key, input)
	if err != nil {
		slog.WarnContext(ctx, "llm call failed",
			"tier", input.Tier,
			"model", tc.Model,
			"error", err)
		return &CompleteOutput{Degraded: true}, nil
	}

	return &CompleteOutput{Text: text}, nil
}

func (c *client) do(ctx context.Context, tc TierConfig, key string, input *CompleteInput) (string, error) {
	reqBody := chatRequest{
		Model: tc.Model,
		Messages: []chatMessage{
			{Role: "system", Content: input.System},
			{Role: "user", Content: input.User},
		},
		Temperature: tc.Temperature,
		MaxTokens:   tc.MaxTokens,
	}
	if tc.JSONMode {
		reqBody.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tc.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+key)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		return "", fmt.Errorf("status %d: %s", res.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded chatResponse
	if err := json.NewDecoder(res.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return "", fmt.Errorf("response has no choices")
	}

	return decoded.Choices[0].Message.Content, nil
}
