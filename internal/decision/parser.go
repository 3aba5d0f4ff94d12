package decision

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/tidwall/gjson"

	"github.com/KirkDiggler/agent-sandbox/internal/errors"
)

// FallbackPolicy decides what happens to text that is not a JSON object
type FallbackPolicy string

// Fallback policies
const (
	// FallbackPassthrough keeps the unparseable text as the NPC's thought
	// so players can see what the model produced
	FallbackPassthrough FallbackPolicy = "passthrough"
	// FallbackDefaults discards the text entirely
	FallbackDefaults FallbackPolicy = "defaults"
)

// Valid reports whether the policy is known
func (p FallbackPolicy) Valid() bool {
	return p == FallbackPassthrough || p == FallbackDefaults
}

// ParserConfig configures a Parser
type ParserConfig struct {
	// Fallback defaults to FallbackPassthrough
	Fallback FallbackPolicy
}

// Parser merges model output over per-NPC default decisions
type Parser struct {
	fallback FallbackPolicy
	schema   *jsonschema.Schema
}

// NewParser compiles the decision schema and returns a Parser
func NewParser(cfg *ParserConfig) (*Parser, error) {
	policy := FallbackPassthrough
	if cfg != nil && cfg.Fallback != "" {
		policy = cfg.Fallback
	}
	if !policy.Valid() {
		return nil, errors.InvalidArgumentf("unknown fallback policy %q", policy)
	}

	schema, err := compileSchema()
	if err != nil {
		return nil, errors.Wrap(err, "failed to compile decision schema")
	}

	return &Parser{fallback: policy, schema: schema}, nil
}

// Resolve sanitizes raw model output and parses it. Prose with no JSON
// object in it goes to the fallback policy with the original text.
func (p *Parser) Resolve(ctx context.Context, raw string, defaults Decision) *Decision {
	text := Sanitize(raw)
	if text == "{}" {
		original := strings.TrimSpace(raw)
		if stripFences(original) != "" && original != "{}" {
			return p.fallbackDecision(ctx, original, defaults)
		}
	}
	return p.Parse(ctx, text, defaults)
}

// Parse merges each present, non-null field of the JSON object in text over
// defaults. Text that is not a JSON object is handled by the fallback
// policy. The result always has every field set.
func (p *Parser) Parse(ctx context.Context, text string, defaults Decision) *Decision {
	d := defaults
	d.Violations = nil

	if !gjson.Valid(text) {
		return p.fallbackDecision(ctx, text, defaults)
	}
	root := gjson.Parse(text)
	if !root.IsObject() {
		return p.fallbackDecision(ctx, text, defaults)
	}

	if v, ok := textField(root, "thought"); ok {
		d.Thought = v
	}
	if v, ok := textField(root, "target"); ok {
		d.Target = v
	}
	if v, ok := textField(root, "speech"); ok {
		d.Speech = v
	}
	if v := root.Get("move_to"); v.Type == gjson.String && strings.TrimSpace(v.Str) != "" {
		d.MoveTo = strings.TrimSpace(v.Str)
	}
	if v := root.Get("action_type"); v.Type == gjson.String && strings.TrimSpace(v.Str) != "" {
		d.Action = NormalizeAction(v.Str)
	}

	// an empty object carries no decision to check
	if len(root.Map()) == 0 {
		return &d
	}

	var doc any
	if err := json.Unmarshal([]byte(text), &doc); err == nil {
		if err := p.schema.Validate(doc); err != nil {
			d.Violations = violations(err)
			slog.WarnContext(ctx, "decision does not match schema",
				"violations", d.Violations,
				"action", d.Action)
		}
	}

	return &d
}

func (p *Parser) fallbackDecision(ctx context.Context, text string, defaults Decision) *Decision {
	d := defaults
	d.Fallback = true
	d.Violations = nil
	if p.fallback == FallbackPassthrough {
		d.Thought = text
	}

	slog.WarnContext(ctx, "decision is not a JSON object, using fallback",
		"policy", p.fallback,
		"text_len", len(text))

	return &d
}

// textField accepts strings and numbers; numbers keep their literal form
func textField(root gjson.Result, name string) (string, bool) {
	v := root.Get(name)
	switch v.Type {
	case gjson.String:
		return v.Str, true
	case gjson.Number:
		return v.Raw, true
	default:
		return "", false
	}
}
