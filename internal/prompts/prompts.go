// Package prompts renders the model prompts from embedded templates
package prompts

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/KirkDiggler/agent-sandbox/internal/decision"
	"github.com/KirkDiggler/agent-sandbox/internal/entities"
	"github.com/KirkDiggler/agent-sandbox/internal/errors"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var funcs = template.FuncMap{
	"inventory":     formatInventory,
	"relationships": formatRelationships,
}

var templates = template.Must(template.New("prompts").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl"))

// DecisionContext is everything an NPC knows when choosing an action
type DecisionContext struct {
	NPC            *entities.NPC
	Location       *entities.Location
	Locations      []*entities.Location
	Personal       []*entities.Item
	Communal       []*entities.Item
	Memories       []*entities.Memory
	Turn           int
	Weather        string
	BaseLocationID string
}

// Outcome is one NPC's settled action, as fed to the narrator
type Outcome struct {
	Name     string
	Role     string
	Location string
	Action   string
	Speech   string
	Thought  string
}

// SummaryContext is the input to the turn narration
type SummaryContext struct {
	Turn     int
	Weather  string
	Outcomes []Outcome
}

// Prompt is a rendered system+user pair
type Prompt struct {
	System string
	User   string
}

// Decision renders the per-NPC decision prompt
func Decision(c *DecisionContext) (*Prompt, error) {
	if c == nil || c.NPC == nil || c.Location == nil {
		return nil, errors.InvalidArgument("decision context requires an npc and a location")
	}

	data := struct {
		*DecisionContext
		Actions []decision.ActionInfo
	}{c, decision.Vocabulary}

	system, err := render("decision_system.tmpl", data)
	if err != nil {
		return nil, err
	}
	user, err := render("decision_user.tmpl", data)
	if err != nil {
		return nil, err
	}
	return &Prompt{System: system, User: user}, nil
}

// Summary renders the narrator prompt
func Summary(c *SummaryContext) (*Prompt, error) {
	if c == nil {
		return nil, errors.InvalidArgument("summary context is required")
	}

	system, err := render("summary_system.tmpl", c)
	if err != nil {
		return nil, err
	}
	user, err := render("summary_user.tmpl", c)
	if err != nil {
		return nil, err
	}
	return &Prompt{System: system, User: user}, nil
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", errors.Wrapf(err, "failed to render %s", name)
	}
	return strings.TrimSpace(buf.String()), nil
}

func formatInventory(items []*entities.Item, empty string) string {
	if len(items) == 0 {
		return empty
	}
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%sx%d", it.Name, it.Quantity))
	}
	return strings.Join(parts, ", ")
}

func formatRelationships(rel map[string]int) string {
	if len(rel) == 0 {
		return "{}"
	}
	// map keys marshal in sorted order
	b, err := json.Marshal(rel)
	if err != nil {
		return "{}"
	}
	return string(b)
}
