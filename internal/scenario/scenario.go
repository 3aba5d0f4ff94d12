// Package scenario loads world definitions from YAML and writes them
// through the repositories.
package scenario

import (
	"context"
	_ "embed"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/agent-sandbox/internal/entities"
	"github.com/KirkDiggler/agent-sandbox/internal/errors"
	"github.com/KirkDiggler/agent-sandbox/internal/repositories/item"
	"github.com/KirkDiggler/agent-sandbox/internal/repositories/location"
	"github.com/KirkDiggler/agent-sandbox/internal/repositories/npc"
	"github.com/KirkDiggler/agent-sandbox/internal/repositories/world"
)

//go:embed default.yaml
var defaultScenario []byte

// Scenario is a complete starting world
type Scenario struct {
	World     entities.WorldState  `yaml:"world"`
	Locations []*entities.Location `yaml:"locations"`
	NPCs      []*entities.NPC      `yaml:"npcs"`
	Items     []*entities.Item     `yaml:"items"`
}

// Default returns the built-in scenario
func Default() (*Scenario, error) {
	return Parse(defaultScenario)
}

// Load reads a scenario file; an empty path means Default
func Load(path string) (*Scenario, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read scenario %s", path)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML scenario
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse scenario")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks references between sections
func (s *Scenario) Validate() error {
	vb := errors.NewValidationBuilder()

	if len(s.Locations) == 0 {
		vb.Field("locations", "at least one location is required")
	}

	locations := make(map[string]bool, len(s.Locations))
	for _, l := range s.Locations {
		if l.ID == "" {
			vb.Field("locations", "every location needs an id")
			continue
		}
		if locations[l.ID] {
			vb.Fieldf("locations", "duplicate location %s", l.ID)
		}
		locations[l.ID] = true
	}

	npcs := make(map[string]bool, len(s.NPCs))
	for _, n := range s.NPCs {
		if n.ID == "" || n.Name == "" {
			vb.Field("npcs", "every npc needs an id and a name")
			continue
		}
		if npcs[n.ID] {
			vb.Fieldf("npcs", "duplicate npc %s", n.ID)
		}
		npcs[n.ID] = true
		if !locations[n.LocationID] {
			vb.Fieldf("npcs", "npc %s starts at unknown location %s", n.ID, n.LocationID)
		}
	}

	for _, it := range s.Items {
		if it.ID == "" {
			vb.Field("items", "every item needs an id")
			continue
		}
		if it.OwnerID != "" && !npcs[it.OwnerID] {
			vb.Fieldf("items", "item %s is owned by unknown npc %s", it.ID, it.OwnerID)
		}
	}

	return vb.Build()
}

// SeederConfig holds the repositories a scenario is written through
type SeederConfig struct {
	NPCRepo      npc.Repository
	LocationRepo location.Repository
	ItemRepo     item.Repository
	WorldRepo    world.Repository
}

// Validate ensures all required dependencies are provided
func (c *SeederConfig) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.NPCRepo == nil {
		vb.RequiredField("NPCRepo")
	}
	if c.LocationRepo == nil {
		vb.RequiredField("LocationRepo")
	}
	if c.ItemRepo == nil {
		vb.RequiredField("ItemRepo")
	}
	if c.WorldRepo == nil {
		vb.RequiredField("WorldRepo")
	}
	return vb.Build()
}

// Seeder writes scenarios into an empty store
type Seeder struct {
	cfg SeederConfig
}

// NewSeeder creates a Seeder
func NewSeeder(cfg *SeederConfig) (*Seeder, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Seeder{cfg: *cfg}, nil
}

// Seed writes every record of the scenario. Existing NPCs or items with
// the same IDs cause an AlreadyExists error; reset the store first.
func (s *Seeder) Seed(ctx context.Context, sc *Scenario) error {
	if sc == nil {
		return errors.InvalidArgument("scenario is required")
	}

	ws := sc.World
	if _, err := s.cfg.WorldRepo.Put(ctx, world.PutInput{World: &ws}); err != nil {
		return errors.Wrap(err, "failed to seed world")
	}
	for _, l := range sc.Locations {
		if _, err := s.cfg.LocationRepo.Create(ctx, location.CreateInput{Location: l}); err != nil {
			return errors.Wrapf(err, "failed to seed location %s", l.ID)
		}
	}
	for _, n := range sc.NPCs {
		if _, err := s.cfg.NPCRepo.Create(ctx, npc.CreateInput{NPC: n}); err != nil {
			return errors.Wrapf(err, "failed to seed npc %s", n.ID)
		}
	}
	for _, it := range sc.Items {
		if _, err := s.cfg.ItemRepo.Create(ctx, item.CreateInput{Item: it}); err != nil {
			return errors.Wrapf(err, "failed to seed item %s", it.ID)
		}
	}

	slog.InfoContext(ctx, "scenario seeded",
		"locations", len(sc.Locations),
		"npcs", len(sc.NPCs),
		"items", len(sc.Items),
		"turn", sc.World.Turn)

	return nil
}
