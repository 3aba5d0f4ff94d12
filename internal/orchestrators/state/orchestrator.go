// Package state assembles read-only snapshots of the world.
package state

//go:generate mockgen -destination=mock/mock_service.go -package=statemock github.com/KirkDiggler/agent-sandbox/internal/orchestrators/state Service

import (
	"context"

	"github.com/KirkDiggler/agent-sandbox/internal/entities"
	"github.com/KirkDiggler/agent-sandbox/internal/errors"
	"github.com/KirkDiggler/agent-sandbox/internal/repositories/gamelog"
	"github.com/KirkDiggler/agent-sandbox/internal/repositories/item"
	"github.com/KirkDiggler/agent-sandbox/internal/repositories/location"
	"github.com/KirkDiggler/agent-sandbox/internal/repositories/npc"
	"github.com/KirkDiggler/agent-sandbox/internal/repositories/world"
)

// Log limits for snapshots
const (
	DefaultLogLimit = 20
	MaxLogLimit     = 200
)

// GetStateInput is the input for reading a snapshot
type GetStateInput struct {
	// LogLimit defaults to DefaultLogLimit and is capped at MaxLogLimit
	LogLimit int
}

// GetStateOutput is a snapshot of the world
type GetStateOutput struct {
	// NPCs are ordered by name, the dead included
	NPCs      []*entities.NPC
	Locations []*entities.Location
	Items     []*entities.Item
	World     *entities.WorldState
	// Logs are newest first
	Logs []*entities.GameLog
}

// Service defines the interface for state operations
type Service interface {
	GetState(ctx context.Context, input *GetStateInput) (*GetStateOutput, error)
}

// Config holds the dependencies for the state orchestrator
type Config struct {
	NPCRepo      npc.Repository
	LocationRepo location.Repository
	ItemRepo     item.Repository
	WorldRepo    world.Repository
	GameLogRepo  gamelog.Repository
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
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
	if c.GameLogRepo == nil {
		vb.RequiredField("GameLogRepo")
	}

	return vb.Build()
}

type orchestrator struct {
	npcRepo      npc.Repository
	locationRepo location.Repository
	itemRepo     item.Repository
	worldRepo    world.Repository
	gameLogRepo  gamelog.Repository
}

// NewOrchestrator creates a new state orchestrator
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		npcRepo:      cfg.NPCRepo,
		locationRepo: cfg.LocationRepo,
		itemRepo:     cfg.ItemRepo,
		worldRepo:    cfg.WorldRepo,
		gameLogRepo:  cfg.GameLogRepo,
	}, nil
}

// NormalizeLogLimit applies the default and the cap
func NormalizeLogLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLogLimit
	case limit > MaxLogLimit:
		return MaxLogLimit
	default:
		return limit
	}
}

// GetState implements Service
func (o *orchestrator) GetState(ctx context.Context, input *GetStateInput) (*GetStateOutput, error) {
	if input == nil {
		input = &GetStateInput{}
	}

	npcs, err := o.npcRepo.List(ctx, npc.ListInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list npcs")
	}

	locations, err := o.locationRepo.List(ctx, location.ListInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list locations")
	}

	items, err := o.itemRepo.List(ctx, item.ListInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list items")
	}

	worldOut, err := o.worldRepo.Get(ctx, world.GetInput{})
	if err != nil {
		if !errors.IsNotFound(err) {
			return nil, errors.Wrap(err, "failed to get world state")
		}
		// an unseeded world reads as turn zero
		worldOut = &world.GetOutput{World: &entities.WorldState{}}
	}

	logs, err := o.gameLogRepo.ListRecent(ctx, gamelog.ListRecentInput{Limit: NormalizeLogLimit(input.LogLimit)})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list game logs")
	}

	return &GetStateOutput{
		NPCs:      npcs.NPCs,
		Locations: locations.Locations,
		Items:     items.Items,
		World:     worldOut.World,
		Logs:      logs.Logs,
	}, nil
}
