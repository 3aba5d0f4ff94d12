// Package turn implements the turn resolver: every alive NPC asks the
// model what to do, then the decisions are settled against the store.
package turn

//go:generate mockgen -destination=mock/mock_service.go -package=turnmock github.com/KirkDiggler/agent-sandbox/internal/orchestrators/turn Service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/KirkDiggler/agent-sandbox/internal/clients/llm"
	"github.com/KirkDiggler/agent-sandbox/internal/decision"
	"github.com/KirkDiggler/agent-sandbox/internal/engine"
	"github.com/KirkDiggler/agent-sandbox/internal/entities"
	"github.com/KirkDiggler/agent-sandbox/internal/errors"
	"github.com/KirkDiggler/agent-sandbox/internal/pkg/idgen"
	"github.com/KirkDiggler/agent-sandbox/internal/prompts"
	"github.com/KirkDiggler/agent-sandbox/internal/repositories/gamelog"
	"github.com/KirkDiggler/agent-sandbox/internal/repositories/item"
	"github.com/KirkDiggler/agent-sandbox/internal/repositories/location"
	"github.com/KirkDiggler/agent-sandbox/internal/repositories/memory"
	"github.com/KirkDiggler/agent-sandbox/internal/repositories/npc"
	"github.com/KirkDiggler/agent-sandbox/internal/repositories/world"
)

const (
	// DefaultTurnTimeout bounds a whole turn, model calls included
	DefaultTurnTimeout = 60 * time.Second
	// DefaultMemoryLimit is how many memories each prompt carries
	DefaultMemoryLimit = 3

	// lockGrace keeps the lock alive slightly past the turn deadline
	lockGrace = 10 * time.Second
)

// Service defines the interface for turn operations
type Service interface {
	// AdvanceTurn runs one turn for every alive NPC.
	// Returns errors.Aborted if another turn is in progress.
	AdvanceTurn(ctx context.Context, input *AdvanceTurnInput) (*AdvanceTurnOutput, error)
}

// Config holds the dependencies for the turn orchestrator
type Config struct {
	NPCRepo      npc.Repository
	LocationRepo location.Repository
	ItemRepo     item.Repository
	MemoryRepo   memory.Repository
	WorldRepo    world.Repository
	GameLogRepo  gamelog.Repository
	LLM          llm.Client
	Engine       engine.Engine
	Parser       *decision.Parser

	ItemIDGenerator idgen.Generator
	LogIDGenerator  idgen.Generator
	// LockTokenGenerator defaults to random UUIDs
	LockTokenGenerator idgen.Generator

	BaseLocationID   string
	MemoryLimit      int
	TurnTimeout      time.Duration
	NarrativeSummary bool
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
	if c.MemoryRepo == nil {
		vb.RequiredField("MemoryRepo")
	}
	if c.WorldRepo == nil {
		vb.RequiredField("WorldRepo")
	}
	if c.GameLogRepo == nil {
		vb.RequiredField("GameLogRepo")
	}
	if c.LLM == nil {
		vb.RequiredField("LLM")
	}
	if c.Engine == nil {
		vb.RequiredField("Engine")
	}
	if c.Parser == nil {
		vb.RequiredField("Parser")
	}
	if c.ItemIDGenerator == nil {
		vb.RequiredField("ItemIDGenerator")
	}
	if c.LogIDGenerator == nil {
		vb.RequiredField("LogIDGenerator")
	}
	if c.MemoryLimit < 0 {
		vb.Field("MemoryLimit", "cannot be negative")
	}
	if c.TurnTimeout < 0 {
		vb.Field("TurnTimeout", "cannot be negative")
	}

	return vb.Build()
}

type orchestrator struct {
	npcRepo      npc.Repository
	locationRepo location.Repository
	itemRepo     item.Repository
	memoryRepo   memory.Repository
	worldRepo    world.Repository
	gameLogRepo  gamelog.Repository
	llm          llm.Client
	engine       engine.Engine
	parser       *decision.Parser

	itemIDs    idgen.Generator
	logIDs     idgen.Generator
	lockTokens idgen.Generator

	baseLocationID   string
	memoryLimit      int
	turnTimeout      time.Duration
	narrativeSummary bool
}

// NewOrchestrator creates a new turn orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	o := &orchestrator{
		npcRepo:          cfg.NPCRepo,
		locationRepo:     cfg.LocationRepo,
		itemRepo:         cfg.ItemRepo,
		memoryRepo:       cfg.MemoryRepo,
		worldRepo:        cfg.WorldRepo,
		gameLogRepo:      cfg.GameLogRepo,
		llm:              cfg.LLM,
		engine:           cfg.Engine,
		parser:           cfg.Parser,
		itemIDs:          cfg.ItemIDGenerator,
		logIDs:           cfg.LogIDGenerator,
		lockTokens:       cfg.LockTokenGenerator,
		baseLocationID:   cfg.BaseLocationID,
		memoryLimit:      cfg.MemoryLimit,
		turnTimeout:      cfg.TurnTimeout,
		narrativeSummary: cfg.NarrativeSummary,
	}
	if o.lockTokens == nil {
		o.lockTokens = idgen.NewUUID("turn")
	}
	if o.baseLocationID == "" {
		o.baseLocationID = engine.DefaultBaseLocationID
	}
	if o.turnTimeout == 0 {
		o.turnTimeout = DefaultTurnTimeout
	}
	if o.memoryLimit == 0 {
		o.memoryLimit = DefaultMemoryLimit
	}

	return o, nil
}

// AdvanceTurn implements Service
func (o *orchestrator) AdvanceTurn(ctx context.Context, _ *AdvanceTurnInput) (*AdvanceTurnOutput, error) {
	ctx, cancel := context.WithTimeout(ctx, o.turnTimeout)
	defer cancel()

	token := o.lockTokens.Generate()
	if _, err := o.worldRepo.AcquireTurnLock(ctx, world.AcquireTurnLockInput{
		Token: token,
		TTL:   o.turnTimeout + lockGrace,
	}); err != nil {
		return nil, err
	}
	defer func() {
		// the turn context may already be done
		releaseCtx := context.WithoutCancel(ctx)
		if _, err := o.worldRepo.ReleaseTurnLock(releaseCtx, world.ReleaseTurnLockInput{Token: token}); err != nil {
			slog.ErrorContext(releaseCtx, "failed to release turn lock", "error", err)
		}
	}()

	worldOut, err := o.worldRepo.Get(ctx, world.GetInput{})
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.FailedPrecondition("world has not been seeded")
		}
		return nil, errors.Wrap(err, "failed to load world state")
	}
	ws := worldOut.World

	npcsOut, err := o.npcRepo.List(ctx, npc.ListInput{AliveOnly: true})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list npcs")
	}
	if len(npcsOut.NPCs) == 0 {
		slog.InfoContext(ctx, "no npcs alive, game over", "turn", ws.Turn)
		return &AdvanceTurnOutput{Turn: ws.Turn, GameOver: true, Outcomes: []*NPCOutcome{}}, nil
	}

	locsOut, err := o.locationRepo.List(ctx, location.ListInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list locations")
	}
	locations := make(map[string]*entities.Location, len(locsOut.Locations))
	for _, l := range locsOut.Locations {
		locations[l.ID] = l
	}

	communalOut, err := o.itemRepo.ListByOwner(ctx, item.ListByOwnerInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list communal items")
	}

	plans, err := o.gather(ctx, ws, npcsOut.NPCs, locsOut.Locations, locations, communalOut.Items)
	if err != nil {
		return nil, err
	}

	out := &AdvanceTurnOutput{Outcomes: make([]*NPCOutcome, 0, len(plans))}
	for _, p := range plans {
		outcome, construction, err := o.apply(ctx, p, locations)
		if err != nil {
			return nil, err
		}
		if outcome == nil {
			continue
		}
		out.Outcomes = append(out.Outcomes, outcome)
		out.ConstructionAdded += construction
	}
	out.NPCsActed = len(out.Outcomes)

	if out.ConstructionAdded > 0 {
		if _, err := o.worldRepo.AddConstruction(ctx, world.AddConstructionInput{Amount: out.ConstructionAdded}); err != nil {
			return nil, errors.Wrap(err, "failed to add construction progress")
		}
	}

	turnOut, err := o.worldRepo.IncrementTurn(ctx, world.IncrementTurnInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to advance turn")
	}
	out.Turn = turnOut.Turn

	if o.narrativeSummary && len(out.Outcomes) > 0 {
		out.Summary = o.summarize(ctx, ws, out.Outcomes)
	}

	slog.InfoContext(ctx, "turn advanced",
		"turn", out.Turn,
		"npcs_acted", out.NPCsActed,
		"construction_added", out.ConstructionAdded)

	return out, nil
}

// gather asks the model for every NPC concurrently. Results keep roster order.
func (o *orchestrator) gather(
	ctx context.Context,
	ws *entities.WorldState,
	roster []*entities.NPC,
	allLocations []*entities.Location,
	locations map[string]*entities.Location,
	communal []*entities.Item,
) ([]*plan, error) {
	plans := make([]*plan, len(roster))
	errs := make([]error, len(roster))

	var wg sync.WaitGroup
	for i, n := range roster {
		wg.Add(1)
		go func(idx int, n *entities.NPC) {
			defer wg.Done()
			plans[idx], errs[idx] = o.decide(ctx, ws, n, allLocations, locateOrPlaceholder(locations, n.LocationID), communal)
		}(i, n)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, errors.Wrapf(err, "failed to gather context for npc %s", roster[i].ID)
		}
	}
	return plans, nil
}

func (o *orchestrator) decide(
	ctx context.Context,
	ws *entities.WorldState,
	n *entities.NPC,
	allLocations []*entities.Location,
	loc *entities.Location,
	communal []*entities.Item,
) (*plan, error) {
	personal, err := o.itemRepo.ListByOwner(ctx, item.ListByOwnerInput{OwnerID: n.ID})
	if err != nil {
		return nil, err
	}

	memories, err := o.memoryRepo.ListTop(ctx, memory.ListTopInput{NPCName: n.Name, Limit: o.memoryLimit})
	if err != nil {
		return nil, err
	}

	prompt, err := prompts.Decision(&prompts.DecisionContext{
		NPC:            n,
		Location:       loc,
		Locations:      allLocations,
		Personal:       personal.Items,
		Communal:       communal,
		Memories:       memories.Memories,
		Turn:           ws.Turn,
		Weather:        ws.Weather,
		BaseLocationID: o.baseLocationID,
	})
	if err != nil {
		return nil, err
	}

	completion, err := o.llm.Complete(ctx, &llm.CompleteInput{
		Tier:   llm.TierFast,
		System: prompt.System,
		User:   prompt.User,
	})
	if err != nil {
		return nil, err
	}

	d := o.parser.Resolve(ctx, completion.Text, decision.Defaults(n.LocationID))
	if completion.Degraded {
		slog.WarnContext(ctx, "no decision from model, using defaults", "npc", n.Name)
	}

	return &plan{npc: n, decision: d, degraded: completion.Degraded}, nil
}

// apply settles one plan. A nil outcome means the NPC was skipped.
func (o *orchestrator) apply(ctx context.Context, p *plan, locations map[string]*entities.Location) (*NPCOutcome, int, error) {
	// re-read so the apply phase never writes back stale stats
	current, err := o.npcRepo.Get(ctx, npc.GetInput{ID: p.npc.ID})
	if err != nil {
		if errors.IsNotFound(err) {
			slog.WarnContext(ctx, "npc vanished mid-turn, skipping", "npc_id", p.npc.ID)
			return nil, 0, nil
		}
		return nil, 0, errors.Wrapf(err, "failed to reload npc %s", p.npc.ID)
	}
	n := current.NPC
	if !n.Alive {
		return nil, 0, nil
	}

	start := locateOrPlaceholder(locations, n.LocationID)

	inventory, err := o.itemRepo.ListByOwner(ctx, item.ListByOwnerInput{OwnerID: n.ID})
	if err != nil {
		return nil, 0, errors.Wrapf(err, "failed to load inventory for npc %s", n.ID)
	}

	result, err := o.engine.Resolve(ctx, &engine.ResolveInput{
		NPC:       n,
		Decision:  p.decision,
		Location:  start,
		Inventory: inventory.Items,
	})
	if err != nil {
		return nil, 0, errors.Wrapf(err, "failed to resolve action for npc %s", n.ID)
	}

	var movement string
	if dest := p.decision.MoveTo; dest != "" && dest != n.LocationID {
		if to, ok := locations[dest]; ok {
			movement = fmt.Sprintf("left %s, heading to %s. ", start.Name, to.Name)
			n.LocationID = to.ID
		} else {
			movement = fmt.Sprintf("wanted to go to %s, but no such place exists. ", dest)
		}
	}

	if result.Gained != nil {
		if err := o.addToInventory(ctx, n.ID, inventory.Items, result.Gained); err != nil {
			return nil, 0, err
		}
	}
	if result.Consumed != nil {
		if err := o.consume(ctx, result.Consumed); err != nil {
			return nil, 0, err
		}
	}

	n.Status = result.Status
	if result.Died {
		n.Alive = false
	}
	if _, err := o.npcRepo.Update(ctx, npc.UpdateInput{NPC: n}); err != nil {
		return nil, 0, errors.Wrapf(err, "failed to update npc %s", n.ID)
	}

	end := locateOrPlaceholder(locations, n.LocationID)
	description := movement + result.Description
	outcome := &NPCOutcome{
		NPC:          n,
		Decision:     p.decision,
		Effect:       result.Effect,
		Description:  description,
		LocationName: end.Name,
		Died:         result.Died,
		Degraded:     p.degraded,
	}

	if err := o.logAction(ctx, outcome); err != nil {
		return nil, 0, err
	}
	if result.Died {
		if err := o.appendLog(ctx, entities.LogKindDeath, fmt.Sprintf("%s (%s) died at %s.", n.Name, n.Role, end.Name)); err != nil {
			return nil, 0, err
		}
		slog.InfoContext(ctx, "npc died", "npc", n.Name, "location", end.ID)
	}

	return outcome, result.Construction, nil
}

// addToInventory stacks onto an owned item with the same name, else creates one
func (o *orchestrator) addToInventory(ctx context.Context, ownerID string, owned []*entities.Item, gain *engine.ItemGain) error {
	for _, it := range owned {
		if it.Name == gain.Name {
			updated := *it
			updated.Quantity += gain.Quantity
			if _, err := o.itemRepo.Update(ctx, item.UpdateInput{Item: &updated}); err != nil {
				return errors.Wrapf(err, "failed to stack %s for npc %s", gain.Name, ownerID)
			}
			return nil
		}
	}

	_, err := o.itemRepo.Create(ctx, item.CreateInput{Item: &entities.Item{
		ID:       o.itemIDs.Generate(),
		Name:     gain.Name,
		Quantity: gain.Quantity,
		Type:     gain.Type,
		OwnerID:  ownerID,
	}})
	if err != nil {
		return errors.Wrapf(err, "failed to create %s for npc %s", gain.Name, ownerID)
	}
	return nil
}

// consume removes one unit, deleting the item when it runs out
func (o *orchestrator) consume(ctx context.Context, it *entities.Item) error {
	if it.Quantity <= 1 {
		if _, err := o.itemRepo.Delete(ctx, item.DeleteInput{ID: it.ID}); err != nil {
			return errors.Wrapf(err, "failed to consume item %s", it.ID)
		}
		return nil
	}

	updated := *it
	updated.Quantity--
	if _, err := o.itemRepo.Update(ctx, item.UpdateInput{Item: &updated}); err != nil {
		return errors.Wrapf(err, "failed to consume item %s", it.ID)
	}
	return nil
}

func (o *orchestrator) logAction(ctx context.Context, outcome *NPCOutcome) error {
	payload, err := json.Marshal(entities.ActionLog{
		Name:     outcome.NPC.Name,
		Role:     outcome.NPC.Role,
		Location: outcome.LocationName,
		Action:   outcome.Description,
		Speech:   outcome.Decision.Speech,
		Thought:  outcome.Decision.Thought,
		Effect:   string(outcome.Effect),
	})
	if err != nil {
		return errors.Wrap(err, "failed to marshal action log")
	}
	return o.appendLog(ctx, entities.LogKindAction, string(payload))
}

func (o *orchestrator) appendLog(ctx context.Context, kind entities.LogKind, content string) error {
	_, err := o.gameLogRepo.Append(ctx, gamelog.AppendInput{Log: &entities.GameLog{
		ID:      o.logIDs.Generate(),
		Kind:    kind,
		Content: content,
	}})
	if err != nil {
		return errors.Wrapf(err, "failed to append %s log", kind)
	}
	return nil
}

// summarize asks the deep tier for a narrative. Failures only cost the summary.
func (o *orchestrator) summarize(ctx context.Context, ws *entities.WorldState, outcomes []*NPCOutcome) string {
	sc := &prompts.SummaryContext{Turn: ws.Turn, Weather: ws.Weather}
	for _, oc := range outcomes {
		sc.Outcomes = append(sc.Outcomes, prompts.Outcome{
			Name:     oc.NPC.Name,
			Role:     oc.NPC.Role,
			Location: oc.LocationName,
			Action:   oc.Description,
			Speech:   oc.Decision.Speech,
			Thought:  oc.Decision.Thought,
		})
	}

	prompt, err := prompts.Summary(sc)
	if err != nil {
		slog.WarnContext(ctx, "failed to render summary prompt", "error", err)
		return ""
	}

	completion, err := o.llm.Complete(ctx, &llm.CompleteInput{
		Tier:   llm.TierDeep,
		System: prompt.System,
		User:   prompt.User,
	})
	if err != nil {
		slog.WarnContext(ctx, "turn summary failed", "error", err)
		return ""
	}

	summary := strings.TrimSpace(completion.Text)
	if summary == "" {
		return ""
	}
	if err := o.appendLog(ctx, entities.LogKindTurnSummary, summary); err != nil {
		slog.ErrorContext(ctx, "failed to store turn summary", "error", err)
	}
	return summary
}

// locateOrPlaceholder never returns nil; unknown IDs get a barren stand-in
func locateOrPlaceholder(locations map[string]*entities.Location, id string) *entities.Location {
	if l, ok := locations[id]; ok {
		return l
	}
	return &entities.Location{ID: id, Name: id, ResourceType: entities.ResourceNone}
}
