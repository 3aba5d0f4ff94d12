package engine

import (
	"context"
	"fmt"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/agent-sandbox/internal/decision"
	"github.com/KirkDiggler/agent-sandbox/internal/entities"
	"github.com/KirkDiggler/agent-sandbox/internal/errors"
)

// drawResolution is the number of faces used to produce a draw in [0,1)
const drawResolution = 1000

// DefaultBaseLocationID is where BUILD has an effect unless configured
const DefaultBaseLocationID = "camp"

// Config holds the dependencies for the rules engine
type Config struct {
	Roller dice.Roller
	// BaseLocationID is the only location where BUILD counts
	BaseLocationID string
}

// Validate ensures all required dependencies are provided
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()
	if cfg.Roller == nil {
		vb.RequiredField("Roller")
	}
	return vb.Build()
}

type engine struct {
	roller         dice.Roller
	baseLocationID string
}

// New creates a rules engine
func New(cfg *Config) (Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	base := cfg.BaseLocationID
	if base == "" {
		base = DefaultBaseLocationID
	}

	return &engine{
		roller:         cfg.Roller,
		baseLocationID: base,
	}, nil
}

// Clamp bounds a stat to [StatMin, StatMax]
func Clamp(v int) int {
	if v < entities.StatMin {
		return entities.StatMin
	}
	if v > entities.StatMax {
		return entities.StatMax
	}
	return v
}

// ClampStatus clamps every stat
func ClampStatus(s entities.Status) entities.Status {
	return entities.Status{
		Health: Clamp(s.Health),
		Hunger: Clamp(s.Hunger),
		Sanity: Clamp(s.Sanity),
	}
}

// IsBuildMaterial reports whether an item can be spent on BUILD
func IsBuildMaterial(it *entities.Item) bool {
	if it == nil || it.Quantity <= 0 {
		return false
	}
	return it.Name == string(entities.ResourceWood) || it.Name == string(entities.ResourceMetal)
}

func (e *engine) GatherSucceeds(_ context.Context, check *GatherCheck) (bool, error) {
	if check == nil {
		return false, errors.InvalidArgument("gather check is required")
	}
	if !check.ResourceType.Produces() {
		return false, nil
	}

	// Roll yields 1..drawResolution; roll-1 is the draw in thousandths
	roll, err := e.roller.Roll(drawResolution)
	if err != nil {
		return false, errors.Wrap(err, "failed to roll gather check")
	}

	return roll-1 >= check.DangerLevel*DangerFailurePerMille, nil
}

func (e *engine) Resolve(ctx context.Context, input *ResolveInput) (*ResolveOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	if input.NPC == nil {
		vb.RequiredField("NPC")
	}
	if input.Decision == nil {
		vb.RequiredField("Decision")
	}
	if input.Location == nil {
		vb.RequiredField("Location")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	npc, d, loc := input.NPC, input.Decision, input.Location
	out := &ResolveOutput{Effect: EffectNone}
	status := npc.Status
	status.Hunger += BaseHungerPerTurn

	switch d.Action {
	case decision.ActionGather:
		resource := loc.ResourceType
		if !resource.Produces() {
			status.Health -= GatherFailureDamage
			out.Effect = EffectGatherFailed
			out.Description = fmt.Sprintf("got hurt searching %s, where there is nothing to gather", loc.Name)
			break
		}
		ok, err := e.GatherSucceeds(ctx, &GatherCheck{DangerLevel: loc.DangerLevel, ResourceType: resource})
		if err != nil {
			return nil, err
		}
		if ok {
			status.Hunger += GatherHunger
			out.Gained = &ItemGain{Name: string(resource), Type: entities.ItemTypeResource, Quantity: 1}
			out.Effect = EffectGathered
			out.Description = fmt.Sprintf("gathered 1 %s at %s", resource, loc.Name)
		} else {
			status.Health -= GatherFailureDamage
			out.Effect = EffectGatherFailed
			out.Description = fmt.Sprintf("got hurt trying to gather %s at %s", resource, loc.Name)
		}

	case decision.ActionBuild:
		if loc.ID != e.baseLocationID {
			out.Effect = EffectBuildNoop
			out.Description = fmt.Sprintf("tried to build at %s, but building only counts at %s", loc.Name, e.baseLocationID)
			break
		}
		var material *entities.Item
		for _, it := range input.Inventory {
			if IsBuildMaterial(it) {
				material = it
				break
			}
		}
		if material == nil {
			out.Effect = EffectBuildNoop
			out.Description = "wanted to build but has no wood or metal"
			break
		}
		out.Consumed = material
		out.Construction = BuildProgress
		out.Effect = EffectBuilt
		out.Description = fmt.Sprintf("used 1 %s to reinforce the shelter", material.Name)

	case decision.ActionRest:
		status.Health += RestHealth
		status.Sanity += RestSanity
		out.Effect = EffectRested
		out.Description = "rested"

	case decision.ActionAttack:
		out.Description = fmt.Sprintf("attacked %s", d.Target)

	default:
		if IsFlavorOnly(d.Action) {
			out.Description = fmt.Sprintf("chose to %s %s", d.Action, d.Target)
		} else {
			out.Description = fmt.Sprintf("is doing %s %s", d.Action, d.Target)
		}
	}

	out.Status = ClampStatus(status)
	out.Died = npc.Alive && out.Status.Health == entities.StatMin

	return out, nil
}
