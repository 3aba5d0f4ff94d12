package engine

import (
	"github.com/KirkDiggler/agent-sandbox/internal/decision"
	"github.com/KirkDiggler/agent-sandbox/internal/entities"
)

// Rule amounts
const (
	BaseHungerPerTurn   = 5
	GatherHunger        = 5
	GatherFailureDamage = 5
	RestHealth          = 5
	RestSanity          = 5
	BuildProgress       = 5

	// DangerFailurePerMille is the failure chance, in thousandths, added by
	// each danger level
	DangerFailurePerMille = 100
)

// FlavorOnlyActions are accepted and logged but have no mechanical effect
var FlavorOnlyActions = []decision.ActionType{
	decision.ActionAttack,
	decision.ActionSteal,
	decision.ActionSocial,
	decision.ActionCraft,
}

// IsFlavorOnly reports whether an action is in FlavorOnlyActions
func IsFlavorOnly(a decision.ActionType) bool {
	for _, f := range FlavorOnlyActions {
		if f == a {
			return true
		}
	}
	return false
}

// Effect tags the mechanical outcome of an action
type Effect string

// Effects
const (
	EffectGathered     Effect = "gathered"
	EffectGatherFailed Effect = "gather_failed"
	EffectBuilt        Effect = "built"
	EffectBuildNoop    Effect = "build_noop"
	EffectRested       Effect = "rested"
	EffectNone         Effect = "none"
)

// GatherCheck is the input to a gather roll
type GatherCheck struct {
	DangerLevel  int
	ResourceType entities.ResourceType
}

// ResolveInput is one NPC's action to settle
type ResolveInput struct {
	NPC      *entities.NPC
	Decision *decision.Decision
	// Location is where the NPC stood when the turn began
	Location *entities.Location
	// Inventory is the NPC's personal items in ID order
	Inventory []*entities.Item
}

// ItemGain is a unit of resource produced by GATHER
type ItemGain struct {
	Name     string
	Type     string
	Quantity int
}

// ResolveOutput is the settled outcome
type ResolveOutput struct {
	// Status is the NPC's new status, base hunger included and clamped
	Status entities.Status
	// Died is set when this turn brought health to zero
	Died bool
	// Gained is set on a successful GATHER
	Gained *ItemGain
	// Consumed is the inventory item BUILD used one unit of
	Consumed *entities.Item
	// Construction is the progress to add to the world
	Construction int
	Effect       Effect
	// Description is the human readable account of the action
	Description string
}
