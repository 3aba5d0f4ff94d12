package turn

import (
	"github.com/KirkDiggler/agent-sandbox/internal/decision"
	"github.com/KirkDiggler/agent-sandbox/internal/engine"
	"github.com/KirkDiggler/agent-sandbox/internal/entities"
)

// AdvanceTurnInput is the input for advancing the world one turn
type AdvanceTurnInput struct{}

// AdvanceTurnOutput reports what happened during the turn
type AdvanceTurnOutput struct {
	// Turn is the world turn after the advance; unchanged on game over
	Turn              int
	NPCsActed         int
	ConstructionAdded int
	// GameOver is set when no NPC is alive; nothing was advanced
	GameOver bool
	// Summary is the narrator's account, empty when disabled or degraded
	Summary  string
	Outcomes []*NPCOutcome
}

// NPCOutcome is the settled result for one NPC
type NPCOutcome struct {
	NPC      *entities.NPC
	Decision *decision.Decision
	Effect   engine.Effect
	// Description is the logged account, movement included
	Description string
	// LocationName is where the NPC ended the turn
	LocationName string
	Died         bool
	// Degraded is set when the model gave no usable answer
	Degraded bool
}

// plan is the gather phase result for one NPC
type plan struct {
	npc      *entities.NPC
	decision *decision.Decision
	degraded bool
}
