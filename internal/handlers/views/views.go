// Package views holds the wire shapes shared by the HTTP and gRPC
// surfaces. Both serve the same JSON documents.
package views

import (
	"github.com/KirkDiggler/agent-sandbox/internal/entities"
	"github.com/KirkDiggler/agent-sandbox/internal/orchestrators/state"
	"github.com/KirkDiggler/agent-sandbox/internal/orchestrators/turn"
	"github.com/KirkDiggler/agent-sandbox/internal/orchestrators/whisper"
)

// GameOverMessage is reported when nobody is left alive
const GameOverMessage = "Game Over"

// TurnResponse is the result of a game tick
type TurnResponse struct {
	Success           bool              `json:"success"`
	Message           string            `json:"message,omitempty"`
	Turn              int               `json:"turn"`
	NPCsActed         int               `json:"npcs_acted"`
	ConstructionAdded int               `json:"construction_added"`
	GameOver          bool              `json:"game_over"`
	Summary           string            `json:"summary,omitempty"`
	Outcomes          []*OutcomeSummary `json:"outcomes"`
}

// OutcomeSummary is one NPC's line in a TurnResponse
type OutcomeSummary struct {
	NPCID       string `json:"npc_id"`
	Name        string `json:"name"`
	Action      string `json:"action_type"`
	Target      string `json:"target"`
	Effect      string `json:"effect"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Speech      string `json:"speech"`
	Thought     string `json:"thought"`
	Died        bool   `json:"died"`
	Degraded    bool   `json:"degraded"`
}

// NewTurnResponse converts a turn result
func NewTurnResponse(out *turn.AdvanceTurnOutput) *TurnResponse {
	resp := &TurnResponse{
		Success:           true,
		Turn:              out.Turn,
		NPCsActed:         out.NPCsActed,
		ConstructionAdded: out.ConstructionAdded,
		GameOver:          out.GameOver,
		Summary:           out.Summary,
		Outcomes:          make([]*OutcomeSummary, 0, len(out.Outcomes)),
	}
	if out.GameOver {
		resp.Message = GameOverMessage
	}

	for _, o := range out.Outcomes {
		resp.Outcomes = append(resp.Outcomes, &OutcomeSummary{
			NPCID:       o.NPC.ID,
			Name:        o.NPC.Name,
			Action:      string(o.Decision.Action),
			Target:      o.Decision.Target,
			Effect:      string(o.Effect),
			Description: o.Description,
			Location:    o.LocationName,
			Speech:      o.Decision.Speech,
			Thought:     o.Decision.Thought,
			Died:        o.Died,
			Degraded:    o.Degraded,
		})
	}

	return resp
}

// WhisperRequest is the body of a whisper
type WhisperRequest struct {
	NPCID string `json:"npc_id"`
	// NPCName is accepted for older clients; the NPC is resolved by ID
	NPCName string `json:"npc_name,omitempty"`
	Message string `json:"message"`
}

// WhisperResponse acknowledges a whisper
type WhisperResponse struct {
	Success  bool   `json:"success"`
	MemoryID string `json:"memory_id"`
}

// NewWhisperResponse converts a whisper result
func NewWhisperResponse(out *whisper.WhisperOutput) *WhisperResponse {
	return &WhisperResponse{Success: true, MemoryID: out.Memory.ID}
}

// StateResponse is a world snapshot
type StateResponse struct {
	NPCs      []*entities.NPC      `json:"npcs"`
	Locations []*entities.Location `json:"locations"`
	Items     []*entities.Item     `json:"items"`
	World     *entities.WorldState `json:"world"`
	Logs      []*entities.GameLog  `json:"logs"`
}

// NewStateResponse converts a snapshot, never emitting null lists
func NewStateResponse(out *state.GetStateOutput) *StateResponse {
	resp := &StateResponse{
		NPCs:      out.NPCs,
		Locations: out.Locations,
		Items:     out.Items,
		World:     out.World,
		Logs:      out.Logs,
	}
	if resp.NPCs == nil {
		resp.NPCs = []*entities.NPC{}
	}
	if resp.Locations == nil {
		resp.Locations = []*entities.Location{}
	}
	if resp.Items == nil {
		resp.Items = []*entities.Item{}
	}
	if resp.Logs == nil {
		resp.Logs = []*entities.GameLog{}
	}
	if resp.World == nil {
		resp.World = &entities.WorldState{}
	}
	return resp
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
