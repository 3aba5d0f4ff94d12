package entities

import "time"

// LogKind classifies game log entries
type LogKind string

// Log kinds
const (
	LogKindAction      LogKind = "action"
	LogKindTurnSummary LogKind = "turn_summary"
	LogKindDeath       LogKind = "death"
)

// GameLog is an append-only event. Content is free text or a JSON document
// depending on Kind.
type GameLog struct {
	ID        string    `json:"id"`
	Kind      LogKind   `json:"event_type"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ActionLog is the JSON payload of a LogKindAction entry
type ActionLog struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	Location string `json:"location"`
	Action   string `json:"action"`
	Speech   string `json:"speech"`
	Thought  string `json:"thought"`
	Effect   string `json:"effect"`
}
