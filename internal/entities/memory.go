package entities

import "time"

// Importance bounds for memories
const (
	MinImportance = 1
	MaxImportance = 10
)

// Memory is an append-only note attached to an NPC by name.
type Memory struct {
	ID         string    `json:"id"`
	NPCName    string    `json:"npc_name"`
	Text       string    `json:"memory_text"`
	Importance int       `json:"importance"`
	CreatedAt  time.Time `json:"created_at"`
}
