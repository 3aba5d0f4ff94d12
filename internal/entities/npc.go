// Package entities contains the persisted records of the sandbox world
package entities

import (
	"github.com/KirkDiggler/rpg-toolkit/core"
)

// Stat bounds shared by health, hunger and sanity
const (
	StatMin = 0
	StatMax = 100
)

// EntityTypeNPC is the core.Entity type of an NPC
const EntityTypeNPC = "npc"

// Status holds the vital stats of an NPC. Every value stays within
// [StatMin, StatMax].
type Status struct {
	Health int `json:"hp" yaml:"hp"`
	Hunger int `json:"hunger" yaml:"hunger"`
	Sanity int `json:"sanity" yaml:"sanity"`
}

// NPC is an LLM-driven character. NPCs are never deleted; death only clears
// Alive.
type NPC struct {
	ID            string         `json:"id" yaml:"id"`
	Name          string         `json:"name" yaml:"name"`
	Role          string         `json:"role" yaml:"role"`
	Personality   string         `json:"personality" yaml:"personality"`
	Status        Status         `json:"status" yaml:"status"`
	LocationID    string         `json:"location_id" yaml:"location_id"`
	Relationships map[string]int `json:"relationships" yaml:"relationships"`
	Alive         bool           `json:"is_alive" yaml:"alive"`
}

// GetID implements core.Entity
func (n *NPC) GetID() string {
	return n.ID
}

// GetType implements core.Entity
func (n *NPC) GetType() string {
	return EntityTypeNPC
}

var _ core.Entity = (*NPC)(nil)
