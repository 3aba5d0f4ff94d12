// Package builders provides test data builders for creating test fixtures
package builders

import (
	"github.com/KirkDiggler/agent-sandbox/internal/entities"
)

// NPCBuilder provides a fluent interface for building test NPC instances
type NPCBuilder struct {
	npc *entities.NPC
}

// NewNPCBuilder creates a new builder with a healthy, alive NPC at camp
func NewNPCBuilder() *NPCBuilder {
	return &NPCBuilder{
		npc: &entities.NPC{
			ID:            "npc-test-123",
			Name:          "Test Survivor",
			Role:          "Scavenger",
			Personality:   "cautious",
			Status:        entities.Status{Health: 100, Hunger: 0, Sanity: 100},
			LocationID:    "camp",
			Relationships: map[string]int{},
			Alive:         true,
		},
	}
}

// WithID sets the NPC ID
func (b *NPCBuilder) WithID(id string) *NPCBuilder {
	b.npc.ID = id
	return b
}

// WithName sets the NPC name
func (b *NPCBuilder) WithName(name string) *NPCBuilder {
	b.npc.Name = name
	return b
}

// WithRole sets the NPC role
func (b *NPCBuilder) WithRole(role string) *NPCBuilder {
	b.npc.Role = role
	return b
}

// WithStatus sets health, hunger and sanity
func (b *NPCBuilder) WithStatus(health, hunger, sanity int) *NPCBuilder {
	b.npc.Status = entities.Status{Health: health, Hunger: hunger, Sanity: sanity}
	return b
}

// AtLocation sets where the NPC stands
func (b *NPCBuilder) AtLocation(locationID string) *NPCBuilder {
	b.npc.LocationID = locationID
	return b
}

// WithRelationship records how the NPC feels about someone
func (b *NPCBuilder) WithRelationship(name string, score int) *NPCBuilder {
	b.npc.Relationships[name] = score
	return b
}

// Dead clears the alive flag and zeroes health
func (b *NPCBuilder) Dead() *NPCBuilder {
	b.npc.Alive = false
	b.npc.Status.Health = 0
	return b
}

// Build returns the built NPC
func (b *NPCBuilder) Build() *entities.NPC {
	return b.npc
}
