// Package memory stores the append-only recollections of each NPC
package memory

//go:generate mockgen -destination=mock/mock_repository.go -package=memorymock github.com/KirkDiggler/agent-sandbox/internal/repositories/memory Repository

import (
	"context"

	"github.com/KirkDiggler/agent-sandbox/internal/entities"
)

// Repository defines the interface for memory persistence
type Repository interface {
	// Create appends a memory for an NPC. CreatedAt is stamped when zero.
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// ListTop returns an NPC's memories by descending importance; equal
	// importance falls back to the newest ID first
	ListTop(ctx context.Context, input ListTopInput) (*ListTopOutput, error)
}

// CreateInput defines the input for creating a memory
type CreateInput struct {
	Memory *entities.Memory
}

// CreateOutput defines the output for creating a memory
type CreateOutput struct {
	Memory *entities.Memory
}

// ListTopInput defines the input for listing an NPC's top memories
type ListTopInput struct {
	NPCName string
	Limit   int
}

// ListTopOutput defines the output for listing an NPC's top memories
type ListTopOutput struct {
	Memories []*entities.Memory
}
