// Package npc defines persistence for non-player characters
package npc

//go:generate mockgen -destination=mock/mock_repository.go -package=npcmock github.com/KirkDiggler/agent-sandbox/internal/repositories/npc Repository

import (
	"context"

	"github.com/KirkDiggler/agent-sandbox/internal/entities"
)

// Repository defines the interface for NPC persistence
type Repository interface {
	// Create stores a new NPC
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.AlreadyExists if the ID is taken
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves an NPC by ID
	// Returns errors.NotFound if the NPC doesn't exist
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// List returns NPCs ordered by name
	List(ctx context.Context, input ListInput) (*ListOutput, error)

	// Update replaces an existing NPC (last write wins)
	// Returns errors.NotFound if the NPC doesn't exist
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)
}

// CreateInput defines the input for creating an NPC
type CreateInput struct {
	NPC *entities.NPC
}

// CreateOutput defines the output for creating an NPC
type CreateOutput struct {
	NPC *entities.NPC
}

// GetInput defines the input for getting an NPC
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting an NPC
type GetOutput struct {
	NPC *entities.NPC
}

// ListInput defines the input for listing NPCs
type ListInput struct {
	// AliveOnly skips NPCs whose alive flag is cleared
	AliveOnly bool
}

// ListOutput defines the output for listing NPCs
type ListOutput struct {
	NPCs []*entities.NPC
}

// UpdateInput defines the input for updating an NPC
type UpdateInput struct {
	NPC *entities.NPC
}

// UpdateOutput defines the output for updating an NPC
type UpdateOutput struct {
	NPC *entities.NPC
}
