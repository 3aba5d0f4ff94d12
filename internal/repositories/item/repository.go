// Package item stores inventory stacks, both personal and communal
package item

//go:generate mockgen -destination=mock/mock_repository.go -package=itemmock github.com/KirkDiggler/agent-sandbox/internal/repositories/item Repository

import (
	"context"

	"github.com/KirkDiggler/agent-sandbox/internal/entities"
)

// Repository defines the interface for item persistence.
// Lists are always ordered by item ID.
type Repository interface {
	// Create stores a new item
	// Returns errors.AlreadyExists if the ID is taken
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves an item by ID
	// Returns errors.NotFound if the item doesn't exist
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// ListByOwner returns the items held by one owner; an empty OwnerID
	// lists the communal stock
	ListByOwner(ctx context.Context, input ListByOwnerInput) (*ListByOwnerOutput, error)

	// List returns every item
	List(ctx context.Context, input ListInput) (*ListOutput, error)

	// Update replaces an item, moving it between owner indexes if needed
	// Returns errors.NotFound if the item doesn't exist
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete removes an item
	// Returns errors.NotFound if the item doesn't exist
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// CreateInput defines the input for creating an item
type CreateInput struct {
	Item *entities.Item
}

// CreateOutput defines the output for creating an item
type CreateOutput struct {
	Item *entities.Item
}

// GetInput defines the input for getting an item
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting an item
type GetOutput struct {
	Item *entities.Item
}

// ListByOwnerInput defines the input for listing an owner's items
type ListByOwnerInput struct {
	OwnerID string
}

// ListByOwnerOutput defines the output for listing an owner's items
type ListByOwnerOutput struct {
	Items []*entities.Item
}

// ListInput defines the input for listing all items
type ListInput struct{}

// ListOutput defines the output for listing all items
type ListOutput struct {
	Items []*entities.Item
}

// UpdateInput defines the input for updating an item
type UpdateInput struct {
	Item *entities.Item
}

// UpdateOutput defines the output for updating an item
type UpdateOutput struct {
	Item *entities.Item
}

// DeleteInput defines the input for deleting an item
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting an item
type DeleteOutput struct{}
