// Package location stores the static places NPCs move between
package location

//go:generate mockgen -destination=mock/mock_repository.go -package=locationmock github.com/KirkDiggler/agent-sandbox/internal/repositories/location Repository

import (
	"context"

	"github.com/KirkDiggler/agent-sandbox/internal/entities"
)

// Repository defines the interface for location persistence
type Repository interface {
	// Create stores a location, replacing any with the same ID
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a location by ID
	// Returns errors.NotFound if the location doesn't exist
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// List returns all locations ordered by ID
	List(ctx context.Context, input ListInput) (*ListOutput, error)
}

// CreateInput defines the input for creating a location
type CreateInput struct {
	Location *entities.Location
}

// CreateOutput defines the output for creating a location
type CreateOutput struct {
	Location *entities.Location
}

// GetInput defines the input for getting a location
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a location
type GetOutput struct {
	Location *entities.Location
}

// ListInput defines the input for listing locations
type ListInput struct{}

// ListOutput defines the output for listing locations
type ListOutput struct {
	Locations []*entities.Location
}
