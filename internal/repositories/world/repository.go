// Package world stores the singleton world state and the turn lock
package world

//go:generate mockgen -destination=mock/mock_repository.go -package=worldmock github.com/KirkDiggler/agent-sandbox/internal/repositories/world Repository

import (
	"context"
	"time"

	"github.com/KirkDiggler/agent-sandbox/internal/entities"
)

// Repository defines the interface for world state persistence
type Repository interface {
	// Get reads the world state
	// Returns errors.NotFound if the world has not been seeded
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Put overwrites the whole world state
	Put(ctx context.Context, input PutInput) (*PutOutput, error)

	// IncrementTurn atomically advances the turn counter
	IncrementTurn(ctx context.Context, input IncrementTurnInput) (*IncrementTurnOutput, error)

	// AddConstruction atomically adds to construction progress
	AddConstruction(ctx context.Context, input AddConstructionInput) (*AddConstructionOutput, error)

	// AcquireTurnLock takes the single-writer turn lock
	// Returns errors.Aborted if another holder has it
	AcquireTurnLock(ctx context.Context, input AcquireTurnLockInput) (*AcquireTurnLockOutput, error)

	// ReleaseTurnLock drops the lock if Token still owns it
	ReleaseTurnLock(ctx context.Context, input ReleaseTurnLockInput) (*ReleaseTurnLockOutput, error)
}

// GetInput defines the input for reading the world state
type GetInput struct{}

// GetOutput defines the output for reading the world state
type GetOutput struct {
	World *entities.WorldState
}

// PutInput defines the input for writing the world state
type PutInput struct {
	World *entities.WorldState
}

// PutOutput defines the output for writing the world state
type PutOutput struct {
	World *entities.WorldState
}

// IncrementTurnInput defines the input for advancing the turn
type IncrementTurnInput struct{}

// IncrementTurnOutput defines the output for advancing the turn
type IncrementTurnOutput struct {
	Turn int
}

// AddConstructionInput defines the input for adding construction progress
type AddConstructionInput struct {
	Amount int
}

// AddConstructionOutput defines the output for adding construction progress
type AddConstructionOutput struct {
	ConstructionProgress int
}

// AcquireTurnLockInput defines the input for taking the turn lock
type AcquireTurnLockInput struct {
	Token string
	TTL   time.Duration
}

// AcquireTurnLockOutput defines the output for taking the turn lock
type AcquireTurnLockOutput struct{}

// ReleaseTurnLockInput defines the input for dropping the turn lock
type ReleaseTurnLockInput struct {
	Token string
}

// ReleaseTurnLockOutput defines the output for dropping the turn lock
type ReleaseTurnLockOutput struct {
	// Released is false when the lock had expired or changed hands
	Released bool
}
