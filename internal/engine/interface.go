// Package engine holds the settlement rules that turn a decision into
// stat changes, items and construction progress. It never touches storage.
package engine

//go:generate mockgen -destination=mock/mock_engine.go -package=enginemock github.com/KirkDiggler/agent-sandbox/internal/engine Engine

import (
	"context"
)

// Engine applies one NPC's chosen action against the rules
type Engine interface {
	// Resolve computes the outcome of a decision. The NPC, location and
	// inventory are read, never modified.
	Resolve(ctx context.Context, input *ResolveInput) (*ResolveOutput, error)

	// GatherSucceeds rolls the gather check for a location
	GatherSucceeds(ctx context.Context, location *GatherCheck) (bool, error)
}
