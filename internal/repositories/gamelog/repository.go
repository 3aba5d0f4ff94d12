// Package gamelog stores the append-only event log of the world.
// Two backends exist: Redis (the default) and SQLite for a durable
// on-disk history.
package gamelog

//go:generate mockgen -destination=mock/mock_repository.go -package=gamelogmock github.com/KirkDiggler/agent-sandbox/internal/repositories/gamelog Repository

import (
	"context"

	"github.com/KirkDiggler/agent-sandbox/internal/entities"
	"github.com/KirkDiggler/agent-sandbox/internal/errors"
)

// Repository defines the interface for game log persistence
type Repository interface {
	// Append adds an entry. CreatedAt is stamped when zero.
	Append(ctx context.Context, input AppendInput) (*AppendOutput, error)

	// ListRecent returns up to Limit entries, newest first
	ListRecent(ctx context.Context, input ListRecentInput) (*ListRecentOutput, error)
}

// AppendInput defines the input for appending a log entry
type AppendInput struct {
	Log *entities.GameLog
}

// AppendOutput defines the output for appending a log entry
type AppendOutput struct {
	Log *entities.GameLog
}

// ListRecentInput defines the input for listing recent entries
type ListRecentInput struct {
	Limit int
}

// ListRecentOutput defines the output for listing recent entries
type ListRecentOutput struct {
	Logs []*entities.GameLog
}

func validateLog(l *entities.GameLog) error {
	if l == nil {
		return errors.InvalidArgument("log cannot be nil")
	}
	vb := errors.NewValidationBuilder()
	if l.ID == "" {
		vb.RequiredField("id")
	}
	if l.Kind == "" {
		vb.RequiredField("event_type")
	}
	return vb.Build()
}
