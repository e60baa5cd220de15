package repository

import (
	"context"
	"time"

	"exercise-tracker/internal/domain"
)

// LogFilter narrows a log listing. Nil fields mean no restriction; From/To
// bound entries by calendar date inclusively, Limit caps the result from the
// front after date filtering.
type LogFilter struct {
	From  *time.Time
	To    *time.Time
	Limit *int
}

// ExerciseLogRepository exposes persistence operations for a user's exercise log.
type ExerciseLogRepository interface {
	Init(ctx context.Context) error
	// Append stores one entry and increments the owning user's count in the
	// same transaction. Returns ErrNotFound when the user does not exist.
	Append(ctx context.Context, entry *domain.LogEntry) error
	// ListByUser returns the user's entries in append order, narrowed by filter.
	ListByUser(ctx context.Context, userID string, filter LogFilter) ([]domain.LogEntry, error)
}
