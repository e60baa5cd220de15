package repository

import (
	"context"
	"errors"

	"exercise-tracker/internal/domain"
)

// ErrNotFound is returned when a referenced record does not exist. Callers
// must check for it with errors.Is before using a lookup result.
var ErrNotFound = errors.New("not found")

// UserRepository defines persistence operations for User entities.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) error
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}
