package ports

import (
	"context"

	"github.com/AntonioJadrejci/CroAviationBackend/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts, keyed by
// email.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Insert persists a new user. Returns domain.ErrEmailTaken when the
	// email is already registered; uniqueness is enforced by the store,
	// not by a check-then-insert in application code.
	Insert(ctx context.Context, user *domain.User) (*domain.User, error)
	SetProfileImage(ctx context.Context, email, path string) error
	// IncrementPlaneCount atomically adds delta to the user's plane counter.
	IncrementPlaneCount(ctx context.Context, email string, delta int64) error
	Delete(ctx context.Context, email string) error
}
