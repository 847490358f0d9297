package store

import (
	"context"

	"github.com/phrazzld/taskboard-api/internal/domain"
)

// UserStore defines the interface for user persistence.
type UserStore interface {
	// FindAll returns every user in a stable order.
	FindAll(ctx context.Context) ([]domain.User, error)

	// FindByID retrieves a user by their ID.
	// Returns ErrUserNotFound if the user does not exist.
	FindByID(ctx context.Context, id string) (*domain.User, error)

	// Save inserts or replaces a user. When user.ID is empty a new ID is
	// generated and written back into user.
	Save(ctx context.Context, user *domain.User) error

	// Delete removes a user by ID. Tasks that reference the user are left as they are.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id string) error

	// ExistsByID reports whether a user with the given ID exists.
	ExistsByID(ctx context.Context, id string) (bool, error)
}
