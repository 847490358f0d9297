package store

import (
	"context"

	"github.com/phrazzld/taskboard-api/internal/domain"
)

// TaskStore defines the interface for task persistence.
type TaskStore interface {
	// FindAll returns every task, oldest first.
	FindAll(ctx context.Context) ([]domain.Task, error)

	// FindByID retrieves a task by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	FindByID(ctx context.Context, id string) (*domain.Task, error)

	// FindByStatus returns the tasks currently in the given status.
	FindByStatus(ctx context.Context, status domain.TaskStatus) ([]domain.Task, error)

	// FindByAssigneeID returns the tasks whose assignee is userID.
	// An unknown user simply yields an empty slice.
	FindByAssigneeID(ctx context.Context, userID string) ([]domain.Task, error)

	// Save inserts or replaces a task. When task.ID is empty a new ID is
	// generated and written back into task. CreationDate is never changed
	// for an existing task.
	Save(ctx context.Context, task *domain.Task) error

	// Delete removes a task by ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id string) error

	// ExistsByID reports whether a task with the given ID exists.
	ExistsByID(ctx context.Context, id string) (bool, error)
}
