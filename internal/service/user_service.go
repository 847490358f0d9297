package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/store"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentJoins bounds the per-user task lookups ListUsers runs at once.
const maxConcurrentJoins = 8

// UserService provides user-related operations. Every returned user carries
// the IDs of the tasks currently assigned to it.
type UserService interface {
	// ListUsers returns every user with its task IDs
	ListUsers(ctx context.Context) ([]domain.UserWithTasks, error)

	// GetUser retrieves a user by their ID
	GetUser(ctx context.Context, id string) (*domain.UserWithTasks, error)

	// CreateUser creates a new user with the specified name and email
	CreateUser(ctx context.Context, name, email string) (*domain.UserWithTasks, error)

	// UpdateUser merges patch into the stored user
	UpdateUser(ctx context.Context, id string, patch domain.UserPatch) (*domain.UserWithTasks, error)

	// DeleteUser deletes a user by their ID.
	// Tasks assigned to the user keep their assignee reference.
	DeleteUser(ctx context.Context, id string) error
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore store.UserStore
	taskStore store.TaskStore
	logger    *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userStore store.UserStore, taskStore store.TaskStore, logger *slog.Logger) UserService {
	return &UserServiceImpl{
		userStore: userStore,
		taskStore: taskStore,
		logger:    logger,
	}
}

func (s *UserServiceImpl) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, s.logger).With("component", "user_service")
}

// taskIDs performs the reverse join through the task store's assignee index.
func (s *UserServiceImpl) taskIDs(ctx context.Context, userID string) ([]string, error) {
	tasks, err := s.taskStore.FindByAssigneeID(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(tasks))
	for _, task := range tasks {
		ids = append(ids, task.ID)
	}
	return ids, nil
}

func (s *UserServiceImpl) withTasks(ctx context.Context, user domain.User) (*domain.UserWithTasks, error) {
	ids, err := s.taskIDs(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &domain.UserWithTasks{User: user, TaskIDs: ids}, nil
}

// ListUsers joins every user against the task store. The lookups run in
// parallel but the result keeps the store's user order.
func (s *UserServiceImpl) ListUsers(ctx context.Context) ([]domain.UserWithTasks, error) {
	log := s.log(ctx)

	users, err := s.userStore.FindAll(ctx)
	if err != nil {
		logFailure(log, "failed to list users", err)
		return nil, NewServiceError("user", "list", err)
	}

	result := make([]domain.UserWithTasks, len(users))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentJoins)
	for i, user := range users {
		i, user := i, user
		g.Go(func() error {
			ids, err := s.taskIDs(gctx, user.ID)
			if err != nil {
				return err
			}
			result[i] = domain.UserWithTasks{User: user, TaskIDs: ids}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logFailure(log, "failed to collect task IDs for users", err)
		return nil, NewServiceError("user", "list", err)
	}

	log.Debug("listed users", "count", len(result))
	return result, nil
}

// GetUser retrieves a user by their ID
func (s *UserServiceImpl) GetUser(ctx context.Context, id string) (*domain.UserWithTasks, error) {
	log := s.log(ctx)

	user, err := s.userStore.FindByID(ctx, id)
	if err != nil {
		logFailure(log, "failed to retrieve user", err, "user_id", id)
		return nil, NewServiceError("user", "get", err)
	}

	joined, err := s.withTasks(ctx, *user)
	if err != nil {
		logFailure(log, "failed to collect task IDs for user", err, "user_id", id)
		return nil, NewServiceError("user", "get", err)
	}

	log.Debug("retrieved user successfully",
		"user_id", id,
		"task_count", len(joined.TaskIDs))

	return joined, nil
}

// CreateUser creates a new user. No task can reference it yet, so TaskIDs is empty.
func (s *UserServiceImpl) CreateUser(ctx context.Context, name, email string) (*domain.UserWithTasks, error) {
	log := s.log(ctx)

	user := domain.NewUser(name, email)
	if err := s.userStore.Save(ctx, user); err != nil {
		logFailure(log, "failed to save new user", err)
		return nil, NewServiceError("user", "create", err)
	}

	log.Info("user created successfully", "user_id", user.ID)

	return &domain.UserWithTasks{User: *user, TaskIDs: []string{}}, nil
}

// UpdateUser follows the pattern of getting the complete user first, merging
// the present fields, and saving the complete user back.
func (s *UserServiceImpl) UpdateUser(ctx context.Context, id string, patch domain.UserPatch) (*domain.UserWithTasks, error) {
	log := s.log(ctx)

	user, err := s.userStore.FindByID(ctx, id)
	if err != nil {
		logFailure(log, "failed to retrieve user for update", err, "user_id", id)
		return nil, NewServiceError("user", "update", err)
	}

	user.ApplyPatch(patch)

	if err := s.userStore.Save(ctx, user); err != nil {
		logFailure(log, "failed to save updated user", err, "user_id", id)
		return nil, NewServiceError("user", "update", err)
	}

	joined, err := s.withTasks(ctx, *user)
	if err != nil {
		logFailure(log, "failed to collect task IDs for user", err, "user_id", id)
		return nil, NewServiceError("user", "update", err)
	}

	log.Info("user updated successfully", "user_id", id)
	return joined, nil
}

// DeleteUser deletes a user by their ID
func (s *UserServiceImpl) DeleteUser(ctx context.Context, id string) error {
	log := s.log(ctx)

	if err := s.userStore.Delete(ctx, id); err != nil {
		logFailure(log, "failed to delete user", err, "user_id", id)
		return NewServiceError("user", "delete", err)
	}

	log.Info("user deleted successfully", "user_id", id)
	return nil
}
