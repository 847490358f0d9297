package mocks

import (
	"context"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/store"
	"github.com/stretchr/testify/mock"
)

var (
	_ store.TaskStore = (*TestifyMockTaskStore)(nil)
	_ store.UserStore = (*TestifyMockUserStore)(nil)
)

// TestifyMockTaskStore is a mock of store.TaskStore interface for use with testify/mock
type TestifyMockTaskStore struct {
	mock.Mock
}

func tasksArg(args mock.Arguments) []domain.Task {
	if tasks, ok := args.Get(0).([]domain.Task); ok {
		return tasks
	}
	return nil
}

// FindAll is a mock implementation of store.TaskStore.FindAll
func (m *TestifyMockTaskStore) FindAll(ctx context.Context) ([]domain.Task, error) {
	args := m.Called(ctx)
	return tasksArg(args), args.Error(1)
}

// FindByID is a mock implementation of store.TaskStore.FindByID
func (m *TestifyMockTaskStore) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	args := m.Called(ctx, id)
	if task, ok := args.Get(0).(*domain.Task); ok {
		return task, args.Error(1)
	}
	return nil, args.Error(1)
}

// FindByStatus is a mock implementation of store.TaskStore.FindByStatus
func (m *TestifyMockTaskStore) FindByStatus(ctx context.Context, status domain.TaskStatus) ([]domain.Task, error) {
	args := m.Called(ctx, status)
	return tasksArg(args), args.Error(1)
}

// FindByAssigneeID is a mock implementation of store.TaskStore.FindByAssigneeID
func (m *TestifyMockTaskStore) FindByAssigneeID(ctx context.Context, userID string) ([]domain.Task, error) {
	args := m.Called(ctx, userID)
	return tasksArg(args), args.Error(1)
}

// Save is a mock implementation of store.TaskStore.Save
func (m *TestifyMockTaskStore) Save(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

// Delete is a mock implementation of store.TaskStore.Delete
func (m *TestifyMockTaskStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ExistsByID is a mock implementation of store.TaskStore.ExistsByID
func (m *TestifyMockTaskStore) ExistsByID(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// TestifyMockUserStore is a mock of store.UserStore interface for use with testify/mock
type TestifyMockUserStore struct {
	mock.Mock
}

// FindAll is a mock implementation of store.UserStore.FindAll
func (m *TestifyMockUserStore) FindAll(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if users, ok := args.Get(0).([]domain.User); ok {
		return users, args.Error(1)
	}
	return nil, args.Error(1)
}

// FindByID is a mock implementation of store.UserStore.FindByID
func (m *TestifyMockUserStore) FindByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// Save is a mock implementation of store.UserStore.Save
func (m *TestifyMockUserStore) Save(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// Delete is a mock implementation of store.UserStore.Delete
func (m *TestifyMockUserStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ExistsByID is a mock implementation of store.UserStore.ExistsByID
func (m *TestifyMockUserStore) ExistsByID(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
