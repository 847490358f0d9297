package mocks

import (
	"context"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/service"
)

var _ service.UserService = (*MockUserService)(nil)

// MockUserService implements service.UserService for testing
type MockUserService struct {
	ListUsersFn  func(ctx context.Context) ([]domain.UserWithTasks, error)
	GetUserFn    func(ctx context.Context, id string) (*domain.UserWithTasks, error)
	CreateUserFn func(ctx context.Context, name, email string) (*domain.UserWithTasks, error)
	UpdateUserFn func(ctx context.Context, id string, patch domain.UserPatch) (*domain.UserWithTasks, error)
	DeleteUserFn func(ctx context.Context, id string) error

	User         *domain.UserWithTasks
	Users        []domain.UserWithTasks
	DefaultError error
}

// ListUsers implements the UserService.ListUsers method
func (m *MockUserService) ListUsers(ctx context.Context) ([]domain.UserWithTasks, error) {
	if m.ListUsersFn != nil {
		return m.ListUsersFn(ctx)
	}
	return m.Users, m.DefaultError
}

// GetUser implements the UserService.GetUser method
func (m *MockUserService) GetUser(ctx context.Context, id string) (*domain.UserWithTasks, error) {
	if m.GetUserFn != nil {
		return m.GetUserFn(ctx, id)
	}
	return m.User, m.DefaultError
}

// CreateUser implements the UserService.CreateUser method
func (m *MockUserService) CreateUser(ctx context.Context, name, email string) (*domain.UserWithTasks, error) {
	if m.CreateUserFn != nil {
		return m.CreateUserFn(ctx, name, email)
	}
	return m.User, m.DefaultError
}

// UpdateUser implements the UserService.UpdateUser method
func (m *MockUserService) UpdateUser(ctx context.Context, id string, patch domain.UserPatch) (*domain.UserWithTasks, error) {
	if m.UpdateUserFn != nil {
		return m.UpdateUserFn(ctx, id, patch)
	}
	return m.User, m.DefaultError
}

// DeleteUser implements the UserService.DeleteUser method
func (m *MockUserService) DeleteUser(ctx context.Context, id string) error {
	if m.DeleteUserFn != nil {
		return m.DeleteUserFn(ctx, id)
	}
	return m.DefaultError
}
