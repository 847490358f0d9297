package mocks

import (
	"context"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/service"
)

var _ service.TaskService = (*MockTaskService)(nil)

// MockTaskService implements service.TaskService for testing
type MockTaskService struct {
	// Custom behavior functions
	ListTasksFn    func(ctx context.Context, filter service.TaskFilter) ([]domain.Task, error)
	GetTaskFn      func(ctx context.Context, id string) (*domain.Task, error)
	CreateTaskFn   func(ctx context.Context, input service.CreateTaskInput) (*domain.Task, error)
	UpdateTaskFn   func(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)
	DeleteTaskFn   func(ctx context.Context, id string) error
	AssignTaskFn   func(ctx context.Context, taskID, assigneeID string) (*domain.Task, error)
	UnassignTaskFn func(ctx context.Context, taskID string) (*domain.Task, error)

	// Default return values
	Task         *domain.Task
	Tasks        []domain.Task
	DefaultError error
}

// ListTasks implements the TaskService.ListTasks method
func (m *MockTaskService) ListTasks(ctx context.Context, filter service.TaskFilter) ([]domain.Task, error) {
	if m.ListTasksFn != nil {
		return m.ListTasksFn(ctx, filter)
	}
	return m.Tasks, m.DefaultError
}

// GetTask implements the TaskService.GetTask method
func (m *MockTaskService) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	if m.GetTaskFn != nil {
		return m.GetTaskFn(ctx, id)
	}
	return m.Task, m.DefaultError
}

// CreateTask implements the TaskService.CreateTask method
func (m *MockTaskService) CreateTask(ctx context.Context, input service.CreateTaskInput) (*domain.Task, error) {
	if m.CreateTaskFn != nil {
		return m.CreateTaskFn(ctx, input)
	}
	return m.Task, m.DefaultError
}

// UpdateTask implements the TaskService.UpdateTask method
func (m *MockTaskService) UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	if m.UpdateTaskFn != nil {
		return m.UpdateTaskFn(ctx, id, patch)
	}
	return m.Task, m.DefaultError
}

// DeleteTask implements the TaskService.DeleteTask method
func (m *MockTaskService) DeleteTask(ctx context.Context, id string) error {
	if m.DeleteTaskFn != nil {
		return m.DeleteTaskFn(ctx, id)
	}
	return m.DefaultError
}

// AssignTask implements the TaskService.AssignTask method
func (m *MockTaskService) AssignTask(ctx context.Context, taskID, assigneeID string) (*domain.Task, error) {
	if m.AssignTaskFn != nil {
		return m.AssignTaskFn(ctx, taskID, assigneeID)
	}
	return m.Task, m.DefaultError
}

// UnassignTask implements the TaskService.UnassignTask method
func (m *MockTaskService) UnassignTask(ctx context.Context, taskID string) (*domain.Task, error) {
	if m.UnassignTaskFn != nil {
		return m.UnassignTaskFn(ctx, taskID)
	}
	return m.Task, m.DefaultError
}
