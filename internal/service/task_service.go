package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// TaskFilter narrows ListTasks. Empty fields do not filter.
type TaskFilter struct {
	// Status is matched case-insensitively but strictly: an unknown value is a validation error.
	Status     string
	AssigneeID string
}

// CreateTaskInput carries the raw fields of a task creation request.
type CreateTaskInput struct {
	Title       string
	Description string
	Status      string
	AssigneeID  string
}

// TaskService provides the task workflow operations
type TaskService interface {
	// ListTasks returns every task matching filter, oldest first
	ListTasks(ctx context.Context, filter TaskFilter) ([]domain.Task, error)

	// GetTask retrieves a task by its ID
	GetTask(ctx context.Context, id string) (*domain.Task, error)

	// CreateTask validates and stores a new task
	CreateTask(ctx context.Context, input CreateTaskInput) (*domain.Task, error)

	// UpdateTask merges patch into the stored task
	UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)

	// DeleteTask deletes a task by its ID
	DeleteTask(ctx context.Context, id string) error

	// AssignTask links a task to an existing user.
	// The user is checked before the task is read, so a missing user is reported first.
	AssignTask(ctx context.Context, taskID, assigneeID string) (*domain.Task, error)

	// UnassignTask clears a task's assignee
	UnassignTask(ctx context.Context, taskID string) (*domain.Task, error)
}

// TaskServiceImpl implements the TaskService interface
type TaskServiceImpl struct {
	taskStore store.TaskStore
	userStore store.UserStore
	logger    *slog.Logger
	now       func() time.Time
}

// NewTaskService creates a new TaskService
func NewTaskService(taskStore store.TaskStore, userStore store.UserStore, logger *slog.Logger) TaskService {
	return &TaskServiceImpl{
		taskStore: taskStore,
		userStore: userStore,
		logger:    logger,
		now:       time.Now,
	}
}

// log prefers the request-scoped logger so entries carry the trace ID.
func (s *TaskServiceImpl) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, s.logger).With("component", "task_service")
}

// ListTasks returns all tasks, or those matching the status and assignee filters.
// When both filters are set the result is their intersection.
func (s *TaskServiceImpl) ListTasks(ctx context.Context, filter TaskFilter) ([]domain.Task, error) {
	log := s.log(ctx)

	var status domain.TaskStatus
	if strings.TrimSpace(filter.Status) != "" {
		parsed, ok := domain.LookupTaskStatus(filter.Status)
		if !ok {
			log.Debug("rejected unknown status filter", "status", filter.Status)
			return nil, domain.NewValidationError("status", "is not a known task status", domain.ErrInvalidStatus)
		}
		status = parsed
	}
	assigneeID := strings.TrimSpace(filter.AssigneeID)

	var (
		tasks []domain.Task
		err   error
	)
	switch {
	case assigneeID != "":
		tasks, err = s.taskStore.FindByAssigneeID(ctx, assigneeID)
	case status != "":
		tasks, err = s.taskStore.FindByStatus(ctx, status)
	default:
		tasks, err = s.taskStore.FindAll(ctx)
	}
	if err != nil {
		logFailure(log, "failed to list tasks", err,
			"status", status,
			"assignee_id", assigneeID)
		return nil, NewServiceError("task", "list", err)
	}

	if assigneeID != "" && status != "" {
		matched := tasks[:0]
		for _, task := range tasks {
			if task.Status == status {
				matched = append(matched, task)
			}
		}
		tasks = matched
	}

	log.Debug("listed tasks",
		"count", len(tasks),
		"status", status,
		"assignee_id", assigneeID)

	return tasks, nil
}

// GetTask retrieves a task by its ID
func (s *TaskServiceImpl) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	task, err := s.taskStore.FindByID(ctx, id)
	if err != nil {
		logFailure(s.log(ctx), "failed to retrieve task", err, "task_id", id)
		return nil, NewServiceError("task", "get", err)
	}
	return task, nil
}

// CreateTask builds a task from input and saves it. An absent or unknown
// status becomes the default status. The assignee is not checked.
func (s *TaskServiceImpl) CreateTask(ctx context.Context, input CreateTaskInput) (*domain.Task, error) {
	log := s.log(ctx)

	task, err := domain.NewTask(input.Title, input.Description, input.Status, input.AssigneeID, s.now())
	if err != nil {
		log.Debug("rejected invalid task", "error", err)
		return nil, err
	}

	if err := s.taskStore.Save(ctx, task); err != nil {
		logFailure(log, "failed to save new task", err, "title", task.Title)
		return nil, NewServiceError("task", "create", err)
	}

	log.Info("task created",
		"task_id", task.ID,
		"status", task.Status)

	return task, nil
}

// UpdateTask follows the pattern of retrieving the complete task, merging the
// present fields, and saving the complete task back.
func (s *TaskServiceImpl) UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	log := s.log(ctx)

	task, err := s.taskStore.FindByID(ctx, id)
	if err != nil {
		logFailure(log, "failed to retrieve task for update", err, "task_id", id)
		return nil, NewServiceError("task", "update", err)
	}

	if patch.IsEmpty() {
		log.Debug("empty task patch, nothing to save", "task_id", id)
		return task, nil
	}

	task.ApplyPatch(patch)

	if err := s.taskStore.Save(ctx, task); err != nil {
		logFailure(log, "failed to save updated task", err, "task_id", id)
		return nil, NewServiceError("task", "update", err)
	}

	log.Info("task updated",
		"task_id", task.ID,
		"status", task.Status)

	return task, nil
}

// DeleteTask deletes a task by its ID
func (s *TaskServiceImpl) DeleteTask(ctx context.Context, id string) error {
	log := s.log(ctx)

	if err := s.taskStore.Delete(ctx, id); err != nil {
		logFailure(log, "failed to delete task", err, "task_id", id)
		return NewServiceError("task", "delete", err)
	}

	log.Info("task deleted", "task_id", id)
	return nil
}

// AssignTask checks, in order: a non-blank assignee, the user's existence,
// then the task's existence. Each failure stops the chain.
func (s *TaskServiceImpl) AssignTask(ctx context.Context, taskID, assigneeID string) (*domain.Task, error) {
	log := s.log(ctx)

	assigneeID = strings.TrimSpace(assigneeID)
	if assigneeID == "" {
		log.Debug("rejected assignment without assignee", "task_id", taskID)
		return nil, domain.NewValidationError("assigneeId", "is required", ErrAssigneeRequired)
	}

	exists, err := s.userStore.ExistsByID(ctx, assigneeID)
	if err != nil {
		logFailure(log, "failed to check assignee", err, "user_id", assigneeID)
		return nil, NewServiceError("task", "assign", err)
	}
	if !exists {
		log.Debug("assignee does not exist",
			"task_id", taskID,
			"user_id", assigneeID)
		return nil, NewServiceError("task", "assign", store.ErrUserNotFound)
	}

	task, err := s.taskStore.FindByID(ctx, taskID)
	if err != nil {
		logFailure(log, "failed to retrieve task for assignment", err, "task_id", taskID)
		return nil, NewServiceError("task", "assign", err)
	}

	task.Assign(assigneeID)

	if err := s.taskStore.Save(ctx, task); err != nil {
		logFailure(log, "failed to save assigned task", err, "task_id", taskID)
		return nil, NewServiceError("task", "assign", err)
	}

	log.Info("task assigned",
		"task_id", task.ID,
		"user_id", assigneeID)

	return task, nil
}

// UnassignTask clears a task's assignee
func (s *TaskServiceImpl) UnassignTask(ctx context.Context, taskID string) (*domain.Task, error) {
	log := s.log(ctx)

	task, err := s.taskStore.FindByID(ctx, taskID)
	if err != nil {
		logFailure(log, "failed to retrieve task for unassignment", err, "task_id", taskID)
		return nil, NewServiceError("task", "unassign", err)
	}

	task.Unassign()

	if err := s.taskStore.Save(ctx, task); err != nil {
		logFailure(log, "failed to save unassigned task", err, "task_id", taskID)
		return nil, NewServiceError("task", "unassign", err)
	}

	log.Info("task unassigned", "task_id", task.ID)
	return task, nil
}
