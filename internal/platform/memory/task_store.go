package memory

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// TaskStore keeps tasks in a map guarded by a RWMutex, in insertion order.
// Values are copied on the way in and out so callers never share state with the store.
type TaskStore struct {
	mu     sync.RWMutex
	tasks  map[string]domain.Task
	order  []string
	logger *slog.Logger
}

var _ store.TaskStore = (*TaskStore)(nil)

// NewTaskStore creates an empty task store. If logger is nil, slog.Default() is used.
func NewTaskStore(logger *slog.Logger) *TaskStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskStore{
		tasks:  make(map[string]domain.Task),
		logger: logger.With(slog.String("component", "memory_task_store")),
	}
}

// FindAll implements store.TaskStore.FindAll
func (s *TaskStore) FindAll(ctx context.Context) ([]domain.Task, error) {
	return s.filter(func(domain.Task) bool { return true }), nil
}

// FindByStatus implements store.TaskStore.FindByStatus
func (s *TaskStore) FindByStatus(ctx context.Context, status domain.TaskStatus) ([]domain.Task, error) {
	return s.filter(func(t domain.Task) bool { return t.Status == status }), nil
}

// FindByAssigneeID implements store.TaskStore.FindByAssigneeID
func (s *TaskStore) FindByAssigneeID(ctx context.Context, userID string) ([]domain.Task, error) {
	return s.filter(func(t domain.Task) bool { return userID != "" && t.AssigneeID == userID }), nil
}

// FindByID implements store.TaskStore.FindByID
func (s *TaskStore) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[id]
	if !ok {
		logger.FromContextOrDefault(ctx, s.logger).Debug("task not found", slog.String("task_id", id))
		return nil, store.ErrTaskNotFound
	}
	return &task, nil
}

// Save implements store.TaskStore.Save
func (s *TaskStore) Save(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if task.ID == "" {
		task.ID = uuid.NewString()
	}

	if existing, ok := s.tasks[task.ID]; ok {
		task.CreationDate = existing.CreationDate
	} else {
		task.CreationDate = task.CreationDate.UTC()
		s.order = append(s.order, task.ID)
	}
	s.tasks[task.ID] = *task

	logger.FromContextOrDefault(ctx, s.logger).Debug("task saved", slog.String("task_id", task.ID))
	return nil
}

// Delete implements store.TaskStore.Delete
func (s *TaskStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return store.ErrTaskNotFound
	}
	delete(s.tasks, id)
	if i := slices.Index(s.order, id); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("task deleted", slog.String("task_id", id))
	return nil
}

// ExistsByID implements store.TaskStore.ExistsByID
func (s *TaskStore) ExistsByID(ctx context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.tasks[id]
	return ok, nil
}

func (s *TaskStore) filter(keep func(domain.Task) bool) []domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Task, 0)
	for _, id := range s.order {
		if t := s.tasks[id]; keep(t) {
			result = append(result, t)
		}
	}
	return result
}
