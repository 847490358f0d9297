package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/store"
	goredis "github.com/redis/go-redis/v9"
)

// taskDoc is the stored JSON form of a domain.Task.
type taskDoc struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	CreationDate time.Time `json:"creationDate"`
	Status       string    `json:"status"`
	AssigneeID   string    `json:"assigneeId,omitempty"`
}

func toTaskDoc(t *domain.Task) taskDoc {
	return taskDoc{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		CreationDate: t.CreationDate.UTC(),
		Status:       string(t.Status),
		AssigneeID:   t.AssigneeID,
	}
}

func (d taskDoc) toDomain() domain.Task {
	return domain.Task{
		ID:           d.ID,
		Title:        d.Title,
		Description:  d.Description,
		CreationDate: d.CreationDate.UTC(),
		Status:       domain.TaskStatus(d.Status),
		AssigneeID:   d.AssigneeID,
	}
}

// TaskStore implements store.TaskStore on Redis.
type TaskStore struct {
	client goredis.UniversalClient
	keys   keys
	logger *slog.Logger
}

var _ store.TaskStore = (*TaskStore)(nil)

// NewTaskStore creates a Redis task store writing under keyPrefix.
// If logger is nil, slog.Default() is used.
func NewTaskStore(client goredis.UniversalClient, keyPrefix string, logger *slog.Logger) *TaskStore {
	if client == nil {
		panic("redis client cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskStore{
		client: client,
		keys:   keys{prefix: keyPrefix},
		logger: logger.With(slog.String("component", "redis_task_store")),
	}
}

// FindAll implements store.TaskStore.FindAll
func (s *TaskStore) FindAll(ctx context.Context) ([]domain.Task, error) {
	return s.listIndex(ctx, s.keys.tasks())
}

// FindByStatus implements store.TaskStore.FindByStatus
func (s *TaskStore) FindByStatus(ctx context.Context, status domain.TaskStatus) ([]domain.Task, error) {
	return s.listIndex(ctx, s.keys.tasksByStatus(string(status)))
}

// FindByAssigneeID implements store.TaskStore.FindByAssigneeID
func (s *TaskStore) FindByAssigneeID(ctx context.Context, userID string) ([]domain.Task, error) {
	if userID == "" {
		return []domain.Task{}, nil
	}
	return s.listIndex(ctx, s.keys.tasksByAssignee(userID))
}

// FindByID implements store.TaskStore.FindByID
func (s *TaskStore) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	raw, err := s.client.Get(ctx, s.keys.task(id)).Bytes()
	if err != nil {
		mapped := mapError(err, store.ErrTaskNotFound)
		if store.IsNotFoundError(mapped) {
			log.Debug("task not found", slog.String("task_id", id))
		} else {
			log.Error("failed to get task", slog.String("task_id", id), slog.String("error", err.Error()))
		}
		return nil, mapped
	}

	var doc taskDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode task %s: %w", id, err)
	}
	task := doc.toDomain()
	return &task, nil
}

// Save implements store.TaskStore.Save
// The document and every index it appears in are rewritten in one MULTI/EXEC.
// If the document changes between WATCH and EXEC the write is dropped and
// store.ErrConflict is returned.
func (s *TaskStore) Save(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		return err
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}

	docKey := s.keys.task(task.ID)
	txf := func(tx *goredis.Tx) error {
		var prev *taskDoc
		raw, err := tx.Get(ctx, docKey).Bytes()
		switch {
		case errors.Is(err, goredis.Nil):
		case err != nil:
			return err
		default:
			prev = &taskDoc{}
			if err := json.Unmarshal(raw, prev); err != nil {
				return fmt.Errorf("failed to decode task %s: %w", task.ID, err)
			}
		}

		var score float64
		if prev == nil {
			seq, err := tx.Incr(ctx, s.keys.seq()).Result()
			if err != nil {
				return err
			}
			score = float64(seq)
		} else {
			task.CreationDate = prev.CreationDate
			if score, err = tx.ZScore(ctx, s.keys.tasks(), task.ID).Result(); err != nil {
				return err
			}
		}

		doc := toTaskDoc(task)
		data, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("failed to encode task %s: %w", task.ID, err)
		}

		member := goredis.Z{Score: score, Member: task.ID}
		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			if prev != nil {
				pipe.ZRem(ctx, s.keys.tasksByStatus(prev.Status), task.ID)
				if prev.AssigneeID != "" {
					pipe.ZRem(ctx, s.keys.tasksByAssignee(prev.AssigneeID), task.ID)
				}
			}
			pipe.Set(ctx, docKey, data, 0)
			pipe.ZAdd(ctx, s.keys.tasks(), member)
			pipe.ZAdd(ctx, s.keys.tasksByStatus(doc.Status), member)
			if doc.AssigneeID != "" {
				pipe.ZAdd(ctx, s.keys.tasksByAssignee(doc.AssigneeID), member)
			}
			return nil
		})
		return err
	}

	if err := s.client.Watch(ctx, txf, docKey); err != nil {
		log.Error("failed to save task", slog.String("task_id", task.ID), slog.String("error", err.Error()))
		return mapError(err, store.ErrTaskNotFound)
	}
	task.CreationDate = task.CreationDate.UTC()

	log.Debug("task saved", slog.String("task_id", task.ID), slog.String("status", task.Status.String()))
	return nil
}

// Delete implements store.TaskStore.Delete
func (s *TaskStore) Delete(ctx context.Context, id string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	docKey := s.keys.task(id)
	txf := func(tx *goredis.Tx) error {
		raw, err := tx.Get(ctx, docKey).Bytes()
		if err != nil {
			return err
		}
		var doc taskDoc
		if err := json.Unmarshal(raw, &doc); err != nil {
			return fmt.Errorf("failed to decode task %s: %w", id, err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Del(ctx, docKey)
			pipe.ZRem(ctx, s.keys.tasks(), id)
			pipe.ZRem(ctx, s.keys.tasksByStatus(doc.Status), id)
			if doc.AssigneeID != "" {
				pipe.ZRem(ctx, s.keys.tasksByAssignee(doc.AssigneeID), id)
			}
			return nil
		})
		return err
	}

	if err := s.client.Watch(ctx, txf, docKey); err != nil {
		mapped := mapError(err, store.ErrTaskNotFound)
		if !store.IsNotFoundError(mapped) {
			log.Error("failed to delete task", slog.String("task_id", id), slog.String("error", err.Error()))
		}
		return mapped
	}

	log.Debug("task deleted", slog.String("task_id", id))
	return nil
}

// ExistsByID implements store.TaskStore.ExistsByID
func (s *TaskStore) ExistsByID(ctx context.Context, id string) (bool, error) {
	n, err := s.client.Exists(ctx, s.keys.task(id)).Result()
	if err != nil {
		return false, mapError(err, store.ErrTaskNotFound)
	}
	return n > 0, nil
}

// listIndex loads the documents whose IDs are in the sorted set at indexKey,
// in score order. IDs whose document has vanished are skipped.
func (s *TaskStore) listIndex(ctx context.Context, indexKey string) ([]domain.Task, error) {
	ids, err := s.client.ZRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read index %s: %w", indexKey, err)
	}

	tasks := make([]domain.Task, 0, len(ids))
	if len(ids) == 0 {
		return tasks, nil
	}

	docKeys := make([]string, len(ids))
	for i, id := range ids {
		docKeys[i] = s.keys.task(id)
	}

	values, err := s.client.MGet(ctx, docKeys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var doc taskDoc
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			return nil, fmt.Errorf("failed to decode task %s: %w", ids[i], err)
		}
		tasks = append(tasks, doc.toDomain())
	}

	return tasks, nil
}
