package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/store"
)

const taskColumns = `id, title, description, creation_date, status, assignee_id`

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// FindAll implements store.TaskStore.FindAll
func (s *PostgresTaskStore) FindAll(ctx context.Context) ([]domain.Task, error) {
	return s.queryTasks(ctx, "list tasks",
		`SELECT `+taskColumns+` FROM tasks ORDER BY creation_date, id`)
}

// FindByStatus implements store.TaskStore.FindByStatus
func (s *PostgresTaskStore) FindByStatus(ctx context.Context, status domain.TaskStatus) ([]domain.Task, error) {
	return s.queryTasks(ctx, "list tasks by status",
		`SELECT `+taskColumns+` FROM tasks WHERE status = $1 ORDER BY creation_date, id`,
		string(status))
}

// FindByAssigneeID implements store.TaskStore.FindByAssigneeID
func (s *PostgresTaskStore) FindByAssigneeID(ctx context.Context, userID string) ([]domain.Task, error) {
	return s.queryTasks(ctx, "list tasks by assignee",
		`SELECT `+taskColumns+` FROM tasks WHERE assignee_id = $1 ORDER BY creation_date, id`,
		userID)
}

// FindByID implements store.TaskStore.FindByID
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	row := s.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
	task, err := scanTask(row)
	if err != nil {
		mapped := MapError(err, store.ErrTaskNotFound)
		if store.IsNotFoundError(mapped) {
			log.Debug("task not found", slog.String("task_id", id))
		} else {
			log.Error("failed to get task by ID",
				slog.String("error", err.Error()),
				slog.String("task_id", id))
		}
		return nil, mapped
	}

	return task, nil
}

// Save implements store.TaskStore.Save
// A task without an ID is inserted under a freshly generated ID. An existing
// task has every column except creation_date replaced; the stored creation
// date is written back into task.
func (s *PostgresTaskStore) Save(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during save",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID))
		return err
	}

	if task.ID == "" {
		task.ID = uuid.NewString()
	}

	query := `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			status = EXCLUDED.status,
			assignee_id = EXCLUDED.assignee_id
		RETURNING creation_date
	`

	err := s.db.QueryRowContext(ctx, query,
		task.ID,
		task.Title,
		task.Description,
		task.CreationDate.UTC(),
		string(task.Status),
		nullString(task.AssigneeID),
	).Scan(&task.CreationDate)
	if err != nil {
		log.Error("failed to save task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID))
		return MapError(err, store.ErrTaskNotFound)
	}
	task.CreationDate = task.CreationDate.UTC()

	log.Debug("task saved",
		slog.String("task_id", task.ID),
		slog.String("status", task.Status.String()))
	return nil
}

// Delete implements store.TaskStore.Delete
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) Delete(ctx context.Context, id string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id))
		return MapError(err, store.ErrTaskNotFound)
	}

	if err := CheckRowsAffected(result, store.ErrTaskNotFound); err != nil {
		log.Debug("task not found for deletion", slog.String("task_id", id))
		return err
	}

	log.Debug("task deleted", slog.String("task_id", id))
	return nil
}

// ExistsByID implements store.TaskStore.ExistsByID
func (s *PostgresTaskStore) ExistsByID(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM tasks WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to check task existence",
			slog.String("error", err.Error()),
			slog.String("task_id", id))
		return false, MapError(err, store.ErrTaskNotFound)
	}
	return exists, nil
}

func (s *PostgresTaskStore) queryTasks(ctx context.Context, op, query string, args ...any) ([]domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to "+op, slog.String("error", err.Error()))
		return nil, MapError(err, store.ErrTaskNotFound)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			log.Warn("failed to close rows", slog.String("error", cerr.Error()))
		}
	}()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating task rows", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to %s: %w", op, err)
	}

	return tasks, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		task     domain.Task
		status   string
		assignee sql.NullString
	)

	if err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.CreationDate,
		&status,
		&assignee,
	); err != nil {
		return nil, err
	}

	task.CreationDate = task.CreationDate.UTC()
	task.Status = domain.TaskStatus(status)
	task.AssigneeID = assignee.String
	return &task, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
