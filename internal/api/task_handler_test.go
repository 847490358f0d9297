package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/mocks"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/phrazzld/taskboard-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleTask = &domain.Task{
	ID:           "t1",
	Title:        "Buy milk",
	Description:  "2L",
	CreationDate: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	Status:       domain.TaskStatusTodo,
}

func TestNewTaskHandlerRequiresLogger(t *testing.T) {
	assert.Panics(t, func() { NewTaskHandler(&mocks.MockTaskService{}, nil) })
}

func TestTaskHandler_ListTasks(t *testing.T) {
	t.Run("passes filters and returns array", func(t *testing.T) {
		var gotFilter service.TaskFilter
		svc := &mocks.MockTaskService{
			ListTasksFn: func(ctx context.Context, filter service.TaskFilter) ([]domain.Task, error) {
				gotFilter = filter
				return []domain.Task{*sampleTask}, nil
			},
		}
		router := newTestRouter(svc, &mocks.MockUserService{})

		w := doRequest(t, router, http.MethodGet, "/tasks?status=done&assigneeId=u1", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, service.TaskFilter{Status: "done", AssigneeID: "u1"}, gotFilter)
		var body []TaskResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body, 1)
		assert.Equal(t, "t1", body[0].ID)
	})

	t.Run("empty store gives empty array", func(t *testing.T) {
		router := newTestRouter(&mocks.MockTaskService{}, &mocks.MockUserService{})

		w := doRequest(t, router, http.MethodGet, "/tasks", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("unknown status filter", func(t *testing.T) {
		svc := &mocks.MockTaskService{
			DefaultError: domain.NewValidationError("status", "is not a known task status", domain.ErrInvalidStatus),
		}
		router := newTestRouter(svc, &mocks.MockUserService{})

		w := doRequest(t, router, http.MethodGet, "/tasks?status=OPEN", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		problem := decodeProblem(t, w)
		assert.Equal(t, "Bad Request", problem.Title)
		assert.Equal(t, "status is not a known task status", problem.Detail)
	})
}

func TestTaskHandler_GetTask(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := &mocks.MockTaskService{
			GetTaskFn: func(ctx context.Context, id string) (*domain.Task, error) {
				require.Equal(t, "t1", id)
				return sampleTask, nil
			},
		}
		router := newTestRouter(svc, &mocks.MockUserService{})

		w := doRequest(t, router, http.MethodGet, "/tasks/t1", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t,
			`{"id":"t1","title":"Buy milk","description":"2L","status":"TODO","creationDate":"2024-05-01T10:00:00Z"}`,
			w.Body.String())
	})

	t.Run("not found", func(t *testing.T) {
		svc := &mocks.MockTaskService{DefaultError: service.NewServiceError("task", "get", store.ErrTaskNotFound)}
		router := newTestRouter(svc, &mocks.MockUserService{})

		w := doRequest(t, router, http.MethodGet, "/tasks/missing", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		problem := decodeProblem(t, w)
		assert.Equal(t, "Not Found", problem.Title)
		assert.Equal(t, "task not found", problem.Detail)
		assert.Equal(t, "/tasks/missing", problem.Instance)
	})

	t.Run("internal error does not leak", func(t *testing.T) {
		svc := &mocks.MockTaskService{
			DefaultError: service.NewServiceError("task", "get", errors.New("dial tcp 10.0.0.5:5432: connection refused")),
		}
		router := newTestRouter(svc, &mocks.MockUserService{})

		w := doRequest(t, router, http.MethodGet, "/tasks/t1", "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		problem := decodeProblem(t, w)
		assert.Equal(t, "Internal Server Error", problem.Title)
		assert.Equal(t, "An unexpected error occurred", problem.Detail)
		assert.NotContains(t, w.Body.String(), "10.0.0.5")
	})
}

func TestTaskHandler_CreateTask(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		var gotInput service.CreateTaskInput
		svc := &mocks.MockTaskService{
			CreateTaskFn: func(ctx context.Context, input service.CreateTaskInput) (*domain.Task, error) {
				gotInput = input
				return sampleTask, nil
			},
		}
		router := newTestRouter(svc, &mocks.MockUserService{})

		w := doRequest(t, router, http.MethodPost, "/tasks",
			`{"title":"Buy milk","description":"2L","status":"OPEN","assigneeId":"u-101"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, service.CreateTaskInput{
			Title:       "Buy milk",
			Description: "2L",
			Status:      "OPEN",
			AssigneeID:  "u-101",
		}, gotInput)
		var body TaskResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "t1", body.ID)
		assert.Equal(t, "TODO", body.Status)
	})

	t.Run("missing title is rejected before the service", func(t *testing.T) {
		called := false
		svc := &mocks.MockTaskService{
			CreateTaskFn: func(ctx context.Context, input service.CreateTaskInput) (*domain.Task, error) {
				called = true
				return nil, nil
			},
		}
		router := newTestRouter(svc, &mocks.MockUserService{})

		w := doRequest(t, router, http.MethodPost, "/tasks", `{"description":"2L"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "title is required", decodeProblem(t, w).Detail)
		assert.False(t, called)
	})

	t.Run("blank title rejected by service", func(t *testing.T) {
		svc := &mocks.MockTaskService{DefaultError: domain.NewValidationError("title", "is required", nil)}
		router := newTestRouter(svc, &mocks.MockUserService{})

		w := doRequest(t, router, http.MethodPost, "/tasks", `{"title":"   "}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "title is required", decodeProblem(t, w).Detail)
	})

	t.Run("malformed body", func(t *testing.T) {
		router := newTestRouter(&mocks.MockTaskService{}, &mocks.MockUserService{})

		for _, body := range []string{`{"title":`, `{"title":42}`, `[]`} {
			w := doRequest(t, router, http.MethodPost, "/tasks", body)
			assert.Equal(t, http.StatusBadRequest, w.Code, body)
			assert.Contains(t, decodeProblem(t, w).Detail, "malformed request body", body)
		}
	})

	t.Run("empty body", func(t *testing.T) {
		router := newTestRouter(&mocks.MockTaskService{}, &mocks.MockUserService{})

		w := doRequest(t, router, http.MethodPost, "/tasks", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "malformed request body: body is empty", decodeProblem(t, w).Detail)
	})
}

func TestTaskHandler_UpdateTask(t *testing.T) {
	t.Run("partial update", func(t *testing.T) {
		var gotPatch domain.TaskPatch
		svc := &mocks.MockTaskService{
			UpdateTaskFn: func(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
				require.Equal(t, "t1", id)
				gotPatch = patch
				return sampleTask, nil
			},
		}
		router := newTestRouter(svc, &mocks.MockUserService{})

		w := doRequest(t, router, http.MethodPut, "/tasks/t1", `{"status":"IN_PROGRESS"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, gotPatch.Status)
		assert.Equal(t, "IN_PROGRESS", *gotPatch.Status)
		assert.Nil(t, gotPatch.Title)
		assert.Nil(t, gotPatch.Description)
		assert.Nil(t, gotPatch.AssigneeID)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &mocks.MockTaskService{DefaultError: service.NewServiceError("task", "update", store.ErrTaskNotFound)}
		router := newTestRouter(svc, &mocks.MockUserService{})

		w := doRequest(t, router, http.MethodPut, "/tasks/missing", `{"title":"x"}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("lost race", func(t *testing.T) {
		svc := &mocks.MockTaskService{
			DefaultError: service.NewServiceError("task", "update",
				fmt.Errorf("%w: redis: transaction failed", store.ErrConflict)),
		}
		router := newTestRouter(svc, &mocks.MockUserService{})

		w := doRequest(t, router, http.MethodPut, "/tasks/t1", `{"title":"x"}`)

		assert.Equal(t, http.StatusConflict, w.Code)
		problem := decodeProblem(t, w)
		assert.Equal(t, "Conflict", problem.Title)
		assert.Equal(t, "conflict: concurrent modification: redis: transaction failed", problem.Detail)
	})
}

func TestTaskHandler_DeleteTask(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		var gotID string
		svc := &mocks.MockTaskService{
			DeleteTaskFn: func(ctx context.Context, id string) error {
				gotID = id
				return nil
			},
		}
		router := newTestRouter(svc, &mocks.MockUserService{})

		w := doRequest(t, router, http.MethodDelete, "/tasks/t1", "")

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
		assert.Equal(t, "t1", gotID)
	})

	t.Run("unknown id is 404, not 204", func(t *testing.T) {
		svc := &mocks.MockTaskService{DefaultError: service.NewServiceError("task", "delete", store.ErrTaskNotFound)}
		router := newTestRouter(svc, &mocks.MockUserService{})

		w := doRequest(t, router, http.MethodDelete, "/tasks/missing", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "task not found", decodeProblem(t, w).Detail)
	})
}

func TestTaskHandler_AssignTask(t *testing.T) {
	t.Run("assigned", func(t *testing.T) {
		assigned := sampleTask.Clone()
		assigned.Assign("u1")
		svc := &mocks.MockTaskService{
			AssignTaskFn: func(ctx context.Context, taskID, assigneeID string) (*domain.Task, error) {
				require.Equal(t, "t1", taskID)
				require.Equal(t, "u1", assigneeID)
				return assigned, nil
			},
		}
		router := newTestRouter(svc, &mocks.MockUserService{})

		w := doRequest(t, router, http.MethodPut, "/tasks/t1/assignee", `{"assigneeId":"u1"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		var body TaskResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "u1", body.AssigneeID)
	})

	t.Run("missing assignee is rejected before the service", func(t *testing.T) {
		called := false
		svc := &mocks.MockTaskService{
			AssignTaskFn: func(ctx context.Context, taskID, assigneeID string) (*domain.Task, error) {
				called = true
				return nil, nil
			},
		}
		router := newTestRouter(svc, &mocks.MockUserService{})

		w := doRequest(t, router, http.MethodPut, "/tasks/t1/assignee", `{}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "assigneeId is required", decodeProblem(t, w).Detail)
		assert.False(t, called)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc := &mocks.MockTaskService{DefaultError: service.NewServiceError("task", "assign", store.ErrUserNotFound)}
		router := newTestRouter(svc, &mocks.MockUserService{})

		w := doRequest(t, router, http.MethodPut, "/tasks/t1/assignee", `{"assigneeId":"u1"}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "user not found", decodeProblem(t, w).Detail)
	})
}

func TestTaskHandler_UnassignTask(t *testing.T) {
	t.Run("unassigned", func(t *testing.T) {
		svc := &mocks.MockTaskService{Task: sampleTask}
		router := newTestRouter(svc, &mocks.MockUserService{})

		w := doRequest(t, router, http.MethodDelete, "/tasks/t1/assignee", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "assigneeId")
	})

	t.Run("not found", func(t *testing.T) {
		svc := &mocks.MockTaskService{DefaultError: service.NewServiceError("task", "unassign", store.ErrTaskNotFound)}
		router := newTestRouter(svc, &mocks.MockUserService{})

		w := doRequest(t, router, http.MethodDelete, "/tasks/missing/assignee", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
