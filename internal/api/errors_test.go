package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/phrazzld/taskboard-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validatorErrors(t *testing.T) error {
	t.Helper()
	err := shared.ValidateRequest(&AssigneeRequest{})
	require.Error(t, err)
	return err
}

func TestMapErrorToStatusCodeAndMessage(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{
			name:    "domain validation",
			err:     domain.NewValidationError("title", "is required", nil),
			status:  http.StatusBadRequest,
			message: "title is required",
		},
		{
			name:    "assignee required from service",
			err:     domain.NewValidationError("assigneeId", "is required", service.ErrAssigneeRequired),
			status:  http.StatusBadRequest,
			message: "assigneeId is required",
		},
		{
			name:    "invalid status filter",
			err:     domain.NewValidationError("status", "is not a known task status", domain.ErrInvalidStatus),
			status:  http.StatusBadRequest,
			message: "status is not a known task status",
		},
		{
			name:    "malformed body",
			err:     fmt.Errorf("%w: unexpected EOF", shared.ErrInvalidBody),
			status:  http.StatusBadRequest,
			message: "malformed request body: unexpected EOF",
		},
		{
			name:    "struct validation",
			err:     validatorErrors(t),
			status:  http.StatusBadRequest,
			message: "assigneeId is required",
		},
		{
			name:    "store rejected entity",
			err:     fmt.Errorf("%w: check constraint violation (tasks_title_check)", store.ErrInvalidEntity),
			status:  http.StatusBadRequest,
			message: "Invalid entity data",
		},
		{
			name:    "task not found",
			err:     service.NewServiceError("task", "get", store.ErrTaskNotFound),
			status:  http.StatusNotFound,
			message: "task not found",
		},
		{
			name:    "user not found during assignment",
			err:     service.NewServiceError("task", "assign", store.ErrUserNotFound),
			status:  http.StatusNotFound,
			message: "user not found",
		},
		{
			name:    "generic not found",
			err:     store.ErrNotFound,
			status:  http.StatusNotFound,
			message: "resource not found",
		},
		{
			name:    "duplicate",
			err:     service.NewServiceError("user", "create", fmt.Errorf("%w: users_pkey", store.ErrDuplicate)),
			status:  http.StatusConflict,
			message: "conflict: entity already exists: users_pkey",
		},
		{
			name:    "lost race",
			err:     service.NewServiceError("task", "update", fmt.Errorf("%w: redis: transaction failed", store.ErrConflict)),
			status:  http.StatusConflict,
			message: "conflict: concurrent modification: redis: transaction failed",
		},
		{
			name:    "conflict cause is redacted",
			err:     fmt.Errorf("%w: dial postgres://app:hunter22@db:5432/tasks", store.ErrConflict),
			status:  http.StatusConflict,
			message: "conflict: concurrent modification: dial postgres://[REDACTED_CREDENTIAL]@db:5432/tasks",
		},
		{
			name:    "unexpected",
			err:     service.NewServiceError("task", "list", errors.New("pq: relation \"tasks\" does not exist")),
			status:  http.StatusInternalServerError,
			message: "An unexpected error occurred",
		},
		{
			name:    "nil",
			err:     nil,
			status:  http.StatusInternalServerError,
			message: "An unexpected error occurred",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.status, MapErrorToStatusCode(tc.err))
			assert.Equal(t, tc.message, GetSafeErrorMessage(tc.err))
		})
	}
}

func TestProblemTitle(t *testing.T) {
	assert.Equal(t, "Bad Request", ProblemTitle(http.StatusBadRequest))
	assert.Equal(t, "Not Found", ProblemTitle(http.StatusNotFound))
	assert.Equal(t, "Conflict", ProblemTitle(http.StatusConflict))
	assert.Equal(t, "Internal Server Error", ProblemTitle(http.StatusInternalServerError))
	assert.Equal(t, "Service Unavailable", ProblemTitle(http.StatusServiceUnavailable))
	assert.Equal(t, "Error", ProblemTitle(599))
}

func TestSanitizeValidationError(t *testing.T) {
	type payload struct {
		Title  string `json:"title"  validate:"required"`
		Email  string `json:"email"  validate:"omitempty,email"`
		Status string `json:"status" validate:"omitempty,oneof=TODO DONE"`
		Notes  string `json:"notes"  validate:"max=3"`
	}

	err := shared.ValidateRequest(&payload{Email: "nope", Status: "OPEN", Notes: "long"})
	var fieldErrs validator.ValidationErrors
	require.True(t, errors.As(err, &fieldErrs))

	assert.Equal(t,
		"title is required; email must be a valid email address; status must be one of: TODO DONE; notes must be at most 3 characters",
		SanitizeValidationError(fieldErrs))
	assert.Equal(t, "Validation error", SanitizeValidationError(nil))
}

func TestHandleAPIError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/tasks/t1", nil)
	w := httptest.NewRecorder()

	HandleAPIError(w, req, service.NewServiceError("task", "get", store.ErrTaskNotFound))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, shared.ProblemContentType, w.Header().Get("Content-Type"))

	var problem shared.Problem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &problem))
	assert.Equal(t, http.StatusNotFound, problem.Status)
	assert.Equal(t, "Not Found", problem.Title)
	assert.Equal(t, "task not found", problem.Detail)
	assert.Equal(t, "/tasks/t1", problem.Instance)
	assert.NotEmpty(t, problem.Timestamp)
}
