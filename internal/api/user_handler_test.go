package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/mocks"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/phrazzld/taskboard-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleUser(taskIDs ...string) *domain.UserWithTasks {
	return &domain.UserWithTasks{
		User:    domain.User{ID: "u1", Name: "Ada", Email: "ada@example.com"},
		TaskIDs: taskIDs,
	}
}

func TestNewUserHandlerRequiresLogger(t *testing.T) {
	assert.Panics(t, func() { NewUserHandler(&mocks.MockUserService{}, nil) })
}

func TestUserHandler_ListUsers(t *testing.T) {
	svc := &mocks.MockUserService{
		Users: []domain.UserWithTasks{*sampleUser("t1", "t2"), *sampleUser()},
	}
	router := newTestRouter(&mocks.MockTaskService{}, svc)

	w := doRequest(t, router, http.MethodGet, "/users", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[
		{"id":"u1","name":"Ada","email":"ada@example.com","taskIds":["t1","t2"]},
		{"id":"u1","name":"Ada","email":"ada@example.com","taskIds":[]}
	]`, w.Body.String())
}

func TestUserHandler_GetUser(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := &mocks.MockUserService{
			GetUserFn: func(ctx context.Context, id string) (*domain.UserWithTasks, error) {
				require.Equal(t, "u1", id)
				return sampleUser("t1"), nil
			},
		}
		router := newTestRouter(&mocks.MockTaskService{}, svc)

		w := doRequest(t, router, http.MethodGet, "/users/u1", "")

		assert.Equal(t, http.StatusOK, w.Code)
		var body UserResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, []string{"t1"}, body.TaskIDs)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &mocks.MockUserService{DefaultError: service.NewServiceError("user", "get", store.ErrUserNotFound)}
		router := newTestRouter(&mocks.MockTaskService{}, svc)

		w := doRequest(t, router, http.MethodGet, "/users/missing", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "user not found", decodeProblem(t, w).Detail)
	})
}

func TestUserHandler_CreateUser(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		var gotName, gotEmail string
		svc := &mocks.MockUserService{
			CreateUserFn: func(ctx context.Context, name, email string) (*domain.UserWithTasks, error) {
				gotName, gotEmail = name, email
				return sampleUser(), nil
			},
		}
		router := newTestRouter(&mocks.MockTaskService{}, svc)

		w := doRequest(t, router, http.MethodPost, "/users", `{"name":"Ada","email":"ada@example.com"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "Ada", gotName)
		assert.Equal(t, "ada@example.com", gotEmail)
		assert.JSONEq(t, `{"id":"u1","name":"Ada","email":"ada@example.com","taskIds":[]}`, w.Body.String())
	})

	t.Run("malformed body", func(t *testing.T) {
		router := newTestRouter(&mocks.MockTaskService{}, &mocks.MockUserService{})

		w := doRequest(t, router, http.MethodPost, "/users", `{"name":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUserHandler_UpdateUser(t *testing.T) {
	var gotPatch domain.UserPatch
	svc := &mocks.MockUserService{
		UpdateUserFn: func(ctx context.Context, id string, patch domain.UserPatch) (*domain.UserWithTasks, error) {
			require.Equal(t, "u1", id)
			gotPatch = patch
			return sampleUser(), nil
		},
	}
	router := newTestRouter(&mocks.MockTaskService{}, svc)

	w := doRequest(t, router, http.MethodPut, "/users/u1", `{"name":"Ada L."}`)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, gotPatch.Name)
	assert.Equal(t, "Ada L.", *gotPatch.Name)
	assert.Nil(t, gotPatch.Email)
}

func TestUserHandler_DeleteUser(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		router := newTestRouter(&mocks.MockTaskService{}, &mocks.MockUserService{})

		w := doRequest(t, router, http.MethodDelete, "/users/u1", "")

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &mocks.MockUserService{DefaultError: service.NewServiceError("user", "delete", store.ErrUserNotFound)}
		router := newTestRouter(&mocks.MockTaskService{}, svc)

		w := doRequest(t, router, http.MethodDelete, "/users/missing", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
