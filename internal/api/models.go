package api

import (
	"time"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/service"
)

// CreateTaskRequest defines the payload for POST /tasks.
// Status is optional and falls back to TODO when absent or unknown.
type CreateTaskRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description"`
	Status      string `json:"status"`
	AssigneeID  string `json:"assigneeId"`
}

// UpdateTaskRequest defines the payload for PUT /tasks/{id}.
// Absent or blank fields leave the stored value unchanged.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	AssigneeID  *string `json:"assigneeId"`
}

// AssigneeRequest defines the payload for PUT /tasks/{id}/assignee.
type AssigneeRequest struct {
	AssigneeID string `json:"assigneeId" validate:"required"`
}

// TaskResponse is the wire form of a task.
type TaskResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Status       string    `json:"status"`
	AssigneeID   string    `json:"assigneeId,omitempty"`
	CreationDate time.Time `json:"creationDate"`
}

// CreateUserRequest defines the payload for POST /users.
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UpdateUserRequest defines the payload for PUT /users/{id}.
type UpdateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// UserResponse is the wire form of a user. TaskIDs is always an array.
type UserResponse struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	TaskIDs []string `json:"taskIds"`
}

func (req CreateTaskRequest) toInput() service.CreateTaskInput {
	return service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		AssigneeID:  req.AssigneeID,
	}
}

func (req UpdateTaskRequest) toPatch() domain.TaskPatch {
	return domain.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		AssigneeID:  req.AssigneeID,
	}
}

func (req UpdateUserRequest) toPatch() domain.UserPatch {
	return domain.UserPatch{
		Name:  req.Name,
		Email: req.Email,
	}
}

func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:           task.ID,
		Title:        task.Title,
		Description:  task.Description,
		Status:       task.Status.String(),
		AssigneeID:   task.AssigneeID,
		CreationDate: task.CreationDate.UTC(),
	}
}

func tasksToResponse(tasks []domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, taskToResponse(&tasks[i]))
	}
	return out
}

func userToResponse(user *domain.UserWithTasks) UserResponse {
	taskIDs := user.TaskIDs
	if taskIDs == nil {
		taskIDs = []string{}
	}
	return UserResponse{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		TaskIDs: taskIDs,
	}
}

func usersToResponse(users []domain.UserWithTasks) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, userToResponse(&users[i]))
	}
	return out
}
