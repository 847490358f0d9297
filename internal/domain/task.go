package domain

import (
	"strings"
	"time"
)

// TaskStatus is the lifecycle state of a Task.
// Any status may move to any other status; no transition graph is enforced.
type TaskStatus string

// Known task statuses.
const (
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
)

// DefaultTaskStatus is assigned to new tasks whose requested status is absent or unrecognised.
const DefaultTaskStatus = TaskStatusTodo

// TaskStatuses lists every valid status in display order.
var TaskStatuses = []TaskStatus{TaskStatusTodo, TaskStatusInProgress, TaskStatusDone}

// IsValid reports whether s is one of the known statuses.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

// String returns the wire name of the status.
func (s TaskStatus) String() string {
	return string(s)
}

// LookupTaskStatus parses raw case-insensitively, ignoring surrounding whitespace.
// The boolean is false when raw does not name a known status.
func LookupTaskStatus(raw string) (TaskStatus, bool) {
	s := TaskStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", false
	}
	return s, true
}

// ParseTaskStatus parses raw like LookupTaskStatus but never fails:
// blank or unrecognised input yields fallback.
//
// Creation passes DefaultTaskStatus as the fallback; updates pass the task's
// current status so a bad value leaves it unchanged.
func ParseTaskStatus(raw string, fallback TaskStatus) TaskStatus {
	if s, ok := LookupTaskStatus(raw); ok {
		return s
	}
	return fallback
}

// Task is a unit of work with a title, a status and an optional assignee.
type Task struct {
	// ID is assigned by the store on first save and never changes afterwards.
	ID          string
	Title       string
	Description string
	// CreationDate is set once, when the task is created.
	CreationDate time.Time
	Status       TaskStatus
	// AssigneeID is a weak reference to a User. Empty means unassigned.
	// Deleting the user does not clear it.
	AssigneeID string
}

// NewTask builds an unsaved Task from creation input.
// The title is required; the status falls back to DefaultTaskStatus.
// The assignee is taken as given and not checked against the user store.
func NewTask(title, description, status, assigneeID string, now time.Time) (*Task, error) {
	task := &Task{
		Title:        title,
		Description:  description,
		CreationDate: now.UTC(),
		Status:       ParseTaskStatus(status, DefaultTaskStatus),
		AssigneeID:   strings.TrimSpace(assigneeID),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks the invariants of a persistable Task.
func (t *Task) Validate() error {
	if isBlank(t.Title) {
		return NewValidationError("title", "is required", nil)
	}
	if !t.Status.IsValid() {
		return NewValidationError("status", "is not a known task status", ErrInvalidStatus)
	}
	return nil
}

// IsAssigned reports whether the task currently references a user.
func (t *Task) IsAssigned() bool {
	return t.AssigneeID != ""
}

// Assign links the task to the given user ID.
func (t *Task) Assign(userID string) {
	t.AssigneeID = userID
}

// Unassign clears the assignee reference.
func (t *Task) Unassign() {
	t.AssigneeID = ""
}

// Clone returns a copy of the task that shares no state with t.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

// TaskPatch is a partial update of a Task. Nil fields are absent.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *string
	AssigneeID  *string
}

// IsEmpty reports whether the patch would change nothing.
func (p TaskPatch) IsEmpty() bool {
	return !present(p.Title) && !present(p.Description) && !present(p.Status) && !present(p.AssigneeID)
}

// ApplyPatch merges p into t field by field. A field replaces the stored value only
// when it is present and not blank; everything else is left untouched.
// An unrecognised status keeps the current status.
func (t *Task) ApplyPatch(p TaskPatch) {
	if present(p.Title) {
		t.Title = *p.Title
	}
	if present(p.Description) {
		t.Description = *p.Description
	}
	if present(p.Status) {
		t.Status = ParseTaskStatus(*p.Status, t.Status)
	}
	if present(p.AssigneeID) {
		t.AssigneeID = strings.TrimSpace(*p.AssigneeID)
	}
}

func present(s *string) bool {
	return s != nil && !isBlank(*s)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
