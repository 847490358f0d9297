package service

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// Common service errors - sentinel errors used across service implementations.
// These errors represent common conditions that callers may want to check for with errors.Is().
//
// Error handling principles:
// 1. Validation failures are returned as *domain.ValidationError
// 2. Store failures are wrapped in *ServiceError so errors.Is still sees store sentinels
// 3. The API layer maps these errors to HTTP status codes
var (
	// ErrAssigneeRequired indicates an assignment request without a user ID.
	// API layer should map this to HTTP 400 Bad Request.
	ErrAssigneeRequired = errors.New("assignee is required")
)

// ServiceError records which service operation failed.
type ServiceError struct {
	Service string
	Op      string
	Err     error
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s service %s operation failed", e.Service, e.Op)
	}
	return fmt.Sprintf("%s service %s operation failed: %v", e.Service, e.Op, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(service, op string, err error) *ServiceError {
	return &ServiceError{
		Service: service,
		Op:      op,
		Err:     err,
	}
}

// logFailure logs expected outcomes (missing entities, bad input, lost races)
// at debug level and everything else at error level.
func logFailure(logger *slog.Logger, msg string, err error, attrs ...any) {
	if store.IsNotFoundError(err) || store.IsConflictError(err) || domain.IsValidationError(err) {
		logger.Debug(msg, append(attrs, "error", err)...)
		return
	}
	logger.Error(msg, append(attrs, "error", err)...)
}
