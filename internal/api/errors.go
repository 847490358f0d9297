package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/redact"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/phrazzld/taskboard-api/internal/store"
)

const genericErrorMessage = "An unexpected error occurred"

// isBadRequest reports whether err was caused by client input.
func isBadRequest(err error) bool {
	var fieldErrs validator.ValidationErrors
	return domain.IsValidationError(err) ||
		errors.Is(err, shared.ErrInvalidBody) ||
		errors.Is(err, store.ErrInvalidEntity) ||
		errors.As(err, &fieldErrs)
}

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusInternalServerError

	// Bad request errors
	case isBadRequest(err):
		return http.StatusBadRequest

	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case store.IsConflictError(err):
		return http.StatusConflict

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// ProblemTitle returns the problem title for a status code.
func ProblemTitle(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "Bad Request"
	case http.StatusNotFound:
		return "Not Found"
	case http.StatusConflict:
		return "Conflict"
	case http.StatusInternalServerError:
		return "Internal Server Error"
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return "Error"
}

// GetSafeErrorMessage returns the problem detail for err. Validation
// messages are passed through because they only describe client input.
// Conflicts include the redacted store cause. Everything else gets a
// fixed message.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return genericErrorMessage
	}

	var (
		fieldErrs validator.ValidationErrors
		vErr      *domain.ValidationError
	)

	switch {
	case errors.As(err, &fieldErrs):
		return SanitizeValidationError(fieldErrs)

	case errors.As(err, &vErr):
		return vErr.Error()

	case errors.Is(err, shared.ErrInvalidBody):
		return err.Error()

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	case errors.Is(err, store.ErrTaskNotFound):
		return "task not found"

	case errors.Is(err, store.ErrUserNotFound):
		return "user not found"

	case errors.Is(err, store.ErrNotFound):
		return "resource not found"

	case store.IsConflictError(err):
		return "conflict: " + redact.Error(rootCause(err))

	default:
		return genericErrorMessage
	}
}

// rootCause strips the service operation prefix so conflict details show the
// store's own message.
func rootCause(err error) error {
	var sErr *service.ServiceError
	if errors.As(err, &sErr) && sErr.Err != nil {
		return sErr.Err
	}
	return err
}

// SanitizeValidationError turns validator field errors into a single
// client-facing message such as "title is required".
func SanitizeValidationError(errs validator.ValidationErrors) string {
	if len(errs) == 0 {
		return "Validation error"
	}

	msgs := make([]string, 0, len(errs))
	for _, fe := range errs {
		msgs = append(msgs, fmt.Sprintf("%s %s", fe.Field(), getValidationTagMessage(fe.Tag(), fe.Param())))
	}
	return strings.Join(msgs, "; ")
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag, param string) string {
	switch tag {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "max":
		return "must be at most " + param + " characters"
	case "oneof":
		return "must be one of: " + param
	default:
		return "is invalid"
	}
}

// HandleAPIError writes the problem response for err.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	shared.RespondWithProblem(w, r, status, ProblemTitle(status), GetSafeErrorMessage(err), err)
}
