package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/domain"
)

// getPathID extracts a required path parameter. IDs are opaque strings, so
// the only check is that the value is not blank.
func getPathID(r *http.Request, paramName string) (string, error) {
	id := strings.TrimSpace(chi.URLParam(r, paramName))
	if id == "" {
		return "", domain.NewValidationError(paramName, "is required", nil)
	}
	return id, nil
}

// decodeAndValidate decodes the body into req and runs its validation tags.
func decodeAndValidate(r *http.Request, req interface{}) error {
	if err := shared.DecodeJSON(r, req); err != nil {
		return err
	}
	return shared.ValidateRequest(req)
}
