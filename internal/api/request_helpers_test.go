package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requestWithParam(name, value string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/tasks/placeholder", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(name, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestGetPathID(t *testing.T) {
	t.Run("opaque id is returned as is", func(t *testing.T) {
		id, err := getPathID(requestWithParam("id", "u-101"), "id")
		require.NoError(t, err)
		assert.Equal(t, "u-101", id)
	})

	t.Run("blank id", func(t *testing.T) {
		_, err := getPathID(requestWithParam("id", "  "), "id")
		require.Error(t, err)
		assert.True(t, domain.IsValidationError(err))
		assert.Equal(t, "id is required", err.Error())
	})

	t.Run("missing route context", func(t *testing.T) {
		_, err := getPathID(httptest.NewRequest(http.MethodGet, "/tasks/", nil), "id")
		assert.Error(t, err)
	})
}
