package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budgetcache.app/pkg/errors"
)

func TestHTTPServerAdapter_HandleError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	server := &HTTPServerAdapter{}

	tests := []struct {
		name     string
		err      error
		status   int
		expected string
	}{
		{"Validation", errors.NewValidationError("validation failed"), http.StatusBadRequest, "validation failed"},
		{"NotFound", errors.NewNotFoundError("resource not found"), http.StatusNotFound, "resource not found"},
		{"ExternalAPI", errors.NewExternalAPIError("redis unreachable", nil), http.StatusServiceUnavailable, "External service unavailable"},
		{"Cache", errors.NewCacheError("dead letter decode", nil), http.StatusServiceUnavailable, "Cache unavailable"},
		{"Database", errors.NewDatabaseError("connection failed", nil), http.StatusInternalServerError, "Internal server error"},
		{"Configuration", errors.NewConfigurationError("bad config", nil), http.StatusInternalServerError, "Internal server error"},
		{"Unknown", errors.New(errors.ErrorTypeUnknown, "generic error"), http.StatusInternalServerError, "Internal server error"},
		{"Wrapped", fmt.Errorf("fetch: %w", errors.NewValidationError("bad period")), http.StatusBadRequest, "bad period"},
		{"Plain", fmt.Errorf("boom"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/test", func(c *gin.Context) {
				server.handleError(c, tt.err)
			})

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

			assert.Equal(t, tt.status, w.Code)

			var response ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tt.expected, response.Error)
		})
	}
}
