package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"budgetcache.app/internal/ports"
	"budgetcache.app/pkg/errors"
)

const (
	defaultDeadLetterLimit = 50
	maxDeadLetterLimit     = 500
)

// HealthResponse represents the aggregated component health
type HealthResponse struct {
	Status     string                       `json:"status"`
	Components map[string]ports.HealthStatus `json:"components"`
}

// getDeadLetters handles GET /api/dead-letters requests
func (s *HTTPServerAdapter) getDeadLetters(c *gin.Context) {
	limit := defaultDeadLetterLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > maxDeadLetterLimit {
			s.handleError(c, errors.NewValidationError("limit must be between 1 and 500"))
			return
		}
		limit = parsed
	}

	letters, err := s.deadLetters.Recent(c.Request.Context(), limit)
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"dead_letters": letters, "count": len(letters)})
}

// getHealth handles GET /api/health requests
func (s *HTTPServerAdapter) getHealth(c *gin.Context) {
	results := s.health.CheckAll(c.Request.Context())

	status, code := "healthy", http.StatusOK
	for _, result := range results {
		if result.Status != "healthy" {
			status, code = "unhealthy", http.StatusServiceUnavailable
			break
		}
	}

	c.JSON(code, HealthResponse{Status: status, Components: results})
}
