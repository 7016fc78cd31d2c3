package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"budgetcache.app/pkg/errors"
)

// ScopeRequest selects the period, and optionally the estudio, a background task covers
type ScopeRequest struct {
	PeriodID  string `json:"period_id" binding:"required,period"`
	EstudioID *int   `json:"estudio_id" binding:"omitempty,min=1"`
}

// InvalidateResponse reports how many entries an invalidation removed
type InvalidateResponse struct {
	Removed int `json:"removed"`
}

// SuccessResponse represents a successful HTTP response
type SuccessResponse struct {
	Message string `json:"message"`
}

// invalidateCache handles DELETE /api/cache requests
func (s *HTTPServerAdapter) invalidateCache(c *gin.Context) {
	period, err := parsePeriod(c.Query("period"))
	if err != nil {
		s.handleError(c, err)
		return
	}
	estudio, err := parseEstudio(c.Query("estudio"))
	if err != nil {
		s.handleError(c, err)
		return
	}
	if period == nil && estudio == nil {
		s.handleError(c, errors.NewValidationError("period or estudio is required; use /api/cache/all to clear everything"))
		return
	}

	removed := s.budget.Invalidate(period, estudio)
	c.JSON(http.StatusOK, InvalidateResponse{Removed: removed})
}

// clearCache handles DELETE /api/cache/all requests
func (s *HTTPServerAdapter) clearCache(c *gin.Context) {
	s.budget.Clear()
	c.JSON(http.StatusOK, SuccessResponse{Message: "Cache cleared"})
}

// preloadCache handles POST /api/cache/preload requests
func (s *HTTPServerAdapter) preloadCache(c *gin.Context) {
	req, ok := s.bindScope(c)
	if !ok {
		return
	}

	s.budget.Preload(req.PeriodID, req.EstudioID)
	c.JSON(http.StatusAccepted, SuccessResponse{Message: "Preload scheduled"})
}

// warmCache handles POST /api/cache/warm requests
func (s *HTTPServerAdapter) warmCache(c *gin.Context) {
	req, ok := s.bindScope(c)
	if !ok {
		return
	}

	s.budget.Warm(req.PeriodID, req.EstudioID)
	c.JSON(http.StatusAccepted, SuccessResponse{Message: "Warm-up scheduled"})
}

func (s *HTTPServerAdapter) bindScope(c *gin.Context) (ScopeRequest, bool) {
	var req ScopeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Debug("Request binding error", "error", err)
		s.handleError(c, errors.NewValidationError("Invalid request format"))
		return req, false
	}
	return req, true
}
