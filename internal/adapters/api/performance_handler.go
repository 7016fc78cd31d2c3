package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"budgetcache.app/internal/core/performance"
	"budgetcache.app/pkg/errors"
)

// GradeResponse represents the performance score and its letter grade
type GradeResponse struct {
	Score int               `json:"score"`
	Grade performance.Grade `json:"grade"`
}

// RecommendationsResponse lists advice for every violated threshold
type RecommendationsResponse struct {
	Recommendations []string `json:"recommendations"`
}

// SampleRequest carries client-side measurements; at least one is required
type SampleRequest struct {
	RenderMs    *float64 `json:"render_ms" binding:"omitempty,gte=0"`
	AnimationMs *float64 `json:"animation_ms" binding:"omitempty,gte=0"`
	MemoryMB    *float64 `json:"memory_mb" binding:"omitempty,gte=0"`
}

// getPerformanceMetrics handles GET /api/performance/metrics requests
func (s *HTTPServerAdapter) getPerformanceMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, s.monitor.Metrics())
}

// getPerformanceGrade handles GET /api/performance/grade requests
func (s *HTTPServerAdapter) getPerformanceGrade(c *gin.Context) {
	report := s.monitor.Report()
	c.JSON(http.StatusOK, GradeResponse{Score: report.Score, Grade: report.Grade})
}

// getRecommendations handles GET /api/performance/recommendations requests
func (s *HTTPServerAdapter) getRecommendations(c *gin.Context) {
	c.JSON(http.StatusOK, RecommendationsResponse{Recommendations: s.monitor.Report().Recommendations})
}

// recordSamples handles POST /api/performance/samples requests
func (s *HTTPServerAdapter) recordSamples(c *gin.Context) {
	var req SampleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Debug("Request binding error", "error", err)
		s.handleError(c, errors.NewValidationError("Invalid request format"))
		return
	}
	if req.RenderMs == nil && req.AnimationMs == nil && req.MemoryMB == nil {
		s.handleError(c, errors.NewValidationError("at least one sample is required"))
		return
	}

	if req.RenderMs != nil {
		s.monitor.RecordRenderTime(millis(*req.RenderMs))
	}
	if req.AnimationMs != nil {
		s.monitor.RecordAnimationPerformance(millis(*req.AnimationMs))
	}
	if req.MemoryMB != nil {
		s.monitor.RecordMemoryUsage(uint64(*req.MemoryMB * performance.MiB))
	}

	c.JSON(http.StatusOK, s.monitor.Metrics())
}

// resetPerformance handles DELETE /api/performance requests
func (s *HTTPServerAdapter) resetPerformance(c *gin.Context) {
	s.monitor.Reset()
	c.JSON(http.StatusOK, SuccessResponse{Message: "Performance metrics reset"})
}

func millis(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}
