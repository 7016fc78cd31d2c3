// Package api exposes the budget cache over HTTP: read-through budget queries,
// cache maintenance, performance reports and operational endpoints.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"budgetcache.app/internal/core/performance"
	"budgetcache.app/internal/core/query"
	"budgetcache.app/internal/ports"
	"budgetcache.app/pkg/errors"
	"budgetcache.app/pkg/validation"
)

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Port int
}

// BudgetService is the read-through budget facade the handlers drive
type BudgetService interface {
	Budget(ctx context.Context, q query.Query) ([]ports.BudgetLine, error)
	Preload(periodID string, estudioID *int)
	Warm(periodID string, estudioID *int)
	Invalidate(periodID *string, estudioID *int) int
	Clear()
}

// PerformanceMonitor is the subset of the monitor the handlers read and feed
type PerformanceMonitor interface {
	Metrics() performance.Metrics
	Report() performance.Report
	RecordRenderTime(d time.Duration)
	RecordAnimationPerformance(d time.Duration)
	RecordMemoryUsage(bytes uint64)
	Reset()
}

type MetricsCollector interface {
	GetMetrics(ctx context.Context) (map[string]interface{}, error)
}

// HTTPServerAdapter implements the HTTP server using Gin
type HTTPServerAdapter struct {
	router      *gin.Engine
	config      ServerConfig
	budget      BudgetService
	monitor     PerformanceMonitor
	metrics     MetricsCollector
	deadLetters ports.DeadLetterLog
	health      ports.SystemHealthChecker
}

// ServerOptions represents options for creating the HTTP server
type ServerOptions struct {
	Config           ServerConfig
	BudgetService    BudgetService
	Monitor          PerformanceMonitor
	MetricsCollector MetricsCollector
	DeadLetters      ports.DeadLetterLog
	HealthChecker    ports.SystemHealthChecker
}

// NewHTTPServerAdapter creates a new HTTP server adapter
func NewHTTPServerAdapter(opts ServerOptions) (*HTTPServerAdapter, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server options: %w", err)
	}

	if engine, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := validation.RegisterValidators(engine); err != nil {
			return nil, fmt.Errorf("failed to register validators: %w", err)
		}
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	s := &HTTPServerAdapter{
		router:      router,
		config:      opts.Config,
		budget:      opts.BudgetService,
		monitor:     opts.Monitor,
		metrics:     opts.MetricsCollector,
		deadLetters: opts.DeadLetters,
		health:      opts.HealthChecker,
	}

	s.setupRoutes()
	return s, nil
}

// Validate checks if all required dependencies are provided
func (opts *ServerOptions) Validate() error {
	if opts.BudgetService == nil {
		return errors.NewValidationError("budget service is required")
	}
	if opts.Monitor == nil {
		return errors.NewValidationError("performance monitor is required")
	}
	if opts.MetricsCollector == nil {
		return errors.NewValidationError("metrics collector is required")
	}
	if opts.DeadLetters == nil {
		return errors.NewValidationError("dead letter log is required")
	}
	if opts.HealthChecker == nil {
		return errors.NewValidationError("health checker is required")
	}
	return nil
}

func (s *HTTPServerAdapter) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/budget", s.getBudget)

		cache := api.Group("/cache")
		cache.DELETE("", s.invalidateCache)
		cache.DELETE("/all", s.clearCache)
		cache.POST("/preload", s.preloadCache)
		cache.POST("/warm", s.warmCache)
		cache.GET("/stats", s.getCacheStats)

		perf := api.Group("/performance")
		perf.GET("/metrics", s.getPerformanceMetrics)
		perf.GET("/grade", s.getPerformanceGrade)
		perf.GET("/recommendations", s.getRecommendations)
		perf.POST("/samples", s.recordSamples)
		perf.DELETE("", s.resetPerformance)

		api.GET("/dead-letters", s.getDeadLetters)
		api.GET("/health", s.getHealth)
	}

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// GetRouter returns the router for testing purposes
func (s *HTTPServerAdapter) GetRouter() *gin.Engine {
	return s.router
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()
		slog.Debug("HTTP request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(started).String())
	}
}
