package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"budgetcache.app/internal/adapters/api"
	"budgetcache.app/internal/adapters/infrastructure"
	"budgetcache.app/internal/config"
	"budgetcache.app/internal/core/budget"
	"budgetcache.app/internal/core/cache"
	"budgetcache.app/internal/core/performance"
	"budgetcache.app/internal/core/prefetch"
	"budgetcache.app/internal/core/query"
	"budgetcache.app/internal/ports"
	"budgetcache.app/metrics"
)

type Application struct {
	config *config.Config
	deps   *DependencyContainer

	// Core
	monitor    *performance.Monitor
	prefetcher *prefetch.Prefetcher
	loader     *budget.Loader
	service    *budget.Service

	// Adapters
	sampler    *infrastructure.MemorySampler
	httpServer *http.Server
	router     *gin.Engine

	// Infrastructure
	ports *ports.ApplicationPorts
}

// noAccess is the access recorder used when prefetching is disabled
type noAccess struct{}

func (noAccess) RecordAccess(query.Query) {}

func NewApplication() (*Application, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	deps, err := NewDependencyContainer(cfg)
	if err != nil {
		return nil, fmt.Errorf("create dependency container: %w", err)
	}

	return NewApplicationWithDependencies(cfg, deps)
}

// NewApplicationWithDependencies creates an application on top of an existing container
func NewApplicationWithDependencies(cfg *config.Config, deps *DependencyContainer) (*Application, error) {
	app := &Application{
		config: cfg,
		deps:   deps,
		ports:  deps.ApplicationPorts(),
	}

	if err := app.initializeCore(); err != nil {
		return nil, fmt.Errorf("initialize core: %w", err)
	}

	if err := app.initializeAdapters(); err != nil {
		return nil, fmt.Errorf("initialize adapters: %w", err)
	}

	return app, nil
}

// PolicyFromConfig converts the performance settings into a monitor policy
func PolicyFromConfig(cfg config.PerformanceConfig) performance.Policy {
	return performance.Policy{
		AggressiveCachingHitRate:  cfg.AggressiveCachingHitRate,
		CompressionMemory:         cfg.CompressionMemoryMB * performance.MiB,
		AnimationReductionRender:  cfg.AnimationReductionRender,
		MemoryOptimizationMemory:  cfg.MemoryOptimizationMB * performance.MiB,
		MemoryOptimizationSamples: cfg.MemoryOptimizationSamples,

		TargetHitRate:     cfg.TargetHitRate,
		MaxRenderTime:     cfg.MaxRenderTime,
		MaxMemory:         cfg.MaxMemoryMB * performance.MiB,
		MaxAnimationFrame: cfg.MaxAnimationFrame,
		MaxNetworkCalls:   cfg.MaxNetworkCalls,

		HitRatePenalty:   cfg.HitRatePenalty,
		RenderPenalty:    cfg.RenderPenalty,
		MemoryPenalty:    cfg.MemoryPenalty,
		AnimationPenalty: cfg.AnimationPenalty,
		NetworkPenalty:   cfg.NetworkPenalty,
	}
}

func (a *Application) initializeCore() error {
	slog.Info("Initializing core components...")

	a.monitor = performance.NewMonitor(PolicyFromConfig(a.config.Performance))

	var access ports.AccessRecorder = noAccess{}
	if a.config.Prefetch.Enabled {
		a.prefetcher = prefetch.NewPrefetcher(
			a.ports.BudgetStore,
			a.ports.BudgetSource,
			a.ports.DeadLetters,
			a.ports.Logger,
			prefetch.Config{
				Threshold: a.config.Prefetch.Threshold,
				Delay:     a.config.Prefetch.Delay,
				TTL:       a.config.Cache.TTL,
			})
		access = a.prefetcher
	}

	loader, err := budget.NewLoader(budget.LoaderDependencies{
		Store:       a.ports.BudgetStore,
		Access:      access,
		Performance: a.monitor,
		Metrics:     a.ports.CacheMetrics,
		DeadLetters: a.ports.DeadLetters,
		Logger:      a.ports.Logger,
	}, budget.Config{
		WarmTTL:        a.config.Cache.WarmTTL,
		WarmStagger:    a.config.Cache.WarmStagger,
		PaymentMethods: a.config.Cache.CommonPaymentMethods,
		SingleFlight:   a.config.Cache.SingleFlight,
	})
	if err != nil {
		return fmt.Errorf("create loader: %w", err)
	}
	a.loader = loader

	service, err := budget.NewService(loader, a.ports.BudgetSource, a.config.Cache.TTL)
	if err != nil {
		return fmt.Errorf("create budget service: %w", err)
	}
	a.service = service

	if a.config.Sampler.Enabled {
		sampler, err := infrastructure.NewMemorySampler(a.monitor, a.ports.Logger, a.config.Sampler.Interval)
		if err != nil {
			return fmt.Errorf("create memory sampler: %w", err)
		}
		a.sampler = sampler
	}

	slog.Info("Core components initialized successfully",
		"prefetch", a.config.Prefetch.Enabled,
		"single_flight", a.config.Cache.SingleFlight)
	return nil
}

func (a *Application) initializeAdapters() error {
	slog.Info("Initializing adapters...")

	if err := registerCollector(metrics.NewStateCollector(a.ports.BudgetStore, a.monitor)); err != nil {
		return fmt.Errorf("register state collector: %w", err)
	}

	collectorConfig := infrastructure.MetricsCollectorConfig{
		Store: a.ports.BudgetStore,
	}
	if compressing, ok := a.ports.BudgetStore.(*cache.CompressingStore); ok {
		collectorConfig.Compression = compressing
	}
	if a.prefetcher != nil {
		collectorConfig.Prefetch = a.prefetcher
	}
	if lookups, ok := a.ports.CacheMetrics.(infrastructure.LookupReporter); ok {
		collectorConfig.Lookups = lookups
	}

	checkers := map[string]ports.HealthChecker{
		"cache": infrastructure.NewCacheHealthChecker(a.ports.BudgetStore),
	}
	if db, ok := a.ports.Database.(*gorm.DB); ok {
		checkers["database"] = infrastructure.NewDatabaseHealthChecker(db)
	}
	if pinger, ok := a.ports.DeadLetters.(infrastructure.Pinger); ok {
		checkers["dead_letters"] = infrastructure.NewPingHealthChecker("dead_letters", pinger)
	}

	httpAdapter, err := api.NewHTTPServerAdapter(api.ServerOptions{
		Config:           api.ServerConfig{Port: a.config.Server.Port},
		BudgetService:    a.service,
		Monitor:          a.monitor,
		MetricsCollector: infrastructure.NewMetricsCollectorAdapter(collectorConfig),
		DeadLetters:      a.ports.DeadLetters,
		HealthChecker:    infrastructure.NewSystemHealthChecker(checkers),
	})
	if err != nil {
		return fmt.Errorf("create HTTP adapter: %w", err)
	}

	a.router = httpAdapter.GetRouter()

	a.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.config.Server.Port),
		Handler:      a.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	slog.Info("Adapters initialized successfully")
	return nil
}

func registerCollector(collector prometheus.Collector) error {
	if err := prometheus.Register(collector); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			prometheus.Unregister(already.ExistingCollector)
			return prometheus.Register(collector)
		}
		return err
	}
	return nil
}

func (a *Application) Start(ctx context.Context) error {
	slog.Info("Starting application...")

	a.deps.Store().Start()
	if a.sampler != nil {
		a.sampler.Start(ctx)
	}

	slog.Info("Starting HTTP server", "port", a.config.Server.Port)
	if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	return nil
}

func (a *Application) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down application...")

	if err := a.httpServer.Shutdown(ctx); err != nil {
		slog.Error("Error shutting down HTTP server", "error", err)
		return fmt.Errorf("shutdown HTTP server: %w", err)
	}

	if a.sampler != nil {
		a.sampler.Stop()
	}

	done := make(chan struct{})
	go func() {
		a.loader.Wait()
		if a.prefetcher != nil {
			a.prefetcher.Wait()
		}
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		slog.Warn("Background cache tasks still running at shutdown deadline")
	}

	if err := a.deps.Cleanup(); err != nil {
		slog.Warn("Error releasing resources", "error", err)
	}

	slog.Info("Application shutdown complete")
	return nil
}

// Config returns the application configuration
func (a *Application) Config() *config.Config {
	return a.config
}

// GetRouter returns the Gin router for testing
func (a *Application) GetRouter() *gin.Engine {
	return a.router
}

// Monitor returns the performance monitor
func (a *Application) Monitor() *performance.Monitor {
	return a.monitor
}

// Loader returns the budget loader
func (a *Application) Loader() *budget.Loader {
	return a.loader
}
