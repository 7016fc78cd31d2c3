package app

import (
	"fmt"
	"io"
	"log/slog"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"budgetcache.app/internal/adapters/database"
	"budgetcache.app/internal/adapters/external"
	"budgetcache.app/internal/adapters/infrastructure"
	"budgetcache.app/internal/config"
	"budgetcache.app/internal/core/cache"
	"budgetcache.app/internal/ports"
	"budgetcache.app/metrics"
)

type DependencyContainer struct {
	config *config.Config
	db     *gorm.DB
	store  *cache.Store
	ports  *ports.ApplicationPorts
}

// NewDependencyContainer connects to Postgres and builds every port
func NewDependencyContainer(cfg *config.Config) (*DependencyContainer, error) {
	slog.Info("Initializing database connection...")

	db, err := gorm.Open(postgres.Open(cfg.Database.GetDSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	container, err := NewDependencyContainerWithDB(cfg, db)
	if err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
		return nil, err
	}
	return container, nil
}

// NewDependencyContainerWithDB builds every port on top of an open database
func NewDependencyContainerWithDB(cfg *config.Config, db *gorm.DB) (*DependencyContainer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	container := &DependencyContainer{config: cfg, db: db}

	if cfg.Database.AutoMigrate {
		if err := container.runMigrations(); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}

	if err := container.initializePorts(); err != nil {
		return nil, fmt.Errorf("initialize ports: %w", err)
	}

	return container, nil
}

func (c *DependencyContainer) runMigrations() error {
	slog.Info("Running database migrations...")

	if err := c.db.AutoMigrate(&database.BudgetLineModel{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	slog.Info("Database migrations completed successfully")
	return nil
}

func (c *DependencyContainer) initializePorts() error {
	slog.Info("Initializing ports...")

	logger, err := c.newLogger()
	if err != nil {
		return err
	}

	c.store = cache.NewStore(
		cache.WithCapacity(c.config.Cache.Capacity),
		cache.WithDefaultTTL(c.config.Cache.TTL),
		cache.WithCleanupInterval(c.config.Cache.CleanupInterval),
	)

	var store ports.BudgetStore = c.store
	if c.config.Cache.CompressionEnabled {
		store = cache.NewCompressingStore(c.store, c.config.Cache.CompressionThreshold, logger)
		slog.Info("Cache compression enabled", "threshold", c.config.Cache.CompressionThreshold)
	}

	deadLetters, err := external.CreateDeadLetterLog(&c.config.DeadLetter)
	if err != nil {
		return fmt.Errorf("create dead letter log: %w", err)
	}

	slog.Info("Dead letter log initialized",
		"type", c.config.DeadLetter.Type.String(),
		"capacity", c.config.DeadLetter.Capacity)

	c.ports = &ports.ApplicationPorts{
		BudgetSource: database.NewBudgetRepositoryAdapter(c.db),
		BudgetStore:  store,
		CacheMetrics: metrics.NewCacheMetrics("memory"),
		DeadLetters:  deadLetters,
		Logger:       logger,
		Database:     c.db,
	}

	slog.Info("Ports initialized successfully")
	return nil
}

func (c *DependencyContainer) newLogger() (ports.Logger, error) {
	var logger ports.Logger = infrastructure.NewSlogLoggerAdapter(nil)

	if c.config.Log.FilePath == "" {
		return logger, nil
	}

	fileLogger, err := infrastructure.NewFileLoggerAdapter(c.config.Log.FilePath, c.config.Log.Level)
	if err != nil {
		slog.Warn("Failed to create file logger, falling back to slog", "error", err)
		return logger, nil
	}

	slog.Info("File logging enabled", "path", c.config.Log.FilePath)
	return infrastructure.TeeLogger{logger, fileLogger}, nil
}

func (c *DependencyContainer) ApplicationPorts() *ports.ApplicationPorts {
	return c.ports
}

func (c *DependencyContainer) Database() *gorm.DB {
	return c.db
}

// Store returns the bounded store underneath any compression wrapper
func (c *DependencyContainer) Store() *cache.Store {
	return c.store
}

// Cleanup stops the janitor and closes the database and dead-letter connections
func (c *DependencyContainer) Cleanup() error {
	if c.store != nil {
		c.store.Stop()
	}

	if c.ports != nil {
		if closer, ok := c.ports.DeadLetters.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				slog.Warn("Error closing dead letter log", "error", err)
			}
		}
	}

	if c.db != nil {
		if db, err := c.db.DB(); err == nil {
			return db.Close()
		}
	}
	return nil
}
