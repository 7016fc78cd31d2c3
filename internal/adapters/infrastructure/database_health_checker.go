package infrastructure

import (
	"context"

	"gorm.io/gorm"

	"budgetcache.app/internal/ports"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
)

// DatabaseHealthChecker pings the budget data source
type DatabaseHealthChecker struct {
	db *gorm.DB
}

// NewDatabaseHealthChecker creates a new database health checker
func NewDatabaseHealthChecker(db *gorm.DB) *DatabaseHealthChecker {
	return &DatabaseHealthChecker{db: db}
}

// Check verifies database connectivity
func (d *DatabaseHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "database",
		Details:   make(map[string]interface{}),
	}

	if d.db == nil {
		return unhealthy(status, "database instance is nil")
	}

	sqlDB, err := d.db.DB()
	if err != nil {
		return unhealthy(status, "failed to get underlying database connection")
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return unhealthy(status, err.Error())
	}

	stats := sqlDB.Stats()
	status.Status = statusHealthy
	status.Details["connected"] = true
	status.Details["open_connections"] = stats.OpenConnections
	status.Details["in_use"] = stats.InUse
	return status
}

// Pinger is satisfied by connection-backed adapters such as the Redis dead-letter log
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingHealthChecker reports a component healthy while its Ping succeeds
type PingHealthChecker struct {
	component string
	pinger    Pinger
}

// NewPingHealthChecker creates a health checker for component backed by pinger
func NewPingHealthChecker(component string, pinger Pinger) *PingHealthChecker {
	return &PingHealthChecker{component: component, pinger: pinger}
}

// Check verifies the component answers a ping
func (p *PingHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: p.component,
		Details:   make(map[string]interface{}),
	}

	if p.pinger == nil {
		return unhealthy(status, p.component+" is not configured")
	}
	if err := p.pinger.Ping(ctx); err != nil {
		return unhealthy(status, err.Error())
	}

	status.Status = statusHealthy
	status.Details["connected"] = true
	return status
}

// CacheHealthChecker reports budget cache occupancy
type CacheHealthChecker struct {
	store ports.BudgetStore
}

// NewCacheHealthChecker creates a health checker for the budget cache
func NewCacheHealthChecker(store ports.BudgetStore) *CacheHealthChecker {
	return &CacheHealthChecker{store: store}
}

// Check reports the cache as unhealthy only when it holds more entries than its capacity
func (c *CacheHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "cache",
		Details:   make(map[string]interface{}),
	}

	if c.store == nil {
		return unhealthy(status, "cache store is nil")
	}

	stats := c.store.Stats()
	status.Details["size"] = stats.Size
	status.Details["capacity"] = stats.Capacity
	status.Details["valid_entries"] = stats.ValidEntries
	status.Details["hit_ratio"] = stats.HitRatio

	if stats.Size > stats.Capacity {
		return unhealthy(status, "cache size exceeds capacity")
	}
	status.Status = statusHealthy
	return status
}

func unhealthy(status ports.HealthStatus, reason string) ports.HealthStatus {
	status.Status = statusUnhealthy
	status.Error = reason
	return status
}
