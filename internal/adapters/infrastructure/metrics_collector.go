package infrastructure

import (
	"context"

	"budgetcache.app/internal/core/cache"
	"budgetcache.app/internal/core/prefetch"
	"budgetcache.app/internal/ports"
	"budgetcache.app/metrics"
)

// CompressionReporter exposes compressing-store counters
type CompressionReporter interface {
	CompressionStats() cache.CompressionStats
}

// PrefetchReporter exposes prefetcher counters
type PrefetchReporter interface {
	Stats() prefetch.Stats
}

// LookupReporter exposes read-through lookup counts by origin
type LookupReporter interface {
	LookupsByOrigin() map[string]metrics.LookupCounts
}

// MetricsCollectorAdapter aggregates cache, compression and prefetch statistics
type MetricsCollectorAdapter struct {
	store       ports.BudgetStore
	compression CompressionReporter
	prefetch    PrefetchReporter
	lookups     LookupReporter
}

// MetricsCollectorConfig holds configuration for creating the metrics collector
type MetricsCollectorConfig struct {
	Store       ports.BudgetStore
	Compression CompressionReporter
	Prefetch    PrefetchReporter
	Lookups     LookupReporter
}

// NewMetricsCollectorAdapter creates a new metrics collector adapter
func NewMetricsCollectorAdapter(config MetricsCollectorConfig) *MetricsCollectorAdapter {
	return &MetricsCollectorAdapter{
		store:       config.Store,
		compression: config.Compression,
		prefetch:    config.Prefetch,
		lookups:     config.Lookups,
	}
}

// GetMetrics returns a snapshot of every configured source. Absent sources are omitted.
func (m *MetricsCollectorAdapter) GetMetrics(ctx context.Context) (map[string]interface{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := make(map[string]interface{})

	if m.store != nil {
		result["cache"] = m.store.Stats()
	}
	if m.compression != nil {
		result["compression"] = m.compression.CompressionStats()
	}
	if m.prefetch != nil {
		result["prefetch"] = m.prefetch.Stats()
	}
	if m.lookups != nil {
		result["lookups"] = m.lookups.LookupsByOrigin()
	}

	return result, nil
}
