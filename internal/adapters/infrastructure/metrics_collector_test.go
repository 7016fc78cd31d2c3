package infrastructure

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budgetcache.app/internal/core/cache"
	"budgetcache.app/internal/core/prefetch"
	"budgetcache.app/internal/core/query"
	"budgetcache.app/internal/ports"
	"budgetcache.app/metrics"
)

type stubPrefetch struct{ stats prefetch.Stats }

func (s stubPrefetch) Stats() prefetch.Stats { return s.stats }

type stubLookups map[string]metrics.LookupCounts

func (s stubLookups) LookupsByOrigin() map[string]metrics.LookupCounts { return s }

func TestMetricsCollectorAdapter_GetMetrics(t *testing.T) {
	store := cache.NewStore(cache.WithCapacity(10))
	compressing := cache.NewCompressingStore(store, cache.DefaultCompressionThreshold, quietLogger(t))
	compressing.Set(query.Query{PeriodID: "p1"}, "small", time.Minute)

	collector := NewMetricsCollectorAdapter(MetricsCollectorConfig{
		Store:       compressing,
		Compression: compressing,
		Prefetch:    stubPrefetch{stats: prefetch.Stats{Scheduled: 2}},
		Lookups:     stubLookups{ports.TaskWarm: {Hits: 3, Misses: 1}},
	})

	result, err := collector.GetMetrics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result["cache"].(ports.CacheStats).Size)
	assert.Equal(t, int64(1), result["compression"].(cache.CompressionStats).Uncompressed)
	assert.Equal(t, int64(2), result["prefetch"].(prefetch.Stats).Scheduled)
	assert.Equal(t, metrics.LookupCounts{Hits: 3, Misses: 1}, result["lookups"].(map[string]metrics.LookupCounts)[ports.TaskWarm])
}

func TestMetricsCollectorAdapter_PartialSources(t *testing.T) {
	collector := NewMetricsCollectorAdapter(MetricsCollectorConfig{Store: cache.NewStore()})

	result, err := collector.GetMetrics(context.Background())
	require.NoError(t, err)
	assert.Contains(t, result, "cache")
	assert.NotContains(t, result, "prefetch")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = collector.GetMetrics(ctx)
	assert.Error(t, err)
}
