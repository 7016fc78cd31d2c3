package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budgetcache.app/internal/core/cache"
	"budgetcache.app/internal/core/performance"
	"budgetcache.app/internal/core/query"
	"budgetcache.app/internal/ports"
)

func TestCacheMetrics_LookupsByOrigin(t *testing.T) {
	m := NewCacheMetrics("lookups_test")

	initial := m.LookupsByOrigin()
	assert.Len(t, initial, len(Origins))
	for _, origin := range Origins {
		assert.Equal(t, LookupCounts{}, initial[origin])
	}

	m.RecordLookup(ports.OriginForeground, true)
	m.RecordLookup(ports.OriginForeground, true)
	m.RecordLookup(ports.OriginForeground, false)
	m.RecordLookup(ports.TaskWarm, false)

	counts := m.LookupsByOrigin()
	assert.Equal(t, LookupCounts{Hits: 2, Misses: 1}, counts[ports.OriginForeground])
	assert.Equal(t, LookupCounts{Misses: 1}, counts[ports.TaskWarm])
	assert.Equal(t, LookupCounts{}, counts[ports.TaskPreload])
}

func TestCacheMetrics_SeparatesCacheTypes(t *testing.T) {
	first := NewCacheMetrics("types_test_a")
	second := NewCacheMetrics("types_test_b")
	assert.Same(t, first.vectors, second.vectors)

	first.RecordLookup(ports.TaskPreload, false)

	assert.Equal(t, LookupCounts{Misses: 1}, first.Lookups(ports.TaskPreload))
	assert.Equal(t, LookupCounts{}, second.Lookups(ports.TaskPreload))
}

func TestCacheMetrics_RecordLatency(t *testing.T) {
	m := NewCacheMetrics("latency_test")
	assert.NotPanics(t, func() {
		m.RecordLatency(ports.OriginForeground, "get", 0.001)
		m.RecordLatency(ports.TaskWarm, "fetch", 0.2)
	})
}

func gatherGauges(t *testing.T, collector prometheus.Collector) map[string]float64 {
	t.Helper()

	registry := prometheus.NewRegistry()
	require.NoError(t, registry.Register(collector))

	families, err := registry.Gather()
	require.NoError(t, err)

	values := make(map[string]float64)
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			name := family.GetName()
			for _, label := range metric.GetLabel() {
				name += "/" + label.GetValue()
			}
			if metric.GetGauge() != nil {
				values[name] = metric.GetGauge().GetValue()
			}
			if metric.GetCounter() != nil {
				values[name] = metric.GetCounter().GetValue()
			}
		}
	}
	return values
}

func TestStateCollector(t *testing.T) {
	store := cache.NewStore(cache.WithCapacity(1))
	store.Set(query.Query{PeriodID: "p1"}, "a", time.Minute)
	store.Set(query.Query{PeriodID: "p2"}, "b", time.Minute)
	_, found := store.Get(query.Query{PeriodID: "p2"})
	require.True(t, found)

	monitor := performance.NewMonitor(performance.DefaultPolicy())
	monitor.RecordCacheHit()
	monitor.RecordCacheMiss()
	monitor.RecordAPICall()
	monitor.RecordMemoryUsage(8 * performance.MiB)
	monitor.RecordRenderTime(250 * time.Millisecond)

	values := gatherGauges(t, NewStateCollector(store, monitor))

	assert.Equal(t, float64(1), values["budget_cache_entries/stored"])
	assert.Equal(t, float64(1), values["budget_cache_entries/valid"])
	assert.Equal(t, float64(1), values["budget_cache_capacity"])
	assert.Equal(t, float64(1), values["budget_cache_evictions_total"])
	assert.Equal(t, float64(1), values["budget_cache_hit_ratio"])
	assert.Equal(t, float64(55), values["budget_performance_score"])
	assert.Equal(t, 0.5, values["budget_performance_hit_rate"])
	assert.Equal(t, 0.25, values["budget_performance_render_seconds"])
	assert.Equal(t, float64(8*performance.MiB), values["budget_performance_memory_bytes"])
	assert.Equal(t, float64(1), values["budget_performance_network_calls"])
	assert.Equal(t, float64(1), values["budget_performance_strategy_enabled/aggressive_caching"])
	assert.Equal(t, float64(1), values["budget_performance_strategy_enabled/animation_reduction"])
	assert.Equal(t, float64(0), values["budget_performance_strategy_enabled/data_compression"])
	assert.Equal(t, float64(0), values["budget_performance_strategy_enabled/memory_optimization"])
}
