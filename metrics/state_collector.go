package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"budgetcache.app/internal/core/performance"
	"budgetcache.app/internal/ports"
)

// PerformanceReporter exposes the monitor snapshot exported by StateCollector
type PerformanceReporter interface {
	Report() performance.Report
}

// StateCollector exports store occupancy and the performance monitor state on every scrape
type StateCollector struct {
	store    ports.BudgetStore
	reporter PerformanceReporter

	entries      *prometheus.Desc
	capacity     *prometheus.Desc
	evictions    *prometheus.Desc
	expirations  *prometheus.Desc
	hitRatio     *prometheus.Desc
	score        *prometheus.Desc
	hitRate      *prometheus.Desc
	renderTime   *prometheus.Desc
	memoryUsage  *prometheus.Desc
	networkCalls *prometheus.Desc
	flag         *prometheus.Desc
}

var _ prometheus.Collector = (*StateCollector)(nil)

func NewStateCollector(store ports.BudgetStore, reporter PerformanceReporter) *StateCollector {
	return &StateCollector{
		store:    store,
		reporter: reporter,

		entries:      prometheus.NewDesc("budget_cache_entries", "Entries held by the budget cache", []string{"state"}, nil),
		capacity:     prometheus.NewDesc("budget_cache_capacity", "Maximum number of budget cache entries", nil, nil),
		evictions:    prometheus.NewDesc("budget_cache_evictions_total", "Entries evicted to respect capacity", nil, nil),
		expirations:  prometheus.NewDesc("budget_cache_expirations_total", "Entries dropped after their TTL elapsed", nil, nil),
		hitRatio:     prometheus.NewDesc("budget_cache_hit_ratio", "Hits over lookups seen by the budget cache", nil, nil),
		score:        prometheus.NewDesc("budget_performance_score", "Performance score from 0 to 100", nil, nil),
		hitRate:      prometheus.NewDesc("budget_performance_hit_rate", "Hit rate seen by the performance monitor", nil, nil),
		renderTime:   prometheus.NewDesc("budget_performance_render_seconds", "Rolling average render time in seconds", nil, nil),
		memoryUsage:  prometheus.NewDesc("budget_performance_memory_bytes", "Rolling average heap usage in bytes", nil, nil),
		networkCalls: prometheus.NewDesc("budget_performance_network_calls", "Fetches issued on cache misses", nil, nil),
		flag:         prometheus.NewDesc("budget_performance_strategy_enabled", "Adaptive strategy flags (1 when on)", []string{"strategy"}, nil),
	}
}

func (c *StateCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.entries
	ch <- c.capacity
	ch <- c.evictions
	ch <- c.expirations
	ch <- c.hitRatio
	ch <- c.score
	ch <- c.hitRate
	ch <- c.renderTime
	ch <- c.memoryUsage
	ch <- c.networkCalls
	ch <- c.flag
}

func (c *StateCollector) Collect(ch chan<- prometheus.Metric) {
	stats := c.store.Stats()
	ch <- prometheus.MustNewConstMetric(c.entries, prometheus.GaugeValue, float64(stats.Size), "stored")
	ch <- prometheus.MustNewConstMetric(c.entries, prometheus.GaugeValue, float64(stats.ValidEntries), "valid")
	ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(stats.Capacity))
	ch <- prometheus.MustNewConstMetric(c.evictions, prometheus.CounterValue, float64(stats.Evictions))
	ch <- prometheus.MustNewConstMetric(c.expirations, prometheus.CounterValue, float64(stats.Expirations))
	ch <- prometheus.MustNewConstMetric(c.hitRatio, prometheus.GaugeValue, stats.HitRatio)

	report := c.reporter.Report()
	m := report.Metrics
	ch <- prometheus.MustNewConstMetric(c.score, prometheus.GaugeValue, float64(report.Score))
	ch <- prometheus.MustNewConstMetric(c.hitRate, prometheus.GaugeValue, m.HitRate)
	ch <- prometheus.MustNewConstMetric(c.renderTime, prometheus.GaugeValue, m.AverageRenderTime.Seconds())
	ch <- prometheus.MustNewConstMetric(c.memoryUsage, prometheus.GaugeValue, m.AverageMemoryUsage)
	ch <- prometheus.MustNewConstMetric(c.networkCalls, prometheus.GaugeValue, float64(m.NetworkCalls))

	flags := map[string]bool{
		"aggressive_caching":  m.Flags.AggressiveCaching,
		"data_compression":    m.Flags.DataCompression,
		"animation_reduction": m.Flags.AnimationReduction,
		"memory_optimization": m.Flags.MemoryOptimization,
	}
	for strategy, on := range flags {
		ch <- prometheus.MustNewConstMetric(c.flag, prometheus.GaugeValue, boolToFloat(on), strategy)
	}
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
