package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"

	"budgetcache.app/internal/ports"
)

// Origins lists the lookup origins reported by GetStats
var Origins = []string{ports.OriginForeground, ports.TaskPreload, ports.TaskWarm}

const (
	outcomeHit  = "hit"
	outcomeMiss = "miss"
)

// lookupVectors are registered once per process and shared by every CacheMetrics
type lookupVectors struct {
	lookups *prometheus.CounterVec
	latency *prometheus.HistogramVec
}

var (
	vectors     *lookupVectors
	vectorsOnce sync.Once
)

func sharedVectors() *lookupVectors {
	vectorsOnce.Do(func() {
		vectors = &lookupVectors{
			lookups: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "budget_cache_lookups_total",
					Help: "Budget cache lookups by origin and outcome",
				},
				[]string{"cache_type", "origin", "outcome"},
			),
			latency: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "budget_cache_duration_seconds",
					Help:    "Duration of cache reads and fetches on miss",
					Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .25, .5, 1, 2.5},
				},
				[]string{"cache_type", "origin", "operation"},
			),
		}
	})
	return vectors
}

// LookupCounts is the hit/miss tally of one origin
type LookupCounts struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
}

// CacheMetrics exports read-through lookups to Prometheus, labelled by who
// triggered them. The store keeps the overall hit ratio; this type only adds
// the origin breakdown and fetch latency.
type CacheMetrics struct {
	cacheType string
	vectors   *lookupVectors
}

var _ ports.CacheMetrics = (*CacheMetrics)(nil)

func NewCacheMetrics(cacheType string) *CacheMetrics {
	return &CacheMetrics{
		cacheType: cacheType,
		vectors:   sharedVectors(),
	}
}

func (m *CacheMetrics) RecordLookup(origin string, hit bool) {
	outcome := outcomeMiss
	if hit {
		outcome = outcomeHit
	}
	m.vectors.lookups.WithLabelValues(m.cacheType, origin, outcome).Inc()
}

// RecordLatency observes a "get" (hit) or "fetch" (miss) duration
func (m *CacheMetrics) RecordLatency(origin, operation string, seconds float64) {
	m.vectors.latency.WithLabelValues(m.cacheType, origin, operation).Observe(seconds)
}

// Lookups reads the exported counters back for origin
func (m *CacheMetrics) Lookups(origin string) LookupCounts {
	return LookupCounts{
		Hits:   counterValue(m.vectors.lookups.WithLabelValues(m.cacheType, origin, outcomeHit)),
		Misses: counterValue(m.vectors.lookups.WithLabelValues(m.cacheType, origin, outcomeMiss)),
	}
}

// LookupsByOrigin returns the counts of every known origin
func (m *CacheMetrics) LookupsByOrigin() map[string]LookupCounts {
	counts := make(map[string]LookupCounts, len(Origins))
	for _, origin := range Origins {
		counts[origin] = m.Lookups(origin)
	}
	return counts
}

func counterValue(counter prometheus.Counter) int64 {
	var metric dto.Metric
	if err := counter.Write(&metric); err != nil {
		return 0
	}
	return int64(metric.GetCounter().GetValue())
}
