package ports

import (
	"time"

	"budgetcache.app/internal/core/query"
)

// BudgetStore defines the contract for the in-process budget data cache
type BudgetStore interface {
	Get(q query.Query) (interface{}, bool)
	Set(q query.Query, data interface{}, ttl time.Duration)
	Delete(q query.Query) bool
	Invalidate(filter query.Filter) int
	Cleanup() int
	Clear()
	Stats() CacheStats
}

// CacheStats represents cache occupancy and performance counters
type CacheStats struct {
	Size         int       `json:"size"`
	Capacity     int       `json:"capacity"`
	ValidEntries int       `json:"valid_entries"`
	Hits         int64     `json:"hits"`
	Misses       int64     `json:"misses"`
	Evictions    int64     `json:"evictions"`
	Expirations  int64     `json:"expirations"`
	HitRatio     float64   `json:"hit_ratio"`
	LastUpdated  time.Time `json:"last_updated"`
}

// OriginForeground labels lookups made on behalf of a caller. Background
// lookups are labelled with their task kind (TaskPreload, TaskWarm).
const OriginForeground = "foreground"

// CacheMetrics defines the contract for exporting cache performance signals
type CacheMetrics interface {
	RecordLookup(origin string, hit bool)
	RecordLatency(origin, operation string, seconds float64)
}
