package ports

import "budgetcache.app/internal/core/query"

// AccessRecorder observes successful cache cycles for prefetch decisions
type AccessRecorder interface {
	RecordAccess(q query.Query)
}

// PerformanceRecorder receives cache and network signals for adaptive tuning
type PerformanceRecorder interface {
	RecordCacheHit()
	RecordCacheMiss()
	RecordAPICall()
}

// MemoryRecorder receives heap usage samples in bytes
type MemoryRecorder interface {
	RecordMemoryUsage(bytes uint64)
}
