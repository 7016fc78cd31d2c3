package cache

import (
	"time"

	"budgetcache.app/internal/core/query"
)

// entry is a single cached value. The timestamp is refreshed on every read
// hit, so it doubles as the recency marker for eviction.
type entry struct {
	key       query.Key
	tokens    query.Tokens
	data      interface{}
	timestamp time.Time
	ttl       time.Duration
}

func (e *entry) expired(now time.Time) bool {
	return now.Sub(e.timestamp) >= e.ttl
}
