package budget

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"budgetcache.app/internal/core/query"
	"budgetcache.app/internal/ports"
)

// FetchFunc loads the data for a query from the underlying source
type FetchFunc[T any] func(ctx context.Context, q query.Query) (T, error)

// LinesFunc is the fetch signature of budget line sources
type LinesFunc = FetchFunc[[]ports.BudgetLine]

// FromSource adapts a BudgetSource to a FetchFunc
func FromSource(source ports.BudgetSource) LinesFunc {
	return source.FetchBudget
}

// WithBudgetCache wraps fetch with the budget cache. A hit returns the cached
// value; a miss calls fetch and stores only successful results, so a failed
// fetch is retried by the next call. A cached value of another type is
// treated as a miss. A non-positive ttl uses the store default.
func WithBudgetCache[T any](l *Loader, fetch FetchFunc[T], ttl time.Duration) FetchFunc[T] {
	return readThrough(l, fetch, ttl, ports.OriginForeground)
}

// readThrough is WithBudgetCache for a given lookup origin. Only foreground
// lookups reach the performance monitor and the access recorder; background
// ones are exported to cache metrics under their task label only.
func readThrough[T any](l *Loader, fetch FetchFunc[T], ttl time.Duration, origin string) FetchFunc[T] {
	foreground := origin == ports.OriginForeground

	return func(ctx context.Context, q query.Query) (T, error) {
		started := time.Now()

		if data, found := l.store.Get(q); found {
			if value, ok := data.(T); ok {
				l.recordHit(origin, started)
				if foreground {
					l.access.RecordAccess(q)
				}
				return value, nil
			}
			l.logger.Warn("Cached value has unexpected type, refetching",
				ports.F("key", q.Key().String()),
				ports.F("type", fmt.Sprintf("%T", data)))
		}

		l.recordMiss(origin)

		value, err := fetchAndStore(ctx, l, fetch, q, ttl)
		l.metrics.RecordLatency(origin, "fetch", time.Since(started).Seconds())
		if err != nil {
			return value, err
		}

		if foreground {
			l.access.RecordAccess(q)
		}
		return value, nil
	}
}

// fetchAndStore runs fetch and caches its result. With single-flight on,
// concurrent misses share one fetch that is detached from any single
// caller's cancellation; each caller still stops waiting when its own
// context ends.
func fetchAndStore[T any](ctx context.Context, l *Loader, fetch FetchFunc[T], q query.Query, ttl time.Duration) (T, error) {
	if !l.config.SingleFlight {
		value, err := fetch(ctx, q)
		if err != nil {
			return value, err
		}
		l.store.Set(q, value, ttl)
		return value, nil
	}

	var zero T
	flightKey := fmt.Sprintf("%T|%s", zero, q.Key())
	flightCtx := context.WithoutCancel(ctx)

	results := l.group.DoChan(flightKey, func() (interface{}, error) {
		value, err := fetch(flightCtx, q)
		if err != nil {
			return nil, err
		}
		l.store.Set(q, value, ttl)
		return value, nil
	})

	var result singleflight.Result
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case result = <-results:
	}

	if result.Err != nil {
		return zero, result.Err
	}
	if result.Shared {
		l.logger.Debug("Joined in-flight fetch", ports.F("key", q.Key().String()))
	}

	value, ok := result.Val.(T)
	if !ok {
		return zero, fmt.Errorf("in-flight fetch for %s returned %T", q.Key(), result.Val)
	}
	return value, nil
}
