// Package budget wires the budget cache into data fetching: a read-through
// wrapper for fetch functions plus the preload, warm and invalidate hooks
// called when the selected period or estudio changes.
package budget

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"budgetcache.app/internal/core/query"
	"budgetcache.app/internal/ports"
	"budgetcache.app/pkg/errors"
)

const (
	DefaultWarmTTL     = 15 * time.Minute
	DefaultWarmStagger = 100 * time.Millisecond
)

// DefaultPaymentMethods are the payment filters preloaded alongside the unscoped query
var DefaultPaymentMethods = []string{"cash", "credit", "debit"}

// Config holds the loader policy
type Config struct {
	// WarmTTL applies to entries stored by WarmSimulateModeCache
	WarmTTL time.Duration
	// WarmStagger delays warm query i by i*WarmStagger
	WarmStagger time.Duration
	// PaymentMethods lists the payment filters treated as common queries
	PaymentMethods []string
	// SingleFlight collapses concurrent misses on one key into a single fetch
	SingleFlight bool
}

type LoaderDependencies struct {
	Store       ports.BudgetStore
	Access      ports.AccessRecorder
	Performance ports.PerformanceRecorder
	Metrics     ports.CacheMetrics
	DeadLetters ports.DeadLetterLog
	Logger      ports.Logger
}

// Loader runs fetches through the budget cache and owns the detached warm-up tasks
type Loader struct {
	store       ports.BudgetStore
	access      ports.AccessRecorder
	performance ports.PerformanceRecorder
	metrics     ports.CacheMetrics
	deadLetters ports.DeadLetterLog
	logger      ports.Logger
	config      Config

	group singleflight.Group
	wg    sync.WaitGroup
}

func NewLoader(deps LoaderDependencies, config Config) (*Loader, error) {
	if deps.Store == nil {
		return nil, errors.NewValidationError("budget store is required")
	}
	if deps.Access == nil {
		return nil, errors.NewValidationError("access recorder is required")
	}
	if deps.Performance == nil {
		return nil, errors.NewValidationError("performance recorder is required")
	}
	if deps.Metrics == nil {
		return nil, errors.NewValidationError("cache metrics are required")
	}
	if deps.DeadLetters == nil {
		return nil, errors.NewValidationError("dead letter log is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}

	if config.WarmTTL <= 0 {
		config.WarmTTL = DefaultWarmTTL
	}
	if config.WarmStagger < 0 {
		config.WarmStagger = DefaultWarmStagger
	}
	if config.PaymentMethods == nil {
		config.PaymentMethods = DefaultPaymentMethods
	}

	return &Loader{
		store:       deps.Store,
		access:      deps.Access,
		performance: deps.Performance,
		metrics:     deps.Metrics,
		deadLetters: deps.DeadLetters,
		logger:      deps.Logger,
		config:      config,
	}, nil
}

// Config returns the effective loader policy
func (l *Loader) Config() Config {
	return l.config
}

// InvalidateBudgetCache drops every entry of the period and/or estudio.
// With both nil it drops everything. Returns the number of entries removed.
func (l *Loader) InvalidateBudgetCache(periodID *string, estudioID *int) int {
	filter := query.Filter{PeriodID: periodID, EstudioID: estudioID}
	removed := l.store.Invalidate(filter)

	fields := []ports.Field{ports.F("removed", removed)}
	if periodID != nil {
		fields = append(fields, ports.F("period_id", *periodID))
	}
	if estudioID != nil {
		fields = append(fields, ports.F("estudio_id", *estudioID))
	}
	l.logger.Info("Budget cache invalidated", fields...)

	return removed
}

// Clear drops every cached entry
func (l *Loader) Clear() {
	l.store.Clear()
	l.logger.Info("Budget cache cleared")
}

// Wait blocks until every detached preload and warm task has finished
func (l *Loader) Wait() {
	l.wg.Wait()
}

// CommonQueries lists the queries a screen for period/estudio issues first:
// the unscoped view and one view per common payment method.
func (l *Loader) CommonQueries(periodID string, estudioID *int) []query.Query {
	queries := make([]query.Query, 0, len(l.config.PaymentMethods)+1)
	queries = append(queries, query.Query{PeriodID: periodID, EstudioID: estudioID})
	for _, method := range l.config.PaymentMethods {
		queries = append(queries, query.Query{PeriodID: periodID, EstudioID: estudioID, PaymentMethod: method})
	}
	return queries
}

func (l *Loader) recordHit(origin string, started time.Time) {
	if origin == ports.OriginForeground {
		l.performance.RecordCacheHit()
	}
	l.metrics.RecordLookup(origin, true)
	l.metrics.RecordLatency(origin, "get", time.Since(started).Seconds())
}

func (l *Loader) recordMiss(origin string) {
	if origin == ports.OriginForeground {
		l.performance.RecordCacheMiss()
		l.performance.RecordAPICall()
	}
	l.metrics.RecordLookup(origin, false)
}
