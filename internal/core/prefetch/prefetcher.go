// Package prefetch widens the cached working set from observed access patterns.
// A query read often enough predicts a need for its broader views, which are
// fetched in the background before anyone asks for them.
package prefetch

import (
	"context"
	"sync"
	"time"

	"budgetcache.app/internal/core/query"
	"budgetcache.app/internal/ports"
)

const (
	DefaultThreshold = 3
	DefaultDelay     = 100 * time.Millisecond
)

// Config holds the prefetch policy
type Config struct {
	// Threshold is the access count a key must strictly exceed before its related queries are prefetched
	Threshold int
	// Delay postpones each background fetch after it is scheduled
	Delay time.Duration
	// TTL for prefetched entries; zero uses the store default
	TTL time.Duration
}

// Stats summarizes prefetch activity
type Stats struct {
	TrackedKeys int   `json:"tracked_keys"`
	Queued      int   `json:"queued"`
	Scheduled   int64 `json:"scheduled"`
	Completed   int64 `json:"completed"`
	Skipped     int64 `json:"skipped"`
	Failed      int64 `json:"failed"`
}

// Prefetcher counts accesses per key and schedules background population of related keys
type Prefetcher struct {
	store       ports.BudgetStore
	source      ports.BudgetSource
	deadLetters ports.DeadLetterLog
	logger      ports.Logger
	config      Config

	mu     sync.Mutex
	counts map[query.Key]int
	queue  map[query.Key]struct{}
	stats  Stats

	wg sync.WaitGroup
}

var _ ports.AccessRecorder = (*Prefetcher)(nil)

// NewPrefetcher creates a prefetcher populating store from source
func NewPrefetcher(store ports.BudgetStore, source ports.BudgetSource, deadLetters ports.DeadLetterLog, logger ports.Logger, config Config) *Prefetcher {
	if config.Threshold <= 0 {
		config.Threshold = DefaultThreshold
	}
	if config.Delay < 0 {
		config.Delay = DefaultDelay
	}

	return &Prefetcher{
		store:       store,
		source:      source,
		deadLetters: deadLetters,
		logger:      logger,
		config:      config,
		counts:      make(map[query.Key]int),
		queue:       make(map[query.Key]struct{}),
	}
}

// RecordAccess counts an access to q and, once q is hot, schedules its related queries
func (p *Prefetcher) RecordAccess(q query.Query) {
	key := q.Key()

	p.mu.Lock()
	p.counts[key]++
	count := p.counts[key]
	if count <= p.config.Threshold {
		p.mu.Unlock()
		return
	}

	var scheduled []query.Query
	for _, related := range RelatedQueries(q) {
		relatedKey := related.Key()
		if _, queued := p.queue[relatedKey]; queued {
			continue
		}
		p.queue[relatedKey] = struct{}{}
		p.stats.Scheduled++
		scheduled = append(scheduled, related)
	}
	p.mu.Unlock()

	for _, related := range scheduled {
		p.logger.Debug("Scheduling prefetch",
			ports.F("source_key", key.String()),
			ports.F("key", related.Key().String()),
			ports.F("access_count", count))

		p.wg.Add(1)
		go p.run(related)
	}
}

// RelatedQueries derives the broader views of q: the all-groupers view when q
// is grouper-scoped and the all-payments view when q is payment-scoped.
func RelatedQueries(q query.Query) []query.Query {
	var related []query.Query
	if q.HasGrouperScope() {
		related = append(related, q.WithoutGroupers())
	}
	if q.HasPaymentScope() {
		related = append(related, q.WithAllPayments())
	}
	return related
}

func (p *Prefetcher) run(q query.Query) {
	defer p.wg.Done()
	key := q.Key()
	defer p.dequeue(key)

	if p.config.Delay > 0 {
		time.Sleep(p.config.Delay)
	}

	if _, cached := p.store.Get(q); cached {
		p.mu.Lock()
		p.stats.Skipped++
		p.mu.Unlock()
		return
	}

	ctx := context.Background()
	lines, err := p.source.FetchBudget(ctx, q)
	if err != nil {
		p.logger.Warn("Prefetch failed", ports.F("key", key.String()), ports.F("error", err))
		p.recordFailure(ctx, key, err)
		return
	}

	p.store.Set(q, lines, p.config.TTL)

	p.mu.Lock()
	p.stats.Completed++
	p.mu.Unlock()

	p.logger.Debug("Prefetch completed", ports.F("key", key.String()), ports.F("lines", len(lines)))
}

func (p *Prefetcher) recordFailure(ctx context.Context, key query.Key, cause error) {
	p.mu.Lock()
	p.stats.Failed++
	p.mu.Unlock()

	if p.deadLetters == nil {
		return
	}

	letter := ports.DeadLetter{
		Task:  ports.TaskPrefetch,
		Key:   key.String(),
		Error: cause.Error(),
	}
	if err := p.deadLetters.Record(ctx, letter); err != nil {
		p.logger.Error("Failed to record dead letter", ports.F("key", key.String()), ports.F("error", err))
	}
}

func (p *Prefetcher) dequeue(key query.Key) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.queue, key)
}

// AccessCount returns how many times q has been recorded
func (p *Prefetcher) AccessCount(q query.Query) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.counts[q.Key()]
}

// IsQueued reports whether a background fetch for q is pending
func (p *Prefetcher) IsQueued(q query.Query) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, queued := p.queue[q.Key()]
	return queued
}

// Stats returns a snapshot of prefetch counters
func (p *Prefetcher) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()

	stats := p.stats
	stats.TrackedKeys = len(p.counts)
	stats.Queued = len(p.queue)
	return stats
}

// Wait blocks until every scheduled background fetch has resolved
func (p *Prefetcher) Wait() {
	p.wg.Wait()
}
