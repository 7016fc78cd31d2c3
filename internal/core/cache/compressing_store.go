package cache

import (
	stderrors "errors"
	"fmt"
	"sync"
	"time"

	"budgetcache.app/internal/core/query"
	"budgetcache.app/internal/ports"
)

// DefaultCompressionThreshold is the serialized size above which record arrays are compacted
const DefaultCompressionThreshold = 1024

// CompressionStats summarizes what the compressing store did with its writes
type CompressionStats struct {
	Compressed     int64 `json:"compressed"`
	Uncompressed   int64 `json:"uncompressed"`
	Fallbacks      int64 `json:"fallbacks"`
	Restores       int64 `json:"restores"`
	OriginalBytes  int64 `json:"original_bytes"`
	CompactedBytes int64 `json:"compacted_bytes"`
}

// CompressingStore decorates a BudgetStore, compacting large homogeneous
// record arrays on write and restoring them on read. Callers never see
// the compacted form.
type CompressingStore struct {
	store     ports.BudgetStore
	threshold int
	logger    ports.Logger

	mu    sync.Mutex
	stats CompressionStats
}

var _ ports.BudgetStore = (*CompressingStore)(nil)

// NewCompressingStore wraps store. A non-positive threshold selects the default.
func NewCompressingStore(store ports.BudgetStore, threshold int, logger ports.Logger) *CompressingStore {
	if threshold <= 0 {
		threshold = DefaultCompressionThreshold
	}
	return &CompressingStore{
		store:     store,
		threshold: threshold,
		logger:    logger,
	}
}

// Get returns the cached data for q in its original shape
func (c *CompressingStore) Get(q query.Query) (interface{}, bool) {
	data, found := c.store.Get(q)
	if !found {
		return nil, false
	}

	compressed, ok := data.(*Compressed)
	if !ok {
		return data, true
	}

	restored, err := compressed.expand()
	if err != nil {
		c.logger.Warn("Failed to restore compressed cache entry, dropping it",
			ports.F("key", q.Key().String()),
			ports.F("error", err))
		c.store.Delete(q)
		return nil, false
	}

	c.mu.Lock()
	c.stats.Restores++
	c.mu.Unlock()

	return restored, true
}

// Set stores data for q, compacting it when it is large enough and the
// compacted form restores to an equal value. Otherwise the original data is stored.
func (c *CompressingStore) Set(q query.Query, data interface{}, ttl time.Duration) {
	compressed, ok, err := compact(data, c.threshold)
	if stderrors.Is(err, errLossyRestore) {
		c.logger.Debug("Payload does not survive compaction, storing it uncompressed",
			ports.F("key", q.Key().String()),
			ports.F("type", fmt.Sprintf("%T", data)))
		c.record(func(s *CompressionStats) { s.Fallbacks++ })
		c.store.Set(q, data, ttl)
		return
	}
	if err != nil {
		c.logger.Warn("Compression failed, storing payload uncompressed",
			ports.F("key", q.Key().String()),
			ports.F("error", err))
		c.record(func(s *CompressionStats) { s.Fallbacks++ })
		c.store.Set(q, data, ttl)
		return
	}

	if !ok {
		c.record(func(s *CompressionStats) { s.Uncompressed++ })
		c.store.Set(q, data, ttl)
		return
	}

	compacted := compressed.compactedSize()
	c.record(func(s *CompressionStats) {
		s.Compressed++
		s.OriginalBytes += int64(compressed.OriginalSize)
		s.CompactedBytes += int64(compacted)
	})

	c.logger.Debug("Compressed cache payload",
		ports.F("key", q.Key().String()),
		ports.F("original_size", compressed.OriginalSize),
		ports.F("compacted_size", compacted),
		ports.F("rows", len(compressed.Values)))

	c.store.Set(q, compressed, ttl)
}

// Delete delegates to the wrapped store
func (c *CompressingStore) Delete(q query.Query) bool {
	return c.store.Delete(q)
}

// Invalidate delegates to the wrapped store
func (c *CompressingStore) Invalidate(filter query.Filter) int {
	return c.store.Invalidate(filter)
}

// Cleanup delegates to the wrapped store
func (c *CompressingStore) Cleanup() int {
	return c.store.Cleanup()
}

// Clear delegates to the wrapped store
func (c *CompressingStore) Clear() {
	c.store.Clear()
}

// Stats delegates to the wrapped store
func (c *CompressingStore) Stats() ports.CacheStats {
	return c.store.Stats()
}

// CompressionStats returns a snapshot of compression counters
func (c *CompressingStore) CompressionStats() CompressionStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

func (c *CompressingStore) record(update func(*CompressionStats)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	update(&c.stats)
}
