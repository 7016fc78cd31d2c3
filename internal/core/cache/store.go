// Package cache implements the bounded in-process budget data cache:
// a TTL/LRU store keyed by composite query keys, plus a decorator that
// compacts large homogeneous record arrays before storage.
package cache

import (
	"container/list"
	"sync"
	"time"

	"budgetcache.app/internal/core/query"
	"budgetcache.app/internal/ports"
)

// Store is a capacity-bounded map from query keys to entries.
// The recency list holds the most recently touched entry at the front;
// its order matches entry timestamps, so the back is always the eviction victim.
type Store struct {
	mu         sync.Mutex
	entries    map[query.Key]*list.Element
	lru        *list.List
	capacity   int
	defaultTTL time.Duration
	interval   time.Duration
	now        func() time.Time

	hits        int64
	misses      int64
	evictions   int64
	expirations int64

	stopChan chan struct{}
	stopOnce sync.Once
	started  bool
}

var _ ports.BudgetStore = (*Store)(nil)

// NewStore creates a store. The janitor is not started until Start is called.
func NewStore(opts ...Option) *Store {
	s := &Store{
		entries:    make(map[query.Key]*list.Element),
		lru:        list.New(),
		capacity:   DefaultCapacity,
		defaultTTL: DefaultTTL,
		interval:   DefaultCleanupInterval,
		now:        time.Now,
		stopChan:   make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Get returns the data cached for q. Expired entries are removed and
// reported as a miss; a hit refreshes the entry timestamp.
func (s *Store) Get(q query.Query) (interface{}, bool) {
	key := query.Encode(q)

	s.mu.Lock()
	defer s.mu.Unlock()

	elem, found := s.entries[key]
	if !found {
		s.misses++
		return nil, false
	}

	e := elem.Value.(*entry)
	now := s.now()
	if e.expired(now) {
		s.removeElement(elem)
		s.expirations++
		s.misses++
		return nil, false
	}

	e.timestamp = now
	s.lru.MoveToFront(elem)
	s.hits++
	return e.data, true
}

// Set stores data for q. A non-positive ttl selects the default TTL.
// When a new key would exceed capacity the least recently touched entry
// is evicted first.
func (s *Store) Set(q query.Query, data interface{}, ttl time.Duration) {
	if ttl <= 0 {
		ttl = s.defaultTTL
	}

	tokens := query.Tokenize(q)
	key := tokens.Key()

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	if elem, found := s.entries[key]; found {
		e := elem.Value.(*entry)
		e.data = data
		e.ttl = ttl
		e.timestamp = now
		s.lru.MoveToFront(elem)
		return
	}

	if s.lru.Len() >= s.capacity {
		s.evictOldest()
	}

	e := &entry{
		key:       key,
		tokens:    tokens,
		data:      data,
		timestamp: now,
		ttl:       ttl,
	}
	s.entries[key] = s.lru.PushFront(e)
}

// Delete removes the entry for q and reports whether it existed
func (s *Store) Delete(q query.Query) bool {
	key := query.Encode(q)

	s.mu.Lock()
	defer s.mu.Unlock()

	elem, found := s.entries[key]
	if !found {
		return false
	}
	s.removeElement(elem)
	return true
}

// Invalidate removes every entry matching filter and returns how many were removed
func (s *Store) Invalidate(filter query.Filter) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for elem := s.lru.Back(); elem != nil; {
		prev := elem.Prev()
		if filter.Matches(elem.Value.(*entry).tokens) {
			s.removeElement(elem)
			removed++
		}
		elem = prev
	}
	return removed
}

// Cleanup removes every expired entry and returns how many were removed
func (s *Store) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for elem := s.lru.Back(); elem != nil; {
		prev := elem.Prev()
		if elem.Value.(*entry).expired(now) {
			s.removeElement(elem)
			s.expirations++
			removed++
		}
		elem = prev
	}
	return removed
}

// Clear removes all entries
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[query.Key]*list.Element)
	s.lru.Init()
}

// Len returns the number of physically stored entries, expired or not
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lru.Len()
}

// Stats returns occupancy and counters
func (s *Store) Stats() ports.CacheStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	valid := 0
	for elem := s.lru.Front(); elem != nil; elem = elem.Next() {
		if !elem.Value.(*entry).expired(now) {
			valid++
		}
	}

	total := s.hits + s.misses
	hitRatio := float64(0)
	if total > 0 {
		hitRatio = float64(s.hits) / float64(total)
	}

	return ports.CacheStats{
		Size:         s.lru.Len(),
		Capacity:     s.capacity,
		ValidEntries: valid,
		Hits:         s.hits,
		Misses:       s.misses,
		Evictions:    s.evictions,
		Expirations:  s.expirations,
		HitRatio:     hitRatio,
		LastUpdated:  now,
	}
}

// DefaultTTL returns the TTL applied when Set receives none
func (s *Store) DefaultTTL() time.Duration {
	return s.defaultTTL
}
