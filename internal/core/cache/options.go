package cache

import "time"

const (
	DefaultCapacity        = 100
	DefaultTTL             = 5 * time.Minute
	DefaultCleanupInterval = time.Minute
)

// Option configures a Store before it is used
type Option func(*Store)

// WithCapacity bounds the number of entries. Values below 1 are ignored.
func WithCapacity(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.capacity = n
		}
	}
}

// WithDefaultTTL sets the TTL used when Set is called without one
func WithDefaultTTL(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.defaultTTL = d
		}
	}
}

// WithCleanupInterval sets how often the janitor sweeps expired entries.
// A zero interval disables the janitor; expired entries are still never returned.
func WithCleanupInterval(d time.Duration) Option {
	return func(s *Store) {
		s.interval = d
	}
}

// WithClock replaces time.Now, mainly for tests
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}
