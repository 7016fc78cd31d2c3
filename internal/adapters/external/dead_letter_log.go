package external

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"budgetcache.app/internal/ports"
	"budgetcache.app/pkg/errors"
)

// DefaultDeadLetterCapacity bounds the in-memory log when no capacity is configured
const DefaultDeadLetterCapacity = 500

// MemoryDeadLetterLog keeps the most recent background failures in a capped ring
type MemoryDeadLetterLog struct {
	letters  []ports.DeadLetter
	next     int
	full     bool
	mutex    sync.RWMutex
	clock    func() time.Time
	capacity int
}

var _ ports.DeadLetterLog = (*MemoryDeadLetterLog)(nil)

// NewMemoryDeadLetterLog creates an in-memory dead-letter log
func NewMemoryDeadLetterLog(capacity int) *MemoryDeadLetterLog {
	if capacity <= 0 {
		capacity = DefaultDeadLetterCapacity
	}
	return &MemoryDeadLetterLog{
		letters:  make([]ports.DeadLetter, capacity),
		clock:    time.Now,
		capacity: capacity,
	}
}

// Record stores letter, overwriting the oldest entry once the ring is full
func (l *MemoryDeadLetterLog) Record(ctx context.Context, letter ports.DeadLetter) error {
	if err := ctx.Err(); err != nil {
		return errors.NewCacheError("dead letter not recorded", err)
	}
	if letter.Task == "" {
		return errors.NewValidationError("dead letter task cannot be empty")
	}

	letter = stamp(letter, l.clock)

	l.mutex.Lock()
	defer l.mutex.Unlock()

	l.letters[l.next] = letter
	l.next = (l.next + 1) % l.capacity
	if l.next == 0 {
		l.full = true
	}
	return nil
}

// Recent returns up to limit letters, newest first. A non-positive limit returns all of them.
func (l *MemoryDeadLetterLog) Recent(ctx context.Context, limit int) ([]ports.DeadLetter, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewCacheError("dead letters not read", err)
	}

	l.mutex.RLock()
	defer l.mutex.RUnlock()

	size := l.next
	if l.full {
		size = l.capacity
	}
	if limit <= 0 || limit > size {
		limit = size
	}

	result := make([]ports.DeadLetter, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := (l.next - i + l.capacity) % l.capacity
		result = append(result, l.letters[idx])
	}
	return result, nil
}

// stamp assigns an id and timestamp to letters that arrive without them
func stamp(letter ports.DeadLetter, clock func() time.Time) ports.DeadLetter {
	if letter.ID == "" {
		letter.ID = uuid.New().String()
	}
	if letter.OccurredAt.IsZero() {
		letter.OccurredAt = clock().UTC()
	}
	return letter
}
