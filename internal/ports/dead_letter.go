package ports

import (
	"context"
	"time"
)

// Background task kinds recorded in the dead-letter log
const (
	TaskPreload  = "preload"
	TaskWarm     = "warm"
	TaskPrefetch = "prefetch"
)

// DeadLetter describes a failed fire-and-forget task
type DeadLetter struct {
	ID         string    `json:"id"`
	Task       string    `json:"task"`
	Key        string    `json:"key"`
	Error      string    `json:"error"`
	OccurredAt time.Time `json:"occurred_at"`
}

// DeadLetterLog defines the contract for capturing background task failures
type DeadLetterLog interface {
	Record(ctx context.Context, letter DeadLetter) error
	Recent(ctx context.Context, limit int) ([]DeadLetter, error)
}
