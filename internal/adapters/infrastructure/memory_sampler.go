package infrastructure

import (
	"context"
	"runtime"
	"sync"
	"time"

	"budgetcache.app/internal/ports"
	"budgetcache.app/pkg/errors"
)

// MemorySampler periodically feeds heap usage into a MemoryRecorder
type MemorySampler struct {
	recorder ports.MemoryRecorder
	logger   ports.Logger
	interval time.Duration
	read     func() uint64

	cancel context.CancelFunc
	done   chan struct{}
	mutex  sync.Mutex
}

// NewMemorySampler creates a sampler that reads the Go heap every interval
func NewMemorySampler(recorder ports.MemoryRecorder, logger ports.Logger, interval time.Duration) (*MemorySampler, error) {
	if recorder == nil {
		return nil, errors.NewValidationError("memory recorder is required")
	}
	if logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	if interval <= 0 {
		return nil, errors.NewValidationError("sampling interval must be positive")
	}

	return &MemorySampler{
		recorder: recorder,
		logger:   logger,
		interval: interval,
		read:     heapAlloc,
	}, nil
}

func heapAlloc() uint64 {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	return stats.HeapAlloc
}

// Sample records one heap reading and returns it
func (s *MemorySampler) Sample() uint64 {
	bytes := s.read()
	s.recorder.RecordMemoryUsage(bytes)
	return bytes
}

// Start begins sampling in the background. Calling Start on a running sampler is a no-op.
func (s *MemorySampler) Start(ctx context.Context) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	go s.loop(ctx, s.done)

	s.logger.Info("Memory sampler started", ports.F("interval", s.interval.String()))
}

func (s *MemorySampler) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.Sample()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			bytes := s.Sample()
			s.logger.Debug("Memory sample recorded", ports.F("heap_bytes", bytes))
		}
	}
}

// Stop ends sampling and waits for the loop to exit
func (s *MemorySampler) Stop() {
	s.mutex.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mutex.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	s.logger.Info("Memory sampler stopped")
}
