package cache

import "time"

// Start launches the background sweep of expired entries.
// It is a no-op when the cleanup interval is not positive or the janitor already runs.
func (s *Store) Start() {
	s.mu.Lock()
	if s.started || s.interval <= 0 {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mu.Unlock()

	ticker := time.NewTicker(s.interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.Cleanup()
			case <-s.stopChan:
				return
			}
		}
	}()
}

// Stop terminates the janitor. Safe to call more than once.
func (s *Store) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
	})
}
