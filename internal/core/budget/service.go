package budget

import (
	"context"
	"time"

	"budgetcache.app/internal/core/query"
	"budgetcache.app/internal/ports"
	"budgetcache.app/pkg/errors"
)

// Service binds a Loader to one budget source
type Service struct {
	loader *Loader
	source LinesFunc
	cached LinesFunc
}

// NewService wraps source with the loader's cache; ttl applies to read-through entries
func NewService(loader *Loader, source ports.BudgetSource, ttl time.Duration) (*Service, error) {
	if loader == nil {
		return nil, errors.NewValidationError("loader is required")
	}
	if source == nil {
		return nil, errors.NewValidationError("budget source is required")
	}

	fetch := FromSource(source)
	return &Service{
		loader: loader,
		source: fetch,
		cached: WithBudgetCache(loader, fetch, ttl),
	}, nil
}

// Budget returns the lines for q, from the cache when possible
func (s *Service) Budget(ctx context.Context, q query.Query) ([]ports.BudgetLine, error) {
	return s.cached(ctx, q)
}

// Preload schedules the background preload of period/estudio
func (s *Service) Preload(periodID string, estudioID *int) {
	s.loader.PreloadBudgetData(periodID, estudioID, s.source)
}

// Warm schedules the staggered simulate-mode warm-up of period/estudio
func (s *Service) Warm(periodID string, estudioID *int) {
	s.loader.WarmSimulateModeCache(periodID, estudioID, s.source)
}

// Invalidate drops cached entries of period and/or estudio
func (s *Service) Invalidate(periodID *string, estudioID *int) int {
	return s.loader.InvalidateBudgetCache(periodID, estudioID)
}

// Clear drops every cached entry
func (s *Service) Clear() {
	s.loader.Clear()
}
