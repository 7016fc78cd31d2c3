package budget

import (
	"context"
	"time"

	"budgetcache.app/internal/core/query"
	"budgetcache.app/internal/ports"
)

// PreloadBudgetData fetches the common queries of period/estudio, plus the
// estudio-wide period view, in the background. It returns immediately;
// failures are logged and dead-lettered, never returned. Background lookups
// are not reported to the performance monitor or the access recorder.
func (l *Loader) PreloadBudgetData(periodID string, estudioID *int, fetch LinesFunc) {
	queries := l.CommonQueries(periodID, estudioID)
	if estudioID != nil {
		queries = append(queries, query.Query{PeriodID: periodID})
	}

	load := readThrough(l, fetch, 0, ports.TaskPreload)
	for _, q := range queries {
		l.detach(ports.TaskPreload, q, 0, load)
	}

	l.logger.Debug("Preload scheduled",
		ports.F("period_id", periodID),
		ports.F("queries", len(queries)))
}

// WarmSimulateModeCache fetches the common queries in the background, query i
// starting i*WarmStagger after the call, and keeps results for WarmTTL.
func (l *Loader) WarmSimulateModeCache(periodID string, estudioID *int, fetch LinesFunc) {
	queries := l.CommonQueries(periodID, estudioID)

	load := readThrough(l, fetch, l.config.WarmTTL, ports.TaskWarm)
	for i, q := range queries {
		l.detach(ports.TaskWarm, q, time.Duration(i)*l.config.WarmStagger, load)
	}

	l.logger.Debug("Simulate mode warm-up scheduled",
		ports.F("period_id", periodID),
		ports.F("queries", len(queries)),
		ports.F("ttl", l.config.WarmTTL.String()))
}

func (l *Loader) detach(task string, q query.Query, delay time.Duration, load LinesFunc) {
	l.wg.Add(1)

	go func() {
		defer l.wg.Done()

		if delay > 0 {
			time.Sleep(delay)
		}

		ctx := context.Background()
		if _, err := load(ctx, q); err != nil {
			l.logger.Warn("Background cache task failed",
				ports.F("task", task),
				ports.F("key", q.Key().String()),
				ports.F("error", err))

			letter := ports.DeadLetter{Task: task, Key: q.Key().String(), Error: err.Error()}
			if recordErr := l.deadLetters.Record(ctx, letter); recordErr != nil {
				l.logger.Error("Failed to record dead letter",
					ports.F("task", task),
					ports.F("error", recordErr))
			}
		}
	}()
}
