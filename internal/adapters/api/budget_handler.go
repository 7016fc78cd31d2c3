package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"budgetcache.app/internal/core/query"
	"budgetcache.app/internal/ports"
	"budgetcache.app/pkg/errors"
	"budgetcache.app/pkg/validation"
)

// BudgetResponse represents the HTTP response for a budget query
type BudgetResponse struct {
	Key   string             `json:"key"`
	Count int                `json:"count"`
	Lines []ports.BudgetLine `json:"lines"`
}

// getBudget handles GET /api/budget requests
func (s *HTTPServerAdapter) getBudget(c *gin.Context) {
	started := time.Now()

	q, err := parseQuery(c)
	if err != nil {
		s.handleError(c, err)
		return
	}

	lines, err := s.budget.Budget(c.Request.Context(), q)
	if err != nil {
		slog.Error("Budget fetch failed", "error", err, "key", q.Key().String())
		s.handleError(c, err)
		return
	}

	s.monitor.RecordRenderTime(time.Since(started))

	c.JSON(http.StatusOK, BudgetResponse{
		Key:   q.Key().String(),
		Count: len(lines),
		Lines: lines,
	})
}

func parseQuery(c *gin.Context) (query.Query, error) {
	var q query.Query

	period, err := parsePeriod(c.Query("period"))
	if err != nil {
		return q, err
	}
	if period != nil {
		q.PeriodID = *period
	}

	if q.EstudioID, err = parseEstudio(c.Query("estudio")); err != nil {
		return q, err
	}

	if q.GrouperIDs, err = query.ParseGrouperIDs(c.Query("groupers")); err != nil {
		return q, errors.NewValidationError("groupers must be a comma-separated list of ids")
	}

	if payment := strings.TrimSpace(c.Query("payment")); payment != "" {
		if !validation.IsValidPaymentMethod(payment) {
			return q, errors.NewValidationError("invalid payment method")
		}
		q.PaymentMethod = payment
	}

	return q, nil
}

func parsePeriod(raw string) (*string, error) {
	period, ok := validation.TrimAndValidate(raw)
	if !ok {
		return nil, nil
	}
	if !validation.IsValidPeriodID(period) {
		return nil, errors.NewValidationError("invalid period")
	}
	return &period, nil
}

func parseEstudio(raw string) (*int, error) {
	raw, ok := validation.TrimAndValidate(raw)
	if !ok || raw == query.AllToken {
		return nil, nil
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return nil, errors.NewValidationError("estudio must be a positive integer")
	}
	return &id, nil
}
