package ports

import (
	"context"

	"budgetcache.app/internal/core/query"
)

// BudgetLine represents one row of budget figures for a grouper
type BudgetLine struct {
	PeriodID      string  `json:"period_id"`
	EstudioID     *int    `json:"estudio_id,omitempty"`
	GrouperID     int     `json:"grouper_id"`
	GrouperName   string  `json:"grouper_name"`
	PaymentMethod string  `json:"payment_method"`
	Budgeted      float64 `json:"budgeted"`
	Spent         float64 `json:"spent"`
	Remaining     float64 `json:"remaining"`
}

// BudgetSource defines the contract for the data layer that supplies budget figures
type BudgetSource interface {
	FetchBudget(ctx context.Context, q query.Query) ([]BudgetLine, error)
}
