package database

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"budgetcache.app/internal/core/query"
	"budgetcache.app/internal/ports"
	"budgetcache.app/pkg/errors"
)

// BudgetLineModel represents the database model for budget lines
type BudgetLineModel struct {
	ID            uint    `gorm:"primaryKey"`
	PeriodID      string  `gorm:"index;not null"`
	EstudioID     *int    `gorm:"index"`
	GrouperID     int     `gorm:"index;not null"`
	GrouperName   string  `gorm:"not null"`
	PaymentMethod string  `gorm:"index;not null"`
	Budgeted      float64 `gorm:"not null;default:0"`
	Spent         float64 `gorm:"not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (BudgetLineModel) TableName() string {
	return "budget_lines"
}

// BudgetRepositoryAdapter implements the BudgetSource port using GORM
type BudgetRepositoryAdapter struct {
	db *gorm.DB
}

var _ ports.BudgetSource = (*BudgetRepositoryAdapter)(nil)

// NewBudgetRepositoryAdapter creates a new budget repository adapter
func NewBudgetRepositoryAdapter(db *gorm.DB) *BudgetRepositoryAdapter {
	return &BudgetRepositoryAdapter{db: db}
}

// FetchBudget returns the budget lines matching every scoped dimension of q
func (r *BudgetRepositoryAdapter) FetchBudget(ctx context.Context, q query.Query) ([]ports.BudgetLine, error) {
	tx := r.db.WithContext(ctx).Model(&BudgetLineModel{})

	if period := strings.TrimSpace(q.PeriodID); period != "" && period != query.AllToken {
		tx = tx.Where("period_id = ?", period)
	}
	if q.EstudioID != nil {
		tx = tx.Where("estudio_id = ?", *q.EstudioID)
	}
	if q.HasGrouperScope() {
		tx = tx.Where("grouper_id IN ?", q.GrouperIDs)
	}
	if q.HasPaymentScope() {
		tx = tx.Where("payment_method = ?", strings.TrimSpace(q.PaymentMethod))
	}

	var models []BudgetLineModel
	if err := tx.Order("grouper_id").Order("payment_method").Order("id").Find(&models).Error; err != nil {
		return nil, errors.NewDatabaseError("failed to fetch budget lines", err)
	}

	lines := make([]ports.BudgetLine, 0, len(models))
	for i := range models {
		lines = append(lines, r.modelToData(&models[i]))
	}
	return lines, nil
}

// Save persists a budget line; Remaining is derived and not stored
func (r *BudgetRepositoryAdapter) Save(ctx context.Context, line *ports.BudgetLine) error {
	if line == nil {
		return errors.NewValidationError("budget line cannot be nil")
	}
	if strings.TrimSpace(line.PeriodID) == "" {
		return errors.NewValidationError("budget line period cannot be empty")
	}
	if strings.TrimSpace(line.PaymentMethod) == "" {
		return errors.NewValidationError("budget line payment method cannot be empty")
	}

	model := r.dataToModel(line)
	if result := r.db.WithContext(ctx).Create(model); result.Error != nil {
		return errors.NewDatabaseError("failed to save budget line", result.Error)
	}

	line.Remaining = model.Budgeted - model.Spent
	return nil
}

func (r *BudgetRepositoryAdapter) modelToData(model *BudgetLineModel) ports.BudgetLine {
	return ports.BudgetLine{
		PeriodID:      model.PeriodID,
		EstudioID:     model.EstudioID,
		GrouperID:     model.GrouperID,
		GrouperName:   model.GrouperName,
		PaymentMethod: model.PaymentMethod,
		Budgeted:      model.Budgeted,
		Spent:         model.Spent,
		Remaining:     model.Budgeted - model.Spent,
	}
}

func (r *BudgetRepositoryAdapter) dataToModel(line *ports.BudgetLine) *BudgetLineModel {
	return &BudgetLineModel{
		PeriodID:      strings.TrimSpace(line.PeriodID),
		EstudioID:     line.EstudioID,
		GrouperID:     line.GrouperID,
		GrouperName:   line.GrouperName,
		PaymentMethod: strings.TrimSpace(line.PaymentMethod),
		Budgeted:      line.Budgeted,
		Spent:         line.Spent,
	}
}
