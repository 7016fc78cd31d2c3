package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"budgetcache.app/internal/core/query"
	"budgetcache.app/internal/ports"
	"budgetcache.app/pkg/errors"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&BudgetLineModel{})
	require.NoError(t, err)

	return db
}

func seedBudget(t *testing.T, repo *BudgetRepositoryAdapter) {
	t.Helper()

	seed := []ports.BudgetLine{
		{PeriodID: "2024-05", EstudioID: query.EstudioID(1), GrouperID: 1, GrouperName: "Housing", PaymentMethod: "debit", Budgeted: 1200, Spent: 1200},
		{PeriodID: "2024-05", EstudioID: query.EstudioID(1), GrouperID: 2, GrouperName: "Food", PaymentMethod: "cash", Budgeted: 150, Spent: 90},
		{PeriodID: "2024-05", EstudioID: query.EstudioID(1), GrouperID: 2, GrouperName: "Food", PaymentMethod: "credit", Budgeted: 250, Spent: 260},
		{PeriodID: "2024-05", EstudioID: query.EstudioID(2), GrouperID: 3, GrouperName: "Transport", PaymentMethod: "credit", Budgeted: 80, Spent: 20},
		{PeriodID: "2024-05", GrouperID: 4, GrouperName: "Savings", PaymentMethod: "debit", Budgeted: 300},
		{PeriodID: "2024-06", EstudioID: query.EstudioID(1), GrouperID: 1, GrouperName: "Housing", PaymentMethod: "debit", Budgeted: 1200},
	}
	for i := range seed {
		require.NoError(t, repo.Save(context.Background(), &seed[i]))
	}
}

func TestBudgetRepository_FetchBudget(t *testing.T) {
	repo := NewBudgetRepositoryAdapter(setupTestDB(t))
	seedBudget(t, repo)

	tests := []struct {
		name     string
		query    query.Query
		groupers []int
		methods  []string
	}{
		{
			name:     "Period",
			query:    query.Query{PeriodID: "2024-05"},
			groupers: []int{1, 2, 2, 3, 4},
			methods:  []string{"debit", "cash", "credit", "credit", "debit"},
		},
		{
			name:     "PeriodAndEstudio",
			query:    query.Query{PeriodID: "2024-05", EstudioID: query.EstudioID(1)},
			groupers: []int{1, 2, 2},
			methods:  []string{"debit", "cash", "credit"},
		},
		{
			name:     "Groupers",
			query:    query.Query{PeriodID: "2024-05", GrouperIDs: []int{3, 2}},
			groupers: []int{2, 2, 3},
			methods:  []string{"cash", "credit", "credit"},
		},
		{
			name:     "PaymentMethod",
			query:    query.Query{PeriodID: "2024-05", PaymentMethod: "credit"},
			groupers: []int{2, 3},
			methods:  []string{"credit", "credit"},
		},
		{
			name:     "AllPaymentsIsUnscoped",
			query:    query.Query{PeriodID: "2024-06", PaymentMethod: query.AllToken},
			groupers: []int{1},
			methods:  []string{"debit"},
		},
		{
			name:     "EveryPeriod",
			query:    query.Query{GrouperIDs: []int{1}},
			groupers: []int{1, 1},
			methods:  []string{"debit", "debit"},
		},
		{
			name:     "NoMatch",
			query:    query.Query{PeriodID: "2023-01"},
			groupers: []int{},
			methods:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, err := repo.FetchBudget(context.Background(), tt.query)
			require.NoError(t, err)
			require.NotNil(t, lines)

			groupers := make([]int, 0, len(lines))
			methods := make([]string, 0, len(lines))
			for _, line := range lines {
				groupers = append(groupers, line.GrouperID)
				methods = append(methods, line.PaymentMethod)
			}
			assert.Equal(t, tt.groupers, groupers)
			assert.Equal(t, tt.methods, methods)
		})
	}
}

func TestBudgetRepository_FetchBudgetComputesRemaining(t *testing.T) {
	repo := NewBudgetRepositoryAdapter(setupTestDB(t))
	seedBudget(t, repo)

	lines, err := repo.FetchBudget(context.Background(), query.Query{
		PeriodID:      "2024-05",
		EstudioID:     query.EstudioID(1),
		PaymentMethod: "credit",
	})
	require.NoError(t, err)
	require.Len(t, lines, 1)

	line := lines[0]
	assert.Equal(t, "Food", line.GrouperName)
	assert.Equal(t, 1, *line.EstudioID)
	assert.Equal(t, float64(-10), line.Remaining)
}

func TestBudgetRepository_Save_Validation(t *testing.T) {
	repo := NewBudgetRepositoryAdapter(setupTestDB(t))
	ctx := context.Background()

	tests := []struct {
		name string
		line *ports.BudgetLine
	}{
		{name: "Nil", line: nil},
		{name: "EmptyPeriod", line: &ports.BudgetLine{PaymentMethod: "cash"}},
		{name: "EmptyPaymentMethod", line: &ports.BudgetLine{PeriodID: "2024-05"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.Save(ctx, tt.line)
			assert.True(t, errors.IsValidationError(err))
		})
	}
}

func TestBudgetRepository_Save_SetsRemaining(t *testing.T) {
	repo := NewBudgetRepositoryAdapter(setupTestDB(t))

	line := &ports.BudgetLine{PeriodID: "2024-05", GrouperID: 1, GrouperName: "Food", PaymentMethod: "cash", Budgeted: 100, Spent: 30}
	require.NoError(t, repo.Save(context.Background(), line))
	assert.Equal(t, float64(70), line.Remaining)
}

func TestBudgetRepository_DatabaseError(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	repo := NewBudgetRepositoryAdapter(db)

	_, err = repo.FetchBudget(context.Background(), query.Query{PeriodID: "2024-05"})
	require.Error(t, err)
	assert.True(t, errors.IsDatabaseError(err))
}
