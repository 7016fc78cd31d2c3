package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"budgetcache.app/internal/adapters/database"
	"budgetcache.app/internal/config"
	"budgetcache.app/internal/core/cache"
	"budgetcache.app/internal/core/performance"
	"budgetcache.app/internal/core/query"
	"budgetcache.app/internal/ports"
)

func setupApplication(t *testing.T, mutate func(*config.Config)) (*Application, *gorm.DB) {
	t.Helper()

	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	cfg.Prefetch.Delay = time.Millisecond
	cfg.Sampler.Enabled = false
	if mutate != nil {
		mutate(cfg)
	}

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "budget.db")), &gorm.Config{})
	require.NoError(t, err)

	deps, err := NewDependencyContainerWithDB(cfg, db)
	require.NoError(t, err)

	application, err := NewApplicationWithDependencies(cfg, deps)
	require.NoError(t, err)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		assert.NoError(t, application.Shutdown(ctx))
	})

	repo := database.NewBudgetRepositoryAdapter(db)
	for _, line := range []ports.BudgetLine{
		{PeriodID: "2024-05", EstudioID: query.EstudioID(1), GrouperID: 1, GrouperName: "Housing", PaymentMethod: "debit", Budgeted: 1200, Spent: 1200},
		{PeriodID: "2024-05", EstudioID: query.EstudioID(1), GrouperID: 2, GrouperName: "Food", PaymentMethod: "cash", Budgeted: 300, Spent: 120},
		{PeriodID: "2024-06", EstudioID: query.EstudioID(1), GrouperID: 2, GrouperName: "Food", PaymentMethod: "credit", Budgeted: 300},
	} {
		line := line
		require.NoError(t, repo.Save(context.Background(), &line))
	}

	return application, db
}

func get(t *testing.T, application *Application, target string) map[string]interface{} {
	t.Helper()

	w := httptest.NewRecorder()
	application.GetRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestApplication_ReadThroughBudget(t *testing.T) {
	application, _ := setupApplication(t, nil)

	first := get(t, application, "/api/budget?period=2024-05&estudio=1")
	second := get(t, application, "/api/budget?period=2024-05&estudio=1")

	assert.Equal(t, float64(2), first["count"])
	assert.Equal(t, first, second)

	metrics := application.Monitor().Metrics()
	assert.Equal(t, int64(1), metrics.CacheHits)
	assert.Equal(t, int64(1), metrics.CacheMisses)
	assert.Equal(t, int64(1), metrics.NetworkCalls)
	assert.Equal(t, 2, metrics.RenderSamples)
}

func TestApplication_PrefetchesBroaderQuery(t *testing.T) {
	application, _ := setupApplication(t, nil)

	for i := 0; i < 4; i++ {
		get(t, application, "/api/budget?period=2024-05&payment=cash")
	}

	assert.Eventually(t, func() bool {
		stats := get(t, application, "/api/cache/stats")
		prefetch := stats["prefetch"].(map[string]interface{})
		return prefetch["completed"] == float64(1)
	}, time.Second, 10*time.Millisecond)
}

func TestApplication_PreloadAndInvalidate(t *testing.T) {
	application, _ := setupApplication(t, func(cfg *config.Config) {
		cfg.Cache.CommonPaymentMethods = []string{"cash"}
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/cache/preload", bytesReader(`{"period_id":"2024-06","estudio_id":1}`))
	req.Header.Set("Content-Type", "application/json")
	application.GetRouter().ServeHTTP(w, req)
	require.Equal(t, http.StatusAccepted, w.Code)

	application.Loader().Wait()

	stats := get(t, application, "/api/cache/stats")
	assert.Equal(t, float64(3), stats["cache"].(map[string]interface{})["size"])

	metrics := application.Monitor().Metrics()
	assert.Equal(t, int64(0), metrics.NetworkCalls)
	assert.Equal(t, int64(0), metrics.CacheMisses)

	w = httptest.NewRecorder()
	application.GetRouter().ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/cache?period=2024-06&estudio=1", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"removed":2}`, w.Body.String())
}

func TestApplication_Health(t *testing.T) {
	application, _ := setupApplication(t, nil)

	body := get(t, application, "/api/health")
	assert.Equal(t, "healthy", body["status"])

	components := body["components"].(map[string]interface{})
	assert.Contains(t, components, "database")
	assert.Contains(t, components, "cache")
	assert.NotContains(t, components, "dead_letters")
}

func TestApplication_CompressionToggle(t *testing.T) {
	compressed, _ := setupApplication(t, nil)
	_, ok := compressed.ports.BudgetStore.(*cache.CompressingStore)
	assert.True(t, ok)

	plain, _ := setupApplication(t, func(cfg *config.Config) {
		cfg.Cache.CompressionEnabled = false
		cfg.Prefetch.Enabled = false
	})
	_, ok = plain.ports.BudgetStore.(*cache.Store)
	assert.True(t, ok)
	assert.Nil(t, plain.prefetcher)

	stats := get(t, plain, "/api/cache/stats")
	assert.NotContains(t, stats, "compression")
	assert.NotContains(t, stats, "prefetch")
}

func TestPolicyFromConfig(t *testing.T) {
	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, performance.DefaultPolicy(), PolicyFromConfig(cfg.Performance))
}

func TestNewDependencyContainerWithDB_Validation(t *testing.T) {
	_, err := NewDependencyContainerWithDB(nil, nil)
	assert.Error(t, err)

	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	_, err = NewDependencyContainerWithDB(cfg, nil)
	assert.Error(t, err)
}

func bytesReader(s string) *strings.Reader {
	return strings.NewReader(s)
}
