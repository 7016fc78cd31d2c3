package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"budgetcache.app/internal/core/performance"
	"budgetcache.app/internal/core/query"
	"budgetcache.app/internal/mocks"
	"budgetcache.app/internal/ports"
	"budgetcache.app/pkg/errors"
)

type scopeCall struct {
	periodID  string
	estudioID *int
}

type fakeBudgetService struct {
	mu          sync.Mutex
	queries     []query.Query
	err         error
	preloads    []scopeCall
	warms       []scopeCall
	invalidated []scopeCall
	cleared     int
}

func (f *fakeBudgetService) Budget(_ context.Context, q query.Query) ([]ports.BudgetLine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	if f.err != nil {
		return nil, f.err
	}
	return []ports.BudgetLine{{PeriodID: q.PeriodID, GrouperID: 1, GrouperName: "Food", PaymentMethod: "cash", Budgeted: 100, Spent: 40, Remaining: 60}}, nil
}

func (f *fakeBudgetService) Preload(periodID string, estudioID *int) {
	f.preloads = append(f.preloads, scopeCall{periodID, estudioID})
}

func (f *fakeBudgetService) Warm(periodID string, estudioID *int) {
	f.warms = append(f.warms, scopeCall{periodID, estudioID})
}

func (f *fakeBudgetService) Invalidate(periodID *string, estudioID *int) int {
	call := scopeCall{estudioID: estudioID}
	if periodID != nil {
		call.periodID = *periodID
	}
	f.invalidated = append(f.invalidated, call)
	return 3
}

func (f *fakeBudgetService) Clear() {
	f.cleared++
}

type stubCollector struct {
	result map[string]interface{}
	err    error
}

func (s stubCollector) GetMetrics(context.Context) (map[string]interface{}, error) {
	return s.result, s.err
}

type stubHealth map[string]ports.HealthStatus

func (s stubHealth) CheckAll(context.Context) map[string]ports.HealthStatus {
	return s
}

type testServer struct {
	router      *gin.Engine
	budget      *fakeBudgetService
	monitor     *performance.Monitor
	deadLetters *mocks.DeadLetterLog
}

func setupTestServer(t *testing.T, opts ...func(*ServerOptions)) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ts := &testServer{
		budget:      &fakeBudgetService{},
		monitor:     performance.NewMonitor(performance.DefaultPolicy()),
		deadLetters: mocks.NewDeadLetterLog(t),
	}

	options := ServerOptions{
		Config:           ServerConfig{Port: 0},
		BudgetService:    ts.budget,
		Monitor:          ts.monitor,
		MetricsCollector: stubCollector{result: map[string]interface{}{"cache": map[string]int{"size": 2}}},
		DeadLetters:      ts.deadLetters,
		HealthChecker:    stubHealth{"cache": {Component: "cache", Status: "healthy"}},
	}
	for _, opt := range opts {
		opt(&options)
	}

	server, err := NewHTTPServerAdapter(options)
	require.NoError(t, err)

	ts.router = server.GetRouter()
	return ts
}

func (ts *testServer) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestServerOptions_Validate(t *testing.T) {
	full := ServerOptions{
		BudgetService:    &fakeBudgetService{},
		Monitor:          performance.NewMonitor(performance.DefaultPolicy()),
		MetricsCollector: stubCollector{},
		DeadLetters:      mocks.NewDeadLetterLog(t),
		HealthChecker:    stubHealth{},
	}
	require.NoError(t, full.Validate())

	tests := []struct {
		name   string
		mutate func(*ServerOptions)
	}{
		{"BudgetService", func(o *ServerOptions) { o.BudgetService = nil }},
		{"Monitor", func(o *ServerOptions) { o.Monitor = nil }},
		{"MetricsCollector", func(o *ServerOptions) { o.MetricsCollector = nil }},
		{"DeadLetters", func(o *ServerOptions) { o.DeadLetters = nil }},
		{"HealthChecker", func(o *ServerOptions) { o.HealthChecker = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := full
			tt.mutate(&opts)
			assert.True(t, errors.IsValidationError(opts.Validate()))

			server, err := NewHTTPServerAdapter(opts)
			assert.Nil(t, server)
			assert.Error(t, err)
		})
	}
}

func TestGetBudget(t *testing.T) {
	ts := setupTestServer(t)

	w := ts.do(http.MethodGet, "/api/budget?period=2024-05&estudio=4&groupers=3,1,3&payment=cash", "")
	require.Equal(t, http.StatusOK, w.Code)

	response := decode[BudgetResponse](t, w)
	assert.Equal(t, "2024-05|4|1,3|cash", response.Key)
	assert.Equal(t, 1, response.Count)
	assert.Equal(t, float64(60), response.Lines[0].Remaining)

	require.Len(t, ts.budget.queries, 1)
	assert.Equal(t, 4, *ts.budget.queries[0].EstudioID)
	assert.Equal(t, 1, ts.monitor.Metrics().RenderSamples)
}

func TestGetBudget_Unscoped(t *testing.T) {
	ts := setupTestServer(t)

	w := ts.do(http.MethodGet, "/api/budget", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "all|all|all|all", decode[BudgetResponse](t, w).Key)
}

func TestGetBudget_InvalidParameters(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{"PeriodWithSeparator", "/api/budget?period=2024|05"},
		{"EstudioNotNumber", "/api/budget?estudio=abc"},
		{"EstudioNegative", "/api/budget?estudio=-1"},
		{"Groupers", "/api/budget?groupers=1,x"},
		{"Payment", "/api/budget?payment=Cash"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := setupTestServer(t)

			w := ts.do(http.MethodGet, tt.target, "")
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Empty(t, ts.budget.queries)
		})
	}
}

func TestGetBudget_FetchErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"Database", errors.NewDatabaseError("query failed", nil), http.StatusInternalServerError, "Internal server error"},
		{"ExternalAPI", errors.NewExternalAPIError("upstream", nil), http.StatusServiceUnavailable, "External service unavailable"},
		{"NotFound", errors.NewNotFoundError("no such period"), http.StatusNotFound, "no such period"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := setupTestServer(t)
			ts.budget.err = tt.err

			w := ts.do(http.MethodGet, "/api/budget?period=2024-05", "")
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.message, decode[ErrorResponse](t, w).Error)
			assert.Equal(t, 0, ts.monitor.Metrics().RenderSamples)
		})
	}
}

func TestInvalidateCache(t *testing.T) {
	ts := setupTestServer(t)

	w := ts.do(http.MethodDelete, "/api/cache?period=2024-05&estudio=2", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, decode[InvalidateResponse](t, w).Removed)

	require.Len(t, ts.budget.invalidated, 1)
	assert.Equal(t, "2024-05", ts.budget.invalidated[0].periodID)
	assert.Equal(t, 2, *ts.budget.invalidated[0].estudioID)

	w = ts.do(http.MethodDelete, "/api/cache?estudio=7", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "", ts.budget.invalidated[1].periodID)

	w = ts.do(http.MethodDelete, "/api/cache", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, ts.budget.invalidated, 2)
}

func TestClearCache(t *testing.T) {
	ts := setupTestServer(t)

	w := ts.do(http.MethodDelete, "/api/cache/all", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, ts.budget.cleared)
}

func TestPreloadAndWarm(t *testing.T) {
	ts := setupTestServer(t)

	w := ts.do(http.MethodPost, "/api/cache/preload", `{"period_id":"2024-05","estudio_id":4}`)
	require.Equal(t, http.StatusAccepted, w.Code)
	require.Len(t, ts.budget.preloads, 1)
	assert.Equal(t, "2024-05", ts.budget.preloads[0].periodID)
	assert.Equal(t, 4, *ts.budget.preloads[0].estudioID)

	w = ts.do(http.MethodPost, "/api/cache/warm", `{"period_id":"2024-06"}`)
	require.Equal(t, http.StatusAccepted, w.Code)
	require.Len(t, ts.budget.warms, 1)
	assert.Nil(t, ts.budget.warms[0].estudioID)
}

func TestPreloadAndWarm_Invalid(t *testing.T) {
	bodies := map[string]string{
		"MissingPeriod": `{"estudio_id":4}`,
		"BadPeriod":     `{"period_id":"a|b"}`,
		"ZeroEstudio":   `{"period_id":"2024-05","estudio_id":0}`,
		"Malformed":     `{"period_id":`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			ts := setupTestServer(t)

			assert.Equal(t, http.StatusBadRequest, ts.do(http.MethodPost, "/api/cache/preload", body).Code)
			assert.Equal(t, http.StatusBadRequest, ts.do(http.MethodPost, "/api/cache/warm", body).Code)
			assert.Empty(t, ts.budget.preloads)
			assert.Empty(t, ts.budget.warms)
		})
	}
}

func TestGetCacheStats(t *testing.T) {
	ts := setupTestServer(t)

	w := ts.do(http.MethodGet, "/api/cache/stats", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"cache":{"size":2}}`, w.Body.String())

	failing := setupTestServer(t, func(o *ServerOptions) {
		o.MetricsCollector = stubCollector{err: context.Canceled}
	})
	assert.Equal(t, http.StatusInternalServerError, failing.do(http.MethodGet, "/api/cache/stats", "").Code)
}

func TestPerformanceEndpoints(t *testing.T) {
	ts := setupTestServer(t)

	w := ts.do(http.MethodGet, "/api/performance/grade", "")
	require.Equal(t, http.StatusOK, w.Code)
	grade := decode[GradeResponse](t, w)
	assert.Equal(t, 80, grade.Score)
	assert.Equal(t, performance.GradeB, grade.Grade)

	w = ts.do(http.MethodPost, "/api/performance/samples", `{"render_ms":250,"animation_ms":40,"memory_mb":8}`)
	require.Equal(t, http.StatusOK, w.Code)

	metrics := ts.monitor.Metrics()
	assert.Equal(t, 250*time.Millisecond, metrics.AverageRenderTime)
	assert.Equal(t, 40*time.Millisecond, metrics.AverageAnimationTime)
	assert.Equal(t, float64(8*performance.MiB), metrics.AverageMemoryUsage)

	w = ts.do(http.MethodGet, "/api/performance/recommendations", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decode[RecommendationsResponse](t, w).Recommendations)

	w = ts.do(http.MethodGet, "/api/performance/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode[map[string]interface{}](t, w)["render_samples"])

	w = ts.do(http.MethodDelete, "/api/performance", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, ts.monitor.Metrics().RenderSamples)
}

func TestRecordSamples_Invalid(t *testing.T) {
	ts := setupTestServer(t)

	assert.Equal(t, http.StatusBadRequest, ts.do(http.MethodPost, "/api/performance/samples", `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, ts.do(http.MethodPost, "/api/performance/samples", `{"render_ms":-1}`).Code)
	assert.Equal(t, 0, ts.monitor.Metrics().RenderSamples)
}

func TestGetDeadLetters(t *testing.T) {
	ts := setupTestServer(t)

	letters := []ports.DeadLetter{{ID: "1", Task: ports.TaskWarm, Key: "2024-05|all|all|all", Error: "timeout"}}
	ts.deadLetters.EXPECT().Recent(mock.Anything, 50).Return(letters, nil).Once()
	ts.deadLetters.EXPECT().Recent(mock.Anything, 5).Return(nil, errors.NewExternalAPIError("redis down", nil)).Once()

	w := ts.do(http.MethodGet, "/api/dead-letters", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string]interface{}](t, w)
	assert.Equal(t, float64(1), body["count"])

	w = ts.do(http.MethodGet, "/api/dead-letters?limit=5", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	for _, limit := range []string{"0", "501", "x"} {
		w = ts.do(http.MethodGet, "/api/dead-letters?limit="+limit, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
}

func TestGetHealth(t *testing.T) {
	ts := setupTestServer(t)

	w := ts.do(http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decode[HealthResponse](t, w).Status)

	down := setupTestServer(t, func(o *ServerOptions) {
		o.HealthChecker = stubHealth{
			"cache":        {Component: "cache", Status: "healthy"},
			"dead_letters": {Component: "dead_letters", Status: "unhealthy", Error: "connection refused"},
		}
	})
	w = down.do(http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "connection refused", decode[HealthResponse](t, w).Components["dead_letters"].Error)
}

func TestPrometheusEndpoint(t *testing.T) {
	ts := setupTestServer(t)

	w := ts.do(http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}
