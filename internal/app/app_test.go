package app

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxscorecli/internal/config"
	"boxscorecli/internal/shared/testutil"
	api "boxscorecli/pkg/contracts/api/v1"
)

func newTestApplication(t *testing.T, mutate func(*config.Config)) *Application {
	t.Helper()
	cfg := config.Default()
	cfg.Telemetry.EnableTracing = false
	cfg.Security.RateLimit.Enabled = false
	cfg.Pipeline.InputDir = filepath.Join(t.TempDir(), "input")
	cfg.Pipeline.OutputDir = filepath.Join(t.TempDir(), "output")
	if mutate != nil {
		mutate(cfg)
	}

	logger, _ := testutil.NewTestLogger(t)
	app, err := NewApplicationWithConfig(cfg, logger)
	require.NoError(t, err)
	return app
}

func serve(app *Application, method, target string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

func featureBody(t *testing.T) io.Reader {
	t.Helper()
	half, q3 := testutil.SampleGame()
	data, err := json.Marshal(api.FeatureRequest{Half: half, ThirdQuarter: q3})
	require.NoError(t, err)
	return bytes.NewReader(data)
}

func TestNewApplicationWithConfig(t *testing.T) {
	_, err := NewApplicationWithConfig(nil, nil)
	assert.Error(t, err)

	app := newTestApplication(t, func(cfg *config.Config) { cfg.Server.Port = 9191 })
	assert.Equal(t, ":9191", app.Server.Addr)
	assert.NotNil(t, app.Services.Features)
	assert.NotNil(t, app.Services.Health)
	assert.NotNil(t, app.Metrics)
	assert.NotNil(t, app.OTelProviders.PrometheusHTTP)
}

func TestNewApplicationCreatesDirectories(t *testing.T) {
	out := filepath.Join(t.TempDir(), "features")
	app := newTestApplication(t, func(cfg *config.Config) { cfg.Pipeline.OutputDir = out })

	require.NotNil(t, app.Paths)
	assert.Equal(t, out, app.Paths.OutputDir)
	assert.DirExists(t, app.Paths.InputDir)
	assert.DirExists(t, out)
}

func TestHealthRoute(t *testing.T) {
	app := newTestApplication(t, nil)

	rec := serve(app, http.MethodGet, "/api/health", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))

	var health api.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "ok", health.Status)
}

func TestFeaturesRoute(t *testing.T) {
	app := newTestApplication(t, func(cfg *config.Config) { cfg.Pipeline.Profile = "model" })

	rec := serve(app, http.MethodPost, "/api/v1/features", featureBody(t), "application/json")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp api.FeatureResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Headers, 15)
	assert.Len(t, resp.Rows, 2)
	assert.Equal(t, 2, resp.Stats.OutputRows)
}

func TestFeaturesRouteRejectsContentType(t *testing.T) {
	app := newTestApplication(t, nil)

	rec := serve(app, http.MethodPost, "/api/v1/features", strings.NewReader("half,3q"), "text/csv")
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestUnknownRoutes(t *testing.T) {
	app := newTestApplication(t, nil)

	rec := serve(app, http.MethodGet, "/api/v2/nothing", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":404`)

	rec = serve(app, http.MethodDelete, "/api/health", nil, "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestMetricsRoute(t *testing.T) {
	app := newTestApplication(t, nil)

	serve(app, http.MethodPost, "/api/v1/features", featureBody(t), "application/json")

	rec := serve(app, http.MethodGet, "/metrics", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "http_requests_total")
	assert.Contains(t, body, "pipeline_output_rows_total")
}

func TestMetricsRouteDisabled(t *testing.T) {
	app := newTestApplication(t, func(cfg *config.Config) { cfg.Telemetry.EnableMetrics = false })

	rec := serve(app, http.MethodGet, "/metrics", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRateLimitedRoutes(t *testing.T) {
	app := newTestApplication(t, func(cfg *config.Config) {
		cfg.Security.RateLimit.Enabled = true
		cfg.Security.RateLimit.RPS = 0.001
		cfg.Security.RateLimit.Burst = 1
	})

	first := serve(app, http.MethodGet, "/api/health", nil, "")
	second := serve(app, http.MethodGet, "/api/health", nil, "")
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}
