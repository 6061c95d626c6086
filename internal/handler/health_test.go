package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/JoshuaHenriques/store-management-rest-api/internal/config"
	"github.com/JoshuaHenriques/store-management-rest-api/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func healthServer() *server.Server {
	logger := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{
			Primary:       config.Primary{Env: "test"},
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger: &logger,
	}
}

func checkHealth(t *testing.T, h *HealthHandler) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/status", nil), rec)

	require.NoError(t, h.CheckHealth(c))
	return rec, decode[map[string]interface{}](t, rec)
}

func TestNewHealthHandlerSkipsMissingDependencies(t *testing.T) {
	h := NewHealthHandler(healthServer())

	assert.Empty(t, h.checks)
	assert.Equal(t, 5*time.Second, h.timeout)
}

func TestCheckHealthHealthy(t *testing.T) {
	h := NewHealthHandler(healthServer())
	h.checks = []HealthCheck{
		{Name: "database", Critical: true, Ping: func(context.Context) error { return nil }},
		{Name: "redis", Ping: func(context.Context) error { return nil }},
	}

	rec, body := checkHealth(t, h)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "test", body["environment"])
	assert.Len(t, body["checks"], 2)
}

func TestCheckHealthNonCriticalFailure(t *testing.T) {
	h := NewHealthHandler(healthServer())
	h.checks = []HealthCheck{
		{Name: "database", Critical: true, Ping: func(context.Context) error { return nil }},
		{Name: "redis", Ping: func(context.Context) error { return errors.New("connection refused") }},
	}

	rec, body := checkHealth(t, h)

	assert.Equal(t, http.StatusOK, rec.Code)
	checks := body["checks"].(map[string]interface{})
	assert.Equal(t, "unhealthy", checks["redis"].(map[string]interface{})["status"])
}

func TestCheckHealthCriticalFailure(t *testing.T) {
	h := NewHealthHandler(healthServer())
	h.checks = []HealthCheck{
		{Name: "database", Critical: true, Ping: func(ctx context.Context) error {
			if _, ok := ctx.Deadline(); !ok {
				return errors.New("missing deadline")
			}
			return errors.New("pool exhausted")
		}},
	}

	rec, body := checkHealth(t, h)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "unhealthy", body["status"])
	checks := body["checks"].(map[string]interface{})
	assert.Equal(t, "pool exhausted", checks["database"].(map[string]interface{})["error"])
}

func TestServeOpenAPIUI(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "openapi.html"), []byte("<html>docs</html>"), 0o600))

	h := NewOpenAPIHandler(healthServer())
	h.staticDir = dir

	e := echo.New()
	rec := httptest.NewRecorder()
	require.NoError(t, h.ServeOpenAPIUI(e.NewContext(httptest.NewRequest(http.MethodGet, "/docs", nil), rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
	assert.Contains(t, rec.Body.String(), "docs")

	h.staticDir = filepath.Join(dir, "missing")
	assert.Error(t, h.ServeOpenAPIUI(e.NewContext(httptest.NewRequest(http.MethodGet, "/docs", nil), httptest.NewRecorder())))
}
