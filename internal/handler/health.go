package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/JoshuaHenriques/store-management-rest-api/internal/middleware"
	"github.com/JoshuaHenriques/store-management-rest-api/internal/server"
	"github.com/labstack/echo/v4"
)

// HealthCheck probes a single dependency.
type HealthCheck struct {
	Name string

	// Critical checks turn the whole report unhealthy when they fail.
	Critical bool
	Ping     func(ctx context.Context) error
}

// HealthHandler reports liveness and dependency health on /status.
type HealthHandler struct {
	Handler
	checks  []HealthCheck
	timeout time.Duration
}

// NewHealthHandler builds the checks listed in observability.health_checks.
// The database is critical; registration keeps working without Redis.
func NewHealthHandler(s *server.Server) *HealthHandler {
	h := &HealthHandler{
		Handler: NewHandler(s),
		timeout: 5 * time.Second,
	}

	obs := s.Config.Observability
	if obs == nil || !obs.HealthChecks.Enabled {
		return h
	}
	h.timeout = obs.HealthCheckTimeout()

	for _, name := range obs.HealthChecks.Checks {
		switch name {
		case "database":
			if s.DB != nil {
				h.checks = append(h.checks, HealthCheck{Name: name, Critical: true, Ping: s.DB.Pool.Ping})
			}
		case "redis":
			if s.Redis != nil {
				h.checks = append(h.checks, HealthCheck{Name: name, Ping: func(ctx context.Context) error {
					return s.Redis.Ping(ctx).Err()
				}})
			}
		}
	}

	return h
}

// CheckHealth answers 200 when every critical check passes and 503 otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := make(map[string]interface{}, len(h.checks))
	isHealthy := true

	for _, check := range h.checks {
		ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
		checkStart := time.Now()
		err := check.Ping(ctx)
		cancel()

		if err != nil {
			checks[check.Name] = map[string]interface{}{
				"status":        "unhealthy",
				"response_time": time.Since(checkStart).String(),
				"error":         err.Error(),
			}
			if check.Critical {
				isHealthy = false
			}

			logger.Error().
				Err(err).
				Str("check", check.Name).
				Dur("response_time", time.Since(checkStart)).
				Msg("health check failed")

			h.recordHealthCheckError(check.Name, time.Since(checkStart), err)
			continue
		}

		checks[check.Name] = map[string]interface{}{
			"status":        "healthy",
			"response_time": time.Since(checkStart).String(),
		}
	}

	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}

func (h *HealthHandler) recordHealthCheckError(check string, took time.Duration, err error) {
	if h.server.LoggerService == nil || h.server.LoggerService.GetApplication() == nil {
		return
	}

	h.server.LoggerService.GetApplication().RecordCustomEvent(
		"HealthCheckError",
		map[string]interface{}{
			"check_type":       check,
			"operation":        "health_check",
			"error_type":       check + "_unhealthy",
			"response_time_ms": took.Milliseconds(),
			"error_message":    err.Error(),
		},
	)
}
