package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/JoshuaHenriques/store-management-rest-api/internal/config"
	"github.com/JoshuaHenriques/store-management-rest-api/internal/errs"
	"github.com/JoshuaHenriques/store-management-rest-api/internal/server"
	"github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer(t *testing.T) *server.Server {
	t.Helper()
	logger := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{},
		Logger: &logger,
	}
}

func newEcho(s *server.Server) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = NewGlobalMiddlewares(s).GlobalErrorHandler
	return e
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errs.HTTPError {
	t.Helper()
	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRateLimitRejectsPastLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	s := testServer(t)
	s.Redis = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = s.Redis.Close() })

	limiter := NewRateLimitMiddleware(s)
	limiter.now = func() time.Time { return time.Date(2024, 1, 1, 12, 0, 30, 0, time.UTC) }

	e := newEcho(s)
	e.POST("/register", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, limiter.Limit("register", 3, time.Minute))

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/register", nil))
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i+1)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/register", nil))

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "TOO_MANY_REQUESTS", decodeError(t, rec).Code)
}

func TestRateLimitIgnoresForwardedForFromUntrustedPeer(t *testing.T) {
	mr := miniredis.RunT(t)
	s := testServer(t)
	s.Redis = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = s.Redis.Close() })

	limiter := NewRateLimitMiddleware(s)
	limiter.now = func() time.Time { return time.Date(2024, 1, 1, 12, 0, 30, 0, time.UTC) }

	e := newEcho(s)
	e.IPExtractor = NewIPExtractor(nil)
	e.POST("/register", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, limiter.Limit("register", 3, time.Minute))

	codes := make([]int, 0, 6)
	for i := 0; i < 6; i++ {
		req := httptest.NewRequest(http.MethodPost, "/register", nil)
		req.RemoteAddr = "203.0.113.7:40000"
		req.Header.Set(echo.HeaderXForwardedFor, fmt.Sprintf("10.0.0.%d", i))
		req.Header.Set(echo.HeaderXRealIP, fmt.Sprintf("10.0.1.%d", i))
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{200, 200, 200, 429, 429, 429}, codes)
}

func TestIPExtractorHonoursTrustedProxy(t *testing.T) {
	extract := NewIPExtractor([]string{"203.0.113.0/24"})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.7:40000"
	req.Header.Set(echo.HeaderXForwardedFor, "198.51.100.20")
	assert.Equal(t, "198.51.100.20", extract(req))

	untrusted := httptest.NewRequest(http.MethodGet, "/", nil)
	untrusted.RemoteAddr = "192.0.2.50:40000"
	untrusted.Header.Set(echo.HeaderXForwardedFor, "198.51.100.20")
	assert.Equal(t, "192.0.2.50", extract(untrusted))
}

func TestRateLimitWindowsAreIndependent(t *testing.T) {
	mr := miniredis.RunT(t)
	s := testServer(t)
	s.Redis = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = s.Redis.Close() })

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewRateLimitMiddleware(s)
	limiter.now = func() time.Time { return now }

	e := newEcho(s)
	e.POST("/register", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, limiter.Limit("register", 1, time.Minute))

	send := func() int {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/register", nil))
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send())
	assert.Equal(t, http.StatusTooManyRequests, send())

	now = now.Add(time.Minute)
	assert.Equal(t, http.StatusOK, send())

	key := fmt.Sprintf("ratelimit:register:192.0.2.1:%d", now.UnixNano()/int64(time.Minute))
	assert.True(t, mr.Exists(key))
	assert.Equal(t, time.Minute, mr.TTL(key))
}

func TestRateLimitFailsOpenWithoutRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	s := testServer(t)
	s.Redis = redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = s.Redis.Close() })
	mr.Close()

	e := newEcho(s)
	e.POST("/register", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, NewRateLimitMiddleware(s).Limit("register", 1, time.Minute))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/register", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestGlobalErrorHandlerMapsRegistrationErrors(t *testing.T) {
	s := testServer(t)
	e := newEcho(s)
	e.POST("/exists", func(c echo.Context) error {
		return errs.NewCustomerAlreadyExistsError("email", "Customer already exists with this email")
	})
	e.POST("/postal", func(c echo.Context) error {
		return fmt.Errorf("register: %w", errs.NewInvalidPostalCodeError("Invalid postal code", "bad format"))
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/exists", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, errs.CodeCustomerAlreadyExists, body.Code)
	assert.Equal(t, "Customer already exists with this email", body.Message)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/postal", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body = decodeError(t, rec)
	assert.Equal(t, errs.CodeInvalidPostalCode, body.Code)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "address.postal_code", body.Errors[0].Field)
}

func TestGlobalErrorHandlerNotFoundAndUnknown(t *testing.T) {
	s := testServer(t)
	e := newEcho(s)
	e.GET("/missing", func(c echo.Context) error {
		return fmt.Errorf("table:customers: %w", pgx.ErrNoRows)
	})
	e.GET("/boom", func(c echo.Context) error {
		return fmt.Errorf("unexpected")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Customer not found", decodeError(t, rec).Message)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal Server Error", decodeError(t, rec).Message)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/no-such-route", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", decodeError(t, rec).Message)
}

func TestGlobalErrorHandlerHeadHasNoBody(t *testing.T) {
	s := testServer(t)
	e := newEcho(s)
	e.HEAD("/customer", func(c echo.Context) error {
		return errs.NewNotFoundError("Customer not found", false, nil)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodHead, "/customer", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestRequestIDReusesHeader(t *testing.T) {
	e := echo.New()
	e.Use(RequestID())
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, GetRequestID(c))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Body.String())
	assert.Equal(t, "req-123", rec.Header().Get(RequestIDHeader))

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, rec.Header().Get(RequestIDHeader), 36)
}

func TestEnhanceContextStoresLogger(t *testing.T) {
	s := testServer(t)
	e := echo.New()
	e.Use(RequestID(), NewContextEnhancer(s).EnhanceContext())
	e.GET("/", func(c echo.Context) error {
		if GetLogger(c) == nil || zerolog.Ctx(c.Request().Context()) == nil {
			return c.NoContent(http.StatusInternalServerError)
		}
		return c.NoContent(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
