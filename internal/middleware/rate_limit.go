package middleware

import (
	"fmt"
	"strconv"
	"time"

	"github.com/JoshuaHenriques/store-management-rest-api/internal/errs"
	"github.com/JoshuaHenriques/store-management-rest-api/internal/server"
	"github.com/labstack/echo/v4"
)

const rateLimitKeyPrefix = "ratelimit"

// RateLimitMiddleware enforces fixed-window request limits per client IP,
// counting hits in Redis.
type RateLimitMiddleware struct {
	server *server.Server
	now    func() time.Time
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
		now:    time.Now,
	}
}

// RecordRateLimitHit reports a rejected request to New Relic as a custom event.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if r.server.LoggerService != nil && r.server.LoggerService.GetApplication() != nil {
		r.server.LoggerService.GetApplication().RecordCustomEvent("RateLimitHit", map[string]interface{}{
			"endpoint": endpoint,
		})
	}
}

// Limit allows at most limit requests per client IP within each window on endpoint.
// A non-positive limit or a missing Redis client disables the check. Redis
// failures let the request through.
func (r *RateLimitMiddleware) Limit(endpoint string, limit int, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if limit <= 0 || window <= 0 || r.server.Redis == nil {
			return next
		}

		return func(c echo.Context) error {
			ctx := c.Request().Context()
			windowStart := r.now().UnixNano() / int64(window)
			key := fmt.Sprintf("%s:%s:%s:%d", rateLimitKeyPrefix, endpoint, c.RealIP(), windowStart)

			pipe := r.server.Redis.TxPipeline()
			hits := pipe.Incr(ctx, key)
			pipe.Expire(ctx, key, window)
			if _, err := pipe.Exec(ctx); err != nil {
				GetLogger(c).Warn().Err(err).Str("endpoint", endpoint).Msg("rate limiter unavailable")
				return next(c)
			}

			count := hits.Val()
			remaining := int64(limit) - count
			if remaining < 0 {
				remaining = 0
			}

			header := c.Response().Header()
			header.Set("X-RateLimit-Limit", strconv.Itoa(limit))
			header.Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if count > int64(limit) {
				r.RecordRateLimitHit(endpoint)
				header.Set("Retry-After", strconv.Itoa(int(window.Seconds())))
				return errs.NewTooManyRequestsError("Too many requests, please try again later")
			}

			return next(c)
		}
	}
}
