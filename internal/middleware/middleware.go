// Package middleware holds the echo middleware installed by the router:
// request ids, the request-scoped logger, New Relic tracing, Clerk auth for
// the admin routes, the redis-backed registration limiter and the global
// error handler.
package middleware
