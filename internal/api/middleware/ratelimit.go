package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bitewise/meal-tracker/internal/api/metrics"
	"github.com/bitewise/meal-tracker/internal/core/domain"
	"github.com/bitewise/meal-tracker/internal/core/ports"
)

// ContextClientKey is the echo context key under which the derived client key
// is stored for downstream handlers.
const ContextClientKey = "client_key"

// ClientKey derives the rate-limit key for a request: the first entry of
// X-Forwarded-For, else X-Real-IP, else the sentinel "unknown".
func ClientKey(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if i := strings.Index(xff, ","); i >= 0 {
			return strings.TrimSpace(xff[:i])
		}
		return strings.TrimSpace(xff)
	}
	if rip := r.Header.Get("X-Real-IP"); rip != "" {
		return rip
	}
	return "unknown"
}

// RateLimit gate-keeps a route with the given limiter. Denial short-circuits
// before any authentication or merge logic runs. A limiter backend error
// fails open: blocking all traffic on a Redis hiccup would be worse than
// briefly losing the limit.
func RateLimit(limiter ports.RateLimiter, route string, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := ClientKey(c.Request())
			c.Set(ContextClientKey, key)

			allowed, err := limiter.Allow(c.Request().Context(), key)
			if err != nil {
				log.Warn().Err(err).Str("route", route).Msg("rate limiter unavailable, failing open")
				return next(c)
			}
			if !allowed {
				metrics.RateLimitedTotal.WithLabelValues(route).Inc()
				return domain.ErrRateLimited
			}

			return next(c)
		}
	}
}
