package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bitewise/meal-tracker/internal/core/domain"
	"github.com/bitewise/meal-tracker/internal/infrastructure/ratelimit"
)

func TestClientKey_ForwardedFor(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	if key := ClientKey(req); key != "203.0.113.7" {
		t.Fatalf("expected first forwarded entry, got %q", key)
	}
}

func TestClientKey_RealIPFallback(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("X-Real-IP", "198.51.100.2")
	if key := ClientKey(req); key != "198.51.100.2" {
		t.Fatalf("expected real-ip fallback, got %q", key)
	}
}

func TestClientKey_UnknownSentinel(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	if key := ClientKey(req); key != "unknown" {
		t.Fatalf("expected sentinel, got %q", key)
	}
}

func TestRateLimit_DeniesOverCapacity(t *testing.T) {
	e := echo.New()
	limiter := ratelimit.NewLimiter(1, time.Minute)
	mw := RateLimit(limiter, "merge", zerolog.Nop())

	calls := 0
	h := mw(func(c echo.Context) error {
		calls++
		return c.NoContent(http.StatusOK)
	})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("X-Real-IP", "198.51.100.2")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := h(c)
		if i == 0 && err != nil {
			t.Fatalf("first request denied: %v", err)
		}
		if i == 1 && !errors.Is(err, domain.ErrRateLimited) {
			t.Fatalf("expected ErrRateLimited, got %v", err)
		}
	}
	if calls != 1 {
		t.Fatalf("handler ran %d times, want 1", calls)
	}
}

func TestRateLimit_StoresClientKey(t *testing.T) {
	e := echo.New()
	limiter := ratelimit.NewLimiter(5, time.Minute)
	mw := RateLimit(limiter, "merge", zerolog.Nop())

	h := mw(func(c echo.Context) error {
		if key, _ := c.Get(ContextClientKey).(string); key != "203.0.113.7" {
			t.Fatalf("client key not stored, got %q", key)
		}
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7")
	rec := httptest.NewRecorder()
	if err := h(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (bool, error) {
	return false, errors.New("backend down")
}

func TestRateLimit_FailsOpenOnLimiterError(t *testing.T) {
	e := echo.New()
	mw := RateLimit(failingLimiter{}, "merge", zerolog.Nop())

	called := false
	h := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	if err := h(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("expected fail-open to reach the handler")
	}
}
