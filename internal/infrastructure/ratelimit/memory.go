// Package ratelimit provides the in-process fixed-window rate limiter used
// when no shared Redis store is configured. Windows are per instance; a
// horizontally scaled deployment should prefer the Redis-backed limiter.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

type window struct {
	count   int
	startAt time.Time
}

// Limiter is a fixed-window counter keyed by client key.
type Limiter struct {
	mu       sync.Mutex
	windows  map[string]*window
	capacity int
	duration time.Duration
	now      func() time.Time
}

// NewLimiter creates a Limiter allowing capacity requests per window.
func NewLimiter(capacity int, duration time.Duration) *Limiter {
	return &Limiter{
		windows:  make(map[string]*window),
		capacity: capacity,
		duration: duration,
		now:      time.Now,
	}
}

// Allow reports whether the key may proceed. The first request from a key
// opens its window at count 1; an elapsed window resets to count 1; inside
// the window the counter increments until capacity, after which requests are
// denied without counting further.
func (l *Limiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	w, ok := l.windows[key]
	if !ok || now.Sub(w.startAt) > l.duration {
		l.windows[key] = &window{count: 1, startAt: now}
		return true, nil
	}

	if w.count >= l.capacity {
		return false, nil
	}
	w.count++
	return true, nil
}
