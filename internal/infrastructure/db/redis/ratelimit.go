package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter implements a fixed-window request limiter with windows shared
// across all service instances. Each window is a counter under
// ratelimit:<name>:<client key>, created with a TTL equal to the window
// duration; the key expiring is the window reset.
type RateLimiter struct {
	client   *redis.Client
	name     string
	capacity int64
	window   time.Duration
}

// NewRateLimiter creates a limiter named name (part of the key space, so
// different endpoints get independent windows) allowing capacity requests
// per window.
func NewRateLimiter(client *redis.Client, name string, capacity int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		client:   client,
		name:     name,
		capacity: int64(capacity),
		window:   window,
	}
}

// Allow increments the caller's window counter and reports whether it is
// still within capacity. INCR followed by EXPIRE NX keeps the pair atomic
// enough: the expiry is only attached once per window.
func (l *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := fmt.Sprintf("ratelimit:%s:%s", l.name, key)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.ExpireNX(ctx, k, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limit incr: %w", err)
	}

	return incr.Val() <= l.capacity, nil
}
