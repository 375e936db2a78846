package ports

import "context"

// RateLimiter gate-keeps requests per client key. Allow reports whether the
// key may proceed inside the current window; a denied key is not counted
// further.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
