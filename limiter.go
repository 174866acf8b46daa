package sangga

import "context"

// ErrRateLimited is returned when a caller exceeds its search rate.
var ErrRateLimited = Errorf(EUNAVAILABLE, "too many searches, try again shortly")

// RateLimiter provides per-key rate limiting of expensive operations.
type RateLimiter interface {
	// Wait blocks until the rate limit allows an operation for key.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, key string) error

	// Allow reports whether an operation for key may proceed now,
	// consuming a token if so.
	Allow(key string) bool
}
