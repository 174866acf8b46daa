package mock

import (
	"context"

	"github.com/fwojciec/sangga"
)

var _ sangga.RateLimiter = (*RateLimiter)(nil)

// RateLimiter is a mock implementation of sangga.RateLimiter.
type RateLimiter struct {
	WaitFn  func(ctx context.Context, key string) error
	AllowFn func(key string) bool
}

func (l *RateLimiter) Wait(ctx context.Context, key string) error {
	return l.WaitFn(ctx, key)
}

func (l *RateLimiter) Allow(key string) bool {
	return l.AllowFn(key)
}
