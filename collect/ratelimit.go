package collect

import (
	"context"
	"sync"
	"time"

	"github.com/fwojciec/sangga"
	"golang.org/x/time/rate"
)

var _ sangga.RateLimiter = (*KeyLimiter)(nil)

// KeyLimiter provides per-key rate limiting using token buckets.
// Each key gets its own limiter so one busy session cannot starve another.
type KeyLimiter struct {
	mu       sync.Mutex
	limiters map[string]*keyBucket
	limit    rate.Limit
	burst    int
	now      func() time.Time
}

type keyBucket struct {
	limiter *rate.Limiter
	used    time.Time
}

// NewKeyLimiter creates a new KeyLimiter allowing rps operations per second
// per key with the given burst. A burst below 1 is treated as 1.
func NewKeyLimiter(rps float64, burst int) *KeyLimiter {
	if burst < 1 {
		burst = 1
	}
	return &KeyLimiter{
		limiters: make(map[string]*keyBucket),
		limit:    rate.Limit(rps),
		burst:    burst,
		now:      time.Now,
	}
}

func (l *KeyLimiter) bucket(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.limiters[key]
	if !ok {
		b = &keyBucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[key] = b
	}
	b.used = l.now()
	return b.limiter
}

// Wait blocks until the rate limit allows an operation for key.
// Returns an error if the context is canceled before the wait completes.
func (l *KeyLimiter) Wait(ctx context.Context, key string) error {
	return l.bucket(key).Wait(ctx)
}

// Allow reports whether an operation for key may proceed now.
func (l *KeyLimiter) Allow(key string) bool {
	return l.bucket(key).Allow()
}

// Prune forgets keys unused for longer than idle and returns how many
// were removed.
func (l *KeyLimiter) Prune(idle time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	cutoff := l.now().Add(-idle)
	n := 0
	for key, b := range l.limiters {
		if b.used.Before(cutoff) {
			delete(l.limiters, key)
			n++
		}
	}
	return n
}

// Len returns the number of tracked keys.
func (l *KeyLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}
