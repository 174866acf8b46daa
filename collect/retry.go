package collect

import (
	"context"
	"time"

	"github.com/fwojciec/sangga"
)

// RetryFunc is called before each retry with the attempt about to run
// and the error that caused it.
type RetryFunc func(attempt int, err error)

// DefaultRetryDelays returns the backoff delays for search retries: 1s, 2s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second}
}

// Retryable reports whether err is worth retrying. Only EUNAVAILABLE
// failures are; invalid input or broken answers will not improve.
func Retryable(err error) bool {
	return sangga.ErrorCode(err) == sangga.EUNAVAILABLE
}

// SearchWithRetry runs search, retrying retryable failures once per delay.
func SearchWithRetry(ctx context.Context, params sangga.SearchParams, searcher sangga.PropertySearcher, delays []time.Duration, onRetry RetryFunc) (*sangga.SearchResult, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		result, err := searcher.SearchProperties(ctx, params)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !Retryable(err) || attempt >= maxAttempts-1 {
			break
		}

		if onRetry != nil {
			onRetry(attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return nil, lastErr
}
