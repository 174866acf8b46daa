// Package collect orchestrates a complete property search: listings from a
// PropertySearcher and a market overview from an InsightProvider, fetched
// concurrently.
package collect

import (
	"context"
	"time"

	"github.com/fwojciec/sangga"
	"golang.org/x/sync/errgroup"
)

var _ sangga.SearchService = (*Collector)(nil)

// Collector implements sangga.SearchService.
type Collector struct {
	Searcher sangga.PropertySearcher
	Insights sangga.InsightProvider
	Limiter  sangga.RateLimiter

	// Block makes rate-limited callers wait for a token instead of
	// failing with EUNAVAILABLE.
	Block bool

	RetryDelays []time.Duration
	OnRetry     RetryFunc
}

// Search validates params, applies the rate limit for key and runs the
// listing search and the insight request concurrently. The insight is nil
// when no provider is configured or the provider fails.
func (c *Collector) Search(ctx context.Context, key string, params sangga.SearchParams) (*sangga.SearchOutcome, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	if c.Limiter != nil {
		if c.Block {
			if err := c.Limiter.Wait(ctx, key); err != nil {
				return nil, err
			}
		} else if !c.Limiter.Allow(key) {
			return nil, sangga.ErrRateLimited
		}
	}

	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	outcome := &sangga.SearchOutcome{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		result, err := SearchWithRetry(gctx, params, c.Searcher, delays, c.OnRetry)
		if err != nil {
			return err
		}
		outcome.Result = result
		return nil
	})

	if c.Insights != nil {
		g.Go(func() error {
			insight, err := c.Insights.MarketInsight(gctx, params.Location())
			if err == nil {
				outcome.Insight = insight
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcome, nil
}
