package mock

import (
	"context"

	"github.com/fwojciec/sangga"
)

var _ sangga.InsightProvider = (*InsightProvider)(nil)

// InsightProvider is a mock implementation of sangga.InsightProvider.
type InsightProvider struct {
	MarketInsightFn func(ctx context.Context, location string) (*sangga.MarketInsight, error)
}

func (p *InsightProvider) MarketInsight(ctx context.Context, location string) (*sangga.MarketInsight, error) {
	return p.MarketInsightFn(ctx, location)
}
