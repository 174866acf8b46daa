package sangga

import "context"

// Trend is the direction of the local commercial market.
type Trend string

// Trend constants.
const (
	TrendUp     Trend = "UP"
	TrendDown   Trend = "DOWN"
	TrendStable Trend = "STABLE"
)

// Label returns the Korean label shown next to the trend icon.
// Unknown values are treated as stable.
func (t Trend) Label() string {
	switch t {
	case TrendUp:
		return "상승세"
	case TrendDown:
		return "하락세"
	default:
		return "보합세"
	}
}

// MarketInsight summarizes the market around a searched location.
type MarketInsight struct {
	Trend   Trend    `json:"trend"`
	Summary string   `json:"summary"`
	Pros    []string `json:"pros"`
	Cons    []string `json:"cons"`
}

// InsightProvider produces a market overview for a location.
type InsightProvider interface {
	// MarketInsight returns an overview for the location.
	// Returns EINVALID if location is empty.
	MarketInsight(ctx context.Context, location string) (*MarketInsight, error)
}
