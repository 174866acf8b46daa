// Package slog provides logging decorators for sangga services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sangga"
)

// Ensure LoggingSearcher implements sangga.PropertySearcher.
var _ sangga.PropertySearcher = (*LoggingSearcher)(nil)

// LoggingSearcher wraps a PropertySearcher with logging.
type LoggingSearcher struct {
	next   sangga.PropertySearcher
	logger *slog.Logger
}

// NewLoggingSearcher creates a new LoggingSearcher.
func NewLoggingSearcher(next sangga.PropertySearcher, logger *slog.Logger) *LoggingSearcher {
	return &LoggingSearcher{next: next, logger: logger}
}

// SearchProperties delegates to the wrapped searcher and logs the call.
func (s *LoggingSearcher) SearchProperties(ctx context.Context, params sangga.SearchParams) (result *sangga.SearchResult, err error) {
	defer func(begin time.Time) {
		count, sources := 0, 0
		if result != nil {
			count, sources = len(result.Properties), len(result.Sources)
		}
		s.logger.Info("property search",
			"location", params.Location(),
			"categories", params.Categories,
			"deal_types", params.DealTypes,
			"count", count,
			"sources", sources,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SearchProperties(ctx, params)
}

// Ensure LoggingInsightProvider implements sangga.InsightProvider.
var _ sangga.InsightProvider = (*LoggingInsightProvider)(nil)

// LoggingInsightProvider wraps an InsightProvider with logging.
type LoggingInsightProvider struct {
	next   sangga.InsightProvider
	logger *slog.Logger
}

// NewLoggingInsightProvider creates a new LoggingInsightProvider.
func NewLoggingInsightProvider(next sangga.InsightProvider, logger *slog.Logger) *LoggingInsightProvider {
	return &LoggingInsightProvider{next: next, logger: logger}
}

// MarketInsight delegates to the wrapped provider and logs the call.
func (p *LoggingInsightProvider) MarketInsight(ctx context.Context, location string) (insight *sangga.MarketInsight, err error) {
	defer func(begin time.Time) {
		trend := ""
		if insight != nil {
			trend = string(insight.Trend)
		}
		p.logger.Info("market insight",
			"location", location,
			"trend", trend,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.MarketInsight(ctx, location)
}

// Ensure LoggingSearchService implements sangga.SearchService.
var _ sangga.SearchService = (*LoggingSearchService)(nil)

// LoggingSearchService wraps a SearchService with logging.
type LoggingSearchService struct {
	next   sangga.SearchService
	logger *slog.Logger
}

// NewLoggingSearchService creates a new LoggingSearchService.
func NewLoggingSearchService(next sangga.SearchService, logger *slog.Logger) *LoggingSearchService {
	return &LoggingSearchService{next: next, logger: logger}
}

// Search delegates to the wrapped service and logs the call. Rejected
// and failed searches are logged at warn level.
func (s *LoggingSearchService) Search(ctx context.Context, key string, params sangga.SearchParams) (outcome *sangga.SearchOutcome, err error) {
	defer func(begin time.Time) {
		level := slog.LevelInfo
		if err != nil {
			level = slog.LevelWarn
		}
		s.logger.Log(ctx, level, "search",
			"key", key,
			"location", params.Location(),
			"code", sangga.ErrorCode(err),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, key, params)
}
