package mock

import (
	"context"

	"github.com/fwojciec/sangga"
)

var _ sangga.SearchService = (*SearchService)(nil)

// SearchService is a mock implementation of sangga.SearchService.
type SearchService struct {
	SearchFn func(ctx context.Context, key string, params sangga.SearchParams) (*sangga.SearchOutcome, error)
}

func (s *SearchService) Search(ctx context.Context, key string, params sangga.SearchParams) (*sangga.SearchOutcome, error) {
	return s.SearchFn(ctx, key, params)
}
