package mock

import (
	"context"

	"github.com/fwojciec/sangga"
)

var _ sangga.PropertySearcher = (*PropertySearcher)(nil)

// PropertySearcher is a mock implementation of sangga.PropertySearcher.
type PropertySearcher struct {
	SearchPropertiesFn func(ctx context.Context, params sangga.SearchParams) (*sangga.SearchResult, error)
}

func (s *PropertySearcher) SearchProperties(ctx context.Context, params sangga.SearchParams) (*sangga.SearchResult, error) {
	return s.SearchPropertiesFn(ctx, params)
}
