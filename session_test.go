package sangga_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/sangga"
	"github.com/fwojciec/sangga/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSearchableSession(t *testing.T) *sangga.Session {
	t.Helper()
	s := sangga.NewSession("s-1", nil)
	require.NoError(t, s.UpdateParams(func(p *sangga.SearchParams) error {
		p.SelectRegion("서울특별시")
		return nil
	}))
	return s
}

func TestNewSession(t *testing.T) {
	t.Parallel()

	s := sangga.NewSession("s-1", nil)
	state := s.State()

	assert.Equal(t, "s-1", s.ID)
	assert.Equal(t, sangga.ViewList, state.View)
	assert.Equal(t, sangga.DefaultSearchParams(), state.Params)
	assert.False(t, state.Loading)
	assert.False(t, state.HasResults())
}

func TestSession_UpdateParams(t *testing.T) {
	t.Parallel()

	t.Run("applies changes", func(t *testing.T) {
		t.Parallel()

		s := sangga.NewSession("s-1", nil)
		err := s.UpdateParams(func(p *sangga.SearchParams) error {
			p.ToggleCategory(sangga.CategoryRetailOffice)
			return nil
		})

		require.NoError(t, err)
		params := s.Params()
		assert.True(t, params.HasCategory(sangga.CategoryRetailOffice))
	})

	t.Run("discards changes on error", func(t *testing.T) {
		t.Parallel()

		s := sangga.NewSession("s-1", nil)
		err := s.UpdateParams(func(p *sangga.SearchParams) error {
			p.Region = "경기도"
			return p.SetRange(sangga.RangeRent, 0, "x")
		})

		require.Error(t, err)
		assert.Empty(t, s.Params().Region)
	})
}

func TestSession_BeginSearch(t *testing.T) {
	t.Parallel()

	t.Run("does nothing without region", func(t *testing.T) {
		t.Parallel()

		s := sangga.NewSession("s-1", nil)

		_, ok, err := s.BeginSearch()

		require.NoError(t, err)
		assert.False(t, ok)
		assert.False(t, s.State().Loading)
	})

	t.Run("enters loading and clears previous outcome", func(t *testing.T) {
		t.Parallel()

		s := newSearchableSession(t)
		_, _, _ = s.BeginSearch()
		s.FinishSearch(&sangga.SearchResult{Properties: []*sangga.Property{{ID: "a"}}}, nil, nil)
		_, err := s.SelectProperty("a")
		require.NoError(t, err)

		params, ok, err := s.BeginSearch()

		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "서울특별시", params.Region)
		state := s.State()
		assert.True(t, state.Loading)
		assert.Empty(t, state.Properties)
		assert.Empty(t, state.Error)
		assert.Equal(t, sangga.ViewList, state.View)
		assert.Nil(t, state.Selected)
	})

	t.Run("rejects invalid filters with banner", func(t *testing.T) {
		t.Parallel()

		s := newSearchableSession(t)
		require.NoError(t, s.UpdateParams(func(p *sangga.SearchParams) error {
			p.DepositRange = sangga.Range{6000, 5000}
			return nil
		}))

		_, ok, err := s.BeginSearch()

		require.NoError(t, err)
		assert.False(t, ok)
		state := s.State()
		assert.False(t, state.Loading)
		assert.NotEqual(t, sangga.MsgSearchFailed, state.Error)
		assert.Contains(t, state.Error, sangga.MsgInvalidFilters)
		assert.Contains(t, state.Error, "exceeds maximum 5000")
	})

	t.Run("rejects concurrent search", func(t *testing.T) {
		t.Parallel()

		s := newSearchableSession(t)
		_, ok, err := s.BeginSearch()
		require.NoError(t, err)
		require.True(t, ok)

		_, ok, err = s.BeginSearch()

		assert.False(t, ok)
		assert.Equal(t, sangga.ECONFLICT, sangga.ErrorCode(err))
	})
}

func TestSession_FinishSearch(t *testing.T) {
	t.Parallel()

	t.Run("stores results", func(t *testing.T) {
		t.Parallel()

		s := newSearchableSession(t)
		_, _, _ = s.BeginSearch()
		insight := &sangga.MarketInsight{Trend: sangga.TrendUp}

		s.FinishSearch(&sangga.SearchResult{
			Properties: []*sangga.Property{{ID: "a"}, {ID: "b"}},
			Sources:    []sangga.Source{{Title: "네이버", URI: "https://land.naver.com"}},
		}, insight, nil)

		state := s.State()
		assert.False(t, state.Loading)
		assert.Len(t, state.Properties, 2)
		assert.Len(t, state.Sources, 1)
		assert.Equal(t, insight, state.Insight)
		assert.Empty(t, state.Error)
	})

	t.Run("sets no results message", func(t *testing.T) {
		t.Parallel()

		s := newSearchableSession(t)
		_, _, _ = s.BeginSearch()

		s.FinishSearch(&sangga.SearchResult{}, nil, nil)

		state := s.State()
		assert.False(t, state.Loading)
		assert.Equal(t, sangga.MsgNoResults, state.Error)
	})

	t.Run("sets failure message", func(t *testing.T) {
		t.Parallel()

		s := newSearchableSession(t)
		_, _, _ = s.BeginSearch()

		s.FinishSearch(nil, nil, errors.New("boom"))

		state := s.State()
		assert.False(t, state.Loading)
		assert.Equal(t, sangga.MsgSearchFailed, state.Error)
		assert.Empty(t, state.Properties)
	})

	t.Run("describes user-fixable failures", func(t *testing.T) {
		t.Parallel()

		for _, tc := range []struct {
			name string
			err  error
			want string
		}{
			{"rate limited", fmt.Errorf("search: %w", sangga.ErrRateLimited), sangga.MsgRateLimited},
			{"invalid filters", sangga.Errorf(sangga.EINVALID, "rent range must not be negative"), sangga.MsgInvalidFilters + ": rent range must not be negative"},
			{"upstream outage", sangga.Errorf(sangga.EUNAVAILABLE, "gemini unavailable: overloaded"), sangga.MsgSearchFailed},
		} {
			s := newSearchableSession(t)
			_, _, _ = s.BeginSearch()

			s.FinishSearch(nil, nil, tc.err)

			assert.Equal(t, tc.want, s.State().Error, tc.name)
		}
	})

	t.Run("flags listings seen earlier", func(t *testing.T) {
		t.Parallel()

		marked := map[string]bool{}
		seen := &mock.SeenSet{
			SeenFn: func(p *sangga.Property) bool { return marked[p.Link] },
			MarkFn: func(p *sangga.Property) { marked[p.Link] = true },
		}
		s := sangga.NewSession("s-1", seen)
		require.NoError(t, s.UpdateParams(func(p *sangga.SearchParams) error {
			p.Region = "경기도"
			return nil
		}))

		_, _, _ = s.BeginSearch()
		s.FinishSearch(&sangga.SearchResult{Properties: []*sangga.Property{{ID: "1", Link: "https://a"}}}, nil, nil)
		_, _, _ = s.BeginSearch()
		s.FinishSearch(&sangga.SearchResult{Properties: []*sangga.Property{
			{ID: "1", Link: "https://a"},
			{ID: "2", Link: "https://b"},
		}}, nil, nil)

		state := s.State()
		assert.True(t, state.Properties[0].Seen)
		assert.False(t, state.Properties[1].Seen)
	})
}

func TestSession_SelectProperty(t *testing.T) {
	t.Parallel()

	s := newSearchableSession(t)
	_, _, _ = s.BeginSearch()
	s.FinishSearch(&sangga.SearchResult{Properties: []*sangga.Property{{ID: "a", Name: "A"}}}, nil, nil)

	p, err := s.SelectProperty("a")
	require.NoError(t, err)
	assert.Equal(t, "A", p.Name)
	assert.Equal(t, sangga.ViewDetail, s.State().View)

	_, err = s.SelectProperty("missing")
	assert.Equal(t, sangga.ENOTFOUND, sangga.ErrorCode(err))

	s.Back()
	assert.Equal(t, sangga.ViewList, s.State().View)
}

func TestSession_Export(t *testing.T) {
	t.Parallel()

	s := newSearchableSession(t)

	_, ok := s.ExportProperties()
	assert.False(t, ok)

	_, _, _ = s.BeginSearch()
	s.FinishSearch(&sangga.SearchResult{Properties: []*sangga.Property{{ID: "a"}}}, nil, nil)

	props, ok := s.ExportProperties()
	assert.True(t, ok)
	assert.Len(t, props, 1)
	assert.Equal(t, "서울특별시_부동산_매물.csv", s.ExportFilename())
}
