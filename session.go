package sangga

import (
	"context"
	"errors"
	"slices"
	"sync"
)

// View is the page a session is currently looking at.
type View string

// View constants.
const (
	ViewList   View = "list"
	ViewDetail View = "detail"
)

// Messages shown in the error banner of the list view.
const (
	MsgNoResults    = "해당 조건의 매물을 찾지 못했습니다. 필터를 조정해 보세요."
	MsgSearchFailed = "실시간 매물 수집 중 오류가 발생했습니다. 잠시 후 다시 시도해 주세요."
	MsgRateLimited  = "검색 요청이 너무 많습니다. 잠시 후 다시 시도해 주세요."

	// MsgInvalidFilters prefixes the validation error of rejected filters.
	MsgInvalidFilters = "검색 조건을 확인해 주세요"
)

// ExportFilenameSuffix is appended to the region to name CSV downloads.
const ExportFilenameSuffix = "_부동산_매물.csv"

// Session holds the state of one browser session: the filters, the last
// search outcome and which view is showing. Nothing in a session outlives
// the process. All methods are safe for concurrent use.
type Session struct {
	ID string

	mu       sync.Mutex
	params   SearchParams
	view     View
	selected *Property
	loading  bool
	result   SearchResult
	insight  *MarketInsight
	errMsg   string
	seen     SeenSet
}

// NewSession returns a session with default filters. seen may be nil, in
// which case listings are never flagged as seen.
func NewSession(id string, seen SeenSet) *Session {
	return &Session{
		ID:     id,
		params: DefaultSearchParams(),
		view:   ViewList,
		seen:   seen,
	}
}

// SessionState is a point-in-time copy of a session used for rendering.
type SessionState struct {
	Params     SearchParams
	View       View
	Selected   *Property
	Loading    bool
	Properties []*Property
	Sources    []Source
	Insight    *MarketInsight
	Error      string
}

// HasResults reports whether there are listings to show.
func (s SessionState) HasResults() bool {
	return len(s.Properties) > 0
}

// State returns a copy of the session state.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SessionState{
		Params:     s.params.Clone(),
		View:       s.view,
		Selected:   s.selected,
		Loading:    s.loading,
		Properties: slices.Clone(s.result.Properties),
		Sources:    slices.Clone(s.result.Sources),
		Insight:    s.insight,
		Error:      s.errMsg,
	}
}

// Params returns a copy of the current filters.
func (s *Session) Params() SearchParams {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params.Clone()
}

// UpdateParams applies fn to the filters under the session lock. If fn
// returns an error the filters are left unchanged.
func (s *Session) UpdateParams(fn func(p *SearchParams) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.params.Clone()
	if err := fn(&p); err != nil {
		return err
	}
	s.params = p
	return nil
}

// BeginSearch moves the session into the loading state and returns the
// filters to search with. It reports false without changing anything when
// no region is selected, and false with the banner set when the filters fail
// validation. Returns ECONFLICT if a search is already running.
func (s *Session) BeginSearch() (SearchParams, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.params.Region == "" {
		return SearchParams{}, false, nil
	}
	if s.loading {
		return SearchParams{}, false, Errorf(ECONFLICT, "search already in progress")
	}
	if err := s.params.Validate(); err != nil {
		s.errMsg = failureMessage(err)
		return SearchParams{}, false, nil
	}

	s.loading = true
	s.errMsg = ""
	s.result = SearchResult{}
	s.insight = nil
	s.selected = nil
	s.view = ViewList
	return s.params.Clone(), true, nil
}

// FinishSearch records the outcome of the search started by BeginSearch
// and leaves the loading state. A failed search keeps the list empty and
// sets a banner describing the failure; an empty result sets the
// no-results banner.
func (s *Session) FinishSearch(result *SearchResult, insight *MarketInsight, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loading = false
	if err != nil {
		s.errMsg = failureMessage(err)
		return
	}
	if result == nil || len(result.Properties) == 0 {
		s.errMsg = MsgNoResults
		if result != nil {
			s.result.Sources = result.Sources
		}
		return
	}

	if s.seen != nil {
		for _, p := range result.Properties {
			p.Seen = s.seen.Seen(p)
			s.seen.Mark(p)
		}
	}
	s.result = *result
	s.insight = insight
}

// failureMessage returns the banner for a failed search. Rejected filters
// and rate limiting are the user's to fix; anything else gets the generic
// failure message.
func failureMessage(err error) string {
	switch {
	case errors.Is(err, ErrRateLimited):
		return MsgRateLimited
	case ErrorCode(err) == EINVALID:
		return MsgInvalidFilters + ": " + ErrorMessage(err)
	default:
		return MsgSearchFailed
	}
}

// SelectProperty switches to the detail view of a listing.
// Returns ENOTFOUND if the listing is not in the current result.
func (s *Session) SelectProperty(id string) (*Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.result.FindProperty(id)
	if err != nil {
		return nil, err
	}
	s.selected = p
	s.view = ViewDetail
	return p, nil
}

// Back returns to the list view.
func (s *Session) Back() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = ViewList
}

// ExportProperties returns the listings to export. It reports false when
// there is nothing to export.
func (s *Session) ExportProperties() ([]*Property, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.result.Properties) == 0 {
		return nil, false
	}
	return slices.Clone(s.result.Properties), true
}

// ExportFilename returns the download name for a CSV export.
func (s *Session) ExportFilename() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params.Region + ExportFilenameSuffix
}

// SessionStore keeps sessions for the lifetime of the process.
type SessionStore interface {
	// CreateSession creates a session with a new random ID.
	CreateSession(ctx context.Context) (*Session, error)

	// FindSessionByID retrieves a session and refreshes its idle timer.
	// Returns ENOTFOUND if the session does not exist or has expired.
	FindSessionByID(ctx context.Context, id string) (*Session, error)

	// DeleteSession removes a session.
	// Returns ENOTFOUND if the session does not exist.
	DeleteSession(ctx context.Context, id string) error
}
