package http

import (
	"context"
	"net/http"
	"net/url"
	"slices"

	"github.com/fwojciec/sangga"
)

// rangeFields maps form fields to the range bound they set.
var rangeFields = []struct {
	name  string
	kind  sangga.RangeKind
	index int
}{
	{"depositMin", sangga.RangeDeposit, 0},
	{"depositMax", sangga.RangeDeposit, 1},
	{"rentMin", sangga.RangeRent, 0},
	{"rentMax", sangga.RangeRent, 1},
}

// handleSearch applies the submitted sub-region and ranges, then starts a
// search in the background and redirects to the list, which shows the
// loading state until the search finishes. Without a region nothing
// happens.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	session := sessionFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		s.Error(w, r, sangga.Errorf(sangga.EINVALID, "invalid form"))
		return
	}

	if err := session.UpdateParams(func(p *sangga.SearchParams) error {
		applySearchForm(p, r.PostForm)
		return nil
	}); err != nil {
		s.Error(w, r, err)
		return
	}

	// BeginSearch validates the filters and reports rejected ones in the
	// banner without calling the search service.
	params, ok, err := session.BeginSearch()
	if err != nil {
		s.Error(w, r, err)
		return
	} else if ok {
		s.startSearch(session, params)
	}
	redirectHome(w, r)
}

// applySearchForm copies the sub-region and range fields present in form
// onto p. Sub-regions outside the selected region and bounds that are not
// numbers are left unchanged.
func applySearchForm(p *sangga.SearchParams, form url.Values) {
	if v, ok := form["subRegion"]; ok && len(v) > 0 {
		sub := NormalizeText(v[0])
		if sangga.IsFreeInput(p.Region) || slices.Contains(sangga.Districts(p.Region), sub) {
			p.SelectSubRegion(sub)
		}
	}
	for _, f := range rangeFields {
		v, ok := form[f.name]
		if !ok || len(v) == 0 {
			continue
		}
		_ = p.SetRange(f.kind, f.index, NormalizeNumber(v[0]))
	}
}

// startSearch runs the session's search outside the request so the page
// can render the loading state while it runs.
func (s *Server) startSearch(session *sangga.Session, params sangga.SearchParams) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(s.ctx, s.SearchTimeout)
		defer cancel()

		outcome, err := s.Search.Search(ctx, session.ID, params)
		if err != nil {
			s.Logger.Error("search failed", "session", session.ID, "location", params.Location(), "error", err)
			session.FinishSearch(nil, nil, err)
			return
		}
		session.FinishSearch(outcome.Result, outcome.Insight, nil)
	}()
}

// handleToggleCategory toggles the submitted category.
func (s *Server) handleToggleCategory(w http.ResponseWriter, r *http.Request) {
	s.updateParams(w, r, func(p *sangga.SearchParams, form url.Values) error {
		category := NormalizeText(form.Get("category"))
		if !slices.Contains(sangga.Categories, category) {
			return sangga.Errorf(sangga.EINVALID, "unknown category %q", category)
		}
		applySearchForm(p, form)
		p.ToggleCategory(category)
		return nil
	})
}

// handleToggleDealType toggles the submitted deal type. Removing the last
// selected deal type is ignored.
func (s *Server) handleToggleDealType(w http.ResponseWriter, r *http.Request) {
	s.updateParams(w, r, func(p *sangga.SearchParams, form url.Values) error {
		dealType := sangga.DealType(NormalizeText(form.Get("dealType")))
		if !slices.Contains(sangga.DealTypes, dealType) {
			return sangga.Errorf(sangga.EINVALID, "unknown deal type %q", dealType)
		}
		applySearchForm(p, form)
		p.ToggleDealType(dealType)
		return nil
	})
}

// handleSelectRegion selects the submitted region and resets its
// sub-region. Submitted ranges carry over.
func (s *Server) handleSelectRegion(w http.ResponseWriter, r *http.Request) {
	s.updateParams(w, r, func(p *sangga.SearchParams, form url.Values) error {
		region := NormalizeText(form.Get("region"))
		if !sangga.IsKnownRegion(region) {
			return sangga.Errorf(sangga.EINVALID, "unknown region %q", region)
		}
		applySearchForm(p, form)
		p.SelectRegion(region)
		return nil
	})
}

// updateParams applies fn to the session filters with the posted form and
// redirects to the list.
func (s *Server) updateParams(w http.ResponseWriter, r *http.Request, fn func(p *sangga.SearchParams, form url.Values) error) {
	if err := r.ParseForm(); err != nil {
		s.Error(w, r, sangga.Errorf(sangga.EINVALID, "invalid form"))
		return
	}
	err := sessionFromContext(r.Context()).UpdateParams(func(p *sangga.SearchParams) error {
		return fn(p, r.PostForm)
	})
	if err != nil {
		s.Error(w, r, err)
		return
	}
	redirectHome(w, r)
}
