package http

import (
	"encoding/json"
	"net"
	"net/http"
	"net/url"

	"github.com/fwojciec/sangga"
	"github.com/go-chi/chi/v5"
)

// SearchResponse is the body of a successful API search.
type SearchResponse struct {
	Properties []*sangga.Property    `json:"properties"`
	Sources    []sangga.Source       `json:"sources"`
	Insight    *sangga.MarketInsight `json:"insight,omitempty"`
}

// handleRegions lists the provinces in display order.
func (s *Server) handleRegions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sangga.Regions())
}

// handleDistricts lists the districts of a province.
func (s *Server) handleDistricts(w http.ResponseWriter, r *http.Request) {
	region := chi.URLParam(r, "region")
	if v, err := url.PathUnescape(region); err == nil {
		region = v
	}
	region = NormalizeText(region)
	if !sangga.IsKnownRegion(region) {
		s.Error(w, r, sangga.Errorf(sangga.ENOTFOUND, "unknown region %q", region))
		return
	}
	writeJSON(w, http.StatusOK, sangga.Districts(region))
}

// handleAPISearch runs a search synchronously. Fields missing from the
// body take their default values. Callers are rate limited by address.
func (s *Server) handleAPISearch(w http.ResponseWriter, r *http.Request) {
	params := sangga.DefaultSearchParams()
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		s.Error(w, r, sangga.Errorf(sangga.EINVALID, "invalid JSON body"))
		return
	}
	params.Region = NormalizeText(params.Region)
	params.SubRegion = NormalizeText(params.SubRegion)
	if params.SubRegion == sangga.AllDistricts {
		params.SubRegion = ""
	}

	outcome, err := s.Search.Search(r.Context(), clientKey(r), params)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	resp := &SearchResponse{
		Properties: []*sangga.Property{},
		Sources:    []sangga.Source{},
		Insight:    outcome.Insight,
	}
	if outcome.Result != nil {
		if outcome.Result.Properties != nil {
			resp.Properties = outcome.Result.Properties
		}
		if outcome.Result.Sources != nil {
			resp.Sources = outcome.Result.Sources
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// clientKey identifies an API caller for rate limiting.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return "api:" + r.RemoteAddr
	}
	return "api:" + host
}
