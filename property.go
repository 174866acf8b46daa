package sangga

import (
	"context"
	"io"
	"strings"
	"unicode/utf8"
)

// Placeholder copy shown when the model leaves optional detail fields empty.
const (
	DefaultDescription = "이 매물은 현재 위치에서 가장 선호되는 조건을 갖추고 있습니다. 실시간 수집된 정보를 바탕으로 분석했을 때, 평단가 및 입지 조건이 우수하여 사무실이나 사업장으로 매우 적합한 것으로 나타납니다."
	DefaultAgentInitial = "공"
)

// DefaultFeatures are shown when the model returns no feature list.
var DefaultFeatures = []string{"역세권 도보 5분", "주차 편리", "냉난방 완비", "즉시 입주가능"}

// Property represents a single listing returned by the model.
// JSON field names mirror the response schema requested from the model.
type Property struct {
	ID         string  `json:"id"`
	Source     string  `json:"source"`
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	Price      string  `json:"price"`
	Area       string  `json:"area"`
	Link       string  `json:"link"`
	PriceValue float64 `json:"priceValue"`

	Description    string   `json:"description,omitempty"`
	Features       []string `json:"features,omitempty"`
	LocationDetail string   `json:"locationDetail,omitempty"`
	Floor          string   `json:"floor,omitempty"`
	Direction      string   `json:"direction,omitempty"`
	MaintenanceFee string   `json:"maintenanceFee,omitempty"`
	BuildYear      string   `json:"buildYear,omitempty"`
	Parking        string   `json:"parking,omitempty"`
	MoveInDate     string   `json:"moveInDate,omitempty"`

	AgentName    string `json:"agentName,omitempty"`
	AgentContact string `json:"agentContact,omitempty"`
	AgencyName   string `json:"agencyName,omitempty"`

	// Seen is set when the listing was already returned earlier in the
	// same session. It is never part of the model output.
	Seen bool `json:"-"`
}

// Validate returns an error if the property contains invalid fields.
func (p *Property) Validate() error {
	if p.Name == "" {
		return Errorf(EINVALID, "property name required")
	}
	if p.Link == "" {
		return Errorf(EINVALID, "property link required")
	}
	return nil
}

// IsNaver reports whether the listing was sourced from Naver real estate.
func (p *Property) IsNaver() bool {
	return strings.Contains(p.Source, "네이버")
}

// DisplayDescription returns the description or the placeholder copy.
func (p *Property) DisplayDescription() string {
	if strings.TrimSpace(p.Description) == "" {
		return DefaultDescription
	}
	return p.Description
}

// DisplayFeatures returns the feature list or the placeholder list.
func (p *Property) DisplayFeatures() []string {
	if len(p.Features) == 0 {
		return DefaultFeatures
	}
	return p.Features
}

// AgentInitial returns the first character of the agent name, used as an
// avatar in the detail view.
func (p *Property) AgentInitial() string {
	name := strings.TrimSpace(p.AgentName)
	if name == "" {
		return DefaultAgentInitial
	}
	r, _ := utf8.DecodeRuneInString(name)
	return string(r)
}

// Source is a web page the model's answer was grounded on.
type Source struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// SearchResult holds the listings found for a search and the web sources
// the model cited while producing them.
type SearchResult struct {
	Properties []*Property `json:"properties"`
	Sources    []Source    `json:"sources"`
}

// FindProperty returns the property with the given ID.
// Returns ENOTFOUND if no property matches.
func (r *SearchResult) FindProperty(id string) (*Property, error) {
	for _, p := range r.Properties {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, Errorf(ENOTFOUND, "property %q not found", id)
}

// PropertySearcher finds listings matching the search parameters.
type PropertySearcher interface {
	// SearchProperties returns listings matching params.
	// Returns EINVALID if params fail validation.
	SearchProperties(ctx context.Context, params SearchParams) (*SearchResult, error)
}

// PropertyExporter writes listings in a downloadable format.
type PropertyExporter interface {
	ExportProperties(w io.Writer, props []*Property) error
}

// PropertyValidator checks a single raw listing against the output schema.
type PropertyValidator interface {
	ValidateProperty(raw []byte) error
}

// TextSanitizer cleans free text produced by the model before display.
type TextSanitizer interface {
	SanitizeText(s string) string
}

// SeenSet remembers listing fingerprints across searches in one session.
// Implementations may report false positives but never false negatives.
type SeenSet interface {
	// Seen returns true if the listing might have been marked before.
	Seen(p *Property) bool

	// Mark records the listing.
	Mark(p *Property)
}
