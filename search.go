package sangga

import (
	"context"
	"slices"
	"strconv"
	"strings"
)

// DealType is a Korean rental arrangement.
type DealType string

// DealType constants.
const (
	DealMonthly          DealType = "월세"
	DealShortTermMonthly DealType = "단기월세"
)

// DealTypes lists the selectable deal types in display order.
var DealTypes = []DealType{DealMonthly, DealShortTermMonthly}

// Category constants.
const (
	CategoryKnowledgeCenter = "지식산업센터"
	CategoryRetailOffice    = "상가/사무실"
)

// Categories lists the selectable property categories in display order.
var Categories = []string{CategoryKnowledgeCenter, CategoryRetailOffice}

// Range is an inclusive [min, max] amount in units of 10,000 KRW (만원).
type Range [2]int

// Min returns the lower bound.
func (r Range) Min() int { return r[0] }

// Max returns the upper bound.
func (r Range) Max() int { return r[1] }

// RangeKind selects which range SetRange updates.
type RangeKind string

// RangeKind constants.
const (
	RangeDeposit RangeKind = "deposit"
	RangeRent    RangeKind = "rent"
)

// Slider limits used by the search form.
const (
	DepositSliderMax  = 100000
	DepositSliderStep = 500
	RentSliderMax     = 2000
	RentSliderStep    = 10
)

// SearchParams holds the filters a user picked for a search.
type SearchParams struct {
	Region       string     `json:"region"`
	SubRegion    string     `json:"subRegion"`
	Categories   []string   `json:"categories"`
	DealTypes    []DealType `json:"dealTypes"`
	DepositRange Range      `json:"depositRange"`
	RentRange    Range      `json:"rentRange"`
}

// DefaultSearchParams returns the filters a fresh session starts with.
func DefaultSearchParams() SearchParams {
	return SearchParams{
		Categories:   []string{CategoryKnowledgeCenter},
		DealTypes:    []DealType{DealMonthly},
		DepositRange: Range{0, 5000},
		RentRange:    Range{0, 300},
	}
}

// Validate returns an error if the parameters cannot be searched.
func (p *SearchParams) Validate() error {
	if strings.TrimSpace(p.Region) == "" {
		return Errorf(EINVALID, "region required")
	}
	if len(p.DealTypes) == 0 {
		return Errorf(EINVALID, "at least one deal type required")
	}
	for _, d := range p.DealTypes {
		if !slices.Contains(DealTypes, d) {
			return Errorf(EINVALID, "unknown deal type %q", d)
		}
	}
	if err := validateRange("deposit", p.DepositRange); err != nil {
		return err
	}
	return validateRange("rent", p.RentRange)
}

func validateRange(name string, r Range) error {
	if r.Min() < 0 || r.Max() < 0 {
		return Errorf(EINVALID, "%s range must not be negative", name)
	}
	if r.Min() > r.Max() {
		return Errorf(EINVALID, "%s range minimum %d exceeds maximum %d", name, r.Min(), r.Max())
	}
	return nil
}

// Location returns the region and sub-region joined for display and prompts.
func (p *SearchParams) Location() string {
	return strings.TrimSpace(p.Region + " " + p.SubRegion)
}

// HasCategory reports whether the category is selected.
func (p *SearchParams) HasCategory(c string) bool {
	return slices.Contains(p.Categories, c)
}

// HasDealType reports whether the deal type is selected.
func (p *SearchParams) HasDealType(d DealType) bool {
	return slices.Contains(p.DealTypes, d)
}

// ToggleCategory selects the category if unselected and unselects it
// otherwise. The category list may become empty.
func (p *SearchParams) ToggleCategory(c string) {
	if i := slices.Index(p.Categories, c); i >= 0 {
		p.Categories = slices.Delete(slices.Clone(p.Categories), i, i+1)
		return
	}
	p.Categories = append(slices.Clone(p.Categories), c)
}

// ToggleDealType selects or unselects the deal type. Unselecting the last
// selected deal type is a no-op and reports false.
func (p *SearchParams) ToggleDealType(d DealType) bool {
	i := slices.Index(p.DealTypes, d)
	if i < 0 {
		p.DealTypes = append(slices.Clone(p.DealTypes), d)
		return true
	}
	if len(p.DealTypes) == 1 {
		return false
	}
	p.DealTypes = slices.Delete(slices.Clone(p.DealTypes), i, i+1)
	return true
}

// SetRange sets one bound of a range from user input. An empty value sets
// the bound to zero. A value that is not an integer leaves the range
// unchanged and returns EINVALID.
func (p *SearchParams) SetRange(kind RangeKind, index int, value string) error {
	if index != 0 && index != 1 {
		return Errorf(EINVALID, "range index %d out of bounds", index)
	}

	n := 0
	if value = strings.TrimSpace(value); value != "" {
		v, err := strconv.Atoi(value)
		if err != nil {
			return Errorf(EINVALID, "%q is not a number", value)
		}
		n = v
	}

	switch kind {
	case RangeDeposit:
		p.DepositRange[index] = n
	case RangeRent:
		p.RentRange[index] = n
	default:
		return Errorf(EINVALID, "unknown range %q", kind)
	}
	return nil
}

// SelectRegion sets the region and resets the sub-region to the region's
// default district. Regions whose first district is the "all" entry get an
// empty sub-region.
func (p *SearchParams) SelectRegion(region string) {
	p.Region = region
	p.SubRegion = ""
	districts, ok := regionTable[region]
	if !ok || len(districts) == 0 || IsFreeInput(region) {
		return
	}
	if districts[0] != AllDistricts {
		p.SubRegion = districts[0]
	}
}

// SelectSubRegion sets the sub-region. The "all" entry clears it.
func (p *SearchParams) SelectSubRegion(sub string) {
	if sub == AllDistricts {
		sub = ""
	}
	p.SubRegion = sub
}

// Clone returns a deep copy of the parameters.
func (p SearchParams) Clone() SearchParams {
	p.Categories = slices.Clone(p.Categories)
	p.DealTypes = slices.Clone(p.DealTypes)
	return p
}

// SearchOutcome is everything a completed search produced.
type SearchOutcome struct {
	Result  *SearchResult
	Insight *MarketInsight
}

// SearchService runs a complete search on behalf of a caller identified by
// key, which is used for rate limiting.
type SearchService interface {
	// Search returns listings for params and, when available, an insight
	// into the local market. Insight failures never fail the search.
	// Returns EINVALID if params fail validation and EUNAVAILABLE if the
	// caller is rate limited.
	Search(ctx context.Context, key string, params SearchParams) (*SearchOutcome, error)
}
