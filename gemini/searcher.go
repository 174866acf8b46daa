package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/sangga"
	"github.com/google/uuid"
	"google.golang.org/genai"
)

// Ensure Searcher implements sangga.PropertySearcher at compile time.
var _ sangga.PropertySearcher = (*Searcher)(nil)

// Searcher implements sangga.PropertySearcher by asking Gemini, with Google
// Search grounding enabled, to collect listings as structured JSON.
type Searcher struct {
	gen       Generator
	model     string
	validator sangga.PropertyValidator
	sanitizer sangga.TextSanitizer
	newID     func() string
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithModel sets the model name. Defaults to DefaultModel.
func WithModel(model string) Option {
	return func(s *Searcher) {
		if model != "" {
			s.model = model
		}
	}
}

// WithValidator drops listings that fail schema validation.
func WithValidator(v sangga.PropertyValidator) Option {
	return func(s *Searcher) {
		s.validator = v
	}
}

// WithSanitizer cleans free-text fields of each listing.
func WithSanitizer(t sangga.TextSanitizer) Option {
	return func(s *Searcher) {
		s.sanitizer = t
	}
}

// WithIDGenerator overrides how replacement listing IDs are generated.
func WithIDGenerator(fn func() string) Option {
	return func(s *Searcher) {
		s.newID = fn
	}
}

// NewSearcher creates a new Searcher.
func NewSearcher(gen Generator, opts ...Option) *Searcher {
	s := &Searcher{
		gen:   gen,
		model: DefaultModel,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SearchProperties asks the model for listings matching params.
// An answer that cannot be decoded yields an empty result rather than an
// error, so the caller shows the no-results message.
func (s *Searcher) SearchProperties(ctx context.Context, params sangga.SearchParams) (*sangga.SearchResult, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	resp, err := s.gen.GenerateContent(ctx, s.model, userContent(BuildSearchPrompt(params)), BuildSearchConfig())
	if err != nil {
		return nil, classifyError(err)
	}
	if resp == nil {
		return nil, sangga.Errorf(sangga.EINTERNAL, "gemini returned nil result")
	}

	result := &sangga.SearchResult{
		Properties: []*sangga.Property{},
		Sources:    GroundingSources(resp),
	}

	raws, err := DecodePropertyList(resp.Text())
	if err != nil {
		result.Sources = []sangga.Source{}
		return result, nil
	}
	result.Properties = s.buildProperties(raws)
	return result, nil
}

// buildProperties validates, decodes and cleans each raw listing. Listings
// failing validation are dropped; missing or duplicate IDs are replaced so
// every listing in a result can be selected individually.
func (s *Searcher) buildProperties(raws []json.RawMessage) []*sangga.Property {
	props := make([]*sangga.Property, 0, len(raws))
	ids := make(map[string]struct{}, len(raws))
	for _, raw := range raws {
		if s.validator != nil {
			if err := s.validator.ValidateProperty(raw); err != nil {
				continue
			}
		}

		var p sangga.Property
		if err := json.Unmarshal(raw, &p); err != nil {
			continue
		}
		if s.sanitizer != nil {
			sanitizeProperty(&p, s.sanitizer)
		}

		p.ID = strings.TrimSpace(p.ID)
		if _, dup := ids[p.ID]; dup || !isPathSafeID(p.ID) {
			p.ID = s.newID()
		}
		ids[p.ID] = struct{}{}

		props = append(props, &p)
	}
	return props
}

// isPathSafeID reports whether id is non-empty and made of URL path
// unreserved characters only, so it can be used as a path segment as is.
// Dot segments are rejected since routers clean them away.
func isPathSafeID(id string) bool {
	if id == "" || id == "." || id == ".." {
		return false
	}
	for _, r := range id {
		switch {
		case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z', '0' <= r && r <= '9':
		case r == '-', r == '.', r == '_', r == '~':
		default:
			return false
		}
	}
	return true
}

func sanitizeProperty(p *sangga.Property, t sangga.TextSanitizer) {
	for _, f := range []*string{
		&p.Source, &p.Name, &p.Type, &p.Price, &p.Area,
		&p.Description, &p.LocationDetail, &p.Floor, &p.Direction,
		&p.MaintenanceFee, &p.BuildYear, &p.Parking, &p.MoveInDate,
		&p.AgentName, &p.AgentContact, &p.AgencyName,
	} {
		*f = t.SanitizeText(*f)
	}
	features := p.Features[:0]
	for _, feat := range p.Features {
		if feat = t.SanitizeText(feat); feat != "" {
			features = append(features, feat)
		}
	}
	p.Features = features
}

// DecodePropertyList splits the model answer into raw listings.
func DecodePropertyList(text string) ([]json.RawMessage, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal([]byte(CleanJSON(text)), &raws); err != nil {
		return nil, fmt.Errorf("failed to decode property list: %w", err)
	}
	return raws, nil
}

// GroundingSources returns the web pages the first candidate was grounded on.
func GroundingSources(resp *genai.GenerateContentResponse) []sangga.Source {
	sources := []sangga.Source{}
	if resp == nil || len(resp.Candidates) == 0 {
		return sources
	}
	md := resp.Candidates[0].GroundingMetadata
	if md == nil {
		return sources
	}
	for _, chunk := range md.GroundingChunks {
		if chunk == nil || chunk.Web == nil {
			continue
		}
		sources = append(sources, sangga.Source{
			Title: chunk.Web.Title,
			URI:   chunk.Web.URI,
		})
	}
	return sources
}

// BuildSearchConfig returns the GenerateContentConfig for listing searches:
// Google Search grounding and a JSON array response schema.
func BuildSearchConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Tools:            []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type:  genai.TypeArray,
			Items: PropertySchema(),
		},
	}
}

// PropertySchema returns the response schema of a single listing.
func PropertySchema() *genai.Schema {
	str := func() *genai.Schema { return &genai.Schema{Type: genai.TypeString} }
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"id":             str(),
			"source":         str(),
			"name":           str(),
			"type":           str(),
			"price":          str(),
			"area":           str(),
			"link":           str(),
			"priceValue":     {Type: genai.TypeNumber},
			"description":    str(),
			"features":       {Type: genai.TypeArray, Items: str()},
			"locationDetail": str(),
			"floor":          str(),
			"direction":      str(),
			"maintenanceFee": str(),
			"buildYear":      str(),
			"parking":        str(),
			"moveInDate":     str(),
			"agentName":      str(),
			"agentContact":   str(),
			"agencyName":     str(),
		},
		Required: RequiredFields(),
	}
}

// RequiredFields lists the listing fields the model must always return.
func RequiredFields() []string {
	return []string{"id", "source", "name", "type", "price", "area", "link", "priceValue"}
}

// BuildSearchPrompt builds the listing search prompt. Ranges are in 만원.
func BuildSearchPrompt(params sangga.SearchParams) string {
	dealTypes := make([]string, len(params.DealTypes))
	for i, d := range params.DealTypes {
		dealTypes[i] = string(d)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "부동산 전문가로서 \"%s\" 지역의 %s 매물을 찾고 상세 리포트를 작성하세요.\n\n",
		params.Location(), strings.Join(params.Categories, ", "))
	sb.WriteString("매우 엄격한 필터 조건:\n")
	fmt.Fprintf(&sb, "1. 거래 방식: %s\n", strings.Join(dealTypes, ", "))
	fmt.Fprintf(&sb, "2. 보증금 범위: %d만원 이상 ~ %d만원 이하 (반드시 이 범위 내의 매물만 수집하세요)\n",
		params.DepositRange.Min(), params.DepositRange.Max())
	fmt.Fprintf(&sb, "3. 월세 범위: %d만원 이상 ~ %d만원 이하 (반드시 이 범위 내의 매물만 수집하세요)\n\n",
		params.RentRange.Min(), params.RentRange.Max())
	sb.WriteString("필수 요구사항:\n")
	sb.WriteString("- 제외대상: 공유오피스, 비즈니스센터, 소호사무실, 창업지원센터는 절대 제외.\n")
	sb.WriteString("- 상세 정보 수집: 가능한 모든 기술적 사양을 수집하세요. 층수, 방향, 관리비, 주차대수, 입주가능일, 건축물 용도 등.\n")
	sb.WriteString("- 업체 정보: 해당 매물을 등록한 부동산 중개업소 명칭, 담당자 이름, 연락처 정보를 반드시 포함하세요.\n")
	sb.WriteString("- 출처: 'source'는 한글로 표기 (예: 네이버 부동산).\n")
	sb.WriteString("- 최소 15개 이상의 결과를 반환하세요.\n\n")
	sb.WriteString("주의: 설정한 보증금과 월세 범위를 벗어나는 매물은 사용자가 원하지 않으므로 절대로 포함하지 마십시오.")
	return sb.String()
}
