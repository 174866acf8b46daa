package gemini

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fwojciec/sangga"
	"google.golang.org/genai"
)

var _ sangga.InsightProvider = (*Insighter)(nil)

// Insighter implements sangga.InsightProvider using Gemini.
type Insighter struct {
	gen   Generator
	model string
}

// NewInsighter creates a new Insighter. An empty model selects DefaultModel.
func NewInsighter(gen Generator, model string) *Insighter {
	if model == "" {
		model = DefaultModel
	}
	return &Insighter{gen: gen, model: model}
}

// MarketInsight asks the model for an overview of the commercial market
// around location.
func (i *Insighter) MarketInsight(ctx context.Context, location string) (*sangga.MarketInsight, error) {
	if location == "" {
		return nil, sangga.Errorf(sangga.EINVALID, "location required")
	}

	resp, err := i.gen.GenerateContent(ctx, i.model, userContent(BuildInsightPrompt(location)), BuildInsightConfig())
	if err != nil {
		return nil, classifyError(err)
	}
	if resp == nil {
		return nil, sangga.Errorf(sangga.EINTERNAL, "gemini returned nil result")
	}

	var insight sangga.MarketInsight
	if err := json.Unmarshal([]byte(stripCodeFence(resp.Text())), &insight); err != nil {
		return nil, sangga.Errorf(sangga.EINTERNAL, "failed to decode market insight: %v", err)
	}
	switch insight.Trend {
	case sangga.TrendUp, sangga.TrendDown, sangga.TrendStable:
	default:
		insight.Trend = sangga.TrendStable
	}
	return &insight, nil
}

// BuildInsightConfig returns the GenerateContentConfig for market insights.
func BuildInsightConfig() *genai.GenerateContentConfig {
	temp := float32(0.4)
	return &genai.GenerateContentConfig{
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"trend": {
					Type: genai.TypeString,
					Enum: []string{string(sangga.TrendUp), string(sangga.TrendDown), string(sangga.TrendStable)},
				},
				"summary": {Type: genai.TypeString},
				"pros":    {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
				"cons":    {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			},
			Required: []string{"trend", "summary", "pros", "cons"},
		},
	}
}

// BuildInsightPrompt builds the market insight prompt for a location.
func BuildInsightPrompt(location string) string {
	return fmt.Sprintf("상업용 부동산 전문가로서 \"%s\" 지역의 지식산업센터 및 상가/사무실 임대 시장을 분석하세요.\n"+
		"- trend: 최근 임대료 추세 (UP, DOWN, STABLE 중 하나)\n"+
		"- summary: 시장 요약 (3문장 이내)\n"+
		"- pros: 입지 장점 3가지\n"+
		"- cons: 유의할 점 3가지", location)
}
