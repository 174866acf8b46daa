package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	main "github.com/fwojciec/sangga/cmd/sangga"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

const listingsAnswer = `[
  {"id":"1","source":"네이버 부동산","name":"가산 SK V1","type":"지식산업센터","price":"3000/150","area":"66㎡","link":"https://land.naver.com/1","priceValue":150},
  {"id":"1","source":"직방","name":"<b>가산 테라타워</b>","type":"지식산업센터","price":"2000/120","area":"50㎡","link":"https://zigbang.com/2","priceValue":120},
  {"id":"3","name":"필수 항목 누락"}
]`

const insightAnswer = `{"trend":"UP","summary":"G밸리 수요가 견조합니다.","pros":["역세권"],"cons":["주차난"]}`

// fakeGenerator answers listing searches and insight requests by looking at
// the requested response schema.
type fakeGenerator struct{}

func (fakeGenerator) GenerateContent(_ context.Context, _ string, _ []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	text := insightAnswer
	var md *genai.GroundingMetadata
	if config.ResponseSchema != nil && config.ResponseSchema.Type == genai.TypeArray {
		text = listingsAnswer
		md = &genai.GroundingMetadata{GroundingChunks: []*genai.GroundingChunk{
			{Web: &genai.GroundingChunkWeb{Title: "네이버 부동산", URI: "https://land.naver.com"}},
		}}
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content:           &genai.Content{Parts: []*genai.Part{{Text: text}}},
			GroundingMetadata: md,
		}},
	}, nil
}

// newTestMain returns a Main isolated from the user's config and .env.
func newTestMain(t *testing.T) *main.Main {
	t.Helper()
	dir := t.TempDir()
	m := main.NewMain()
	m.ConfigPath = filepath.Join(dir, "config.json")
	m.DotenvPaths = []string{filepath.Join(dir, ".env")}
	return m
}

func TestMain_Run_HelpShowsKongOutput(t *testing.T) {
	t.Parallel()

	m := newTestMain(t)
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"--help"}, stdout, stderr)
	require.NoError(t, err)

	helpOutput := stdout.String()
	for _, cmd := range []string{"serve", "search", "regions", "config"} {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
	assert.Contains(t, helpOutput, "Usage:")
	assert.Contains(t, helpOutput, "Flags:")
}

func TestMain_Run_NoArgsShowsHelpAndFails(t *testing.T) {
	t.Parallel()

	m := newTestMain(t)
	stdout := &bytes.Buffer{}

	err := m.Run(context.Background(), nil, stdout, &bytes.Buffer{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
	assert.Contains(t, stdout.String(), "Usage:")
}

func TestMain_Run_Search(t *testing.T) {
	t.Parallel()

	m := newTestMain(t)
	m.Generator = fakeGenerator{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"search", "서울특별시", "금천구", "--format", "json"}, stdout, stderr)
	require.NoError(t, err)

	var doc struct {
		Location   string `json:"location"`
		Properties []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"properties"`
		Sources []struct {
			URI string `json:"uri"`
		} `json:"sources"`
		Insight *struct {
			Trend string `json:"trend"`
		} `json:"insight"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &doc))

	assert.Equal(t, "서울특별시 금천구", doc.Location)
	require.Len(t, doc.Properties, 2, "listing missing required fields is dropped")
	assert.Equal(t, "가산 SK V1", doc.Properties[0].Name)
	assert.Equal(t, "가산 테라타워", doc.Properties[1].Name, "markup is stripped")
	assert.NotEqual(t, doc.Properties[0].ID, doc.Properties[1].ID, "duplicate id is replaced")
	require.Len(t, doc.Sources, 1)
	require.NotNil(t, doc.Insight)
	assert.Equal(t, "UP", doc.Insight.Trend)
}

func TestMain_Run_SearchWithoutInsight(t *testing.T) {
	t.Parallel()

	m := newTestMain(t)
	m.Generator = fakeGenerator{}
	stdout := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"search", "서울특별시", "--no-insight", "-f", "json"}, stdout, &bytes.Buffer{})
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &doc))
	assert.NotContains(t, doc, "insight")
	assert.Equal(t, "서울특별시", doc["location"])
}

func TestMain_Run_SearchRequiresAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	m := newTestMain(t)
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"search", "서울특별시"}, &bytes.Buffer{}, stderr)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY not set")
	assert.Contains(t, stderr.String(), "aistudio.google.com")
}

func TestMain_Run_RegionsNeedsNoAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	m := newTestMain(t)
	stdout := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"regions", "서울특별시"}, stdout, &bytes.Buffer{})

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "금천구")
}

func TestMain_Run_ConfigFileSetsDefaults(t *testing.T) {
	t.Parallel()

	m := newTestMain(t)
	require.NoError(t, os.WriteFile(m.ConfigPath, []byte(`{model: "gemini-2.5-flash", addr: ":9999"}`), 0o644))
	stdout := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"config", "show"}, stdout, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Contains(t, stdout.String(), `"model": "gemini-2.5-flash"`)
	assert.Contains(t, stdout.String(), `"addr": ":9999"`)
}

func TestMain_Run_FlagOverridesConfigFile(t *testing.T) {
	t.Parallel()

	m := newTestMain(t)
	require.NoError(t, os.WriteFile(m.ConfigPath, []byte(`{model: "gemini-2.5-flash"}`), 0o644))
	stdout := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"--model", "gemini-2.5-pro", "config", "show"}, stdout, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Contains(t, stdout.String(), `"model": "gemini-2.5-pro"`)
}

func TestMain_Run_RejectsInvalidLogLevel(t *testing.T) {
	t.Parallel()

	m := newTestMain(t)

	err := m.Run(context.Background(), []string{"--log-level", "loud", "regions"}, &bytes.Buffer{}, &bytes.Buffer{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}
