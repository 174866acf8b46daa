//go:build integration

package gemini_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/fwojciec/sangga"
	"github.com/fwojciec/sangga/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearcher_Integration_ReturnsListings(t *testing.T) {
	t.Parallel()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("GEMINI_API_KEY not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	client, err := gemini.NewClient(ctx, apiKey)
	require.NoError(t, err)

	params := sangga.DefaultSearchParams()
	params.SelectRegion("서울특별시")
	params.SelectSubRegion("금천구")

	searcher := gemini.NewSearcher(client.Models, gemini.WithModel(os.Getenv("SANGGA_MODEL")))

	result, err := searcher.SearchProperties(ctx, params)

	require.NoError(t, err)
	assert.NotNil(t, result.Properties)
	for _, p := range result.Properties {
		assert.NotEmpty(t, p.ID)
	}
}
