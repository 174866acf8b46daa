// Package gemini implements sangga services on top of Google Gemini.
package gemini

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/fwojciec/sangga"
	"google.golang.org/genai"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gemini-3-pro-preview"

// Generator is the subset of *genai.Models used by this package.
// Pass client.Models in production.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// NewClient creates a Gemini API client for the given API key.
func NewClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	if apiKey == "" {
		return nil, sangga.Errorf(sangga.EINVALID, "gemini API key required")
	}
	return genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
}

func userContent(prompt string) []*genai.Content {
	return []*genai.Content{{
		Parts: []*genai.Part{{Text: prompt}},
	}}
}

// classifyError converts a failed API call into an application error.
// Rate limiting and server-side failures are reported as EUNAVAILABLE so
// callers may retry them.
func classifyError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError:
			return sangga.Errorf(sangga.EUNAVAILABLE, "gemini unavailable: %s", apiErr.Message)
		case apiErr.Code == http.StatusBadRequest:
			return sangga.Errorf(sangga.EINVALID, "gemini rejected request: %s", apiErr.Message)
		}
	}
	return err
}

// stripCodeFence removes markdown code fences the model sometimes wraps
// around JSON output despite the requested MIME type.
func stripCodeFence(text string) string {
	text = strings.ReplaceAll(text, "```json\n", "")
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}

// CleanJSON returns the JSON payload of a model answer, or "[]" when the
// answer is empty.
func CleanJSON(text string) string {
	cleaned := stripCodeFence(text)
	if cleaned == "" {
		return "[]"
	}
	return cleaned
}
