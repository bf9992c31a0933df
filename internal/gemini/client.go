// Package gemini holds the model-facing clients: vision analysis, two-tier
// mockup image generation, and SEO/social metadata generation. Every
// outbound call goes through the retry wrapper in internal/retry.
package gemini

import (
	"context"
	"fmt"

	"github.com/w3jdev/mockupgenius/internal/retry"
	"google.golang.org/genai"
)

// generateFunc is the raw generate-content call. Tests substitute this to
// exercise the clients without network access.
type generateFunc func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)

// Client wraps one genai connection and the retry policy shared by all
// operations.
type Client struct {
	generate generateFunc
	retryCfg retry.Config
}

// NewClient connects to the Gemini API with the given key.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	sdk, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Client{
		generate: sdk.Models.GenerateContent,
		retryCfg: retry.DefaultConfig(),
	}, nil
}

// inlineParts builds the standard text + inline image request payload.
func inlineParts(instruction string, imageData []byte, mediaType string) []*genai.Content {
	return []*genai.Content{{
		Role: "user",
		Parts: []*genai.Part{
			{Text: instruction},
			{InlineData: &genai.Blob{MIMEType: mediaType, Data: imageData}},
		},
	}}
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var out string
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			out += part.Text
		}
	}
	return out
}
