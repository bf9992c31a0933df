package gemini

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/w3jdev/mockupgenius/internal/prompt"
	"github.com/w3jdev/mockupgenius/internal/retry"
	"github.com/w3jdev/mockupgenius/internal/settings"
	"google.golang.org/genai"
)

// ErrGenerationFailed is returned once both image tiers are exhausted or
// neither produced an extractable image payload.
var ErrGenerationFailed = errors.New("mockup generation failed on both model tiers")

// ImageResult is one generated mockup image.
type ImageResult struct {
	Data     []byte
	MIMEType string
}

// GenerateMockup renders one marketing mockup from a screenshot. It tries
// the high-fidelity tier first and falls back to the flash tier on any
// failure, each tier wrapped in its own retry loop. A 200 response without
// inline image data counts as a failure.
func (c *Client) GenerateMockup(ctx context.Context, imageData []byte, mediaType string, s settings.Model, variant prompt.Variant) (*ImageResult, error) {
	composition := prompt.Compose(s, variant)
	contents := inlineParts(composition.GenerationInstruction, imageData, mediaType)

	result, err := c.generateTier(ctx, ModelProImage, contents, &genai.GenerateContentConfig{
		ImageConfig: &genai.ImageConfig{
			AspectRatio: "4:3",
			ImageSize:   "4K",
		},
	})
	if err == nil {
		return result, nil
	}
	log.Warn().Err(err).Str("model", ModelProImage).Msg("Pro image tier failed, falling back")

	result, err = c.generateTier(ctx, ModelFlashImage, contents, &genai.GenerateContentConfig{
		ImageConfig: &genai.ImageConfig{
			AspectRatio: "4:3",
		},
	})
	if err == nil {
		return result, nil
	}
	log.Error().Err(err).Str("model", ModelFlashImage).Msg("Fallback image tier failed")
	return nil, fmt.Errorf("%w: %s", ErrGenerationFailed, err)
}

func (c *Client) generateTier(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*ImageResult, error) {
	resp, err := retry.Do(ctx, c.retryCfg, func(ctx context.Context) (*genai.GenerateContentResponse, error) {
		return c.generate(ctx, model, contents, config)
	})
	if err != nil {
		return nil, err
	}

	result := extractImage(resp)
	if result == nil {
		return nil, fmt.Errorf("model %s returned no inline image data", model)
	}
	log.Info().
		Str("model", model).
		Int("image_bytes", len(result.Data)).
		Str("mime", result.MIMEType).
		Msg("Mockup image generated")
	return result, nil
}

// extractImage scans the response's ordered content segments for the first
// one carrying inline image data.
func extractImage(resp *genai.GenerateContentResponse) *ImageResult {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
			mime := part.InlineData.MIMEType
			if mime == "" {
				mime = "image/png"
			}
			return &ImageResult{Data: part.InlineData.Data, MIMEType: mime}
		}
	}
	return nil
}
