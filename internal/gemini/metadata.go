package gemini

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/w3jdev/mockupgenius/internal/jsonpart"
	"github.com/w3jdev/mockupgenius/internal/retry"
	"github.com/w3jdev/mockupgenius/internal/settings"
	"google.golang.org/genai"
)

// Metadata is the SEO/social record produced for one generated asset.
type Metadata struct {
	SEOTitle      string `json:"seoTitle"`
	SEOKeywords   string `json:"seoKeywords"`
	SocialCaption string `json:"socialCaption"`
	AltText       string `json:"altText"`
}

// MetadataOverrides carries user-supplied text that must win over whatever
// the model returns. Overrides are enforced by substitution after the call,
// never sent as hints.
type MetadataOverrides struct {
	Title   string
	Caption string
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// NormalizeTitle collapses whitespace runs to single hyphens so the title is
// filename-safe. Idempotent.
func NormalizeTitle(title string) string {
	return whitespaceRun.ReplaceAllString(title, "-")
}

func metadataSchema() *genai.Schema {
	str := &genai.Schema{Type: genai.TypeString}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"seoTitle":      {Type: genai.TypeString, Description: "Hyphenated filename-ready title"},
			"seoKeywords":   str,
			"socialCaption": str,
			"altText":       str,
		},
		Required: []string{"seoTitle", "seoKeywords", "socialCaption", "altText"},
	}
}

func metadataPrompt(s settings.Model, tagline, seed string, ov *MetadataOverrides) string {
	audience := s.DetectedAudience
	if audience == "" {
		audience = "General"
	}
	category := s.DetectedAppCategory
	if category == "" {
		category = "App"
	}

	var b strings.Builder
	b.WriteString("You are an expert SEO and brand strategist.\n\n")
	b.WriteString("Your goal: create a production-ready filename and title for this marketing asset.\n\n")
	b.WriteString("CONTEXT:\n")
	fmt.Fprintf(&b, "- Tagline: %q\n", tagline)
	fmt.Fprintf(&b, "- Audience: %s\n", audience)
	fmt.Fprintf(&b, "- Category: %s\n", category)
	fmt.Fprintf(&b, "- Vibe: %s\n", s.ColorMood)
	fmt.Fprintf(&b, "- Device: %s\n", s.DeviceType)
	fmt.Fprintf(&b, "- Seed: %s\n", seed)
	b.WriteString(`
INSTRUCTIONS:
1. seoTitle: a clean, brand-focused title suitable for a filename (e.g., "Fintech-Dashboard-iPhone15-Dark-Mode-Mockup"). Max 60 chars. No spaces, use hyphens.
2. seoKeywords: comma-separated high-volume keywords (e.g., "app design, ui ux, ios mockup, tech branding").
3. socialCaption: a ready-to-post Instagram/LinkedIn caption with 3 relevant hashtags.
4. altText: descriptive accessibility text describing the UI and the device context.
`)
	if ov != nil && ov.Title != "" {
		fmt.Fprintf(&b, "\nFORCE Title Override: %q\n", ov.Title)
	}
	if ov != nil && ov.Caption != "" {
		fmt.Fprintf(&b, "FORCE Caption Override: %q\n", ov.Caption)
	}
	b.WriteString("\nOutput valid JSON.")
	return b.String()
}

// applyOverrides substitutes user text for the corresponding fields and
// normalizes the title. Normalization applies to overrides too.
func applyOverrides(meta Metadata, ov *MetadataOverrides) Metadata {
	if ov != nil {
		if ov.Title != "" {
			meta.SEOTitle = ov.Title
		}
		if ov.Caption != "" {
			meta.SocialCaption = ov.Caption
		}
	}
	meta.SEOTitle = NormalizeTitle(meta.SEOTitle)
	return meta
}

// fallbackMetadata is the deterministic record substituted when the call is
// exhausted: tagline-derived title plus a time-based uniqueness token.
func fallbackMetadata(tagline string, ov *MetadataOverrides, now time.Time) Metadata {
	if tagline == "" {
		tagline = "App Mockup"
	}
	meta := Metadata{
		SEOTitle:      fmt.Sprintf("%s-%d", NormalizeTitle(tagline), now.UnixMilli()),
		SEOKeywords:   "app, mockup, design, ui, ux, premium",
		SocialCaption: "Check out this new design. #design #uiux",
		AltText:       "A premium app mockup displayed on a device.",
	}
	return applyOverrides(meta, ov)
}

// GenerateMetadata produces the SEO/social record for one mockup. A random
// seed token is injected so repeated calls for identical settings do not
// collapse to identical output. The boolean result reports degradation: on
// exhaustion a deterministic fallback is returned and the caller flags the
// asset for a user-triggered retry.
func (c *Client) GenerateMetadata(ctx context.Context, s settings.Model, tagline string, ov *MetadataOverrides) (Metadata, bool) {
	seed := uuid.NewString()[:8]
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   metadataSchema(),
	}
	contents := []*genai.Content{{
		Role:  "user",
		Parts: []*genai.Part{{Text: metadataPrompt(s, tagline, seed, ov)}},
	}}

	resp, err := retry.Do(ctx, c.retryCfg, func(ctx context.Context) (*genai.GenerateContentResponse, error) {
		return c.generate(ctx, TextModelName(), contents, config)
	})
	if err != nil {
		log.Error().Err(err).Msg("Metadata generation failed, substituting fallback")
		return fallbackMetadata(tagline, ov, time.Now()), true
	}

	meta, err := jsonpart.Decode[Metadata](responseText(resp))
	if err != nil {
		log.Error().Err(err).Msg("Metadata response unparseable, substituting fallback")
		return fallbackMetadata(tagline, ov, time.Now()), true
	}

	return applyOverrides(meta, ov), false
}
