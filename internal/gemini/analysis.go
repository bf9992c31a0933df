package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/w3jdev/mockupgenius/internal/jsonpart"
	"github.com/w3jdev/mockupgenius/internal/retry"
	"github.com/w3jdev/mockupgenius/internal/settings"
	"google.golang.org/genai"
)

// AnalysisResult carries the style strategy inferred from one screenshot.
// When Degraded is true the values are the fixed defaults substituted after
// the call failed; the caller surfaces that as a soft error only.
type AnalysisResult struct {
	DeviceType      settings.DeviceType
	BackgroundStyle settings.BackgroundStyle
	Lighting        settings.LightingStyle
	Angle           settings.CameraAngle
	ColorMood       string

	Strategy             string
	Tagline              string
	SuggestedBackgrounds []settings.BackgroundStyle
	AppCategory          string
	TargetAudience       string
	DetectedColors       []string
	ConversionScore      int
	SuggestedProps       []string

	Degraded bool
}

// ApplyTo folds the analysis into a configuration, preserving fields the
// analysis does not own (description, A/B flag, content fit).
func (r *AnalysisResult) ApplyTo(m settings.Model) settings.Model {
	m.DeviceType = r.DeviceType
	m.BackgroundStyle = r.BackgroundStyle
	m.Lighting = r.Lighting
	m.Angle = r.Angle
	m.ColorMood = r.ColorMood
	m.MarketingTagline = r.Tagline
	m.CustomPrompt = "Visual Strategy: " + r.Strategy
	m.DetectedAppCategory = r.AppCategory
	m.DetectedAudience = r.TargetAudience
	m.DetectedColors = r.DetectedColors
	m.SuggestedProps = r.SuggestedProps
	return m
}

// analysisPayload is the declared output schema of the analysis call.
type analysisPayload struct {
	DeviceType           string   `json:"deviceType"`
	BackgroundStyle      string   `json:"backgroundStyle"`
	SuggestedBackgrounds []string `json:"suggestedBackgrounds"`
	Lighting             string   `json:"lighting"`
	Angle                string   `json:"angle"`
	ColorMood            string   `json:"colorMood"`
	MarketingTagline     string   `json:"marketingTagline"`
	VisualStrategy       string   `json:"visualStrategy"`
	AppCategory          string   `json:"appCategory"`
	TargetAudience       string   `json:"targetAudience"`
	DetectedColors       []string `json:"detectedColors"`
	ConversionScore      int      `json:"conversionScore"`
	SuggestedProps       []string `json:"suggestedProps"`
}

func analysisSchema() *genai.Schema {
	str := &genai.Schema{Type: genai.TypeString}
	strArray := &genai.Schema{Type: genai.TypeArray, Items: str}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"deviceType":           str,
			"backgroundStyle":      str,
			"suggestedBackgrounds": strArray,
			"lighting":             str,
			"angle":                str,
			"colorMood":            str,
			"marketingTagline":     str,
			"visualStrategy":       str,
			"appCategory":          str,
			"targetAudience":       str,
			"detectedColors":       strArray,
			"conversionScore":      {Type: genai.TypeInteger},
			"suggestedProps":       strArray,
		},
		Required: []string{
			"deviceType", "backgroundStyle", "lighting", "angle", "colorMood",
			"marketingTagline", "visualStrategy", "suggestedBackgrounds",
			"appCategory", "targetAudience", "detectedColors",
			"conversionScore", "suggestedProps",
		},
	}
}

func analysisPrompt() string {
	var b strings.Builder
	b.WriteString(`You are a Chief Marketing Officer and Creative Director for a luxury design agency.

Analyze this UI screenshot to create an award-winning marketing mockup.

1. Categorization: exact industry (e.g., "Premium Fintech", "Gourmet F&B", "SaaS Enterprise").
2. Audience: who is the high-value buyer? (e.g., "Affluent Foodies", "C-Suite Executives").
3. Visual psychology: top 3 hex colors, and the vibe (e.g., "Warm Luxury", "Cool Professional", "Cyberpunk").
4. Conversion score: 0-100 based on UI clarity and premium feel.
5. Contextual storytelling: suggest 3 specific premium props to place blurred in the background that tell a story.
   - F&B: "Crystal wine glass", "Artisan bread", "Linen napkin".
   - Fintech: "Montblanc pen", "Leather wallet", "Espresso cup".
   - SaaS: "Minimalist plant", "Ceramic coffee mug", "Designer glasses".

Map suggestions to these enum values:
`)
	fmt.Fprintf(&b, "DeviceTypes: %s\n", "Auto, Smartphone, Marketing Hero, Laptop, Desktop, Tablet, Smart Watch")
	fmt.Fprintf(&b, "BackgroundStyles: %s\n", "Auto, Studio, Office, Nature, Gradient, Dark, Geometric, City, Lifestyle, Custom")
	fmt.Fprintf(&b, "LightingStyles: %s\n", "Auto, Soft, Dramatic, Neon, Natural, Studio Box")
	fmt.Fprintf(&b, "CameraAngles: %s\n", "Auto, Front, Perspective, Side, Top Down, Floating")
	b.WriteString("\nReturn a JSON object.")
	return b.String()
}

// degradedAnalysis is returned when the call fails after retries. Analysis
// failure never blocks the surrounding workflow.
func degradedAnalysis() *AnalysisResult {
	return &AnalysisResult{
		DeviceType:      settings.DeviceSmartphone,
		BackgroundStyle: settings.BackgroundGradient,
		Lighting:        settings.LightingSoft,
		Angle:           settings.AnglePerspective,
		ColorMood:       "Clean",
		Strategy:        "Standard professional presentation",
		Tagline:         "Experience the Future",
		AppCategory:     "Technology",
		TargetAudience:  "Users",
		DetectedColors:  []string{"#333333"},
		ConversionScore: 80,
		Degraded:        true,
	}
}

// Analyze infers a marketing strategy from one screenshot. It never returns
// an error: enum values the model invents are coerced to defaults, and a
// failed call yields a fixed degraded result.
func (c *Client) Analyze(ctx context.Context, imageData []byte, mediaType string) *AnalysisResult {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   analysisSchema(),
	}
	contents := inlineParts(analysisPrompt(), imageData, mediaType)
	model := TextModelName()

	resp, err := retry.Do(ctx, c.retryCfg, func(ctx context.Context) (*genai.GenerateContentResponse, error) {
		return c.generate(ctx, model, contents, config)
	})
	if err != nil {
		log.Error().Err(err).Msg("Screenshot analysis failed, substituting defaults")
		return degradedAnalysis()
	}

	payload, err := jsonpart.Decode[analysisPayload](responseText(resp))
	if err != nil {
		log.Error().Err(err).Msg("Screenshot analysis returned unparseable JSON, substituting defaults")
		return degradedAnalysis()
	}

	result := &AnalysisResult{
		DeviceType:      settings.CoerceDevice(payload.DeviceType),
		BackgroundStyle: settings.CoerceBackground(payload.BackgroundStyle),
		Lighting:        settings.CoerceLighting(payload.Lighting),
		Angle:           settings.CoerceAngle(payload.Angle),
		ColorMood:       payload.ColorMood,
		Strategy:        payload.VisualStrategy,
		Tagline:         payload.MarketingTagline,
		AppCategory:     payload.AppCategory,
		TargetAudience:  payload.TargetAudience,
		DetectedColors:  payload.DetectedColors,
		ConversionScore: payload.ConversionScore,
		SuggestedProps:  capList(payload.SuggestedProps, 3),
	}
	for _, bg := range capList(payload.SuggestedBackgrounds, 3) {
		result.SuggestedBackgrounds = append(result.SuggestedBackgrounds, settings.CoerceBackground(bg))
	}

	// Per-field defaults for structurally valid but empty output.
	if result.ColorMood == "" {
		result.ColorMood = "Premium Dark"
	}
	if result.Strategy == "" {
		result.Strategy = "High-end editorial presentation"
	}
	if result.Tagline == "" {
		result.Tagline = "Experience Excellence"
	}
	if result.AppCategory == "" {
		result.AppCategory = "General App"
	}
	if result.TargetAudience == "" {
		result.TargetAudience = "General Audience"
	}
	if len(result.DetectedColors) == 0 {
		result.DetectedColors = []string{"#000000", "#FFFFFF"}
	}
	if result.ConversionScore <= 0 {
		result.ConversionScore = 85
	}

	log.Info().
		Str("category", result.AppCategory).
		Str("device", string(result.DeviceType)).
		Int("conversion_score", result.ConversionScore).
		Msg("Screenshot analysis complete")
	return result
}

func capList(items []string, max int) []string {
	if len(items) > max {
		return items[:max]
	}
	return items
}
