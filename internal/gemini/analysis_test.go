package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/w3jdev/mockupgenius/internal/settings"
	"google.golang.org/genai"
)

const analysisJSON = `{
	"deviceType": "Laptop",
	"backgroundStyle": "City",
	"suggestedBackgrounds": ["Studio", "Dark", "Gradient", "Office"],
	"lighting": "Dramatic",
	"angle": "Front",
	"colorMood": "Cool Professional",
	"marketingTagline": "Bank Smarter",
	"visualStrategy": "Executive desk scene with skyline bokeh",
	"appCategory": "Premium Fintech",
	"targetAudience": "C-Suite Executives",
	"detectedColors": ["#0A1F44", "#F5A623", "#FFFFFF"],
	"conversionScore": 91,
	"suggestedProps": ["Montblanc pen", "Leather wallet", "Espresso cup", "Cufflinks"]
}`

func TestAnalyze(t *testing.T) {
	t.Setenv("GEMINI_MODEL", "")
	var gotModel string
	var gotConfig *genai.GenerateContentConfig
	client := testClient(func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		gotModel = model
		gotConfig = config
		return textResponse(analysisJSON), nil
	})

	result := client.Analyze(context.Background(), []byte("img"), "image/png")

	if result.Degraded {
		t.Fatal("Degraded = true for a successful analysis")
	}
	if gotModel != ModelFlash {
		t.Errorf("model = %q, want %q", gotModel, ModelFlash)
	}
	if gotConfig.ResponseMIMEType != "application/json" {
		t.Errorf("ResponseMIMEType = %q, want application/json", gotConfig.ResponseMIMEType)
	}
	if gotConfig.ResponseSchema == nil {
		t.Error("ResponseSchema not set")
	}
	if result.DeviceType != settings.DeviceLaptop {
		t.Errorf("DeviceType = %q, want %q", result.DeviceType, settings.DeviceLaptop)
	}
	if result.BackgroundStyle != settings.BackgroundCity {
		t.Errorf("BackgroundStyle = %q, want %q", result.BackgroundStyle, settings.BackgroundCity)
	}
	if result.Lighting != settings.LightingDramatic {
		t.Errorf("Lighting = %q, want %q", result.Lighting, settings.LightingDramatic)
	}
	if result.Angle != settings.AngleFront {
		t.Errorf("Angle = %q, want %q", result.Angle, settings.AngleFront)
	}
	if result.Tagline != "Bank Smarter" {
		t.Errorf("Tagline = %q, want %q", result.Tagline, "Bank Smarter")
	}
	if result.ConversionScore != 91 {
		t.Errorf("ConversionScore = %d, want 91", result.ConversionScore)
	}
	// Suggestion lists are capped at three entries.
	if len(result.SuggestedBackgrounds) != 3 {
		t.Errorf("SuggestedBackgrounds has %d entries, want 3", len(result.SuggestedBackgrounds))
	}
	if len(result.SuggestedProps) != 3 {
		t.Errorf("SuggestedProps has %d entries, want 3", len(result.SuggestedProps))
	}
}

func TestAnalyzeCoercesUnknownEnums(t *testing.T) {
	client := testClient(func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		return textResponse(`{
			"deviceType": "Foldable",
			"backgroundStyle": "Beach",
			"lighting": "Strobe",
			"angle": "Dutch",
			"colorMood": "Sunny",
			"marketingTagline": "Go",
			"visualStrategy": "Something",
			"suggestedBackgrounds": [],
			"appCategory": "Travel",
			"targetAudience": "Tourists",
			"detectedColors": ["#123456"],
			"conversionScore": 70,
			"suggestedProps": []
		}`), nil
	})

	result := client.Analyze(context.Background(), []byte("img"), "image/png")

	if result.Degraded {
		t.Fatal("Degraded = true, want structurally valid output accepted")
	}
	if result.DeviceType != settings.DeviceSmartphone {
		t.Errorf("DeviceType = %q, want default %q", result.DeviceType, settings.DeviceSmartphone)
	}
	if result.BackgroundStyle != settings.BackgroundGradient {
		t.Errorf("BackgroundStyle = %q, want default %q", result.BackgroundStyle, settings.BackgroundGradient)
	}
	if result.Lighting != settings.LightingSoft {
		t.Errorf("Lighting = %q, want default %q", result.Lighting, settings.LightingSoft)
	}
	if result.Angle != settings.AnglePerspective {
		t.Errorf("Angle = %q, want default %q", result.Angle, settings.AnglePerspective)
	}
}

func TestAnalyzeEmptyFieldsGetDefaults(t *testing.T) {
	client := testClient(func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		return textResponse(`{"deviceType": "Smartphone"}`), nil
	})

	result := client.Analyze(context.Background(), []byte("img"), "image/png")

	if result.Degraded {
		t.Fatal("Degraded = true, want per-field defaults instead")
	}
	if result.ColorMood == "" || result.Strategy == "" || result.Tagline == "" {
		t.Error("empty text fields were not defaulted")
	}
	if result.AppCategory == "" || result.TargetAudience == "" {
		t.Error("empty category fields were not defaulted")
	}
	if len(result.DetectedColors) == 0 {
		t.Error("empty color list was not defaulted")
	}
	if result.ConversionScore <= 0 {
		t.Errorf("ConversionScore = %d, want a positive default", result.ConversionScore)
	}
}

func TestAnalyzeDegradedOnCallFailure(t *testing.T) {
	client := testClient(func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		return nil, errors.New("invalid argument")
	})

	result := client.Analyze(context.Background(), []byte("img"), "image/png")

	if !result.Degraded {
		t.Fatal("Degraded = false, want true after a failed call")
	}
	if result.DeviceType != settings.DeviceSmartphone {
		t.Errorf("DeviceType = %q, want degraded default %q", result.DeviceType, settings.DeviceSmartphone)
	}
	if result.Tagline != "Experience the Future" {
		t.Errorf("Tagline = %q, want degraded default", result.Tagline)
	}
}

func TestAnalyzeDegradedOnUnparseableJSON(t *testing.T) {
	client := testClient(func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		return textResponse("sorry, I cannot describe this image"), nil
	})

	result := client.Analyze(context.Background(), []byte("img"), "image/png")
	if !result.Degraded {
		t.Error("Degraded = false, want true for unparseable output")
	}
}

func TestAnalysisApplyTo(t *testing.T) {
	result := &AnalysisResult{
		DeviceType:      settings.DeviceTablet,
		BackgroundStyle: settings.BackgroundNature,
		Lighting:        settings.LightingNatural,
		Angle:           settings.AngleFloating,
		ColorMood:       "Warm Luxury",
		Strategy:        "Sunlit editorial scene",
		Tagline:         "Breathe Easy",
		AppCategory:     "Health & Wellness",
		TargetAudience:  "Yoga Enthusiasts",
		DetectedColors:  []string{"#22C55E"},
		SuggestedProps:  []string{"Rolled towel"},
	}

	m := settings.Defaults()
	m.Description = "keep it airy"
	m.EnableABTesting = true
	m.ContentFit = settings.FitContain

	got := result.ApplyTo(m)

	if got.DeviceType != settings.DeviceTablet {
		t.Errorf("DeviceType = %q, want %q", got.DeviceType, settings.DeviceTablet)
	}
	if !strings.HasPrefix(got.CustomPrompt, "Visual Strategy: ") {
		t.Errorf("CustomPrompt = %q, want Visual Strategy prefix", got.CustomPrompt)
	}
	if got.MarketingTagline != "Breathe Easy" {
		t.Errorf("MarketingTagline = %q, want %q", got.MarketingTagline, "Breathe Easy")
	}
	// Fields the analysis does not own survive.
	if got.Description != "keep it airy" {
		t.Errorf("Description = %q, want preserved", got.Description)
	}
	if !got.EnableABTesting {
		t.Error("EnableABTesting was clobbered")
	}
	if got.ContentFit != settings.FitContain {
		t.Errorf("ContentFit = %q, want preserved %q", got.ContentFit, settings.FitContain)
	}
}
