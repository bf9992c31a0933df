package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/w3jdev/mockupgenius/internal/settings"
	"google.golang.org/genai"
)

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Fintech Dashboard Mockup", "Fintech-Dashboard-Mockup"},
		{"Already-Hyphenated", "Already-Hyphenated"},
		{"Tabs\tand\nnewlines", "Tabs-and-newlines"},
		{"Multiple   spaces", "Multiple-spaces"},
		{"", ""},
	}

	for _, tt := range tests {
		got := NormalizeTitle(tt.in)
		if got != tt.want {
			t.Errorf("NormalizeTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
		// Idempotent.
		if again := NormalizeTitle(got); again != got {
			t.Errorf("NormalizeTitle(NormalizeTitle(%q)) = %q, not idempotent", tt.in, again)
		}
	}
}

func TestGenerateMetadata(t *testing.T) {
	client := testClient(func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		return textResponse(`{
			"seoTitle": "Fintech Dashboard iPhone Mockup",
			"seoKeywords": "fintech, dashboard, mockup",
			"socialCaption": "New dashboard design. #fintech #design #mockup",
			"altText": "A banking dashboard displayed on a smartphone."
		}`), nil
	})

	meta, degraded := client.GenerateMetadata(context.Background(), settings.Defaults(), "Bank Smarter", nil)
	if degraded {
		t.Fatal("degraded = true for a successful call")
	}
	// Model output titles get normalized too.
	if meta.SEOTitle != "Fintech-Dashboard-iPhone-Mockup" {
		t.Errorf("SEOTitle = %q, want normalized hyphenated form", meta.SEOTitle)
	}
	if meta.SEOKeywords == "" || meta.SocialCaption == "" || meta.AltText == "" {
		t.Error("metadata fields missing")
	}
}

func TestGenerateMetadataSeedVariance(t *testing.T) {
	var prompts []string
	client := testClient(func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		prompts = append(prompts, contents[0].Parts[0].Text)
		return textResponse(`{"seoTitle": "T", "seoKeywords": "k", "socialCaption": "c", "altText": "a"}`), nil
	})

	s := settings.Defaults()
	client.GenerateMetadata(context.Background(), s, "Same Tagline", nil)
	client.GenerateMetadata(context.Background(), s, "Same Tagline", nil)

	if len(prompts) != 2 {
		t.Fatalf("generate called %d times, want 2", len(prompts))
	}
	if prompts[0] == prompts[1] {
		t.Error("identical prompts for consecutive calls, want a varying seed")
	}
	if !strings.Contains(prompts[0], "Seed: ") {
		t.Error("prompt missing the seed token")
	}
}

func TestGenerateMetadataOverrides(t *testing.T) {
	client := testClient(func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		return textResponse(`{
			"seoTitle": "Model-Chosen-Title",
			"seoKeywords": "k",
			"socialCaption": "model caption",
			"altText": "a"
		}`), nil
	})

	ov := &MetadataOverrides{Title: "My Exact Title", Caption: "my exact caption"}
	meta, degraded := client.GenerateMetadata(context.Background(), settings.Defaults(), "Tagline", ov)
	if degraded {
		t.Fatal("degraded = true for a successful call")
	}
	// Overrides win by substitution, and the title override is normalized.
	if meta.SEOTitle != "My-Exact-Title" {
		t.Errorf("SEOTitle = %q, want %q", meta.SEOTitle, "My-Exact-Title")
	}
	if meta.SocialCaption != "my exact caption" {
		t.Errorf("SocialCaption = %q, want the override", meta.SocialCaption)
	}
}

func TestGenerateMetadataFallback(t *testing.T) {
	client := testClient(func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		return nil, errors.New("model is overloaded")
	})

	meta, degraded := client.GenerateMetadata(context.Background(), settings.Defaults(), "Bank Smarter", nil)
	if !degraded {
		t.Fatal("degraded = false, want true after exhaustion")
	}
	if !strings.HasPrefix(meta.SEOTitle, "Bank-Smarter-") {
		t.Errorf("SEOTitle = %q, want tagline-derived prefix", meta.SEOTitle)
	}
	if meta.SEOKeywords == "" || meta.SocialCaption == "" || meta.AltText == "" {
		t.Error("fallback metadata has empty fields")
	}
}

func TestGenerateMetadataFallbackHonorsOverrides(t *testing.T) {
	client := testClient(func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		return nil, errors.New("quota exceeded")
	})

	ov := &MetadataOverrides{Title: "Forced Title", Caption: "forced caption"}
	meta, degraded := client.GenerateMetadata(context.Background(), settings.Defaults(), "Tagline", ov)
	if !degraded {
		t.Fatal("degraded = false, want true")
	}
	if meta.SEOTitle != "Forced-Title" {
		t.Errorf("SEOTitle = %q, want normalized override even in fallback", meta.SEOTitle)
	}
	if meta.SocialCaption != "forced caption" {
		t.Errorf("SocialCaption = %q, want override even in fallback", meta.SocialCaption)
	}
}

func TestFallbackMetadataUniqueness(t *testing.T) {
	a := fallbackMetadata("Tagline", nil, time.UnixMilli(1000))
	b := fallbackMetadata("Tagline", nil, time.UnixMilli(2000))
	if a.SEOTitle == b.SEOTitle {
		t.Error("fallback titles collide across distinct timestamps")
	}
	c := fallbackMetadata("", nil, time.UnixMilli(1000))
	if !strings.HasPrefix(c.SEOTitle, "App-Mockup-") {
		t.Errorf("SEOTitle = %q, want generic prefix for empty tagline", c.SEOTitle)
	}
}

func TestMetadataPromptForceLines(t *testing.T) {
	s := settings.Defaults()
	withOv := metadataPrompt(s, "T", "seed1234", &MetadataOverrides{Title: "X", Caption: "Y"})
	if !strings.Contains(withOv, "FORCE Title Override") {
		t.Error("prompt missing FORCE title line")
	}
	if !strings.Contains(withOv, "FORCE Caption Override") {
		t.Error("prompt missing FORCE caption line")
	}
	without := metadataPrompt(s, "T", "seed1234", nil)
	if strings.Contains(without, "FORCE") {
		t.Error("prompt contains FORCE lines without overrides")
	}
}
