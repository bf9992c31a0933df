package main

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/w3jdev/mockupgenius/internal/imgutil"
	"github.com/w3jdev/mockupgenius/internal/mockup"
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func httpError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// sourcePayload is the wire form of one uploaded screenshot.
type sourcePayload struct {
	Data      string `json:"data"` // base64
	MediaType string `json:"mediaType"`
}

func (p sourcePayload) toSource() (mockup.Source, error) {
	if p.Data == "" {
		return mockup.Source{}, fmt.Errorf("source data is required")
	}
	data, err := imgutil.Decode(p.Data)
	if err != nil {
		return mockup.Source{}, err
	}
	mediaType := p.MediaType
	if mediaType == "" {
		mediaType = imgutil.DetectMediaType(data)
	}
	return mockup.Source{Data: data, MediaType: mediaType}, nil
}

// assetView is the wire form of one generated asset. Image and source
// payloads travel as data URLs / base64 so the frontend can render and
// re-upload without another endpoint.
type assetView struct {
	ID               string   `json:"id"`
	CreatedAt        int64    `json:"timestamp"`
	URL              string   `json:"url"`
	PromptSummary    string   `json:"prompt"`
	Tagline          string   `json:"tagline,omitempty"`
	Strategy         string   `json:"strategy,omitempty"`
	SEOTitle         string   `json:"seoTitle"`
	SEOKeywords      string   `json:"seoKeywords"`
	SocialCaption    string   `json:"socialCaption"`
	AltText          string   `json:"altText"`
	MetadataDegraded bool     `json:"metadataDegraded"`
	IsFavorite       bool     `json:"isFavorite"`
	VariantLabel     string   `json:"variantLabel,omitempty"`
	AppCategory      string   `json:"appCategory"`
	TargetAudience   string   `json:"targetAudience"`
	DominantColors   []string `json:"dominantColors"`
	ConversionScore  int      `json:"conversionScore"`

	DeviceType             string `json:"deviceType"`
	BackgroundStyle        string `json:"backgroundStyle"`
	Lighting               string `json:"lighting"`
	Angle                  string `json:"angle"`
	ColorMood              string `json:"colorMood"`
	ContentFit             string `json:"contentFit"`
	Description            string `json:"description,omitempty"`
	CustomPrompt           string `json:"customPrompt,omitempty"`
	CustomBackgroundPrompt string `json:"customBackgroundPrompt,omitempty"`
}

func viewOf(a *mockup.GeneratedAsset) assetView {
	return assetView{
		ID:               a.ID,
		CreatedAt:        a.CreatedAt.UnixMilli(),
		URL:              a.ImageURL(),
		PromptSummary:    a.PromptSummary,
		Tagline:          a.Tagline,
		Strategy:         a.Strategy,
		SEOTitle:         a.SEOTitle,
		SEOKeywords:      a.SEOKeywords,
		SocialCaption:    a.SocialCaption,
		AltText:          a.AltText,
		MetadataDegraded: a.MetadataDegraded,
		IsFavorite:       a.IsFavorite,
		VariantLabel:     a.VariantLabel,
		AppCategory:      a.AppCategory,
		TargetAudience:   a.TargetAudience,
		DominantColors:   a.DominantColors,
		ConversionScore:  a.ConversionScore,

		DeviceType:             string(a.DeviceType),
		BackgroundStyle:        string(a.BackgroundStyle),
		Lighting:               string(a.Lighting),
		Angle:                  string(a.Angle),
		ColorMood:              a.ColorMood,
		ContentFit:             string(a.ContentFit),
		Description:            a.Description,
		CustomPrompt:           a.CustomPrompt,
		CustomBackgroundPrompt: a.CustomBackgroundPrompt,
	}
}
