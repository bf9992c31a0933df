// Package mockup sequences the generation pipeline: expanding uploads into
// jobs, invoking the image and metadata clients, and maintaining the ordered
// collection of generated assets.
package mockup

import (
	"time"

	"github.com/w3jdev/mockupgenius/internal/imgutil"
	"github.com/w3jdev/mockupgenius/internal/settings"
)

// Variant labels stored on assets produced by an A/B run.
const (
	VariantLabelA = "Variant A"
	VariantLabelB = "Variant B"
)

// GeneratedAsset is one produced mockup. Created by the orchestrator,
// mutated by favorite/metadata/replacement operations, never deleted here.
type GeneratedAsset struct {
	ID        string
	CreatedAt time.Time

	// Rendered image payload.
	ImageData     []byte
	ImageMIMEType string

	// Original source screenshot, retained verbatim so the refine workflow
	// can reconstruct the upload without asking the user again.
	SourceData     []byte
	SourceMIMEType string

	PromptSummary string
	Tagline       string
	Strategy      string

	SEOTitle         string
	SEOKeywords      string
	SocialCaption    string
	AltText          string
	MetadataDegraded bool

	IsFavorite   bool
	VariantLabel string // empty, "Variant A", or "Variant B"

	AppCategory     string
	TargetAudience  string
	DominantColors  []string
	ConversionScore int

	// Denormalized copy of the settings that produced this asset. This
	// copy, not the live configuration, is the source of truth for
	// reconciliation.
	DeviceType             settings.DeviceType
	BackgroundStyle        settings.BackgroundStyle
	Lighting               settings.LightingStyle
	Angle                  settings.CameraAngle
	ColorMood              string
	ContentFit             settings.ContentFit
	Description            string
	CustomPrompt           string
	CustomBackgroundPrompt string
}

// ImageURL renders the asset's image as a data URL for the presentation
// layer.
func (a *GeneratedAsset) ImageURL() string {
	return imgutil.DataURL(a.ImageData, a.ImageMIMEType)
}
