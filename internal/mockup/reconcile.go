package mockup

import (
	"fmt"
	"strings"

	"github.com/w3jdev/mockupgenius/internal/prompt"
	"github.com/w3jdev/mockupgenius/internal/settings"
)

// FromAsset reconstructs the generation configuration from an asset's
// denormalized fields. Fields absent on the asset take their documented
// defaults (Cover for content fit). Idempotent: reconciling, regenerating,
// and reconciling again yields a field-identical configuration.
func FromAsset(a *GeneratedAsset) settings.Model {
	fit := a.ContentFit
	if fit == "" {
		fit = settings.FitCover
	}
	return settings.Model{
		DeviceType:             a.DeviceType,
		BackgroundStyle:        a.BackgroundStyle,
		Lighting:               a.Lighting,
		Angle:                  a.Angle,
		ColorMood:              a.ColorMood,
		ContentFit:             fit,
		Description:            a.Description,
		CustomPrompt:           a.CustomPrompt,
		CustomBackgroundPrompt: a.CustomBackgroundPrompt,
		MarketingTagline:       a.Tagline,
		DetectedAppCategory:    a.AppCategory,
		DetectedAudience:       a.TargetAudience,
		DetectedColors:         a.DominantColors,
	}
}

// VariantFor infers the generation variant from a stored variant label.
// Absent or ambiguous labels default to variant A.
func VariantFor(a *GeneratedAsset) prompt.Variant {
	if strings.Contains(a.VariantLabel, "B") {
		return prompt.VariantB
	}
	return prompt.VariantA
}

// ForReplacement reconciles settings for the replace-screen-content
// workflow: the caller's content-fit preference overrides the stored one.
func ForReplacement(a *GeneratedAsset, fit settings.ContentFit) (settings.Model, prompt.Variant) {
	m := FromAsset(a)
	m.ContentFit = fit
	return m, VariantFor(a)
}

// ForRefine reconciles settings for the refine workflow: A/B testing is
// disabled, the override title/caption fields are seeded with the asset's
// current metadata so the user edits from a known baseline, and the
// original upload is reconstructed from the retained payload.
func ForRefine(a *GeneratedAsset) (settings.Model, Source, error) {
	m := FromAsset(a)
	m.EnableABTesting = false
	m.TargetSEOTitle = a.SEOTitle
	m.TargetSocialCaption = a.SocialCaption

	if len(a.SourceData) == 0 || a.SourceMIMEType == "" {
		return m, Source{}, fmt.Errorf("asset %s has no retained source image", a.ID)
	}
	src := Source{
		Data:      append([]byte(nil), a.SourceData...),
		MediaType: a.SourceMIMEType,
	}
	return m, src, nil
}
