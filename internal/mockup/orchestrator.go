package mockup

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/w3jdev/mockupgenius/internal/gemini"
	"github.com/w3jdev/mockupgenius/internal/metrics"
	"github.com/w3jdev/mockupgenius/internal/prompt"
	"github.com/w3jdev/mockupgenius/internal/settings"
)

// ErrBusy is returned when a run is requested while another is in flight.
// Runs are never queued or interleaved.
var ErrBusy = errors.New("a generation run is already in progress")

// ErrNoSources is returned before any network call when a run has nothing
// to generate from.
var ErrNoSources = errors.New("no source screenshots provided")

// ImageGenerator renders one mockup from a screenshot.
type ImageGenerator interface {
	GenerateMockup(ctx context.Context, imageData []byte, mediaType string, s settings.Model, variant prompt.Variant) (*gemini.ImageResult, error)
}

// MetadataGenerator produces the SEO/social record for one mockup. The
// boolean result reports that a fallback was substituted.
type MetadataGenerator interface {
	GenerateMetadata(ctx context.Context, s settings.Model, tagline string, ov *gemini.MetadataOverrides) (gemini.Metadata, bool)
}

// Source is one uploaded screenshot.
type Source struct {
	Data      []byte
	MediaType string
}

// State is the orchestrator's run lifecycle.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateCompleted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Orchestrator sequences generation runs. Jobs within a run execute
// strictly one at a time: serialization plus backoff is the congestion
// control for the rate-limited backend, not a performance choice.
type Orchestrator struct {
	images   ImageGenerator
	metadata MetadataGenerator
	store    *Store
	progress func(string)

	mu    sync.Mutex
	state State
}

// NewOrchestrator wires the pipeline. progress may be nil; when set it
// receives a human-readable label as each job starts.
func NewOrchestrator(images ImageGenerator, metadata MetadataGenerator, store *Store, progress func(string)) *Orchestrator {
	if progress == nil {
		progress = func(string) {}
	}
	return &Orchestrator{
		images:   images,
		metadata: metadata,
		store:    store,
		progress: progress,
	}
}

// State reports the lifecycle state of the most recent run.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// begin transitions to Running, refusing if a run is already in flight.
func (o *Orchestrator) begin() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state == StateRunning {
		return ErrBusy
	}
	o.state = StateRunning
	return nil
}

func (o *Orchestrator) finish(next State) {
	o.mu.Lock()
	o.state = next
	o.mu.Unlock()
}

// Run generates mockups for every source, expanding each into one or two
// variant jobs per the A/B flag. Results are buffered and committed to the
// store as one newest-first block only when every job succeeds; any failure
// discards the pending buffer and surfaces a single error.
func (o *Orchestrator) Run(ctx context.Context, sources []Source, s settings.Model) ([]*GeneratedAsset, error) {
	if len(sources) == 0 {
		return nil, ErrNoSources
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if err := o.begin(); err != nil {
		return nil, err
	}

	start := time.Now()
	variants := []prompt.Variant{prompt.VariantA}
	if s.EnableABTesting {
		variants = []prompt.Variant{prompt.VariantA, prompt.VariantB}
	}

	var results []*GeneratedAsset
	for i, src := range sources {
		for _, variant := range variants {
			if s.EnableABTesting {
				o.progress(fmt.Sprintf("Generating Variant %s for image %d/%d...", variant, i+1, len(sources)))
			} else {
				o.progress(fmt.Sprintf("Generating Mockup for image %d/%d...", i+1, len(sources)))
			}

			asset, err := o.generateOne(ctx, src, s, variant)
			if err != nil {
				o.finish(StateFailed)
				log.Error().Err(err).Int("completed_jobs", len(results)).Msg("Generation run failed, discarding pending results")
				metrics.New().
					Dimension("Outcome", "failed").
					Count("RunFailed").
					Duration("RunDuration", time.Since(start)).
					Property("completedJobs", len(results)).
					Flush()
				return nil, err
			}
			results = append(results, asset)
		}
	}

	o.store.PrependBatch(results)
	o.finish(StateCompleted)
	log.Info().Int("assets", len(results)).Msg("Generation run complete")
	metrics.New().
		Dimension("Outcome", "completed").
		Metric("AssetsGenerated", float64(len(results)), metrics.UnitCount).
		Duration("RunDuration", time.Since(start)).
		Property("abTesting", s.EnableABTesting).
		Flush()
	return results, nil
}

// generateOne executes a single job: render, metadata, assemble.
func (o *Orchestrator) generateOne(ctx context.Context, src Source, s settings.Model, variant prompt.Variant) (*GeneratedAsset, error) {
	image, err := o.images.GenerateMockup(ctx, src.Data, src.MediaType, s, variant)
	if err != nil {
		return nil, err
	}

	tagline := s.MarketingTagline
	if tagline == "" {
		tagline = "App Showcase"
	}
	meta, degraded := o.metadata.GenerateMetadata(ctx, s, tagline, &gemini.MetadataOverrides{
		Title:   s.TargetSEOTitle,
		Caption: s.TargetSocialCaption,
	})

	title := meta.SEOTitle
	variantLabel := ""
	if s.EnableABTesting {
		variantLabel = VariantLabelA
		if variant == prompt.VariantB {
			variantLabel = VariantLabelB
			title += "-Variant-B"
		}
	}

	category := s.DetectedAppCategory
	if category == "" {
		category = "General"
	}
	audience := s.DetectedAudience
	if audience == "" {
		audience = "General"
	}

	return &GeneratedAsset{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),

		ImageData:     image.Data,
		ImageMIMEType: image.MIMEType,

		SourceData:     src.Data,
		SourceMIMEType: src.MediaType,

		PromptSummary: fmt.Sprintf("%s | %s", s.DeviceType, s.BackgroundStyle),
		Tagline:       s.MarketingTagline,
		Strategy:      trimStrategyPrefix(s.CustomPrompt),

		SEOTitle:         title,
		SEOKeywords:      meta.SEOKeywords,
		SocialCaption:    meta.SocialCaption,
		AltText:          meta.AltText,
		MetadataDegraded: degraded,

		VariantLabel: variantLabel,

		AppCategory:     category,
		TargetAudience:  audience,
		DominantColors:  s.DetectedColors,
		ConversionScore: displayConversionScore(),

		DeviceType:             s.DeviceType,
		BackgroundStyle:        s.BackgroundStyle,
		Lighting:               s.Lighting,
		Angle:                  s.Angle,
		ColorMood:              s.ColorMood,
		ContentFit:             s.ContentFit,
		Description:            s.Description,
		CustomPrompt:           s.CustomPrompt,
		CustomBackgroundPrompt: s.CustomBackgroundPrompt,
	}, nil
}

// displayConversionScore is a display-only heuristic in the 80-97 range,
// independent of the analysis score and of any SEO field.
func displayConversionScore() int {
	return 80 + rand.IntN(18)
}

func trimStrategyPrefix(customPrompt string) string {
	const prefix = "Visual Strategy: "
	if len(customPrompt) >= len(prefix) && customPrompt[:len(prefix)] == prefix {
		return customPrompt[len(prefix):]
	}
	return customPrompt
}

// Replace regenerates the screen content of one existing asset with a new
// source image, reusing the asset's stored settings and variant. The new
// source replaces the retained payload; metadata is kept.
func (o *Orchestrator) Replace(ctx context.Context, id string, src Source, fit settings.ContentFit) error {
	asset, err := o.store.Get(id)
	if err != nil {
		return err
	}
	if err := o.begin(); err != nil {
		return err
	}

	o.progress("Replacing screen content...")
	m, variant := ForReplacement(asset, fit)
	image, err := o.images.GenerateMockup(ctx, src.Data, src.MediaType, m, variant)
	if err != nil {
		o.finish(StateFailed)
		return err
	}

	err = o.store.Update(id, func(a *GeneratedAsset) {
		a.ImageData = image.Data
		a.ImageMIMEType = image.MIMEType
		a.CreatedAt = time.Now()
		a.ContentFit = fit
		a.SourceData = src.Data
		a.SourceMIMEType = src.MediaType
	})
	if err != nil {
		o.finish(StateFailed)
		return err
	}
	o.finish(StateCompleted)
	return nil
}

// RegenerateMetadata re-runs only the metadata call for one asset, using
// settings reconciled from its denormalized copy. The returned boolean
// reports that the fallback record was substituted, so the caller can show
// a retry affordance.
func (o *Orchestrator) RegenerateMetadata(ctx context.Context, id string) (bool, error) {
	asset, err := o.store.Get(id)
	if err != nil {
		return false, err
	}

	m := FromAsset(asset)
	tagline := asset.Tagline
	if tagline == "" {
		tagline = "App Showcase"
	}
	meta, degraded := o.metadata.GenerateMetadata(ctx, m, tagline, nil)

	err = o.store.Update(id, func(a *GeneratedAsset) {
		a.SEOTitle = meta.SEOTitle
		a.SEOKeywords = meta.SEOKeywords
		a.SocialCaption = meta.SocialCaption
		a.AltText = meta.AltText
		a.MetadataDegraded = degraded
	})
	return degraded, err
}
