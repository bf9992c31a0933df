package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/w3jdev/mockupgenius/internal/export"
	"github.com/w3jdev/mockupgenius/internal/imgutil"
	"github.com/w3jdev/mockupgenius/internal/mockup"
	"github.com/w3jdev/mockupgenius/internal/settings"
)

// settingsPayload is the wire form of the generation configuration. Enum
// strings are coerced at this boundary; unknown values take the documented
// defaults.
type settingsPayload struct {
	DeviceType             string   `json:"deviceType"`
	BackgroundStyle        string   `json:"backgroundStyle"`
	Lighting               string   `json:"lighting"`
	Angle                  string   `json:"angle"`
	ColorMood              string   `json:"colorMood"`
	ContentFit             string   `json:"contentFit"`
	Description            string   `json:"description"`
	CustomBackgroundPrompt string   `json:"customBackgroundPrompt"`
	MarketingTagline       string   `json:"marketingTagline"`
	CustomPrompt           string   `json:"customPrompt"`
	TargetSEOTitle         string   `json:"targetSeoTitle"`
	TargetSocialCaption    string   `json:"targetSocialCaption"`
	EnableABTesting        bool     `json:"enableAbTesting"`
	DetectedAppCategory    string   `json:"detectedAppCategory"`
	DetectedAudience       string   `json:"detectedAudience"`
	DetectedColors         []string `json:"detectedColors"`
	SuggestedProps         []string `json:"suggestedProps"`
}

func (p settingsPayload) toModel() settings.Model {
	m := settings.Defaults()
	if p.DeviceType != "" {
		m.DeviceType = settings.CoerceDevice(p.DeviceType)
	}
	if p.BackgroundStyle != "" {
		m.BackgroundStyle = settings.CoerceBackground(p.BackgroundStyle)
	}
	if p.Lighting != "" {
		m.Lighting = settings.CoerceLighting(p.Lighting)
	}
	if p.Angle != "" {
		m.Angle = settings.CoerceAngle(p.Angle)
	}
	if p.ContentFit != "" {
		m.ContentFit = settings.CoerceFit(p.ContentFit)
	}
	if p.ColorMood != "" {
		m.ColorMood = p.ColorMood
	}
	m.Description = p.Description
	m.CustomBackgroundPrompt = p.CustomBackgroundPrompt
	m.MarketingTagline = p.MarketingTagline
	m.CustomPrompt = p.CustomPrompt
	m.TargetSEOTitle = p.TargetSEOTitle
	m.TargetSocialCaption = p.TargetSocialCaption
	m.EnableABTesting = p.EnableABTesting
	m.DetectedAppCategory = p.DetectedAppCategory
	m.DetectedAudience = p.DetectedAudience
	m.DetectedColors = p.DetectedColors
	m.SuggestedProps = p.SuggestedProps
	return m
}

// handleAnalyze runs screenshot analysis and returns the inferred style
// strategy. POST /api/analyze
func (s *server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httpError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req sourcePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	src, err := req.toSource()
	if err != nil {
		httpError(w, http.StatusBadRequest, err.Error())
		return
	}

	result := s.client.Analyze(r.Context(), src.Data, src.MediaType)

	backgrounds := make([]string, 0, len(result.SuggestedBackgrounds))
	for _, bg := range result.SuggestedBackgrounds {
		backgrounds = append(backgrounds, string(bg))
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"deviceType":           string(result.DeviceType),
		"backgroundStyle":      string(result.BackgroundStyle),
		"lighting":             string(result.Lighting),
		"angle":                string(result.Angle),
		"colorMood":            result.ColorMood,
		"moodAccent":           settings.MoodAccent(result.ColorMood),
		"strategy":             result.Strategy,
		"tagline":              result.Tagline,
		"suggestedBackgrounds": backgrounds,
		"appCategory":          result.AppCategory,
		"targetAudience":       result.TargetAudience,
		"detectedColors":       result.DetectedColors,
		"conversionScore":      result.ConversionScore,
		"suggestedProps":       result.SuggestedProps,
		"degraded":             result.Degraded,
	})
}

// handleGenerate runs one full generation pass. POST /api/generate
func (s *server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httpError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		Sources  []sourcePayload `json:"sources"`
		Settings settingsPayload `json:"settings"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sources := make([]mockup.Source, 0, len(req.Sources))
	for i, p := range req.Sources {
		src, err := p.toSource()
		if err != nil {
			httpError(w, http.StatusBadRequest, fmt.Sprintf("source %d: %s", i, err))
			return
		}
		sources = append(sources, src)
	}

	cfg := req.Settings.toModel()
	if err := cfg.Validate(); err != nil {
		httpError(w, http.StatusBadRequest, err.Error())
		return
	}

	assets, err := s.orch.Run(r.Context(), sources, cfg)
	switch {
	case errors.Is(err, mockup.ErrBusy):
		httpError(w, http.StatusConflict, err.Error())
		return
	case errors.Is(err, mockup.ErrNoSources):
		httpError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		httpError(w, http.StatusBadGateway, err.Error())
		return
	}

	views := make([]assetView, 0, len(assets))
	for _, a := range assets {
		views = append(views, viewOf(a))
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"assets": views})
}

// handleAssets lists the gallery. GET /api/assets
func (s *server) handleAssets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httpError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	assets := s.store.List()
	views := make([]assetView, 0, len(assets))
	for _, a := range assets {
		views = append(views, viewOf(a))
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"assets": views})
}

// handleReorder replaces the gallery order. POST /api/assets/reorder
func (s *server) handleReorder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httpError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req struct {
		IDs []string `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.store.Reorder(req.IDs); err != nil {
		httpError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// handleAssetRoutes dispatches per-asset operations:
// POST /api/assets/{id}/favorite, /metadata, /replace; GET /api/assets/{id}/refine
func (s *server) handleAssetRoutes(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/assets/"), "/")
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) != 2 || parts[0] == "" {
		httpError(w, http.StatusNotFound, "not found")
		return
	}
	id, action := parts[0], parts[1]

	switch action {
	case "favorite":
		s.handleFavorite(w, r, id)
	case "metadata":
		s.handleRegenerateMetadata(w, r, id)
	case "replace":
		s.handleReplace(w, r, id)
	case "refine":
		s.handleRefine(w, r, id)
	default:
		httpError(w, http.StatusNotFound, "not found")
	}
}

func (s *server) handleFavorite(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPost {
		httpError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if err := s.store.ToggleFavorite(id); err != nil {
		httpError(w, http.StatusNotFound, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *server) handleRegenerateMetadata(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPost {
		httpError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	degraded, err := s.orch.RegenerateMetadata(r.Context(), id)
	if err != nil {
		httpError(w, http.StatusNotFound, err.Error())
		return
	}
	asset, err := s.store.Get(id)
	if err != nil {
		httpError(w, http.StatusNotFound, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"asset":    viewOf(asset),
		"degraded": degraded,
	})
}

func (s *server) handleReplace(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPost {
		httpError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req struct {
		Source     sourcePayload `json:"source"`
		ContentFit string        `json:"contentFit"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	src, err := req.Source.toSource()
	if err != nil {
		httpError(w, http.StatusBadRequest, err.Error())
		return
	}

	fit := settings.CoerceFit(req.ContentFit)
	err = s.orch.Replace(r.Context(), id, src, fit)
	switch {
	case errors.Is(err, mockup.ErrBusy):
		httpError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		httpError(w, http.StatusBadGateway, err.Error())
		return
	}

	asset, err := s.store.Get(id)
	if err != nil {
		httpError(w, http.StatusNotFound, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"asset": viewOf(asset)})
}

// handleRefine returns the reconciled settings and the reconstructed source
// for an asset so the frontend can seed the configuration form.
func (s *server) handleRefine(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodGet {
		httpError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	asset, err := s.store.Get(id)
	if err != nil {
		httpError(w, http.StatusNotFound, err.Error())
		return
	}
	m, src, err := mockup.ForRefine(asset)
	if err != nil {
		httpError(w, http.StatusConflict, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"settings": settingsPayload{
			DeviceType:             string(m.DeviceType),
			BackgroundStyle:        string(m.BackgroundStyle),
			Lighting:               string(m.Lighting),
			Angle:                  string(m.Angle),
			ColorMood:              m.ColorMood,
			ContentFit:             string(m.ContentFit),
			Description:            m.Description,
			CustomBackgroundPrompt: m.CustomBackgroundPrompt,
			MarketingTagline:       m.MarketingTagline,
			CustomPrompt:           m.CustomPrompt,
			TargetSEOTitle:         m.TargetSEOTitle,
			TargetSocialCaption:    m.TargetSocialCaption,
			EnableABTesting:        m.EnableABTesting,
			DetectedAppCategory:    m.DetectedAppCategory,
			DetectedAudience:       m.DetectedAudience,
			DetectedColors:         m.DetectedColors,
		},
		"source": sourcePayload{
			Data:      imgutil.Encode(src.Data),
			MediaType: src.MediaType,
		},
	})
}

// handleExport streams the bulk archive. GET /api/export
func (s *server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httpError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	assets := s.store.List()
	if len(assets) == 0 {
		httpError(w, http.StatusConflict, "nothing to export")
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="MockupGenius_Assets.zip"`)
	if err := export.Archive(w, assets); err != nil {
		// Headers are already written; log and let the client see a broken
		// download it can retry.
		log.Error().Err(err).Msg("Export failed mid-stream")
	}
}
