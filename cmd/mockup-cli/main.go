package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/w3jdev/mockupgenius/internal/auth"
	"github.com/w3jdev/mockupgenius/internal/export"
	"github.com/w3jdev/mockupgenius/internal/gemini"
	"github.com/w3jdev/mockupgenius/internal/imgutil"
	"github.com/w3jdev/mockupgenius/internal/logging"
	"github.com/w3jdev/mockupgenius/internal/mockup"
	"github.com/w3jdev/mockupgenius/internal/settings"
)

// CLI flags
var (
	dirFlag         string
	outFlag         string
	analyzeFlag     bool
	abFlag          bool
	deviceFlag      string
	backgroundFlag  string
	lightingFlag    string
	angleFlag       string
	moodFlag        string
	fitFlag         string
	descriptionFlag string
	customBgFlag    string
	titleFlag       string
	captionFlag     string
)

var rootCmd = &cobra.Command{
	Use:   "mockup-cli",
	Short: "AI-powered device mockup generation from app screenshots",
	Long: `Mockup CLI turns raw app screenshots into marketing-ready device mockups.

The tool loads the screenshots in a directory, optionally asks Gemini to
analyze the first one and auto-configure the style, renders each screenshot
onto a premium device scene, generates SEO/social metadata per asset, and
packages everything into a download archive.

Examples:
  mockup-cli --dir ./screenshots
  mockup-cli -d ./screens --analyze --ab -o launch-pack.zip
  mockup-cli -d ./screens --device Laptop --background City --lighting Neon
  mockup-cli -d ./screens --background Custom --custom-background "floating above a calm ocean at dawn"`,
	Run: runMain,
}

func init() {
	rootCmd.Flags().StringVarP(&dirFlag, "dir", "d", "", "Directory containing screenshots (png, jpg, webp)")
	rootCmd.Flags().StringVarP(&outFlag, "out", "o", "mockup-assets.zip", "Output archive path")
	rootCmd.Flags().BoolVar(&analyzeFlag, "analyze", false, "Analyze the first screenshot to auto-configure the style")
	rootCmd.Flags().BoolVar(&abFlag, "ab", false, "Generate A/B variants for every screenshot")
	rootCmd.Flags().StringVar(&deviceFlag, "device", "", "Device type (Auto, Smartphone, Laptop, ...)")
	rootCmd.Flags().StringVar(&backgroundFlag, "background", "", "Background style (Studio, City, Custom, ...)")
	rootCmd.Flags().StringVar(&lightingFlag, "lighting", "", "Lighting style (Soft, Dramatic, Neon, ...)")
	rootCmd.Flags().StringVar(&angleFlag, "angle", "", "Camera angle (Front, Perspective, ...)")
	rootCmd.Flags().StringVar(&moodFlag, "mood", "", "Color mood, free text")
	rootCmd.Flags().StringVar(&fitFlag, "fit", "", "Content fit (Cover, Contain, Top Align)")
	rootCmd.Flags().StringVar(&descriptionFlag, "description", "", "Extra instruction for the scene")
	rootCmd.Flags().StringVar(&customBgFlag, "custom-background", "", "Custom background prompt (requires --background Custom)")
	rootCmd.Flags().StringVar(&titleFlag, "title", "", "Force this SEO title on every asset")
	rootCmd.Flags().StringVar(&captionFlag, "caption", "", "Force this social caption on every asset")
	cobra.CheckErr(rootCmd.MarkFlagRequired("dir"))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runMain(cmd *cobra.Command, args []string) {
	logging.Init()
	_ = godotenv.Load()

	sources, err := loadSources(dirFlag)
	if err != nil {
		log.Fatal().Err(err).Str("dir", dirFlag).Msg("Failed to load screenshots")
	}
	if len(sources) == 0 {
		log.Fatal().Str("dir", dirFlag).Msg("No screenshots found (expected png, jpg, or webp)")
	}

	apiKey, err := auth.GetAPIKey()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get API key")
	}

	ctx := context.Background()
	client, err := gemini.NewClient(ctx, apiKey)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Gemini client")
	}

	cfg := buildSettings()
	if analyzeFlag {
		log.Info().Msg("Analyzing first screenshot for style strategy...")
		analysis := client.Analyze(ctx, sources[0].Data, sources[0].MediaType)
		if analysis.Degraded {
			log.Warn().Msg("Analysis unavailable, continuing with defaults")
		}
		cfg = analysis.ApplyTo(cfg)
		log.Info().
			Str("category", analysis.AppCategory).
			Str("tagline", analysis.Tagline).
			Str("accent", settings.MoodAccent(cfg.ColorMood)).
			Msg("Style configured from analysis")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	store := mockup.NewStore()
	orch := mockup.NewOrchestrator(client, client, store, func(label string) {
		log.Info().Msg(label)
	})

	assets, err := orch.Run(ctx, sources, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Generation run failed")
	}
	for _, a := range assets {
		log.Info().
			Str("title", a.SEOTitle).
			Str("variant", a.VariantLabel).
			Bool("metadata_degraded", a.MetadataDegraded).
			Msg("Asset generated")
	}

	out, err := os.Create(outFlag)
	if err != nil {
		log.Fatal().Err(err).Str("path", outFlag).Msg("Failed to create archive")
	}
	defer out.Close()
	if err := export.Archive(out, store.List()); err != nil {
		log.Fatal().Err(err).Msg("Failed to assemble archive")
	}
	log.Info().Str("path", outFlag).Int("assets", len(assets)).Msg("Done")
}

// buildSettings starts from the defaults and applies any flag the user set.
func buildSettings() settings.Model {
	cfg := settings.Defaults()
	if deviceFlag != "" {
		cfg.DeviceType = settings.CoerceDevice(deviceFlag)
	}
	if backgroundFlag != "" {
		cfg.BackgroundStyle = settings.CoerceBackground(backgroundFlag)
	}
	if lightingFlag != "" {
		cfg.Lighting = settings.CoerceLighting(lightingFlag)
	}
	if angleFlag != "" {
		cfg.Angle = settings.CoerceAngle(angleFlag)
	}
	if fitFlag != "" {
		cfg.ContentFit = settings.CoerceFit(fitFlag)
	}
	if moodFlag != "" {
		cfg.ColorMood = moodFlag
	}
	cfg.Description = descriptionFlag
	cfg.CustomBackgroundPrompt = customBgFlag
	cfg.TargetSEOTitle = titleFlag
	cfg.TargetSocialCaption = captionFlag
	cfg.EnableABTesting = abFlag
	return cfg
}

// loadSources reads every supported screenshot in dir, non-recursively.
func loadSources(dir string) ([]mockup.Source, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var sources []mockup.Source
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".png", ".jpg", ".jpeg", ".webp":
		default:
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", entry.Name(), err)
		}

		mediaType := imgutil.DetectMediaType(data)
		if w, h, err := imgutil.Dimensions(data); err == nil {
			log.Debug().Str("file", entry.Name()).Int("width", w).Int("height", h).Msg("Screenshot loaded")
		}
		sources = append(sources, mockup.Source{Data: data, MediaType: mediaType})
	}
	return sources, nil
}
