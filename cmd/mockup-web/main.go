package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/w3jdev/mockupgenius/internal/auth"
	"github.com/w3jdev/mockupgenius/internal/gemini"
	"github.com/w3jdev/mockupgenius/internal/logging"
	"github.com/w3jdev/mockupgenius/internal/mockup"
)

// CLI flags
var portFlag int

var rootCmd = &cobra.Command{
	Use:   "mockup-web",
	Short: "Local API server for the mockup generation pipeline",
	Long: `Mockup Web starts a local server exposing the generation pipeline to a
browser frontend: screenshot analysis, mockup generation with A/B variants,
the asset gallery, per-asset operations (favorite, metadata regeneration,
screen replacement, refine), and bulk export.

Examples:
  mockup-web
  mockup-web --port 9090`,
	Run: runMain,
}

func init() {
	rootCmd.Flags().IntVar(&portFlag, "port", 8080, "Port to listen on")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// server bundles the pipeline components the handlers operate on.
type server struct {
	client *gemini.Client
	store  *mockup.Store
	orch   *mockup.Orchestrator
}

func runMain(cmd *cobra.Command, args []string) {
	logging.Init()
	_ = godotenv.Load()

	apiKey, err := auth.GetAPIKey()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get API key")
	}

	ctx := context.Background()
	client, err := gemini.NewClient(ctx, apiKey)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Gemini client")
	}

	store := mockup.NewStore()
	srv := &server{
		client: client,
		store:  store,
		orch: mockup.NewOrchestrator(client, client, store, func(label string) {
			log.Info().Msg(label)
		}),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/analyze", srv.handleAnalyze)
	mux.HandleFunc("/api/generate", srv.handleGenerate)
	mux.HandleFunc("/api/assets", srv.handleAssets)
	mux.HandleFunc("/api/assets/reorder", srv.handleReorder)
	mux.HandleFunc("/api/assets/", srv.handleAssetRoutes)
	mux.HandleFunc("/api/export", srv.handleExport)

	addr := fmt.Sprintf("127.0.0.1:%d", portFlag)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 15 * time.Minute, // generation runs are slow by design
	}

	go func() {
		log.Info().Str("addr", addr).Msg("Mockup web server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Shutdown error")
	}
	log.Info().Msg("Server stopped")
}
