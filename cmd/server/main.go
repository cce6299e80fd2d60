package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/listinglens/dashboard/config"
	httpDelivery "github.com/listinglens/dashboard/internal/delivery/http"
	"github.com/listinglens/dashboard/internal/infrastructure/cache"
	"github.com/listinglens/dashboard/internal/infrastructure/charts"
	"github.com/listinglens/dashboard/internal/infrastructure/csvload"
	"github.com/listinglens/dashboard/internal/infrastructure/dataset"
	"github.com/listinglens/dashboard/internal/logging"
	"github.com/listinglens/dashboard/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logging.Setup(cfg.Log.Level, cfg.Server.Environment); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to configure logging: %v\n", err)
		os.Exit(1)
	}

	log.Info().
		Str("environment", cfg.Server.Environment).
		Str("port", cfg.Server.Port).
		Msg("Starting ListingLens dashboard v1.0.0")

	// Initialize infrastructure dependencies
	reportCache := cache.NewReportCache(cfg.Cache.TTL)
	defer reportCache.Close()
	log.Info().Dur("ttl", cfg.Cache.TTL).Msg("report cache ready")

	defaults := dataset.LoadDefault(cfg.Dataset.DefaultPath)
	if err := defaults.Err(); err != nil && cfg.Dataset.UseDefaultWhenNoUpload {
		log.Warn().Err(err).Msg("default fallback enabled but dataset unavailable; requests without an upload will get 503")
	}
	renderer := charts.NewRenderer(cfg.Charts.Width, cfg.Charts.Height)

	// Initialize usecase layer
	dashboardService := usecase.NewDashboardService(
		csvload.NewParser(),
		renderer,
		reportCache,
		defaults,
		usecase.DashboardServiceConfig{
			PreviewRows:            cfg.Dataset.PreviewRows,
			UseDefaultWhenNoUpload: cfg.Dataset.UseDefaultWhenNoUpload,
		},
	)

	log.Info().
		Bool("default_fallback", cfg.Dataset.UseDefaultWhenNoUpload).
		Int64("max_upload_bytes", cfg.Dataset.MaxUploadBytes).
		Int("ratelimit_per_ip", cfg.RateLimit.PerIP).
		Msg("dashboard configured")

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(dashboardService, cfg.Dataset.MaxUploadBytes).
		WithStatus(reportCache, defaults)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Info().Str("addr", addr).Msg("Server listening")

	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}
