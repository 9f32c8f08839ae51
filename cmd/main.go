package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/halcyonpress/halcyon/internal/analytics"
	"github.com/halcyonpress/halcyon/internal/api"
	"github.com/halcyonpress/halcyon/internal/backend"
	"github.com/halcyonpress/halcyon/internal/cache"
	"github.com/halcyonpress/halcyon/internal/config"
	"github.com/halcyonpress/halcyon/internal/content"
	"github.com/halcyonpress/halcyon/internal/logger"
	"github.com/halcyonpress/halcyon/internal/media"
	"github.com/halcyonpress/halcyon/internal/metrics"
	"github.com/halcyonpress/halcyon/internal/middleware"
	"github.com/halcyonpress/halcyon/internal/newsletter"
	"github.com/halcyonpress/halcyon/internal/storage"
)

func main() {
	// Load and validate configuration
	cfg := config.Load()

	// Initialize logger
	if err := logger.Init(logger.Config{
		Level:  cfg.LogLevel,
		Output: cfg.LogFile,
		Pretty: cfg.IsDevelopment(),
	}); err != nil {
		panic(err)
	}

	log := logger.Get()
	log.Info().Msg("Starting application...")

	// Cache: Redis when configured, otherwise in-process
	var store cache.Cache
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedisCache(cfg.RedisURL, cfg.CachePrefix)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize Redis cache")
		}
		store = redisCache
	} else {
		log.Info().Msg("REDIS_URL not set, using in-process cache")
		store = cache.NewMemoryCache(cfg.CacheTTL)
	}
	defer func() {
		log.Info().Msg("Closing cache...")
		if err := store.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing cache")
		}
	}()

	// Hosted backend client and storage bucket
	client := backend.New(cfg)
	bucket, err := storage.NewBucket(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize storage bucket")
	}

	// Services
	norm := media.NewNormalizer(cfg.StoragePublicURL)
	mediaSvc := media.NewService(client, bucket, norm, cfg.MaxUploadSize)
	contentSvc := content.NewService(client, client, client, store, norm, cfg.CacheTTL)
	newsletterSvc := newsletter.NewService(client)
	tracker := analytics.NewTracker(client)

	// Create Fiber app with custom config
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.HTTPTimeout,
		WriteTimeout: cfg.HTTPTimeout,
		IdleTimeout:  120 * time.Second,
		BodyLimit:    int(cfg.MaxUploadSize) + 1<<20,
		ErrorHandler: middleware.ErrorHandler,
	})

	// Setup API routes
	api.SetupRoutes(app, api.NewHandlers(cfg, contentSvc, newsletterSvc, tracker, mediaSvc))

	// Prometheus metrics on a separate listener so the scrape endpoint never
	// shares the public surface
	metricsSrv := &http.Server{
		Addr:    ":" + cfg.MetricsPort,
		Handler: metrics.Handler(),
	}
	go func() {
		log.Info().Str("port", cfg.MetricsPort).Msg("Starting metrics server")
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("Metrics server error")
		}
	}()

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Create a deadline for graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := metricsSrv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Metrics server forced to shutdown")
	}
	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}
