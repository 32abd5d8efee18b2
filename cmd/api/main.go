package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/saturnino-fabrica-de-software/hairfit/internal/api"
	"github.com/saturnino-fabrica-de-software/hairfit/internal/catalog"
	"github.com/saturnino-fabrica-de-software/hairfit/internal/config"
	"github.com/saturnino-fabrica-de-software/hairfit/internal/face"
	"github.com/saturnino-fabrica-de-software/hairfit/internal/faceshape"
	"github.com/saturnino-fabrica-de-software/hairfit/internal/provider"
	"github.com/saturnino-fabrica-de-software/hairfit/internal/recommend"
	"github.com/saturnino-fabrica-de-software/hairfit/internal/service"
	"github.com/saturnino-fabrica-de-software/hairfit/internal/undertone"
)

const version = "0.1.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Environment, cfg.LogLevel)
	slog.SetDefault(logger)

	logger.Info("starting Hairfit API",
		slog.String("environment", cfg.Environment),
		slog.Int("port", cfg.Port),
		slog.String("detector", cfg.DetectorType),
		slog.String("storage", cfg.StorageType),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Adapters
	detector, err := face.NewLandmarkDetector(cfg)
	if err != nil {
		return fmt.Errorf("failed to create detector: %w", err)
	}

	lister, err := face.NewObjectLister(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create object lister: %w", err)
	}

	// Catalog
	sync := catalog.NewSynchronizer(lister, catalog.Config{
		Prefix:       cfg.S3Prefix,
		TTL:          cfg.CatalogTTL,
		FetchTimeout: cfg.CatalogFetchTimeout,
		RetryBackoff: cfg.CatalogRetryBackoff,
	}, logger)

	worker := catalog.NewWorker(sync, logger, cfg.CatalogWarmInterval)
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		worker.Run(ctx)
	}()

	// Pipeline
	analysisService := service.NewAnalysisService(
		detector,
		sync,
		faceshape.NewClassifier(),
		undertone.NewEstimator(undertone.Config{Threshold: cfg.UndertoneThreshold}),
		recommend.NewEngine(recommend.Config{Limit: cfg.RecommendationLimit}),
		logger,
	).WithDetectTimeout(cfg.DetectTimeout)

	// Setup router
	deps := &api.Dependencies{
		AnalysisService: analysisService,
		CatalogService:  service.NewCatalogService(sync),
		Readiness:       sync,
		Version:         version,
		MaxImageSize:    int64(cfg.MaxImageSize),
		CORSOrigins:     cfg.CORSOrigins,
	}
	if pinger, ok := detector.(provider.Pinger); ok {
		deps.DetectorPing = pinger
	}
	router := api.NewRouter(logger, deps)
	router.Setup()

	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		logger.Info("server listening", slog.String("addr", addr))
		if err := router.Listen(addr); err != nil {
			errChan <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errChan:
		stop()
		<-workerDone
		return fmt.Errorf("server error: %w", err)
	}

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.Info("shutting down server...")
	if err := router.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", slog.Any("error", err))
	}

	<-workerDone
	logger.Info("server stopped")

	return nil
}
