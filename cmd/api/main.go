package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/saturnino-fabrica-de-software/skinscan/internal/analyzer"
	"github.com/saturnino-fabrica-de-software/skinscan/internal/api"
	"github.com/saturnino-fabrica-de-software/skinscan/internal/api/middleware"
	"github.com/saturnino-fabrica-de-software/skinscan/internal/config"
	"github.com/saturnino-fabrica-de-software/skinscan/internal/face"
	"github.com/saturnino-fabrica-de-software/skinscan/internal/imaging"
	"github.com/saturnino-fabrica-de-software/skinscan/internal/service"
)

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
	logger := config.NewLogger(cfg.Environment)
	slog.SetDefault(logger)

	logger.Info("starting SkinScan API",
		slog.String("environment", cfg.Environment),
		slog.Int("port", cfg.Port),
		slog.String("detector", cfg.Detector),
		slog.String("age_oracle", cfg.AgeOracle),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Detection backends
	detectors, err := face.NewDetectors(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create detectors: %w", err)
	}
	defer func() {
		if err := detectors.Close(); err != nil {
			logger.Error("failed to release detectors", slog.Any("error", err))
		}
	}()

	oracle, err := face.NewAgeOracle(cfg)
	if err != nil {
		return fmt.Errorf("failed to create age oracle: %w", err)
	}

	engine := analyzer.NewEngine(detectors,
		analyzer.WithLogger(logger),
		analyzer.WithAgeOracle(oracle),
		analyzer.WithDefaultAge(cfg.ActualAge),
		analyzer.WithMinFaceSize(cfg.MinFaceSize),
	)
	analysisService := service.NewAnalysisService(engine, imaging.NewDecoder(cfg.MaxImagePixels), logger).
		WithTimeout(cfg.AnalysisTimeout)

	// Setup router
	router := api.NewRouter(logger, &api.Dependencies{
		Analysis:     analysisService,
		Detector:     cfg.Detector,
		AgeOracle:    cfg.AgeOracle,
		MaxImageSize: cfg.MaxImageSize,
		RateLimit: middleware.RateLimiterConfig{
			Max:    cfg.RateLimitMax,
			Window: cfg.RateLimitWindow,
		},
	})
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
		return fmt.Errorf("server error: %w", err)
	}

	logger.Info("shutting down server...")
	done := make(chan error, 1)
	go func() {
		done <- router.Shutdown()
	}()

	select {
	case err := <-done:
		if err != nil {
			logger.Error("shutdown error", slog.Any("error", err))
		}
	case <-time.After(10 * time.Second):
		logger.Warn("shutdown timed out")
	}

	logger.Info("server stopped")

	return nil
}
