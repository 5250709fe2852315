// Command analyze runs a skin analysis on one image file and prints the
// report as JSON.
//
//	analyze <image> [actual_age]
//
// Detection backend and age oracle come from the same environment
// variables as the API server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/saturnino-fabrica-de-software/skinscan/internal/analyzer"
	"github.com/saturnino-fabrica-de-software/skinscan/internal/config"
	"github.com/saturnino-fabrica-de-software/skinscan/internal/face"
	"github.com/saturnino-fabrica-de-software/skinscan/internal/imaging"
	"github.com/saturnino-fabrica-de-software/skinscan/internal/service"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("usage: analyze <image> [actual_age]")
	}

	var actualAge *int
	if len(args) == 2 {
		age, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid actual_age %q: %w", args[1], err)
		}
		actualAge = &age
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read image: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := config.NewLoggerTo(stderr, cfg.Environment)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	detectors, err := face.NewDetectors(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create detectors: %w", err)
	}
	defer func() {
		_ = detectors.Close()
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
	svc := service.NewAnalysisService(engine, imaging.NewDecoder(cfg.MaxImagePixels), logger).
		WithTimeout(cfg.AnalysisTimeout)

	report, err := svc.Analyze(ctx, data, actualAge)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
