package service

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/skinscan/internal/analyzer"
	"github.com/saturnino-fabrica-de-software/skinscan/internal/domain"
	"github.com/saturnino-fabrica-de-software/skinscan/internal/insight"
)

type EngineInterface interface {
	Run(ctx context.Context, img image.Image, actualAge *int) (*analyzer.Result, error)
}

type DecoderInterface interface {
	Decode(data []byte) (*image.RGBA, string, error)
}

type AnalysisService struct {
	engine  EngineInterface
	decoder DecoderInterface
	logger  *slog.Logger
	timeout time.Duration
}

func NewAnalysisService(engine EngineInterface, decoder DecoderInterface, logger *slog.Logger) *AnalysisService {
	return &AnalysisService{
		engine:  engine,
		decoder: decoder,
		logger:  logger,
		timeout: 30 * time.Second,
	}
}

// WithTimeout bounds a single analysis; zero disables the bound.
func (s *AnalysisService) WithTimeout(timeout time.Duration) *AnalysisService {
	s.timeout = timeout
	return s
}

// Analyze decodes imageBytes, runs the engine and derives the insights.
// A nil actualAge lets the engine's age oracle decide.
func (s *AnalysisService) Analyze(ctx context.Context, imageBytes []byte, actualAge *int) (*domain.SkinReport, error) {
	start := time.Now()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	img, format, err := s.decoder.Decode(imageBytes)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	res, err := s.engine.Run(ctx, img, actualAge)
	if err != nil {
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			return nil, domain.ErrAnalysisTimeout.WithError(err)
		case errors.Is(err, context.Canceled):
			return nil, domain.ErrRequestCanceled.WithError(err)
		}
		return nil, fmt.Errorf("analyze image: %w", err)
	}

	report := &domain.SkinReport{
		ID: uuid.New(),
		Face: domain.FaceBox{
			X:      res.Box.Min.X,
			Y:      res.Box.Min.Y,
			Width:  res.Box.Dx(),
			Height: res.Box.Dy(),
		},
		Analysis:  res.Analysis,
		Insights:  insight.Derive(res.Face, res.Analysis),
		CreatedAt: time.Now().UTC(),
	}
	report.LatencyMs = time.Since(start).Milliseconds()

	s.logger.Info("skin analysis completed",
		slog.String("report_id", report.ID.String()),
		slog.String("format", format),
		slog.Int("width", img.Bounds().Dx()),
		slog.Int("height", img.Bounds().Dy()),
		slog.Float64("overall_score", res.Analysis.OverallScore),
		slog.String("skin_tone", string(report.Insights.SkinTone)),
		slog.Int64("latency_ms", report.LatencyMs),
	)

	return report, nil
}
