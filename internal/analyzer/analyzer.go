// Package analyzer scores facial skin conditions and estimates perceived and
// eye age from the pixel statistics of a single photograph.
//
// The engine is deterministic: the same pixels and detector output always
// produce the same record. It keeps no mutable state between calls, so one
// Engine can serve concurrent requests when its detectors are re-entrant.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/saturnino-fabrica-de-software/skinscan/internal/detector"
	"github.com/saturnino-fabrica-de-software/skinscan/internal/domain"
	"github.com/saturnino-fabrica-de-software/skinscan/internal/provider"
	"github.com/saturnino-fabrica-de-software/skinscan/internal/vision"
)

// maxEyes is the number of eye regions used for the eye age.
const maxEyes = 2

// MaxAge bounds ages accepted from callers.
const MaxAge = 150

// Engine runs the full analysis pipeline.
type Engine struct {
	locator *Locator
	eyes    detector.Detector
	oracle  provider.AgeOracle
	logger  *slog.Logger
	// defaultAge stands in when no oracle answers.
	defaultAge int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for debug traces.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithAgeOracle sets the source of the actual age.
func WithAgeOracle(oracle provider.AgeOracle) Option {
	return func(e *Engine) {
		e.oracle = oracle
	}
}

// WithDefaultAge sets the actual age used when no age oracle is configured
// and when the oracle fails. Ages outside [0,MaxAge] are ignored.
func WithDefaultAge(age int) Option {
	return func(e *Engine) {
		if age >= 0 && age <= MaxAge {
			e.defaultAge = age
		}
	}
}

// WithMinFaceSize sets the smallest accepted face side in pixels.
func WithMinFaceSize(px int) Option {
	return func(e *Engine) {
		e.locator = NewLocator(e.locator.detector, px)
	}
}

// NewEngine creates an engine over the given detectors. By default the
// actual age is provider.DefaultActualAge; see WithDefaultAge.
func NewEngine(detectors detector.Set, opts ...Option) *Engine {
	e := &Engine{
		locator:    NewLocator(detectors.Face, DefaultMinFaceSize),
		eyes:       detectors.Eye,
		logger:     slog.Default(),
		defaultAge: provider.DefaultActualAge,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.oracle == nil {
		e.oracle = provider.NewStaticAgeOracle(e.defaultAge)
	}
	return e
}

// Result is an analysis together with the face it was computed on.
type Result struct {
	Analysis *domain.Analysis
	// Box is the face rectangle in the input image's coordinates.
	Box image.Rectangle
	// Face is a view of the input image inside Box.
	Face image.Image
}

// Analyze runs the pipeline with the actual age taken from the oracle.
func (e *Engine) Analyze(ctx context.Context, img image.Image) (*domain.Analysis, error) {
	res, err := e.Run(ctx, img, nil)
	if err != nil {
		return nil, err
	}
	return res.Analysis, nil
}

// AnalyzeWithAge runs the pipeline with a caller supplied actual age.
func (e *Engine) AnalyzeWithAge(ctx context.Context, img image.Image, actualAge int) (*domain.Analysis, error) {
	res, err := e.Run(ctx, img, &actualAge)
	if err != nil {
		return nil, err
	}
	return res.Analysis, nil
}

// Run executes the pipeline. A nil actualAge defers to the age oracle.
func (e *Engine) Run(ctx context.Context, img image.Image, actualAge *int) (*Result, error) {
	if actualAge != nil && (*actualAge < 0 || *actualAge > MaxAge) {
		return nil, domain.ErrValidationFailed.WithError(fmt.Errorf("actual age %d outside [0,%d]", *actualAge, MaxAge))
	}
	if img == nil || img.Bounds().Empty() {
		return nil, domain.ErrInvalidImage.WithError(errors.New("empty image"))
	}

	box, err := e.locator.Locate(ctx, img)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("face located", slog.String("box", box.String()))

	face := crop(img, box)
	regions, err := ExtractRegions(face)
	if err != nil {
		return nil, err
	}

	scores := make([]domain.ConditionScores, len(domain.Regions))
	var age domain.AgeAnalysis

	g, gctx := errgroup.WithContext(ctx)
	for i, region := range domain.Regions {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			scores[i] = ScoreRegion(regions[region])
			return nil
		})
	}
	g.Go(func() error {
		var err error
		age, err = e.estimateAge(gctx, face, actualAge)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byRegion := make(map[domain.Region]domain.ConditionScores, len(domain.Regions))
	for i, region := range domain.Regions {
		byRegion[region] = scores[i]
	}

	conditions, overall, err := Aggregate(byRegion)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("analysis complete",
		slog.Float64("overall_score", overall),
		slog.Int("perceived_age", age.PerceivedAge),
		slog.Int("eye_age", age.EyeAge),
	)

	return &Result{
		Analysis: &domain.Analysis{
			OverallScore: overall,
			Regions:      byRegion,
			Conditions:   conditions,
			AgeAnalysis:  age,
		},
		Box:  box,
		Face: face,
	}, nil
}

// estimateAge resolves the actual age, then scores the whole face and up to
// two eyes.
func (e *Engine) estimateAge(ctx context.Context, face image.Image, explicit *int) (domain.AgeAnalysis, error) {
	actual, err := e.actualAge(ctx, face, explicit)
	if err != nil {
		return domain.AgeAnalysis{}, err
	}

	factors := AgingFactors{
		Texture:      Texture(face),
		Wrinkles:     Wrinkles(face),
		Pigmentation: Pigmentation(face),
	}

	eyes, err := e.locateEyes(ctx, face)
	if err != nil {
		return domain.AgeAnalysis{}, err
	}
	features := make([]domain.EyeFeatures, 0, len(eyes))
	for _, eye := range eyes {
		features = append(features, ScoreEye(eye))
	}
	if avg, ok := AverageEyes(features); ok {
		e.logger.Debug("eyes scored",
			slog.Int("eyes", len(features)),
			slog.Float64("wrinkles", avg.Wrinkles),
			slog.Float64("dark_circles", avg.DarkCircles),
			slog.Float64("puffiness", avg.Puffiness),
			slog.Float64("fine_lines", avg.FineLines),
		)
	}

	return EstimateAge(actual, factors, features), nil
}

// actualAge prefers the caller's value. An oracle failure falls back to the
// default age unless the context is done.
func (e *Engine) actualAge(ctx context.Context, face image.Image, explicit *int) (int, error) {
	if explicit != nil {
		return *explicit, nil
	}
	if e.oracle == nil {
		return e.defaultAge, nil
	}

	age, err := e.oracle.ActualAge(ctx, face)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, ctxErr
		}
		e.logger.Warn("age oracle failed, using default age",
			slog.Any("error", err),
			slog.Int("default_age", e.defaultAge),
		)
		return e.defaultAge, nil
	}
	if age < 0 || age > MaxAge {
		e.logger.Warn("age oracle returned implausible age, using default age", slog.Int("age", age))
		return e.defaultAge, nil
	}
	return age, nil
}

// locateEyes returns up to two non-empty eye views of the face crop, in
// detector order.
func (e *Engine) locateEyes(ctx context.Context, face image.Image) ([]image.Image, error) {
	if e.eyes == nil {
		return nil, nil
	}

	gray := vision.Grayscale(face)
	rects, err := e.eyes.Detect(ctx, gray)
	if err != nil {
		return nil, detectorError("detect eyes", err)
	}

	origin := face.Bounds().Min
	eyes := make([]image.Image, 0, maxEyes)
	for _, r := range rects {
		r = r.Intersect(gray.Bounds())
		if r.Empty() {
			continue
		}
		eyes = append(eyes, crop(face, r.Add(origin)))
		if len(eyes) == maxEyes {
			break
		}
	}
	return eyes, nil
}
