package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/skinscan/internal/analyzer"
	"github.com/saturnino-fabrica-de-software/skinscan/internal/detector"
	"github.com/saturnino-fabrica-de-software/skinscan/internal/detector/pigo"
	"github.com/saturnino-fabrica-de-software/skinscan/internal/detector/static"
	"github.com/saturnino-fabrica-de-software/skinscan/internal/domain"
	"github.com/saturnino-fabrica-de-software/skinscan/internal/imaging"
)

type MockEngine struct {
	mock.Mock
}

func (m *MockEngine) Run(ctx context.Context, img image.Image, actualAge *int) (*analyzer.Result, error) {
	args := m.Called(ctx, img, actualAge)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analyzer.Result), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func pngBytes(t *testing.T, w, h int, c color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestAnalysisService_Analyze(t *testing.T) {
	engine := analyzer.NewEngine(detector.Set{Face: static.WholeImage(), Eye: pigo.NewEyeLocator()})
	svc := NewAnalysisService(engine, imaging.NewDecoder(0), discardLogger())

	report, err := svc.Analyze(context.Background(), pngBytes(t, 200, 200, color.RGBA{128, 128, 128, 255}), nil)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, report.ID)
	assert.Equal(t, domain.FaceBox{X: 0, Y: 0, Width: 200, Height: 200}, report.Face)
	require.NotNil(t, report.Analysis)
	assert.Equal(t, 100.0, report.Analysis.OverallScore)
	assert.Equal(t, 30, report.Analysis.AgeAnalysis.ActualAge)
	require.NotNil(t, report.Insights)
	assert.Equal(t, "Normal/Dry Skin", report.Insights.SkinType)
	assert.Len(t, report.Insights.Severity, 8)
	assert.GreaterOrEqual(t, report.LatencyMs, int64(0))
	assert.False(t, report.CreatedAt.IsZero())
}

func TestAnalysisService_PassesActualAge(t *testing.T) {
	engine := new(MockEngine)
	age := 52
	result := &analyzer.Result{
		Analysis: &domain.Analysis{
			Conditions:  domain.ConditionScores{domain.ConditionPores: 10},
			AgeAnalysis: domain.AgeAnalysis{ActualAge: 52, PerceivedAge: 52, EyeAge: 52},
		},
		Box:  image.Rect(1, 2, 11, 22),
		Face: image.NewRGBA(image.Rect(1, 2, 11, 22)),
	}
	engine.On("Run", mock.Anything, mock.AnythingOfType("*image.RGBA"), &age).Return(result, nil)

	svc := NewAnalysisService(engine, imaging.NewDecoder(0), discardLogger())
	report, err := svc.Analyze(context.Background(), pngBytes(t, 32, 32, color.RGBA{10, 20, 30, 255}), &age)
	require.NoError(t, err)

	assert.Equal(t, domain.FaceBox{X: 1, Y: 2, Width: 10, Height: 20}, report.Face)
	assert.Equal(t, 52, report.Analysis.AgeAnalysis.ActualAge)
	engine.AssertExpectations(t)
}

func TestAnalysisService_Errors(t *testing.T) {
	tests := []struct {
		name       string
		image      []byte
		setupMocks func(*MockEngine)
		wantErr    error
	}{
		{
			name:       "undecodable image",
			image:      []byte("not an image"),
			setupMocks: func(m *MockEngine) {},
			wantErr:    domain.ErrInvalidImage,
		},
		{
			name: "no face",
			setupMocks: func(m *MockEngine) {
				m.On("Run", mock.Anything, mock.Anything, mock.Anything).Return(nil, domain.ErrNoFaceDetected)
			},
			wantErr: domain.ErrNoFaceDetected,
		},
		{
			name: "deadline exceeded becomes timeout",
			setupMocks: func(m *MockEngine) {
				m.On("Run", mock.Anything, mock.Anything, mock.Anything).Return(nil, context.DeadlineExceeded)
			},
			wantErr: domain.ErrAnalysisTimeout,
		},
		{
			name: "client cancellation is not an internal error",
			setupMocks: func(m *MockEngine) {
				m.On("Run", mock.Anything, mock.Anything, mock.Anything).Return(nil, context.Canceled)
			},
			wantErr: domain.ErrRequestCanceled,
		},
		{
			name: "detector failure",
			setupMocks: func(m *MockEngine) {
				m.On("Run", mock.Anything, mock.Anything, mock.Anything).
					Return(nil, domain.ErrDetectorUnavailable.WithError(errors.New("boom")))
			},
			wantErr: domain.ErrDetectorUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := new(MockEngine)
			tt.setupMocks(engine)

			data := tt.image
			if data == nil {
				data = pngBytes(t, 16, 16, color.RGBA{0, 0, 0, 255})
			}

			svc := NewAnalysisService(engine, imaging.NewDecoder(0), discardLogger())
			_, err := svc.Analyze(context.Background(), data, nil)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			engine.AssertExpectations(t)
		})
	}
}

func TestAnalysisService_Timeout(t *testing.T) {
	engine := new(MockEngine)
	engine.On("Run", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			ctx := args.Get(0).(context.Context)
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
		}).
		Return(nil, context.Canceled)

	svc := NewAnalysisService(engine, imaging.NewDecoder(0), discardLogger()).WithTimeout(time.Second)
	_, err := svc.Analyze(context.Background(), pngBytes(t, 8, 8, color.RGBA{0, 0, 0, 255}), nil)

	assert.ErrorIs(t, err, domain.ErrRequestCanceled)
	assert.ErrorIs(t, err, context.Canceled)
}
