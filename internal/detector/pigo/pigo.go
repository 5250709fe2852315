// Package pigo implements face detection on top of the pure-Go PICO cascade
// (github.com/esimov/pigo). The unpacked cascade is read-only after loading,
// so a single Detector can serve concurrent calls.
package pigo

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	pigo "github.com/esimov/pigo/core"

	"github.com/saturnino-fabrica-de-software/skinscan/internal/detector"
)

var ErrCascadeNotLoaded = errors.New("pigo cascade not loaded")

// Config holds the cascade location and scan parameters.
type Config struct {
	CascadeDir  string
	FaceCascade string
	MinSize     int
	ShiftFactor float64
	ScaleFactor float64
	// IoUThreshold merges overlapping detections.
	IoUThreshold float64
	// QualityThreshold drops detections scored below it.
	QualityThreshold float32
}

// DefaultConfig returns the scan parameters recommended by the PICO authors.
func DefaultConfig() Config {
	return Config{
		CascadeDir:       "cascade",
		FaceCascade:      "facefinder",
		MinSize:          20,
		ShiftFactor:      0.1,
		ScaleFactor:      1.1,
		IoUThreshold:     0.2,
		QualityThreshold: 5.0,
	}
}

// FaceDetector detects faces with the PICO facefinder cascade.
type FaceDetector struct {
	classifier *pigo.Pigo
	config     Config
}

// NewFaceDetector loads and unpacks the face cascade from disk.
func NewFaceDetector(cfg Config) (*FaceDetector, error) {
	path := filepath.Join(cfg.CascadeDir, cfg.FaceCascade)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cascade %s: %w", path, err)
	}
	return NewFaceDetectorFromBytes(data, cfg)
}

// NewFaceDetectorFromBytes unpacks an in-memory face cascade.
func NewFaceDetectorFromBytes(cascade []byte, cfg Config) (*FaceDetector, error) {
	classifier, err := pigo.NewPigo().Unpack(cascade)
	if err != nil {
		return nil, fmt.Errorf("unpack face cascade: %w", err)
	}
	return &FaceDetector{classifier: classifier, config: cfg}, nil
}

// Detect runs the cascade over the whole image and returns clustered face
// boxes above the quality threshold.
func (d *FaceDetector) Detect(ctx context.Context, gray *image.Gray) ([]image.Rectangle, error) {
	if d == nil || d.classifier == nil {
		return nil, ErrCascadeNotLoaded
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b := gray.Bounds()
	cols, rows := b.Dx(), b.Dy()
	maxSize := cols
	if rows < maxSize {
		maxSize = rows
	}
	if maxSize < d.config.MinSize {
		return nil, nil
	}

	params := pigo.CascadeParams{
		MinSize:     d.config.MinSize,
		MaxSize:     maxSize,
		ShiftFactor: d.config.ShiftFactor,
		ScaleFactor: d.config.ScaleFactor,
		ImageParams: pigo.ImageParams{
			Pixels: packedPixels(gray),
			Rows:   rows,
			Cols:   cols,
			Dim:    cols,
		},
	}

	dets := d.classifier.RunCascade(params, 0.0)
	dets = d.classifier.ClusterDetections(dets, d.config.IoUThreshold)

	return toRectangles(dets, d.config.QualityThreshold, b), nil
}

func toRectangles(dets []pigo.Detection, minQ float32, bounds image.Rectangle) []image.Rectangle {
	rects := make([]image.Rectangle, 0, len(dets))
	for _, det := range dets {
		if det.Q < minQ {
			continue
		}
		half := det.Scale / 2
		r := image.Rect(det.Col-half, det.Row-half, det.Col+half, det.Row+half).Intersect(bounds)
		if r.Empty() {
			continue
		}
		rects = append(rects, r)
	}
	return rects
}

// packedPixels returns the luma buffer without row padding.
func packedPixels(gray *image.Gray) []uint8 {
	b := gray.Bounds()
	w := b.Dx()
	if gray.Stride == w && b.Min == (image.Point{}) {
		return gray.Pix[:w*b.Dy()]
	}
	out := make([]uint8, 0, w*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := gray.PixOffset(b.Min.X, y)
		out = append(out, gray.Pix[off:off+w]...)
	}
	return out
}

var _ detector.Detector = (*FaceDetector)(nil)
