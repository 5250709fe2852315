//go:build opencv

package opencv

import (
	"context"
	"fmt"
	"image"
	"path/filepath"

	"gocv.io/x/gocv"

	"github.com/saturnino-fabrica-de-software/skinscan/internal/detector"
)

// NewDetectors loads PoolSize classifiers for each cascade.
func NewDetectors(ctx context.Context, cfg Config) (detector.Set, error) {
	face, err := NewCascadeDetector(filepath.Join(cfg.CascadeDir, cfg.FaceCascade), cfg, image.Pt(cfg.MinFaceSize, cfg.MinFaceSize))
	if err != nil {
		return detector.Set{}, fmt.Errorf("face cascade: %w", err)
	}
	eye, err := NewCascadeDetector(filepath.Join(cfg.CascadeDir, cfg.EyeCascade), cfg, image.Point{})
	if err != nil {
		_ = face.Close()
		return detector.Set{}, fmt.Errorf("eye cascade: %w", err)
	}
	return detector.Set{Face: face, Eye: eye}, nil
}

// CascadeDetector runs a Haar cascade. A CascadeClassifier must not be used
// from two goroutines at once, so every call borrows one from the pool.
type CascadeDetector struct {
	pool    chan *gocv.CascadeClassifier
	all     []*gocv.CascadeClassifier
	config  Config
	minSize image.Point
}

// NewCascadeDetector loads the cascade at path cfg.PoolSize times.
func NewCascadeDetector(path string, cfg Config, minSize image.Point) (*CascadeDetector, error) {
	size := cfg.PoolSize
	if size < 1 {
		size = 1
	}

	d := &CascadeDetector{
		pool:    make(chan *gocv.CascadeClassifier, size),
		config:  cfg,
		minSize: minSize,
	}
	for i := 0; i < size; i++ {
		c := gocv.NewCascadeClassifier()
		if !c.Load(path) {
			_ = c.Close()
			_ = d.Close()
			return nil, fmt.Errorf("load cascade %s", path)
		}
		d.all = append(d.all, &c)
		d.pool <- &c
	}
	return d, nil
}

// Detect returns the detectMultiScale rectangles in OpenCV's order.
func (d *CascadeDetector) Detect(ctx context.Context, gray *image.Gray) ([]image.Rectangle, error) {
	var c *gocv.CascadeClassifier
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case c = <-d.pool:
	}
	defer func() { d.pool <- c }()

	mat, err := gocv.ImageGrayToMatGray(gray)
	if err != nil {
		return nil, fmt.Errorf("convert image: %w", err)
	}
	defer mat.Close()

	rects := c.DetectMultiScaleWithParams(mat, d.config.ScaleFactor, d.config.MinNeighbors, 0, d.minSize, image.Point{})

	// Mat coordinates start at the origin; map them back onto gray.
	b := gray.Bounds()
	out := make([]image.Rectangle, 0, len(rects))
	for _, r := range rects {
		if r = r.Add(b.Min).Intersect(b); !r.Empty() {
			out = append(out, r)
		}
	}
	return out, nil
}

// Close releases the native classifiers.
func (d *CascadeDetector) Close() error {
	var firstErr error
	for _, c := range d.all {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	d.all = nil
	return firstErr
}

var (
	_ detector.Detector = (*CascadeDetector)(nil)
	_ detector.Closer   = (*CascadeDetector)(nil)
)
