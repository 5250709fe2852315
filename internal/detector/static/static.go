package static

import (
	"context"
	"image"

	"github.com/saturnino-fabrica-de-software/skinscan/internal/detector"
)

// Detector returns a fixed list of rectangles for every image, clipped to
// the image bounds. Used for development and tests.
type Detector struct {
	rects []image.Rectangle
}

// New creates a static detector returning rects.
func New(rects ...image.Rectangle) *Detector {
	return &Detector{rects: rects}
}

// WholeImage returns a detector reporting a single face covering the input.
func WholeImage() detector.Detector {
	return detector.Func(func(ctx context.Context, gray *image.Gray) ([]image.Rectangle, error) {
		return []image.Rectangle{gray.Bounds()}, nil
	})
}

// Detect returns the configured rectangles that intersect the image.
func (d *Detector) Detect(ctx context.Context, gray *image.Gray) ([]image.Rectangle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]image.Rectangle, 0, len(d.rects))
	for _, r := range d.rects {
		if clipped := r.Intersect(gray.Bounds()); !clipped.Empty() {
			out = append(out, clipped)
		}
	}
	return out, nil
}

var _ detector.Detector = (*Detector)(nil)
