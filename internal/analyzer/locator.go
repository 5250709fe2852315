package analyzer

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/saturnino-fabrica-de-software/skinscan/internal/detector"
	"github.com/saturnino-fabrica-de-software/skinscan/internal/domain"
	"github.com/saturnino-fabrica-de-software/skinscan/internal/vision"
)

// DefaultMinFaceSize is the smallest face side, in pixels, worth analysing.
const DefaultMinFaceSize = 20

// Locator finds the primary face of an image.
type Locator struct {
	detector    detector.Detector
	minFaceSize int
}

// NewLocator wraps a face detector. minFaceSize below 1 is treated as 1.
func NewLocator(d detector.Detector, minFaceSize int) *Locator {
	if minFaceSize < 1 {
		minFaceSize = 1
	}
	return &Locator{detector: d, minFaceSize: minFaceSize}
}

// Locate returns the largest detected face, clipped to the image and
// expressed in img's coordinate space.
func (l *Locator) Locate(ctx context.Context, img image.Image) (image.Rectangle, error) {
	gray := vision.Grayscale(img)

	candidates, err := l.detector.Detect(ctx, gray)
	if err != nil {
		return image.Rectangle{}, detectorError("detect faces", err)
	}

	best, ok := SelectLargest(candidates)
	if !ok {
		return image.Rectangle{}, domain.ErrNoFaceDetected
	}

	box := best.Intersect(gray.Bounds())
	if box.Empty() || box.Dx() < l.minFaceSize || box.Dy() < l.minFaceSize {
		return image.Rectangle{}, domain.ErrDegenerateFace.WithError(
			fmt.Errorf("face box %v below %dpx", box, l.minFaceSize))
	}

	return box.Add(img.Bounds().Min), nil
}

// SelectLargest returns the rectangle with the largest area. Ties keep the
// earliest candidate. ok is false for an empty slice.
func SelectLargest(rects []image.Rectangle) (image.Rectangle, bool) {
	if len(rects) == 0 {
		return image.Rectangle{}, false
	}
	best := rects[0]
	bestArea := best.Dx() * best.Dy()
	for _, r := range rects[1:] {
		if a := r.Dx() * r.Dy(); a > bestArea {
			best, bestArea = r, a
		}
	}
	return best, true
}

// detectorError keeps context errors intact and reports anything else as
// an unavailable detector.
func detectorError(op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return domain.ErrDetectorUnavailable.WithError(fmt.Errorf("%s: %w", op, err))
}
