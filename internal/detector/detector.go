package detector

import (
	"context"
	"image"
)

// Detector finds candidate rectangles of one object class (faces or eyes) in
// a grayscale image. Rectangles are in the coordinate space of the input,
// whose bounds start at the origin, and are returned in the backend's
// enumeration order.
type Detector interface {
	Detect(ctx context.Context, gray *image.Gray) ([]image.Rectangle, error)
}

// Set bundles the two detection profiles the engine needs.
type Set struct {
	Face Detector
	Eye  Detector
}

// Closer is implemented by backends holding native resources.
type Closer interface {
	Close() error
}

// Close releases the resources of every detector in the set that holds any.
func (s Set) Close() error {
	var firstErr error
	for _, d := range []Detector{s.Face, s.Eye} {
		if c, ok := d.(Closer); ok {
			if err := c.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// Func adapts a plain function to the Detector interface.
type Func func(ctx context.Context, gray *image.Gray) ([]image.Rectangle, error)

func (f Func) Detect(ctx context.Context, gray *image.Gray) ([]image.Rectangle, error) {
	return f(ctx, gray)
}
