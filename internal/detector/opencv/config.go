// Package opencv wraps OpenCV Haar cascades (gocv) as detector backends.
// It needs cgo and an OpenCV installation, so the implementation is only
// compiled with the "opencv" build tag.
package opencv

import "errors"

// ErrUnavailable is returned by NewDetectors when the binary was built
// without the opencv tag.
var ErrUnavailable = errors.New("opencv detector not compiled in (build with -tags opencv)")

// Config selects the cascades and the detectMultiScale parameters.
type Config struct {
	CascadeDir  string
	FaceCascade string
	EyeCascade  string
	// PoolSize is the number of classifiers loaded per cascade. It bounds
	// the number of concurrent Detect calls per detector.
	PoolSize     int
	ScaleFactor  float64
	MinNeighbors int
	MinFaceSize  int
}

// DefaultConfig mirrors the usual frontal face setup: scale 1.3, 5 neighbours.
func DefaultConfig() Config {
	return Config{
		CascadeDir:   "cascade",
		FaceCascade:  "haarcascade_frontalface_default.xml",
		EyeCascade:   "haarcascade_eye.xml",
		PoolSize:     8,
		ScaleFactor:  1.3,
		MinNeighbors: 5,
		MinFaceSize:  20,
	}
}
