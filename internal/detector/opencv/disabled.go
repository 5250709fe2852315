//go:build !opencv

package opencv

import (
	"context"

	"github.com/saturnino-fabrica-de-software/skinscan/internal/detector"
)

// NewDetectors always fails in builds without the opencv tag.
func NewDetectors(ctx context.Context, cfg Config) (detector.Set, error) {
	return detector.Set{}, ErrUnavailable
}
