package pigo

import (
	"context"
	"image"

	"github.com/saturnino-fabrica-de-software/skinscan/internal/detector"
)

// Eye placement relative to the crop centre, in units of the crop's shorter
// side. Column offsets are the seeds PICO's pupil localiser starts from; the
// row offset is raised because a face crop is tighter than a PICO frame.
const (
	eyeRowOffset   = 0.20
	leftEyeOffset  = 0.175
	rightEyeOffset = 0.185
	eyeBoxWidth    = 0.30
	eyeBoxHeight   = 0.18
	minEyeBoxSide  = 4
)

// EyeLocator places the left and right eye boxes at their anthropometric
// positions inside a face crop. PICO's pupil localiser perturbs its input
// with an unseeded random source, which would break run-to-run determinism,
// so eyes are located geometrically instead.
//
// The boxes are estimates, not detections: eye-region scores (dark circles,
// puffiness, eye age) measure wherever the average face keeps its eyes.
// Tilted or unusually proportioned faces shift those scores. Deployments
// that need detected eyes run DETECTOR=opencv (Haar eye cascade, build tag
// opencv) or DETECTOR=rekognition (eyeLeft/eyeRight landmarks).
type EyeLocator struct{}

// NewEyeLocator creates an EyeLocator.
func NewEyeLocator() *EyeLocator {
	return &EyeLocator{}
}

// Detect returns up to two eye boxes, left eye first. Crops too small to
// hold a meaningful eye box yield none.
func (l *EyeLocator) Detect(ctx context.Context, gray *image.Gray) ([]image.Rectangle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b := gray.Bounds()
	scale := b.Dx()
	if b.Dy() < scale {
		scale = b.Dy()
	}
	s := float64(scale)

	w := int(s * eyeBoxWidth)
	h := int(s * eyeBoxHeight)
	if w < minEyeBoxSide || h < minEyeBoxSide {
		return nil, nil
	}

	centerRow := b.Min.Y + b.Dy()/2
	centerCol := b.Min.X + b.Dx()/2
	row := centerRow - int(eyeRowOffset*s)

	centers := []image.Point{
		{X: centerCol - int(leftEyeOffset*s), Y: row},
		{X: centerCol + int(rightEyeOffset*s), Y: row},
	}

	rects := make([]image.Rectangle, 0, len(centers))
	for _, c := range centers {
		r := image.Rect(c.X-w/2, c.Y-h/2, c.X-w/2+w, c.Y-h/2+h).Intersect(b)
		if r.Dx() < minEyeBoxSide || r.Dy() < minEyeBoxSide {
			continue
		}
		rects = append(rects, r)
	}
	return rects, nil
}

var _ detector.Detector = (*EyeLocator)(nil)
