package analyzer

import (
	"fmt"
	"image"

	"github.com/saturnino-fabrica-de-software/skinscan/internal/domain"
	"github.com/saturnino-fabrica-de-software/skinscan/internal/vision"
)

// Row and column split points, as fractions of the face crop.
const (
	foreheadBottom = 0.33
	cheeksBottom   = 0.66
	midline        = 0.5
	noseLeft       = 0.3
	noseRight      = 0.7
)

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// crop returns the view of img inside r. Images that cannot share their
// pixels are copied once into an RGBA first.
func crop(img image.Image, r image.Rectangle) image.Image {
	if s, ok := img.(subImager); ok {
		return s.SubImage(r)
	}
	b := img.Bounds()
	return vision.ToRGBA(img).SubImage(r.Sub(b.Min))
}

// regionRects returns the five region rectangles of a w×h face, relative to
// its top-left corner.
func regionRects(w, h int) map[domain.Region]image.Rectangle {
	y1 := int(float64(h) * foreheadBottom)
	y2 := int(float64(h) * cheeksBottom)
	xm := int(float64(w) * midline)
	xn0 := int(float64(w) * noseLeft)
	xn1 := int(float64(w) * noseRight)

	return map[domain.Region]image.Rectangle{
		domain.RegionForehead:   image.Rect(0, 0, w, y1),
		domain.RegionLeftCheek:  image.Rect(0, y1, xm, y2),
		domain.RegionRightCheek: image.Rect(xm, y1, w, y2),
		domain.RegionNose:       image.Rect(xn0, y1, xn1, y2),
		domain.RegionChin:       image.Rect(0, y2, w, h),
	}
}

// ExtractRegions splits a face crop into the five anatomical regions. The
// regions are views sharing the crop's pixels; the nose overlaps both
// cheeks.
func ExtractRegions(face image.Image) (map[domain.Region]image.Image, error) {
	b := face.Bounds()
	rects := regionRects(b.Dx(), b.Dy())

	if _, ok := face.(subImager); !ok {
		face = vision.ToRGBA(face)
		b = face.Bounds()
	}

	out := make(map[domain.Region]image.Image, len(rects))
	for _, region := range domain.Regions {
		r := rects[region]
		if r.Empty() {
			return nil, domain.ErrDegenerateFace.WithError(
				fmt.Errorf("region %s is empty for a %dx%d face", region, b.Dx(), b.Dy()))
		}
		out[region] = crop(face, r.Add(b.Min))
	}
	return out, nil
}
