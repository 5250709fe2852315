//go:build !opencv

package vision

import (
	"image"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Lightness returns the CIE L* channel of img scaled to [0,255], row-major.
func Lightness(img image.Image) []uint8 {
	b := img.Bounds()
	out := make([]uint8, 0, b.Dx()*b.Dy())
	eachPixel(img, func(c colorful.Color) {
		l, _, _ := c.Lab()
		out = append(out, toByte(l*255))
	})
	return out
}

// MeanLab returns the mean CIE L*a*b* coordinates of img, L* in [0,100].
func MeanLab(img image.Image) (l, a, bb float64) {
	n := 0
	eachPixel(img, func(c colorful.Color) {
		pl, pa, pb := c.Lab()
		l += pl
		a += pa
		bb += pb
		n++
	})
	if n == 0 {
		return 0, 0, 0
	}
	f := float64(n)
	return l / f * 100, a / f * 100, bb / f * 100
}

// CountInRangeHSV counts pixels whose HSV value lies inside [lo, hi] on every
// channel, bounds inclusive.
func CountInRangeHSV(img image.Image, lo, hi HSV) int {
	count := 0
	eachPixel(img, func(c colorful.Color) {
		h, s, v := c.Hsv()
		px := HSV{H: toByte(h / 2), S: toByte(s * 255), V: toByte(v * 255)}
		if px.H >= lo.H && px.H <= hi.H &&
			px.S >= lo.S && px.S <= hi.S &&
			px.V >= lo.V && px.V <= hi.V {
			count++
		}
	})
	return count
}

func eachPixel(img image.Image, fn func(colorful.Color)) {
	b := img.Bounds()
	if rgba, ok := img.(*image.RGBA); ok {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				p := rgba.RGBAAt(x, y)
				fn(colorful.Color{
					R: float64(p.R) / 255,
					G: float64(p.G) / 255,
					B: float64(p.B) / 255,
				})
			}
		}
		return
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			fn(colorful.Color{
				R: float64(r>>8) / 255,
				G: float64(g>>8) / 255,
				B: float64(bl>>8) / 255,
			})
		}
	}
}

func toByte(v float64) uint8 {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
