package vision

import (
	"image"
)

// GrayPixels returns the luma values of g in row-major order.
func GrayPixels(g *image.Gray) []uint8 {
	b := g.Bounds()
	w := b.Dx()
	if g.Stride == w && b.Min == (image.Point{}) {
		return g.Pix[:w*b.Dy()]
	}
	out := make([]uint8, 0, w*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := g.PixOffset(b.Min.X, y)
		out = append(out, g.Pix[off:off+w]...)
	}
	return out
}
