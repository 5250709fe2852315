package vision

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// HSV is a colour in OpenCV's 8-bit HSV scale: H in [0,180), S and V in [0,255].
type HSV struct {
	H, S, V uint8
}

// Grayscale converts img to an 8-bit luma image anchored at the origin.
func Grayscale(img image.Image) *image.Gray {
	b := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(gray, gray.Bounds(), img, b.Min, xdraw.Src)
	return gray
}

// ToRGBA copies img into a new RGBA image anchored at the origin.
func ToRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(dst, dst.Bounds(), img, b.Min, xdraw.Src)
	return dst
}
