package analyzer

import (
	"image"
	"image/color"
	"math/rand"
)

var (
	midGray = color.RGBA{128, 128, 128, 255}
	black   = color.RGBA{0, 0, 0, 255}
	white   = color.RGBA{255, 255, 255, 255}
	red     = color.RGBA{255, 0, 0, 255}
)

func uniform(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	fill(img, img.Bounds(), c)
	return img
}

func fill(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

// noise returns a reproducible random colour image.
func noise(w, h int, seed int64) *image.RGBA {
	rng := rand.New(rand.NewSource(seed))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	rng.Read(img.Pix)
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
	return img
}

// stepImage is black left of column split and white from it on.
func stepImage(w, h, split int) *image.RGBA {
	img := uniform(w, h, black)
	fill(img, image.Rect(split, 0, w, h), white)
	return img
}
