//go:build opencv

package vision

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noiseRGBA fills a w×h image from a fixed linear congruential sequence.
func noiseRGBA(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	seed := uint32(7)
	next := func() uint8 {
		seed = seed*1664525 + 1013904223
		return uint8(seed >> 24)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{next(), next(), next(), 255})
		}
	}
	return img
}

// kernelSobel is a direct 3x3 Sobel with reflect-101 borders.
func kernelSobel(g *image.Gray) (dx, dy []int) {
	w, h := g.Bounds().Dx(), g.Bounds().Dy()
	reflect := func(i, n int) int {
		if i < 0 {
			return -i
		}
		if i >= n {
			return 2*n - 2 - i
		}
		return i
	}
	at := func(x, y int) int { return int(g.GrayAt(reflect(x, w), reflect(y, h)).Y) }

	dx, dy = make([]int, w*h), make([]int, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx[y*w+x] = (at(x+1, y-1) + 2*at(x+1, y) + at(x+1, y+1)) - (at(x-1, y-1) + 2*at(x-1, y) + at(x-1, y+1))
			dy[y*w+x] = (at(x-1, y+1) + 2*at(x, y+1) + at(x+1, y+1)) - (at(x-1, y-1) + 2*at(x, y-1) + at(x+1, y-1))
		}
	}
	return dx, dy
}

func TestOpenCV_SobelMatchesKernel(t *testing.T) {
	g := Grayscale(noiseRGBA(17, 13))

	grad := Sobel(g)
	dx, dy := kernelSobel(g)

	assert.Equal(t, dx, grad.DX)
	assert.Equal(t, dy, grad.DY)
}

func TestOpenCV_ColourMatchesColorful(t *testing.T) {
	img := noiseRGBA(12, 9)

	light := Lightness(img)
	require.Len(t, light, 12*9)

	var sumL float64
	for y := 0; y < 9; y++ {
		for x := 0; x < 12; x++ {
			p := img.RGBAAt(x, y)
			c := colorful.Color{R: float64(p.R) / 255, G: float64(p.G) / 255, B: float64(p.B) / 255}
			l, _, _ := c.Lab()
			sumL += l * 100
			assert.InDelta(t, l*255, float64(light[y*12+x]), 2, "pixel %d,%d", x, y)
		}
	}

	meanL, _, _ := MeanLab(img)
	assert.InDelta(t, sumL/float64(12*9), meanL, 1)
}

func TestOpenCV_StatsMatchDirectComputation(t *testing.T) {
	pix := GrayPixels(Grayscale(noiseRGBA(20, 20)))

	var sum float64
	for _, p := range pix {
		sum += float64(p)
	}
	mean := sum / float64(len(pix))
	var sq float64
	for _, p := range pix {
		sq += (float64(p) - mean) * (float64(p) - mean)
	}

	gotMean, gotStd := MeanStdDev(pix)
	assert.InDelta(t, mean, gotMean, 1e-9)
	assert.InDelta(t, math.Sqrt(sq/float64(len(pix))), gotStd, 1e-9)
}

func TestOpenCV_CannyOnSubImage(t *testing.T) {
	g := stepGray(30, 20, 15)
	sub := g.SubImage(image.Rect(5, 0, 25, 20)).(*image.Gray)

	edges := Canny(sub, CannyLow, CannyHigh)
	assert.Equal(t, image.Rect(0, 0, 20, 20), edges.Bounds())
	assert.Equal(t, 20, CountNonZero(edges))
	assert.Equal(t, uint8(255), edges.GrayAt(9, 0).Y)
}
