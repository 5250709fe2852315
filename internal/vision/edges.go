package vision

import (
	"image"
	"math"
)

// Canny thresholds used for wrinkle and fine-line density.
const (
	CannyLow  = 50
	CannyHigh = 150
)

// Gradient holds 3x3 Sobel derivatives of a grayscale image.
type Gradient struct {
	Width, Height int
	DX, DY        []int
}

// Magnitude returns the Euclidean gradient magnitude per pixel.
func (g Gradient) Magnitude() []float64 {
	out := make([]float64, len(g.DX))
	for i := range g.DX {
		dx, dy := float64(g.DX[i]), float64(g.DY[i])
		out[i] = math.Sqrt(dx*dx + dy*dy)
	}
	return out
}

// SobelMagnitude is Sobel(g).Magnitude().
func SobelMagnitude(g *image.Gray) []float64 {
	return Sobel(g).Magnitude()
}

// EdgeDensity is the fraction of pixels Canny marks as edges, in [0,1].
func EdgeDensity(g *image.Gray, low, high float64) float64 {
	total := g.Bounds().Dx() * g.Bounds().Dy()
	if total == 0 {
		return 0
	}
	return float64(CountNonZero(Canny(g, low, high))) / float64(total)
}
