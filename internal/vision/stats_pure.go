//go:build !opencv

package vision

import (
	"image"
	"math"
)

// MeanStdDev returns the mean and population standard deviation of pix.
func MeanStdDev(pix []uint8) (mean, std float64) {
	if len(pix) == 0 {
		return 0, 0
	}
	var sum float64
	for _, p := range pix {
		sum += float64(p)
	}
	n := float64(len(pix))
	mean = sum / n

	var sq float64
	for _, p := range pix {
		d := float64(p) - mean
		sq += d * d
	}
	return mean, math.Sqrt(sq / n)
}

// CountNonZero counts the non-zero pixels of g.
func CountNonZero(g *image.Gray) int {
	n := 0
	for _, p := range GrayPixels(g) {
		if p != 0 {
			n++
		}
	}
	return n
}
