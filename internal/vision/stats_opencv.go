//go:build opencv

package vision

import (
	"image"

	"gocv.io/x/gocv"
)

// MeanStdDev returns the mean and population standard deviation of pix.
func MeanStdDev(pix []uint8) (mean, std float64) {
	if len(pix) == 0 {
		return 0, 0
	}
	src, err := gocv.NewMatFromBytes(1, len(pix), gocv.MatTypeCV8U, pix)
	if err != nil {
		return 0, 0
	}
	defer src.Close()

	m, s := gocv.NewMat(), gocv.NewMat()
	defer m.Close()
	defer s.Close()
	gocv.MeanStdDev(src, &m, &s)
	return m.GetDoubleAt(0, 0), s.GetDoubleAt(0, 0)
}

// CountNonZero counts the non-zero pixels of g.
func CountNonZero(g *image.Gray) int {
	src, ok := grayMat(g)
	if !ok {
		return 0
	}
	defer src.Close()
	return gocv.CountNonZero(src)
}
