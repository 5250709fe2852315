//go:build opencv

package vision

import (
	"image"

	"gocv.io/x/gocv"
)

// Sobel computes the 3x3 horizontal and vertical derivatives of g, with
// reflect-101 border handling.
func Sobel(g *image.Gray) Gradient {
	w, h := g.Bounds().Dx(), g.Bounds().Dy()
	grad := Gradient{
		Width:  w,
		Height: h,
		DX:     make([]int, w*h),
		DY:     make([]int, w*h),
	}

	src, ok := grayMat(g)
	if !ok {
		return grad
	}
	defer src.Close()

	derivative(src, 1, 0, grad.DX)
	derivative(src, 0, 1, grad.DY)
	return grad
}

// A 3x3 kernel on bytes yields integers in ±1020, exact in float64.
func derivative(src gocv.Mat, dx, dy int, out []int) {
	d := gocv.NewMat()
	defer d.Close()

	gocv.Sobel(src, &d, gocv.MatTypeCV64F, dx, dy, 3, 1, 0, gocv.BorderDefault)
	vals, err := d.DataPtrFloat64()
	if err != nil {
		return
	}
	for i, v := range vals {
		out[i] = int(v)
	}
}

// Canny runs Canny edge detection on g with an L1 gradient norm and returns
// a mask where edge pixels are 255.
func Canny(g *image.Gray, low, high float64) *image.Gray {
	edges := image.NewGray(image.Rect(0, 0, g.Bounds().Dx(), g.Bounds().Dy()))

	src, ok := grayMat(g)
	if !ok {
		return edges
	}
	defer src.Close()

	dst := gocv.NewMat()
	defer dst.Close()
	gocv.Canny(src, &dst, float32(low), float32(high))
	copy(edges.Pix, dst.ToBytes())
	return edges
}

// grayMat wraps the row-major pixels of g in a single-channel Mat. The Mat
// shares memory with g, so g must outlive it.
func grayMat(g *image.Gray) (gocv.Mat, bool) {
	b := g.Bounds()
	if b.Empty() {
		return gocv.Mat{}, false
	}
	m, err := gocv.NewMatFromBytes(b.Dy(), b.Dx(), gocv.MatTypeCV8U, GrayPixels(g))
	if err != nil {
		return gocv.Mat{}, false
	}
	return m, true
}
