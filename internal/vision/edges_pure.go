//go:build !opencv

package vision

import (
	"image"
	"math"
)

// Sobel computes the 3x3 horizontal and vertical derivatives of g, with
// reflect-101 border handling.
func Sobel(g *image.Gray) Gradient {
	pix := GrayPixels(g)
	w, h := g.Bounds().Dx(), g.Bounds().Dy()
	grad := Gradient{
		Width:  w,
		Height: h,
		DX:     make([]int, w*h),
		DY:     make([]int, w*h),
	}
	if w == 0 || h == 0 {
		return grad
	}

	at := func(x, y int) int {
		return int(pix[reflect101(y, h)*w+reflect101(x, w)])
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			tl, tc, tr := at(x-1, y-1), at(x, y-1), at(x+1, y-1)
			ml, mr := at(x-1, y), at(x+1, y)
			bl, bc, br := at(x-1, y+1), at(x, y+1), at(x+1, y+1)

			i := y*w + x
			grad.DX[i] = (tr + 2*mr + br) - (tl + 2*ml + bl)
			grad.DY[i] = (bl + 2*bc + br) - (tl + 2*tc + tr)
		}
	}
	return grad
}

// tan(22.5°) and tan(67.5°) sector bounds for non-maximum suppression.
const (
	tan22 = 0.4142135623730951
	tan67 = 2.414213562373095
)

// Canny runs Canny edge detection on g with an L1 gradient norm and returns
// a mask where edge pixels are 255.
func Canny(g *image.Gray, low, high float64) *image.Gray {
	grad := Sobel(g)
	w, h := grad.Width, grad.Height
	edges := image.NewGray(image.Rect(0, 0, w, h))
	if w == 0 || h == 0 {
		return edges
	}

	mag := make([]float64, w*h)
	for i := range mag {
		mag[i] = math.Abs(float64(grad.DX[i])) + math.Abs(float64(grad.DY[i]))
	}
	magAt := func(x, y int) float64 {
		if x < 0 || y < 0 || x >= w || y >= h {
			return 0
		}
		return mag[y*w+x]
	}

	const (
		none = iota
		weak
		strong
	)
	state := make([]uint8, w*h)
	var stack []int

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			m := mag[i]
			if m <= low {
				continue
			}

			ax := math.Abs(float64(grad.DX[i]))
			ay := math.Abs(float64(grad.DY[i]))

			var n1, n2 float64
			switch {
			case ay <= ax*tan22:
				n1, n2 = magAt(x-1, y), magAt(x+1, y)
			case ay > ax*tan67:
				n1, n2 = magAt(x, y-1), magAt(x, y+1)
			case (grad.DX[i] > 0) == (grad.DY[i] > 0):
				n1, n2 = magAt(x-1, y-1), magAt(x+1, y+1)
			default:
				n1, n2 = magAt(x+1, y-1), magAt(x-1, y+1)
			}
			if !(m > n1 && m >= n2) {
				continue
			}

			if m > high {
				state[i] = strong
				stack = append(stack, i)
			} else {
				state[i] = weak
			}
		}
	}

	// Hysteresis: promote weak pixels 8-connected to a strong one.
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		edges.Pix[i] = 255

		x, y := i%w, i/w
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := x+dx, y+dy
				if nx < 0 || ny < 0 || nx >= w || ny >= h {
					continue
				}
				j := ny*w + nx
				if state[j] == weak {
					state[j] = strong
					stack = append(stack, j)
				}
			}
		}
	}

	return edges
}

func reflect101(i, n int) int {
	if n == 1 {
		return 0
	}
	for i < 0 || i >= n {
		if i < 0 {
			i = -i
		} else {
			i = 2*n - 2 - i
		}
	}
	return i
}
