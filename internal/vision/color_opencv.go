//go:build opencv

package vision

import (
	"image"

	"gocv.io/x/gocv"
)

// Lightness returns the CIE L* channel of img scaled to [0,255], row-major.
func Lightness(img image.Image) []uint8 {
	lab, ok := convertColor(img, gocv.ColorBGRToLab)
	if !ok {
		return []uint8{}
	}
	defer lab.Close()

	channels := gocv.Split(lab)
	defer closeMats(channels)
	return channels[0].ToBytes()
}

// MeanLab returns the mean CIE L*a*b* coordinates of img, L* in [0,100].
func MeanLab(img image.Image) (l, a, bb float64) {
	lab, ok := convertColor(img, gocv.ColorBGRToLab)
	if !ok {
		return 0, 0, 0
	}
	defer lab.Close()

	// 8-bit Lab stores L*·255/100 and offsets a* and b* by 128.
	m := lab.Mean()
	return m.Val1 * 100 / 255, m.Val2 - 128, m.Val3 - 128
}

// CountInRangeHSV counts pixels whose HSV value lies inside [lo, hi] on every
// channel, bounds inclusive.
func CountInRangeHSV(img image.Image, lo, hi HSV) int {
	hsv, ok := convertColor(img, gocv.ColorBGRToHSV)
	if !ok {
		return 0
	}
	defer hsv.Close()

	mask := gocv.NewMat()
	defer mask.Close()
	gocv.InRangeWithScalar(hsv,
		gocv.NewScalar(float64(lo.H), float64(lo.S), float64(lo.V), 0),
		gocv.NewScalar(float64(hi.H), float64(hi.S), float64(hi.V), 0),
		&mask)
	return gocv.CountNonZero(mask)
}

// convertColor loads img as an 8-bit BGR Mat and converts it with code.
// The caller owns the returned Mat when ok is true.
func convertColor(img image.Image, code gocv.ColorConversionCode) (gocv.Mat, bool) {
	if img.Bounds().Empty() {
		return gocv.Mat{}, false
	}
	bgr, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return gocv.Mat{}, false
	}
	defer bgr.Close()

	out := gocv.NewMat()
	gocv.CvtColor(bgr, &out, code)
	return out, true
}

func closeMats(mats []gocv.Mat) {
	for i := range mats {
		mats[i].Close()
	}
}
