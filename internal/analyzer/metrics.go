package analyzer

import (
	"image"

	"github.com/saturnino-fabrica-de-software/skinscan/internal/domain"
	"github.com/saturnino-fabrica-de-software/skinscan/internal/vision"
)

// Redness band in OpenCV HSV: hue 0..10, saturation and value at least 50.
var (
	rednessLow  = vision.HSV{H: 0, S: 50, V: 50}
	rednessHigh = vision.HSV{H: 10, S: 255, V: 255}
)

// puffinessGradient is the Sobel magnitude above which a pixel counts as
// swollen contour.
const puffinessGradient = 50

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Texture is half the standard deviation of the grayscale intensity.
func Texture(img image.Image) float64 {
	return textureOf(vision.Grayscale(img))
}

// Wrinkles is the Canny edge density in percent.
func Wrinkles(img image.Image) float64 {
	return edgesOf(vision.Grayscale(img))
}

// Pigmentation is the standard deviation of the lightness channel.
func Pigmentation(img image.Image) float64 {
	_, std := vision.MeanStdDev(vision.Lightness(img))
	return clampScore(std)
}

// Tone is twice the standard deviation of the lightness channel.
func Tone(img image.Image) float64 {
	_, std := vision.MeanStdDev(vision.Lightness(img))
	return clampScore(2 * std)
}

// Redness is the percentage of pixels inside the red HSV band.
func Redness(img image.Image) float64 {
	b := img.Bounds()
	n := b.Dx() * b.Dy()
	if n <= 0 {
		return 0
	}
	return clampScore(float64(vision.CountInRangeHSV(img, rednessLow, rednessHigh)) / float64(n) * 100)
}

// EyeWrinkles is the edge density of an eye region in percent.
func EyeWrinkles(img image.Image) float64 {
	return Wrinkles(img)
}

// FineLines is the edge density of an eye region in percent.
func FineLines(img image.Image) float64 {
	return Wrinkles(img)
}

// DarkCircles maps mean lightness to darkness: black 100, white 0.
func DarkCircles(img image.Image) float64 {
	l := vision.Lightness(img)
	if len(l) == 0 {
		return 0
	}
	mean, _ := vision.MeanStdDev(l)
	return clampScore((255 - mean) / 2.55)
}

// Puffiness is the percentage of pixels with a strong intensity gradient.
func Puffiness(img image.Image) float64 {
	return puffinessOf(vision.Grayscale(img))
}

func textureOf(gray *image.Gray) float64 {
	_, std := vision.MeanStdDev(vision.GrayPixels(gray))
	return clampScore(std / 2)
}

func edgesOf(gray *image.Gray) float64 {
	return clampScore(vision.EdgeDensity(gray, vision.CannyLow, vision.CannyHigh) * 100)
}

func puffinessOf(gray *image.Gray) float64 {
	mags := vision.SobelMagnitude(gray)
	if len(mags) == 0 {
		return 0
	}
	strong := 0
	for _, m := range mags {
		if m > puffinessGradient {
			strong++
		}
	}
	return clampScore(float64(strong) / float64(len(mags)) * 100)
}

// ScoreRegion computes the eight condition scores of one region. Pores,
// acne and blackheads share the texture statistic.
func ScoreRegion(img image.Image) domain.ConditionScores {
	gray := vision.Grayscale(img)
	_, lstd := vision.MeanStdDev(vision.Lightness(img))

	texture := textureOf(gray)
	return domain.ConditionScores{
		domain.ConditionPores:        texture,
		domain.ConditionWrinkles:     edgesOf(gray),
		domain.ConditionPigmentation: clampScore(lstd),
		domain.ConditionAcne:         texture,
		domain.ConditionTexture:      texture,
		domain.ConditionRedness:      Redness(img),
		domain.ConditionBlackheads:   texture,
		domain.ConditionTone:         clampScore(2 * lstd),
	}
}

// ScoreEye computes the four eye-region features.
func ScoreEye(img image.Image) domain.EyeFeatures {
	gray := vision.Grayscale(img)
	edges := edgesOf(gray)
	return domain.EyeFeatures{
		Wrinkles:    edges,
		DarkCircles: DarkCircles(img),
		Puffiness:   puffinessOf(gray),
		FineLines:   edges,
	}
}
