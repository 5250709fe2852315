package analyzer

import "github.com/saturnino-fabrica-de-software/skinscan/internal/domain"

// Ages are kept within [actual-5, actual+15].
const (
	maxYoungerYears = 5
	maxOlderYears   = 15
)

// step adds increment years when a factor exceeds threshold.
type step struct {
	threshold float64
	increment int
}

// ladder is checked top down; the first step exceeded wins.
type ladder []step

func (l ladder) years(v float64) int {
	for _, s := range l {
		if v > s.threshold {
			return s.increment
		}
	}
	return 0
}

var (
	faceTextureLadder      = ladder{{70, 5}, {50, 3}}
	faceWrinklesLadder     = ladder{{70, 8}, {50, 5}}
	facePigmentationLadder = ladder{{70, 4}, {50, 2}}

	eyeWrinklesLadder    = ladder{{70, 5}, {50, 3}}
	eyeDarkCirclesLadder = ladder{{70, 4}, {50, 2}}
	eyePuffinessLadder   = ladder{{70, 3}, {50, 1}}
	eyeFineLinesLadder   = ladder{{70, 4}, {50, 2}}
)

// AgingFactors are the whole-face statistics driving perceived age.
type AgingFactors struct {
	Texture      float64
	Wrinkles     float64
	Pigmentation float64
}

func clampAge(actual, age int) int {
	if age < actual-maxYoungerYears {
		return actual - maxYoungerYears
	}
	if age > actual+maxOlderYears {
		return actual + maxOlderYears
	}
	return age
}

// PerceivedAge applies the whole-face ladders to the actual age.
func PerceivedAge(actual int, f AgingFactors) int {
	adjust := faceTextureLadder.years(f.Texture) +
		faceWrinklesLadder.years(f.Wrinkles) +
		facePigmentationLadder.years(f.Pigmentation)
	return clampAge(actual, actual+adjust)
}

// AverageEyes averages the features of the detected eyes. ok is false when
// no eye was found.
func AverageEyes(eyes []domain.EyeFeatures) (avg domain.EyeFeatures, ok bool) {
	if len(eyes) == 0 {
		return domain.EyeFeatures{}, false
	}
	for _, e := range eyes {
		avg.Wrinkles += e.Wrinkles
		avg.DarkCircles += e.DarkCircles
		avg.Puffiness += e.Puffiness
		avg.FineLines += e.FineLines
	}
	n := float64(len(eyes))
	avg.Wrinkles /= n
	avg.DarkCircles /= n
	avg.Puffiness /= n
	avg.FineLines /= n
	return avg, true
}

// EyeAge applies the eye ladders to the averaged eye features. Without eyes
// the actual age is returned unchanged.
func EyeAge(actual int, eyes []domain.EyeFeatures) int {
	avg, ok := AverageEyes(eyes)
	if !ok {
		return actual
	}
	adjust := eyeWrinklesLadder.years(avg.Wrinkles) +
		eyeDarkCirclesLadder.years(avg.DarkCircles) +
		eyePuffinessLadder.years(avg.Puffiness) +
		eyeFineLinesLadder.years(avg.FineLines)
	return clampAge(actual, actual+adjust)
}

// EstimateAge builds the age record for one face.
func EstimateAge(actual int, f AgingFactors, eyes []domain.EyeFeatures) domain.AgeAnalysis {
	perceived := PerceivedAge(actual, f)
	eyeAge := EyeAge(actual, eyes)
	return domain.AgeAnalysis{
		ActualAge:        actual,
		PerceivedAge:     perceived,
		AgeDifference:    perceived - actual,
		EyeAge:           eyeAge,
		EyeAgeDifference: eyeAge - actual,
	}
}
