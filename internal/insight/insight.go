// Package insight derives rule-based interpretations from an analysis:
// skin tone by Individual Typology Angle, UV and pigmentation advice, a
// coarse skin type and per-condition severity bands.
package insight

import (
	"image"
	"math"

	"github.com/saturnino-fabrica-de-software/skinscan/internal/domain"
	"github.com/saturnino-fabrica-de-software/skinscan/internal/vision"
)

// Severity bands for a condition score.
const (
	SeverityLow      = "low"
	SeverityMild     = "mild"
	SeverityModerate = "moderate"
	SeverityHigh     = "high"
)

// Skin types by mean condition score.
const (
	SkinTypeOilySensitive = "Oily/Sensitive Skin"
	SkinTypeCombination   = "Combination Skin"
	SkinTypeNormalDry     = "Normal/Dry Skin"
)

// itaBand maps the lower ITA bound (exclusive) of a tone.
type itaBand struct {
	above float64
	tone  domain.SkinTone
}

var itaBands = []itaBand{
	{55, domain.SkinToneVeryLight},
	{41, domain.SkinToneLight},
	{28, domain.SkinToneIntermediate},
	{10, domain.SkinToneTan},
	{-30, domain.SkinToneBrown},
}

var uvAdvice = map[domain.SkinTone]string{
	domain.SkinToneVeryLight:    "Very High UV sensitivity - Use SPF 50+ daily",
	domain.SkinToneLight:        "High UV sensitivity - Use SPF 50",
	domain.SkinToneIntermediate: "Moderate UV sensitivity - Use SPF 30-50",
	domain.SkinToneTan:          "Moderate UV sensitivity - Use SPF 30+",
	domain.SkinToneBrown:        "Lower UV sensitivity - Still need SPF 30",
	domain.SkinToneDark:         "Lowest UV sensitivity - But sunscreen is still necessary!",
}

const (
	defaultUVAdvice = "Unknown risk - default to SPF 30"

	higherPigmentationRisk = "Higher risk of hyperpigmentation - avoid strong peels or lasers without doctor advice"
	lowerPigmentationRisk  = "Lower risk - but sun protection still very important"
)

// ITA returns the Individual Typology Angle, in degrees, of the mean
// colour of img: atan((L*-50)/b*).
func ITA(img image.Image) float64 {
	l, _, b := vision.MeanLab(img)
	return itaAngle(l, b)
}

func itaAngle(l, b float64) float64 {
	if b == 0 {
		switch {
		case l > 50:
			return 90
		case l < 50:
			return -90
		default:
			return 0
		}
	}
	return math.Atan((l-50)/b) * 180 / math.Pi
}

// ToneForITA buckets an angle into a skin tone.
func ToneForITA(ita float64) domain.SkinTone {
	for _, band := range itaBands {
		if ita > band.above {
			return band.tone
		}
	}
	return domain.SkinToneDark
}

// ClassifySkinTone returns the tone of img and the ITA it was derived from.
func ClassifySkinTone(img image.Image) (domain.SkinTone, float64) {
	ita := ITA(img)
	return ToneForITA(ita), ita
}

// UVRecommendation returns sunscreen advice for a tone.
func UVRecommendation(tone domain.SkinTone) string {
	if advice, ok := uvAdvice[tone]; ok {
		return advice
	}
	return defaultUVAdvice
}

// PigmentationRisk returns the hyperpigmentation warning for a tone.
func PigmentationRisk(tone domain.SkinTone) string {
	switch tone {
	case domain.SkinToneTan, domain.SkinToneBrown, domain.SkinToneDark:
		return higherPigmentationRisk
	default:
		return lowerPigmentationRisk
	}
}

// ClassifySkinType buckets the mean condition score.
func ClassifySkinType(conditions domain.ConditionScores) string {
	if len(conditions) == 0 {
		return SkinTypeNormalDry
	}
	var sum float64
	for _, v := range conditions {
		sum += v
	}
	avg := sum / float64(len(conditions))
	switch {
	case avg > 60:
		return SkinTypeOilySensitive
	case avg > 30:
		return SkinTypeCombination
	default:
		return SkinTypeNormalDry
	}
}

// Severity bands a condition score.
func Severity(v float64) string {
	switch {
	case v < 25:
		return SeverityLow
	case v < 50:
		return SeverityMild
	case v < 75:
		return SeverityModerate
	default:
		return SeverityHigh
	}
}

// Derive builds the insights for an analysed face crop.
func Derive(face image.Image, analysis *domain.Analysis) *domain.Insights {
	tone, ita := ClassifySkinTone(face)

	severity := make(map[domain.Condition]string, len(analysis.Conditions))
	for c, v := range analysis.Conditions {
		severity[c] = Severity(v)
	}

	return &domain.Insights{
		SkinTone:         tone,
		ITA:              ita,
		SkinType:         ClassifySkinType(analysis.Conditions),
		UVAdvice:         UVRecommendation(tone),
		PigmentationRisk: PigmentationRisk(tone),
		Severity:         severity,
	}
}
