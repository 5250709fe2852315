package insight

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/saturnino-fabrica-de-software/skinscan/internal/domain"
)

func uniform(c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestToneForITA(t *testing.T) {
	tests := []struct {
		ita  float64
		want domain.SkinTone
	}{
		{80, domain.SkinToneVeryLight},
		{55.1, domain.SkinToneVeryLight},
		{55, domain.SkinToneLight},
		{41.5, domain.SkinToneLight},
		{41, domain.SkinToneIntermediate},
		{30, domain.SkinToneIntermediate},
		{28, domain.SkinToneTan},
		{10.01, domain.SkinToneTan},
		{10, domain.SkinToneBrown},
		{-29, domain.SkinToneBrown},
		{-30, domain.SkinToneDark},
		{-90, domain.SkinToneDark},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ToneForITA(tt.ita), "ita=%v", tt.ita)
	}
}

func TestITAAngle(t *testing.T) {
	assert.InDelta(t, 45.0, itaAngle(60, 10), 1e-9)
	assert.InDelta(t, -45.0, itaAngle(40, 10), 1e-9)
	assert.Equal(t, 90.0, itaAngle(70, 0))
	assert.Equal(t, -90.0, itaAngle(30, 0))
	assert.Equal(t, 0.0, itaAngle(50, 0))
}

func TestClassifySkinTone(t *testing.T) {
	// Pale beige: L* ~ 91, b* ~ 12 -> ITA ~ 73.
	tone, ita := ClassifySkinTone(uniform(color.RGBA{245, 228, 210, 255}))
	assert.Equal(t, domain.SkinToneVeryLight, tone)
	assert.Greater(t, ita, 55.0)

	// Deep brown: L* ~ 25, b* ~ 20 -> ITA ~ -51.
	tone, ita = ClassifySkinTone(uniform(color.RGBA{80, 50, 30, 255}))
	assert.Equal(t, domain.SkinToneDark, tone)
	assert.Less(t, ita, -30.0)
}

func TestUVRecommendation(t *testing.T) {
	assert.Equal(t, "Very High UV sensitivity - Use SPF 50+ daily", UVRecommendation(domain.SkinToneVeryLight))
	assert.Equal(t, "Lower UV sensitivity - Still need SPF 30", UVRecommendation(domain.SkinToneBrown))
	assert.Equal(t, "Unknown risk - default to SPF 30", UVRecommendation("Teal"))

	for _, band := range itaBands {
		assert.NotEqual(t, defaultUVAdvice, UVRecommendation(band.tone))
	}
	assert.NotEqual(t, defaultUVAdvice, UVRecommendation(domain.SkinToneDark))
}

func TestPigmentationRisk(t *testing.T) {
	for _, tone := range []domain.SkinTone{domain.SkinToneTan, domain.SkinToneBrown, domain.SkinToneDark} {
		assert.Equal(t, higherPigmentationRisk, PigmentationRisk(tone), tone)
	}
	for _, tone := range []domain.SkinTone{domain.SkinToneVeryLight, domain.SkinToneLight, domain.SkinToneIntermediate} {
		assert.Equal(t, lowerPigmentationRisk, PigmentationRisk(tone), tone)
	}
}

func TestClassifySkinType(t *testing.T) {
	tests := []struct {
		name       string
		conditions domain.ConditionScores
		want       string
	}{
		{"empty", nil, SkinTypeNormalDry},
		{"clear", domain.ConditionScores{domain.ConditionPores: 10, domain.ConditionAcne: 20}, SkinTypeNormalDry},
		{"boundary 30 is normal", domain.ConditionScores{domain.ConditionPores: 30}, SkinTypeNormalDry},
		{"combination", domain.ConditionScores{domain.ConditionPores: 40, domain.ConditionAcne: 50}, SkinTypeCombination},
		{"boundary 60 is combination", domain.ConditionScores{domain.ConditionPores: 60}, SkinTypeCombination},
		{"oily", domain.ConditionScores{domain.ConditionPores: 90, domain.ConditionAcne: 70}, SkinTypeOilySensitive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifySkinType(tt.conditions))
		})
	}
}

func TestSeverity(t *testing.T) {
	assert.Equal(t, SeverityLow, Severity(0))
	assert.Equal(t, SeverityLow, Severity(24.9))
	assert.Equal(t, SeverityMild, Severity(25))
	assert.Equal(t, SeverityModerate, Severity(50))
	assert.Equal(t, SeverityModerate, Severity(74.99))
	assert.Equal(t, SeverityHigh, Severity(75))
	assert.Equal(t, SeverityHigh, Severity(100))
}

func TestDerive(t *testing.T) {
	analysis := &domain.Analysis{
		Conditions: domain.ConditionScores{
			domain.ConditionPores:   10,
			domain.ConditionRedness: 80,
		},
	}

	got := Derive(uniform(color.RGBA{245, 228, 210, 255}), analysis)

	assert.Equal(t, domain.SkinToneVeryLight, got.SkinTone)
	assert.Equal(t, UVRecommendation(domain.SkinToneVeryLight), got.UVAdvice)
	assert.Equal(t, lowerPigmentationRisk, got.PigmentationRisk)
	assert.Equal(t, SkinTypeCombination, got.SkinType)
	assert.Equal(t, map[domain.Condition]string{
		domain.ConditionPores:   SeverityLow,
		domain.ConditionRedness: SeverityHigh,
	}, got.Severity)
}
