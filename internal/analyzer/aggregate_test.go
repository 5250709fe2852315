package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/skinscan/internal/domain"
)

func constantScores(v float64) domain.ConditionScores {
	scores := make(domain.ConditionScores, len(domain.Conditions))
	for _, c := range domain.Conditions {
		scores[c] = v
	}
	return scores
}

func allRegions(v float64) map[domain.Region]domain.ConditionScores {
	out := make(map[domain.Region]domain.ConditionScores, len(domain.Regions))
	for _, r := range domain.Regions {
		out[r] = constantScores(v)
	}
	return out
}

func TestWeights(t *testing.T) {
	w := Weights()
	require.Len(t, w, len(domain.Conditions))

	var sum float64
	for _, c := range domain.Conditions {
		sum += w[c]
	}
	assert.InDelta(t, 1.0, sum, 1e-12)
}

func TestWeights_ReturnsCopy(t *testing.T) {
	w := Weights()
	w[domain.ConditionPores] = 10

	assert.Equal(t, 0.15, Weights()[domain.ConditionPores])
	assert.Equal(t, 100.0, OverallScore(constantScores(0)))
	assert.InDelta(t, 90.0, OverallScore(constantScores(10)), 1e-9)
}

func TestAggregate(t *testing.T) {
	regions := allRegions(0)
	for i, r := range domain.Regions {
		regions[r][domain.ConditionPores] = float64(10 * (i + 1))
		regions[r][domain.ConditionRedness] = 50
	}

	conditions, overall, err := Aggregate(regions)
	require.NoError(t, err)

	require.Len(t, conditions, 8)
	assert.InDelta(t, 30.0, conditions[domain.ConditionPores], 1e-9)
	assert.InDelta(t, 50.0, conditions[domain.ConditionRedness], 1e-9)
	assert.Equal(t, 0.0, conditions[domain.ConditionTone])

	// 100 - (.15*30 + .10*50)
	assert.InDelta(t, 90.5, overall, 1e-9)
}

func TestAggregate_Bounds(t *testing.T) {
	_, overall, err := Aggregate(allRegions(0))
	require.NoError(t, err)
	assert.Equal(t, 100.0, overall)

	_, overall, err = Aggregate(allRegions(100))
	require.NoError(t, err)
	assert.InDelta(t, 0.0, overall, 1e-9)
}

func TestAggregate_MissingRegion(t *testing.T) {
	regions := allRegions(10)
	delete(regions, domain.RegionChin)

	_, _, err := Aggregate(regions)
	assert.ErrorIs(t, err, domain.ErrDegenerateFace)
}

func TestAggregate_MissingCondition(t *testing.T) {
	regions := allRegions(10)
	delete(regions[domain.RegionNose], domain.ConditionTone)

	_, _, err := Aggregate(regions)
	assert.ErrorIs(t, err, domain.ErrInternal)
}

func TestOverallScore_Clamped(t *testing.T) {
	assert.Equal(t, 0.0, OverallScore(constantScores(250)))
	assert.Equal(t, 100.0, OverallScore(constantScores(-10)))
}
