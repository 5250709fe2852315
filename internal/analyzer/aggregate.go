package analyzer

import (
	"fmt"

	"github.com/saturnino-fabrica-de-software/skinscan/internal/domain"
)

// weights is the contribution of each condition to the overall score. The
// values sum to 1.
var weights = map[domain.Condition]float64{
	domain.ConditionPores:        0.15,
	domain.ConditionWrinkles:     0.15,
	domain.ConditionPigmentation: 0.15,
	domain.ConditionAcne:         0.15,
	domain.ConditionTexture:      0.10,
	domain.ConditionRedness:      0.10,
	domain.ConditionBlackheads:   0.10,
	domain.ConditionTone:         0.10,
}

// Weights returns a copy of the per-condition weights of the overall score.
func Weights() map[domain.Condition]float64 {
	out := make(map[domain.Condition]float64, len(weights))
	for c, w := range weights {
		out[c] = w
	}
	return out
}

// Aggregate averages every condition over the five regions and derives the
// overall score.
func Aggregate(regions map[domain.Region]domain.ConditionScores) (domain.ConditionScores, float64, error) {
	conditions := make(domain.ConditionScores, len(domain.Conditions))
	for _, c := range domain.Conditions {
		var sum float64
		for _, r := range domain.Regions {
			scores, ok := regions[r]
			if !ok {
				return nil, 0, domain.ErrDegenerateFace.WithError(fmt.Errorf("region %s missing", r))
			}
			v, ok := scores[c]
			if !ok {
				return nil, 0, domain.ErrInternal.WithError(fmt.Errorf("region %s has no %s score", r, c))
			}
			sum += v
		}
		conditions[c] = sum / float64(len(domain.Regions))
	}
	return conditions, OverallScore(conditions), nil
}

// OverallScore is 100 minus the weighted condition sum, kept inside [0,100].
func OverallScore(conditions domain.ConditionScores) float64 {
	var penalty float64
	for _, c := range domain.Conditions {
		penalty += weights[c] * conditions[c]
	}
	return clampScore(100 - penalty)
}
