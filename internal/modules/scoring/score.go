// Package scoring maps raw deal metrics to 0-100 composite scores.
package scoring

// Thresholds are the band edges for a piecewise-linear sub-score.
// For higher-is-better metrics they descend (Excellent > Good > Fair > Poor);
// for lower-is-better metrics they ascend.
type Thresholds struct {
	Excellent float64
	Good      float64
	Fair      float64
	Poor      float64
}

// Breakdown is a composite score with its per-metric sub-scores and the
// weights that produced the total. Weights always sum to 1.0.
type Breakdown struct {
	Scores         map[string]float64 `json:"scores"`
	Weights        map[string]float64 `json:"weights"`
	Total          float64            `json:"total"`
	Recommendation string             `json:"recommendation"`
}

// Recommendation labels, keyed off the composite total.
const (
	RecommendationExcellent      = "excellent"
	RecommendationGood           = "good"
	RecommendationCaution        = "caution"
	RecommendationHighRisk       = "high-risk"
	RecommendationNotRecommended = "not-recommended"
)

// recommend buckets a composite total into a qualitative label.
func recommend(total float64) string {
	switch {
	case total >= 80:
		return RecommendationExcellent
	case total >= 60:
		return RecommendationGood
	case total >= 40:
		return RecommendationCaution
	case total >= 20:
		return RecommendationHighRisk
	default:
		return RecommendationNotRecommended
	}
}

// scoreMetric interpolates a raw metric value into a 0-100 sub-score.
// Bands: at or past excellent 100, good..excellent 75-100, fair..good 50-75,
// poor..fair 25-50, past poor a 0-25 tail proportional to the value's
// distance from the poor edge. Mirrored when lower is better.
func scoreMetric(value float64, t Thresholds, higherIsBetter bool) float64 {
	if higherIsBetter {
		switch {
		case value >= t.Excellent:
			return 100
		case value >= t.Good:
			return 75 + 25*ratio(value-t.Good, t.Excellent-t.Good)
		case value >= t.Fair:
			return 50 + 25*ratio(value-t.Fair, t.Good-t.Fair)
		case value >= t.Poor:
			return 25 + 25*ratio(value-t.Poor, t.Fair-t.Poor)
		default:
			if t.Poor <= 0 || value <= 0 {
				return 0
			}
			return clampScore(25 * value / t.Poor)
		}
	}

	switch {
	case value <= t.Excellent:
		return 100
	case value <= t.Good:
		return 75 + 25*ratio(t.Good-value, t.Good-t.Excellent)
	case value <= t.Fair:
		return 50 + 25*ratio(t.Fair-value, t.Fair-t.Good)
	case value <= t.Poor:
		return 25 + 25*ratio(t.Poor-value, t.Poor-t.Fair)
	default:
		if value <= 0 {
			return 0
		}
		return clampScore(25 * t.Poor / value)
	}
}

// ratio is a division-safe interpolation fraction clamped to [0, 1].
func ratio(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	f := part / whole
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

// weightedTotal folds sub-scores with their weights into the composite.
func weightedTotal(scores, weights map[string]float64) float64 {
	total := 0.0
	for name, score := range scores {
		total += score * weights[name]
	}
	return total
}
