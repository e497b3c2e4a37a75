package scoring

import "github.com/akladas/propscope/internal/modules/finance"

// Flip composite weights.
const (
	flipWeightROI      = 0.40
	flipWeightProfit   = 0.30
	flipWeightTimeline = 0.15
	flipWeightRisk     = 0.15
)

// Flip sub-score thresholds. ROI is annualized-agnostic (per-deal), profit
// is net dollars, timeline is months and lower is better.
var (
	flipROIThresholds      = Thresholds{Excellent: 0.25, Good: 0.15, Fair: 0.10, Poor: 0.05}
	flipProfitThresholds   = Thresholds{Excellent: 50000, Good: 30000, Fair: 15000, Poor: 5000}
	flipTimelineThresholds = Thresholds{Excellent: 4, Good: 6, Fair: 9, Poor: 12}
)

// ScoreFlip scores a fix-and-flip deal from its computed metrics.
// Risk is a deliberate step function on the rehab/price ratio rather than
// the interpolation used elsewhere: heavy rehabs carry execution risk that
// does not shade linearly.
func ScoreFlip(m finance.FlipMetrics) Breakdown {
	weights := map[string]float64{
		"roi":      flipWeightROI,
		"profit":   flipWeightProfit,
		"timeline": flipWeightTimeline,
		"risk":     flipWeightRisk,
	}

	scores := map[string]float64{
		"roi":      scoreMetric(m.ROI, flipROIThresholds, true),
		"profit":   scoreMetric(m.NetProfit, flipProfitThresholds, true),
		"timeline": scoreMetric(float64(m.TimelineMonths), flipTimelineThresholds, false),
		"risk":     rehabRiskScore(m.RehabRatio),
	}

	total := weightedTotal(scores, weights)

	return Breakdown{
		Scores:         scores,
		Weights:        weights,
		Total:          total,
		Recommendation: recommend(total),
	}
}

// rehabRiskScore steps the rehab/purchase-price ratio into a risk sub-score.
func rehabRiskScore(rehabRatio float64) float64 {
	switch {
	case rehabRatio > 0.50:
		return 25
	case rehabRatio > 0.30:
		return 50
	case rehabRatio > 0.15:
		return 75
	default:
		return 100
	}
}
