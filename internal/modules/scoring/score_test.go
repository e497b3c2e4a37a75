package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akladas/propscope/internal/modules/finance"
)

var testThresholds = Thresholds{Excellent: 0.12, Good: 0.08, Fair: 0.05, Poor: 0.02}

func TestScoreMetricBandEdges(t *testing.T) {
	assert.InDelta(t, 100, scoreMetric(0.12, testThresholds, true), 1e-9)
	assert.InDelta(t, 100, scoreMetric(0.20, testThresholds, true), 1e-9)
	assert.InDelta(t, 75, scoreMetric(0.08, testThresholds, true), 1e-9)
	assert.InDelta(t, 50, scoreMetric(0.05, testThresholds, true), 1e-9)
	assert.InDelta(t, 25, scoreMetric(0.02, testThresholds, true), 1e-9)
	assert.InDelta(t, 12.5, scoreMetric(0.01, testThresholds, true), 1e-9)
	assert.Zero(t, scoreMetric(0, testThresholds, true))
	assert.Zero(t, scoreMetric(-0.05, testThresholds, true))
}

func TestScoreMetricInterpolation(t *testing.T) {
	// Midpoint of the good..excellent band lands at 87.5
	assert.InDelta(t, 87.5, scoreMetric(0.10, testThresholds, true), 1e-9)
	// Midpoint of fair..good at 62.5
	assert.InDelta(t, 62.5, scoreMetric(0.065, testThresholds, true), 1e-9)
}

func TestScoreMetricMonotonic(t *testing.T) {
	prev := -1.0
	for v := -0.02; v <= 0.20; v += 0.001 {
		s := scoreMetric(v, testThresholds, true)
		assert.GreaterOrEqual(t, s, prev, "value %v", v)
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, 100.0)
		prev = s
	}
}

func TestScoreMetricLowerIsBetter(t *testing.T) {
	months := Thresholds{Excellent: 4, Good: 6, Fair: 9, Poor: 12}

	assert.InDelta(t, 100, scoreMetric(3, months, false), 1e-9)
	assert.InDelta(t, 100, scoreMetric(4, months, false), 1e-9)
	assert.InDelta(t, 75, scoreMetric(6, months, false), 1e-9)
	assert.InDelta(t, 50, scoreMetric(9, months, false), 1e-9)
	assert.InDelta(t, 25, scoreMetric(12, months, false), 1e-9)
	assert.InDelta(t, 12.5, scoreMetric(24, months, false), 1e-9)

	// Mirror monotonicity: more months never scores higher
	prev := 101.0
	for v := 1.0; v <= 36; v += 0.5 {
		s := scoreMetric(v, months, false)
		assert.LessOrEqual(t, s, prev, "value %v", v)
		prev = s
	}
}

func TestScoreMetricDegenerateThresholds(t *testing.T) {
	// Collapsed bands must not divide by zero
	flat := Thresholds{Excellent: 1, Good: 1, Fair: 1, Poor: 1}
	s := scoreMetric(1, flat, true)
	assert.GreaterOrEqual(t, s, 0.0)
	assert.LessOrEqual(t, s, 100.0)
}

func TestRecommendationBands(t *testing.T) {
	assert.Equal(t, RecommendationExcellent, recommend(80))
	assert.Equal(t, RecommendationExcellent, recommend(95))
	assert.Equal(t, RecommendationGood, recommend(60))
	assert.Equal(t, RecommendationCaution, recommend(40))
	assert.Equal(t, RecommendationHighRisk, recommend(20))
	assert.Equal(t, RecommendationNotRecommended, recommend(19.9))
}

func TestScoreFlipWeightsSumToOne(t *testing.T) {
	b := ScoreFlip(finance.FlipMetrics{})
	sum := 0.0
	for _, w := range b.Weights {
		sum += w
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
	require.Len(t, b.Scores, 4)
}

func TestScoreFlipStrongDeal(t *testing.T) {
	b := ScoreFlip(finance.FlipMetrics{
		ROI:            0.30,
		NetProfit:      60000,
		TimelineMonths: 4,
		RehabRatio:     0.10,
	})
	assert.InDelta(t, 100, b.Total, 1e-9)
	assert.Equal(t, RecommendationExcellent, b.Recommendation)
}

func TestScoreFlipRiskStep(t *testing.T) {
	cases := []struct {
		ratio float64
		want  float64
	}{
		{0.60, 25},
		{0.51, 25},
		{0.50, 50},
		{0.35, 50},
		{0.30, 75},
		{0.20, 75},
		{0.15, 100},
		{0.05, 100},
	}
	for _, tc := range cases {
		b := ScoreFlip(finance.FlipMetrics{RehabRatio: tc.ratio})
		assert.InDelta(t, tc.want, b.Scores["risk"], 1e-9, "ratio %v", tc.ratio)
	}
}

func TestScoreRentalWeightsSumToOne(t *testing.T) {
	b := ScoreRental(finance.PropertyMetrics{}, nil)
	sum := 0.0
	for _, w := range b.Weights {
		sum += w
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
	require.Len(t, b.Scores, 5)
}

func TestScoreRentalNeutralMarket(t *testing.T) {
	b := ScoreRental(finance.PropertyMetrics{}, nil)
	assert.InDelta(t, 50, b.Scores["market"], 1e-9)

	b = ScoreRental(finance.PropertyMetrics{}, &MarketData{})
	assert.InDelta(t, 50, b.Scores["market"], 1e-9)
}

func TestScoreRentalMarketDiscount(t *testing.T) {
	below := ScoreRental(finance.PropertyMetrics{}, &MarketData{AveragePrice: 300000, PurchasePrice: 270000})
	at := ScoreRental(finance.PropertyMetrics{}, &MarketData{AveragePrice: 300000, PurchasePrice: 300000})
	above := ScoreRental(finance.PropertyMetrics{}, &MarketData{AveragePrice: 300000, PurchasePrice: 330000})

	assert.InDelta(t, 50, at.Scores["market"], 1e-9)
	assert.Greater(t, below.Scores["market"], at.Scores["market"])
	assert.Less(t, above.Scores["market"], at.Scores["market"])
}

func TestScoreRentalStrongDeal(t *testing.T) {
	b := ScoreRental(finance.PropertyMetrics{
		MonthlyCashFlow: 600,
		CashOnCash:      0.14,
		CapRate:         0.09,
		DSCR:            1.6,
	}, &MarketData{AveragePrice: 320000, PurchasePrice: 260000})

	for name, score := range b.Scores {
		assert.GreaterOrEqual(t, score, 0.0, name)
		assert.LessOrEqual(t, score, 100.0, name)
	}
	assert.Greater(t, b.Total, 80.0)
	assert.Equal(t, RecommendationExcellent, b.Recommendation)
}

func TestScoreRentalWeakDeal(t *testing.T) {
	b := ScoreRental(finance.PropertyMetrics{
		MonthlyCashFlow: -200,
		CashOnCash:      -0.02,
		CapRate:         0.01,
		DSCR:            0.7,
	}, nil)

	assert.Less(t, b.Total, 40.0)
}
