package scoring

import "github.com/akladas/propscope/internal/modules/finance"

// Rental composite weights.
const (
	rentalWeightCashFlow = 0.25
	rentalWeightROI      = 0.25
	rentalWeightCapRate  = 0.20
	rentalWeightDSCR     = 0.15
	rentalWeightMarket   = 0.15
)

// Rental sub-score thresholds. Cash flow is monthly dollars, the rest are
// fractions (0.08 = 8%).
var (
	rentalCashFlowThresholds = Thresholds{Excellent: 500, Good: 300, Fair: 150, Poor: 50}
	rentalROIThresholds      = Thresholds{Excellent: 0.12, Good: 0.08, Fair: 0.05, Poor: 0.02}
	rentalCapRateThresholds  = Thresholds{Excellent: 0.08, Good: 0.06, Fair: 0.045, Poor: 0.03}
	rentalDSCRThresholds     = Thresholds{Excellent: 1.5, Good: 1.25, Fair: 1.1, Poor: 1.0}
)

// neutralMarketScore is used when no comp-derived market data is available.
const neutralMarketScore = 50

// MarketData is the comp-derived context for the market sub-score: how the
// purchase price sits against the average of comparable sales.
type MarketData struct {
	AveragePrice  float64 `json:"average_price"`
	PurchasePrice float64 `json:"purchase_price"`
}

// ScoreRental scores a buy-and-hold deal from its computed metrics. A nil
// or empty market context leaves the market sub-score neutral.
func ScoreRental(m finance.PropertyMetrics, market *MarketData) Breakdown {
	weights := map[string]float64{
		"cash_flow": rentalWeightCashFlow,
		"roi":       rentalWeightROI,
		"cap_rate":  rentalWeightCapRate,
		"dscr":      rentalWeightDSCR,
		"market":    rentalWeightMarket,
	}

	scores := map[string]float64{
		"cash_flow": scoreMetric(m.MonthlyCashFlow, rentalCashFlowThresholds, true),
		"roi":       scoreMetric(m.CashOnCash, rentalROIThresholds, true),
		"cap_rate":  scoreMetric(m.CapRate, rentalCapRateThresholds, true),
		"dscr":      scoreMetric(m.DSCR, rentalDSCRThresholds, true),
		"market":    marketScore(market),
	}

	total := weightedTotal(scores, weights)

	return Breakdown{
		Scores:         scores,
		Weights:        weights,
		Total:          total,
		Recommendation: recommend(total),
	}
}

// marketScore rates the purchase price against the comp average: 50 is
// at-market, every 1% of discount adds 2.5 points, every 1% of premium
// removes 2.5, clamped to [0, 100].
func marketScore(market *MarketData) float64 {
	if market == nil || market.AveragePrice <= 0 || market.PurchasePrice <= 0 {
		return neutralMarketScore
	}

	discount := (market.AveragePrice - market.PurchasePrice) / market.AveragePrice
	return clampScore(neutralMarketScore + discount*250)
}
