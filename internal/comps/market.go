package comps

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// MarketStats summarizes a comp set for ARV derivation and market-relative
// comparisons.
type MarketStats struct {
	Count           int     `json:"count"`
	AveragePrice    float64 `json:"average_price"`
	MedianPrice     float64 `json:"median_price"`
	PriceStdDev     float64 `json:"price_std_dev"`
	AvgPricePerSqft float64 `json:"avg_price_per_sqft"`
}

// ComputeMarketStats computes price statistics over a comp set.
// Records without sqft are excluded from the $/sqft average only.
func ComputeMarketStats(records []Record) MarketStats {
	if len(records) == 0 {
		return MarketStats{}
	}

	prices := make([]float64, 0, len(records))
	perSqft := make([]float64, 0, len(records))
	for _, rec := range records {
		prices = append(prices, rec.Price)
		if rec.Sqft > 0 {
			perSqft = append(perSqft, rec.Price/rec.Sqft)
		}
	}

	sort.Float64s(prices)

	stats := MarketStats{
		Count:        len(prices),
		AveragePrice: stat.Mean(prices, nil),
		MedianPrice:  stat.Quantile(0.5, stat.Empirical, prices, nil),
	}
	if len(prices) > 1 {
		stats.PriceStdDev = stat.StdDev(prices, nil)
	}
	if len(perSqft) > 0 {
		stats.AvgPricePerSqft = stat.Mean(perSqft, nil)
	}

	return stats
}

// EstimateARV derives an after-repair value from a comp set: the average
// comp price. With no comps the fallback (a purchase-price-based estimate
// supplied by the caller) is used instead - an empty comp set is a valid
// degraded state, not an error.
func EstimateARV(records []Record, fallback float64) float64 {
	if len(records) == 0 {
		return fallback
	}
	return ComputeMarketStats(records).AveragePrice
}
