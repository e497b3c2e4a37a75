package comps

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeMarketStats(t *testing.T) {
	records := []Record{
		{Price: 300000, Sqft: 1500},
		{Price: 320000, Sqft: 1600},
		{Price: 280000}, // No sqft: excluded from $/sqft only
	}

	stats := ComputeMarketStats(records)
	assert.Equal(t, 3, stats.Count)
	assert.InDelta(t, 300000, stats.AveragePrice, 1e-6)
	assert.InDelta(t, 300000, stats.MedianPrice, 1e-6)
	assert.Greater(t, stats.PriceStdDev, 0.0)
	assert.InDelta(t, (300000.0/1500+320000.0/1600)/2, stats.AvgPricePerSqft, 1e-6)
}

func TestComputeMarketStatsEmpty(t *testing.T) {
	stats := ComputeMarketStats(nil)
	assert.Equal(t, 0, stats.Count)
	assert.Zero(t, stats.AveragePrice)
}

func TestEstimateARV(t *testing.T) {
	records := []Record{{Price: 300000}, {Price: 320000}}
	assert.InDelta(t, 310000, EstimateARV(records, 250000), 1e-6)

	// Empty comp set falls back to the caller's purchase-price-based estimate
	assert.InDelta(t, 250000, EstimateARV(nil, 250000), 1e-6)
}
