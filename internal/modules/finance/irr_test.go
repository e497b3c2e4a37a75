package finance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNPVZeroRateIsSum(t *testing.T) {
	flows := CashFlowSeries{-1000, 300, 400, 500}
	assert.InDelta(t, 200, NPV(flows, 0), 1e-9)
}

func TestNPVDiscounting(t *testing.T) {
	flows := CashFlowSeries{-1000, 1100}
	assert.InDelta(t, 0, NPV(flows, 0.10), 1e-9)
	assert.Less(t, NPV(flows, 0.20), 0.0)
	assert.Greater(t, NPV(flows, 0.05), 0.0)
}

func TestIRRSimpleReturn(t *testing.T) {
	// -1000 then 1100 a period later is exactly 10%
	rate, ok := IRR(CashFlowSeries{-1000, 1100}, DefaultIRRGuess)
	require.True(t, ok)
	assert.InDelta(t, 0.10, rate, 1e-4)
}

func TestIRRNPVConsistency(t *testing.T) {
	series := []CashFlowSeries{
		{-1000, 500, 500, 500},
		{-50000, 4000, 4200, 4400, 4600, 60000},
		{-2500, 0, 0, 5000},
	}
	for _, flows := range series {
		rate, ok := IRR(flows, DefaultIRRGuess)
		require.True(t, ok)
		assert.Less(t, math.Abs(NPV(flows, rate)), 1e-3)
	}
}

func TestIRRRequiresSignChange(t *testing.T) {
	_, ok := IRR(CashFlowSeries{100, 200, 300}, DefaultIRRGuess)
	assert.False(t, ok)

	_, ok = IRR(CashFlowSeries{-100, -200, -300}, DefaultIRRGuess)
	assert.False(t, ok)
}

func TestIRRTooFewFlows(t *testing.T) {
	_, ok := IRR(CashFlowSeries{-100}, DefaultIRRGuess)
	assert.False(t, ok)

	_, ok = IRR(nil, DefaultIRRGuess)
	assert.False(t, ok)
}

func TestIRRTotalLossSeries(t *testing.T) {
	// Recoveries far below the outlay push the rate toward -100%; the
	// solver either resolves it near the lower bound or reports failure,
	// never a bogus positive rate
	rate, ok := IRR(CashFlowSeries{-1000, 1}, DefaultIRRGuess)
	if ok {
		assert.Less(t, rate, -0.9)
	}
}

func TestIRRNegativeRate(t *testing.T) {
	rate, ok := IRR(CashFlowSeries{-1000, 950}, DefaultIRRGuess)
	require.True(t, ok)
	assert.InDelta(t, -0.05, rate, 1e-4)
}
