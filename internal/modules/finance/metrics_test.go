package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleRental() RentalInputs {
	return RentalInputs{
		PurchasePrice:    300000,
		DownPaymentPct:   0.20,
		AnnualRate:       0.07,
		TermYears:        30,
		RehabCost:        10000,
		MonthlyRent:      2800,
		VacancyRate:      0.05,
		ManagementRate:   0.08,
		MaintenanceRate:  0.01,
		AnnualTaxRate:    0.0125,
		MonthlyInsurance: 100,
		MonthlyHOA:       0,
		MonthlyUtilities: 0,
	}
}

func TestRentalInputDerivations(t *testing.T) {
	in := sampleRental()
	assert.InDelta(t, 240000, in.LoanAmount(), 1e-9)
	assert.InDelta(t, 70000, in.CashInvested(), 1e-9)
	assert.InDelta(t, 3000, in.AnnualMaintenance(), 1e-9)
	assert.InDelta(t, 3750, in.AnnualTax(), 1e-9)
}

func TestComputeRentalMetrics(t *testing.T) {
	in := sampleRental()
	m := ComputeRentalMetrics(in, 0)

	gross := 2800.0 * 12
	effective := gross * 0.95
	noi := effective - effective*0.08 - (3750 + 1200 + 3000)
	assert.InDelta(t, noi, m.NOI, 1e-6)

	assert.InDelta(t, noi/300000, m.CapRate, 1e-9)
	assert.InDelta(t, m.AnnualCashFlow/70000, m.CashOnCash, 1e-9)
	assert.InDelta(t, m.NOI/m.AnnualDebtService, m.DSCR, 1e-9)
	assert.InDelta(t, m.AnnualCashFlow/12, m.MonthlyCashFlow, 1e-9)
	assert.Zero(t, m.MAO)
}

func TestComputeRentalMetricsWithARV(t *testing.T) {
	m := ComputeRentalMetrics(sampleRental(), 350000)
	assert.InDelta(t, 350000*0.70-10000, m.MAO, 1e-9)
}

func TestComputeRentalMetricsDegenerate(t *testing.T) {
	m := ComputeRentalMetrics(RentalInputs{}, 0)
	assert.Zero(t, m.CapRate)
	assert.Zero(t, m.CashOnCash)
	assert.Zero(t, m.DSCR)
	assert.Zero(t, m.MAO)
}

func sampleFlip() FlipInputs {
	return FlipInputs{
		PurchasePrice:    200000,
		DownPaymentPct:   0.20,
		AnnualRate:       0.09,
		TermYears:        30,
		RehabCost:        40000,
		ARV:              310000,
		MonthsToFlip:     6,
		AnnualTaxRate:    0.0125,
		MonthlyInsurance: 120,
		MonthlyUtilities: 150,
	}
}

func TestComputeFlipMetrics(t *testing.T) {
	in := sampleFlip()
	m := ComputeFlipMetrics(in)

	carry := in.Terms().Payment() + 200000*0.0125/12 + 120 + 150
	assert.InDelta(t, carry*6, m.HoldingCosts, 1e-6)
	assert.InDelta(t, 310000*0.06, m.SellingCosts, 1e-6)

	expectedProfit := 310000 - 200000 - 40000 - m.HoldingCosts - m.SellingCosts
	assert.InDelta(t, expectedProfit, m.NetProfit, 1e-6)

	assert.InDelta(t, 80000+m.HoldingCosts, m.TotalInvestment, 1e-6)
	assert.InDelta(t, m.NetProfit/m.TotalInvestment, m.ROI, 1e-9)
	assert.InDelta(t, m.ROI*2, m.AnnualizedROI, 1e-9)
	assert.InDelta(t, 310000*0.70-40000, m.MAO, 1e-9)
	assert.InDelta(t, 0.20, m.RehabRatio, 1e-9)
}

func TestFlipSellingCostOverride(t *testing.T) {
	in := sampleFlip()
	in.SellingCostRate = 0.08
	m := ComputeFlipMetrics(in)
	assert.InDelta(t, 310000*0.08, m.SellingCosts, 1e-6)
}
