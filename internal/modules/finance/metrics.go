package finance

// MAORule is the ARV fraction used for the maximum allowable offer
// (the "70% rule").
const MAORule = 0.70

// PropertyMetrics is the computed bag of rental profitability numbers.
// Pure derived data: recomputed on each analysis run, never persisted.
type PropertyMetrics struct {
	NOI               float64 `json:"noi"`
	CapRate           float64 `json:"cap_rate"`
	CashOnCash        float64 `json:"cash_on_cash"`
	DSCR              float64 `json:"dscr"`
	AnnualDebtService float64 `json:"annual_debt_service"`
	AnnualCashFlow    float64 `json:"annual_cash_flow"`
	MonthlyCashFlow   float64 `json:"monthly_cash_flow"`
	ROI               float64 `json:"roi"`
	MAO               float64 `json:"mao"`
}

// ComputeRentalMetrics derives first-year profitability metrics.
// Degenerate inputs (zero rent, zero cash invested, zero debt service)
// produce zero-valued metrics rather than errors.
func ComputeRentalMetrics(in RentalInputs, arv float64) PropertyMetrics {
	grossIncome := in.MonthlyRent * 12
	vacancyLoss := grossIncome * in.VacancyRate
	effectiveIncome := grossIncome - vacancyLoss
	managementFee := effectiveIncome * in.ManagementRate

	operatingExpenses := in.AnnualTax() +
		in.MonthlyInsurance*12 +
		in.AnnualMaintenance() +
		in.MonthlyHOA*12 +
		in.MonthlyUtilities*12

	noi := effectiveIncome - managementFee - operatingExpenses

	annualDebtService := in.Terms().Payment() * 12
	annualCashFlow := noi - annualDebtService

	m := PropertyMetrics{
		NOI:               noi,
		AnnualDebtService: annualDebtService,
		AnnualCashFlow:    annualCashFlow,
		MonthlyCashFlow:   annualCashFlow / 12,
	}

	if in.PurchasePrice > 0 {
		m.CapRate = noi / in.PurchasePrice
	}
	if cash := in.CashInvested(); cash > 0 {
		m.CashOnCash = annualCashFlow / cash
		m.ROI = annualCashFlow / cash
	}
	if annualDebtService > 0 {
		m.DSCR = noi / annualDebtService
	}
	if arv > 0 {
		m.MAO = arv*MAORule - in.RehabCost
	}

	return m
}

// FlipMetrics is the computed bag of fix-and-flip numbers.
type FlipMetrics struct {
	TotalInvestment float64 `json:"total_investment"`
	HoldingCosts    float64 `json:"holding_costs"`
	SellingCosts    float64 `json:"selling_costs"`
	NetProfit       float64 `json:"net_profit"`
	ROI             float64 `json:"roi"`
	AnnualizedROI   float64 `json:"annualized_roi"`
	TimelineMonths  int     `json:"timeline_months"`
	MAO             float64 `json:"mao"`
	RehabRatio      float64 `json:"rehab_ratio"`
}

// ComputeFlipMetrics derives flip profitability from purchase, rehab, ARV
// and the expected timeline. Holding costs accrue the monthly carry (debt
// service, tax, insurance, utilities) over the flip window.
func ComputeFlipMetrics(in FlipInputs) FlipMetrics {
	monthlyCarry := in.Terms().Payment() +
		in.PurchasePrice*in.AnnualTaxRate/12 +
		in.MonthlyInsurance +
		in.MonthlyUtilities

	holdingCosts := monthlyCarry * float64(in.MonthsToFlip)
	sellingCosts := in.ARV * in.sellingCostRate()

	// Profit is sale proceeds minus everything put in: price, rehab,
	// carry, and disposal costs.
	netProfit := in.ARV - in.PurchasePrice - in.RehabCost - holdingCosts - sellingCosts

	m := FlipMetrics{
		TotalInvestment: in.CashInvested() + holdingCosts,
		HoldingCosts:    holdingCosts,
		SellingCosts:    sellingCosts,
		NetProfit:       netProfit,
		TimelineMonths:  in.MonthsToFlip,
		MAO:             in.ARV*MAORule - in.RehabCost,
	}

	if m.TotalInvestment > 0 {
		m.ROI = netProfit / m.TotalInvestment
		if in.MonthsToFlip > 0 {
			m.AnnualizedROI = m.ROI * 12 / float64(in.MonthsToFlip)
		}
	}
	if in.PurchasePrice > 0 {
		m.RehabRatio = in.RehabCost / in.PurchasePrice
	}

	return m
}
