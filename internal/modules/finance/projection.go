package finance

import "math"

// Annual growth assumptions for multi-year projections.
const (
	AnnualRentGrowth    = 0.03
	AnnualExpenseGrowth = 0.025
	AnnualAppreciation  = 0.04
)

// YearProjection is one year of a cash-flow projection.
type YearProjection struct {
	Year              int     `json:"year"`
	GrossRent         float64 `json:"gross_rent"`
	EffectiveRent     float64 `json:"effective_rent"`
	OperatingExpenses float64 `json:"operating_expenses"`
	ManagementFee     float64 `json:"management_fee"`
	DebtService       float64 `json:"debt_service"`
	CashFlow          float64 `json:"cash_flow"`
	PropertyValue     float64 `json:"property_value"`
	LoanBalance       float64 `json:"loan_balance"`
	Equity            float64 `json:"equity"`
}

// Projection is a multi-year cash-flow projection. Series is the direct
// input to IRR/NPV: period 0 is the negative cash invested, yearly periods
// are the operating cash flows, and the final period additionally includes
// the net sale proceeds (appreciated value minus remaining loan balance).
type Projection struct {
	Years  []YearProjection `json:"years"`
	Series CashFlowSeries   `json:"series"`
}

// ProjectCashFlows builds a years-long projection: rent grows at the rent
// growth rate, expenses at the expense growth rate, and property value at
// the appreciation rate. Vacancy is taken against gross income and
// management against effective income.
func ProjectCashFlows(in RentalInputs, years int) Projection {
	if years <= 0 {
		years = 1
	}

	terms := in.Terms()
	annualDebtService := terms.Payment() * 12

	series := make(CashFlowSeries, 0, years+1)
	series = append(series, -in.CashInvested())

	projections := make([]YearProjection, 0, years)
	for year := 1; year <= years; year++ {
		rentFactor := math.Pow(1+AnnualRentGrowth, float64(year-1))
		expenseFactor := math.Pow(1+AnnualExpenseGrowth, float64(year-1))

		grossRent := in.MonthlyRent * 12 * rentFactor
		effectiveRent := grossRent * (1 - in.VacancyRate)
		managementFee := effectiveRent * in.ManagementRate

		operatingExpenses := (in.AnnualTax() +
			in.MonthlyInsurance*12 +
			in.AnnualMaintenance() +
			in.MonthlyHOA*12 +
			in.MonthlyUtilities*12) * expenseFactor

		cashFlow := effectiveRent - managementFee - operatingExpenses - annualDebtService

		propertyValue := in.PurchasePrice * math.Pow(1+AnnualAppreciation, float64(year))
		loanBalance := RemainingBalance(terms, year*12)

		projections = append(projections, YearProjection{
			Year:              year,
			GrossRent:         grossRent,
			EffectiveRent:     effectiveRent,
			OperatingExpenses: operatingExpenses,
			ManagementFee:     managementFee,
			DebtService:       annualDebtService,
			CashFlow:          cashFlow,
			PropertyValue:     propertyValue,
			LoanBalance:       loanBalance,
			Equity:            propertyValue - loanBalance,
		})

		series = append(series, cashFlow)
	}

	// Terminal value: sell at the end of the horizon
	last := projections[len(projections)-1]
	series[len(series)-1] += last.PropertyValue - last.LoanBalance

	return Projection{Years: projections, Series: series}
}
