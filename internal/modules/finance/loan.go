// Package finance provides the pure calculation core: loan amortization,
// IRR/NPV, multi-year cash-flow projection, break-even analysis, and
// property profitability metrics. Functions here never error on degenerate
// inputs; they degrade to zero values or sentinel results.
package finance

import (
	"math"
)

// LoanTerms describes a level-payment loan. Derived values are computed on
// demand; a LoanTerms value is immutable once built for a scenario.
type LoanTerms struct {
	Principal  float64 `json:"principal"`
	AnnualRate float64 `json:"annual_rate"` // 0.07 = 7%
	TermYears  int     `json:"term_years"`
}

// MonthlyRate returns the periodic rate.
func (t LoanTerms) MonthlyRate() float64 {
	return t.AnnualRate / 12
}

// TotalPeriods returns the number of monthly payments over the full term.
func (t LoanTerms) TotalPeriods() int {
	return t.TermYears * 12
}

// Payment returns the level monthly payment from the closed-form annuity
// formula. A zero rate degenerates the formula to 0/0, so it is
// special-cased to straight principal division.
func (t LoanTerms) Payment() float64 {
	n := float64(t.TotalPeriods())
	if n <= 0 || t.Principal <= 0 {
		return 0
	}
	r := t.MonthlyRate()
	if r == 0 {
		return t.Principal / n
	}
	return t.Principal * r / (1 - math.Pow(1+r, -n))
}

// AmortizationRow is one period of an amortization schedule.
// Rows are generated in sequence and never mutated after creation.
type AmortizationRow struct {
	Period             int     `json:"period"`
	Payment            float64 `json:"payment"`
	Principal          float64 `json:"principal"`
	Interest           float64 `json:"interest"`
	Balance            float64 `json:"balance"`
	CumulativeInterest float64 `json:"cumulative_interest"`
}

// Schedule generates the amortization schedule for the first `months`
// periods. Length is min(months, full term); months <= 0 means the full
// term. The running balance is floored at zero to absorb rounding in the
// final period.
func Schedule(terms LoanTerms, months int) []AmortizationRow {
	total := terms.TotalPeriods()
	if total <= 0 {
		return nil
	}
	if months <= 0 || months > total {
		months = total
	}

	payment := terms.Payment()
	r := terms.MonthlyRate()
	balance := terms.Principal
	cumulativeInterest := 0.0

	rows := make([]AmortizationRow, 0, months)
	for period := 1; period <= months; period++ {
		interest := balance * r
		principal := payment - interest
		balance -= principal
		if balance < 0 {
			balance = 0
		}
		cumulativeInterest += interest

		rows = append(rows, AmortizationRow{
			Period:             period,
			Payment:            payment,
			Principal:          principal,
			Interest:           interest,
			Balance:            balance,
			CumulativeInterest: cumulativeInterest,
		})
	}

	return rows
}

// RemainingBalance returns the loan balance after the given number of
// payments, via the amortization recurrence.
func RemainingBalance(terms LoanTerms, months int) float64 {
	rows := Schedule(terms, months)
	if len(rows) == 0 {
		return terms.Principal
	}
	return rows[len(rows)-1].Balance
}
