package finance

import "fmt"

// Loan scenario construction parameters.
const (
	// ShortTermYears is the term of the shorter-term comparison scenario.
	ShortTermYears = 15
	// ShortTermRateDiscount is subtracted from the quoted rate for the
	// shorter-term scenario (15-year money prices below 30-year money).
	ShortTermRateDiscount = 0.005
	// InterestOnlyYears is the IO period of the interest-only scenario.
	InterestOnlyYears = 5
)

// LoanScenario is a named financing variant with its derived totals.
type LoanScenario struct {
	Name               string  `json:"name"`
	AnnualRate         float64 `json:"annual_rate"`
	TermYears          int     `json:"term_years"`
	InterestOnlyYears  int     `json:"interest_only_years,omitempty"`
	MonthlyPayment     float64 `json:"monthly_payment"`
	TotalInterest      float64 `json:"total_interest"`
	FirstYearInterest  float64 `json:"first_year_interest"`
	FirstYearPrincipal float64 `json:"first_year_principal"`
	BalanceAfterYear1  float64 `json:"balance_after_year_1"`
}

// CompareScenarios builds the standard amortizing scenario at the quoted
// rate/term, a shorter-term variant at a reduced rate, and an
// interest-only-then-amortizing variant.
func CompareScenarios(principal, annualRate float64, termYears int) []LoanScenario {
	scenarios := []LoanScenario{
		amortizingScenario("Standard "+yearsLabel(termYears), LoanTerms{
			Principal:  principal,
			AnnualRate: annualRate,
			TermYears:  termYears,
		}),
	}

	if termYears > ShortTermYears {
		shortRate := annualRate - ShortTermRateDiscount
		if shortRate < 0 {
			shortRate = 0
		}
		scenarios = append(scenarios, amortizingScenario(yearsLabel(ShortTermYears)+" at reduced rate", LoanTerms{
			Principal:  principal,
			AnnualRate: shortRate,
			TermYears:  ShortTermYears,
		}))
	}

	if termYears > InterestOnlyYears {
		scenarios = append(scenarios, interestOnlyScenario(principal, annualRate, termYears, InterestOnlyYears))
	}

	return scenarios
}

// amortizingScenario derives totals for a plain level-payment loan.
// The first-year split comes from one pass of the amortization recurrence.
func amortizingScenario(name string, terms LoanTerms) LoanScenario {
	payment := terms.Payment()
	totalInterest := payment*float64(terms.TotalPeriods()) - terms.Principal

	firstYear := Schedule(terms, 12)
	var fyInterest, fyPrincipal, balance float64
	balance = terms.Principal
	for _, row := range firstYear {
		fyInterest += row.Interest
		fyPrincipal += row.Principal
		balance = row.Balance
	}

	return LoanScenario{
		Name:               name,
		AnnualRate:         terms.AnnualRate,
		TermYears:          terms.TermYears,
		MonthlyPayment:     payment,
		TotalInterest:      totalInterest,
		FirstYearInterest:  fyInterest,
		FirstYearPrincipal: fyPrincipal,
		BalanceAfterYear1:  balance,
	}
}

// interestOnlyScenario models an IO period followed by re-amortization over
// the remaining term. Total interest is the IO-period interest plus the
// interest of the post-IO amortized loan.
func interestOnlyScenario(principal, annualRate float64, termYears, ioYears int) LoanScenario {
	monthlyRate := annualRate / 12
	ioPayment := principal * monthlyRate
	ioMonths := ioYears * 12
	ioInterest := ioPayment * float64(ioMonths)

	// After the IO period the full principal re-amortizes over the rest
	remainder := LoanTerms{
		Principal:  principal,
		AnnualRate: annualRate,
		TermYears:  termYears - ioYears,
	}
	remainderInterest := remainder.Payment()*float64(remainder.TotalPeriods()) - principal

	return LoanScenario{
		Name:               "Interest-only " + yearsLabel(ioYears) + ", then amortizing",
		AnnualRate:         annualRate,
		TermYears:          termYears,
		InterestOnlyYears:  ioYears,
		MonthlyPayment:     ioPayment,
		TotalInterest:      ioInterest + remainderInterest,
		FirstYearInterest:  ioPayment * 12,
		FirstYearPrincipal: 0,
		BalanceAfterYear1:  principal,
	}
}

func yearsLabel(years int) string {
	return fmt.Sprintf("%d-year", years)
}
