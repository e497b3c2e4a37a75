package alerts

import (
	"fmt"
	"math"

	"github.com/akladas/propscope/internal/modules/finance"
)

// Materiality bands for market-relative insights. Deviations inside the
// band are noise and emit nothing.
const (
	roiMateriality     = 0.05
	capRateMateriality = 0.10
)

// MarketAverages carry comp-derived market figures for relative insights.
// Zero values mean unknown.
type MarketAverages struct {
	ROI     float64
	CapRate float64
}

// RentalThresholds configure the rental alert rules. Zero-valued fields
// fall back to the defaults.
type RentalThresholds struct {
	MinMonthlyCashFlow   float64
	GreatMonthlyCashFlow float64
	MinCashOnCash        float64
	GreatCashOnCash      float64
	MinCapRate           float64
	GreatCapRate         float64
	MinDSCR              float64
	GreatDSCR            float64
}

// DefaultRentalThresholds returns the stock rental rule configuration.
func DefaultRentalThresholds() RentalThresholds {
	return RentalThresholds{
		MinMonthlyCashFlow:   100,
		GreatMonthlyCashFlow: 400,
		MinCashOnCash:        0.05,
		GreatCashOnCash:      0.10,
		MinCapRate:           0.04,
		GreatCapRate:         0.07,
		MinDSCR:              1.2,
		GreatDSCR:            1.5,
	}
}

func (t RentalThresholds) withDefaults() RentalThresholds {
	d := DefaultRentalThresholds()
	if t.MinMonthlyCashFlow == 0 {
		t.MinMonthlyCashFlow = d.MinMonthlyCashFlow
	}
	if t.GreatMonthlyCashFlow == 0 {
		t.GreatMonthlyCashFlow = d.GreatMonthlyCashFlow
	}
	if t.MinCashOnCash == 0 {
		t.MinCashOnCash = d.MinCashOnCash
	}
	if t.GreatCashOnCash == 0 {
		t.GreatCashOnCash = d.GreatCashOnCash
	}
	if t.MinCapRate == 0 {
		t.MinCapRate = d.MinCapRate
	}
	if t.GreatCapRate == 0 {
		t.GreatCapRate = d.GreatCapRate
	}
	if t.MinDSCR == 0 {
		t.MinDSCR = d.MinDSCR
	}
	if t.GreatDSCR == 0 {
		t.GreatDSCR = d.GreatDSCR
	}
	return t
}

// RentalData is everything the rental rules evaluate.
type RentalData struct {
	Metrics finance.PropertyMetrics
	Market  *MarketAverages
}

// GenerateRental evaluates each rental rule independently and returns the
// sorted alert list.
func GenerateRental(data RentalData, thresholds RentalThresholds) []Alert {
	th := thresholds.withDefaults()
	m := data.Metrics

	var out []Alert

	if t, ok := grade(m.MonthlyCashFlow, th.MinMonthlyCashFlow, th.GreatMonthlyCashFlow); ok {
		a := Alert{
			Type:     t,
			Priority: priorityFor(t),
			Category: "cash_flow",
			Message:  fmt.Sprintf("Monthly cash flow is $%.0f", m.MonthlyCashFlow),
		}
		if m.MonthlyCashFlow < 0 {
			a.Priority = PriorityHigh
			a.Suggestion = "The property loses money every month at these assumptions."
		} else if t != TypeSuccess {
			a.Suggestion = "Raise rent, cut expenses, or put more money down."
		}
		out = append(out, a)
	}

	if t, ok := grade(m.CashOnCash, th.MinCashOnCash, th.GreatCashOnCash); ok {
		a := Alert{
			Type:     t,
			Priority: priorityFor(t),
			Category: "roi",
			Message:  fmt.Sprintf("Cash-on-cash return is %.1f%%", m.CashOnCash*100),
		}
		if t != TypeSuccess {
			a.Suggestion = "Compare against index returns before tying up the capital."
		}
		out = append(out, a)
	}

	if t, ok := grade(m.CapRate, th.MinCapRate, th.GreatCapRate); ok {
		a := Alert{
			Type:     t,
			Priority: priorityFor(t),
			Category: "cap_rate",
			Message:  fmt.Sprintf("Cap rate is %.1f%%", m.CapRate*100),
		}
		if t != TypeSuccess {
			a.Suggestion = "A low cap rate means paying a premium for the income stream."
		}
		out = append(out, a)
	}

	if t, ok := grade(m.DSCR, th.MinDSCR, th.GreatDSCR); ok {
		a := Alert{
			Type:     t,
			Priority: priorityFor(t),
			Category: "dscr",
			Message:  fmt.Sprintf("Debt service coverage ratio is %.2f", m.DSCR),
		}
		if m.DSCR < 1.0 {
			// Below 1.0 the rent does not cover the note at all
			a.Type = TypeError
			a.Priority = PriorityHigh
			a.Suggestion = "NOI does not cover the mortgage; most lenders require at least 1.2."
		} else if t != TypeSuccess {
			a.Suggestion = "Lenders typically want 1.2 or better."
		}
		out = append(out, a)
	}

	out = append(out, marketROIInsight(m.CashOnCash, data.Market)...)
	out = append(out, marketCapRateInsight(m.CapRate, data.Market)...)

	Sort(out)
	return out
}

// marketCapRateInsight emits a relative cap-rate insight when the deviation
// from the market average clears the materiality band.
func marketCapRateInsight(capRate float64, market *MarketAverages) []Alert {
	if market == nil || market.CapRate == 0 {
		return nil
	}

	deviation := (capRate - market.CapRate) / math.Abs(market.CapRate)
	if math.Abs(deviation) <= capRateMateriality {
		return nil
	}

	direction := "above"
	if deviation < 0 {
		direction = "below"
	}
	return []Alert{{
		Type:     TypeInfo,
		Priority: PriorityLow,
		Category: "market",
		Message:  fmt.Sprintf("Cap rate is %.0f%% %s the market average", math.Abs(deviation)*100, direction),
	}}
}
