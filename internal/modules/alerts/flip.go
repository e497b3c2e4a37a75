package alerts

import (
	"fmt"
	"math"

	"github.com/akladas/propscope/internal/modules/finance"
)

// FlipThresholds configure the flip alert rules. Zero-valued fields fall
// back to the defaults, so callers can override a single field.
type FlipThresholds struct {
	MinROI            float64
	GreatROI          float64
	MinProfit         float64
	GreatProfit       float64
	MaxTimelineMonths int
	MaxRehabRatio     float64
}

// DefaultFlipThresholds returns the stock flip rule configuration.
func DefaultFlipThresholds() FlipThresholds {
	return FlipThresholds{
		MinROI:            0.10,
		GreatROI:          0.25,
		MinProfit:         15000,
		GreatProfit:       50000,
		MaxTimelineMonths: 9,
		MaxRehabRatio:     0.30,
	}
}

func (t FlipThresholds) withDefaults() FlipThresholds {
	d := DefaultFlipThresholds()
	if t.MinROI == 0 {
		t.MinROI = d.MinROI
	}
	if t.GreatROI == 0 {
		t.GreatROI = d.GreatROI
	}
	if t.MinProfit == 0 {
		t.MinProfit = d.MinProfit
	}
	if t.GreatProfit == 0 {
		t.GreatProfit = d.GreatProfit
	}
	if t.MaxTimelineMonths == 0 {
		t.MaxTimelineMonths = d.MaxTimelineMonths
	}
	if t.MaxRehabRatio == 0 {
		t.MaxRehabRatio = d.MaxRehabRatio
	}
	return t
}

// FlipData is everything the flip rules evaluate: the computed metrics,
// the price paid, and optional market averages for relative insights.
type FlipData struct {
	Metrics       finance.FlipMetrics
	PurchasePrice float64
	Market        *MarketAverages
}

// GenerateFlip evaluates each flip rule independently and returns the
// sorted alert list.
func GenerateFlip(data FlipData, thresholds FlipThresholds) []Alert {
	th := thresholds.withDefaults()
	m := data.Metrics

	var out []Alert

	if t, ok := grade(m.ROI, th.MinROI, th.GreatROI); ok {
		a := Alert{
			Type:     t,
			Priority: priorityFor(t),
			Category: "roi",
			Message:  fmt.Sprintf("Projected ROI is %.1f%%", m.ROI*100),
		}
		if t != TypeSuccess {
			a.Suggestion = "Negotiate the purchase price down or trim the rehab scope."
		}
		out = append(out, a)
	}

	if t, ok := grade(m.NetProfit, th.MinProfit, th.GreatProfit); ok {
		a := Alert{
			Type:     t,
			Priority: priorityFor(t),
			Category: "profit",
			Message:  fmt.Sprintf("Projected net profit is $%.0f", m.NetProfit),
		}
		if t != TypeSuccess {
			a.Suggestion = "Thin margins leave no room for surprises; re-verify the ARV against comps."
		}
		out = append(out, a)
	}

	if m.TimelineMonths > th.MaxTimelineMonths {
		t := TypeWarning
		if m.TimelineMonths > th.MaxTimelineMonths*2 {
			t = TypeError
		}
		out = append(out, Alert{
			Type:       t,
			Priority:   priorityFor(t),
			Category:   "timeline",
			Message:    fmt.Sprintf("A %d-month timeline accrues $%.0f in holding costs", m.TimelineMonths, m.HoldingCosts),
			Suggestion: "Every extra month of carry comes straight out of profit.",
		})
	}

	if m.RehabRatio > th.MaxRehabRatio {
		out = append(out, Alert{
			Type:       TypeWarning,
			Priority:   PriorityMedium,
			Category:   "rehab",
			Message:    fmt.Sprintf("Rehab budget is %.0f%% of the purchase price", m.RehabRatio*100),
			Suggestion: "Heavy rehabs overrun; budget a contingency and get firm contractor bids.",
		})
	}

	if m.MAO > 0 && data.PurchasePrice > m.MAO {
		out = append(out, Alert{
			Type:       TypeWarning,
			Priority:   PriorityHigh,
			Category:   "offer",
			Message:    fmt.Sprintf("Purchase price $%.0f exceeds the 70%%-rule maximum offer of $%.0f", data.PurchasePrice, m.MAO),
			Suggestion: "Paying over the maximum allowable offer erodes the flip margin.",
		})
	}

	out = append(out, marketROIInsight(m.ROI, data.Market)...)

	Sort(out)
	return out
}

// marketROIInsight emits a relative-ROI insight when the deviation from
// the market average clears the materiality band.
func marketROIInsight(roi float64, market *MarketAverages) []Alert {
	if market == nil || market.ROI == 0 {
		return nil
	}

	deviation := (roi - market.ROI) / math.Abs(market.ROI)
	if math.Abs(deviation) <= roiMateriality {
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
		Message:  fmt.Sprintf("Projected ROI is %.0f%% %s the market average", math.Abs(deviation)*100, direction),
	}}
}
