package finance

import (
	"math"
)

// CashFlowSeries is an ordered sequence of signed monetary values indexed by
// period. Period 0 is the initial outlay and is expected to be negative.
type CashFlowSeries []float64

// Newton iteration bounds for IRR. The abort conditions are load-bearing:
// loosening them trades silent mispricing for convergence on pathological
// series.
const (
	irrMaxIterations   = 100
	irrDerivativeFloor = 1e-6
	irrConvergenceTol  = 1e-5
	irrDivergenceBound = 100.0
	irrMinRate         = -1.0 // -100%
	irrMaxRate         = 10.0 // 1000%
)

// DefaultIRRGuess is the starting rate when the caller has no better seed.
const DefaultIRRGuess = 0.10

// NPV returns the net present value of the series at the given periodic
// rate. Always defined for rate > -1.
func NPV(flows CashFlowSeries, rate float64) float64 {
	npv := 0.0
	for j, cf := range flows {
		npv += cf / math.Pow(1+rate, float64(j))
	}
	return npv
}

// IRR finds the internal rate of return by Newton-Raphson iteration on
// NPV(rate) = 0. The boolean result is false when the IRR is undefined:
// fewer than two flows, no sign change, a flat derivative, divergence, a
// converged rate outside [-100%, 1000%], or no convergence within the
// iteration budget. IRR never panics or errors.
func IRR(flows CashFlowSeries, guess float64) (float64, bool) {
	if len(flows) < 2 || !hasSignChange(flows) {
		return 0, false
	}

	rate := guess
	for i := 0; i < irrMaxIterations; i++ {
		npv := 0.0
		derivative := 0.0
		for j, cf := range flows {
			period := float64(j)
			npv += cf / math.Pow(1+rate, period)
			derivative -= period * cf / math.Pow(1+rate, period+1)
		}

		// A flat derivative makes the Newton step unstable
		if math.Abs(derivative) < irrDerivativeFloor {
			return 0, false
		}

		next := rate - npv/derivative

		if math.IsNaN(next) || math.IsInf(next, 0) || math.Abs(next) > irrDivergenceBound {
			return 0, false
		}

		if math.Abs(next-rate) < irrConvergenceTol {
			if next < irrMinRate || next > irrMaxRate {
				// Converged but unreasonable
				return 0, false
			}
			return next, true
		}

		rate = next
	}

	return 0, false
}

// hasSignChange reports whether the series contains at least one positive
// and one negative value - the precondition for an IRR to exist.
func hasSignChange(flows CashFlowSeries) bool {
	hasPositive := false
	hasNegative := false
	for _, cf := range flows {
		if cf > 0 {
			hasPositive = true
		} else if cf < 0 {
			hasNegative = true
		}
	}
	return hasPositive && hasNegative
}
