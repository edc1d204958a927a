package charge

import (
	"github.com/wattpath/evroute/curve"
	"github.com/wattpath/evroute/envelope"
	"github.com/wattpath/evroute/piecewise"
)

// Link composes an approach cost curve F (duration elapsed so far ->
// consumption used so far) with a charging stop at a station whose
// profile is ch: the rider arrives with socAvailable - F(t) remaining,
// charges up to socOut, and pays a fixed stop penalty in addition to
// the charging time itself. The result is a new LimitedFunction over
// total elapsed time (approach + penalty + charge), still monotone
// decreasing in consumption, per the piecewise invariant every trade-off
// curve must satisfy.
//
// Link only ever builds a single target-SoC option; ChargeOptions below
// is what produces the full "leave with SoC s" Pareto front a profile
// search needs.
func Link(f piecewise.LimitedFunction, ch Profile, socAvailable, socOut, penalty float64) (piecewise.LimitedFunction, error) {
	remainingAt := func(t float64) float64 { return socAvailable - f.Eval(t) }

	minRemaining := remainingAt(f.MinX)
	chargeTimeAtMin := ch.TimeFor(minRemaining, socOut)
	maxRemaining := remainingAt(f.MaxX)
	chargeTimeAtMax := ch.TimeFor(maxRemaining, socOut)

	// total elapsed time T(t) = t + penalty + chargeTime(t); consumption
	// used overall is (socAvailable - socOut), a constant for a fixed
	// target SoC, since whatever energy the charge restores exactly
	// cancels the energy spent on approach. A fixed socOut therefore
	// composes to a CONSTANT piece on the shifted domain: the whole
	// point of charging to a specific target is that the arrival cost
	// doesn't matter once that target is reached.
	newMinX := f.MinX + penalty + chargeTimeAtMin
	newMaxX := f.MaxX + penalty + chargeTimeAtMax
	lo, hi := newMinX, newMaxX
	if hi < lo {
		lo, hi = hi, lo
	}

	constant := socAvailable - socOut
	return piecewise.NewLimited(lo, hi, curve.NewConstant(constant))
}

// ChargeOptions builds the family of Link results for every candidate
// target SoC in targets, used by the FPC-profile variant to precompute,
// for a station, the lower envelope of every useful "leave with SoC s"
// choice instead of committing to a single target up front.
func ChargeOptions(f piecewise.LimitedFunction, ch Profile, socAvailable, penalty float64, targets []float64) ([]piecewise.LimitedFunction, error) {
	out := make([]piecewise.LimitedFunction, 0, len(targets))
	for _, socOut := range targets {
		lf, err := Link(f, ch, socAvailable, socOut, penalty)
		if err != nil {
			return nil, err
		}
		out = append(out, lf)
	}
	return out, nil
}

// Envelope reduces a family of charge options (from ChargeOptions) to
// the single lower-envelope piecewise function representing the best
// achievable consumption for every possible total elapsed time: the
// precomputed station profile an FPC-profile search consults instead of
// re-evaluating every target SoC per query.
func Envelope(options []piecewise.LimitedFunction) piecewise.PiecewiseFunction {
	return envelope.Lower(options).Function
}
