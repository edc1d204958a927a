package charge

import (
	"github.com/wattpath/evroute/curve"
	"github.com/wattpath/evroute/piecewise"
)

// EnvelopeRegistry precomputes, once per station in a Registry, the
// lower envelope of every target-SoC charging option, so
// FPCProfileDijkstra never calls ChargeOptions at query time. Built
// against a zero-domain placeholder approach function, matching
// StationEnvelope's documented precompute convention.
type EnvelopeRegistry struct {
	envelopes map[int]piecewise.PiecewiseFunction
}

// NewEnvelopeRegistry builds an EnvelopeRegistry from reg's stations,
// the shared battery capacity, and the target SoC fractions (of
// capacity) a query is willing to charge up to.
func NewEnvelopeRegistry(reg *Registry, capacity float64, targetFractions []float64) (*EnvelopeRegistry, error) {
	zeroApproach, err := piecewise.NewLimited(0, 0, curve.NewConstant(0))
	if err != nil {
		return nil, err
	}

	targets := make([]float64, len(targetFractions))
	for i, f := range targetFractions {
		targets[i] = f * capacity
	}

	envelopes := make(map[int]piecewise.PiecewiseFunction, len(reg.profiles))
	for node, profile := range reg.profiles {
		options, err := ChargeOptions(zeroApproach, profile, capacity, reg.stopPenalty, targets)
		if err != nil {
			return nil, err
		}
		envelopes[node] = Envelope(options)
	}
	return &EnvelopeRegistry{envelopes: envelopes}, nil
}

// EnvelopeAt implements routing.StationEnvelope.
func (r *EnvelopeRegistry) EnvelopeAt(v int) (piecewise.PiecewiseFunction, bool) {
	env, ok := r.envelopes[v]
	return env, ok
}
