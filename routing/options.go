package routing

import (
	"github.com/wattpath/evroute/dominance"
	"github.com/wattpath/evroute/fxp"
)

// Epsilons groups every epsilon-relaxation and charging-stop tuning
// knob the Dijkstra family uses, so a caller configures them once at
// the query boundary instead of hand-building dominance.BiCriteria and
// dominance.Functional literals with the same two numbers duplicated.
type Epsilons struct {
	// EpsX relaxes the duration axis of bi-criteria and functional
	// dominance, in seconds.
	EpsX float64
	// EpsY relaxes the consumption axis, in Wh.
	EpsY float64
	// ChargePenalty is the fixed time cost charged against every stop
	// a charging-aware search considers, in seconds.
	ChargePenalty float64
}

// DefaultEpsilons returns the historically hard-coded tolerances
// (100ms duration, 1mWh consumption, 60s per-stop penalty) as a named,
// overridable value rather than constants buried in the search loop.
func DefaultEpsilons() Epsilons {
	return Epsilons{EpsX: 0.1, EpsY: 0.001, ChargePenalty: 60}
}

// BiCriteria converts to the fixed-point epsilon pair MCDijkstra and
// MCCDijkstra compare labels with.
func (e Epsilons) BiCriteria() dominance.BiCriteria {
	return dominance.BiCriteria{
		EpsX: int64(e.EpsX * float64(fxp.Scale)),
		EpsY: int64(e.EpsY * float64(fxp.Scale)),
	}
}

// Functional converts to the float epsilon pair FPDijkstra and its
// charging-aware variants compare labels with.
func (e Epsilons) Functional() dominance.Functional {
	return dominance.Functional{EpsX: e.EpsX, EpsY: e.EpsY}
}

// QueryOptions carries the per-query tuning a search runs with on top
// of the graph and start/target nodes: which epsilon band to
// search under and, for charging-aware queries, which target SoC
// fractions to consider stopping at.
type QueryOptions struct {
	Epsilons      Epsilons
	ChargeTargets []float64
}

// DefaultQueryOptions returns DefaultEpsilons with no charge targets
// configured; charging-aware callers must set ChargeTargets explicitly.
func DefaultQueryOptions() QueryOptions {
	return QueryOptions{Epsilons: DefaultEpsilons()}
}
