package routing

import (
	"github.com/wattpath/evroute/charge"
	"github.com/wattpath/evroute/dominance"
	"github.com/wattpath/evroute/label"
	"github.com/wattpath/evroute/piecewise"
	"github.com/wattpath/evroute/pqueue"
	"github.com/wattpath/evroute/rgraph"
)

// Charger supplies, for a node that hosts a charging station, the
// profile to charge on and the fixed stop penalty paid regardless of
// how much energy is added.
type Charger interface {
	// ProfileAt returns the charging profile at v and true, or the zero
	// Profile and false if v has no charger.
	ProfileAt(v int) (charge.Profile, bool)
	// StopPenalty is the fixed time cost of pulling in and plugging in,
	// independent of how much energy is added.
	StopPenalty() float64
}

// FPCDijkstra runs the same functional-Pareto search as FPDijkstra, but
// at every node with a charger (per chargers) also considers stopping
// to recharge: each settled label is composed with every target SoC in
// socTargets via charge.Link, and the resulting options are pushed back
// into the same node's label container as ordinary new labels, so a
// later pop may choose to depart having charged. socAvailable is the
// vehicle's full battery capacity (the datum every label's accumulated
// consumption is measured against), handed straight through to
// charge.ChargeOptions for every charger node encountered.
func FPCDijkstra(g *rgraph.FunctionGraph, src, target int, potentials label.Potentials, policy dominance.Functional, epsX float64, chargers Charger, socAvailable float64, socTargets []float64) FPResult {
	n := g.NumNodes()
	c := label.NewContainer(n, policy)
	q := pqueue.New(n)

	root := piecewise.LimitedFunction{MinX: 0, MaxX: 0}
	rootEntry := label.Entry{
		Key:    zeroFloor(float64(potentials.H(src))),
		Cost:   root,
		Parent: rgraph.InvalidID,
	}
	c.Push(src, rootEntry, potentials)
	q.Push(src, int64(rootEntry.Key))

	bestTargetKey := float64(-1)
	haveTarget := false

	for q.Len() > 0 {
		entry := q.Pop()
		u := entry.ID
		if haveTarget && float64(entry.Key) > bestTargetKey+epsX {
			break
		}
		if c.Empty(u) {
			continue
		}

		settledLabel, settledIdx := c.Pop(u, potentials)
		syncQueue(q, c, u)

		if u == target {
			haveTarget = true
			if bestTargetKey < 0 || settledLabel.Key < bestTargetKey {
				bestTargetKey = settledLabel.Key
			}
		}

		relaxEdges(g, c, q, potentials, u, settledLabel, settledIdx)
		relaxCharging(c, q, potentials, chargers, socAvailable, socTargets, u, settledLabel, settledIdx)
	}

	return FPResult{container: c}
}

func relaxEdges(g *rgraph.FunctionGraph, c *label.Container, q *pqueue.IDQueue, potentials label.Potentials, u int, settledLabel label.Entry, settledIdx int) {
	g.OutEdges(u, func(_ int, v int, edgeCost piecewise.LimitedFunction) {
		combined := composeSerial(settledLabel.Cost, edgeCost)
		if c.Dominated(v, combined) {
			return
		}
		key := combined.MinX + float64(potentials.H(v))
		newEntry := label.Entry{
			Key:         key,
			Cost:        combined,
			Parent:      u,
			ParentEntry: settledIdx,
		}
		c.Push(v, newEntry, potentials)
		syncQueue(q, c, v)
	})
}

// relaxCharging considers every target SoC at u's charger (if any),
// pushing a new label back at u itself: the node doesn't move, but the
// label's cost curve now reflects time spent charging and the SoC that
// buys. socAvailable is the vehicle's full battery capacity (the same
// quantity charge.Link expects its "f" parameter's consumption-so-far
// to be measured against), not the SoC remaining at u; Link derives
// what's left at u itself from settledLabel.Cost.
func relaxCharging(c *label.Container, q *pqueue.IDQueue, potentials label.Potentials, chargers Charger, socAvailable float64, socTargets []float64, u int, settledLabel label.Entry, settledIdx int) {
	if chargers == nil {
		return
	}
	profile, ok := chargers.ProfileAt(u)
	if !ok {
		return
	}
	options, err := charge.ChargeOptions(settledLabel.Cost, profile, socAvailable, chargers.StopPenalty(), socTargets)
	if err != nil {
		return
	}
	for _, charged := range options {
		if c.Dominated(u, charged) {
			continue
		}
		key := charged.MinX + float64(potentials.H(u))
		newEntry := label.Entry{
			Key:         key,
			Cost:        charged,
			Parent:      u,
			ParentEntry: settledIdx,
			ChargedHere: true,
		}
		c.Push(u, newEntry, potentials)
	}
	syncQueue(q, c, u)
}
