package routing

import (
	"github.com/wattpath/evroute/dominance"
	"github.com/wattpath/evroute/label"
	"github.com/wattpath/evroute/piecewise"
	"github.com/wattpath/evroute/pqueue"
	"github.com/wattpath/evroute/rgraph"
)

// FPResult is the settled-label outcome of a functional-Pareto search:
// every node's full trade-off front, as piecewise cost curves, plus
// parent bookkeeping for path reconstruction.
type FPResult struct {
	container *label.Container
}

// Front returns the settled cost curves reachable at v, each the
// best-known consumption-over-duration trade-off for one Pareto
// alternative.
func (r FPResult) Front(v int) []piecewise.LimitedFunction {
	settled := r.container.Settled(v)
	out := make([]piecewise.LimitedFunction, len(settled))
	for i, e := range settled {
		out[i] = e.Cost
	}
	return out
}

// Path reconstructs the node sequence from src to the settled label at
// (target, entryIdx).
func (r FPResult) Path(src, target, entryIdx int) []int {
	var rev []int
	v, idx := target, entryIdx
	for {
		rev = append(rev, v)
		if v == src {
			break
		}
		e := r.container.Settled(v)[idx]
		v, idx = e.Parent, e.ParentEntry
	}
	path := make([]int, len(rev))
	for i, n := range rev {
		path[len(rev)-1-i] = n
	}
	return path
}

// zeroFloor clamps a float key to zero so a potential overestimate
// from floating-point rounding never produces a negative priority key.
func zeroFloor(x float64) float64 {
	if x < 0 {
		return 0
	}
	return x
}

// FPDijkstra runs the functional-Pareto label-setting search: every
// label is a duration -> consumption trade-off curve, composed in
// series with each out-edge's own trade-off curve, kept only while
// some sub-domain of it is not yet dominated by a settled label at the
// same node. potentials supplies the A*-style lower bound added to a
// label's MinX to form its priority key; pass potential.Zero for plain
// Dijkstra behavior.
func FPDijkstra(g *rgraph.FunctionGraph, src, target int, potentials label.Potentials, policy dominance.Functional, epsX float64) FPResult {
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

		// Cheap lower bound: a candidate already dominated at its
		// destination node is discarded before it ever reaches the
		// container, so an edge whose minimum achievable combined cost
		// cannot beat what is already settled there never grows the
		// search frontier.
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

	return FPResult{container: c}
}

// syncQueue reconciles v's queue membership and key with its current
// unsettled minimum after a Push or Pop at v: a node with no unsettled
// labels left has nothing to wait on and is dropped from the queue.
func syncQueue(q *pqueue.IDQueue, c *label.Container, v int) {
	if c.Empty(v) {
		return
	}
	key := int64(c.Min(v).Key)
	switch {
	case !q.Contains(v):
		q.Push(v, key)
	case key < q.Key(v):
		q.DecreaseKey(v, key)
	case key > q.Key(v):
		q.IncreaseKey(v, key)
	}
}

// composeSerial builds the trade-off curve for reaching an edge's head
// by first accumulating cost and then traversing the edge: the result
// is shifted and offset by the edge's own minimum duration and
// consumption, keeping the label's functional shape (a full schedule-
// dependent composition is unnecessary here since every edge cost this
// search consumes is itself already a minimum-duration trade-off curve).
func composeSerial(cost piecewise.LimitedFunction, edge piecewise.LimitedFunction) piecewise.LimitedFunction {
	return cost.Shift(edge.MinX).Offset(edge.Eval(edge.MinX))
}
