package routing

import (
	"github.com/wattpath/evroute/dominance"
	"github.com/wattpath/evroute/pqueue"
	"github.com/wattpath/evroute/rgraph"
)

// MCEdge is a bi-criteria edge weight: elapsed duration and energy
// consumption deltas for traversing it.
type MCEdge struct {
	Duration, Consumption int64
}

// MCGraph supplies bi-criteria out-edges; a thin adapter lets callers
// reuse an rgraph.Static for duration and carry consumption separately
// without this package depending on a second concrete graph type.
type MCGraph interface {
	NumNodes() int
	OutEdges(u int, fn func(v int, edge MCEdge))
}

// mcLabel is one Pareto-optimal (duration, consumption) label reaching
// some node, with a parent pointer for path reconstruction.
type mcLabel struct {
	cost   dominance.Point
	parent int
}

// MCResult holds, for every visited node, its Pareto-optimal label set.
type MCResult struct {
	Labels [][]mcLabel
}

// Front returns the settled Pareto front at node v as (duration,
// consumption) points.
func (r MCResult) Front(v int) []dominance.Point {
	return pointsOf(r.Labels[v])
}

// MCDijkstra runs a multi-criteria Dijkstra from src over g, forming a
// new (duration, consumption) cost at every relaxation, applying a
// battery-capacity constraint, and keeping only the Pareto-undominated
// labels at each node (epsilon-relaxed per eps).
func MCDijkstra(g MCGraph, src int, capacity int64, eps dominance.BiCriteria) MCResult {
	n := g.NumNodes()
	res := MCResult{Labels: make([][]mcLabel, n)}

	q := pqueue.New(n)
	q.Push(src, 0)
	res.Labels[src] = []mcLabel{{cost: dominance.Point{}, parent: rgraph.InvalidID}}

	bestKey := make([]int64, n)
	for i := range bestKey {
		bestKey[i] = unreachable
	}
	bestKey[src] = 0

	for q.Len() > 0 {
		entry := q.Pop()
		u := entry.ID

		for _, ul := range res.Labels[u] {
			g.OutEdges(u, func(v int, edge MCEdge) {
				cand := dominance.Point{
					X: ul.cost.X + edge.Duration,
					Y: ul.cost.Y + edge.Consumption,
				}
				if cand.Y > capacity {
					return
				}
				if dominated, _ := eps.ClipDominated(pointsOf(res.Labels[v]), cand); dominated {
					return
				}
				res.Labels[v] = appendUndominated(res.Labels[v], mcLabel{cost: cand, parent: u}, eps)
				if cand.X < bestKey[v] {
					bestKey[v] = cand.X
					if q.Contains(v) {
						q.DecreaseKey(v, cand.X)
					} else {
						q.Push(v, cand.X)
					}
				}
			})
		}
	}
	return res
}

func pointsOf(labels []mcLabel) []dominance.Point {
	out := make([]dominance.Point, len(labels))
	for i, l := range labels {
		out[i] = l.cost
	}
	return out
}

// appendUndominated inserts cand into labels, dropping any existing
// label cand now dominates, keeping the list a Pareto antichain.
func appendUndominated(labels []mcLabel, cand mcLabel, eps dominance.BiCriteria) []mcLabel {
	out := labels[:0]
	for _, l := range labels {
		if !eps.Dominates(cand.cost, l.cost) {
			out = append(out, l)
		}
	}
	return append(out, cand)
}
