package routing

import (
	"github.com/wattpath/evroute/dominance"
	"github.com/wattpath/evroute/pqueue"
	"github.com/wattpath/evroute/rgraph"
)

// MCCCharger supplies, per node, a charging rate: the duration cost of
// adding one unit of consumption back (SoC), used by MCCDijkstra's
// charging relaxation. Unlike Charger/StationEnvelope (which operate on
// the full functional trade-off curve), the bi-criteria search only
// needs a scalar "how long to add X energy" answer per stop.
type MCCCharger interface {
	// ChargeDuration returns the time cost of charging soc units at v,
	// and whether v has a charger at all.
	ChargeDuration(v int, soc int64) (int64, bool)
}

// MCCDijkstra runs MCDijkstra augmented with charging stops: at every
// node with a charger, in addition to ordinary edge relaxation, a label
// may recover each amount in chargeAmounts of consumption at the cost of
// chargers.ChargeDuration for that amount, producing a new (duration,
// consumption) label at the same node.
func MCCDijkstra(g MCGraph, src int, capacity int64, eps dominance.BiCriteria, chargers MCCCharger, chargeAmounts []int64) MCResult {
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

	relaxTo := func(v int, cand dominance.Point) {
		if cand.Y > capacity || cand.Y < 0 {
			return
		}
		if dominated, _ := eps.ClipDominated(pointsOf(res.Labels[v]), cand); dominated {
			return
		}
		res.Labels[v] = appendUndominated(res.Labels[v], mcLabel{cost: cand, parent: v}, eps)
		if cand.X < bestKey[v] {
			bestKey[v] = cand.X
			if q.Contains(v) {
				q.DecreaseKey(v, cand.X)
			} else {
				q.Push(v, cand.X)
			}
		}
	}

	for q.Len() > 0 {
		entry := q.Pop()
		u := entry.ID

		for _, ul := range res.Labels[u] {
			g.OutEdges(u, func(v int, edge MCEdge) {
				cand := dominance.Point{X: ul.cost.X + edge.Duration, Y: ul.cost.Y + edge.Consumption}
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

			if chargers != nil {
				for _, amount := range chargeAmounts {
					dt, ok := chargers.ChargeDuration(u, amount)
					if !ok {
						continue
					}
					relaxTo(u, dominance.Point{X: ul.cost.X + dt, Y: ul.cost.Y - amount})
				}
			}
		}
	}
	return res
}
