// Package routing implements the Dijkstra/A* family the search engine
// runs: a plain scalar shortest path, a bi-criteria Pareto search over
// (duration, consumption), and the functional-Pareto search and its
// charging-aware variants over piecewise trade-off curves.
package routing

import (
	"math"

	"github.com/wattpath/evroute/pqueue"
	"github.com/wattpath/evroute/rgraph"
)

// ScalarResult is the outcome of a fastest-path query: the shortest
// distance to every node reached, and enough parent bookkeeping to
// reconstruct the path to any of them.
type ScalarResult struct {
	Dist   []int64
	Parent []int
}

const unreachable = math.MaxInt64

// ScalarDijkstra computes the shortest scalar distance from src to
// every node of g (or, if target is not rgraph.InvalidID, stops as soon
// as target is settled).
func ScalarDijkstra(g *rgraph.Static, src, target int) ScalarResult {
	n := g.NumNodes()
	res := ScalarResult{
		Dist:   make([]int64, n),
		Parent: make([]int, n),
	}
	for i := range res.Dist {
		res.Dist[i] = unreachable
		res.Parent[i] = rgraph.InvalidID
	}
	res.Dist[src] = 0

	settled := make([]bool, n)
	q := pqueue.New(n)
	q.Push(src, 0)

	for q.Len() > 0 {
		entry := q.Pop()
		u := entry.ID
		if settled[u] {
			continue
		}
		settled[u] = true
		if u == target {
			return res
		}

		g.OutEdges(u, func(_ int, v int, weight int64) {
			if settled[v] {
				return
			}
			nd := res.Dist[u] + weight
			if nd < res.Dist[v] {
				res.Dist[v] = nd
				res.Parent[v] = u
				if q.Contains(v) {
					q.DecreaseKey(v, nd)
				} else {
					q.Push(v, nd)
				}
			}
		})
	}
	return res
}

// Path reconstructs the node sequence from src to target using a
// ScalarResult's Parent links. Returns nil if target is unreachable.
func (r ScalarResult) Path(src, target int) []int {
	if r.Dist[target] == unreachable {
		return nil
	}
	var rev []int
	for v := target; v != src; v = r.Parent[v] {
		rev = append(rev, v)
	}
	rev = append(rev, src)

	path := make([]int, len(rev))
	for i, v := range rev {
		path[len(rev)-1-i] = v
	}
	return path
}
