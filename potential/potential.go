// Package potential implements the node-potential heuristics used to
// turn a label-setting Dijkstra into an A*-style search: Zero (plain
// Dijkstra) and Landmark (ALT), which derives a lower bound from
// precomputed landmark-to-node distances on a reverse scalar graph.
package potential

import (
	"container/heap"
	"math"
)

// Provider supplies an admissible, consistent lower-bound estimate of
// the remaining cost from v to the current search target.
type Provider interface {
	// Recompute prepares the potential for a new target (the Landmark
	// implementation clears its per-target cache, its landmark searches
	// having run once in NewLandmark; Zero is a no-op).
	Recompute(target int)
	// H returns the heuristic estimate h(v) for the current target.
	H(v int) int64
}

// Zero is the trivial potential: h(v) = 0 for every v, reducing the
// search to plain Dijkstra.
type Zero struct{}

// Recompute is a no-op for Zero.
func (Zero) Recompute(int) {}

// H always returns 0.
func (Zero) H(int) int64 { return 0 }

// ReverseGraph is the minimal scalar graph Landmark needs: out-edges on
// the *reverse* direction of the routing graph, each with a
// non-negative integer weight (duration).
type ReverseGraph interface {
	NumNodes() int
	// ReverseEdgesFrom iterates the reverse out-edges of v, calling fn
	// with each (neighbor, weight).
	ReverseEdgesFrom(v int, fn func(neighbor int, weight int64))
}

// Landmark implements the ALT (A*, Landmarks, Triangle inequality)
// heuristic: for each of a fixed set of landmark nodes L, the shortest
// scalar duration from L to every node is precomputed once on the
// reverse graph. For a given target t, h(v) = max_L |d(L,t) - d(L,v)|,
// which is admissible and consistent because it derives from the
// triangle inequality applied to true shortest-path distances.
type Landmark struct {
	graph      ReverseGraph
	landmarks  []int
	distFromLM [][]int64 // distFromLM[i][v] = scalar duration from landmarks[i] to v on the reverse graph
	target     int
	hForTarget []int64
	have       []bool
}

// NewLandmark precomputes distFromLM for each of the given landmark
// node IDs by running a scalar Dijkstra from each on g's reverse
// direction.
func NewLandmark(g ReverseGraph, landmarks []int) *Landmark {
	n := g.NumNodes()
	l := &Landmark{
		graph:     g,
		landmarks: append([]int(nil), landmarks...),
	}
	l.distFromLM = make([][]int64, len(landmarks))
	for i, lm := range landmarks {
		l.distFromLM[i] = scalarDijkstra(g, lm, n)
	}
	l.hForTarget = make([]int64, n)
	l.have = make([]bool, n)
	return l
}

// Recompute resets the per-target lazy cache; h(v) is then derived on
// demand in H.
func (l *Landmark) Recompute(target int) {
	l.target = target
	for i := range l.have {
		l.have[i] = false
	}
}

// H returns max_L |d(L,target) - d(L,v)|, computing and caching it the
// first time v is queried for the current target.
func (l *Landmark) H(v int) int64 {
	if l.have[v] {
		return l.hForTarget[v]
	}
	var best int64
	for i := range l.landmarks {
		dLT := l.distFromLM[i][l.target]
		dLV := l.distFromLM[i][v]
		if dLT == math.MaxInt64 || dLV == math.MaxInt64 {
			continue
		}
		diff := dLT - dLV
		if diff < 0 {
			diff = -diff
		}
		if diff > best {
			best = diff
		}
	}
	l.hForTarget[v] = best
	l.have[v] = true
	return best
}

type heapEntry struct {
	node int
	dist int64
}
type distHeap []heapEntry

func (h distHeap) Len() int            { return len(h) }
func (h distHeap) Less(i, j int) bool  { return h[i].dist < h[j].dist }
func (h distHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *distHeap) Push(x interface{}) { *h = append(*h, x.(heapEntry)) }
func (h *distHeap) Pop() interface{} {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}

// scalarDijkstra runs a plain Dijkstra from src over g's reverse
// edges, returning the shortest distance to every node (math.MaxInt64
// for unreachable nodes).
func scalarDijkstra(g ReverseGraph, src, n int) []int64 {
	dist := make([]int64, n)
	visited := make([]bool, n)
	for i := range dist {
		dist[i] = math.MaxInt64
	}
	dist[src] = 0

	h := &distHeap{{node: src, dist: 0}}
	for h.Len() > 0 {
		top := heap.Pop(h).(heapEntry)
		if visited[top.node] {
			continue
		}
		visited[top.node] = true
		g.ReverseEdgesFrom(top.node, func(neighbor int, weight int64) {
			if visited[neighbor] {
				return
			}
			nd := dist[top.node] + weight
			if nd < dist[neighbor] {
				dist[neighbor] = nd
				heap.Push(h, heapEntry{node: neighbor, dist: nd})
			}
		})
	}
	return dist
}
