// Package rgraph implements the compressed-sparse-row (CSR) road graph
// the search operates over, plus a dynamic builder used during
// preprocessing and a reverse-direction view used by landmark
// potentials and A*-style termination checks.
package rgraph

import (
	"errors"
	"sort"
)

// InvalidID marks a missing edge or node lookup.
const InvalidID = -1

// ErrOutOfRange indicates a node ID outside [0, NumNodes()).
var ErrOutOfRange = errors.New("rgraph: node id out of range")

// Static is an immutable CSR graph: FirstOut[0..N] delimits, for each
// node, the slice of Head/Weight entries that are its out-edges.
// FirstOut[0] == 0 and FirstOut[N] == len(Head); for each node u, the
// edges FirstOut[u]..FirstOut[u+1] are sorted by Head so Edge(u,v) can
// binary search.
type Static struct {
	FirstOut []int32
	Head     []int32
	Weight   []int64
}

// NumNodes returns the number of nodes N.
func (g *Static) NumNodes() int { return len(g.FirstOut) - 1 }

// NumEdges returns the number of edges M.
func (g *Static) NumEdges() int { return len(g.Head) }

// OutEdges calls fn once per out-edge of u, in Head order.
func (g *Static) OutEdges(u int, fn func(edgeID int, v int, weight int64)) {
	for e := int(g.FirstOut[u]); e < int(g.FirstOut[u+1]); e++ {
		fn(e, int(g.Head[e]), g.Weight[e])
	}
}

// ReverseEdgesFrom adapts OutEdges to potential.ReverseGraph: Static
// graphs built by Reverse already have reverse semantics, so this is
// just OutEdges without the edge ID.
func (g *Static) ReverseEdgesFrom(v int, fn func(neighbor int, weight int64)) {
	g.OutEdges(v, func(_ int, w int, weight int64) { fn(w, weight) })
}

// Edge returns the edge ID of (u,v), or InvalidID if no such edge
// exists, via binary search over the sorted out-edge range.
func (g *Static) Edge(u, v int) int {
	lo, hi := int(g.FirstOut[u]), int(g.FirstOut[u+1])
	i := sort.Search(hi-lo, func(i int) bool { return g.Head[lo+i] >= int32(v) }) + lo
	if i < hi && int(g.Head[i]) == v {
		return i
	}
	return InvalidID
}

// Reverse builds the CSR graph with every edge direction flipped,
// preserving per-edge weight. Used to seed landmark potential precompute
// (shortest distance from each landmark is a forward Dijkstra on the
// reverse graph).
func (g *Static) Reverse() *Static {
	n := g.NumNodes()
	b := NewBuilder(n)
	for u := 0; u < n; u++ {
		g.OutEdges(u, func(_ int, v int, w int64) {
			b.AddEdge(v, u, w)
		})
	}
	return b.Build()
}

// Builder accumulates edges for a graph under construction (OSM import,
// simplification passes) before it is frozen into a Static CSR graph.
type Builder struct {
	numNodes int
	edges    []builderEdge
}

type builderEdge struct {
	from, to int
	weight   int64
}

// NewBuilder starts a builder for a graph with numNodes nodes, IDs
// [0, numNodes).
func NewBuilder(numNodes int) *Builder {
	return &Builder{numNodes: numNodes}
}

// AddEdge appends a directed edge; callers wanting an undirected edge
// call AddEdge twice, (u,v) and (v,u).
func (b *Builder) AddEdge(from, to int, weight int64) {
	b.edges = append(b.edges, builderEdge{from: from, to: to, weight: weight})
}

// Build freezes the builder into an immutable CSR Static graph, sorting
// each node's out-edges by Head.
func (b *Builder) Build() *Static {
	n := b.numNodes
	firstOut := make([]int32, n+1)
	for _, e := range b.edges {
		firstOut[e.from+1]++
	}
	for u := 0; u < n; u++ {
		firstOut[u+1] += firstOut[u]
	}

	m := len(b.edges)
	head := make([]int32, m)
	weight := make([]int64, m)
	cursor := append([]int32(nil), firstOut[:n]...)
	for _, e := range b.edges {
		pos := cursor[e.from]
		head[pos] = int32(e.to)
		weight[pos] = e.weight
		cursor[e.from]++
	}

	g := &Static{FirstOut: firstOut, Head: head, Weight: weight}
	for u := 0; u < n; u++ {
		lo, hi := firstOut[u], firstOut[u+1]
		sortEdgeRange(head[lo:hi], weight[lo:hi])
	}
	return g
}

// sortEdgeRange sorts a node's out-edge slice by head, keeping weight
// aligned to the same permutation.
func sortEdgeRange(head []int32, weight []int64) {
	idx := make([]int, len(head))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool { return head[idx[i]] < head[idx[j]] })

	h2 := make([]int32, len(head))
	w2 := make([]int64, len(weight))
	for i, j := range idx {
		h2[i] = head[j]
		w2[i] = weight[j]
	}
	copy(head, h2)
	copy(weight, w2)
}
