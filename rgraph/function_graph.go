package rgraph

import "github.com/wattpath/evroute/piecewise"

// FunctionGraph is the CSR graph variant used by the functional-Pareto
// search: every edge carries a LimitedFunction mapping elapsed duration
// to consumption, instead of a single scalar weight.
type FunctionGraph struct {
	FirstOut []int32
	Head     []int32
	Cost     []piecewise.LimitedFunction
}

// NumNodes returns the number of nodes N.
func (g *FunctionGraph) NumNodes() int { return len(g.FirstOut) - 1 }

// NumEdges returns the number of edges M.
func (g *FunctionGraph) NumEdges() int { return len(g.Cost) }

// OutEdges calls fn once per out-edge of u, in Head order.
func (g *FunctionGraph) OutEdges(u int, fn func(edgeID int, v int, cost piecewise.LimitedFunction)) {
	for e := int(g.FirstOut[u]); e < int(g.FirstOut[u+1]); e++ {
		fn(e, int(g.Head[e]), g.Cost[e])
	}
}

// ScalarProjection collapses every edge's cost to its minimum duration
// (Cost.MinX), producing the plain Static graph a landmark potential is
// precomputed on.
func (g *FunctionGraph) ScalarProjection() *Static {
	n := g.NumNodes()
	m := g.NumEdges()
	firstOut := append([]int32(nil), g.FirstOut...)
	head := append([]int32(nil), g.Head...)
	weight := make([]int64, m)
	for i, c := range g.Cost {
		weight[i] = int64(c.MinX)
	}
	_ = n
	return &Static{FirstOut: firstOut, Head: head, Weight: weight}
}

// FunctionBuilder accumulates function-weighted edges before freezing
// into a FunctionGraph.
type FunctionBuilder struct {
	numNodes int
	edges    []functionEdge
}

type functionEdge struct {
	from, to int
	cost     piecewise.LimitedFunction
}

// NewFunctionBuilder starts a builder for a graph with numNodes nodes.
func NewFunctionBuilder(numNodes int) *FunctionBuilder {
	return &FunctionBuilder{numNodes: numNodes}
}

// AddEdge appends a directed edge with the given cost curve.
func (b *FunctionBuilder) AddEdge(from, to int, cost piecewise.LimitedFunction) {
	b.edges = append(b.edges, functionEdge{from: from, to: to, cost: cost})
}

// Build freezes the builder into an immutable FunctionGraph, sorting
// each node's out-edges by Head.
func (b *FunctionBuilder) Build() *FunctionGraph {
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
	cost := make([]piecewise.LimitedFunction, m)
	cursor := append([]int32(nil), firstOut[:n]...)
	for _, e := range b.edges {
		pos := cursor[e.from]
		head[pos] = int32(e.to)
		cost[pos] = e.cost
		cursor[e.from]++
	}

	g := &FunctionGraph{FirstOut: firstOut, Head: head, Cost: cost}
	for u := 0; u < n; u++ {
		lo, hi := firstOut[u], firstOut[u+1]
		sortFunctionEdgeRange(head[lo:hi], cost[lo:hi])
	}
	return g
}

func sortFunctionEdgeRange(head []int32, cost []piecewise.LimitedFunction) {
	idx := make([]int, len(head))
	for i := range idx {
		idx[i] = i
	}
	for i := 1; i < len(idx); i++ {
		for j := i; j > 0 && head[idx[j]] < head[idx[j-1]]; j-- {
			idx[j], idx[j-1] = idx[j-1], idx[j]
		}
	}
	h2 := make([]int32, len(head))
	c2 := make([]piecewise.LimitedFunction, len(cost))
	for i, j := range idx {
		h2[i] = head[j]
		c2[i] = cost[j]
	}
	copy(head, h2)
	copy(cost, c2)
}
