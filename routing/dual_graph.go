package routing

import "github.com/wattpath/evroute/rgraph"

// DualGraph adapts a duration-weighted rgraph.Static into an MCGraph by
// pairing each edge's duration with a consumption value from a parallel
// slice indexed the same way g.OutEdges/g.Edge index edges, so a caller
// reuses the one CSR graph for both the scalar and bi-criteria search
// families instead of building a second adjacency structure.
type DualGraph struct {
	g           *rgraph.Static
	consumption []int64
}

// NewDualGraph pairs g with a consumption value per edge id.
func NewDualGraph(g *rgraph.Static, consumption []int64) *DualGraph {
	return &DualGraph{g: g, consumption: consumption}
}

// NumNodes reports the number of nodes in the underlying graph.
func (d *DualGraph) NumNodes() int { return d.g.NumNodes() }

// OutEdges implements MCGraph by combining g's duration with the
// parallel consumption slice.
func (d *DualGraph) OutEdges(u int, fn func(v int, edge MCEdge)) {
	d.g.OutEdges(u, func(edgeID int, v int, weight int64) {
		fn(v, MCEdge{Duration: weight, Consumption: d.consumption[edgeID]})
	})
}
