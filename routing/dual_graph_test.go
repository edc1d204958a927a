package routing_test

import (
	"testing"

	"github.com/wattpath/evroute/dominance"
	"github.com/wattpath/evroute/rgraph"
	"github.com/wattpath/evroute/routing"
)

func TestDualGraph_PairsDurationWithConsumption(t *testing.T) {
	b := rgraph.NewBuilder(3)
	b.AddEdge(0, 1, 5)
	b.AddEdge(1, 2, 3)
	g := b.Build()

	consumption := make([]int64, g.NumEdges())
	consumption[g.Edge(0, 1)] = 2
	consumption[g.Edge(1, 2)] = 1

	dual := routing.NewDualGraph(g, consumption)
	res := routing.MCDijkstra(dual, 0, 100, dominance.BiCriteria{})
	front := res.Front(2)
	if len(front) != 1 || front[0].X != 8 || front[0].Y != 3 {
		t.Fatalf("front(2) = %v, want a single (8,3) label", front)
	}
}
