package routing_test

import (
	"testing"

	"github.com/wattpath/evroute/dominance"
	"github.com/wattpath/evroute/routing"
)

type mcAdjGraph struct {
	adj [][]struct {
		v    int
		edge routing.MCEdge
	}
}

func (g *mcAdjGraph) NumNodes() int { return len(g.adj) }

func (g *mcAdjGraph) OutEdges(u int, fn func(v int, edge routing.MCEdge)) {
	for _, e := range g.adj[u] {
		fn(e.v, e.edge)
	}
}

func newMCAdjGraph(n int) *mcAdjGraph {
	return &mcAdjGraph{adj: make([][]struct {
		v    int
		edge routing.MCEdge
	}, n)}
}

func (g *mcAdjGraph) addEdge(u, v int, duration, consumption int64) {
	g.adj[u] = append(g.adj[u], struct {
		v    int
		edge routing.MCEdge
	}{v, routing.MCEdge{Duration: duration, Consumption: consumption}})
}

func TestMCDijkstra_ParetoFrontHasBothTradeoffs(t *testing.T) {
	g := newMCAdjGraph(3)
	// fast, expensive route: 0 -> 1 direct
	g.addEdge(0, 1, 5, 10)
	// slow, cheap route: 0 -> 2 -> 1
	g.addEdge(0, 2, 2, 1)
	g.addEdge(2, 1, 10, 1)

	res := routing.MCDijkstra(g, 0, 100, dominance.BiCriteria{})
	front := res.Front(1)
	if len(front) < 2 {
		t.Fatalf("expected both non-dominated tradeoffs at node 1, got %v", front)
	}

	var hasFast, hasCheap bool
	for _, p := range front {
		if p.X == 5 && p.Y == 10 {
			hasFast = true
		}
		if p.X == 12 && p.Y == 2 {
			hasCheap = true
		}
	}
	if !hasFast || !hasCheap {
		t.Fatalf("missing expected Pareto point in front %v", front)
	}
}

func TestMCDijkstra_CapacityPrunesInfeasible(t *testing.T) {
	g := newMCAdjGraph(2)
	g.addEdge(0, 1, 1, 50)
	res := routing.MCDijkstra(g, 0, 10, dominance.BiCriteria{})
	if len(res.Front(1)) != 0 {
		t.Fatalf("expected edge exceeding capacity to be pruned, got %v", res.Front(1))
	}
}

func TestMCDijkstra_DominatedLabelDropped(t *testing.T) {
	g := newMCAdjGraph(2)
	g.addEdge(0, 1, 10, 10)
	g.addEdge(0, 1, 5, 5)
	res := routing.MCDijkstra(g, 0, 100, dominance.BiCriteria{})
	front := res.Front(1)
	if len(front) != 1 {
		t.Fatalf("expected the dominated (10,10) label dropped, got %v", front)
	}
	if front[0].X != 5 || front[0].Y != 5 {
		t.Fatalf("expected the surviving label to be (5,5), got %v", front[0])
	}
}
