package routing_test

import (
	"testing"

	"github.com/wattpath/evroute/curve"
	"github.com/wattpath/evroute/dominance"
	"github.com/wattpath/evroute/piecewise"
	"github.com/wattpath/evroute/potential"
	"github.com/wattpath/evroute/rgraph"
	"github.com/wattpath/evroute/routing"
)

func mustLF(t *testing.T, minX, maxX float64, p curve.Piece) piecewise.LimitedFunction {
	t.Helper()
	lf, err := piecewise.NewLimited(minX, maxX, p)
	if err != nil {
		t.Fatalf("NewLimited: %v", err)
	}
	return lf
}

func TestFPDijkstra_FindsCheaperDetour(t *testing.T) {
	b := rgraph.NewFunctionBuilder(3)
	b.AddEdge(0, 1, mustLF(t, 5, 5, curve.NewConstant(10)))
	b.AddEdge(0, 2, mustLF(t, 2, 2, curve.NewConstant(1)))
	b.AddEdge(2, 1, mustLF(t, 3, 3, curve.NewConstant(1)))
	g := b.Build()

	res := routing.FPDijkstra(g, 0, 1, potential.Zero{}, dominance.Functional{}, 0)
	front := res.Front(1)
	if len(front) == 0 {
		t.Fatalf("expected at least one settled label at node 1")
	}

	var cheapest float64 = -1
	for _, f := range front {
		c := f.Eval(f.MinX)
		if cheapest < 0 || c < cheapest {
			cheapest = c
		}
	}
	if cheapest != 2 {
		t.Fatalf("cheapest consumption at node 1 = %v, want 2 (via the detour)", cheapest)
	}
}

func TestFPDijkstra_UnreachableNodeHasNoFront(t *testing.T) {
	b := rgraph.NewFunctionBuilder(2)
	g := b.Build()
	res := routing.FPDijkstra(g, 0, 1, potential.Zero{}, dominance.Functional{}, 0)
	if len(res.Front(1)) != 0 {
		t.Fatalf("expected no settled labels at an unreachable node")
	}
}
