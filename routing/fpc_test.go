package routing_test

import (
	"testing"

	"github.com/wattpath/evroute/charge"
	"github.com/wattpath/evroute/curve"
	"github.com/wattpath/evroute/dominance"
	"github.com/wattpath/evroute/potential"
	"github.com/wattpath/evroute/rgraph"
	"github.com/wattpath/evroute/routing"
)

type fixedCharger struct {
	node    int
	profile charge.Profile
	penalty float64
}

func (f fixedCharger) ProfileAt(v int) (charge.Profile, bool) {
	if v != f.node {
		return charge.Profile{}, false
	}
	return f.profile, true
}

func (f fixedCharger) StopPenalty() float64 { return f.penalty }

func TestFPCDijkstra_ChargingAllowsLongerReach(t *testing.T) {
	// 0 -> 1 (drains battery most of the way) -> 2 (needs the charge at 1)
	b := rgraph.NewFunctionBuilder(3)
	b.AddEdge(0, 1, mustLF(t, 5, 5, curve.NewConstant(8)))
	b.AddEdge(1, 2, mustLF(t, 5, 5, curve.NewConstant(8)))
	g := b.Build()

	profile, err := charge.NewProfile([]charge.Point{
		{Time: 0, SoC: 0},
		{Time: 20, SoC: 10},
	}, 10)
	if err != nil {
		t.Fatalf("NewProfile: %v", err)
	}
	chargers := fixedCharger{node: 1, profile: profile, penalty: 1}

	res := routing.FPCDijkstra(g, 0, 2, potential.Zero{}, dominance.Functional{}, 0, chargers, 10, []float64{10})
	front := res.Front(2)
	if len(front) == 0 {
		t.Fatalf("expected charging at node 1 to make node 2 reachable")
	}
}

func TestFPCDijkstra_NoChargerBehavesLikePlainSearch(t *testing.T) {
	b := rgraph.NewFunctionBuilder(2)
	b.AddEdge(0, 1, mustLF(t, 1, 1, curve.NewConstant(1)))
	g := b.Build()

	res := routing.FPCDijkstra(g, 0, 1, potential.Zero{}, dominance.Functional{}, 0, nil, 10, nil)
	if len(res.Front(1)) == 0 {
		t.Fatalf("expected node 1 reachable even without any charger")
	}
}
