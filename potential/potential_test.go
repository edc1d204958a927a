package potential_test

import (
	"testing"

	"github.com/wattpath/evroute/potential"
)

// lineGraph is a ReverseGraph over nodes 0..n-1 with reverse edge i+1->i
// of weight 1, so node 0 is n-1 hops from node n-1.
type lineGraph struct{ n int }

func (g lineGraph) NumNodes() int { return g.n }
func (g lineGraph) ReverseEdgesFrom(v int, fn func(int, int64)) {
	if v+1 < g.n {
		fn(v+1, 1)
	}
}

func TestZero_AlwaysZero(t *testing.T) {
	var z potential.Zero
	z.Recompute(5)
	if z.H(3) != 0 {
		t.Fatalf("Zero.H should always be 0")
	}
}

func TestLandmark_Admissible(t *testing.T) {
	g := lineGraph{n: 6}
	lm := potential.NewLandmark(g, []int{0, 5})
	lm.Recompute(5)
	for v := 0; v < 6; v++ {
		h := lm.H(v)
		trueDist := int64(5 - v)
		if h > trueDist {
			t.Fatalf("h(%d)=%d exceeds true remaining distance %d (not admissible)", v, h, trueDist)
		}
	}
}
