package label_test

import (
	"testing"

	"github.com/wattpath/evroute/curve"
	"github.com/wattpath/evroute/dominance"
	"github.com/wattpath/evroute/label"
	"github.com/wattpath/evroute/piecewise"
)

type zeroPotentials struct{}

func (zeroPotentials) H(int) int64 { return 0 }

func mustLimited(t *testing.T, minX, maxX float64, fn curve.Piece) piecewise.LimitedFunction {
	t.Helper()
	lf, err := piecewise.NewLimited(minX, maxX, fn)
	if err != nil {
		t.Fatalf("NewLimited: %v", err)
	}
	return lf
}

func TestContainer_PushPopBasic(t *testing.T) {
	c := label.NewContainer(2, dominance.Functional{EpsY: 1e-6})
	pot := zeroPotentials{}

	cost := mustLimited(t, 0, 10, curve.NewLinear(-1, 0, 10))
	modified := c.Push(0, label.Entry{Key: cost.MinX, Cost: cost, Parent: -1}, pot)
	if !modified {
		t.Fatalf("expected first push to modify the minimum")
	}
	if c.Empty(0) {
		t.Fatalf("expected a label at node 0")
	}

	e, idx := c.Pop(0, pot)
	if idx != 0 {
		t.Fatalf("expected first settled index 0, got %d", idx)
	}
	if e.Cost.MinX != 0 {
		t.Fatalf("unexpected popped cost: %+v", e.Cost)
	}
	if len(c.Settled(0)) != 1 {
		t.Fatalf("expected 1 settled label")
	}
}

func TestContainer_DominatedPushIgnored(t *testing.T) {
	c := label.NewContainer(1, dominance.Functional{EpsY: 1e-6})
	pot := zeroPotentials{}

	cheap := mustLimited(t, 0, 10, curve.NewConstant(1))
	c.Push(0, label.Entry{Key: 0, Cost: cheap, Parent: -1}, pot)

	expensive := mustLimited(t, 0, 10, curve.NewConstant(5))
	modified := c.Push(0, label.Entry{Key: 0, Cost: expensive, Parent: -1}, pot)
	if modified {
		t.Fatalf("a strictly worse label should not modify the minimum")
	}
}

func TestContainer_SettledDominanceClipsFutureLabels(t *testing.T) {
	c := label.NewContainer(1, dominance.Functional{EpsY: 1e-6})
	pot := zeroPotentials{}

	first := mustLimited(t, 0, 5, curve.NewConstant(2))
	c.Push(0, label.Entry{Key: 0, Cost: first, Parent: -1}, pot)
	c.Pop(0, pot)

	second := mustLimited(t, 0, 10, curve.NewLinear(-1, 0, 10))
	c.Push(0, label.Entry{Key: second.MinX, Cost: second, Parent: -1}, pot)
	if c.Empty(0) {
		t.Fatalf("expected a surviving, clipped label after partial domination")
	}
	if c.Min(0).Cost.MinX < 5 {
		t.Fatalf("expected the surviving label's domain clipped to start at 5, got MinX=%v", c.Min(0).Cost.MinX)
	}
}
