package piecewise_test

import (
	"math"
	"testing"

	"github.com/wattpath/evroute/curve"
	"github.com/wattpath/evroute/piecewise"
)

func twoPiece(t *testing.T) piecewise.PiecewiseFunction {
	t.Helper()
	p0, err := piecewise.NewLimited(0, 2, curve.NewLinear(-1, 0, 10))
	if err != nil {
		t.Fatalf("NewLimited: %v", err)
	}
	p1, err := piecewise.NewLimited(2, 5, curve.NewLinear(-2, 2, 8))
	if err != nil {
		t.Fatalf("NewLimited: %v", err)
	}
	return piecewise.NewPiecewise([]piecewise.LimitedFunction{p0, p1})
}

func TestPiecewise_EvalAndValidate(t *testing.T) {
	pf := twoPiece(t)
	if err := pf.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if got := pf.Eval(1); got != 9 {
		t.Fatalf("Eval(1) = %v, want 9", got)
	}
	if got := pf.Eval(3); got != 6 {
		t.Fatalf("Eval(3) = %v, want 6", got)
	}
	if got := pf.Eval(10); got != 2 {
		t.Fatalf("Eval(10) (clamped) = %v, want 2", got)
	}
	if !math.IsInf(pf.Eval(-1), 1) {
		t.Fatalf("Eval(-1) should be +Inf below domain")
	}
}

func TestPiecewise_ClampAbove(t *testing.T) {
	pf := twoPiece(t)
	clamped := pf.ClampAbove(7)
	if err := clamped.Validate(); err != nil {
		t.Fatalf("Validate clamped: %v", err)
	}
	for _, p := range clamped.Pieces {
		if p.Eval(p.MinX) > 7+1e-9 {
			t.Errorf("piece min value %v exceeds cap 7", p.Eval(p.MinX))
		}
	}
}

func TestLimitedFunction_Intersect(t *testing.T) {
	lhs, _ := piecewise.NewLimited(0, 3, curve.NewLinear(-2.5, 0, 7.25))
	rhs, _ := piecewise.NewLimited(1, 2, curve.NewLinear(-1.5, 0, 4.5))
	hits := piecewise.Intersect(lhs, rhs)
	if hits.Count == 0 {
		t.Fatalf("expected an intersection")
	}
	found := false
	for _, x := range hits.Slice() {
		if math.Abs(x-2.3) < 1e-6 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected x~=2.3 among %v", hits.Slice())
	}
}

func TestPiecewise_DiscontinuousRejected(t *testing.T) {
	p0, _ := piecewise.NewLimited(0, 2, curve.NewLinear(-1, 0, 10))
	p1, _ := piecewise.NewLimited(2, 5, curve.NewLinear(-2, 2, 100))
	pf := piecewise.NewPiecewise([]piecewise.LimitedFunction{p0, p1})
	if err := pf.Validate(); err != piecewise.ErrDiscontinuous {
		t.Fatalf("expected ErrDiscontinuous, got %v", err)
	}
}
