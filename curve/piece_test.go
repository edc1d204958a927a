package curve_test

import (
	"math"
	"testing"

	"github.com/wattpath/evroute/curve"
)

func TestPiece_EvalConstant(t *testing.T) {
	p := curve.NewConstant(4.5)
	if got := p.Eval(100); got != 4.5 {
		t.Fatalf("Eval(100) = %v, want 4.5", got)
	}
	if p.IsMonotoneDecreasing() {
		t.Fatalf("constant piece must not be monotone-decreasing")
	}
}

func TestPiece_EvalLinear(t *testing.T) {
	p := curve.NewLinear(-2.5, 0, 7.25)
	if got := p.Eval(3); math.Abs(got+0.25) > 1e-9 {
		t.Fatalf("Eval(3) = %v, want -0.25", got)
	}
	if !p.IsMonotoneDecreasing() {
		t.Fatalf("negative-slope linear piece must be monotone-decreasing")
	}
}

func TestPiece_EvalHyperbolic(t *testing.T) {
	p := curve.NewHyperbolic(4, 0, 1)
	if got := p.Eval(2); math.Abs(got-2) > 1e-9 { // 4/4 + 1 = 2
		t.Fatalf("Eval(2) = %v, want 2", got)
	}
	if !p.IsMonotoneDecreasing() {
		t.Fatalf("hyperbolic piece must be monotone-decreasing")
	}
}

func TestPiece_NewHyperbolicPanicsOnNonPositiveA(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for a<=0")
		}
	}()
	curve.NewHyperbolic(0, 0, 0)
}

func TestPiece_ShiftAndOffset(t *testing.T) {
	p := curve.NewLinear(-1, 0, 10)
	shifted := p.Shift(5)
	if got := shifted.Eval(5); got != 10 {
		t.Fatalf("shifted.Eval(5) = %v, want 10", got)
	}
	offset := p.Offset(3)
	if got := offset.Eval(0); got != 13 {
		t.Fatalf("offset.Eval(0) = %v, want 13", got)
	}
}

func TestPiece_InverseAt(t *testing.T) {
	lin := curve.NewLinear(-2, 0, 10)
	x, err := lin.InverseAt(6)
	if err != nil || math.Abs(x-2) > 1e-9 {
		t.Fatalf("InverseAt(6) = (%v, %v), want (2, nil)", x, err)
	}

	hyp := curve.NewHyperbolic(4, 0, 1)
	x, err = hyp.InverseAt(2)
	if err != nil || math.Abs(x-2) > 1e-9 {
		t.Fatalf("InverseAt(2) = (%v, %v), want (2, nil)", x, err)
	}

	con := curve.NewConstant(5)
	if _, err := con.InverseAt(5); err != curve.ErrNotInvertible {
		t.Fatalf("expected ErrNotInvertible, got %v", err)
	}
}

func TestLink_ConstantIdentity(t *testing.T) {
	f := curve.NewConstant(2)
	g := curve.NewLinear(-1, 0, 10)
	linked := curve.Link(f, g)
	// f is instantaneous (b contributes a fixed shift, c a fixed offset).
	if got := linked.Eval(f.B); math.Abs(got-(f.C+g.C)) > 1e-9 {
		t.Fatalf("Link(constant,linear).Eval(b) = %v, want %v", got, f.C+g.C)
	}
}

func TestLink_HyperbolicHyperbolicMonotone(t *testing.T) {
	f := curve.NewHyperbolic(8, 0, 0)
	g := curve.NewHyperbolic(1, 0, 0)
	linked := curve.Link(f, g)
	if !linked.IsMonotoneDecreasing() {
		t.Fatalf("linked hyperbolic pieces must remain monotone-decreasing")
	}
	if linked.Eval(3) < linked.Eval(5) {
		t.Fatalf("linked function must be decreasing: f(3)=%v < f(5)=%v", linked.Eval(3), linked.Eval(5))
	}
}
