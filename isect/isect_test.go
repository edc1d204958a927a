package isect_test

import (
	"math"
	"testing"

	"github.com/wattpath/evroute/curve"
	"github.com/wattpath/evroute/isect"
	"github.com/wattpath/evroute/piecewise"
)

// assertIntersectionCorrect checks P2: for every returned x,
// |f(x)-g(x)| < 1e-5*(1+|f(x)|).
func assertIntersectionCorrect(t *testing.T, f, g curve.Piece, h isect.Hits) {
	t.Helper()
	if h.Count == 0 {
		t.Fatalf("expected at least one intersection")
	}
	for _, x := range h.Slice() {
		fx := f.Eval(x)
		gx := g.Eval(x)
		tol := 1e-5 * (1 + math.Abs(fx))
		if math.Abs(fx-gx) > tol {
			t.Errorf("at x=%v: f(x)=%v g(x)=%v exceed tolerance %v", x, fx, gx, tol)
		}
	}
}

func TestIsect_LinearLinear(t *testing.T) {
	f := curve.NewLinear(-1, 0, 10)
	g := curve.NewLinear(-3, 0, 14)
	h := isect.Pieces(f, g)
	assertIntersectionCorrect(t, f, g, h)
}

func TestIsect_LinearHyperbolic(t *testing.T) {
	f := curve.NewLinear(-1, 0, 5)
	g := curve.NewHyperbolic(4, 0, 0)
	h := isect.Pieces(f, g)
	assertIntersectionCorrect(t, f, g, h)
}

func TestIsect_HyperbolicHyperbolic(t *testing.T) {
	f := curve.NewHyperbolic(8, 0, 1)
	g := curve.NewHyperbolic(2, 1, 0)
	h := isect.Pieces(f, g)
	assertIntersectionCorrect(t, f, g, h)
}

func TestIsect_NoIntersectionParallelLinear(t *testing.T) {
	f := curve.NewLinear(-1, 0, 10)
	g := curve.NewLinear(-1, 0, 5)
	h := isect.Pieces(f, g)
	if h.Count != 0 {
		t.Fatalf("expected no intersection for parallel lines, got %v", h.Slice())
	}
}

func TestIsect_S6_LimitedLinearInClampedRegion(t *testing.T) {
	// S6: lhs = LimitedLinear([0,3], d=-2.5, b=0, c=7.25)
	//     rhs = LimitedLinear([1,2], d=-1.5, b=0, c=4.5)
	// intersection -> x ~ 2.3
	// The raw lines cross at x=2.75, outside rhs's domain; the crossing
	// that counts is lhs against rhs's clamped tail rhs(2)=1.5.
	lhs, err := piecewise.NewLimited(0, 3, curve.NewLinear(-2.5, 0, 7.25))
	if err != nil {
		t.Fatalf("NewLimited: %v", err)
	}
	rhs, err := piecewise.NewLimited(1, 2, curve.NewLinear(-1.5, 0, 4.5))
	if err != nil {
		t.Fatalf("NewLimited: %v", err)
	}
	h := piecewise.Intersect(lhs, rhs)
	if h.Count == 0 {
		t.Fatalf("expected an intersection point")
	}
	found := false
	for _, x := range h.Slice() {
		if math.Abs(x-2.3) < 1e-6 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected x~=2.3, got %v", h.Slice())
	}
}
