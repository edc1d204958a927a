package envelope_test

import (
	"math"
	"testing"

	"github.com/wattpath/evroute/curve"
	"github.com/wattpath/evroute/envelope"
	"github.com/wattpath/evroute/piecewise"
)

func mustLimited(t *testing.T, minX, maxX float64, fn curve.Piece) piecewise.LimitedFunction {
	t.Helper()
	lf, err := piecewise.NewLimited(minX, maxX, fn)
	if err != nil {
		t.Fatalf("NewLimited: %v", err)
	}
	return lf
}

// TestEnvelope_Optimality checks P3: for every x in the domain of at
// least one input, envelope(x) == min_i f_i(x) (within epsilon).
func TestEnvelope_Optimality(t *testing.T) {
	fns := []piecewise.LimitedFunction{
		mustLimited(t, 0, 10, curve.NewLinear(-1, 0, 10)),
		mustLimited(t, 0, 10, curve.NewLinear(-0.5, 0, 6)),
		mustLimited(t, 0, 10, curve.NewConstant(3)),
	}
	res := envelope.Lower(fns)
	if err := res.Function.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	for x := 0.0; x <= 10; x += 0.37 {
		want := math.Inf(1)
		for _, f := range fns {
			if v := f.Eval(x); v < want {
				want = v
			}
		}
		got := res.Function.Eval(x)
		if math.Abs(got-want) > 1e-3 {
			t.Errorf("x=%v: envelope=%v, want min=%v", x, got, want)
		}
	}
}

// TestEnvelope_Monotonicity checks P4: the emitted piecewise function is
// strictly decreasing or constant.
func TestEnvelope_Monotonicity(t *testing.T) {
	fns := []piecewise.LimitedFunction{
		mustLimited(t, 0, 5, curve.NewHyperbolic(4, 0, 1)),
		mustLimited(t, 0, 5, curve.NewLinear(-1, 0, 8)),
	}
	res := envelope.Lower(fns)
	prev := math.Inf(1)
	for x := 0.01; x <= 5; x += 0.1 {
		v := res.Function.Eval(x)
		if v > prev+1e-6 {
			t.Fatalf("envelope increased at x=%v: prev=%v now=%v", x, prev, v)
		}
		prev = v
	}
}

func TestEnvelope_EmptyInput(t *testing.T) {
	res := envelope.Lower(nil)
	if len(res.Function.Pieces) != 0 {
		t.Fatalf("expected empty envelope for empty input")
	}
}

func TestEnvelope_SingleFunction(t *testing.T) {
	fns := []piecewise.LimitedFunction{
		mustLimited(t, 0, 5, curve.NewLinear(-1, 0, 10)),
	}
	res := envelope.Lower(fns)
	if got := res.Function.Eval(2); got != 8 {
		t.Fatalf("Eval(2) = %v, want 8", got)
	}
}
