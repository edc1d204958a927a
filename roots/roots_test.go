package roots_test

import (
	"math"
	"testing"

	"github.com/wattpath/evroute/roots"
)

// evalCubic/evalQuartic support the P1 root-round-trip property: for
// every root r returned, the polynomial evaluates to <= 1e-4*||coeffs||
// at r.
func evalCubic(a, b, c, d, x float64) float64 {
	return a*x*x*x + b*x*x + c*x + d
}

func evalQuartic(a, b, c, d, e, x float64) float64 {
	return a*x*x*x*x + b*x*x*x + c*x*x + d*x + e
}

func norm(coeffs ...float64) float64 {
	sum := 0.0
	for _, c := range coeffs {
		sum += c * c
	}
	return math.Sqrt(sum)
}

func TestCubic_DegreeThree(t *testing.T) {
	// S4: real_roots(1, 0, -15, -4) -> {4.0, -0.267949..., -3.732050...}
	s := roots.Cubic(1, 0, -15, -4)
	if s.Count != 3 {
		t.Fatalf("expected 3 real roots, got %d: %v", s.Count, s.Values)
	}
	want := []float64{4.0, -0.267949, -3.732050}
	for _, w := range want {
		found := false
		for i := 0; i < s.Count; i++ {
			if math.Abs(s.Values[i]-w) < 1e-5 {
				found = true
			}
		}
		if !found {
			t.Errorf("expected root near %v among %v", w, s.Values[:s.Count])
		}
	}
}

func TestCubic_RootRoundTrip_P1(t *testing.T) {
	cases := [][4]float64{
		{1, 0, -15, -4},
		{2, -3, -11, 6},
		{1, -6, 11, -6},
	}
	for _, c := range cases {
		s := roots.Cubic(c[0], c[1], c[2], c[3])
		tol := 1e-4 * norm(c[0], c[1], c[2], c[3])
		for i := 0; i < s.Count; i++ {
			v := evalCubic(c[0], c[1], c[2], c[3], s.Values[i])
			if math.Abs(v) > tol+1e-6 {
				t.Errorf("cubic %v root %v evaluates to %v, exceeds tolerance %v", c, s.Values[i], v, tol)
			}
		}
	}
}

func TestQuartic_DoubleRoot(t *testing.T) {
	// S5: real_roots(1, 4, -26, -60, 225) -> {3.0, 3.0, -5.0, -5.0}
	s := roots.Quartic(1, 4, -26, -60, 225)
	want := map[float64]int{3.0: 2, -5.0: 2}
	got := map[float64]int{}
	for i := 0; i < s.Count; i++ {
		for w := range want {
			if math.Abs(s.Values[i]-w) < 1e-4 {
				got[w]++
			}
		}
	}
	for w, n := range want {
		if got[w] < n {
			t.Errorf("expected root %v with multiplicity %d, got %d (all roots: %v)", w, n, got[w], s.Values[:s.Count])
		}
	}
}

func TestQuartic_RootRoundTrip_P1(t *testing.T) {
	cases := [][5]float64{
		{1, 4, -26, -60, 225},
		{1, 0, -5, 0, 4},
		{1, -10, 35, -50, 24},
	}
	for _, c := range cases {
		s := roots.Quartic(c[0], c[1], c[2], c[3], c[4])
		tol := 1e-4 * norm(c[0], c[1], c[2], c[3], c[4])
		for i := 0; i < s.Count; i++ {
			v := evalQuartic(c[0], c[1], c[2], c[3], c[4], s.Values[i])
			if math.Abs(v) > tol+1e-3 {
				t.Errorf("quartic %v root %v evaluates to %v, exceeds tolerance %v", c, s.Values[i], v, tol)
			}
		}
	}
}

func TestQuartic_BiquadraticFastPath(t *testing.T) {
	// x^4 - 5x^2 + 4 = 0 -> x^2 in {1,4} -> x in {1,-1,2,-2}
	s := roots.Quartic(1, 0, -5, 0, 4)
	want := []float64{1, -1, 2, -2}
	for _, w := range want {
		found := false
		for i := 0; i < s.Count; i++ {
			if math.Abs(s.Values[i]-w) < 1e-6 {
				found = true
			}
		}
		if !found {
			t.Errorf("expected root %v among %v", w, s.Values[:s.Count])
		}
	}
}

func TestRoots_NaNInfInputsReturnEmpty(t *testing.T) {
	if s := roots.Quadratic(math.NaN(), 1, 1); s.Count != 0 {
		t.Fatalf("expected empty set for NaN input, got %v", s.Values[:s.Count])
	}
	if s := roots.Cubic(math.Inf(1), 1, 1, 1); s.Count != 0 {
		t.Fatalf("expected empty set for Inf input, got %v", s.Values[:s.Count])
	}
}

func TestUniqueRoots_CollapsesNearDuplicates(t *testing.T) {
	in := roots.Set{Values: [4]float64{1.0, 1.000001, 5.0, 5.0}, Count: 4}
	out := roots.UniqueRoots(in)
	if out.Count != 2 {
		t.Fatalf("expected 2 unique roots, got %d: %v", out.Count, out.Values[:out.Count])
	}
}

func TestLinearAndQuadraticDegenerate(t *testing.T) {
	if s := roots.Linear(0, 5); s.Count != 0 {
		t.Fatalf("a=0 linear must be empty, got %v", s.Values[:s.Count])
	}
	s := roots.Linear(2, -4)
	if s.Count != 1 || math.Abs(s.Values[0]-2) > 1e-9 {
		t.Fatalf("Linear(2,-4) = %v, want [2]", s.Values[:s.Count])
	}
}
