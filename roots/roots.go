// Package roots implements closed-form real-root extraction for
// polynomials of degree 1 through 4, the shared building block behind
// piece intersection and lower-envelope construction.
//
// All functions are noexcept-style: invalid input (NaN/Inf coefficients,
// a degenerate leading coefficient) never panics, it returns a Set with
// Count()==0. Result ordering is unspecified; callers filter by domain.
package roots

import "math"

// maxRoots bounds every returned root set: degree <= 4 implies <= 4 real
// roots, so a fixed-size array return avoids any heap allocation on the
// hot path.
const maxRoots = 4

// mergeEps is the tolerance used by UniqueRoots to collapse roots that
// differ by less than this amount.
const mergeEps = 1e-5

// Set holds up to four real roots. Only the first Count entries of
// Values are meaningful.
type Set struct {
	Values [maxRoots]float64
	Count  int
}

// push appends v to the set; it is a no-op once Count reaches maxRoots,
// which never happens for degree <= 4 polynomials.
func (s *Set) push(v float64) {
	if s.Count < maxRoots {
		s.Values[s.Count] = v
		s.Count++
	}
}

func finite(xs ...float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// Linear returns the real root(s) of a*x + b = 0. If a == 0 the equation
// is degenerate and Set is empty.
func Linear(a, b float64) Set {
	var s Set
	if !finite(a, b) || a == 0 {
		return s
	}
	s.push(-b / a)
	return s
}

// Quadratic returns the real root(s) of a*x^2 + b*x + c = 0. Falls back
// to Linear when a == 0.
func Quadratic(a, b, c float64) Set {
	if a == 0 {
		return Linear(b, c)
	}
	var s Set
	if !finite(a, b, c) {
		return s
	}

	p := b / a
	q := c / a
	n := p*p/4 - q
	switch {
	case n < 0:
		// no real roots
	case n > 0:
		sq := math.Sqrt(n)
		s.push(-p/2 + sq)
		s.push(-p/2 - sq)
	default:
		s.push(-p / 2)
		s.push(-p / 2)
	}
	return s
}

// Cubic returns the real root(s) of a*x^3 + b*x^2 + c*x + d = 0 using
// Cardano/trigonometric closed forms. Falls back to Quadratic when
// a == 0.
func Cubic(a, b, c, d float64) Set {
	if a == 0 {
		return Quadratic(b, c, d)
	}
	var s Set
	if !finite(a, b, c, d) {
		return s
	}

	p := (3*a*c - b*b) / (3 * a * a)
	q := (2*b*b*b - 9*a*b*c + 27*a*a*d) / (27 * a * a * a)
	shift := func(t float64) float64 { return t - b/(3*a) }
	disc := 4*p*p*p + 27*q*q

	switch {
	case disc > 0:
		switch {
		case p > 0:
			t0 := -2 * math.Sqrt(p/3) * math.Sinh(1.0/3*math.Asinh(3*q/(2*p)*math.Sqrt(3/p)))
			s.push(shift(t0))
		case p < 0:
			t0 := -2 * math.Copysign(1, q) * math.Sqrt(-p/3) *
				math.Cosh(1.0/3*math.Acosh(-3*math.Abs(q)/(2*p)*math.Sqrt(-3/p)))
			s.push(shift(t0))
		default:
			// p == 0, q != 0 (else disc would be 0): t^3 + q = 0 has the
			// single real root cbrt(-q).
			s.push(shift(math.Cbrt(-q)))
		}
	default: // disc <= 0
		switch {
		case p < 0:
			tk := func(k int) float64 {
				return 2 * math.Sqrt(-p/3) * math.Cos(1.0/3*math.Acos(3*q/(2*p)*math.Sqrt(-3/p))-2*float64(k)*math.Pi/3)
			}
			s.push(shift(tk(0)))
			s.push(shift(tk(1)))
			s.push(shift(tk(2)))
		case p > 0:
			// no real roots
		default:
			s.push(shift(0))
		}
	}
	return s
}

// Quartic returns the real root(s) of a*x^4 + b*x^3 + c*x^2 + d*x + e = 0
// via the resolvent-cubic method, with a biquadratic fast path when both
// |b|^2 and |d|^2 (after normalising by a) are < 1e-10, and a
// depressed-quartic fast path for |q|^2 < 1e-10.
// Falls back to Cubic when a == 0.
func Quartic(a, b, c, d, e float64) Set {
	if a == 0 {
		return Cubic(b, c, d, e)
	}
	var s Set
	if !finite(a, b, c, d, e) {
		return s
	}

	bn := b / a
	cn := c / a
	dn := d / a
	en := e / a

	if math.Abs(bn*bn) < 1e-10 && math.Abs(dn*dn) < 1e-10 {
		// x^4 + c*x^2 + e = 0, substitute y = x^2.
		y := Quadratic(1, cn, en)
		for i := 0; i < y.Count; i++ {
			if y.Values[i] >= 0 {
				r := math.Sqrt(y.Values[i])
				s.push(r)
				s.push(-r)
			}
		}
		return s
	}

	p := (8*cn - 3*bn*bn) / 8.0
	q := (bn*bn*bn - 4*bn*cn + 8*dn) / 8.0
	r := (-3*bn*bn*bn*bn + 256*en - 64*bn*dn + 16*bn*bn*cn) / 256.0
	yToX := -bn / 4

	if math.Abs(q*q) < 1e-10 {
		// y^4 + p*y^2 + r = 0, substitute z = y^2.
		z := Quadratic(1, p, r)
		for i := 0; i < z.Count; i++ {
			if z.Values[i] >= 0 {
				y := math.Sqrt(z.Values[i])
				s.push(y + yToX)
				s.push(-y + yToX)
			}
		}
		return s
	}

	m := Cubic(8, 8*p, 2*p*p-8*r, -q*q)
	if m.Count == 0 {
		return s
	}
	mv := m.Values[0]
	if mv == 0 {
		return s
	}

	k0 := math.Sqrt(2 * mv)
	k1 := -k0
	n0 := -2 * (p + mv + q/k0)
	n1 := -2 * (p + mv + q/k1)

	if n0 >= 0 {
		sq := math.Sqrt(n0)
		s.push((k0+sq)/2 + yToX)
		s.push((k0-sq)/2 + yToX)
	}
	if n1 >= 0 {
		sq := math.Sqrt(n1)
		s.push((k1+sq)/2 + yToX)
		s.push((k1-sq)/2 + yToX)
	}
	return s
}

// UniqueRoots collapses a Set's entries that lie within mergeEps of one
// another, returning a new Set with duplicates removed. Order among
// surviving roots is not guaranteed to match the input order.
func UniqueRoots(in Set) Set {
	var out Set
	for i := 0; i < in.Count; i++ {
		dup := false
		for j := 0; j < out.Count; j++ {
			if math.Abs(in.Values[i]-out.Values[j]) < mergeEps {
				dup = true
				break
			}
		}
		if !dup {
			out.push(in.Values[i])
		}
	}
	return out
}
