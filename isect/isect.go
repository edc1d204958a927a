// Package isect implements pairwise intersection of the piece-level
// function algebra (curve.Piece).
//
// Each exported function reduces the intersection problem to a
// polynomial of the appropriate degree, solves it with roots, and
// filters the result to the region where both pieces are actually valid
// (x > max(lhs.B, rhs.B) + domainEps). Results are appended to a small,
// caller-owned array, never allocated on the heap.
package isect

import (
	"math"

	"github.com/wattpath/evroute/curve"
	"github.com/wattpath/evroute/roots"
)

// domainEps is the minimum distance past max(lhs.B, rhs.B) an
// intersection must lie at to be considered valid.
const domainEps = 1e-3

// maxHits bounds the number of intersection points two pieces can share:
// two hyperbolic pieces intersect at most 4 times (quartic), so 4 is
// sufficient for every piece/piece pair.
const maxHits = 4

// Hits is a small, fixed-capacity result buffer for piece intersection.
type Hits struct {
	X     [maxHits]float64
	Count int
}

func (h *Hits) push(x float64) {
	if h.Count < maxHits {
		h.X[h.Count] = x
		h.Count++
	}
}

// Slice returns the valid prefix of X as a slice (aliases the array).
func (h *Hits) Slice() []float64 { return h.X[:h.Count] }

// Pieces dispatches on the Tag of lhs and rhs and returns their
// intersection point(s), x > max(lhs.B, rhs.B)+domainEps.
func Pieces(lhs, rhs curve.Piece) Hits {
	switch {
	case lhs.Tag == curve.TagLinear && rhs.Tag == curve.TagLinear:
		return linearLinear(lhs, rhs)
	case lhs.Tag == curve.TagLinear && rhs.Tag == curve.TagHyperbolic:
		return linearHyperbolic(lhs, rhs)
	case lhs.Tag == curve.TagHyperbolic && rhs.Tag == curve.TagLinear:
		return linearHyperbolic(rhs, lhs)
	case lhs.Tag == curve.TagHyperbolic && rhs.Tag == curve.TagHyperbolic:
		return hyperbolicHyperbolic(lhs, rhs)
	case lhs.Tag == curve.TagConstant && rhs.Tag == curve.TagLinear:
		return constantLinear(lhs, rhs)
	case lhs.Tag == curve.TagLinear && rhs.Tag == curve.TagConstant:
		return constantLinear(rhs, lhs)
	case lhs.Tag == curve.TagConstant && rhs.Tag == curve.TagHyperbolic:
		return constantHyperbolic(lhs, rhs)
	case lhs.Tag == curve.TagHyperbolic && rhs.Tag == curve.TagConstant:
		return constantHyperbolic(rhs, lhs)
	default: // both constant
		return Hits{}
	}
}

// linearLinear intersects two linear pieces: d1*(x-b1)+c1 = d2*(x-b2)+c2.
func linearLinear(lhs, rhs curve.Piece) Hits {
	var h Hits
	if rhs.D == lhs.D {
		return h
	}
	x := (lhs.C - lhs.D*lhs.B - rhs.C + rhs.D*rhs.B) / (rhs.D - lhs.D)
	if x > math.Max(lhs.B, rhs.B)+domainEps {
		h.push(x)
	}
	return h
}

// linearHyperbolic intersects a linear piece lhs with a hyperbolic piece
// rhs: lhs.D*(x-lhs.B)+lhs.C = rhs.A/(x-rhs.B)^2+rhs.C. Substituting
// z = x - rhs.B reduces this to a cubic in z (at most two roots lie on
// the positive branch).
func linearHyperbolic(lhs, rhs curve.Piece) Hits {
	var h Hits
	if lhs.D != 0 {
		zs := roots.UniqueRoots(roots.Cubic(
			-lhs.D,
			rhs.C-lhs.C+lhs.B*lhs.D-lhs.D*rhs.B,
			0,
			rhs.A,
		))
		xMin := math.Max(lhs.B, rhs.B) + domainEps
		for i := 0; i < zs.Count; i++ {
			x := zs.Values[i] + rhs.B
			if x > xMin {
				h.push(x)
			}
		}
	} else if math.Abs(lhs.C-rhs.C) > domainEps {
		diff := lhs.C - rhs.C
		if diff != 0 && rhs.A/diff > 0 {
			x := rhs.B + math.Sqrt(rhs.A/diff)
			if x > math.Max(lhs.B, rhs.B)+domainEps {
				h.push(x)
			}
		}
	}
	return h
}

// hyperbolicHyperbolic intersects two hyperbolic pieces by clearing
// denominators into a quartic (or, when the constant offsets coincide, a
// quadratic) in x.
func hyperbolicHyperbolic(lhs, rhs curve.Piece) Hits {
	var h Hits

	a1, b1, c1 := lhs.A, lhs.B, lhs.C
	a2, b2, c2 := rhs.A, rhs.B, rhs.C

	dc := c1 - c2
	da := a1 - a2
	bSum := b1 + b2
	b1b1 := b1 * b1
	b2b2 := b2 * b2
	b1b2 := b1 * b2

	xMin := math.Max(b1, b2) + domainEps

	if dc != 0 {
		a1dc := a1 / dc
		a2dc := a2 / dc

		a := 1.0
		b := -2 * bSum
		c := a1dc - a2dc + b1b1 + 4*b1b2 + b2b2
		d := 2*a2dc*b1 - 2*a1dc*b2 - 2*b1*b2b2 - 2*b2*b1b1
		e := -a2dc*b1b1 + a1dc*b2b2 + b1b1*b2b2

		xs := roots.UniqueRoots(roots.Quartic(a, b, c, d, e))
		for i := 0; i < xs.Count; i++ {
			if xs.Values[i] > xMin {
				h.push(xs.Values[i])
			}
		}
	} else {
		c := da
		d := 2 * (a1*b2 - a2*b1)
		e := a1*b2b2 - a2*b1b1
		xs := roots.UniqueRoots(roots.Quadratic(c, d, e))
		for i := 0; i < xs.Count; i++ {
			if xs.Values[i] > xMin {
				h.push(xs.Values[i])
			}
		}
	}
	return h
}

// constantLinear intersects a constant piece lhs=c with a linear piece:
// c = d*(x-b)+c2.
func constantLinear(lhs, rhs curve.Piece) Hits {
	var h Hits
	if rhs.D == 0 {
		return h
	}
	x := (lhs.C-rhs.C)/rhs.D + rhs.B
	if x > math.Max(lhs.B, rhs.B)+domainEps {
		h.push(x)
	}
	return h
}

// constantHyperbolic intersects a constant piece lhs=c with a
// hyperbolic piece: c = a/(x-b)^2+c2.
func constantHyperbolic(lhs, rhs curve.Piece) Hits {
	var h Hits
	diff := lhs.C - rhs.C
	if diff <= 0 {
		return h
	}
	x := rhs.B + math.Sqrt(rhs.A/diff)
	if x > math.Max(lhs.B, rhs.B)+domainEps {
		h.push(x)
	}
	return h
}
