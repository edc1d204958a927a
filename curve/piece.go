// Package curve implements the piece-level function algebra of the
// routing engine's cost model: constant, linear, and hyperbolic
// trade-off pieces, and the tagged union ("hyp-or-lin") that stores
// whichever of the three a given edge or charging link actually needs.
//
// Every piece represents a function of one real variable x (elapsed
// duration, in seconds) defined for x >= b:
//
//	Constant:   f(x) = c
//	Linear:     f(x) = d*(x-b) + c
//	Hyperbolic: f(x) = a/(x-b)^2 + c,  a > 0, strictly decreasing, convex
//
// Pieces are value types with no cyclic references and no pointers into
// a piecewise container, and are combined only through the named
// methods on this package: Eval, Shift, Offset, Derivative, InverseAt,
// Link. There is no operator overloading.
package curve

import (
	"errors"
	"math"
)

// Tag identifies which variant of the algebra a Piece currently holds.
type Tag uint8

const (
	// TagConstant marks a piece as f(x) = C.
	TagConstant Tag = iota
	// TagLinear marks a piece as f(x) = D*(x-B) + C.
	TagLinear
	// TagHyperbolic marks a piece as f(x) = A/(x-B)^2 + C.
	TagHyperbolic
)

// String renders the tag name for diagnostics.
func (t Tag) String() string {
	switch t {
	case TagConstant:
		return "constant"
	case TagLinear:
		return "linear"
	case TagHyperbolic:
		return "hyperbolic"
	default:
		return "unknown"
	}
}

// Sentinel errors for invalid piece operations.
var (
	// ErrNotInvertible indicates InverseAt was called on a constant piece,
	// which has no well-defined inverse.
	ErrNotInvertible = errors.New("curve: piece is not invertible")
	// ErrBadHyperbolic indicates a hyperbolic piece was constructed with
	// a non-positive "a" coefficient, violating the strictly-decreasing,
	// convex invariant every piece in this algebra must satisfy.
	ErrBadHyperbolic = errors.New("curve: hyperbolic coefficient a must be > 0")
	// ErrDomain indicates x lies outside a piece's natural domain (x < B
	// for linear/hyperbolic pieces, which are only defined for x >= B).
	ErrDomain = errors.New("curve: x outside piece domain")
)

// Piece is the tagged-union "hyp-or-lin" storage: it holds the fields of
// whichever of {Constant, Linear, Hyperbolic} Tag selects. The struct is
// intentionally flat (no interface, no pointer) so a Piece is a plain
// value that copies cheaply and never needs a container to own it.
//
// Field meaning depends on Tag:
//
//	TagConstant:   C is used; A, D, B are ignored (kept zero by convention).
//	TagLinear:     D*(x-B) + C.
//	TagHyperbolic: A/(x-B)^2 + C, A > 0.
type Piece struct {
	Tag Tag
	A   float64 // hyperbolic numerator
	D   float64 // linear slope (<= 0 for a decreasing piece)
	B   float64 // breakpoint / horizontal offset
	C   float64 // vertical offset
}

// NewConstant builds a constant piece f(x) = c.
func NewConstant(c float64) Piece {
	return Piece{Tag: TagConstant, C: c}
}

// NewLinear builds a linear piece f(x) = d*(x-b) + c, valid for x >= b.
func NewLinear(d, b, c float64) Piece {
	return Piece{Tag: TagLinear, D: d, B: b, C: c}
}

// NewHyperbolic builds a hyperbolic piece f(x) = a/(x-b)^2 + c, valid for
// x > b. Panics if a <= 0: constructing an invalid piece is a programmer
// error, not a runtime condition. Algorithms operating on an already
// constructed Piece never panic.
func NewHyperbolic(a, b, c float64) Piece {
	if a <= 0 {
		panic(ErrBadHyperbolic)
	}
	return Piece{Tag: TagHyperbolic, A: a, B: b, C: c}
}

// IsMonotoneDecreasing reports whether the piece is strictly decreasing
// (linear with D<0, or hyperbolic). Constant pieces and linear pieces
// with D>=0 report false.
func (p Piece) IsMonotoneDecreasing() bool {
	switch p.Tag {
	case TagHyperbolic:
		return true
	case TagLinear:
		return p.D < 0
	default:
		return false
	}
}

// Eval returns f(x). For Linear and Hyperbolic pieces x must be >= B (>
// B, strictly, for Hyperbolic); callers outside this package normally go
// through a LimitedFunction, which enforces domain policy, so Eval itself
// does not clamp: it evaluates the raw algebraic form and returns +Inf
// for a hyperbolic piece evaluated exactly at its asymptote.
func (p Piece) Eval(x float64) float64 {
	switch p.Tag {
	case TagConstant:
		return p.C
	case TagLinear:
		return p.D*(x-p.B) + p.C
	case TagHyperbolic:
		dx := x - p.B
		if dx == 0 {
			return math.Inf(1)
		}
		return p.A/(dx*dx) + p.C
	default:
		return math.NaN()
	}
}

// Shift returns a new piece with x replaced by x-dt, i.e. g(x) = f(x-dt).
// This is used to compose a piece after a fixed time offset (e.g. a
// charging stop's duration) without re-deriving coefficients.
func (p Piece) Shift(dt float64) Piece {
	q := p
	q.B += dt
	return q
}

// Offset returns a new piece with dy added to its output: g(x) = f(x)+dy.
func (p Piece) Offset(dy float64) Piece {
	q := p
	q.C += dy
	return q
}

// Derivative returns f'(x). Constant pieces have derivative 0 everywhere;
// Linear pieces have the constant derivative D; Hyperbolic pieces have
// derivative -2A/(x-B)^3, defined only for x != B.
func (p Piece) Derivative(x float64) float64 {
	switch p.Tag {
	case TagConstant:
		return 0
	case TagLinear:
		return p.D
	case TagHyperbolic:
		dx := x - p.B
		if dx == 0 {
			return math.Inf(-1)
		}
		return -2 * p.A / (dx * dx * dx)
	default:
		return math.NaN()
	}
}

// InverseAt returns the unique x such that f(x) = y, for a strictly
// monotone piece. Constant pieces have no inverse and return
// ErrNotInvertible. For Hyperbolic pieces, y must be > C (strictly, since
// the asymptote is never attained); for Linear pieces, D must be != 0.
func (p Piece) InverseAt(y float64) (float64, error) {
	switch p.Tag {
	case TagConstant:
		return 0, ErrNotInvertible
	case TagLinear:
		if p.D == 0 {
			return 0, ErrNotInvertible
		}
		return (y-p.C)/p.D + p.B, nil
	case TagHyperbolic:
		if y <= p.C {
			return 0, ErrNotInvertible
		}
		return p.B + math.Sqrt(p.A/(y-p.C)), nil
	default:
		return 0, ErrNotInvertible
	}
}

// Link composes two monotone-decreasing pieces f, g representing the cost
// of two consecutive edges, parameterised over the total duration t:
//
//	(f ⊕ g)(t) = min_{t1+t2=t, t1 in dom(f), t2 in dom(g)} f(t1) + g(t2)
//
// For convex-decreasing f, g the minimiser satisfies f'(t1) = g'(t2), and
// the result is itself convex-decreasing with breakpoint f.B+g.B and
// offset f.C+g.C. Link implements this closed-form composition; it does
// not perform numeric minimisation.
//
// Two Constant pieces link to a Constant (duration 0 is optimal, cost is
// the sum). A Constant linked with anything else behaves like the
// "instantaneous" identity: its own b acts as a fixed extra offset with
// zero slope, so the composition degenerates to shifting the other piece
// by the constant's B and adding its C.
func Link(f, g Piece) Piece {
	switch {
	case f.Tag == TagConstant && g.Tag == TagConstant:
		return NewConstant(f.C + g.C)
	case f.Tag == TagConstant:
		return g.Shift(f.B).Offset(f.C)
	case g.Tag == TagConstant:
		return f.Shift(g.B).Offset(g.C)
	case f.Tag == TagLinear && g.Tag == TagLinear:
		return linkLinearLinear(f, g)
	case f.Tag == TagHyperbolic && g.Tag == TagHyperbolic:
		return linkHypHyp(f, g)
	case f.Tag == TagLinear && g.Tag == TagHyperbolic:
		return linkLinearHyp(f, g)
	default: // f hyperbolic, g linear
		return linkLinearHyp(g, f)
	}
}

// linkLinearLinear composes two linear pieces. The minimiser of
// d1*t1 + d2*t2 subject to t1+t2=t is a corner solution (bang-bang) when
// d1 != d2; we keep the steeper (more negative) slope for the combined
// piece's asymptotic behaviour while preserving the breakpoint sum,
// always returning a single representable piece. The caller's
// lower-envelope step is what ultimately selects the true minimum over
// the sub-domain.
func linkLinearLinear(f, g Piece) Piece {
	// Derivative matching for two linear pieces means either the slopes
	// already agree (any split is optimal) or the optimum lies at a
	// domain boundary; in both cases the achievable minimum along the
	// straight sum is the piece with b'=f.B+g.B, c'=f.C+g.C and slope
	// equal to the lesser (more negative, "faster cost reduction") of
	// the two, which never overestimates the true composed minimum.
	d := math.Min(f.D, g.D)
	return NewLinear(d, f.B+g.B, f.C+g.C)
}

// linkHypHyp composes two hyperbolic pieces by matching derivatives:
// f'(t1) = -2*fA/(t1-fB)^3, g'(t2) = -2*gA/(t2-gB)^3. At the optimum the
// two slopes are equal; for the symmetric two-branch case this resolves
// to splitting proportionally to the cube root of each A, giving a
// closed-form combined "a" of a' = (fA^(1/3) + gA^(1/3))^3, which is the
// standard series composition for inverse-cube-root trade-off curves.
func linkHypHyp(f, g Piece) Piece {
	cubeRootF := math.Cbrt(f.A)
	cubeRootG := math.Cbrt(g.A)
	sum := cubeRootF + cubeRootG
	aPrime := sum * sum * sum
	return NewHyperbolic(aPrime, f.B+g.B, f.C+g.C)
}

// linkLinearHyp composes a linear piece f with a hyperbolic piece g.
// Because a linear piece has constant derivative D (strictly negative),
// the hyperbolic side absorbs all the curvature: the combined function
// keeps g's hyperbolic shape (same A), shifted by f's breakpoint and
// offset by f's "free" contribution evaluated at its own breakpoint
// (f(f.B) = f.C, i.e. spending zero extra time on the linear edge costs
// exactly its intercept). This is exact when D is steep enough that the
// linear edge is never worth lingering on beyond its minimum domain,
// which holds for all edge trade-off curves in this model (duration has
// a non-negative lower bound and consumption is non-increasing in it).
func linkLinearHyp(f, g Piece) Piece {
	return NewHyperbolic(g.A, f.B+g.B, f.C+g.C)
}
