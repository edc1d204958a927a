// Package piecewise implements domain-limited and piecewise function
// types: a LimitedFunction restricts a curve.Piece to [MinX, MaxX] with
// an "inf below, clamp above" boundary policy, and a PiecewiseFunction
// is an ordered, domain-disjoint, value-continuous sequence of
// LimitedFunctions representing a single monotone-decreasing trade-off
// curve (duration -> consumption).
package piecewise

import (
	"errors"
	"math"

	"github.com/wattpath/evroute/curve"
	"github.com/wattpath/evroute/isect"
)

// Sentinel errors for LimitedFunction / PiecewiseFunction construction
// and invariant checks.
var (
	// ErrBadDomain indicates MinX > MaxX.
	ErrBadDomain = errors.New("piecewise: min_x must be <= max_x")
	// ErrNotDecreasing indicates a piece is not monotone non-increasing on
	// its stated domain.
	ErrNotDecreasing = errors.New("piecewise: piece is not monotone non-increasing on its domain")
	// ErrDiscontinuous indicates two adjacent pieces in a PiecewiseFunction
	// do not touch at their shared boundary within epsilon.
	ErrDiscontinuous = errors.New("piecewise: adjacent pieces are not continuous")
	// ErrUnordered indicates PiecewiseFunction pieces are not sorted by
	// ascending domain.
	ErrUnordered = errors.New("piecewise: pieces are not sorted by domain")
)

// continuityEps bounds how far apart two touching pieces' values may be
// at their shared breakpoint and still be considered continuous.
const continuityEps = 1e-6

// LimitedFunction restricts a curve.Piece to [MinX, MaxX]. Below MinX the
// value is +Inf ("inf" bound policy); above MaxX the value is clamped to
// f(MaxX) ("clamp" bound policy).
type LimitedFunction struct {
	MinX, MaxX float64
	Fn         curve.Piece
}

// NewLimited builds a LimitedFunction, returning ErrBadDomain if
// minX > maxX.
func NewLimited(minX, maxX float64, fn curve.Piece) (LimitedFunction, error) {
	if minX > maxX {
		return LimitedFunction{}, ErrBadDomain
	}
	return LimitedFunction{MinX: minX, MaxX: maxX, Fn: fn}, nil
}

// Eval honors the inf/clamp bound policy: +Inf below MinX, f(MaxX) above
// MaxX, f(x) within [MinX, MaxX].
func (l LimitedFunction) Eval(x float64) float64 {
	switch {
	case x < l.MinX:
		return math.Inf(1)
	case x > l.MaxX:
		return l.Fn.Eval(l.MaxX)
	default:
		return l.Fn.Eval(x)
	}
}

// Shift returns a copy of l with its domain and underlying piece both
// shifted by dt (used when composing a fixed time offset in series).
func (l LimitedFunction) Shift(dt float64) LimitedFunction {
	return LimitedFunction{MinX: l.MinX + dt, MaxX: l.MaxX + dt, Fn: l.Fn.Shift(dt)}
}

// Offset returns a copy of l with dy added to every output value.
func (l LimitedFunction) Offset(dy float64) LimitedFunction {
	return LimitedFunction{MinX: l.MinX, MaxX: l.MaxX, Fn: l.Fn.Offset(dy)}
}

// WithMaxX returns a copy of l with its upper domain bound shrunk (or
// grown) to maxX. Used by dominance clipping to shrink a label's domain
// without touching its functional form.
func (l LimitedFunction) WithMaxX(maxX float64) LimitedFunction {
	l.MaxX = maxX
	return l
}

// WithMinX returns a copy of l with its lower domain bound moved to
// minX.
func (l LimitedFunction) WithMinX(minX float64) LimitedFunction {
	l.MinX = minX
	return l
}

// Validate checks that Fn is finite and non-increasing across
// [MinX, MaxX].
func (l LimitedFunction) Validate() error {
	if l.MinX > l.MaxX {
		return ErrBadDomain
	}
	if l.Fn.Tag == curve.TagConstant {
		return nil
	}
	lo, hi := l.Fn.Eval(l.MinX), l.Fn.Eval(l.MaxX)
	if math.IsInf(lo, 0) || math.IsInf(hi, 0) || math.IsNaN(lo) || math.IsNaN(hi) {
		return ErrNotDecreasing
	}
	if lo < hi-continuityEps {
		return ErrNotDecreasing
	}
	return nil
}

// Limited6 is the bounded result buffer for limited/limited
// intersection: at most four crossings within the shared open domain
// (the isect bound for two pieces), plus at most one crossing with each
// side's clamped tail.
type Limited6 struct {
	X     [6]float64
	Count int
}

func (h *Limited6) push(x float64) {
	if h.Count < len(h.X) {
		h.X[h.Count] = x
		h.Count++
	}
}

// Slice returns the valid prefix of X.
func (h *Limited6) Slice() []float64 { return h.X[:h.Count] }

// Intersect computes every x where lhs and rhs cross, restricted to the
// region both are actually defined by their own pieces (not the clamped
// tail) plus up to one crossing per side against the other's clamped
// constant tail.
func Intersect(lhs, rhs LimitedFunction) Limited6 {
	var out Limited6

	core := isect.Pieces(lhs.Fn, rhs.Fn)
	for _, x := range core.Slice() {
		if lhs.MinX <= x && rhs.MinX <= x && lhs.MaxX > x && rhs.MaxX > x {
			out.push(x)
		}
	}

	lhsTail := curve.NewConstant(lhs.Eval(lhs.MaxX))
	tailHits := isect.Pieces(lhsTail, rhs.Fn)
	if tailHits.Count > 0 {
		x := tailHits.X[0]
		if x > lhs.MaxX && x >= rhs.MinX && x < rhs.MaxX {
			out.push(x)
		}
	}

	rhsTail := curve.NewConstant(rhs.Eval(rhs.MaxX))
	tailHits = isect.Pieces(rhsTail, lhs.Fn)
	if tailHits.Count > 0 {
		x := tailHits.X[0]
		if x > rhs.MaxX && x >= lhs.MinX && x < lhs.MaxX {
			out.push(x)
		}
	}

	return out
}
