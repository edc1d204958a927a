// Package dominance implements the three cost-ordering policies the
// label-setting search chooses between: scalar, bi-criteria epsilon-lex,
// and functional Pareto with domain clipping.
package dominance

import (
	"github.com/wattpath/evroute/piecewise"
)

// Scalar compares plain integer costs: a dominates b iff a <= b.
type Scalar struct{}

// Dominates reports whether a <= b.
func (Scalar) Dominates(a, b int64) bool { return a <= b }

// ClipDominated checks whether any cost in settled dominates candidate.
// A scalar candidate is a single point, so clipping never applies: the
// second return is always false.
func (s Scalar) ClipDominated(settled []int64, candidate int64) (dominated, modified bool) {
	for _, a := range settled {
		if s.Dominates(a, candidate) {
			return true, false
		}
	}
	return false, false
}

// BiCriteria compares (x, y) pairs under an epsilon-relaxed lexical
// Pareto order: (x1,y1) dominates (x2,y2) iff x1 <= x2+epsX and
// y1 <= y2+epsY and at least one of the two is strict beyond its
// epsilon band. Used for the (duration, consumption) MC-Dijkstra cost.
type BiCriteria struct {
	EpsX, EpsY int64
}

// Point is a two-criteria cost.
type Point struct {
	X, Y int64
}

// Dominates reports whether a epsilon-dominates b.
func (bc BiCriteria) Dominates(a, b Point) bool {
	if a.X > b.X+bc.EpsX || a.Y > b.Y+bc.EpsY {
		return false
	}
	return a.X < b.X-bc.EpsX || a.Y < b.Y-bc.EpsY
}

// ClipDominated checks whether any point in settled dominates candidate.
// Point costs cannot be partially clipped, so modified is always false.
func (bc BiCriteria) ClipDominated(settled []Point, candidate Point) (dominated, modified bool) {
	for _, a := range settled {
		if bc.Dominates(a, candidate) {
			return true, false
		}
	}
	return false, false
}

// Functional compares PiecewiseFunction costs (duration -> consumption
// trade-off curves): F dominates G on G's domain if F(x) <= G(x) for
// every x in that domain, within EpsY, with EpsX shifting the
// comparison point.
type Functional struct {
	EpsX, EpsY float64
}

// Dominates reports whether f dominates g everywhere on g's domain.
func (fn Functional) Dominates(f piecewise.PiecewiseFunction, g piecewise.LimitedFunction) bool {
	return fn.coversDomain(f, g.MinX, g.MaxX, g)
}

func (fn Functional) coversDomain(f piecewise.PiecewiseFunction, minX, maxX float64, g piecewise.LimitedFunction) bool {
	if len(f.Pieces) == 0 {
		return false
	}
	for _, x := range sampleBreakpoints(f, g, minX, maxX) {
		if f.Eval(x-fn.EpsX) > g.Eval(x)+fn.EpsY {
			return false
		}
	}
	return true
}

// sampleBreakpoints returns every x in [minX, maxX] where either f or g
// changes piece, since a piecewise-linear/hyperbolic comparison can only
// flip between two such breakpoints.
func sampleBreakpoints(f piecewise.PiecewiseFunction, g piecewise.LimitedFunction, minX, maxX float64) []float64 {
	xs := []float64{minX, maxX}
	for _, p := range f.Pieces {
		if p.MinX > minX && p.MinX < maxX {
			xs = append(xs, p.MinX)
		}
	}
	return xs
}

// ClipDominated implements the functional clip_dominated contract: if
// some F in settled covers candidate's whole domain, it is simply
// dominated. Otherwise this restricts candidate's domain to the
// leftmost sub-region not covered by any F, reporting modified=true
// when that restriction actually shrank the domain. When the
// restriction would make the domain empty, candidate is fully
// dominated after all.
func (fn Functional) ClipDominated(settled []piecewise.PiecewiseFunction, candidate piecewise.LimitedFunction) (clipped piecewise.LimitedFunction, dominated, modified bool) {
	clipped = candidate
	for _, f := range settled {
		if fn.Dominates(f, clipped) {
			return clipped, true, modified
		}
	}

	newMaxX := clipped.MaxX
	for _, f := range settled {
		for _, p := range f.Pieces {
			if p.MinX <= clipped.MinX {
				continue
			}
			if fn.partiallyDominatesFrom(f, clipped, p.MinX) && p.MinX < newMaxX {
				newMaxX = p.MinX
			}
		}
	}
	if newMaxX < clipped.MaxX {
		clipped = clipped.WithMaxX(newMaxX)
		modified = true
		if clipped.MinX >= clipped.MaxX {
			dominated = true
		}
	}
	return clipped, dominated, modified
}

// partiallyDominatesFrom reports whether f dominates g on [from, g.MaxX].
func (fn Functional) partiallyDominatesFrom(f piecewise.PiecewiseFunction, g piecewise.LimitedFunction, from float64) bool {
	return fn.coversDomain(f, from, g.MaxX, g)
}
