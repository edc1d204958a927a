package piecewise

import "math"

// PiecewiseFunction is an ordered, domain-disjoint sequence of
// LimitedFunctions representing a single monotone-decreasing trade-off
// curve: piece[i].MaxX == piece[i+1].MinX and the values agree at that
// boundary within continuityEps.
//
// Append reuses the backing array's spare capacity. ClampAbove does not
// reuse it: it returns a function with a newly allocated backing array
// and leaves pf unchanged, and ShrinkToFit replaces Pieces with an
// exactly sized copy.
type PiecewiseFunction struct {
	Pieces []LimitedFunction
}

// NewPiecewise wraps a pre-sorted slice of LimitedFunctions. Callers
// constructing a PiecewiseFunction from a lower-envelope computation
// already have pieces in domain order; Validate should be called before
// trusting the result in production code paths.
func NewPiecewise(pieces []LimitedFunction) PiecewiseFunction {
	return PiecewiseFunction{Pieces: pieces}
}

// MinX returns the lower bound of the whole piecewise domain, i.e. the
// first piece's MinX. Returns +Inf for an empty function (nothing is
// reachable).
func (pf PiecewiseFunction) MinX() float64 {
	if len(pf.Pieces) == 0 {
		return math.Inf(1)
	}
	return pf.Pieces[0].MinX
}

// MinY returns the value at MinX, the best (lowest) achievable cost,
// used directly as an admissible lower bound when ordering labels.
func (pf PiecewiseFunction) MinY() float64 {
	if len(pf.Pieces) == 0 {
		return math.Inf(1)
	}
	return pf.Pieces[0].Eval(pf.Pieces[0].MinX)
}

// Eval finds the piece covering x (pieces are sorted and domain-disjoint,
// so binary search applies) and evaluates it. Returns +Inf if x is below
// every piece's domain and the last piece's clamped value if x is above
// every piece (matching each LimitedFunction's own bound policy applied
// at the ends of the whole chain).
func (pf PiecewiseFunction) Eval(x float64) float64 {
	if len(pf.Pieces) == 0 {
		return math.Inf(1)
	}
	lo, hi := 0, len(pf.Pieces)-1
	if x < pf.Pieces[0].MinX {
		return math.Inf(1)
	}
	if x >= pf.Pieces[hi].MaxX {
		return pf.Pieces[hi].Eval(x)
	}
	for lo < hi {
		mid := (lo + hi) / 2
		if x < pf.Pieces[mid].MaxX {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return pf.Pieces[lo].Eval(x)
}

// Validate checks the PiecewiseFunction invariants: pieces sorted by
// domain, touching (piece[i].MaxX == piece[i+1].MinX), continuous in
// value at the touch point, and each piece individually valid.
func (pf PiecewiseFunction) Validate() error {
	for i, p := range pf.Pieces {
		if err := p.Validate(); err != nil {
			return err
		}
		if i == 0 {
			continue
		}
		prev := pf.Pieces[i-1]
		if prev.MaxX > p.MinX {
			return ErrUnordered
		}
		if prev.MaxX != p.MinX {
			return ErrUnordered
		}
		if abs(prev.Eval(prev.MaxX)-p.Eval(p.MinX)) > continuityEps {
			return ErrDiscontinuous
		}
	}
	return nil
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// ClampAbove returns a new PiecewiseFunction equal to pointwise
// min(pf, cap) with any piece (or sub-piece) where the value would
// exceed cap removed or truncated, used to enforce a battery-capacity
// bound on a label's cost curve. Because the function is monotone
// decreasing, once a piece's value at MinX is <= cap every later piece
// also satisfies the bound, so this is a single forward scan with at
// most one partial piece.
func (pf PiecewiseFunction) ClampAbove(cap float64) PiecewiseFunction {
	out := make([]LimitedFunction, 0, len(pf.Pieces))
	for _, p := range pf.Pieces {
		vMin := p.Eval(p.MinX)
		if vMin > cap {
			// Entire piece exceeds the cap; decreasing means later
			// pieces might still dip under it, so keep scanning instead
			// of stopping here.
			vMax := p.Eval(p.MaxX)
			if vMax > cap {
				continue
			}
			// Partial piece: find the sub-domain where p(x) <= cap.
			if x, err := p.Fn.InverseAt(cap); err == nil && x >= p.MinX && x <= p.MaxX {
				out = append(out, p.WithMinX(x))
			}
			continue
		}
		out = append(out, p)
	}
	return PiecewiseFunction{Pieces: out}
}

// Append adds a LimitedFunction to the end of the piece list, reusing
// the backing array's spare capacity when available.
func (pf *PiecewiseFunction) Append(p LimitedFunction) {
	pf.Pieces = append(pf.Pieces, p)
}

// ShrinkToFit drops any backing-array slack beyond the current piece
// count once the function's pieces are no longer expected to grow.
func (pf *PiecewiseFunction) ShrinkToFit() {
	if cap(pf.Pieces) > len(pf.Pieces) {
		fit := make([]LimitedFunction, len(pf.Pieces))
		copy(fit, pf.Pieces)
		pf.Pieces = fit
	}
}

// Clone returns a deep copy safe to mutate independently of pf (used
// when a label's cost must be duplicated across two successor labels,
// e.g. a charging and a non-charging continuation of the same label).
func (pf PiecewiseFunction) Clone() PiecewiseFunction {
	cp := make([]LimitedFunction, len(pf.Pieces))
	copy(cp, pf.Pieces)
	return PiecewiseFunction{Pieces: cp}
}
