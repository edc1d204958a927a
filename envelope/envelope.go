// Package envelope computes the exact lower envelope (pointwise minimum)
// of a family of piecewise.LimitedFunction values via a Bentley-Ottmann
// style plane sweep.
//
// The sweep processes Begin, End, and Intersection events in x order,
// tie-broken so that End events are handled before Begin before
// Intersection at the same x (avoiding false "still active" overlaps),
// and emits the minimum function's segment each time the active minimum
// changes. The output is a monotone-decreasing piecewise.PiecewiseFunction
// together with, for each emitted piece, the index of the input function
// it was copied from.
package envelope

import (
	"container/heap"
	"math"

	"github.com/wattpath/evroute/curve"
	"github.com/wattpath/evroute/piecewise"
)

// evalEps nudges a sweep position just past a breakpoint so that
// comparisons ("who is smaller just after this x") are well defined even
// when two functions cross exactly at x.
const evalEps = 1e-3

// xEps collapses events that land within this distance of one another on
// the x-axis, preventing zero-width output segments.
const xEps = 1e-5

type eventKind uint8

// Type-rank ordering matters for tie-breaking: End before Begin before
// Intersection at the same x.
const (
	kindEnd eventKind = iota
	kindBegin
	kindIntersection
)

type sweepEvent struct {
	x, y    float64
	kind    eventKind
	i, j    int // i = segment index for Begin/End; i,j = pair for Intersection
}

func (a sweepEvent) less(b sweepEvent) bool {
	if a.x != b.x {
		return a.x < b.x
	}
	if a.kind != b.kind {
		return a.kind < b.kind
	}
	return a.y < b.y
}

func (a sweepEvent) equal(b sweepEvent) bool {
	return a.x == b.x && a.y == b.y && a.kind == b.kind && a.i == b.i && a.j == b.j
}

// eventHeap is a min-heap of sweepEvent ordered by (x, kind, y).
type eventHeap []sweepEvent

func (h eventHeap) Len() int            { return len(h) }
func (h eventHeap) Less(i, j int) bool  { return h[i].less(h[j]) }
func (h eventHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *eventHeap) Push(x interface{}) { *h = append(*h, x.(sweepEvent)) }
func (h *eventHeap) Pop() interface{} {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}

// Result is the output of Lower: a monotone-decreasing piecewise
// function together with, per emitted piece, the index into the input
// slice it was sourced from.
type Result struct {
	Function piecewise.PiecewiseFunction
	Sources  []int
}

// Lower computes the exact lower envelope of fns. Functions with an empty
// domain (MinX == MaxX and constant) are still handled correctly; an
// empty input returns an empty Result.
func Lower(fns []piecewise.LimitedFunction) Result {
	n := len(fns)
	var res Result
	if n == 0 {
		return res
	}

	events := &eventHeap{}
	heap.Init(events)
	for i, f := range fns {
		heap.Push(events, sweepEvent{x: f.MinX, y: f.Eval(f.MinX), kind: kindBegin, i: i})
	}

	checked := make([]bool, n*n)
	active := make(map[int]bool, n)

	currentXVal := math.Inf(-1)
	prevX := math.Inf(-1)
	minIndex := n   // sentinel: "no minimum yet"
	prevMinIndex := n

	insert := func(i, j int) {
		if checked[i*n+j] {
			return
		}
		checked[i*n+j] = true
		checked[j*n+i] = true

		hits := piecewise.Intersect(fns[i], fns[j])
		for _, x := range hits.Slice() {
			if x >= currentXVal {
				heap.Push(events, sweepEvent{x: x, y: fns[i].Eval(x), kind: kindIntersection, i: i, j: j})
			}
		}
	}

	outputMinimum := func(minX, maxX float64, idx int) (piecewise.LimitedFunction, int) {
		f := fns[idx]
		if minX > f.MaxX {
			lf, _ := piecewise.NewLimited(minX, maxX, curve.NewConstant(f.Eval(minX)))
			return lf, idx
		}
		if maxX > f.MaxX {
			maxX = f.MaxX
		}
		lf, _ := piecewise.NewLimited(minX, maxX, f.Fn)
		return lf, idx
	}

	for events.Len() > 0 {
		event := (*events)[0]
		for events.Len() > 0 && (*events)[0].equal(event) {
			heap.Pop(events)
		}

		newMinIndex := minIndex

		switch event.kind {
		case kindIntersection:
			currentXVal = event.x
			if event.i == minIndex {
				minY := fns[minIndex].Eval(currentXVal + evalEps)
				newY := fns[event.j].Eval(currentXVal + evalEps)
				if newY < minY {
					newMinIndex = event.j
				}
			} else if event.j == minIndex {
				minY := fns[minIndex].Eval(currentXVal + evalEps)
				newY := fns[event.i].Eval(currentXVal + evalEps)
				if newY < minY {
					newMinIndex = event.i
				}
			}
		case kindBegin:
			currentXVal = event.x
			idx := event.i
			active[idx] = true
			heap.Push(events, sweepEvent{x: fns[idx].MaxX, y: fns[idx].Eval(fns[idx].MaxX), kind: kindEnd, i: idx})

			if minIndex < n {
				if fns[idx].Eval(currentXVal+evalEps) < fns[minIndex].Eval(currentXVal+evalEps) {
					newMinIndex = idx
				} else {
					insert(minIndex, idx)
				}
			} else {
				newMinIndex = idx
			}
		default: // kindEnd
			currentXVal = event.x
			delete(active, event.i)
		}

		if minIndex != newMinIndex {
			minIndex = newMinIndex
			for other := range active {
				if other != minIndex {
					insert(minIndex, other)
				}
			}
		}

		if events.Len() == 0 || (*events)[0].x > currentXVal+xEps {
			if prevMinIndex != minIndex {
				if prevX+xEps < currentXVal {
					if prevMinIndex < n {
						lf, idx := outputMinimum(prevX, currentXVal, prevMinIndex)
						res.Function.Append(lf)
						res.Sources = append(res.Sources, idx)
					}
					prevMinIndex = minIndex
					prevX = currentXVal
				}
			}
		}
	}

	lf, idx := outputMinimum(prevX, math.Inf(1), minIndex)
	res.Function.Append(lf)
	res.Sources = append(res.Sources, idx)

	return res
}
