// Package label implements the per-node label container that backs the
// functional-Pareto Dijkstra/A* family: every node keeps an unsettled
// heap (ordered by key) and a settled list, and the container maintains
// the invariant that the unsettled heap's head is never dominated by
// anything already settled at that node.
package label

import (
	"container/heap"

	"github.com/wattpath/evroute/dominance"
	"github.com/wattpath/evroute/piecewise"
)

// Entry is one functional-Pareto label: a cost curve reachable at some
// node, plus enough parent-pointer bookkeeping to reconstruct a path.
type Entry struct {
	Key          float64
	Cost         piecewise.LimitedFunction
	Parent       int
	ParentEntry  int
	ChargedHere  bool // true if this label's cost already includes a charging stop at its node
}

// Potentials supplies the per-node heuristic used to turn a label's raw
// cost into a search key: key(v) = cost.MinX + h(v).
type Potentials interface {
	H(v int) int64
}

type heapEntries []Entry

func (h heapEntries) Len() int            { return len(h) }
func (h heapEntries) Less(i, j int) bool  { return h[i].Key < h[j].Key }
func (h heapEntries) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *heapEntries) Push(x interface{}) { *h = append(*h, x.(Entry)) }
func (h *heapEntries) Pop() interface{} {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}

// Container holds the unsettled/settled label lists for every node in a
// graph of a fixed size.
type Container struct {
	unsettled []heapEntries
	settled   [][]Entry
	policy    dominance.Functional
}

// NewContainer allocates a label container for numNodes nodes.
func NewContainer(numNodes int, policy dominance.Functional) *Container {
	return &Container{
		unsettled: make([]heapEntries, numNodes),
		settled:   make([][]Entry, numNodes),
		policy:    policy,
	}
}

// Empty reports whether node v has no unsettled labels.
func (c *Container) Empty(v int) bool { return len(c.unsettled[v]) == 0 }

// Min returns the unsettled label with the smallest key at v. The
// caller must check !Empty(v) first.
func (c *Container) Min(v int) Entry { return c.unsettled[v][0] }

// Settled returns every settled label at v, in settlement order.
func (c *Container) Settled(v int) []Entry { return c.settled[v] }

// settledCosts adapts Settled(v) to the plain PiecewiseFunction-of-cost
// view dominance.Functional expects; settled labels compare by cost
// only.
func (c *Container) settledCosts(v int) []piecewise.PiecewiseFunction {
	out := make([]piecewise.PiecewiseFunction, 0, len(c.settled[v]))
	for _, e := range c.settled[v] {
		out = append(out, piecewise.NewPiecewise([]piecewise.LimitedFunction{e.Cost}))
	}
	return out
}

// Push inserts a new unsettled label at v, reports whether the node's
// minimum key changed, and re-establishes the undominated-minimum
// invariant if so. entry.Key must already reflect potentials.H(v).
func (c *Container) Push(v int, entry Entry, potentials Potentials) bool {
	h := &c.unsettled[v]
	modifiedMin := true

	if len(*h) > 0 {
		oldKey := (*h)[0].Key
		headDominates := c.policy.Dominates(
			piecewise.NewPiecewise([]piecewise.LimitedFunction{(*h)[0].Cost}),
			entry.Cost,
		)
		if headDominates {
			return false
		}
		heap.Push(h, entry)
		modifiedMin = (*h)[0].Key != oldKey
	} else {
		heap.Push(h, entry)
	}

	if modifiedMin {
		c.ensureUndominatedMinimum(v, potentials)
	}
	return modifiedMin
}

// Pop moves v's unsettled head to its settled list and restores the
// undominated-minimum invariant, returning the newly settled entry and
// its index within Settled(v).
func (c *Container) Pop(v int, potentials Potentials) (Entry, int) {
	h := &c.unsettled[v]
	top := heap.Pop(h).(Entry)
	idx := len(c.settled[v])
	c.settled[v] = append(c.settled[v], top)
	c.ensureUndominatedMinimum(v, potentials)
	return top, idx
}

// Dominated reports whether candidate is already dominated by any
// settled label at v.
func (c *Container) Dominated(v int, candidate piecewise.LimitedFunction) bool {
	for _, f := range c.settledCosts(v) {
		if c.policy.Dominates(f, candidate) {
			return true
		}
	}
	return false
}

// ensureUndominatedMinimum repeatedly re-checks the unsettled heap's
// head against every settled label at v: a fully dominated head is
// dropped, a partially dominated head has its domain clipped and key
// recomputed (sifting down if the key increased), and an undominated
// head stops the loop.
func (c *Container) ensureUndominatedMinimum(v int, potentials Potentials) {
	h := &c.unsettled[v]
	for len(*h) > 0 {
		current := (*h)[0]
		oldKey := current.Key
		clipped, dominated, modified := c.policy.ClipDominated(c.settledCosts(v), current.Cost)
		if dominated {
			heap.Pop(h)
			continue
		}
		if !modified {
			return
		}

		current.Cost = clipped
		current.Key = clipped.MinX + float64(potentials.H(v))
		(*h)[0] = current
		heap.Fix(h, 0)
		if current.Key <= oldKey {
			return
		}
	}
}
