package routing

import (
	"github.com/wattpath/evroute/dominance"
	"github.com/wattpath/evroute/label"
	"github.com/wattpath/evroute/piecewise"
	"github.com/wattpath/evroute/pqueue"
	"github.com/wattpath/evroute/rgraph"
)

// StationEnvelope supplies, per charger node, the precomputed lower
// envelope of every "leave with SoC s" option (built once via
// charge.Envelope over charge.ChargeOptions, using a zero-domain
// placeholder approach function so the envelope's domain represents
// charging time measured from local arrival, not from the trip's
// start), rather than recomputing the charging options from scratch on
// every query the way FPCDijkstra does. The envelope's value axis
// (total consumption to reach the target SoC) already doesn't depend
// on the approach taken, per the Link derivation; only the time axis
// needs shifting by a query's actual arrival time before use, which
// relaxStationEnvelope does.
type StationEnvelope interface {
	EnvelopeAt(v int) (piecewise.PiecewiseFunction, bool)
}

// FPCProfileDijkstra is the profile-precomputed variant of FPCDijkstra:
// functionally identical search structure, but charging relaxation
// consults a precomputed per-station envelope instead of recomputing
// Link/ChargeOptions inline, trading per-query flexibility in target
// SoC choice for a cheaper relaxation at query time.
func FPCProfileDijkstra(g *rgraph.FunctionGraph, src, target int, potentials label.Potentials, policy dominance.Functional, epsX float64, stations StationEnvelope) FPResult {
	n := g.NumNodes()
	c := label.NewContainer(n, policy)
	q := pqueue.New(n)

	root := piecewise.LimitedFunction{MinX: 0, MaxX: 0}
	rootEntry := label.Entry{
		Key:    zeroFloor(float64(potentials.H(src))),
		Cost:   root,
		Parent: rgraph.InvalidID,
	}
	c.Push(src, rootEntry, potentials)
	q.Push(src, int64(rootEntry.Key))

	bestTargetKey := float64(-1)
	haveTarget := false

	for q.Len() > 0 {
		entry := q.Pop()
		u := entry.ID
		if haveTarget && float64(entry.Key) > bestTargetKey+epsX {
			break
		}
		if c.Empty(u) {
			continue
		}

		settledLabel, settledIdx := c.Pop(u, potentials)
		syncQueue(q, c, u)

		if u == target {
			haveTarget = true
			if bestTargetKey < 0 || settledLabel.Key < bestTargetKey {
				bestTargetKey = settledLabel.Key
			}
		}

		relaxEdges(g, c, q, potentials, u, settledLabel, settledIdx)
		relaxStationEnvelope(c, q, potentials, stations, u, settledLabel, settledIdx)
	}

	return FPResult{container: c}
}

func relaxStationEnvelope(c *label.Container, q *pqueue.IDQueue, potentials label.Potentials, stations StationEnvelope, u int, settledLabel label.Entry, settledIdx int) {
	if stations == nil {
		return
	}
	env, ok := stations.EnvelopeAt(u)
	if !ok || len(env.Pieces) == 0 {
		return
	}
	for _, piece := range env.Pieces {
		charged := piece.Shift(settledLabel.Cost.MinX)
		if c.Dominated(u, charged) {
			continue
		}
		key := charged.MinX + float64(potentials.H(u))
		newEntry := label.Entry{
			Key:         key,
			Cost:        charged,
			Parent:      u,
			ParentEntry: settledIdx,
			ChargedHere: true,
		}
		c.Push(u, newEntry, potentials)
	}
	syncQueue(q, c, u)
}
