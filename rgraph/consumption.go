package rgraph

import "github.com/wattpath/evroute/fxp"

// ConsumptionFromHeights derives a per-edge energy-consumption weight
// array, indexed the same way g's edge ids are, from a flat baseline
// proportional to travel duration plus an elevation-climb term. Descent
// recovers nothing: regenerative braking is out of scope for this
// engine, so the model is deliberately conservative rather than net
// zero over a round trip. Grounded in the AvgConsumptionStatic turn-cost
// model, parameterised here by heights instead of full coordinates
// since elevation delta is the only input it needs.
func ConsumptionFromHeights(g *Static, heights []int32, whPerSecond, whPerMetreClimb float64) []int64 {
	consumption := make([]int64, g.NumEdges())
	for u := 0; u < g.NumNodes(); u++ {
		g.OutEdges(u, func(edgeID int, v int, weight int64) {
			base := float64(weight) / float64(fxp.Scale) * whPerSecond
			climb := 0.0
			if u < len(heights) && v < len(heights) {
				if delta := float64(heights[v] - heights[u]); delta > 0 {
					climb = delta * whPerMetreClimb
				}
			}
			consumption[edgeID] = int64((base + climb) * float64(fxp.Scale))
		})
	}
	return consumption
}
