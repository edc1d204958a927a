// Package evroute is an energy-aware EV route planner's core routing
// engine: a label-setting functional Pareto search over duration and
// consumption trade-off curves, with charging-aware variants and a
// scalar/bi-criteria fallback.
//
// The engine is organized bottom-up:
//
//	curve/      - constant, linear, and hyperbolic cost pieces
//	fxp/        - fixed-point millisecond/weight conversions
//	roots/      - closed-form root finding for piece intersections
//	isect/      - piece-vs-piece intersection construction
//	piecewise/  - domain-limited and piecewise function types
//	envelope/   - plane-sweep lower envelope of a function family
//	pqueue/     - indexed binary min-heap with decrease/increase-key
//	dominance/  - scalar, bi-criteria, and functional Pareto ordering
//	potential/  - A*-style node potentials (zero and ALT/landmark)
//	label/      - per-node settled/unsettled label container
//	rgraph/     - CSR road graph, function-weighted graph, turn graph
//	charge/     - charging station profile and composition operators
//	routing/    - the Dijkstra/A* family built on the packages above
//	store/      - on-disk graph codec
//	stats/      - Prometheus metrics sink
//	httpapi/    - HTTP query surface
//	config/     - koanf-based configuration
//	cmd/        - CLI entry points
package evroute
