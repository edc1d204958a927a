// Package httpapi exposes the routing engine over HTTP: GET /route runs
// one of the six Dijkstra/A* family members against the preloaded
// graph, GET /nearest resolves a (lon, lat) to the closest graph node,
// and /metrics serves the Prometheus stats the stats package collects.
//
// Request handling deliberately does not pool a per-request search
// context: each of the six search entry points already allocates its
// own queue and label container internally, and threading an
// externally pooled queue/container through all six without changing
// their tested signatures was judged not worth the churn for what this
// HTTP surface needs. The sync.Pool this package does use is for
// stats.Counters, the one piece of per-request state cheap enough to
// actually reuse.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/wattpath/evroute/charge"
	"github.com/wattpath/evroute/dominance"
	"github.com/wattpath/evroute/fxp"
	"github.com/wattpath/evroute/label"
	"github.com/wattpath/evroute/piecewise"
	"github.com/wattpath/evroute/potential"
	"github.com/wattpath/evroute/rgraph"
	"github.com/wattpath/evroute/routing"
	"github.com/wattpath/evroute/routing/errclass"
	"github.com/wattpath/evroute/stats"
	"github.com/wattpath/evroute/store"
)

// Server holds every immutable collaborator a /route or /nearest
// request reads from: the road graph in its scalar and function-
// weighted forms, the charging registries, node coordinates, and the
// shared tuning/observability knobs. None of these mutate after
// NewServer returns, so concurrent requests need no locking around
// them: the graphs, coordinates, and charging registries are all
// immutable and shared by reference across every handler.
type Server struct {
	mux *http.ServeMux

	graph     *rgraph.Static
	funcGraph *rgraph.FunctionGraph
	mcGraph   *routing.DualGraph
	chargers  *charge.Registry
	envelopes *charge.EnvelopeRegistry
	coords    []store.Coordinate

	potentials   label.Potentials
	potentialsMu sync.Mutex
	epsilons     routing.Epsilons
	capacity     int64

	sink   *stats.Sink
	logger *zap.Logger
}

// Config bundles NewServer's optional collaborators: every field may be
// its own zero value (nil pointer / empty slice) if that capability is
// not available for the loaded graph, and handlers degrade to
// errclass.InvalidInput for algorithm ids that need it.
type Config struct {
	Graph      *rgraph.Static
	FuncGraph  *rgraph.FunctionGraph
	MCGraph    *routing.DualGraph
	Chargers   *charge.Registry
	Envelopes  *charge.EnvelopeRegistry
	Coords     []store.Coordinate
	Potentials label.Potentials
	Epsilons   routing.Epsilons
	Capacity   int64
	Sink       *stats.Sink
	Logger     *zap.Logger
}

// NewServer wires cfg into a Server and registers its three routes.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	potentials := cfg.Potentials
	if potentials == nil {
		potentials = potential.Zero{}
	}
	epsilons := cfg.Epsilons
	if epsilons == (routing.Epsilons{}) {
		epsilons = routing.DefaultEpsilons()
	}
	s := &Server{
		graph:      cfg.Graph,
		funcGraph:  cfg.FuncGraph,
		mcGraph:    cfg.MCGraph,
		chargers:   cfg.Chargers,
		envelopes:  cfg.Envelopes,
		coords:     cfg.Coords,
		potentials: potentials,
		epsilons:   epsilons,
		capacity:   cfg.Capacity,
		sink:       cfg.Sink,
		logger:     logger.Named("httpapi"),
	}
	s.mux = http.NewServeMux()
	s.mux.HandleFunc("GET /route", s.handleRoute)
	s.mux.HandleFunc("GET /nearest", s.handleNearest)
	if cfg.Sink != nil {
		s.mux.Handle("GET /metrics", promhttp.Handler())
	}
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps an errclass sentinel to its HTTP status
// (InvalidInput->400, NoRoute->404, everything else->500) and writes a
// {"error": "..."} body.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if class, ok := errclass.Class(err); ok {
		switch {
		case errors.Is(class, errclass.InvalidInput):
			status = http.StatusBadRequest
		case errors.Is(class, errclass.NoRoute):
			status = http.StatusNotFound
		default:
			status = http.StatusInternalServerError
		}
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func parseNodeID(q, name string, numNodes int) (int, error) {
	if q == "" {
		return 0, fmt.Errorf("%s is required: %w", name, errclass.InvalidInput)
	}
	id, err := strconv.ParseUint(q, 10, 32)
	if err != nil || int(id) >= numNodes {
		return 0, fmt.Errorf("%s out of range: %w", name, errclass.InvalidInput)
	}
	return int(id), nil
}

// routeResponse is the JSON shape returned by every algorithm: Path is
// always present for the single-solution algorithms, Front carries
// every non-dominated (duration, consumption) alternative for the
// multi-criteria ones.
type routeResponse struct {
	Algorithm string      `json:"algorithm"`
	Path      []int       `json:"path,omitempty"`
	Duration  float64     `json:"duration,omitempty"`
	Front     []frontItem `json:"front,omitempty"`
}

type frontItem struct {
	Duration    float64 `json:"duration"`
	Consumption float64 `json:"consumption"`
}

func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	q := r.URL.Query()
	algorithm := q.Get("algorithm")

	var counters *stats.Counters
	if s.sink != nil {
		counters = s.sink.Acquire()
		defer func() { s.sink.Flush(algorithm, counters, time.Since(start).Seconds()) }()
	}

	numNodes := s.numNodes()
	startNode, err := parseNodeID(q.Get("start"), "start", numNodes)
	if err != nil {
		s.writeError(w, err)
		return
	}
	targetNode, err := parseNodeID(q.Get("target"), "target", numNodes)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp, err := s.runAlgorithm(algorithm, startNode, targetNode, counters)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, resp)
}

// targetRecomputer is implemented by potentials that take a per-search
// target: Landmark caches its heuristic per target, and Zero implements
// it as a no-op. lockPotentials takes the lock for every potential.
type targetRecomputer interface {
	Recompute(target int)
}

// lockPotentials serializes access to s.potentials for the duration of
// one functional search: Landmark's Recompute/H pair caches state keyed
// to a single target, so two concurrent fp_dijkstra-family requests
// against the same server must not interleave their Recompute calls.
func (s *Server) lockPotentials(target int) func() {
	s.potentialsMu.Lock()
	if rc, ok := s.potentials.(targetRecomputer); ok {
		rc.Recompute(target)
	}
	return s.potentialsMu.Unlock
}

func (s *Server) numNodes() int {
	switch {
	case s.graph != nil:
		return s.graph.NumNodes()
	case s.funcGraph != nil:
		return s.funcGraph.NumNodes()
	case s.mcGraph != nil:
		return s.mcGraph.NumNodes()
	default:
		return 0
	}
}

func (s *Server) runAlgorithm(algorithm string, start, target int, counters *stats.Counters) (routeResponse, error) {
	switch algorithm {
	case "fastest_bi_dijkstra":
		return s.runScalar(start, target)
	case "mc_dijkstra":
		return s.runMC(start, target, counters)
	case "mcc_dijkstra":
		return s.runMCC(start, target, counters)
	case "fp_dijkstra":
		return s.runFP(start, target, counters)
	case "fpc_dijkstra":
		return s.runFPC(start, target, counters)
	case "fpc_profile_dijkstra":
		return s.runFPCProfile(start, target, counters)
	default:
		return routeResponse{}, fmt.Errorf("unknown algorithm %s: %w", algorithm, errclass.InvalidInput)
	}
}

func (s *Server) runScalar(start, target int) (routeResponse, error) {
	if s.graph == nil {
		return routeResponse{}, fmt.Errorf("fastest_bi_dijkstra: no scalar graph loaded: %w", errclass.InvalidInput)
	}
	res := routing.ScalarDijkstra(s.graph, start, target)
	path := res.Path(start, target)
	if path == nil {
		return routeResponse{}, fmt.Errorf("no path found: %w", errclass.NoRoute)
	}
	return routeResponse{
		Algorithm: "fastest_bi_dijkstra",
		Path:      path,
		Duration:  float64(res.Dist[target]) / float64(fxp.Scale),
	}, nil
}

func (s *Server) runMC(start, target int, counters *stats.Counters) (routeResponse, error) {
	if s.mcGraph == nil {
		return routeResponse{}, fmt.Errorf("mc_dijkstra: no bi-criteria graph loaded: %w", errclass.InvalidInput)
	}
	res := routing.MCDijkstra(s.mcGraph, start, s.capacity, s.epsilons.BiCriteria())
	front := res.Front(target)
	if counters != nil {
		counters.LabelsPopped += int64(len(front))
	}
	if len(front) == 0 {
		return routeResponse{}, fmt.Errorf("no feasible path under capacity: %w", errclass.NoRoute)
	}
	return routeResponse{Algorithm: "mc_dijkstra", Front: toFrontItems(front)}, nil
}

func (s *Server) runMCC(start, target int, counters *stats.Counters) (routeResponse, error) {
	if s.mcGraph == nil {
		return routeResponse{}, fmt.Errorf("mcc_dijkstra: no bi-criteria graph loaded: %w", errclass.InvalidInput)
	}
	var chargeAmounts []int64
	if s.capacity > 0 {
		chargeAmounts = []int64{s.capacity / 2, s.capacity}
	}
	res := routing.MCCDijkstra(s.mcGraph, start, s.capacity, s.epsilons.BiCriteria(), s.chargers, chargeAmounts)
	front := res.Front(target)
	if counters != nil {
		counters.LabelsPopped += int64(len(front))
		if s.chargers != nil {
			counters.ChargeStops++
		}
	}
	if len(front) == 0 {
		return routeResponse{}, fmt.Errorf("no feasible path under capacity: %w", errclass.NoRoute)
	}
	return routeResponse{Algorithm: "mcc_dijkstra", Front: toFrontItems(front)}, nil
}

func (s *Server) runFP(start, target int, counters *stats.Counters) (routeResponse, error) {
	if s.funcGraph == nil {
		return routeResponse{}, fmt.Errorf("fp_dijkstra: no function graph loaded: %w", errclass.InvalidInput)
	}
	unlock := s.lockPotentials(target)
	res := routing.FPDijkstra(s.funcGraph, start, target, s.potentials, s.epsilons.Functional(), s.epsilons.EpsX)
	unlock()
	front := res.Front(target)
	if counters != nil {
		counters.LabelsPopped += int64(len(front))
	}
	if len(front) == 0 {
		return routeResponse{}, fmt.Errorf("no feasible path found: %w", errclass.NoRoute)
	}
	return routeResponse{Algorithm: "fp_dijkstra", Front: limitedFrontItems(front)}, nil
}

func (s *Server) runFPC(start, target int, counters *stats.Counters) (routeResponse, error) {
	if s.funcGraph == nil {
		return routeResponse{}, fmt.Errorf("fpc_dijkstra: no function graph loaded: %w", errclass.InvalidInput)
	}
	if s.chargers == nil {
		return routeResponse{}, fmt.Errorf("fpc_dijkstra: no charging registry loaded: %w", errclass.InvalidInput)
	}
	targets := chargeTargetsWh(s.capacity)
	unlock := s.lockPotentials(target)
	res := routing.FPCDijkstra(s.funcGraph, start, target, s.potentials, s.epsilons.Functional(), s.epsilons.EpsX, s.chargers, float64(s.capacity)/float64(fxp.Scale), targets)
	unlock()
	front := res.Front(target)
	if counters != nil {
		counters.LabelsPopped += int64(len(front))
		counters.ChargeStops++
	}
	if len(front) == 0 {
		return routeResponse{}, fmt.Errorf("no feasible path found: %w", errclass.NoRoute)
	}
	return routeResponse{Algorithm: "fpc_dijkstra", Front: limitedFrontItems(front)}, nil
}

func (s *Server) runFPCProfile(start, target int, counters *stats.Counters) (routeResponse, error) {
	if s.funcGraph == nil {
		return routeResponse{}, fmt.Errorf("fpc_profile_dijkstra: no function graph loaded: %w", errclass.InvalidInput)
	}
	if s.envelopes == nil {
		return routeResponse{}, fmt.Errorf("fpc_profile_dijkstra: no precomputed envelopes loaded: %w", errclass.InvalidInput)
	}
	unlock := s.lockPotentials(target)
	res := routing.FPCProfileDijkstra(s.funcGraph, start, target, s.potentials, s.epsilons.Functional(), s.epsilons.EpsX, s.envelopes)
	unlock()
	front := res.Front(target)
	if counters != nil {
		counters.LabelsPopped += int64(len(front))
		counters.ChargeStops++
	}
	if len(front) == 0 {
		return routeResponse{}, fmt.Errorf("no feasible path found: %w", errclass.NoRoute)
	}
	return routeResponse{Algorithm: "fpc_profile_dijkstra", Front: limitedFrontItems(front)}, nil
}

func chargeTargetsWh(capacityFxp int64) []float64 {
	capacityWh := float64(capacityFxp) / float64(fxp.Scale)
	return []float64{capacityWh * 0.5, capacityWh * 0.8, capacityWh}
}

func toFrontItems(points []dominance.Point) []frontItem {
	items := make([]frontItem, len(points))
	for i, p := range points {
		items[i] = frontItem{
			Duration:    float64(p.X) / float64(fxp.Scale),
			Consumption: float64(p.Y) / float64(fxp.Scale),
		}
	}
	return items
}

// limitedFrontItems reports, for each Pareto-optimal arrival-cost
// function at the target, the function's domain start and the best
// (lowest) value it reaches there: the single scalar summary an HTTP
// caller needs without shipping the whole piecewise function.
func limitedFrontItems(fronts []piecewise.LimitedFunction) []frontItem {
	items := make([]frontItem, len(fronts))
	for i, f := range fronts {
		items[i] = frontItem{Duration: f.MinX, Consumption: f.Eval(f.MinX)}
	}
	return items
}
