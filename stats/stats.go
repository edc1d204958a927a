// Package stats implements the process-wide statistics sink: per-query
// counters accumulate with no locking on the hot path, and are only
// merged into Prometheus collectors once a query finishes.
package stats

import (
	"os"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters is a plain, lock-free per-query counter set: a routing
// handler owns one exclusively for the duration of a single search and
// increments it directly inside the relaxation loop, matching the
// "thread-local, never introduce locks on the hot path" rule. Go has no
// OS-thread-local storage, so "per thread" here means "per handler
// invocation", recycled through a sync.Pool instead of left to the
// garbage collector.
type Counters struct {
	LabelsPushed    int64
	LabelsPopped    int64
	LabelsDominated int64
	Relaxations     int64
	ChargeStops     int64
}

// Reset zeroes every counter, called when a Counters is recycled out of
// the pool for a new query.
func (c *Counters) Reset() { *c = Counters{} }

// Sink merges finished Counters into Prometheus vectors labeled by
// algorithm id, and pools Counters between queries.
type Sink struct {
	enabled bool
	pool    sync.Pool

	labelsPushed    *prometheus.CounterVec
	labelsPopped    *prometheus.CounterVec
	labelsDominated *prometheus.CounterVec
	relaxations     *prometheus.CounterVec
	chargeStops     *prometheus.CounterVec
	queryDuration   *prometheus.HistogramVec
}

// NewSink registers the counter and histogram vectors under namespace/
// subsystem with reg (pass prometheus.DefaultRegisterer for the global
// registry, or a fresh *prometheus.Registry in tests to avoid
// cross-test collisions).
func NewSink(namespace, subsystem string, reg prometheus.Registerer) *Sink {
	factory := promauto.With(reg)
	s := &Sink{
		enabled: true,
		labelsPushed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "labels_pushed_total", Help: "Labels pushed into the container per query.",
		}, []string{"algorithm"}),
		labelsPopped: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "labels_popped_total", Help: "Labels settled per query.",
		}, []string{"algorithm"}),
		labelsDominated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "labels_dominated_total", Help: "Candidate labels pruned by dominance per query.",
		}, []string{"algorithm"}),
		relaxations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "relaxations_total", Help: "Edge relaxations attempted per query.",
		}, []string{"algorithm"}),
		chargeStops: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "charge_stops_total", Help: "Charging relaxations attempted per query.",
		}, []string{"algorithm"}),
		queryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name:    "query_duration_seconds",
			Help:    "Wall-clock duration of a completed route query.",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"algorithm"}),
	}
	s.pool.New = func() any { return new(Counters) }
	return s
}

// EnabledFromEnv reports whether the named environment variable is set
// to one of the on|ON|On|1 truthy values CHARGE_TAIL_STATISTICS,
// CHARGE_TAIL_EXPERIMENT, and CHARGE_TAIL_MEMORY all recognize.
func EnabledFromEnv(name string) bool {
	v := os.Getenv(name)
	return v == "1" || strings.EqualFold(v, "on")
}

// NewSinkFromEnv builds a Sink gated by CHARGE_TAIL_STATISTICS: when
// unset or falsy, Acquire/Flush still work but Flush is a no-op, so
// callers never need a separate code path for "statistics disabled".
func NewSinkFromEnv(namespace, subsystem string, reg prometheus.Registerer) *Sink {
	s := NewSink(namespace, subsystem, reg)
	s.enabled = EnabledFromEnv("CHARGE_TAIL_STATISTICS")
	return s
}

// Acquire returns a zeroed Counters from the pool.
func (s *Sink) Acquire() *Counters {
	c := s.pool.Get().(*Counters)
	c.Reset()
	return c
}

// Release returns c to the pool without recording it, for a query that
// was abandoned (e.g. the client disconnected) rather than completed.
func (s *Sink) Release(c *Counters) {
	s.pool.Put(c)
}

// Flush merges c into the Prometheus vectors under algorithm's label,
// records durationSeconds, and returns c to the pool. A disabled Sink
// still recycles c but skips the Prometheus writes.
func (s *Sink) Flush(algorithm string, c *Counters, durationSeconds float64) {
	if s.enabled {
		s.labelsPushed.WithLabelValues(algorithm).Add(float64(c.LabelsPushed))
		s.labelsPopped.WithLabelValues(algorithm).Add(float64(c.LabelsPopped))
		s.labelsDominated.WithLabelValues(algorithm).Add(float64(c.LabelsDominated))
		s.relaxations.WithLabelValues(algorithm).Add(float64(c.Relaxations))
		s.chargeStops.WithLabelValues(algorithm).Add(float64(c.ChargeStops))
		s.queryDuration.WithLabelValues(algorithm).Observe(durationSeconds)
	}
	s.Release(c)
}
