package stats_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/wattpath/evroute/stats"
)

func TestSink_FlushAddsToCounterVec(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink := stats.NewSink("evroute", "test", reg)
	// NewSink defaults enabled; bypass the env gate for this test.

	c := sink.Acquire()
	c.LabelsPushed = 3
	c.LabelsPopped = 2
	sink.Flush("fp_dijkstra", c, 0.05)

	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	var found bool
	for _, mf := range metrics {
		if mf.GetName() != "evroute_test_labels_pushed_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			if m.GetCounter().GetValue() == 3 {
				found = true
			}
		}
	}
	if !found {
		t.Fatalf("expected labels_pushed_total=3 to be recorded, got %v", metrics)
	}
}

func TestSink_AcquireReturnsZeroedCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink := stats.NewSink("evroute", "test2", reg)
	c := sink.Acquire()
	c.Relaxations = 9
	sink.Release(c)

	c2 := sink.Acquire()
	if c2.Relaxations != 0 {
		t.Fatalf("recycled Counters must be reset, got Relaxations=%d", c2.Relaxations)
	}
}

func TestEnabledFromEnv_AcceptsTruthyValues(t *testing.T) {
	t.Setenv("EVROUTE_TEST_FLAG", "On")
	if !stats.EnabledFromEnv("EVROUTE_TEST_FLAG") {
		t.Fatalf("expected 'On' to be truthy")
	}
	t.Setenv("EVROUTE_TEST_FLAG", "0")
	if stats.EnabledFromEnv("EVROUTE_TEST_FLAG") {
		t.Fatalf("expected '0' to be falsy")
	}
}
