package main

import (
	"testing"

	"github.com/wattpath/evroute/rgraph"
	"github.com/wattpath/evroute/store"
)

func TestRun_ExpandsGraphIntoTurnGraphDirectory(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()

	b := rgraph.NewBuilder(3)
	b.AddEdge(0, 1, 10)
	b.AddEdge(1, 2, 20)
	if err := store.SaveGraph(inDir, b.Build()); err != nil {
		t.Fatalf("SaveGraph: %v", err)
	}

	if err := run(inDir, outDir); err != nil {
		t.Fatalf("run: %v", err)
	}

	got, err := store.LoadGraph(outDir, nil)
	if err != nil {
		t.Fatalf("LoadGraph(turngraph): %v", err)
	}
	if got.NumNodes() != 2 {
		t.Fatalf("turn graph has %d nodes, want 2 (one per original edge)", got.NumNodes())
	}
}
