// Command graph2turngraph expands a graph directory's road graph into
// its turn-graph (line-graph) form, one node per directed edge, so a
// later search can account for turn restrictions and turn costs
// without special-casing them in the relaxation step.
package main

import (
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/wattpath/evroute/rgraph"
	"github.com/wattpath/evroute/store"
)

func main() {
	var inDir, outDir string

	root := &cobra.Command{
		Use:   "graph2turngraph",
		Short: "Expand a road graph into its turn-graph (line-graph) form",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(inDir, outDir)
		},
	}
	root.Flags().StringVar(&inDir, "in", "./graph", "Input graph directory")
	root.Flags().StringVar(&outDir, "out", "./turngraph", "Output directory for the turn graph")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(inDir, outDir string) error {
	g, err := store.LoadGraph(inDir, nil)
	if err != nil {
		return fmt.Errorf("loading graph: %w", err)
	}

	// No turn-restriction data is carried on disk yet, so every
	// maneuver costs nothing extra; the line-graph expansion alone is
	// what lets a future search layer attach per-maneuver costs.
	noPenalty := func(u, v, w int) int64 { return 0 }
	turnGraph := rgraph.BuildTurnGraph(g, math.MaxInt64, noPenalty)

	if err := store.SaveGraph(outDir, turnGraph.Static); err != nil {
		return fmt.Errorf("writing turn graph: %w", err)
	}
	fmt.Printf("wrote turn graph with %d nodes (%d original edges) to %s\n", turnGraph.NumNodes(), len(turnGraph.OriginalEdge), outDir)
	return nil
}
