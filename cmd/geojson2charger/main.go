// Command geojson2charger resolves a GeoJSON FeatureCollection of
// charging-station points against an existing graph directory's
// coordinates and writes the resulting charger file back into that
// directory.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wattpath/evroute/charge"
	"github.com/wattpath/evroute/store"
)

func main() {
	var geojsonPath, graphDir string

	root := &cobra.Command{
		Use:   "geojson2charger",
		Short: "Convert a GeoJSON charger export into a graph directory's charger file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(geojsonPath, graphDir)
		},
	}
	root.Flags().StringVar(&geojsonPath, "geojson", "", "Path to a GeoJSON FeatureCollection of charger points (required)")
	root.Flags().StringVar(&graphDir, "graph-dir", "./graph", "Graph directory holding coordinates and to receive the charger file")
	root.MarkFlagRequired("geojson")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(geojsonPath, graphDir string) error {
	f, err := os.Open(geojsonPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", geojsonPath, err)
	}
	defer f.Close()

	coords, err := store.LoadCoordinates(graphDir)
	if err != nil {
		return fmt.Errorf("loading coordinates: %w", err)
	}

	rates, err := charge.ParseGeoJSONChargers(f, coords)
	if err != nil {
		return fmt.Errorf("parsing geojson: %w", err)
	}

	if err := store.SaveChargers(graphDir, len(coords), rates); err != nil {
		return fmt.Errorf("writing charger file: %w", err)
	}
	fmt.Printf("wrote %d charger stations to %s\n", len(rates), graphDir)
	return nil
}
