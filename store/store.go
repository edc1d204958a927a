// Package store implements the on-disk graph format: a directory of
// flat binary files (first_out, head, weight, coordinates, heights,
// charger), each a little-endian record count followed by that many
// fixed-size records, matching the in-memory layout so no parsing or
// padding logic sits between disk and the CSR graph.
package store

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/wattpath/evroute/rgraph"
	"github.com/wattpath/evroute/routing/errclass"
)

const (
	firstOutFile    = "first_out"
	headFile        = "head"
	weightFile      = "weight"
	coordinatesFile = "coordinates"
	heightsFile     = "heights"
	chargerFile     = "charger"
)

// Coordinate is a fixed-point (lon, lat) pair at scale 1e6, the
// on-disk representation of a node's location.
type Coordinate struct {
	LonE6, LatE6 int32
}

// LoadGraph reads first_out, head, and weight from dir and assembles
// them into an immutable CSR rgraph.Static. A missing or truncated file,
// or a count mismatch between the three, is fatal: wrapped in
// errclass.IOError, matching the taxonomy's "missing or truncated graph
// file, fatal at construction" rule.
func LoadGraph(dir string, logger *zap.Logger) (*rgraph.Static, error) {
	logger = namedOrNop(logger)

	firstOut, err := readInt32Records(filepath.Join(dir, firstOutFile))
	if err != nil {
		return nil, fmt.Errorf("store: reading %s: %w: %v", firstOutFile, errclass.IOError, err)
	}
	head, err := readInt32Records(filepath.Join(dir, headFile))
	if err != nil {
		return nil, fmt.Errorf("store: reading %s: %w: %v", headFile, errclass.IOError, err)
	}
	weight, err := readInt64Records(filepath.Join(dir, weightFile))
	if err != nil {
		return nil, fmt.Errorf("store: reading %s: %w: %v", weightFile, errclass.IOError, err)
	}
	if len(firstOut) == 0 || int(firstOut[len(firstOut)-1]) != len(head) {
		return nil, fmt.Errorf("store: first_out[N]=%d != len(head)=%d: %w", lastOr(firstOut), len(head), errclass.IOError)
	}
	if len(head) != len(weight) {
		return nil, fmt.Errorf("store: len(head)=%d != len(weight)=%d: %w", len(head), len(weight), errclass.IOError)
	}

	g := &rgraph.Static{FirstOut: firstOut, Head: head, Weight: weight}
	logger.Info("loaded graph", zap.Int("nodes", g.NumNodes()), zap.Int("edges", g.NumEdges()), zap.String("dir", dir))
	return g, nil
}

// SaveGraph writes first_out, head, and weight to dir, creating it if
// necessary. Used by the preprocessing CLIs, and by tests to round-trip
// a graph built in memory.
func SaveGraph(dir string, g *rgraph.Static) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("store: creating %s: %w: %v", dir, errclass.IOError, err)
	}
	if err := writeInt32Records(filepath.Join(dir, firstOutFile), g.FirstOut); err != nil {
		return fmt.Errorf("store: writing %s: %w: %v", firstOutFile, errclass.IOError, err)
	}
	if err := writeInt32Records(filepath.Join(dir, headFile), g.Head); err != nil {
		return fmt.Errorf("store: writing %s: %w: %v", headFile, errclass.IOError, err)
	}
	if err := writeInt64Records(filepath.Join(dir, weightFile), g.Weight); err != nil {
		return fmt.Errorf("store: writing %s: %w: %v", weightFile, errclass.IOError, err)
	}
	return nil
}

// LoadCoordinates reads the optional coordinates file; a routing-only
// deployment need not call this.
func LoadCoordinates(dir string) ([]Coordinate, error) {
	raw, err := readInt32Records(filepath.Join(dir, coordinatesFile))
	if err != nil {
		return nil, fmt.Errorf("store: reading %s: %w: %v", coordinatesFile, errclass.IOError, err)
	}
	if len(raw)%2 != 0 {
		return nil, fmt.Errorf("store: %s has an odd int32 count %d, want pairs: %w", coordinatesFile, len(raw), errclass.IOError)
	}
	coords := make([]Coordinate, len(raw)/2)
	for i := range coords {
		coords[i] = Coordinate{LonE6: raw[2*i], LatE6: raw[2*i+1]}
	}
	return coords, nil
}

// SaveCoordinates writes the optional coordinates file.
func SaveCoordinates(dir string, coords []Coordinate) error {
	raw := make([]int32, 0, 2*len(coords))
	for _, c := range coords {
		raw = append(raw, c.LonE6, c.LatE6)
	}
	if err := writeInt32Records(filepath.Join(dir, coordinatesFile), raw); err != nil {
		return fmt.Errorf("store: writing %s: %w: %v", coordinatesFile, errclass.IOError, err)
	}
	return nil
}

// LoadHeights reads the optional heights file, metres per node.
func LoadHeights(dir string) ([]int32, error) {
	heights, err := readInt32Records(filepath.Join(dir, heightsFile))
	if err != nil {
		return nil, fmt.Errorf("store: reading %s: %w: %v", heightsFile, errclass.IOError, err)
	}
	return heights, nil
}

// SaveHeights writes the optional heights file.
func SaveHeights(dir string, heights []int32) error {
	if err := writeInt32Records(filepath.Join(dir, heightsFile), heights); err != nil {
		return fmt.Errorf("store: writing %s: %w: %v", heightsFile, errclass.IOError, err)
	}
	return nil
}

// LoadChargers reads the optional charger file: one rate (W) per node,
// 0 meaning "not a charger". Returned as a sparse node-id -> rate map
// ready for charge.NewRegistry, omitting zero entries.
func LoadChargers(dir string) (map[int]float64, error) {
	rates, err := readFloat64Records(filepath.Join(dir, chargerFile))
	if err != nil {
		return nil, fmt.Errorf("store: reading %s: %w: %v", chargerFile, errclass.IOError, err)
	}
	sparse := make(map[int]float64)
	for node, rate := range rates {
		if rate != 0 {
			sparse[node] = rate
		}
	}
	return sparse, nil
}

// SaveChargers writes the optional charger file: one rate per node
// from 0 to numNodes-1, 0 for nodes absent from rates.
func SaveChargers(dir string, numNodes int, rates map[int]float64) error {
	dense := make([]float64, numNodes)
	for node, rate := range rates {
		dense[node] = rate
	}
	if err := writeFloat64Records(filepath.Join(dir, chargerFile), dense); err != nil {
		return fmt.Errorf("store: writing %s: %w: %v", chargerFile, errclass.IOError, err)
	}
	return nil
}

// NearestNode returns the index into coords closest to (lon, lat) by
// straight-line distance in degree space, and false if coords is empty.
// A k-d tree would pay off once coords holds a continent's worth of
// nodes; nothing this package loads does yet, so the plain scan stands.
func NearestNode(coords []Coordinate, lon, lat float64) (int, bool) {
	if len(coords) == 0 {
		return 0, false
	}
	best := 0
	bestDistSq := math.Inf(1)
	for i, c := range coords {
		dLon := float64(c.LonE6)/1e6 - lon
		dLat := float64(c.LatE6)/1e6 - lat
		distSq := dLon*dLon + dLat*dLat
		if distSq < bestDistSq {
			bestDistSq = distSq
			best = i
		}
	}
	return best, true
}

func lastOr(xs []int32) int32 {
	if len(xs) == 0 {
		return 0
	}
	return xs[len(xs)-1]
}

func namedOrNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger.Named("store")
}

func readInt32Records(path string) ([]int32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var count uint64
	if err := binary.Read(f, binary.LittleEndian, &count); err != nil {
		return nil, err
	}
	records := make([]int32, count)
	if err := binary.Read(f, binary.LittleEndian, records); err != nil {
		return nil, unexpectedEOF(err)
	}
	return records, nil
}

func readInt64Records(path string) ([]int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var count uint64
	if err := binary.Read(f, binary.LittleEndian, &count); err != nil {
		return nil, err
	}
	records := make([]int64, count)
	if err := binary.Read(f, binary.LittleEndian, records); err != nil {
		return nil, unexpectedEOF(err)
	}
	return records, nil
}

func readFloat64Records(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var count uint64
	if err := binary.Read(f, binary.LittleEndian, &count); err != nil {
		return nil, err
	}
	records := make([]float64, count)
	if err := binary.Read(f, binary.LittleEndian, records); err != nil {
		return nil, unexpectedEOF(err)
	}
	return records, nil
}

func writeInt32Records(path string, records []int32) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := binary.Write(f, binary.LittleEndian, uint64(len(records))); err != nil {
		return err
	}
	return binary.Write(f, binary.LittleEndian, records)
}

func writeInt64Records(path string, records []int64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := binary.Write(f, binary.LittleEndian, uint64(len(records))); err != nil {
		return err
	}
	return binary.Write(f, binary.LittleEndian, records)
}

func writeFloat64Records(path string, records []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := binary.Write(f, binary.LittleEndian, uint64(len(records))); err != nil {
		return err
	}
	return binary.Write(f, binary.LittleEndian, records)
}

func unexpectedEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
