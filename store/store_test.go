package store_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wattpath/evroute/rgraph"
	"github.com/wattpath/evroute/routing/errclass"
	"github.com/wattpath/evroute/store"
)

func sampleGraph() *rgraph.Static {
	b := rgraph.NewBuilder(4)
	b.AddEdge(0, 1, 10)
	b.AddEdge(0, 2, 5)
	b.AddEdge(1, 2, 2)
	b.AddEdge(2, 3, 1)
	return b.Build()
}

func TestSaveLoadGraph_RoundTrips(t *testing.T) {
	dir := t.TempDir()
	want := sampleGraph()
	require.NoError(t, store.SaveGraph(dir, want))

	got, err := store.LoadGraph(dir, nil)
	require.NoError(t, err)
	require.Equal(t, want.NumNodes(), got.NumNodes())
	require.Equal(t, want.NumEdges(), got.NumEdges())
	for u := 0; u < want.NumNodes(); u++ {
		for v := 0; v < want.NumNodes(); v++ {
			require.Equalf(t, want.Edge(u, v), got.Edge(u, v), "edge(%d,%d) mismatch after round trip", u, v)
		}
	}
}

func TestLoadGraph_MissingDirIsIOError(t *testing.T) {
	_, err := store.LoadGraph("/nonexistent/path/for/store/test", nil)
	require.ErrorIs(t, err, errclass.IOError)
}

func TestSaveLoadCoordinates_RoundTrips(t *testing.T) {
	dir := t.TempDir()
	want := []store.Coordinate{{LonE6: 1_000_000, LatE6: -2_000_000}, {LonE6: 0, LatE6: 0}}
	require.NoError(t, store.SaveCoordinates(dir, want))

	got, err := store.LoadCoordinates(dir)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestNearestNode_PicksClosestCoordinate(t *testing.T) {
	coords := []store.Coordinate{
		{LonE6: 0, LatE6: 0},
		{LonE6: 1_000_000, LatE6: 1_000_000},
		{LonE6: 2_000_000, LatE6: 2_000_000},
	}
	node, ok := store.NearestNode(coords, 1.9, 1.9)
	require.True(t, ok)
	require.Equal(t, 2, node)
}

func TestNearestNode_EmptyCoordsReturnsFalse(t *testing.T) {
	_, ok := store.NearestNode(nil, 0, 0)
	require.False(t, ok)
}

func TestSaveLoadChargers_OmitsZeroRates(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, store.SaveChargers(dir, 4, map[int]float64{1: 50}))

	got, err := store.LoadChargers(dir)
	require.NoError(t, err)
	require.Equal(t, map[int]float64{1: 50}, got)
}
