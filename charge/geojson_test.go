package charge_test

import (
	"strings"
	"testing"

	"github.com/wattpath/evroute/charge"
	"github.com/wattpath/evroute/store"
)

func TestParseGeoJSONChargers_ResolvesToNearestNode(t *testing.T) {
	coords := []store.Coordinate{
		{LonE6: 0, LatE6: 0},
		{LonE6: 1_000_000, LatE6: 1_000_000},
	}
	geojson := `{"features":[
		{"geometry":{"coordinates":[0.01,0.01]},"properties":{"rate_w":50}},
		{"geometry":{"coordinates":[0.99,0.99]},"properties":{"rate_w":0}}
	]}`

	rates, err := charge.ParseGeoJSONChargers(strings.NewReader(geojson), coords)
	if err != nil {
		t.Fatalf("ParseGeoJSONChargers: %v", err)
	}
	if len(rates) != 1 || rates[0] != 50 {
		t.Fatalf("rates = %v, want {0: 50}", rates)
	}
}
