package charge

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/wattpath/evroute/routing/errclass"
	"github.com/wattpath/evroute/store"
)

// geoJSONFeatureCollection is the minimal subset of the GeoJSON
// FeatureCollection/Feature/Point shape a charger export needs: a Point
// geometry per station plus a rate_w property. No third-party GeoJSON
// library appears anywhere in the retrieved corpus, so this decodes
// the handful of fields charger data actually uses via encoding/json
// rather than pulling in a general-purpose geometry library for one
// feature type.
type geoJSONFeatureCollection struct {
	Features []geoJSONFeature `json:"features"`
}

type geoJSONFeature struct {
	Geometry   geoJSONPoint      `json:"geometry"`
	Properties geoJSONProperties `json:"properties"`
}

type geoJSONPoint struct {
	Coordinates [2]float64 `json:"coordinates"`
}

type geoJSONProperties struct {
	RateW float64 `json:"rate_w"`
}

// ParseGeoJSONChargers decodes a GeoJSON FeatureCollection of charger
// Point features and resolves each to the nearest node in coords,
// returning a sparse node-id -> rate (W) map ready for
// store.SaveChargers or NewRegistry. A feature with rate_w <= 0 is
// skipped, matching the on-disk "0 means not a charger" convention.
func ParseGeoJSONChargers(r io.Reader, coords []store.Coordinate) (map[int]float64, error) {
	var fc geoJSONFeatureCollection
	if err := json.NewDecoder(r).Decode(&fc); err != nil {
		return nil, fmt.Errorf("charge: decoding geojson: %w: %v", errclass.InvalidInput, err)
	}

	rates := make(map[int]float64)
	for _, f := range fc.Features {
		if f.Properties.RateW <= 0 {
			continue
		}
		lon, lat := f.Geometry.Coordinates[0], f.Geometry.Coordinates[1]
		node, ok := store.NearestNode(coords, lon, lat)
		if !ok {
			return nil, fmt.Errorf("charge: no graph coordinates to match chargers against: %w", errclass.InvalidInput)
		}
		rates[node] = f.Properties.RateW
	}
	return rates, nil
}
