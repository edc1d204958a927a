package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/wattpath/evroute/routing/errclass"
	"github.com/wattpath/evroute/store"
)

type nearestResponse struct {
	Node int     `json:"node"`
	Lon  float64 `json:"lon"`
	Lat  float64 `json:"lat"`
}

// handleNearest resolves a query (lon, lat) to the closest loaded
// coordinate.
func (s *Server) handleNearest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lon, err := parseFloatParam(q.Get("lon"), "lon")
	if err != nil {
		s.writeError(w, err)
		return
	}
	lat, err := parseFloatParam(q.Get("lat"), "lat")
	if err != nil {
		s.writeError(w, err)
		return
	}

	node, ok := store.NearestNode(s.coords, lon, lat)
	if !ok {
		s.writeError(w, fmt.Errorf("no coordinates loaded: %w", errclass.InvalidInput))
		return
	}

	writeJSON(w, nearestResponse{
		Node: node,
		Lon:  float64(s.coords[node].LonE6) / 1e6,
		Lat:  float64(s.coords[node].LatE6) / 1e6,
	})
}

func parseFloatParam(q, name string) (float64, error) {
	if q == "" {
		return 0, fmt.Errorf("%s is required: %w", name, errclass.InvalidInput)
	}
	v, err := strconv.ParseFloat(q, 64)
	if err != nil {
		return 0, fmt.Errorf("%s is not a valid number: %w", name, errclass.InvalidInput)
	}
	return v, nil
}
