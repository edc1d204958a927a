package charge

import (
	"errors"

	"github.com/wattpath/evroute/fxp"
)

// ErrNonPositiveRate indicates a station's charging rate was zero or
// negative; the on-disk charger file uses exactly 0 to mean "not a
// charger", so a registry never builds a profile for those nodes.
var ErrNonPositiveRate = errors.New("charge: charging rate must be positive")

// Registry maps a road-graph node id to the charging Profile available
// there, built once at startup from the on-disk charger rates and the
// vehicle's battery capacity. It implements routing.Charger directly,
// so FPCDijkstra can be handed a *Registry with no adapter.
type Registry struct {
	profiles    map[int]Profile
	stopPenalty float64
}

// NewRegistry builds a Registry from a sparse node-id -> rate (W) map,
// the shared vehicle battery capacity (Wh), and the fixed per-stop time
// penalty charging-aware searches should charge against every station.
// A rate <= 0 means "not a charger" and is silently skipped, matching
// the on-disk convention rather than erroring on every ordinary node.
func NewRegistry(rates map[int]float64, capacity, stopPenalty float64) (*Registry, error) {
	profiles := make(map[int]Profile, len(rates))
	for node, rate := range rates {
		if rate <= 0 {
			continue
		}
		profile, err := NewLinearProfile(rate, capacity)
		if err != nil {
			return nil, err
		}
		profiles[node] = profile
	}
	return &Registry{profiles: profiles, stopPenalty: stopPenalty}, nil
}

// NewLinearProfile builds a constant-rate charging Profile: ratePerHour
// Wh added per hour of charging, up to capacity. A single segment is
// trivially concave (no later segment can have a steeper slope than
// the only segment there is), so this always satisfies Profile's
// monotone-non-increasing-slope invariant.
func NewLinearProfile(ratePerHour, capacity float64) (Profile, error) {
	if ratePerHour <= 0 {
		return Profile{}, ErrNonPositiveRate
	}
	hoursToFull := capacity / ratePerHour
	return NewProfile([]Point{{Time: 0, SoC: 0}, {Time: hoursToFull, SoC: capacity}}, capacity)
}

// ProfileAt reports the charging profile at node v, if any.
func (r *Registry) ProfileAt(v int) (Profile, bool) {
	p, ok := r.profiles[v]
	return p, ok
}

// StopPenalty returns the fixed time cost charged against every stop a
// charging-aware search considers at a station this registry knows
// about.
func (r *Registry) StopPenalty() float64 {
	return r.stopPenalty
}

// Len reports how many nodes this registry has a charging profile for.
func (r *Registry) Len() int {
	return len(r.profiles)
}

// ChargeDuration answers MCCDijkstra's scalar question: how long, in
// fixed-point duration units, to add soc fixed-point consumption units
// back at v. Both soc and the returned duration share fxp.Scale, so
// this satisfies routing.MCCCharger with no unit conversion at the call
// site.
func (r *Registry) ChargeDuration(v int, soc int64) (int64, bool) {
	profile, ok := r.ProfileAt(v)
	if !ok {
		return 0, false
	}
	wh := float64(soc) / float64(fxp.Scale)
	hours := profile.TimeFor(0, wh)
	seconds := hours * 3600
	return int64(seconds * float64(fxp.Scale)), true
}
