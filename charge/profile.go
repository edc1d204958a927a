// Package charge models a charging station's state-of-charge-over-time
// profile and its composition with a duration/consumption trade-off
// function: the operation a functional-Pareto charging search performs
// every time it considers stopping to recharge.
package charge

import (
	"errors"
	"sort"
)

// ErrEmptyProfile indicates a Profile was built with no breakpoints.
var ErrEmptyProfile = errors.New("charge: profile has no breakpoints")

// ErrNotConcave indicates successive breakpoint slopes increase, which
// would make the profile convex (faster charging as the battery fills)
// instead of the physically correct concave shape.
var ErrNotConcave = errors.New("charge: profile slopes must be non-increasing")

// Point is one (time, stateOfCharge) sample of a charging curve.
type Point struct {
	Time, SoC float64
}

// Profile is a piecewise-linear, concave, monotone non-decreasing
// SoC-over-time curve, clamped at the vehicle's battery capacity: a
// physically realistic charging station never charges faster as the
// battery approaches full, so consecutive segment slopes never
// increase.
type Profile struct {
	Points   []Point
	Capacity float64
}

// NewProfile validates and wraps a slice of breakpoints, sorted by
// increasing time, with Points[0].Time == 0 representing an empty
// battery at the start of charging.
func NewProfile(points []Point, capacity float64) (Profile, error) {
	if len(points) == 0 {
		return Profile{}, ErrEmptyProfile
	}
	sorted := append([]Point(nil), points...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Time < sorted[j].Time })

	for i := 1; i < len(sorted)-1; i++ {
		prevSlope := slope(sorted[i-1], sorted[i])
		nextSlope := slope(sorted[i], sorted[i+1])
		if nextSlope > prevSlope+1e-9 {
			return Profile{}, ErrNotConcave
		}
	}
	return Profile{Points: sorted, Capacity: capacity}, nil
}

func slope(a, b Point) float64 {
	if b.Time == a.Time {
		return 0
	}
	return (b.SoC - a.SoC) / (b.Time - a.Time)
}

// socAtTime returns the SoC reached after charging from empty (SoC=0)
// for duration t, clamped to the profile's last breakpoint and to
// Capacity.
func (p Profile) socAtTime(t float64) float64 {
	pts := p.Points
	if t <= pts[0].Time {
		return pts[0].SoC
	}
	last := pts[len(pts)-1]
	if t >= last.Time {
		return min(last.SoC, p.Capacity)
	}
	i := sort.Search(len(pts), func(i int) bool { return pts[i].Time >= t })
	a, b := pts[i-1], pts[i]
	frac := (t - a.Time) / (b.Time - a.Time)
	return min(a.SoC+frac*(b.SoC-a.SoC), p.Capacity)
}

// timeAtSoC returns the elapsed charging time (from empty) at which the
// profile reaches soc, the inverse of socAtTime. Requires soc within
// [Points[0].SoC, last SoC]; values above the profile's reach return the
// final breakpoint's time (charging cannot exceed what the curve
// describes).
func (p Profile) timeAtSoC(soc float64) float64 {
	pts := p.Points
	if soc <= pts[0].SoC {
		return pts[0].Time
	}
	last := pts[len(pts)-1]
	if soc >= last.SoC {
		return last.Time
	}
	i := sort.Search(len(pts), func(i int) bool { return pts[i].SoC >= soc })
	a, b := pts[i-1], pts[i]
	frac := (soc - a.SoC) / (b.SoC - a.SoC)
	return a.Time + frac*(b.Time-a.Time)
}

// ChargeTo returns the SoC reached after charging for duration t
// starting from socIn.
func (p Profile) ChargeTo(socIn, t float64) float64 {
	t0 := p.timeAtSoC(socIn)
	return p.socAtTime(t0 + t)
}

// TimeFor returns the charging duration required to go from socIn to
// socOut (socOut >= socIn).
func (p Profile) TimeFor(socIn, socOut float64) float64 {
	return p.timeAtSoC(socOut) - p.timeAtSoC(socIn)
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
