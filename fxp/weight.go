// Package fxp implements the fixed-point integer arithmetic used as the
// base unit of cost throughout the routing engine.
//
// A Weight stores a duration in milliseconds (or, for consumption values,
// energy in milliwatt-hours) as a signed 32-bit integer. The integer
// costs elsewhere (rgraph edge weights, the bi-criteria search's points)
// use the same 1e-3 scale, as int64, so those comparisons are exact; the
// curve and piecewise function algebra works in float64 whole units.
//
// Arithmetic is saturating: adding two weights that would overflow int32
// clamps to Inf rather than wrapping, keeping every numeric policy in
// this package explicit and panic-free.
package fxp

import "math"

// Weight is a fixed-point quantity at scale 1e-3 (milliseconds, or
// mWh for consumption).
type Weight int32

// Inf is the reserved sentinel representing "unreachable" / "infinite cost".
// It equals the maximum representable positive Weight.
const Inf Weight = math.MaxInt32

// Zero is the additive identity.
const Zero Weight = 0

// Scale is the number of fixed-point units per whole unit (1 second, or
// 1 Wh for consumption), i.e. the reciprocal of the 1e-3 resolution.
const Scale = 1000

// Add returns a+b, saturating to Inf on overflow or if either operand is
// already Inf. Add never panics.
func Add(a, b Weight) Weight {
	if a == Inf || b == Inf {
		return Inf
	}
	sum := int64(a) + int64(b)
	if sum >= int64(Inf) {
		return Inf
	}
	return Weight(sum)
}

// Sub returns a-b, clamped to Zero if the result would be negative and to
// Inf if a is already Inf (subtracting from "unreachable" is still
// "unreachable" for our purposes: the caller should never do this on a
// finite cost).
func Sub(a, b Weight) Weight {
	if a == Inf {
		return Inf
	}
	diff := int64(a) - int64(b)
	if diff < 0 {
		return Zero
	}
	if diff >= int64(Inf) {
		return Inf
	}
	return Weight(diff)
}

// Less reports whether a < b, treating Inf as larger than any finite value.
func Less(a, b Weight) bool { return a < b }

// Max returns the larger of a, b.
func Max(a, b Weight) Weight {
	if a > b {
		return a
	}
	return b
}

// Min returns the smaller of a, b.
func Min(a, b Weight) Weight {
	if a < b {
		return a
	}
	return b
}

// FromFloat converts a floating-point value in whole units (seconds, Wh)
// to a Weight, truncating towards zero. Values that would overflow
// int32 are clamped to Inf.
func FromFloat(x float64) Weight {
	if math.IsNaN(x) || x >= float64(Inf)/Scale {
		return Inf
	}
	if x <= 0 {
		return Zero
	}
	return Weight(x * Scale)
}

// ToFloat converts a Weight back to a floating-point value in whole units.
// Inf maps to math.Inf(1).
func ToFloat(w Weight) float64 {
	if w == Inf {
		return math.Inf(1)
	}
	return float64(w) / Scale
}

// FromMillis builds a Weight directly from a millisecond (or mWh)
// integer count, the native representation with no conversion loss.
func FromMillis(ms int64) Weight {
	if ms >= int64(Inf) {
		return Inf
	}
	if ms < 0 {
		return Zero
	}
	return Weight(ms)
}

// Millis returns the raw fixed-point integer value.
func Millis(w Weight) int64 { return int64(w) }

// IsInf reports whether w is the reserved "unreachable" sentinel.
func IsInf(w Weight) bool { return w == Inf }
