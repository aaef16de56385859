package utils

import (
	"math"
)

// DegToRad converts degrees to radians.
func DegToRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(radians float64) float64 {
	return radians * 180 / math.Pi
}

// ClampUnit clamps x to [-1, 1]. Every acos/asin call site whose argument is bounded in
// theory (a dot product of unit quaternions, a rotation matrix entry) goes through this so
// that floating point drift past the bound yields the boundary angle rather than NaN.
// NaN is passed through unchanged.
func ClampUnit(x float64) float64 {
	switch {
	case x > 1:
		return 1
	case x < -1:
		return -1
	default:
		return x
	}
}

// SafeAcos is math.Acos with its argument clamped by ClampUnit.
func SafeAcos(x float64) float64 {
	return math.Acos(ClampUnit(x))
}

// SafeAsin is math.Asin with its argument clamped by ClampUnit.
func SafeAsin(x float64) float64 {
	return math.Asin(ClampUnit(x))
}

// SqrtNonNeg returns sqrt(x) for positive x and 0 otherwise.
func SqrtNonNeg(x float64) float64 {
	if x > 0 {
		return math.Sqrt(x)
	}
	return 0
}

// AngleDiff returns the signed difference a-b wrapped into (-pi, pi].
func AngleDiff(a, b float64) float64 {
	d := math.Mod(a-b, 2*math.Pi)
	switch {
	case d > math.Pi:
		d -= 2 * math.Pi
	case d <= -math.Pi:
		d += 2 * math.Pi
	}
	return d
}
