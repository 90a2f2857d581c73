// Package utils contains small numeric and environment helpers shared across packages.
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

// NormalizeAnglePositive maps an angle in radians onto [0, 2π).
func NormalizeAnglePositive(angle float64) float64 {
	a := math.Mod(angle, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// NormalizeAngle maps an angle in radians onto (-π, π].
func NormalizeAngle(angle float64) float64 {
	a := NormalizeAnglePositive(angle)
	if a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// ShortestAngularDistance returns the signed difference in (-π, π] that, added to from, reaches an
// angle equivalent to to along the shorter arc.
func ShortestAngularDistance(from, to float64) float64 {
	return NormalizeAngle(to - from)
}

// Float64AlmostEqual compares two float64s and returns if the difference between them is less
// than epsilon.
func Float64AlmostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

// MaxInt returns the maximum of two ints.
func MaxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
