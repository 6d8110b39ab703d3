// Package conv converts between the user-facing units (millimetres,
// degrees) of the kernel boundary and the radians used internally by
// geometric predicates.
package conv

import "math"

// DtoR converts degrees to radians.
func DtoR(deg float64) float64 {
	return deg * math.Pi / 180
}

// RtoD converts radians to degrees.
func RtoD(rad float64) float64 {
	return rad * 180 / math.Pi
}
