// Package tol carries the numeric tolerance context threaded through every
// geometric predicate in the kernel. Callers may widen it for lenient
// booleans; there is no global tolerance.
package tol

// Context bundles the tolerances used by geometric predicates. Zero value
// is not usable; construct with Default or NewContext.
type Context struct {
	// Length is the base linear tolerance, in the kernel's working units
	// (millimetres).
	Length float64
	// Angle is the base angular tolerance, in radians.
	Angle float64
}

// Default returns the kernel's standard tolerance context: 1e-6 mm linear,
// 1e-6 rad angular.
func Default() Context {
	return Context{Length: 1e-6, Angle: 1e-6}
}

// NewContext builds a Context from explicit linear and angular tolerances.
func NewContext(length, angle float64) Context {
	return Context{Length: length, Angle: angle}
}

// Widen returns a copy of c with both tolerances scaled by factor, for
// callers that want a more lenient boolean or healing pass.
func (c Context) Widen(factor float64) Context {
	return Context{Length: c.Length * factor, Angle: c.Angle * factor}
}

// VertexMergeTolerance is the default distance below which healing merges
// two vertices: ctx.Length.
func (c Context) VertexMergeTolerance() float64 {
	return c.Length
}

// ShortEdgeThreshold is the default length below which healing collapses
// an edge: 10 * ctx.Length.
func (c Context) ShortEdgeThreshold() float64 {
	return 10 * c.Length
}

// SmallFaceAreaThreshold is the default area below which healing removes a
// face: (10 * ctx.Length)^2.
func (c Context) SmallFaceAreaThreshold() float64 {
	t := c.ShortEdgeThreshold()
	return t * t
}
