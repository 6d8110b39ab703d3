package geom

import (
	"math"

	"github.com/samwillis/solidtype-sub007/vec/v3"
)

// Curve3DKind tags the concrete type stored behind a Curve3D.
type Curve3DKind int

const (
	// KindLine3D is a Line3D.
	KindLine3D Curve3DKind = iota
	// KindArc3D is an Arc3D.
	KindArc3D
)

// Curve3D is a parametric t -> 3D point curve, same-parameter with the
// edge(s) that reference it (spec.md 3.1).
type Curve3D interface {
	Kind() Curve3DKind
	Eval(t float64) v3.Vec
	Tangent(t float64) v3.Vec
}

// Line3D is a 3D line through Origin with direction Dir (not required to be
// unit length; Eval(t) = Origin + t*Dir).
type Line3D struct {
	Origin v3.Vec
	Dir    v3.Vec
}

// Kind implements Curve3D.
func (l *Line3D) Kind() Curve3DKind { return KindLine3D }

// Eval implements Curve3D.
func (l *Line3D) Eval(t float64) v3.Vec {
	return l.Origin.Add(l.Dir.MulScalar(t))
}

// Tangent implements Curve3D.
func (l *Line3D) Tangent(t float64) v3.Vec {
	return l.Dir.Normalize()
}

// Arc3D is a circular arc in 3D, parameterized by angle in radians: t is the
// angle swept from XDir about Normal, starting at Center + Radius*XDir.
type Arc3D struct {
	Center v3.Vec
	XDir   v3.Vec
	YDir   v3.Vec
	Normal v3.Vec
	Radius float64
}

// Kind implements Curve3D.
func (a *Arc3D) Kind() Curve3DKind { return KindArc3D }

// Eval implements Curve3D.
func (a *Arc3D) Eval(t float64) v3.Vec {
	c, s := math.Cos(t), math.Sin(t)
	return a.Center.Add(a.XDir.MulScalar(a.Radius * c)).Add(a.YDir.MulScalar(a.Radius * s))
}

// Tangent implements Curve3D.
func (a *Arc3D) Tangent(t float64) v3.Vec {
	c, s := math.Cos(t), math.Sin(t)
	return a.XDir.MulScalar(-s).Add(a.YDir.MulScalar(c)).Normalize()
}
