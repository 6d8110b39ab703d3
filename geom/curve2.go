package geom

import (
	"math"

	"github.com/samwillis/solidtype-sub007/vec/v2"
)

// Curve2DKind tags the concrete type stored behind a Curve2D.
type Curve2DKind int

const (
	// KindLine2D is a Line2D.
	KindLine2D Curve2DKind = iota
	// KindArc2D is an Arc2D.
	KindArc2D
)

// Curve2D is a parametric t -> 2D point curve in a surface's UV space.
type Curve2D interface {
	Kind() Curve2DKind
	Eval(t float64) v2.Vec
	// Bounds returns the closed parameter interval [tMin, tMax] of the
	// curve's natural extent.
	Bounds() (tMin, tMax float64)
}

// Line2D is a straight segment from Start to End; Eval(t) lerps for
// t in [0,1].
type Line2D struct {
	Start, End v2.Vec
}

// Kind implements Curve2D.
func (l *Line2D) Kind() Curve2DKind { return KindLine2D }

// Eval implements Curve2D.
func (l *Line2D) Eval(t float64) v2.Vec {
	return l.Start.Lerp(l.End, t)
}

// Bounds implements Curve2D.
func (l *Line2D) Bounds() (float64, float64) { return 0, 1 }

// Arc2D is a circular (or full-circle) arc. CCW selects winding direction;
// a full circle has StartAngle == EndAngle - 2*pi (or equal start/end
// points per the sketch convention).
type Arc2D struct {
	Center              v2.Vec
	Radius              float64
	StartAngle, EndAngle float64
	CCW                 bool
}

// Kind implements Curve2D.
func (a *Arc2D) Kind() Curve2DKind { return KindArc2D }

// Eval implements Curve2D.
func (a *Arc2D) Eval(t float64) v2.Vec {
	angle := a.StartAngle + t*(a.EndAngle-a.StartAngle)
	return v2.Vec{
		X: a.Center.X + a.Radius*math.Cos(angle),
		Y: a.Center.Y + a.Radius*math.Sin(angle),
	}
}

// Bounds implements Curve2D.
func (a *Arc2D) Bounds() (float64, float64) { return 0, 1 }

// IsFullCircle reports whether the arc sweeps a full turn.
func (a *Arc2D) IsFullCircle(angleTol float64) bool {
	sweep := math.Abs(a.EndAngle - a.StartAngle)
	return math.Abs(sweep-2*math.Pi) <= angleTol
}
