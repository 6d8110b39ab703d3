package geom

import (
	"math"

	"github.com/samwillis/solidtype-sub007/vec/v3"
)

// SurfaceKind tags the concrete type stored behind a Surface.
type SurfaceKind int

const (
	// KindPlane is a PlaneSurface.
	KindPlane SurfaceKind = iota
	// KindCylinder is a CylinderSurface.
	KindCylinder
	// KindRevolved is a RevolvedSurface.
	KindRevolved
)

// Surface is a parametric (u,v) -> 3D surface. The current core only
// exercises KindPlane end-to-end; the type is kept open-ended per spec.
type Surface interface {
	Kind() SurfaceKind
	// Eval returns the 3D point at parameter (u,v).
	Eval(u, v float64) v3.Vec
	// Normal returns the surface normal at parameter (u,v).
	Normal(u, v float64) v3.Vec
	// Project returns the (u,v) parameters closest to p.
	Project(p v3.Vec) (u, v float64)
}

// PlaneSurface is an infinite plane with an orthonormal (xDir, yDir, normal)
// frame anchored at origin.
type PlaneSurface struct {
	Origin v3.Vec
	XDir   v3.Vec
	YDir   v3.Vec
	N      v3.Vec
}

// NewPlaneSurface builds a PlaneSurface from an origin and two orthonormal
// in-plane directions; the normal is xDir x yDir.
func NewPlaneSurface(origin, xDir, yDir v3.Vec) *PlaneSurface {
	xDir = xDir.Normalize()
	yDir = yDir.Normalize()
	return &PlaneSurface{
		Origin: origin,
		XDir:   xDir,
		YDir:   yDir,
		N:      xDir.Cross(yDir).Normalize(),
	}
}

// Kind implements Surface.
func (p *PlaneSurface) Kind() SurfaceKind { return KindPlane }

// Eval implements Surface.
func (p *PlaneSurface) Eval(u, v float64) v3.Vec {
	return p.Origin.Add(p.XDir.MulScalar(u)).Add(p.YDir.MulScalar(v))
}

// Normal implements Surface; constant over the whole plane.
func (p *PlaneSurface) Normal(u, v float64) v3.Vec {
	return p.N
}

// Project implements Surface.
func (p *PlaneSurface) Project(pt v3.Vec) (u, v float64) {
	d := pt.Sub(p.Origin)
	return d.Dot(p.XDir), d.Dot(p.YDir)
}

// CylinderSurface is a right circular cylinder: u parameterizes the angle
// around Axis and v the signed distance along it. Produced by extruding an
// arc or full-circle sketch entity (spec.md 4.4).
type CylinderSurface struct {
	Origin v3.Vec
	Axis   v3.Vec // unit
	XDir   v3.Vec // unit, perpendicular to Axis; angle-zero direction
	YDir   v3.Vec // unit, Axis x XDir
	Radius float64
}

// NewCylinderSurface builds a CylinderSurface from a center axis line and a
// reference direction for angle zero.
func NewCylinderSurface(origin, axis, xDir v3.Vec, radius float64) *CylinderSurface {
	axis = axis.Normalize()
	xDir = xDir.Normalize()
	return &CylinderSurface{Origin: origin, Axis: axis, XDir: xDir, YDir: axis.Cross(xDir).Normalize(), Radius: radius}
}

// Kind implements Surface.
func (c *CylinderSurface) Kind() SurfaceKind { return KindCylinder }

// Eval implements Surface.
func (c *CylinderSurface) Eval(u, v float64) v3.Vec {
	radial := c.XDir.MulScalar(math.Cos(u)).Add(c.YDir.MulScalar(math.Sin(u))).MulScalar(c.Radius)
	return c.Origin.Add(c.Axis.MulScalar(v)).Add(radial)
}

// Normal implements Surface: radially outward.
func (c *CylinderSurface) Normal(u, v float64) v3.Vec {
	return c.XDir.MulScalar(math.Cos(u)).Add(c.YDir.MulScalar(math.Sin(u))).Normalize()
}

// Project implements Surface.
func (c *CylinderSurface) Project(pt v3.Vec) (u, v float64) {
	d := pt.Sub(c.Origin)
	v = d.Dot(c.Axis)
	radial := d.Sub(c.Axis.MulScalar(v))
	u = math.Atan2(radial.Dot(c.YDir), radial.Dot(c.XDir))
	return u, v
}

// RevolvedSurface sweeps a 2D profile curve (defined in the axial half-plane,
// x = radial distance from Axis, y = distance along Axis) through angle u
// around Axis, anchored at Origin with RefDir marking angle zero (spec.md
// 4.5). One RevolvedSurface is built per revolved sketch entity.
type RevolvedSurface struct {
	Origin  v3.Vec
	Axis    v3.Vec // unit
	RefDir  v3.Vec // unit, perpendicular to Axis
	Profile Curve2D
}

// NewRevolvedSurface builds a RevolvedSurface.
func NewRevolvedSurface(origin, axis, refDir v3.Vec, profile Curve2D) *RevolvedSurface {
	axis = axis.Normalize()
	refDir = refDir.Normalize()
	return &RevolvedSurface{Origin: origin, Axis: axis, RefDir: refDir, Profile: profile}
}

// Kind implements Surface.
func (r *RevolvedSurface) Kind() SurfaceKind { return KindRevolved }

// Eval implements Surface: u is the revolve angle, v the profile parameter.
func (r *RevolvedSurface) Eval(u, v float64) v3.Vec {
	p := r.Profile.Eval(v)
	perp := r.Axis.Cross(r.RefDir).Normalize()
	radial := r.RefDir.MulScalar(math.Cos(u)).Add(perp.MulScalar(math.Sin(u))).MulScalar(p.X)
	return r.Origin.Add(r.Axis.MulScalar(p.Y)).Add(radial)
}

// Normal implements Surface via a central-difference cross product of the
// two parametric tangents; the profile curve's shape makes an analytic
// normal a per-kind special case not worth duplicating here.
func (r *RevolvedSurface) Normal(u, v float64) v3.Vec {
	const h = 1e-5
	du := r.Eval(u+h, v).Sub(r.Eval(u-h, v))
	dv := r.Eval(u, v+h).Sub(r.Eval(u, v-h))
	return du.Cross(dv).Normalize()
}

// Project implements Surface by a coarse grid search followed by local
// refinement; revolved surfaces are not generally invertible in closed form.
func (r *RevolvedSurface) Project(pt v3.Vec) (u, v float64) {
	best := math.Inf(1)
	const grid = 24
	for i := 0; i <= grid; i++ {
		for j := 0; j <= grid; j++ {
			uu := 2 * math.Pi * float64(i) / grid
			vMin, vMax := r.Profile.Bounds()
			vv := vMin + (vMax-vMin)*float64(j)/grid
			d := r.Eval(uu, vv).Sub(pt).Length2()
			if d < best {
				best, u, v = d, uu, vv
			}
		}
	}
	return u, v
}
