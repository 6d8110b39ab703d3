package sweep

import (
	"errors"
	"math"

	"github.com/samwillis/solidtype-sub007/geom"
	"github.com/samwillis/solidtype-sub007/profile"
	"github.com/samwillis/solidtype-sub007/sketch"
	"github.com/samwillis/solidtype-sub007/topo"
	v2 "github.com/samwillis/solidtype-sub007/vec/v2"
	v3 "github.com/samwillis/solidtype-sub007/vec/v3"
)

// ErrZeroAngle is returned when Revolve is asked to sweep by a zero angle.
var ErrZeroAngle = errors.New("sweep: revolve angle must be non-zero")

// ErrAxisIntersectsProfile is returned when a profile node lies on the
// revolve axis, which would collapse a side face to zero radius.
var ErrAxisIntersectsProfile = errors.New("sweep: profile touches revolve axis")

// Revolve sweeps prof by angle radians around the 2D axis line through
// axisOrigin with direction axisDir (both in plane-local coordinates),
// producing a solid body (spec.md 4.5). A full turn (|angle| >= 2*pi) omits
// the start/end caps; a partial turn closes them with planar faces.
func Revolve(sk *sketch.Sketch, prof profile.Profile, plane sketch.Plane, axisOrigin, axisDir v2.Vec, angle float64) (*topo.Model, topo.BodyId, error) {
	if angle == 0 {
		return nil, topo.NullBodyId, ErrZeroAngle
	}
	axisDir = axisDir.Normalize()
	full := math.Abs(angle) >= 2*math.Pi-1e-9

	m := topo.NewModel()
	shell := m.AddShell(true)
	body := m.AddBody()
	if err := m.AddShellToBody(body, shell); err != nil {
		return nil, topo.NullBodyId, err
	}

	axisOrigin3 := plane.To3D(axisOrigin)
	axisDir3 := plane.XDir.MulScalar(axisDir.X).Add(plane.YDir.MulScalar(axisDir.Y)).Normalize()

	loops := append([]profile.Loop{prof.Outer}, prof.Holes...)
	var startCapLoops, endCapLoops [][]topo.HalfEdgeId

	for _, lp := range loops {
		n := len(lp.Points)
		for _, p := range lp.Points {
			if math.Abs(rh(p, axisOrigin, axisDir).X) <= 1e-12 {
				return nil, topo.NullBodyId, ErrAxisIntersectsProfile
			}
		}

		startVerts := makeRevolvedRing(m, plane, axisOrigin3, axisDir3, lp.Points, 0)
		endVerts := startVerts
		if !full {
			endVerts = makeRevolvedRing(m, plane, axisOrigin3, axisDir3, lp.Points, angle)
		}

		startEdges, err := revolvedRingEdges(m, sk, lp, startVerts, plane, axisOrigin3, axisDir3, 0)
		if err != nil {
			return nil, topo.NullBodyId, err
		}
		var endEdges []topo.EdgeId
		if full {
			endEdges = startEdges
		} else {
			endEdges, err = revolvedRingEdges(m, sk, lp, endVerts, plane, axisOrigin3, axisDir3, angle)
			if err != nil {
				return nil, topo.NullBodyId, err
			}
		}

		sideFaces, startCapHEs, endCapHEs, err := buildSideFaces(m, shell, sk, lp, plane, axisOrigin, axisDir, axisOrigin3, axisDir3, startVerts, endVerts, startEdges, endEdges, angle, full)
		if err != nil {
			return nil, topo.NullBodyId, err
		}
		_ = sideFaces

		if !full {
			startCapLoops = append(startCapLoops, startCapHEs)
			endCapLoops = append(endCapLoops, endCapHEs)
		}
	}

	if !full {
		startSurf := geom.NewPlaneSurface(axisOrigin3, plane.XDir, plane.YDir)
		if err := addCap(m, shell, startSurf, startCapLoops); err != nil {
			return nil, topo.NullBodyId, err
		}
		endXDir := rotateAboutAxis(plane.XDir, axisDir3, angle)
		endYDir := rotateAboutAxis(plane.YDir, axisDir3, angle)
		endSurf := geom.NewPlaneSurface(axisOrigin3, endXDir, endYDir)
		if err := addCap(m, shell, endSurf, endCapLoops); err != nil {
			return nil, topo.NullBodyId, err
		}
	}

	return m, body, nil
}

// rh resolves p into (radial distance, height-along-axis) coordinates
// relative to the 2D axis line (axisOrigin, axisDir).
func rh(p, axisOrigin, axisDir v2.Vec) v2.Vec {
	d := p.Sub(axisOrigin)
	h := d.Dot(axisDir)
	r := d.Dot(axisDir.Perp())
	return v2.Vec{X: r, Y: h}
}

// rotateAboutAxis rotates vector v by angle radians about unit axis (3D
// Rodrigues' rotation formula).
func rotateAboutAxis(v, axis v3.Vec, angle float64) v3.Vec {
	c, s := math.Cos(angle), math.Sin(angle)
	return v.MulScalar(c).
		Add(axis.Cross(v).MulScalar(s)).
		Add(axis.MulScalar(axis.Dot(v) * (1 - c)))
}

// makeRevolvedRing places one vertex per loop node, each node's plane-local
// position rotated by angle about the 3D axis.
func makeRevolvedRing(m *topo.Model, plane sketch.Plane, axisOrigin3, axisDir3 v3.Vec, pts []v2.Vec, angle float64) []topo.VertexId {
	out := make([]topo.VertexId, len(pts))
	for i, p := range pts {
		p3 := plane.To3D(p)
		rel := p3.Sub(axisOrigin3)
		rotated := rotateAboutAxis(rel, axisDir3, angle)
		out[i] = m.AddVertex(axisOrigin3.Add(rotated))
	}
	return out
}

// revolvedRingEdges builds the boundary edges of one ring at sweep angle
// theta, mirroring ringEdges' line/arc dispatch.
func revolvedRingEdges(m *topo.Model, sk *sketch.Sketch, lp profile.Loop, verts []topo.VertexId, plane sketch.Plane, axisOrigin3, axisDir3 v3.Vec, theta float64) ([]topo.EdgeId, error) {
	n := len(verts)
	out := make([]topo.EdgeId, n)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		oe := lp.Entities[i]
		ent, _ := sk.Entity(oe.Entity)
		if ent.Kind == sketch.KindArc {
			center, _ := sk.Point(ent.Center)
			start, _ := sk.Point(ent.Start)
			c2 := v2.Vec{X: center.X, Y: center.Y}
			s2 := v2.Vec{X: start.X, Y: start.Y}
			radius := math.Hypot(s2.X-c2.X, s2.Y-c2.Y)
			c3 := axisOrigin3.Add(rotateAboutAxis(plane.To3D(c2).Sub(axisOrigin3), axisDir3, theta))
			xDir3 := axisOrigin3.Add(rotateAboutAxis(plane.To3D(s2).Sub(axisOrigin3), axisDir3, theta)).Sub(c3).Normalize()
			planeNormal := plane.Normal
			normal3 := rotateAboutAxis(planeNormal, axisDir3, theta)
			yDir3 := normal3.Cross(xDir3).Normalize()
			end, _ := sk.Point(ent.End)
			e2 := v2.Vec{X: end.X, Y: end.Y}
			a1 := angleBetween(s2, e2, c2, ent.CCW, ent.IsFullCircle())
			curve := &geom.Arc3D{Center: c3, XDir: xDir3, YDir: yDir3, Normal: normal3, Radius: radius}
			idx := m.Pools.Curves3D.Add(curve)
			var e topo.EdgeId
			var err error
			if oe.Reversed {
				e, err = m.AddEdge(verts[j], verts[i], idx, a1, 0)
			} else {
				e, err = m.AddEdge(verts[i], verts[j], idx, 0, a1)
			}
			if err != nil {
				return nil, err
			}
			out[i] = e
			continue
		}
		start3 := mustVertexPos(m, verts[i])
		end3 := mustVertexPos(m, verts[j])
		idx := m.Pools.Curves3D.Add(&geom.Line3D{Origin: start3, Dir: end3.Sub(start3)})
		e, err := m.AddEdge(verts[i], verts[j], idx, 0, 1)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

// buildSideFaces constructs one ruled or revolved side face per profile
// entity between the start and end rings, wiring angular and radial edges
// and twins exactly as Extrude does between its bottom and top rings.
func buildSideFaces(m *topo.Model, shell topo.ShellId, sk *sketch.Sketch, lp profile.Loop, plane sketch.Plane, axisOrigin, axisDir v2.Vec, axisOrigin3, axisDir3 v3.Vec, startVerts, endVerts []topo.VertexId, startEdges, endEdges []topo.EdgeId, angle float64, full bool) ([]topo.FaceId, []topo.HalfEdgeId, []topo.HalfEdgeId, error) {
	n := len(startVerts)
	radialEdges := make([]topo.EdgeId, n)
	for i := 0; i < n; i++ {
		if full {
			radialEdges[i] = topo.NullEdgeId
			continue
		}
		e, err := m.AddEdge(startVerts[i], endVerts[i], geom.NullCurve3DIndex, 0, 0)
		if err != nil {
			return nil, nil, nil, err
		}
		radialEdges[i] = e
	}

	startCapHEs := make([]topo.HalfEdgeId, n)
	endCapHEs := make([]topo.HalfEdgeId, n)
	radFwdHE := make([]topo.HalfEdgeId, n)
	radBwdHE := make([]topo.HalfEdgeId, n)
	var faces []topo.FaceId

	for i := 0; i < n; i++ {
		j := (i + 1) % n

		heStartFwd, err := m.AddHalfEdge(startEdges[i], topo.Forward)
		if err != nil {
			return nil, nil, nil, err
		}

		var loopHEs []topo.HalfEdgeId
		if full {
			heEndBwd, err := m.AddHalfEdge(endEdges[i], topo.Backward)
			if err != nil {
				return nil, nil, nil, err
			}
			loopHEs = []topo.HalfEdgeId{heStartFwd, heEndBwd}
		} else {
			heRadFwd, err := m.AddHalfEdge(radialEdges[j], topo.Forward)
			if err != nil {
				return nil, nil, nil, err
			}
			radFwdHE[j] = heRadFwd
			heEndBwd, err := m.AddHalfEdge(endEdges[i], topo.Backward)
			if err != nil {
				return nil, nil, nil, err
			}
			heRadBwd, err := m.AddHalfEdge(radialEdges[i], topo.Backward)
			if err != nil {
				return nil, nil, nil, err
			}
			radBwdHE[i] = heRadBwd
			loopHEs = []topo.HalfEdgeId{heStartFwd, heRadFwd, heEndBwd, heRadBwd}
		}

		oe := lp.Entities[i]
		ent, _ := sk.Entity(oe.Entity)
		surf := revolvedSurfaceForEntity(sk, ent, axisOrigin, axisDir, axisOrigin3, axisDir3, plane, oe.Reversed)
		surfIdx := m.Pools.Surfaces.Add(surf)
		face := m.AddFace(surfIdx, false)
		loop, err := m.AddLoop(loopHEs)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := m.AddLoopToFace(face, loop); err != nil {
			return nil, nil, nil, err
		}
		if err := m.AddFaceToShell(shell, face); err != nil {
			return nil, nil, nil, err
		}
		faces = append(faces, face)

		if !full {
			heStartBwd, err := m.AddHalfEdge(startEdges[i], topo.Backward)
			if err != nil {
				return nil, nil, nil, err
			}
			if err := m.SetTwin(heStartFwd, heStartBwd); err != nil {
				return nil, nil, nil, err
			}
			startCapHEs[i] = heStartBwd

			heEndFwd, err := m.AddHalfEdge(endEdges[i], topo.Forward)
			if err != nil {
				return nil, nil, nil, err
			}
			if err := m.SetTwin(loopHEs[2], heEndFwd); err != nil {
				return nil, nil, nil, err
			}
			endCapHEs[i] = heEndFwd
		}
	}

	if !full {
		for k := 0; k < n; k++ {
			if err := m.SetTwin(radFwdHE[k], radBwdHE[k]); err != nil {
				return nil, nil, nil, err
			}
		}
	}

	return faces, startCapHEs, endCapHEs, nil
}

// revolvedSurfaceForEntity builds the side-face surface for one profile
// entity: a RevolvedSurface carrying the entity's shape reparameterized into
// the axis's (radial, height) half-plane.
func revolvedSurfaceForEntity(sk *sketch.Sketch, ent sketch.Entity, axisOrigin, axisDir v2.Vec, axisOrigin3, axisDir3 v3.Vec, plane sketch.Plane, reversed bool) *geom.RevolvedSurface {
	start, _ := sk.Point(ent.Start)
	end, _ := sk.Point(ent.End)
	s2 := v2.Vec{X: start.X, Y: start.Y}
	e2 := v2.Vec{X: end.X, Y: end.Y}
	sRH := rh(s2, axisOrigin, axisDir)
	eRH := rh(e2, axisOrigin, axisDir)

	refDir := axisDir.Perp()
	refDir3 := plane.XDir.MulScalar(refDir.X).Add(plane.YDir.MulScalar(refDir.Y)).Normalize()

	var profileCurve geom.Curve2D
	if ent.Kind == sketch.KindArc {
		center, _ := sk.Point(ent.Center)
		c2 := v2.Vec{X: center.X, Y: center.Y}
		cRH := rh(c2, axisOrigin, axisDir)
		radius := math.Hypot(sRH.X-cRH.X, sRH.Y-cRH.Y)
		a0 := math.Atan2(sRH.Y-cRH.Y, sRH.X-cRH.X)
		a1 := math.Atan2(eRH.Y-cRH.Y, eRH.X-cRH.X)
		if ent.IsFullCircle() {
			if ent.CCW {
				a1 = a0 + 2*math.Pi
			} else {
				a1 = a0 - 2*math.Pi
			}
		} else if ent.CCW && a1 < a0 {
			a1 += 2 * math.Pi
		} else if !ent.CCW && a1 > a0 {
			a1 -= 2 * math.Pi
		}
		profileCurve = &geom.Arc2D{Center: v2.Vec{X: cRH.X, Y: cRH.Y}, Radius: radius, StartAngle: a0, EndAngle: a1, CCW: ent.CCW}
	} else {
		profileCurve = &geom.Line2D{Start: sRH, End: eRH}
	}
	if reversed {
		profileCurve = reverseCurve2D(profileCurve)
	}

	return geom.NewRevolvedSurface(axisOrigin3, axisDir3, refDir3, profileCurve)
}

// reverseCurve2D returns a curve equal to c but evaluated back to front.
func reverseCurve2D(c geom.Curve2D) geom.Curve2D {
	switch v := c.(type) {
	case *geom.Line2D:
		return &geom.Line2D{Start: v.End, End: v.Start}
	case *geom.Arc2D:
		return &geom.Arc2D{Center: v.Center, Radius: v.Radius, StartAngle: v.EndAngle, EndAngle: v.StartAngle, CCW: !v.CCW}
	default:
		return c
	}
}
