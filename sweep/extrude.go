// Package sweep builds solid bodies from 2D profiles: linear extrusion
// along a plane's normal and rotational revolution about an axis (spec.md
// 4.4, 4.5).
package sweep

import (
	"errors"
	"math"

	"github.com/samwillis/solidtype-sub007/geom"
	"github.com/samwillis/solidtype-sub007/naming"
	"github.com/samwillis/solidtype-sub007/profile"
	"github.com/samwillis/solidtype-sub007/sketch"
	"github.com/samwillis/solidtype-sub007/topo"
	v2 "github.com/samwillis/solidtype-sub007/vec/v2"
	v3 "github.com/samwillis/solidtype-sub007/vec/v3"
)

// ErrZeroDistance is returned when Extrude is asked to sweep a profile by a
// zero distance.
var ErrZeroDistance = errors.New("sweep: extrude distance must be non-zero")

// Extrude sweeps prof (expressed in plane-local 2D coordinates) by distance
// along plane's normal, producing a closed solid body: a bottom cap, a top
// cap and one ruled side face per profile entity (spec.md 4.4). A negative
// distance sweeps against the normal. The returned map carries, for every
// face produced, the loop id (spec.md 3.3) of the profile loop that
// generated it — side faces map to their own entity's loop, cap faces to
// the outer boundary loop, since a cap aggregates every profile loop into
// one face and the outer boundary is its primary constituent.
func Extrude(sk *sketch.Sketch, prof profile.Profile, plane sketch.Plane, distance float64) (*topo.Model, topo.BodyId, map[topo.FaceId]naming.LoopId, error) {
	if distance == 0 {
		return nil, topo.NullBodyId, nil, ErrZeroDistance
	}

	m := topo.NewModel()
	shell := m.AddShell(true)
	body := m.AddBody()
	if err := m.AddShellToBody(body, shell); err != nil {
		return nil, topo.NullBodyId, nil, err
	}

	loops := append([]profile.Loop{prof.Outer}, prof.Holes...)
	faceLoopId := make(map[topo.FaceId]naming.LoopId, len(loops))

	var bottomCapLoops, topCapLoops [][]topo.HalfEdgeId
	for loopIdx, lp := range loops {
		loopId := naming.ComputeLoopId(entityIds(lp))
		isHole := loopIdx > 0
		n := len(lp.Points)
		bottom := make([]topo.VertexId, n)
		top := make([]topo.VertexId, n)
		for i, p := range lp.Points {
			bottom[i] = m.AddVertex(plane.To3D(p))
			top[i] = m.AddVertex(plane.To3D(p).Add(plane.Normal.MulScalar(distance)))
		}

		ringEdgesBottom, err := ringEdges(m, sk, lp, bottom, plane, 0)
		if err != nil {
			return nil, topo.NullBodyId, nil, err
		}
		ringEdgesTop, err := ringEdges(m, sk, lp, top, plane, distance)
		if err != nil {
			return nil, topo.NullBodyId, nil, err
		}
		verticalEdges := make([]topo.EdgeId, n)
		for i := 0; i < n; i++ {
			e, err := m.AddEdge(bottom[i], top[i], geom.NullCurve3DIndex, 0, 0)
			if err != nil {
				return nil, topo.NullBodyId, nil, err
			}
			verticalEdges[i] = e
		}

		bottomCapHEs := make([]topo.HalfEdgeId, n)
		topCapHEs := make([]topo.HalfEdgeId, n)
		vertFwdHE := make([]topo.HalfEdgeId, n) // vertFwdHE[k]: forward half-edge over verticalEdges[k]
		vertBwdHE := make([]topo.HalfEdgeId, n) // vertBwdHE[k]: backward half-edge over verticalEdges[k]

		for i := 0; i < n; i++ {
			j := (i + 1) % n

			heBottomFwd, err := m.AddHalfEdge(ringEdgesBottom[i], topo.Forward)
			if err != nil {
				return nil, topo.NullBodyId, nil, err
			}
			heVertFwd, err := m.AddHalfEdge(verticalEdges[j], topo.Forward)
			if err != nil {
				return nil, topo.NullBodyId, nil, err
			}
			vertFwdHE[j] = heVertFwd
			heTopBwd, err := m.AddHalfEdge(ringEdgesTop[i], topo.Backward)
			if err != nil {
				return nil, topo.NullBodyId, nil, err
			}
			heVertBwd, err := m.AddHalfEdge(verticalEdges[i], topo.Backward)
			if err != nil {
				return nil, topo.NullBodyId, nil, err
			}
			vertBwdHE[i] = heVertBwd

			oe := lp.Entities[i]
			ent, _ := sk.Entity(oe.Entity)
			var surf geom.Surface
			faceReversed := false
			if ent.Kind == sketch.KindArc {
				surf = cylinderForArc(sk, ent, oe.Reversed, plane)
				faceReversed = isHole
			} else {
				surf = planeForSegment(m, bottom[i], bottom[j], plane)
			}
			surfIdx := m.Pools.Surfaces.Add(surf)
			sideFace := m.AddFace(surfIdx, faceReversed)
			faceLoopId[sideFace] = loopId
			sideLoop, err := m.AddLoop([]topo.HalfEdgeId{heBottomFwd, heVertFwd, heTopBwd, heVertBwd})
			if err != nil {
				return nil, topo.NullBodyId, nil, err
			}
			if err := m.AddLoopToFace(sideFace, sideLoop); err != nil {
				return nil, topo.NullBodyId, nil, err
			}
			if err := m.AddFaceToShell(shell, sideFace); err != nil {
				return nil, topo.NullBodyId, nil, err
			}

			heBottomBwd, err := m.AddHalfEdge(ringEdgesBottom[i], topo.Backward)
			if err != nil {
				return nil, topo.NullBodyId, nil, err
			}
			if err := m.SetTwin(heBottomFwd, heBottomBwd); err != nil {
				return nil, topo.NullBodyId, nil, err
			}
			bottomCapHEs[i] = heBottomBwd

			heTopFwd, err := m.AddHalfEdge(ringEdgesTop[i], topo.Forward)
			if err != nil {
				return nil, topo.NullBodyId, nil, err
			}
			if err := m.SetTwin(heTopBwd, heTopFwd); err != nil {
				return nil, topo.NullBodyId, nil, err
			}
			topCapHEs[i] = heTopFwd
		}
		for k := 0; k < n; k++ {
			if err := m.SetTwin(vertFwdHE[k], vertBwdHE[k]); err != nil {
				return nil, topo.NullBodyId, nil, err
			}
		}

		bottomCapLoops = append(bottomCapLoops, bottomCapHEs)
		topCapLoops = append(topCapLoops, topCapHEs)
	}

	// Cap faces aggregate every profile loop into one face; the outer
	// boundary loop (loops[0]) is treated as their generating loop.
	outerLoopId := naming.ComputeLoopId(entityIds(loops[0]))

	bottomFace, err := addCap(m, shell, geom.NewPlaneSurface(plane.Origin, plane.XDir, plane.YDir), bottomCapLoops)
	if err != nil {
		return nil, topo.NullBodyId, nil, err
	}
	faceLoopId[bottomFace] = outerLoopId

	topOrigin := plane.Origin.Add(plane.Normal.MulScalar(distance))
	topFace, err := addCap(m, shell, geom.NewPlaneSurface(topOrigin, plane.XDir, plane.YDir), topCapLoops)
	if err != nil {
		return nil, topo.NullBodyId, nil, err
	}
	faceLoopId[topFace] = outerLoopId

	return m, body, faceLoopId, nil
}

// entityIds extracts the raw sketch entity id sequence of a profile loop, the
// input to naming.ComputeLoopId (spec.md 3.3). Entity direction (Reversed) is
// ignored since loop ids need only be rotation-invariant, not
// direction-invariant.
func entityIds(lp profile.Loop) []int32 {
	ids := make([]int32, len(lp.Entities))
	for i, oe := range lp.Entities {
		ids[i] = int32(oe.Entity)
	}
	return ids
}

// ringEdges builds a new boundary edge for each segment
// of loop lp at the given vertex ring, using the sketch entity's kind to
// decide between a straight Line3D and a circular Arc3D.
func ringEdges(m *topo.Model, sk *sketch.Sketch, lp profile.Loop, verts []topo.VertexId, plane sketch.Plane, v float64) ([]topo.EdgeId, error) {
	n := len(verts)
	out := make([]topo.EdgeId, n)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		oe := lp.Entities[i]
		ent, _ := sk.Entity(oe.Entity)
		if ent.Kind == sketch.KindArc {
			start, _ := sk.Point(ent.Start)
			end, _ := sk.Point(ent.End)
			center, _ := sk.Point(ent.Center)
			c3 := plane.To3D(v2.Vec{X: center.X, Y: center.Y}).Add(plane.Normal.MulScalar(v))
			s2 := v2.Vec{X: start.X, Y: start.Y}
			e2 := v2.Vec{X: end.X, Y: end.Y}
			radius := math.Hypot(s2.X-center.X, s2.Y-center.Y)
			xDir3 := plane.To3D(s2).Add(plane.Normal.MulScalar(v)).Sub(c3).Normalize()
			yDir3 := plane.Normal.Cross(xDir3).Normalize()
			a0 := 0.0
			a1 := angleBetween(s2, e2, center, ent.CCW, ent.IsFullCircle())
			curve := &geom.Arc3D{Center: c3, XDir: xDir3, YDir: yDir3, Normal: plane.Normal, Radius: radius}
			idx := m.Pools.Curves3D.Add(curve)
			var e topo.EdgeId
			var err error
			if oe.Reversed {
				e, err = m.AddEdge(verts[j], verts[i], idx, a1, a0)
			} else {
				e, err = m.AddEdge(verts[i], verts[j], idx, a0, a1)
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

func mustVertexPos(m *topo.Model, id topo.VertexId) v3.Vec {
	vtx, _ := m.Vertex(id)
	return vtx.Pos
}

// angleBetween returns the signed sweep angle (end-of-arc relative to
// start) used to parameterize an Arc3D, matching the 2D arc's winding.
func angleBetween(start, end, center v2.Vec, ccw, full bool) float64 {
	a0 := math.Atan2(start.Y-center.Y, start.X-center.X)
	a1 := math.Atan2(end.Y-center.Y, end.X-center.X)
	if full {
		if ccw {
			return 2 * math.Pi
		}
		return -2 * math.Pi
	}
	d := a1 - a0
	if ccw && d < 0 {
		d += 2 * math.Pi
	} else if !ccw && d > 0 {
		d -= 2 * math.Pi
	}
	return d
}

// planeForSegment builds the planar side-face surface for a straight
// extruded segment: the parallelogram spanned by the segment direction and
// the extrude direction.
func planeForSegment(m *topo.Model, a, b topo.VertexId, plane sketch.Plane) *geom.PlaneSurface {
	pa, pb := mustVertexPos(m, a), mustVertexPos(m, b)
	xDir := pb.Sub(pa)
	if xDir.Length() == 0 {
		xDir = plane.XDir
	}
	return geom.NewPlaneSurface(pa, xDir, plane.Normal)
}

// cylinderForArc builds the cylindrical side-face surface for an extruded
// arc or full-circle segment.
func cylinderForArc(sk *sketch.Sketch, ent sketch.Entity, reversed bool, plane sketch.Plane) *geom.CylinderSurface {
	center, _ := sk.Point(ent.Center)
	start, _ := sk.Point(ent.Start)
	c3 := plane.To3D(v2.Vec{X: center.X, Y: center.Y})
	radius := math.Hypot(start.X-center.X, start.Y-center.Y)
	xDir3 := plane.To3D(v2.Vec{X: start.X, Y: start.Y}).Sub(c3).Normalize()
	return geom.NewCylinderSurface(c3, plane.Normal, xDir3, radius)
}

// addCap closes one end of the extrusion with a single face on surf,
// carrying one loop per entry in loops (the outer boundary first, holes
// after, per AddLoopToFace's convention). Returns the created face's id.
func addCap(m *topo.Model, shell topo.ShellId, surf geom.Surface, loops [][]topo.HalfEdgeId) (topo.FaceId, error) {
	surfIdx := m.Pools.Surfaces.Add(surf)
	face := m.AddFace(surfIdx, false)
	for _, ring := range loops {
		loop, err := m.AddLoop(ring)
		if err != nil {
			return topo.NullFaceId, err
		}
		if err := m.AddLoopToFace(face, loop); err != nil {
			return topo.NullFaceId, err
		}
	}
	if err := m.AddFaceToShell(shell, face); err != nil {
		return topo.NullFaceId, err
	}
	return face, nil
}
