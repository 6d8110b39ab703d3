package boolean

import (
	"math"

	"github.com/samwillis/solidtype-sub007/geom"
	"github.com/samwillis/solidtype-sub007/topo"
	v2 "github.com/samwillis/solidtype-sub007/vec/v2"
	v3 "github.com/samwillis/solidtype-sub007/vec/v3"
)

// piece is one bounded region of a face after imprinting: a single simple
// polygon (holes already bridged into the outer ring, see bridgeFace) plus
// its classification against the other body.
type piece struct {
	ring     []v2.Vec
	face     topo.FaceId
	body     int
	plane    *geom.PlaneSurface
	label    Label
}

// faceAABBIndex wraps topo.FaceIndex with the facePlane payload Stage 2's
// face-pair prefilter (spec.md 4.6) needs alongside each candidate's id.
type faceAABBIndex struct {
	idx  *topo.FaceIndex
	byId map[topo.FaceId]facePlane
}

func buildAABB(m *topo.Model, faces []facePlane) (*faceAABBIndex, error) {
	byId := make(map[topo.FaceId]facePlane, len(faces))
	ids := make([]topo.FaceId, 0, len(faces))
	for _, fp := range faces {
		byId[fp.face] = fp
		ids = append(ids, fp.face)
	}
	idx, err := topo.NewFaceIndexFromIds(m, ids, 1e-9)
	if err != nil {
		return nil, err
	}
	return &faceAABBIndex{idx: idx, byId: byId}, nil
}

func (idx *faceAABBIndex) query(box v3.Box3, tol float64) []facePlane {
	ids, err := idx.idx.Query(box, tol)
	if err != nil {
		return nil
	}
	out := make([]facePlane, 0, len(ids))
	for _, id := range ids {
		out = append(out, idx.byId[id])
	}
	return out
}

// bridgeFace collapses a face's outer boundary and holes into a single
// simple polygon by splicing each hole in via a zero-width bridge to its
// nearest outer vertex, the same technique the tessellator uses to feed
// ear clipping a hole-free ring.
func bridgeFace(fp facePlane) []v2.Vec {
	ring := append([]v2.Vec(nil), fp.outer...)
	for _, hole := range fp.holes {
		ring = spliceHole(ring, hole)
	}
	return ring
}

// spliceHole inserts hole into outer at the outer vertex nearest to the
// hole's own nearest point, duplicating both bridge endpoints so the
// result is a single closed, simple ring.
func spliceHole(outer, hole []v2.Vec) []v2.Vec {
	if len(hole) == 0 {
		return outer
	}
	bestOuter, bestHole := 0, 0
	bestD := math.Inf(1)
	for i, op := range outer {
		for j, hp := range hole {
			d := op.Sub(hp).Length2()
			if d < bestD {
				bestD, bestOuter, bestHole = d, i, j
			}
		}
	}
	out := make([]v2.Vec, 0, len(outer)+len(hole)+2)
	out = append(out, outer[:bestOuter+1]...)
	for k := 0; k <= len(hole); k++ {
		out = append(out, hole[(bestHole+k)%len(hole)])
	}
	out = append(out, outer[bestOuter:]...)
	return out
}

// splitPieces clips every current piece of a face by the halfplane pair
// defined by the line through p in direction d, replacing any piece the
// line actually crosses with its two clipped halves.
func splitPieces(pieces []*piece, p, d v2.Vec, tol float64) []*piece {
	if d.Length() < 1e-12 {
		return pieces
	}
	var out []*piece
	for _, pc := range pieces {
		left, right, cut := splitPolygonByLine(pc.ring, p, d, tol)
		if !cut {
			out = append(out, pc)
			continue
		}
		out = append(out, &piece{ring: left, face: pc.face, body: pc.body, plane: pc.plane})
		out = append(out, &piece{ring: right, face: pc.face, body: pc.body, plane: pc.plane})
	}
	return out
}

// side reports which halfplane of the line through p in direction d the
// point q lies in: positive to the left, negative to the right.
func side(p, d, q v2.Vec) float64 {
	return d.Cross(q.Sub(p))
}

// splitPolygonByLine clips poly by the infinite line through p with
// direction d using Sutherland-Hodgman, once for each halfplane. cut is
// false (and left, right nil) when the line does not actually separate
// two non-degenerate pieces of poly.
func splitPolygonByLine(poly []v2.Vec, p, d v2.Vec, tol float64) (left, right []v2.Vec, cut bool) {
	left = clipHalfplane(poly, p, d, tol)
	right = clipHalfplane(poly, p, v2.Vec{X: -d.X, Y: -d.Y}, tol)
	if polygonArea(left) < tol*tol || polygonArea(right) < tol*tol {
		return nil, nil, false
	}
	return left, right, true
}

// clipHalfplane keeps the part of poly on the non-negative side of the
// line through p in direction d (Sutherland-Hodgman).
func clipHalfplane(poly []v2.Vec, p, d v2.Vec, tol float64) []v2.Vec {
	n := len(poly)
	if n == 0 {
		return nil
	}
	var out []v2.Vec
	for i := 0; i < n; i++ {
		cur := poly[i]
		prev := poly[(i+n-1)%n]
		curIn := side(p, d, cur) >= -tol
		prevIn := side(p, d, prev) >= -tol
		if curIn {
			if !prevIn {
				out = append(out, lineIntersect(prev, cur, p, d))
			}
			out = append(out, cur)
		} else if prevIn {
			out = append(out, lineIntersect(prev, cur, p, d))
		}
	}
	return out
}

// lineIntersect returns the point where segment a-b crosses the line
// through p with direction d.
func lineIntersect(a, b, p, d v2.Vec) v2.Vec {
	denom := d.Cross(b.Sub(a))
	if denom == 0 {
		return a
	}
	t := d.Cross(p.Sub(a)) / denom
	return a.Add(b.Sub(a).MulScalar(t))
}

func polygonArea(poly []v2.Vec) float64 {
	a := v2.SignedArea(poly)
	if a < 0 {
		return -a
	}
	return a
}

// polygonCentroid returns a representative interior point of poly: its
// arithmetic centroid if that lies inside, otherwise the midpoint of its
// first edge nudged inward.
func polygonCentroid(poly []v2.Vec) v2.Vec {
	if len(poly) == 0 {
		return v2.Vec{}
	}
	sum := v2.Vec{}
	for _, p := range poly {
		sum = sum.Add(p)
	}
	c := sum.MulScalar(1 / float64(len(poly)))
	if v2.PointInPolygon(c, poly) {
		return c
	}
	mid := poly[0].Add(poly[1]).MulScalar(0.5)
	inward := poly[1].Sub(poly[0]).Perp() // interior side of a CCW ring
	if v2.SignedArea(poly) < 0 {
		inward = inward.MulScalar(-1)
	}
	return mid.Add(inward.MulScalar(1e-3))
}
