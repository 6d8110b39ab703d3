package heal

import (
	"github.com/samwillis/solidtype-sub007/tol"
	"github.com/samwillis/solidtype-sub007/topo"
	v3 "github.com/samwillis/solidtype-sub007/vec/v3"
)

// vertKey buckets a position onto a grid sized to the merge tolerance so
// coincident-within-tolerance vertices land in the same bucket.
type vertKey struct{ x, y, z int64 }

func gridKey(p v3.Vec, cell float64) vertKey {
	if cell <= 0 {
		cell = 1e-9
	}
	return vertKey{
		x: int64(p.X / cell),
		y: int64(p.Y / cell),
		z: int64(p.Z / cell),
	}
}

// mergeCoincidentVertices groups every live vertex reachable from body by a
// position grid sized to ctx's vertex-merge tolerance and rewires every edge
// endpoint in a group onto the group's first vertex, deleting the rest
// (spec.md 4.7, "Vertex merging"). Grounded on the teacher's pointCache
// value-dedup-map pattern (step/converter.go), generalized from exact-key
// dedup to a tolerance grid.
func mergeCoincidentVertices(m *topo.Model, body topo.BodyId, ctx tol.Context) (int, error) {
	verts, err := bodyVertices(m, body)
	if err != nil {
		return 0, err
	}
	cell := ctx.VertexMergeTolerance()
	groups := make(map[vertKey][]topo.VertexId)
	for _, v := range verts {
		vv, err := m.Vertex(v)
		if err != nil {
			return 0, err
		}
		k := gridKey(vv.Pos, cell)
		groups[k] = append(groups[k], v)
	}

	merged := 0
	for _, group := range groups {
		if len(group) < 2 {
			continue
		}
		canon := group[0]
		canonV, err := m.Vertex(canon)
		if err != nil {
			return merged, err
		}
		sum := canonV.Pos
		n := 1
		for _, v := range group[1:] {
			vv, err := m.Vertex(v)
			if err != nil {
				return merged, err
			}
			sum = sum.Add(vv.Pos)
			n++
		}
		avg := sum.MulScalar(1 / float64(n))
		m.SetVertexPos(canon, avg)

		for _, v := range group[1:] {
			if err := rewireVertex(m, body, v, canon); err != nil {
				return merged, err
			}
			m.MarkVertexDeleted(v)
			merged++
		}
	}
	return merged, nil
}

// rewireVertex redirects every half-edge of body that starts or ends at
// from onto to, via the model's edge-vertex rewiring API.
func rewireVertex(m *topo.Model, body topo.BodyId, from, to topo.VertexId) error {
	edges, err := bodyEdges(m, body)
	if err != nil {
		return err
	}
	for _, eid := range edges {
		e, err := m.Edge(eid)
		if err != nil {
			return err
		}
		if e.Start == from {
			if err := m.RewireEdgeVertex(eid, from, to); err != nil {
				return err
			}
		}
		if e.End == from {
			if err := m.RewireEdgeVertex(eid, from, to); err != nil {
				return err
			}
		}
	}
	return nil
}

// collapseShortEdges marks every live edge of body shorter than ctx's
// short-edge threshold for collapse: its two endpoints are merged to their
// midpoint and the edge itself is deleted (spec.md 4.7, "Short-edge
// collapse").
func collapseShortEdges(m *topo.Model, body topo.BodyId, ctx tol.Context) (int, error) {
	threshold := ctx.ShortEdgeThreshold()
	collapsed := 0
	for {
		edges, err := bodyEdges(m, body)
		if err != nil {
			return collapsed, err
		}
		didAny := false
		for _, eid := range edges {
			e, err := m.Edge(eid)
			if err != nil {
				return collapsed, err
			}
			if e.Deleted() || e.Start == e.End {
				continue
			}
			length, err := edgeLength(m, eid)
			if err != nil {
				return collapsed, err
			}
			if length >= threshold {
				continue
			}
			a, err := m.Vertex(e.Start)
			if err != nil {
				return collapsed, err
			}
			b, err := m.Vertex(e.End)
			if err != nil {
				return collapsed, err
			}
			mid := a.Pos.Add(b.Pos).MulScalar(0.5)
			m.SetVertexPos(e.Start, mid)
			if err := rewireVertex(m, body, e.End, e.Start); err != nil {
				return collapsed, err
			}
			m.MarkVertexDeleted(e.End)
			m.MarkEdgeDeleted(eid)
			collapsed++
			didAny = true
		}
		if !didAny {
			break
		}
	}
	return collapsed, nil
}

// removeSmallFaces marks every live face of body whose Newton-formula area
// falls below ctx's small-face-area threshold as deleted, along with its
// loops and half-edges (spec.md 4.7, "Small-face removal").
func removeSmallFaces(m *topo.Model, body topo.BodyId, ctx tol.Context) (int, error) {
	threshold := ctx.SmallFaceAreaThreshold()
	removed := 0
	var outerErr error
	err := m.BodyShells(body, func(sh topo.ShellId) {
		_ = m.ShellFaces(sh, func(fc topo.FaceId) {
			f, err := m.Face(fc)
			if err != nil {
				outerErr = err
				return
			}
			if f.Deleted() {
				return
			}
			_, area, _, err := faceCentroidAndArea(m, fc)
			if err != nil {
				outerErr = err
				return
			}
			if area >= threshold {
				return
			}
			for _, l := range f.Loops {
				verr := m.LoopHalfEdges(l, func(he topo.HalfEdgeId) {
					m.MarkHalfEdgeDeleted(he)
				})
				if verr != nil {
					outerErr = verr
				}
				m.MarkLoopDeleted(l)
			}
			m.MarkFaceDeleted(fc)
			removed++
		})
	})
	if err != nil {
		return removed, err
	}
	return removed, outerErr
}
