package tessellate

import (
	"fmt"

	"github.com/samwillis/solidtype-sub007/geom"
	"github.com/samwillis/solidtype-sub007/topo"
	v2 "github.com/samwillis/solidtype-sub007/vec/v2"
	v3 "github.com/samwillis/solidtype-sub007/vec/v3"
)

// ErrNonPlanarFace is returned when a face's surface isn't a plane, such as
// the cylindrical side of an extruded arc or any side face of a revolve;
// tessellate rejects such a face rather than mis-triangulating it.
var ErrNonPlanarFace = fmt.Errorf("tessellate: only plane surfaces are supported")

// Body triangulates every live face of body into a single indexed mesh.
// Each face contributes its own vertex copies (no cross-face vertex
// welding) so FaceOf can attribute every triangle unambiguously. Every
// topological edge of body also contributes one entry to Edges/EdgeMap,
// deduplicated by edge id regardless of how many faces use it.
func Body(m *topo.Model, body topo.BodyId) (Mesh, error) {
	var mesh Mesh
	var outerErr error
	seenEdges := make(map[topo.EdgeId]bool)
	err := m.BodyShells(body, func(sh topo.ShellId) {
		_ = m.ShellFaces(sh, func(fc topo.FaceId) {
			if outerErr != nil {
				return
			}
			if err := appendFace(m, fc, &mesh); err != nil {
				outerErr = err
				return
			}
			if err := appendFaceEdges(m, fc, seenEdges, &mesh); err != nil {
				outerErr = err
			}
		})
	})
	if err != nil {
		return Mesh{}, err
	}
	return mesh, outerErr
}

// appendFaceEdges records every edge bounding fc's loops into mesh's
// Edges/EdgeMap, skipping edges already recorded via seen (an edge is
// shared by up to two faces, and must appear only once in the output).
func appendFaceEdges(m *topo.Model, fc topo.FaceId, seen map[topo.EdgeId]bool, mesh *Mesh) error {
	f, err := m.Face(fc)
	if err != nil {
		return err
	}
	var outerErr error
	for _, l := range f.Loops {
		if outerErr != nil {
			break
		}
		err := m.LoopHalfEdges(l, func(he topo.HalfEdgeId) {
			if outerErr != nil {
				return
			}
			hev, err := m.HalfEdge(he)
			if err != nil {
				outerErr = err
				return
			}
			if seen[hev.Edge] {
				return
			}
			seen[hev.Edge] = true
			edge, err := m.Edge(hev.Edge)
			if err != nil {
				outerErr = err
				return
			}
			start, err := m.Vertex(edge.Start)
			if err != nil {
				outerErr = err
				return
			}
			end, err := m.Vertex(edge.End)
			if err != nil {
				outerErr = err
				return
			}
			mesh.Edges = append(mesh.Edges, [2]v3.Vec{start.Pos, end.Pos})
			mesh.EdgeMap = append(mesh.EdgeMap, int32(hev.Edge))
		})
		if err != nil {
			return err
		}
	}
	return outerErr
}

func appendFace(m *topo.Model, fc topo.FaceId, mesh *Mesh) error {
	f, err := m.Face(fc)
	if err != nil {
		return err
	}
	if f.Deleted() || len(f.Loops) == 0 {
		return nil
	}
	plane, ok := m.Pools.Surfaces.Get(f.Surface).(*geom.PlaneSurface)
	if !ok {
		return ErrNonPlanarFace
	}

	outer3, err := m.LoopVertexPositions(f.Loops[0])
	if err != nil {
		return err
	}
	outer2 := project(plane, outer3)

	var holes2 [][]v2.Vec
	var holes3 [][]v3.Vec
	for _, l := range f.Loops[1:] {
		pts3, err := m.LoopVertexPositions(l)
		if err != nil {
			return err
		}
		holes3 = append(holes3, pts3)
		holes2 = append(holes2, project(plane, pts3))
	}

	ring2 := bridgeFace(outer2, holes2)
	ring3 := bridge3D(outer3, holes3)

	tris := earClip(ring2)
	base := len(mesh.Vertices)
	mesh.Vertices = append(mesh.Vertices, ring3...)
	normal := plane.N.Normalize()
	if f.Reversed() {
		normal = normal.MulScalar(-1)
	}
	for range ring3 {
		mesh.Normals = append(mesh.Normals, normal)
	}
	for _, tri := range tris {
		a, b, c := base+tri[0], base+tri[1], base+tri[2]
		if f.Reversed() {
			b, c = c, b
		}
		mesh.Triangles = append(mesh.Triangles, [3]int{a, b, c})
		mesh.FaceOf = append(mesh.FaceOf, int32(fc))
	}
	return nil
}

func project(plane *geom.PlaneSurface, pts []v3.Vec) []v2.Vec {
	out := make([]v2.Vec, len(pts))
	for i, p := range pts {
		u, v := plane.Project(p)
		out[i] = v2.Vec{X: u, Y: v}
	}
	return out
}

// bridge3D mirrors bridgeFace's bridging decisions in 3D so ring3 stays
// index-aligned with ring2.
func bridge3D(outer []v3.Vec, holes [][]v3.Vec) []v3.Vec {
	ring := append([]v3.Vec(nil), outer...)
	for _, hole := range holes {
		ring = spliceHole3D(ring, hole)
	}
	return ring
}

func spliceHole3D(outer, hole []v3.Vec) []v3.Vec {
	if len(hole) == 0 {
		return outer
	}
	bestOuter, bestHole := 0, 0
	bestD := -1.0
	for i, op := range outer {
		for j, hp := range hole {
			d := op.Sub(hp).Length2()
			if bestD < 0 || d < bestD {
				bestD, bestOuter, bestHole = d, i, j
			}
		}
	}
	out := make([]v3.Vec, 0, len(outer)+len(hole)+2)
	out = append(out, outer[:bestOuter+1]...)
	for k := 0; k <= len(hole); k++ {
		out = append(out, hole[(bestHole+k)%len(hole)])
	}
	out = append(out, outer[bestOuter:]...)
	return out
}
