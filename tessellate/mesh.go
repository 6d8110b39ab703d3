// Package tessellate triangulates the live faces of a body into a flat
// triangle mesh (spec.md 3.1 "attached mesh output", SPEC_FULL.md 6).
package tessellate

import v3 "github.com/samwillis/solidtype-sub007/vec/v3"

// Mesh is a flat indexed triangle mesh: Vertices holds unique positions,
// Normals holds one per-vertex unit normal parallel to Vertices, Triangles
// holds index triples into Vertices, FaceOf maps each triangle back to the
// face it was cut from (spec.md 4.8's fingerprint generation reads a body's
// mesh, so this mapping is kept even though the caller may discard it).
// Edges/EdgeMap carry the body's visible (topological, not ear-clip bridge)
// edges as endpoint pairs plus the source topo.EdgeId each one came from, so
// a renderer can draw feature edges distinct from triangle boundaries.
type Mesh struct {
	Vertices  []v3.Vec
	Normals   []v3.Vec
	Triangles [][3]int
	FaceOf    []int32
	Edges     [][2]v3.Vec
	EdgeMap   []int32
}

// TriangleArea returns the area of the mesh triangle at index i.
func (m *Mesh) TriangleArea(i int) float64 {
	t := m.Triangles[i]
	a, b, c := m.Vertices[t[0]], m.Vertices[t[1]], m.Vertices[t[2]]
	return b.Sub(a).Cross(c.Sub(a)).Length() / 2
}

// TriangleNormal returns the (unnormalized winding-order) normal of the
// mesh triangle at index i.
func (m *Mesh) TriangleNormal(i int) v3.Vec {
	t := m.Triangles[i]
	a, b, c := m.Vertices[t[0]], m.Vertices[t[1]], m.Vertices[t[2]]
	return b.Sub(a).Cross(c.Sub(a))
}
