package tessellate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samwillis/solidtype-sub007/geom"
	"github.com/samwillis/solidtype-sub007/topo"
	v2 "github.com/samwillis/solidtype-sub007/vec/v2"
	v3 "github.com/samwillis/solidtype-sub007/vec/v3"
)

func quadFace(t *testing.T, m *topo.Model, shell topo.ShellId, p0, p1, p2, p3 v3.Vec) topo.FaceId {
	t.Helper()
	pts := []v3.Vec{p0, p1, p2, p3}
	verts := make([]topo.VertexId, 4)
	for i, p := range pts {
		verts[i] = m.AddVertex(p)
	}
	hes := make([]topo.HalfEdgeId, 4)
	for i := 0; i < 4; i++ {
		j := (i + 1) % 4
		e, err := m.AddEdge(verts[i], verts[j], geom.NullCurve3DIndex, 0, 1)
		require.NoError(t, err)
		he, err := m.AddHalfEdge(e, topo.Forward)
		require.NoError(t, err)
		hes[i] = he
	}
	loop, err := m.AddLoop(hes)
	require.NoError(t, err)
	plane := geom.NewPlaneSurface(p0, p1.Sub(p0), p3.Sub(p0))
	surf := m.Pools.Surfaces.Add(plane)
	face := m.AddFace(surf, false)
	require.NoError(t, m.AddLoopToFace(face, loop))
	require.NoError(t, m.AddFaceToShell(shell, face))
	return face
}

func TestEarClipSquare(t *testing.T) {
	poly := []v2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	tris := earClip(poly)
	assert.Len(t, tris, 2)
}

func TestEarClipLShape(t *testing.T) {
	poly := []v2.Vec{
		{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 2}, {X: 0, Y: 2},
	}
	tris := earClip(poly)
	assert.Len(t, tris, 4)
	var area float64
	for _, tr := range tris {
		a, b, c := poly[tr[0]], poly[tr[1]], poly[tr[2]]
		area += b.Sub(a).Cross(c.Sub(a)) / 2
	}
	assert.InDelta(t, 3.0, area, 1e-9)
}

func TestBridgeFaceWithHole(t *testing.T) {
	outer := []v2.Vec{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}}
	hole := []v2.Vec{{X: 1, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 2}, {X: 2, Y: 1}}
	ring := bridgeFace(outer, [][]v2.Vec{hole})
	assert.Len(t, ring, len(outer)+len(hole)+2)
	tris := earClip(ring)
	var area float64
	for _, tr := range tris {
		a, b, c := ring[tr[0]], ring[tr[1]], ring[tr[2]]
		area += b.Sub(a).Cross(c.Sub(a)) / 2
	}
	assert.InDelta(t, 16.0-1.0, area, 1e-6)
}

func TestBodyTessellatesBox(t *testing.T) {
	m := topo.NewModel()
	shell := m.AddShell(true)
	body := m.AddBody()
	require.NoError(t, m.AddShellToBody(body, shell))

	min, max := v3.Vec{X: 0, Y: 0, Z: 0}, v3.Vec{X: 1, Y: 1, Z: 1}
	x0, y0, z0 := min.X, min.Y, min.Z
	x1, y1, z1 := max.X, max.Y, max.Z
	quadFace(t, m, shell, v3.Vec{X: x1, Y: y0, Z: z0}, v3.Vec{X: x1, Y: y1, Z: z0}, v3.Vec{X: x1, Y: y1, Z: z1}, v3.Vec{X: x1, Y: y0, Z: z1})
	quadFace(t, m, shell, v3.Vec{X: x0, Y: y0, Z: z0}, v3.Vec{X: x0, Y: y0, Z: z1}, v3.Vec{X: x0, Y: y1, Z: z1}, v3.Vec{X: x0, Y: y1, Z: z0})
	quadFace(t, m, shell, v3.Vec{X: x0, Y: y1, Z: z0}, v3.Vec{X: x0, Y: y1, Z: z1}, v3.Vec{X: x1, Y: y1, Z: z1}, v3.Vec{X: x1, Y: y1, Z: z0})
	quadFace(t, m, shell, v3.Vec{X: x0, Y: y0, Z: z0}, v3.Vec{X: x1, Y: y0, Z: z0}, v3.Vec{X: x1, Y: y0, Z: z1}, v3.Vec{X: x0, Y: y0, Z: z1})
	quadFace(t, m, shell, v3.Vec{X: x0, Y: y0, Z: z1}, v3.Vec{X: x1, Y: y0, Z: z1}, v3.Vec{X: x1, Y: y1, Z: z1}, v3.Vec{X: x0, Y: y1, Z: z1})
	quadFace(t, m, shell, v3.Vec{X: x0, Y: y0, Z: z0}, v3.Vec{X: x0, Y: y1, Z: z0}, v3.Vec{X: x1, Y: y1, Z: z0}, v3.Vec{X: x1, Y: y0, Z: z0})

	mesh, err := Body(m, body)
	require.NoError(t, err)
	assert.Len(t, mesh.Triangles, 12)
	assert.Len(t, mesh.Vertices, 24)
	assert.Len(t, mesh.Normals, 24)

	var total float64
	for i := range mesh.Triangles {
		total += mesh.TriangleArea(i)
	}
	assert.InDelta(t, 6.0, total, 1e-9)

	// Each quadFace call builds its own 4 unshared edges (no twinning), so
	// the visible-edge output carries 4 per face with no cross-face dedup.
	assert.Len(t, mesh.Edges, 24)
	assert.Len(t, mesh.EdgeMap, 24)
}

// TestBodyTessellateNormalsFaceOutward checks a single quad face's vertex
// normals point along its plane's normal direction.
func TestBodyTessellateNormalsFaceOutward(t *testing.T) {
	m := topo.NewModel()
	shell := m.AddShell(true)
	body := m.AddBody()
	require.NoError(t, m.AddShellToBody(body, shell))

	quadFace(t, m, shell,
		v3.Vec{X: 0, Y: 0, Z: 0}, v3.Vec{X: 1, Y: 0, Z: 0},
		v3.Vec{X: 1, Y: 1, Z: 0}, v3.Vec{X: 0, Y: 1, Z: 0})

	mesh, err := Body(m, body)
	require.NoError(t, err)
	require.Len(t, mesh.Normals, 4)
	for _, n := range mesh.Normals {
		assert.InDelta(t, 0, n.X, 1e-9)
		assert.InDelta(t, 0, n.Y, 1e-9)
		assert.InDelta(t, 1, n.Z, 1e-9)
	}
}
