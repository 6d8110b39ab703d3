package boolean

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samwillis/solidtype-sub007/geom"
	"github.com/samwillis/solidtype-sub007/tol"
	"github.com/samwillis/solidtype-sub007/topo"
	v3 "github.com/samwillis/solidtype-sub007/vec/v3"
)

// quadFace appends a single planar quad face (p0..p3 in CCW order as seen
// from outside the solid) to shell, with its own fresh vertices.
func quadFace(t *testing.T, m *topo.Model, shell topo.ShellId, p0, p1, p2, p3 v3.Vec) {
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
}

// buildBox appends an axis-aligned box body spanning [min,max] to m.
func buildBox(t *testing.T, m *topo.Model, min, max v3.Vec) topo.BodyId {
	t.Helper()
	shell := m.AddShell(true)
	body := m.AddBody()
	require.NoError(t, m.AddShellToBody(body, shell))

	x0, y0, z0 := min.X, min.Y, min.Z
	x1, y1, z1 := max.X, max.Y, max.Z

	quadFace(t, m, shell, v3.Vec{X: x1, Y: y0, Z: z0}, v3.Vec{X: x1, Y: y1, Z: z0}, v3.Vec{X: x1, Y: y1, Z: z1}, v3.Vec{X: x1, Y: y0, Z: z1}) // +X
	quadFace(t, m, shell, v3.Vec{X: x0, Y: y0, Z: z0}, v3.Vec{X: x0, Y: y0, Z: z1}, v3.Vec{X: x0, Y: y1, Z: z1}, v3.Vec{X: x0, Y: y1, Z: z0}) // -X
	quadFace(t, m, shell, v3.Vec{X: x0, Y: y1, Z: z0}, v3.Vec{X: x0, Y: y1, Z: z1}, v3.Vec{X: x1, Y: y1, Z: z1}, v3.Vec{X: x1, Y: y1, Z: z0}) // +Y
	quadFace(t, m, shell, v3.Vec{X: x0, Y: y0, Z: z0}, v3.Vec{X: x1, Y: y0, Z: z0}, v3.Vec{X: x1, Y: y0, Z: z1}, v3.Vec{X: x0, Y: y0, Z: z1}) // -Y
	quadFace(t, m, shell, v3.Vec{X: x0, Y: y0, Z: z1}, v3.Vec{X: x1, Y: y0, Z: z1}, v3.Vec{X: x1, Y: y1, Z: z1}, v3.Vec{X: x0, Y: y1, Z: z1}) // +Z
	quadFace(t, m, shell, v3.Vec{X: x0, Y: y0, Z: z0}, v3.Vec{X: x0, Y: y1, Z: z0}, v3.Vec{X: x1, Y: y1, Z: z0}, v3.Vec{X: x1, Y: y0, Z: z0}) // -Z

	return body
}

// TestLNotchSubtract reproduces spec.md 8's L-notch scenario: a 4x4x4 box
// centered at the origin with a 3x3x6 box subtracted from one corner.
func TestLNotchSubtract(t *testing.T) {
	m := topo.NewModel()
	base := buildBox(t, m, v3.Vec{X: -2, Y: -2, Z: -2}, v3.Vec{X: 2, Y: 2, Z: 2})
	tool := buildBox(t, m, v3.Vec{X: 0, Y: 0, Z: -1}, v3.Vec{X: 3, Y: 3, Z: 5})

	result, err := Combine(m, base, tool, Subtract, tol.Default())
	require.NoError(t, err)
	assert.NotEqual(t, topo.NullBodyId, result.Body)

	box, err := m.BodyAABB(result.Body)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, box.Min.X, -2-1e-6)
	assert.LessOrEqual(t, box.Max.X, 2+1e-6)
	assert.GreaterOrEqual(t, box.Min.Y, -2-1e-6)
	assert.LessOrEqual(t, box.Max.Y, 2+1e-6)
}

// TestCoincidentBoxUnion reproduces spec.md 8's coincident-box-union
// scenario: two 2x1x1 boxes touching at x=2, expecting 6 to 12 faces.
func TestCoincidentBoxUnion(t *testing.T) {
	m := topo.NewModel()
	a := buildBox(t, m, v3.Vec{X: 0, Y: 0, Z: 0}, v3.Vec{X: 2, Y: 1, Z: 1})
	b := buildBox(t, m, v3.Vec{X: 2, Y: 0, Z: 0}, v3.Vec{X: 4, Y: 1, Z: 1})

	result, err := Combine(m, a, b, Union, tol.Default())
	require.NoError(t, err)

	faceCount := 0
	_ = m.BodyShells(result.Body, func(sh topo.ShellId) {
		_ = m.ShellFaces(sh, func(f topo.FaceId) { faceCount++ })
	})
	assert.GreaterOrEqual(t, faceCount, 6)
	assert.LessOrEqual(t, faceCount, 12)
}

// TestIntersectDisjointFails exercises Stage 1's AABB pre-filter:
// intersecting two bodies whose bounding boxes don't overlap must fail
// with ErrEmptyResult (spec.md 4.6).
func TestIntersectDisjointFails(t *testing.T) {
	m := topo.NewModel()
	a := buildBox(t, m, v3.Vec{X: 0, Y: 0, Z: 0}, v3.Vec{X: 1, Y: 1, Z: 1})
	b := buildBox(t, m, v3.Vec{X: 10, Y: 10, Z: 10}, v3.Vec{X: 11, Y: 11, Z: 11})

	_, err := Combine(m, a, b, Intersect, tol.Default())
	assert.ErrorIs(t, err, ErrEmptyResult)
}

// TestUnionDisjointReturnsCompound exercises Stage 1's disjoint union
// short-circuit: a compound body with both input shells.
func TestUnionDisjointReturnsCompound(t *testing.T) {
	m := topo.NewModel()
	a := buildBox(t, m, v3.Vec{X: 0, Y: 0, Z: 0}, v3.Vec{X: 1, Y: 1, Z: 1})
	b := buildBox(t, m, v3.Vec{X: 10, Y: 10, Z: 10}, v3.Vec{X: 11, Y: 11, Z: 11})

	result, err := Combine(m, a, b, Union, tol.Default())
	require.NoError(t, err)

	shellCount := 0
	_ = m.BodyShells(result.Body, func(sh topo.ShellId) { shellCount++ })
	assert.Equal(t, 2, shellCount)
}
