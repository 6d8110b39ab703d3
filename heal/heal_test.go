package heal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samwillis/solidtype-sub007/geom"
	"github.com/samwillis/solidtype-sub007/tol"
	"github.com/samwillis/solidtype-sub007/topo"
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

func buildBox(t *testing.T, m *topo.Model, min, max v3.Vec) topo.BodyId {
	t.Helper()
	shell := m.AddShell(true)
	body := m.AddBody()
	require.NoError(t, m.AddShellToBody(body, shell))

	x0, y0, z0 := min.X, min.Y, min.Z
	x1, y1, z1 := max.X, max.Y, max.Z

	quadFace(t, m, shell, v3.Vec{X: x1, Y: y0, Z: z0}, v3.Vec{X: x1, Y: y1, Z: z0}, v3.Vec{X: x1, Y: y1, Z: z1}, v3.Vec{X: x1, Y: y0, Z: z1})
	quadFace(t, m, shell, v3.Vec{X: x0, Y: y0, Z: z0}, v3.Vec{X: x0, Y: y0, Z: z1}, v3.Vec{X: x0, Y: y1, Z: z1}, v3.Vec{X: x0, Y: y1, Z: z0})
	quadFace(t, m, shell, v3.Vec{X: x0, Y: y1, Z: z0}, v3.Vec{X: x0, Y: y1, Z: z1}, v3.Vec{X: x1, Y: y1, Z: z1}, v3.Vec{X: x1, Y: y1, Z: z0})
	quadFace(t, m, shell, v3.Vec{X: x0, Y: y0, Z: z0}, v3.Vec{X: x1, Y: y0, Z: z0}, v3.Vec{X: x1, Y: y0, Z: z1}, v3.Vec{X: x0, Y: y0, Z: z1})
	quadFace(t, m, shell, v3.Vec{X: x0, Y: y0, Z: z1}, v3.Vec{X: x1, Y: y0, Z: z1}, v3.Vec{X: x1, Y: y1, Z: z1}, v3.Vec{X: x0, Y: y1, Z: z1})
	quadFace(t, m, shell, v3.Vec{X: x0, Y: y0, Z: z0}, v3.Vec{X: x0, Y: y1, Z: z0}, v3.Vec{X: x1, Y: y1, Z: z0}, v3.Vec{X: x1, Y: y0, Z: z0})

	return body
}

// buildSharedBox builds the same box as buildBox, but its six faces share
// the eight corner vertices and twelve edges: each edge is used once in each
// direction by the two faces that meet along it.
func buildSharedBox(t *testing.T, m *topo.Model, min, max v3.Vec) topo.BodyId {
	t.Helper()
	shell := m.AddShell(true)
	body := m.AddBody()
	require.NoError(t, m.AddShellToBody(body, shell))

	// Corner i takes max.X when bit 0 is set, max.Y for bit 1, max.Z for bit 2.
	var pos [8]v3.Vec
	var verts [8]topo.VertexId
	for i := range verts {
		pos[i] = min
		if i&1 != 0 {
			pos[i].X = max.X
		}
		if i&2 != 0 {
			pos[i].Y = max.Y
		}
		if i&4 != 0 {
			pos[i].Z = max.Z
		}
		verts[i] = m.AddVertex(pos[i])
	}

	// Same faces, corner order and winding as buildBox's quadFace calls.
	quads := [][4]int{{1, 3, 7, 5}, {0, 4, 6, 2}, {2, 6, 7, 3}, {0, 1, 5, 4}, {4, 5, 7, 6}, {0, 2, 3, 1}}
	edges := make(map[[2]int]topo.EdgeId)
	for _, q := range quads {
		hes := make([]topo.HalfEdgeId, 4)
		for i := 0; i < 4; i++ {
			a, b := q[i], q[(i+1)%4]
			dir := topo.Forward
			if a > b {
				a, b, dir = b, a, topo.Backward
			}
			e, ok := edges[[2]int{a, b}]
			if !ok {
				var err error
				e, err = m.AddEdge(verts[a], verts[b], geom.NullCurve3DIndex, 0, 1)
				require.NoError(t, err)
				edges[[2]int{a, b}] = e
			}
			he, err := m.AddHalfEdge(e, dir)
			require.NoError(t, err)
			hes[i] = he
		}
		loop, err := m.AddLoop(hes)
		require.NoError(t, err)
		p0, p1, p3 := pos[q[0]], pos[q[1]], pos[q[3]]
		surf := m.Pools.Surfaces.Add(geom.NewPlaneSurface(p0, p1.Sub(p0), p3.Sub(p0)))
		face := m.AddFace(surf, false)
		require.NoError(t, m.AddLoopToFace(face, loop))
		require.NoError(t, m.AddFaceToShell(shell, face))
	}
	return body
}

func TestHealCleanBoxIsNoop(t *testing.T) {
	m := topo.NewModel()
	body := buildSharedBox(t, m, v3.Vec{X: 0, Y: 0, Z: 0}, v3.Vec{X: 1, Y: 1, Z: 1})

	report, err := Heal(m, body, tol.Default(), 0)
	require.NoError(t, err)
	assert.Equal(t, 0, report.VerticesMerged)
	assert.Equal(t, 0, report.EdgesCollapsed)
	assert.Equal(t, 0, report.FacesRemoved)
	assert.True(t, report.Validation.Ok())
}

func TestHealMergesDuplicateVertices(t *testing.T) {
	m := topo.NewModel()
	shell := m.AddShell(true)
	body := m.AddBody()
	require.NoError(t, m.AddShellToBody(body, shell))

	eps := 1e-9
	quadFace(t, m, shell, v3.Vec{X: 0, Y: 0, Z: 0}, v3.Vec{X: 1, Y: 0, Z: 0}, v3.Vec{X: 1, Y: 1, Z: 0}, v3.Vec{X: 0, Y: 1, Z: 0})
	quadFace(t, m, shell, v3.Vec{X: 0, Y: 0, Z: eps}, v3.Vec{X: 1, Y: 0, Z: eps}, v3.Vec{X: 1, Y: 1, Z: eps}, v3.Vec{X: 0, Y: 1, Z: eps})

	before, err := bodyVertices(m, body)
	require.NoError(t, err)
	assert.Len(t, before, 8)

	report, err := Heal(m, body, tol.Default(), 1)
	require.NoError(t, err)
	assert.Greater(t, report.VerticesMerged, 0)

	after, err := bodyVertices(m, body)
	require.NoError(t, err)
	assert.Less(t, len(after), len(before))
}

func TestReorientFlipsInvertedShell(t *testing.T) {
	m := topo.NewModel()
	body := buildBox(t, m, v3.Vec{X: 0, Y: 0, Z: 0}, v3.Vec{X: 1, Y: 1, Z: 1})

	var shellId topo.ShellId
	_ = m.BodyShells(body, func(sh topo.ShellId) { shellId = sh })
	volBefore, faces, err := shellSignedVolume(m, shellId)
	require.NoError(t, err)
	require.Greater(t, volBefore, 0.0)

	for _, fc := range faces {
		f, err := m.Face(fc)
		require.NoError(t, err)
		require.NoError(t, m.SetFaceReversed(fc, !f.Reversed()))
	}
	volInverted, _, err := shellSignedVolume(m, shellId)
	require.NoError(t, err)
	require.Less(t, volInverted, 0.0)

	n, err := reorientShells(m, body)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	volAfter, _, err := shellSignedVolume(m, shellId)
	require.NoError(t, err)
	assert.Greater(t, volAfter, 0.0)
}
