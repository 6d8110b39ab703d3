package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samwillis/solidtype-sub007/boolean"
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

func buildBox(t *testing.T, m *topo.Model, min, max v3.Vec) (topo.BodyId, []topo.FaceId) {
	t.Helper()
	shell := m.AddShell(true)
	body := m.AddBody()
	require.NoError(t, m.AddShellToBody(body, shell))

	x0, y0, z0 := min.X, min.Y, min.Z
	x1, y1, z1 := max.X, max.Y, max.Z

	faces := []topo.FaceId{
		quadFace(t, m, shell, v3.Vec{X: x1, Y: y0, Z: z0}, v3.Vec{X: x1, Y: y1, Z: z0}, v3.Vec{X: x1, Y: y1, Z: z1}, v3.Vec{X: x1, Y: y0, Z: z1}),
		quadFace(t, m, shell, v3.Vec{X: x0, Y: y0, Z: z0}, v3.Vec{X: x0, Y: y0, Z: z1}, v3.Vec{X: x0, Y: y1, Z: z1}, v3.Vec{X: x0, Y: y1, Z: z0}),
		quadFace(t, m, shell, v3.Vec{X: x0, Y: y1, Z: z0}, v3.Vec{X: x0, Y: y1, Z: z1}, v3.Vec{X: x1, Y: y1, Z: z1}, v3.Vec{X: x1, Y: y1, Z: z0}),
		quadFace(t, m, shell, v3.Vec{X: x0, Y: y0, Z: z0}, v3.Vec{X: x1, Y: y0, Z: z0}, v3.Vec{X: x1, Y: y0, Z: z1}, v3.Vec{X: x0, Y: y0, Z: z1}),
		quadFace(t, m, shell, v3.Vec{X: x0, Y: y0, Z: z1}, v3.Vec{X: x1, Y: y0, Z: z1}, v3.Vec{X: x1, Y: y1, Z: z1}, v3.Vec{X: x0, Y: y1, Z: z1}),
		quadFace(t, m, shell, v3.Vec{X: x0, Y: y0, Z: z0}, v3.Vec{X: x0, Y: y1, Z: z0}, v3.Vec{X: x1, Y: y1, Z: z0}, v3.Vec{X: x1, Y: y0, Z: z0}),
	}
	return body, faces
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	rec := Record{
		V:               1,
		ExpectedType:    TypeFace,
		OriginFeatureId: "feature-1",
		LocalSelector:   LocalSelector{Kind: "extrude.topCap", Data: map[string]any{"loopId": float64(3)}},
		Fingerprint: &Fingerprint{
			Centroid: [3]float64{1, 2, 3},
			Size:     4.5,
		},
	}
	ref, err := Encode(rec)
	require.NoError(t, err)
	assert.Contains(t, string(ref), "stref:v1:")

	back, err := Decode(ref)
	require.NoError(t, err)
	assert.Equal(t, rec.OriginFeatureId, back.OriginFeatureId)
	assert.Equal(t, rec.LocalSelector.Kind, back.LocalSelector.Kind)
	assert.Equal(t, rec.Fingerprint.Centroid, back.Fingerprint.Centroid)
}

func TestEncodeIsDeterministic(t *testing.T) {
	rec := Record{
		V:               1,
		ExpectedType:    TypeEdge,
		OriginFeatureId: "feature-2",
		LocalSelector:   LocalSelector{Kind: "edge.unknown"},
	}
	a, err := Encode(rec)
	require.NoError(t, err)
	b, err := Encode(rec)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerateAndResolveExact(t *testing.T) {
	m := topo.NewModel()
	body, faces := buildBox(t, m, v3.Vec{X: 0, Y: 0, Z: 0}, v3.Vec{X: 1, Y: 1, Z: 1})
	s := NewStrategy(m)
	fid := s.AllocFeatureId()

	kind, err := ClassifyExtrudeFace(m, faces[4], v3.Vec{X: 0, Y: 0, Z: 1})
	require.NoError(t, err)
	assert.Equal(t, "extrude.topCap", kind)

	ref, err := s.GenerateFace(body, fid, faces[4], kind, nil)
	require.NoError(t, err)

	result, err := s.Resolve(ref)
	require.NoError(t, err)
	assert.Equal(t, Found, result.Status)
	assert.Equal(t, faces[4], result.Subshape.Face)
}

func TestApplyEvolutionsUpdatesReverseMap(t *testing.T) {
	m := topo.NewModel()
	a, facesA := buildBox(t, m, v3.Vec{X: 0, Y: 0, Z: 0}, v3.Vec{X: 2, Y: 1, Z: 1})
	b, _ := buildBox(t, m, v3.Vec{X: 2, Y: 0, Z: 0}, v3.Vec{X: 4, Y: 1, Z: 1})

	s := NewStrategy(m)
	fid := s.AllocFeatureId()
	ref, err := s.GenerateFace(a, fid, facesA[3], "extrude.bottomCap", nil)
	require.NoError(t, err)

	result, err := boolean.Combine(m, a, b, boolean.Union, tol.Default())
	require.NoError(t, err)

	s.ApplyEvolutions([2]topo.BodyId{a, b}, result.Evolutions, result.Body)

	resolved, err := s.Resolve(ref)
	require.NoError(t, err)
	assert.Equal(t, Found, resolved.Status)
	assert.Equal(t, result.Body, resolved.Subshape.Body)
}
