package sweep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samwillis/solidtype-sub007/profile"
	"github.com/samwillis/solidtype-sub007/sketch"
	"github.com/samwillis/solidtype-sub007/topo"
	v3 "github.com/samwillis/solidtype-sub007/vec/v3"
)

func boxSketch(t *testing.T, w, h float64) (*sketch.Sketch, sketch.Plane) {
	t.Helper()
	plane := sketch.NewPlane(v3.Vec{}, v3.Vec{X: 1}, v3.Vec{Y: 1})
	sk := sketch.New(plane)
	p0 := sk.AddPoint(0, 0)
	p1 := sk.AddPoint(w, 0)
	p2 := sk.AddPoint(w, h)
	p3 := sk.AddPoint(0, h)
	sk.AddLine(p0, p1)
	sk.AddLine(p1, p2)
	sk.AddLine(p2, p3)
	sk.AddLine(p3, p0)
	return sk, plane
}

// TestExtrudeBox reproduces spec.md 8's scenario 1: a rectangular sketch
// extruded into a box, expecting 6 faces, 12 edges, 8 vertices and the
// correct bounding box.
func TestExtrudeBox(t *testing.T) {
	sk, plane := boxSketch(t, 10, 5)
	prof, err := profile.FromSketch(sk, profile.DefaultTolerance)
	require.NoError(t, err)

	m, body, faceLoopId, err := Extrude(sk, prof, plane, 3)
	require.NoError(t, err)

	bodyVal, err := m.Body(body)
	require.NoError(t, err)
	require.Len(t, bodyVal.Shells, 1)

	faceCount := 0
	_ = m.BodyShells(body, func(sh topo.ShellId) {
		_ = m.ShellFaces(sh, func(f topo.FaceId) { faceCount++ })
	})
	assert.Equal(t, 6, faceCount)
	assert.Equal(t, 8, m.LiveVertexCount())
	assert.Equal(t, 12, m.LiveEdgeCount())
	assert.Len(t, faceLoopId, 6)

	box, err := m.BodyAABB(body)
	require.NoError(t, err)
	assert.InDelta(t, 0, box.Min.X, 1e-9)
	assert.InDelta(t, 0, box.Min.Y, 1e-9)
	assert.InDelta(t, 0, box.Min.Z, 1e-9)
	assert.InDelta(t, 10, box.Max.X, 1e-9)
	assert.InDelta(t, 5, box.Max.Y, 1e-9)
	assert.InDelta(t, 3, box.Max.Z, 1e-9)
}

// TestExtrudeWithHoleProducesCylinderSideFace reproduces spec.md 8's
// through-hole scenario: a square with a circular hole extruded into a
// plate, expecting one additional cylindrical side face for the hole and a
// vertex/edge count matching a single hole ring.
func TestExtrudeWithHoleProducesCylinderSideFace(t *testing.T) {
	plane := sketch.NewPlane(v3.Vec{}, v3.Vec{X: 1}, v3.Vec{Y: 1})
	sk := sketch.New(plane)
	p0 := sk.AddPoint(0, 0)
	p1 := sk.AddPoint(10, 0)
	p2 := sk.AddPoint(10, 10)
	p3 := sk.AddPoint(0, 10)
	sk.AddLine(p0, p1)
	sk.AddLine(p1, p2)
	sk.AddLine(p2, p3)
	sk.AddLine(p3, p0)

	cc := sk.AddPoint(5, 5)
	cs := sk.AddPoint(7, 5)
	_, err := sk.AddArc(cs, cs, cc, true)
	require.NoError(t, err)

	prof, err := profile.FromSketch(sk, profile.DefaultTolerance)
	require.NoError(t, err)
	require.Len(t, prof.Holes, 1)

	m, body, _, err := Extrude(sk, prof, plane, 2)
	require.NoError(t, err)

	faceCount := 0
	_ = m.BodyShells(body, func(sh topo.ShellId) {
		_ = m.ShellFaces(sh, func(f topo.FaceId) { faceCount++ })
	})
	// 4 outer walls + 1 cylindrical hole wall + top + bottom.
	assert.Equal(t, 7, faceCount)
}
