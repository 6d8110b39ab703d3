package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samwillis/solidtype-sub007/boolean"
	"github.com/samwillis/solidtype-sub007/naming"
	"github.com/samwillis/solidtype-sub007/sketch"
	v3 "github.com/samwillis/solidtype-sub007/vec/v3"
)

func rectSketch(t *testing.T, k *Kernel, x0, y0, x1, y1 float64) SketchId {
	t.Helper()
	plane := sketch.NewPlane(v3.Vec{}, v3.Vec{X: 1}, v3.Vec{Y: 1})
	id := k.NewSketch(plane)
	sk, err := k.Sketch(id)
	require.NoError(t, err)

	p0 := sk.AddPoint(x0, y0)
	p1 := sk.AddPoint(x1, y0)
	p2 := sk.AddPoint(x1, y1)
	p3 := sk.AddPoint(x0, y1)
	_, err = sk.AddLine(p0, p1)
	require.NoError(t, err)
	_, err = sk.AddLine(p1, p2)
	require.NoError(t, err)
	_, err = sk.AddLine(p2, p3)
	require.NoError(t, err)
	_, err = sk.AddLine(p3, p0)
	require.NoError(t, err)
	return id
}

// TestExtrudeBoxTessellates exercises the box-extrude scenario (spec.md 8):
// a 10x10 rectangle swept 10 along its plane normal yields a closed box
// whose tessellated mesh has 12 triangles totalling 600 units^2 of surface
// area (six 10x10 faces).
func TestExtrudeBoxTessellates(t *testing.T) {
	k := NewKernel()
	skId := rectSketch(t, k, 0, 0, 10, 10)

	profRes := k.ProfileFromSketch(skId)
	require.True(t, profRes.Success, profRes.Error)

	extRes := k.Extrude(skId, profRes.Value, 10)
	require.True(t, extRes.Success, extRes.Error)
	assert.Len(t, extRes.Value.FaceRefs, 6)

	for _, ref := range extRes.Value.FaceRefs {
		rec, err := naming.Decode(ref)
		require.NoError(t, err)
		loopId, ok := rec.LocalSelector.Data["loopId"]
		assert.True(t, ok, "face ref %q missing data.loopId", rec.LocalSelector.Kind)
		assert.NotEmpty(t, loopId)
	}

	meshRes := k.Tessellate(extRes.Value.Body)
	require.True(t, meshRes.Success, meshRes.Error)
	mesh := meshRes.Value
	assert.Len(t, mesh.Triangles, 12)

	var total float64
	for i := range mesh.Triangles {
		total += mesh.TriangleArea(i)
	}
	assert.InDelta(t, 600.0, total, 1e-6)

	var box v3.Box3 = v3.EmptyBox3()
	for _, v := range mesh.Vertices {
		box = box.Union(v)
	}
	assert.InDelta(t, 0, box.Min.X, 1e-9)
	assert.InDelta(t, 0, box.Min.Y, 1e-9)
	assert.InDelta(t, 0, box.Min.Z, 1e-9)
	assert.InDelta(t, 10, box.Max.X, 1e-9)
	assert.InDelta(t, 10, box.Max.Y, 1e-9)
	assert.InDelta(t, 10, box.Max.Z, 1e-9)
}

// TestResolveSurvivesUnion exercises the coincident-box-union scenario
// (spec.md 8): a persistent reference to a face of one box still resolves
// after that box is unioned with a second, touching box.
func TestResolveSurvivesUnion(t *testing.T) {
	k := NewKernel()

	aId := rectSketch(t, k, 0, 0, 10, 10)
	aProf := k.ProfileFromSketch(aId)
	require.True(t, aProf.Success, aProf.Error)
	aExt := k.Extrude(aId, aProf.Value, 10)
	require.True(t, aExt.Success, aExt.Error)

	bId := rectSketch(t, k, 10, 0, 20, 10)
	bProf := k.ProfileFromSketch(bId)
	require.True(t, bProf.Success, bProf.Error)
	bExt := k.Extrude(bId, bProf.Value, 10)
	require.True(t, bExt.Success, bExt.Error)

	require.NotEmpty(t, aExt.Value.FaceRefs)
	ref := aExt.Value.FaceRefs[0]

	boolRes := k.Boolean(aExt.Value.Body, bExt.Value.Body, boolean.Union)
	require.True(t, boolRes.Success, boolRes.Error)

	resolved := k.Resolve(ref)
	require.True(t, resolved.Success, resolved.Error)
	assert.Equal(t, naming.Found, resolved.Value.Status)
}

// TestHealAfterBooleanReportsClean exercises healing over a freshly unioned
// body: a clean boolean result should need no repair and validate ok.
func TestHealAfterBooleanReportsClean(t *testing.T) {
	k := NewKernel()

	aId := rectSketch(t, k, 0, 0, 10, 10)
	aProf := k.ProfileFromSketch(aId)
	require.True(t, aProf.Success, aProf.Error)
	aExt := k.Extrude(aId, aProf.Value, 10)
	require.True(t, aExt.Success, aExt.Error)

	bId := rectSketch(t, k, 10, 0, 20, 10)
	bProf := k.ProfileFromSketch(bId)
	require.True(t, bProf.Success, bProf.Error)
	bExt := k.Extrude(bId, bProf.Value, 10)
	require.True(t, bExt.Success, bExt.Error)

	boolRes := k.Boolean(aExt.Value.Body, bExt.Value.Body, boolean.Union)
	require.True(t, boolRes.Success, boolRes.Error)

	healRes := k.Heal(boolRes.Value.Body)
	require.True(t, healRes.Success, healRes.Error)
	assert.True(t, healRes.Value.Validation.Ok())
}
