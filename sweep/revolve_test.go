package sweep

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samwillis/solidtype-sub007/profile"
	"github.com/samwillis/solidtype-sub007/sketch"
	"github.com/samwillis/solidtype-sub007/topo"
	v2 "github.com/samwillis/solidtype-sub007/vec/v2"
	v3 "github.com/samwillis/solidtype-sub007/vec/v3"
)

// TestRevolvePartialTurnBuildsCaps revolves a rectangle offset from the
// Y axis by a quarter turn, expecting start/end cap faces plus one side
// face per profile entity (spec.md 4.5).
func TestRevolvePartialTurnBuildsCaps(t *testing.T) {
	plane := sketch.NewPlane(v3.Vec{}, v3.Vec{X: 1}, v3.Vec{Y: 1})
	sk := sketch.New(plane)
	p0 := sk.AddPoint(5, 0)
	p1 := sk.AddPoint(8, 0)
	p2 := sk.AddPoint(8, 4)
	p3 := sk.AddPoint(5, 4)
	sk.AddLine(p0, p1)
	sk.AddLine(p1, p2)
	sk.AddLine(p2, p3)
	sk.AddLine(p3, p0)

	prof, err := profile.FromSketch(sk, profile.DefaultTolerance)
	require.NoError(t, err)

	m, body, err := Revolve(sk, prof, plane, v2.Vec{X: 0, Y: 0}, v2.Vec{X: 0, Y: 1}, math.Pi/2)
	require.NoError(t, err)

	faceCount := 0
	_ = m.BodyShells(body, func(sh topo.ShellId) {
		_ = m.ShellFaces(sh, func(f topo.FaceId) { faceCount++ })
	})
	// 4 side faces + start cap + end cap.
	assert.Equal(t, 6, faceCount)
	assert.Greater(t, m.LiveVertexCount(), 0)
}

func TestRevolveRejectsZeroAngle(t *testing.T) {
	plane := sketch.NewPlane(v3.Vec{}, v3.Vec{X: 1}, v3.Vec{Y: 1})
	sk := sketch.New(plane)
	p0 := sk.AddPoint(5, 0)
	p1 := sk.AddPoint(8, 0)
	p2 := sk.AddPoint(8, 4)
	p3 := sk.AddPoint(5, 4)
	sk.AddLine(p0, p1)
	sk.AddLine(p1, p2)
	sk.AddLine(p2, p3)
	sk.AddLine(p3, p0)
	prof, err := profile.FromSketch(sk, profile.DefaultTolerance)
	require.NoError(t, err)

	_, _, err = Revolve(sk, prof, plane, v2.Vec{}, v2.Vec{X: 0, Y: 1}, 0)
	assert.ErrorIs(t, err, ErrZeroAngle)
}
