package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samwillis/solidtype-sub007/sketch"
	v3 "github.com/samwillis/solidtype-sub007/vec/v3"
)

func unitSquare(sk *sketch.Sketch, x0, y0, x1, y1 float64) {
	p0 := sk.AddPoint(x0, y0)
	p1 := sk.AddPoint(x1, y0)
	p2 := sk.AddPoint(x1, y1)
	p3 := sk.AddPoint(x0, y1)
	sk.AddLine(p0, p1)
	sk.AddLine(p1, p2)
	sk.AddLine(p2, p3)
	sk.AddLine(p3, p0)
}

func TestFromSketchClosedSquare(t *testing.T) {
	plane := sketch.NewPlane(v3.Vec{}, v3.Vec{X: 1}, v3.Vec{Y: 1})
	sk := sketch.New(plane)
	unitSquare(sk, 0, 0, 10, 10)

	p, err := FromSketch(sk, DefaultTolerance)
	require.NoError(t, err)
	assert.Len(t, p.Outer.Entities, 4)
	assert.True(t, p.Outer.IsCCW())
	assert.InDelta(t, 100, p.Outer.SignedArea, 1e-9)
	assert.Empty(t, p.Holes)
}

func TestFromSketchOuterWithHole(t *testing.T) {
	plane := sketch.NewPlane(v3.Vec{}, v3.Vec{X: 1}, v3.Vec{Y: 1})
	sk := sketch.New(plane)
	unitSquare(sk, 0, 0, 10, 10)
	unitSquare(sk, 3, 3, 7, 7)

	p, err := FromSketch(sk, DefaultTolerance)
	require.NoError(t, err)
	assert.InDelta(t, 100, p.Outer.SignedArea, 1e-9)
	require.Len(t, p.Holes, 1)
	assert.False(t, p.Holes[0].IsCCW())
	assert.InDelta(t, -16, p.Holes[0].SignedArea, 1e-9)
}

func TestFromSketchOpenChainErrors(t *testing.T) {
	plane := sketch.NewPlane(v3.Vec{}, v3.Vec{X: 1}, v3.Vec{Y: 1})
	sk := sketch.New(plane)
	p0 := sk.AddPoint(0, 0)
	p1 := sk.AddPoint(10, 0)
	p2 := sk.AddPoint(10, 10)
	sk.AddLine(p0, p1)
	sk.AddLine(p1, p2)

	_, err := FromSketch(sk, DefaultTolerance)
	assert.ErrorIs(t, err, ErrOpenChain)
}

func TestFromSketchIgnoresConstructionGeometry(t *testing.T) {
	plane := sketch.NewPlane(v3.Vec{}, v3.Vec{X: 1}, v3.Vec{Y: 1})
	sk := sketch.New(plane)
	unitSquare(sk, 0, 0, 10, 10)

	c0 := sk.AddPoint(0, 0)
	c1 := sk.AddPoint(10, 10)
	diag, _ := sk.AddLine(c0, c1)
	require.NoError(t, sk.SetConstruction(diag, true))

	p, err := FromSketch(sk, DefaultTolerance)
	require.NoError(t, err)
	assert.Len(t, p.Outer.Entities, 4)
}
