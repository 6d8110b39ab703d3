package solver

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samwillis/solidtype-sub007/sketch"
	v3 "github.com/samwillis/solidtype-sub007/vec/v3"
)

// TestConstrainedRectangle reproduces spec.md 8's scenario 6: four free
// points plus horizontal/vertical/distance constraints and one fixed
// point, expecting solved status, 1 remaining DOF (rotation about p0) and
// max residual under 1e-8.
func TestConstrainedRectangle(t *testing.T) {
	plane := sketch.NewPlane(v3.Vec{}, v3.Vec{X: 1}, v3.Vec{Y: 1})
	sk := sketch.New(plane)

	p0 := sk.AddPoint(0, 0)
	p1 := sk.AddPoint(9, 0.5)
	p2 := sk.AddPoint(9.5, 5.2)
	p3 := sk.AddPoint(0.3, 5)

	l01, _ := sk.AddLine(p0, p1)
	l12, _ := sk.AddLine(p1, p2)
	l23, _ := sk.AddLine(p2, p3)
	l30, _ := sk.AddLine(p3, p0)
	_ = l01
	_ = l12
	_ = l23
	_ = l30

	sk.AddConstraint(sketch.HorizontalPoints(p0, p1))
	sk.AddConstraint(sketch.VerticalPoints(p1, p2))
	sk.AddConstraint(sketch.HorizontalPoints(p2, p3))
	sk.AddConstraint(sketch.VerticalPoints(p3, p0))
	sk.AddConstraint(sketch.Distance(p0, p1, 10))
	sk.AddConstraint(sketch.Distance(p1, p2, 5))

	fixed, err := sk.Point(p0)
	require.NoError(t, err)
	fixed.Fixed = true
	require.NoError(t, sk.SetPoint(p0, fixed))

	result, err := Solve(sk, nil, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, StatusSolved, result.Status)
	assert.Equal(t, 1, result.RemainingDOF)
	assert.Less(t, result.MaxResidual, 1e-8)

	q0, _ := sk.Point(p0)
	q1, _ := sk.Point(p1)
	q2, _ := sk.Point(p2)
	q3, _ := sk.Point(p3)
	assert.InDelta(t, q0.Y, q1.Y, 1e-6)
	assert.InDelta(t, q1.X, q2.X, 1e-6)
	assert.InDelta(t, q2.Y, q3.Y, 1e-6)
	assert.InDelta(t, q3.X, q0.X, 1e-6)
	assert.InDelta(t, 10, math.Hypot(q1.X-q0.X, q1.Y-q0.Y), 1e-6)
	assert.InDelta(t, 5, math.Hypot(q2.X-q1.X, q2.Y-q1.Y), 1e-6)
}

func TestPartitionSplitsDisjointSketches(t *testing.T) {
	plane := sketch.NewPlane(v3.Vec{}, v3.Vec{X: 1}, v3.Vec{Y: 1})
	sk := sketch.New(plane)

	a0 := sk.AddPoint(0, 0)
	a1 := sk.AddPoint(1, 0)
	_, _ = sk.AddLine(a0, a1)
	sk.AddConstraint(sketch.HorizontalPoints(a0, a1))

	b0 := sk.AddPoint(5, 5)
	b1 := sk.AddPoint(6, 5)
	_, _ = sk.AddLine(b0, b1)
	sk.AddConstraint(sketch.HorizontalPoints(b0, b1))

	comps := Partition(sk)
	assert.Len(t, comps, 2)
}
