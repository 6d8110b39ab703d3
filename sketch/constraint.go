package sketch

// ConstraintKind tags the variant carried by a Constraint (spec.md 3.2).
// Constraints are a tagged union, not a class hierarchy: dispatch on Kind
// for residual/jacobian evaluation in package solver.
type ConstraintKind int

const (
	KindCoincident ConstraintKind = iota
	KindHorizontal
	KindVertical
	KindParallel
	KindPerpendicular
	KindEqualLength
	KindCollinear
	KindTangent
	KindEqualRadius
	KindConcentric
	KindFixed
	KindDistance
	KindHorizontalDistance
	KindVerticalDistance
	KindAngle
	KindRadius
	KindPointOnLine
	KindPointOnArc
	KindMidpoint
	KindSymmetric
)

// Constraint is a single tagged constraint record. Not every field is
// meaningful for every Kind; see the per-kind comment.
type Constraint struct {
	Kind ConstraintKind

	// Points-pair form (coincident, horizontal/vertical point-pair,
	// distance, horizontalDistance, verticalDistance, midpoint,
	// symmetric's two free points).
	P1, P2 PointId

	// Entity references (line/arc ids), used by entity-level constraints
	// (horizontal/vertical single line, parallel, perpendicular,
	// equalLength, collinear, tangent, equalRadius, concentric, angle,
	// radius, pointOnLine, pointOnArc).
	E1, E2 EntityId

	// UsesEntity1/UsesEntity2 distinguish "constraint touches E1/E2" from
	// the zero value EntityId(0) being a legitimately referenced entity.
	UsesEntity1, UsesEntity2 bool

	// Symmetric's axis-defining line, when the axis is an entity rather
	// than implied by two more points.
	AxisLine EntityId
	UsesAxis bool

	// Value is the scalar payload for dimensional constraints: distance,
	// horizontalDistance, verticalDistance, angle (radians), radius.
	Value float64

	// FixedPoint is the point constrained by KindFixed, and the point held
	// at the midpoint of P1 and P2 by KindMidpoint.
	FixedPoint PointId
}

// Coincident returns a constraint forcing p1 and p2 to the same position.
func Coincident(p1, p2 PointId) Constraint {
	return Constraint{Kind: KindCoincident, P1: p1, P2: p2}
}

// HorizontalPoints returns a constraint forcing p1.y == p2.y.
func HorizontalPoints(p1, p2 PointId) Constraint {
	return Constraint{Kind: KindHorizontal, P1: p1, P2: p2}
}

// HorizontalLine returns a constraint forcing line e's endpoints level.
func HorizontalLine(e EntityId) Constraint {
	return Constraint{Kind: KindHorizontal, E1: e, UsesEntity1: true}
}

// VerticalPoints returns a constraint forcing p1.x == p2.x.
func VerticalPoints(p1, p2 PointId) Constraint {
	return Constraint{Kind: KindVertical, P1: p1, P2: p2}
}

// VerticalLine returns a constraint forcing line e's endpoints plumb.
func VerticalLine(e EntityId) Constraint {
	return Constraint{Kind: KindVertical, E1: e, UsesEntity1: true}
}

// Parallel returns a constraint forcing lines e1, e2 to the same direction.
func Parallel(e1, e2 EntityId) Constraint {
	return Constraint{Kind: KindParallel, E1: e1, E2: e2, UsesEntity1: true, UsesEntity2: true}
}

// Perpendicular returns a constraint forcing lines e1, e2 at right angles.
func Perpendicular(e1, e2 EntityId) Constraint {
	return Constraint{Kind: KindPerpendicular, E1: e1, E2: e2, UsesEntity1: true, UsesEntity2: true}
}

// EqualLength returns a constraint forcing lines e1, e2 to equal length.
func EqualLength(e1, e2 EntityId) Constraint {
	return Constraint{Kind: KindEqualLength, E1: e1, E2: e2, UsesEntity1: true, UsesEntity2: true}
}

// Collinear returns a constraint forcing lines e1, e2 onto one infinite
// line.
func Collinear(e1, e2 EntityId) Constraint {
	return Constraint{Kind: KindCollinear, E1: e1, E2: e2, UsesEntity1: true, UsesEntity2: true}
}

// Tangent returns a constraint forcing line/arc or arc/arc e1, e2 tangent.
func Tangent(e1, e2 EntityId) Constraint {
	return Constraint{Kind: KindTangent, E1: e1, E2: e2, UsesEntity1: true, UsesEntity2: true}
}

// EqualRadius returns a constraint forcing arcs e1, e2 to equal radius.
func EqualRadius(e1, e2 EntityId) Constraint {
	return Constraint{Kind: KindEqualRadius, E1: e1, E2: e2, UsesEntity1: true, UsesEntity2: true}
}

// Concentric returns a constraint forcing arcs e1, e2 to share a center.
func Concentric(e1, e2 EntityId) Constraint {
	return Constraint{Kind: KindConcentric, E1: e1, E2: e2, UsesEntity1: true, UsesEntity2: true}
}

// Fixed returns a constraint pinning p to its current position.
func Fixed(p PointId) Constraint {
	return Constraint{Kind: KindFixed, FixedPoint: p}
}

// Distance returns a constraint forcing |p1-p2| == value.
func Distance(p1, p2 PointId, value float64) Constraint {
	return Constraint{Kind: KindDistance, P1: p1, P2: p2, Value: value}
}

// HorizontalDistance returns a constraint forcing |p1.x-p2.x| == value.
func HorizontalDistance(p1, p2 PointId, value float64) Constraint {
	return Constraint{Kind: KindHorizontalDistance, P1: p1, P2: p2, Value: value}
}

// VerticalDistance returns a constraint forcing |p1.y-p2.y| == value.
func VerticalDistance(p1, p2 PointId, value float64) Constraint {
	return Constraint{Kind: KindVerticalDistance, P1: p1, P2: p2, Value: value}
}

// Angle returns a constraint forcing the angle between lines e1, e2 to
// value radians.
func Angle(e1, e2 EntityId, value float64) Constraint {
	return Constraint{Kind: KindAngle, E1: e1, E2: e2, UsesEntity1: true, UsesEntity2: true, Value: value}
}

// Radius returns a constraint forcing arc e's radius to value.
func Radius(e EntityId, value float64) Constraint {
	return Constraint{Kind: KindRadius, E1: e, UsesEntity1: true, Value: value}
}

// PointOnLine returns a constraint forcing p onto the infinite extension of
// line e.
func PointOnLine(p PointId, e EntityId) Constraint {
	return Constraint{Kind: KindPointOnLine, P1: p, E1: e, UsesEntity1: true}
}

// PointOnArc returns a constraint forcing p onto arc e's circle.
func PointOnArc(p PointId, e EntityId) Constraint {
	return Constraint{Kind: KindPointOnArc, P1: p, E1: e, UsesEntity1: true}
}

// Midpoint returns a constraint forcing p to the midpoint of p1, p2.
func Midpoint(p, p1, p2 PointId) Constraint {
	return Constraint{Kind: KindMidpoint, P1: p1, P2: p2, FixedPoint: p}
}

// Symmetric returns a constraint forcing p1, p2 symmetric about the line
// through axis's two endpoints.
func Symmetric(p1, p2 PointId, axis EntityId) Constraint {
	return Constraint{Kind: KindSymmetric, P1: p1, P2: p2, AxisLine: axis, UsesAxis: true}
}
