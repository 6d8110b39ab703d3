// Package sketch implements the 2D sketch model: a datum plane, points,
// line/arc entities and constraints (spec.md 3.2).
package sketch

import (
	"errors"

	v2 "github.com/samwillis/solidtype-sub007/vec/v2"
	v3 "github.com/samwillis/solidtype-sub007/vec/v3"
)

// Sentinel errors for sketch operations.
var (
	// ErrPointNotFound is returned for an unknown PointId.
	ErrPointNotFound = errors.New("sketch: point not found")
	// ErrEntityNotFound is returned for an unknown EntityId.
	ErrEntityNotFound = errors.New("sketch: entity not found")
)

// PointId identifies a sketch point.
type PointId int32

// EntityId identifies a sketch entity (line or arc).
type EntityId int32

// Plane is the datum plane a sketch is built on: an orthonormal
// (xDir, yDir, normal) frame anchored at origin (spec.md 3.2).
type Plane struct {
	Origin v3.Vec
	XDir   v3.Vec
	YDir   v3.Vec
	Normal v3.Vec
}

// NewPlane builds a Plane from an origin and two orthonormal in-plane
// directions; normal is xDir x yDir.
func NewPlane(origin, xDir, yDir v3.Vec) Plane {
	xDir = xDir.Normalize()
	yDir = yDir.Normalize()
	return Plane{Origin: origin, XDir: xDir, YDir: yDir, Normal: xDir.Cross(yDir).Normalize()}
}

// To3D lifts a 2D sketch-plane point into 3D: origin + u*xDir + v*yDir.
func (p Plane) To3D(pt v2.Vec) v3.Vec {
	return p.Origin.Add(p.XDir.MulScalar(pt.X)).Add(p.YDir.MulScalar(pt.Y))
}

// Project returns the (x,y) sketch-plane coordinates of a 3D point
// (spec.md 4.2, external attachment resolution: "dot with xDir, yDir").
func (p Plane) Project(pt v3.Vec) v2.Vec {
	d := pt.Sub(p.Origin)
	return v2.Vec{X: d.Dot(p.XDir), Y: d.Dot(p.YDir)}
}

// Point is a sketch point: a 2D position, an optional fixed flag, and an
// optional external reference (spec.md 3.2).
type Point struct {
	X, Y     float64
	Fixed    bool
	External string // non-empty: a persistent-reference string (naming.Ref)
}

// EntityKind tags the concrete payload of an Entity.
type EntityKind int

const (
	// KindLine is a straight segment between two points.
	KindLine EntityKind = iota
	// KindArc is a circular arc (or, if Start==End, a full circle).
	KindArc
)

// Entity is a sketch geometry element: a line or an arc.
type Entity struct {
	Kind EntityKind

	// Line fields.
	Start, End PointId

	// Arc fields (Start/End above double as the arc endpoints).
	Center PointId
	CCW    bool

	// Construction entities are excluded from profile extraction.
	Construction bool
}

// IsFullCircle reports whether an arc entity's start and end refer to the
// same point (spec.md 3.2).
func (e Entity) IsFullCircle() bool {
	return e.Kind == KindArc && e.Start == e.End
}

// Sketch owns the datum plane, the point and entity maps, the constraint
// list, and per-kind allocation counters.
type Sketch struct {
	Plane Plane

	points      map[PointId]Point
	entities    map[EntityId]Entity
	constraints []Constraint

	nextPoint  PointId
	nextEntity EntityId
}

// New returns an empty sketch on the given datum plane.
func New(plane Plane) *Sketch {
	return &Sketch{
		Plane:    plane,
		points:   make(map[PointId]Point),
		entities: make(map[EntityId]Entity),
	}
}

// AddPoint allocates a new point at (x,y) and returns its id.
func (s *Sketch) AddPoint(x, y float64) PointId {
	id := s.nextPoint
	s.nextPoint++
	s.points[id] = Point{X: x, Y: y}
	return id
}

// Point returns the point at id.
func (s *Sketch) Point(id PointId) (Point, error) {
	p, ok := s.points[id]
	if !ok {
		return Point{}, ErrPointNotFound
	}
	return p, nil
}

// SetPoint overwrites the point at id (used by the solver to write back a
// solution, and by callers setting Fixed/External).
func (s *Sketch) SetPoint(id PointId, p Point) error {
	if _, ok := s.points[id]; !ok {
		return ErrPointNotFound
	}
	s.points[id] = p
	return nil
}

// PointIds returns every allocated point id, in allocation order.
func (s *Sketch) PointIds() []PointId {
	ids := make([]PointId, 0, len(s.points))
	for id := PointId(0); id < s.nextPoint; id++ {
		if _, ok := s.points[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// AddLine allocates a line entity between two existing points.
func (s *Sketch) AddLine(start, end PointId) (EntityId, error) {
	if _, ok := s.points[start]; !ok {
		return 0, ErrPointNotFound
	}
	if _, ok := s.points[end]; !ok {
		return 0, ErrPointNotFound
	}
	id := s.nextEntity
	s.nextEntity++
	s.entities[id] = Entity{Kind: KindLine, Start: start, End: end}
	return id, nil
}

// AddArc allocates an arc entity; a full circle is represented by
// start == end.
func (s *Sketch) AddArc(start, end, center PointId, ccw bool) (EntityId, error) {
	for _, p := range []PointId{start, end, center} {
		if _, ok := s.points[p]; !ok {
			return 0, ErrPointNotFound
		}
	}
	id := s.nextEntity
	s.nextEntity++
	s.entities[id] = Entity{Kind: KindArc, Start: start, End: end, Center: center, CCW: ccw}
	return id, nil
}

// Entity returns the entity at id.
func (s *Sketch) Entity(id EntityId) (Entity, error) {
	e, ok := s.entities[id]
	if !ok {
		return Entity{}, ErrEntityNotFound
	}
	return e, nil
}

// SetConstruction flags or unflags an entity as construction geometry.
func (s *Sketch) SetConstruction(id EntityId, construction bool) error {
	e, ok := s.entities[id]
	if !ok {
		return ErrEntityNotFound
	}
	e.Construction = construction
	s.entities[id] = e
	return nil
}

// EntityIds returns every allocated entity id, in allocation order.
func (s *Sketch) EntityIds() []EntityId {
	ids := make([]EntityId, 0, len(s.entities))
	for id := EntityId(0); id < s.nextEntity; id++ {
		if _, ok := s.entities[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// AddConstraint appends c to the sketch's constraint list.
func (s *Sketch) AddConstraint(c Constraint) {
	s.constraints = append(s.constraints, c)
}

// Constraints returns the sketch's constraint list.
func (s *Sketch) Constraints() []Constraint {
	return s.constraints
}
