// Package boolean implements the planar boolean engine: face-face
// imprinting, ray-cast classification and reassembly of two bodies into a
// third (spec.md 4.6). Every face of both operands must lie on a plane
// surface; curved faces are rejected with ErrNonPlanarFace.
package boolean

import (
	"errors"
	"fmt"
	"math"

	"github.com/samwillis/solidtype-sub007/geom"
	"github.com/samwillis/solidtype-sub007/tol"
	"github.com/samwillis/solidtype-sub007/topo"
	v2 "github.com/samwillis/solidtype-sub007/vec/v2"
	v3 "github.com/samwillis/solidtype-sub007/vec/v3"
)

// Op is a planar boolean operation.
type Op int

const (
	Union Op = iota
	Subtract
	Intersect
)

// ErrEmptyResult is returned when an Intersect of two AABB-disjoint bodies
// is requested.
var ErrEmptyResult = errors.New("boolean: disjoint bodies have no intersection")

// ErrNonPlanarFace is returned when either operand has a face whose
// surface is not a plane.
var ErrNonPlanarFace = errors.New("boolean: planar booleans require plane surfaces")

// EvolutionKind classifies how a source face relates to the pieces of it
// that survive into the result.
type EvolutionKind int

const (
	Modified EvolutionKind = iota
	Split
	Merged
	Deleted
)

// Evolution relates one face of an operand body to a face of the result,
// consumed by the naming subsystem to carry persistent references across
// the operation (spec.md 4.8).
type Evolution struct {
	OldFace FaceRef
	NewFace topo.FaceId
	Kind    EvolutionKind
}

// FaceRef names a face of one of the two operand bodies.
type FaceRef struct {
	Body int // 0 for A, 1 for B
	Face topo.FaceId
}

// Result carries the outcome of a boolean operation alongside its evolution
// mapping and any non-fatal warnings (spec.md 4.6, "Failure modes").
type Result struct {
	Body       topo.BodyId
	Warnings   []string
	Evolutions []Evolution
}

// Combine runs op against bodies a and b of m, both required to be
// entirely plane-faced, and returns the resulting body.
func Combine(m *topo.Model, a, b topo.BodyId, op Op, ctx tol.Context) (Result, error) {
	boxA, err := m.BodyAABB(a)
	if err != nil {
		return Result{}, err
	}
	boxB, err := m.BodyAABB(b)
	if err != nil {
		return Result{}, err
	}

	// Stage 1 -- AABB pre-filter.
	if !boxA.Overlaps(boxB, ctx.Length) {
		switch op {
		case Union:
			return combineDisjointUnion(m, a, b)
		case Subtract:
			return Result{Body: a}, nil
		case Intersect:
			return Result{}, ErrEmptyResult
		}
	}

	facesA, err := gatherFaces(m, a, 0)
	if err != nil {
		return Result{}, err
	}
	facesB, err := gatherFaces(m, b, 1)
	if err != nil {
		return Result{}, err
	}

	// Stage 2 -- face-face imprinting.
	piecesA, err := imprintBodyFaces(m, facesA, facesB, ctx)
	if err != nil {
		return Result{}, err
	}
	piecesB, err := imprintBodyFaces(m, facesB, facesA, ctx)
	if err != nil {
		return Result{}, err
	}

	// Stage 3 -- classification.
	classifyPieces(piecesA, facesB, ctx)
	classifyPieces(piecesB, facesA, ctx)

	// Stage 4 -- selection.
	keptA := selectPieces(piecesA, op, true)
	keptB := selectPieces(piecesB, op, false)
	flipB := op == Subtract

	// Stage 5 -- reassembly.
	result := Result{}
	asm := newAssembler(m)
	for _, p := range keptA {
		asm.addPiece(p, false)
	}
	for _, p := range keptB {
		asm.addPiece(p, flipB)
	}
	body, warnings := asm.finish()
	result.Body = body
	result.Warnings = warnings
	result.Evolutions = buildEvolutions(facesA, piecesA, asm.newFaceOf)
	result.Evolutions = append(result.Evolutions, buildEvolutions(facesB, piecesB, asm.newFaceOf)...)
	return result, nil
}

func combineDisjointUnion(m *topo.Model, a, b topo.BodyId) (Result, error) {
	body := m.AddBody()
	var outerErr error
	addShells := func(src topo.BodyId) {
		bodyVal, err := m.Body(src)
		if err != nil {
			outerErr = err
			return
		}
		for _, sh := range bodyVal.Shells {
			if err := m.AddShellToBody(body, sh); err != nil {
				outerErr = err
				return
			}
		}
	}
	addShells(a)
	addShells(b)
	if outerErr != nil {
		return Result{}, outerErr
	}
	return Result{Body: body}, nil
}

// facePlane pairs a live face with its plane surface and its 2D boundary
// (outer boundary plus holes, in the face's own uv frame).
type facePlane struct {
	face  topo.FaceId
	body  int
	plane *geom.PlaneSurface
	outer []v2.Vec
	holes [][]v2.Vec
}

func gatherFaces(m *topo.Model, body topo.BodyId, bodyIdx int) ([]facePlane, error) {
	var faces []facePlane
	var outerErr error
	err := m.BodyShells(body, func(sh topo.ShellId) {
		_ = m.ShellFaces(sh, func(fc topo.FaceId) {
			if outerErr != nil {
				return
			}
			f, err := m.Face(fc)
			if err != nil {
				outerErr = err
				return
			}
			surf := m.Pools.Surfaces.Get(f.Surface)
			plane, ok := surf.(*geom.PlaneSurface)
			if !ok {
				outerErr = fmt.Errorf("%w: face %d", ErrNonPlanarFace, fc)
				return
			}
			outer, holes, err := facePolygon(m, fc, plane)
			if err != nil {
				outerErr = err
				return
			}
			faces = append(faces, facePlane{face: fc, body: bodyIdx, plane: plane, outer: outer, holes: holes})
		})
	})
	if err != nil {
		return nil, err
	}
	if outerErr != nil {
		return nil, outerErr
	}
	return faces, nil
}

// facePolygon projects every loop of face fc into the face's own uv frame
// via plane.Project; the first loop is the outer boundary, later loops are
// holes (spec.md 3.1).
func facePolygon(m *topo.Model, fc topo.FaceId, plane *geom.PlaneSurface) (outer []v2.Vec, holes [][]v2.Vec, err error) {
	f, err := m.Face(fc)
	if err != nil {
		return nil, nil, err
	}
	for i, l := range f.Loops {
		pts, err := m.LoopVertexPositions(l)
		if err != nil {
			return nil, nil, err
		}
		ring := make([]v2.Vec, len(pts))
		for j, p := range pts {
			u, v := plane.Project(p)
			ring[j] = v2.Vec{X: u, Y: v}
		}
		if i == 0 {
			outer = ring
		} else {
			holes = append(holes, ring)
		}
	}
	return outer, holes, nil
}

// imprintBodyFaces runs Stage 2 for one body: every pair of overlapping
// faces between subject and other has its supporting planes intersected,
// and the resulting line is used to split subject's pieces.
func imprintBodyFaces(m *topo.Model, subject, other []facePlane, ctx tol.Context) (map[topo.FaceId][]*piece, error) {
	index, err := buildAABB(m, other)
	if err != nil {
		return nil, err
	}
	pieces := make(map[topo.FaceId][]*piece, len(subject))
	for _, fp := range subject {
		base := bridgeFace(fp)
		pieces[fp.face] = []*piece{{ring: base, face: fp.face, body: fp.body, plane: fp.plane}}
	}
	for _, fa := range subject {
		boxA, err := m.FaceAABB(fa.face)
		if err != nil {
			return nil, err
		}
		candidates := index.query(boxA, ctx.Length)
		for _, fb := range candidates {
			point, dir, ok := planeIntersection(fa.plane, fb.plane)
			if !ok {
				continue
			}
			p2, d2 := projectLine(fa.plane, point, dir)
			pieces[fa.face] = splitPieces(pieces[fa.face], p2, d2, ctx.Length)
		}
	}
	return pieces, nil
}

// planeIntersection returns a point and direction on the line where planes
// p and q meet, or ok=false if they are parallel (spec.md 4.6, Stage 2).
func planeIntersection(p, q *geom.PlaneSurface) (point, dir v3.Vec, ok bool) {
	n1, n2 := p.N, q.N
	dir = n1.Cross(n2)
	if dir.Length() < 1e-12 {
		return v3.Vec{}, v3.Vec{}, false
	}
	dir = dir.Normalize()
	d1 := n1.Dot(p.Origin)
	d2 := n2.Dot(q.Origin)
	// Solve for a point on both planes via the standard two-plane
	// intersection formula.
	n1n2 := n1.Dot(n2)
	det := 1 - n1n2*n1n2
	if math.Abs(det) < 1e-12 {
		return v3.Vec{}, v3.Vec{}, false
	}
	a := (d1 - d2*n1n2) / det
	b := (d2 - d1*n1n2) / det
	point = n1.MulScalar(a).Add(n2.MulScalar(b))
	return point, dir, true
}

// projectLine expresses the 3D line (point, dir) in plane's own uv frame.
func projectLine(plane *geom.PlaneSurface, point, dir v3.Vec) (p2, d2 v2.Vec) {
	u0, v0 := plane.Project(point)
	u1, v1 := plane.Project(point.Add(dir))
	return v2.Vec{X: u0, Y: v0}, v2.Vec{X: u1 - u0, Y: v1 - v0}
}
