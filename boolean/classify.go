package boolean

import (
	"math"

	"github.com/samwillis/solidtype-sub007/tol"
	"github.com/samwillis/solidtype-sub007/topo"
	v2 "github.com/samwillis/solidtype-sub007/vec/v2"
	v3 "github.com/samwillis/solidtype-sub007/vec/v3"
)

// Label is a piece's classification against the other operand body
// (spec.md 4.6, Stage 3).
type Label int

const (
	Outside Label = iota
	Inside
	OnSame
	OnOpposite
)

// probeDir is the slightly off-axis ray direction used for inside/outside
// classification, chosen so it is unlikely to graze an axis-aligned edge
// or vertex (spec.md 4.6, Stage 3).
var probeDir = v3.Vec{X: 1, Y: 1.7e-4, Z: 1.3e-4}.Normalize()

// classifyPieces labels every piece of every face in pieces against the
// faces of the other body.
func classifyPieces(pieces map[topo.FaceId][]*piece, other []facePlane, ctx tol.Context) {
	for _, list := range pieces {
		for _, pc := range list {
			pc.label = classifyPiece(pc, other, ctx)
		}
	}
}

// classifyPiece implements Stage 3: probe the piece's material from both
// sides of its supporting plane and vote.
func classifyPiece(pc *piece, other []facePlane, ctx tol.Context) Label {
	c2 := polygonCentroid(pc.ring)
	base := pc.plane.Eval(c2.X, c2.Y)
	n := pc.plane.N
	scaledTol := ctx.Length * 10
	posIn := pointInBody(base.Add(n.MulScalar(scaledTol)), other, ctx)
	negIn := pointInBody(base.Add(n.MulScalar(-scaledTol)), other, ctx)

	switch {
	case posIn && negIn:
		return Inside
	case !posIn && !negIn:
		return Outside
	default:
		return coplanarLabel(pc, other, ctx)
	}
}

// coplanarLabel resolves the on_same/on_opposite tie by searching the other
// body for a face coplanar with pc's supporting plane and comparing normal
// directions (spec.md 4.6, Stage 3).
func coplanarLabel(pc *piece, other []facePlane, ctx tol.Context) Label {
	n := pc.plane.N
	p0 := pc.plane.Origin
	for _, fp := range other {
		dn := fp.plane.N
		d := math.Abs(n.Dot(p0.Sub(fp.plane.Origin)))
		if d > ctx.Length*10 {
			continue
		}
		dot := n.Dot(dn)
		if math.Abs(dot) < 0.9 {
			continue
		}
		if dot > 0 {
			return OnSame
		}
		return OnOpposite
	}
	return OnSame
}

// pointInBody tests whether pt lies inside the solid bounded by faces,
// using parity of signed ray-cast intersections along probeDir (spec.md
// 4.6, Stage 3).
func pointInBody(pt v3.Vec, faces []facePlane, ctx tol.Context) bool {
	count := 0
	for _, fp := range faces {
		if rayHitsFace(pt, probeDir, fp, ctx) {
			count++
		}
	}
	return count%2 == 1
}

// rayHitsFace reports whether the ray from origin in direction dir crosses
// face fp's bounded polygon (outer minus holes) at a positive parameter.
func rayHitsFace(origin, dir v3.Vec, fp facePlane, ctx tol.Context) bool {
	denom := fp.plane.N.Dot(dir)
	if math.Abs(denom) < 1e-12 {
		return false
	}
	t := fp.plane.N.Dot(fp.plane.Origin.Sub(origin)) / denom
	if t <= ctx.Length {
		return false
	}
	hit := origin.Add(dir.MulScalar(t))
	u, v := fp.plane.Project(hit)
	p := v2.Vec{X: u, Y: v}
	if !v2.PointInPolygon(p, fp.outer) {
		return false
	}
	for _, hole := range fp.holes {
		if v2.PointInPolygon(p, hole) {
			return false
		}
	}
	return true
}

// selectPieces retains pieces per Stage 4's table. fromA is true when
// pieces were imprinted from body A, false for body B.
func selectPieces(pieces map[topo.FaceId][]*piece, op Op, fromA bool) []*piece {
	var out []*piece
	for _, list := range pieces {
		for _, pc := range list {
			if keepPiece(pc.label, op, fromA) {
				out = append(out, pc)
			}
		}
	}
	return out
}

func keepPiece(label Label, op Op, fromA bool) bool {
	switch op {
	case Union:
		if fromA {
			return label == Outside || label == OnSame
		}
		return label == Outside
	case Subtract:
		if fromA {
			return label == Outside || label == OnOpposite
		}
		return label == Inside || label == OnSame
	case Intersect:
		if fromA {
			return label == Inside || label == OnOpposite
		}
		return label == Inside
	}
	return false
}
