package solver

import (
	"math"

	"github.com/samwillis/solidtype-sub007/sketch"
	v2 "github.com/samwillis/solidtype-sub007/vec/v2"
)

// residualRow is one scalar residual with its partial derivatives w.r.t.
// the global state vector, sparse over the indices it actually depends on.
type residualRow struct {
	value    float64
	partials map[int]float64
	isDriven bool
}

// buildResiduals evaluates every constraint in comp plus any driven-point
// soft residuals (spec.md 4.2, "Driven points") against the current trial
// state.
func buildResiduals(sk *sketch.Sketch, comp Component, idx map[sketch.PointId]int, state []float64, driven map[sketch.PointId]v2.Vec, drivenWeight float64) []residualRow {
	var rows []residualRow
	for _, c := range comp.Constraints {
		rows = append(rows, residualsFor(sk, c, idx, state)...)
	}
	w := math.Sqrt(drivenWeight)
	for p, target := range driven {
		i, ok := idx[p]
		if !ok {
			continue
		}
		x, y := state[i], state[i+1]
		rows = append(rows,
			residualRow{value: w * (x - target.X), partials: map[int]float64{i: w}, isDriven: true},
			residualRow{value: w * (y - target.Y), partials: map[int]float64{i + 1: w}, isDriven: true},
		)
	}
	return rows
}

// residualsFor evaluates a single constraint's residual vector and its
// jacobian w.r.t. the free state indices it touches, via a central-difference
// numerical jacobian over only the indices the constraint touches.
func residualsFor(sk *sketch.Sketch, c sketch.Constraint, idx map[sketch.PointId]int, state []float64) []residualRow {
	relevant := relevantIndices(sk, c, idx)
	eval := func(s []float64) []float64 { return evalConstraint(sk, c, idx, s) }
	base := eval(state)

	const h = 1e-6
	jac := make([][]float64, len(base))
	for i := range jac {
		jac[i] = make([]float64, len(relevant))
	}
	scratch := append([]float64(nil), state...)
	for k, si := range relevant {
		orig := scratch[si]
		scratch[si] = orig + h
		plus := eval(scratch)
		scratch[si] = orig - h
		minus := eval(scratch)
		scratch[si] = orig
		for i := range base {
			jac[i][k] = (plus[i] - minus[i]) / (2 * h)
		}
	}

	rows := make([]residualRow, len(base))
	for i := range base {
		partials := make(map[int]float64, len(relevant))
		for k, si := range relevant {
			partials[si] = jac[i][k]
		}
		rows[i] = residualRow{value: base[i], partials: partials}
	}
	return rows
}

func relevantIndices(sk *sketch.Sketch, c sketch.Constraint, idx map[sketch.PointId]int) []int {
	seen := make(map[int]bool)
	var out []int
	add := func(p sketch.PointId) {
		if i, ok := idx[p]; ok {
			if !seen[i] {
				seen[i] = true
				out = append(out, i)
			}
			if !seen[i+1] {
				seen[i+1] = true
				out = append(out, i+1)
			}
		}
	}
	for _, p := range constraintPoints(sk, c) {
		add(p)
	}
	return out
}

func xy(sk *sketch.Sketch, idx map[sketch.PointId]int, state []float64, p sketch.PointId) (float64, float64) {
	if i, ok := idx[p]; ok {
		return state[i], state[i+1]
	}
	pt, _ := sk.Point(p)
	return pt.X, pt.Y
}

func entityEndpoints(sk *sketch.Sketch, idx map[sketch.PointId]int, state []float64, e sketch.EntityId) (x1, y1, x2, y2 float64) {
	ent, _ := sk.Entity(e)
	x1, y1 = xy(sk, idx, state, ent.Start)
	x2, y2 = xy(sk, idx, state, ent.End)
	return
}

// arcRadius returns |center - start|, the radius implied by an arc's
// stored points.
func arcRadius(sk *sketch.Sketch, idx map[sketch.PointId]int, state []float64, e sketch.EntityId) float64 {
	ent, _ := sk.Entity(e)
	cx, cy := xy(sk, idx, state, ent.Center)
	sx, sy := xy(sk, idx, state, ent.Start)
	return math.Hypot(sx-cx, sy-cy)
}

func cross2(ax, ay, bx, by float64) float64 { return ax*by - ay*bx }
func dot2(ax, ay, bx, by float64) float64   { return ax*bx + ay*by }

// evalConstraint returns the residual vector for c, per the formulas in
// spec.md 4.2.
func evalConstraint(sk *sketch.Sketch, c sketch.Constraint, idx map[sketch.PointId]int, state []float64) []float64 {
	switch c.Kind {
	case sketch.KindCoincident:
		x1, y1 := xy(sk, idx, state, c.P1)
		x2, y2 := xy(sk, idx, state, c.P2)
		return []float64{x1 - x2, y1 - y2}

	case sketch.KindHorizontal:
		var y1, y2 float64
		if c.UsesEntity1 {
			_, y1, _, y2 = entityEndpoints(sk, idx, state, c.E1)
		} else {
			_, y1 = xy(sk, idx, state, c.P1)
			_, y2 = xy(sk, idx, state, c.P2)
		}
		return []float64{y1 - y2}

	case sketch.KindVertical:
		var x1, x2 float64
		if c.UsesEntity1 {
			x1, _, x2, _ = entityEndpoints(sk, idx, state, c.E1)
		} else {
			x1, _ = xy(sk, idx, state, c.P1)
			x2, _ = xy(sk, idx, state, c.P2)
		}
		return []float64{x1 - x2}

	case sketch.KindDistance:
		x1, y1 := xy(sk, idx, state, c.P1)
		x2, y2 := xy(sk, idx, state, c.P2)
		return []float64{math.Hypot(x1-x2, y1-y2) - c.Value}

	case sketch.KindHorizontalDistance:
		x1, _ := xy(sk, idx, state, c.P1)
		x2, _ := xy(sk, idx, state, c.P2)
		return []float64{math.Abs(x1-x2) - c.Value}

	case sketch.KindVerticalDistance:
		_, y1 := xy(sk, idx, state, c.P1)
		_, y2 := xy(sk, idx, state, c.P2)
		return []float64{math.Abs(y1-y2) - c.Value}

	case sketch.KindParallel:
		x1, y1, x2, y2 := entityEndpoints(sk, idx, state, c.E1)
		x3, y3, x4, y4 := entityEndpoints(sk, idx, state, c.E2)
		d1x, d1y := x2-x1, y2-y1
		d2x, d2y := x4-x3, y4-y3
		l := math.Hypot(d1x, d1y) * math.Hypot(d2x, d2y)
		if l == 0 {
			l = 1
		}
		return []float64{cross2(d1x, d1y, d2x, d2y) / l}

	case sketch.KindPerpendicular:
		x1, y1, x2, y2 := entityEndpoints(sk, idx, state, c.E1)
		x3, y3, x4, y4 := entityEndpoints(sk, idx, state, c.E2)
		d1x, d1y := x2-x1, y2-y1
		d2x, d2y := x4-x3, y4-y3
		l := math.Hypot(d1x, d1y) * math.Hypot(d2x, d2y)
		if l == 0 {
			l = 1
		}
		return []float64{dot2(d1x, d1y, d2x, d2y) / l}

	case sketch.KindAngle:
		x1, y1, x2, y2 := entityEndpoints(sk, idx, state, c.E1)
		x3, y3, x4, y4 := entityEndpoints(sk, idx, state, c.E2)
		d1x, d1y := x2-x1, y2-y1
		d2x, d2y := x4-x3, y4-y3
		return []float64{cross2(d1x, d1y, d2x, d2y)*math.Cos(c.Value) - dot2(d1x, d1y, d2x, d2y)*math.Sin(c.Value)}

	case sketch.KindEqualLength:
		x1, y1, x2, y2 := entityEndpoints(sk, idx, state, c.E1)
		x3, y3, x4, y4 := entityEndpoints(sk, idx, state, c.E2)
		return []float64{math.Hypot(x2-x1, y2-y1) - math.Hypot(x4-x3, y4-y3)}

	case sketch.KindCollinear:
		x1, y1, x2, y2 := entityEndpoints(sk, idx, state, c.E1)
		x3, y3, x4, y4 := entityEndpoints(sk, idx, state, c.E2)
		dx, dy := x2-x1, y2-y1
		return []float64{
			cross2(dx, dy, x3-x1, y3-y1),
			cross2(dx, dy, x4-x1, y4-y1),
		}

	case sketch.KindTangent:
		e1, _ := sk.Entity(c.E1)
		e2, _ := sk.Entity(c.E2)
		if e1.Kind == sketch.KindArc && e2.Kind == sketch.KindArc {
			cx1, cy1 := xy(sk, idx, state, e1.Center)
			cx2, cy2 := xy(sk, idx, state, e2.Center)
			r1 := arcRadius(sk, idx, state, c.E1)
			r2 := arcRadius(sk, idx, state, c.E2)
			return []float64{math.Hypot(cx2-cx1, cy2-cy1) - (r1 + r2)}
		}
		lineID, arcID := c.E1, c.E2
		if e1.Kind == sketch.KindArc {
			lineID, arcID = c.E2, c.E1
		}
		x1, y1, x2, y2 := entityEndpoints(sk, idx, state, lineID)
		arc, _ := sk.Entity(arcID)
		cx, cy := xy(sk, idx, state, arc.Center)
		r := arcRadius(sk, idx, state, arcID)
		dx, dy := x2-x1, y2-y1
		l := math.Hypot(dx, dy)
		if l == 0 {
			l = 1
		}
		dist := math.Abs(cross2(dx, dy, cx-x1, cy-y1)) / l
		return []float64{dist - r}

	case sketch.KindEqualRadius:
		return []float64{arcRadius(sk, idx, state, c.E1) - arcRadius(sk, idx, state, c.E2)}

	case sketch.KindConcentric:
		e1, _ := sk.Entity(c.E1)
		e2, _ := sk.Entity(c.E2)
		cx1, cy1 := xy(sk, idx, state, e1.Center)
		cx2, cy2 := xy(sk, idx, state, e2.Center)
		return []float64{cx1 - cx2, cy1 - cy2}

	case sketch.KindFixed:
		// Fixed points are excluded from the free state vector entirely
		// (sketch.Point.Fixed); this constraint is a no-op marker kept for
		// symmetry with the tagged-union listing in spec.md 3.2.
		return nil

	case sketch.KindRadius:
		return []float64{arcRadius(sk, idx, state, c.E1) - c.Value}

	case sketch.KindPointOnLine:
		px, py := xy(sk, idx, state, c.P1)
		x1, y1, x2, y2 := entityEndpoints(sk, idx, state, c.E1)
		return []float64{cross2(x2-x1, y2-y1, px-x1, py-y1)}

	case sketch.KindPointOnArc:
		px, py := xy(sk, idx, state, c.P1)
		arc, _ := sk.Entity(c.E1)
		cx, cy := xy(sk, idx, state, arc.Center)
		r := arcRadius(sk, idx, state, c.E1)
		return []float64{math.Hypot(px-cx, py-cy) - r}

	case sketch.KindMidpoint:
		px, py := xy(sk, idx, state, c.FixedPoint)
		x1, y1 := xy(sk, idx, state, c.P1)
		x2, y2 := xy(sk, idx, state, c.P2)
		return []float64{px - (x1+x2)/2, py - (y1+y2)/2}

	case sketch.KindSymmetric:
		x1, y1 := xy(sk, idx, state, c.P1)
		x2, y2 := xy(sk, idx, state, c.P2)
		ax1, ay1, ax2, ay2 := entityEndpoints(sk, idx, state, c.AxisLine)
		adx, ady := ax2-ax1, ay2-ay1
		mx, my := (x1+x2)/2, (y1+y2)/2
		return []float64{
			cross2(adx, ady, mx-ax1, my-ay1),
			dot2(adx, ady, x1-x2, y1-y2),
		}

	default:
		return nil
	}
}
