package solver

import "github.com/samwillis/solidtype-sub007/sketch"

// Component is one connected component of a sketch's point/entity/
// constraint co-occurrence graph (spec.md 4.2, "Partitioning").
type Component struct {
	Points      []sketch.PointId
	Entities    []sketch.EntityId
	Constraints []sketch.Constraint
}

// Partition builds an undirected graph over sk's non-fixed points, with
// edges for every pair of points that co-occur on the same entity or the
// same constraint, and returns its connected components so each can be
// solved independently.
func Partition(sk *sketch.Sketch) []Component {
	uf := newUnionFind()
	pointEntities := make(map[sketch.PointId][]sketch.EntityId)
	pointConstraints := make(map[sketch.PointId][]int)
	free := func(pts []sketch.PointId) []sketch.PointId {
		var out []sketch.PointId
		for _, p := range pts {
			if pt, err := sk.Point(p); err == nil && !pt.Fixed {
				out = append(out, p)
			}
		}
		return out
	}

	for _, pid := range free(sk.PointIds()) {
		uf.add(pid)
	}

	for _, eid := range sk.EntityIds() {
		e, _ := sk.Entity(eid)
		pts := free(entityPoints(e))
		for _, p := range pts {
			pointEntities[p] = append(pointEntities[p], eid)
		}
		for i := 1; i < len(pts); i++ {
			uf.union(pts[0], pts[i])
		}
	}

	constraints := sk.Constraints()
	for ci, c := range constraints {
		pts := free(constraintPoints(sk, c))
		for _, p := range pts {
			pointConstraints[p] = append(pointConstraints[p], ci)
		}
		for i := 1; i < len(pts); i++ {
			uf.union(pts[0], pts[i])
		}
	}

	groups := uf.groups()
	comps := make([]Component, 0, len(groups))
	for _, pts := range groups {
		seenEntity := make(map[sketch.EntityId]bool)
		seenConstraint := make(map[int]bool)
		comp := Component{Points: pts}
		for _, p := range pts {
			for _, e := range pointEntities[p] {
				if !seenEntity[e] {
					seenEntity[e] = true
					comp.Entities = append(comp.Entities, e)
				}
			}
			for _, ci := range pointConstraints[p] {
				if !seenConstraint[ci] {
					seenConstraint[ci] = true
					comp.Constraints = append(comp.Constraints, constraints[ci])
				}
			}
		}
		comps = append(comps, comp)
	}
	return comps
}

// entityPoints returns the point ids touched by e.
func entityPoints(e sketch.Entity) []sketch.PointId {
	switch e.Kind {
	case sketch.KindLine:
		return []sketch.PointId{e.Start, e.End}
	case sketch.KindArc:
		return []sketch.PointId{e.Start, e.End, e.Center}
	default:
		return nil
	}
}

// constraintPoints returns the point ids touched by c, resolving
// entity-level constraints to their underlying points.
func constraintPoints(sk *sketch.Sketch, c sketch.Constraint) []sketch.PointId {
	var pts []sketch.PointId
	add := func(p sketch.PointId) { pts = append(pts, p) }
	if c.P1 != c.P2 || c.Kind == sketch.KindCoincident {
		add(c.P1)
		add(c.P2)
	}
	if c.Kind == sketch.KindFixed {
		add(c.FixedPoint)
	}
	if c.Kind == sketch.KindMidpoint {
		add(c.FixedPoint)
	}
	if c.UsesEntity1 {
		if e, err := sk.Entity(c.E1); err == nil {
			pts = append(pts, entityPoints(e)...)
		}
	}
	if c.UsesEntity2 {
		if e, err := sk.Entity(c.E2); err == nil {
			pts = append(pts, entityPoints(e)...)
		}
	}
	if c.UsesAxis {
		if e, err := sk.Entity(c.AxisLine); err == nil {
			pts = append(pts, entityPoints(e)...)
		}
	}
	return pts
}

// unionFind is a small disjoint-set structure over sketch.PointId.
type unionFind struct {
	parent map[sketch.PointId]sketch.PointId
	order  []sketch.PointId
}

func newUnionFind() *unionFind {
	return &unionFind{parent: make(map[sketch.PointId]sketch.PointId)}
}

func (u *unionFind) add(p sketch.PointId) {
	if _, ok := u.parent[p]; !ok {
		u.parent[p] = p
		u.order = append(u.order, p)
	}
}

func (u *unionFind) find(p sketch.PointId) sketch.PointId {
	u.add(p)
	root := p
	for u.parent[root] != root {
		root = u.parent[root]
	}
	for u.parent[p] != root {
		u.parent[p], p = root, u.parent[p]
	}
	return root
}

func (u *unionFind) union(a, b sketch.PointId) {
	ra, rb := u.find(a), u.find(b)
	if ra != rb {
		u.parent[ra] = rb
	}
}

func (u *unionFind) groups() [][]sketch.PointId {
	byRoot := make(map[sketch.PointId][]sketch.PointId)
	var roots []sketch.PointId
	for _, p := range u.order {
		r := u.find(p)
		if _, ok := byRoot[r]; !ok {
			roots = append(roots, r)
		}
		byRoot[r] = append(byRoot[r], p)
	}
	out := make([][]sketch.PointId, 0, len(roots))
	for _, r := range roots {
		out = append(out, byRoot[r])
	}
	return out
}
