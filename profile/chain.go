package profile

import (
	"math"

	"github.com/samwillis/solidtype-sub007/sketch"
	v2 "github.com/samwillis/solidtype-sub007/vec/v2"
)

// endpoint is one entity's start or end, resolved to a sketch-plane
// position.
type endpoint struct {
	entity sketch.EntityId
	isEnd  bool
	pos    v2.Vec
}

// chainLoops clusters entity endpoints within tol, then greedily walks the
// resulting node graph into closed loops.
func chainLoops(sk *sketch.Sketch, tol float64) ([]Loop, error) {
	var entities []sketch.EntityId
	for _, id := range sk.EntityIds() {
		e, _ := sk.Entity(id)
		if !e.Construction {
			entities = append(entities, id)
		}
	}
	if len(entities) == 0 {
		return nil, nil
	}

	var endpoints []endpoint
	for _, id := range entities {
		e, _ := sk.Entity(id)
		start, _ := sk.Point(e.Start)
		end, _ := sk.Point(e.End)
		endpoints = append(endpoints,
			endpoint{entity: id, isEnd: false, pos: v2.Vec{X: start.X, Y: start.Y}},
			endpoint{entity: id, isEnd: true, pos: v2.Vec{X: end.X, Y: end.Y}},
		)
	}

	nodeOf := clusterNodes(endpoints, tol)

	type half struct {
		entity sketch.EntityId
		isEnd  bool
		other  int // node at the opposite end of this entity
	}
	adjacency := make(map[int][]half)
	startNode := make(map[sketch.EntityId]int)
	endNode := make(map[sketch.EntityId]int)
	for i := 0; i < len(endpoints); i += 2 {
		a, b := nodeOf[i], nodeOf[i+1]
		id := endpoints[i].entity
		startNode[id], endNode[id] = a, b
		adjacency[a] = append(adjacency[a], half{entity: id, isEnd: false, other: b})
		adjacency[b] = append(adjacency[b], half{entity: id, isEnd: true, other: a})
	}

	visited := make(map[sketch.EntityId]bool)
	var loops []Loop

	for _, seed := range entities {
		if visited[seed] {
			continue
		}
		var oriented []OrientedEntity
		var nodes []int

		loopStartNode := startNode[seed]
		node := loopStartNode
		cur := seed
		reversed := false
		closed := false
		for {
			visited[cur] = true
			oriented = append(oriented, OrientedEntity{Entity: cur, Reversed: reversed})
			nodes = append(nodes, node)

			var farNode int
			if reversed {
				farNode = startNode[cur]
			} else {
				farNode = endNode[cur]
			}
			if farNode == loopStartNode {
				closed = true
				break
			}

			var next *half
			for _, h := range adjacency[farNode] {
				if h.entity == cur || visited[h.entity] {
					continue
				}
				hh := h
				next = &hh
				break
			}
			if next == nil {
				break
			}
			node = farNode
			cur = next.entity
			reversed = next.isEnd
		}

		if !closed {
			return nil, ErrOpenChain
		}

		loops = append(loops, buildLoop(sk, oriented, nodePositions(nodes, endpoints, nodeOf)))
	}

	return loops, nil
}

// nodePositions resolves the distinct cluster-node positions walked, keyed
// by first occurrence, for use as the loop's polyline vertices.
func nodePositions(nodes []int, endpoints []endpoint, nodeOf []int) []v2.Vec {
	rep := make(map[int]v2.Vec)
	for i, n := range nodeOf {
		if _, ok := rep[n]; !ok {
			rep[n] = endpoints[i].pos
		}
	}
	out := make([]v2.Vec, len(nodes))
	for i, n := range nodes {
		out[i] = rep[n]
	}
	return out
}

// buildLoop samples each oriented entity (arcs at arcSamples points) into a
// polyline and computes its shoelace signed area.
func buildLoop(sk *sketch.Sketch, oriented []OrientedEntity, startPositions []v2.Vec) Loop {
	const arcSamples = 32
	var poly []v2.Vec
	for _, oe := range oriented {
		e, _ := sk.Entity(oe.Entity)
		pts := sampleEntity(sk, e, arcSamples)
		if oe.Reversed {
			reverseInPlace(pts)
		}
		poly = append(poly, pts[:len(pts)-1]...)
	}

	area := 0.0
	n := len(poly)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += poly[i].X*poly[j].Y - poly[j].X*poly[i].Y
	}
	area /= 2

	return Loop{Entities: oriented, Points: startPositions, SignedArea: area}
}

// sampleEntity returns n+1 points from e.Start to e.End inclusive (n
// segments), a straight line for KindLine and a circular arc polyline for
// KindArc.
func sampleEntity(sk *sketch.Sketch, e sketch.Entity, n int) []v2.Vec {
	start, _ := sk.Point(e.Start)
	end, _ := sk.Point(e.End)
	p0 := v2.Vec{X: start.X, Y: start.Y}
	p1 := v2.Vec{X: end.X, Y: end.Y}

	if e.Kind == sketch.KindLine {
		return []v2.Vec{p0, p1}
	}

	center, _ := sk.Point(e.Center)
	c := v2.Vec{X: center.X, Y: center.Y}
	r := math.Hypot(p0.X-c.X, p0.Y-c.Y)
	a0 := math.Atan2(p0.Y-c.Y, p0.X-c.X)
	a1 := math.Atan2(p1.Y-c.Y, p1.X-c.X)

	full := e.IsFullCircle()
	if full {
		a1 = a0 + 2*math.Pi
	} else if e.CCW && a1 < a0 {
		a1 += 2 * math.Pi
	} else if !e.CCW && a1 > a0 {
		a1 -= 2 * math.Pi
	}

	pts := make([]v2.Vec, n+1)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		a := a0 + (a1-a0)*t
		pts[i] = v2.Vec{X: c.X + r*math.Cos(a), Y: c.Y + r*math.Sin(a)}
	}
	return pts
}

func reverseInPlace(pts []v2.Vec) {
	for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
		pts[i], pts[j] = pts[j], pts[i]
	}
}

// clusterNodes assigns each endpoint to a cluster index, merging endpoints
// within tol of each other (spec.md 4.3's endpoint coincidence tolerance).
func clusterNodes(endpoints []endpoint, tol float64) []int {
	nodeOf := make([]int, len(endpoints))
	var reps []v2.Vec
	for i, ep := range endpoints {
		found := -1
		for ci, rep := range reps {
			if math.Hypot(ep.pos.X-rep.X, ep.pos.Y-rep.Y) <= tol {
				found = ci
				break
			}
		}
		if found == -1 {
			found = len(reps)
			reps = append(reps, ep.pos)
		}
		nodeOf[i] = found
	}
	return nodeOf
}
