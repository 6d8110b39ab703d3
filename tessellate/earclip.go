package tessellate

import (
	v2 "github.com/samwillis/solidtype-sub007/vec/v2"
)

// bridgeFace collapses a simple outer ring and its holes into a single
// simple polygon by splicing each hole in via a bridge to its nearest
// outer vertex, the same technique boolean's face-face imprinting uses to
// feed its polygon clipper a hole-free ring.
func bridgeFace(outer []v2.Vec, holes [][]v2.Vec) []v2.Vec {
	ring := append([]v2.Vec(nil), outer...)
	for _, hole := range holes {
		ring = spliceHole(ring, hole)
	}
	return ring
}

func spliceHole(outer, hole []v2.Vec) []v2.Vec {
	if len(hole) == 0 {
		return outer
	}
	bestOuter, bestHole := 0, 0
	bestD := -1.0
	for i, op := range outer {
		for j, hp := range hole {
			d := op.Sub(hp).Length2()
			if bestD < 0 || d < bestD {
				bestD, bestOuter, bestHole = d, i, j
			}
		}
	}
	out := make([]v2.Vec, 0, len(outer)+len(hole)+2)
	out = append(out, outer[:bestOuter+1]...)
	for k := 0; k <= len(hole); k++ {
		out = append(out, hole[(bestHole+k)%len(hole)])
	}
	out = append(out, outer[bestOuter:]...)
	return out
}

// earClip triangulates a simple (possibly non-convex, hole-free) polygon
// by repeatedly clipping a convex, empty "ear" vertex, the standard O(n^2)
// ear-clipping algorithm. Returns index triples into poly.
func earClip(poly []v2.Vec) [][3]int {
	n := len(poly)
	if n < 3 {
		return nil
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	if v2.SignedArea(poly) < 0 {
		for i, j := 0, len(idx)-1; i < j; i, j = i+1, j-1 {
			idx[i], idx[j] = idx[j], idx[i]
		}
	}

	var tris [][3]int
	guard := 0
	for len(idx) > 3 && guard < n*n+8 {
		guard++
		clipped := false
		// Two tiers: prefer a strictly convex ear; a hole-bridge seam
		// produces exactly-collinear vertex triples that never satisfy a
		// strict convexity test, so fall back to accepting those once no
		// strictly convex ear remains.
		for _, minCross := range []float64{1e-12, -1e-9} {
			for i := 0; i < len(idx); i++ {
				ip := idx[(i+len(idx)-1)%len(idx)]
				ic := idx[i]
				in := idx[(i+1)%len(idx)]
				cross := poly[ic].Sub(poly[ip]).Cross(poly[in].Sub(poly[ic]))
				if cross < minCross {
					continue
				}
				if anyPointInside(poly, idx, ip, ic, in) {
					continue
				}
				tris = append(tris, [3]int{ip, ic, in})
				idx = append(idx[:i], idx[i+1:]...)
				clipped = true
				break
			}
			if clipped {
				break
			}
		}
		if !clipped {
			break
		}
	}
	if len(idx) == 3 {
		tris = append(tris, [3]int{idx[0], idx[1], idx[2]})
	}
	return tris
}

func anyPointInside(poly []v2.Vec, idx []int, a, b, c int) bool {
	tri := []v2.Vec{poly[a], poly[b], poly[c]}
	for _, j := range idx {
		if j == a || j == b || j == c {
			continue
		}
		if v2.PointInPolygon(poly[j], tri) {
			return true
		}
	}
	return false
}
