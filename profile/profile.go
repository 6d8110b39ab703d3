// Package profile extracts closed 2D loops from a sketch's line and arc
// entities by greedily chaining shared endpoints, and classifies the
// resulting loops into one outer boundary and zero or more holes
// (spec.md 4.3).
package profile

import (
	"errors"

	"github.com/samwillis/solidtype-sub007/sketch"
	v2 "github.com/samwillis/solidtype-sub007/vec/v2"
)

// ErrOpenChain is returned when the sketch's non-construction entities do
// not partition into closed loops: some chain has a dangling endpoint.
var ErrOpenChain = errors.New("profile: entity chain does not close")

// ErrNoLoops is returned when a sketch has no non-construction entities to
// extract a profile from.
var ErrNoLoops = errors.New("profile: no closed loops found")

// DefaultTolerance is the endpoint coincidence tolerance used to chain
// entities into loops (spec.md 4.3).
const DefaultTolerance = 1e-8

// OrientedEntity is one entity of a loop, walked in the direction given by
// Reversed (false: start-to-end as stored in the sketch; true: end-to-start).
type OrientedEntity struct {
	Entity   sketch.EntityId
	Reversed bool
}

// Loop is a closed chain of oriented entities, plus the node positions of
// its walk in traversal order (one per entity, node[i] is the start of
// entity i).
type Loop struct {
	Entities []OrientedEntity
	Points   []v2.Vec

	// SignedArea is the shoelace area of the loop's sampled outline, arcs
	// sampled at 32 segments each (positive: CCW).
	SignedArea float64
}

// IsCCW reports whether the loop winds counterclockwise.
func (l Loop) IsCCW() bool { return l.SignedArea > 0 }

// Profile is an extracted sketch cross-section: one outer boundary loop and
// zero or more hole loops nested inside it (spec.md 4.3).
type Profile struct {
	Outer Loop
	Holes []Loop
}

// FromSketch extracts every maximal set of closed loops chainable from sk's
// non-construction entities, picks the one with greatest enclosed area as
// the outer boundary, and treats the rest as holes (spec.md 4.3). Outer is
// normalized to wind CCW and holes to wind CW, matching the convention used
// by sweep and tessellate.
func FromSketch(sk *sketch.Sketch, tol float64) (Profile, error) {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	loops, err := chainLoops(sk, tol)
	if err != nil {
		return Profile{}, err
	}
	if len(loops) == 0 {
		return Profile{}, ErrNoLoops
	}

	outerIdx := 0
	for i, l := range loops {
		if abs(l.SignedArea) > abs(loops[outerIdx].SignedArea) {
			outerIdx = i
		}
	}

	p := Profile{}
	for i, l := range loops {
		if i == outerIdx {
			if !l.IsCCW() {
				l = l.reversed()
			}
			p.Outer = l
			continue
		}
		if l.IsCCW() {
			l = l.reversed()
		}
		p.Holes = append(p.Holes, l)
	}
	return p, nil
}

func (l Loop) reversed() Loop {
	n := len(l.Entities)
	out := Loop{
		Entities:   make([]OrientedEntity, n),
		Points:     make([]v2.Vec, n),
		SignedArea: -l.SignedArea,
	}
	for i := 0; i < n; i++ {
		src := l.Entities[n-1-i]
		out.Entities[i] = OrientedEntity{Entity: src.Entity, Reversed: !src.Reversed}
		// Points are walked start-of-entity; after reversal the i-th node
		// is the old loop's node that sat at the end of the corresponding
		// entity, i.e. points[n-i] modulo n.
		out.Points[i] = l.Points[(n-i)%n]
	}
	return out
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
