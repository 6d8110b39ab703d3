package naming

import (
	"fmt"
	"math"

	"github.com/samwillis/solidtype-sub007/topo"
	v3 "github.com/samwillis/solidtype-sub007/vec/v3"
)

// FeatureKind tags which sweep operation produced a subshape, driving the
// localSelector.kind classification (spec.md 4.8).
type FeatureKind int

const (
	FeatureUnknown FeatureKind = iota
	FeatureExtrude
	FeatureRevolve
)

// Strategy is the NamingStrategy of spec.md 4.8: a monotonically increasing
// feature/step allocator plus the forward (subshape -> refs) and reverse
// (ref -> current subshape) maps.
type Strategy struct {
	m             *topo.Model
	nextFeature   int
	nextStep      int
	forward       map[SubshapeRef][]PersistentRef
	reverse       map[PersistentRef]SubshapeRef
	featureBody   map[string]topo.BodyId
}

// NewStrategy returns a Strategy bound to m.
func NewStrategy(m *topo.Model) *Strategy {
	return &Strategy{
		m:           m,
		forward:     make(map[SubshapeRef][]PersistentRef),
		reverse:     make(map[PersistentRef]SubshapeRef),
		featureBody: make(map[string]topo.BodyId),
	}
}

// AllocFeatureId returns the next feature id ("feature-N") in allocation
// order.
func (s *Strategy) AllocFeatureId() string {
	s.nextFeature++
	return fmt.Sprintf("feature-%d", s.nextFeature)
}

// AllocStepId returns the next step id, monotonically increasing across the
// whole strategy's lifetime.
func (s *Strategy) AllocStepId() int {
	s.nextStep++
	return s.nextStep
}

// ClassifyExtrudeFace implements spec.md 4.8's extrude selector rule:
// topCap when dot(normal, dir) > 0.9, bottomCap when < -0.9, side
// otherwise.
func ClassifyExtrudeFace(m *topo.Model, fc topo.FaceId, dir v3.Vec) (string, error) {
	n, err := m.FaceNormal(fc)
	if err != nil {
		return "", err
	}
	dot := n.Dot(dir.Normalize())
	switch {
	case dot > 0.9:
		return "extrude.topCap", nil
	case dot < -0.9:
		return "extrude.bottomCap", nil
	default:
		return "extrude.side", nil
	}
}

// RevolveRole names a revolve-produced face per spec.md 4.8 from
// caller-supplied cap flags rather than from geometry. sweep.Revolve does
// not report which of its faces are caps, so kernel.Revolve passes
// (false, false) for every face and every revolve face is named
// "revolve.side"; "revolve.startCap" and "revolve.endCap" are not produced.
func RevolveRole(isStartCap, isEndCap bool) string {
	switch {
	case isStartCap:
		return "revolve.startCap"
	case isEndCap:
		return "revolve.endCap"
	default:
		return "revolve.side"
	}
}

// GenerateFace builds and registers a persistent reference for fc, computed
// from its current tessellated-equivalent fingerprint (spec.md 4.8).
// Faces of this kernel are always planar, so the face's own polygon is
// already the exact geometry a triangulated mesh would reduce to — no
// separate tessellation pass is needed to compute centroid/size/normal.
func (s *Strategy) GenerateFace(body topo.BodyId, featureId string, fc topo.FaceId, selectorKind string, data map[string]any) (PersistentRef, error) {
	f, err := s.m.Face(fc)
	if err != nil {
		return "", err
	}
	if len(f.Loops) == 0 {
		return "", fmt.Errorf("naming: face %d has no loops", fc)
	}
	pts, err := s.m.LoopVertexPositions(f.Loops[0])
	if err != nil {
		return "", err
	}
	area, normal := topo.NewtonArea(pts)
	if f.Reversed() {
		normal = normal.MulScalar(-1)
	}
	centroid := topo.Centroid(pts)
	nn := normal.Normalize()

	rec := Record{
		V:               1,
		ExpectedType:    TypeFace,
		OriginFeatureId: featureId,
		LocalSelector:   LocalSelector{Kind: selectorKind, Data: data},
		Fingerprint: &Fingerprint{
			Centroid: [3]float64{centroid.X, centroid.Y, centroid.Z},
			Size:     area,
			Normal:   &[3]float64{nn.X, nn.Y, nn.Z},
		},
	}
	ref, err := Encode(rec)
	if err != nil {
		return "", err
	}
	sub := SubshapeRef{Body: body, Type: TypeFace, Face: fc}
	s.forward[sub] = append(s.forward[sub], ref)
	s.reverse[ref] = sub
	s.featureBody[featureId] = body
	return ref, nil
}

// GenerateEdge builds and registers a persistent reference for ed, using
// its midpoint and length as fingerprint (spec.md 4.8).
func (s *Strategy) GenerateEdge(body topo.BodyId, featureId string, ed topo.EdgeId, selectorKind string, data map[string]any) (PersistentRef, error) {
	e, err := s.m.Edge(ed)
	if err != nil {
		return "", err
	}
	a, err := s.m.Vertex(e.Start)
	if err != nil {
		return "", err
	}
	b, err := s.m.Vertex(e.End)
	if err != nil {
		return "", err
	}
	mid := a.Pos.Add(b.Pos).MulScalar(0.5)
	length := a.Pos.Sub(b.Pos).Length()

	rec := Record{
		V:               1,
		ExpectedType:    TypeEdge,
		OriginFeatureId: featureId,
		LocalSelector:   LocalSelector{Kind: selectorKind, Data: data},
		Fingerprint: &Fingerprint{
			Centroid: [3]float64{mid.X, mid.Y, mid.Z},
			Size:     length,
		},
	}
	ref, err := Encode(rec)
	if err != nil {
		return "", err
	}
	sub := SubshapeRef{Body: body, Type: TypeEdge, Edge: ed}
	s.forward[sub] = append(s.forward[sub], ref)
	s.reverse[ref] = sub
	s.featureBody[featureId] = body
	return ref, nil
}

// ResolveStatus is the outcome kind of a Resolve call (spec.md 4.8).
type ResolveStatus int

const (
	Found ResolveStatus = iota
	Ambiguous
	NotFound
)

// ResolveResult carries Resolve's outcome.
type ResolveResult struct {
	Status     ResolveStatus
	Subshape   SubshapeRef
	Candidates []SubshapeRef
	Reason     string
}

// Resolve looks ref up via the reverse map first, falling back to
// fingerprint nearest-match over the origin feature's current body when
// that misses (spec.md 4.8).
func (s *Strategy) Resolve(ref PersistentRef) (ResolveResult, error) {
	if sub, ok := s.reverse[ref]; ok {
		return ResolveResult{Status: Found, Subshape: sub}, nil
	}
	rec, err := Decode(ref)
	if err != nil {
		return ResolveResult{}, err
	}
	body, ok := s.featureBody[rec.OriginFeatureId]
	if !ok || rec.Fingerprint == nil {
		return ResolveResult{Status: NotFound, Reason: "origin feature unknown or reference carries no fingerprint"}, nil
	}
	return s.resolveByFingerprint(body, rec), nil
}

func (s *Strategy) resolveByFingerprint(body topo.BodyId, rec Record) ResolveResult {
	target := rec.Fingerprint
	tc := v3.Vec{X: target.Centroid[0], Y: target.Centroid[1], Z: target.Centroid[2]}

	type scored struct {
		sub  SubshapeRef
		dist float64
	}
	var candidates []scored
	_ = s.m.BodyShells(body, func(sh topo.ShellId) {
		_ = s.m.ShellFaces(sh, func(fc topo.FaceId) {
			if rec.ExpectedType != TypeFace {
				return
			}
			f, err := s.m.Face(fc)
			if err != nil || f.Deleted() || len(f.Loops) == 0 {
				return
			}
			pts, err := s.m.LoopVertexPositions(f.Loops[0])
			if err != nil {
				return
			}
			area, normal := topo.NewtonArea(pts)
			centroid := topo.Centroid(pts)
			scale := target.Size
			if scale <= 0 {
				scale = 1
			}
			dist := centroid.Sub(tc).Length() / scale
			if target.Normal != nil {
				tn := v3.Vec{X: target.Normal[0], Y: target.Normal[1], Z: target.Normal[2]}
				nn := normal.Normalize()
				if f.Reversed() {
					nn = nn.MulScalar(-1)
				}
				dist += (1 - tn.Dot(nn)) * 0.5
			}
			candidates = append(candidates, scored{sub: SubshapeRef{Body: body, Type: TypeFace, Face: fc}, dist: dist})
		})
	})
	if len(candidates) == 0 {
		return ResolveResult{Status: NotFound, Reason: "no faces remain in the origin feature's body"}
	}
	best, second := candidates[0], scored{dist: math.Inf(1)}
	for _, c := range candidates[1:] {
		if c.dist < best.dist {
			second = best
			best = c
		} else if c.dist < second.dist {
			second = c
		}
	}
	const margin = 0.05
	if second.dist-best.dist < margin {
		cands := make([]SubshapeRef, 0, len(candidates))
		for _, c := range candidates {
			if c.dist-best.dist < margin {
				cands = append(cands, c.sub)
			}
		}
		if len(cands) > 1 {
			return ResolveResult{Status: Ambiguous, Candidates: cands, Reason: "multiple faces within fingerprint margin"}
		}
	}
	return ResolveResult{Status: Found, Subshape: best.sub}
}

// GC drops forward-map entries for bodies that no longer appear as the
// target of any reverse-map entry — i.e. subshapes whose owning body has
// been entirely superseded by later evolution mappings. This is an
// explicitly invoked cleanup, never automatic, so no live reference is
// silently invalidated.
func (s *Strategy) GC() int {
	live := make(map[topo.BodyId]bool)
	for _, sub := range s.reverse {
		live[sub.Body] = true
	}
	removed := 0
	for sub := range s.forward {
		if !live[sub.Body] {
			delete(s.forward, sub)
			removed++
		}
	}
	return removed
}
