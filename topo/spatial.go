package topo

import (
	"github.com/dhconnelly/rtreego"

	v3 "github.com/samwillis/solidtype-sub007/vec/v3"
)

// faceBox adapts a FaceId + its AABB to rtreego.Spatial so the boolean
// engine's face-pair prefilter (spec.md 4.6, Stage 2) can query candidate
// overlaps in O(log n) instead of the naive O(n^2) face-pair scan.
type faceBox struct {
	face FaceId
	rect *rtreego.Rect
}

// Bounds implements rtreego.Spatial.
func (b *faceBox) Bounds() *rtreego.Rect { return b.rect }

// FaceIndex is an R-tree of every live face's AABB in a body, built once
// per boolean operation and queried per candidate face from the other
// body.
type FaceIndex struct {
	tree *rtreego.Rtree
}

// NewFaceIndex builds a FaceIndex over every face reachable from bodyID.
func NewFaceIndex(m *Model, bodyID BodyId, tol float64) (*FaceIndex, error) {
	var ids []FaceId
	var outerErr error
	err := m.BodyShells(bodyID, func(sh ShellId) {
		_ = m.ShellFaces(sh, func(fc FaceId) {
			ids = append(ids, fc)
		})
	})
	if err != nil {
		return nil, err
	}
	if outerErr != nil {
		return nil, outerErr
	}
	return NewFaceIndexFromIds(m, ids, tol)
}

// NewFaceIndexFromIds builds a FaceIndex over an explicit set of faces,
// for callers (boolean's Stage 2 prefilter) that already have their own
// candidate-face list rather than a whole body to walk.
func NewFaceIndexFromIds(m *Model, ids []FaceId, tol float64) (*FaceIndex, error) {
	tree := rtreego.NewTree(3, 4, 16)
	for _, fc := range ids {
		box, err := m.FaceAABB(fc)
		if err != nil {
			return nil, err
		}
		rect, err := toRect(box, tol)
		if err != nil {
			return nil, err
		}
		tree.Insert(&faceBox{face: fc, rect: rect})
	}
	return &FaceIndex{tree: tree}, nil
}

// Query returns every indexed face whose AABB overlaps box.
func (idx *FaceIndex) Query(box v3.Box3, tol float64) ([]FaceId, error) {
	rect, err := toRect(box, tol)
	if err != nil {
		return nil, err
	}
	results := idx.tree.SearchIntersect(rect)
	ids := make([]FaceId, 0, len(results))
	for _, r := range results {
		ids = append(ids, r.(*faceBox).face)
	}
	return ids, nil
}

// toRect widens box by tol on every axis (matching the AABB-overlap
// tolerance used elsewhere, spec.md 4.6 Stage 1) and converts it to an
// rtreego.Rect, which requires strictly positive side lengths.
func toRect(box v3.Box3, tol float64) (*rtreego.Rect, error) {
	pad := tol
	if pad <= 0 {
		pad = 1e-9
	}
	lo := box.Min.Sub(v3.Vec{X: pad, Y: pad, Z: pad})
	hi := box.Max.Add(v3.Vec{X: pad, Y: pad, Z: pad})
	lengths := []float64{hi.X - lo.X, hi.Y - lo.Y, hi.Z - lo.Z}
	for i, l := range lengths {
		if l <= 0 {
			lengths[i] = 2 * pad
		}
	}
	return rtreego.NewRect(rtreego.Point{lo.X, lo.Y, lo.Z}, lengths)
}
