package heal

import (
	"github.com/samwillis/solidtype-sub007/topo"
)

// reorientShells computes each shell's signed volume from its faces'
// Newton-formula centroids and areas and flips every face's REVERSED flag
// when that volume is negative, so outward normals are consistent (spec.md
// 4.7, "Shell reorientation").
//
// Flipping every face's REVERSED bit (rather than physically reversing
// loop traversal direction) is enough here: topo.FaceNormal already XORs
// the surface normal with REVERSED, so toggling it for a whole shell
// inverts every face's effective outward normal without touching
// half-edge Next/Prev ordering, which nothing downstream of healing
// depends on.
func reorientShells(m *topo.Model, body topo.BodyId) (int, error) {
	flipped := 0
	var outerErr error
	err := m.BodyShells(body, func(sh topo.ShellId) {
		vol, faces, err := shellSignedVolume(m, sh)
		if err != nil {
			outerErr = err
			return
		}
		if vol >= 0 {
			return
		}
		for _, fc := range faces {
			f, err := m.Face(fc)
			if err != nil {
				outerErr = err
				return
			}
			if err := m.SetFaceReversed(fc, !f.Reversed()); err != nil {
				outerErr = err
				return
			}
		}
		flipped++
	})
	if err != nil {
		return flipped, err
	}
	return flipped, outerErr
}

// shellSignedVolume computes Σ (1/3)·dot(centroid_f, n_f)·area_f over the
// shell's live faces (spec.md 4.7).
func shellSignedVolume(m *topo.Model, sh topo.ShellId) (float64, []topo.FaceId, error) {
	var vol float64
	var faces []topo.FaceId
	var outerErr error
	err := m.ShellFaces(sh, func(fc topo.FaceId) {
		f, err := m.Face(fc)
		if err != nil {
			outerErr = err
			return
		}
		if f.Deleted() {
			return
		}
		faces = append(faces, fc)
		centroid, area, normal, err := faceCentroidAndArea(m, fc)
		if err != nil {
			outerErr = err
			return
		}
		if f.Reversed() {
			normal = normal.MulScalar(-1)
		}
		vol += centroid.Dot(normal) * area / 3
	})
	if err != nil {
		return 0, nil, err
	}
	return vol, faces, outerErr
}
