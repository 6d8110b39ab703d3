package topo

import (
	v3 "github.com/samwillis/solidtype-sub007/vec/v3"
)

// FaceLoops iterates the loop ids of a face in declaration order; the
// first call receives the outer boundary, subsequent calls receive holes
// (spec.md 3.1).
func (m *Model) FaceLoops(id FaceId, fn func(LoopId)) error {
	f, err := m.Face(id)
	if err != nil {
		return err
	}
	for _, l := range f.Loops {
		fn(l)
	}
	return nil
}

// ShellFaces iterates the face ids of a shell.
func (m *Model) ShellFaces(id ShellId, fn func(FaceId)) error {
	s, err := m.Shell(id)
	if err != nil {
		return err
	}
	for _, f := range s.Faces {
		fn(f)
	}
	return nil
}

// BodyShells iterates the shell ids of a body.
func (m *Model) BodyShells(id BodyId, fn func(ShellId)) error {
	b, err := m.Body(id)
	if err != nil {
		return err
	}
	for _, s := range b.Shells {
		fn(s)
	}
	return nil
}

// FaceNormal returns the face's effective normal: the surface normal XOR
// the REVERSED flag (spec.md 3.1).
func (m *Model) FaceNormal(id FaceId) (v3.Vec, error) {
	f, err := m.Face(id)
	if err != nil {
		return v3.Vec{}, err
	}
	n := m.Pools.Surfaces.Get(f.Surface).Normal(0, 0)
	if f.Reversed() {
		n = n.Neg()
	}
	return n, nil
}

// LoopVertexPositions returns the 3D positions of the start vertex of each
// half-edge in the loop, in cycle order.
func (m *Model) LoopVertexPositions(id LoopId) ([]v3.Vec, error) {
	var pts []v3.Vec
	err := m.LoopHalfEdges(id, func(he HalfEdgeId) {
		v, verr := m.StartVertex(he)
		if verr != nil {
			return
		}
		vert, verr := m.Vertex(v)
		if verr != nil {
			return
		}
		pts = append(pts, vert.Pos)
	})
	return pts, err
}

// FaceAABB returns the axis-aligned bounding box of every vertex visited by
// every loop of the face.
func (m *Model) FaceAABB(id FaceId) (v3.Box3, error) {
	f, err := m.Face(id)
	if err != nil {
		return v3.Box3{}, err
	}
	box := v3.EmptyBox3()
	for _, l := range f.Loops {
		pts, err := m.LoopVertexPositions(l)
		if err != nil {
			return v3.Box3{}, err
		}
		for _, p := range pts {
			box = box.Union(p)
		}
	}
	return box, nil
}

// BodyAABB returns the axis-aligned bounding box of every face of every
// shell of the body (spec.md 4.6, Stage 1).
func (m *Model) BodyAABB(id BodyId) (v3.Box3, error) {
	box := v3.EmptyBox3()
	var outerErr error
	err := m.BodyShells(id, func(sh ShellId) {
		_ = m.ShellFaces(sh, func(fc FaceId) {
			fb, err := m.FaceAABB(fc)
			if err != nil {
				outerErr = err
				return
			}
			box = box.Extend(fb)
		})
	})
	if err != nil {
		return v3.Box3{}, err
	}
	return box, outerErr
}

// NewtonArea returns the (non-negative) area and the unit normal of a
// planar polygon via Newell's formula; the winding shows in the normal's
// direction (used for face-area thresholds and shell-volume signs
// in healing, spec.md 4.7).
func NewtonArea(pts []v3.Vec) (area float64, normal v3.Vec) {
	if len(pts) < 3 {
		return 0, v3.Vec{}
	}
	n := v3.Vec{}
	centroid := v3.Vec{}
	for i, p := range pts {
		j := (i + 1) % len(pts)
		q := pts[j]
		n.X += (p.Y - q.Y) * (p.Z + q.Z)
		n.Y += (p.Z - q.Z) * (p.X + q.X)
		n.Z += (p.X - q.X) * (p.Y + q.Y)
		centroid = centroid.Add(p)
	}
	area = n.Length() / 2
	if n.Length() > 0 {
		normal = n.Normalize()
	}
	return area, normal
}

// Centroid returns the arithmetic mean of pts.
func Centroid(pts []v3.Vec) v3.Vec {
	if len(pts) == 0 {
		return v3.Vec{}
	}
	sum := v3.Vec{}
	for _, p := range pts {
		sum = sum.Add(p)
	}
	return sum.MulScalar(1 / float64(len(pts)))
}
