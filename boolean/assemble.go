package boolean

import (
	"fmt"

	"github.com/samwillis/solidtype-sub007/geom"
	"github.com/samwillis/solidtype-sub007/topo"
	v3 "github.com/samwillis/solidtype-sub007/vec/v3"
)

// assembler implements Stage 5: instantiate retained pieces as new faces on
// cloned plane surfaces, then a twin-setup pass over every new half-edge
// grouped by its undirected vertex pair.
type assembler struct {
	m         *topo.Model
	shell     topo.ShellId
	body      topo.BodyId
	verts     map[vertKey]topo.VertexId
	edgeHalfs map[edgeKey][]topo.HalfEdgeId
	newFaceOf map[*piece]topo.FaceId
}

type vertKey struct{ x, y, z int64 }

type edgeKey struct{ a, b vertKey }

const assembleGrid = 1e7 // rounding resolution for vertex/edge dedup

func roundKey(p v3.Vec) vertKey {
	return vertKey{
		x: int64(p.X * assembleGrid),
		y: int64(p.Y * assembleGrid),
		z: int64(p.Z * assembleGrid),
	}
}

func newAssembler(m *topo.Model) *assembler {
	shell := m.AddShell(true)
	body := m.AddBody()
	_ = m.AddShellToBody(body, shell)
	return &assembler{
		m:         m,
		shell:     shell,
		body:      body,
		verts:     make(map[vertKey]topo.VertexId),
		edgeHalfs: make(map[edgeKey][]topo.HalfEdgeId),
		newFaceOf: make(map[*piece]topo.FaceId),
	}
}

func (a *assembler) vertexAt(p v3.Vec) topo.VertexId {
	k := roundKey(p)
	if id, ok := a.verts[k]; ok {
		return id
	}
	id := a.m.AddVertex(p)
	a.verts[k] = id
	return id
}

// addPiece instantiates pc as a new face on a cloned (optionally
// normal-flipped) plane surface, building one loop of new half-edges over
// new or reused edges.
func (a *assembler) addPiece(pc *piece, flip bool) {
	if len(pc.ring) < 3 {
		return
	}
	plane := pc.plane
	surfIdx := a.m.Pools.Surfaces.Add(&geom.PlaneSurface{Origin: plane.Origin, XDir: plane.XDir, YDir: plane.YDir, N: plane.N})
	face := a.m.AddFace(surfIdx, flip)

	n := len(pc.ring)
	verts := make([]topo.VertexId, n)
	for i, p2 := range pc.ring {
		verts[i] = a.vertexAt(plane.Eval(p2.X, p2.Y))
	}
	halfEdges := make([]topo.HalfEdgeId, 0, n)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		if verts[i] == verts[j] {
			continue
		}
		k := edgeKeyFor(verts[i], verts[j])
		dir := topo.Forward
		var e topo.EdgeId
		var err error
		if prev := a.edgeHalfs[k]; len(prev) > 0 {
			hev, _ := a.m.HalfEdge(prev[0])
			ev, _ := a.m.Edge(hev.Edge)
			e = hev.Edge
			if ev.Start != verts[i] {
				dir = topo.Backward
			}
		} else if e, err = a.m.AddEdge(verts[i], verts[j], geom.NullCurve3DIndex, 0, 1); err != nil {
			continue
		}
		he, err := a.m.AddHalfEdge(e, dir)
		if err != nil {
			continue
		}
		halfEdges = append(halfEdges, he)
		a.edgeHalfs[k] = append(a.edgeHalfs[k], he)
	}
	if len(halfEdges) < 3 {
		return
	}
	loop, err := a.m.AddLoop(halfEdges)
	if err != nil {
		return
	}
	if err := a.m.AddLoopToFace(face, loop); err != nil {
		return
	}
	if err := a.m.AddFaceToShell(a.shell, face); err != nil {
		return
	}
	a.newFaceOf[pc] = face
}

func edgeKeyFor(a, b topo.VertexId) edgeKey {
	ak, bk := vertKey{int64(a), 0, 0}, vertKey{int64(b), 0, 0}
	if a > b {
		ak, bk = bk, ak
	}
	return edgeKey{ak, bk}
}

// finish runs the twin-setup pass (spec.md 4.6, Stage 5) and returns the
// new body plus any non-manifold-edge warnings.
func (a *assembler) finish() (topo.BodyId, []string) {
	var warnings []string
	for _, hes := range a.edgeHalfs {
		switch len(hes) {
		case 2:
			_ = a.m.SetTwin(hes[0], hes[1])
		case 1:
			// Open boundary half-edge; not an error by itself.
		default:
			warnings = append(warnings, fmt.Sprintf("boolean: non-manifold edge (%d half-edges)", len(hes)))
		}
	}
	return a.body, warnings
}

// buildEvolutions derives the evolution mapping for one operand body's
// faces from the pieces each face was imprinted into and which of those
// pieces survived reassembly (spec.md 4.6, "Failure modes"; 4.8).
func buildEvolutions(faces []facePlane, pieces map[topo.FaceId][]*piece, newFaceOf map[*piece]topo.FaceId) []Evolution {
	var out []Evolution
	for _, fp := range faces {
		list := pieces[fp.face]
		kept := 0
		for _, pc := range list {
			if _, ok := newFaceOf[pc]; ok {
				kept++
			}
		}
		ref := FaceRef{Body: fp.body, Face: fp.face}
		if kept == 0 {
			out = append(out, Evolution{OldFace: ref, NewFace: topo.NullFaceId, Kind: Deleted})
			continue
		}
		kind := Modified
		if kept > 1 || len(list) > 1 {
			kind = Split
		}
		for _, pc := range list {
			if nf, ok := newFaceOf[pc]; ok {
				out = append(out, Evolution{OldFace: ref, NewFace: nf, Kind: kind})
			}
		}
	}
	return out
}
