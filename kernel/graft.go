package kernel

import (
	"github.com/samwillis/solidtype-sub007/geom"
	"github.com/samwillis/solidtype-sub007/topo"
)

// grafter copies body and everything it owns (shells, faces, loops,
// half-edges, edges, vertices, and their referenced geometry) from src into
// dst. Feature constructors (sweep.Extrude, sweep.Revolve) each build their
// result in a private *topo.Model; graft is how Kernel folds that result
// into its own single owned model (SPEC_FULL.md 7, "single mutable owner").
type grafter struct {
	dst, src *topo.Model
	verts    map[topo.VertexId]topo.VertexId
	edges    map[topo.EdgeId]topo.EdgeId
	halfs    map[topo.HalfEdgeId]topo.HalfEdgeId
	faces    map[topo.FaceId]topo.FaceId
	surfaces map[geom.SurfaceIndex]geom.SurfaceIndex
	curves3D map[geom.Curve3DIndex]geom.Curve3DIndex
	curves2D map[geom.Curve2DIndex]geom.Curve2DIndex
	pcurves  map[geom.PCurveIndex]geom.PCurveIndex
}

// graft copies the body rooted at body from src into dst, returning the new
// body's id and a map from every source face id to its copy in dst, so
// callers can carry face-keyed metadata (such as naming.LoopId) across the
// copy.
func graft(dst, src *topo.Model, body topo.BodyId) (topo.BodyId, map[topo.FaceId]topo.FaceId, error) {
	g := &grafter{
		dst: dst, src: src,
		verts:    make(map[topo.VertexId]topo.VertexId),
		edges:    make(map[topo.EdgeId]topo.EdgeId),
		halfs:    make(map[topo.HalfEdgeId]topo.HalfEdgeId),
		faces:    make(map[topo.FaceId]topo.FaceId),
		surfaces: make(map[geom.SurfaceIndex]geom.SurfaceIndex),
		curves3D: make(map[geom.Curve3DIndex]geom.Curve3DIndex),
		curves2D: make(map[geom.Curve2DIndex]geom.Curve2DIndex),
		pcurves:  make(map[geom.PCurveIndex]geom.PCurveIndex),
	}
	newBody, err := g.run(body)
	if err != nil {
		return topo.NullBodyId, nil, err
	}
	return newBody, g.faces, nil
}

func (g *grafter) run(body topo.BodyId) (topo.BodyId, error) {
	newShell := g.dst.AddShell(true)
	newBody := g.dst.AddBody()
	if err := g.dst.AddShellToBody(newBody, newShell); err != nil {
		return topo.NullBodyId, err
	}

	var outerErr error
	err := g.src.BodyShells(body, func(sh topo.ShellId) {
		if outerErr != nil {
			return
		}
		if err := g.copyShellFaces(sh, newShell); err != nil {
			outerErr = err
		}
	})
	if err != nil {
		return topo.NullBodyId, err
	}
	if outerErr != nil {
		return topo.NullBodyId, outerErr
	}

	for oldHe, newHe := range g.halfs {
		hev, err := g.src.HalfEdge(oldHe)
		if err != nil {
			return topo.NullBodyId, err
		}
		if hev.Twin == topo.NullHalfEdgeId {
			continue
		}
		newTwin, ok := g.halfs[hev.Twin]
		if !ok {
			continue
		}
		if err := g.dst.SetTwin(newHe, newTwin); err != nil {
			return topo.NullBodyId, err
		}
	}
	return newBody, nil
}

func (g *grafter) copyShellFaces(sh topo.ShellId, newShell topo.ShellId) error {
	var outerErr error
	err := g.src.ShellFaces(sh, func(fc topo.FaceId) {
		if outerErr != nil {
			return
		}
		if err := g.copyFace(fc, newShell); err != nil {
			outerErr = err
		}
	})
	if err != nil {
		return err
	}
	return outerErr
}

func (g *grafter) copyFace(fc topo.FaceId, newShell topo.ShellId) error {
	f, err := g.src.Face(fc)
	if err != nil {
		return err
	}
	newSurf := g.copySurface(f.Surface)
	newFace := g.dst.AddFace(newSurf, f.Reversed())
	g.faces[fc] = newFace

	for _, l := range f.Loops {
		newLoop, err := g.copyLoop(l)
		if err != nil {
			return err
		}
		if err := g.dst.AddLoopToFace(newFace, newLoop); err != nil {
			return err
		}
	}
	return g.dst.AddFaceToShell(newShell, newFace)
}

func (g *grafter) copyLoop(l topo.LoopId) (topo.LoopId, error) {
	var hes []topo.HalfEdgeId
	var outerErr error
	err := g.src.LoopHalfEdges(l, func(he topo.HalfEdgeId) {
		if outerErr != nil {
			return
		}
		nhe, err := g.copyHalfEdge(he)
		if err != nil {
			outerErr = err
			return
		}
		hes = append(hes, nhe)
	})
	if err != nil {
		return topo.NullLoopId, err
	}
	if outerErr != nil {
		return topo.NullLoopId, outerErr
	}
	return g.dst.AddLoop(hes)
}

func (g *grafter) copyHalfEdge(he topo.HalfEdgeId) (topo.HalfEdgeId, error) {
	if nhe, ok := g.halfs[he]; ok {
		return nhe, nil
	}
	hev, err := g.src.HalfEdge(he)
	if err != nil {
		return topo.NullHalfEdgeId, err
	}
	ne, err := g.copyEdge(hev.Edge)
	if err != nil {
		return topo.NullHalfEdgeId, err
	}
	nhe, err := g.dst.AddHalfEdge(ne, hev.Dir)
	if err != nil {
		return topo.NullHalfEdgeId, err
	}
	g.halfs[he] = nhe
	if hev.PCurve != geom.NullPCurveIndex {
		npc := g.copyPCurve(hev.PCurve)
		if err := g.dst.SetPCurve(nhe, npc); err != nil {
			return topo.NullHalfEdgeId, err
		}
	}
	return nhe, nil
}

func (g *grafter) copyEdge(e topo.EdgeId) (topo.EdgeId, error) {
	if ne, ok := g.edges[e]; ok {
		return ne, nil
	}
	ev, err := g.src.Edge(e)
	if err != nil {
		return topo.NullEdgeId, err
	}
	startV, err := g.copyVertex(ev.Start)
	if err != nil {
		return topo.NullEdgeId, err
	}
	endV, err := g.copyVertex(ev.End)
	if err != nil {
		return topo.NullEdgeId, err
	}
	curve := geom.NullCurve3DIndex
	if ev.Curve3D != geom.NullCurve3DIndex {
		curve = g.copyCurve3D(ev.Curve3D)
	}
	ne, err := g.dst.AddEdge(startV, endV, curve, ev.TStart, ev.TEnd)
	if err != nil {
		return topo.NullEdgeId, err
	}
	g.edges[e] = ne
	return ne, nil
}

func (g *grafter) copyVertex(v topo.VertexId) (topo.VertexId, error) {
	if nv, ok := g.verts[v]; ok {
		return nv, nil
	}
	vv, err := g.src.Vertex(v)
	if err != nil {
		return topo.NullVertexId, err
	}
	nv := g.dst.AddVertex(vv.Pos)
	g.verts[v] = nv
	return nv, nil
}

func (g *grafter) copySurface(idx geom.SurfaceIndex) geom.SurfaceIndex {
	if n, ok := g.surfaces[idx]; ok {
		return n
	}
	n := g.dst.Pools.Surfaces.Add(g.src.Pools.Surfaces.Get(idx))
	g.surfaces[idx] = n
	return n
}

func (g *grafter) copyCurve3D(idx geom.Curve3DIndex) geom.Curve3DIndex {
	if n, ok := g.curves3D[idx]; ok {
		return n
	}
	n := g.dst.Pools.Curves3D.Add(g.src.Pools.Curves3D.Get(idx))
	g.curves3D[idx] = n
	return n
}

func (g *grafter) copyCurve2D(idx geom.Curve2DIndex) geom.Curve2DIndex {
	if n, ok := g.curves2D[idx]; ok {
		return n
	}
	n := g.dst.Pools.Curves2D.Add(g.src.Pools.Curves2D.Get(idx))
	g.curves2D[idx] = n
	return n
}

func (g *grafter) copyPCurve(idx geom.PCurveIndex) geom.PCurveIndex {
	if n, ok := g.pcurves[idx]; ok {
		return n
	}
	pc := g.src.Pools.PCurves.Get(idx)
	newPC := geom.PCurve{Surface: g.copySurface(pc.Surface)}
	if pc.Curve2D != geom.NullCurve2DIndex {
		newPC.Curve2D = g.copyCurve2D(pc.Curve2D)
	} else {
		newPC.Curve2D = geom.NullCurve2DIndex
	}
	n := g.dst.Pools.PCurves.Add(newPC)
	g.pcurves[idx] = n
	return n
}
