// Package heal implements the post-boolean topology healing pass: vertex
// merging, short-edge collapse and small-face removal iterated to a fixed
// point, followed by one shell-reorientation pass (spec.md 4.7).
package heal

import (
	"github.com/samwillis/solidtype-sub007/tol"
	"github.com/samwillis/solidtype-sub007/topo"
	v3 "github.com/samwillis/solidtype-sub007/vec/v3"
)

// DefaultMaxIterations is the default healing iteration cap (spec.md 4.7).
const DefaultMaxIterations = 3

// Report counts the actions healing took and carries the final validation
// outcome.
type Report struct {
	VerticesMerged   int
	EdgesCollapsed   int
	FacesRemoved     int
	ShellsReoriented int
	Validation       ValidationReport
}

// ValidationReport is the outcome of the post-heal consistency checks.
type ValidationReport struct {
	Degenerate  []topo.FaceId
	NonManifold []topo.EdgeId
	Slivers     []topo.FaceId
}

// Ok reports whether validation found nothing to flag.
func (v ValidationReport) Ok() bool {
	return len(v.Degenerate) == 0 && len(v.NonManifold) == 0 && len(v.Slivers) == 0
}

// Heal iterates vertex merging, short-edge collapse and small-face removal
// over every live face/edge/vertex reachable from body, up to maxIterations
// (0 selects DefaultMaxIterations) or until a pass makes no further change,
// then reorients every shell once and runs Validate.
func Heal(m *topo.Model, body topo.BodyId, ctx tol.Context, maxIterations int) (Report, error) {
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}
	var report Report
	for i := 0; i < maxIterations; i++ {
		mergedN, err := mergeCoincidentVertices(m, body, ctx)
		if err != nil {
			return report, err
		}
		collapsedN, err := collapseShortEdges(m, body, ctx)
		if err != nil {
			return report, err
		}
		removedN, err := removeSmallFaces(m, body, ctx)
		if err != nil {
			return report, err
		}
		report.VerticesMerged += mergedN
		report.EdgesCollapsed += collapsedN
		report.FacesRemoved += removedN
		if mergedN == 0 && collapsedN == 0 && removedN == 0 {
			break
		}
	}
	reorientedN, err := reorientShells(m, body)
	if err != nil {
		return report, err
	}
	report.ShellsReoriented = reorientedN
	report.Validation = Validate(m, body, ctx)
	return report, nil
}

// bodyVertices collects every vertex reachable from body's faces, deduped
// by id.
func bodyVertices(m *topo.Model, body topo.BodyId) ([]topo.VertexId, error) {
	seen := make(map[topo.VertexId]bool)
	var outerErr error
	err := m.BodyShells(body, func(sh topo.ShellId) {
		_ = m.ShellFaces(sh, func(fc topo.FaceId) {
			f, err := m.Face(fc)
			if err != nil {
				outerErr = err
				return
			}
			for _, l := range f.Loops {
				verr := m.LoopHalfEdges(l, func(he topo.HalfEdgeId) {
					v, err := m.StartVertex(he)
					if err != nil {
						outerErr = err
						return
					}
					seen[v] = true
				})
				if verr != nil {
					outerErr = verr
				}
			}
		})
	})
	if err != nil {
		return nil, err
	}
	if outerErr != nil {
		return nil, outerErr
	}
	ids := make([]topo.VertexId, 0, len(seen))
	for v := range seen {
		ids = append(ids, v)
	}
	return ids, nil
}

// bodyEdges collects every edge reachable from body's faces, deduped by id.
func bodyEdges(m *topo.Model, body topo.BodyId) ([]topo.EdgeId, error) {
	seen := make(map[topo.EdgeId]bool)
	var outerErr error
	err := m.BodyShells(body, func(sh topo.ShellId) {
		_ = m.ShellFaces(sh, func(fc topo.FaceId) {
			f, err := m.Face(fc)
			if err != nil {
				outerErr = err
				return
			}
			for _, l := range f.Loops {
				verr := m.LoopHalfEdges(l, func(he topo.HalfEdgeId) {
					hev, err := m.HalfEdge(he)
					if err != nil {
						outerErr = err
						return
					}
					seen[hev.Edge] = true
				})
				if verr != nil {
					outerErr = verr
				}
			}
		})
	})
	if err != nil {
		return nil, err
	}
	if outerErr != nil {
		return nil, outerErr
	}
	ids := make([]topo.EdgeId, 0, len(seen))
	for e := range seen {
		ids = append(ids, e)
	}
	return ids, nil
}

func edgeLength(m *topo.Model, id topo.EdgeId) (float64, error) {
	e, err := m.Edge(id)
	if err != nil {
		return 0, err
	}
	a, err := m.Vertex(e.Start)
	if err != nil {
		return 0, err
	}
	b, err := m.Vertex(e.End)
	if err != nil {
		return 0, err
	}
	return a.Pos.Sub(b.Pos).Length(), nil
}

func faceCentroidAndArea(m *topo.Model, id topo.FaceId) (v3.Vec, float64, v3.Vec, error) {
	f, err := m.Face(id)
	if err != nil {
		return v3.Vec{}, 0, v3.Vec{}, err
	}
	if len(f.Loops) == 0 {
		return v3.Vec{}, 0, v3.Vec{}, nil
	}
	pts, err := m.LoopVertexPositions(f.Loops[0])
	if err != nil {
		return v3.Vec{}, 0, v3.Vec{}, err
	}
	area, normal := topo.NewtonArea(pts)
	return topo.Centroid(pts), area, normal, nil
}
