package heal

import (
	"github.com/samwillis/solidtype-sub007/tol"
	"github.com/samwillis/solidtype-sub007/topo"
)

// Validate runs the post-heal consistency checks: degenerate faces (no
// loop, fewer than 3 outer-loop vertices, or zero area), non-manifold edges
// (any edge used by other than exactly two of body's half-edges, open
// edges included) and sliver
// faces (area below threshold but above zero, i.e. survivors healing chose
// not to remove because SmallFaceAreaThreshold already ran) (spec.md 4.7,
// "Validation report").
func Validate(m *topo.Model, body topo.BodyId, ctx tol.Context) ValidationReport {
	var report ValidationReport
	_ = m.BodyShells(body, func(sh topo.ShellId) {
		_ = m.ShellFaces(sh, func(fc topo.FaceId) {
			checkDegenerate(m, fc, &report)
			checkSlivers(m, fc, ctx, &report)
		})
	})
	checkManifold(m, body, &report)
	return report
}

func checkDegenerate(m *topo.Model, fc topo.FaceId, report *ValidationReport) {
	f, err := m.Face(fc)
	if err != nil || f.Deleted() {
		return
	}
	if len(f.Loops) == 0 {
		report.Degenerate = append(report.Degenerate, fc)
		return
	}
	pts, err := m.LoopVertexPositions(f.Loops[0])
	if err != nil || len(pts) < 3 {
		report.Degenerate = append(report.Degenerate, fc)
		return
	}
	area, _ := topo.NewtonArea(pts)
	if area <= 0 {
		report.Degenerate = append(report.Degenerate, fc)
	}
}

func checkSlivers(m *topo.Model, fc topo.FaceId, ctx tol.Context, report *ValidationReport) {
	f, err := m.Face(fc)
	if err != nil || f.Deleted() || len(f.Loops) == 0 {
		return
	}
	_, area, _, err := faceCentroidAndArea(m, fc)
	if err != nil {
		return
	}
	if area > 0 && area < ctx.SmallFaceAreaThreshold() {
		report.Slivers = append(report.Slivers, fc)
	}
}

func checkManifold(m *topo.Model, body topo.BodyId, report *ValidationReport) {
	edges, err := bodyEdges(m, body)
	if err != nil {
		return
	}
	for _, eid := range edges {
		e, err := m.Edge(eid)
		if err != nil || e.Deleted() {
			continue
		}
		uses := 0
		_ = m.BodyShells(body, func(sh topo.ShellId) {
			_ = m.ShellFaces(sh, func(fc topo.FaceId) {
				f, err := m.Face(fc)
				if err != nil {
					return
				}
				for _, l := range f.Loops {
					_ = m.LoopHalfEdges(l, func(he topo.HalfEdgeId) {
						hev, err := m.HalfEdge(he)
						if err == nil && hev.Edge == eid {
							uses++
						}
					})
				}
			})
		})
		if uses != 2 {
			report.NonManifold = append(report.NonManifold, eid)
		}
	}
}
