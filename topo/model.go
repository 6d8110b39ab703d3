package topo

import (
	"github.com/samwillis/solidtype-sub007/geom"
	v3 "github.com/samwillis/solidtype-sub007/vec/v3"
)

// Model is the single owner of the seven topology tables and the geometry
// pools they reference into. All mutating operations take *Model; no
// external code may hold a mutable reference into a table's interior
// across calls (spec.md 5).
type Model struct {
	Pools *geom.Pools

	vertices  []Vertex
	edges     []Edge
	halfEdges []HalfEdge
	loops     []Loop
	faces     []Face
	shells    []Shell
	bodies    []Body

	liveVertices, liveEdges, liveHalfEdges int
	liveLoops, liveFaces, liveShells, liveBodies int
}

// NewModel returns an empty topology model with its own geometry pools.
func NewModel() *Model {
	return &Model{Pools: geom.NewPools()}
}

// --- Vertex ---

// AddVertex appends a new vertex at pos and returns its id.
func (m *Model) AddVertex(pos v3.Vec) VertexId {
	m.vertices = append(m.vertices, Vertex{Pos: pos})
	m.liveVertices++
	return VertexId(len(m.vertices) - 1)
}

// Vertex returns the vertex at id.
func (m *Model) Vertex(id VertexId) (Vertex, error) {
	if !m.validVertex(id) {
		return Vertex{}, ErrInvalidHandle
	}
	return m.vertices[id], nil
}

// SetVertexPos relocates the vertex at id (used by healing's vertex merge
// and edge collapse).
func (m *Model) SetVertexPos(id VertexId, pos v3.Vec) error {
	if !m.validVertex(id) {
		return ErrInvalidHandle
	}
	m.vertices[id].Pos = pos
	return nil
}

// MarkVertexDeleted soft-deletes the vertex at id.
func (m *Model) MarkVertexDeleted(id VertexId) error {
	if !m.validVertex(id) {
		return ErrInvalidHandle
	}
	m.vertices[id].flags |= flagDeleted
	m.liveVertices--
	return nil
}

func (m *Model) validVertex(id VertexId) bool {
	return id >= 0 && int(id) < len(m.vertices) && !m.vertices[id].Deleted()
}

// LiveVertexCount returns the number of non-deleted vertices.
func (m *Model) LiveVertexCount() int { return m.liveVertices }

// VertexIds iterates every live vertex id.
func (m *Model) VertexIds(fn func(VertexId)) {
	for i := range m.vertices {
		if !m.vertices[i].Deleted() {
			fn(VertexId(i))
		}
	}
}

// --- Edge ---

// AddEdge appends a new edge between vStart and vEnd, optionally carrying a
// 3D curve parameterized over [tStart, tEnd]. tStart and tEnd are stored as
// given; no default range is substituted.
func (m *Model) AddEdge(vStart, vEnd VertexId, curve geom.Curve3DIndex, tStart, tEnd float64) (EdgeId, error) {
	if !m.validVertex(vStart) || !m.validVertex(vEnd) {
		return NullEdgeId, ErrInvalidHandle
	}
	m.edges = append(m.edges, Edge{
		Start: vStart, End: vEnd,
		Curve3D: curve, TStart: tStart, TEnd: tEnd,
		Representative: NullHalfEdgeId,
	})
	m.liveEdges++
	return EdgeId(len(m.edges) - 1), nil
}

// Edge returns the edge at id.
func (m *Model) Edge(id EdgeId) (Edge, error) {
	if !m.validEdge(id) {
		return Edge{}, ErrInvalidHandle
	}
	return m.edges[id], nil
}

// SetEdgeRepresentative records the edge's representative half-edge.
func (m *Model) SetEdgeRepresentative(id EdgeId, he HalfEdgeId) error {
	if !m.validEdge(id) {
		return ErrInvalidHandle
	}
	m.edges[id].Representative = he
	return nil
}

// RewireEdgeVertex replaces every occurrence of from with to on the edge at
// id (used by healing's vertex merge / edge collapse).
func (m *Model) RewireEdgeVertex(id EdgeId, from, to VertexId) error {
	if !m.validEdge(id) {
		return ErrInvalidHandle
	}
	e := &m.edges[id]
	if e.Start == from {
		e.Start = to
	}
	if e.End == from {
		e.End = to
	}
	return nil
}

// MarkEdgeDeleted soft-deletes the edge at id.
func (m *Model) MarkEdgeDeleted(id EdgeId) error {
	if !m.validEdge(id) {
		return ErrInvalidHandle
	}
	m.edges[id].flags |= flagDeleted
	m.liveEdges--
	return nil
}

func (m *Model) validEdge(id EdgeId) bool {
	return id >= 0 && int(id) < len(m.edges) && !m.edges[id].Deleted()
}

// LiveEdgeCount returns the number of non-deleted edges.
func (m *Model) LiveEdgeCount() int { return m.liveEdges }

// EdgeIds iterates every live edge id.
func (m *Model) EdgeIds(fn func(EdgeId)) {
	for i := range m.edges {
		if !m.edges[i].Deleted() {
			fn(EdgeId(i))
		}
	}
}

// --- HalfEdge ---

// AddHalfEdge appends a new half-edge over edge in direction dir. next,
// prev and twin start unset (NULL) and are wired by LinkHalfEdges/SetTwin.
func (m *Model) AddHalfEdge(edge EdgeId, dir Direction) (HalfEdgeId, error) {
	if !m.validEdge(edge) {
		return NullHalfEdgeId, ErrInvalidHandle
	}
	m.halfEdges = append(m.halfEdges, HalfEdge{
		Edge: edge, Dir: dir,
		Next: NullHalfEdgeId, Prev: NullHalfEdgeId, Twin: NullHalfEdgeId,
		Loop: NullLoopId, PCurve: geom.NullPCurveIndex,
	})
	m.liveHalfEdges++
	id := HalfEdgeId(len(m.halfEdges) - 1)
	if m.edges[edge].Representative == NullHalfEdgeId {
		m.edges[edge].Representative = id
	}
	return id, nil
}

// HalfEdge returns the half-edge at id.
func (m *Model) HalfEdge(id HalfEdgeId) (HalfEdge, error) {
	if !m.validHalfEdge(id) {
		return HalfEdge{}, ErrInvalidHandle
	}
	return m.halfEdges[id], nil
}

// LinkHalfEdges sets a.next = b and b.prev = a.
func (m *Model) LinkHalfEdges(a, b HalfEdgeId) error {
	if !m.validHalfEdge(a) || !m.validHalfEdge(b) {
		return ErrInvalidHandle
	}
	m.halfEdges[a].Next = b
	m.halfEdges[b].Prev = a
	return nil
}

// SetTwin links a and b as twins of each other (symmetric).
func (m *Model) SetTwin(a, b HalfEdgeId) error {
	if !m.validHalfEdge(a) || !m.validHalfEdge(b) {
		return ErrInvalidHandle
	}
	m.halfEdges[a].Twin = b
	m.halfEdges[b].Twin = a
	return nil
}

// SetPCurve attaches a p-curve to the half-edge at id.
func (m *Model) SetPCurve(id HalfEdgeId, pc geom.PCurveIndex) error {
	if !m.validHalfEdge(id) {
		return ErrInvalidHandle
	}
	m.halfEdges[id].PCurve = pc
	return nil
}

// StartVertex returns the half-edge's start vertex: edge.Start if
// dir==Forward, else edge.End (spec.md 3.1).
func (m *Model) StartVertex(id HalfEdgeId) (VertexId, error) {
	he, err := m.HalfEdge(id)
	if err != nil {
		return NullVertexId, err
	}
	e, err := m.Edge(he.Edge)
	if err != nil {
		return NullVertexId, err
	}
	if he.Dir == Forward {
		return e.Start, nil
	}
	return e.End, nil
}

// EndVertex returns the half-edge's end vertex.
func (m *Model) EndVertex(id HalfEdgeId) (VertexId, error) {
	he, err := m.HalfEdge(id)
	if err != nil {
		return NullVertexId, err
	}
	e, err := m.Edge(he.Edge)
	if err != nil {
		return NullVertexId, err
	}
	if he.Dir == Forward {
		return e.End, nil
	}
	return e.Start, nil
}

// MarkHalfEdgeDeleted soft-deletes the half-edge at id and clears any
// twin's back-reference to it.
func (m *Model) MarkHalfEdgeDeleted(id HalfEdgeId) error {
	if !m.validHalfEdge(id) {
		return ErrInvalidHandle
	}
	if twin := m.halfEdges[id].Twin; twin != NullHalfEdgeId && m.validHalfEdge(twin) {
		m.halfEdges[twin].Twin = NullHalfEdgeId
	}
	m.halfEdges[id].flags |= flagDeleted
	m.liveHalfEdges--
	return nil
}

func (m *Model) validHalfEdge(id HalfEdgeId) bool {
	return id >= 0 && int(id) < len(m.halfEdges) && !m.halfEdges[id].Deleted()
}

// LiveHalfEdgeCount returns the number of non-deleted half-edges.
func (m *Model) LiveHalfEdgeCount() int { return m.liveHalfEdges }

// LoopHalfEdges iterates the half-edges of the loop at id in cycle order.
func (m *Model) LoopHalfEdges(id LoopId, fn func(HalfEdgeId)) error {
	l, err := m.Loop(id)
	if err != nil {
		return err
	}
	cur := l.First
	for i := 0; i < l.HalfEdgeCount; i++ {
		fn(cur)
		he, err := m.HalfEdge(cur)
		if err != nil {
			return err
		}
		cur = he.Next
	}
	return nil
}

// --- Loop ---

// AddLoop links halfEdges cyclically (next/prev) and assigns each a back
// reference to the new loop. Fails with ErrNonClosedLoop unless following
// .Next from halfEdges[0] the given number of times returns to it.
func (m *Model) AddLoop(halfEdges []HalfEdgeId) (LoopId, error) {
	if len(halfEdges) == 0 {
		return NullLoopId, ErrNonClosedLoop
	}
	for _, he := range halfEdges {
		if !m.validHalfEdge(he) {
			return NullLoopId, ErrInvalidHandle
		}
	}
	n := len(halfEdges)
	for i := 0; i < n; i++ {
		a, b := halfEdges[i], halfEdges[(i+1)%n]
		if err := m.LinkHalfEdges(a, b); err != nil {
			return NullLoopId, err
		}
	}
	m.loops = append(m.loops, Loop{First: halfEdges[0], HalfEdgeCount: n, Face: NullFaceId})
	m.liveLoops++
	id := LoopId(len(m.loops) - 1)
	for _, he := range halfEdges {
		m.halfEdges[he].Loop = id
	}
	// Verify closure: walking Next exactly n times from First returns to
	// First (spec.md 8, "Topology closure").
	cur := halfEdges[0]
	for i := 0; i < n; i++ {
		he := m.halfEdges[cur]
		cur = he.Next
	}
	if cur != halfEdges[0] {
		return NullLoopId, ErrNonClosedLoop
	}
	return id, nil
}

// Loop returns the loop at id.
func (m *Model) Loop(id LoopId) (Loop, error) {
	if !m.validLoop(id) {
		return Loop{}, ErrInvalidHandle
	}
	return m.loops[id], nil
}

func (m *Model) setLoopFace(id LoopId, face FaceId) error {
	if !m.validLoop(id) {
		return ErrInvalidHandle
	}
	m.loops[id].Face = face
	return nil
}

// MarkLoopDeleted soft-deletes the loop at id.
func (m *Model) MarkLoopDeleted(id LoopId) error {
	if !m.validLoop(id) {
		return ErrInvalidHandle
	}
	m.loops[id].flags |= flagDeleted
	m.liveLoops--
	return nil
}

func (m *Model) validLoop(id LoopId) bool {
	return id >= 0 && int(id) < len(m.loops) && !m.loops[id].Deleted()
}

// --- Face ---

// AddFace appends a new face over surface, with no loops yet.
func (m *Model) AddFace(surface geom.SurfaceIndex, reversed bool) FaceId {
	f := Face{Surface: surface, Shell: NullShellId}
	if reversed {
		f.flags |= flagReversed
	}
	m.faces = append(m.faces, f)
	m.liveFaces++
	return FaceId(len(m.faces) - 1)
}

// Face returns the face at id.
func (m *Model) Face(id FaceId) (Face, error) {
	if !m.validFace(id) {
		return Face{}, ErrInvalidHandle
	}
	return m.faces[id], nil
}

// AddLoopToFace appends loop to face's loop list (first call establishes
// the outer boundary; later calls append holes, spec.md 3.1).
func (m *Model) AddLoopToFace(face FaceId, loop LoopId) error {
	if !m.validFace(face) || !m.validLoop(loop) {
		return ErrInvalidHandle
	}
	m.faces[face].Loops = append(m.faces[face].Loops, loop)
	return m.setLoopFace(loop, face)
}

// SetFaceReversed sets or clears a face's REVERSED flag (used by healing's
// shell reorientation).
func (m *Model) SetFaceReversed(id FaceId, reversed bool) error {
	if !m.validFace(id) {
		return ErrInvalidHandle
	}
	if reversed {
		m.faces[id].flags |= flagReversed
	} else {
		m.faces[id].flags &^= flagReversed
	}
	return nil
}

// MarkFaceDeleted soft-deletes the face at id.
func (m *Model) MarkFaceDeleted(id FaceId) error {
	if !m.validFace(id) {
		return ErrInvalidHandle
	}
	m.faces[id].flags |= flagDeleted
	m.liveFaces--
	return nil
}

func (m *Model) validFace(id FaceId) bool {
	return id >= 0 && int(id) < len(m.faces) && !m.faces[id].Deleted()
}

// LiveFaceCount returns the number of non-deleted faces.
func (m *Model) LiveFaceCount() int { return m.liveFaces }

// --- Shell ---

// AddShell appends a new shell with no faces yet.
func (m *Model) AddShell(closed bool) ShellId {
	s := Shell{Body: NullBodyId}
	if closed {
		s.flags |= flagClosed
	}
	m.shells = append(m.shells, s)
	m.liveShells++
	return ShellId(len(m.shells) - 1)
}

// Shell returns the shell at id.
func (m *Model) Shell(id ShellId) (Shell, error) {
	if !m.validShell(id) {
		return Shell{}, ErrInvalidHandle
	}
	return m.shells[id], nil
}

// AddFaceToShell appends face to shell's face list.
func (m *Model) AddFaceToShell(shell ShellId, face FaceId) error {
	if !m.validShell(shell) || !m.validFace(face) {
		return ErrInvalidHandle
	}
	m.shells[shell].Faces = append(m.shells[shell].Faces, face)
	m.faces[face].Shell = shell
	return nil
}

// SetShellClosed sets or clears a shell's CLOSED flag.
func (m *Model) SetShellClosed(id ShellId, closed bool) error {
	if !m.validShell(id) {
		return ErrInvalidHandle
	}
	if closed {
		m.shells[id].flags |= flagClosed
	} else {
		m.shells[id].flags &^= flagClosed
	}
	return nil
}

// MarkShellDeleted soft-deletes the shell at id.
func (m *Model) MarkShellDeleted(id ShellId) error {
	if !m.validShell(id) {
		return ErrInvalidHandle
	}
	m.shells[id].flags |= flagDeleted
	m.liveShells--
	return nil
}

func (m *Model) validShell(id ShellId) bool {
	return id >= 0 && int(id) < len(m.shells) && !m.shells[id].Deleted()
}

// --- Body ---

// AddBody appends a new body with no shells yet.
func (m *Model) AddBody() BodyId {
	m.bodies = append(m.bodies, Body{})
	m.liveBodies++
	return BodyId(len(m.bodies) - 1)
}

// Body returns the body at id.
func (m *Model) Body(id BodyId) (Body, error) {
	if !m.validBody(id) {
		return Body{}, ErrInvalidHandle
	}
	return m.bodies[id], nil
}

// AddShellToBody appends shell to body's shell list.
func (m *Model) AddShellToBody(body BodyId, shell ShellId) error {
	if !m.validBody(body) || !m.validShell(shell) {
		return ErrInvalidHandle
	}
	m.bodies[body].Shells = append(m.bodies[body].Shells, shell)
	m.shells[shell].Body = body
	return nil
}

// MarkBodyDeleted soft-deletes the body at id.
func (m *Model) MarkBodyDeleted(id BodyId) error {
	if !m.validBody(id) {
		return ErrInvalidHandle
	}
	m.bodies[id].flags |= flagDeleted
	m.liveBodies--
	return nil
}

func (m *Model) validBody(id BodyId) bool {
	return id >= 0 && int(id) < len(m.bodies) && !m.bodies[id].Deleted()
}

// BodyIds iterates every live body id (spec.md 4.1, "all live bodies").
func (m *Model) BodyIds(fn func(BodyId)) {
	for i := range m.bodies {
		if !m.bodies[i].Deleted() {
			fn(BodyId(i))
		}
	}
}

// LiveBodyCount returns the number of non-deleted bodies.
func (m *Model) LiveBodyCount() int { return m.liveBodies }
