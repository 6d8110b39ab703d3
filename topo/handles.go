// Package topo implements the BREP topology model: seven entity tables
// (vertex, edge, half-edge, loop, face, shell, body) referenced by typed,
// branded handles, plus the geometry pools they point into (spec.md 3.1,
// 4.1, 9).
package topo

import (
	"github.com/samwillis/solidtype-sub007/geom"
	v3 "github.com/samwillis/solidtype-sub007/vec/v3"
)

// VertexId identifies a Vertex. NullVertexId denotes absence.
type VertexId int32

// EdgeId identifies an Edge.
type EdgeId int32

// HalfEdgeId identifies a HalfEdge.
type HalfEdgeId int32

// LoopId identifies a Loop.
type LoopId int32

// FaceId identifies a Face.
type FaceId int32

// ShellId identifies a Shell.
type ShellId int32

// BodyId identifies a Body.
type BodyId int32

// Null sentinels for every handle type, per spec.md 3.1.
const (
	NullVertexId   VertexId   = -1
	NullEdgeId     EdgeId     = -1
	NullHalfEdgeId HalfEdgeId = -1
	NullLoopId     LoopId     = -1
	NullFaceId     FaceId     = -1
	NullShellId    ShellId    = -1
	NullBodyId     BodyId     = -1
)

// flags is a small bitmask shared by every entity kind that needs one.
type flags uint8

const (
	flagDeleted flags = 1 << iota
	flagReversed
	flagClosed
)

// Direction is the half-edge traversal direction relative to its edge.
type Direction int8

const (
	// Forward means the half-edge starts at edge.Start.
	Forward Direction = 1
	// Backward means the half-edge starts at edge.End.
	Backward Direction = -1
)

// Vertex is a topology vertex: a stable 3D position.
type Vertex struct {
	Pos   v3.Vec
	flags flags
}

// Edge connects two vertices, optionally carrying a 3D curve
// parameterization shared by both of its half-edges ("same-parameter",
// spec.md 3.1).
type Edge struct {
	Start, End       VertexId
	Curve3D          geom.Curve3DIndex
	TStart, TEnd     float64
	Representative   HalfEdgeId
	flags            flags
}

// HalfEdge is one directed use of an edge by a particular loop.
type HalfEdge struct {
	Edge      EdgeId
	Loop      LoopId
	Next, Prev HalfEdgeId
	Twin      HalfEdgeId
	Dir       Direction
	PCurve    geom.PCurveIndex
	flags     flags
}

// Loop is a closed cycle of half-edges bounding a face; the first loop of a
// face is its outer boundary, subsequent loops are holes (spec.md 3.1).
type Loop struct {
	Face          FaceId
	First         HalfEdgeId
	HalfEdgeCount int
	flags         flags
}

// Face owns an ordered list of loops over a surface.
type Face struct {
	Shell   ShellId
	Surface geom.SurfaceIndex
	Loops   []LoopId
	flags   flags
}

// Shell owns an ordered list of faces.
type Shell struct {
	Body  BodyId
	Faces []FaceId
	flags flags
}

// Body owns an ordered list of shells.
type Body struct {
	Shells []ShellId
	flags  flags
}

// Reversed reports whether a face's REVERSED flag is set.
func (f Face) Reversed() bool { return f.flags&flagReversed != 0 }

// Closed reports whether a shell's CLOSED flag is set.
func (s Shell) Closed() bool { return s.flags&flagClosed != 0 }

// Deleted reports whether a vertex has been soft-deleted.
func (v Vertex) Deleted() bool { return v.flags&flagDeleted != 0 }

// Deleted reports whether an edge has been soft-deleted.
func (e Edge) Deleted() bool { return e.flags&flagDeleted != 0 }

// Deleted reports whether a half-edge has been soft-deleted.
func (h HalfEdge) Deleted() bool { return h.flags&flagDeleted != 0 }

// Deleted reports whether a loop has been soft-deleted.
func (l Loop) Deleted() bool { return l.flags&flagDeleted != 0 }

// Deleted reports whether a face has been soft-deleted.
func (f Face) Deleted() bool { return f.flags&flagDeleted != 0 }

// Deleted reports whether a shell has been soft-deleted.
func (s Shell) Deleted() bool { return s.flags&flagDeleted != 0 }

// Deleted reports whether a body has been soft-deleted.
func (b Body) Deleted() bool { return b.flags&flagDeleted != 0 }
