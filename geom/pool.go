// Package geom holds the kernel's geometry pools: append-only stores of
// surfaces, 3D curves, 2D curves and p-curves, indexed by typed indices so
// many faces or edges can share a single underlying geometry (spec.md 3.1,
// "Geometry pools").
package geom

// SurfaceIndex references a Surface in a SurfacePool. NullSurfaceIndex
// denotes absence.
type SurfaceIndex int32

// Curve3DIndex references a Curve3D in a Curve3DPool.
type Curve3DIndex int32

// Curve2DIndex references a Curve2D in a Curve2DPool.
type Curve2DIndex int32

// PCurveIndex references a PCurve in a PCurvePool.
type PCurveIndex int32

// Null sentinels for the geometry index types.
const (
	NullSurfaceIndex SurfaceIndex = -1
	NullCurve3DIndex Curve3DIndex = -1
	NullCurve2DIndex Curve2DIndex = -1
	NullPCurveIndex  PCurveIndex  = -1
)

// PCurve attaches a 2D curve to a surface, parameterizing an edge on a
// given face (spec.md 3.1).
type PCurve struct {
	Curve2D Curve2DIndex
	Surface SurfaceIndex
}

// SurfacePool is an append-only store of surfaces.
type SurfacePool struct {
	items []Surface
}

// Add appends s and returns its index.
func (p *SurfacePool) Add(s Surface) SurfaceIndex {
	p.items = append(p.items, s)
	return SurfaceIndex(len(p.items) - 1)
}

// Get returns the surface at idx.
func (p *SurfacePool) Get(idx SurfaceIndex) Surface {
	return p.items[idx]
}

// Len returns the number of surfaces in the pool.
func (p *SurfacePool) Len() int { return len(p.items) }

// Curve3DPool is an append-only store of 3D curves.
type Curve3DPool struct {
	items []Curve3D
}

// Add appends c and returns its index.
func (p *Curve3DPool) Add(c Curve3D) Curve3DIndex {
	p.items = append(p.items, c)
	return Curve3DIndex(len(p.items) - 1)
}

// Get returns the curve at idx.
func (p *Curve3DPool) Get(idx Curve3DIndex) Curve3D {
	return p.items[idx]
}

// Len returns the number of curves in the pool.
func (p *Curve3DPool) Len() int { return len(p.items) }

// Curve2DPool is an append-only store of 2D curves.
type Curve2DPool struct {
	items []Curve2D
}

// Add appends c and returns its index.
func (p *Curve2DPool) Add(c Curve2D) Curve2DIndex {
	p.items = append(p.items, c)
	return Curve2DIndex(len(p.items) - 1)
}

// Get returns the curve at idx.
func (p *Curve2DPool) Get(idx Curve2DIndex) Curve2D {
	return p.items[idx]
}

// Len returns the number of curves in the pool.
func (p *Curve2DPool) Len() int { return len(p.items) }

// PCurvePool is an append-only store of p-curve attachments.
type PCurvePool struct {
	items []PCurve
}

// Add appends pc and returns its index.
func (p *PCurvePool) Add(pc PCurve) PCurveIndex {
	p.items = append(p.items, pc)
	return PCurveIndex(len(p.items) - 1)
}

// Get returns the p-curve at idx.
func (p *PCurvePool) Get(idx PCurveIndex) PCurve {
	return p.items[idx]
}

// Pools bundles the four geometry pools the topology model references into.
type Pools struct {
	Surfaces   SurfacePool
	Curves3D   Curve3DPool
	Curves2D   Curve2DPool
	PCurves    PCurvePool
}

// NewPools returns an empty set of geometry pools.
func NewPools() *Pools {
	return &Pools{}
}
