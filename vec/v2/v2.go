// Package v2 provides 2D vector arithmetic used by the sketch, profile and
// boolean-imprint stages of the kernel.
package v2

import "math"

// Vec is a 2D vector (or point) with float64 components.
type Vec struct {
	X, Y float64
}

// VecSet is an ordered list of 2D vectors.
type VecSet []Vec

// Add returns a + b.
func (a Vec) Add(b Vec) Vec {
	return Vec{a.X + b.X, a.Y + b.Y}
}

// Sub returns a - b.
func (a Vec) Sub(b Vec) Vec {
	return Vec{a.X - b.X, a.Y - b.Y}
}

// MulScalar returns a scaled by k.
func (a Vec) MulScalar(k float64) Vec {
	return Vec{a.X * k, a.Y * k}
}

// Dot returns the dot product a.b.
func (a Vec) Dot(b Vec) float64 {
	return a.X*b.X + a.Y*b.Y
}

// Cross returns the scalar (z-component) cross product a x b.
func (a Vec) Cross(b Vec) float64 {
	return a.X*b.Y - a.Y*b.X
}

// Length returns the Euclidean length of a.
func (a Vec) Length() float64 {
	return math.Sqrt(a.Dot(a))
}

// Length2 returns the squared Euclidean length of a.
func (a Vec) Length2() float64 {
	return a.Dot(a)
}

// Normalize returns a scaled to unit length. The zero vector is returned
// unchanged.
func (a Vec) Normalize() Vec {
	l := a.Length()
	if l == 0 {
		return a
	}
	return a.MulScalar(1 / l)
}

// Perp returns a rotated 90 degrees counter-clockwise.
func (a Vec) Perp() Vec {
	return Vec{-a.Y, a.X}
}

// Equals reports whether a and b are within tolerance of each other on
// every component.
func (a Vec) Equals(b Vec, tolerance float64) bool {
	return math.Abs(a.X-b.X) <= tolerance && math.Abs(a.Y-b.Y) <= tolerance
}

// Lerp returns the linear interpolation of a and b at parameter t.
func (a Vec) Lerp(b Vec, t float64) Vec {
	return a.Add(b.Sub(a).MulScalar(t))
}

// Min returns the component-wise minimum of a and b.
func (a Vec) Min(b Vec) Vec {
	return Vec{math.Min(a.X, b.X), math.Min(a.Y, b.Y)}
}

// Max returns the component-wise maximum of a and b.
func (a Vec) Max(b Vec) Vec {
	return Vec{math.Max(a.X, b.X), math.Max(a.Y, b.Y)}
}

// Box2 is an axis-aligned bounding box in 2D.
type Box2 struct {
	Min, Max Vec
}

// Union returns the smallest Box2 containing both b and p.
func (b Box2) Union(p Vec) Box2 {
	return Box2{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Overlaps reports whether b and o intersect within tolerance.
func (b Box2) Overlaps(o Box2, tolerance float64) bool {
	return b.Min.X-tolerance <= o.Max.X && o.Min.X-tolerance <= b.Max.X &&
		b.Min.Y-tolerance <= o.Max.Y && o.Min.Y-tolerance <= b.Max.Y
}

// EmptyBox2 returns a Box2 whose extrema are set up so the first Union call
// establishes its true bounds.
func EmptyBox2() Box2 {
	inf := math.MaxFloat64
	return Box2{Min: Vec{inf, inf}, Max: Vec{-inf, -inf}}
}

// BoxFromPoints returns the bounding box of pts.
func BoxFromPoints(pts VecSet) Box2 {
	b := EmptyBox2()
	for _, p := range pts {
		b = b.Union(p)
	}
	return b
}

// SignedArea returns twice the signed area of the polygon pts (shoelace
// formula); positive for counter-clockwise winding.
func SignedArea(pts VecSet) float64 {
	if len(pts) < 3 {
		return 0
	}
	sum := 0.0
	n := len(pts)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return sum / 2
}

// IsCounterClockwise reports whether pts winds counter-clockwise.
func IsCounterClockwise(pts VecSet) bool {
	return SignedArea(pts) > 0
}

// PointInPolygon reports whether p lies inside the polygon pts (ray casting,
// even-odd rule). Boundary behavior is unspecified.
func PointInPolygon(p Vec, pts VecSet) bool {
	inside := false
	n := len(pts)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := pts[i], pts[j]
		if (pi.Y > p.Y) != (pj.Y > p.Y) &&
			p.X < (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			inside = !inside
		}
	}
	return inside
}
