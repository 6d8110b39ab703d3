// Package v3 provides 3D vector arithmetic for the kernel's numeric core.
package v3

import "math"

// Vec is a 3D vector (or point) with float64 components.
type Vec struct {
	X, Y, Z float64
}

// VecSet is an ordered list of 3D vectors.
type VecSet []Vec

// Add returns a + b.
func (a Vec) Add(b Vec) Vec {
	return Vec{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

// Sub returns a - b.
func (a Vec) Sub(b Vec) Vec {
	return Vec{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

// MulScalar returns a scaled by k.
func (a Vec) MulScalar(k float64) Vec {
	return Vec{a.X * k, a.Y * k, a.Z * k}
}

// Neg returns -a.
func (a Vec) Neg() Vec {
	return Vec{-a.X, -a.Y, -a.Z}
}

// Dot returns the dot product a.b.
func (a Vec) Dot(b Vec) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Cross returns the cross product a x b.
func (a Vec) Cross(b Vec) Vec {
	return Vec{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

// Length returns the Euclidean length of a.
func (a Vec) Length() float64 {
	return math.Sqrt(a.Dot(a))
}

// Length2 returns the squared Euclidean length of a (avoids the sqrt).
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

// Equals reports whether a and b are within tolerance of each other on
// every component.
func (a Vec) Equals(b Vec, tolerance float64) bool {
	return math.Abs(a.X-b.X) <= tolerance &&
		math.Abs(a.Y-b.Y) <= tolerance &&
		math.Abs(a.Z-b.Z) <= tolerance
}

// Min returns the component-wise minimum of a and b.
func (a Vec) Min(b Vec) Vec {
	return Vec{math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z)}
}

// Max returns the component-wise maximum of a and b.
func (a Vec) Max(b Vec) Vec {
	return Vec{math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z)}
}

// Lerp returns the linear interpolation of a and b at parameter t.
func (a Vec) Lerp(b Vec, t float64) Vec {
	return a.Add(b.Sub(a).MulScalar(t))
}

// Box3 is an axis-aligned bounding box in 3D.
type Box3 struct {
	Min, Max Vec
}

// Union returns the smallest Box3 containing both b and p.
func (b Box3) Union(p Vec) Box3 {
	return Box3{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Extend returns the smallest Box3 containing both b and o.
func (b Box3) Extend(o Box3) Box3 {
	return Box3{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max)}
}

// Overlaps reports whether b and o intersect within tolerance.
func (b Box3) Overlaps(o Box3, tolerance float64) bool {
	return b.Min.X-tolerance <= o.Max.X && o.Min.X-tolerance <= b.Max.X &&
		b.Min.Y-tolerance <= o.Max.Y && o.Min.Y-tolerance <= b.Max.Y &&
		b.Min.Z-tolerance <= o.Max.Z && o.Min.Z-tolerance <= b.Max.Z
}

// Contains reports whether p lies within b, within tolerance.
func (b Box3) Contains(p Vec, tolerance float64) bool {
	return p.X >= b.Min.X-tolerance && p.X <= b.Max.X+tolerance &&
		p.Y >= b.Min.Y-tolerance && p.Y <= b.Max.Y+tolerance &&
		p.Z >= b.Min.Z-tolerance && p.Z <= b.Max.Z+tolerance
}

// EmptyBox3 returns a Box3 whose extrema are set up so the first Union call
// establishes its true bounds.
func EmptyBox3() Box3 {
	inf := math.MaxFloat64
	return Box3{Min: Vec{inf, inf, inf}, Max: Vec{-inf, -inf, -inf}}
}

// BoxFromPoints returns the bounding box of pts.
func BoxFromPoints(pts VecSet) Box3 {
	b := EmptyBox3()
	for _, p := range pts {
		b = b.Union(p)
	}
	return b
}
