package vmath

import (
	"math"

	"github.com/golang/geo/r2"
)

// Vec2 is a 2D point or vector in world units
// Value type; all methods return new values and never mutate the receiver
type Vec2 r2.Point

// V2 builds a Vec2 from components
func V2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// UnitAt returns the unit vector at angle a (radians)
func UnitAt(a float64) Vec2 {
	return Vec2{X: math.Cos(a), Y: math.Sin(a)}
}

func (v Vec2) Add(w Vec2) Vec2 { return Vec2(r2.Point(v).Add(r2.Point(w))) }
func (v Vec2) Sub(w Vec2) Vec2 { return Vec2(r2.Point(v).Sub(r2.Point(w))) }
func (v Vec2) Neg() Vec2       { return Vec2{X: -v.X, Y: -v.Y} }
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2(r2.Point(v).Mul(s))
}

// Dot returns x1*x2 + y1*y2
func (v Vec2) Dot(w Vec2) float64 { return r2.Point(v).Dot(r2.Point(w)) }

// Cross returns the z component of the 3D cross product
func (v Vec2) Cross(w Vec2) float64 { return r2.Point(v).Cross(r2.Point(w)) }

// Norm returns the Euclidean length, exactly 0 for the zero vector
func (v Vec2) Norm() float64 { return r2.Point(v).Norm() }

// Normal returns v rotated 90° counter-clockwise: {-y, x}
// The result has the same length as v, it is not normalized
func (v Vec2) Normal() Vec2 { return Vec2(r2.Point(v).Ortho()) }

// Rotate applies the 2D rotation matrix for angle a (radians)
func (v Vec2) Rotate(a float64) Vec2 {
	sin, cos := math.Sincos(a)
	return Vec2{
		X: cos*v.X - sin*v.Y,
		Y: sin*v.X + cos*v.Y,
	}
}

// ScaledTo returns v rescaled to length, zero-safe
// Vectors shorter than Epsilon have no direction and yield the zero vector
func (v Vec2) ScaledTo(length float64) Vec2 {
	n := v.Norm()
	if n < Epsilon {
		return Vec2{}
	}
	return v.Scale(length / n)
}

// Distance returns |w - v|
func (v Vec2) Distance(w Vec2) float64 { return w.Sub(v).Norm() }

// Clamp limits each component into [min, max] of the matching axis
func (v Vec2) Clamp(min, max Vec2) Vec2 {
	return Vec2{X: Clamp(v.X, min.X, max.X), Y: Clamp(v.Y, min.Y, max.Y)}
}

// IsFinite reports whether both components are neither NaN nor infinite
func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

func (v Vec2) String() string { return r2.Point(v).String() }
