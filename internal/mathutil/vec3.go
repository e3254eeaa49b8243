package mathutil

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vec3 is a 3-component vector (value type, stack-allocated).
// Points, directions and linear RGB colors all use it.
type Vec3 r3.Vec

func V(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3(r3.Add(r3.Vec(a), r3.Vec(b)))
}

func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3(r3.Sub(r3.Vec(a), r3.Vec(b)))
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3(r3.Scale(s, r3.Vec(v)))
}

// Mul is the component-wise product, used to filter colors.
func (a Vec3) Mul(b Vec3) Vec3 {
	return Vec3{a.X * b.X, a.Y * b.Y, a.Z * b.Z}
}

func (a Vec3) Dot(b Vec3) float64 {
	return r3.Dot(r3.Vec(a), r3.Vec(b))
}

func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3(r3.Cross(r3.Vec(a), r3.Vec(b)))
}

func (v Vec3) Len() float64 {
	return r3.Norm(r3.Vec(v))
}

func (v Vec3) Len2() float64 {
	return r3.Norm2(r3.Vec(v))
}

// Normalize returns the unit vector, or the zero vector when v has no usable length.
func (v Vec3) Normalize() Vec3 {
	if v.Len() < 1e-12 {
		return Vec3{}
	}
	return Vec3(r3.Unit(r3.Vec(v)))
}

// Axis returns component i (0=X, 1=Y, 2=Z).
func (v Vec3) Axis(i int) float64 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// ApproxEqual reports whether every component of a and b differs by at most eps.
func (a Vec3) ApproxEqual(b Vec3, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps && math.Abs(a.Z-b.Z) <= eps
}
