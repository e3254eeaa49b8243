package geometry

import "scene-raytracer/internal/mathutil"

// Ray is origin + t*Dir. Dir need not be unit length.
type Ray struct {
	Origin mathutil.Vec3
	Dir    mathutil.Vec3
}

func NewRay(origin, dir mathutil.Vec3) Ray {
	return Ray{Origin: origin, Dir: dir}
}

// At returns the point at parameter t.
func (r Ray) At(t float64) mathutil.Vec3 {
	return r.Origin.Add(r.Dir.Scale(t))
}

// Span is the pair of ray parameters where a primitive is crossed.
// For a sheet both ends are the same value.
type Span struct {
	Near float64
	Far  float64
}

// Contains reports whether either end of the span lies strictly inside (lo, hi).
func (s Span) Contains(lo, hi float64) bool {
	return (s.Near > lo && s.Near < hi) || (s.Far > lo && s.Far < hi)
}

// HitRecord describes one ray/primitive intersection.
// It borrows the geometry; Normal is not necessarily unit length.
type HitRecord struct {
	Ray      Ray
	T        float64 // parameter of Point; used to rank hits by proximity
	Span     Span
	Point    mathutil.Vec3
	Geometry Geometry
	Normal   mathutil.Vec3
}

// Material returns the material of the struck geometry.
func (h HitRecord) Material() Material {
	return h.Geometry.Material()
}
