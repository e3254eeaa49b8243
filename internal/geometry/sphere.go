package geometry

import (
	"fmt"
	"math"

	"scene-raytracer/internal/mathutil"
)

// Sphere is built by NewSphere and read-only afterwards.
type Sphere struct {
	center mathutil.Vec3
	radius float64
	mat    Material
}

func NewSphere(center mathutil.Vec3, radius float64, mat Material) (*Sphere, error) {
	s := &Sphere{center: center, radius: radius, mat: mat}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Sphere) validate() error {
	if !(s.radius > 0) || math.IsInf(s.radius, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidRadius, s.radius)
	}
	return s.mat.Validate()
}

func (s *Sphere) Kind() Kind         { return KindSphere }
func (s *Sphere) Material() Material { return s.mat }
func (s *Sphere) sealed()            {}

func (s *Sphere) Center() mathutil.Vec3 { return s.center }
func (s *Sphere) Radius() float64       { return s.radius }

// Roots solves |origin + t*dir - center|² = r² for t.
// ok is false when the discriminant is negative. t0 <= t1.
func (s *Sphere) Roots(ray Ray) (t0, t1 float64, ok bool) {
	u := ray.Origin.Sub(s.center)
	a := ray.Dir.Dot(ray.Dir)
	if a == 0 {
		return 0, 0, false
	}
	b := 2 * ray.Dir.Dot(u)
	c := u.Dot(u) - s.radius*s.radius

	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, 0, false
	}
	sq := math.Sqrt(disc)
	return (-b - sq) / (2 * a), (-b + sq) / (2 * a), true
}

func (s *Sphere) hit(ray Ray) (HitRecord, bool) {
	t0, t1, ok := s.Roots(ray)
	if !ok {
		return HitRecord{}, false
	}

	var t float64
	switch {
	case t0 > 0:
		t = t0
	case t1 > 0:
		t = t1
	default:
		// Entirely behind the origin.
		return HitRecord{}, false
	}

	pt := ray.At(t)
	return HitRecord{
		Ray:      ray,
		T:        t,
		Span:     Span{Near: t0, Far: t1},
		Point:    pt,
		Geometry: s,
		Normal:   pt.Sub(s.center),
	}, true
}
