package geometry

import (
	"fmt"
	"math"

	"scene-raytracer/internal/mathutil"
)

// OrthogonalTolerance bounds |dot| of the unit edge vectors of a sheet.
const OrthogonalTolerance = 0.01

// Sheet is a parallelogram with pt1 as the shared corner and
// edges pt0-pt1 and pt2-pt1. It is built by NewSheet and read-only afterwards.
type Sheet struct {
	pt0, pt1, pt2 mathutil.Vec3
	mat           Material

	// Plane data, fixed by NewSheet.
	edge1, edge2 mathutil.Vec3
	normal       mathutil.Vec3
	d            float64
	ready        bool
}

// NewSheet validates the corners and precomputes the plane and edge vectors.
// Corners listed counter-clockwise (e.g. (1,0,0), (0,0,0), (0,1,0)) give
// a normal of unit(e2 × e1).
func NewSheet(pt0, pt1, pt2 mathutil.Vec3, mat Material) (*Sheet, error) {
	if err := mat.Validate(); err != nil {
		return nil, err
	}

	e1 := pt0.Sub(pt1)
	e2 := pt2.Sub(pt1)
	if e1.Len2() == 0 || e2.Len2() == 0 {
		return nil, fmt.Errorf("%w: %v %v %v", ErrDegenerateSheet, pt0, pt1, pt2)
	}

	unit1 := e1.Normalize()
	unit2 := e2.Normalize()
	if dot := unit1.Dot(unit2); math.Abs(dot) > OrthogonalTolerance {
		return nil, fmt.Errorf("%w: edges %v and %v (dot %.4f)", ErrNonOrthogonalSheet, e1, e2, dot)
	}

	n := unit2.Cross(unit1).Normalize()
	return &Sheet{
		pt0:    pt0,
		pt1:    pt1,
		pt2:    pt2,
		mat:    mat,
		edge1:  e1,
		edge2:  e2,
		normal: n,
		d:      n.Dot(pt1),
		ready:  true,
	}, nil
}

func (s *Sheet) Kind() Kind         { return KindSheet }
func (s *Sheet) Material() Material { return s.mat }
func (s *Sheet) sealed()            {}

// Corners returns the three corners in construction order.
func (s *Sheet) Corners() (pt0, pt1, pt2 mathutil.Vec3) { return s.pt0, s.pt1, s.pt2 }

// Normal returns the unit plane normal.
func (s *Sheet) Normal() mathutil.Vec3 { return s.normal }

// Edges returns pt0-pt1 and pt2-pt1.
func (s *Sheet) Edges() (mathutil.Vec3, mathutil.Vec3) { return s.edge1, s.edge2 }

// Locate intersects ray with the sheet's plane and returns the plane parameter t
// and the (alpha, beta) coordinates of the hit point in the edge basis.
// ok is false when the ray is parallel to the plane.
func (s *Sheet) Locate(ray Ray) (t, alpha, beta float64, ok bool) {
	denom := s.normal.Dot(ray.Dir)
	if math.Abs(denom) < 1e-12 {
		return 0, 0, 0, false
	}
	t = (s.d - s.normal.Dot(ray.Origin)) / denom
	if math.IsInf(t, 0) || math.IsNaN(t) {
		return 0, 0, 0, false
	}

	rel := ray.At(t).Sub(s.pt1)
	alpha = rel.Dot(s.edge1) / s.edge1.Dot(s.edge1)
	beta = rel.Dot(s.edge2) / s.edge2.Dot(s.edge2)
	return t, alpha, beta, true
}

// hit accepts any t, including negative; callers filter by range.
func (s *Sheet) hit(ray Ray) (HitRecord, bool) {
	t, alpha, beta, ok := s.Locate(ray)
	if !ok || alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return HitRecord{}, false
	}
	return HitRecord{
		Ray:      ray,
		T:        t,
		Span:     Span{Near: t, Far: t},
		Point:    ray.At(t),
		Geometry: s,
		Normal:   s.normal,
	}, true
}
