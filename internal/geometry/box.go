package geometry

import (
	"fmt"
	"math"

	"scene-raytracer/internal/mathutil"
)

// Box is an axis-aligned box spanning minPt to minPt+dim.
// It is built by NewBox and read-only afterwards.
type Box struct {
	minPt mathutil.Vec3
	dim   mathutil.Vec3 // width, height, depth
	mat   Material

	// faces[2*axis] lies on the minPt side of axis, faces[2*axis+1] on the far side.
	// Every face normal points out of the box.
	faces [6]*Sheet
}

func NewBox(minPt, dim mathutil.Vec3, mat Material) (*Box, error) {
	for i := 0; i < 3; i++ {
		if e := dim.Axis(i); !(e > 0) || math.IsInf(e, 0) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidExtents, dim)
		}
	}
	if err := mat.Validate(); err != nil {
		return nil, err
	}

	b := &Box{minPt: minPt, dim: dim, mat: mat}
	if err := b.buildFaces(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Box) buildFaces() error {
	x := mathutil.V(b.dim.X, 0, 0)
	y := mathutil.V(0, b.dim.Y, 0)
	z := mathutil.V(0, 0, b.dim.Z)

	// face(corner, e1, e2) has normal unit(e2 × e1).
	specs := [6]struct{ corner, e1, e2 mathutil.Vec3 }{
		{b.minPt, y, z},        // -X
		{b.minPt.Add(x), z, y}, // +X
		{b.minPt, z, x},        // -Y
		{b.minPt.Add(y), x, z}, // +Y
		{b.minPt, x, y},        // -Z
		{b.minPt.Add(z), y, x}, // +Z
	}
	for i, s := range specs {
		f, err := NewSheet(s.corner.Add(s.e1), s.corner, s.corner.Add(s.e2), b.mat)
		if err != nil {
			return fmt.Errorf("geometry: box face %d: %w", i, err)
		}
		b.faces[i] = f
	}
	return nil
}

func (b *Box) Kind() Kind         { return KindBox }
func (b *Box) Material() Material { return b.mat }
func (b *Box) sealed()            {}

// Min returns the corner with the smallest coordinates.
func (b *Box) Min() mathutil.Vec3 { return b.minPt }

// Dim returns the width, height and depth.
func (b *Box) Dim() mathutil.Vec3 { return b.dim }

// Max returns the corner opposite Min.
func (b *Box) Max() mathutil.Vec3 { return b.minPt.Add(b.dim) }

// Faces returns the six outward-facing sheets of the box.
func (b *Box) Faces() [6]*Sheet { return b.faces }

// Slab returns the entry/exit parameters of ray against the box and the
// indices of the faces crossed there. ok is false when the per-axis
// intervals do not overlap.
func (b *Box) Slab(ray Ray) (span Span, nearFace, farFace int, ok bool) {
	if ray.Dir.Len2() == 0 {
		return Span{}, 0, 0, false
	}

	tNear, tFar := math.Inf(-1), math.Inf(1)
	for axis := 0; axis < 3; axis++ {
		o := ray.Origin.Axis(axis)
		d := ray.Dir.Axis(axis)
		lo := b.minPt.Axis(axis)
		hi := lo + b.dim.Axis(axis)

		if math.Abs(d) < 1e-12 {
			if o < lo || o > hi {
				return Span{}, 0, 0, false
			}
			continue
		}

		t1, t2 := (lo-o)/d, (hi-o)/d
		f1, f2 := 2*axis, 2*axis+1
		if t1 > t2 {
			t1, t2 = t2, t1
			f1, f2 = f2, f1
		}
		if t1 > tNear {
			tNear, nearFace = t1, f1
		}
		if t2 < tFar {
			tFar, farFace = t2, f2
		}
		if tNear > tFar {
			return Span{}, 0, 0, false
		}
	}
	return Span{Near: tNear, Far: tFar}, nearFace, farFace, true
}

func (b *Box) hit(ray Ray) (HitRecord, bool) {
	span, nearFace, farFace, ok := b.Slab(ray)
	if !ok || span.Far <= 0 {
		return HitRecord{}, false
	}

	t, face := span.Near, nearFace
	if t <= 0 {
		// Origin inside the box: report the exit.
		t, face = span.Far, farFace
	}
	return HitRecord{
		Ray:      ray,
		T:        t,
		Span:     span,
		Point:    ray.At(t),
		Geometry: b,
		Normal:   b.faces[face].Normal(),
	}, true
}
