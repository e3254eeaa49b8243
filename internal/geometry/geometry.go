package geometry

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedGeometry = errors.New("geometry: unsupported geometry kind")
	ErrNonOrthogonalSheet  = errors.New("geometry: sheet edges are not orthogonal")
	ErrDegenerateSheet     = errors.New("geometry: sheet edge has zero length")
	ErrInvalidRadius       = errors.New("geometry: sphere radius must be positive")
	ErrInvalidExtents      = errors.New("geometry: box extents must be positive")
	ErrInvalidColor        = errors.New("geometry: diffuse color outside [0,1]")
	ErrInvalidExponent     = errors.New("geometry: specular exponent must be finite and non-negative")
)

// Kind identifies a geometry variant.
type Kind int

const (
	KindSphere Kind = iota
	KindSheet
	KindBox
)

func (k Kind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	case KindSheet:
		return "sheet"
	case KindBox:
		return "box"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Geometry is the closed set of primitives: *Sphere, *Sheet and *Box.
// Values are immutable once constructed and safe to share between goroutines.
type Geometry interface {
	Kind() Kind
	Material() Material
	sealed()
}

// Check reports whether g is a supported, fully constructed primitive.
func Check(g Geometry) error {
	switch g := g.(type) {
	case *Sphere:
		if g == nil {
			break
		}
		if err := g.validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrUnsupportedGeometry, err)
		}
		return nil
	case *Sheet:
		if g != nil && g.ready {
			return nil
		}
	case *Box:
		if g != nil && g.faces[0] != nil {
			return nil
		}
	}
	return fmt.Errorf("%w: %T", ErrUnsupportedGeometry, g)
}

// Hit intersects ray with g. ok is false on a miss.
func Hit(ray Ray, g Geometry) (rec HitRecord, ok bool) {
	switch g := g.(type) {
	case *Sphere:
		return g.hit(ray)
	case *Sheet:
		return g.hit(ray)
	case *Box:
		return g.hit(ray)
	}
	return HitRecord{}, false
}

// AllHits returns every hit of ray against geoms, in geometry order.
func AllHits(ray Ray, geoms []Geometry) []HitRecord {
	var hits []HitRecord
	for _, g := range geoms {
		if rec, ok := Hit(ray, g); ok {
			hits = append(hits, rec)
		}
	}
	return hits
}
