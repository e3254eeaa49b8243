// Package scene holds the immutable input of a render: camera, primitives and lights.
package scene

import (
	"errors"
	"fmt"
	"math"

	"scene-raytracer/internal/camera"
	"scene-raytracer/internal/geometry"
	"scene-raytracer/internal/mathutil"
)

var (
	ErrNoCamera     = errors.New("scene: camera is required")
	ErrInvalidLight = errors.New("scene: light intensity must be finite and non-negative")
)

// Background is the color of a primary ray that hits nothing: (0, 0, 255).
var Background = mathutil.V(0, 0, 1)

// Light is a point light.
type Light struct {
	Position  mathutil.Vec3
	Intensity float64
}

// Scene is read-only once New returns; it may be shared by any number of render workers.
type Scene struct {
	Camera     *camera.Camera
	Geometries []geometry.Geometry
	Lights     []Light

	// SingleSided clamps the diffuse alignment at 0 instead of lighting
	// back faces like front faces.
	SingleSided bool
}

// GeometryError reports which primitive failed validation.
type GeometryError struct {
	Index int
	Err   error
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("scene: geometry %d: %v", e.Index, e.Err)
}

func (e *GeometryError) Unwrap() error { return e.Err }

// New validates the parts and assembles a scene.
func New(cam *camera.Camera, geoms []geometry.Geometry, lights []Light) (*Scene, error) {
	s := &Scene{Camera: cam, Geometries: geoms, Lights: lights}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks every part once so rendering never has to.
func (s *Scene) Validate() error {
	if s.Camera == nil {
		return ErrNoCamera
	}
	for i, g := range s.Geometries {
		if err := geometry.Check(g); err != nil {
			return &GeometryError{Index: i, Err: err}
		}
	}
	for i, l := range s.Lights {
		if l.Intensity < 0 || math.IsNaN(l.Intensity) || math.IsInf(l.Intensity, 0) {
			return fmt.Errorf("%w: light %d has intensity %v", ErrInvalidLight, i, l.Intensity)
		}
	}
	return nil
}

// Counts returns the number of primitives of each kind.
func (s *Scene) Counts() map[geometry.Kind]int {
	counts := make(map[geometry.Kind]int)
	for _, g := range s.Geometries {
		counts[g.Kind()]++
	}
	return counts
}
