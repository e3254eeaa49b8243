package geometry

import (
	"fmt"
	"math"

	"scene-raytracer/internal/mathutil"
)

// Material is a Lambertian surface with an optional Phong highlight.
type Material struct {
	Diffuse  mathutil.Vec3 // linear RGB, each channel in [0,1]
	Specular bool          // false = no highlight
	Exponent float64       // Phong exponent, read only when Specular is set
}

// Matte returns a diffuse-only material.
func Matte(diffuse mathutil.Vec3) Material {
	return Material{Diffuse: diffuse}
}

// Shiny returns a material with a Phong highlight of the given exponent.
func Shiny(diffuse mathutil.Vec3, exponent float64) Material {
	return Material{Diffuse: diffuse, Specular: true, Exponent: exponent}
}

func (m Material) Validate() error {
	for i := 0; i < 3; i++ {
		c := m.Diffuse.Axis(i)
		if !(c >= 0 && c <= 1) {
			return fmt.Errorf("%w: diffuse %v", ErrInvalidColor, m.Diffuse)
		}
	}
	if m.Specular && (m.Exponent < 0 || math.IsNaN(m.Exponent) || math.IsInf(m.Exponent, 0)) {
		return fmt.Errorf("%w: %v", ErrInvalidExponent, m.Exponent)
	}
	return nil
}
