// Package shade turns the nearest hit of a primary ray into a color using
// Lambertian diffuse, a Phong highlight and hard shadows from point lights.
package shade

import (
	"math"

	"scene-raytracer/internal/geometry"
	"scene-raytracer/internal/mathutil"
	"scene-raytracer/internal/scene"
)

// ShadowEpsilon keeps a surface from shadowing itself at the shadow ray origin.
const ShadowEpsilon = 1e-4

var white = mathutil.V(1, 1, 1)

// TraceRay returns the color seen along a primary ray.
func TraceRay(ray geometry.Ray, s *scene.Scene) mathutil.Vec3 {
	rec, ok := Nearest(geometry.AllHits(ray, s.Geometries))
	if !ok {
		return scene.Background
	}
	return Shade(rec, s)
}

// Nearest picks the hit with the smallest positive T.
// Hits behind the ray origin never win.
func Nearest(hits []geometry.HitRecord) (geometry.HitRecord, bool) {
	best := -1
	minT := math.Inf(1)
	for i, h := range hits {
		if h.T > 0 && h.T < minT {
			minT = h.T
			best = i
		}
	}
	if best < 0 {
		return geometry.HitRecord{}, false
	}
	return hits[best], true
}

// Shade sums the contribution of every light. No clamping happens here.
func Shade(rec geometry.HitRecord, s *scene.Scene) mathutil.Vec3 {
	var c mathutil.Vec3
	for _, l := range s.Lights {
		c = c.Add(Contribution(rec, l, s))
	}
	return c
}

// Contribution is the color one light adds at rec, already scaled by its intensity.
func Contribution(rec geometry.HitRecord, l scene.Light, s *scene.Scene) mathutil.Vec3 {
	return sampleLight(rec, l, s).Color
}

func sampleLight(rec geometry.HitRecord, l scene.Light, s *scene.Scene) LightSample {
	toLight := l.Position.Sub(rec.Point)
	ls := LightSample{Light: l, Shadowed: InShadow(rec.Point, toLight, s.Geometries)}
	if ls.Shadowed {
		return ls
	}
	ls.Diffuse = Diffuse(rec, toLight, s.SingleSided)
	ls.Specular = Specular(rec, toLight, s.Camera.Eye)
	ls.Color = ls.Diffuse.Add(ls.Specular).Scale(l.Intensity)
	return ls
}

// InShadow casts point + t*toLight and reports whether anything is crossed
// for t in (ShadowEpsilon, 1), i.e. past the surface and before the light.
func InShadow(point, toLight mathutil.Vec3, geoms []geometry.Geometry) bool {
	ray := geometry.NewRay(point, toLight)
	for _, g := range geoms {
		if h, ok := geometry.Hit(ray, g); ok && h.Span.Contains(ShadowEpsilon, 1) {
			return true
		}
	}
	return false
}

// Diffuse is the Lambert term. Back faces are lit like front faces
// unless singleSided is set.
func Diffuse(rec geometry.HitRecord, toLight mathutil.Vec3, singleSided bool) mathutil.Vec3 {
	denom := rec.Normal.Len() * toLight.Len()
	if denom == 0 {
		return mathutil.Vec3{}
	}

	lambert := toLight.Dot(rec.Normal) / denom
	if singleSided {
		lambert = math.Max(0, lambert)
	} else {
		lambert = math.Abs(lambert)
	}
	return rec.Material().Diffuse.Scale(lambert)
}

// Specular is the white Phong highlight, zero for materials without an exponent.
func Specular(rec geometry.HitRecord, toLight, eye mathutil.Vec3) mathutil.Vec3 {
	mat := rec.Material()
	if !mat.Specular {
		return mathutil.Vec3{}
	}
	n := rec.Normal
	nn := n.Dot(n)
	if nn == 0 {
		return mathutil.Vec3{}
	}

	reflect := n.Scale(2 * n.Dot(toLight) / nn).Sub(toLight).Normalize()
	toEye := eye.Sub(rec.Point).Normalize()

	align := toEye.Dot(reflect)
	if align < 0 {
		align = 0
	}
	return white.Scale(math.Pow(align, mat.Exponent))
}
