package shade

import (
	"scene-raytracer/internal/geometry"
	"scene-raytracer/internal/mathutil"
	"scene-raytracer/internal/scene"
)

// LightSample breaks one light's contribution into its terms.
type LightSample struct {
	Light    scene.Light
	Shadowed bool
	Diffuse  mathutil.Vec3
	Specular mathutil.Vec3
	Color    mathutil.Vec3 // (Diffuse + Specular) * intensity, zero when shadowed
}

// Sample is the full shading breakdown of one primary ray.
type Sample struct {
	Hit    geometry.HitRecord
	Hits   int // all hits along the ray, including ones behind the origin
	Found  bool
	Lights []LightSample
	Color  mathutil.Vec3
}

// Explain traces ray like TraceRay and keeps every intermediate term.
func Explain(ray geometry.Ray, s *scene.Scene) Sample {
	hits := geometry.AllHits(ray, s.Geometries)
	rec, ok := Nearest(hits)
	out := Sample{Hit: rec, Hits: len(hits), Found: ok}
	if !ok {
		out.Color = scene.Background
		return out
	}

	for _, l := range s.Lights {
		ls := sampleLight(rec, l, s)
		out.Color = out.Color.Add(ls.Color)
		out.Lights = append(out.Lights, ls)
	}
	return out
}
