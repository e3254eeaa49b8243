package shade

import (
	"math"
	"testing"

	"scene-raytracer/internal/camera"
	"scene-raytracer/internal/geometry"
	"scene-raytracer/internal/mathutil"
	"scene-raytracer/internal/scene"
)

var red = geometry.Matte(mathutil.V(1, 0, 0))

func testCamera(t *testing.T, eye mathutil.Vec3) *camera.Camera {
	t.Helper()
	cam, err := camera.New(eye, mathutil.V(0, 0, -1), mathutil.V(0, 1, 0),
		camera.ImagePlane{Distance: 1, Width: 1, Height: 1}, 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	return cam
}

func mustSphere(t *testing.T, center mathutil.Vec3, radius float64, mat geometry.Material) *geometry.Sphere {
	t.Helper()
	s, err := geometry.NewSphere(center, radius, mat)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

// floorHit is a hit at the origin on a surface facing +Y.
func floorHit(t *testing.T, mat geometry.Material) geometry.HitRecord {
	t.Helper()
	sq, err := geometry.NewSheet(mathutil.V(5, 0, -5), mathutil.V(-5, 0, -5), mathutil.V(-5, 0, 5), mat)
	if err != nil {
		t.Fatal(err)
	}
	rec, ok := geometry.Hit(geometry.NewRay(mathutil.V(0, 3, 0), mathutil.V(0, -1, 0)), sq)
	if !ok {
		t.Fatal("Expected the probe ray to hit the floor")
	}
	return rec
}

func TestInShadow_Occluder(t *testing.T) {
	rec := floorHit(t, red)
	light := scene.Light{Position: mathutil.V(0, 10, 0), Intensity: 1}
	occluder := mustSphere(t, mathutil.V(0, 5, 0), 1, red)

	s := &scene.Scene{
		Camera:     testCamera(t, mathutil.V(0, 3, 3)),
		Geometries: []geometry.Geometry{rec.Geometry, occluder},
		Lights:     []scene.Light{light},
	}
	if c := Contribution(rec, light, s); c != (mathutil.Vec3{}) {
		t.Errorf("Expected black contribution behind the occluder, got %v", c)
	}

	s.Geometries = []geometry.Geometry{rec.Geometry}
	c := Contribution(rec, light, s)
	if !c.ApproxEqual(mathutil.V(1, 0, 0), 1e-12) {
		t.Errorf("Expected full red once the occluder is removed, got %v", c)
	}
}

func TestInShadow_Range(t *testing.T) {
	point := mathutil.V(0, 0, 0)
	toLight := mathutil.V(0, 10, 0)

	tests := []struct {
		name   string
		center mathutil.Vec3
		want   bool
	}{
		{"between point and light", mathutil.V(0, 5, 0), true},
		{"beyond the light", mathutil.V(0, 20, 0), false},
		{"light inside the occluder", mathutil.V(0, 10, 0), true},
		{"behind the point", mathutil.V(0, -5, 0), false},
		{"off to the side", mathutil.V(5, 5, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := []geometry.Geometry{mustSphere(t, tt.center, 1, red)}
			if got := InShadow(point, toLight, g); got != tt.want {
				t.Errorf("Expected shadow=%t, got %t", tt.want, got)
			}
		})
	}
}

func TestInShadow_SelfOcclusion(t *testing.T) {
	sphere := mustSphere(t, mathutil.V(0, 0, 0), 1, red)
	geoms := []geometry.Geometry{sphere}
	light := mathutil.V(0, 10, 0)

	top := mathutil.V(0, 1, 0)
	if InShadow(top, light.Sub(top), geoms) {
		t.Error("Expected the lit side of the sphere not to shadow itself")
	}
	bottom := mathutil.V(0, -1, 0)
	if !InShadow(bottom, light.Sub(bottom), geoms) {
		t.Error("Expected the far side of the sphere to be in its own shadow")
	}
}

func TestDiffuse(t *testing.T) {
	rec := floorHit(t, geometry.Matte(mathutil.V(0.2, 0.4, 0.8)))
	if !rec.Normal.ApproxEqual(mathutil.V(0, 1, 0), 1e-12) {
		t.Fatalf("Expected floor normal +Y, got %v", rec.Normal)
	}

	tests := []struct {
		name        string
		toLight     mathutil.Vec3
		singleSided bool
		want        float64
	}{
		{"straight above", mathutil.V(0, 7, 0), false, 1},
		{"45 degrees", mathutil.V(1, 1, 0), false, math.Sqrt2 / 2},
		{"grazing", mathutil.V(1, 0, 0), false, 0},
		{"below, double sided", mathutil.V(0, -3, 0), false, 1},
		{"below, single sided", mathutil.V(0, -3, 0), true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diffuse(rec, tt.toLight, tt.singleSided)
			want := mathutil.V(0.2, 0.4, 0.8).Scale(tt.want)
			if !got.ApproxEqual(want, 1e-12) {
				t.Errorf("Expected %v, got %v", want, got)
			}
		})
	}
}

func TestSpecular(t *testing.T) {
	sheet, err := geometry.NewSheet(mathutil.V(0, 1, 0), mathutil.V(0, 0, 0), mathutil.V(1, 0, 0), geometry.Shiny(mathutil.V(0, 0, 0), 20))
	if err != nil {
		t.Fatal(err)
	}
	if !sheet.Normal().ApproxEqual(mathutil.V(0, 0, 1), 1e-12) {
		t.Fatalf("Expected +Z normal, got %v", sheet.Normal())
	}
	rec, ok := geometry.Hit(geometry.NewRay(mathutil.V(0.5, 0.5, 1), mathutil.V(0, 0, -1)), sheet)
	if !ok {
		t.Fatal("Expected hit")
	}
	p := rec.Point
	toLight := mathutil.V(1, 0, 1)

	tests := []struct {
		name string
		eye  mathutil.Vec3
		want float64
	}{
		{"along reflection", p.Add(mathutil.V(-2, 0, 2)), 1},
		{"orthogonal", p.Add(mathutil.V(1, 0, 1)), 0},
		{"opposite", p.Add(mathutil.V(1, 0, -1)), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Specular(rec, toLight, tt.eye)
			if !got.ApproxEqual(mathutil.V(tt.want, tt.want, tt.want), 1e-9) {
				t.Errorf("Expected %f, got %v", tt.want, got)
			}
		})
	}

	matte := rec
	matte.Geometry = mustSphere(t, mathutil.V(0, 0, -1), 1, red)
	if got := Specular(matte, toLight, p.Add(mathutil.V(-2, 0, 2))); got != (mathutil.Vec3{}) {
		t.Errorf("Expected no highlight without an exponent, got %v", got)
	}
}

func TestNearest(t *testing.T) {
	behind, err := geometry.NewSheet(mathutil.V(5, 5, 5), mathutil.V(-5, 5, 5), mathutil.V(-5, -5, 5), red)
	if err != nil {
		t.Fatal(err)
	}
	far := mustSphere(t, mathutil.V(0, 0, -10), 1, red)
	near := mustSphere(t, mathutil.V(0, 0, -4), 1, red)

	ray := geometry.NewRay(mathutil.V(0, 0, 0), mathutil.V(0, 0, -1))
	hits := geometry.AllHits(ray, []geometry.Geometry{behind, far, near})
	if len(hits) != 3 {
		t.Fatalf("Expected 3 hits, got %d", len(hits))
	}

	rec, ok := Nearest(hits)
	if !ok {
		t.Fatal("Expected a nearest hit")
	}
	if rec.Geometry != geometry.Geometry(near) {
		t.Errorf("Expected the near sphere, got %s at t=%f", rec.Geometry.Kind(), rec.T)
	}

	if _, ok := Nearest(hits[:1]); ok {
		t.Error("Expected a hit behind the origin not to be selected")
	}
}

func TestTraceRay(t *testing.T) {
	cam := testCamera(t, mathutil.V(0, 0, 0))
	sphere := mustSphere(t, mathutil.V(0, 0, -5), 1, geometry.Shiny(mathutil.V(0.5, 0.5, 0.5), 10))
	s := &scene.Scene{
		Camera:     cam,
		Geometries: []geometry.Geometry{sphere},
		Lights: []scene.Light{
			{Position: mathutil.V(0, 0, 0), Intensity: 0.5},
			{Position: mathutil.V(0, 0, 0), Intensity: 0.5},
		},
	}

	miss := geometry.NewRay(mathutil.V(0, 0, 0), mathutil.V(0, 1, 0))
	if c := TraceRay(miss, s); c != scene.Background {
		t.Errorf("Expected background for a miss, got %v", c)
	}

	// Light at the eye, looking straight at the sphere: full diffuse + full highlight.
	hit := geometry.NewRay(mathutil.V(0, 0, 0), mathutil.V(0, 0, -1))
	c := TraceRay(hit, s)
	if !c.ApproxEqual(mathutil.V(1.5, 1.5, 1.5), 1e-9) {
		t.Errorf("Expected (1.5,1.5,1.5), got %v", c)
	}

	sample := Explain(hit, s)
	if !sample.Found || len(sample.Lights) != 2 || !sample.Color.ApproxEqual(c, 1e-12) {
		t.Errorf("Expected Explain to agree with TraceRay, got %+v", sample)
	}
}

func TestExplain_MatchesContribution(t *testing.T) {
	rec := floorHit(t, red)
	occluder := mustSphere(t, mathutil.V(0, 5, 0), 1, red)
	s := &scene.Scene{
		Camera:     testCamera(t, mathutil.V(0, 3, 3)),
		Geometries: []geometry.Geometry{rec.Geometry, occluder},
		Lights: []scene.Light{
			{Position: mathutil.V(0, 10, 0), Intensity: 1},
			{Position: mathutil.V(3, 1, 0), Intensity: 0.5},
		},
	}

	sample := Explain(rec.Ray, s)
	if !sample.Found || len(sample.Lights) != 2 {
		t.Fatalf("Expected a hit lit by two lights, got %+v", sample)
	}
	if !sample.Lights[0].Shadowed || sample.Lights[0].Color != (mathutil.Vec3{}) {
		t.Errorf("Expected the overhead light to be blocked, got %+v", sample.Lights[0])
	}
	if sample.Lights[1].Shadowed {
		t.Error("Expected the side light to reach the floor")
	}
	for i, l := range s.Lights {
		want := Contribution(sample.Hit, l, s)
		if !sample.Lights[i].Color.ApproxEqual(want, 1e-12) {
			t.Errorf("Light %d: expected %v, got %v", i, want, sample.Lights[i].Color)
		}
	}
}
