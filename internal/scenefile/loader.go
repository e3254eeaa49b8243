// Package scenefile reads JSON scene descriptions into a validated scene.Scene.
package scenefile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"scene-raytracer/internal/camera"
	"scene-raytracer/internal/geometry"
	"scene-raytracer/internal/mathutil"
	"scene-raytracer/internal/scene"
)

var ErrMissingField = errors.New("scenefile: missing required field")

// Load reads and builds the scene at path.
func Load(path string) (*scene.Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenefile: read %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scenefile: %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and builds a scene from JSON bytes.
func Parse(data []byte) (*scene.Scene, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads one scene description from r.
func Decode(r io.Reader) (*scene.Scene, error) {
	var f File
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("scenefile: parse: %w", err)
	}
	return f.Build()
}

// Build converts the description into primitives and validates the result.
func (f *File) Build() (*scene.Scene, error) {
	if f.Eye == nil || f.EyeOut == nil || f.Up == nil {
		return nil, fmt.Errorf("%w: v3_eye, v3_eyeOut and v3_up", ErrMissingField)
	}

	cam, err := camera.New(
		mathutil.Vec3(*f.Eye), mathutil.Vec3(*f.EyeOut), mathutil.Vec3(*f.Up),
		camera.ImagePlane{
			Distance: f.ImagePlaneDistance,
			Width:    f.ImagePlaneWidth,
			Height:   f.ImagePlaneHeight,
		},
		f.Width, f.Height,
	)
	if err != nil {
		return nil, err
	}

	geoms := make([]geometry.Geometry, 0, len(f.Geometries))
	for i, sh := range f.Geometries {
		g, err := sh.Build()
		if err != nil {
			return nil, &scene.GeometryError{Index: i, Err: err}
		}
		geoms = append(geoms, g)
	}

	lights := make([]scene.Light, 0, len(f.Lights))
	for i, l := range f.Lights {
		if l.Position == nil {
			return nil, fmt.Errorf("%w: light %d v3_position", ErrMissingField, i)
		}
		lights = append(lights, scene.Light{Position: mathutil.Vec3(*l.Position), Intensity: l.Intensity})
	}

	s, err := scene.New(cam, geoms, lights)
	if err != nil {
		return nil, err
	}
	s.SingleSided = f.SingleSided
	return s, nil
}

// Build constructs the primitive named by s_type.
func (sh Shape) Build() (geometry.Geometry, error) {
	mat, err := sh.Material.Build()
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(sh.Type) {
	case "sphere":
		if sh.Center == nil {
			return nil, fmt.Errorf("%w: sphere v3_center", ErrMissingField)
		}
		return geometry.NewSphere(mathutil.Vec3(*sh.Center), sh.Radius, mat)
	case "sheet":
		if sh.Pt0 == nil || sh.Pt1 == nil || sh.Pt2 == nil {
			return nil, fmt.Errorf("%w: sheet v3_pt0, v3_pt1 and v3_pt2", ErrMissingField)
		}
		return geometry.NewSheet(mathutil.Vec3(*sh.Pt0), mathutil.Vec3(*sh.Pt1), mathutil.Vec3(*sh.Pt2), mat)
	case "box":
		if sh.MinPt == nil || sh.Dim == nil {
			return nil, fmt.Errorf("%w: box v3_minPt and v3_dim", ErrMissingField)
		}
		return geometry.NewBox(mathutil.Vec3(*sh.MinPt), mathutil.Vec3(*sh.Dim), mat)
	}
	return nil, fmt.Errorf("%w: %q", geometry.ErrUnsupportedGeometry, sh.Type)
}

func (m Material) Build() (geometry.Material, error) {
	if m.Diffuse == nil {
		return geometry.Material{}, fmt.Errorf("%w: j_material.v3_diffuse", ErrMissingField)
	}
	diffuse := mathutil.Vec3(*m.Diffuse)
	if m.Specularity == nil || *m.Specularity == -1 {
		return geometry.Matte(diffuse), nil
	}
	return geometry.Shiny(diffuse, *m.Specularity), nil
}
