package main

import (
	"flag"
	"fmt"
	"os"

	"scene-raytracer/internal/geometry"
	"scene-raytracer/internal/raster"
	"scene-raytracer/internal/scenefile"
	"scene-raytracer/internal/shade"
)

func main() {
	sceneFile := flag.String("scene", "", "Scene file to inspect")
	row := flag.Int("row", -1, "Pixel row to trace (default: image center)")
	col := flag.Int("col", -1, "Pixel column to trace (default: image center)")
	flag.Parse()

	if *sceneFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: inspect -scene <file.json> [-row N -col N]")
		os.Exit(1)
	}

	s, err := scenefile.Load(*sceneFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cam := s.Camera
	fmt.Printf("=== %s ===\n", *sceneFile)
	fmt.Printf("Image: %dx%d, plane %.3f x %.3f at %.3f\n",
		cam.Width, cam.Height, cam.Plane.Width, cam.Plane.Height, cam.Plane.Distance)
	fmt.Printf("Eye: %v\n  u=%v\n  v=%v\n  w=%v\n", cam.Eye, cam.U, cam.V, cam.W)
	counts := s.Counts()
	for _, k := range []geometry.Kind{geometry.KindSphere, geometry.KindSheet, geometry.KindBox} {
		fmt.Printf("  %-6s x%d\n", k, counts[k])
	}
	fmt.Printf("Lights: %d, single-sided: %v\n", len(s.Lights), s.SingleSided)

	r, c := *row, *col
	if r < 0 {
		r = cam.Height / 2
	}
	if c < 0 {
		c = cam.Width / 2
	}
	if r >= cam.Height || c >= cam.Width {
		fmt.Fprintf(os.Stderr, "Error: pixel (%d,%d) outside %dx%d\n", r, c, cam.Width, cam.Height)
		os.Exit(1)
	}

	ray := cam.PixelToRay(r, c)
	sample := shade.Explain(ray, s)

	fmt.Printf("\nPixel (%d,%d)\n", r, c)
	fmt.Printf("  ray: origin=%v dir=%v\n", ray.Origin, ray.Dir)
	fmt.Printf("  hits along ray: %d\n", sample.Hits)
	if !sample.Found {
		fmt.Println("  nearest: none (background)")
	} else {
		h := sample.Hit
		fmt.Printf("  nearest: %s t=%.5f span=[%.5f, %.5f]\n", h.Geometry.Kind(), h.T, h.Span.Near, h.Span.Far)
		fmt.Printf("  point=%v normal=%v\n", h.Point, h.Normal)
		for i, l := range sample.Lights {
			if l.Shadowed {
				fmt.Printf("  light %d at %v: shadowed\n", i, l.Light.Position)
				continue
			}
			fmt.Printf("  light %d at %v: diffuse=%v specular=%v → %v\n",
				i, l.Light.Position, l.Diffuse, l.Specular, l.Color)
		}
	}

	cr, cg, cb := raster.Composite(sample.Color)
	fmt.Printf("  color=%v → (%d, %d, %d)\n", sample.Color, cr, cg, cb)
}
