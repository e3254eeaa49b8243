// Package camera builds the pinhole camera basis and maps pixels to primary rays.
package camera

import (
	"errors"
	"fmt"
	"math"

	"scene-raytracer/internal/geometry"
	"scene-raytracer/internal/mathutil"
)

var (
	ErrDegenerateBasis   = errors.New("camera: look direction is zero or parallel to up")
	ErrInvalidImagePlane = errors.New("camera: image plane and resolution must be positive")
)

// Basis is the camera frame. W points away from the view direction.
type Basis struct {
	Eye mathutil.Vec3
	U   mathutil.Vec3
	V   mathutil.Vec3
	W   mathutil.Vec3
}

// Build returns the orthonormal frame for a camera at eye looking along look.
// The cross products use the unnormalized vectors; all three are normalized last.
func Build(eye, look, up mathutil.Vec3) (Basis, error) {
	w := look.Scale(-1)
	u := up.Cross(w)
	v := w.Cross(u)

	if w.Len() == 0 || up.Len() == 0 || u.Len() <= 1e-9*up.Len()*w.Len() {
		return Basis{}, fmt.Errorf("%w: look %v, up %v", ErrDegenerateBasis, look, up)
	}

	return Basis{
		Eye: eye,
		U:   u.Normalize(),
		V:   v.Normalize(),
		W:   w.Normalize(),
	}, nil
}

// ImagePlane is the physical rectangle the primary rays pass through.
type ImagePlane struct {
	Distance float64
	Width    float64
	Height   float64
}

// Camera maps (row, col) pixel coordinates to primary rays.
type Camera struct {
	Basis
	Plane  ImagePlane
	Width  int // pixels
	Height int // pixels

	firstPixel mathutil.Vec3 // center of cell (0, 0)
	cellU      mathutil.Vec3 // one column step along +U
	cellV      mathutil.Vec3 // one row step along -V
}

// New builds the basis and lays out the pixel grid on the image plane.
func New(eye, look, up mathutil.Vec3, plane ImagePlane, width, height int) (*Camera, error) {
	if !(plane.Distance > 0 && plane.Width > 0 && plane.Height > 0) ||
		math.IsInf(plane.Distance+plane.Width+plane.Height, 0) || width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: plane %+v, %dx%d", ErrInvalidImagePlane, plane, width, height)
	}

	b, err := Build(eye, look, up)
	if err != nil {
		return nil, err
	}

	sqWidth := plane.Width / float64(width)
	sqHeight := plane.Height / float64(height)

	topLeft := b.Eye.
		Sub(b.W.Scale(plane.Distance)).
		Add(b.V.Scale(plane.Height / 2)).
		Sub(b.U.Scale(plane.Width / 2))
	first := topLeft.
		Sub(b.V.Scale(sqHeight / 2)).
		Add(b.U.Scale(sqWidth / 2))

	return &Camera{
		Basis:      b,
		Plane:      plane,
		Width:      width,
		Height:     height,
		firstPixel: first,
		cellU:      b.U.Scale(sqWidth),
		cellV:      b.V.Scale(-sqHeight),
	}, nil
}

// PixelToRay returns the ray from the eye through the center of pixel (row, col).
func (c *Camera) PixelToRay(row, col int) geometry.Ray {
	target := c.firstPixel.
		Add(c.cellV.Scale(float64(row))).
		Add(c.cellU.Scale(float64(col)))
	return geometry.NewRay(c.Eye, target.Sub(c.Eye))
}
