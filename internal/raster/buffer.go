package raster

import (
	"image"
	"math"

	"scene-raytracer/internal/mathutil"
)

// FrameBuffer holds the rendering target as a flat RGBA slice for cache locality.
type FrameBuffer struct {
	Width  int
	Height int
	Color  []uint8 // RGBA interleaved, len = W*H*4
}

// NewFrameBuffer allocates an opaque white buffer.
func NewFrameBuffer(w, h int) *FrameBuffer {
	color := make([]uint8, w*h*4)
	for i := range color {
		color[i] = 255
	}
	return &FrameBuffer{Width: w, Height: h, Color: color}
}

// PutPixel sets one opaque pixel. Coordinates outside the buffer are ignored.
func (fb *FrameBuffer) PutPixel(row, col int, r, g, b uint8) {
	if row < 0 || row >= fb.Height || col < 0 || col >= fb.Width {
		return
	}
	i := 4 * (fb.Width*row + col)
	fb.Color[i] = r
	fb.Color[i+1] = g
	fb.Color[i+2] = b
	fb.Color[i+3] = 255
}

// At returns the RGB channels at (row, col).
func (fb *FrameBuffer) At(row, col int) (r, g, b uint8) {
	i := 4 * (fb.Width*row + col)
	return fb.Color[i], fb.Color[i+1], fb.Color[i+2]
}

// Image copies the buffer into an NRGBA image.
func (fb *FrameBuffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	copy(img.Pix, fb.Color)
	return img
}

// Composite clamps an accumulated color to [0,1] per channel and
// converts it to rounded 0-255 values.
func Composite(c mathutil.Vec3) (r, g, b uint8) {
	return clamp8(c.X * 255), clamp8(c.Y * 255), clamp8(c.Z * 255)
}

func clamp8(v float64) uint8 {
	if !(v > 0) {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(math.Round(v))
}
