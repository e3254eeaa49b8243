package output

import (
	"image"

	"golang.org/x/image/draw"
)

// Resize scales img by factor with Catmull-Rom filtering.
// A factor of 1 (or anything that would produce an empty image) returns img unchanged.
func Resize(img *image.NRGBA, factor float64) *image.NRGBA {
	b := img.Bounds()
	w := int(float64(b.Dx())*factor + 0.5)
	h := int(float64(b.Dy())*factor + 0.5)
	if factor == 1 || w <= 0 || h <= 0 {
		return img
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
