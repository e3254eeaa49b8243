// Package output writes rendered frames to disk in the format named by the file extension.
package output

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

var ErrUnknownFormat = errors.New("output: unknown image format")

type Format string

const (
	PNG  Format = "png"
	WebP Format = "webp"
	TGA  Format = "tga"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
)

// Formats lists every supported format.
var Formats = []Format{PNG, WebP, TGA, BMP, TIFF}

// ParseFormat accepts a format name or extension, with or without the dot.
func ParseFormat(s string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(s), ".") {
	case "png":
		return PNG, nil
	case "webp":
		return WebP, nil
	case "tga":
		return TGA, nil
	case "bmp":
		return BMP, nil
	case "tif", "tiff":
		return TIFF, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// Encode writes img to w.
func Encode(w io.Writer, img image.Image, f Format) error {
	var err error
	switch f {
	case PNG:
		err = png.Encode(w, img)
	case WebP:
		err = nativewebp.Encode(w, img, nil)
	case TGA:
		err = tga.Encode(w, img)
	case BMP:
		err = bmp.Encode(w, img)
	case TIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	if err != nil {
		return fmt.Errorf("output: %s encode: %w", f, err)
	}
	return nil
}

// Save writes img to path, creating parent directories.
// The format comes from the path's extension.
func Save(path string, img image.Image) error {
	f, err := ParseFormat(filepath.Ext(path))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("output: mkdir %s: %w", filepath.Dir(path), err)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("output: create %s: %w", path, err)
	}
	if err := Encode(out, img, f); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
