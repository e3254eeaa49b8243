package output

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 5, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(40 * x), G: uint8(80 * y), B: 255, A: 255})
		}
	}
	return img
}

func samePixels(t *testing.T, want *image.NRGBA, got image.Image) {
	t.Helper()
	if got.Bounds().Dx() != want.Bounds().Dx() || got.Bounds().Dy() != want.Bounds().Dy() {
		t.Fatalf("Expected bounds %v, got %v", want.Bounds(), got.Bounds())
	}
	gb := got.Bounds()
	for y := 0; y < want.Bounds().Dy(); y++ {
		for x := 0; x < want.Bounds().Dx(); x++ {
			c := color.NRGBAModel.Convert(got.At(gb.Min.X+x, gb.Min.Y+y)).(color.NRGBA)
			if c != want.NRGBAAt(x, y) {
				t.Fatalf("Pixel (%d,%d): expected %v, got %v", x, y, want.NRGBAAt(x, y), c)
			}
		}
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	img := testImage()

	decoders := map[Format]func(*bytes.Reader) (image.Image, error){
		PNG:  func(r *bytes.Reader) (image.Image, error) { return png.Decode(r) },
		TGA:  func(r *bytes.Reader) (image.Image, error) { return tga.Decode(r) },
		BMP:  func(r *bytes.Reader) (image.Image, error) { return bmp.Decode(r) },
		TIFF: func(r *bytes.Reader) (image.Image, error) { return tiff.Decode(r) },
	}

	for f, decode := range decoders {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, img, f); err != nil {
				t.Fatalf("Encode: %v", err)
			}
			got, err := decode(bytes.NewReader(buf.Bytes()))
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			samePixels(t, img, got)
		})
	}
}

func TestEncode_WebP(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, testImage(), WebP); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	b := buf.Bytes()
	if len(b) < 12 || string(b[0:4]) != "RIFF" || string(b[8:12]) != "WEBP" {
		t.Errorf("Expected a RIFF/WEBP container, got % x", b[:min(len(b), 12)])
	}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{"png": PNG, ".PNG": PNG, ".webp": WebP, "tga": TGA, ".bmp": BMP, ".tif": TIFF, "tiff": TIFF}
	for in, want := range tests {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q): expected %s, got %s (%v)", in, want, got, err)
		}
	}
	if _, err := ParseFormat(".jpg"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Expected ErrUnknownFormat, got %v", err)
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "frame.png")

	if err := Save(path, testImage()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	got, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	samePixels(t, testImage(), got)

	if err := Save(filepath.Join(dir, "frame.gif"), testImage()); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Expected ErrUnknownFormat, got %v", err)
	}
}

func TestResize(t *testing.T) {
	img := testImage()
	if Resize(img, 1) != img {
		t.Error("Expected factor 1 to return the input")
	}
	if Resize(img, 0) != img {
		t.Error("Expected an empty target to return the input")
	}

	big := Resize(img, 2)
	if big.Bounds().Dx() != 10 || big.Bounds().Dy() != 6 {
		t.Errorf("Expected 10x6, got %v", big.Bounds())
	}
	small := Resize(img, 0.5)
	if small.Bounds().Dx() != 3 || small.Bounds().Dy() != 2 {
		t.Errorf("Expected 3x2, got %v", small.Bounds())
	}
}
