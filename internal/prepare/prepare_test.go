package prepare

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// newGradientImage creates an opaque HSV gradient so conversion tests cover
// more than a single flat color.
func newGradientImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := colorful.Hsv(float64(x)/float64(width)*360.0, 1, 1)
			r, g, b := c.RGB255()
			img.SetNRGBA(x, y, color.NRGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}

func isRGBFamily(img image.Image) bool {
	switch img.(type) {
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64:
		return true
	}
	return false
}

func TestNormalize_DefaultsToPNG(t *testing.T) {
	img := newGradientImage(32, 16)

	out, format, err := Normalize(img, "")
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if format != "png" {
		t.Errorf("format = %q, want png", format)
	}
	if out != image.Image(img) {
		t.Error("opaque RGB image should pass through without copying")
	}
}

func TestNormalize_CanonicalizesAliases(t *testing.T) {
	img := newGradientImage(8, 8)

	for declared, want := range map[string]string{
		"JPG":  "jpeg",
		"jpeg": "jpeg",
		"TIF":  "tiff",
		"WEBP": "webp",
	} {
		_, format, err := Normalize(img, declared)
		if err != nil {
			t.Fatalf("Normalize(%q) failed: %v", declared, err)
		}
		if format != want {
			t.Errorf("Normalize(%q) format = %q, want %q", declared, format, want)
		}
	}
}

func TestNormalize_RejectsUnsupportedFormat(t *testing.T) {
	img := newGradientImage(8, 8)

	_, _, err := Normalize(img, "svg")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("Normalize(svg) error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestNormalize_ConvertsToRGBFamily(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			gray.SetGray(x, y, color.Gray{Y: uint8(x * 25)})
		}
	}

	out, _, err := Normalize(gray, "")
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if !isRGBFamily(out) {
		t.Errorf("normalized image has type %T, want an RGB-family type", out)
	}
}

func TestNormalize_FlattensAlpha(t *testing.T) {
	img := newGradientImage(16, 16)
	// Pixel (0,0) fully transparent, pixel (1,0) fully opaque.
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 0, B: 0, A: 0})
	img.SetNRGBA(1, 0, color.NRGBA{R: 0, G: 128, B: 255, A: 255})
	wantOpaque := img.NRGBAAt(1, 0)

	out, _, err := Normalize(img, "")
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	o, ok := out.(interface{ Opaque() bool })
	if !ok || !o.Opaque() {
		t.Fatal("normalized image still carries an alpha band")
	}

	r, g, b, _ := out.At(0, 0).RGBA()
	if r>>8 != 255 || g>>8 != 255 || b>>8 != 255 {
		t.Errorf("fully transparent pixel = (%d,%d,%d), want white", r>>8, g>>8, b>>8)
	}

	r, g, b, _ = out.At(1, 0).RGBA()
	got := color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 255}
	if got != wantOpaque {
		t.Errorf("opaque pixel changed: got %v, want %v", got, wantOpaque)
	}
}

func TestDecode_ReportsFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, newGradientImage(12, 12)); err != nil {
		t.Fatalf("failed to encode fixture: %v", err)
	}

	img, format, err := Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if format != "png" {
		t.Errorf("format = %q, want png", format)
	}
	if img.Bounds().Dx() != 12 || img.Bounds().Dy() != 12 {
		t.Errorf("unexpected bounds %v", img.Bounds())
	}
}

func TestDecode_RejectsGarbage(t *testing.T) {
	if _, _, err := Decode([]byte("not an image")); err == nil {
		t.Fatal("Decode should fail for non-image data")
	}
}

func TestSave_WritesDecodableFile(t *testing.T) {
	img := newGradientImage(20, 10)

	for _, format := range []string{"png", "jpeg", "bmp", "gif", "tiff", "webp", "ppm"} {
		path := filepath.Join(t.TempDir(), "out."+format)
		if err := Save(img, format, path); err != nil {
			t.Fatalf("Save(%q) failed: %v", format, err)
		}

		f, err := os.Open(path)
		if err != nil {
			t.Fatalf("failed to open saved file: %v", err)
		}
		decoded, _, err := image.Decode(f)
		f.Close()
		if err != nil {
			t.Fatalf("saved %q file is not decodable: %v", format, err)
		}
		if decoded.Bounds() != img.Bounds() {
			t.Errorf("saved %q bounds = %v, want %v", format, decoded.Bounds(), img.Bounds())
		}
	}
}

func TestEnhance_KeepsGeometryAndRGB(t *testing.T) {
	img := newGradientImage(30, 15)

	out := Enhance(img)
	if out.Bounds().Dx() != 30 || out.Bounds().Dy() != 15 {
		t.Errorf("Enhance changed bounds: %v", out.Bounds())
	}
	if !isRGBFamily(out) {
		t.Errorf("Enhance returned %T, want an RGB-family type", out)
	}
}
