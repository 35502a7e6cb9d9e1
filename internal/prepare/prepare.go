// Package prepare normalizes arbitrary in-memory images into the form the
// OCR engine accepts: a supported container format, an RGB-family color
// representation, and no alpha band.
package prepare

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Register WEBP format decoder; BMP and TIFF come in with imaging
)

// ErrUnsupportedFormat indicates an image whose declared container format is
// outside the set the engine accepts.
var ErrUnsupportedFormat = errors.New("unsupported image format/type")

// supportedFormats is the set of container formats the engine reads.
// Format names are lower-case, matching what image.Decode reports.
var supportedFormats = map[string]bool{
	"jpeg": true,
	"png":  true,
	"pbm":  true,
	"pgm":  true,
	"ppm":  true,
	"tiff": true,
	"bmp":  true,
	"gif":  true,
	"webp": true,
}

// canonicalFormat maps common aliases to the names in supportedFormats.
func canonicalFormat(format string) string {
	f := strings.ToLower(format)
	switch f {
	case "jpg":
		return "jpeg"
	case "tif":
		return "tiff"
	}
	return f
}

// Decode decodes an encoded raster into an image along with the format name
// reported by the registered decoder.
func Decode(data []byte) (image.Image, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}
	return img, format, nil
}

// Normalize converts an arbitrary image into the form handed to the engine.
//
// The declared format is validated against the engine's supported set; an
// empty declared format defaults to "png". Images whose pixel representation
// is not an RGB-family type are cloned to NRGBA, and any image carrying
// transparency is composited over an opaque white canvas so the alpha band
// never reaches the engine. The caller's image is never modified; a derived
// copy is returned whenever conversion is needed.
func Normalize(img image.Image, declared string) (image.Image, string, error) {
	format := canonicalFormat(declared)
	if format == "" {
		format = "png"
	}
	if !supportedFormats[format] {
		return nil, "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, declared)
	}

	switch img.(type) {
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64:
		// Already an RGB-family representation.
	default:
		img = imaging.Clone(img)
	}

	if o, ok := img.(interface{ Opaque() bool }); ok && !o.Opaque() {
		background := imaging.New(img.Bounds().Dx(), img.Bounds().Dy(), color.White)
		img = imaging.Overlay(background, img, image.Point{}, 1.0)
	}

	return img, format, nil
}

// Save encodes a normalized image to path using the codec for the chosen
// format. Formats without a Go encoder (webp and the PNM family) are written
// as PNG bytes; the engine detects input format by content, so the container
// on disk is an implementation detail.
func Save(img image.Image, format, path string) error {
	var enc imaging.Format
	switch canonicalFormat(format) {
	case "jpeg":
		enc = imaging.JPEG
	case "gif":
		enc = imaging.GIF
	case "tiff":
		enc = imaging.TIFF
	case "bmp":
		enc = imaging.BMP
	default:
		enc = imaging.PNG
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}
	defer f.Close()

	if err := imaging.Encode(f, img, enc); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return nil
}
