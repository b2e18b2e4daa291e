package record

import (
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
)

// Output formats.
const (
	FormatWebP = "webp"
	FormatTGA  = "tga"
)

// Ext returns the file extension for format, including the dot.
func Ext(format string) (string, error) {
	switch strings.ToLower(format) {
	case FormatWebP:
		return ".webp", nil
	case FormatTGA:
		return ".tga", nil
	}
	return "", fmt.Errorf("record: unknown format %q", format)
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, format string) error {
	switch strings.ToLower(format) {
	case FormatWebP:
		if err := nativewebp.Encode(w, img, nil); err != nil {
			return fmt.Errorf("WebP encode: %w", err)
		}
	case FormatTGA:
		if err := tga.Encode(w, img); err != nil {
			return fmt.Errorf("TGA encode: %w", err)
		}
	default:
		return fmt.Errorf("record: unknown format %q", format)
	}
	return nil
}
