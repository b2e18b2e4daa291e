// Package present blits a logical low-resolution frame onto a device canvas
// at an integer-scaled, centered viewport.
package present

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/draw"

	"lowres3d/internal/screen"
)

// Filter selects the scaler used for the blit.
type Filter int

const (
	// Nearest keeps hard pixel edges.
	Nearest Filter = iota
	// Smooth scales with premultiplied-alpha Catmull-Rom filtering.
	Smooth
)

// ParseFilter maps "nearest" or "smooth" to a Filter.
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(s) {
	case "", "nearest":
		return Nearest, nil
	case "smooth":
		return Smooth, nil
	}
	return Nearest, fmt.Errorf("present: unknown filter %q", s)
}

// Border is the color outside the viewport.
var Border = color.NRGBA{0, 0, 0, 255}

// Letterbox returns a cw x ch canvas with frame scaled into vp and the
// remaining area filled with Border. Parts of vp outside the canvas are cropped.
func Letterbox(frame *image.NRGBA, vp screen.Viewport, cw, ch int, f Filter) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, cw, ch))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(Border), image.Point{}, draw.Src)

	switch f {
	case Smooth:
		scaled := scaleSmooth(frame, vp.Width, vp.Height)
		draw.Draw(dst, vp.Rect(), scaled, image.Point{}, draw.Src)
	default:
		draw.NearestNeighbor.Scale(dst, vp.Rect(), frame, frame.Bounds(), draw.Src, nil)
	}
	return dst
}

// scaleSmooth resizes with premultiplied-alpha Catmull-Rom filtering, which
// avoids dark halos at transparent edges.
func scaleSmooth(img *image.NRGBA, w, h int) *image.NRGBA {
	b := img.Bounds()

	// Premultiply alpha
	premul := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			si := img.PixOffset(x, y)
			di := premul.PixOffset(x, y)
			a := float32(img.Pix[si+3]) / 255
			premul.Pix[di] = uint8(float32(img.Pix[si])*a + 0.5)
			premul.Pix[di+1] = uint8(float32(img.Pix[si+1])*a + 0.5)
			premul.Pix[di+2] = uint8(float32(img.Pix[si+2])*a + 0.5)
			premul.Pix[di+3] = img.Pix[si+3]
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), premul, premul.Bounds(), draw.Src, nil)

	// Unpremultiply alpha
	result := image.NewNRGBA(dst.Bounds())
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			si := dst.PixOffset(x, y)
			di := result.PixOffset(x, y)
			a := float32(dst.Pix[si+3])
			if a > 1 {
				inv := 255 / a
				result.Pix[di] = clamp8(float32(dst.Pix[si]) * inv)
				result.Pix[di+1] = clamp8(float32(dst.Pix[si+1]) * inv)
				result.Pix[di+2] = clamp8(float32(dst.Pix[si+2]) * inv)
			}
			result.Pix[di+3] = dst.Pix[si+3]
		}
	}
	return result
}

func clamp8(v float32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
