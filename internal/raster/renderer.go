// Package raster draws a billboard scene into a small software framebuffer
// using a view-projection matrix produced by the camera.
package raster

import (
	"image"
	"image/color"

	"github.com/chewxy/math32"

	"lowres3d/internal/mathutil"
	"lowres3d/internal/scene"
)

// Clip-space w at or below this is treated as behind the eye.
const minClipW = 1e-6

// NDC coordinates beyond this are rejected before the integer bounding box
// is computed.
const guardBand = 64

// Unit quad shared by every billboard, drawn as two triangles.
var (
	quadVerts = [4]mathutil.Vec3{
		{-1, 1, 0},
		{1, 1, 0},
		{-1, -1, 0},
		{1, -1, 0},
	}
	quadTris = [2][3]int{{0, 2, 1}, {1, 2, 3}}
)

// Options controls a render.
type Options struct {
	Width, Height int
	Background    color.NRGBA
	Fog           Fog
}

// Render draws sc with the view-projection vp into a new Width x Height image.
func Render(sc *scene.Scene, vp mathutil.Mat4, opts Options) *image.NRGBA {
	fb := NewFrameBuffer(opts.Width, opts.Height)
	fb.Clear(opts.Background)
	Draw(fb, sc, vp, opts.Fog)
	return fb.Image()
}

// Draw rasterizes every billboard of sc into fb without clearing it.
func Draw(fb *FrameBuffer, sc *scene.Scene, vp mathutil.Mat4, fog Fog) {
	if sc == nil {
		return
	}
	w, h := float32(fb.Width), float32(fb.Height)

	for _, b := range sc.Billboards {
		mvp := mathutil.Mat4Mul(vp, b.Model())

		var clip [4]mathutil.Vec4
		for i, v := range quadVerts {
			clip[i] = mvp.Apply(v.Vec4(1))
		}

		for _, tri := range quadTris {
			var sv [3]Vertex
			var depth float32
			ok := true
			for k, idx := range tri {
				c := clip[idx]
				if !(c[3] > minClipW) {
					ok = false
					break
				}
				ndc, _ := c.PerspectiveDivide()
				if !(math32.Abs(ndc[0]) <= guardBand && math32.Abs(ndc[1]) <= guardBand) {
					ok = false
					break
				}
				sv[k] = Vertex{
					X: (ndc[0] + 1) / 2 * w,
					Y: (1 - ndc[1]) / 2 * h,
					Z: ndc[2],
				}
				depth += c[3]
			}
			if !ok {
				continue
			}
			RasterizeTriangle(fb, sv, fog.Apply(b.Color, depth/3))
		}
	}
}
