package raster

import (
	"image/color"

	"github.com/chewxy/math32"
)

// Vertex is a projected vertex: X, Y in pixels, Z in NDC depth.
type Vertex struct {
	X, Y, Z float32
}

// RasterizeTriangle fills a flat-colored triangle with a depth test.
// Either winding is accepted. Pixels are sampled at their centers and a
// fragment is kept when its depth is within [-1, 1] and nearer than the
// stored one.
func RasterizeTriangle(fb *FrameBuffer, v [3]Vertex, c color.NRGBA) {
	x0, y0, z0 := v[0].X, v[0].Y, v[0].Z
	x1, y1, z1 := v[1].X, v[1].Y, v[1].Z
	x2, y2, z2 := v[2].X, v[2].Y, v[2].Z

	// Bounding box
	minX := max(int(math32.Floor(min(x0, x1, x2))), 0)
	maxX := min(int(math32.Ceil(max(x0, x1, x2))), fb.Width-1)
	minY := max(int(math32.Floor(min(y0, y1, y2))), 0)
	maxY := min(int(math32.Ceil(max(y0, y1, y2))), fb.Height-1)
	if minX > maxX || minY > maxY {
		return
	}

	// Barycentric setup
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1 / det

	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	for sy := minY; sy <= maxY; sy++ {
		dsy := float32(sy) + 0.5 - y2
		rowOff := sy * fb.Width
		for sx := minX; sx <= maxX; sx++ {
			dsx := float32(sx) + 0.5 - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1 - w0 - w1
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			z := w0*z0 + w1*z1 + w2*z2
			zIdx := rowOff + sx
			if z < -1 || z > 1 || z >= fb.ZBuf[zIdx] {
				continue
			}
			fb.ZBuf[zIdx] = z

			pxIdx := zIdx * 4
			fb.Color[pxIdx] = c.R
			fb.Color[pxIdx+1] = c.G
			fb.Color[pxIdx+2] = c.B
			fb.Color[pxIdx+3] = c.A
		}
	}
}
