package raster

import (
	"image/color"

	"lowres3d/internal/mathutil"
)

// Fog fades geometry towards Color between Near and Far, measured as
// view-space depth (clip w). A zero Fog, or Far <= Near, disables it.
type Fog struct {
	Near, Far float32
	Color     color.NRGBA
}

// Enabled reports whether the fog range is usable.
func (f Fog) Enabled() bool {
	return f.Far > f.Near
}

// Factor returns how much of the fog color to mix in at depth w, in [0, 1].
func (f Fog) Factor(w float32) float32 {
	if !f.Enabled() {
		return 0
	}
	return mathutil.Clamp((w-f.Near)/(f.Far-f.Near), 0, 1)
}

// Apply mixes c towards the fog color at depth w. Alpha is kept.
func (f Fog) Apply(c color.NRGBA, w float32) color.NRGBA {
	t := f.Factor(w)
	if t == 0 {
		return c
	}
	return color.NRGBA{
		R: mix(c.R, f.Color.R, t),
		G: mix(c.G, f.Color.G, t),
		B: mix(c.B, f.Color.B, t),
		A: c.A,
	}
}

func mix(a, b uint8, t float32) uint8 {
	v := float32(a) + (float32(b)-float32(a))*t
	return uint8(mathutil.Clamp(v, 0, 255) + 0.5)
}
