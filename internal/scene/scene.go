// Package scene holds the billboard field drawn by the renderers: a set of
// camera-independent upright quads scattered over the ground plane.
package scene

import (
	"image/color"
	"math/rand/v2"

	"github.com/chewxy/math32"

	"lowres3d/internal/mathutil"
)

// Field bounds for generated billboards. X spans ±FieldHalfWidth around the
// origin, Z spans ±FieldHalfDepth. Drifting billboards wrap at WrapDepth.
const (
	FieldHalfWidth = 20
	FieldHalfDepth = 200
	WrapDepth      = 500
	MaxDrift       = 5
)

// Billboard is one upright quad in world space. Its local quad spans
// [-1, 1] on X and Y and is scaled by Size before being placed at Position.
type Billboard struct {
	Position mathutil.Vec3
	Size     [2]float32
	Color    color.NRGBA

	// Drift is the speed along +Z in units per second.
	Drift float32
}

// Model returns the billboard's model transform, T(position)·S(size).
func (b Billboard) Model() mathutil.Mat4 {
	m, _ := mathutil.NewChain().
		Translate(b.Position).
		Scale(mathutil.Vec3{b.Size[0], b.Size[1], 1}).
		Mat4()
	return m
}

// Scene is an ordered list of billboards.
type Scene struct {
	Billboards []Billboard
}

// Generate scatters n billboards over the field. The same seed always yields
// the same scene.
func Generate(n int, seed uint64) *Scene {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	s := &Scene{Billboards: make([]Billboard, n)}
	for i := range s.Billboards {
		x := FieldHalfWidth - 2*rng.Float32()*FieldHalfWidth
		z := FieldHalfDepth - 2*rng.Float32()*FieldHalfDepth
		h := 6 + 6*rng.Float32()
		s.Billboards[i] = Billboard{
			Position: mathutil.Vec3{x, h, z},
			Size:     [2]float32{h * 0.5, h},
			Color:    palette[rng.IntN(len(palette))],
			Drift:    MaxDrift * rng.Float32(),
		}
	}
	return s
}

// Advance moves every billboard along +Z by its drift speed, wrapping at
// WrapDepth. Non-finite or negative dt is ignored.
func (s *Scene) Advance(dt float32) {
	if !(dt > 0) || math32.IsInf(dt, 0) {
		return
	}
	for i := range s.Billboards {
		b := &s.Billboards[i]
		b.Position[2] = math32.Mod(b.Position[2]+b.Drift*dt, WrapDepth)
	}
}

// At returns a copy of the scene advanced by t seconds.
func (s *Scene) At(t float32) *Scene {
	c := s.Clone()
	c.Advance(t)
	return c
}

// Clone returns a deep copy, so frames rendered concurrently can each own
// a snapshot of the field.
func (s *Scene) Clone() *Scene {
	c := &Scene{Billboards: make([]Billboard, len(s.Billboards))}
	copy(c.Billboards, s.Billboards)
	return c
}

var palette = []color.NRGBA{
	{0xe0, 0x6c, 0x4f, 0xff},
	{0x4f, 0xa3, 0xe0, 0xff},
	{0x7b, 0xc9, 0x5c, 0xff},
	{0xf2, 0xd1, 0x5c, 0xff},
	{0xb0, 0x7c, 0xd9, 0xff},
	{0xd9, 0xd9, 0xd9, 0xff},
}
