// Package camera implements a free-flying first-person camera: WASD-style
// movement in the horizontal plane, vertical movement along world Y, and
// pointer look with a clamped pitch.
package camera

import (
	"fmt"

	"github.com/chewxy/math32"

	"lowres3d/internal/control"
	"lowres3d/internal/mathutil"
)

// Params configures a Camera. Angles are in degrees, speeds per second.
type Params struct {
	Position mathutil.Vec3

	// Initial orientation. Yaw turns about world Y, pitch about the camera's
	// X axis (positive looks up), roll about its Z axis.
	Yaw, Pitch, Roll float32

	// Speed per axis: [0] strafe, [1] vertical, [2] forward/back.
	Speed mathutil.Vec3

	// RotationSpeed is the yaw rate applied while a turn key is held.
	RotationSpeed float32

	// Sensitivity scales pointer pixels to degrees.
	Sensitivity float32

	// PitchLimit bounds pitch to ±PitchLimit from the horizon.
	PitchLimit float32

	FOV, Aspect, Near, Far float32
}

// DefaultParams matches the 320x200 sprite field demo: the camera hovers
// above the origin, 500 units back, looking down -Z.
func DefaultParams() Params {
	return Params{
		Position:      mathutil.Vec3{0, 10, 500},
		Speed:         mathutil.Vec3{40, 40, 40},
		RotationSpeed: 90,
		Sensitivity:   0.8,
		PitchLimit:    60,
		FOV:           110,
		Aspect:        320.0 / 200.0,
		Near:          1,
		Far:           1000,
	}
}

// Camera owns position and orientation and is advanced once per frame.
// Local -Z is the viewing direction, local +X points right.
type Camera struct {
	params Params

	position    mathutil.Vec3
	orientation mathutil.Quat
	pitch       float32 // radians above the horizon

	projection mathutil.Mat4
	last       mathutil.Mat4
}

// New creates a camera. It fails if the projection parameters are degenerate
// or the pitch limit is outside (0, 90].
func New(p Params) (*Camera, error) {
	if p.PitchLimit <= 0 || p.PitchLimit > 90 {
		return nil, fmt.Errorf("camera: pitch limit %v out of range (0, 90]", p.PitchLimit)
	}
	proj, err := mathutil.Perspective(p.FOV, p.Aspect, p.Near, p.Far)
	if err != nil {
		return nil, fmt.Errorf("camera: projection: %w", err)
	}

	limit := mathutil.Deg2Rad(p.PitchLimit)
	pitch := mathutil.Clamp(mathutil.Deg2Rad(p.Pitch), -limit, limit)

	q := mathutil.QuatMul(
		mathutil.QuatFromAxisAngle(mathutil.Vec3{0, 1, 0}, mathutil.Deg2Rad(p.Yaw)),
		mathutil.QuatMul(
			mathutil.QuatFromAxisAngle(mathutil.Vec3{1, 0, 0}, pitch),
			mathutil.QuatFromAxisAngle(mathutil.Vec3{0, 0, 1}, mathutil.Deg2Rad(p.Roll)),
		),
	)

	return &Camera{
		params:      p,
		position:    p.Position,
		orientation: q.Normalize(),
		pitch:       pitch,
		projection:  proj,
		last:        proj,
	}, nil
}

func (c *Camera) Params() Params                 { return c.params }
func (c *Camera) Position() mathutil.Vec3        { return c.position }
func (c *Camera) Orientation() mathutil.Quat     { return c.orientation }
func (c *Camera) Projection() mathutil.Mat4      { return c.projection }
func (c *Camera) SetPosition(p mathutil.Vec3)    { c.position = p }
func (c *Camera) SetOrientation(q mathutil.Quat) { c.orientation = q.Normalize() }

// Pitch returns the accumulated pitch in degrees above the horizon.
func (c *Camera) Pitch() float32 {
	return mathutil.Rad2Deg(c.pitch)
}

// Forward and Right are the horizontal movement directions for the current
// orientation. Both are zero when the matching axis points straight up or down.
func (c *Camera) Forward() mathutil.Vec3 {
	return mathutil.ProjectXZ(c.orientation.Look()).Neg()
}

func (c *Camera) Right() mathutil.Vec3 {
	return mathutil.ProjectXZ(c.orientation.Right())
}

// SetAspect rebuilds the projection for a new aspect ratio.
func (c *Camera) SetAspect(aspect float32) error {
	proj, err := mathutil.Perspective(c.params.FOV, aspect, c.params.Near, c.params.Far)
	if err != nil {
		return fmt.Errorf("camera: projection: %w", err)
	}
	c.params.Aspect = aspect
	c.projection = proj
	return nil
}

// Update advances the camera by dt seconds. A NaN or infinite dt is ignored.
func (c *Camera) Update(dt float32, in control.State) {
	if math32.IsNaN(dt) || math32.IsInf(dt, 0) {
		return
	}
	c.move(dt, in)
	c.turn(dt, in)
}

func (c *Camera) move(dt float32, in control.State) {
	if !in.Moving() {
		return
	}
	speed := c.params.Speed
	forward, right := c.Forward(), c.Right()

	var d mathutil.Vec3
	if in.Front {
		d = d.Add(forward.Scale(speed[2]))
	}
	if in.Back {
		d = d.Sub(forward.Scale(speed[2]))
	}
	if in.Right {
		d = d.Add(right.Scale(speed[0]))
	}
	if in.Left {
		d = d.Sub(right.Scale(speed[0]))
	}
	if in.Up {
		d[1] += speed[1]
	}
	if in.Down {
		d[1] -= speed[1]
	}
	c.position = c.position.Add(d.Scale(dt))
}

func (c *Camera) turn(dt float32, in control.State) {
	yaw := pointerAngle(c.params.Sensitivity, in.PointerDX)
	pitch := pointerAngle(c.params.Sensitivity, in.PointerDY)

	rate := mathutil.Deg2Rad(c.params.RotationSpeed) * dt
	if in.TurnLeft {
		yaw += rate
	}
	if in.TurnRight {
		yaw -= rate
	}
	if yaw == 0 && pitch == 0 {
		return
	}

	// Trim the increment so the accumulated pitch stays inside the limit.
	limit := mathutil.Deg2Rad(c.params.PitchLimit)
	next := mathutil.Clamp(c.pitch+pitch, -limit, limit)
	pitch = next - c.pitch
	c.pitch = next

	// Yaw about world Y goes on the left, pitch about local X on the right,
	// which keeps the horizon level.
	q := mathutil.QuatMul(mathutil.QuatFromAxisAngle(mathutil.Vec3{0, 1, 0}, yaw), c.orientation)
	q = mathutil.QuatMul(q, mathutil.QuatFromAxisAngle(mathutil.Vec3{1, 0, 0}, pitch))
	c.orientation = q.Normalize()
}

// pointerAngle converts a pointer delta to radians. A NaN or infinite
// delta counts as no movement.
func pointerAngle(sensitivity, delta float32) float32 {
	if math32.IsNaN(delta) || math32.IsInf(delta, 0) {
		return 0
	}
	return -(sensitivity * math32.Pi * delta) / 180
}

// World returns the camera's world transform: translation, then rotation.
func (c *Camera) World() mathutil.Mat4 {
	m, _ := mathutil.NewChain().Translate(c.position).RotateQuat(c.orientation).Mat4()
	return m
}

// View returns the inverse of World.
func (c *Camera) View() (mathutil.Mat4, error) {
	view, err := mathutil.Inverse(c.World())
	if err != nil {
		return mathutil.Mat4{}, fmt.Errorf("camera: view: %w", err)
	}
	return view, nil
}

// ViewProjection returns projection·view. When the world transform cannot
// be inverted it returns the last good matrix (the bare projection before the
// first good frame) along with an error wrapping mathutil.ErrSingularMatrix.
func (c *Camera) ViewProjection() (mathutil.Mat4, error) {
	vp, err := mathutil.NewChain().
		Translate(c.position).
		RotateQuat(c.orientation).
		Inverse().
		Premul(c.projection).
		Mat4()
	if err != nil {
		return c.last, fmt.Errorf("camera: view: %w", err)
	}
	c.last = vp
	return vp, nil
}
