package record

import (
	"fmt"

	"lowres3d/internal/camera"
	"lowres3d/internal/control"
	"lowres3d/internal/mathutil"
)

// Frame is the camera state after one simulated tick.
type Frame struct {
	Index          int
	Time           float32 // seconds since the start, after this tick
	DeltaTime      float32
	Input          control.State
	Position       mathutil.Vec3
	Orientation    mathutil.Quat
	Pitch          float32 // degrees
	ViewProjection mathutil.Mat4

	// Stale is set when the world transform was singular and
	// ViewProjection repeats the last good matrix.
	Stale bool
}

// Simulate runs s through ctl and cam at a fixed fps and returns one Frame
// per tick. Camera state is order dependent, so this runs sequentially.
func Simulate(cam *camera.Camera, ctl *control.Controller, s *Script, fps int) ([]Frame, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("record: fps must be positive, got %d", fps)
	}
	if err := s.Validate(ctl.Keymap()); err != nil {
		return nil, err
	}

	dt := 1 / float32(fps)
	var frames []Frame
	var t float32

	for _, st := range s.Steps {
		ctl.ReleaseAll()
		for _, k := range st.Keys {
			ctl.KeyDown(k)
		}

		n := st.frameCount(fps)
		dx := st.Pointer[0] / float32(n)
		dy := st.Pointer[1] / float32(n)

		for range n {
			ctl.PointerMove(dx, dy)
			in := ctl.Snapshot()
			cam.Update(dt, in)
			t += dt

			vp, err := cam.ViewProjection()
			frames = append(frames, Frame{
				Index:          len(frames),
				Time:           t,
				DeltaTime:      dt,
				Input:          in,
				Position:       cam.Position(),
				Orientation:    cam.Orientation(),
				Pitch:          cam.Pitch(),
				ViewProjection: vp,
				Stale:          err != nil,
			})
		}
	}
	ctl.ReleaseAll()

	return frames, nil
}
