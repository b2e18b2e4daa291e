package main

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"lowres3d/internal/camera"
	"lowres3d/internal/control"
	"lowres3d/internal/mathutil"
	"lowres3d/internal/present"
	"lowres3d/internal/raster"
	"lowres3d/internal/scene"
	"lowres3d/internal/screen"
)

// game adapts the camera, controller and screen fit to ebiten's
// Update/Draw/Layout loop.
type game struct {
	cam   *camera.Camera
	ctl   *control.Controller
	fit   *screen.Fit
	scene *scene.Scene
	fb    *raster.FrameBuffer
	fog   raster.Fog

	frame *ebiten.Image
	vp    mathutil.Mat4
	keys  []ebiten.Key

	captured         bool
	cursorX, cursorY int
	stale            int
}

func (g *game) Update() error {
	if g.fit.NeedsResize() {
		cw, ch := g.fit.Canvas()
		fmt.Printf("canvas %dx%d, scale x%d\n", cw, ch, g.fit.ScaleFactor())
	}

	g.updateCapture()

	// Key state is rebuilt every tick from what ebiten reports as held.
	g.ctl.ReleaseAll()
	if ebiten.IsFocused() {
		g.keys = inpututil.AppendPressedKeys(g.keys[:0])
		for _, k := range g.keys {
			g.ctl.KeyDown(strings.ToLower(k.String()))
		}
	}

	if g.captured {
		x, y := ebiten.CursorPosition()
		g.ctl.PointerMove(float32(x-g.cursorX), float32(y-g.cursorY))
		g.cursorX, g.cursorY = x, y
	}

	dt := float32(1) / float32(ebiten.TPS())
	g.cam.Update(dt, g.ctl.Snapshot())
	g.scene.Advance(dt)

	vp, err := g.cam.ViewProjection()
	if err != nil {
		g.stale++
	}
	g.vp = vp
	return nil
}

func (g *game) updateCapture() {
	switch {
	case !g.captured && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
		g.captured = true
		g.cursorX, g.cursorY = ebiten.CursorPosition()
	case g.captured && (inpututil.IsKeyJustPressed(ebiten.KeyEscape) || !ebiten.IsFocused()):
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
		g.captured = false
	}
}

func (g *game) Draw(dst *ebiten.Image) {
	dst.Fill(present.Border)

	g.fb.Clear(g.fog.Color)
	raster.Draw(g.fb, g.scene, g.vp, g.fog)

	if g.frame == nil {
		g.frame = ebiten.NewImage(g.fb.Width, g.fb.Height)
	}
	// The framebuffer is opaque, so NRGBA and premultiplied RGBA coincide.
	g.frame.WritePixels(g.fb.Color)

	vp := g.fit.Viewport()
	s := float64(g.fit.ScaleFactor())
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(s, s)
	op.GeoM.Translate(float64(vp.X), float64(vp.Y))
	op.Filter = ebiten.FilterNearest
	dst.DrawImage(g.frame, op)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.fit.Resize(outsideWidth, outsideHeight)
	return g.fit.Canvas()
}
