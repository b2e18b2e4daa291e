// Package screen fits a fixed logical render resolution into a resizable
// canvas using whole-number scale factors, so every logical pixel covers the
// same number of device pixels.
package screen

import (
	"image"
	"sync"
)

// Viewport is the sub-rectangle of the canvas the logical frame is drawn into.
type Viewport struct {
	X, Y          int
	Width, Height int
}

// Rect returns the viewport as an image rectangle in canvas coordinates.
func (v Viewport) Rect() image.Rectangle {
	return image.Rect(v.X, v.Y, v.X+v.Width, v.Y+v.Height)
}

// Fit tracks the canvas size for a fixed render resolution.
// Resize may be called from any goroutine; the last size wins.
type Fit struct {
	renderW, renderH int
	maxTex           int

	mu      sync.Mutex
	canvasW int
	canvasH int
	resized bool
}

// New creates a Fit for a renderW x renderH logical target. The canvas starts
// at the render size. maxTextureSize bounds the canvas in both dimensions;
// values below 1 are treated as unbounded.
func New(renderW, renderH, maxTextureSize int) *Fit {
	renderW = max(renderW, 1)
	renderH = max(renderH, 1)
	return &Fit{
		renderW: renderW,
		renderH: renderH,
		maxTex:  maxTextureSize,
		canvasW: renderW,
		canvasH: renderH,
	}
}

func (f *Fit) clamp(v int) int {
	v = max(v, 1)
	if f.maxTex > 0 {
		v = min(v, f.maxTex)
	}
	return v
}

// Resize records a new canvas size. Each dimension is clamped to
// [1, maxTextureSize]. The pending flag is raised only when the clamped size
// differs from the tracked one.
func (f *Fit) Resize(w, h int) {
	w, h = f.clamp(w), f.clamp(h)

	f.mu.Lock()
	if w != f.canvasW || h != f.canvasH {
		f.canvasW, f.canvasH = w, h
		f.resized = true
	}
	f.mu.Unlock()
}

// NeedsResize reports whether the canvas changed since the last call.
// It returns true at most once per change.
func (f *Fit) NeedsResize() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	r := f.resized
	f.resized = false
	return r
}

// Canvas returns the current (clamped) canvas size.
func (f *Fit) Canvas() (w, h int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.canvasW, f.canvasH
}

func (f *Fit) Render() (w, h int) { return f.renderW, f.renderH }

// Aspect is the logical render aspect ratio, width over height.
func (f *Fit) Aspect() float32 {
	return float32(f.renderW) / float32(f.renderH)
}

// ScaleFactor is the largest whole multiple of the render size that fits the
// canvas, never less than 1.
func (f *Fit) ScaleFactor() int {
	cw, ch := f.Canvas()
	return f.scale(cw, ch)
}

func (f *Fit) scale(cw, ch int) int {
	return max(1, min(cw/f.renderW, ch/f.renderH))
}

// Viewport centers the scaled render target in the canvas. When the canvas is
// smaller than the render size the offsets go negative and the frame is
// cropped evenly on both sides.
func (f *Fit) Viewport() Viewport {
	cw, ch := f.Canvas()
	s := f.scale(cw, ch)
	w, h := s*f.renderW, s*f.renderH
	return Viewport{
		X:      (cw - w) >> 1,
		Y:      (ch - h) >> 1,
		Width:  w,
		Height: h,
	}
}
