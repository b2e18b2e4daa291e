package raster

import (
	"image/color"
	"testing"

	"lowres3d/internal/camera"
	"lowres3d/internal/mathutil"
	"lowres3d/internal/scene"
)

var (
	red   = color.NRGBA{255, 0, 0, 255}
	blue  = color.NRGBA{0, 0, 255, 255}
	black = color.NRGBA{0, 0, 0, 255}
)

func countColor(fb *FrameBuffer, c color.NRGBA) int {
	n := 0
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			if fb.At(x, y) == c {
				n++
			}
		}
	}
	return n
}

func TestNewFrameBuffer(t *testing.T) {
	fb := NewFrameBuffer(4, 3)
	if len(fb.Color) != 48 || len(fb.ZBuf) != 12 {
		t.Fatalf("sizes %d/%d", len(fb.Color), len(fb.ZBuf))
	}
	for i, z := range fb.ZBuf {
		if z <= 1 {
			t.Fatalf("zbuf[%d] = %v, want +inf", i, z)
		}
	}
	fb.Clear(blue)
	if fb.At(3, 2) != blue {
		t.Errorf("At = %v", fb.At(3, 2))
	}
	if img := fb.Image(); img.Bounds().Dx() != 4 || img.NRGBAAt(0, 0) != blue {
		t.Errorf("image mismatch")
	}
}

func TestRasterizeWinding(t *testing.T) {
	ccw := [3]Vertex{{0, 0, 0}, {0, 7.5, 0}, {7.5, 0, 0}}
	cw := [3]Vertex{ccw[0], ccw[2], ccw[1]}

	a := NewFrameBuffer(8, 8)
	RasterizeTriangle(a, ccw, red)
	b := NewFrameBuffer(8, 8)
	RasterizeTriangle(b, cw, red)

	na, nb := countColor(a, red), countColor(b, red)
	if na == 0 || na != nb {
		t.Fatalf("ccw filled %d pixels, cw %d", na, nb)
	}
	// pixel centers below the diagonal x+y=7.5
	if na != 28 {
		t.Errorf("filled %d pixels, want 28", na)
	}
}

func TestRasterizeDepth(t *testing.T) {
	fb := NewFrameBuffer(4, 4)
	full := func(z float32) [3]Vertex {
		return [3]Vertex{{-1, -1, z}, {20, -1, z}, {-1, 20, z}}
	}

	RasterizeTriangle(fb, full(0.5), blue)
	RasterizeTriangle(fb, full(-0.5), red)
	RasterizeTriangle(fb, full(0), blue)
	if got := countColor(fb, red); got != 16 {
		t.Errorf("near triangle covers %d pixels, want 16", got)
	}

	// outside the depth range
	fb = NewFrameBuffer(4, 4)
	RasterizeTriangle(fb, full(1.5), red)
	RasterizeTriangle(fb, full(-1.5), red)
	if got := countColor(fb, red); got != 0 {
		t.Errorf("clipped triangle covers %d pixels", got)
	}
}

func TestRasterizeDegenerate(t *testing.T) {
	fb := NewFrameBuffer(4, 4)
	RasterizeTriangle(fb, [3]Vertex{{0, 0, 0}, {2, 2, 0}, {4, 4, 0}}, red)
	RasterizeTriangle(fb, [3]Vertex{{-10, -10, 0}, {-5, -10, 0}, {-10, -5, 0}}, red)
	if got := countColor(fb, red); got != 0 {
		t.Errorf("degenerate triangles drew %d pixels", got)
	}
}

func TestRenderIdentity(t *testing.T) {
	sc := &scene.Scene{Billboards: []scene.Billboard{
		{Size: [2]float32{0.5, 0.5}, Color: red},
	}}
	img := Render(sc, mathutil.Mat4Identity(), Options{Width: 8, Height: 8, Background: black})

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			want := black
			if x >= 2 && x < 6 && y >= 2 && y < 6 {
				want = red
			}
			if got := img.NRGBAAt(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestRenderOrientation(t *testing.T) {
	// a billboard in the upper-left NDC quadrant lands in the top-left pixels
	sc := &scene.Scene{Billboards: []scene.Billboard{
		{Position: mathutil.Vec3{-0.5, 0.5, 0}, Size: [2]float32{0.25, 0.25}, Color: red},
	}}
	img := Render(sc, mathutil.Mat4Identity(), Options{Width: 8, Height: 8, Background: black})
	if img.NRGBAAt(2, 2) != red {
		t.Errorf("top-left pixel = %v", img.NRGBAAt(2, 2))
	}
	if img.NRGBAAt(5, 5) != black {
		t.Errorf("bottom-right pixel = %v", img.NRGBAAt(5, 5))
	}
}

func TestRenderDepthOrder(t *testing.T) {
	near := scene.Billboard{Position: mathutil.Vec3{0, 0, -0.5}, Size: [2]float32{0.5, 0.5}, Color: red}
	far := scene.Billboard{Position: mathutil.Vec3{0, 0, 0.5}, Size: [2]float32{0.5, 0.5}, Color: blue}

	for _, order := range [][]scene.Billboard{{near, far}, {far, near}} {
		img := Render(&scene.Scene{Billboards: order}, mathutil.Mat4Identity(),
			Options{Width: 8, Height: 8, Background: black})
		if got := img.NRGBAAt(4, 4); got != red {
			t.Errorf("center = %v, want near billboard", got)
		}
	}
}

func TestRenderCamera(t *testing.T) {
	cam, err := camera.New(camera.DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	vp, err := cam.ViewProjection()
	if err != nil {
		t.Fatal(err)
	}

	ahead := &scene.Scene{Billboards: []scene.Billboard{
		{Position: mathutil.Vec3{0, 10, 450}, Size: [2]float32{20, 20}, Color: red},
	}}
	img := Render(ahead, vp, Options{Width: 32, Height: 20, Background: black})
	if got := img.NRGBAAt(16, 10); got != red {
		t.Errorf("billboard ahead not drawn at center: %v", got)
	}

	behind := &scene.Scene{Billboards: []scene.Billboard{
		{Position: mathutil.Vec3{0, 10, 550}, Size: [2]float32{50, 50}, Color: red},
	}}
	fb := NewFrameBuffer(32, 20)
	Draw(fb, behind, vp, Fog{})
	if got := countColor(fb, red); got != 0 {
		t.Errorf("billboard behind the camera drew %d pixels", got)
	}
}

func TestFog(t *testing.T) {
	f := Fog{Near: 10, Far: 20, Color: black}
	if f.Factor(5) != 0 || f.Factor(25) != 1 || f.Factor(15) != 0.5 {
		t.Errorf("factors %v %v %v", f.Factor(5), f.Factor(15), f.Factor(25))
	}
	if got := f.Apply(color.NRGBA{200, 100, 50, 128}, 15); got != (color.NRGBA{100, 50, 25, 128}) {
		t.Errorf("Apply = %v", got)
	}
	if (Fog{}).Apply(red, 1000) != red {
		t.Error("zero fog changed the color")
	}
}
