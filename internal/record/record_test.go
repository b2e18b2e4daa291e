package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/chewxy/math32"
	"github.com/ftrvxmtrx/tga"

	"lowres3d/internal/camera"
	"lowres3d/internal/control"
	"lowres3d/internal/mathutil"
	"lowres3d/internal/raster"
	"lowres3d/internal/scene"
	"lowres3d/internal/screen"
)

const testScript = `
name: walk
steps:
  - duration: 1
    keys: [w]
  - duration: 0.5
    pointer: [100, 0]
  - duration: 0.2
    keys: [D, r]
`

func newRig(t *testing.T) (*camera.Camera, *control.Controller) {
	t.Helper()
	cam, err := camera.New(camera.DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	return cam, control.NewController(nil)
}

func TestParseScript(t *testing.T) {
	s, err := ParseScript([]byte(testScript))
	if err != nil {
		t.Fatalf("ParseScript: %v", err)
	}
	if s.Name != "walk" || len(s.Steps) != 3 {
		t.Fatalf("script = %+v", s)
	}
	if s.Steps[1].Pointer != [2]float32{100, 0} {
		t.Errorf("pointer = %v", s.Steps[1].Pointer)
	}
	if d := s.Duration(); math32.Abs(d-1.7) > 1e-6 {
		t.Errorf("Duration = %v", d)
	}
	if err := s.Validate(control.DefaultKeymap()); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestParseScriptErrors(t *testing.T) {
	for name, body := range map[string]string{
		"empty":         "name: x",
		"zero duration": "steps: [{duration: 0}]",
		"negative":      "steps: [{duration: -1}]",
		"syntax":        "steps: [",
		"nan pointer":   "steps: [{duration: 1, pointer: [.nan, 0]}]",
		"inf pointer":   "steps: [{duration: 1, pointer: [0, -.inf]}]",
	} {
		if _, err := ParseScript([]byte(body)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}

	s, err := ParseScript([]byte("steps: [{duration: 1, keys: [z]}]"))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Validate(control.DefaultKeymap()); err == nil {
		t.Error("expected unbound key error")
	}
}

func TestLoadScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.yaml")
	if err := os.WriteFile(path, []byte(testScript), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := LoadScript(path)
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	if s.Name != "walk" {
		t.Errorf("name = %q", s.Name)
	}
	if _, err := LoadScript(filepath.Join(t.TempDir(), "none.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: %v", err)
	}
}

func TestSimulate(t *testing.T) {
	s, err := ParseScript([]byte(testScript))
	if err != nil {
		t.Fatal(err)
	}
	cam, ctl := newRig(t)

	frames, err := Simulate(cam, ctl, s, 10)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if len(frames) != 17 {
		t.Fatalf("got %d frames, want 17", len(frames))
	}
	for i, f := range frames {
		if f.Index != i || f.Stale {
			t.Fatalf("frame %d: %+v", i, f)
		}
	}

	// one second of forward movement at 40 units/s
	if z := frames[9].Position[2]; math32.Abs(z-460) > 1e-3 {
		t.Errorf("z after walking = %v, want 460", z)
	}
	if !frames[0].Input.Front || frames[10].Input.Front {
		t.Error("keys not released between steps")
	}

	// the pointer step turns by the full scripted amount
	yaw := -(0.8 * math32.Pi * 100) / 180
	want := mathutil.QuatFromAxisAngle(mathutil.Vec3{0, 1, 0}, yaw)
	got := frames[14].Orientation
	if d := math32.Abs(got.Dot(want)); math32.Abs(d-1) > 1e-5 {
		t.Errorf("orientation after pointer step = %v, want %v", got, want)
	}

	last := frames[16]
	if math32.Abs(last.Time-1.7) > 1e-4 {
		t.Errorf("time = %v", last.Time)
	}
	if !last.Input.Right || !last.Input.Up {
		t.Errorf("last input = %+v", last.Input)
	}
	if last.Position[1] <= 10 {
		t.Errorf("camera did not rise: %v", last.Position)
	}
}

func TestSimulateErrors(t *testing.T) {
	s := &Script{Steps: []Step{{Duration: 1, Keys: []string{"x"}}}}
	cam, ctl := newRig(t)
	if _, err := Simulate(cam, ctl, s, 30); err == nil {
		t.Error("expected unbound key error")
	}
	s.Steps[0].Keys = nil
	if _, err := Simulate(cam, ctl, s, 0); err == nil {
		t.Error("expected fps error")
	}
}

func TestSimulateStale(t *testing.T) {
	p := camera.DefaultParams()
	p.Speed = mathutil.Vec3{0, 0, math32.Inf(1)}
	cam, err := camera.New(p)
	if err != nil {
		t.Fatal(err)
	}
	s := &Script{Steps: []Step{{Duration: 0.1, Keys: []string{"w"}}}}

	frames, err := Simulate(cam, control.NewController(nil), s, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(frames) != 1 || !frames[0].Stale {
		t.Fatalf("frames = %+v", frames)
	}
	if !frames[0].ViewProjection.IsFinite() {
		t.Error("stale frame carries a non-finite matrix")
	}
}

func TestExt(t *testing.T) {
	if e, err := Ext("WebP"); err != nil || e != ".webp" {
		t.Errorf("Ext(WebP) = %q, %v", e, err)
	}
	if e, err := Ext("tga"); err != nil || e != ".tga" {
		t.Errorf("Ext(tga) = %q, %v", e, err)
	}
	if _, err := Ext("gif"); err == nil {
		t.Error("expected error")
	}
}

func TestEncodeTGA(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	img.SetNRGBA(1, 1, color.NRGBA{10, 20, 30, 255})

	var buf bytes.Buffer
	if err := Encode(&buf, img, FormatTGA); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	back, err := tga.Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if back.Bounds().Dx() != 3 || back.Bounds().Dy() != 2 {
		t.Fatalf("bounds = %v", back.Bounds())
	}
	r, g, b, _ := back.At(1, 1).RGBA()
	wr, wg, wb, _ := img.At(1, 1).RGBA()
	if r != wr || g != wg || b != wb {
		t.Errorf("pixel = %v, want %v", back.At(1, 1), img.At(1, 1))
	}

	if err := Encode(&buf, img, "bmp"); err == nil {
		t.Error("expected unknown format error")
	}
}

func TestRunAndManifest(t *testing.T) {
	s, err := ParseScript([]byte("name: spin\nsteps: [{duration: 0.3, pointer: [30, 0]}]"))
	if err != nil {
		t.Fatal(err)
	}
	cam, ctl := newRig(t)
	frames, err := Simulate(cam, ctl, s, 10)
	if err != nil {
		t.Fatal(err)
	}

	fit := screen.New(32, 20, 4096)
	fit.Resize(70, 50)

	for _, format := range []string{FormatWebP, FormatTGA} {
		t.Run(format, func(t *testing.T) {
			dir := t.TempDir()
			cfg := Config{
				OutputDir: dir,
				Format:    format,
				Scene:     scene.Generate(5, 1),
				Render:    raster.Options{Width: 32, Height: 20, Background: color.NRGBA{0, 0, 0, 255}},
				Fit:       fit,
				Workers:   2,
			}

			results := Run(cfg, frames)
			if len(results) != 3 {
				t.Fatalf("got %d results", len(results))
			}
			for _, r := range results {
				if !r.Success {
					t.Fatalf("frame %d: %s", r.Index, r.Error)
				}
				data, err := os.ReadFile(r.Path)
				if err != nil {
					t.Fatal(err)
				}
				if format == FormatWebP && (len(data) < 12 || string(data[:4]) != "RIFF" || string(data[8:12]) != "WEBP") {
					t.Errorf("%s is not a WebP file", r.Path)
				}
				if format == FormatTGA {
					img, err := tga.Decode(bytes.NewReader(data))
					if err != nil {
						t.Fatalf("decode %s: %v", r.Path, err)
					}
					if b := img.Bounds(); b.Dx() != 70 || b.Dy() != 50 {
						t.Errorf("canvas bounds = %v", b)
					}
				}
			}
			if filepath.Base(results[2].Path) != "frame_00002."+format {
				t.Errorf("path = %s", results[2].Path)
			}

			m := NewManifest(s, 10, cfg, frames, results)
			if m.RunID == "" || m.Script != "spin" || m.CanvasWidth != 70 || m.CanvasHeight != 50 {
				t.Errorf("manifest header = %+v", m)
			}
			path := filepath.Join(dir, "manifest.json")
			if err := WriteManifest(path, m); err != nil {
				t.Fatalf("WriteManifest: %v", err)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			var back Manifest
			if err := json.Unmarshal(data, &back); err != nil {
				t.Fatalf("manifest JSON: %v", err)
			}
			if len(back.Frames) != 3 || back.Frames[1].Image != "frame_00001."+format {
				t.Errorf("frames = %+v", back.Frames)
			}
		})
	}
}

func TestRunUnknownFormat(t *testing.T) {
	frames := []Frame{{ViewProjection: mathutil.Mat4Identity()}}
	results := Run(Config{OutputDir: t.TempDir(), Format: "gif", Render: raster.Options{Width: 4, Height: 4}}, frames)
	if results[0].Success || results[0].Error == "" {
		t.Errorf("result = %+v", results[0])
	}
}

func TestDefaultScript(t *testing.T) {
	s, err := ParseScript([]byte(DefaultScript))
	if err != nil {
		t.Fatalf("ParseScript: %v", err)
	}
	if err := s.Validate(control.DefaultKeymap()); err != nil {
		t.Errorf("Validate: %v", err)
	}
	if d := s.Duration(); d != 6.5 {
		t.Errorf("Duration = %v", d)
	}
}

func TestSimulateNonFinitePointer(t *testing.T) {
	s := &Script{Steps: []Step{
		{Duration: 0.3, Pointer: [2]float32{math32.NaN(), 0}},
		{Duration: 0.3, Keys: []string{"w"}},
	}}
	cam, ctl := newRig(t)

	frames, err := Simulate(cam, ctl, s, 10)
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range frames {
		if f.Stale || !f.ViewProjection.IsFinite() {
			t.Fatalf("frame %d went stale: %+v", f.Index, f)
		}
	}
	if _, err := json.Marshal(NewManifest(s, 10, Config{}, frames, nil)); err != nil {
		t.Errorf("manifest: %v", err)
	}
}

func TestWriteFrame(t *testing.T) {
	dir := t.TempDir()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))

	path := filepath.Join(dir, "ok.tga")
	if err := writeFrame(path, img, FormatTGA); err != nil {
		t.Fatalf("writeFrame: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tga.Decode(bytes.NewReader(data)); err != nil {
		t.Errorf("decode: %v", err)
	}

	if err := writeFrame(filepath.Join(dir, "bad.gif"), img, "gif"); err == nil {
		t.Error("expected encode error")
	}
	if err := writeFrame(filepath.Join(dir, "missing", "x.tga"), img, FormatTGA); err == nil {
		t.Error("expected create error")
	}
}
