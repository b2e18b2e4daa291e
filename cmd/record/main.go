package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"time"

	"lowres3d/internal/camera"
	"lowres3d/internal/config"
	"lowres3d/internal/control"
	"lowres3d/internal/present"
	"lowres3d/internal/raster"
	"lowres3d/internal/record"
	"lowres3d/internal/scene"
	"lowres3d/internal/screen"
)

var skyColor = color.NRGBA{0x1b, 0x1f, 0x2e, 0xff}

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config file (.json or .yaml)")
	scriptFile := flag.String("script", "", "Path to input script (default: built-in flyby)")
	outputDir := flag.String("output", "", "Output directory (default: frames)")
	format := flag.String("format", "", "Frame format: webp or tga (default: webp)")
	fps := flag.Int("fps", 0, "Simulation frames per second (default: 30)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	width := flag.Int("width", 0, "Canvas width (default: 640)")
	height := flag.Int("height", 0, "Canvas height (default: 480)")
	seed := flag.Uint64("seed", 0, "Billboard field seed")
	testN := flag.Int("test", 0, "Encode only the first N frames")

	flag.Parse()

	cfg, err := config.Read(*configFile, config.Flags{
		Script:       *scriptFile,
		OutputDir:    *outputDir,
		Format:       *format,
		FPS:          *fps,
		Workers:      *workers,
		CanvasWidth:  *width,
		CanvasHeight: *height,
		Seed:         *seed,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Load script
	var script *record.Script
	if cfg.Record.Script != "" {
		script, err = record.LoadScript(cfg.Record.Script)
	} else {
		script, err = record.ParseScript([]byte(record.DefaultScript))
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading script: %v\n", err)
		os.Exit(1)
	}

	filter, err := present.ParseFilter(cfg.Render.Filter)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cam, err := camera.New(cfg.CameraParams())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating camera: %v\n", err)
		os.Exit(1)
	}

	fit := screen.New(cfg.Render.Width, cfg.Render.Height, cfg.Render.MaxTexture)
	fit.Resize(cfg.Render.CanvasWidth, cfg.Render.CanvasHeight)

	// Simulate camera
	frames, err := record.Simulate(cam, control.NewController(nil), script, cfg.Record.FPS)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error simulating %q: %v\n", script.Name, err)
		os.Exit(1)
	}

	// Limit for testing
	if *testN > 0 && *testN < len(frames) {
		frames = frames[:*testN]
	}

	stale := 0
	for _, f := range frames {
		if f.Stale {
			stale++
		}
	}

	cw, ch := fit.Canvas()
	fmt.Printf("lowres3d recorder: %q, %.1fs at %d fps\n", script.Name, script.Duration(), cfg.Record.FPS)
	fmt.Printf("Frames: %d (%d stale), Workers: %d\n", len(frames), stale, cfg.Record.Workers)
	fmt.Printf("Render: %dx%d -> canvas %dx%d (x%d), %s\n",
		cfg.Render.Width, cfg.Render.Height, cw, ch, fit.ScaleFactor(), cfg.Record.Format)
	fmt.Printf("Output: %s\n", cfg.Record.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	runCfg := record.Config{
		OutputDir: cfg.Record.OutputDir,
		Format:    cfg.Record.Format,
		Scene:     scene.Generate(cfg.Scene.Billboards, cfg.Scene.Seed),
		Render: raster.Options{
			Width:      cfg.Render.Width,
			Height:     cfg.Render.Height,
			Background: skyColor,
			Fog:        raster.Fog{Near: cfg.Render.FogNear, Far: cfg.Render.FogFar, Color: skyColor},
		},
		Fit:      fit,
		Filter:   filter,
		Workers:  cfg.Record.Workers,
		Progress: 2 * time.Second,
	}

	results := record.Run(runCfg, frames)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []record.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Rendered: %d/%d\n", success, len(frames))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		for _, e := range errors[:min(len(errors), 20)] {
			fmt.Printf("  frame %d: %s\n", e.Index, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.Record.OutputDir, "manifest.json")
	m := record.NewManifest(script, cfg.Record.FPS, runCfg, frames, results)
	if err := os.MkdirAll(cfg.Record.OutputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else if err := record.WriteManifest(manifestPath, m); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s (run %s)\n", manifestPath, m.RunID)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
