package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"

	"lowres3d/internal/camera"
	"lowres3d/internal/config"
	"lowres3d/internal/control"
	"lowres3d/internal/record"
	"lowres3d/internal/screen"
)

func main() {
	configFile := flag.String("config", "", "Path to config file (.json or .yaml)")
	scriptFile := flag.String("script", "", "Path to input script (default: built-in flyby)")
	fps := flag.Int("fps", 0, "Simulation frames per second (default: 30)")
	every := flag.Int("every", 1, "Print every Nth frame")
	dump := flag.Bool("dump", false, "Dump full frame state with spew instead of a table")
	flag.Parse()

	cfg, err := config.Read(*configFile, config.Flags{Script: *scriptFile, FPS: *fps})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	var script *record.Script
	if cfg.Record.Script != "" {
		script, err = record.LoadScript(cfg.Record.Script)
	} else {
		script, err = record.ParseScript([]byte(record.DefaultScript))
	}
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	cam, err := camera.New(cfg.CameraParams())
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	frames, err := record.Simulate(cam, control.NewController(nil), script, cfg.Record.FPS)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fit := screen.New(cfg.Render.Width, cfg.Render.Height, cfg.Render.MaxTexture)
	fit.Resize(cfg.Render.CanvasWidth, cfg.Render.CanvasHeight)
	cw, ch := fit.Canvas()
	fmt.Printf("Script %q: %d frames, %.2fs\n", script.Name, len(frames), script.Duration())
	fmt.Printf("Canvas %dx%d, scale x%d, viewport %+v\n", cw, ch, fit.ScaleFactor(), fit.Viewport())

	step := max(*every, 1)
	if *dump {
		cs := spew.ConfigState{Indent: "  ", DisableMethods: true, SortKeys: true}
		for i := 0; i < len(frames); i += step {
			cs.Dump(frames[i])
		}
		return
	}

	fmt.Printf("%6s %7s  %-26s %7s  %-32s %s\n", "frame", "time", "position", "pitch", "orientation", "")
	for i := 0; i < len(frames); i += step {
		f := frames[i]
		p, q := f.Position, f.Orientation
		mark := ""
		if f.Stale {
			mark = "STALE"
		}
		fmt.Printf("%6d %7.3f  (%7.2f,%7.2f,%7.2f) %7.2f  (%6.3f,%6.3f,%6.3f,%6.3f) %s\n",
			f.Index, f.Time, p[0], p[1], p[2], f.Pitch, q[0], q[1], q[2], q[3], mark)
	}
}
