package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"lowres3d/internal/camera"
	"lowres3d/internal/config"
	"lowres3d/internal/control"
	"lowres3d/internal/raster"
	"lowres3d/internal/scene"
	"lowres3d/internal/screen"
)

const tps = 60

var skyColor = color.NRGBA{0x1b, 0x1f, 0x2e, 0xff}

func main() {
	configFile := flag.String("config", "", "Path to config file (.json or .yaml)")
	width := flag.Int("width", 0, "Initial window width (default: 640)")
	height := flag.Int("height", 0, "Initial window height (default: 480)")
	seed := flag.Uint64("seed", 0, "Billboard field seed")
	flag.Parse()

	cfg, err := config.Read(*configFile, config.Flags{
		CanvasWidth:  *width,
		CanvasHeight: *height,
		Seed:         *seed,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	cam, err := camera.New(cfg.CameraParams())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating camera: %v\n", err)
		os.Exit(1)
	}

	g := &game{
		cam:   cam,
		ctl:   control.NewController(nil),
		fit:   screen.New(cfg.Render.Width, cfg.Render.Height, cfg.Render.MaxTexture),
		scene: scene.Generate(cfg.Scene.Billboards, cfg.Scene.Seed),
		fb:    raster.NewFrameBuffer(cfg.Render.Width, cfg.Render.Height),
		fog:   raster.Fog{Near: cfg.Render.FogNear, Far: cfg.Render.FogFar, Color: skyColor},
	}

	ebiten.SetWindowTitle("lowres3d")
	ebiten.SetWindowSize(cfg.Render.CanvasWidth, cfg.Render.CanvasHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(tps)

	fmt.Printf("Render %dx%d, WASD/arrows move, R/F up/down, Q/E turn, click to capture the mouse, Esc to release\n",
		cfg.Render.Width, cfg.Render.Height)

	if err := ebiten.RunGame(g); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if g.stale > 0 {
		fmt.Printf("%d frames reused a stale view matrix\n", g.stale)
	}
}
