// Package config loads renderer, camera and recorder settings from a JSON or
// YAML file, then applies environment and command-line overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"lowres3d/internal/camera"
	"lowres3d/internal/mathutil"
)

// EnvPrefix is the prefix for environment overrides, e.g. LOWRES_RECORD_FPS.
const EnvPrefix = "LOWRES"

// Config holds all configurable settings. Zero values mean "use the default".
type Config struct {
	Render RenderConfig `json:"render" yaml:"render" envconfig:"RENDER"`
	Camera CameraConfig `json:"camera" yaml:"camera" envconfig:"CAMERA"`
	Scene  SceneConfig  `json:"scene" yaml:"scene" envconfig:"SCENE"`
	Record RecordConfig `json:"record" yaml:"record" envconfig:"RECORD"`
}

// RenderConfig sizes the logical frame and the device canvas.
type RenderConfig struct {
	Width        int     `json:"width" yaml:"width" envconfig:"WIDTH"`
	Height       int     `json:"height" yaml:"height" envconfig:"HEIGHT"`
	MaxTexture   int     `json:"max_texture" yaml:"max_texture" envconfig:"MAX_TEXTURE"`
	CanvasWidth  int     `json:"canvas_width" yaml:"canvas_width" envconfig:"CANVAS_WIDTH"`
	CanvasHeight int     `json:"canvas_height" yaml:"canvas_height" envconfig:"CANVAS_HEIGHT"`
	Filter       string  `json:"filter" yaml:"filter" envconfig:"FILTER"`
	FogNear      float32 `json:"fog_near" yaml:"fog_near" envconfig:"FOG_NEAR"`
	FogFar       float32 `json:"fog_far" yaml:"fog_far" envconfig:"FOG_FAR"`
}

// CameraConfig mirrors camera.Params. Angles are in degrees.
type CameraConfig struct {
	Position      *[3]float32 `json:"position,omitempty" yaml:"position,omitempty" ignored:"true"`
	Yaw           float32     `json:"yaw" yaml:"yaw" envconfig:"YAW"`
	Pitch         float32     `json:"pitch" yaml:"pitch" envconfig:"PITCH"`
	Roll          float32     `json:"roll" yaml:"roll" envconfig:"ROLL"`
	Speed         [3]float32  `json:"speed" yaml:"speed" ignored:"true"`
	RotationSpeed float32     `json:"rotation_speed" yaml:"rotation_speed" envconfig:"ROTATION_SPEED"`
	Sensitivity   float32     `json:"sensitivity" yaml:"sensitivity" envconfig:"SENSITIVITY"`
	PitchLimit    float32     `json:"pitch_limit" yaml:"pitch_limit" envconfig:"PITCH_LIMIT"`
	FOV           float32     `json:"fov" yaml:"fov" envconfig:"FOV"`
	Near          float32     `json:"near" yaml:"near" envconfig:"NEAR"`
	Far           float32     `json:"far" yaml:"far" envconfig:"FAR"`
}

// SceneConfig controls the generated billboard field.
type SceneConfig struct {
	Billboards int    `json:"billboards" yaml:"billboards" envconfig:"BILLBOARDS"`
	Seed       uint64 `json:"seed" yaml:"seed" envconfig:"SEED"`
}

// RecordConfig controls offline recording.
type RecordConfig struct {
	Script    string `json:"script" yaml:"script" envconfig:"SCRIPT"`
	OutputDir string `json:"output_dir" yaml:"output_dir" envconfig:"OUTPUT_DIR"`
	Format    string `json:"format" yaml:"format" envconfig:"FORMAT"`
	FPS       int    `json:"fps" yaml:"fps" envconfig:"FPS"`
	Workers   int    `json:"workers" yaml:"workers" envconfig:"WORKERS"`
}

// Load reads a config file. ".yaml" and ".yml" files are parsed as YAML,
// everything else as JSON. Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Read builds the effective configuration: the file at path (if any), then
// environment overrides, then flags and defaults.
func Read(path string, flags Flags) (Config, error) {
	var cfg Config
	if path != "" {
		var err error
		if cfg, err = Load(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.ApplyEnv(EnvPrefix); err != nil {
		return Config{}, err
	}
	cfg.Resolve(flags)
	return cfg, nil
}

// ApplyEnv overrides fields from environment variables named
// <prefix>_<SECTION>_<FIELD>. Unset variables leave fields untouched.
func (c *Config) ApplyEnv(prefix string) error {
	if err := envconfig.Process(prefix, c); err != nil {
		return fmt.Errorf("config: env: %w", err)
	}
	return nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Script       string
	OutputDir    string
	Format       string
	FPS          int
	Workers      int
	CanvasWidth  int
	CanvasHeight int
	Seed         uint64
}

// Resolve applies CLI flags, then fills any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.Script != "" {
		c.Record.Script = flags.Script
	}
	if flags.OutputDir != "" {
		c.Record.OutputDir = flags.OutputDir
	}
	if flags.Format != "" {
		c.Record.Format = flags.Format
	}
	if flags.FPS > 0 {
		c.Record.FPS = flags.FPS
	}
	if flags.Workers > 0 {
		c.Record.Workers = flags.Workers
	}
	if flags.CanvasWidth > 0 {
		c.Render.CanvasWidth = flags.CanvasWidth
	}
	if flags.CanvasHeight > 0 {
		c.Render.CanvasHeight = flags.CanvasHeight
	}
	if flags.Seed != 0 {
		c.Scene.Seed = flags.Seed
	}

	// Render
	r := &c.Render
	setInt(&r.Width, 320)
	setInt(&r.Height, 200)
	setInt(&r.MaxTexture, 4096)
	setInt(&r.CanvasWidth, 640)
	setInt(&r.CanvasHeight, 480)
	if r.Filter == "" {
		r.Filter = "nearest"
	}

	// Camera
	def := camera.DefaultParams()
	cam := &c.Camera
	if cam.Position == nil {
		p := [3]float32(def.Position)
		cam.Position = &p
	}
	for i := range cam.Speed {
		setFloat(&cam.Speed[i], def.Speed[i])
	}
	setFloat(&cam.RotationSpeed, def.RotationSpeed)
	setFloat(&cam.Sensitivity, def.Sensitivity)
	setFloat(&cam.PitchLimit, def.PitchLimit)
	setFloat(&cam.FOV, def.FOV)
	setFloat(&cam.Near, def.Near)
	setFloat(&cam.Far, def.Far)

	// Scene
	setInt(&c.Scene.Billboards, 20)
	if c.Scene.Seed == 0 {
		c.Scene.Seed = 1
	}

	// Record
	rec := &c.Record
	if rec.OutputDir == "" {
		rec.OutputDir = "frames"
	}
	if rec.Format == "" {
		rec.Format = "webp"
	}
	rec.Format = strings.ToLower(rec.Format)
	setInt(&rec.FPS, 30)
	setInt(&rec.Workers, runtime.NumCPU())
}

// CameraParams converts the camera section into camera.Params, using the
// logical render size for the aspect ratio. Call Resolve first.
func (c *Config) CameraParams() camera.Params {
	cam := c.Camera
	p := camera.Params{
		Yaw:           cam.Yaw,
		Pitch:         cam.Pitch,
		Roll:          cam.Roll,
		Speed:         mathutil.Vec3(cam.Speed),
		RotationSpeed: cam.RotationSpeed,
		Sensitivity:   cam.Sensitivity,
		PitchLimit:    cam.PitchLimit,
		FOV:           cam.FOV,
		Aspect:        float32(c.Render.Width) / float32(c.Render.Height),
		Near:          cam.Near,
		Far:           cam.Far,
	}
	if cam.Position != nil {
		p.Position = mathutil.Vec3(*cam.Position)
	}
	return p
}

func setInt(v *int, def int) {
	if *v <= 0 {
		*v = def
	}
}

func setFloat(v *float32, def float32) {
	if *v <= 0 {
		*v = def
	}
}
