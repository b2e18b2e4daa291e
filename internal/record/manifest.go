package record

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Manifest describes one recording run.
type Manifest struct {
	RunID        string          `json:"run_id"`
	Script       string          `json:"script"`
	FPS          int             `json:"fps"`
	Width        int             `json:"width"`
	Height       int             `json:"height"`
	CanvasWidth  int             `json:"canvas_width"`
	CanvasHeight int             `json:"canvas_height"`
	Frames       []ManifestEntry `json:"frames"`
}

// ManifestEntry represents one frame in the output manifest.
type ManifestEntry struct {
	Index          int         `json:"index"`
	Time           float32     `json:"time"`
	Position       [3]float32  `json:"position"`
	Orientation    [4]float32  `json:"orientation"`
	Pitch          float32     `json:"pitch"`
	ViewProjection [16]float32 `json:"view_projection"`
	Stale          bool        `json:"stale,omitempty"`
	Image          string      `json:"image,omitempty"`
	Error          string      `json:"error,omitempty"`
}

// NewManifest builds a manifest with a fresh run id. results may be nil or
// shorter than frames; image paths are stored relative to outputDir.
func NewManifest(s *Script, fps int, cfg Config, frames []Frame, results []Result) Manifest {
	m := Manifest{
		RunID:  uuid.NewString(),
		FPS:    fps,
		Width:  cfg.Render.Width,
		Height: cfg.Render.Height,
		Frames: make([]ManifestEntry, len(frames)),
	}
	if s != nil {
		m.Script = s.Name
	}
	if cfg.Fit != nil {
		m.CanvasWidth, m.CanvasHeight = cfg.Fit.Canvas()
	}

	for i, f := range frames {
		e := ManifestEntry{
			Index:          f.Index,
			Time:           f.Time,
			Position:       f.Position,
			Orientation:    f.Orientation,
			Pitch:          f.Pitch,
			ViewProjection: f.ViewProjection,
			Stale:          f.Stale,
		}
		if i < len(results) {
			r := results[i]
			e.Error = r.Error
			if r.Success {
				if rel, err := filepath.Rel(cfg.OutputDir, r.Path); err == nil {
					e.Image = filepath.ToSlash(rel)
				} else {
					e.Image = r.Path
				}
			}
		}
		m.Frames[i] = e
	}
	return m
}

// WriteManifest writes m as indented JSON to path.
func WriteManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("record: manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("record: write %s: %w", path, err)
	}
	return nil
}
