// Package record drives the camera from scripted input, then renders and
// encodes the resulting frames in parallel.
package record

import (
	"fmt"
	"os"

	"github.com/chewxy/math32"
	"gopkg.in/yaml.v3"

	"lowres3d/internal/control"
)

// DefaultScript is a short flyby over the billboard field that exercises
// every movement key group and both pointer axes.
const DefaultScript = `
name: flyby
steps:
  - duration: 2
    keys: [w]
  - duration: 1
    pointer: [-120, 0]
  - duration: 1.5
    keys: [w, r]
    pointer: [0, -40]
  - duration: 1
    keys: [d, e]
  - duration: 1
    pointer: [80, 60]
`

// Step holds a set of keys down for Duration seconds while the pointer moves
// by Pointer pixels, spread evenly over the step's frames.
type Step struct {
	Duration float32    `yaml:"duration" json:"duration"`
	Keys     []string   `yaml:"keys,omitempty" json:"keys,omitempty"`
	Pointer  [2]float32 `yaml:"pointer,omitempty" json:"pointer,omitempty"`
}

// Script is an ordered list of input steps.
type Script struct {
	Name  string `yaml:"name" json:"name"`
	Steps []Step `yaml:"steps" json:"steps"`
}

// LoadScript reads and parses a YAML (or JSON) script file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("record: read script %s: %w", path, err)
	}
	s, err := ParseScript(data)
	if err != nil {
		return nil, fmt.Errorf("record: script %s: %w", path, err)
	}
	return s, nil
}

// ParseScript decodes a script and checks that it has at least one step,
// every duration is positive and finite, and every pointer delta is finite.
func ParseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("no steps")
	}
	for i, st := range s.Steps {
		if !(st.Duration > 0) || math32.IsInf(st.Duration, 0) {
			return nil, fmt.Errorf("step %d: invalid duration %v", i, st.Duration)
		}
		for _, d := range st.Pointer {
			if math32.IsNaN(d) || math32.IsInf(d, 0) {
				return nil, fmt.Errorf("step %d: invalid pointer %v", i, st.Pointer)
			}
		}
	}
	return &s, nil
}

// Validate reports the first key that km does not bind.
func (s *Script) Validate(km control.Keymap) error {
	for i, st := range s.Steps {
		for _, k := range st.Keys {
			if _, ok := km.Lookup(k); !ok {
				return fmt.Errorf("record: step %d: unbound key %q", i, k)
			}
		}
	}
	return nil
}

// Duration is the total scripted time in seconds.
func (s *Script) Duration() float32 {
	var d float32
	for _, st := range s.Steps {
		d += st.Duration
	}
	return d
}

// frameCount is the number of frames a step spans at fps, at least one.
func (st Step) frameCount(fps int) int {
	return max(1, int(st.Duration*float32(fps)+0.5))
}
