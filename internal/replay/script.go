// Package replay runs scripted editing sessions against an engine.
//
// A script names the files to open and lists steps. Each step builds one
// command, or calls undo or redo, exactly as an interactive editor would:
//
//	files: [scene]
//	steps:
//	  - {op: create, name: box, kind: box, x: 10, y: 10}
//	  - {op: drag, targets: [box], dx: 1}
//	  - {op: drag, targets: [box], dx: 1}
//	  - {op: undo}
//
// Scripts may be written in YAML or TOML.
package replay

import (
	"fmt"
	"os"

	"github.com/dshills/annotate/internal/annotation"
	"github.com/dshills/annotate/internal/config"
)

// Script is a scripted editing session.
type Script struct {
	Files []string `yaml:"files" toml:"files"`
	Steps []Step   `yaml:"steps" toml:"steps"`
}

// Step is one edit. Which fields matter depends on Op.
type Step struct {
	Op string `yaml:"op" toml:"op"`

	// File defaults to the first file of the script.
	File string `yaml:"file,omitempty" toml:"file,omitempty"`

	// Name names the annotation made by create, duplicate or paste, and
	// is the target when Targets is empty.
	Name    string   `yaml:"name,omitempty" toml:"name,omitempty"`
	Targets []string `yaml:"targets,omitempty" toml:"targets,omitempty"`

	Kind  annotation.Kind            `yaml:"kind,omitempty" toml:"kind,omitempty"`
	Space annotation.CoordinateSpace `yaml:"space,omitempty" toml:"space,omitempty"`

	X  float32 `yaml:"x,omitempty" toml:"x,omitempty"`
	Y  float32 `yaml:"y,omitempty" toml:"y,omitempty"`
	Z  float32 `yaml:"z,omitempty" toml:"z,omitempty"`
	X2 float32 `yaml:"x2,omitempty" toml:"x2,omitempty"`
	Y2 float32 `yaml:"y2,omitempty" toml:"y2,omitempty"`
	Z2 float32 `yaml:"z2,omitempty" toml:"z2,omitempty"`
	DX float32 `yaml:"dx,omitempty" toml:"dx,omitempty"`
	DY float32 `yaml:"dy,omitempty" toml:"dy,omitempty"`

	Width  float32 `yaml:"width,omitempty" toml:"width,omitempty"`
	Height float32 `yaml:"height,omitempty" toml:"height,omitempty"`

	// Value holds the scalar argument of single-value ops: text, font
	// names, numbers, booleans and enumeration names.
	Value string `yaml:"value,omitempty" toml:"value,omitempty"`

	Color annotation.ColorName `yaml:"color,omitempty" toml:"color,omitempty"`
	RGBA  [4]float32           `yaml:"rgba,omitempty,flow" toml:"rgba,omitempty"`

	// Side selects the edge moved by bounds-side.
	Side string `yaml:"side,omitempty" toml:"side,omitempty"`

	// Group and Window form the user group key of grouping ops.
	Group  int `yaml:"group,omitempty" toml:"group,omitempty"`
	Window int `yaml:"window,omitempty" toml:"window,omitempty"`
}

// Load reads a script, choosing the format from the file extension.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script %s: %w", path, err)
	}
	return Parse(path, data)
}

// Parse decodes a script. The extension of name selects YAML or TOML.
func Parse(name string, data []byte) (*Script, error) {
	var s Script
	if err := config.Decode(name, data, &s); err != nil {
		return nil, err
	}
	if len(s.Files) == 0 {
		return nil, fmt.Errorf("%w: %s names no files", ErrInvalidScript, name)
	}
	return &s, nil
}
