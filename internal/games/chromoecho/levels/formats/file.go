// Package formats provides pluggable level file format parsers.
package formats

import (
	"fmt"
	"path/filepath"
	"strings"
)

// File is the on-disk level schema shared by every format.
type File struct {
	ID          string     `yaml:"id" toml:"id"`
	Name        string     `yaml:"name" toml:"name"`
	Description string     `yaml:"description,omitempty" toml:"description"`
	LoopSeconds float64    `yaml:"loop_seconds" toml:"loop_seconds"`
	MaxLoops    int        `yaml:"max_loops" toml:"max_loops"`
	Layout      []string   `yaml:"layout" toml:"layout"`
	Start       Point      `yaml:"start" toml:"start"`
	Plates      []Plate    `yaml:"plates,omitempty" toml:"plates"`
	Doors       []Door     `yaml:"doors,omitempty" toml:"doors"`
	Exits       []Point    `yaml:"exits" toml:"exits"`
	Terminals   []Terminal `yaml:"terminals,omitempty" toml:"terminals"`
	Guards      []Guard    `yaml:"guards,omitempty" toml:"guards"`
	Tutorial    Tutorial   `yaml:"tutorial,omitempty" toml:"tutorial"`
	ParSeconds  float64    `yaml:"par_seconds,omitempty" toml:"par_seconds"`
	MinLoops    int        `yaml:"min_loops,omitempty" toml:"min_loops"`
}

// Point is a tile coordinate.
type Point struct {
	X int `yaml:"x" toml:"x"`
	Y int `yaml:"y" toml:"y"`
}

type Plate struct {
	X     int      `yaml:"x" toml:"x"`
	Y     int      `yaml:"y" toml:"y"`
	Links []string `yaml:"links" toml:"links"`
}

type Door struct {
	ID          string `yaml:"id" toml:"id"`
	X           int    `yaml:"x" toml:"x"`
	Y           int    `yaml:"y" toml:"y"`
	Orientation string `yaml:"orientation,omitempty" toml:"orientation"`
}

type Terminal struct {
	X           int      `yaml:"x" toml:"x"`
	Y           int      `yaml:"y" toml:"y"`
	Links       []string `yaml:"links" toml:"links"`
	HackSeconds float64  `yaml:"hack_seconds,omitempty" toml:"hack_seconds"`
}

// Guard is a patrol. VisionAngle is the full cone width in degrees.
type Guard struct {
	Path        []Point `yaml:"path" toml:"path"`
	Speed       float64 `yaml:"speed,omitempty" toml:"speed"`
	Wait        float64 `yaml:"wait,omitempty" toml:"wait"`
	VisionRange float64 `yaml:"vision_range,omitempty" toml:"vision_range"`
	VisionAngle float64 `yaml:"vision_angle,omitempty" toml:"vision_angle"`
}

type Tutorial struct {
	Start string `yaml:"start,omitempty" toml:"start"`
	Loop2 string `yaml:"loop2,omitempty" toml:"loop2"`
	Hint  string `yaml:"hint,omitempty" toml:"hint"`
}

// Width returns the widest layout row.
func (f File) Width() int {
	w := 0
	for _, row := range f.Layout {
		w = max(w, len(row))
	}
	return w
}

// Height returns the number of layout rows.
func (f File) Height() int {
	return len(f.Layout)
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml", ".toml"}
}

// Parse routes data to the parser for the extension of path.
func Parse(path string, data []byte) (File, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".toml":
		return ParseTOML(data)
	default:
		return File{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
