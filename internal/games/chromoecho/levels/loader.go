// Package levels loads ChromoEcho level files and ships the built-in set.
// This package depends on timeline but timeline does not depend on levels.
package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/chromoecho/internal/core"
	"github.com/vovakirdan/chromoecho/internal/games/chromoecho/levels/formats"
	"github.com/vovakirdan/chromoecho/internal/games/chromoecho/timeline"
)

//go:embed builtin/*.yaml builtin/*.toml
var builtinFS embed.FS

// SourceBuiltin marks levels compiled into the binary.
const SourceBuiltin = "builtin"

// Level is a loaded level together with where it came from.
type Level struct {
	timeline.Level
	FilePath string
}

// IsBuiltin reports whether the level ships with the binary.
func (l Level) IsBuiltin() bool {
	return strings.HasPrefix(l.FilePath, SourceBuiltin+":")
}

// Loader handles loading levels from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new level loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all level files.
// Returns levels sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !isSupportedExtension(strings.ToLower(filepath.Ext(path))) {
			return nil
		}

		level, err := l.LoadFile(path)
		if err != nil {
			// Skip invalid files; `levels validate` reports them
			return nil
		}
		levels = append(levels, level)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
	return levels, nil
}

// LoadFile loads and validates a single level file.
func (l *Loader) LoadFile(path string) (Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", path, err)
	}
	return Parse(path, data)
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}
	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("level not found: %s", id)
}

// Parse decodes level data in the format named by the extension of path,
// converts it and validates the result.
func Parse(path string, data []byte) (Level, error) {
	f, err := formats.Parse(path, data)
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", path, err)
	}
	lvl, err := Build(f)
	if err != nil {
		return Level{}, fmt.Errorf("level %s: %w", path, err)
	}
	lvl.FilePath = path
	return lvl, nil
}

// Builtin returns the levels compiled into the binary in play order.
func Builtin() ([]Level, error) {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		return nil, fmt.Errorf("reading builtin levels: %w", err)
	}

	var levels []Level
	for _, e := range entries {
		name := path.Join("builtin", e.Name())
		data, err := builtinFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		lvl, err := Parse(name, data)
		if err != nil {
			return nil, err
		}
		lvl.FilePath = SourceBuiltin + ":" + e.Name()
		levels = append(levels, lvl)
	}
	return levels, nil
}

// Catalog returns the built-in levels followed by the levels found in dir.
// A level in dir with the ID of a built-in one replaces it in place. An empty
// dir or one that does not exist yields only the built-in set.
func Catalog(dir string) ([]Level, error) {
	levels, err := Builtin()
	if err != nil {
		return nil, err
	}
	if dir == "" {
		return levels, nil
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return levels, nil
	}

	custom, err := NewLoader(dir).LoadAll()
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(levels))
	for i, lvl := range levels {
		index[lvl.ID] = i
	}
	for _, lvl := range custom {
		if i, ok := index[lvl.ID]; ok {
			levels[i] = lvl
			continue
		}
		levels = append(levels, lvl)
	}
	return levels, nil
}

// Find returns the level with the given ID from a list.
func Find(levels []Level, id string) (Level, bool) {
	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, true
		}
	}
	return Level{}, false
}

// Build converts a parsed file into a validated level.
func Build(f formats.File) (Level, error) {
	lvl := Level{Level: timeline.Level{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		Width:       f.Width(),
		Height:      f.Height(),
		LoopSeconds: f.LoopSeconds,
		MaxLoops:    f.MaxLoops,
		Start:       core.T(f.Start.X, f.Start.Y),
		Tutorial: timeline.Tutorial{
			Start: f.Tutorial.Start,
			Loop2: f.Tutorial.Loop2,
			Hint:  f.Tutorial.Hint,
		},
		ParSeconds: f.ParSeconds,
		MinLoops:   f.MinLoops,
	}}
	if lvl.Name == "" {
		lvl.Name = lvl.ID
	}

	for y, row := range f.Layout {
		walls := make([]bool, len(row))
		for x, r := range row {
			switch r {
			case '#':
				walls[x] = true
			case '.':
			default:
				return Level{}, fmt.Errorf("layout row %d: unexpected %q at column %d", y, r, x)
			}
		}
		lvl.Walls = append(lvl.Walls, walls)
	}

	for _, p := range f.Plates {
		lvl.Plates = append(lvl.Plates, timeline.PlateSpec{At: core.T(p.X, p.Y), Links: p.Links})
	}
	for _, d := range f.Doors {
		o, ok := timeline.ParseOrientation(strings.ToLower(d.Orientation))
		if !ok {
			return Level{}, fmt.Errorf("door %s: unknown orientation %q", d.ID, d.Orientation)
		}
		lvl.Doors = append(lvl.Doors, timeline.DoorSpec{ID: d.ID, At: core.T(d.X, d.Y), Orientation: o})
	}
	for _, e := range f.Exits {
		lvl.Exits = append(lvl.Exits, core.T(e.X, e.Y))
	}
	for _, t := range f.Terminals {
		lvl.Terminals = append(lvl.Terminals, timeline.TerminalSpec{
			At:          core.T(t.X, t.Y),
			Links:       t.Links,
			HackSeconds: t.HackSeconds,
		})
	}
	for _, g := range f.Guards {
		spec := timeline.GuardSpec{
			Speed:       g.Speed,
			Wait:        g.Wait,
			VisionRange: g.VisionRange,
			VisionAngle: g.VisionAngle * math.Pi / 180,
		}
		for _, p := range g.Path {
			spec.Path = append(spec.Path, core.T(p.X, p.Y))
		}
		lvl.Guards = append(lvl.Guards, spec)
	}

	if err := Validate(lvl.Level); err != nil {
		return Level{}, err
	}
	return lvl, nil
}

// ToFile converts a level back into the on-disk schema.
func ToFile(l timeline.Level) formats.File {
	f := formats.File{
		ID:          l.ID,
		Name:        l.Name,
		Description: l.Description,
		LoopSeconds: l.LoopSeconds,
		MaxLoops:    l.MaxLoops,
		Start:       formats.Point{X: l.Start.X, Y: l.Start.Y},
		Tutorial: formats.Tutorial{
			Start: l.Tutorial.Start,
			Loop2: l.Tutorial.Loop2,
			Hint:  l.Tutorial.Hint,
		},
		ParSeconds: l.ParSeconds,
		MinLoops:   l.MinLoops,
	}
	for _, row := range l.Walls {
		var b strings.Builder
		for _, wall := range row {
			if wall {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		f.Layout = append(f.Layout, b.String())
	}
	for _, p := range l.Plates {
		f.Plates = append(f.Plates, formats.Plate{X: p.At.X, Y: p.At.Y, Links: p.Links})
	}
	for _, d := range l.Doors {
		f.Doors = append(f.Doors, formats.Door{ID: d.ID, X: d.At.X, Y: d.At.Y, Orientation: d.Orientation.String()})
	}
	for _, e := range l.Exits {
		f.Exits = append(f.Exits, formats.Point{X: e.X, Y: e.Y})
	}
	for _, t := range l.Terminals {
		f.Terminals = append(f.Terminals, formats.Terminal{X: t.At.X, Y: t.At.Y, Links: t.Links, HackSeconds: t.HackSeconds})
	}
	for _, g := range l.Guards {
		fg := formats.Guard{
			Speed:       g.Speed,
			Wait:        g.Wait,
			VisionRange: g.VisionRange,
			VisionAngle: g.VisionAngle * 180 / math.Pi,
		}
		for _, p := range g.Path {
			fg.Path = append(fg.Path, formats.Point{X: p.X, Y: p.Y})
		}
		f.Guards = append(f.Guards, fg)
	}
	return f
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
