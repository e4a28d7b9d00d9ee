package timeline

import "github.com/vovakirdan/chromoecho/internal/core"

// Level is the immutable description of a heist: geometry, loop budget and
// object placement. Levels are produced by the levels package.
type Level struct {
	ID          string
	Name        string
	Description string

	Width  int
	Height int
	Walls  [][]bool // Walls[y][x]

	LoopSeconds float64
	MaxLoops    int

	Start     core.Tile
	Guards    []GuardSpec
	Plates    []PlateSpec
	Doors     []DoorSpec
	Exits     []core.Tile
	Terminals []TerminalSpec

	Tutorial   Tutorial
	ParSeconds float64
	MinLoops   int
}

// GuardSpec places a patrolling guard. Zero values take the tuning defaults.
type GuardSpec struct {
	Path        []core.Tile
	Speed       float64
	Wait        float64
	VisionRange float64
	VisionAngle float64 // radians
}

type PlateSpec struct {
	At    core.Tile
	Links []string
}

type DoorSpec struct {
	ID          string
	At          core.Tile
	Orientation Orientation
}

type TerminalSpec struct {
	At          core.Tile
	Links       []string
	HackSeconds float64
}

// Tutorial holds optional hint texts shown by the front end.
type Tutorial struct {
	Start string
	Loop2 string
	Hint  string
}

// LoopTicks returns the tick capacity of one loop.
func (l Level) LoopTicks() int {
	return TicksFor(l.LoopSeconds)
}

// IsWall reports whether t is solid. Tiles outside the grid are solid.
func (l Level) IsWall(t core.Tile) bool {
	if t.X < 0 || t.Y < 0 || t.Y >= len(l.Walls) || t.X >= len(l.Walls[t.Y]) {
		return true
	}
	return l.Walls[t.Y][t.X]
}
