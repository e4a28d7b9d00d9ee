package timeline

import "github.com/vovakirdan/chromoecho/internal/core"

// World answers collision queries against level geometry and door panels.
type World struct {
	level     Level
	doors     []*Door
	threshold float64
}

// NewWorld creates collision geometry for a level. Doors are read live, so
// their state changes take effect on the next query.
func NewWorld(level Level, doors []*Door, passThreshold float64) *World {
	return &World{level: level, doors: doors, threshold: passThreshold}
}

// Blocks reports whether a circle at p overlaps a wall or a solid door panel.
// Radii must be below one tile.
func (w *World) Blocks(p core.Vec, radius float64) bool {
	c := core.TileAt(p)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			t := core.T(c.X+dx, c.Y+dy)
			if w.level.IsWall(t) && hitsTile(p, radius, t) {
				return true
			}
		}
	}

	for _, d := range w.doors {
		if d.BlocksPassage(w.threshold) && hitsTile(p, radius, d.Tile) {
			return true
		}
	}
	return false
}

func hitsTile(p core.Vec, radius float64, t core.Tile) bool {
	return core.CircleHitsRect(p, radius, float64(t.X), float64(t.Y), 1, 1)
}
