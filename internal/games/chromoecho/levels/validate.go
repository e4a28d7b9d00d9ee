package levels

import (
	"fmt"

	"github.com/pixil98/go-errors"

	"github.com/vovakirdan/chromoecho/internal/core"
	"github.com/vovakirdan/chromoecho/internal/games/chromoecho/timeline"
)

// Validate reports every structural problem of a level at once.
func Validate(l timeline.Level) error {
	el := errors.NewErrorList()

	if l.ID == "" {
		el.Add(fmt.Errorf("id is required"))
	}
	if l.LoopSeconds <= 0 {
		el.Add(fmt.Errorf("loop_seconds must be positive, got %v", l.LoopSeconds))
	} else if l.LoopTicks() < 1 {
		el.Add(fmt.Errorf("loop_seconds %v is shorter than one tick", l.LoopSeconds))
	}
	if l.MaxLoops <= 0 {
		el.Add(fmt.Errorf("max_loops must be positive, got %d", l.MaxLoops))
	}
	if l.MinLoops > l.MaxLoops && l.MaxLoops > 0 {
		el.Add(fmt.Errorf("min_loops %d exceeds max_loops %d", l.MinLoops, l.MaxLoops))
	}

	if l.Width < 3 || l.Height < 3 {
		el.Add(fmt.Errorf("layout must be at least 3x3, got %dx%d", l.Width, l.Height))
		return el.Err()
	}
	for y, row := range l.Walls {
		if len(row) != l.Width {
			el.Add(fmt.Errorf("layout row %d has %d columns, expected %d", y, len(row), l.Width))
		}
	}

	el.Add(floor(l, "start", l.Start))

	if len(l.Exits) == 0 {
		el.Add(fmt.Errorf("at least one exit is required"))
	}
	for i, e := range l.Exits {
		el.Add(floor(l, fmt.Sprintf("exit %d", i), e))
	}

	doorIDs := make(map[string]bool)
	for i, d := range l.Doors {
		if d.ID == "" {
			el.Add(fmt.Errorf("door %d: id is required", i))
		}
		doorIDs[d.ID] = true
		el.Add(floor(l, fmt.Sprintf("door %s", d.ID), d.At))
		if d.At == l.Start {
			el.Add(fmt.Errorf("door %s: placed on the start tile", d.ID))
		}
	}

	for i, p := range l.Plates {
		el.Add(floor(l, fmt.Sprintf("plate %d", i), p.At))
		el.Add(links(fmt.Sprintf("plate %d", i), p.Links, doorIDs))
	}
	for i, t := range l.Terminals {
		el.Add(floor(l, fmt.Sprintf("terminal %d", i), t.At))
		el.Add(links(fmt.Sprintf("terminal %d", i), t.Links, doorIDs))
		if t.HackSeconds < 0 {
			el.Add(fmt.Errorf("terminal %d: hack_seconds must not be negative", i))
		}
	}

	for i, g := range l.Guards {
		if len(g.Path) == 0 {
			el.Add(fmt.Errorf("guard %d: path is empty", i))
		}
		for j, p := range g.Path {
			el.Add(floor(l, fmt.Sprintf("guard %d waypoint %d", i, j), p))
		}
		if g.Speed < 0 || g.Wait < 0 || g.VisionRange < 0 || g.VisionAngle < 0 {
			el.Add(fmt.Errorf("guard %d: negative patrol setting", i))
		}
	}

	return el.Err()
}

func floor(l timeline.Level, what string, t core.Tile) error {
	if t.X < 0 || t.Y < 0 || t.X >= l.Width || t.Y >= l.Height {
		return fmt.Errorf("%s at (%d,%d) is outside the %dx%d layout", what, t.X, t.Y, l.Width, l.Height)
	}
	if l.IsWall(t) {
		return fmt.Errorf("%s at (%d,%d) is inside a wall", what, t.X, t.Y)
	}
	return nil
}

func links(what string, ids []string, doors map[string]bool) error {
	el := errors.NewErrorList()
	if len(ids) == 0 {
		el.Add(fmt.Errorf("%s: links no door", what))
	}
	for _, id := range ids {
		if !doors[id] {
			el.Add(fmt.Errorf("%s: links unknown door %q", what, id))
		}
	}
	return el.Err()
}
