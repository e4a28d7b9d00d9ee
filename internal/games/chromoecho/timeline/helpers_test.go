package timeline_test

import (
	"strings"

	"github.com/vovakirdan/chromoecho/internal/core"
	"github.com/vovakirdan/chromoecho/internal/games/chromoecho/timeline"
)

// gridLevel builds a level from rows of '#' (wall) and '.' (floor).
func gridLevel(rows ...string) timeline.Level {
	lvl := timeline.Level{
		ID:          "test",
		Name:        "Test",
		Height:      len(rows),
		LoopSeconds: 15,
		MaxLoops:    3,
	}
	for _, row := range rows {
		lvl.Width = max(lvl.Width, len(row))
		walls := make([]bool, len(row))
		for x, r := range row {
			walls[x] = r == '#'
		}
		lvl.Walls = append(lvl.Walls, walls)
	}
	return lvl
}

// firstEcho is a plate, one door and an exit behind it: the plate is out of
// reach of anyone who wants to walk through the door.
func firstEcho() timeline.Level {
	lvl := gridLevel(
		"##########",
		"#....#...#",
		"#....#...#",
		"#........#",
		"#....#...#",
		"#....#...#",
		"#....#...#",
		"##########",
	)
	lvl.ID = "first-echo"
	lvl.Name = "First Echo"
	lvl.MaxLoops = 2
	lvl.Start = core.T(1, 1)
	lvl.Plates = []timeline.PlateSpec{{At: core.T(3, 5), Links: []string{"door1"}}}
	lvl.Doors = []timeline.DoorSpec{{ID: "door1", At: core.T(5, 3), Orientation: timeline.Vertical}}
	lvl.Exits = []core.Tile{core.T(8, 4)}
	return lvl
}

func openRoom(w, h int) timeline.Level {
	rows := make([]string, h)
	for y := range rows {
		if y == 0 || y == h-1 {
			rows[y] = strings.Repeat("#", w)
			continue
		}
		rows[y] = "#" + strings.Repeat(".", w-2) + "#"
	}
	return gridLevel(rows...)
}

type scriptStep struct {
	in    timeline.Input
	ticks int
}

func hold(keys timeline.Keys, ticks int) scriptStep {
	return scriptStep{in: timeline.Input{Keys: keys}, ticks: ticks}
}

func resetLoop() scriptStep {
	return scriptStep{in: timeline.Input{Reset: true}, ticks: 1}
}

// run steps the session through the script and returns every non-empty event.
func run(s *timeline.Session, script []scriptStep) []timeline.Event {
	var events []timeline.Event
	for _, st := range script {
		for range st.ticks {
			res := s.Step(st.in)
			if res.Event.Kind != timeline.EventNone {
				events = append(events, res.Event)
			}
		}
	}
	return events
}

// tutorialSolution records a ghost on the plate, then walks the live player
// through the door it holds open.
func tutorialSolution() []scriptStep {
	return []scriptStep{
		hold(timeline.KeyDown, 60),
		hold(timeline.KeyRight, 30),
		hold(0, 1),
		resetLoop(),
		hold(timeline.KeyRight, 45),
		hold(timeline.KeyDown, 30),
		hold(0, 15),
		hold(timeline.KeyRight, 60),
		hold(timeline.KeyDown, 20),
	}
}
