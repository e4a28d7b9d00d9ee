package timeline_test

import (
	"testing"

	"github.com/vovakirdan/chromoecho/internal/core"
	"github.com/vovakirdan/chromoecho/internal/games/chromoecho/timeline"
)

func TestPlateUpdate(t *testing.T) {
	p := &timeline.Plate{Tile: core.T(2, 2), Links: []string{"d"}}
	on := newTestSelf(core.V(2.5, 2.9))
	off := newTestSelf(core.V(4.5, 2.5))

	p.Update([]*timeline.Self{off, on}, 1.0/60)
	if !p.Active || !p.Pressed {
		t.Errorf("expected active and pressed, got %v %v", p.Active, p.Pressed)
	}
	p.Update([]*timeline.Self{off, on}, 1.0/60)
	if !p.Active || p.Pressed {
		t.Errorf("expected active and held, got %v %v", p.Active, p.Pressed)
	}
	p.Update([]*timeline.Self{off}, 1.0/60)
	if p.Active {
		t.Error("plate should release when nobody stands on it")
	}
	if !p.Controls("d") || p.Controls("e") {
		t.Error("unexpected link result")
	}
}

func TestDoorGating(t *testing.T) {
	d := &timeline.Door{ID: "d"}
	if !d.BlocksPassage(0.5) {
		t.Fatal("closed door should block")
	}

	d.Update(true, 1, 0.25)
	if d.BlocksPassage(0.5) {
		t.Error("an opening door lets selves through")
	}
	for range 4 {
		d.Update(true, 1, 0.25)
	}
	if d.Progress != 1 {
		t.Errorf("expected progress clamped to 1, got %v", d.Progress)
	}

	tests := []struct {
		progress float64
		blocks   bool
	}{
		{0.75, false},
		{0.5, false},
		{0.25, true},
		{0, true},
	}
	for _, tt := range tests {
		d.Update(false, 1, 0.25)
		if d.Progress != tt.progress {
			t.Fatalf("expected progress %v, got %v", tt.progress, d.Progress)
		}
		if got := d.BlocksPassage(0.5); got != tt.blocks {
			t.Errorf("closing at %v: blocks = %v, expected %v", tt.progress, got, tt.blocks)
		}
	}
}

func TestDoorWanted(t *testing.T) {
	plate := &timeline.Plate{Links: []string{"a"}}
	term := &timeline.Terminal{Links: []string{"b"}}
	plates := []*timeline.Plate{plate}
	terms := []*timeline.Terminal{term}

	if timeline.DoorWanted("a", plates, terms) {
		t.Error("inactive plate opened a door")
	}
	plate.Active = true
	if !timeline.DoorWanted("a", plates, terms) {
		t.Error("active plate should open its door")
	}
	if timeline.DoorWanted("b", plates, terms) {
		t.Error("unhacked terminal opened a door")
	}
	term.Hacked = true
	if !timeline.DoorWanted("b", plates, terms) {
		t.Error("hacked terminal should open its door")
	}
}

func TestTerminalHack(t *testing.T) {
	term := &timeline.Terminal{Tile: core.T(1, 1), Duration: 1}
	hacker := newTestSelf(core.V(1.5, 1.5))
	hacker.Interacting = true

	term.Update([]*timeline.Self{hacker}, 0.5, 0.5)
	if !term.BeingHacked || term.Progress != 0.5 {
		t.Fatalf("expected half progress while hacking, got %v", term.Progress)
	}

	term.Update(nil, 0.5, 0.5)
	if term.Progress != 0.25 {
		t.Errorf("expected decay to 0.25, got %v", term.Progress)
	}

	term.Update([]*timeline.Self{hacker}, 0.5, 0.5)
	term.Update([]*timeline.Self{hacker}, 0.5, 0.5)
	if !term.Hacked || term.Fraction() != 1 {
		t.Fatalf("expected hacked terminal, got progress %v", term.Progress)
	}

	term.Update(nil, 10, 0.5)
	if !term.Hacked {
		t.Error("hacked terminal should latch for the loop")
	}
	term.Reset()
	if term.Hacked || term.Progress != 0 {
		t.Error("reset should clear the hack")
	}
}

func TestTerminalNeedsInteract(t *testing.T) {
	term := &timeline.Terminal{Tile: core.T(1, 1), Duration: 1}
	idle := newTestSelf(core.V(1.5, 1.5))

	term.Update([]*timeline.Self{idle}, 0.5, 0.5)
	if term.Progress != 0 || term.BeingHacked {
		t.Error("standing without interacting should not hack")
	}
}

func TestParseOrientation(t *testing.T) {
	tests := []struct {
		in   string
		want timeline.Orientation
		ok   bool
	}{
		{"", timeline.Vertical, true},
		{"v", timeline.Vertical, true},
		{"horizontal", timeline.Horizontal, true},
		{"h", timeline.Horizontal, true},
		{"diagonal", timeline.Vertical, false},
	}
	for _, tt := range tests {
		got, ok := timeline.ParseOrientation(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseOrientation(%q) = %v, %v, expected %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestWorldDoorBlocks(t *testing.T) {
	lvl := openRoom(5, 5)
	door := &timeline.Door{ID: "d", Tile: core.T(2, 2)}
	w := timeline.NewWorld(lvl, []*timeline.Door{door}, 0.5)

	p := core.V(2.5, 2.5)
	if !w.Blocks(p, 0.35) {
		t.Error("closed door should block")
	}
	door.Update(true, 5, 1.0/60)
	if w.Blocks(p, 0.35) {
		t.Error("opening door should not block")
	}
	if !w.Blocks(core.V(-3, 2.5), 0.35) {
		t.Error("outside the grid should be solid")
	}
}
