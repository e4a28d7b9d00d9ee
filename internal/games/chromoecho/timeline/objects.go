package timeline

import (
	"slices"

	"github.com/vovakirdan/chromoecho/internal/core"
)

// OnTile reports whether the point p lies in tile t.
func OnTile(p core.Vec, t core.Tile) bool {
	return core.TileAt(p) == t
}

func anyOnTile(selves []*Self, t core.Tile) bool {
	for _, s := range selves {
		if OnTile(s.Pos, t) {
			return true
		}
	}
	return false
}

// Plate is a pressure plate. It is active on every tick some self stands on it.
type Plate struct {
	Tile  core.Tile
	Links []string

	Active  bool
	Pressed bool // became active this tick
	Pulse   float64
}

// Update recomputes the plate from the current positions of all selves.
func (p *Plate) Update(selves []*Self, elapsed float64) {
	was := p.Active
	p.Active = anyOnTile(selves, p.Tile)
	p.Pressed = p.Active && !was
	p.Pulse += elapsed * 4
}

// Controls reports whether the plate is linked to door id.
func (p *Plate) Controls(id string) bool {
	return slices.Contains(p.Links, id)
}

func (p *Plate) Reset() {
	p.Active = false
	p.Pressed = false
	p.Pulse = 0
}

// Orientation is the axis a door panel spans.
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// ParseOrientation accepts "vertical"/"v" and "horizontal"/"h".
func ParseOrientation(s string) (Orientation, bool) {
	switch s {
	case "vertical", "v", "":
		return Vertical, true
	case "horizontal", "h":
		return Horizontal, true
	}
	return Vertical, false
}

// Door is one door panel. Panels sharing an ID are driven by the same sources.
type Door struct {
	ID          string
	Tile        core.Tile
	Orientation Orientation

	Open     bool // target state derived this tick
	Progress float64
}

// Update sets the target state and animates Progress toward it.
func (d *Door) Update(open bool, rate, elapsed float64) {
	d.Open = open
	if open {
		d.Progress = min(d.Progress+rate*elapsed, 1)
	} else {
		d.Progress = max(d.Progress-rate*elapsed, 0)
	}
}

// BlocksPassage reports whether the panel is solid. An opening door lets
// selves through at once; a closing one turns solid below the threshold.
func (d *Door) BlocksPassage(threshold float64) bool {
	return !d.Open && d.Progress < threshold
}

func (d *Door) Reset() {
	d.Open = false
	d.Progress = 0
}

// DoorWanted reports whether any active plate or hacked terminal links id.
func DoorWanted(id string, plates []*Plate, terminals []*Terminal) bool {
	for _, p := range plates {
		if p.Active && p.Controls(id) {
			return true
		}
	}
	for _, t := range terminals {
		if t.Hacked && slices.Contains(t.Links, id) {
			return true
		}
	}
	return false
}

// Exit completes the level when the live player reaches its tile.
type Exit struct {
	Tile  core.Tile
	Phase float64
}

func (e *Exit) Update(elapsed float64) {
	e.Phase += elapsed * 2
}

// Reached reports whether a point is on the exit tile.
func (e *Exit) Reached(p core.Vec) bool {
	return OnTile(p, e.Tile)
}

// Terminal is hacked by a self standing on it with interact held. Progress
// decays while nobody is hacking; once hacked it stays hacked for the loop.
type Terminal struct {
	Tile     core.Tile
	Links    []string
	Duration float64

	Progress    float64
	Hacked      bool
	BeingHacked bool
}

func (t *Terminal) Update(selves []*Self, elapsed, decay float64) {
	if t.Hacked {
		return
	}

	t.BeingHacked = false
	for _, s := range selves {
		if s.Interacting && OnTile(s.Pos, t.Tile) {
			t.BeingHacked = true
			break
		}
	}

	if t.BeingHacked {
		t.Progress += elapsed
		if t.Progress >= t.Duration {
			t.Progress = t.Duration
			t.Hacked = true
			t.BeingHacked = false
		}
		return
	}
	t.Progress = max(t.Progress-elapsed*decay, 0)
}

// Fraction returns hack progress in [0, 1].
func (t *Terminal) Fraction() float64 {
	if t.Duration <= 0 {
		return 1
	}
	return t.Progress / t.Duration
}

func (t *Terminal) Reset() {
	t.Progress = 0
	t.Hacked = false
	t.BeingHacked = false
}
