package timeline

import (
	"math"
	"time"

	"github.com/vovakirdan/chromoecho/internal/core"
)

// SelfView is the render state of the player or a ghost.
type SelfView struct {
	Pos         core.Vec
	Radius      float64
	Alpha       float64
	Interacting bool
	Trail       []TrailPoint
	LoopIndex   int // -1 for the player
}

// GuardView is the render state of a guard. Cone is the polygon from
// Guard.VisionCone.
type GuardView struct {
	Pos         core.Vec
	Facing      float64
	VisionRange float64
	VisionAngle float64
	Alert       bool
	Cone        []core.Vec
}

// Covers reports whether p lies inside the guard's vision cone.
func (v GuardView) Covers(p core.Vec) bool {
	d := p.Sub(v.Pos)
	if d.Len() > v.VisionRange {
		return false
	}
	return math.Abs(core.NormalizeAngle(d.Angle()-v.Facing)) <= v.VisionAngle/2
}

// PlateView is the render state of a pressure plate.
type PlateView struct {
	Tile   core.Tile
	Active bool
}

// DoorView is the render state of one door panel.
type DoorView struct {
	ID          string
	Tile        core.Tile
	Orientation Orientation
	Progress    float64
	Blocking    bool
}

// TerminalView is the render state of a data terminal.
type TerminalView struct {
	Tile     core.Tile
	Progress float64 // fraction in [0, 1]
	Hacked   bool
}

// ExitView is the render state of an exit. Phase only drives the pulse.
type ExitView struct {
	Tile  core.Tile
	Phase float64
}

// Snapshot is a read-only copy of everything a renderer or a test needs.
type Snapshot struct {
	Tick      int
	Loop      int
	MaxLoops  int
	Remaining time.Duration
	Progress  float64
	State     SessionState
	Clock     ClockState
	LastEvent Event

	Player    SelfView
	Ghosts    []SelfView
	Guards    []GuardView
	Plates    []PlateView
	Doors     []DoorView
	Terminals []TerminalView
	Exits     []ExitView
}

const coneSegments = 8

// Snapshot captures the current session state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:      s.clock.Tick(),
		Loop:      s.clock.Loop(),
		MaxLoops:  s.clock.MaxLoops(),
		Remaining: s.clock.Remaining(),
		Progress:  s.clock.Progress(),
		State:     s.state,
		Clock:     s.clock.State(),
		LastEvent: s.last,
		Player:    selfView(&s.player.Self, 1, -1),
	}

	for _, g := range s.ghosts {
		snap.Ghosts = append(snap.Ghosts, selfView(&g.Self, ghostAlpha(g.LoopIndex, len(s.ghosts)), g.LoopIndex))
	}
	for _, g := range s.guards {
		snap.Guards = append(snap.Guards, GuardView{
			Pos:         g.Pos,
			Facing:      g.Facing,
			VisionRange: g.VisionRange,
			VisionAngle: g.VisionAngle,
			Alert:       g.Alert,
			Cone:        g.VisionCone(coneSegments),
		})
	}
	for _, p := range s.plates {
		snap.Plates = append(snap.Plates, PlateView{Tile: p.Tile, Active: p.Active})
	}
	for _, d := range s.doors {
		snap.Doors = append(snap.Doors, DoorView{
			ID:          d.ID,
			Tile:        d.Tile,
			Orientation: d.Orientation,
			Progress:    d.Progress,
			Blocking:    d.BlocksPassage(s.tuning.DoorPassThreshold),
		})
	}
	for _, t := range s.terminals {
		snap.Terminals = append(snap.Terminals, TerminalView{Tile: t.Tile, Progress: t.Fraction(), Hacked: t.Hacked})
	}
	for _, e := range s.exits {
		snap.Exits = append(snap.Exits, ExitView{Tile: e.Tile, Phase: e.Phase})
	}
	return snap
}

func selfView(s *Self, alpha float64, loop int) SelfView {
	return SelfView{
		Pos:         s.Pos,
		Radius:      s.Radius,
		Alpha:       alpha,
		Interacting: s.Interacting,
		Trail:       append([]TrailPoint(nil), s.Trail.Points...),
		LoopIndex:   loop,
	}
}

// ghostAlpha fades older echoes: the newest ghost is the most opaque.
func ghostAlpha(loopIndex, count int) float64 {
	if count <= 0 {
		return 0.5
	}
	return 0.3 + 0.4*float64(loopIndex+1)/float64(count)
}
