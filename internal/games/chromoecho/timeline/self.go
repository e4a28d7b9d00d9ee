package timeline

import "github.com/vovakirdan/chromoecho/internal/core"

// Blocker reports whether a circle at p with the given radius collides.
type Blocker func(p core.Vec, radius float64) bool

// TrailPoint is one fading afterimage of a moving self.
type TrailPoint struct {
	Pos   core.Vec
	Alpha float64
}

// Trail keeps the most recent positions of a self, newest first.
type Trail struct {
	Points []TrailPoint
	Max    int
	Fade   float64
}

// Advance records pos when the self was moving and fades every point.
func (t *Trail) Advance(pos core.Vec, moving bool) {
	if moving && t.Max > 0 {
		t.Points = append([]TrailPoint{{Pos: pos, Alpha: 1}}, t.Points...)
		if len(t.Points) > t.Max {
			t.Points = t.Points[:t.Max]
		}
	}
	for i := range t.Points {
		t.Points[i].Alpha *= t.Fade
	}
}

// Reset drops every point.
func (t *Trail) Reset() {
	t.Points = nil
}

// Self is any entity driven by per-tick input: the live player or a ghost.
type Self struct {
	Pos         core.Vec
	Radius      float64
	Vel         core.Vec
	Interacting bool
	Trail       Trail
}

func newSelf(pos core.Vec, t Tuning) Self {
	return Self{
		Pos:    pos,
		Radius: t.SelfRadius,
		Trail:  Trail{Max: t.TrailLength, Fade: t.TrailFade},
	}
}

// Move applies one frame of input. Horizontal and vertical displacement are
// tried separately so a self slides along walls instead of stopping dead.
func (s *Self) Move(dir core.Vec, action bool, speed, elapsed float64, blocked Blocker) {
	s.Trail.Advance(s.Pos, !s.Vel.IsZero())

	step := dir.Scale(speed * elapsed)
	if step.X != 0 {
		if next := core.V(s.Pos.X+step.X, s.Pos.Y); !blocked(next, s.Radius) {
			s.Pos = next
		}
	}
	if step.Y != 0 {
		if next := core.V(s.Pos.X, s.Pos.Y+step.Y); !blocked(next, s.Radius) {
			s.Pos = next
		}
	}

	s.Vel = dir.Scale(speed)
	s.Interacting = action
}

// Hold keeps the self in place for a frame without input.
func (s *Self) Hold() {
	s.Trail.Advance(s.Pos, !s.Vel.IsZero())
	s.Vel = core.Vec{}
	s.Interacting = false
}

func (s *Self) respawn(pos core.Vec) {
	s.Pos = pos
	s.Vel = core.Vec{}
	s.Interacting = false
	s.Trail.Reset()
}

// Player is the live self.
type Player struct {
	Self
}

// Ghost replays one archived loop.
type Ghost struct {
	Self
	LoopIndex int

	// Expected is where the recorded input would have put the ghost this
	// tick; Blocked reports whether geometry kept it elsewhere on that tick.
	Expected core.Vec
	Blocked  bool
}

// Replay advances the ghost with the sample of its loop for this tick.
// Without a sample the ghost holds still.
func (g *Ghost) Replay(sample InputSample, ok bool, speed, elapsed float64, blocked Blocker) {
	g.Blocked = false
	if !ok {
		g.Hold()
		g.Expected = g.Pos
		return
	}

	dir := sample.Keys.Direction()
	step := dir.Scale(speed * elapsed)
	g.Expected = core.V(g.Pos.X+step.X, g.Pos.Y+step.Y)
	g.Move(dir, sample.Action, speed, elapsed, blocked)
	g.Blocked = g.Pos != g.Expected
}
