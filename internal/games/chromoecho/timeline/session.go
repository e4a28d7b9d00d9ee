package timeline

import (
	"time"

	"github.com/vovakirdan/chromoecho/internal/core"
)

// Input is the immutable input value for one frame.
type Input struct {
	Keys   Keys
	Action bool // interact held
	Pause  bool // pause toggle pressed
	Reset  bool // reset pressed: ends the loop early, or restarts after an ending
}

// SessionState is the game-level state of a session.
type SessionState int

const (
	SessionPlaying SessionState = iota
	SessionPaused
	SessionComplete
	SessionFailed
	SessionParadox
	SessionDetected
)

func (s SessionState) String() string {
	switch s {
	case SessionPlaying:
		return "playing"
	case SessionPaused:
		return "paused"
	case SessionComplete:
		return "complete"
	case SessionFailed:
		return "out_of_loops"
	case SessionParadox:
		return "paradox"
	case SessionDetected:
		return "detected"
	default:
		return "unknown"
	}
}

// Ended reports whether the session reached a terminal outcome.
func (s SessionState) Ended() bool {
	return s >= SessionComplete
}

// EventKind tags the outcome of a frame.
type EventKind int

const (
	EventNone EventKind = iota
	EventLoopAdvanced
	EventLoopFailed
	EventParadox
	EventComplete
	EventDetected
)

func (k EventKind) String() string {
	switch k {
	case EventNone:
		return "none"
	case EventLoopAdvanced:
		return "loop_advanced"
	case EventLoopFailed:
		return "loop_failed"
	case EventParadox:
		return "paradox"
	case EventComplete:
		return "complete"
	case EventDetected:
		return "detected"
	default:
		return "unknown"
	}
}

// Event is the outcome of a frame. Only the fields relevant to Kind are set.
type Event struct {
	Kind EventKind

	Ghosts     int    // EventLoopAdvanced: ghosts now in play
	Loops      int    // EventLoopFailed, EventComplete: loops used
	TotalTicks int    // EventComplete
	Pair       [2]int // EventParadox: self indices, 0 = player
	Guard      int    // EventDetected: guard index
}

// Result is returned by every Frame and Step call.
type Result struct {
	Ticks int // ticks simulated by this call
	Tick  int
	Loop  int
	State SessionState
	Event Event
}

// Session runs one level: it owns the clock, every self and every level
// object, and advances them in a fixed order each frame.
type Session struct {
	level  Level
	tuning Tuning

	clock   *Clock
	world   *World
	monitor *ParadoxMonitor

	player    *Player
	ghosts    []*Ghost
	guards    []*Guard
	plates    []*Plate
	doors     []*Door
	terminals []*Terminal
	exits     []*Exit

	state      SessionState
	last       Event
	completion Completion
}

// NewSession builds a session for the level and starts its first loop.
func NewSession(level Level, tuning Tuning) *Session {
	s := &Session{
		level:   level,
		tuning:  tuning,
		clock:   NewClock(level.LoopTicks(), level.MaxLoops),
		monitor: NewParadoxMonitor(tuning.ParadoxFactor),
	}

	start := level.Start.Center()
	s.player = &Player{Self: newSelf(start, tuning)}

	for _, gs := range level.Guards {
		s.guards = append(s.guards, NewGuard(gs, tuning))
	}
	for _, ps := range level.Plates {
		s.plates = append(s.plates, &Plate{Tile: ps.At, Links: ps.Links})
	}
	for _, ds := range level.Doors {
		s.doors = append(s.doors, &Door{ID: ds.ID, Tile: ds.At, Orientation: ds.Orientation})
	}
	for _, ts := range level.Terminals {
		s.terminals = append(s.terminals, &Terminal{
			Tile:     ts.At,
			Links:    ts.Links,
			Duration: orDefault(ts.HackSeconds, tuning.TerminalHackSeconds),
		})
	}
	for _, e := range level.Exits {
		s.exits = append(s.exits, &Exit{Tile: e})
	}
	s.world = NewWorld(level, s.doors, tuning.DoorPassThreshold)

	s.Restart()
	return s
}

// Restart begins the level again from loop 1 with no ghosts.
func (s *Session) Restart() {
	s.clock.Start()
	s.ghosts = nil
	s.state = SessionPlaying
	s.last = Event{}
	s.completion = Completion{}
	s.resetLoop()
}

// Step advances the session by exactly one tick.
func (s *Session) Step(in Input) Result {
	return s.Frame(TickDuration, in)
}

// Frame advances the session by dt of wall-clock time.
//
// Order within a frame: pause and reset handling, clock update, input record,
// player, ghosts oldest first, paradox check, guards, plates, terminals,
// doors, exits. A paradox or a detection ends the frame where it happens.
func (s *Session) Frame(dt time.Duration, in Input) Result {
	switch {
	case s.state.Ended():
		if in.Reset {
			s.Restart()
		}
		return s.result(0, Event{})
	case s.state == SessionPaused:
		if in.Pause {
			s.clock.Resume()
			s.state = SessionPlaying
		}
		return s.result(0, Event{})
	case in.Pause:
		s.clock.Pause()
		s.state = SessionPaused
		return s.result(0, Event{})
	case in.Reset:
		return s.result(0, s.loopEnded(s.clock.ManualReset()))
	}

	if s.tuning.MaxFrameDelta > 0 {
		dt = min(dt, s.tuning.MaxFrameDelta)
	}
	ticks, ev := s.clock.Update(dt)
	if ev != LoopNone {
		return s.result(ticks, s.loopEnded(ev))
	}
	if ticks == 0 {
		return s.result(0, Event{})
	}
	return s.result(ticks, s.simulate(in, float64(ticks)/TicksPerSecond))
}

func (s *Session) simulate(in Input, elapsed float64) Event {
	s.clock.RecordInput(in.Keys, in.Action)
	tick := s.clock.Tick()
	speed := s.tuning.SelfSpeed

	s.player.Move(in.Keys.Direction(), in.Action, speed, elapsed, s.playerBlocked)
	for _, g := range s.ghosts {
		sample, ok := s.clock.Lookup(g.LoopIndex, tick)
		g.Replay(sample, ok, speed, elapsed, s.world.Blocks)
	}

	selves := s.selves()
	if a, b, hit := s.monitor.Check(selves); hit {
		s.clock.TriggerParadox()
		s.state = SessionParadox
		return Event{Kind: EventParadox, Pair: [2]int{a, b}}
	}

	for i, g := range s.guards {
		g.Update(elapsed)
		if g.CanSee(s.player.Pos) {
			g.Alert = true
			s.state = SessionDetected
			return Event{Kind: EventDetected, Guard: i}
		}
	}

	for _, p := range s.plates {
		p.Update(selves, elapsed)
	}
	for _, t := range s.terminals {
		t.Update(selves, elapsed, s.tuning.TerminalDecay)
	}
	for _, d := range s.doors {
		d.Update(DoorWanted(d.ID, s.plates, s.terminals), s.tuning.DoorRate, elapsed)
	}

	for _, e := range s.exits {
		e.Update(elapsed)
		if e.Reached(s.player.Pos) {
			s.completion = s.clock.CompleteLevel()
			s.state = SessionComplete
			return Event{
				Kind:       EventComplete,
				Loops:      s.completion.Loops,
				TotalTicks: s.completion.TotalTicks,
			}
		}
	}
	return Event{}
}

// playerBlocked rejects walls, solid doors and the bodies of ghosts the
// player has already stepped away from.
func (s *Session) playerBlocked(p core.Vec, radius float64) bool {
	if s.world.Blocks(p, radius) {
		return true
	}
	for i, g := range s.ghosts {
		if !s.monitor.Separated(0, i+1) {
			continue
		}
		if p.Dist(g.Pos) < radius+g.Radius*s.tuning.GhostBodyFactor {
			return true
		}
	}
	return false
}

// guardMultiplier is the escalation of the current loop relative to the first.
func (s *Session) guardMultiplier() float64 {
	steps := s.clock.Loop() - 1
	if n := s.tuning.GuardEscalationLoops; n > 0 {
		steps = min(steps, n)
	}
	return 1 + s.tuning.GuardEscalation*float64(steps)
}

func (s *Session) loopEnded(ev LoopEvent) Event {
	switch ev {
	case LoopAdvanced:
		idx := s.clock.GhostCount() - 1
		g := &Ghost{Self: newSelf(s.level.Start.Center(), s.tuning), LoopIndex: idx}
		s.ghosts = append(s.ghosts, g)
		s.resetLoop()
		return Event{Kind: EventLoopAdvanced, Ghosts: len(s.ghosts)}
	case LoopFailed:
		s.state = SessionFailed
		return Event{Kind: EventLoopFailed, Loops: s.clock.Loop()}
	}
	return Event{}
}

// resetLoop puts every self and object back to its loop-start state.
func (s *Session) resetLoop() {
	start := s.level.Start.Center()
	s.player.respawn(start)
	for _, g := range s.ghosts {
		g.respawn(start)
		g.Expected = start
		g.Blocked = false
	}

	mult := s.guardMultiplier()
	for _, g := range s.guards {
		g.Escalate(mult)
		g.Reset()
	}
	for _, p := range s.plates {
		p.Reset()
	}
	for _, d := range s.doors {
		d.Reset()
	}
	for _, t := range s.terminals {
		t.Reset()
	}
	for _, e := range s.exits {
		e.Phase = 0
	}
	s.monitor.Begin(s.selves())
}

func (s *Session) result(ticks int, ev Event) Result {
	if ev.Kind != EventNone {
		s.last = ev
	}
	return Result{
		Ticks: ticks,
		Tick:  s.clock.Tick(),
		Loop:  s.clock.Loop(),
		State: s.state,
		Event: ev,
	}
}

// selves returns the player followed by the ghosts in loop order.
func (s *Session) selves() []*Self {
	out := make([]*Self, 0, len(s.ghosts)+1)
	out = append(out, &s.player.Self)
	for _, g := range s.ghosts {
		out = append(out, &g.Self)
	}
	return out
}

// Level returns the level being played.
func (s *Session) Level() Level { return s.level }

// Tuning returns the constants the session was built with.
func (s *Session) Tuning() Tuning { return s.tuning }

// Clock returns the loop clock.
func (s *Session) Clock() *Clock { return s.clock }

// State returns the session state.
func (s *Session) State() SessionState { return s.state }

// Player returns the live player.
func (s *Session) Player() *Player { return s.player }

// Ghosts returns the ghosts, oldest loop first.
func (s *Session) Ghosts() []*Ghost { return s.ghosts }

// Guards returns the guards in level order.
func (s *Session) Guards() []*Guard { return s.guards }

// Plates returns the pressure plates in level order.
func (s *Session) Plates() []*Plate { return s.plates }

// Doors returns the door panels in level order.
func (s *Session) Doors() []*Door { return s.doors }

// Terminals returns the data terminals in level order.
func (s *Session) Terminals() []*Terminal { return s.terminals }

// Exits returns the exits in level order.
func (s *Session) Exits() []*Exit { return s.exits }

// LastEvent returns the most recent non-empty event.
func (s *Session) LastEvent() Event { return s.last }

// Completion returns the run statistics once the level is complete.
func (s *Session) Completion() Completion { return s.completion }

// World returns the collision grid.
func (s *Session) World() *World { return s.world }

// Monitor returns the paradox monitor.
func (s *Session) Monitor() *ParadoxMonitor { return s.monitor }
