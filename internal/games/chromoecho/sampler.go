package chromoecho

import (
	"github.com/vovakirdan/chromoecho/internal/core"
	"github.com/vovakirdan/chromoecho/internal/games/chromoecho/timeline"
)

// DefaultHoldTicks is how long a key press counts as held without a repeat.
const DefaultHoldTicks = 9

// Sampler turns terminal key presses into per-tick held input.
//
// Terminals report key presses and auto-repeats but never releases, so a
// direction or interact press is treated as held for a short window that
// each repeat refreshes. Pause and reset are one-shot and are consumed by the
// next Sample.
type Sampler struct {
	holdTicks int
	held      map[core.Action]int
	pause     bool
	reset     bool
}

// NewSampler creates a sampler with the given hold window in ticks.
func NewSampler(holdTicks int) *Sampler {
	if holdTicks < 1 {
		holdTicks = DefaultHoldTicks
	}
	return &Sampler{
		holdTicks: holdTicks,
		held:      make(map[core.Action]int),
	}
}

var opposite = map[core.Action]core.Action{
	core.ActionUp:    core.ActionDown,
	core.ActionDown:  core.ActionUp,
	core.ActionLeft:  core.ActionRight,
	core.ActionRight: core.ActionLeft,
}

// Press registers one key event.
func (s *Sampler) Press(a core.Action) {
	switch {
	case a.IsMovement():
		delete(s.held, opposite[a])
		s.held[a] = s.holdTicks
	case a == core.ActionInteract:
		s.held[a] = s.holdTicks
	case a == core.ActionPause:
		s.pause = true
	case a == core.ActionReset:
		s.reset = true
	}
}

// Feed registers every action of a platform input frame.
func (s *Sampler) Feed(frame core.InputFrame) {
	for a, on := range frame.Actions {
		if on {
			s.Press(a)
		}
	}
}

// Sample returns the input for the next tick and ages the held keys.
func (s *Sampler) Sample() timeline.Input {
	in := timeline.Input{
		Action: s.held[core.ActionInteract] > 0,
		Pause:  s.pause,
		Reset:  s.reset,
	}
	if s.held[core.ActionUp] > 0 {
		in.Keys |= timeline.KeyUp
	}
	if s.held[core.ActionDown] > 0 {
		in.Keys |= timeline.KeyDown
	}
	if s.held[core.ActionLeft] > 0 {
		in.Keys |= timeline.KeyLeft
	}
	if s.held[core.ActionRight] > 0 {
		in.Keys |= timeline.KeyRight
	}

	for a, n := range s.held {
		if n <= 1 {
			delete(s.held, a)
		} else {
			s.held[a] = n - 1
		}
	}
	s.pause = false
	s.reset = false
	return in
}

// Release drops every held key and pending latch.
func (s *Sampler) Release() {
	clear(s.held)
	s.pause = false
	s.reset = false
}
