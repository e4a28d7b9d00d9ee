// Package timeline implements the ChromoEcho time-loop simulation: a fixed-tick
// loop clock with per-tick input recording, replay of archived loops as ghosts,
// paradox and stealth rules, and the interactive level objects.
// Nothing here touches the terminal, files or wall-clock time; callers feed
// durations and input values and read snapshots back.
package timeline

import (
	"math"
	"time"

	"github.com/vovakirdan/chromoecho/internal/core"
)

// TicksPerSecond is the fixed simulation rate.
const TicksPerSecond = core.TickRate

// TickDuration is the simulated time consumed by one tick.
const TickDuration = time.Second / TicksPerSecond

// TicksFor converts a loop length in seconds to a tick capacity.
func TicksFor(seconds float64) int {
	return int(math.Round(seconds * TicksPerSecond))
}

// TicksToDuration converts a tick count to simulated time.
func TicksToDuration(ticks int) time.Duration {
	return time.Duration(ticks) * time.Second / TicksPerSecond
}

// ClockState is the lifecycle state of the loop clock.
type ClockState int

const (
	StateIdle ClockState = iota
	StateRunning
	StatePaused
	StateEndedFailed
	StateEndedComplete
	StateEndedParadox
)

func (s ClockState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateEndedFailed:
		return "ended-failed"
	case StateEndedComplete:
		return "ended-complete"
	case StateEndedParadox:
		return "ended-paradox"
	default:
		return "unknown"
	}
}

// Ended reports whether the state is terminal.
func (s ClockState) Ended() bool {
	return s >= StateEndedFailed
}

// LoopEvent is the loop-level outcome of a clock operation.
type LoopEvent int

const (
	LoopNone     LoopEvent = iota
	LoopAdvanced           // a loop was archived and the next one began
	LoopFailed             // the last allowed loop ran out
)

// Completion reports how long a completed level took.
type Completion struct {
	Loops      int // loops used, including the winning one
	TotalTicks int // (Loops-1)*capacity + tick of completion
}

// Duration returns the simulated time of the completed run.
func (c Completion) Duration() time.Duration {
	return TicksToDuration(c.TotalTicks)
}

// Clock is the time loop manager. It owns the fixed-step accumulator, the
// recording of the loop in progress, and the archive of finished loops.
type Clock struct {
	capacity int
	maxLoops int

	state     ClockState
	tick      int
	loop      int
	accum     time.Duration
	recording Recording
	history   History
}

// NewClock creates an idle clock for loops of loopTicks ticks, allowing at
// most maxLoops loops.
func NewClock(loopTicks, maxLoops int) *Clock {
	return &Clock{
		capacity: max(loopTicks, 1),
		maxLoops: max(maxLoops, 1),
	}
}

// Start begins the first loop, discarding any previous history.
func (c *Clock) Start() {
	c.state = StateRunning
	c.tick = 0
	c.loop = 1
	c.accum = 0
	c.recording = nil
	c.history = History{}
}

// Update feeds wall-clock time into the accumulator and consumes whole ticks.
// It returns the number of ticks consumed and the loop event, if the loop
// ended during this call. At most one loop ends per call; time left over
// after a loop end is dropped.
func (c *Clock) Update(dt time.Duration) (int, LoopEvent) {
	if c.state != StateRunning || dt <= 0 {
		return 0, LoopNone
	}

	c.accum += dt
	ticks := 0
	for c.accum >= TickDuration {
		c.accum -= TickDuration
		c.tick++
		ticks++
		if c.tick >= c.capacity {
			return ticks, c.endLoop()
		}
	}
	return ticks, LoopNone
}

// RecordInput stores the input of the current tick in the loop recording.
// It is a no-op unless the clock is running.
func (c *Clock) RecordInput(keys Keys, action bool) {
	if c.state != StateRunning {
		return
	}
	c.recording = append(c.recording, InputSample{Tick: c.tick, Keys: keys, Action: action})
}

// ManualReset cuts the running loop short through the normal loop-end path.
func (c *Clock) ManualReset() LoopEvent {
	if c.state != StateRunning {
		return LoopNone
	}
	return c.endLoop()
}

func (c *Clock) endLoop() LoopEvent {
	c.history.archive(c.recording)
	c.recording = nil
	c.accum = 0
	c.tick = 0

	if c.loop >= c.maxLoops {
		c.state = StateEndedFailed
		return LoopFailed
	}
	c.loop++
	return LoopAdvanced
}

// TriggerParadox stops the clock. The loop in progress is never archived.
func (c *Clock) TriggerParadox() {
	if c.state != StateRunning && c.state != StatePaused {
		return
	}
	c.state = StateEndedParadox
	c.recording = nil
}

// CompleteLevel stops the clock and reports the run length.
func (c *Clock) CompleteLevel() Completion {
	if c.state == StateRunning || c.state == StatePaused {
		c.state = StateEndedComplete
	}
	return Completion{
		Loops:      c.loop,
		TotalTicks: (c.loop-1)*c.capacity + c.tick,
	}
}

// Pause freezes tick consumption.
func (c *Clock) Pause() {
	if c.state == StateRunning {
		c.state = StatePaused
	}
}

// Resume continues a paused clock.
func (c *Clock) Resume() {
	if c.state == StatePaused {
		c.state = StateRunning
	}
}

// Lookup returns the recorded input of an archived loop at the given tick.
func (c *Clock) Lookup(loopIndex, tick int) (InputSample, bool) {
	return c.history.Lookup(loopIndex, tick)
}

// State returns the clock state.
func (c *Clock) State() ClockState { return c.state }

// Running reports whether ticks are being consumed.
func (c *Clock) Running() bool { return c.state == StateRunning }

// Tick returns the tick index within the current loop.
func (c *Clock) Tick() int { return c.tick }

// Loop returns the 1-based loop number.
func (c *Clock) Loop() int { return c.loop }

// MaxLoops returns the number of loops allowed.
func (c *Clock) MaxLoops() int { return c.maxLoops }

// Capacity returns the length of a loop in ticks.
func (c *Clock) Capacity() int { return c.capacity }

// Accumulated returns the wall-clock time not yet consumed as ticks.
func (c *Clock) Accumulated() time.Duration { return c.accum }

// GhostCount returns the number of archived loops.
func (c *Clock) GhostCount() int { return c.history.Len() }

// History returns the archive of finished loops.
func (c *Clock) History() History { return c.history }

// Recording returns a copy of the loop in progress.
func (c *Clock) Recording() Recording {
	return append(Recording(nil), c.recording...)
}

// Remaining returns the simulated time left in the current loop.
func (c *Clock) Remaining() time.Duration {
	return TicksToDuration(c.capacity - c.tick)
}

// Progress returns the fraction of the current loop already elapsed.
func (c *Clock) Progress() float64 {
	return float64(c.tick) / float64(c.capacity)
}
