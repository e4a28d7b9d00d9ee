package timeline

import (
	"math"
	"time"
)

// Tuning holds the constants of the simulation. Distances are in tiles,
// speeds in tiles per second, durations in seconds unless typed otherwise.
type Tuning struct {
	SelfSpeed   float64
	SelfRadius  float64
	TrailLength int
	TrailFade   float64

	// ParadoxFactor scales the summed radii below which two selves overlap.
	ParadoxFactor float64
	// GhostBodyFactor scales a ghost's radius when it blocks the player.
	GhostBodyFactor float64

	DoorRate          float64 // open progress per second
	DoorPassThreshold float64 // a closing door blocks below this progress

	GuardSpeed         float64
	GuardWait          float64
	GuardVisionRange   float64
	GuardVisionAngle   float64 // full cone width in radians
	GuardRadius        float64
	GuardArriveEpsilon float64
	// GuardScale multiplies every guard's speed and vision range, including
	// values set by the level. Zero means 1.
	GuardScale float64
	// GuardEscalation grows guard speed and vision range by this fraction
	// for every loop after the first.
	GuardEscalation float64
	// GuardEscalationLoops caps how many loops escalate. Zero means no cap.
	GuardEscalationLoops int

	TerminalHackSeconds float64
	TerminalDecay       float64

	// MaxFrameDelta caps the wall-clock time fed into one Frame.
	MaxFrameDelta time.Duration
}

// DefaultTuning returns the stock ChromoEcho constants.
func DefaultTuning() Tuning {
	return Tuning{
		SelfSpeed:   4,
		SelfRadius:  0.35,
		TrailLength: 8,
		TrailFade:   0.85,

		ParadoxFactor:   0.9,
		GhostBodyFactor: 0.8,

		DoorRate:          5,
		DoorPassThreshold: 0.5,

		GuardSpeed:         1.5,
		GuardWait:          0.5,
		GuardVisionRange:   4,
		GuardVisionAngle:   math.Pi / 3,
		GuardRadius:        0.4,
		GuardArriveEpsilon: 1.0 / 30,
		GuardScale:         1,

		TerminalHackSeconds: 5,
		TerminalDecay:       0.5,

		MaxFrameDelta: 100 * time.Millisecond,
	}
}
