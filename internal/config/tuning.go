package config

import (
	"fmt"
	"math"
	"time"

	"github.com/pixil98/go-errors"

	"github.com/vovakirdan/chromoecho/internal/games/chromoecho/timeline"
)

// Validate reports every out-of-range value at once.
func (c ChromoEchoConfig) Validate() error {
	el := errors.NewErrorList()

	if c.Self.Speed <= 0 {
		el.Add(fmt.Errorf("self.speed must be positive"))
	}
	if c.Self.Radius <= 0 || c.Self.Radius >= 0.5 {
		el.Add(fmt.Errorf("self.radius must be in (0, 0.5), got %v", c.Self.Radius))
	}
	if c.Self.TrailLength < 0 {
		el.Add(fmt.Errorf("self.trail_length must not be negative"))
	}
	if c.Self.TrailFade < 0 || c.Self.TrailFade > 1 {
		el.Add(fmt.Errorf("self.trail_fade must be in [0, 1]"))
	}
	if c.Rules.ParadoxFactor <= 0 {
		el.Add(fmt.Errorf("rules.paradox_factor must be positive"))
	}
	if c.Rules.GhostBodyFactor < 0 {
		el.Add(fmt.Errorf("rules.ghost_body_factor must not be negative"))
	}
	if c.Rules.MaxFrameMS < 0 {
		el.Add(fmt.Errorf("rules.max_frame_ms must not be negative"))
	}
	if c.Doors.Rate <= 0 {
		el.Add(fmt.Errorf("doors.rate must be positive"))
	}
	if c.Doors.PassThreshold < 0 || c.Doors.PassThreshold > 1 {
		el.Add(fmt.Errorf("doors.pass_threshold must be in [0, 1]"))
	}
	if c.Guards.Speed <= 0 || c.Guards.VisionRange <= 0 {
		el.Add(fmt.Errorf("guards.speed and guards.vision_range must be positive"))
	}
	if c.Guards.VisionAngle <= 0 || c.Guards.VisionAngle > 360 {
		el.Add(fmt.Errorf("guards.vision_angle must be in (0, 360], got %v", c.Guards.VisionAngle))
	}
	if c.Guards.Wait < 0 || c.Guards.Radius < 0 || c.Guards.ArriveEpsilon < 0 {
		el.Add(fmt.Errorf("guard wait, radius and arrive_epsilon must not be negative"))
	}
	if c.Terminals.HackSeconds <= 0 {
		el.Add(fmt.Errorf("terminals.hack_seconds must be positive"))
	}
	if c.Terminals.Decay < 0 {
		el.Add(fmt.Errorf("terminals.decay must not be negative"))
	}
	if c.Input.HoldTicks < 1 {
		el.Add(fmt.Errorf("input.hold_ticks must be at least 1"))
	}
	switch c.Difficulty.Progression.Type {
	case "loop", "none", "":
	default:
		el.Add(fmt.Errorf("difficulty.progression.type must be loop or none, got %q", c.Difficulty.Progression.Type))
	}
	if c.Difficulty.InitialLevel < 0 || c.Difficulty.InitialLevel > 1 {
		el.Add(fmt.Errorf("difficulty.initial_level must be in [0, 1]"))
	}

	return el.Err()
}

// ToTuning maps the configuration onto simulation constants, with the
// difficulty applied to guards.
func (c ChromoEchoConfig) ToTuning() timeline.Tuning {
	dm := NewDifficultyManager(c.Difficulty)

	return timeline.Tuning{
		SelfSpeed:   c.Self.Speed,
		SelfRadius:  c.Self.Radius,
		TrailLength: c.Self.TrailLength,
		TrailFade:   c.Self.TrailFade,

		ParadoxFactor:   c.Rules.ParadoxFactor,
		GhostBodyFactor: c.Rules.GhostBodyFactor,

		DoorRate:          c.Doors.Rate,
		DoorPassThreshold: c.Doors.PassThreshold,

		GuardSpeed:         c.Guards.Speed,
		GuardWait:          c.Guards.Wait,
		GuardVisionRange:   c.Guards.VisionRange,
		GuardVisionAngle:   c.Guards.VisionAngle * math.Pi / 180,
		GuardRadius:        c.Guards.Radius,
		GuardArriveEpsilon: c.Guards.ArriveEpsilon,
		GuardScale:         dm.BaseMultiplier(),
		GuardEscalation:    dm.Escalation(),

		GuardEscalationLoops: dm.EscalationLoops(),

		TerminalHackSeconds: c.Terminals.HackSeconds,
		TerminalDecay:       c.Terminals.Decay,

		MaxFrameDelta: time.Duration(c.Rules.MaxFrameMS) * time.Millisecond,
	}
}
