package config

import (
	_ "embed"
)

//go:embed defaults/chromoecho.yaml
var defaultChromoEchoYAML []byte

// DefaultChromoEchoConfig returns the default ChromoEcho configuration.
func DefaultChromoEchoConfig() ChromoEchoConfig {
	return ChromoEchoConfig{
		Self: SelfConfig{
			Speed:       4,
			Radius:      0.35,
			TrailLength: 8,
			TrailFade:   0.85,
		},
		Rules: RulesConfig{
			ParadoxFactor:   0.9,
			GhostBodyFactor: 0.8,
			MaxFrameMS:      100,
		},
		Doors: DoorConfig{
			Rate:          5,
			PassThreshold: 0.5,
		},
		Guards: GuardConfig{
			Speed:         1.5,
			Wait:          0.5,
			VisionRange:   4,
			VisionAngle:   60,
			Radius:        0.4,
			ArriveEpsilon: 1.0 / 30,
		},
		Terminals: TerminalConfig{
			HackSeconds: 5,
			Decay:       0.5,
		},
		Input: InputConfig{
			HoldTicks: 9,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "loop",
				MaxAt: 3,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
			},
		},
	}
}
