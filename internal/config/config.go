// Package config provides YAML-based ChromoEcho configuration loading and
// difficulty management.
package config

// ChromoEchoConfig contains all tunable configuration for ChromoEcho.
type ChromoEchoConfig struct {
	Self       SelfConfig       `yaml:"self"`
	Rules      RulesConfig      `yaml:"rules"`
	Doors      DoorConfig       `yaml:"doors"`
	Guards     GuardConfig      `yaml:"guards"`
	Terminals  TerminalConfig   `yaml:"terminals"`
	Input      InputConfig      `yaml:"input"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// SelfConfig defines movement of the player and the ghosts.
type SelfConfig struct {
	Speed       float64 `yaml:"speed"`  // tiles per second
	Radius      float64 `yaml:"radius"` // tiles
	TrailLength int     `yaml:"trail_length"`
	TrailFade   float64 `yaml:"trail_fade"`
}

// RulesConfig defines the paradox rule and frame pacing.
type RulesConfig struct {
	ParadoxFactor   float64 `yaml:"paradox_factor"`
	GhostBodyFactor float64 `yaml:"ghost_body_factor"`
	MaxFrameMS      int     `yaml:"max_frame_ms"`
}

// DoorConfig defines door animation.
type DoorConfig struct {
	Rate          float64 `yaml:"rate"`           // progress per second
	PassThreshold float64 `yaml:"pass_threshold"` // closing doors block below this
}

// GuardConfig defines guard defaults used when a level leaves them unset.
type GuardConfig struct {
	Speed         float64 `yaml:"speed"`
	Wait          float64 `yaml:"wait"`
	VisionRange   float64 `yaml:"vision_range"`
	VisionAngle   float64 `yaml:"vision_angle"` // degrees
	Radius        float64 `yaml:"radius"`
	ArriveEpsilon float64 `yaml:"arrive_epsilon"`
}

// TerminalConfig defines hacking.
type TerminalConfig struct {
	HackSeconds float64 `yaml:"hack_seconds"`
	Decay       float64 `yaml:"decay"`
}

// InputConfig defines how terminal key presses become held keys.
type InputConfig struct {
	HoldTicks int `yaml:"hold_ticks"`
}

// DifficultyConfig defines the guard escalation system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a run.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "loop" or "none"
	MaxAt int    `yaml:"max_at"` // loops after which the full scaling applies
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // added to guard speed and vision at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value into a preset.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	}
	return "", false
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
