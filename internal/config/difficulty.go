package config

import "math"

// DifficultyManager calculates guard scaling from the loop number.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type == "loop"
}

// Level returns the difficulty level (0.0 to 1.0) for a 1-based loop number.
func (d *DifficultyManager) Level(loop int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}
	progress := clampF(float64(loop-1)/d.maxAt(), 0.0, 1.0)
	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// GuardMultiplier returns the guard speed and vision multiplier for a loop.
func (d *DifficultyManager) GuardMultiplier(loop int) float64 {
	return 1.0 + d.Level(loop)*d.cfg.Scaling.SpeedMultiplier
}

// BaseMultiplier is the multiplier of the first loop, applied to the tuning
// itself.
func (d *DifficultyManager) BaseMultiplier() float64 {
	return d.GuardMultiplier(1)
}

// Escalation returns the per-loop growth of the guard multiplier relative to
// the first loop, the form the simulation applies each loop reset.
func (d *DifficultyManager) Escalation() float64 {
	if !d.IsEnabled() {
		return 0
	}
	perLoop := (1.0 - d.initialLevel) * d.cfg.Scaling.SpeedMultiplier / d.maxAt()
	return perLoop / d.BaseMultiplier()
}

// EscalationLoops returns how many loops after the first keep escalating,
// after which the multiplier holds at its maximum. Zero when disabled.
func (d *DifficultyManager) EscalationLoops() int {
	if !d.IsEnabled() {
		return 0
	}
	return int(d.maxAt())
}

func (d *DifficultyManager) maxAt() float64 {
	if d.cfg.Progression.MaxAt <= 0 {
		return 1 // Prevent division by zero
	}
	return float64(d.cfg.Progression.MaxAt)
}

// clampF restricts a float64 to [lo, hi].
func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
