package config

import "math"

// DifficultyManager calculates generator parameters from run progress.
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
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) after the given
// number of cleared levels.
func (d *DifficultyManager) Level(cleared int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "levels":
		progress = float64(cleared) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// GridSize returns the grid dimension for the current difficulty, growing
// from board.MinSize to board.MaxSize.
func (d *DifficultyManager) GridSize(board BoardConfig, cleared int) int {
	lo, hi := board.MinSize, board.MaxSize
	if lo < 2 {
		lo = 2
	}
	if hi < lo {
		hi = lo
	}

	size := lo + int(d.Level(cleared)*float64(hi-lo))
	if step := d.cfg.Scaling.SizeStep; step > 1 {
		size -= (size - lo) % step
	}
	return size
}

// Coverage returns the target coverage range for the current difficulty.
// Both bounds move up by at most scaling.coverage_gain and stay below 0.95.
func (d *DifficultyManager) Coverage(gen GeneratorConfig, cleared int) (float64, float64) {
	gain := d.Level(cleared) * d.cfg.Scaling.CoverageGain
	lo := clampF(gen.MinCoverage+gain, 0.05, 0.95)
	hi := clampF(gen.MaxCoverage+gain, lo, 0.95)
	return lo, hi
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
