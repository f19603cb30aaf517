// Package config provides YAML-based game configuration loading and
// difficulty management for OneStroke.
package config

// StrokeConfig contains all configuration for the OneStroke game.
type StrokeConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Generator  GeneratorConfig  `yaml:"generator"`
	Timing     TimingConfig     `yaml:"timing"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Run        RunConfig        `yaml:"run"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BoardConfig defines grid sizes and how a cell is drawn in the terminal.
type BoardConfig struct {
	MinSize    int `yaml:"min_size"`    // Grid dimension at difficulty 0
	MaxSize    int `yaml:"max_size"`    // Grid dimension at difficulty 1
	CellWidth  int `yaml:"cell_width"`  // Terminal columns per cell
	CellHeight int `yaml:"cell_height"` // Terminal rows per cell
}

// GeneratorConfig defines parameters for generated levels.
type GeneratorConfig struct {
	MinCoverage    float64 `yaml:"min_coverage"` // Fraction of cells that are targets
	MaxCoverage    float64 `yaml:"max_coverage"`
	Twist          float64 `yaml:"twist"` // Chance of a random turn while walking
	MaxAttempts    int     `yaml:"max_attempts"`
	MaxSolverNodes int     `yaml:"max_solver_nodes"` // Search bound for validation and hints
}

// TimingConfig defines tick-based delays.
type TimingConfig struct {
	AdvanceDelayTicks int `yaml:"advance_delay_ticks"` // Ticks between completion and next level
	FeedbackTicks     int `yaml:"feedback_ticks"`      // Ticks a rejected/hint highlight stays visible
}

// ScoringConfig defines how points are awarded.
type ScoringConfig struct {
	PerCell       int `yaml:"per_cell"`       // Points per newly painted cell
	RevertPenalty int `yaml:"revert_penalty"` // Points lost per revert that clears cells
	LevelBonus    int `yaml:"level_bonus"`    // Points for clearing a level, times grid size
	HintPenalty   int `yaml:"hint_penalty"`   // Points lost per hint
}

// RunConfig defines generated runs.
type RunConfig struct {
	Length int `yaml:"length"` // Levels in a generated run; 0 = unlimited
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a run.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "levels" or "none"
	MaxAt int    `yaml:"max_at"` // Levels cleared at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	CoverageGain float64 `yaml:"coverage_gain"` // Coverage added at max difficulty
	SizeStep     int     `yaml:"size_step"`     // Grid sizes are rounded down to a multiple of this
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI string to a preset. Unknown names yield "".
func ParsePreset(name string) DifficultyPreset {
	switch p := DifficultyPreset(name); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p
	default:
		return ""
	}
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
