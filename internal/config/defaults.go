package config

import (
	_ "embed"
)

//go:embed defaults/onestroke.yaml
var defaultStrokeYAML []byte

// DefaultStrokeConfig returns the default OneStroke configuration.
func DefaultStrokeConfig() StrokeConfig {
	return StrokeConfig{
		Board: BoardConfig{
			MinSize:    8,
			MaxSize:    16,
			CellWidth:  4,
			CellHeight: 2,
		},
		Generator: GeneratorConfig{
			MinCoverage:    0.45,
			MaxCoverage:    0.65,
			Twist:          0.35,
			MaxAttempts:    20,
			MaxSolverNodes: 200000,
		},
		Timing: TimingConfig{
			AdvanceDelayTicks: 90,
			FeedbackTicks:     20,
		},
		Scoring: ScoringConfig{
			PerCell:       10,
			RevertPenalty: 5,
			LevelBonus:    25,
			HintPenalty:   50,
		},
		Run: RunConfig{
			Length: 10,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "levels",
				MaxAt: 10,
			},
			Scaling: ScalingConfig{
				CoverageGain: 0.25,
				SizeStep:     2,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultStrokeYAML
}
