package core_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/vovakirdan/onestroke/internal/games/onestroke/core"
)

func TestGenerateDeterministic(t *testing.T) {
	params := core.DefaultGenParams()
	params.Seed = 12345

	for level := 0; level < 5; level++ {
		a, err := core.Generate(level, params)
		if err != nil {
			t.Fatalf("level %d: %v", level, err)
		}
		b, err := core.Generate(level, params)
		if err != nil {
			t.Fatalf("level %d: %v", level, err)
		}
		if !slices.Equal(a.Pattern.Rows(), b.Pattern.Rows()) {
			t.Errorf("level %d: patterns differ between runs", level)
		}
		if !slices.Equal(a.Solution, b.Solution) {
			t.Errorf("level %d: solutions differ between runs", level)
		}
	}
}

func TestGenerateLevelsDiffer(t *testing.T) {
	params := core.DefaultGenParams()
	params.Seed = 1

	seen := make(map[string]bool)
	for level := 0; level < 5; level++ {
		puzzle, err := core.Generate(level, params)
		if err != nil {
			t.Fatalf("level %d: %v", level, err)
		}
		seen[puzzle.Pattern.String()] = true
	}
	if len(seen) < 2 {
		t.Error("every level produced the same pattern")
	}
}

func TestGenerateSolvable(t *testing.T) {
	tests := []struct {
		name     string
		size     int
		min, max float64
	}{
		{"8x8 sparse", 8, 0.3, 0.5},
		{"8x8 dense", 8, 0.6, 0.8},
		{"12x12", 12, 0.45, 0.75},
		{"16x16", 16, 0.45, 0.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := core.DefaultGenParams()
			params.Size = tt.size
			params.MinCoverage = tt.min
			params.MaxCoverage = tt.max
			params.Seed = 2024
			params.MaxAttempts = 50

			for level := 0; level < 8; level++ {
				puzzle, err := core.Generate(level, params)
				if err != nil {
					t.Fatalf("level %d: %v", level, err)
				}
				p := puzzle.Pattern
				if p.Size() != tt.size {
					t.Errorf("level %d: size %d", level, p.Size())
				}
				if err := core.ValidateWithSolution(p, puzzle.Solution); err != nil {
					t.Errorf("level %d: %v", level, err)
				}
				if p.Start() != puzzle.Solution[0] {
					t.Errorf("level %d: start %v, solution starts at %v", level, p.Start(), puzzle.Solution[0])
				}

				stats := core.ComputePatternStats(p)
				// Coverage is rounded down to whole cells.
				if stats.Coverage > tt.max+1e-9 || stats.Coverage < tt.min-1.0/float64(tt.size*tt.size) {
					t.Errorf("level %d: coverage %.3f outside [%.2f, %.2f]", level, stats.Coverage, tt.min, tt.max)
				}
			}
		})
	}
}

func TestGeneratePassesSolverValidation(t *testing.T) {
	params := core.DefaultGenParams()
	params.Seed = 77
	for level := 0; level < 5; level++ {
		puzzle, err := core.Generate(level, params)
		if err != nil {
			t.Fatalf("level %d: %v", level, err)
		}
		err = core.Validate(puzzle.Pattern, 500000)
		if core.IsCode(err, core.CodeSearchLimit) {
			t.Logf("level %d: solver gave up: %v", level, err)
			continue
		}
		if err != nil {
			t.Errorf("level %d: %v", level, err)
		}
	}
}

func TestGenerateRejectsTinyGrid(t *testing.T) {
	params := core.DefaultGenParams()
	params.Size = 1
	if _, err := core.Generate(0, params); !errors.Is(err, core.ErrGenerationFailed) {
		t.Errorf("got %v, want ErrGenerationFailed", err)
	}
}

func TestRNGDeterministic(t *testing.T) {
	a := core.NewRNG(42)
	b := core.NewRNG(42)
	for i := 0; i < 100; i++ {
		if a.Next() != b.Next() {
			t.Fatalf("sequences diverge at %d", i)
		}
	}

	r := core.NewRNG(0)
	for i := 0; i < 1000; i++ {
		if f := r.Float(); f < 0 || f >= 1 {
			t.Fatalf("Float() = %v", f)
		}
		if n := r.Intn(7); n < 0 || n >= 7 {
			t.Fatalf("Intn(7) = %d", n)
		}
	}
}

func TestGenerateDenseLargeGrids(t *testing.T) {
	tests := []struct {
		name     string
		size     int
		min, max float64
		attempts int
	}{
		{"12x12 dense", 12, 0.7, 0.9, 20},
		{"14x14 dense", 14, 0.7, 0.9, 20},
		{"16x16 near full", 16, 0.9, 0.95, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := core.DefaultGenParams()
			params.Size = tt.size
			params.MinCoverage = tt.min
			params.MaxCoverage = tt.max
			params.MaxAttempts = tt.attempts

			floor := int(tt.min * float64(tt.size*tt.size))
			for seed := uint64(1); seed <= 20; seed++ {
				params.Seed = seed
				for level := 0; level < 3; level++ {
					puzzle, err := core.Generate(level, params)
					if err != nil {
						t.Fatalf("seed %d level %d: %v", seed, level, err)
					}
					if err := core.ValidateWithSolution(puzzle.Pattern, puzzle.Solution); err != nil {
						t.Fatalf("seed %d level %d: %v", seed, level, err)
					}
					if n := puzzle.Pattern.TargetCount(); n < floor {
						t.Errorf("seed %d level %d: %d targets, want at least %d", seed, level, n, floor)
					}
				}
			}
		})
	}
}

func TestGenerateFullCoverage(t *testing.T) {
	params := core.DefaultGenParams()
	params.Size = 6
	params.MinCoverage = 1
	params.MaxCoverage = 1
	params.MaxAttempts = 1

	for seed := uint64(1); seed <= 10; seed++ {
		params.Seed = seed
		puzzle, err := core.Generate(0, params)
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if n := puzzle.Pattern.TargetCount(); n != 36 {
			t.Errorf("seed %d: %d targets, want 36", seed, n)
		}
		if len(puzzle.Solution) != 36 || puzzle.Solution[0] != puzzle.Pattern.Start() {
			t.Errorf("seed %d: solution does not cover the grid from the start", seed)
		}
	}
}
