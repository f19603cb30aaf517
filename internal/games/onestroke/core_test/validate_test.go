package core_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/vovakirdan/onestroke/internal/games/onestroke/core"
)

func mustRows(t *testing.T, rows ...string) *core.Pattern {
	t.Helper()
	p, err := core.ParseRows(rows)
	if err != nil {
		t.Fatalf("ParseRows(%v): %v", rows, err)
	}
	return p
}

func TestParseRows(t *testing.T) {
	p := mustRows(t,
		"....",
		".S..",
		".#..",
		".##.",
	)
	if p.Size() != 4 {
		t.Errorf("size = %d, want 4", p.Size())
	}
	if p.Start() != core.C(1, 1) || !p.HasStart() {
		t.Errorf("start = %v", p.Start())
	}
	want := []core.Coord{core.C(1, 1), core.C(1, 2), core.C(1, 3), core.C(2, 3)}
	if got := p.Targets(); !slices.Equal(got, want) {
		t.Errorf("targets = %v, want %v", got, want)
	}
	if got := p.Rows(); !slices.Equal(got, []string{"....", ".S..", ".#..", ".##."}) {
		t.Errorf("rows round trip = %v", got)
	}
}

func TestParseRowsErrors(t *testing.T) {
	tests := []struct {
		name string
		rows []string
	}{
		{"not square", []string{"S#", "#"}},
		{"two starts", []string{"S#", "#S"}},
		{"unknown marker", []string{"S#", "#x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := core.ParseRows(tt.rows); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestNewPatternDropsOffGridTargets(t *testing.T) {
	p := core.NewPattern(3, []core.Coord{
		core.C(0, 0), core.C(0, 0), core.C(3, 0), core.C(-1, 2), core.C(2, 2),
	}, core.C(0, 0))
	if p.TargetCount() != 2 {
		t.Errorf("target count = %d, want 2", p.TargetCount())
	}
	if p.IsTarget(core.C(3, 0)) {
		t.Error("off-grid cell reported as target")
	}
}

func TestValidateCodes(t *testing.T) {
	tests := []struct {
		name     string
		pattern  *core.Pattern
		maxNodes int
		code     string
	}{
		{"empty", core.NewPattern(3, nil, core.C(0, 0)), 0, core.CodeEmptyPattern},
		{"no start", core.NewPattern(3, []core.Coord{core.C(0, 0)}, core.C(-1, -1)), 0, core.CodeNoStart},
		{"start not target", core.NewPattern(3, []core.Coord{core.C(0, 0)}, core.C(1, 1)), 0, core.CodeStartNotTarget},
		{"disconnected", mustRows(t, "S.#", "...", "..."), 0, core.CodeDisconnected},
		{"parity", mustRows(t, ".#.", "S##", ".#."), 0, core.CodeParity},
		{"no path", mustRows(t, "S##", ".#.", ".#."), 0, core.CodeNoPath},
		{"search limit", mustRows(t, "S###", "####", "####", "####"), 3, core.CodeSearchLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := core.Validate(tt.pattern, tt.maxNodes)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !core.IsCode(err, tt.code) {
				t.Errorf("got %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestValidateAcceptsSolvable(t *testing.T) {
	tests := []struct {
		name    string
		pattern *core.Pattern
	}{
		{"single cell", mustRows(t, "S")},
		{"l shape", lShape()},
		{"full 4x4", mustRows(t, "S###", "####", "####", "####")},
		{"ring", mustRows(t, "S###", "#..#", "#..#", "####")},
		{"spiral", mustRows(t,
			"S####",
			"....#",
			"###.#",
			"#...#",
			"#####",
		)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := core.Validate(tt.pattern, 0); err != nil {
				t.Errorf("Validate: %v", err)
			}
		})
	}
}

func TestSolveFullGrids(t *testing.T) {
	for size := 1; size <= 7; size++ {
		targets := make([]core.Coord, 0, size*size)
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				targets = append(targets, core.C(x, y))
			}
		}
		p := core.NewPattern(size, targets, core.C(0, 0))

		path, stats, err := core.Solve(p, nil, 0)
		if err != nil {
			t.Fatalf("size %d: %v", size, err)
		}
		if err := core.VerifyPath(p, path); err != nil {
			t.Errorf("size %d: %v", size, err)
		}
		if stats.Nodes == 0 && size > 1 {
			t.Errorf("size %d: no nodes counted", size)
		}
	}
}

func TestSolveOddGridFromWrongColour(t *testing.T) {
	// 3x3 has five corner-colour cells; an edge start cannot alternate through them.
	p := mustRows(t, "#S#", "###", "###")

	if _, _, err := core.Solve(p, nil, 0); !errors.Is(err, core.ErrNoPath) {
		t.Errorf("got %v, want ErrNoPath", err)
	}
}

func TestSolveFromPrefix(t *testing.T) {
	p := lShape()
	prefix := []core.Coord{core.C(1, 1), core.C(1, 2)}

	path, _, err := core.Solve(p, prefix, 0)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	want := []core.Coord{core.C(1, 1), core.C(1, 2), core.C(1, 3), core.C(2, 3)}
	if !slices.Equal(path, want) {
		t.Errorf("path = %v, want %v", path, want)
	}
}

func TestSolveRejectsBadPrefix(t *testing.T) {
	p := lShape()
	tests := []struct {
		name   string
		prefix []core.Coord
	}{
		{"wrong start", []core.Coord{core.C(1, 2)}},
		{"gap", []core.Coord{core.C(1, 1), core.C(1, 3)}},
		{"repeat", []core.Coord{core.C(1, 1), core.C(1, 2), core.C(1, 1)}},
		{"off target", []core.Coord{core.C(1, 1), core.C(2, 1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := core.Solve(p, tt.prefix, 0); err == nil {
				t.Error("expected error for bad prefix")
			}
		})
	}
}

func TestSolveDeadEndPrefix(t *testing.T) {
	p := mustRows(t,
		"S##",
		"###",
		"...",
	)
	// (0,0),(1,0),(1,1) strands (0,1) and (2,0) as two separate ends.
	prefix := []core.Coord{core.C(0, 0), core.C(1, 0), core.C(1, 1)}
	if _, _, err := core.Solve(p, prefix, 0); !errors.Is(err, core.ErrNoPath) {
		t.Errorf("got %v, want ErrNoPath", err)
	}
	if _, _, err := core.Solve(p, nil, 0); err != nil {
		t.Errorf("from start: %v", err)
	}
}

func TestVerifyPath(t *testing.T) {
	p := lShape()
	good := []core.Coord{core.C(1, 1), core.C(1, 2), core.C(1, 3), core.C(2, 3)}
	if err := core.VerifyPath(p, good); err != nil {
		t.Errorf("good path: %v", err)
	}

	bad := [][]core.Coord{
		good[:3],
		{core.C(1, 2), core.C(1, 1), core.C(1, 3), core.C(2, 3)},
		{core.C(1, 1), core.C(1, 2), core.C(2, 3), core.C(1, 3)},
		{core.C(1, 1), core.C(1, 2), core.C(1, 1), core.C(1, 2)},
	}
	for i, path := range bad {
		if err := core.VerifyPath(p, path); !core.IsCode(err, core.CodeBadWitness) {
			t.Errorf("bad path %d: got %v", i, err)
		}
	}
}

func TestComputePatternStats(t *testing.T) {
	stats := core.ComputePatternStats(lShape())
	if stats.Size != 4 || stats.Targets != 4 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.Coverage != 0.25 {
		t.Errorf("coverage = %v, want 0.25", stats.Coverage)
	}
}
