package core_test

import (
	"slices"
	"testing"

	"github.com/vovakirdan/onestroke/internal/games/onestroke/core"
)

// lShape is the 4x4 pattern with targets (1,1),(1,2),(1,3),(2,3) starting at (1,1).
func lShape() *core.Pattern {
	return core.NewPattern(4, []core.Coord{
		core.C(1, 1), core.C(1, 2), core.C(1, 3), core.C(2, 3),
	}, core.C(1, 1))
}

// checkDense verifies that painted orders are exactly 1..len(stroke) and that
// stroke and orders agree.
func checkDense(t *testing.T, s *core.Session) {
	t.Helper()
	stroke := s.Stroke()
	p := s.Pattern()
	seen := make(map[int]bool)
	for y := 0; y < p.Size(); y++ {
		for x := 0; x < p.Size(); x++ {
			k := s.Order(core.C(x, y))
			if k == 0 {
				continue
			}
			if k < 0 || k > len(stroke) {
				t.Fatalf("order %d at (%d,%d) outside 1..%d", k, x, y, len(stroke))
			}
			if seen[k] {
				t.Fatalf("order %d used twice", k)
			}
			seen[k] = true
			if stroke[k-1] != core.C(x, y) {
				t.Fatalf("stroke[%d] = %v, but (%d,%d) has order %d", k-1, stroke[k-1], x, y, k)
			}
		}
	}
	if len(seen) != len(stroke) {
		t.Fatalf("%d painted cells for stroke of length %d", len(seen), len(stroke))
	}
	for i := 1; i < len(stroke); i++ {
		if !stroke[i-1].Adjacent(stroke[i]) {
			t.Fatalf("stroke cells %v and %v not adjacent", stroke[i-1], stroke[i])
		}
	}
	if len(stroke) > 0 && stroke[0] != p.Start() {
		t.Fatalf("stroke begins at %v, want start %v", stroke[0], p.Start())
	}
}

func TestLShapeWalkthrough(t *testing.T) {
	s := core.NewSession(lShape())

	r := s.Touch(core.C(1, 1))
	if r.Kind != core.TouchExtended || r.Order != 1 {
		t.Fatalf("step 1: got %v order %d, want extended order 1", r.Kind, r.Order)
	}
	if got := s.Stroke(); !slices.Equal(got, []core.Coord{core.C(1, 1)}) {
		t.Fatalf("step 1: stroke = %v", got)
	}

	r = s.Touch(core.C(2, 2))
	if r.Kind != core.TouchRejected {
		t.Fatalf("step 2: got %v, want rejected", r.Kind)
	}
	if s.Len() != 1 {
		t.Fatalf("step 2: stroke length %d, want 1", s.Len())
	}

	if r = s.Touch(core.C(1, 2)); r.Kind != core.TouchExtended {
		t.Fatalf("step 3: got %v, want extended", r.Kind)
	}
	if r = s.Touch(core.C(1, 3)); r.Kind != core.TouchExtended {
		t.Fatalf("step 4: got %v, want extended", r.Kind)
	}
	if s.Len() != 3 {
		t.Fatalf("step 4: stroke length %d, want 3", s.Len())
	}

	r = s.Touch(core.C(2, 3))
	if r.Kind != core.TouchCompleted {
		t.Fatalf("step 5: got %v, want completed", r.Kind)
	}
	if !s.IsCompleted() || !r.Snapshot.Completed {
		t.Fatal("step 5: session should be completed")
	}
	checkDense(t, s)
}

func TestLShapeRevert(t *testing.T) {
	s := core.NewSession(lShape())
	for _, c := range []core.Coord{core.C(1, 1), core.C(1, 2), core.C(1, 3)} {
		s.Touch(c)
	}

	r := s.Touch(core.C(1, 2))
	if r.Kind != core.TouchReverted {
		t.Fatalf("got %v, want reverted", r.Kind)
	}
	if r.Order != 2 || r.Cleared != 1 {
		t.Errorf("order=%d cleared=%d, want 2 and 1", r.Order, r.Cleared)
	}
	want := []core.Coord{core.C(1, 1), core.C(1, 2)}
	if got := s.Stroke(); !slices.Equal(got, want) {
		t.Errorf("stroke = %v, want %v", got, want)
	}
	if s.Order(core.C(1, 3)) != 0 {
		t.Errorf("(1,3) should be unpainted, order %d", s.Order(core.C(1, 3)))
	}
	if s.Order(core.C(1, 2)) != 2 {
		t.Errorf("(1,2) should keep order 2, got %d", s.Order(core.C(1, 2)))
	}
	if s.Remaining() != 2 {
		t.Errorf("remaining = %d, want 2", s.Remaining())
	}
	checkDense(t, s)
}

func TestTouchRejections(t *testing.T) {
	tests := []struct {
		name   string
		before []core.Coord
		touch  core.Coord
		reason core.RejectReason
	}{
		{"off grid", nil, core.C(-1, 0), core.ReasonOutOfGrid},
		{"off grid far", nil, core.C(4, 4), core.ReasonOutOfGrid},
		{"not a target", nil, core.C(0, 0), core.ReasonNotTarget},
		{"first touch not start", nil, core.C(1, 2), core.ReasonNotStart},
		{"jump over a cell", []core.Coord{core.C(1, 1)}, core.C(1, 3), core.ReasonNotAdjacent},
		{"next to last is accepted", []core.Coord{core.C(1, 1), core.C(1, 2), core.C(1, 3)}, core.C(2, 3), core.ReasonNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := core.NewSession(lShape())
			for _, c := range tt.before {
				s.Touch(c)
			}
			before := s.Snapshot()

			r := s.Touch(tt.touch)
			if tt.reason == core.ReasonNone {
				if r.Kind == core.TouchRejected {
					t.Fatalf("touch %v rejected: %v", tt.touch, r.Reason)
				}
				return
			}
			if r.Kind != core.TouchRejected {
				t.Fatalf("touch %v: got %v, want rejected", tt.touch, r.Kind)
			}
			if r.Reason != tt.reason {
				t.Errorf("reason = %v, want %v", r.Reason, tt.reason)
			}
			if r.Changed() {
				t.Error("rejected touch reports a change")
			}
			after := s.Snapshot()
			if !slices.Equal(before.Stroke, after.Stroke) || !slices.Equal(before.Orders, after.Orders) {
				t.Error("rejected touch mutated the session")
			}
		})
	}
}

func TestRetouchLastCellIsNoOp(t *testing.T) {
	s := core.NewSession(lShape())
	s.Touch(core.C(1, 1))
	s.Touch(core.C(1, 2))

	r := s.Touch(core.C(1, 2))
	if r.Kind != core.TouchReverted {
		t.Fatalf("got %v, want reverted", r.Kind)
	}
	if r.Cleared != 0 || r.Changed() {
		t.Errorf("retouching the end should not change anything, cleared %d", r.Cleared)
	}
	if s.Len() != 2 {
		t.Errorf("stroke length %d, want 2", s.Len())
	}
}

func TestRevertToStartKeepsStart(t *testing.T) {
	s := core.NewSession(lShape())
	s.Touch(core.C(1, 1))
	s.Touch(core.C(1, 2))
	s.Touch(core.C(1, 3))

	r := s.Touch(core.C(1, 1))
	if r.Kind != core.TouchReverted || r.Cleared != 2 {
		t.Fatalf("got %v cleared %d, want reverted cleared 2", r.Kind, r.Cleared)
	}
	if s.Len() != 1 {
		t.Errorf("revert must not empty the stroke, length %d", s.Len())
	}
}

func TestTouchesIgnoredAfterCompletion(t *testing.T) {
	s := core.NewSession(lShape())
	for _, c := range []core.Coord{core.C(1, 1), core.C(1, 2), core.C(1, 3), core.C(2, 3)} {
		s.Touch(c)
	}
	if !s.IsCompleted() {
		t.Fatal("expected completion")
	}

	for _, c := range []core.Coord{core.C(1, 1), core.C(1, 3), core.C(0, 0), core.C(9, 9)} {
		r := s.Touch(c)
		if r.Kind != core.TouchRejected || r.Reason != core.ReasonCompleted {
			t.Errorf("touch %v after completion: %v/%v", c, r.Kind, r.Reason)
		}
	}
	if s.Len() != 4 {
		t.Errorf("stroke changed after completion, length %d", s.Len())
	}

	s.Reset()
	if s.IsCompleted() || s.Len() != 0 || s.Remaining() != 4 {
		t.Errorf("reset: completed=%v len=%d remaining=%d", s.IsCompleted(), s.Len(), s.Remaining())
	}
	if r := s.Touch(core.C(1, 1)); r.Kind != core.TouchExtended {
		t.Errorf("first touch after reset: %v", r.Kind)
	}
}

func TestBeginLevelReplacesSession(t *testing.T) {
	s := core.NewSession(lShape())
	s.Touch(core.C(1, 1))
	s.Touch(core.C(1, 2))

	next, err := core.ParseRows([]string{
		"S#",
		"##",
	})
	if err != nil {
		t.Fatalf("ParseRows: %v", err)
	}
	s.BeginLevel(next)

	if s.Len() != 0 || s.IsCompleted() {
		t.Fatalf("new level should start empty, len %d", s.Len())
	}
	if s.Pattern().Size() != 2 {
		t.Errorf("size = %d, want 2", s.Pattern().Size())
	}
	for _, c := range []core.Coord{core.C(0, 0), core.C(1, 0), core.C(1, 1), core.C(0, 1)} {
		s.Touch(c)
	}
	if !s.IsCompleted() {
		t.Error("2x2 loop should complete")
	}
}

func TestCompletionOnlyOnCoveringTouch(t *testing.T) {
	s := core.NewSession(lShape())
	path := []core.Coord{core.C(1, 1), core.C(1, 2), core.C(1, 3), core.C(2, 3)}
	for i, c := range path {
		r := s.Touch(c)
		last := i == len(path)-1
		if (r.Kind == core.TouchCompleted) != last {
			t.Errorf("touch %d: kind %v", i+1, r.Kind)
		}
		if s.IsCompleted() != last {
			t.Errorf("touch %d: IsCompleted = %v", i+1, s.IsCompleted())
		}
	}
}

func TestInconsistentPatternsNeverComplete(t *testing.T) {
	tests := []struct {
		name    string
		pattern *core.Pattern
	}{
		{"nil", nil},
		{"no start", core.NewPattern(3, []core.Coord{core.C(0, 0), core.C(1, 0)}, core.C(-1, -1))},
		{"start off target", core.NewPattern(3, []core.Coord{core.C(0, 0), core.C(1, 0)}, core.C(2, 2))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := core.NewSession(tt.pattern)
			size := s.Pattern().Size()
			for y := -1; y <= size; y++ {
				for x := -1; x <= size; x++ {
					r := s.Touch(core.C(x, y))
					if r.Kind != core.TouchRejected {
						t.Fatalf("touch (%d,%d) = %v, want rejected", x, y, r.Kind)
					}
				}
			}
			if s.IsCompleted() {
				t.Error("inconsistent pattern completed")
			}
		})
	}
}

func TestRandomTouchesKeepOrdersDense(t *testing.T) {
	for level := 0; level < 6; level++ {
		params := core.DefaultGenParams()
		params.Seed = 7
		puzzle, err := core.Generate(level, params)
		if err != nil {
			t.Fatalf("level %d: %v", level, err)
		}

		s := core.NewSession(puzzle.Pattern)
		rng := core.NewRNG(uint64(level + 100))
		size := puzzle.Pattern.Size()
		for i := 0; i < 2000; i++ {
			var c core.Coord
			if last, ok := s.Last(); ok && rng.Intn(2) == 0 {
				c = last.Neighbors()[rng.Intn(4)]
			} else {
				c = core.C(rng.Intn(size+2)-1, rng.Intn(size+2)-1)
			}

			before := s.Snapshot()
			r := s.Touch(c)
			switch r.Kind {
			case core.TouchRejected:
				if !slices.Equal(before.Orders, s.Snapshot().Orders) {
					t.Fatalf("level %d touch %d: rejected touch changed orders", level, i)
				}
			case core.TouchReverted:
				if want := before.Stroke[:r.Order]; !slices.Equal(want, s.Stroke()) {
					t.Fatalf("level %d touch %d: revert is not a prefix", level, i)
				}
			}
			checkDense(t, s)
			if s.IsCompleted() {
				s.Reset()
			}
		}
	}
}

func TestSolutionCompletesSession(t *testing.T) {
	params := core.DefaultGenParams()
	params.Seed = 99
	for level := 0; level < 10; level++ {
		puzzle, err := core.Generate(level, params)
		if err != nil {
			t.Fatalf("level %d: %v", level, err)
		}
		s := core.NewSession(puzzle.Pattern)
		for i, c := range puzzle.Solution {
			r := s.Touch(c)
			if r.Kind == core.TouchRejected {
				t.Fatalf("level %d step %d: %v rejected (%v)", level, i, c, r.Reason)
			}
		}
		if !s.IsCompleted() {
			t.Errorf("level %d: solution did not complete the level", level)
		}
	}
}

func TestRejectReasonString(t *testing.T) {
	tests := []struct {
		reason core.RejectReason
		want   string
	}{
		{core.ReasonNone, "none"},
		{core.ReasonOutOfGrid, "outside the grid"},
		{core.ReasonNotTarget, "not part of the pattern"},
		{core.ReasonNotStart, "stroke must begin at the start cell"},
		{core.ReasonNotAdjacent, "not next to the end of the stroke"},
		{core.ReasonCompleted, "level already complete"},
	}
	for _, tt := range tests {
		if got := tt.reason.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", int(tt.reason), got, tt.want)
		}
	}
}
