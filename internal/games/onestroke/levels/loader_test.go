package levels_test

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/onestroke/internal/games/onestroke/core"
	"github.com/vovakirdan/onestroke/internal/games/onestroke/levels"
)

func TestCampaignLevelsAllValid(t *testing.T) {
	loader := levels.NewCampaignLoader()

	results, err := loader.CheckAll()
	if err != nil {
		t.Fatalf("CheckAll failed: %v", err)
	}
	if len(results) < 8 {
		t.Fatalf("expected at least 8 campaign files, got %d", len(results))
	}
	for _, r := range results {
		if r.Err != nil {
			t.Errorf("%s: %v", r.Path, r.Err)
		}
	}
}

func TestCampaignLoadAllSorted(t *testing.T) {
	lvls, err := levels.NewCampaignLoader().LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}

	for i := 1; i < len(lvls); i++ {
		if lvls[i-1].ID >= lvls[i].ID {
			t.Errorf("levels not sorted: %s >= %s", lvls[i-1].ID, lvls[i].ID)
		}
	}

	sizes := make(map[int]bool)
	for _, l := range lvls {
		sizes[l.Size()] = true
	}
	if !sizes[8] || !sizes[16] {
		t.Errorf("campaign should ship 8x8 and 16x16 levels, got sizes %v", sizes)
	}
}

func TestCampaignLevelsShipSolutions(t *testing.T) {
	lvls, err := levels.NewCampaignLoader().LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	for _, l := range lvls {
		if size := l.Size(); size != 8 && size != 16 {
			t.Errorf("%s: size %d, want 8 or 16", l.ID, size)
		}
		if len(l.Solution) != l.Pattern.TargetCount() {
			t.Errorf("%s: stored solution has %d cells, pattern has %d targets", l.ID, len(l.Solution), l.Pattern.TargetCount())
			continue
		}
		if err := core.VerifyPath(l.Pattern, l.Solution); err != nil {
			t.Errorf("%s: %v", l.ID, err)
		}
	}
}

func TestLoadByID(t *testing.T) {
	loader := levels.NewCampaignLoader()

	lvl, err := loader.LoadByID("lvl01")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}
	if lvl.Name != "First Stroke" {
		t.Errorf("expected name 'First Stroke', got %q", lvl.Name)
	}
	if lvl.Size() != 8 {
		t.Errorf("expected 8x8, got %d", lvl.Size())
	}
	if lvl.Pattern.Start() != core.C(1, 3) {
		t.Errorf("start = %v, want (1,3)", lvl.Pattern.Start())
	}
	if lvl.Metadata["hint"] == "" {
		t.Error("expected hint metadata")
	}

	if _, err := loader.LoadByID("missing"); err == nil {
		t.Error("expected error for unknown id")
	}
}

func TestLoaderSkipsInvalidFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"a.yaml": {Data: []byte("id: a\nrows:\n  - \"S#\"\n  - \"..\"\n")},
		// Start is disconnected from the other target.
		"b.yaml": {Data: []byte("id: b\nrows:\n  - \"S.\"\n  - \".#\"\n")},
		// Not YAML.
		"c.yaml": {Data: []byte("id: [unclosed\n")},
		// Solution that jumps.
		"d.yml": {Data: []byte("id: d\nrows:\n  - \"S#\"\n  - \"##\"\nsolution: [[0, 0], [1, 1], [1, 0], [0, 1]]\n")},
		// Duplicate of a.
		"e.yaml":    {Data: []byte("id: a\nrows:\n  - \"S\"\n")},
		"notes.txt": {Data: []byte("ignored")},
	}

	var buf bytes.Buffer
	loader := levels.NewFSLoader("mem", fsys)
	loader.SetLogger(log.New(&buf))

	lvls, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(lvls) != 1 || lvls[0].ID != "a" {
		t.Fatalf("expected only level a, got %d levels", len(lvls))
	}

	out := buf.String()
	for _, file := range []string{"b.yaml", "c.yaml", "d.yml", "e.yaml"} {
		if !strings.Contains(out, file) {
			t.Errorf("skip of %s not logged:\n%s", file, out)
		}
	}
	if strings.Contains(out, "notes.txt") {
		t.Error("non-level file should be ignored silently")
	}
}

func TestCheckAllReportsCodes(t *testing.T) {
	fsys := fstest.MapFS{
		"parity.yaml": {Data: []byte("id: p\nrows:\n  - \".#.\"\n  - \"S##\"\n  - \".#.\"\n")},
		"empty.yaml":  {Data: []byte("id: e\nrows:\n  - \"..\"\n  - \"..\"\n")},
	}

	results, err := levels.NewFSLoader("mem", fsys).CheckAll()
	if err != nil {
		t.Fatalf("CheckAll failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if !core.IsCode(results[0].Err, core.CodeEmptyPattern) {
		t.Errorf("%s: got %v", results[0].Path, results[0].Err)
	}
	if !core.IsCode(results[1].Err, core.CodeParity) {
		t.Errorf("%s: got %v", results[1].Path, results[1].Err)
	}
}

func TestDirectoryLoaderRoundTrip(t *testing.T) {
	dir := t.TempDir()

	params := core.DefaultGenParams()
	params.Seed = 5
	for i := range 3 {
		puzzle, err := core.Generate(i, params)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		lvl := levels.FromPuzzle("gen"+string(rune('a'+i)), "Generated", puzzle)
		data, err := levels.Marshal(lvl)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		if err := os.WriteFile(filepath.Join(dir, lvl.ID+".yaml"), data, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	loader := levels.NewLoader(dir)
	ids, err := loader.ListIDs()
	if err != nil {
		t.Fatalf("ListIDs: %v", err)
	}
	if !slices.Equal(ids, []string{"gena", "genb", "genc"}) {
		t.Fatalf("ids = %v", ids)
	}

	lvl, err := loader.LoadByID("genb")
	if err != nil {
		t.Fatalf("LoadByID: %v", err)
	}
	want, _ := core.Generate(1, params)
	if !slices.Equal(lvl.Pattern.Rows(), want.Pattern.Rows()) {
		t.Error("pattern changed through YAML")
	}
	if !slices.Equal(lvl.Solution, want.Solution) {
		t.Error("solution changed through YAML")
	}
}

func TestMissingDirectory(t *testing.T) {
	loader := levels.NewLoader(filepath.Join(t.TempDir(), "nope"))
	if _, err := loader.LoadAll(); err == nil {
		t.Error("expected error for missing directory")
	}
}
