// Package levels provides level loading for OneStroke.
// This package depends on core but core does not depend on levels.
package levels

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/onestroke/internal/games/onestroke/core"
	"github.com/vovakirdan/onestroke/internal/games/onestroke/levels/formats"
)

//go:embed campaign/*.yaml
var campaignFS embed.FS

// DefaultMaxNodes bounds the solver when a level file carries no solution.
const DefaultMaxNodes = 2_000_000

// Level represents a complete level definition.
type Level struct {
	ID       string
	Name     string
	Pattern  *core.Pattern
	Solution []core.Coord
	Metadata map[string]string
	FilePath string
}

// Size returns the grid dimension of the level.
func (l *Level) Size() int {
	return l.Pattern.Size()
}

// NewSession creates a stroke session for this level.
func (l *Level) NewSession() *core.Session {
	return core.NewSession(l.Pattern)
}

// Validate checks the level is playable. A bundled solution is verified
// directly; otherwise the solver searches for one.
func (l *Level) Validate(maxNodes int) error {
	if len(l.Solution) > 0 {
		return core.ValidateWithSolution(l.Pattern, l.Solution)
	}
	return core.Validate(l.Pattern, maxNodes)
}

// FileResult is the outcome of loading one level file.
type FileResult struct {
	Path  string
	Level Level
	Err   error
}

// Loader handles loading levels from a file system.
type Loader struct {
	Root     string
	fsys     fs.FS
	logger   *log.Logger
	maxNodes int
}

// NewLoader creates a loader for a directory on disk.
func NewLoader(root string) *Loader {
	return newLoader(root, os.DirFS(root))
}

// NewCampaignLoader creates a loader for the built-in campaign levels.
func NewCampaignLoader() *Loader {
	sub, err := fs.Sub(campaignFS, "campaign")
	if err != nil {
		panic(err) // embed pattern guarantees the directory
	}
	return newLoader("campaign", sub)
}

// NewFSLoader creates a loader over an arbitrary file system.
func NewFSLoader(root string, fsys fs.FS) *Loader {
	return newLoader(root, fsys)
}

func newLoader(root string, fsys fs.FS) *Loader {
	return &Loader{
		Root:     root,
		fsys:     fsys,
		logger:   log.New(io.Discard),
		maxNodes: DefaultMaxNodes,
	}
}

// SetLogger sets the logger used to report skipped files.
func (l *Loader) SetLogger(logger *log.Logger) {
	if logger != nil {
		l.logger = logger
	}
}

// SetMaxNodes sets the solver bound used to validate levels without a solution.
func (l *Loader) SetMaxNodes(n int) {
	l.maxNodes = n
}

// CheckAll loads and validates every level file, reporting each outcome.
// Results are sorted by path.
func (l *Loader) CheckAll() ([]FileResult, error) {
	var results []FileResult

	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(path.Ext(p))
		if !isSupportedExtension(ext) {
			return nil
		}

		level, err := l.LoadFile(p)
		if err == nil {
			err = level.Validate(l.maxNodes)
		}
		results = append(results, FileResult{Path: p, Level: level, Err: err})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("levels: walking %s: %w", l.Root, err)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Path < results[j].Path
	})
	return results, nil
}

// LoadAll loads all valid levels. Invalid files are skipped and logged.
// Returns levels sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Level, error) {
	results, err := l.CheckAll()
	if err != nil {
		return nil, err
	}

	levels := make([]Level, 0, len(results))
	seen := make(map[string]string)
	for _, r := range results {
		if r.Err != nil {
			l.logger.Warn("skipping level", "file", r.Path, "err", r.Err)
			continue
		}
		if prev, dup := seen[r.Level.ID]; dup {
			l.logger.Warn("skipping level", "file", r.Path, "err", "duplicate id", "id", r.Level.ID, "first", prev)
			continue
		}
		seen[r.Level.ID] = r.Path
		levels = append(levels, r.Level)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})

	l.logger.Debug("levels loaded", "root", l.Root, "count", len(levels), "files", len(results))
	return levels, nil
}

// LoadFile loads a single level file without validating it.
func (l *Loader) LoadFile(p string) (Level, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return Level{}, fmt.Errorf("levels: reading %s: %w", p, err)
	}

	parsed, err := parseByExtension(data, strings.ToLower(path.Ext(p)))
	if err != nil {
		return Level{}, fmt.Errorf("levels: parsing %s: %w", p, err)
	}

	return Level{
		ID:       parsed.ID,
		Name:     parsed.Name,
		Pattern:  parsed.Pattern,
		Solution: parsed.Solution,
		Metadata: parsed.Metadata,
		FilePath: p,
	}, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}

	return Level{}, fmt.Errorf("levels: level not found: %s", id)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

// FromPuzzle wraps a generated puzzle as a level.
func FromPuzzle(id, name string, puzzle core.Puzzle) Level {
	return Level{
		ID:       id,
		Name:     name,
		Pattern:  puzzle.Pattern,
		Solution: puzzle.Solution,
	}
}

// Marshal encodes a level as YAML.
func Marshal(lvl Level) ([]byte, error) {
	return formats.MarshalYAML(formats.Level{
		ID:       lvl.ID,
		Name:     lvl.Name,
		Pattern:  lvl.Pattern,
		Solution: lvl.Solution,
		Metadata: lvl.Metadata,
	})
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (formats.Level, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
