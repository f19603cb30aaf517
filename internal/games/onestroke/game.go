// Package onestroke provides the OneStroke path-painting puzzle for the arcade.
package onestroke

import (
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/onestroke/internal/config"
	"github.com/vovakirdan/onestroke/internal/core"
	stroke "github.com/vovakirdan/onestroke/internal/games/onestroke/core"
	"github.com/vovakirdan/onestroke/internal/games/onestroke/levels"
	"github.com/vovakirdan/onestroke/internal/registry"
)

// Game IDs registered by this package.
const (
	IDCampaign = "onestroke"
	IDEndless  = "onestroke_endless"
)

// Mode represents the game mode.
type Mode int

const (
	ModeCampaign Mode = iota // Play the level set in order, win at the end
	ModeEndless              // Generated levels, growing with difficulty
)

// Package-level settings applied on the next Reset, set from the CLI and menus.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	levelsDir        string
	logger           = log.New(io.Discard)
)

// SetLogger sets the logger used to report skipped level files.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset by name.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// SetLevelsDir makes campaign mode load levels from a directory instead of
// the built-in set. An empty path restores the built-in set.
func SetLevelsDir(dir string) {
	levelsDir = dir
}

// Game implements the OneStroke puzzle for the registry.
type Game struct {
	mode       Mode
	startLevel int // Campaign level to begin at on the next Reset, 1-indexed
	runtime    core.RuntimeConfig
	cfg        config.StrokeConfig
	difficulty *config.DifficultyManager

	// Level state
	allLevels  []levels.Level
	levelIndex int
	level      levels.Level
	solution   []stroke.Coord // Known stroke used for hints
	session    *stroke.Session
	loadErr    error

	// Board
	cursor   stroke.Coord
	layout   BoardLayout
	tooSmall bool

	// Status
	tick            uint64
	score           int
	gameOver        bool
	won             bool
	paused          bool
	levelCleared    bool
	levelClearTicks int
	cleared         int // Levels cleared this run

	// Per-level counters
	levelStartTick uint64
	touches        int
	reverts        int
	hints          int
	bestLen        int // Longest stroke reached; cells are only scored beyond it

	// Feedback
	rejectCell  stroke.Coord
	rejectTicks int
	hintCell    stroke.Coord
	hintRevert  bool // Hint points at a painted cell to retouch
	hintTicks   int
	lastClear   core.LevelStats
}

// New creates a new OneStroke game in campaign mode.
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewEndless creates a new OneStroke game with generated levels.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

// StartAt makes the next Reset begin the campaign at the given level
// (1-indexed). Later resets start from the first level again.
func (g *Game) StartAt(level int) {
	g.startLevel = level
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return IDEndless
	}
	return IDCampaign
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "OneStroke (Endless)"
	}
	return "OneStroke"
}

// Description returns a one-line summary for menus.
func (g *Game) Description() string {
	if g.mode == ModeEndless {
		return "Generated patterns that grow with every clear"
	}
	return "Paint every cell in one stroke, level by level"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := LoadConfig()
	if err != nil {
		logger.Warn("using default config", "err", err)
		cfg = config.DefaultStrokeConfig()
		applyPreset(&cfg)
	}
	g.applyConfig(cfg)

	g.tick = 0
	g.score = 0
	g.gameOver = false
	g.won = false
	g.paused = false
	g.levelCleared = false
	g.levelClearTicks = 0
	g.cleared = 0
	g.loadErr = nil
	g.session = nil
	g.levelIndex = 0

	if g.mode == ModeCampaign {
		g.loadCampaign()
		if g.gameOver {
			return
		}
		start := g.startLevel
		g.startLevel = 0
		if start > 0 && start <= len(g.allLevels) {
			g.levelIndex = start - 1
		}
	}

	g.loadCurrentLevel()
}

// LoadConfig loads the game config from the configured path and search
// locations, with the selected difficulty preset applied.
func LoadConfig() (config.StrokeConfig, error) {
	cfg, err := config.LoadStroke(configPath)
	if err != nil {
		return cfg, err
	}
	applyPreset(&cfg)
	return cfg, nil
}

func applyPreset(cfg *config.StrokeConfig) {
	if difficultyPreset != "" {
		config.ApplyStrokePreset(cfg, difficultyPreset)
	}
}

// applyConfig installs a configuration. Used by Reset and by tests.
func (g *Game) applyConfig(cfg config.StrokeConfig) {
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
}

// campaignLoader returns the loader for the configured level set.
func campaignLoader() *levels.Loader {
	loader := levels.NewCampaignLoader()
	if levelsDir != "" {
		loader = levels.NewLoader(levelsDir)
	}
	loader.SetLogger(logger)
	return loader
}

// LevelNames returns the campaign level names in play order.
func LevelNames() []string {
	all, err := campaignLoader().LoadAll()
	if err != nil {
		return nil
	}
	names := make([]string, len(all))
	for i, lvl := range all {
		names[i] = lvl.Name
	}
	return names
}

// loadCampaign reads the campaign level set.
func (g *Game) loadCampaign() {
	loader := campaignLoader()
	all, err := loader.LoadAll()
	switch {
	case err != nil:
		g.loadErr = err
	case len(all) == 0:
		g.loadErr = fmt.Errorf("no playable levels in %s", loader.Root)
	}
	if g.loadErr != nil {
		g.gameOver = true
		return
	}
	g.allLevels = all
}

// loadCurrentLevel prepares the level at levelIndex (campaign) or generates
// the next one (endless).
func (g *Game) loadCurrentLevel() {
	var lvl levels.Level
	if g.mode == ModeCampaign {
		if g.levelIndex >= len(g.allLevels) {
			g.won = true
			g.gameOver = true
			return
		}
		lvl = g.allLevels[g.levelIndex]
	} else {
		generated, err := g.generateLevel(g.levelIndex)
		if err != nil {
			g.loadErr = err
			g.gameOver = true
			return
		}
		lvl = generated
	}

	g.beginLevel(lvl)
}

// beginLevel starts a fresh session on lvl.
func (g *Game) beginLevel(lvl levels.Level) {
	g.level = lvl
	g.solution = lvl.Solution
	if len(g.solution) == 0 {
		if path, _, err := stroke.Solve(lvl.Pattern, nil, levels.DefaultMaxNodes); err == nil {
			g.solution = path
		}
	}

	if g.session == nil {
		g.session = stroke.NewSession(lvl.Pattern)
	} else {
		g.session.BeginLevel(lvl.Pattern)
	}

	g.cursor = lvl.Pattern.Start()
	g.levelStartTick = g.tick
	g.touches = 0
	g.reverts = 0
	g.hints = 0
	g.bestLen = 0
	g.rejectTicks = 0
	g.hintTicks = 0

	g.calculateLayout()
}

// generateLevel builds the n-th level (0-indexed) of a generated run.
func (g *Game) generateLevel(n int) (levels.Level, error) {
	return GenerateLevel(g.genParams(n), n)
}

// genParams derives generator parameters from config and run progress.
func (g *Game) genParams(n int) stroke.GenParams {
	return GenParams(g.cfg, g.difficulty, g.runtime.Seed, n)
}

// GenParams derives the generator parameters for the n-th level of a
// generated run. Grid size and coverage grow with difficulty.
func GenParams(cfg config.StrokeConfig, d *config.DifficultyManager, seed int64, n int) stroke.GenParams {
	lo, hi := d.Coverage(cfg.Generator, n)
	return stroke.GenParams{
		Size:        d.GridSize(cfg.Board, n),
		MinCoverage: lo,
		MaxCoverage: hi,
		Twist:       cfg.Generator.Twist,
		Seed:        uint64(seed),
		MaxAttempts: cfg.Generator.MaxAttempts,
	}
}

// GenerateLevel generates level n (0-indexed) and wraps it with its solution.
func GenerateLevel(p stroke.GenParams, n int) (levels.Level, error) {
	puzzle, err := stroke.Generate(n, p)
	if err != nil {
		return levels.Level{}, err
	}
	id := fmt.Sprintf("gen%02d", n+1)
	return levels.FromPuzzle(id, fmt.Sprintf("Generated #%d", n+1), puzzle), nil
}

// calculateLayout fits the board to the screen.
func (g *Game) calculateLayout() {
	size := 0
	if g.session != nil {
		size = g.session.Pattern().Size()
	}
	layout, ok := Fit(g.runtime.ScreenW, g.runtime.ScreenH, size, g.cfg.Board.CellWidth, g.cfg.Board.CellHeight)
	g.layout = layout
	g.tooSmall = !ok
}

// Resize adapts the layout to a new screen size without losing progress.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	g.calculateLayout()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	var events []core.Event

	// Restart after the run ends
	if g.gameOver {
		if in.Has(core.ActionRestart) {
			g.Reset(g.runtime)
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	g.tick++
	if g.rejectTicks > 0 {
		g.rejectTicks--
	}
	if g.hintTicks > 0 {
		g.hintTicks--
	}

	if g.levelCleared {
		g.levelClearTicks--
		if g.levelClearTicks <= 0 || in.Has(core.ActionConfirm) {
			g.advanceLevel()
			events = append(events, core.Event{Kind: core.EventLevelAdvanced})
		}
		return core.StepResult{State: g.State(), Events: events}
	}

	if in.Has(core.ActionRestart) {
		g.session.Reset()
		g.cursor = g.session.Pattern().Start()
	}
	if in.Has(core.ActionHint) {
		events = g.showHint(events)
	}

	g.moveCursor(in)
	if in.Has(core.ActionConfirm) {
		events = g.touch(g.cursor, events)
	}

	for _, p := range in.Touches {
		if g.levelCleared {
			break
		}
		c, ok := g.layout.CellAt(p.X, p.Y)
		if !ok {
			continue
		}
		g.cursor = c
		// Dragging across the stroke end repeats the same cell; skip it.
		if last, ok := g.session.Last(); ok && last == c {
			continue
		}
		events = g.touch(c, events)
	}

	return core.StepResult{State: g.State(), Events: events}
}

// moveCursor applies directional actions, keeping the cursor on the grid.
func (g *Game) moveCursor(in core.InputFrame) {
	size := g.session.Pattern().Size()
	if size == 0 {
		return
	}
	if in.Has(core.ActionUp) {
		g.cursor.Y--
	}
	if in.Has(core.ActionDown) {
		g.cursor.Y++
	}
	if in.Has(core.ActionLeft) {
		g.cursor.X--
	}
	if in.Has(core.ActionRight) {
		g.cursor.X++
	}
	g.cursor.X = core.Clamp(g.cursor.X, 0, size-1)
	g.cursor.Y = core.Clamp(g.cursor.Y, 0, size-1)
}

// touch applies a touch to the session and turns the result into score and events.
func (g *Game) touch(c stroke.Coord, events []core.Event) []core.Event {
	r := g.session.Touch(c)
	if r.Kind != stroke.TouchRejected {
		g.touches++
	}

	switch r.Kind {
	case stroke.TouchRejected:
		g.rejectCell = c
		g.rejectTicks = g.cfg.Timing.FeedbackTicks
		events = append(events, core.Event{Kind: core.EventTouchRejected})

	case stroke.TouchReverted:
		if r.Cleared > 0 {
			g.reverts++
			g.addScore(-g.cfg.Scoring.RevertPenalty)
			events = append(events, core.Event{Kind: core.EventStrokeReverted})
		}

	case stroke.TouchExtended, stroke.TouchCompleted:
		if r.Order > g.bestLen {
			g.addScore(g.cfg.Scoring.PerCell * (r.Order - g.bestLen))
			g.bestLen = r.Order
		}
		g.hintTicks = 0
		events = append(events, core.Event{Kind: core.EventStrokeExtended})
		if r.Kind == stroke.TouchCompleted {
			events = append(events, g.completeLevel())
		}
	}
	return events
}

// completeLevel records the clear and schedules the advance.
func (g *Game) completeLevel() core.Event {
	g.addScore(g.cfg.Scoring.LevelBonus * g.session.Pattern().Size())
	g.cleared++
	g.levelCleared = true
	g.levelClearTicks = max(g.cfg.Timing.AdvanceDelayTicks, 1)

	tickRate := g.runtime.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}
	g.lastClear = core.LevelStats{
		LevelID:    g.level.ID,
		Targets:    g.session.Pattern().TargetCount(),
		Touches:    g.touches,
		Reverts:    g.reverts,
		Hints:      g.hints,
		DurationMs: int64(g.tick-g.levelStartTick) * 1000 / int64(tickRate),
	}
	stats := g.lastClear
	return core.Event{Kind: core.EventLevelCompleted, Stats: &stats}
}

// advanceLevel moves to the next level.
func (g *Game) advanceLevel() {
	g.levelCleared = false
	g.levelClearTicks = 0
	g.levelIndex++

	if g.mode == ModeEndless && g.cfg.Run.Length > 0 && g.cleared >= g.cfg.Run.Length {
		g.won = true
		g.gameOver = true
		return
	}
	g.loadCurrentLevel()
}

// showHint highlights the next cell of a solution that extends the current
// stroke, or the cell to retouch when the stroke has become a dead end.
func (g *Game) showHint(events []core.Event) []core.Event {
	current := g.session.Stroke()
	next, revert, ok := g.nextHint(current)
	if !ok {
		return events
	}

	g.hints++
	g.addScore(-g.cfg.Scoring.HintPenalty)
	g.hintCell = next
	g.hintRevert = revert
	g.hintTicks = max(g.cfg.Timing.FeedbackTicks*3, 1)
	g.cursor = next
	return append(events, core.Event{Kind: core.EventHintShown})
}

// nextHint finds the hint cell for a stroke. revert is set when the stroke
// cannot be completed and the returned cell is where to cut it back to.
func (g *Game) nextHint(current []stroke.Coord) (stroke.Coord, bool, bool) {
	p := g.session.Pattern()
	if len(current) == 0 {
		if !p.HasStart() {
			return stroke.Coord{}, false, false
		}
		return p.Start(), false, true
	}
	if len(current) >= p.TargetCount() {
		return stroke.Coord{}, false, false
	}

	if len(g.solution) > len(current) && slices.Equal(g.solution[:len(current)], current) {
		return g.solution[len(current)], false, true
	}

	path, _, err := stroke.Solve(p, current, g.cfg.Generator.MaxSolverNodes)
	if err == nil {
		return path[len(current)], false, true
	}

	// Dead end or search gave up: cut back to where the stroke leaves the known solution.
	if len(g.solution) == 0 {
		return stroke.Coord{}, false, false
	}
	common := 0
	for common < len(current) && common < len(g.solution) && current[common] == g.solution[common] {
		common++
	}
	if common == 0 {
		return p.Start(), true, true
	}
	return g.solution[common-1], true, true
}

// addScore changes the score, never going below zero.
func (g *Game) addScore(delta int) {
	g.score = max(g.score+delta, 0)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Paused:   g.paused || g.tooSmall,
	}
}

// Snapshot captures the observable game state for determinism tests.
type Snapshot struct {
	Tick       uint64
	Score      int
	LevelID    string
	LevelIndex int
	Cleared    int
	Cursor     stroke.Coord
	Stroke     []stroke.Coord
	Completed  bool
	GameOver   bool
	Won        bool
}

// Snapshot returns a copy of the current game state.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:       g.tick,
		Score:      g.score,
		LevelID:    g.level.ID,
		LevelIndex: g.levelIndex,
		Cleared:    g.cleared,
		Cursor:     g.cursor,
		GameOver:   g.gameOver,
		Won:        g.won,
	}
	if g.session != nil {
		s.Stroke = g.session.Stroke()
		s.Completed = g.session.IsCompleted()
	}
	return s
}

// Session exposes the stroke session of the current level.
func (g *Game) Session() *stroke.Session {
	return g.session
}

// Layout returns the current board layout.
func (g *Game) Layout() BoardLayout {
	return g.layout
}

func init() {
	registry.Register(IDCampaign, func() registry.Game {
		return New()
	})
	registry.Register(IDEndless, func() registry.Game {
		return NewEndless()
	})
}
