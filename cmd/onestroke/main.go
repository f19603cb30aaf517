// onestroke is a terminal puzzle game: paint every cell of a pattern in a
// single continuous stroke.
//
// Usage:
//
//	onestroke                    - Start the interactive menu
//	onestroke play [mode]        - Play campaign or endless mode directly
//	onestroke serve              - Start SSH server for remote play
//	onestroke scores [mode]      - Show high scores and level clears
//	onestroke levels list|check  - Inspect level files
//	onestroke generate           - Generate a level as YAML
//	onestroke config defaults    - Print the default game config
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible levels
//	--db <path>          - Set database path (default: ~/.onestroke/scores.db)
//	--config <path>      - Use a custom game config YAML
//	--difficulty <name>  - Difficulty preset: easy, normal, hard, fixed
//	--levels-dir <dir>   - Load campaign levels from a directory
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/onestroke/internal/games/onestroke"
	"github.com/vovakirdan/onestroke/internal/platform/tui"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLevelsDir  string
	flagTheme      string
	flagVerbose    bool
	flagLogFile    string
)

// logger is the command-line logger, configured before every command.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "onestroke",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "onestroke",
	Short: "OneStroke - paint every cell in one stroke",
	Long: `OneStroke is a terminal puzzle game. Each level is a pattern of cells;
start on the marked cell and paint every target cell with one continuous
stroke that never visits a cell twice. Touch a painted cell to cut the
stroke back to it.

Running onestroke without a command opens the menu.

Examples:
  onestroke
  onestroke play endless --seed 42
  onestroke play --level 5
  onestroke serve --ssh :2222
  onestroke levels check ./my-levels`,
	PersistentPreRun: setup,
	Run:              runMenu,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.onestroke/scores.db", "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLevelsDir, "levels-dir", "", "Load campaign levels from this directory")
	pf.StringVar(&flagTheme, "theme", "default", "Menu theme: default, mono")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs here while the game screen is open")

	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(configCmd)
}

// setup applies global flags to the game and UI packages.
func setup(_ *cobra.Command, _ []string) {
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	if flagFPS <= 0 {
		flagFPS = 60
	}

	onestroke.SetLogger(logger)
	onestroke.SetConfigPath(flagConfig)
	onestroke.SetDifficultyPreset(flagDifficulty)
	onestroke.SetLevelsDir(flagLevelsDir)
	tui.SetTheme(tui.ThemeByName(flagTheme))
}

// redirectLogs routes log output away from the terminal while a full-screen
// UI runs. The returned function restores stderr output.
func redirectLogs() func() {
	restore := func() { logger.SetOutput(os.Stderr) }
	if flagLogFile == "" {
		logger.SetOutput(io.Discard)
		return restore
	}

	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		logger.Warn("cannot open log file", "path", flagLogFile, "error", err)
		logger.SetOutput(io.Discard)
		return restore
	}
	logger.SetOutput(f)
	return func() {
		restore()
		f.Close()
	}
}
