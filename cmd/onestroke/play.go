package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/onestroke/internal/games/onestroke"
	"github.com/vovakirdan/onestroke/internal/platform/tui"
)

var flagStartLevel int

var playCmd = &cobra.Command{
	Use:   "play [campaign|endless]",
	Short: "Play a mode directly, skipping the menu",
	Long: `Start playing without the menu. The default mode is campaign.

Controls:
  Arrows/WASD     - Move the cursor
  Space/Enter     - Touch the cell under the cursor
  Mouse           - Click or drag across cells
  H/?             - Hint (costs points)
  R               - Clear the stroke, or restart after the run
  P               - Pause
  Ctrl+S          - Save a text screenshot
  Q/Ctrl+C        - Quit

Difficulty options (endless mode):
  easy   - Start with small sparse patterns
  normal - Start at 30% difficulty
  hard   - Start at 70% difficulty
  fixed  - No progression, stays at config's initial level

Examples:
  onestroke play
  onestroke play --level 4
  onestroke play endless --difficulty hard
  onestroke play endless --seed 1234
  onestroke play --levels-dir ./my-levels`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"campaign", "endless"},
	Run:       runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagStartLevel, "level", 0, "Campaign level to start at (1-indexed)")
}

// gameIDForMode maps a mode argument to a registered game ID.
func gameIDForMode(args []string) (string, error) {
	if len(args) == 0 {
		return onestroke.IDCampaign, nil
	}
	switch args[0] {
	case "campaign", onestroke.IDCampaign:
		return onestroke.IDCampaign, nil
	case "endless", onestroke.IDEndless:
		return onestroke.IDEndless, nil
	}
	return "", fmt.Errorf("unknown mode %q (want campaign or endless)", args[0])
}

func runPlay(_ *cobra.Command, args []string) {
	gameID, err := gameIDForMode(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	game, err := tui.NewSelectedGame(tui.MenuSelection{GameID: gameID, Level: flagStartLevel})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore()
	restore := redirectLogs()
	_, runErr := tui.Run(game, store, runtimeConfig(), logger)
	restore()

	if store != nil {
		store.Close()
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
