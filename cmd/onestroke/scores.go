package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/onestroke/internal/registry"
	"github.com/vovakirdan/onestroke/internal/storage"
)

var (
	flagClears  int
	flagRun     string
	flagSummary bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [campaign|endless]",
	Short: "Show high scores and level clears",
	Long: `Display the top 10 scores for a mode, the most recent level clears,
or every level cleared in one run.

Examples:
  onestroke scores
  onestroke scores endless
  onestroke scores --clears 20
  onestroke scores --summary
  onestroke scores --run 1b4e28ba-2fa1-11d2-883f-0016d3cca427`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagClears, "clears", 0, "Show this many recent level clears instead of scores")
	scoresCmd.Flags().StringVar(&flagRun, "run", "", "Show the level clears of one run")
	scoresCmd.Flags().BoolVar(&flagSummary, "summary", false, "Show totals for every mode")
}

func runScores(_ *cobra.Command, args []string) {
	gameID, err := gameIDForMode(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagSummary:
		printSummary(store)
	case flagRun != "":
		clears, err := store.RunClears(flagRun)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving run: %v\n", err)
			return
		}
		fmt.Printf("Run %s\n\n", flagRun)
		printClears(clears)
	case flagClears > 0:
		clears, err := store.RecentClears(flagClears)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving clears: %v\n", err)
			return
		}
		fmt.Println("Recent level clears")
		fmt.Println()
		printClears(clears)
	default:
		printScores(store, gameID)
	}
}

func printScores(store *storage.Store, gameID string) {
	title := gameID
	if game, err := registry.Create(gameID); err == nil {
		title = game.Title()
	}

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		return
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Println()
		fmt.Printf("Best: %d  Games: %d  Average: %.0f\n", stats.HighScore, stats.GamesCount, stats.AvgScore)
	}
}

func printClears(clears []storage.LevelClear) {
	if len(clears) == 0 {
		fmt.Println("No levels cleared yet.")
		return
	}

	fmt.Printf("  %-8s  %-18s  %5s  %7s  %7s  %5s  %8s  %s\n",
		"Level", "Game", "Cells", "Touches", "Reverts", "Hints", "Time", "Date")
	for _, c := range clears {
		fmt.Printf("  %-8s  %-18s  %5d  %7d  %7d  %5d  %7.1fs  %s\n",
			c.LevelID, c.GameID, c.Targets, c.Touches, c.Reverts, c.Hints,
			float64(c.DurationMs)/1000, c.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func printSummary(store *storage.Store) {
	all, err := store.GetAllGamesStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		return
	}
	if len(all) == 0 {
		fmt.Println("No games played yet.")
		return
	}

	fmt.Printf("  %-18s  %5s  %8s  %8s  %s\n", "Game", "Runs", "Best", "Average", "Last played")
	for _, info := range registry.List() {
		st, ok := all[info.ID]
		if !ok {
			continue
		}
		fmt.Printf("  %-18s  %5d  %8d  %8.0f  %s\n",
			info.ID, st.GamesCount, st.HighScore, st.AvgScore, st.LastPlayed.Format("2006-01-02 15:04"))
	}
}
