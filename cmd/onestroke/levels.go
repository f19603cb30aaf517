package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	stroke "github.com/vovakirdan/onestroke/internal/games/onestroke/core"
	"github.com/vovakirdan/onestroke/internal/games/onestroke/levels"
)

var flagMaxNodes int

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Inspect and validate level files",
	Long: `Work with level files. Without a directory argument the built-in
campaign (or --levels-dir) is used.

Examples:
  onestroke levels list
  onestroke levels check ./my-levels
  onestroke levels show lvl04`,
}

var levelsListCmd = &cobra.Command{
	Use:   "list [dir]",
	Short: "List playable levels",
	Args:  cobra.MaximumNArgs(1),
	Run:   runLevelsList,
}

var levelsCheckCmd = &cobra.Command{
	Use:     "check [dir]",
	Aliases: []string{"validate"},
	Short:   "Validate every level file and report problems",
	Long: `Parse and validate every level file. Each problem is reported with its
code (EMPTY_PATTERN, NO_START, START_NOT_TARGET, DISCONNECTED, PARITY,
NO_HAMILTONIAN_PATH, SEARCH_LIMIT, INVALID_WITNESS). Exits with status 1 when any
file is invalid.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runLevelsCheck,
}

var levelsShowCmd = &cobra.Command{
	Use:   "show <id> [dir]",
	Short: "Print a level and one solution",
	Args:  cobra.RangeArgs(1, 2),
	Run:   runLevelsShow,
}

func init() {
	levelsCmd.PersistentFlags().IntVar(&flagMaxNodes, "max-nodes", levels.DefaultMaxNodes, "Solver node budget for levels without a stored solution")

	levelsCmd.AddCommand(levelsListCmd)
	levelsCmd.AddCommand(levelsCheckCmd)
	levelsCmd.AddCommand(levelsShowCmd)
}

// levelLoader returns the loader for an optional directory argument.
func levelLoader(dir string) *levels.Loader {
	if dir == "" {
		dir = flagLevelsDir
	}
	loader := levels.NewCampaignLoader()
	if dir != "" {
		loader = levels.NewLoader(dir)
	}
	loader.SetLogger(logger)
	loader.SetMaxNodes(flagMaxNodes)
	return loader
}

func argAt(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func runLevelsList(_ *cobra.Command, args []string) {
	all, err := levelLoader(argAt(args, 0)).LoadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(all) == 0 {
		fmt.Println("No playable levels.")
		return
	}

	fmt.Printf("  %-3s  %-10s  %-20s  %5s  %5s  %8s\n", "#", "ID", "Name", "Size", "Cells", "Coverage")
	for i, lvl := range all {
		st := stroke.ComputePatternStats(lvl.Pattern)
		fmt.Printf("  %-3d  %-10s  %-20s  %2dx%-2d  %5d  %7.0f%%\n",
			i+1, lvl.ID, lvl.Name, st.Size, st.Size, st.Targets, st.Coverage*100)
	}
}

func runLevelsCheck(_ *cobra.Command, args []string) {
	loader := levelLoader(argAt(args, 0))
	results, err := loader.CheckAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	bad := 0
	for _, r := range results {
		if r.Err != nil {
			bad++
			logger.Error("invalid level", "file", r.Path, "err", r.Err)
			continue
		}
		logger.Debug("level ok", "file", r.Path, "id", r.Level.ID, "size", r.Level.Size())
	}

	fmt.Printf("%d files checked, %d valid, %d invalid\n", len(results), len(results)-bad, bad)
	if bad > 0 {
		os.Exit(1)
	}
}

func runLevelsShow(_ *cobra.Command, args []string) {
	lvl, err := levelLoader(argAt(args, 1)).LoadByID(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s - %s (%dx%d)\n\n", lvl.ID, lvl.Name, lvl.Size(), lvl.Size())
	fmt.Println(lvl.Pattern.String())

	solution := lvl.Solution
	if len(solution) == 0 {
		solution, _, err = stroke.Solve(lvl.Pattern, nil, flagMaxNodes)
		if err != nil {
			fmt.Printf("\nNo solution found: %v\n", err)
			return
		}
	}
	fmt.Println()
	fmt.Println(formatOrder(lvl.Pattern, solution))
}

// formatOrder renders the paint order of a stroke on the grid.
func formatOrder(p *stroke.Pattern, path []stroke.Coord) string {
	order := make(map[stroke.Coord]int, len(path))
	for i, c := range path {
		order[c] = i + 1
	}
	width := len(fmt.Sprint(len(path))) + 1

	var sb strings.Builder
	for y := 0; y < p.Size(); y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < p.Size(); x++ {
			if n, ok := order[stroke.C(x, y)]; ok {
				fmt.Fprintf(&sb, "%*d", width, n)
			} else {
				fmt.Fprintf(&sb, "%*s", width, ".")
			}
		}
	}
	return sb.String()
}
