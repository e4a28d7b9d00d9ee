package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/chromoecho/internal/games/chromoecho/levels"
	"github.com/vovakirdan/chromoecho/internal/platform/tui"
	"github.com/vovakirdan/chromoecho/internal/storage"
)

var (
	flagRunsLimit int
	flagRunsClear bool
)

var runsCmd = &cobra.Command{
	Use:   "runs [level]",
	Short: "Show the best runs of a level",
	Long: `Display the best completed runs of a level.

In a terminal this opens the interactive runs board. When the output is
piped, the best runs are printed as plain text.

Examples:
  chromoecho runs
  chromoecho runs watchful-eye
  chromoecho runs first-echo --limit 5 | cat
  chromoecho runs first-echo --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to print")
	runsCmd.Flags().BoolVar(&flagRunsClear, "clear", false, "Delete the stored runs of the level")
}

func runRuns(_ *cobra.Command, args []string) error {
	catalog, err := levels.Catalog(flagLevels)
	if err != nil {
		return err
	}
	if len(catalog) == 0 {
		return fmt.Errorf("no levels found")
	}

	levelID := catalog[0].ID
	if len(args) == 1 {
		levelID = args[0]
	}
	lvl, ok := levels.Find(catalog, levelID)
	if !ok {
		return fmt.Errorf("unknown level %q, run 'chromoecho levels' to list them", levelID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening runs database: %w", err)
	}
	defer store.Close()

	if flagRunsClear {
		if err := store.ClearRuns(lvl.ID); err != nil {
			return err
		}
		fmt.Printf("Cleared runs of %s\n", lvl.ID)
		return nil
	}

	if term.IsTerminal(int(os.Stdout.Fd())) {
		cfg := terminalConfig()
		_, err := tui.RunRunsBoard(catalog, store, lvl.ID, cfg.ScreenW, cfg.ScreenH)
		return err
	}

	return printRuns(store, lvl)
}

func printRuns(store *storage.Store, lvl levels.Level) error {
	runs, err := store.BestRuns(lvl.ID, flagRunsLimit)
	if err != nil {
		return fmt.Errorf("error retrieving runs: %w", err)
	}

	fmt.Printf("Best runs - %s\n", lvl.Name)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No completed runs yet.")
		fmt.Println()
		fmt.Printf("Play 'chromoecho play %s' to set the first one!\n", lvl.ID)
		return nil
	}

	fmt.Printf("  %-4s  %-6s  %-5s  %-7s  %-12s  %s\n", "Rank", "Score", "Loops", "Time", "Player", "Date")
	fmt.Printf("  %-4s  %-6s  %-5s  %-7s  %-12s  %s\n", "----", "-----", "-----", "----", "------", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-6d  %-5d  %-7s  %-12s  %s\n", i+1, r.Score, r.Loops,
			r.Duration().Round(10*time.Millisecond), r.Player, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if st, err := store.GetLevelStats(lvl.ID); err == nil {
		fmt.Printf("Best: %d | Completed %d of %d attempts\n", st.BestScore, st.Completions, st.Attempts)
	}
	return nil
}
