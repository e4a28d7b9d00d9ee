package main

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/chromoecho/internal/core"
	"github.com/vovakirdan/chromoecho/internal/games/chromoecho/levels"
	"github.com/vovakirdan/chromoecho/internal/platform/tui"
	"github.com/vovakirdan/chromoecho/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the level picker",
	Long: `Start ChromoEcho in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to play a level.
After a run, press B to return to the picker.

Controls:
  Up/Down/j/k  - Navigate levels
  Enter/Space  - Play level
  Tab          - Best runs
  Q            - Quit

Examples:
  chromoecho menu
  chromoecho menu --levels ./my-levels
  chromoecho menu --db ./runs.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(nil, "chromoecho")
	if err != nil {
		return err
	}
	defer closeLog()

	catalog, err := levels.Catalog(flagLevels)
	if err != nil {
		return err
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	return menuLoop(catalog, store, terminalConfig(), logger)
}

// menuLoop shows the picker until the player quits, running the chosen level
// or the runs board in between.
func menuLoop(catalog []levels.Level, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	for {
		result, err := tui.RunMenu(catalog, store, cfg)
		if err != nil {
			return err
		}

		// Keep size changes made while the picker was open
		cfg = result.Config

		switch {
		case result.Quit:
			return nil

		case result.WantsRuns:
			goBack, err := tui.RunRunsBoard(catalog, store, "", cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}

		case result.LevelID != "":
			back, err := playLevel(result.LevelID, store, cfg, logger)
			if err != nil {
				return err
			}
			if !back {
				return nil
			}

		default:
			return nil
		}
	}
}
