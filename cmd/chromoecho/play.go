package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/chromoecho/internal/core"
	"github.com/vovakirdan/chromoecho/internal/games/chromoecho"
	"github.com/vovakirdan/chromoecho/internal/games/chromoecho/levels"
	"github.com/vovakirdan/chromoecho/internal/platform/tui"
	"github.com/vovakirdan/chromoecho/internal/registry"
	"github.com/vovakirdan/chromoecho/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level",
	Long: `Start playing a level, or the first level when none is given.

Controls:
  WASD/Arrows  - Move
  Space/E      - Hack a terminal
  R            - End the loop early (restart after a run ends)
  P/Esc        - Pause
  Enter        - Next level after a heist
  B            - Back to the level picker (paused or after a run)
  Q/Ctrl+C     - Quit
  Ctrl+S       - Save a screenshot

Difficulty options:
  easy   - Slower guards with narrow vision
  normal - Default guards, escalating a little every loop
  hard   - Fast guards that escalate quickly
  fixed  - No escalation between loops

Examples:
  chromoecho play
  chromoecho play watchful-eye --difficulty hard
  chromoecho play vault --levels ./my-levels`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	logger, closeLog, err := newLogger(nil, "chromoecho")
	if err != nil {
		return err
	}
	defer closeLog()

	catalog, err := levels.Catalog(flagLevels)
	if err != nil {
		return err
	}

	levelID := ""
	if len(args) == 1 {
		levelID = args[0]
		if _, ok := levels.Find(catalog, levelID); !ok {
			return fmt.Errorf("unknown level %q, run 'chromoecho levels' to list them", levelID)
		}
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	cfg := terminalConfig()
	back, err := playLevel(levelID, store, cfg, logger)
	if err != nil || !back {
		return err
	}
	return menuLoop(catalog, store, cfg, logger)
}

// playLevel runs one game until the player quits or goes back to the picker.
func playLevel(levelID string, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) (bool, error) {
	game, err := registry.CreateAt(chromoecho.GameID, levelID)
	if err != nil {
		return false, err
	}
	back, err := tui.Run(game, store, cfg, playerName(), logger)
	if err != nil {
		return false, fmt.Errorf("error running game: %w", err)
	}
	return back, nil
}

// terminalConfig sizes the runtime to the current terminal.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	return cfg
}

// openStore opens the runs database. Games still work without it.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database", "path", flagDBPath, "err", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		return nil
	}
	return store
}

func playerName() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "player"
}
