// chromoecho is a terminal time-loop heist: every loop you play is replayed
// by an echo of yourself in the loops that follow.
//
// Usage:
//
//	chromoecho list                 - List games and levels
//	chromoecho play [level]         - Play a level
//	chromoecho menu                 - Pick levels interactively
//	chromoecho runs [level]         - Show the best runs of a level
//	chromoecho levels               - List, validate and export levels
//	chromoecho serve                - Start SSH server for remote play
//
// Global flags:
//
//	--db <path>          - Set database path (default: ~/.chromoecho/runs.db)
//	--config <path>      - Use a custom chromoecho.yaml
//	--difficulty <name>  - Difficulty preset: easy, normal, hard, fixed
//	--levels <dir>       - Load extra levels from a directory
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chromoecho/internal/config"
	"github.com/vovakirdan/chromoecho/internal/games/chromoecho"
	"github.com/vovakirdan/chromoecho/internal/platform/tui"
)

var (
	// Global flags
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLevels     string
	flagLogLevel   string
	flagLogFile    string
	flagMonochrome bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "chromoecho",
	Short: "ChromoEcho - a time-loop heist in your terminal",
	Long: `ChromoEcho is a heist played across repeating time loops.

When a loop ends, the moves you made are replayed by an echo of yourself
while you play the loop again. Echoes hold plates down and hack terminals
for you, but meeting one of them is a paradox.

Available commands:
  list     - Show games and levels
  play     - Play a level directly
  menu     - Interactive level picker
  runs     - Best runs per level
  levels   - List, validate and export level files
  serve    - Start SSH server for remote play

Examples:
  chromoecho play first-echo
  chromoecho menu --difficulty hard
  chromoecho levels validate ./my-level.yaml
  chromoecho serve --addr :2222`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if flagDifficulty != "" {
			if _, ok := config.ParsePreset(flagDifficulty); !ok {
				return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
			}
		}

		chromoecho.SetConfigPath(flagConfig)
		chromoecho.SetDifficultyPreset(flagDifficulty)
		chromoecho.SetLevelsDir(flagLevels)

		if flagMonochrome {
			tui.SetTheme(tui.MonochromeTheme())
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.chromoecho/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom chromoecho.yaml")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Directory with extra level files")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagMonochrome, "monochrome", false, "Use a monochrome theme for menus")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(serveCmd)
}
