package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chromoecho/internal/games/chromoecho/levels"
	"github.com/vovakirdan/chromoecho/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List games and levels",
	Long:  `Shows the registered games and every level they can play.`,
	RunE:  runList,
}

func runList(_ *cobra.Command, _ []string) error {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return nil
	}

	fmt.Println("Available games:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}
	fmt.Println()

	catalog, err := levels.Catalog(flagLevels)
	if err != nil {
		return err
	}
	printLevels(catalog)

	fmt.Println()
	fmt.Println("Run 'chromoecho play <level>' to play a level.")
	return nil
}
