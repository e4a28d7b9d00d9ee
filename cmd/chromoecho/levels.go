package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chromoecho/internal/games/chromoecho/levels"
	"github.com/vovakirdan/chromoecho/internal/games/chromoecho/levels/formats"
)

var flagExportOut string

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List, validate and export levels",
	Long: `Lists the built-in levels and those found in --levels.

Level files are YAML or TOML. Use 'levels validate' to check a file before
dropping it into the levels directory, and 'levels export' to start a new
level from an existing one.

Examples:
  chromoecho levels
  chromoecho levels --levels ./my-levels
  chromoecho levels validate ./my-levels/vault.yaml
  chromoecho levels export first-echo --out vault.yaml`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		catalog, err := levels.Catalog(flagLevels)
		if err != nil {
			return err
		}
		printLevels(catalog)
		return nil
	},
}

var levelsValidateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Check level files for errors",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLevelsValidate,
}

var levelsExportCmd = &cobra.Command{
	Use:   "export <level>",
	Short: "Write a level as YAML",
	Args:  cobra.ExactArgs(1),
	RunE:  runLevelsExport,
}

func init() {
	levelsExportCmd.Flags().StringVarP(&flagExportOut, "out", "o", "", "Write to this file instead of stdout")

	levelsCmd.AddCommand(levelsValidateCmd)
	levelsCmd.AddCommand(levelsExportCmd)
}

func printLevels(catalog []levels.Level) {
	if len(catalog) == 0 {
		fmt.Println("No levels found.")
		return
	}

	maxIDLen := 2
	for _, l := range catalog {
		if len(l.ID) > maxIDLen {
			maxIDLen = len(l.ID)
		}
	}

	fmt.Println("Levels:")
	fmt.Println()
	fmt.Printf("  %-*s  %-5s  %-6s  %-8s  %s\n", maxIDLen, "ID", "Loops", "Length", "Source", "Name")
	fmt.Printf("  %-*s  %-5s  %-6s  %-8s  %s\n", maxIDLen, "--", "-----", "------", "------", "----")
	for _, l := range catalog {
		source := levels.SourceBuiltin
		if !l.IsBuiltin() {
			source = "custom"
		}
		fmt.Printf("  %-*s  %-5d  %-6s  %-8s  %s\n", maxIDLen, l.ID, l.MaxLoops,
			fmt.Sprintf("%.0fs", l.LoopSeconds), source, l.Name)
	}
}

func runLevelsValidate(_ *cobra.Command, args []string) error {
	loader := levels.NewLoader("")
	failed := 0
	for _, path := range args {
		lvl, err := loader.LoadFile(path)
		if err != nil {
			failed++
			fmt.Printf("FAIL  %s\n", path)
			fmt.Printf("      %v\n", err)
			continue
		}
		fmt.Printf("ok    %s (%s, %dx%d, %d loops)\n", path, lvl.ID, lvl.Width, lvl.Height, lvl.MaxLoops)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d level files are invalid", failed, len(args))
	}
	return nil
}

func runLevelsExport(_ *cobra.Command, args []string) error {
	catalog, err := levels.Catalog(flagLevels)
	if err != nil {
		return err
	}
	lvl, ok := levels.Find(catalog, args[0])
	if !ok {
		return fmt.Errorf("unknown level %q, run 'chromoecho levels' to list them", args[0])
	}

	data, err := formats.EncodeYAML(levels.ToFile(lvl.Level))
	if err != nil {
		return fmt.Errorf("cannot encode level: %w", err)
	}

	if flagExportOut == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(flagExportOut, data, 0o644); err != nil {
		return fmt.Errorf("cannot write %s: %w", flagExportOut, err)
	}
	fmt.Printf("Wrote %s to %s\n", lvl.ID, flagExportOut)
	return nil
}
