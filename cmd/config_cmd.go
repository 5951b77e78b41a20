package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/bookfees/internal/config"
	"github.com/theirongolddev/bookfees/internal/pipeline"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println("  Values below include .env, BOOKFEES_* and flag overrides.")
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Data directory: %s\n", cfg.General.DataDir)
	fmt.Printf("    Use cache:      %v\n", cfg.General.UseCache)
	if cfg.General.UseCache {
		fmt.Printf("    Cache file:     %s\n", pipeline.CachePath())
	}
	fmt.Println()

	fmt.Println("  [Report]")
	fmt.Printf("    Input:    %s\n", cfg.Report.Input)
	fmt.Printf("    Resolved: %s\n", config.DataFilePath(cfg.General.DataDir, cfg.Report.Input))
	fmt.Printf("    Output:   %s\n", cfg.Report.Output)
	fmt.Printf("    Sort by:  %s\n", cfg.Report.SortBy)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  Run `bookfees setup` to reconfigure.")
	return nil
}
