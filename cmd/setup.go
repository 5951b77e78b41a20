package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/bookfees/internal/config"
	"github.com/theirongolddev/bookfees/internal/source"
	"github.com/theirongolddev/bookfees/internal/tui"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive setup wizard",
	Args:  cobra.NoArgs,
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	// Start from the file on disk, not env or flag overrides.
	fileCfg, err := config.Load()
	if err != nil {
		return err
	}

	files, err := source.ScanDir(cfg.General.DataDir)
	if err != nil {
		logger.Warn("could not scan data directory", "dir", cfg.General.DataDir, "err", err)
	}

	fmt.Println()
	fmt.Println("  Welcome to bookfees!")
	if len(files) > 0 {
		fmt.Printf("  Found %d loan tables in %s\n", len(files), cfg.General.DataDir)
	}
	fmt.Println()

	if err := tui.NewSetupForm(&fileCfg, files).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled, nothing saved.")
			return nil
		}
		return fmt.Errorf("setup form: %w", err)
	}

	if err := fileCfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(fileCfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println("  Run `bookfees setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}
