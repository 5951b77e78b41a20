package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/bookfees/internal/config"
	"github.com/theirongolddev/bookfees/internal/model"
	"github.com/theirongolddev/bookfees/internal/tui"
	"github.com/theirongolddev/bookfees/internal/tui/theme"
)

var browseCmd = &cobra.Command{
	Use:   "browse [input]",
	Short: "Browse the fee ledger interactively",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(_ *cobra.Command, args []string) error {
	input := cfg.Report.Input
	if len(args) > 0 {
		input = args[0]
	}
	inPath := config.DataFilePath(cfg.General.DataDir, input)

	// The ANSI theme keeps to the 16 base colors; the rest need TrueColor.
	if theme.Active.Name == theme.Terminal.Name {
		lipgloss.SetColorProfile(termenv.ANSI)
	} else {
		lipgloss.SetColorProfile(termenv.TrueColor)
	}

	cache := openCache()
	if cache != nil {
		defer cache.Close()
	}

	// Log lines would tear the alternate screen.
	prev := logger.GetLevel()
	logger.SetLevel(log.ErrorLevel)
	defer logger.SetLevel(prev)

	load := func(path string) ([]model.LoanRecord, error) {
		return loadRecords(cache, path)
	}
	app := tui.NewApp(inPath, cfg.Report.SortBy, load)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
