package tui

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/bookfees/internal/cli"
	"github.com/theirongolddev/bookfees/internal/config"
	"github.com/theirongolddev/bookfees/internal/source"
	"github.com/theirongolddev/bookfees/internal/tui/theme"
)

// NewSetupForm builds the setup wizard. Submitting the form writes the
// answers straight into cfg. files are the loan tables found in the data
// directory; when present they are offered as the default input.
func NewSetupForm(cfg *config.Config, files []source.DiscoveredFile) *huh.Form {
	var inputField huh.Field
	if len(files) > 0 {
		opts := make([]huh.Option[string], 0, len(files)+1)
		for _, f := range files {
			label := fmt.Sprintf("%s (%s)", f.Name, cli.FormatBytes(f.Size))
			opts = append(opts, huh.NewOption(label, f.Name))
		}
		if !hasFile(files, cfg.Report.Input) {
			opts = append(opts, huh.NewOption(cfg.Report.Input+" (current)", cfg.Report.Input))
		}
		inputField = huh.NewSelect[string]().
			Title("Default loans table").
			Options(opts...).
			Value(&cfg.Report.Input)
	} else {
		inputField = huh.NewInput().
			Title("Default loans table").
			Description("Looked up under the data directory unless it exists here.").
			Value(&cfg.Report.Input)
	}

	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Data directory").
				Description("Where loan tables live.").
				Value(&cfg.General.DataDir).
				Validate(notBlank("data directory")),
			inputField,
			huh.NewInput().
				Title("Report output file").
				Value(&cfg.Report.Output).
				Validate(notBlank("output file")),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Sort report tables by").
				Options(
					huh.NewOption("Patron id", config.SortByID),
					huh.NewOption("Fees owed (highest first)", config.SortByFees),
				).
				Value(&cfg.Report.SortBy),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&cfg.Appearance.Theme),
			huh.NewConfirm().
				Title("Cache parsed tables and keep report history?").
				Value(&cfg.General.UseCache),
		),
	)
}

func hasFile(files []source.DiscoveredFile, name string) bool {
	for _, f := range files {
		if f.Name == name {
			return true
		}
	}
	return false
}

func notBlank(what string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s cannot be empty", what)
		}
		return nil
	}
}
