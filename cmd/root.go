// Package cmd implements the bookfees CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/bookfees/internal/config"
	"github.com/theirongolddev/bookfees/internal/dates"
	"github.com/theirongolddev/bookfees/internal/model"
	"github.com/theirongolddev/bookfees/internal/pipeline"
	"github.com/theirongolddev/bookfees/internal/source"
	"github.com/theirongolddev/bookfees/internal/store"
	"github.com/theirongolddev/bookfees/internal/tui/theme"
)

var (
	flagDataDir string
	flagQuiet   bool
	flagVerbose bool
	flagCache   bool
	flagNoCache bool
)

// Effective settings and logger, set up before any command runs.
var (
	cfg    = config.DefaultConfig()
	logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "bookfees"})
)

var rootCmd = &cobra.Command{
	Use:   "bookfees",
	Short: "Library late-fee reports",
	Long: "Compute per-patron late fees from a table of book loans and returns,\n" +
		"and reformat or generate calendar dates.",
	Args:              cobra.MaximumNArgs(2),
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runReport,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Directory holding loan tables (default from config, then \"data\")")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Only log warnings and errors; skip the report table")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug detail")
	rootCmd.PersistentFlags().BoolVar(&flagCache, "cache", false, "Use the SQLite parse cache and record report history")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Skip the SQLite cache even if enabled in config")
	rootCmd.MarkFlagsMutuallyExclusive("quiet", "verbose")
	rootCmd.MarkFlagsMutuallyExclusive("cache", "no-cache")

	addReportFlags(rootCmd)
}

// setup resolves the effective configuration: config file, then .env and
// BOOKFEES_* variables, then flags.
func setup(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	loaded, err := config.Load()
	if err != nil {
		return err
	}
	config.ApplyEnv(&loaded)

	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		loaded.General.DataDir = flagDataDir
	}
	if flagCache {
		loaded.General.UseCache = true
	}
	if flagNoCache {
		loaded.General.UseCache = false
	}

	if err := loaded.Validate(); err != nil {
		return err
	}
	cfg = loaded
	theme.SetActive(cfg.Appearance.Theme)

	switch {
	case flagQuiet:
		logger.SetLevel(log.WarnLevel)
	case flagVerbose:
		logger.SetLevel(log.DebugLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}
	logger.Debug("configuration", "file", config.Path(), "data_dir", cfg.General.DataDir, "cache", cfg.General.UseCache)
	return nil
}

// openCache opens the parse cache when enabled. A nil cache means the
// caller parses directly; the cache is best-effort and never fails a run.
func openCache() *store.Cache {
	if !cfg.General.UseCache {
		return nil
	}
	cache, err := store.Open(pipeline.CachePath())
	if err != nil {
		logger.Warn("cache unavailable, doing full parse", "err", err)
		return nil
	}
	return cache
}

// loadRecords is the shared loading path used by all commands. It serves
// unchanged tables from cache when one is open.
func loadRecords(cache *store.Cache, path string) ([]model.LoanRecord, error) {
	if cache != nil {
		cr, err := pipeline.LoadWithCache(path, cache)
		switch {
		case err == nil:
			if cr.CacheHit {
				logger.Info("loaded from cache", "path", path, "records", len(cr.Records))
			} else {
				logger.Info("parsed", "path", path, "records", len(cr.Records))
			}
			return cr.Records, nil
		case isInputError(err):
			return nil, err
		default:
			logger.Warn("cache error, falling back to full parse", "err", err)
		}
	}

	result, err := pipeline.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Info("parsed", "path", path, "records", len(result.Records))
	return result.Records, nil
}

// isInputError reports whether err is a problem with the loans table itself,
// which a second parse would only repeat.
func isInputError(err error) bool {
	return errors.Is(err, dates.ErrInvalidDate) ||
		errors.Is(err, source.ErrSchema) ||
		errors.Is(err, fs.ErrNotExist)
}
