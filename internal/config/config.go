// Package config loads and saves bookfees settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Environment variables that override the config file.
const (
	EnvDataDir = "BOOKFEES_DATA_DIR"
	EnvCache   = "BOOKFEES_CACHE"
)

// Sort keys for terminal report tables.
const (
	SortByID   = "id"
	SortByFees = "fees"
)

// Config holds all bookfees configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Report     ReportConfig     `toml:"report"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DataDir  string `toml:"data_dir"`
	UseCache bool   `toml:"use_cache"`
}

// ReportConfig holds the default report files and display order.
type ReportConfig struct {
	Input  string `toml:"input"`
	Output string `toml:"output"`
	SortBy string `toml:"sort_by"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// Themes lists the accepted appearance.theme values.
var Themes = []string{"flexoki-dark", "catppuccin-mocha", "terminal"}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			DataDir: "data",
		},
		Report: ReportConfig{
			Input:  "book_returns_short.csv",
			Output: "book_fees.csv",
			SortBy: SortByID,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "bookfees")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "bookfees")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads the config file at path, returning defaults if it doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // user-selected config path
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	return SaveTo(Path(), cfg)
}

// SaveTo writes the config to path, creating its directory.
func SaveTo(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil { //nolint:gosec // config dir is user-owned
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600) //nolint:gosec // user-selected config path
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// ApplyEnv overlays BOOKFEES_* environment variables onto cfg.
func ApplyEnv(cfg *Config) {
	if dir := os.Getenv(EnvDataDir); dir != "" {
		cfg.General.DataDir = dir
	}
	if v := os.Getenv(EnvCache); v != "" {
		if on, err := strconv.ParseBool(v); err == nil {
			cfg.General.UseCache = on
		}
	}
}

// Validate checks enumerated settings, reporting every problem at once.
func (c Config) Validate() error {
	var problems []string

	switch c.Report.SortBy {
	case SortByID, SortByFees:
	default:
		problems = append(problems, fmt.Sprintf("invalid report.sort_by %q: must be %q or %q", c.Report.SortBy, SortByID, SortByFees))
	}

	if !validTheme(c.Appearance.Theme) {
		problems = append(problems, fmt.Sprintf("invalid appearance.theme %q: must be one of %v", c.Appearance.Theme, Themes))
	}

	if strings.TrimSpace(c.Report.Output) == "" {
		problems = append(problems, "report.output cannot be empty")
	}

	if len(problems) > 0 {
		return errors.New("configuration validation failed:\n- " + strings.Join(problems, "\n- "))
	}
	return nil
}

func validTheme(name string) bool {
	for _, t := range Themes {
		if t == name {
			return true
		}
	}
	return false
}
