package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_DefaultsWhenMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
	if Exists() {
		t.Error("Exists() = true with no config file")
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.General.DataDir = "/srv/library"
	cfg.General.UseCache = true
	cfg.Report.SortBy = SortByFees
	cfg.Appearance.Theme = "terminal"

	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists() {
		t.Fatal("Exists() = false after Save")
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != cfg {
		t.Errorf("Load() = %+v, want %+v", got, cfg)
	}
}

func TestLoadFrom_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[report]\nsort_by = \"fees\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Report.SortBy != SortByFees {
		t.Errorf("SortBy = %q, want fees", cfg.Report.SortBy)
	}
	if cfg.Report.Output != "book_fees.csv" {
		t.Errorf("Output = %q, want default book_fees.csv", cfg.Report.Output)
	}
}

func TestLoadFrom_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[report\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Fatal("LoadFrom accepted malformed TOML")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvDataDir, "/tmp/loans")
	t.Setenv(EnvCache, "true")

	cfg := DefaultConfig()
	ApplyEnv(&cfg)

	if cfg.General.DataDir != "/tmp/loans" {
		t.Errorf("DataDir = %q, want /tmp/loans", cfg.General.DataDir)
	}
	if !cfg.General.UseCache {
		t.Error("UseCache = false, want true from env")
	}
}

func TestValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}

	cfg := DefaultConfig()
	cfg.Report.SortBy = "date"
	cfg.Appearance.Theme = "neon"
	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate accepted bad sort and theme")
	}
	for _, want := range []string{"sort_by", "theme"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}

func TestDataFilePath(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	if err := os.WriteFile("local.csv", []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		want string
	}{
		{"local.csv", "local.csv"},
		{"book_returns.csv", filepath.Join("data", "book_returns.csv")},
		{"/abs/loans.csv", "/abs/loans.csv"},
	}
	for _, tt := range tests {
		if got := DataFilePath("data", tt.name); got != tt.want {
			t.Errorf("DataFilePath(data, %q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
