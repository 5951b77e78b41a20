package config

import (
	"os"
	"path/filepath"
)

// DataFilePath resolves an input table name. Absolute paths and names that
// exist relative to the working directory are used as given; anything else
// is looked up under dataDir.
func DataFilePath(dataDir, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	if _, err := os.Stat(name); err == nil {
		return name
	}
	return filepath.Join(dataDir, name)
}
