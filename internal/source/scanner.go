package source

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ScanDir walks the data directory and discovers every CSV table in it.
// A missing directory yields no files and no error.
func ScanDir(dataDir string) ([]DiscoveredFile, error) {
	info, err := os.Stat(dataDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, nil
	}

	var files []DiscoveredFile

	err = filepath.WalkDir(dataDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // intentionally skip unreadable entries
		}
		if d.IsDir() {
			// Skip hidden directories (.git, editor state)
			if path != dataDir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".csv") {
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			return nil //nolint:nilerr // file vanished between readdir and stat
		}
		rel, _ := filepath.Rel(dataDir, path)

		files = append(files, DiscoveredFile{
			Path:    path,
			Name:    rel,
			Size:    fi.Size(),
			ModTime: fi.ModTime(),
		})
		return nil
	})

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})
	return files, err
}
