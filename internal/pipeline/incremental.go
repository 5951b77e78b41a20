package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/theirongolddev/bookfees/internal/source"
	"github.com/theirongolddev/bookfees/internal/store"
)

// CachedLoadResult extends LoadResult with cache metadata.
type CachedLoadResult struct {
	LoadResult
	CacheHit bool
}

// LoadWithCache returns the cached records for path when the file's mtime
// and size still match what was tracked, and parses (then caches) it
// otherwise. Tables that fail to parse are never cached.
func LoadWithCache(path string, cache *store.Cache) (*CachedLoadResult, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("opening loans table: %w", err)
	}

	result := &CachedLoadResult{
		LoadResult: LoadResult{
			Path:    path,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		},
	}

	tracked, ok, err := cache.TrackedFile(abs)
	if err != nil {
		return nil, fmt.Errorf("reading cache: %w", err)
	}
	if ok && tracked.MtimeNs == info.ModTime().UnixNano() && tracked.SizeBytes == info.Size() {
		records, err := cache.LoadRecords(abs)
		if err != nil {
			return nil, fmt.Errorf("loading cached records: %w", err)
		}
		result.Records = records
		result.CacheHit = true
		return result, nil
	}

	records, err := source.ParseFile(path)
	if err != nil {
		// Drop stale rows so a broken table is never served from cache.
		_ = cache.DeleteFile(abs)
		return nil, err
	}
	result.Records = records

	if err := cache.SaveRecords(abs, records, info.ModTime().UnixNano(), info.Size()); err != nil {
		return nil, fmt.Errorf("caching records: %w", err)
	}

	return result, nil
}

// CacheDir returns the platform-appropriate cache directory.
func CacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "bookfees")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "bookfees")
}

// CachePath returns the full path to the cache database.
func CachePath() string {
	return filepath.Join(CacheDir(), "bookfees.db")
}
