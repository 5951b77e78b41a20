package pipeline

import (
	"fmt"
	"os"
	"time"

	"github.com/theirongolddev/bookfees/internal/model"
	"github.com/theirongolddev/bookfees/internal/source"
)

// LoadResult holds the records read from one loans table.
type LoadResult struct {
	Path    string
	Records []model.LoanRecord
	Size    int64
	ModTime time.Time
}

// Load parses the loans table at path without touching any cache.
func Load(path string) (*LoadResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("opening loans table: %w", err)
	}

	records, err := source.ParseFile(path)
	if err != nil {
		return nil, err
	}

	return &LoadResult{
		Path:    path,
		Records: records,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}
