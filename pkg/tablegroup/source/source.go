// Package source produces raw tables page by page from input documents.
package source

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ukaji3/tablegroup-go/pkg/tablegroup/models"
)

// ErrUnsupportedFormat indicates an input extension with no source.
var ErrUnsupportedFormat = errors.New("unsupported input format")

// Source yields raw tables for each page of a document.
type Source interface {
	// NumPages returns the page count.
	NumPages() int
	// Tables returns the tables on page (1-based) in detection order.
	Tables(page int) ([]models.RawTable, error)
	// Close releases the underlying document.
	Close() error
}

// Config holds table detection parameters.
type Config struct {
	// MinRows is the minimum number of rows for a table.
	MinRows int `toml:"min_rows"`
	// MinCols is the minimum number of columns for a table.
	MinCols int `toml:"min_cols"`
	// RowTolerance is the baseline distance (points) within which glyphs share a line.
	RowTolerance float64 `toml:"row_tolerance"`
	// CellGap is the largest horizontal gap (points) inside one cell.
	CellGap float64 `toml:"cell_gap"`
	// MaxRowGap is the largest vertical gap (points) between rows of one table.
	MaxRowGap float64 `toml:"max_row_gap"`
	// ColumnTolerance widens column extents (points) when merging them.
	ColumnTolerance float64 `toml:"column_tolerance"`
	// DensityMin is the minimum share of non-empty cells in a workbook region.
	DensityMin float64 `toml:"density_min"`
	// MinNonemptyCells is the minimum non-empty cells in a workbook region.
	MinNonemptyCells int `toml:"min_nonempty_cells"`
}

// DefaultConfig returns default detection parameters.
func DefaultConfig() Config {
	return Config{
		MinRows:          2,
		MinCols:          2,
		RowTolerance:     2.0,
		CellGap:          5.0,
		MaxRowGap:        30.0,
		ColumnTolerance:  2.0,
		DensityMin:       0.04,
		MinNonemptyCells: 3,
	}
}

// Supported reports whether a file name has an extension Open accepts.
func Supported(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf", ".xlsx":
		return true
	}
	return false
}

// Open opens path with the source matching its extension.
func Open(path string, cfg Config) (Source, error) {
	var (
		src Source
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".pdf":
		src, err = OpenPDF(path, cfg)
	case ".xlsx":
		src, err = OpenWorkbook(path, cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}
	return src, nil
}
