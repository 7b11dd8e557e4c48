package source

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/tablegroup-go/pkg/tablegroup/models"
)

// Workbook reads tables from an xlsx file. Each sheet is one page.
type Workbook struct {
	file   *excelize.File
	sheets []string
	cfg    Config
}

// OpenWorkbook opens an xlsx file.
func OpenWorkbook(path string, cfg Config) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening XLSX: %w", err)
	}
	return &Workbook{file: f, sheets: f.GetSheetList(), cfg: cfg}, nil
}

// NumPages returns the sheet count.
func (w *Workbook) NumPages() int {
	return len(w.sheets)
}

// Tables returns the table regions of the page-th sheet, top to bottom.
func (w *Workbook) Tables(page int) ([]models.RawTable, error) {
	if page < 1 || page > len(w.sheets) {
		return nil, fmt.Errorf("page %d out of range [1,%d]", page, len(w.sheets))
	}
	rows, err := w.file.GetRows(w.sheets[page-1])
	if err != nil {
		return nil, err
	}
	return DetectTables(rows, w.cfg), nil
}

// Close closes the workbook.
func (w *Workbook) Close() error {
	return w.file.Close()
}

// DetectTables splits sheet rows into regions at fully blank rows and
// keeps the regions dense enough to be tables.
func DetectTables(rows [][]string, cfg Config) []models.RawTable {
	var tables []models.RawTable
	start := -1
	for i := 0; i <= len(rows); i++ {
		blank := i == len(rows) || isBlankRow(rows[i])
		if !blank && start < 0 {
			start = i
		}
		if blank && start >= 0 {
			if t, ok := regionTable(rows[start:i], cfg); ok {
				tables = append(tables, t)
			}
			start = -1
		}
	}
	return tables
}

// regionTable clips a region to its non-empty bounds and converts it.
func regionTable(rows [][]string, cfg Config) (models.RawTable, bool) {
	minRow, maxRow, minCol, maxCol := findDataBounds(rows)
	if minRow < 0 {
		return models.RawTable{}, false
	}

	totalCells := (maxRow - minRow + 1) * (maxCol - minCol + 1)
	nonEmptyCells := countNonEmptyCells(rows, minRow, maxRow, minCol, maxCol)
	if nonEmptyCells < cfg.MinNonemptyCells {
		return models.RawTable{}, false
	}
	if float64(nonEmptyCells)/float64(totalCells) < cfg.DensityMin {
		return models.RawTable{}, false
	}

	t := models.RawTable{Rows: make([]models.Row, 0, maxRow-minRow+1)}
	for r := minRow; r <= maxRow; r++ {
		row := make(models.Row, maxCol-minCol+1)
		for c := minCol; c <= maxCol && c < len(rows[r]); c++ {
			if v := rows[r][c]; v != "" {
				row[c-minCol] = models.Text(v)
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, true
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}

// findDataBounds finds the bounding box of non-empty cells.
func findDataBounds(rows [][]string) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell != "" {
				if minRow < 0 || rowIdx < minRow {
					minRow = rowIdx
				}
				if maxRow < 0 || rowIdx > maxRow {
					maxRow = rowIdx
				}
				if minCol < 0 || colIdx < minCol {
					minCol = colIdx
				}
				if maxCol < 0 || colIdx > maxCol {
					maxCol = colIdx
				}
			}
		}
	}

	return
}

// countNonEmptyCells counts non-empty cells within bounds.
func countNonEmptyCells(rows [][]string, minRow, maxRow, minCol, maxCol int) int {
	count := 0
	for rowIdx := minRow; rowIdx <= maxRow && rowIdx < len(rows); rowIdx++ {
		row := rows[rowIdx]
		for colIdx := minCol; colIdx <= maxCol && colIdx < len(row); colIdx++ {
			if row[colIdx] != "" {
				count++
			}
		}
	}
	return count
}
