// Package grouping assigns raw tables to groups by header width and
// accumulates their data rows.
//
// Grouping compares header widths only, never label text. Two unrelated
// tables that happen to have the same number of columns are merged, and
// the later one is relabelled with the first table's header.
package grouping

import (
	"strings"

	"github.com/ukaji3/tablegroup-go/pkg/tablegroup/models"
)

// ExtractHeader returns the first non-blank row of t as a header and the
// rows after it as data. Rows before the header are dropped. Data rows
// are not filtered, so blank rows stay in the output. ok is false when t
// has no non-blank row.
func ExtractHeader(t models.RawTable) (header models.Header, data []models.Row, ok bool) {
	for i, row := range t.Rows {
		if row.IsBlank() {
			continue
		}
		header = make(models.Header, len(row))
		for j, c := range row {
			header[j] = strings.TrimSpace(c.String())
		}
		return header, t.Rows[i+1:], true
	}
	return nil, nil, false
}
