// Package export turns finished groups into a summary plus one data
// sheet per group, and writes the result as an xlsx workbook.
package export

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ukaji3/tablegroup-go/pkg/tablegroup/models"
)

const (
	// SummarySheet is the name of the first sheet.
	SummarySheet = "Summary"
	// MIMEType is the content type of the written workbook.
	MIMEType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	// FilenameSuffix is appended to the input base name.
	FilenameSuffix = "_smart_grouping.xlsx"
)

// SummaryColumns are the column labels of the Summary sheet.
var SummaryColumns = []string{"Group", "Pages", "Columns"}

// GroupID returns the identifier of the index-th group (0-based).
func GroupID(index int) string {
	return fmt.Sprintf("Group_%d", index+1)
}

// Filename derives the output file name from the input file name.
func Filename(input string) string {
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base)) + FilenameSuffix
}

// Build assembles the export document. ok is false when groups is
// empty; there is nothing to write in that case.
func Build(source string, groups []*models.Group) (doc *models.ExportDocument, ok bool) {
	if len(groups) == 0 {
		return nil, false
	}

	doc = &models.ExportDocument{
		Source:  filepath.Base(source),
		Summary: make([]models.SummaryRow, 0, len(groups)),
		Sheets:  make([]models.Sheet, 0, len(groups)),
	}
	for i, g := range groups {
		id := GroupID(i)
		doc.Summary = append(doc.Summary, models.SummaryRow{
			Group:   id,
			Pages:   joinPages(g.Pages()),
			Columns: strings.Join(g.Header, ", "),
		})
		doc.Sheets = append(doc.Sheets, buildSheet(id, g))
	}
	return doc, true
}

// buildSheet lays out a group sheet. The page column is always appended
// last, even when a header label is already "Page".
func buildSheet(name string, g *models.Group) models.Sheet {
	sheet := models.Sheet{
		Name:    name,
		Columns: append(g.Header.Labels(), models.PageColumn),
		Rows:    make([]models.SheetRow, 0, g.RowCount()),
	}
	for _, f := range g.Frames {
		for _, r := range f.Rows {
			sheet.Rows = append(sheet.Rows, models.SheetRow{Cells: r, Page: f.Page})
		}
	}
	return sheet
}

func joinPages(pages []int) string {
	parts := make([]string, len(pages))
	for i, p := range pages {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, ", ")
}
