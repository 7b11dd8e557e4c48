package export

import (
	"bytes"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/tablegroup-go/pkg/tablegroup/models"
)

// Write writes doc as an xlsx workbook: the Summary sheet first, then
// one sheet per group in summary order.
func Write(doc *models.ExportDocument, w io.Writer) error {
	f, err := NewWorkbook(doc)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// Bytes returns doc serialized as an xlsx workbook.
func Bytes(doc *models.ExportDocument) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(doc, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// NewWorkbook builds the in-memory workbook for doc. The caller closes it.
func NewWorkbook(doc *models.ExportDocument) (*excelize.File, error) {
	f := excelize.NewFile()

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, SummarySheet); err != nil {
		f.Close()
		return nil, err
	}

	summary := make([][]interface{}, 0, len(doc.Summary)+1)
	summary = append(summary, toRow(SummaryColumns))
	for _, s := range doc.Summary {
		summary = append(summary, []interface{}{s.Group, s.Pages, s.Columns})
	}
	if err := writeRows(f, SummarySheet, summary); err != nil {
		f.Close()
		return nil, err
	}

	for _, sheet := range doc.Sheets {
		if _, err := f.NewSheet(sheet.Name); err != nil {
			f.Close()
			return nil, fmt.Errorf("creating sheet %s: %w", sheet.Name, err)
		}
		rows := make([][]interface{}, 0, len(sheet.Rows)+1)
		rows = append(rows, toRow(sheet.Columns))
		for _, r := range sheet.Rows {
			row := make([]interface{}, 0, len(r.Cells)+1)
			for _, c := range r.Cells {
				row = append(row, c)
			}
			rows = append(rows, append(row, r.Page))
		}
		if err := writeRows(f, sheet.Name, rows); err != nil {
			f.Close()
			return nil, err
		}
	}

	f.SetActiveSheet(0)
	return f, nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func toRow(labels []string) []interface{} {
	row := make([]interface{}, len(labels))
	for i, l := range labels {
		row[i] = l
	}
	return row
}
