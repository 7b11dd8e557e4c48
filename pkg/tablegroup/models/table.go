// Package models defines data structures for table grouping and export.
package models

import "strings"

// Cell is a single raw table cell. Valid is false when the source
// detected a cell position but no text was present.
type Cell struct {
	Value string `json:"value"`
	Valid bool   `json:"valid"`
}

// Text returns a present cell holding s.
func Text(s string) Cell {
	return Cell{Value: s, Valid: true}
}

// Absent returns a cell with no value.
func Absent() Cell {
	return Cell{}
}

// IsBlank reports whether the cell is absent or whitespace only.
func (c Cell) IsBlank() bool {
	return !c.Valid || strings.TrimSpace(c.Value) == ""
}

// String returns the cell value, or "" for an absent cell.
func (c Cell) String() string {
	if !c.Valid {
		return ""
	}
	return c.Value
}

// Row is an ordered sequence of cells.
type Row []Cell

// IsBlank reports whether every cell in the row is blank.
func (r Row) IsBlank() bool {
	for _, c := range r {
		if !c.IsBlank() {
			return false
		}
	}
	return true
}

// Strings returns the row as plain strings, absent cells as "".
func (r Row) Strings() []string {
	out := make([]string, len(r))
	for i, c := range r {
		out[i] = c.String()
	}
	return out
}

// RawTable is a grid of cells as detected on a page, before any header
// or grouping logic.
type RawTable struct {
	Rows []Row `json:"rows"`
}

// NewRawTable builds a raw table from rows of strings. Empty strings
// become absent cells.
func NewRawTable(rows ...[]string) RawTable {
	t := RawTable{Rows: make([]Row, 0, len(rows))}
	for _, r := range rows {
		row := make(Row, len(r))
		for i, s := range r {
			if s != "" {
				row[i] = Text(s)
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// IsEmpty reports whether the table has no rows or only empty cells.
// A cell holding only whitespace is not empty here; header detection is
// stricter.
func (t RawTable) IsEmpty() bool {
	for _, r := range t.Rows {
		for _, c := range r {
			if c.Valid && c.Value != "" {
				return false
			}
		}
	}
	return true
}

// Header is the normalized first non-blank row of a raw table.
// Two headers belong to the same group when their widths are equal.
type Header []string

// Width returns the number of columns.
func (h Header) Width() int {
	return len(h)
}

// Labels returns a copy of the column labels.
func (h Header) Labels() []string {
	out := make([]string, len(h))
	copy(out, h)
	return out
}
