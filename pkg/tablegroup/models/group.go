package models

import (
	"errors"
	"fmt"
	"sort"
)

// PageColumn is the label of the column appended to every data sheet.
const PageColumn = "Page"

// ErrRowWidth indicates a data row whose width does not match its frame.
var ErrRowWidth = errors.New("row width does not match header width")

// Frame is the data extracted from one raw table, labelled with the
// owning group's header. All rows have exactly len(Columns) cells.
type Frame struct {
	// Columns are the header labels, without the page column.
	Columns []string `json:"columns"`
	// Page is the 1-based page the table was found on.
	Page int `json:"page"`
	// Rows are the data rows in source order.
	Rows [][]string `json:"rows"`
}

// NewFrame creates an empty frame for the given labels and page.
func NewFrame(columns []string, page int) *Frame {
	return &Frame{Columns: columns, Page: page}
}

// AppendRow adds a row, rejecting rows of the wrong width.
func (f *Frame) AppendRow(cells []string) error {
	if len(cells) != len(f.Columns) {
		return fmt.Errorf("%w: got %d cells, want %d", ErrRowWidth, len(cells), len(f.Columns))
	}
	f.Rows = append(f.Rows, cells)
	return nil
}

// Group is a set of raw tables whose headers have the same width.
type Group struct {
	// Header is the first-seen header; it labels every frame in the group.
	Header Header `json:"header"`
	// Frames hold the data in accumulation order (page, then table).
	Frames []*Frame `json:"frames"`

	pages map[int]struct{}
}

// NewGroup creates a group labelled by header.
func NewGroup(header Header) *Group {
	return &Group{
		Header: header,
		pages:  make(map[int]struct{}),
	}
}

// Add appends a frame and records its page.
func (g *Group) Add(f *Frame) {
	g.Frames = append(g.Frames, f)
	if g.pages == nil {
		g.pages = make(map[int]struct{})
	}
	g.pages[f.Page] = struct{}{}
}

// Pages returns the distinct contributing pages in ascending order.
func (g *Group) Pages() []int {
	pages := make([]int, 0, len(g.pages))
	for p := range g.pages {
		pages = append(pages, p)
	}
	sort.Ints(pages)
	return pages
}

// RowCount returns the number of data rows across all frames.
func (g *Group) RowCount() int {
	n := 0
	for _, f := range g.Frames {
		n += len(f.Rows)
	}
	return n
}
