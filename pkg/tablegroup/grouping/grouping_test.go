package grouping

import (
	"errors"
	"reflect"
	"testing"

	"github.com/ukaji3/tablegroup-go/pkg/tablegroup/models"
)

// tableOfWidth builds a table with a header and rows data rows.
func tableOfWidth(width, rows int, label string) models.RawTable {
	var grid [][]string
	header := make([]string, width)
	for i := range header {
		header[i] = label
	}
	grid = append(grid, header)
	for r := 0; r < rows; r++ {
		row := make([]string, width)
		for i := range row {
			row[i] = "v"
		}
		grid = append(grid, row)
	}
	return models.NewRawTable(grid...)
}

func TestExtractHeader(t *testing.T) {
	tests := []struct {
		name       string
		table      models.RawTable
		wantHeader models.Header
		wantData   int
		wantOK     bool
	}{
		{
			name:       "first row",
			table:      models.NewRawTable([]string{" Name ", "Age"}, []string{"a", "1"}),
			wantHeader: models.Header{"Name", "Age"},
			wantData:   1,
			wantOK:     true,
		},
		{
			name:       "blank first row skipped",
			table:      models.NewRawTable([]string{"", ""}, []string{"A", ""}, []string{"1", "2"}),
			wantHeader: models.Header{"A", ""},
			wantData:   1,
			wantOK:     true,
		},
		{
			name: "whitespace row is blank",
			table: models.RawTable{Rows: []models.Row{
				{models.Text("  "), models.Absent()},
				{models.Text("X"), models.Text("Y")},
			}},
			wantHeader: models.Header{"X", "Y"},
			wantData:   0,
			wantOK:     true,
		},
		{
			name:   "all blank",
			table:  models.NewRawTable([]string{"", ""}, []string{"", ""}),
			wantOK: false,
		},
		{
			name:   "no rows",
			table:  models.RawTable{},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header, data, ok := ExtractHeader(tt.table)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, expected %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if !reflect.DeepEqual(header, tt.wantHeader) {
				t.Errorf("header = %q, expected %q", header, tt.wantHeader)
			}
			if len(data) != tt.wantData {
				t.Errorf("data rows = %d, expected %d", len(data), tt.wantData)
			}
		})
	}
}

func TestMatcherFirstGroupWins(t *testing.T) {
	var m Matcher
	first := models.NewGroup(models.Header{"A", "B"})
	second := models.NewGroup(models.Header{"C", "D"})
	m.Register(first)
	m.Register(second)

	if got := m.Match(models.Header{"X", "Y"}); got != first {
		t.Errorf("Match returned %v, expected first group", got)
	}
	if got := m.Match(models.Header{"X"}); got != nil {
		t.Errorf("Match returned %v, expected nil", got)
	}
}

func TestGrouperWidths(t *testing.T) {
	g := NewGrouper(nil)
	for i, w := range []int{3, 5, 3, 5, 3} {
		if err := g.Add(i+1, tableOfWidth(w, 2, "h")); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	groups := g.Groups()
	if len(groups) != 2 {
		t.Fatalf("Expected 2 groups, got %d", len(groups))
	}
	if groups[0].Header.Width() != 3 || len(groups[0].Frames) != 3 {
		t.Errorf("group 1: width %d, %d frames; expected width 3, 3 frames",
			groups[0].Header.Width(), len(groups[0].Frames))
	}
	if groups[1].Header.Width() != 5 || len(groups[1].Frames) != 2 {
		t.Errorf("group 2: width %d, %d frames; expected width 5, 2 frames",
			groups[1].Header.Width(), len(groups[1].Frames))
	}
	if !reflect.DeepEqual(groups[0].Pages(), []int{1, 3, 5}) {
		t.Errorf("group 1 pages = %v", groups[0].Pages())
	}
	if g.Tables() != 5 {
		t.Errorf("Tables() = %d, expected 5", g.Tables())
	}
}

func TestGrouperFirstHeaderLabelsGroup(t *testing.T) {
	g := NewGrouper(nil)
	if err := g.Add(1, models.NewRawTable([]string{"A", "B"}, []string{"1", "2"})); err != nil {
		t.Fatal(err)
	}
	if err := g.Add(2, models.NewRawTable([]string{"X", "Y"}, []string{"3", "4"})); err != nil {
		t.Fatal(err)
	}

	groups := g.Groups()
	if len(groups) != 1 {
		t.Fatalf("Expected 1 group, got %d", len(groups))
	}
	for _, f := range groups[0].Frames {
		if !reflect.DeepEqual(f.Columns, []string{"A", "B"}) {
			t.Errorf("frame on page %d labelled %q, expected [A B]", f.Page, f.Columns)
		}
	}
}

func TestGrouperDiscards(t *testing.T) {
	g := NewGrouper(nil)
	tables := []models.RawTable{
		{},
		models.NewRawTable([]string{"", ""}, []string{"", ""}),
		{Rows: []models.Row{{models.Text(" "), models.Absent()}}},
	}
	for _, tbl := range tables {
		if err := g.Add(1, tbl); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}
	if len(g.Groups()) != 0 {
		t.Errorf("Expected no groups, got %d", len(g.Groups()))
	}
}

func TestGrouperKeepsBlankDataRows(t *testing.T) {
	g := NewGrouper(nil)
	tbl := models.NewRawTable([]string{"A", "B"}, []string{"", ""}, []string{"1", ""})
	if err := g.Add(4, tbl); err != nil {
		t.Fatal(err)
	}
	rows := g.Groups()[0].Frames[0].Rows
	expected := [][]string{{"", ""}, {"1", ""}}
	if !reflect.DeepEqual(rows, expected) {
		t.Errorf("rows = %q, expected %q", rows, expected)
	}
}

func TestGrouperRowCountRoundTrip(t *testing.T) {
	g := NewGrouper(nil)
	inputs := []struct {
		page int
		rows int
	}{{1, 4}, {1, 0}, {2, 7}, {3, 1}}
	want := 0
	for _, in := range inputs {
		if err := g.Add(in.page, tableOfWidth(2, in.rows, "h")); err != nil {
			t.Fatal(err)
		}
		want += in.rows
	}
	if got := g.Groups()[0].RowCount(); got != want {
		t.Errorf("RowCount = %d, expected %d", got, want)
	}
}

func TestGrouperRowWidthFault(t *testing.T) {
	g := NewGrouper(nil)
	tbl := models.NewRawTable([]string{"A", "B"}, []string{"1", "2", "3"})
	err := g.Add(1, tbl)
	if !errors.Is(err, models.ErrRowWidth) {
		t.Fatalf("Expected ErrRowWidth, got %v", err)
	}
	if len(g.Groups()) != 0 {
		t.Errorf("failed table must not register a group")
	}
}
