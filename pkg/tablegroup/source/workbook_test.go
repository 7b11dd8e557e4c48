package source

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestDetectTables(t *testing.T) {
	rows := [][]string{
		{"", "Name", "Age"},
		{"", "Bob", "30"},
		{},
		{"", "", ""},
		{"X", "Y"},
		{"1"},
	}

	tables := DetectTables(rows, DefaultConfig())
	if len(tables) != 2 {
		t.Fatalf("Expected 2 tables, got %d", len(tables))
	}

	if got := cellStrings(tables[0]); !reflect.DeepEqual(got, [][]string{{"Name", "Age"}, {"Bob", "30"}}) {
		t.Errorf("first table = %q", got)
	}
	if got := cellStrings(tables[1]); !reflect.DeepEqual(got, [][]string{{"X", "Y"}, {"1", "<nil>"}}) {
		t.Errorf("second table = %q", got)
	}
}

func TestDetectTablesMinNonempty(t *testing.T) {
	rows := [][]string{{"only", "two"}}
	if got := DetectTables(rows, DefaultConfig()); len(got) != 0 {
		t.Errorf("Expected no tables, got %d", len(got))
	}
}

func TestOpenWorkbook(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetCellValue("Sheet1", "A1", "Item")
	f.SetCellValue("Sheet1", "B1", "Cost")
	f.SetCellValue("Sheet1", "A2", "Pen")
	f.SetCellValue("Sheet1", "B2", 3)
	if _, err := f.NewSheet("Empty"); err != nil {
		t.Fatalf("NewSheet failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "book.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}

	src, err := Open(path, DefaultConfig())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer src.Close()

	if src.NumPages() != 2 {
		t.Fatalf("Expected 2 pages, got %d", src.NumPages())
	}
	tables, err := src.Tables(1)
	if err != nil {
		t.Fatalf("Tables failed: %v", err)
	}
	if len(tables) != 1 || len(tables[0].Rows) != 2 {
		t.Fatalf("Expected one 2-row table, got %+v", tables)
	}
	tables, err = src.Tables(2)
	if err != nil {
		t.Fatalf("Tables failed: %v", err)
	}
	if len(tables) != 0 {
		t.Errorf("Expected no tables on empty sheet, got %d", len(tables))
	}
	if _, err := src.Tables(3); err == nil {
		t.Errorf("Expected error for out-of-range page")
	}
}

func TestOpenUnsupported(t *testing.T) {
	_, err := Open("notes.docx", DefaultConfig())
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
	if Supported("a.docx") || !Supported("A.PDF") || !Supported("b.xlsx") {
		t.Errorf("Supported returned unexpected results")
	}
}
