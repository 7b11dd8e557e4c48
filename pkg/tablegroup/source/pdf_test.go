package source

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ukaji3/tablegroup-go/internal/pdftest"
)

func writePDF(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.pdf")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func twoPagePDF() []byte {
	return pdftest.Build(
		[]pdftest.Cell{
			{X: 50, Y: 700, Text: "Name"}, {X: 200, Y: 700, Text: "Age"}, {X: 350, Y: 700, Text: "City"},
			{X: 50, Y: 685, Text: "Alice"}, {X: 200, Y: 685, Text: "30"}, {X: 350, Y: 685, Text: "Paris"},
			{X: 50, Y: 670, Text: "Bob"}, {X: 200, Y: 670, Text: "41"}, {X: 350, Y: 670, Text: "Rome"},
		},
		[]pdftest.Cell{
			{X: 50, Y: 700, Text: "Code"}, {X: 200, Y: 700, Text: "Qty"}, {X: 350, Y: 700, Text: "Place"},
			{X: 50, Y: 685, Text: "c"}, {X: 200, Y: 685, Text: "1"}, {X: 350, Y: 685, Text: "q"},
		},
	)
}

func TestOpenPDF(t *testing.T) {
	src, err := OpenPDF(writePDF(t, twoPagePDF()), DefaultConfig())
	if err != nil {
		t.Fatalf("OpenPDF() error = %v", err)
	}
	defer src.Close()

	if got := src.NumPages(); got != 2 {
		t.Fatalf("NumPages() = %d, want 2", got)
	}

	tests := []struct {
		page     int
		expected [][]string
	}{
		{1, [][]string{{"Name", "Age", "City"}, {"Alice", "30", "Paris"}, {"Bob", "41", "Rome"}}},
		{2, [][]string{{"Code", "Qty", "Place"}, {"c", "1", "q"}}},
	}
	for _, tt := range tests {
		tables, err := src.Tables(tt.page)
		if err != nil {
			t.Fatalf("Tables(%d) error = %v", tt.page, err)
		}
		if len(tables) != 1 {
			t.Fatalf("Tables(%d) returned %d tables, want 1", tt.page, len(tables))
		}
		if got := cellStrings(tables[0]); !reflect.DeepEqual(got, tt.expected) {
			t.Errorf("Tables(%d) = %v, want %v", tt.page, got, tt.expected)
		}
	}
}

func TestOpenPDFMalformed(t *testing.T) {
	path := writePDF(t, pdftest.Malformed())

	fds := func() int {
		entries, err := os.ReadDir("/proc/self/fd")
		if err != nil {
			t.Skip("no /proc/self/fd")
		}
		return len(entries)
	}

	before := fds()
	for i := 0; i < 5; i++ {
		src, err := OpenPDF(path, DefaultConfig())
		if err == nil {
			src.Close()
			t.Fatal("OpenPDF() succeeded on a malformed document")
		}
	}
	if after := fds(); after > before {
		t.Errorf("open descriptors grew from %d to %d", before, after)
	}
}
