package source

import (
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"

	"github.com/ukaji3/tablegroup-go/pkg/tablegroup/models"
)

// PDF reads tables from positioned page text.
type PDF struct {
	file   *os.File
	reader *pdf.Reader
	pages  int
	cfg    Config
}

// OpenPDF opens a PDF document. The page tree is resolved here so a
// malformed document fails to open rather than failing later.
func OpenPDF(path string, cfg Config) (*PDF, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}

	src, err := newPDF(f, cfg)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("opening PDF: %w", err)
	}
	return src, nil
}

func newPDF(f *os.File, cfg Config) (src *PDF, err error) {
	defer recoverPDF(&err)

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	r, err := pdf.NewReader(f, fi.Size())
	if err != nil {
		return nil, err
	}
	return &PDF{file: f, reader: r, pages: r.NumPage(), cfg: cfg}, nil
}

// NumPages returns the page count.
func (p *PDF) NumPages() int {
	return p.pages
}

// Tables detects the tables on a page. A page without content yields
// no tables.
func (p *PDF) Tables(page int) (tables []models.RawTable, err error) {
	defer recoverPDF(&err)

	pg := p.reader.Page(page)
	if pg.V.IsNull() {
		return nil, nil
	}

	texts := pg.Content().Text
	glyphs := make([]glyph, 0, len(texts))
	for _, t := range texts {
		glyphs = append(glyphs, glyph{X: t.X, Y: t.Y, W: t.W, S: t.S})
	}
	return buildTables(glyphs, p.cfg), nil
}

// Close closes the underlying file.
func (p *PDF) Close() error {
	return p.file.Close()
}

// recoverPDF converts a panic from the PDF library into an error.
// Malformed content streams panic instead of returning errors.
func recoverPDF(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("malformed PDF: %v", r)
	}
}
