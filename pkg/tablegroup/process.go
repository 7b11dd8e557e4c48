package tablegroup

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/ukaji3/tablegroup-go/pkg/tablegroup/export"
	"github.com/ukaji3/tablegroup-go/pkg/tablegroup/grouping"
	"github.com/ukaji3/tablegroup-go/pkg/tablegroup/models"
	"github.com/ukaji3/tablegroup-go/pkg/tablegroup/source"
)

// Status is the terminal state of a successful run.
type Status string

const (
	// StatusExported means a workbook was produced.
	StatusExported Status = "exported"
	// StatusNoTables means no table survived grouping; nothing was written.
	StatusNoTables Status = "no_tables"
)

// Result is the outcome of a run.
type Result struct {
	RunID  string
	Status Status
	// Filename is the derived output name, <basename>_smart_grouping.xlsx.
	Filename string
	// MIMEType is the spreadsheet content type.
	MIMEType string
	// Data is the workbook; nil when Status is StatusNoTables.
	Data []byte
	// Document is the export before serialization; nil when Status is StatusNoTables.
	Document *models.ExportDocument
	Pages    int
	Tables   int
	Groups   int
}

// ProcessFile runs the extraction on a file already on disk. The file is
// copied to scratch storage like any other input.
func ProcessFile(path string, opts Options) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Process(f, filepath.Base(path), opts)
}

// Process reads a document from r, groups its tables, and exports them.
// filename selects the input format by extension and names the output.
// The scratch copy of the input is removed before Process returns.
func Process(r io.Reader, filename string, opts Options) (*Result, error) {
	if !source.Supported(filename) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(filename))
	}

	runID := uuid.Must(uuid.NewV7()).String()
	logger := opts.logger().With("run_id", runID, "input", filepath.Base(filename))

	path, err := materialize(r, filename, opts.ScratchDir)
	if err != nil {
		if errors.Is(err, ErrEmptyInput) {
			return nil, err
		}
		return nil, NewExtractionError(0, ComponentScratch, err)
	}
	defer func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			logger.Warn("removing scratch file", "path", path, "error", err)
		}
	}()

	src, err := source.Open(path, opts.Detection)
	if err != nil {
		return nil, NewExtractionError(0, ComponentOpen, err)
	}
	defer src.Close()

	pages := src.NumPages()
	logger.Info("run started", "pages", pages)

	grouper := grouping.NewGrouper(logger)
	for page := 1; page <= pages; page++ {
		tables, err := src.Tables(page)
		if err != nil {
			return nil, NewExtractionError(page, ComponentTables, err)
		}
		for _, t := range tables {
			if err := grouper.Add(page, t); err != nil {
				return nil, NewExtractionError(page, ComponentGroup, err)
			}
		}
	}

	res := &Result{
		RunID:    runID,
		Filename: export.Filename(filename),
		MIMEType: export.MIMEType,
		Pages:    pages,
		Tables:   grouper.Tables(),
		Groups:   len(grouper.Groups()),
	}

	doc, ok := export.Build(filename, grouper.Groups())
	if !ok {
		res.Status = StatusNoTables
		logger.Warn("no valid tables found", "pages", pages)
		return res, nil
	}

	data, err := export.Bytes(doc)
	if err != nil {
		return nil, NewExtractionError(0, ComponentExport, err)
	}
	res.Status = StatusExported
	res.Document = doc
	res.Data = data

	logger.Info("run finished", "groups", res.Groups, "tables", res.Tables, "output", res.Filename)
	return res, nil
}

// materialize copies r into a scratch file that keeps the input's
// extension, so the source can be chosen from the path.
func materialize(r io.Reader, filename, dir string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	f, err := os.CreateTemp(dir, "temp_*"+ext)
	if err != nil {
		return "", err
	}

	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && n == 0 {
		err = ErrEmptyInput
	}
	if err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}
