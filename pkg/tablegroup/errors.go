package tablegroup

import (
	"errors"
	"fmt"

	"github.com/ukaji3/tablegroup-go/pkg/tablegroup/models"
	"github.com/ukaji3/tablegroup-go/pkg/tablegroup/source"
)

// ErrEmptyInput indicates a zero-byte input stream.
var ErrEmptyInput = errors.New("empty input")

// ErrUnsupportedFormat indicates an input that is neither PDF nor xlsx.
var ErrUnsupportedFormat = source.ErrUnsupportedFormat

// ErrRowWidth indicates a data row wider or narrower than its header.
var ErrRowWidth = models.ErrRowWidth

// Run components reported by ExtractionError.
const (
	ComponentScratch = "scratch"
	ComponentOpen    = "open"
	ComponentTables  = "tables"
	ComponentGroup   = "group"
	ComponentExport  = "export"
)

// ExtractionError represents a fault that aborted a run.
type ExtractionError struct {
	Page      int    // 0 when the fault is not tied to a page
	Component string // "scratch", "open", "tables", "group", "export"
	Err       error
}

func (e *ExtractionError) Error() string {
	if e.Page > 0 {
		return fmt.Sprintf("extraction error on page %d (%s): %v", e.Page, e.Component, e.Err)
	}
	return fmt.Sprintf("extraction error (%s): %v", e.Component, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new ExtractionError.
func NewExtractionError(page int, component string, err error) *ExtractionError {
	return &ExtractionError{
		Page:      page,
		Component: component,
		Err:       err,
	}
}
