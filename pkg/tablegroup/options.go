// Package tablegroup extracts tables from documents, groups them by
// header width, and exports the groups to a multi-sheet workbook.
package tablegroup

import (
	"log/slog"

	"github.com/ukaji3/tablegroup-go/pkg/tablegroup/source"
)

// Options configures a run.
type Options struct {
	// Detection holds table detection parameters.
	Detection source.Config
	// ScratchDir is where the input is materialized. Defaults to os.TempDir().
	ScratchDir string
	// Logger receives run events. Defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultOptions returns default run options.
func DefaultOptions() Options {
	return Options{
		Detection: source.DefaultConfig(),
	}
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}
