package grouping

import (
	"fmt"
	"log/slog"

	"github.com/ukaji3/tablegroup-go/pkg/tablegroup/models"
)

// Grouper accumulates raw tables into groups. Tables must be added in
// page order, and in detection order within a page: the first header of
// a given width labels every later table of that width.
type Grouper struct {
	matcher Matcher
	logger  *slog.Logger
	tables  int
}

// NewGrouper creates an empty grouper. A nil logger discards output.
func NewGrouper(logger *slog.Logger) *Grouper {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Grouper{logger: logger}
}

// Add assigns one raw table from page to a group. Tables with no
// non-blank cell are skipped without error.
func (g *Grouper) Add(page int, t models.RawTable) error {
	if len(t.Rows) == 0 || t.IsEmpty() {
		g.logger.Debug("table discarded", "page", page, "reason", "empty")
		return nil
	}

	header, data, ok := ExtractHeader(t)
	if !ok {
		g.logger.Debug("table discarded", "page", page, "reason", "no header row")
		return nil
	}

	group := g.matcher.Match(header)
	created := group == nil
	if created {
		group = models.NewGroup(header)
	}

	frame := models.NewFrame(group.Header.Labels(), page)
	for i, row := range data {
		if err := frame.AppendRow(row.Strings()); err != nil {
			return fmt.Errorf("page %d, data row %d: %w", page, i+1, err)
		}
	}

	group.Add(frame)
	if created {
		g.matcher.Register(group)
		g.logger.Debug("group created", "page", page, "width", header.Width(), "groups", len(g.matcher.Groups()))
	} else {
		g.logger.Debug("table merged", "page", page, "width", header.Width(), "rows", len(frame.Rows))
	}
	g.tables++
	return nil
}

// Groups returns the groups in creation order.
func (g *Grouper) Groups() []*models.Group {
	return g.matcher.Groups()
}

// Tables returns the number of tables assigned to a group.
func (g *Grouper) Tables() int {
	return g.tables
}
