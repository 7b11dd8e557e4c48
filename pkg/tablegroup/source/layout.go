package source

import (
	"math"
	"sort"
	"strings"

	"github.com/ukaji3/tablegroup-go/pkg/tablegroup/models"
)

// glyph is a positioned run of text in PDF user space (Y grows upward).
type glyph struct {
	X, Y, W float64
	S       string
}

// fragment is a run of glyphs on one line with no cell-sized gap.
type fragment struct {
	X0, X1 float64
	Text   string
}

func (f fragment) center() float64 {
	return (f.X0 + f.X1) / 2
}

// textLine is a set of fragments sharing a baseline, left to right.
type textLine struct {
	Y     float64
	Frags []fragment
}

// span is a horizontal column extent.
type span struct {
	X0, X1 float64
}

// buildTables turns the glyphs of one page into raw tables, top to bottom.
func buildTables(glyphs []glyph, cfg Config) []models.RawTable {
	lines := groupLines(glyphs, cfg)

	var tables []models.RawTable
	for _, block := range splitBlocks(lines, cfg) {
		if len(block) < cfg.MinRows {
			continue
		}
		cols := columnSpans(block, cfg.ColumnTolerance)
		if len(cols) < cfg.MinCols {
			continue
		}
		tables = append(tables, fillGrid(block, cols))
	}
	return tables
}

// groupLines sorts glyphs top to bottom, clusters them into lines by
// baseline, and merges each line into fragments.
func groupLines(glyphs []glyph, cfg Config) []textLine {
	if len(glyphs) == 0 {
		return nil
	}

	sorted := make([]glyph, len(glyphs))
	copy(sorted, glyphs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Y > sorted[j].Y
	})

	var rows [][]glyph
	var rowY float64
	for i, g := range sorted {
		if i == 0 || math.Abs(rowY-g.Y) > cfg.RowTolerance {
			rows = append(rows, []glyph{g})
			rowY = g.Y
			continue
		}
		rows[len(rows)-1] = append(rows[len(rows)-1], g)
	}

	lines := make([]textLine, 0, len(rows))
	for _, row := range rows {
		frags := mergeFragments(row, cfg.CellGap)
		if len(frags) == 0 {
			continue
		}
		lines = append(lines, textLine{Y: row[0].Y, Frags: frags})
	}
	return lines
}

// mergeFragments joins glyphs of one line left to right while the gap
// between them stays within cellGap.
func mergeFragments(row []glyph, cellGap float64) []fragment {
	sort.SliceStable(row, func(i, j int) bool {
		return row[i].X < row[j].X
	})

	var frags []fragment
	var cur *fragment
	var text strings.Builder
	flush := func() {
		if cur == nil {
			return
		}
		if s := strings.TrimSpace(text.String()); s != "" {
			cur.Text = s
			frags = append(frags, *cur)
		}
		cur = nil
		text.Reset()
	}

	for _, g := range row {
		if strings.TrimSpace(g.S) == "" {
			// whitespace joins words but never starts or widens a cell
			if cur != nil && g.X-cur.X1 <= cellGap {
				text.WriteString(" ")
			}
			continue
		}
		if cur != nil && g.X-cur.X1 > cellGap {
			flush()
		}
		if cur == nil {
			cur = &fragment{X0: g.X, X1: g.X + g.W}
		}
		text.WriteString(g.S)
		if end := g.X + g.W; end > cur.X1 {
			cur.X1 = end
		}
	}
	flush()

	return normalizeSpaces(frags)
}

func normalizeSpaces(frags []fragment) []fragment {
	for i := range frags {
		frags[i].Text = strings.Join(strings.Fields(frags[i].Text), " ")
	}
	return frags
}

// splitBlocks groups consecutive multi-fragment lines into candidate
// tables. A line with too few fragments or a large vertical gap ends
// the current block.
func splitBlocks(lines []textLine, cfg Config) [][]textLine {
	var blocks [][]textLine
	var cur []textLine
	for _, l := range lines {
		if len(l.Frags) < cfg.MinCols {
			if len(cur) > 0 {
				blocks = append(blocks, cur)
				cur = nil
			}
			continue
		}
		if len(cur) > 0 && cur[len(cur)-1].Y-l.Y > cfg.MaxRowGap {
			blocks = append(blocks, cur)
			cur = nil
		}
		cur = append(cur, l)
	}
	if len(cur) > 0 {
		blocks = append(blocks, cur)
	}
	return blocks
}

// columnSpans merges the horizontal extents of all fragments in a block.
func columnSpans(block []textLine, tolerance float64) []span {
	var spans []span
	for _, l := range block {
		for _, f := range l.Frags {
			spans = append(spans, span{X0: f.X0, X1: f.X1})
		}
	}
	if len(spans) == 0 {
		return nil
	}
	sort.Slice(spans, func(i, j int) bool {
		return spans[i].X0 < spans[j].X0
	})

	merged := []span{spans[0]}
	for _, s := range spans[1:] {
		last := &merged[len(merged)-1]
		if s.X0 <= last.X1+tolerance {
			if s.X1 > last.X1 {
				last.X1 = s.X1
			}
			continue
		}
		merged = append(merged, s)
	}
	return merged
}

// fillGrid places every fragment of a block in the column containing its
// centre. Fragments sharing a cell are joined with a space.
func fillGrid(block []textLine, cols []span) models.RawTable {
	t := models.RawTable{Rows: make([]models.Row, 0, len(block))}
	for _, l := range block {
		row := make(models.Row, len(cols))
		for _, f := range l.Frags {
			idx := columnIndex(cols, f.center())
			if row[idx].Valid {
				row[idx].Value += " " + f.Text
			} else {
				row[idx] = models.Text(f.Text)
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// columnIndex returns the column containing x, or the nearest one.
func columnIndex(cols []span, x float64) int {
	best, bestDist := 0, math.Inf(1)
	for i, c := range cols {
		if x >= c.X0 && x <= c.X1 {
			return i
		}
		d := math.Min(math.Abs(x-c.X0), math.Abs(x-c.X1))
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
