package extractor

import (
	"math"
	"sort"
	"strings"

	"github.com/Sourabh71/AI-Analyst/internal/models"
	"github.com/Sourabh71/AI-Analyst/internal/utils"
)

const (
	minTableRows = 2
	minTableCols = 2

	// Horizontal gap, in multiples of the font size, that separates two cells.
	cellGapFactor = 1.0
	minCellGap    = 3.0
	// Smaller gaps inside a cell that still read as a word break.
	wordGapFactor = 0.15
	// Slack allowed when deciding whether two cells share a column.
	columnSlack = 1.0
	// Baselines closer than this fraction of the font size share a line.
	lineTolerance = 0.5
)

// Fragment is a positioned run of text on a page. Y grows upwards.
type Fragment struct {
	X        float64
	Y        float64
	W        float64
	FontSize float64
	S        string
}

// Line is the fragments sharing one baseline, in any order.
type Line []Fragment

// GroupLines buckets fragments by baseline, top of the page first, and
// orders each line left to right. Line breaks emitted by the reader are
// dropped.
func GroupLines(frags []Fragment) []Line {
	sorted := make([]Fragment, 0, len(frags))
	for _, f := range frags {
		if f.S == "" || f.S == "\n" || f.S == "\r" {
			continue
		}
		sorted = append(sorted, f)
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Y > sorted[j].Y })

	var lines []Line
	var baseline float64
	for _, f := range sorted {
		tol := math.Max(f.FontSize*lineTolerance, 1)
		if n := len(lines); n > 0 && baseline-f.Y <= tol {
			lines[n-1] = append(lines[n-1], f)
			continue
		}
		lines = append(lines, Line{f})
		baseline = f.Y
	}

	for _, line := range lines {
		sort.SliceStable(line, func(i, j int) bool { return line[i].X < line[j].X })
	}
	return lines
}

type cell struct {
	x0, x1 float64
	text   string
}

type span struct {
	x0, x1 float64
}

// ExtractTables scans every page for tables. Only pages with at least one
// table are returned. A page that fails to parse is skipped.
func ExtractTables(doc Document, logger *utils.Logger) []models.PageTables {
	if logger == nil {
		logger = utils.NopLogger()
	}

	var pages []models.PageTables
	for i := 1; i <= doc.NumPage(); i++ {
		lines, err := doc.PageLines(i)
		if err != nil {
			logger.Warn("Skipping page, table extraction failed", "page", i, "error", err)
			continue
		}

		tables := DetectTables(lines)
		if len(tables) == 0 {
			continue
		}
		pages = append(pages, models.PageTables{Page: i, Tables: tables})
	}
	return pages
}

// DetectTables finds runs of consecutive multi-cell lines and lays each run
// out on a shared set of columns.
func DetectTables(lines []Line) []models.TableGrid {
	var tables []models.TableGrid
	var run [][]cell

	flush := func() {
		if len(run) >= minTableRows {
			if grid := layoutTable(run); grid != nil {
				tables = append(tables, grid)
			}
		}
		run = nil
	}

	for _, line := range lines {
		cells := splitCells(line)
		if len(cells) >= minTableCols {
			run = append(run, cells)
			continue
		}
		flush()
	}
	flush()

	return tables
}

func splitCells(line Line) []cell {
	frags := make([]Fragment, 0, len(line))
	for _, f := range line {
		if f.S != "" {
			frags = append(frags, f)
		}
	}
	sort.SliceStable(frags, func(i, j int) bool { return frags[i].X < frags[j].X })

	var cells []cell
	var b strings.Builder
	var cur cell
	open := false

	closeCell := func() {
		if !open {
			return
		}
		cur.text = strings.Join(strings.Fields(b.String()), " ")
		if cur.text != "" {
			cells = append(cells, cur)
		}
		b.Reset()
		open = false
	}

	for _, f := range frags {
		// Spaces never open a cell and never widen one.
		if strings.TrimSpace(f.S) == "" {
			if open {
				b.WriteString(" ")
			}
			continue
		}

		gap := math.Max(f.FontSize*cellGapFactor, minCellGap)
		if open && f.X-cur.x1 > gap {
			closeCell()
		} else if open && f.X-cur.x1 > f.FontSize*wordGapFactor {
			b.WriteString(" ")
		}
		if !open {
			cur = cell{x0: f.X, x1: f.X + f.W}
			open = true
		}
		b.WriteString(f.S)
		if end := f.X + f.W; end > cur.x1 {
			cur.x1 = end
		}
	}
	closeCell()

	return cells
}

func layoutTable(rows [][]cell) models.TableGrid {
	var spans []span
	for _, row := range rows {
		for _, c := range row {
			spans = append(spans, span{x0: c.x0, x1: c.x1})
		}
	}
	columns := mergeSpans(spans)
	if len(columns) < minTableCols {
		return nil
	}

	grid := make(models.TableGrid, 0, len(rows))
	for _, row := range rows {
		out := make([]string, len(columns))
		for _, c := range row {
			idx := columnOf(columns, (c.x0+c.x1)/2)
			if out[idx] != "" {
				out[idx] += " " + c.text
			} else {
				out[idx] = c.text
			}
		}
		grid = append(grid, out)
	}
	return grid
}

// mergeSpans unions overlapping horizontal spans into column extents,
// ordered left to right.
func mergeSpans(spans []span) []span {
	sort.Slice(spans, func(i, j int) bool { return spans[i].x0 < spans[j].x0 })

	var merged []span
	for _, s := range spans {
		if n := len(merged); n > 0 && s.x0 <= merged[n-1].x1+columnSlack {
			if s.x1 > merged[n-1].x1 {
				merged[n-1].x1 = s.x1
			}
			continue
		}
		merged = append(merged, s)
	}
	return merged
}

func columnOf(columns []span, x float64) int {
	for i, col := range columns {
		if x <= col.x1+columnSlack {
			return i
		}
	}
	return len(columns) - 1
}
