// =============================================================================
// WZ Reconciliation Tool - PDF Page Parser
// =============================================================================
//
// This module reads a PDF export and produces, per page, both views the
// extraction layer needs:
//
//   - a detected table as a grid of strings, when the page has one, and
//   - the page text as lines, for the text-scan fallback.
//
// PDF has no table structure; there are only positioned text runs. The
// detection here is deliberately narrow: it reconstructs enough of a table
// to recover two columns (an identifier and a quantity), not a
// layout-perfect grid.
//
// DETECTION STEPS:
//   1. Group text runs into visual rows by Y coordinate with a small
//      tolerance, top of the page first.
//   2. Within a row, merge runs separated by a gap narrower than a space
//      between table columns into one cell.
//   3. Cluster cell start-X positions page-wide into column bins and assign
//      every cell to its bin, yielding a grid.
//
// A page with fewer than two grid rows counts as "no table detected" and is
// handled by the caller via the text fallback.
//
// =============================================================================

package pdfparser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// =============================================================================
// PAGE MODEL
// =============================================================================

// Page is one parsed PDF page: the detected table (possibly nil) plus the
// page text as lines. Both views are exposed because extraction uses the
// table first and the lines only as a fallback.
type Page struct {
	// Number is the 1-based page number.
	Number int

	// Table is the detected table as a grid of strings, or nil when no
	// table was detected on this page.
	Table [][]string

	// Lines is the page text, one visual row per line, top to bottom.
	Lines []string
}

// =============================================================================
// GEOMETRY TUNING
// =============================================================================

const (
	// rowTolerance is the maximum Y distance between runs of one visual
	// row. PDF generators jitter baselines by fractions of a point.
	rowTolerance = 2.0

	// cellGap is the minimum horizontal gap that separates two cells.
	// Word spacing inside a header stays below it; column gutters exceed
	// it.
	cellGap = 6.0

	// columnTolerance is the maximum X distance between cell starts that
	// still belong to one column bin.
	columnTolerance = 8.0
)

// =============================================================================
// PARSER
// =============================================================================

// Parse reads the PDF at path and returns its pages. Pages that cannot be
// decoded are skipped; a document where every page fails still returns the
// empty slice rather than an error, because the loader treats "no usable
// data" as the document-level failure.
func Parse(path string) ([]Page, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var pages []Page
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		content := pageContent(p)
		pages = append(pages, buildPage(i, content))
	}
	return pages, nil
}

// pageContent pulls the positioned text runs off a page, tolerating the
// panics the underlying reader raises on malformed content streams.
func pageContent(p pdf.Page) (texts []pdf.Text) {
	defer func() {
		if recover() != nil {
			texts = nil
		}
	}()
	return p.Content().Text
}

// buildPage assembles the two views of one page from its text runs.
func buildPage(number int, texts []pdf.Text) Page {
	rows := groupRows(texts)
	page := Page{
		Number: number,
		Lines:  rowsToLines(rows),
	}
	if grid := buildGrid(rows); len(grid) >= 2 {
		page.Table = grid
	}
	return page
}

// =============================================================================
// ROW GROUPING
// =============================================================================

// span is one text run with its start position and width.
type span struct {
	x, y, w float64
	s       string
}

// textRow is one visual row: spans sharing a baseline, left to right.
type textRow struct {
	y     float64
	spans []span
}

// groupRows clusters text runs into visual rows by Y coordinate and orders
// them top of the page first (PDF Y grows upward).
func groupRows(texts []pdf.Text) []textRow {
	var rows []textRow
	for _, t := range texts {
		s := strings.TrimSpace(t.S)
		if s == "" {
			continue
		}
		sp := span{x: t.X, y: t.Y, w: t.W, s: s}

		placed := false
		for i := range rows {
			if abs(rows[i].y-t.Y) < rowTolerance {
				rows[i].spans = append(rows[i].spans, sp)
				placed = true
				break
			}
		}
		if !placed {
			rows = append(rows, textRow{y: t.Y, spans: []span{sp}})
		}
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].y > rows[j].y })
	for i := range rows {
		spans := rows[i].spans
		sort.SliceStable(spans, func(a, b int) bool { return spans[a].x < spans[b].x })
	}
	return rows
}

// rowsToLines renders each visual row as one text line.
func rowsToLines(rows []textRow) []string {
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		parts := make([]string, 0, len(row.spans))
		for _, sp := range row.spans {
			parts = append(parts, sp.s)
		}
		lines = append(lines, strings.Join(parts, " "))
	}
	return lines
}

// =============================================================================
// CELL MERGING AND COLUMN BINNING
// =============================================================================

// cell is one merged run of spans: the leftmost X plus the joined text.
type cell struct {
	x float64
	s string
}

// buildGrid bins cell start positions into columns across the whole page
// and lays every row out against those bins.
func buildGrid(rows []textRow) [][]string {
	merged := make([][]cell, len(rows))
	var starts []float64
	for i, row := range rows {
		merged[i] = mergeRowCells(row)
		for _, c := range merged[i] {
			starts = append(starts, c.x)
		}
	}
	centers := clusterStarts(starts)
	if len(centers) < 2 {
		return nil
	}

	grid := make([][]string, len(rows))
	for i, cells := range merged {
		line := make([]string, len(centers))
		for _, c := range cells {
			col := nearestColumn(centers, c.x)
			if line[col] == "" {
				line[col] = c.s
			} else {
				line[col] += " " + c.s
			}
		}
		grid[i] = line
	}
	return grid
}

// mergeRowCells joins spans separated by less than cellGap into single
// cells. Word-level runs inside one header become one cell; runs across a
// column gutter stay separate.
func mergeRowCells(row textRow) []cell {
	var cells []cell
	var endX float64
	for _, sp := range row.spans {
		if len(cells) > 0 && sp.x-endX < cellGap {
			cells[len(cells)-1].s += " " + sp.s
		} else {
			cells = append(cells, cell{x: sp.x, s: sp.s})
		}
		endX = sp.x + sp.w
	}
	return cells
}

// clusterStarts reduces all cell start positions to column centers.
func clusterStarts(starts []float64) []float64 {
	if len(starts) == 0 {
		return nil
	}
	sort.Float64s(starts)

	var centers []float64
	clusterStart := starts[0]
	clusterSum := starts[0]
	clusterN := 1
	for _, x := range starts[1:] {
		if x-clusterStart <= columnTolerance {
			clusterSum += x
			clusterN++
			continue
		}
		centers = append(centers, clusterSum/float64(clusterN))
		clusterStart = x
		clusterSum = x
		clusterN = 1
	}
	centers = append(centers, clusterSum/float64(clusterN))
	return centers
}

// nearestColumn returns the index of the closest column center.
func nearestColumn(centers []float64, x float64) int {
	best := 0
	bestDist := abs(centers[0] - x)
	for i, c := range centers[1:] {
		if d := abs(c - x); d < bestDist {
			best = i + 1
			bestDist = d
		}
	}
	return best
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
