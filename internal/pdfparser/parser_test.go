package pdfparser

import (
	"strings"
	"testing"

	"github.com/ledongthuc/pdf"
)

// text is a shorthand for a positioned text run.
func text(s string, x, y, w float64) pdf.Text {
	return pdf.Text{S: s, X: x, Y: y, W: w}
}

func TestGroupRowsClustersAndSorts(t *testing.T) {
	// Two visual rows with jittered baselines, runs out of order.
	texts := []pdf.Text{
		text("Ilość", 300, 700.4, 30),
		text("Symbol", 50, 700, 40),
		text("4,00", 300, 682, 25),
		text("5029040012281", 50, 681.8, 90),
	}
	rows := groupRows(texts)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].spans[0].s != "Symbol" || rows[0].spans[1].s != "Ilość" {
		t.Errorf("top row spans out of order: %+v", rows[0].spans)
	}
	if rows[1].spans[0].s != "5029040012281" {
		t.Errorf("bottom row spans out of order: %+v", rows[1].spans)
	}
}

func TestRowsToLines(t *testing.T) {
	texts := []pdf.Text{
		text("5029040012281", 50, 681.8, 90),
		text("4,00", 300, 682, 25),
	}
	lines := rowsToLines(groupRows(texts))
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if lines[0] != "5029040012281 4,00" {
		t.Errorf("line = %q", lines[0])
	}
}

func TestMergeRowCells(t *testing.T) {
	// "Zamówiona" and "Ilość" are word runs of one header (narrow gap);
	// "Symbol" sits across a column gutter.
	row := groupRows([]pdf.Text{
		text("Symbol", 50, 700, 40),
		text("Zamówiona", 200, 700, 62),
		text("Ilość", 264, 700, 30), // 2pt gap after "Zamówiona"
	})[0]
	cells := mergeRowCells(row)
	if len(cells) != 2 {
		t.Fatalf("got %d cells, want 2: %+v", len(cells), cells)
	}
	if cells[1].s != "Zamówiona Ilość" {
		t.Errorf("merged cell = %q, want \"Zamówiona Ilość\"", cells[1].s)
	}
}

func TestBuildGridBinsColumns(t *testing.T) {
	rows := groupRows([]pdf.Text{
		text("Symbol", 50, 700, 40),
		text("Ilość", 300, 700, 30),
		// Data row starts at slightly different X than the header.
		text("5029040012281", 53, 682, 90),
		text("4,00", 304, 682, 25),
		text("5901234123457", 53, 664, 90),
		text("12,00", 304, 664, 30),
	})
	grid := buildGrid(rows)
	if len(grid) != 3 {
		t.Fatalf("got %d grid rows, want 3", len(grid))
	}
	if len(grid[0]) != 2 {
		t.Fatalf("got %d columns, want 2: %v", len(grid[0]), grid[0])
	}
	if grid[0][0] != "Symbol" || grid[0][1] != "Ilość" {
		t.Errorf("header row = %v", grid[0])
	}
	if grid[1][0] != "5029040012281" || grid[1][1] != "4,00" {
		t.Errorf("data row = %v", grid[1])
	}
}

func TestBuildGridSingleColumnIsNoTable(t *testing.T) {
	rows := groupRows([]pdf.Text{
		text("WZ 123/2024", 50, 700, 80),
		text("Kontrahent X", 50, 682, 85),
	})
	if grid := buildGrid(rows); grid != nil {
		t.Errorf("expected nil grid for single-column page, got %v", grid)
	}
}

func TestBuildPage(t *testing.T) {
	page := buildPage(1, []pdf.Text{
		text("Symbol", 50, 700, 40),
		text("Ilość", 300, 700, 30),
		text("5029040012281", 53, 682, 90),
		text("4,00", 304, 682, 25),
	})
	if page.Number != 1 {
		t.Errorf("Number = %d, want 1", page.Number)
	}
	if page.Table == nil {
		t.Fatal("expected a detected table")
	}
	if len(page.Lines) != 2 {
		t.Errorf("got %d lines, want 2", len(page.Lines))
	}
	if !strings.Contains(page.Lines[1], "5029040012281") {
		t.Errorf("line = %q", page.Lines[1])
	}
}
