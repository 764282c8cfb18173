package report

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/lkosinski/wzrecon/internal/config"
	"github.com/lkosinski/wzrecon/internal/recon"
)

func sampleRows() []recon.Row {
	return []recon.Row{
		{Identifier: "5901234123457", Ordered: 10, Delivered: 8, Difference: 2, Status: recon.StatusMismatch},
		{Identifier: "5909990123456", Ordered: 5, Delivered: 0, Difference: 5, Status: recon.StatusMissingFromDelivery},
		{Identifier: "5901111111111", Ordered: 3, Delivered: 3, Difference: 0, Status: recon.StatusOK},
	}
}

func renderWorkbook(t *testing.T, rows []recon.Row) *excelize.File {
	t.Helper()
	w := NewWriter(config.Default().Report)

	var buf bytes.Buffer
	if err := w.Write(rows, &buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func TestWriteSheetNameAndHeader(t *testing.T) {
	f := renderWorkbook(t, sampleRows())

	if got := f.GetSheetName(0); got != "Porównanie" {
		t.Fatalf("sheet name = %q, want %q", got, "Porównanie")
	}
	grid, err := f.GetRows("Porównanie")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	want := []string{"Symbol", "Zamówiona ilość", "Wydana ilość", "Różnica", "Status"}
	if len(grid) == 0 {
		t.Fatal("empty sheet")
	}
	for i, cell := range want {
		if grid[0][i] != cell {
			t.Errorf("header[%d] = %q, want %q", i, grid[0][i], cell)
		}
	}
}

func TestWriteRowContent(t *testing.T) {
	f := renderWorkbook(t, sampleRows())

	grid, err := f.GetRows("Porównanie")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(grid) != 4 {
		t.Fatalf("got %d rows, want 4 (header + 3 lines)", len(grid))
	}

	// Identifier survives as the full 13-digit string.
	if grid[1][0] != "5901234123457" {
		t.Errorf("row 1 identifier = %q", grid[1][0])
	}
	if grid[1][4] != "Różni się" {
		t.Errorf("row 1 status = %q", grid[1][4])
	}
	if grid[2][4] != "Brak we WZ" {
		t.Errorf("row 2 status = %q", grid[2][4])
	}
	if grid[3][4] != "OK" {
		t.Errorf("row 3 status = %q", grid[3][4])
	}
}

func TestWriteQuantitiesAreNumeric(t *testing.T) {
	f := renderWorkbook(t, sampleRows())

	cell, err := f.GetCellType("Porównanie", "B2")
	if err != nil {
		t.Fatalf("GetCellType: %v", err)
	}
	if cell != excelize.CellTypeNumber {
		t.Errorf("ordered quantity cell type = %v, want number", cell)
	}
}

func TestWriteRowFills(t *testing.T) {
	f := renderWorkbook(t, sampleRows())

	mismatchStyle, err := f.GetCellStyle("Porównanie", "A2")
	if err != nil {
		t.Fatalf("GetCellStyle: %v", err)
	}
	okStyle, err := f.GetCellStyle("Porównanie", "A4")
	if err != nil {
		t.Fatalf("GetCellStyle: %v", err)
	}
	if mismatchStyle == okStyle {
		t.Error("mismatch rows and OK rows share a style, expected distinct fills")
	}
}

func TestWriteEmptyReport(t *testing.T) {
	f := renderWorkbook(t, nil)

	grid, err := f.GetRows("Porównanie")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(grid) != 1 {
		t.Fatalf("got %d rows, want header only", len(grid))
	}
}
