package xlsxparser

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func bytesReader(b []byte) *bytes.Reader {
	return bytes.NewReader(b)
}

// buildWorkbook writes a small workbook to memory and returns its bytes.
func buildWorkbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func TestParseReaderGrid(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"Symbol", "Nazwa", "Ilość"},
		{"5029040012281", "Herbata", 10},
	})

	grid, err := ParseReader(bytesReader(data))
	if err != nil {
		t.Fatalf("ParseReader failed: %v", err)
	}
	if len(grid) != 2 {
		t.Fatalf("got %d rows, want 2", len(grid))
	}
	if grid[0][0] != "Symbol" || grid[0][2] != "Ilość" {
		t.Errorf("header row = %v", grid[0])
	}
	if grid[1][0] != "5029040012281" {
		t.Errorf("identifier cell = %q, want full code", grid[1][0])
	}
	if grid[1][2] != "10" {
		t.Errorf("quantity cell = %q, want \"10\"", grid[1][2])
	}
}

func TestParseReaderNumericCodeKeepsPrecision(t *testing.T) {
	// A product code stored as a number must come back with all 13 digits,
	// not in display notation.
	data := buildWorkbook(t, [][]interface{}{
		{"Symbol", "Ilość"},
		{5029040012281, 4},
	})

	grid, err := ParseReader(bytesReader(data))
	if err != nil {
		t.Fatalf("ParseReader failed: %v", err)
	}
	if grid[1][0] != "5029040012281" {
		t.Errorf("numeric code read back as %q", grid[1][0])
	}
}
