// =============================================================================
// WZ Reconciliation Tool - XLSX Grid Parser
// =============================================================================
//
// This module reads an XLSX workbook as a grid of strings with no type
// inference and no header assumption. The header row location is unknown in
// the wild (order exports put logos and contractor details above the real
// header), so the grid goes to the extraction layer whole and the column
// resolver finds the header.
//
// Raw cell values are requested from excelize so that numeric-looking
// product codes are not reformatted by the cell's display format; whatever
// coercion artifacts remain (a trailing ".0") are repaired downstream by the
// normalizer.
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Parse reads the workbook at path and returns the first non-empty sheet as
// a grid of strings.
func Parse(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	return firstGrid(f)
}

// ParseReader reads a workbook from an in-memory stream. Used for uploads
// that never touch disk, and by tests.
func ParseReader(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	return firstGrid(f)
}

// firstGrid returns the rows of the first sheet that has any. Workbooks in
// the field occasionally lead with an empty cover sheet.
func firstGrid(f *excelize.File) ([][]string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	for _, sheet := range sheets {
		rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
		}
		if len(rows) > 0 {
			return rows, nil
		}
	}

	return nil, fmt.Errorf("workbook has no rows in any sheet")
}
