// =============================================================================
// WZ Reconciliation Tool - XLSX Report Writer
// =============================================================================
//
// This module renders the reconciliation rows into the XLSX report handed to
// the warehouse: one sheet, a bold header row, one row per product line and
// a traffic-light fill per row (green for matching lines, red for anything
// that needs human attention).
//
// Quantities are written as numbers, not strings, so the sheet can be
// filtered and summed in Excel. Identifiers are written as strings to keep
// 13-digit codes out of Excel's float display.
//
// =============================================================================

package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/lkosinski/wzrecon/internal/config"
	"github.com/lkosinski/wzrecon/internal/recon"
)

// =============================================================================
// CONSTANTS
// =============================================================================

// header is the fixed column layout of the report sheet.
var header = []string{"Symbol", "Zamówiona ilość", "Wydana ilość", "Różnica", "Status"}

// columnWidths keeps the Polish labels and 13-digit codes readable without
// manual resizing.
var columnWidths = []float64{18, 16, 16, 12, 20}

// =============================================================================
// WRITER
// =============================================================================

// Writer renders reconciliation rows into workbooks using one report
// configuration.
type Writer struct {
	cfg config.ReportConfig
}

// NewWriter creates a report writer.
func NewWriter(cfg config.ReportConfig) *Writer {
	return &Writer{cfg: cfg}
}

// WriteFile renders the rows and saves the workbook at path.
func (w *Writer) WriteFile(rows []recon.Row, path string) error {
	f, err := w.build(rows)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

// Write renders the rows and streams the workbook to out. Used by tests and
// by callers that manage the destination themselves.
func (w *Writer) Write(rows []recon.Row, out io.Writer) error {
	f, err := w.build(rows)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(out); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// =============================================================================
// WORKBOOK ASSEMBLY
// =============================================================================

// build assembles the whole workbook in memory.
func (w *Writer) build(rows []recon.Row) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := w.cfg.SheetName
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("failed to name report sheet: %w", err)
	}

	headerStyle, okStyle, problemStyle, err := w.styles(f)
	if err != nil {
		return nil, err
	}

	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", "E1", headerStyle); err != nil {
		return nil, fmt.Errorf("failed to style header row: %w", err)
	}

	for i, row := range rows {
		line := i + 2
		values := []interface{}{
			row.Identifier,
			row.Ordered,
			row.Delivered,
			row.Difference,
			row.Status.String(),
		}
		anchor, _ := excelize.CoordinatesToCellName(1, line)
		if err := f.SetSheetRow(sheet, anchor, &values); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", line, err)
		}

		style := problemStyle
		if row.Status == recon.StatusOK {
			style = okStyle
		}
		last, _ := excelize.CoordinatesToCellName(5, line)
		if err := f.SetCellStyle(sheet, anchor, last, style); err != nil {
			return nil, fmt.Errorf("failed to style row %d: %w", line, err)
		}
	}

	for i, width := range columnWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}
	return f, nil
}

// styles registers the three cell styles used by the report.
func (w *Writer) styles(f *excelize.File) (headerID, okID, problemID int, err error) {
	headerID, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to create header style: %w", err)
	}

	okID, err = f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{w.cfg.OKFill}},
	})
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to create ok style: %w", err)
	}

	problemID, err = f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{w.cfg.ProblemFill}},
	})
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to create problem style: %w", err)
	}
	return headerID, okID, problemID, nil
}
