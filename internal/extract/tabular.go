// =============================================================================
// WZ Reconciliation Tool - Tabular Source Extractor
// =============================================================================
//
// This module turns a table (a grid of cell strings, from a spreadsheet or a
// detected PDF table) into a stream of RawRecords. The header row location
// is unknown on entry: the column resolver scans the candidate rows and the
// extractor reads data rows at the resolved indices.
//
// ROW FILTERING:
//   - Rows whose identifier fails the EAN-13 validity filter are dropped
//     and counted. This removes PDF artifacts (header fragments, page
//     numbers, dates) that land in the identifier column.
//   - Rows whose quantity token does not parse are excluded and counted
//     separately, so an unparseable real quantity never becomes a silent
//     zero contribution.
//
// SPLIT-QUANTITY FALLBACK:
//   Some delivery-note PDFs have no standalone quantity column: the integer
//   part is glued to an expiry/date column and the fractional part to a
//   weight column. When the resolver reports that layout, the extractor
//   reconstructs "<integer>,<fraction>" before normalization. This path is
//   best-effort only and activates solely when the direct column is absent.
//
// =============================================================================

package extract

import (
	"regexp"
	"strings"

	"github.com/lkosinski/wzrecon/internal/columns"
	"github.com/lkosinski/wzrecon/internal/normalize"
	"github.com/lkosinski/wzrecon/internal/types"
)

// =============================================================================
// RESULT
// =============================================================================

// Result is the outcome of one extraction attempt over one source fragment
// (a sheet, a detected table, or a page of text).
type Result struct {
	// Records are the surviving rows in document order.
	Records []types.RawRecord

	// Dropped counts non-empty rows excluded by the identifier filter.
	Dropped int

	// Unparsed counts rows excluded because the quantity did not parse.
	Unparsed int

	// Via names the path that produced the records: the resolver pass for
	// tabular extraction, or "text-scan" for the line-oriented fallback.
	Via string
}

// Empty reports whether the attempt recovered nothing.
func (r Result) Empty() bool {
	return len(r.Records) == 0
}

// =============================================================================
// TABULAR EXTRACTION
// =============================================================================

// FromTable extracts RawRecords from a grid whose header location is
// unknown. It resolves the header via the column resolver and reads every
// subsequent row. A resolution failure is returned as-is (the caller
// decides whether it is fatal: for a spreadsheet it is, for one PDF table
// it only triggers the next fallback).
func FromTable(grid [][]string, roles columns.Roles) (Result, error) {
	cols, err := columns.ResolveRows(grid, roles)
	if err != nil {
		return Result{}, err
	}
	if cols.Split() {
		return extractSplit(grid, cols), nil
	}
	return extractDirect(grid, cols), nil
}

// extractDirect reads the identifier and quantity cells at the resolved
// indices for every data row.
func extractDirect(grid [][]string, cols columns.Columns) Result {
	res := Result{Via: string(cols.Via)}
	for r := cols.Row + 1; r < len(grid); r++ {
		row := grid[r]
		if isRowEmpty(row) {
			continue
		}
		id := normalize.Identifier(cell(row, cols.Identifier))
		if !normalize.ValidIdentifier(id) {
			res.Dropped++
			continue
		}
		qty, ok := normalize.QuantityOK(cell(row, cols.Quantity))
		if !ok {
			res.Unparsed++
			continue
		}
		res.Records = append(res.Records, types.RawRecord{Identifier: id, Quantity: qty})
	}
	return res
}

// =============================================================================
// SPLIT-QUANTITY RECONSTRUCTION
// =============================================================================

// integerToken matches a bare digit run, the shape of the integer quantity
// part glued after an expiry date ("2027-11-27 4").
var integerToken = regexp.MustCompile(`\b\d+\b`)

// extractSplit reconstructs quantities from the split layout: the last
// integer token of the expiry+quantity cell is the integer part, the first
// digit run of the weight cell is the fractional part. With no weight
// column the integer part stands alone.
func extractSplit(grid [][]string, cols columns.Columns) Result {
	res := Result{Via: string(cols.Via)}
	for r := cols.Row + 1; r < len(grid); r++ {
		row := grid[r]
		if isRowEmpty(row) {
			continue
		}
		id := normalize.Identifier(cell(row, cols.Identifier))
		if !normalize.ValidIdentifier(id) {
			res.Dropped++
			continue
		}

		intPart := lastIntegerToken(cell(row, cols.SplitInteger))
		if intPart == "" {
			res.Unparsed++
			continue
		}
		raw := intPart
		if cols.SplitFraction >= 0 {
			if frac := firstIntegerToken(cell(row, cols.SplitFraction)); frac != "" {
				raw = intPart + "," + frac
			}
		}

		qty, ok := normalize.QuantityOK(raw)
		if !ok {
			res.Unparsed++
			continue
		}
		res.Records = append(res.Records, types.RawRecord{Identifier: id, Quantity: qty})
	}
	return res
}

// lastIntegerToken returns the last bare digit run in s that is not part of
// a larger token containing separators (dates stay whole and are skipped by
// taking whitespace-delimited fields first).
func lastIntegerToken(s string) string {
	fields := strings.Fields(s)
	for i := len(fields) - 1; i >= 0; i-- {
		if isDigits(fields[i]) {
			return fields[i]
		}
	}
	return ""
}

// firstIntegerToken returns the first digit run in s, separators included in
// the search ("0,035 kg" yields "0").
func firstIntegerToken(s string) string {
	return integerToken.FindString(s)
}

// =============================================================================
// HELPERS
// =============================================================================

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func isRowEmpty(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
