// =============================================================================
// WZ Reconciliation Tool - Shared Types
// =============================================================================
//
// This package contains shared value types used across multiple modules to
// avoid import cycles. Types defined here are used by:
//   - extract
//   - loader
//   - recon
//
// All types are plain values with no shared mutable state. A reconciliation
// run creates them once and never mutates them afterwards.
//
// =============================================================================

package types

// =============================================================================
// DOCUMENT CLASSIFICATION
// =============================================================================

// DocumentKind identifies the physical format of an input document.
type DocumentKind string

const (
	// KindSpreadsheet is an XLSX workbook.
	KindSpreadsheet DocumentKind = "xlsx"

	// KindCSV is a delimited text export. Legacy ERP systems in the field
	// frequently produce these in Windows-1250 or ISO-8859-2.
	KindCSV DocumentKind = "csv"

	// KindPDF is a PDF export, typically from a warehouse system. Table
	// layout varies per system and table detection may fail per page.
	KindPDF DocumentKind = "pdf"
)

// DocumentRole identifies which side of the reconciliation a document
// belongs to. The two roles use different but overlapping synonym
// vocabularies for their column headers.
type DocumentRole string

const (
	// RoleOrder is the order/dispatch request listing requested quantities.
	RoleOrder DocumentRole = "order"

	// RoleDeliveryNote is the delivery note (WZ) listing the actually
	// dispatched quantities.
	RoleDeliveryNote DocumentRole = "wz"
)

// =============================================================================
// EXTRACTED RECORDS
// =============================================================================

// RawRecord is one extracted (identifier, quantity) pair. The identifier is
// already canonical (see the normalize package) and has passed the EAN-13
// validity filter. RawRecords are ephemeral: created per extracted row and
// consumed immediately into aggregation.
type RawRecord struct {
	// Identifier is the canonical 13-digit product code.
	Identifier string

	// Quantity is the parsed quantity for this row.
	Quantity float64
}

// =============================================================================
// EXTRACTION STATISTICS
// =============================================================================

// ExtractionStats summarizes what happened while extracting one document.
// The dropped/unparsed counters exist for auditability: a row silently
// excluded from aggregation could otherwise mask a real shortfall, so the
// final summary reports how many rows were excluded and why.
type ExtractionStats struct {
	// Pages is the number of PDF pages visited (0 for spreadsheets/CSV).
	Pages int

	// TablesTried is the number of detected tables that went through
	// tabular extraction.
	TablesTried int

	// TextFallbacks is the number of pages that fell back to the
	// line-oriented text scanner because table extraction yielded nothing.
	TextFallbacks int

	// Extracted is the number of RawRecords recovered.
	Extracted int

	// DroppedRows counts non-empty rows whose identifier failed the
	// EAN-13 validity filter.
	DroppedRows int

	// UnparsedQuantities counts rows whose identifier was valid but whose
	// quantity token could not be parsed. These rows are excluded from
	// aggregation rather than contributing a silent zero.
	UnparsedQuantities int
}

// Add accumulates the counters of another stats value into this one.
func (s *ExtractionStats) Add(other ExtractionStats) {
	s.Pages += other.Pages
	s.TablesTried += other.TablesTried
	s.TextFallbacks += other.TextFallbacks
	s.Extracted += other.Extracted
	s.DroppedRows += other.DroppedRows
	s.UnparsedQuantities += other.UnparsedQuantities
}
