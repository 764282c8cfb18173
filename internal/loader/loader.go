// =============================================================================
// WZ Reconciliation Tool - Document Loader
// =============================================================================
//
// This module orchestrates extraction across one whole document and is the
// place where partial failure is allowed: a page or a table that cannot be
// read is skipped, the fallback chain runs, and only a document that yields
// zero records in total is a hard failure.
//
// EXTRACTION PER SOURCE:
//   - Spreadsheet / CSV: the whole grid through tabular extraction once.
//     A header that never resolves is a structural error for the document
//     (there is nothing to fall back to).
//   - PDF: per page, every detected table with at least two rows goes
//     through tabular extraction (which internally includes the
//     split-quantity fallback); pages yielding nothing usable go through
//     the line-oriented text scanner.
//
// All recovered records concatenate into one stream per document, along
// with the audit counters (dropped rows, unparsed quantities).
//
// =============================================================================

package loader

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/lkosinski/wzrecon/internal/columns"
	"github.com/lkosinski/wzrecon/internal/csvparser"
	"github.com/lkosinski/wzrecon/internal/extract"
	"github.com/lkosinski/wzrecon/internal/pdfparser"
	"github.com/lkosinski/wzrecon/internal/types"
	"github.com/lkosinski/wzrecon/internal/xlsxparser"
)

// =============================================================================
// ERRORS
// =============================================================================

// NoUsableDataError reports that a whole document yielded zero records.
// This is fatal for the run: there is no best-effort report to produce
// from an empty side.
type NoUsableDataError struct {
	Path string
}

func (e *NoUsableDataError) Error() string {
	return fmt.Sprintf("no usable data found in %s", filepath.Base(e.Path))
}

// StructuralError reports that a document's required columns could not be
// located. It wraps the resolver's NotFoundError, which lists the headers
// actually seen.
type StructuralError struct {
	Path string
	Err  error
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("%s: %v", filepath.Base(e.Path), e.Err)
}

func (e *StructuralError) Unwrap() error {
	return e.Err
}

// =============================================================================
// LOADER
// =============================================================================

// Outcome is one document's extraction result: the concatenated record
// stream plus the audit counters.
type Outcome struct {
	Records []types.RawRecord
	Stats   types.ExtractionStats
}

// Loader extracts one document at a time. It holds the per-run inputs that
// do not vary between the two documents of a reconciliation.
type Loader struct {
	csv csvparser.Settings
	log zerolog.Logger
}

// New creates a Loader.
func New(csv csvparser.Settings, log zerolog.Logger) *Loader {
	return &Loader{csv: csv, log: log}
}

// DetectKind infers the document kind from the file extension.
func DetectKind(path string) (types.DocumentKind, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return types.KindSpreadsheet, nil
	case ".csv", ".txt":
		return types.KindCSV, nil
	case ".pdf":
		return types.KindPDF, nil
	default:
		return "", fmt.Errorf("unsupported file type %q (expected .xlsx, .csv or .pdf)", filepath.Ext(path))
	}
}

// Load extracts the document at path using the synonym vocabularies of its
// role.
func (l *Loader) Load(path string, kind types.DocumentKind, roles columns.Roles) (*Outcome, error) {
	switch kind {
	case types.KindSpreadsheet:
		grid, err := xlsxparser.Parse(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		return l.loadGrid(path, grid, roles)
	case types.KindCSV:
		grid, err := csvparser.Parse(path, l.csv)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		return l.loadGrid(path, grid, roles)
	case types.KindPDF:
		return l.loadPDF(path, roles)
	default:
		return nil, fmt.Errorf("unsupported document kind %q", kind)
	}
}

// =============================================================================
// GRID DOCUMENTS (XLSX / CSV)
// =============================================================================

// loadGrid runs one tabular pass over a whole sheet grid. Header
// resolution failure here is structural: the document has one table and it
// is unreadable.
func (l *Loader) loadGrid(path string, grid [][]string, roles columns.Roles) (*Outcome, error) {
	res, err := extract.FromTable(grid, roles)
	if err != nil {
		var nf *columns.NotFoundError
		if errors.As(err, &nf) {
			return nil, &StructuralError{Path: path, Err: nf}
		}
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	l.log.Debug().
		Str("document", filepath.Base(path)).
		Str("via", res.Via).
		Int("records", len(res.Records)).
		Int("dropped", res.Dropped).
		Int("unparsed", res.Unparsed).
		Msg("extracted sheet")

	if res.Empty() {
		return nil, &NoUsableDataError{Path: path}
	}
	return &Outcome{
		Records: res.Records,
		Stats: types.ExtractionStats{
			TablesTried:        1,
			Extracted:          len(res.Records),
			DroppedRows:        res.Dropped,
			UnparsedQuantities: res.Unparsed,
		},
	}, nil
}

// =============================================================================
// PDF DOCUMENTS
// =============================================================================

// loadPDF walks every page, trying the detected table first and the text
// scanner when tabular extraction yields nothing. One unreadable page never
// aborts the document.
func (l *Loader) loadPDF(path string, roles columns.Roles) (*Outcome, error) {
	pages, err := pdfparser.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	out := &Outcome{}
	for _, page := range pages {
		out.Stats.Pages++
		res, usedText := l.extractPage(path, page, roles)
		if usedText {
			out.Stats.TextFallbacks++
		} else {
			out.Stats.TablesTried++
		}
		out.Records = append(out.Records, res.Records...)
		out.Stats.Extracted += len(res.Records)
		out.Stats.DroppedRows += res.Dropped
		out.Stats.UnparsedQuantities += res.Unparsed
	}

	if len(out.Records) == 0 {
		return nil, &NoUsableDataError{Path: path}
	}
	return out, nil
}

// extractPage runs the fallback chain over one page: detected table first,
// then the text scanner. Reports whether the text path produced the result.
func (l *Loader) extractPage(path string, page pdfparser.Page, roles columns.Roles) (extract.Result, bool) {
	log := l.log.With().
		Str("document", filepath.Base(path)).
		Int("page", page.Number).
		Logger()

	if page.Table != nil {
		res, err := extract.FromTable(page.Table, roles)
		if err == nil && !res.Empty() {
			log.Debug().
				Str("via", res.Via).
				Int("records", len(res.Records)).
				Int("dropped", res.Dropped).
				Int("unparsed", res.Unparsed).
				Msg("extracted table")
			return res, false
		}
		if err != nil {
			log.Debug().Err(err).Msg("table header did not resolve, falling back to text scan")
		} else {
			log.Debug().Msg("table yielded no records, falling back to text scan")
		}
	} else {
		log.Debug().Msg("no table detected, falling back to text scan")
	}

	res := extract.FromText(page.Lines)
	log.Debug().
		Int("records", len(res.Records)).
		Int("dropped", res.Dropped).
		Int("unparsed", res.Unparsed).
		Msg("text scan finished")
	return res, true
}
