// =============================================================================
// WZ Reconciliation Tool - CSV Grid Parser
// =============================================================================
//
// This module reads a delimited text export as a grid of strings, the same
// shape the XLSX parser produces, so both formats share one extraction path.
// Legacy Polish ERP systems export CSV in Windows-1250 or ISO-8859-2 more
// often than UTF-8, so the reader decodes through a configurable charset
// before CSV parsing.
//
// The reader is deliberately lenient: variable field counts per row, lazy
// quotes and leading whitespace are all tolerated, because the grid goes
// through the same header resolution and row filtering as every other
// source.
//
// =============================================================================

package csvparser

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// =============================================================================
// SETTINGS
// =============================================================================

// Settings controls delimiter and character encoding. Both come from the
// configuration file; defaults suit the commonly observed exports.
type Settings struct {
	// Delimiter separates fields. Accepts a literal character or one of
	// the aliases "tab", "pipe", "semicolon".
	Delimiter string

	// Encoding is the character set of the file: "utf-8", "windows-1250"
	// or "iso-8859-2".
	Encoding string
}

// DefaultSettings are semicolon-separated Windows-1250, the most common
// shape of Polish ERP exports.
func DefaultSettings() Settings {
	return Settings{Delimiter: ";", Encoding: "windows-1250"}
}

// =============================================================================
// PARSER
// =============================================================================

// Parse reads the file at path and returns it as a grid of strings.
func Parse(path string, settings Settings) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ParseReader(file, settings)
}

// ParseReader reads CSV from a stream. Used for uploads and by tests.
func ParseReader(r io.Reader, settings Settings) ([][]string, error) {
	enc, err := resolveEncoding(settings.Encoding)
	if err != nil {
		return nil, err
	}
	decoded := transform.NewReader(r, enc.NewDecoder())

	csvReader := csv.NewReader(decoded)
	csvReader.Comma = resolveDelimiter(settings.Delimiter)
	csvReader.FieldsPerRecord = -1
	csvReader.LazyQuotes = true
	csvReader.TrimLeadingSpace = true

	rows, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("CSV file is empty")
	}
	return rows, nil
}

// =============================================================================
// SETTING RESOLUTION
// =============================================================================

// resolveDelimiter maps the configured delimiter to a rune, handling the
// common aliases.
func resolveDelimiter(delimiter string) rune {
	switch strings.ToLower(delimiter) {
	case "\\t", "tab":
		return '\t'
	case "pipe":
		return '|'
	case "semicolon", "":
		return ';'
	default:
		return []rune(delimiter)[0]
	}
}

// resolveEncoding maps the configured charset name to a decoder.
func resolveEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return unicode.UTF8, nil
	case "windows-1250", "cp1250":
		return charmap.Windows1250, nil
	case "iso-8859-2", "latin-2", "latin2":
		return charmap.ISO8859_2, nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q (supported: utf-8, windows-1250, iso-8859-2)", name)
	}
}
