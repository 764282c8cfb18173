// =============================================================================
// WZ Reconciliation Tool - Identifier/Quantity Normalizer
// =============================================================================
//
// This module canonicalizes the raw strings recovered from spreadsheets and
// PDF exports so that records from two differently-formatted documents become
// comparable:
//
//   - Identifiers arrive with surrounding whitespace, prefixes in the same
//     cell ("EAN 5029040012281"), or a trailing ".0" introduced by
//     spreadsheet libraries coercing numeric-looking text to floats.
//   - Quantities arrive with Polish formatting: decimal commas, thousands
//     groups separated by regular or non-breaking spaces ("1 638,00").
//     Some systems emit English formatting instead ("1,638.00").
//
// All functions here are pure and idempotent: normalizing an already
// normalized value returns it unchanged.
//
// =============================================================================

package normalize

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// PATTERNS
// =============================================================================

// ean13Pattern matches a full EAN-13 product code: exactly 13 digits.
var ean13Pattern = regexp.MustCompile(`^\d{13}$`)

// floatSuffixPattern matches a trailing ".0"-style fractional suffix, the
// artifact left behind when a numeric-as-text identifier round-trips through
// a float cell ("5029040012281.0").
var floatSuffixPattern = regexp.MustCompile(`\.0+$`)

// spaceStripper removes every whitespace variant seen in the wild, including
// the non-breaking space family used as a thousands separator by Polish
// locale formatting.
var spaceStripper = strings.NewReplacer(
	" ", "",
	"\t", "",
	" ", "", // NBSP
	" ", "", // narrow NBSP
	" ", "", // figure space
)

// headerStripper removes the separators that vary freely between header
// spellings ("Kod EAN", "kod_ean", "KodEan").
var headerStripper = strings.NewReplacer(
	" ", "",
	" ", "",
	" ", "",
	" ", "",
	"_", "",
)

// =============================================================================
// IDENTIFIER NORMALIZATION
// =============================================================================

// Identifier canonicalizes a raw identifier string. It trims surrounding
// whitespace, takes the last whitespace-delimited token (cells sometimes
// hold "<prefix> <code>"), and strips a trailing ".0"-style fractional
// suffix. It never fails; the result may be empty.
func Identifier(raw string) string {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return ""
	}
	s := fields[len(fields)-1]
	return floatSuffixPattern.ReplaceAllString(s, "")
}

// ValidIdentifier reports whether s is a plausible product code. The
// observed data uses EAN-13 barcodes, so the predicate is exactly 13
// digits. This is the primary noise filter against PDF extraction
// artifacts: stray header fragments, page numbers and dates all fail it.
func ValidIdentifier(s string) bool {
	return ean13Pattern.MatchString(s)
}

// =============================================================================
// QUANTITY NORMALIZATION
// =============================================================================

// Quantity canonicalizes a raw quantity string and parses it as a float.
// On parse failure or empty input it returns 0.0: a malformed quantity is
// treated as "no contribution" rather than aborting the extraction. Callers
// that need to distinguish a genuine zero from a failed parse should use
// QuantityOK.
func Quantity(raw string) float64 {
	q, _ := QuantityOK(raw)
	return q
}

// QuantityOK is Quantity with an explicit success flag. The extractors use
// the flag to exclude unparseable rows from aggregation and count them for
// the audit summary, instead of letting a misparsed nonzero quantity become
// an invisible shortfall.
func QuantityOK(raw string) (float64, bool) {
	s := spaceStripper.Replace(strings.TrimSpace(raw))
	if s == "" {
		return 0, false
	}

	// Both separators present means one is a thousands separator. The
	// rightmost one is the decimal point regardless of convention:
	// "1.638,00" (Polish) and "1,638.00" (English) both mean 1638.
	if strings.Contains(s, ",") && strings.Contains(s, ".") {
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	}
	s = strings.ReplaceAll(s, ",", ".")

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, false
	}
	return d.InexactFloat64(), true
}

// =============================================================================
// HEADER NORMALIZATION
// =============================================================================

// Header canonicalizes a header cell (or synonym) for matching: lowercase
// with spaces, non-breaking spaces and underscores removed. Both the
// configured synonym sets and the candidate header cells go through this
// before comparison.
func Header(s string) string {
	return headerStripper.Replace(strings.ToLower(strings.TrimSpace(s)))
}
