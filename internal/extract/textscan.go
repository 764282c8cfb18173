// =============================================================================
// WZ Reconciliation Tool - Text-Fallback Extractor
// =============================================================================
//
// This module recovers records from raw page text when table detection
// yields nothing usable for a PDF page. It scans line by line with anchor
// patterns: a 13-digit identifier and decimal-comma numeric tokens.
//
// TOKEN PAIRING:
//   When a line carries both anchors, the identifier is paired with the
//   numeric token immediately trailing it. If that token looks like a date
//   or is absent, the *last* qualifying numeric token on the line is used
//   instead, which skips over trailing metadata such as expiry dates.
//
// This is strictly a lower-precision path: a line mixing dates, weights and
// prices can produce a false pairing. It is therefore only exercised after
// structured extraction has failed, never as a primary path.
//
// =============================================================================

package extract

import (
	"regexp"
	"strings"

	"github.com/lkosinski/wzrecon/internal/normalize"
	"github.com/lkosinski/wzrecon/internal/types"
)

// =============================================================================
// ANCHOR PATTERNS
// =============================================================================

// eanToken anchors a line: a standalone 13-digit product code.
var eanToken = regexp.MustCompile(`\b\d{13}\b`)

// qtyToken is a qualifying quantity token: up to six integer digits with an
// optional decimal-comma or decimal-point fraction. The length cap keeps
// long codes from qualifying.
var qtyToken = regexp.MustCompile(`^\d{1,6}([,.]\d{1,4})?$`)

// datePatterns exclude tokens that are really dates. PDFs in the observed
// data carry ISO dates, dotted Polish dates and slashed dates.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
	regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4}$`),
	regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`),
	regexp.MustCompile(`^\d{4}\.\d{2}\.\d{2}$`),
	// Month-year fragments ("11.2027") pass the quantity shape test and
	// must be excluded explicitly.
	regexp.MustCompile(`^\d{2}\.\d{4}$`),
	regexp.MustCompile(`^\d{2}/\d{4}$`),
}

// =============================================================================
// TEXT SCANNING
// =============================================================================

// FromText scans page text lines for (identifier, quantity) pairs. Records
// pass through the same validity filter as tabular extraction.
func FromText(lines []string) Result {
	res := Result{Via: "text-scan"}
	for _, line := range lines {
		id, qtyRaw, found := scanLine(line)
		if !found {
			continue
		}
		id = normalize.Identifier(id)
		if !normalize.ValidIdentifier(id) {
			res.Dropped++
			continue
		}
		qty, ok := normalize.QuantityOK(qtyRaw)
		if !ok {
			res.Unparsed++
			continue
		}
		res.Records = append(res.Records, types.RawRecord{Identifier: id, Quantity: qty})
	}
	return res
}

// scanLine locates the identifier token and picks its quantity partner.
func scanLine(line string) (id, qty string, found bool) {
	fields := strings.Fields(line)
	idIdx := -1
	for i, f := range fields {
		if eanToken.MatchString(f) && len(f) == 13 {
			idIdx = i
			break
		}
	}
	if idIdx < 0 {
		return "", "", false
	}

	// Preferred partner: the token immediately trailing the identifier.
	if idIdx+1 < len(fields) && qualifies(fields[idIdx+1]) {
		return fields[idIdx], fields[idIdx+1], true
	}

	// Otherwise the last qualifying token on the line, skipping trailing
	// dates and weights that fail the shape test.
	for i := len(fields) - 1; i >= 0; i-- {
		if i == idIdx {
			continue
		}
		if qualifies(fields[i]) {
			return fields[idIdx], fields[i], true
		}
	}
	return "", "", false
}

// qualifies reports whether a token has the shape of a quantity and is not
// a date.
func qualifies(token string) bool {
	if !qtyToken.MatchString(token) {
		return false
	}
	for _, p := range datePatterns {
		if p.MatchString(token) {
			return false
		}
	}
	return true
}
