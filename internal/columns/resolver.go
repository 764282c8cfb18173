// =============================================================================
// WZ Reconciliation Tool - Column Resolver
// =============================================================================
//
// This module locates the identifier and quantity columns inside a table
// whose headers were written by somebody else's ERP. Header names vary per
// system ("Symbol", "Kod EAN", "GTIN"; "Ilość", "Qty", "Zamówiona ilość"),
// and in PDF-extracted tables the conceptual header can be split across two
// physical rows or glued into one fragment by text wrapping.
//
// RESOLUTION ORDER (first success wins, deterministically):
//   1. Exact match: a header cell normalizes to a configured synonym.
//   2. Substring match: a header cell *contains* a synonym ("Data ważn.
//      Ilość" still resolves the quantity role). A cell that also carries an
//      expiry hint marks the split-quantity layout, where the integer part
//      of the quantity is glued to an expiry column and the fractional part
//      to a weight column.
//   3. Cross-row pairing: a row that resolves only the identifier role is
//      paired with a quantity column found by substring on another row.
//   4. Fuzzy match via closestmatch, accepted only above a conservative
//      similarity bound. Lowest confidence; typo'd headers only.
//
// Synonym sets are configuration data, not inline literals, so resolution is
// deterministic and testable with synthetic header sets.
//
// =============================================================================

package columns

import (
	"fmt"
	"strings"

	"github.com/schollz/closestmatch"

	"github.com/lkosinski/wzrecon/internal/normalize"
)

// =============================================================================
// ROLE SYNONYMS
// =============================================================================

// Roles carries the synonym sets for the two column roles, plus the hint
// tokens used by the split-quantity fallback. Values are raw spellings; the
// resolver normalizes them before matching.
type Roles struct {
	// Identifier is the synonym set for the product-code column.
	Identifier []string

	// Quantity is the synonym set for the quantity column.
	Quantity []string

	// ExpiryHints mark headers where an expiry/date fragment was glued to
	// the quantity header by PDF text wrapping ("Data ważności Ilość").
	ExpiryHints []string

	// WeightHints mark the weight column that carries the fractional part
	// of a split quantity.
	WeightHints []string
}

// =============================================================================
// RESOLUTION RESULT
// =============================================================================

// Via describes which matching pass produced a resolution. Later passes are
// lower confidence; the loader logs them so suspicious extractions can be
// traced back to the header that caused them.
type Via string

const (
	ViaExact     Via = "exact"
	ViaSubstring Via = "substring"
	ViaCrossRow  Via = "cross-row"
	ViaSplit     Via = "split-quantity"
	ViaFuzzy     Via = "fuzzy"
)

// Columns is a successful resolution: which row is the header and which
// column indices play each role.
type Columns struct {
	// Row is the index of the resolved header row. Data rows follow it.
	Row int

	// Identifier is the column index of the product code.
	Identifier int

	// Quantity is the column index of the quantity, or -1 when the
	// quantity is split across two columns.
	Quantity int

	// SplitInteger and SplitFraction are the column indices for the
	// split-quantity layout: the integer part glued to an expiry column
	// and the fractional part glued to a weight column. Both are -1
	// unless Via is ViaSplit. SplitFraction may be -1 on its own when no
	// weight column exists; the integer part is then used alone.
	SplitInteger  int
	SplitFraction int

	// Via records which matching pass succeeded.
	Via Via
}

// Split reports whether the quantity must be reconstructed from two columns.
func (c Columns) Split() bool {
	return c.Via == ViaSplit
}

// =============================================================================
// NOT-FOUND ERROR
// =============================================================================

// NotFoundError reports that no candidate row resolved both roles. It
// carries the headers actually seen so the user can diagnose the document
// (typically by extending the synonym configuration).
type NotFoundError struct {
	// Headers are the non-empty header cells found across all candidate
	// rows, in document order.
	Headers []string
}

func (e *NotFoundError) Error() string {
	if len(e.Headers) == 0 {
		return "no identifier/quantity columns found (no headers present)"
	}
	return fmt.Sprintf("no identifier/quantity columns found (headers seen: %s)",
		strings.Join(e.Headers, ", "))
}

// =============================================================================
// SINGLE-ROW RESOLUTION
// =============================================================================

// Resolve matches one header row against the synonym sets using the exact
// pass only. First matching cell wins per role, preserving column order.
func Resolve(header []string, roles Roles) (Columns, error) {
	idCol := matchExact(header, roles.Identifier)
	qtyCol := matchExact(header, roles.Quantity)
	if idCol < 0 || qtyCol < 0 {
		return Columns{}, &NotFoundError{Headers: nonEmpty(header)}
	}
	return Columns{
		Row:           0,
		Identifier:    idCol,
		Quantity:      qtyCol,
		SplitInteger:  -1,
		SplitFraction: -1,
		Via:           ViaExact,
	}, nil
}

// =============================================================================
// MULTI-ROW RESOLUTION
// =============================================================================

// ResolveRows runs the full resolution order over a set of candidate header
// rows (for spreadsheets: every sheet row; for PDF tables: every grid row).
// The first row satisfying a pass wins, and earlier passes always beat later
// ones. Returns NotFoundError listing all headers seen when nothing works.
func ResolveRows(rows [][]string, roles Roles) (Columns, error) {
	// Pass 1: exact on a single row.
	for i, row := range rows {
		if cols, err := Resolve(row, roles); err == nil {
			cols.Row = i
			return cols, nil
		}
	}

	// Pass 2: substring on a single row. A quantity cell that also carries
	// an expiry hint means the quantity column does not exist on its own:
	// switch to the split-quantity layout.
	for i, row := range rows {
		idCol := matchLoose(row, roles.Identifier)
		if idCol < 0 {
			continue
		}
		qtyCol := matchSubstring(row, roles.Quantity)
		if qtyCol < 0 {
			continue
		}
		if containsAny(row[qtyCol], roles.ExpiryHints) {
			return Columns{
				Row:           i,
				Identifier:    idCol,
				Quantity:      -1,
				SplitInteger:  qtyCol,
				SplitFraction: matchSubstring(row, roles.WeightHints),
				Via:           ViaSplit,
			}, nil
		}
		return Columns{
			Row:           i,
			Identifier:    idCol,
			Quantity:      qtyCol,
			SplitInteger:  -1,
			SplitFraction: -1,
			Via:           ViaSubstring,
		}, nil
	}

	// Pass 3: identifier on one row, quantity by substring on another.
	// PDF extraction sometimes splits a conceptual header across two
	// physical rows; data rows follow the later of the two.
	for i, row := range rows {
		idCol := matchLoose(row, roles.Identifier)
		if idCol < 0 {
			continue
		}
		for j, other := range rows {
			if j == i {
				continue
			}
			qtyCol := matchSubstring(other, roles.Quantity)
			if qtyCol < 0 {
				continue
			}
			headerRow := i
			if j > headerRow {
				headerRow = j
			}
			return Columns{
				Row:           headerRow,
				Identifier:    idCol,
				Quantity:      qtyCol,
				SplitInteger:  -1,
				SplitFraction: -1,
				Via:           ViaCrossRow,
			}, nil
		}
		break // only the first identifier row is a candidate anchor
	}

	// Pass 4: fuzzy. Catches typo'd headers ("Ilosść") without opening the
	// door to arbitrary matches; see fuzzyMatch for the acceptance bound.
	for i, row := range rows {
		idCol := fuzzyMatch(row, roles.Identifier)
		qtyCol := fuzzyMatch(row, roles.Quantity)
		if idCol >= 0 && qtyCol >= 0 && idCol != qtyCol {
			return Columns{
				Row:           i,
				Identifier:    idCol,
				Quantity:      qtyCol,
				SplitInteger:  -1,
				SplitFraction: -1,
				Via:           ViaFuzzy,
			}, nil
		}
	}

	var seen []string
	for _, row := range rows {
		seen = append(seen, nonEmpty(row)...)
	}
	return Columns{}, &NotFoundError{Headers: seen}
}

// =============================================================================
// MATCHING PASSES
// =============================================================================

// matchExact returns the first cell whose normalized form equals a
// normalized synonym, or -1.
func matchExact(row []string, synonyms []string) int {
	set := normalizeSet(synonyms)
	for i, cell := range row {
		if _, ok := set[normalize.Header(cell)]; ok {
			return i
		}
	}
	return -1
}

// matchSubstring returns the first cell whose normalized form contains a
// normalized synonym, or -1.
func matchSubstring(row []string, synonyms []string) int {
	for i, cell := range row {
		if containsAny(cell, synonyms) {
			return i
		}
	}
	return -1
}

// matchLoose tries exact first, then substring.
func matchLoose(row []string, synonyms []string) int {
	if i := matchExact(row, synonyms); i >= 0 {
		return i
	}
	return matchSubstring(row, synonyms)
}

// fuzzyMatch returns the first cell that closestmatch maps to one of the
// synonyms with a similarity of at least fuzzyThreshold, or -1. closestmatch
// ranks by shared bag-of-2-grams; the explicit similarity check on top of it
// keeps unrelated headers from sneaking in as the "closest" of a bad bunch.
func fuzzyMatch(row []string, synonyms []string) int {
	normalized := make([]string, 0, len(synonyms))
	for _, s := range synonyms {
		if n := normalize.Header(s); n != "" {
			normalized = append(normalized, n)
		}
	}
	if len(normalized) == 0 {
		return -1
	}
	cm := closestmatch.New(normalized, []int{2})
	for i, cell := range row {
		n := normalize.Header(cell)
		if len(n) < 3 {
			continue
		}
		best := cm.Closest(n)
		if best == "" {
			continue
		}
		if similarity(n, best) >= fuzzyThreshold {
			return i
		}
	}
	return -1
}

// fuzzyThreshold is the minimum similarity (1 - normalized edit distance)
// for a fuzzy header match. 0.75 tolerates a single typo in a short header
// while rejecting genuinely different words.
const fuzzyThreshold = 0.75

// similarity is 1 - levenshtein(a,b)/max(len(a),len(b)).
func similarity(a, b string) float64 {
	la, lb := len([]rune(a)), len([]rune(b))
	if la == 0 && lb == 0 {
		return 1
	}
	max := la
	if lb > max {
		max = lb
	}
	return 1 - float64(levenshtein(a, b))/float64(max)
}

// levenshtein computes the edit distance between two short header strings.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

// =============================================================================
// HELPERS
// =============================================================================

func normalizeSet(synonyms []string) map[string]struct{} {
	set := make(map[string]struct{}, len(synonyms))
	for _, s := range synonyms {
		if n := normalize.Header(s); n != "" {
			set[n] = struct{}{}
		}
	}
	return set
}

// containsAny reports whether the normalized cell contains any normalized
// synonym as a substring.
func containsAny(cell string, synonyms []string) bool {
	n := normalize.Header(cell)
	if n == "" {
		return false
	}
	for _, s := range synonyms {
		syn := normalize.Header(s)
		if syn != "" && strings.Contains(n, syn) {
			return true
		}
	}
	return false
}

func nonEmpty(row []string) []string {
	var out []string
	for _, cell := range row {
		if c := strings.TrimSpace(cell); c != "" {
			out = append(out, c)
		}
	}
	return out
}
