// =============================================================================
// WZ Reconciliation Tool - Aggregator / Reconciler
// =============================================================================
//
// This module owns the transition from raw extracted records to the final
// reconciliation report: group each document's records by identifier, sum
// the quantities, full-outer-join the two aggregates and classify every
// joined row. It performs no I/O and cannot fail on well-formed input; all
// failure handling lives at the extraction boundary.
//
// STATUS ORDERING:
//   The report is sorted worst-first: quantity mismatches, then lines
//   missing from the delivery note, then lines missing from the order, then
//   matching lines; ties break on identifier ascending.
//
// =============================================================================

package recon

import (
	"sort"

	"github.com/lkosinski/wzrecon/internal/types"
)

// =============================================================================
// STATUS
// =============================================================================

// Status classifies one reconciliation row. The numeric order is the
// display priority, worst first.
type Status int

const (
	// StatusMismatch: present in both documents with differing quantities.
	StatusMismatch Status = iota

	// StatusMissingFromDelivery: present only in the order.
	StatusMissingFromDelivery

	// StatusMissingFromOrder: present only in the delivery note.
	StatusMissingFromOrder

	// StatusOK: present in both documents with equal quantities.
	StatusOK
)

// String returns the report label. The labels are the Polish vocabulary the
// report consumers expect on printed WZ paperwork.
func (s Status) String() string {
	switch s {
	case StatusMismatch:
		return "Różni się"
	case StatusMissingFromDelivery:
		return "Brak we WZ"
	case StatusMissingFromOrder:
		return "Brak w zamówieniu"
	case StatusOK:
		return "OK"
	default:
		return "?"
	}
}

// =============================================================================
// AGGREGATION
// =============================================================================

// AggregatedLine is one product line after grouping: the canonical
// identifier and the summed quantity across every row that carried it.
type AggregatedLine struct {
	Identifier    string
	TotalQuantity float64
}

// Aggregate groups records by identifier and sums their quantities. The
// result is sorted by identifier so aggregation is deterministic regardless
// of input order.
func Aggregate(records []types.RawRecord) []AggregatedLine {
	totals := make(map[string]float64, len(records))
	for _, r := range records {
		totals[r.Identifier] += r.Quantity
	}

	lines := make([]AggregatedLine, 0, len(totals))
	for id, total := range totals {
		lines = append(lines, AggregatedLine{Identifier: id, TotalQuantity: total})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].Identifier < lines[j].Identifier })
	return lines
}

// =============================================================================
// RECONCILIATION
// =============================================================================

// Row is one line of the final report: the joined quantities, their signed
// difference (positive means under-delivery) and the status classification.
type Row struct {
	Identifier string
	Ordered    float64
	Delivered  float64
	Difference float64
	Status     Status
}

// Reconcile full-outer-joins the two aggregates on identifier and
// classifies every joined row. Quantities compare by exact float equality;
// a missing side contributes zero. Output is sorted worst-first, then by
// identifier ascending.
func Reconcile(ordered, delivered []AggregatedLine) []Row {
	orderedBy := make(map[string]float64, len(ordered))
	for _, l := range ordered {
		orderedBy[l.Identifier] = l.TotalQuantity
	}
	deliveredBy := make(map[string]float64, len(delivered))
	for _, l := range delivered {
		deliveredBy[l.Identifier] = l.TotalQuantity
	}

	rows := make([]Row, 0, len(orderedBy)+len(deliveredBy))
	for id, ord := range orderedBy {
		del, inDelivery := deliveredBy[id]
		row := Row{
			Identifier: id,
			Ordered:    ord,
			Delivered:  del,
			Difference: ord - del,
		}
		switch {
		case !inDelivery:
			row.Status = StatusMissingFromDelivery
		case ord == del:
			row.Status = StatusOK
		default:
			row.Status = StatusMismatch
		}
		rows = append(rows, row)
	}
	for id, del := range deliveredBy {
		if _, inOrder := orderedBy[id]; inOrder {
			continue
		}
		rows = append(rows, Row{
			Identifier: id,
			Delivered:  del,
			Difference: -del,
			Status:     StatusMissingFromOrder,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Status != rows[j].Status {
			return rows[i].Status < rows[j].Status
		}
		return rows[i].Identifier < rows[j].Identifier
	})
	return rows
}

// =============================================================================
// SUMMARY
// =============================================================================

// Summary is the per-status row count plus the overall verdict.
type Summary struct {
	Counts map[Status]int
	Total  int
}

// Summarize tallies the report rows by status.
func Summarize(rows []Row) Summary {
	s := Summary{Counts: make(map[Status]int), Total: len(rows)}
	for _, r := range rows {
		s.Counts[r.Status]++
	}
	return s
}

// AllOK reports whether every line matched.
func (s Summary) AllOK() bool {
	return s.Counts[StatusOK] == s.Total
}
