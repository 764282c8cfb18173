package extract

import (
	"testing"

	"github.com/lkosinski/wzrecon/internal/types"
)

func TestFromTextPairsTrailingToken(t *testing.T) {
	lines := []string{
		"1 Herbata czarna 5029040012281 4,00 szt.",
		"2 Kawa mielona 5901234123457 12,50 szt.",
	}
	res := FromText(lines)
	want := []types.RawRecord{
		{Identifier: "5029040012281", Quantity: 4},
		{Identifier: "5901234123457", Quantity: 12.5},
	}
	assertRecords(t, res.Records, want)
	if res.Via != "text-scan" {
		t.Errorf("Via = %q, want text-scan", res.Via)
	}
}

func TestFromTextSkipsDateAfterIdentifier(t *testing.T) {
	// The token trailing the identifier is an expiry date; the quantity is
	// the last qualifying token on the line.
	lines := []string{
		"Herbata 5029040012281 2027-11-27 4,00",
	}
	res := FromText(lines)
	assertRecords(t, res.Records, []types.RawRecord{{Identifier: "5029040012281", Quantity: 4}})
}

func TestFromTextSkipsMonthYearFragment(t *testing.T) {
	lines := []string{
		"Kawa 5901234123457 11.2027 6,00",
	}
	res := FromText(lines)
	assertRecords(t, res.Records, []types.RawRecord{{Identifier: "5901234123457", Quantity: 6}})
}

func TestFromTextIgnoresLinesWithoutAnchors(t *testing.T) {
	lines := []string{
		"WZ 123/2024 z dnia 2024-05-12",
		"Kontrahent: Hurtownia X",
		"Razem: 1 638,00",
		"",
	}
	res := FromText(lines)
	if len(res.Records) != 0 {
		t.Errorf("got %d records from anchor-free lines, want 0", len(res.Records))
	}
}

func TestFromTextLastTokenHeuristic(t *testing.T) {
	// Multiple numeric fields after the identifier token position: trailing
	// token wins only when it qualifies; otherwise the last qualifying one.
	lines := []string{
		"5029040012281 Herbata 12,50 4,00",
	}
	res := FromText(lines)
	// "Herbata" follows the identifier, so the last qualifying token pairs.
	assertRecords(t, res.Records, []types.RawRecord{{Identifier: "5029040012281", Quantity: 4}})
}

func TestFromTextDropsInvalidIdentifiers(t *testing.T) {
	lines := []string{
		"502904001228 4,00",  // 12 digits: no anchor at all
		"50290400122812 4,00", // 14 digits: no 13-digit field
	}
	res := FromText(lines)
	if len(res.Records) != 0 {
		t.Errorf("got %d records, want 0", len(res.Records))
	}
}

func TestFromTextNoPartnerYieldsNothing(t *testing.T) {
	// An identifier with no qualifying numeric partner on the line.
	lines := []string{
		"5029040012281 brak danych",
	}
	res := FromText(lines)
	if len(res.Records) != 0 {
		t.Errorf("got %d records, want 0", len(res.Records))
	}
}
