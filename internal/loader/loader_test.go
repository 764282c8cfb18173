package loader

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/lkosinski/wzrecon/internal/columns"
	"github.com/lkosinski/wzrecon/internal/csvparser"
	"github.com/lkosinski/wzrecon/internal/types"
)

func testRoles() columns.Roles {
	return columns.Roles{
		Identifier: []string{"symbol", "ean"},
		Quantity:   []string{"ilość", "ilosc"},
	}
}

func newTestLoader() *Loader {
	return New(csvparser.DefaultSettings(), zerolog.Nop())
}

func TestDetectKind(t *testing.T) {
	cases := []struct {
		path string
		want types.DocumentKind
	}{
		{"zamowienie.xlsx", types.KindSpreadsheet},
		{"zamowienie.XLSX", types.KindSpreadsheet},
		{"wydanie.xlsm", types.KindSpreadsheet},
		{"wz.csv", types.KindCSV},
		{"wz.txt", types.KindCSV},
		{"wz_123.pdf", types.KindPDF},
		{"WZ_123.PDF", types.KindPDF},
	}
	for _, c := range cases {
		got, err := DetectKind(c.path)
		if err != nil {
			t.Fatalf("DetectKind(%q): unexpected error: %v", c.path, err)
		}
		if got != c.want {
			t.Errorf("DetectKind(%q) = %q, want %q", c.path, got, c.want)
		}
	}
}

func TestDetectKindUnsupported(t *testing.T) {
	if _, err := DetectKind("notatka.docx"); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestLoadGrid(t *testing.T) {
	grid := [][]string{
		{"Symbol", "Ilość"},
		{"5901234123457", "12"},
		{"5909990123456", "3,5"},
	}
	out, err := newTestLoader().loadGrid("order.xlsx", grid, testRoles())
	if err != nil {
		t.Fatalf("loadGrid: %v", err)
	}
	if len(out.Records) != 2 {
		t.Fatalf("got %d records, want 2", len(out.Records))
	}
	if out.Records[1].Quantity != 3.5 {
		t.Errorf("second quantity = %v, want 3.5", out.Records[1].Quantity)
	}
	if out.Stats.TablesTried != 1 || out.Stats.Extracted != 2 {
		t.Errorf("stats = %+v", out.Stats)
	}
}

func TestLoadGridStructuralError(t *testing.T) {
	grid := [][]string{
		{"Kolumna A", "Kolumna B"},
		{"5901234123457", "12"},
	}
	_, err := newTestLoader().loadGrid("order.xlsx", grid, testRoles())
	var se *StructuralError
	if !errors.As(err, &se) {
		t.Fatalf("expected StructuralError, got %v", err)
	}
	var nf *columns.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("StructuralError should wrap NotFoundError, got %v", err)
	}
}

func TestLoadGridNoUsableData(t *testing.T) {
	grid := [][]string{
		{"Symbol", "Ilość"},
		{"not-an-ean", "12"},
	}
	_, err := newTestLoader().loadGrid("order.xlsx", grid, testRoles())
	var nu *NoUsableDataError
	if !errors.As(err, &nu) {
		t.Fatalf("expected NoUsableDataError, got %v", err)
	}
}
