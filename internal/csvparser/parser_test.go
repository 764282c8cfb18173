package csvparser

import (
	"bytes"
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

func TestParseReaderUTF8(t *testing.T) {
	in := "Symbol;Nazwa;Ilość\n5029040012281;Herbata;10\n"
	grid, err := ParseReader(strings.NewReader(in), Settings{Delimiter: ";", Encoding: "utf-8"})
	if err != nil {
		t.Fatalf("ParseReader failed: %v", err)
	}
	if len(grid) != 2 {
		t.Fatalf("got %d rows, want 2", len(grid))
	}
	if grid[0][2] != "Ilość" {
		t.Errorf("header cell = %q, want Ilość", grid[0][2])
	}
}

func TestParseReaderWindows1250(t *testing.T) {
	// Encode a Polish header the way a legacy ERP export would.
	enc := charmap.Windows1250.NewEncoder()
	encoded, err := enc.String("Symbol;Ilość\n5029040012281;4,00\n")
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}

	grid, err := ParseReader(bytes.NewReader([]byte(encoded)), DefaultSettings())
	if err != nil {
		t.Fatalf("ParseReader failed: %v", err)
	}
	if grid[0][1] != "Ilość" {
		t.Errorf("decoded header = %q, want Ilość", grid[0][1])
	}
	if grid[1][1] != "4,00" {
		t.Errorf("quantity cell = %q, want 4,00", grid[1][1])
	}
}

func TestParseReaderDelimiterAliases(t *testing.T) {
	in := "Symbol\tIlość\n5029040012281\t2\n"
	grid, err := ParseReader(strings.NewReader(in), Settings{Delimiter: "tab", Encoding: "utf-8"})
	if err != nil {
		t.Fatalf("ParseReader failed: %v", err)
	}
	if len(grid[0]) != 2 {
		t.Errorf("got %d columns, want 2", len(grid[0]))
	}
}

func TestParseReaderUnsupportedEncoding(t *testing.T) {
	_, err := ParseReader(strings.NewReader("a;b\n"), Settings{Delimiter: ";", Encoding: "ebcdic"})
	if err == nil {
		t.Fatal("expected error for unsupported encoding")
	}
}

func TestParseReaderEmpty(t *testing.T) {
	_, err := ParseReader(strings.NewReader(""), Settings{Delimiter: ";", Encoding: "utf-8"})
	if err == nil {
		t.Fatal("expected error for empty input")
	}
}
