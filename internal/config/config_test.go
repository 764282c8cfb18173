package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lkosinski/wzrecon/internal/types"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := Validate(cfg); err != nil {
		t.Fatalf("default configuration invalid: %v", err)
	}
	if cfg.Report.SheetName != "Porównanie" {
		t.Errorf("default sheet name = %q", cfg.Report.SheetName)
	}
	if cfg.CSV.Encoding != "windows-1250" {
		t.Errorf("default CSV encoding = %q", cfg.CSV.Encoding)
	}
}

func TestLoadOverridesAndDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
synonyms:
  identifier: ["indeks"]
report:
  sheet_name: Raport
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(cfg.Synonyms.Identifier) != 1 || cfg.Synonyms.Identifier[0] != "indeks" {
		t.Errorf("identifier synonyms = %v", cfg.Synonyms.Identifier)
	}
	if cfg.Report.SheetName != "Raport" {
		t.Errorf("sheet name = %q", cfg.Report.SheetName)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %q", cfg.Logging.Level)
	}
	// Untouched fields keep defaults.
	if len(cfg.Synonyms.Quantity) == 0 {
		t.Error("quantity synonyms lost their default")
	}
	if cfg.Report.OKFill != "C6EFCE" {
		t.Errorf("ok fill = %q", cfg.Report.OKFill)
	}
}

func TestLoadRejectsBadFill(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("report:\n  ok_fill: \"#zzz\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed fill color")
	}
}

func TestLoadRejectsBadLogLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("logging:\n  level: loud\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown log level")
	}
}

func TestRolesForVocabularies(t *testing.T) {
	cfg := Default()

	order := cfg.RolesFor(types.RoleOrder)
	if !contains(order.Quantity, "zamówiona ilość") {
		t.Error("order role is missing its extra quantity spellings")
	}
	if contains(order.Quantity, "wydana ilość") {
		t.Error("order role leaked delivery-note spellings")
	}

	wz := cfg.RolesFor(types.RoleDeliveryNote)
	if !contains(wz.Quantity, "wydana ilość") {
		t.Error("delivery role is missing its extra quantity spellings")
	}
	// Shared base vocabulary present on both sides.
	if !contains(order.Quantity, "Qty") || !contains(wz.Quantity, "Qty") {
		t.Error("shared quantity vocabulary missing from a role")
	}
}

func contains(ss []string, want string) bool {
	for _, s := range ss {
		if s == want {
			return true
		}
	}
	return false
}
