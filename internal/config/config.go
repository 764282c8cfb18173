// =============================================================================
// WZ Reconciliation Tool - Configuration Module
// =============================================================================
//
// This module loads and validates the application configuration. Everything
// that varies between deployments is data, not code:
//
//   - the synonym vocabularies for the identifier and quantity columns
//     (each warehouse system spells its headers differently),
//   - the hint tokens for the split-quantity PDF layout,
//   - CSV delimiter and encoding,
//   - report appearance and output location,
//   - log level.
//
// The defaults reproduce the vocabularies observed across the supported
// ERP/warehouse systems, so the tool runs without any configuration file.
// A provided file overrides per field; empty fields keep their defaults.
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/lkosinski/wzrecon/internal/columns"
	"github.com/lkosinski/wzrecon/internal/types"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config is the full application configuration.
type Config struct {
	// Synonyms are the header vocabularies for column resolution.
	Synonyms SynonymsConfig `yaml:"synonyms"`

	// CSV controls parsing of delimited text exports.
	CSV CSVConfig `yaml:"csv"`

	// Report controls the generated XLSX report.
	Report ReportConfig `yaml:"report"`

	// Logging controls log verbosity.
	Logging LoggingConfig `yaml:"logging"`
}

// SynonymsConfig holds the header vocabularies. The two document roles use
// overlapping sets: both share Identifier and Quantity, and each side adds
// its own quantity spellings.
type SynonymsConfig struct {
	// Identifier is the synonym set for the product-code column.
	// Default: symbol, kod ean, ean, kod produktu, gtin.
	Identifier []string `yaml:"identifier"`

	// Quantity is the shared synonym set for the quantity column.
	Quantity []string `yaml:"quantity"`

	// OrderQuantity are additional quantity spellings seen on order
	// documents ("zamówiona ilość").
	OrderQuantity []string `yaml:"order_quantity"`

	// DeliveryQuantity are additional quantity spellings seen on delivery
	// notes ("wydana ilość").
	DeliveryQuantity []string `yaml:"delivery_quantity"`

	// ExpiryHints mark quantity headers glued to an expiry column by PDF
	// text wrapping (split-quantity layout, integer part).
	ExpiryHints []string `yaml:"expiry_hints"`

	// WeightHints mark the weight column carrying the fractional part of
	// a split quantity.
	WeightHints []string `yaml:"weight_hints"`
}

// CSVConfig mirrors csvparser.Settings in the configuration file.
type CSVConfig struct {
	// Delimiter separates fields. Default: ";".
	Delimiter string `yaml:"delimiter"`

	// Encoding is the file character set. Default: "windows-1250".
	Encoding string `yaml:"encoding"`
}

// ReportConfig controls the generated XLSX report.
type ReportConfig struct {
	// SheetName is the report sheet name. Default: "Porównanie".
	SheetName string `yaml:"sheet_name"`

	// OKFill is the RGB fill for matching rows. Default: "C6EFCE".
	OKFill string `yaml:"ok_fill"`

	// ProblemFill is the RGB fill for every other row. Default: "FFC7CE".
	ProblemFill string `yaml:"problem_fill"`

	// OutputDir is the directory for generated reports. Default: ".".
	OutputDir string `yaml:"output_dir"`

	// NameFormat is the report file name pattern. Placeholders:
	//   {timestamp} - generation time (YYYYMMDD_HHMMSS)
	//   {uuid}      - a random UUID
	// Default: "raport_{timestamp}_{uuid}.xlsx".
	NameFormat string `yaml:"name_format"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	// Level is the minimum level: "debug", "info", "warn" or "error".
	// Default: "info".
	Level string `yaml:"level"`
}

// =============================================================================
// LOADING
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads a YAML configuration file, fills defaults and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// applyDefaults fills every unset field with its built-in default.
func applyDefaults(cfg *Config) {
	if len(cfg.Synonyms.Identifier) == 0 {
		cfg.Synonyms.Identifier = []string{
			"Symbol", "kod ean", "ean", "kod produktu", "gtin",
		}
	}
	if len(cfg.Synonyms.Quantity) == 0 {
		cfg.Synonyms.Quantity = []string{
			"Ilość", "Ilosc", "Quantity", "Qty", "sztuki",
		}
	}
	if len(cfg.Synonyms.OrderQuantity) == 0 {
		cfg.Synonyms.OrderQuantity = []string{
			"ilość sztuk zamówiona", "zamówiona ilość",
		}
	}
	if len(cfg.Synonyms.DeliveryQuantity) == 0 {
		cfg.Synonyms.DeliveryQuantity = []string{
			"wydana ilość", "ilość wydana",
		}
	}
	if len(cfg.Synonyms.ExpiryHints) == 0 {
		cfg.Synonyms.ExpiryHints = []string{
			"ważności", "waznosci", "termin", "przydatności",
		}
	}
	if len(cfg.Synonyms.WeightHints) == 0 {
		cfg.Synonyms.WeightHints = []string{"waga", "weight"}
	}

	if cfg.CSV.Delimiter == "" {
		cfg.CSV.Delimiter = ";"
	}
	if cfg.CSV.Encoding == "" {
		cfg.CSV.Encoding = "windows-1250"
	}

	if cfg.Report.SheetName == "" {
		cfg.Report.SheetName = "Porównanie"
	}
	if cfg.Report.OKFill == "" {
		cfg.Report.OKFill = "C6EFCE"
	}
	if cfg.Report.ProblemFill == "" {
		cfg.Report.ProblemFill = "FFC7CE"
	}
	if cfg.Report.OutputDir == "" {
		cfg.Report.OutputDir = "."
	}
	if cfg.Report.NameFormat == "" {
		cfg.Report.NameFormat = "raport_{timestamp}_{uuid}.xlsx"
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// rgbPattern matches a 6-digit hex RGB value without the leading '#'.
var rgbPattern = regexp.MustCompile(`^[0-9A-Fa-f]{6}$`)

// Validate checks a filled configuration. Exposed separately so the
// validate command can check a file without running the pipeline.
func Validate(cfg *Config) error {
	if len(cfg.Synonyms.Identifier) == 0 {
		return fmt.Errorf("synonyms.identifier must not be empty")
	}
	if len(cfg.Synonyms.Quantity) == 0 {
		return fmt.Errorf("synonyms.quantity must not be empty")
	}
	if !rgbPattern.MatchString(cfg.Report.OKFill) {
		return fmt.Errorf("report.ok_fill %q is not a 6-digit hex RGB value", cfg.Report.OKFill)
	}
	if !rgbPattern.MatchString(cfg.Report.ProblemFill) {
		return fmt.Errorf("report.problem_fill %q is not a 6-digit hex RGB value", cfg.Report.ProblemFill)
	}
	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", cfg.Logging.Level)
	}
	return nil
}

// =============================================================================
// ROLE VOCABULARIES
// =============================================================================

// RolesFor builds the column-resolver synonym sets for one document role.
// Both roles share the base vocabularies; each side appends its own
// quantity spellings.
func (c *Config) RolesFor(role types.DocumentRole) columns.Roles {
	quantity := append([]string{}, c.Synonyms.Quantity...)
	switch role {
	case types.RoleOrder:
		quantity = append(quantity, c.Synonyms.OrderQuantity...)
	case types.RoleDeliveryNote:
		quantity = append(quantity, c.Synonyms.DeliveryQuantity...)
	}
	return columns.Roles{
		Identifier:  append([]string{}, c.Synonyms.Identifier...),
		Quantity:    quantity,
		ExpiryHints: append([]string{}, c.Synonyms.ExpiryHints...),
		WeightHints: append([]string{}, c.Synonyms.WeightHints...),
	}
}
