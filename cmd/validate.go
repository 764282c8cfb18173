// =============================================================================
// WZ Reconciliation Tool - Validate Command
// =============================================================================
//
// This file defines the 'validate' command, which checks the configuration
// file without processing any documents. Useful after editing synonym
// vocabularies or report settings.
//
// COMMAND USAGE:
//   wzrecon validate [--config <file>]
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lkosinski/wzrecon/internal/config"
)

// =============================================================================
// VALIDATE COMMAND DEFINITION
// =============================================================================

// validateCmd represents the 'validate' command.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration file without processing documents",
	Long: `The validate command loads the configuration file, fills in defaults and
checks it for problems: empty synonym vocabularies, malformed report fill
colours and unknown log levels. No documents are read.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate()
	},
}

// init registers the validate command with the root command.
func init() {
	rootCmd.AddCommand(validateCmd)
}

// =============================================================================
// VALIDATION
// =============================================================================

// runValidate loads and validates the configuration, then prints the
// effective synonym vocabularies so typos are easy to spot.
func runValidate() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	fmt.Println("Configuration OK")
	fmt.Println()
	fmt.Printf("  Identifier synonyms:        %v\n", cfg.Synonyms.Identifier)
	fmt.Printf("  Quantity synonyms:          %v\n", cfg.Synonyms.Quantity)
	fmt.Printf("  Order quantity synonyms:    %v\n", cfg.Synonyms.OrderQuantity)
	fmt.Printf("  Delivery quantity synonyms: %v\n", cfg.Synonyms.DeliveryQuantity)
	fmt.Printf("  CSV:                        delimiter %q, encoding %s\n", cfg.CSV.Delimiter, cfg.CSV.Encoding)
	fmt.Printf("  Report sheet:               %s\n", cfg.Report.SheetName)
	fmt.Printf("  Report output:              %s\n", cfg.Report.OutputDir)
	return nil
}
