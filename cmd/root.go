// =============================================================================
// WZ Reconciliation Tool - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands (like 'reconcile', 'validate')
// are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (wzrecon)
//   ├── reconcileCmd (wzrecon reconcile)
//   ├── validateCmd (wzrecon validate)
//   └── versionCmd (wzrecon version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose)
//   2. Loading the YAML configuration
//   3. Setting up logging
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/lkosinski/wzrecon/internal/config"
	"github.com/lkosinski/wzrecon/pkg/utils"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "wzrecon",

	Short: "WZ Reconciliation Tool - Compare warehouse delivery notes against orders",

	Long: `WZ Reconciliation Tool compares a purchase order against the matching
warehouse delivery note (WZ) and reports every product line that differs.

Both documents can arrive as XLSX spreadsheets, CSV exports or PDF printouts.
The tool locates the product-code and quantity columns under the many header
spellings suppliers use, repairs locale-formatted numbers, aggregates repeated
lines and produces a colour-coded XLSX comparison report.

Example Usage:
  wzrecon reconcile --order zamowienie.xlsx --wz wz_123.pdf
  wzrecon reconcile --order order.csv --wz wz.xlsx --output ./raporty
  wzrecon validate                          # Check configuration without processing`,

	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is provided, print the help message.
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the global flags.
func init() {
	// Persistent flags are available to this command and all subcommands.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file (default is config.yaml)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// =============================================================================
// SHARED COMMAND HELPERS
// =============================================================================

// loadConfig reads the configuration file when present and falls back to
// built-in defaults when it is not. An explicit --config path that does not
// exist is only tolerated when it is the default name, so typos fail loudly.
func loadConfig() (*config.Config, error) {
	if !utils.FileExists(cfgFile) {
		if cfgFile == "config.yaml" {
			return config.Default(), nil
		}
		return nil, fmt.Errorf("config file %s does not exist", cfgFile)
	}
	return config.Load(cfgFile)
}

// setupLogger builds the process logger honoring the configured level and
// the --verbose override.
func setupLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	if verbose {
		level = zerolog.DebugLevel
	}

	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
