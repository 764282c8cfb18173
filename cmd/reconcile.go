// =============================================================================
// WZ Reconciliation Tool - Reconcile Command
// =============================================================================
//
// This file defines the 'reconcile' command, the main command of the tool.
// It orchestrates the whole comparison pipeline.
//
// COMMAND USAGE:
//   wzrecon reconcile --order <file> --wz <file> [flags]
//
// FLAGS:
//   --order  : Path to the purchase order (.xlsx, .csv or .pdf)
//   --wz     : Path to the delivery note (.xlsx, .csv or .pdf)
//   --output : Directory for the generated report (overrides configuration)
//
// PROCESSING PIPELINE:
//   1. Load configuration and set up logging
//   2. Extract product lines from the order document
//   3. Extract product lines from the delivery note
//   4. Aggregate each side by product code
//   5. Full-outer-join the aggregates and classify every line
//   6. Write the colour-coded XLSX report
//   7. Print the console summary
//
// The two documents are processed one after the other. A document that
// yields no usable data aborts the run before any report is written.
//
// =============================================================================

package cmd

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/lkosinski/wzrecon/internal/config"
	"github.com/lkosinski/wzrecon/internal/csvparser"
	"github.com/lkosinski/wzrecon/internal/loader"
	"github.com/lkosinski/wzrecon/internal/recon"
	"github.com/lkosinski/wzrecon/internal/report"
	"github.com/lkosinski/wzrecon/internal/types"
	"github.com/lkosinski/wzrecon/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// orderPath is the path to the purchase order document.
var orderPath string

// wzPath is the path to the delivery note document.
var wzPath string

// outputDir overrides the configured report output directory.
var outputDir string

// =============================================================================
// RECONCILE COMMAND DEFINITION
// =============================================================================

// reconcileCmd represents the 'reconcile' command.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Compare an order against a delivery note and generate the report",
	Long: `The reconcile command extracts product lines from the order and the
delivery note, joins them by product code and writes an XLSX report listing
every line with its status:

  Różni się          - present in both documents with differing quantities
  Brak we WZ         - ordered but missing from the delivery note
  Brak w zamówieniu  - delivered but missing from the order
  OK                 - quantities match

Rows with invalid product codes and quantities that cannot be parsed are
dropped from the comparison and counted in the console summary.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runReconcile()
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the reconcile command with the root command and sets up
// its flags.
func init() {
	rootCmd.AddCommand(reconcileCmd)

	reconcileCmd.Flags().StringVar(
		&orderPath,
		"order",
		"",
		"Path to the purchase order (.xlsx, .csv or .pdf)",
	)

	reconcileCmd.Flags().StringVar(
		&wzPath,
		"wz",
		"",
		"Path to the delivery note (.xlsx, .csv or .pdf)",
	)

	reconcileCmd.Flags().StringVar(
		&outputDir,
		"output",
		"",
		"Directory for the generated report (overrides configuration)",
	)

	reconcileCmd.MarkFlagRequired("order")
	reconcileCmd.MarkFlagRequired("wz")
}

// =============================================================================
// RECONCILE PIPELINE
// =============================================================================

// runReconcile executes the whole comparison pipeline.
func runReconcile() error {
	start := time.Now()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := setupLogger(cfg)

	if outputDir != "" {
		cfg.Report.OutputDir = outputDir
	}

	ld := loader.New(csvparser.Settings{
		Delimiter: cfg.CSV.Delimiter,
		Encoding:  cfg.CSV.Encoding,
	}, log)

	// ==========================================================================
	// EXTRACTION
	// ==========================================================================

	order, err := loadDocument(ld, cfg, orderPath, types.RoleOrder, log)
	if err != nil {
		return err
	}
	wz, err := loadDocument(ld, cfg, wzPath, types.RoleDeliveryNote, log)
	if err != nil {
		return err
	}

	// ==========================================================================
	// COMPARISON
	// ==========================================================================

	rows := recon.Reconcile(
		recon.Aggregate(order.Records),
		recon.Aggregate(wz.Records),
	)
	summary := recon.Summarize(rows)

	// ==========================================================================
	// REPORT
	// ==========================================================================

	reportPath, err := utils.ReportPath(cfg.Report.OutputDir, cfg.Report.NameFormat)
	if err != nil {
		return err
	}
	if err := report.NewWriter(cfg.Report).WriteFile(rows, reportPath); err != nil {
		return err
	}
	log.Info().Str("path", reportPath).Msg("report written")

	printSummary(summary, order.Stats, wz.Stats, reportPath, time.Since(start))
	return nil
}

// loadDocument extracts one document with the synonym vocabulary of its
// role.
func loadDocument(ld *loader.Loader, cfg *config.Config, path string, role types.DocumentRole, log zerolog.Logger) (*loader.Outcome, error) {
	kind, err := loader.DetectKind(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	log.Info().
		Str("document", path).
		Str("kind", string(kind)).
		Str("role", string(role)).
		Msg("extracting document")

	out, err := ld.Load(path, kind, cfg.RolesFor(role))
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("document", path).
		Int("records", len(out.Records)).
		Int("dropped", out.Stats.DroppedRows).
		Int("unparsed", out.Stats.UnparsedQuantities).
		Msg("extraction finished")
	return out, nil
}

// =============================================================================
// CONSOLE SUMMARY
// =============================================================================

// printSummary writes the human-readable run summary to stdout.
func printSummary(s recon.Summary, orderStats, wzStats types.ExtractionStats, reportPath string, elapsed time.Duration) {
	fmt.Println()
	fmt.Println("=== Podsumowanie ===")
	fmt.Printf("  Pozycje:            %d\n", s.Total)
	fmt.Printf("  OK:                 %d\n", s.Counts[recon.StatusOK])
	fmt.Printf("  Różni się:          %d\n", s.Counts[recon.StatusMismatch])
	fmt.Printf("  Brak we WZ:         %d\n", s.Counts[recon.StatusMissingFromDelivery])
	fmt.Printf("  Brak w zamówieniu:  %d\n", s.Counts[recon.StatusMissingFromOrder])

	dropped := orderStats.DroppedRows + wzStats.DroppedRows
	unparsed := orderStats.UnparsedQuantities + wzStats.UnparsedQuantities
	if dropped > 0 || unparsed > 0 {
		fmt.Println()
		fmt.Printf("  Pominięte wiersze (zły kod):    %d\n", dropped)
		fmt.Printf("  Pominięte wiersze (zła ilość):  %d\n", unparsed)
	}

	fmt.Println()
	if s.AllOK() && s.Total > 0 {
		fmt.Println("  Wynik: dokumenty zgodne")
	} else {
		fmt.Println("  Wynik: wykryto rozbieżności")
	}
	fmt.Printf("  Raport: %s\n", reportPath)
	fmt.Printf("  Czas:   %s\n", elapsed.Round(time.Millisecond))
}
