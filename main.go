// =============================================================================
// WZ Reconciliation Tool - Main Entry Point
// =============================================================================
//
// This is the main entry point for the WZ Reconciliation Tool CLI. It
// initializes the Cobra CLI framework and delegates command execution to the
// cmd package.
//
// USAGE:
//   wzrecon reconcile   - Compare an order against a delivery note
//   wzrecon validate    - Validate the configuration without processing
//   wzrecon version     - Display the application version
//
// ARCHITECTURE:
//   This application follows a modular design where:
//   - cmd/           : Contains all CLI command definitions (Cobra)
//   - internal/      : Contains core business logic (not for external import)
//   - pkg/           : Contains shared utilities
//
// =============================================================================

package main

import (
	"github.com/lkosinski/wzrecon/cmd"
)

// main is the entry point of the application.
// It simply calls the Execute function from the cmd package, which
// initializes and runs the Cobra CLI.
func main() {
	cmd.Execute()
}
