// =============================================================================
// WZ Reconciliation Tool - File Manager Utility
// =============================================================================
//
// This module provides the file-level plumbing around a reconciliation run:
//   - Output directory management
//   - Report file naming
//   - Small file helpers
//
// REPORT NAMING:
//   Report names come from a configurable format string so several runs in
//   the same directory never collide. The {uuid} placeholder guarantees
//   uniqueness even within one second.
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureDir creates the directory if it does not exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// =============================================================================
// REPORT FILE NAMING
// =============================================================================

// GenerateReportFileName expands a report name format string.
//
// PARAMETERS:
//   - format: The format string for the file name.
//     Placeholders:
//     {uuid}      - A random UUID
//     {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//     {date}      - Current date (YYYYMMDD)
//     {time}      - Current time (HHMMSS)
//
// RETURNS:
//   - The generated file name, always with an .xlsx extension.
//
// EXAMPLE:
//
//	format: "raport_{timestamp}_{uuid}.xlsx"
//	output: "raport_20240115_143022_a1b2c3d4-e5f6-7890-abcd-ef1234567890.xlsx"
func GenerateReportFileName(format string) string {
	now := time.Now()

	replacements := map[string]string{
		"{uuid}":      uuid.New().String(),
		"{timestamp}": now.Format("20060102_150405"),
		"{date}":      now.Format("20060102"),
		"{time}":      now.Format("150405"),
	}

	result := format
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	if !strings.HasSuffix(strings.ToLower(result), ".xlsx") {
		result += ".xlsx"
	}

	return result
}

// ReportPath joins the output directory with a freshly generated report
// name, creating the directory when needed.
func ReportPath(outputDir, format string) (string, error) {
	if err := EnsureDir(outputDir); err != nil {
		return "", err
	}
	return filepath.Join(outputDir, GenerateReportFileName(format)), nil
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// GetFileSize returns the size of a file in bytes.
func GetFileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}
