// Package report provides report generation functionality for the inventory
// dashboard tool. It defines the ReportWriter interface and provides
// implementations for different output formats including Excel and HTML.
package report

import (
	"inventory-dashboard/internal/model"
)

// ReportWriter defines the interface for generating dashboard reports.
// Implementations should be able to write refresh results to files
// in their specific format (Excel, HTML, etc.).
type ReportWriter interface {
	// Write generates a report from the dashboard result and saves it
	// to the specified output path. The path should include the file
	// extension appropriate for the format.
	//
	// Returns an error if the report generation or file writing fails.
	Write(result *model.DashboardResult, outputPath string) error

	// Format returns the format identifier for this writer.
	// Common values are "excel" and "html".
	Format() string
}
