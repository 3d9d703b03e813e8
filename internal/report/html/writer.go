// Package html provides HTML report generation for the inventory dashboard
// tool. It implements the report.ReportWriter interface to generate .html
// files with the metrics overview, the inventory detail and the alert list.
package html

import (
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"inventory-dashboard/internal/model"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

// resolvedDisplayLimit caps how many resolved alerts the report shows.
const resolvedDisplayLimit = 5

// Writer implements report.ReportWriter for HTML format.
type Writer struct {
	timezone     *time.Location
	templatePath string // User-defined template path (optional)
}

// TemplateData holds all data passed to the HTML template.
type TemplateData struct {
	Title          string
	RefreshedAt    string
	Duration       string
	Metrics        *model.InventoryMetrics
	AlertSummary   *model.AlertSummary
	Records        []RecordData
	ActiveAlerts   []AlertData
	ResolvedAlerts []AlertData
	Version        string
	GeneratedAt    string
}

// RecordData represents one inventory record formatted for template rendering.
type RecordData struct {
	ID          string
	Name        string
	Category    string
	Price       string
	Stock       int
	QueryCount  int
	LastUpdated string
	StockClass  string // CSS class: "out", "low" or ""
}

// AlertData represents one alert formatted for template rendering.
type AlertData struct {
	ID            string
	Kind          string
	Severity      string
	SeverityClass string
	Title         string
	Message       string
	SubjectLabel  string
	Value         string
	Threshold     string
	CreatedAt     string
	Resolved      bool
}

// NewWriter creates a new HTML report writer.
// If timezone is nil, it defaults to Asia/Shanghai.
// templatePath is optional; if empty, the embedded default template is used.
func NewWriter(timezone *time.Location, templatePath string) *Writer {
	if timezone == nil {
		timezone, _ = time.LoadLocation("Asia/Shanghai")
	}
	return &Writer{
		timezone:     timezone,
		templatePath: templatePath,
	}
}

// Format returns the format identifier for this writer.
func (w *Writer) Format() string {
	return "html"
}

// Write generates an HTML report from the dashboard result.
func (w *Writer) Write(result *model.DashboardResult, outputPath string) error {
	if result == nil {
		return fmt.Errorf("dashboard result is nil")
	}

	// Ensure output path has .html extension
	if !strings.HasSuffix(strings.ToLower(outputPath), ".html") {
		outputPath = outputPath + ".html"
	}

	tmpl, err := w.loadTemplate()
	if err != nil {
		return fmt.Errorf("failed to load template: %w", err)
	}

	data := w.buildTemplateData(result)

	// Ensure output directory exists
	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	if err := tmpl.Execute(out, data); err != nil {
		return fmt.Errorf("failed to render template: %w", err)
	}

	return nil
}

// loadTemplate loads the user-defined template if configured, otherwise the
// embedded default.
func (w *Writer) loadTemplate() (*template.Template, error) {
	if w.templatePath != "" {
		tmpl, err := template.ParseFiles(w.templatePath)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", w.templatePath, err)
		}
		return tmpl, nil
	}

	tmpl, err := template.ParseFS(embeddedTemplates, "templates/report.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded template: %w", err)
	}
	return tmpl, nil
}

// buildTemplateData converts a dashboard result into template-friendly data.
func (w *Writer) buildTemplateData(result *model.DashboardResult) *TemplateData {
	metrics := result.Metrics
	if metrics == nil {
		metrics = &model.InventoryMetrics{}
	}

	data := &TemplateData{
		Title:        "库存监控报告",
		RefreshedAt:  result.RefreshedAt.In(w.timezone).Format("2006-01-02 15:04:05"),
		Duration:     fmt.Sprintf("%.1fs", result.Duration.Seconds()),
		Metrics:      metrics,
		AlertSummary: result.AlertSummary,
		Version:      result.Version,
		GeneratedAt:  time.Now().In(w.timezone).Format("2006-01-02 15:04:05"),
	}

	for _, record := range result.Records {
		stockClass := ""
		if record.Stock == 0 {
			stockClass = "out"
		} else if record.Stock <= 10 {
			stockClass = "low"
		}
		data.Records = append(data.Records, RecordData{
			ID:          record.ID,
			Name:        record.Name,
			Category:    record.Category,
			Price:       fmt.Sprintf("%.2f", record.Price),
			Stock:       record.Stock,
			QueryCount:  record.QueryCount,
			LastUpdated: record.LastUpdated,
			StockClass:  stockClass,
		})
	}

	for _, alert := range result.ActiveAlerts() {
		data.ActiveAlerts = append(data.ActiveAlerts, w.buildAlertData(alert))
	}

	resolved := result.ResolvedAlerts()
	if len(resolved) > resolvedDisplayLimit {
		resolved = resolved[:resolvedDisplayLimit]
	}
	for _, alert := range resolved {
		data.ResolvedAlerts = append(data.ResolvedAlerts, w.buildAlertData(alert))
	}

	return data
}

// buildAlertData converts one alert into template-friendly data.
func (w *Writer) buildAlertData(alert *model.Alert) AlertData {
	return AlertData{
		ID:            alert.ID,
		Kind:          string(alert.Kind),
		Severity:      string(alert.Severity),
		SeverityClass: "severity-" + string(alert.Severity),
		Title:         alert.Title,
		Message:       alert.Message,
		SubjectLabel:  alert.SubjectLabel,
		Value:         fmt.Sprintf("%.1f", alert.Value),
		Threshold:     fmt.Sprintf("%.1f", alert.Threshold),
		CreatedAt:     alert.CreatedAt.In(w.timezone).Format("2006-01-02 15:04:05"),
		Resolved:      alert.Resolved,
	}
}
