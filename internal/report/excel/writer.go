// Package excel provides Excel report generation for the inventory dashboard
// tool. It implements the report.ReportWriter interface to generate .xlsx
// files with the metrics overview, the inventory detail and the alert list.
package excel

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"inventory-dashboard/internal/model"
)

const (
	// Sheet names
	sheetOverview  = "库存概览"
	sheetInventory = "库存明细"
	sheetAlerts    = "告警汇总"

	// Default sheet to remove
	defaultSheet = "Sheet1"

	// Colors for conditional formatting (RGB without #)
	colorCriticalBg = "FFC7CE" // Red background for critical
	colorCriticalFg = "9C0006" // Dark red text for critical
	colorHighBg     = "FCD5B4" // Orange background for high
	colorHighFg     = "974706" // Dark orange text for high
	colorMediumBg   = "FFEB9C" // Yellow background for medium
	colorMediumFg   = "9C6500" // Dark yellow text for medium
	colorLowBg      = "DCE6F1" // Blue background for low
	colorLowFg      = "1F497D" // Dark blue text for low
	colorResolvedBg = "C6EFCE" // Green background for resolved
	colorResolvedFg = "006100" // Dark green text for resolved
	colorHeaderBg   = "4472C4" // Blue background for header
	colorHeaderFg   = "FFFFFF" // White text for header

	// Column widths
	defaultColWidth = 15.0
	wideColWidth    = 30.0
	narrowColWidth  = 10.0

	// resolvedDisplayLimit caps how many resolved alerts the report shows.
	// The store keeps the full set; this is purely presentational.
	resolvedDisplayLimit = 5
)

// Writer implements report.ReportWriter for Excel format.
type Writer struct {
	timezone *time.Location
}

// NewWriter creates a new Excel report writer.
// If timezone is nil, it defaults to Asia/Shanghai.
func NewWriter(timezone *time.Location) *Writer {
	if timezone == nil {
		timezone, _ = time.LoadLocation("Asia/Shanghai")
	}
	return &Writer{
		timezone: timezone,
	}
}

// Format returns the format identifier for this writer.
func (w *Writer) Format() string {
	return "excel"
}

// Write generates an Excel report from the dashboard result.
func (w *Writer) Write(result *model.DashboardResult, outputPath string) error {
	if result == nil {
		return fmt.Errorf("dashboard result is nil")
	}

	// Ensure output path has .xlsx extension
	if !strings.HasSuffix(strings.ToLower(outputPath), ".xlsx") {
		outputPath = outputPath + ".xlsx"
	}

	// Create new Excel file
	f := excelize.NewFile()
	defer f.Close()

	// Create worksheets
	if err := w.createOverviewSheet(f, result); err != nil {
		return fmt.Errorf("failed to create overview sheet: %w", err)
	}

	if err := w.createInventorySheet(f, result); err != nil {
		return fmt.Errorf("failed to create inventory sheet: %w", err)
	}

	if err := w.createAlertsSheet(f, result); err != nil {
		return fmt.Errorf("failed to create alerts sheet: %w", err)
	}

	// Remove default Sheet1
	f.DeleteSheet(defaultSheet)

	// Set active sheet to overview
	idx, _ := f.GetSheetIndex(sheetOverview)
	f.SetActiveSheet(idx)

	// Save the file
	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("failed to save Excel file: %w", err)
	}

	return nil
}

// headerStyle creates the shared header cell style.
func (w *Writer) headerStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: colorHeaderFg},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{colorHeaderBg}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
}

// severityStyle creates a fill style for the given alert severity.
func (w *Writer) severityStyle(f *excelize.File, severity model.AlertSeverity) (int, error) {
	var bg, fg string
	switch severity {
	case model.SeverityCritical:
		bg, fg = colorCriticalBg, colorCriticalFg
	case model.SeverityHigh:
		bg, fg = colorHighBg, colorHighFg
	case model.SeverityMedium:
		bg, fg = colorMediumBg, colorMediumFg
	default:
		bg, fg = colorLowBg, colorLowFg
	}
	return f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: fg},
		Fill: excelize.Fill{Type: "pattern", Color: []string{bg}, Pattern: 1},
	})
}

// createOverviewSheet creates the metrics overview worksheet.
func (w *Writer) createOverviewSheet(f *excelize.File, result *model.DashboardResult) error {
	if _, err := f.NewSheet(sheetOverview); err != nil {
		return err
	}

	metrics := result.Metrics
	if metrics == nil {
		metrics = &model.InventoryMetrics{}
	}

	// Title block
	f.SetCellValue(sheetOverview, "A1", "库存概览")
	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err == nil {
		f.SetCellStyle(sheetOverview, "A1", "A1", titleStyle)
	}
	f.SetCellValue(sheetOverview, "A2", "刷新时间")
	f.SetCellValue(sheetOverview, "B2", result.RefreshedAt.In(w.timezone).Format("2006-01-02 15:04:05"))
	f.SetCellValue(sheetOverview, "A3", "耗时")
	f.SetCellValue(sheetOverview, "B3", fmt.Sprintf("%.1fs", result.Duration.Seconds()))
	if result.Version != "" {
		f.SetCellValue(sheetOverview, "A4", "工具版本")
		f.SetCellValue(sheetOverview, "B4", result.Version)
	}

	// Scalar metrics
	scalars := []struct {
		label string
		value interface{}
	}{
		{"商品总数", metrics.TotalProducts},
		{"库存总量", metrics.TotalStock},
		{"库存总价值", metrics.TotalValue},
		{"查询总次数", metrics.TotalQueries},
		{"缺货商品数", metrics.OutOfStockCount},
		{"低库存商品数", metrics.LowStockCount},
		{"缺货占比", fmt.Sprintf("%.1f%%", metrics.OutOfStockPct)},
		{"低库存占比", fmt.Sprintf("%.1f%%", metrics.LowStockPct)},
		{"单位库存价值", fmt.Sprintf("%.2f", metrics.AveragePrice)},
		{"平均查询次数", fmt.Sprintf("%.2f", metrics.AverageQueries)},
	}
	row := 6
	for _, s := range scalars {
		f.SetCellValue(sheetOverview, fmt.Sprintf("A%d", row), s.label)
		f.SetCellValue(sheetOverview, fmt.Sprintf("B%d", row), s.value)
		row++
	}

	// Top categories by product count
	row++
	headerStyle, _ := w.headerStyle(f)
	f.SetCellValue(sheetOverview, fmt.Sprintf("A%d", row), "分类（按商品数前 5）")
	f.SetCellValue(sheetOverview, fmt.Sprintf("B%d", row), "商品数")
	f.SetCellStyle(sheetOverview, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), headerStyle)
	row++
	for _, c := range metrics.TopCategoriesByCount {
		f.SetCellValue(sheetOverview, fmt.Sprintf("A%d", row), c.Category)
		f.SetCellValue(sheetOverview, fmt.Sprintf("B%d", row), c.Count)
		row++
	}

	// Stock by category
	row++
	f.SetCellValue(sheetOverview, fmt.Sprintf("A%d", row), "分类（按库存降序）")
	f.SetCellValue(sheetOverview, fmt.Sprintf("B%d", row), "库存")
	f.SetCellStyle(sheetOverview, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), headerStyle)
	row++
	for _, c := range metrics.StockByCategory {
		f.SetCellValue(sheetOverview, fmt.Sprintf("A%d", row), c.Category)
		f.SetCellValue(sheetOverview, fmt.Sprintf("B%d", row), c.Stock)
		row++
	}

	f.SetColWidth(sheetOverview, "A", "A", wideColWidth)
	f.SetColWidth(sheetOverview, "B", "B", defaultColWidth)

	return nil
}

// createInventorySheet creates the inventory detail worksheet.
func (w *Writer) createInventorySheet(f *excelize.File, result *model.DashboardResult) error {
	if _, err := f.NewSheet(sheetInventory); err != nil {
		return err
	}

	headers := []string{"ID", "商品名称", "分类", "单价", "库存", "查询次数", "最后更新"}
	headerStyle, _ := w.headerStyle(f)
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheetInventory, col+"1", h)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	f.SetCellStyle(sheetInventory, "A1", lastCol+"1", headerStyle)

	outStyle, _ := w.severityStyle(f, model.SeverityCritical)
	lowStyle, _ := w.severityStyle(f, model.SeverityHigh)

	for i, record := range result.Records {
		row := i + 2
		f.SetCellValue(sheetInventory, fmt.Sprintf("A%d", row), record.ID)
		f.SetCellValue(sheetInventory, fmt.Sprintf("B%d", row), record.Name)
		f.SetCellValue(sheetInventory, fmt.Sprintf("C%d", row), record.Category)
		f.SetCellValue(sheetInventory, fmt.Sprintf("D%d", row), record.Price)
		f.SetCellValue(sheetInventory, fmt.Sprintf("E%d", row), record.Stock)
		f.SetCellValue(sheetInventory, fmt.Sprintf("F%d", row), record.QueryCount)
		f.SetCellValue(sheetInventory, fmt.Sprintf("G%d", row), record.LastUpdated)

		// Tint the stock cell for out-of-stock and low-stock rows
		if record.Stock == 0 {
			f.SetCellStyle(sheetInventory, fmt.Sprintf("E%d", row), fmt.Sprintf("E%d", row), outStyle)
		} else if record.Stock <= 10 {
			f.SetCellStyle(sheetInventory, fmt.Sprintf("E%d", row), fmt.Sprintf("E%d", row), lowStyle)
		}
	}

	f.SetColWidth(sheetInventory, "A", "A", defaultColWidth)
	f.SetColWidth(sheetInventory, "B", "B", wideColWidth)
	f.SetColWidth(sheetInventory, "C", "C", defaultColWidth)
	f.SetColWidth(sheetInventory, "D", "G", narrowColWidth)

	return nil
}

// createAlertsSheet creates the alerts worksheet: active alerts in generation
// order, then up to resolvedDisplayLimit resolved ones.
func (w *Writer) createAlertsSheet(f *excelize.File, result *model.DashboardResult) error {
	if _, err := f.NewSheet(sheetAlerts); err != nil {
		return err
	}

	headers := []string{"告警 ID", "类型", "级别", "标题", "对象", "当前值", "阈值", "消息", "状态"}
	headerStyle, _ := w.headerStyle(f)
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheetAlerts, col+"1", h)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	f.SetCellStyle(sheetAlerts, "A1", lastCol+"1", headerStyle)

	resolvedStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: colorResolvedFg},
		Fill: excelize.Fill{Type: "pattern", Color: []string{colorResolvedBg}, Pattern: 1},
	})

	row := 2
	writeAlert := func(alert *model.Alert) {
		f.SetCellValue(sheetAlerts, fmt.Sprintf("A%d", row), alert.ID)
		f.SetCellValue(sheetAlerts, fmt.Sprintf("B%d", row), string(alert.Kind))
		f.SetCellValue(sheetAlerts, fmt.Sprintf("C%d", row), string(alert.Severity))
		f.SetCellValue(sheetAlerts, fmt.Sprintf("D%d", row), alert.Title)
		f.SetCellValue(sheetAlerts, fmt.Sprintf("E%d", row), alert.SubjectLabel)
		f.SetCellValue(sheetAlerts, fmt.Sprintf("F%d", row), alert.Value)
		f.SetCellValue(sheetAlerts, fmt.Sprintf("G%d", row), alert.Threshold)
		f.SetCellValue(sheetAlerts, fmt.Sprintf("H%d", row), alert.Message)

		if alert.Resolved {
			f.SetCellValue(sheetAlerts, fmt.Sprintf("I%d", row), "已处理")
			f.SetCellStyle(sheetAlerts, fmt.Sprintf("A%d", row), fmt.Sprintf("I%d", row), resolvedStyle)
		} else {
			f.SetCellValue(sheetAlerts, fmt.Sprintf("I%d", row), "未处理")
			if style, err := w.severityStyle(f, alert.Severity); err == nil {
				f.SetCellStyle(sheetAlerts, fmt.Sprintf("C%d", row), fmt.Sprintf("C%d", row), style)
			}
		}
		row++
	}

	for _, alert := range result.ActiveAlerts() {
		writeAlert(alert)
	}

	resolved := result.ResolvedAlerts()
	if len(resolved) > resolvedDisplayLimit {
		resolved = resolved[:resolvedDisplayLimit]
	}
	for _, alert := range resolved {
		writeAlert(alert)
	}

	f.SetColWidth(sheetAlerts, "A", "A", wideColWidth)
	f.SetColWidth(sheetAlerts, "B", "E", defaultColWidth)
	f.SetColWidth(sheetAlerts, "F", "G", narrowColWidth)
	f.SetColWidth(sheetAlerts, "H", "H", wideColWidth)
	f.SetColWidth(sheetAlerts, "I", "I", narrowColWidth)

	return nil
}
