package excel

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"inventory-dashboard/internal/model"
)

// createTestResult builds a small but complete dashboard result
func createTestResult() *model.DashboardResult {
	now := time.Now()
	result := model.NewDashboardResult(now)
	result.Version = "test"
	result.Records = []model.InventoryRecord{
		{ID: "item-1", Name: "Hammer", Category: "Tools", Price: 99.5, Stock: 0, QueryCount: 12, LastUpdated: "2026-08-01"},
		{ID: "item-2", Name: "Drill", Category: "Tools", Price: 250, Stock: 8, QueryCount: 60, LastUpdated: "2026-08-02"},
		{ID: "item-3", Name: "Chair", Category: "Furniture", Price: 45, Stock: 30, QueryCount: 3, LastUpdated: "2026-08-03"},
	}
	result.Metrics = &model.InventoryMetrics{
		TotalProducts:   3,
		TotalStock:      38,
		TotalValue:      3350,
		OutOfStockCount: 1,
		LowStockCount:   1,
		TopCategoriesByCount: []model.CategoryCount{
			{Category: "Tools", Count: 2},
			{Category: "Furniture", Count: 1},
		},
		StockByCategory: []model.CategoryStock{
			{Category: "Furniture", Stock: 30},
			{Category: "Tools", Stock: 8},
		},
	}
	result.Alerts = []*model.Alert{
		{ID: "stock-item-1", Kind: model.AlertKindStockOut, Severity: model.SeverityCritical,
			Title: "商品缺货", Message: "Hammer 已无库存", SubjectID: "item-1", SubjectLabel: "Hammer", CreatedAt: now},
		{ID: "interest-item-2", Kind: model.AlertKindHighInterest, Severity: model.SeverityMedium,
			Title: "高关注度", Message: "Drill 已被查询 60 次", SubjectID: "item-2", SubjectLabel: "Drill",
			Value: 60, Threshold: 50, CreatedAt: now, Resolved: true},
	}
	result.Finalize(now.Add(2 * time.Second))
	return result
}

func TestWriter_Format(t *testing.T) {
	w := NewWriter(nil)
	if w.Format() != "excel" {
		t.Errorf("Format() = %s, want excel", w.Format())
	}
}

func TestWriter_Write(t *testing.T) {
	w := NewWriter(nil)
	outputPath := filepath.Join(t.TempDir(), "report.xlsx")

	if err := w.Write(createTestResult(), outputPath); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	// Verify the file exists and has the expected sheets
	f, err := excelize.OpenFile(outputPath)
	if err != nil {
		t.Fatalf("failed to open generated file: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	wantSheets := map[string]bool{"库存概览": false, "库存明细": false, "告警汇总": false}
	for _, s := range sheets {
		if _, ok := wantSheets[s]; ok {
			wantSheets[s] = true
		}
		if s == "Sheet1" {
			t.Error("default Sheet1 should be removed")
		}
	}
	for name, found := range wantSheets {
		if !found {
			t.Errorf("missing sheet %s", name)
		}
	}

	// Inventory sheet carries one row per record plus the header
	rows, err := f.GetRows("库存明细")
	if err != nil {
		t.Fatalf("failed to read inventory sheet: %v", err)
	}
	if len(rows) != 4 {
		t.Errorf("expected 4 inventory rows (header + 3 records), got %d", len(rows))
	}

	// Alerts sheet: active first, then resolved with status labels
	alertRows, err := f.GetRows("告警汇总")
	if err != nil {
		t.Fatalf("failed to read alerts sheet: %v", err)
	}
	if len(alertRows) != 3 {
		t.Fatalf("expected 3 alert rows (header + 2 alerts), got %d", len(alertRows))
	}
	if alertRows[1][0] != "stock-item-1" {
		t.Errorf("expected active alert first, got %s", alertRows[1][0])
	}
	if alertRows[1][len(alertRows[1])-1] != "未处理" {
		t.Errorf("expected active status 未处理, got %s", alertRows[1][len(alertRows[1])-1])
	}
	if alertRows[2][len(alertRows[2])-1] != "已处理" {
		t.Errorf("expected resolved status 已处理, got %s", alertRows[2][len(alertRows[2])-1])
	}
}

func TestWriter_Write_AppendsExtension(t *testing.T) {
	w := NewWriter(nil)
	outputPath := filepath.Join(t.TempDir(), "report")

	if err := w.Write(createTestResult(), outputPath); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	if _, err := os.Stat(outputPath + ".xlsx"); err != nil {
		t.Errorf("expected file with .xlsx extension: %v", err)
	}
}

func TestWriter_Write_NilResult(t *testing.T) {
	w := NewWriter(nil)

	if err := w.Write(nil, filepath.Join(t.TempDir(), "report.xlsx")); err == nil {
		t.Error("expected error for nil result")
	}
}

func TestWriter_Write_ResolvedDisplayLimit(t *testing.T) {
	w := NewWriter(nil)
	outputPath := filepath.Join(t.TempDir(), "report.xlsx")

	now := time.Now()
	result := model.NewDashboardResult(now)
	result.Metrics = &model.InventoryMetrics{}
	for i := 0; i < 8; i++ {
		result.Alerts = append(result.Alerts, &model.Alert{
			ID:       "stock-item-" + string(rune('a'+i)),
			Kind:     model.AlertKindStockOut,
			Severity: model.SeverityCritical,
			Resolved: true,
			CreatedAt: now,
		})
	}
	result.Finalize(now)

	if err := w.Write(result, outputPath); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	f, err := excelize.OpenFile(outputPath)
	if err != nil {
		t.Fatalf("failed to open generated file: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("告警汇总")
	if err != nil {
		t.Fatalf("failed to read alerts sheet: %v", err)
	}
	// Header plus at most 5 resolved alerts
	if len(rows) != 6 {
		t.Errorf("expected 6 rows with resolved display cap, got %d", len(rows))
	}
}

func TestWriter_Write_EmptyResult(t *testing.T) {
	w := NewWriter(nil)
	outputPath := filepath.Join(t.TempDir(), "empty.xlsx")

	now := time.Now()
	result := model.NewDashboardResult(now)
	result.Metrics = &model.InventoryMetrics{}
	result.Finalize(now)

	if err := w.Write(result, outputPath); err != nil {
		t.Fatalf("Write() error for empty result = %v", err)
	}
	if _, err := os.Stat(outputPath); err != nil {
		t.Errorf("expected report file: %v", err)
	}
}
