package service

import (
	"testing"

	"github.com/rs/zerolog"

	"inventory-dashboard/internal/config"
	"inventory-dashboard/internal/model"
)

// Helper function to create a test evaluator with default thresholds
func createTestEvaluator() *Evaluator {
	return NewEvaluator(createTestThresholds(), config.DefaultRuleDefs(), zerolog.Nop())
}

// Helper to find an alert by id in a batch
func findAlert(alerts []*model.Alert, id string) *model.Alert {
	for _, a := range alerts {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// =============================================================================
// TestNewEvaluator - 构造函数测试
// =============================================================================

func TestNewEvaluator(t *testing.T) {
	thresholds := createTestThresholds()
	rules := config.DefaultRuleDefs()

	evaluator := NewEvaluator(thresholds, rules, zerolog.Nop())

	if evaluator == nil {
		t.Fatal("expected non-nil evaluator")
	}
	if evaluator.thresholds != thresholds {
		t.Error("thresholds not set correctly")
	}
	if len(evaluator.ruleDefs) != len(rules) {
		t.Errorf("expected %d rule definitions, got %d", len(rules), len(evaluator.ruleDefs))
	}
	if def, ok := evaluator.ruleDefs[model.AlertKindStockOut]; !ok || def.DisplayName != "商品缺货" {
		t.Error("stock_out rule definition not accessible")
	}
}

// =============================================================================
// 库存规则测试
// =============================================================================

func TestEvaluator_StockOut(t *testing.T) {
	evaluator := createTestEvaluator()

	records := []model.InventoryRecord{
		{ID: "item-1", Name: "Hammer", Category: "Tools", Stock: 0},
	}

	alerts := evaluator.Evaluate(records, nil)

	alert := findAlert(alerts, "stock-item-1")
	if alert == nil {
		t.Fatal("expected stock_out alert for item-1")
	}
	if alert.Kind != model.AlertKindStockOut {
		t.Errorf("expected stock_out kind, got %s", alert.Kind)
	}
	if alert.Severity != model.SeverityCritical {
		t.Errorf("expected critical severity, got %s", alert.Severity)
	}
	if alert.Title != "商品缺货" {
		t.Errorf("expected display title 商品缺货, got %s", alert.Title)
	}
	if alert.SubjectLabel != "Hammer" {
		t.Errorf("expected subject label Hammer, got %s", alert.SubjectLabel)
	}
	// No stock_low alert may coexist for the same record
	if findAlert(alerts, "stock-low-item-1") != nil {
		t.Error("stock_out and stock_low fired for the same record")
	}
}

func TestEvaluator_StockLow(t *testing.T) {
	evaluator := createTestEvaluator()

	records := []model.InventoryRecord{
		{ID: "item-1", Name: "Drill", Category: "Tools", Stock: 10},
	}

	alerts := evaluator.Evaluate(records, nil)

	alert := findAlert(alerts, "stock-low-item-1")
	if alert == nil {
		t.Fatal("expected stock_low alert at the boundary value")
	}
	if alert.Severity != model.SeverityHigh {
		t.Errorf("expected high severity, got %s", alert.Severity)
	}
	if alert.Value != 10 || alert.Threshold != 10 {
		t.Errorf("unexpected value/threshold: %v/%v", alert.Value, alert.Threshold)
	}
	if findAlert(alerts, "stock-item-1") != nil {
		t.Error("stock_out fired for a record with stock")
	}
}

func TestEvaluator_StockAboveBound(t *testing.T) {
	evaluator := createTestEvaluator()

	records := []model.InventoryRecord{
		{ID: "item-1", Name: "Saw", Category: "Tools", Stock: 11},
	}

	alerts := evaluator.Evaluate(records, nil)

	if len(alerts) != 0 {
		t.Errorf("expected no alerts for stock above bound, got %d", len(alerts))
	}
}

// =============================================================================
// 关注度与价格规则测试
// =============================================================================

func TestEvaluator_HighInterest(t *testing.T) {
	evaluator := createTestEvaluator()

	records := []model.InventoryRecord{
		{ID: "item-1", Name: "Popular", Category: "Misc", Stock: 20, QueryCount: 50},
		{ID: "item-2", Name: "Viral", Category: "Misc", Stock: 20, QueryCount: 51},
	}

	alerts := evaluator.Evaluate(records, nil)

	// Threshold is strictly greater than: 50 does not fire, 51 does
	if findAlert(alerts, "interest-item-1") != nil {
		t.Error("interest alert fired at exactly the threshold")
	}
	alert := findAlert(alerts, "interest-item-2")
	if alert == nil {
		t.Fatal("expected interest alert above the threshold")
	}
	if alert.Severity != model.SeverityMedium {
		t.Errorf("expected medium severity, got %s", alert.Severity)
	}
}

func TestEvaluator_HighPrice(t *testing.T) {
	evaluator := createTestEvaluator()

	records := []model.InventoryRecord{
		{ID: "item-1", Name: "Fair", Category: "Misc", Stock: 5, Price: 1000},
		{ID: "item-2", Name: "Luxury", Category: "Misc", Stock: 5, Price: 1000.01},
	}

	alerts := evaluator.Evaluate(records, nil)

	if findAlert(alerts, "price-item-1") != nil {
		t.Error("price alert fired at exactly the threshold")
	}
	alert := findAlert(alerts, "price-item-2")
	if alert == nil {
		t.Fatal("expected price alert above the threshold")
	}
	if alert.Severity != model.SeverityLow {
		t.Errorf("expected low severity, got %s", alert.Severity)
	}
}

func TestEvaluator_MultipleAlertsPerRecord(t *testing.T) {
	evaluator := createTestEvaluator()

	// One record can raise stock, interest and price alerts at once
	records := []model.InventoryRecord{
		{ID: "item-1", Name: "Hot", Category: "Misc", Stock: 0, QueryCount: 99, Price: 2000},
	}

	alerts := evaluator.Evaluate(records, nil)

	if len(alerts) != 3 {
		t.Fatalf("expected 3 alerts for one record, got %d", len(alerts))
	}
	for _, id := range []string{"stock-item-1", "interest-item-1", "price-item-1"} {
		if findAlert(alerts, id) == nil {
			t.Errorf("missing expected alert %s", id)
		}
	}
}

// =============================================================================
// 分类风险规则测试
// =============================================================================

func TestEvaluator_CategoryRisk_Boundary(t *testing.T) {
	evaluator := createTestEvaluator()

	// 3 of 10 out of stock = exactly 30%, must not fire (strictly greater)
	records := make([]model.InventoryRecord, 0, 10)
	for i := 0; i < 10; i++ {
		stock := 20
		if i < 3 {
			stock = 0
		}
		records = append(records, model.InventoryRecord{
			ID: "item-" + string(rune('a'+i)), Category: "Garden", Stock: stock,
		})
	}

	alerts := evaluator.Evaluate(records, nil)

	if findAlert(alerts, "category-Garden") != nil {
		t.Error("category_risk fired at exactly 30%")
	}
}

func TestEvaluator_CategoryRisk_AboveThreshold(t *testing.T) {
	evaluator := createTestEvaluator()

	// 1 of 3 out of stock = 33.3%, fires; the out-of-stock record also
	// raises its own stock_out alert
	records := []model.InventoryRecord{
		{ID: "item-1", Name: "Rake", Category: "Tools", Stock: 0},
		{ID: "item-2", Name: "Hoe", Category: "Tools", Stock: 20},
		{ID: "item-3", Name: "Spade", Category: "Tools", Stock: 20},
	}

	alerts := evaluator.Evaluate(records, nil)

	alert := findAlert(alerts, "category-Tools")
	if alert == nil {
		t.Fatal("expected category_risk alert for Tools")
	}
	if alert.Severity != model.SeverityHigh {
		t.Errorf("expected high severity, got %s", alert.Severity)
	}
	if alert.SubjectID != "Tools" || alert.SubjectLabel != "Tools" {
		t.Errorf("category alert subject should be the category name, got %s/%s", alert.SubjectID, alert.SubjectLabel)
	}
	if findAlert(alerts, "stock-item-1") == nil {
		t.Error("expected stock_out alert alongside category_risk")
	}
	if len(alerts) != 2 {
		t.Errorf("expected exactly 2 alerts, got %d", len(alerts))
	}
}

func TestEvaluator_CategoryRisk_CaseSensitive(t *testing.T) {
	evaluator := createTestEvaluator()

	// "tools" is fully out of stock while "Tools" is healthy; only the
	// lowercase category fires
	records := []model.InventoryRecord{
		{ID: "item-1", Category: "Tools", Stock: 20},
		{ID: "item-2", Category: "tools", Stock: 0},
	}

	alerts := evaluator.Evaluate(records, nil)

	if findAlert(alerts, "category-Tools") != nil {
		t.Error("category_risk fired for healthy category Tools")
	}
	if findAlert(alerts, "category-tools") == nil {
		t.Error("expected category_risk for category tools")
	}
}

// =============================================================================
// 已处理状态传递测试
// =============================================================================

func TestEvaluator_ResolvedCarryOver(t *testing.T) {
	evaluator := createTestEvaluator()

	records := []model.InventoryRecord{
		{ID: "item-1", Name: "Hammer", Category: "Tools", Stock: 0},
		{ID: "item-2", Name: "Drill", Category: "Tools", Stock: 0},
	}
	resolved := map[string]bool{"stock-item-1": true}

	alerts := evaluator.Evaluate(records, resolved)

	a1 := findAlert(alerts, "stock-item-1")
	a2 := findAlert(alerts, "stock-item-2")
	if a1 == nil || a2 == nil {
		t.Fatal("expected alerts for both records")
	}
	if !a1.Resolved {
		t.Error("expected item-1 alert to carry resolved state")
	}
	if a2.Resolved {
		t.Error("expected item-2 alert to be unresolved")
	}
}

func TestEvaluator_Idempotent(t *testing.T) {
	evaluator := createTestEvaluator()

	records := []model.InventoryRecord{
		{ID: "item-1", Name: "Hammer", Category: "Tools", Stock: 0, QueryCount: 80},
	}

	first := evaluator.Evaluate(records, nil)
	second := evaluator.Evaluate(records, nil)

	if len(first) != len(second) {
		t.Fatalf("alert counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID || first[i].Severity != second[i].Severity {
			t.Errorf("alert %d differs between runs: %s vs %s", i, first[i].ID, second[i].ID)
		}
	}
}

func TestEvaluator_SingleOutOfStockRecord(t *testing.T) {
	evaluator := createTestEvaluator()

	// A lone out-of-stock record makes its whole category at risk
	records := []model.InventoryRecord{
		{ID: "item-1", Name: "Hammer", Category: "Tools", Stock: 0, Price: 50, QueryCount: 5},
	}

	alerts := evaluator.Evaluate(records, nil)

	if len(alerts) != 2 {
		t.Fatalf("expected 2 alerts, got %d", len(alerts))
	}
	if findAlert(alerts, "stock-item-1") == nil {
		t.Error("expected stock_out alert")
	}
	category := findAlert(alerts, "category-Tools")
	if category == nil {
		t.Fatal("expected category_risk alert at 100% out of stock")
	}
	if category.Value != 100 {
		t.Errorf("category alert value = %v, want 100", category.Value)
	}
}

func TestEvaluator_HighInterestAndPriceOnly(t *testing.T) {
	evaluator := createTestEvaluator()

	records := []model.InventoryRecord{
		{ID: "item-1", Name: "TV", Category: "Elec", Stock: 100, Price: 1500, QueryCount: 75},
	}

	alerts := evaluator.Evaluate(records, nil)

	if len(alerts) != 2 {
		t.Fatalf("expected 2 alerts, got %d", len(alerts))
	}
	if findAlert(alerts, "interest-item-1") == nil {
		t.Error("expected high_interest alert")
	}
	if findAlert(alerts, "price-item-1") == nil {
		t.Error("expected high_price alert")
	}
	if findAlert(alerts, "stock-item-1") != nil || findAlert(alerts, "stock-low-item-1") != nil {
		t.Error("no stock alert should fire for a well-stocked record")
	}
}

func TestEvaluator_EmptyBatch(t *testing.T) {
	evaluator := createTestEvaluator()

	alerts := evaluator.Evaluate(nil, nil)

	if len(alerts) != 0 {
		t.Errorf("expected no alerts for empty batch, got %d", len(alerts))
	}
}
