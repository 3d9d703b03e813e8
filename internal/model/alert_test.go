package model

import (
	"testing"
	"time"
)

// =============================================================================
// AlertID - 确定性 ID 测试
// =============================================================================

func TestAlertID_Prefixes(t *testing.T) {
	tests := []struct {
		kind      AlertKind
		subjectID string
		want      string
	}{
		{AlertKindStockOut, "item-3", "stock-item-3"},
		{AlertKindStockLow, "item-3", "stock-low-item-3"},
		{AlertKindHighInterest, "item-7", "interest-item-7"},
		{AlertKindHighPrice, "item-7", "price-item-7"},
		{AlertKindCategoryRisk, "Tools", "category-Tools"},
	}

	for _, tt := range tests {
		got := AlertID(tt.kind, tt.subjectID)
		if got != tt.want {
			t.Errorf("AlertID(%s, %s) = %s, want %s", tt.kind, tt.subjectID, got, tt.want)
		}
	}
}

func TestAlertID_Deterministic(t *testing.T) {
	first := AlertID(AlertKindStockOut, "item-42")
	second := AlertID(AlertKindStockOut, "item-42")

	if first != second {
		t.Errorf("same inputs produced different ids: %s vs %s", first, second)
	}
}

func TestAlertID_DistinctKindsSameSubject(t *testing.T) {
	// StockOut and StockLow on the same product must have distinct ids,
	// otherwise resolution would leak between rules.
	outID := AlertID(AlertKindStockOut, "item-1")
	lowID := AlertID(AlertKindStockLow, "item-1")

	if outID == lowID {
		t.Errorf("stock_out and stock_low share id %s", outID)
	}
}

// =============================================================================
// SeverityFor - 固定级别映射测试
// =============================================================================

func TestSeverityFor(t *testing.T) {
	tests := []struct {
		kind AlertKind
		want AlertSeverity
	}{
		{AlertKindStockOut, SeverityCritical},
		{AlertKindStockLow, SeverityHigh},
		{AlertKindHighInterest, SeverityMedium},
		{AlertKindHighPrice, SeverityLow},
		{AlertKindCategoryRisk, SeverityHigh},
	}

	for _, tt := range tests {
		if got := SeverityFor(tt.kind); got != tt.want {
			t.Errorf("SeverityFor(%s) = %s, want %s", tt.kind, got, tt.want)
		}
	}
}

// =============================================================================
// NewAlertSummary - 告警摘要测试
// =============================================================================

func TestNewAlertSummary(t *testing.T) {
	now := time.Now()
	alerts := []*Alert{
		{ID: "stock-a", Severity: SeverityCritical, CreatedAt: now},
		{ID: "stock-low-b", Severity: SeverityHigh, CreatedAt: now},
		{ID: "interest-c", Severity: SeverityMedium, CreatedAt: now, Resolved: true},
		{ID: "price-d", Severity: SeverityLow, CreatedAt: now},
		nil,
	}

	summary := NewAlertSummary(alerts)

	if summary.TotalAlerts != 4 {
		t.Errorf("expected 4 total alerts, got %d", summary.TotalAlerts)
	}
	if summary.ActiveCount != 3 {
		t.Errorf("expected 3 active alerts, got %d", summary.ActiveCount)
	}
	if summary.ResolvedCount != 1 {
		t.Errorf("expected 1 resolved alert, got %d", summary.ResolvedCount)
	}
	if summary.CriticalCount != 1 {
		t.Errorf("expected 1 critical alert, got %d", summary.CriticalCount)
	}
	if summary.HighCount != 1 {
		t.Errorf("expected 1 high alert, got %d", summary.HighCount)
	}
	// Resolved alerts must not count toward severity counters
	if summary.MediumCount != 0 {
		t.Errorf("expected 0 medium alerts, got %d", summary.MediumCount)
	}
	if summary.LowCount != 1 {
		t.Errorf("expected 1 low alert, got %d", summary.LowCount)
	}
}

func TestNewAlertSummary_Empty(t *testing.T) {
	summary := NewAlertSummary(nil)

	if summary.TotalAlerts != 0 || summary.ActiveCount != 0 || summary.ResolvedCount != 0 {
		t.Errorf("expected all-zero summary, got %+v", summary)
	}
}

func TestAlert_IsCritical(t *testing.T) {
	critical := &Alert{Severity: SeverityCritical}
	high := &Alert{Severity: SeverityHigh}

	if !critical.IsCritical() {
		t.Error("expected critical alert to report IsCritical")
	}
	if high.IsCritical() {
		t.Error("expected high alert not to report IsCritical")
	}
}
