// Package model provides data models for the inventory dashboard tool.
package model

import "time"

// DashboardResult represents the complete outcome of one dashboard refresh:
// the fetched records, the computed metrics and the regenerated alerts.
type DashboardResult struct {
	// 刷新时间信息
	RefreshedAt time.Time     `json:"refreshed_at"` // 刷新开始时间
	Duration    time.Duration `json:"duration"`     // 刷新耗时

	// 数据
	Records []InventoryRecord `json:"records"` // 本批次库存记录
	Metrics *InventoryMetrics `json:"metrics"` // 聚合指标快照

	// 告警
	Alerts       []*Alert      `json:"alerts"`        // 全量告警（含已处理）
	AlertSummary *AlertSummary `json:"alert_summary"` // 告警摘要统计

	// 元数据
	Version string `json:"version,omitempty"` // 工具版本号
}

// NewDashboardResult creates a new DashboardResult with the given start time.
func NewDashboardResult(refreshedAt time.Time) *DashboardResult {
	return &DashboardResult{
		RefreshedAt: refreshedAt,
		Records:     make([]InventoryRecord, 0),
		Alerts:      make([]*Alert, 0),
	}
}

// Finalize calculates the alert summary after records and alerts are set.
func (r *DashboardResult) Finalize(endTime time.Time) {
	r.Duration = endTime.Sub(r.RefreshedAt)
	r.AlertSummary = NewAlertSummary(r.Alerts)
}

// ActiveAlerts returns the unresolved alerts in generation order.
func (r *DashboardResult) ActiveAlerts() []*Alert {
	var active []*Alert
	for _, alert := range r.Alerts {
		if alert != nil && !alert.Resolved {
			active = append(active, alert)
		}
	}
	return active
}

// ResolvedAlerts returns the resolved alerts in generation order.
func (r *DashboardResult) ResolvedAlerts() []*Alert {
	var resolved []*Alert
	for _, alert := range r.Alerts {
		if alert != nil && alert.Resolved {
			resolved = append(resolved, alert)
		}
	}
	return resolved
}

// HasCritical returns true if any unresolved alert is at critical severity.
func (r *DashboardResult) HasCritical() bool {
	return r.AlertSummary != nil && r.AlertSummary.CriticalCount > 0
}

// HasHigh returns true if any unresolved alert is at high severity.
func (r *DashboardResult) HasHigh() bool {
	return r.AlertSummary != nil && r.AlertSummary.HighCount > 0
}
