// Package model provides data models for the inventory dashboard tool.
package model

import "time"

// AlertKind identifies the rule that produced an alert.
type AlertKind string

const (
	AlertKindStockOut     AlertKind = "stock_out"     // 缺货
	AlertKindStockLow     AlertKind = "stock_low"     // 低库存
	AlertKindHighInterest AlertKind = "high_interest" // 高关注度
	AlertKindHighPrice    AlertKind = "high_price"    // 价格偏高
	AlertKindCategoryRisk AlertKind = "category_risk" // 风险分类
)

// AlertSeverity represents the severity level of an alert.
type AlertSeverity string

const (
	SeverityCritical AlertSeverity = "critical" // 严重
	SeverityHigh     AlertSeverity = "high"     // 高
	SeverityMedium   AlertSeverity = "medium"   // 中
	SeverityLow      AlertSeverity = "low"      // 低
)

// alertIDPrefix maps each alert kind to its deterministic id prefix.
// Identical conditions across regenerations must produce the same id, so
// resolution state keyed by id survives data refreshes.
var alertIDPrefix = map[AlertKind]string{
	AlertKindStockOut:     "stock",
	AlertKindStockLow:     "stock-low",
	AlertKindHighInterest: "interest",
	AlertKindHighPrice:    "price",
	AlertKindCategoryRisk: "category",
}

// kindSeverity maps each alert kind to its fixed severity.
var kindSeverity = map[AlertKind]AlertSeverity{
	AlertKindStockOut:     SeverityCritical,
	AlertKindStockLow:     SeverityHigh,
	AlertKindHighInterest: SeverityMedium,
	AlertKindHighPrice:    SeverityLow,
	AlertKindCategoryRisk: SeverityHigh,
}

// AlertID derives the deterministic alert id for a rule kind and subject
// (product id or category name).
func AlertID(kind AlertKind, subjectID string) string {
	return alertIDPrefix[kind] + "-" + subjectID
}

// SeverityFor returns the fixed severity for an alert kind.
func SeverityFor(kind AlertKind) AlertSeverity {
	return kindSeverity[kind]
}

// Alert represents a threshold violation for a product or category.
// Everything except Resolved is immutable after generation.
type Alert struct {
	ID           string        `json:"id"`            // 确定性 ID（kind + subject）
	Kind         AlertKind     `json:"kind"`          // 告警类型
	Severity     AlertSeverity `json:"severity"`      // 告警级别（由类型固定）
	Title        string        `json:"title"`         // 告警标题
	Message      string        `json:"message"`       // 告警消息
	SubjectID    string        `json:"subject_id"`    // 商品 ID 或分类名称
	SubjectLabel string        `json:"subject_label"` // 商品名称或分类名称
	Value        float64       `json:"value"`         // 触发时的实际值
	Threshold    float64       `json:"threshold"`     // 触发阈值
	CreatedAt    time.Time     `json:"created_at"`    // 生成时间
	Resolved     bool          `json:"resolved"`      // 是否已被用户标记处理
}

// IsCritical returns true if this alert is at critical severity.
func (a *Alert) IsCritical() bool {
	return a.Severity == SeverityCritical
}

// AlertSummary provides aggregated alert statistics.
type AlertSummary struct {
	TotalAlerts   int `json:"total_alerts"`   // 告警总数（含已处理）
	ActiveCount   int `json:"active_count"`   // 未处理数量
	ResolvedCount int `json:"resolved_count"` // 已处理数量
	CriticalCount int `json:"critical_count"` // 严重级别数量（未处理）
	HighCount     int `json:"high_count"`     // 高级别数量（未处理）
	MediumCount   int `json:"medium_count"`   // 中级别数量（未处理）
	LowCount      int `json:"low_count"`      // 低级别数量（未处理）
}

// NewAlertSummary creates a new AlertSummary from a list of alerts.
// Severity counters only cover unresolved alerts.
func NewAlertSummary(alerts []*Alert) *AlertSummary {
	summary := &AlertSummary{}
	for _, alert := range alerts {
		if alert == nil {
			continue
		}
		summary.TotalAlerts++
		if alert.Resolved {
			summary.ResolvedCount++
			continue
		}
		summary.ActiveCount++
		switch alert.Severity {
		case SeverityCritical:
			summary.CriticalCount++
		case SeverityHigh:
			summary.HighCount++
		case SeverityMedium:
			summary.MediumCount++
		case SeverityLow:
			summary.LowCount++
		}
	}
	return summary
}
