// Package service provides business logic services for the inventory dashboard tool.
package service

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"inventory-dashboard/internal/config"
	"inventory-dashboard/internal/model"
)

// Evaluator applies the fixed alert rule table to a record batch.
//
// Rule table (severities are fixed per kind):
//
//	stock_out      stock == 0                critical
//	stock_low      0 < stock <= lowStockMax  high (mutually exclusive with stock_out)
//	high_interest  queryCount > highInterestMin  medium
//	high_price     price > highPriceMin      low
//	category_risk  category out-of-stock % > categoryRiskPct  high
type Evaluator struct {
	thresholds *config.ThresholdsConfig
	ruleDefs   map[model.AlertKind]*model.RuleDefinition // 规则展示定义，用于标题和消息
	logger     zerolog.Logger
}

// NewEvaluator creates a new Evaluator with the given thresholds and rule
// display definitions. Thresholds are read only from the passed struct, never
// from process-wide state, so the evaluator is testable with arbitrary values.
func NewEvaluator(thresholds *config.ThresholdsConfig, rules []*model.RuleDefinition, logger zerolog.Logger) *Evaluator {
	ruleDefs := make(map[model.AlertKind]*model.RuleDefinition)
	for _, r := range rules {
		ruleDefs[r.Kind] = r
	}

	return &Evaluator{
		thresholds: thresholds,
		ruleDefs:   ruleDefs,
		logger:     logger.With().Str("component", "evaluator").Logger(),
	}
}

// Evaluate regenerates the full alert set for a record batch. Alerts whose id
// is in resolvedIDs are emitted with Resolved set; none are dropped for being
// resolved (hiding resolved alerts is the view layer's concern). Which alerts
// fire is deterministic for fixed inputs; only CreatedAt varies.
//
// Output order: one pass over records (stock rule, then interest, then
// price), followed by one pass over categories in first-seen order.
func (e *Evaluator) Evaluate(records []model.InventoryRecord, resolvedIDs map[string]bool) []*model.Alert {
	alerts := make([]*model.Alert, 0)
	now := time.Now()

	// Per-record rules. A single record contributes at most three alerts:
	// one stock alert, one interest alert, one price alert.
	for _, record := range records {
		if record.IsOutOfStock() {
			alerts = append(alerts, e.newAlert(
				model.AlertKindStockOut, record.ID, record.Name,
				float64(record.Stock), 0,
				fmt.Sprintf("%s 已无库存", record.Name),
				now, resolvedIDs,
			))
		} else if record.IsLowStock(e.thresholds.LowStockMax) {
			alerts = append(alerts, e.newAlert(
				model.AlertKindStockLow, record.ID, record.Name,
				float64(record.Stock), float64(e.thresholds.LowStockMax),
				fmt.Sprintf("%s 仅剩 %d 件库存", record.Name, record.Stock),
				now, resolvedIDs,
			))
		}

		if record.QueryCount > e.thresholds.HighInterestMin {
			alerts = append(alerts, e.newAlert(
				model.AlertKindHighInterest, record.ID, record.Name,
				float64(record.QueryCount), float64(e.thresholds.HighInterestMin),
				fmt.Sprintf("%s 已被查询 %d 次", record.Name, record.QueryCount),
				now, resolvedIDs,
			))
		}

		if record.Price > e.thresholds.HighPriceMin {
			alerts = append(alerts, e.newAlert(
				model.AlertKindHighPrice, record.ID, record.Name,
				record.Price, e.thresholds.HighPriceMin,
				fmt.Sprintf("%s 价格为 %.2f", record.Name, record.Price),
				now, resolvedIDs,
			))
		}
	}

	// Category rules run in a second pass over the grouped data, in
	// first-seen category order. The grouping is recomputed here so the
	// evaluator stays independent of the aggregator.
	for _, agg := range groupByCategory(records) {
		pct := agg.OutOfStockPct()
		if pct > e.thresholds.CategoryRiskPct {
			alerts = append(alerts, e.newAlert(
				model.AlertKindCategoryRisk, agg.Category, agg.Category,
				pct, e.thresholds.CategoryRiskPct,
				fmt.Sprintf("分类 %s 有 %.1f%% 的商品缺货", agg.Category, pct),
				now, resolvedIDs,
			))
		}
	}

	e.logger.Debug().
		Int("records", len(records)).
		Int("alerts", len(alerts)).
		Int("previously_resolved", len(resolvedIDs)).
		Msg("alert evaluation completed")

	return alerts
}

// newAlert builds an alert with its deterministic id and fixed severity,
// carrying over resolution state from resolvedIDs.
func (e *Evaluator) newAlert(
	kind model.AlertKind,
	subjectID, subjectLabel string,
	value, threshold float64,
	message string,
	createdAt time.Time,
	resolvedIDs map[string]bool,
) *model.Alert {
	id := model.AlertID(kind, subjectID)
	return &model.Alert{
		ID:           id,
		Kind:         kind,
		Severity:     model.SeverityFor(kind),
		Title:        e.ruleTitle(kind),
		Message:      message,
		SubjectID:    subjectID,
		SubjectLabel: subjectLabel,
		Value:        value,
		Threshold:    threshold,
		CreatedAt:    createdAt,
		Resolved:     resolvedIDs[id],
	}
}

// ruleTitle returns the display title for an alert kind, falling back to the
// kind name when no definition is loaded.
func (e *Evaluator) ruleTitle(kind model.AlertKind) string {
	if def, ok := e.ruleDefs[kind]; ok {
		return def.DisplayName
	}
	return string(kind)
}

// groupByCategory builds per-category aggregates preserving first-seen
// insertion order. Category keys are the raw strings, no normalization:
// "tools" and "Tools" are distinct categories.
func groupByCategory(records []model.InventoryRecord) []*model.CategoryAggregate {
	byCategory := make(map[string]*model.CategoryAggregate)
	ordered := make([]*model.CategoryAggregate, 0)

	for _, record := range records {
		agg, ok := byCategory[record.Category]
		if !ok {
			agg = &model.CategoryAggregate{Category: record.Category}
			byCategory[record.Category] = agg
			ordered = append(ordered, agg)
		}
		agg.TotalCount++
		agg.TotalStock += record.Stock
		agg.TotalQueries += record.QueryCount
		if record.IsOutOfStock() {
			agg.OutOfStockCount++
		}
	}

	return ordered
}
