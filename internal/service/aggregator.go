// Package service provides business logic services for the inventory dashboard tool.
package service

import (
	"sort"

	"github.com/rs/zerolog"

	"inventory-dashboard/internal/config"
	"inventory-dashboard/internal/model"
)

// topCategoryLimit is the size of the top-categories ranking.
const topCategoryLimit = 5

// Aggregator reduces a record batch into an InventoryMetrics snapshot.
type Aggregator struct {
	thresholds *config.ThresholdsConfig
	logger     zerolog.Logger
}

// NewAggregator creates a new Aggregator with the given threshold configuration.
// Thresholds only affect the low-stock band; all other metrics are threshold-free.
func NewAggregator(thresholds *config.ThresholdsConfig, logger zerolog.Logger) *Aggregator {
	return &Aggregator{
		thresholds: thresholds,
		logger:     logger.With().Str("component", "aggregator").Logger(),
	}
}

// Compute derives the metrics snapshot for one record batch. It is a pure
// function of its input: no stored state, deterministic for a given sequence.
// Input order only affects tie-breaks in the category rankings.
func (a *Aggregator) Compute(records []model.InventoryRecord) *model.InventoryMetrics {
	metrics := &model.InventoryMetrics{
		TopCategoriesByCount: make([]model.CategoryCount, 0),
		StockByCategory:      make([]model.CategoryStock, 0),
		Categories:           make([]*model.CategoryAggregate, 0),
	}

	lowStockMax := a.lowStockMax()

	// Single pass: scalar accumulators plus per-category grouping that
	// preserves first-seen insertion order.
	byCategory := make(map[string]*model.CategoryAggregate)
	for _, record := range records {
		metrics.TotalProducts++
		metrics.TotalStock += record.Stock
		metrics.TotalValue += float64(record.Stock) * record.Price
		metrics.TotalQueries += record.QueryCount

		if record.IsOutOfStock() {
			metrics.OutOfStockCount++
		} else if record.IsLowStock(lowStockMax) {
			metrics.LowStockCount++
		}

		agg, ok := byCategory[record.Category]
		if !ok {
			agg = &model.CategoryAggregate{Category: record.Category}
			byCategory[record.Category] = agg
			metrics.Categories = append(metrics.Categories, agg)
		}
		agg.TotalCount++
		agg.TotalStock += record.Stock
		agg.TotalQueries += record.QueryCount
		if record.IsOutOfStock() {
			agg.OutOfStockCount++
		}
	}

	// Ratios, zero-guarded. AveragePrice is value per stock unit, see the
	// field doc in model.InventoryMetrics.
	if metrics.TotalProducts > 0 {
		metrics.OutOfStockPct = float64(metrics.OutOfStockCount) / float64(metrics.TotalProducts) * 100
		metrics.LowStockPct = float64(metrics.LowStockCount) / float64(metrics.TotalProducts) * 100
		metrics.AverageQueries = float64(metrics.TotalQueries) / float64(metrics.TotalProducts)
	}
	if metrics.TotalStock > 0 {
		metrics.AveragePrice = metrics.TotalValue / float64(metrics.TotalStock)
	}

	// Rankings: stable sorts over the insertion-ordered category list, so
	// ties keep first-encountered order.
	byCount := make([]model.CategoryCount, 0, len(metrics.Categories))
	byStock := make([]model.CategoryStock, 0, len(metrics.Categories))
	for _, agg := range metrics.Categories {
		byCount = append(byCount, model.CategoryCount{Category: agg.Category, Count: agg.TotalCount})
		byStock = append(byStock, model.CategoryStock{Category: agg.Category, Stock: agg.TotalStock})
	}
	sort.SliceStable(byCount, func(i, j int) bool { return byCount[i].Count > byCount[j].Count })
	sort.SliceStable(byStock, func(i, j int) bool { return byStock[i].Stock > byStock[j].Stock })

	if len(byCount) > topCategoryLimit {
		byCount = byCount[:topCategoryLimit]
	}
	metrics.TopCategoriesByCount = byCount
	metrics.StockByCategory = byStock

	a.logger.Debug().
		Int("total_products", metrics.TotalProducts).
		Int("total_stock", metrics.TotalStock).
		Int("out_of_stock", metrics.OutOfStockCount).
		Int("low_stock", metrics.LowStockCount).
		Int("categories", len(metrics.Categories)).
		Msg("metrics computed")

	return metrics
}

// lowStockMax returns the configured low-stock bound, defaulting to 10.
func (a *Aggregator) lowStockMax() int {
	if a.thresholds == nil {
		return 10
	}
	return a.thresholds.LowStockMax
}
