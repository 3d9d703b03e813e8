// Package model provides data models for the inventory dashboard tool.
package model

// CategoryAggregate holds per-category accumulators derived from a record
// batch. It is recomputed on every refresh and never persisted.
type CategoryAggregate struct {
	Category        string `json:"category"`           // 分类名称（原始字符串，不做归一化）
	TotalCount      int    `json:"total_count"`        // 分类内商品数量
	OutOfStockCount int    `json:"out_of_stock_count"` // 分类内缺货商品数量
	TotalStock      int    `json:"total_stock"`        // 分类库存总量
	TotalQueries    int    `json:"total_queries"`      // 分类查询总次数
}

// OutOfStockPct returns the percentage of out-of-stock records in this
// category, or 0 when the category is empty.
func (c *CategoryAggregate) OutOfStockPct() float64 {
	if c.TotalCount == 0 {
		return 0
	}
	return float64(c.OutOfStockCount) / float64(c.TotalCount) * 100
}

// CategoryCount is one entry of the top-categories ranking.
type CategoryCount struct {
	Category string `json:"category"` // 分类名称
	Count    int    `json:"count"`    // 商品数量
}

// CategoryStock is one entry of the stock-by-category ranking.
type CategoryStock struct {
	Category string `json:"category"` // 分类名称
	Stock    int    `json:"stock"`    // 库存总量
}

// InventoryMetrics is the derived metrics snapshot for one record batch.
// It is recomputed wholesale on every batch change and never mutated.
type InventoryMetrics struct {
	TotalProducts   int     `json:"total_products"`     // 商品总数
	TotalStock      int     `json:"total_stock"`        // 库存总量
	TotalValue      float64 `json:"total_value"`        // 库存总价值（Σ stock×price）
	TotalQueries    int     `json:"total_queries"`      // 查询总次数
	OutOfStockCount int     `json:"out_of_stock_count"` // 缺货商品数
	LowStockCount   int     `json:"low_stock_count"`    // 低库存商品数（0 < stock <= 阈值）
	OutOfStockPct   float64 `json:"out_of_stock_pct"`   // 缺货占比（%）
	LowStockPct     float64 `json:"low_stock_pct"`      // 低库存占比（%）

	// AveragePrice is total inventory value divided by total stock units,
	// not an arithmetic mean of per-product prices. The source behavior is
	// preserved intentionally despite what the name suggests.
	AveragePrice   float64 `json:"average_price"`   // 单位库存价值
	AverageQueries float64 `json:"average_queries"` // 平均查询次数

	TopCategoriesByCount []CategoryCount `json:"top_categories_by_count"` // 商品数前 5 的分类
	StockByCategory      []CategoryStock `json:"stock_by_category"`       // 全部分类按库存降序
	Categories           []*CategoryAggregate `json:"categories"`         // 全部分类聚合（首次出现顺序）
}

// CategoryByName finds a category aggregate by its raw name, nil if absent.
func (m *InventoryMetrics) CategoryByName(name string) *CategoryAggregate {
	for _, c := range m.Categories {
		if c != nil && c.Category == name {
			return c
		}
	}
	return nil
}
