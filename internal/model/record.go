// Package model provides data models for the inventory dashboard tool.
package model

// InventoryRecord represents one inventory item snapshot fetched from the
// spreadsheet datasource. Records are immutable within a refresh cycle.
type InventoryRecord struct {
	ID          string  `json:"id"`           // 商品 ID（同批次内可能重复，不做去重）
	Name        string  `json:"name"`         // 商品名称
	Category    string  `json:"category"`     // 分类（区分大小写，空字符串为合法分类）
	Price       float64 `json:"price"`        // 单价（非负）
	Stock       int     `json:"stock"`        // 库存数量（非负）
	QueryCount  int     `json:"query_count"`  // 查询/关注次数
	LastUpdated string  `json:"last_updated"` // 最后更新时间（仅用于展示，不参与计算）
}

// IsOutOfStock returns true if this record has no stock.
func (r *InventoryRecord) IsOutOfStock() bool {
	return r.Stock == 0
}

// IsLowStock returns true if this record has stock within the low-stock band
// (0 < stock <= max). Mutually exclusive with IsOutOfStock.
func (r *InventoryRecord) IsLowStock(max int) bool {
	return r.Stock > 0 && r.Stock <= max
}
