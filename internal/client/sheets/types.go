// Package sheets provides a client for the Google Sheets values API.
package sheets

import (
	"strconv"

	"inventory-dashboard/internal/model"
)

// ValuesResponse represents the API response from the
// /spreadsheets/{id}/values/{range} endpoint.
type ValuesResponse struct {
	Range          string     `json:"range"`          // 实际返回的区间（如 "interactions!A1:G100"）
	MajorDimension string     `json:"majorDimension"` // 行/列主序
	Values         [][]string `json:"values"`         // 单元格数据，首行为表头
}

// APIError represents the error body returned by the Sheets API.
type APIError struct {
	Error struct {
		Code    int    `json:"code"`    // HTTP 状态码
		Message string `json:"message"` // 错误描述
		Status  string `json:"status"`  // 错误状态标识
	} `json:"error"`
}

// Column positions within a sheet row. The sheet layout is positional:
// ID, name, category, price, stock, query count, last updated.
const (
	colID = iota
	colName
	colCategory
	colPrice
	colStock
	colQueryCount
	colLastUpdated
)

// ParseRecords converts sheet rows into inventory records. The first row is
// the header and is skipped. Missing cells default to empty strings, cells
// that fail numeric parsing default to 0, and a missing id is replaced with
// a positional placeholder, matching the upstream sheet conventions.
func ParseRecords(values [][]string) []model.InventoryRecord {
	if len(values) < 2 {
		return []model.InventoryRecord{}
	}

	rows := values[1:]
	records := make([]model.InventoryRecord, 0, len(rows))
	for i, row := range rows {
		record := model.InventoryRecord{
			ID:          cell(row, colID),
			Name:        cell(row, colName),
			Category:    cell(row, colCategory),
			Price:       parseFloat(cell(row, colPrice)),
			Stock:       parseInt(cell(row, colStock)),
			QueryCount:  parseInt(cell(row, colQueryCount)),
			LastUpdated: cell(row, colLastUpdated),
		}
		if record.ID == "" {
			record.ID = "item-" + strconv.Itoa(i)
		}
		records = append(records, record)
	}
	return records
}

// cell returns the value at index idx, or "" when the row is too short.
func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}

// parseFloat parses a cell to float64, defaulting to 0 on malformed input.
// Values are passed through as-is; the sheet owns data quality.
func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// parseInt parses a cell to int, defaulting to 0 on malformed input.
func parseInt(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}
