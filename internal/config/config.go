// Package config provides configuration management for the inventory dashboard tool.
package config

import "time"

// Config is the root configuration structure for the inventory dashboard tool.
type Config struct {
	Datasource DatasourceConfig `mapstructure:"datasource" validate:"required"`
	Thresholds ThresholdsConfig `mapstructure:"thresholds"`
	Report     ReportConfig     `mapstructure:"report"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	HTTP       HTTPConfig       `mapstructure:"http"`
}

// DatasourceConfig contains configurations for data sources.
type DatasourceConfig struct {
	Sheets SheetsConfig `mapstructure:"sheets" validate:"required"`
}

// SheetsConfig contains configuration for the Google Sheets values API.
type SheetsConfig struct {
	Endpoint      string        `mapstructure:"endpoint" validate:"required,url"`
	SpreadsheetID string        `mapstructure:"spreadsheet_id" validate:"required"`
	APIKey        string        `mapstructure:"api_key" validate:"required"`
	Ranges        []string      `mapstructure:"ranges" validate:"min=1,dive,required"` // 工作表区间（如 "interactions"）
	Timeout       time.Duration `mapstructure:"timeout"`
}

// ThresholdsConfig contains the alert rule thresholds.
// Zero thresholds are valid configuration; defaults are applied by the loader.
type ThresholdsConfig struct {
	LowStockMax     int     `mapstructure:"low_stock_max" validate:"gte=0"`              // 低库存上界（0 < stock <= 该值触发）
	HighInterestMin int     `mapstructure:"high_interest_min" validate:"gte=0"`          // 高关注度下界（查询次数 > 该值触发）
	HighPriceMin    float64 `mapstructure:"high_price_min" validate:"gte=0"`             // 高价下界（价格 > 该值触发）
	CategoryRiskPct float64 `mapstructure:"category_risk_pct" validate:"gte=0,lte=100"`  // 分类缺货占比阈值（% > 该值触发）
}

// ReportConfig contains configurations for report generation.
type ReportConfig struct {
	OutputDir        string   `mapstructure:"output_dir"`
	Formats          []string `mapstructure:"formats" validate:"dive,oneof=excel html"`
	FilenameTemplate string   `mapstructure:"filename_template"`
	HTMLTemplate     string   `mapstructure:"html_template"`
	Timezone         string   `mapstructure:"timezone"`
}

// LoggingConfig contains configurations for logging.
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
}

// HTTPConfig contains HTTP client configurations including retry settings.
type HTTPConfig struct {
	Retry RetryConfig `mapstructure:"retry"`
}

// RetryConfig defines retry behavior for HTTP requests.
type RetryConfig struct {
	MaxRetries int           `mapstructure:"max_retries" validate:"gte=0,lte=10"`
	BaseDelay  time.Duration `mapstructure:"base_delay"`
}
