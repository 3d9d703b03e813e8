// Package config provides configuration management for the inventory dashboard tool.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Load reads configuration from the specified YAML file and environment variables.
// Environment variables take precedence over file values.
// Environment variable format: INVDASH_<SECTION>_<KEY> (e.g., INVDASH_DATASOURCE_SHEETS_API_KEY)
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults first
	setDefaults(v)

	// Configure environment variable binding
	v.SetEnvPrefix("INVDASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Check if config file exists
	if configPath == "" {
		return nil, fmt.Errorf("config file path is required")
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", configPath)
	}

	// Set config file
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Unmarshal into Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults sets default values for all configuration options.
func setDefaults(v *viper.Viper) {
	// Datasource defaults
	v.SetDefault("datasource.sheets.endpoint", "https://sheets.googleapis.com/v4")
	v.SetDefault("datasource.sheets.ranges", []string{"interactions"})
	v.SetDefault("datasource.sheets.timeout", 30*time.Second)

	// Threshold defaults - match the documented rule table
	v.SetDefault("thresholds.low_stock_max", 10)
	v.SetDefault("thresholds.high_interest_min", 50)
	v.SetDefault("thresholds.high_price_min", 1000.0)
	v.SetDefault("thresholds.category_risk_pct", 30.0)

	// Report defaults
	v.SetDefault("report.output_dir", "./reports")
	v.SetDefault("report.formats", []string{"excel", "html"})
	v.SetDefault("report.filename_template", "inventory_report_{{.Date}}")
	v.SetDefault("report.timezone", "Asia/Shanghai")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// HTTP retry defaults
	v.SetDefault("http.retry.max_retries", 3)
	v.SetDefault("http.retry.base_delay", 1*time.Second)
}
