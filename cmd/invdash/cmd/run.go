// Package cmd implements CLI commands for the inventory dashboard tool.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"inventory-dashboard/internal/client/sheets"
	"inventory-dashboard/internal/config"
	"inventory-dashboard/internal/model"
	"inventory-dashboard/internal/report"
	"inventory-dashboard/internal/service"
)

// Command flags
var (
	outputDir string   // Output directory for reports
	formats   []string // Output formats (excel, html)
	rulesPath string   // Path to alert rule definition file
)

// runCmd represents the run command.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "执行库存看板刷新",
	Long: `执行完整的库存看板刷新流程，包括：
1. 从 Google Sheets Values API 读取商品记录
2. 汇总全局与分类级库存指标
3. 根据固定规则表评估告警
4. 生成 Excel 和 HTML 格式的库存报告

示例:
  # 使用默认配置执行刷新
  invdash run -c config.yaml

  # 指定输出格式和目录
  invdash run -c config.yaml -f excel,html -o ./reports

  # 使用自定义告警规则定义文件
  invdash run -c config.yaml -r custom_rules.yaml`,
	Run: runDashboard,
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Define command-specific flags
	runCmd.Flags().StringSliceVarP(&formats, "format", "f", nil, "输出格式 (excel,html)，可用逗号分隔多个")
	runCmd.Flags().StringVarP(&outputDir, "output", "o", "", "输出目录")
	runCmd.Flags().StringVarP(&rulesPath, "rules", "r", "configs/alert-rules.yaml", "告警规则定义文件路径")
}

// runDashboard executes the complete dashboard refresh workflow.
func runDashboard(cmd *cobra.Command, args []string) {
	// Print banner first
	printBanner()

	// Step 1: Load configuration
	configPath := GetConfigFile()
	fmt.Printf("📋 加载配置文件: %s\n", configPath)
	cfg, err := config.Load(configPath)
	if err != nil {
		// Use temporary console logger for config loading errors
		tmpLogger := setupLogger("error", "console")
		tmpLogger.Error().Err(err).Str("path", configPath).Msg("failed to load config")
		fmt.Fprintf(os.Stderr, "❌ 加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// Step 2: Initialize logger with configuration
	// Command line --log-level overrides config file setting
	logLevel := cfg.Logging.Level
	if GetLogLevel() != "info" { // If explicitly set via command line
		logLevel = GetLogLevel()
	}
	logger := setupLogger(logLevel, cfg.Logging.Format)
	logger.Debug().
		Str("config_path", configPath).
		Str("log_level", logLevel).
		Str("log_format", cfg.Logging.Format).
		Msg("configuration loaded successfully")

	// Step 3: Load alert rule definitions
	fmt.Printf("📊 加载告警规则定义: %s", rulesPath)
	ruleDefs, err := config.LoadRuleDefs(rulesPath)
	if err != nil {
		logger.Error().Err(err).Str("path", rulesPath).Msg("failed to load rule definitions")
		fmt.Fprintf(os.Stderr, "\n❌ 加载告警规则定义失败: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf(" (%d 条规则)\n", len(ruleDefs))
	logger.Debug().Int("rules", len(ruleDefs)).Msg("rule definitions loaded")

	// Step 4: Determine output settings
	outputFormats := resolveFormats(cfg)
	outputPath := resolveOutputDir(cfg)

	// Ensure output directory exists
	if err := os.MkdirAll(outputPath, 0755); err != nil {
		logger.Error().Err(err).Str("path", outputPath).Msg("failed to create output directory")
		fmt.Fprintf(os.Stderr, "❌ 创建输出目录失败: %v\n", err)
		os.Exit(1)
	}

	// Step 5: Display data source info
	fmt.Println("🔗 连接数据源...")
	fmt.Printf("   - Google Sheets: %s (%s)\n", cfg.Datasource.Sheets.Endpoint, cfg.Datasource.Sheets.SpreadsheetID)
	fmt.Println()
	logger.Info().
		Str("sheets_endpoint", cfg.Datasource.Sheets.Endpoint).
		Str("spreadsheet_id", cfg.Datasource.Sheets.SpreadsheetID).
		Strs("ranges", cfg.Datasource.Sheets.Ranges).
		Msg("connecting to data source")

	// Step 6: Create client and services
	sheetsClient := sheets.NewClient(&cfg.Datasource.Sheets, &cfg.HTTP.Retry, logger)
	aggregator := service.NewAggregator(&cfg.Thresholds, logger)
	evaluator := service.NewEvaluator(&cfg.Thresholds, ruleDefs, logger)
	store := service.NewAlertStore(evaluator, logger)
	dashboard, err := service.NewDashboard(cfg, sheetsClient, aggregator, store, logger, service.WithVersion(Version))
	if err != nil {
		logger.Error().Err(err).Msg("failed to create dashboard")
		fmt.Fprintf(os.Stderr, "❌ 创建看板失败: %v\n", err)
		os.Exit(1)
	}
	logger.Debug().Msg("services initialized")

	// Step 7: Execute refresh
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	startTime := time.Now()

	fmt.Println("⏳ 开始看板刷新...")
	result, err := dashboard.Refresh(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("dashboard refresh failed")
		fmt.Fprintf(os.Stderr, "❌ 看板刷新失败: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\n📊 看板刷新完成！\n")
	printSummary(result)

	fmt.Printf("\n⏱️  总耗时 %.1fs\n", time.Since(startTime).Seconds())

	// Step 8: Generate reports
	fmt.Println("\n📄 生成报告:")
	logger.Info().
		Strs("formats", outputFormats).
		Str("output_dir", outputPath).
		Msg("starting report generation")

	timezone := dashboard.GetTimezone()
	registry := report.NewRegistry(timezone, cfg.Report.HTMLTemplate)
	filenameBase := generateFilename(cfg.Report.FilenameTemplate, timezone)

	for _, format := range outputFormats {
		writer, err := registry.Get(format)
		if err != nil {
			logger.Error().Str("format", format).Msg("unsupported format")
			fmt.Fprintf(os.Stderr, "   ❌ 不支持的格式: %s\n", format)
			continue
		}

		ext := "." + format
		if format == "excel" {
			ext = ".xlsx"
		}
		reportPath := filepath.Join(outputPath, filenameBase+ext)

		if err := writer.Write(result, reportPath); err != nil {
			logger.Error().Err(err).Str("format", format).Str("path", reportPath).Msg("failed to generate report")
			fmt.Fprintf(os.Stderr, "   ❌ %s 报告生成失败: %v\n", format, err)
			continue
		}

		logger.Info().Str("format", format).Str("path", reportPath).Msg("report generated successfully")
		fmt.Printf("   ✅ %s\n", reportPath)
	}

	// Exit with appropriate code based on active alert severities
	exitCode := 0
	if result.HasCritical() {
		exitCode = 2
	} else if result.HasHigh() {
		exitCode = 1
	}
	if exitCode > 0 {
		os.Exit(exitCode)
	}
}

// setupLogger creates a zerolog logger with the specified level and format.
// It sets the timezone to Asia/Shanghai for all log timestamps.
func setupLogger(level string, format string) zerolog.Logger {
	// Set log level
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	// Load Asia/Shanghai timezone for log timestamps
	tz, err := time.LoadLocation("Asia/Shanghai")
	if err != nil {
		tz = time.Local
	}

	// Set timezone for all timestamps
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().In(tz)
	}

	// Select output format based on configuration
	var output io.Writer
	if format == "json" {
		// JSON format - structured logging for log aggregation systems
		output = os.Stderr
	} else {
		// Console format - human-readable output for development
		output = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: "15:04:05",
			NoColor:    false,
		}
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// printBanner prints the application banner.
func printBanner() {
	fmt.Printf("🔍 库存看板工具 %s\n", Version)
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
}

// printSummary prints the refresh result summary.
func printSummary(result *model.DashboardResult) {
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	if result.Metrics != nil {
		fmt.Printf("   商品总数: %d\n", result.Metrics.TotalProducts)
		fmt.Printf("   库存总量: %d\n", result.Metrics.TotalStock)
		fmt.Printf("   库存总价值: %.2f\n", result.Metrics.TotalValue)
		fmt.Printf("   缺货商品: %d (%.1f%%)\n", result.Metrics.OutOfStockCount, result.Metrics.OutOfStockPct)
		fmt.Printf("   低库存商品: %d (%.1f%%)\n", result.Metrics.LowStockCount, result.Metrics.LowStockPct)
	}
	fmt.Println()
	if result.AlertSummary != nil {
		fmt.Printf("   告警总数: %d\n", result.AlertSummary.TotalAlerts)
		fmt.Printf("   未处理: %d\n", result.AlertSummary.ActiveCount)
		fmt.Printf("   严重级别: %d\n", result.AlertSummary.CriticalCount)
		fmt.Printf("   高级别: %d\n", result.AlertSummary.HighCount)
	}
}

// resolveFormats determines the output formats to use.
// Command line flags take precedence over config file.
func resolveFormats(cfg *config.Config) []string {
	if len(formats) > 0 {
		return formats
	}
	if len(cfg.Report.Formats) > 0 {
		return cfg.Report.Formats
	}
	return []string{"excel", "html"} // default
}

// resolveOutputDir determines the output directory to use.
// Command line flags take precedence over config file.
func resolveOutputDir(cfg *config.Config) string {
	if outputDir != "" {
		return outputDir
	}
	if cfg.Report.OutputDir != "" {
		return cfg.Report.OutputDir
	}
	return "./reports" // default
}

// generateFilename creates a filename from the template.
// Supports {{.Date}} placeholder for current date.
func generateFilename(template string, tz *time.Location) string {
	if template == "" {
		template = "inventory_report_{{.Date}}"
	}

	// Get current date in the configured timezone
	now := time.Now().In(tz)
	dateStr := now.Format("2006-01-02")

	// Replace placeholders
	filename := strings.ReplaceAll(template, "{{.Date}}", dateStr)
	filename = strings.ReplaceAll(filename, "{{ .Date }}", dateStr)

	return filename
}
