// Package service provides business logic services for the inventory dashboard tool.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"inventory-dashboard/internal/config"
	"inventory-dashboard/internal/model"
)

const defaultTimezone = "Asia/Shanghai"

// RecordSource supplies the ordered record batch for one refresh. The
// production implementation is the sheets client; tests use fakes.
type RecordSource interface {
	GetRecords(ctx context.Context) ([]model.InventoryRecord, error)
}

// Dashboard orchestrates a complete refresh cycle, coordinating record
// fetching, metrics aggregation and alert regeneration.
type Dashboard struct {
	source     RecordSource
	aggregator *Aggregator
	store      *AlertStore
	config     *config.Config
	timezone   *time.Location
	version    string
	logger     zerolog.Logger
}

// DashboardOption is a functional option for configuring a Dashboard.
type DashboardOption func(*Dashboard)

// NewDashboard creates a new Dashboard with the given dependencies.
func NewDashboard(
	cfg *config.Config,
	source RecordSource,
	aggregator *Aggregator,
	store *AlertStore,
	logger zerolog.Logger,
	opts ...DashboardOption,
) (*Dashboard, error) {
	// Determine timezone from config or use default
	tzName := defaultTimezone
	if cfg != nil && cfg.Report.Timezone != "" {
		tzName = cfg.Report.Timezone
	}

	// Load timezone
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %s: %w", tzName, err)
	}

	d := &Dashboard{
		source:     source,
		aggregator: aggregator,
		store:      store,
		config:     cfg,
		timezone:   loc,
		version:    "dev",
		logger:     logger.With().Str("component", "dashboard").Logger(),
	}

	// Apply options
	for _, opt := range opts {
		opt(d)
	}

	return d, nil
}

// WithVersion sets the tool version to include in the refresh result.
func WithVersion(version string) DashboardOption {
	return func(d *Dashboard) {
		d.version = version
	}
}

// GetTimezone returns the timezone used for result timestamps.
func (d *Dashboard) GetTimezone() *time.Location {
	return d.timezone
}

// Store returns the alert lifecycle store backing this dashboard.
func (d *Dashboard) Store() *AlertStore {
	return d.store
}

// Refresh executes one complete refresh cycle:
// 1. Fetches the current record batch from the record source
// 2. Computes the metrics snapshot
// 3. Regenerates alerts, carrying resolution state over by id
func (d *Dashboard) Refresh(ctx context.Context) (*model.DashboardResult, error) {
	startTime := time.Now().In(d.timezone)
	d.logger.Info().
		Time("start_time", startTime).
		Str("timezone", d.timezone.String()).
		Msg("starting dashboard refresh")

	// Create result container
	result := model.NewDashboardResult(startTime)
	result.Version = d.version

	// Step 1: Fetch records
	d.logger.Debug().Msg("step 1: fetching records")
	records, err := d.source.GetRecords(ctx)
	if err != nil {
		d.logger.Error().Err(err).Msg("record fetch failed")
		return nil, fmt.Errorf("record fetch failed: %w", err)
	}
	result.Records = records

	// Step 2: Compute metrics
	d.logger.Debug().Int("records", len(records)).Msg("step 2: computing metrics")
	result.Metrics = d.aggregator.Compute(records)

	// Step 3: Regenerate alerts
	d.logger.Debug().Msg("step 3: regenerating alerts")
	d.store.Refresh(records)
	result.Alerts = d.store.All()

	// Step 4: Finalize result (calculate summaries)
	endTime := time.Now().In(d.timezone)
	result.Finalize(endTime)

	d.logger.Info().
		Int("total_products", result.Metrics.TotalProducts).
		Int("total_alerts", result.AlertSummary.TotalAlerts).
		Int("active_alerts", result.AlertSummary.ActiveCount).
		Int("critical_alerts", result.AlertSummary.CriticalCount).
		Dur("duration", result.Duration).
		Msg("dashboard refresh completed")

	return result, nil
}
