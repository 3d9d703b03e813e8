// Package sheets provides a client for the Google Sheets values API.
package sheets

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"inventory-dashboard/internal/config"
	"inventory-dashboard/internal/model"
)

// Client is a client for the Google Sheets values API.
type Client struct {
	endpoint      string             // API endpoint
	spreadsheetID string             // 表格 ID
	apiKey        string             // API key
	ranges        []string           // 读取的工作表区间
	timeout       time.Duration      // Request timeout
	retry         config.RetryConfig // Retry configuration
	httpClient    *resty.Client      // HTTP client
	logger        zerolog.Logger     // Logger
}

// NewClient creates a new Sheets API client.
func NewClient(cfg *config.SheetsConfig, retryCfg *config.RetryConfig, logger zerolog.Logger) *Client {
	// Set default timeout if not specified
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	// Set default retry config if not specified
	retry := config.RetryConfig{
		MaxRetries: 3,
		BaseDelay:  1 * time.Second,
	}
	if retryCfg != nil {
		retry = *retryCfg
	}

	// Create resty client. The API key travels as a query parameter, the way
	// the values endpoint expects it.
	httpClient := resty.New().
		SetBaseURL(cfg.Endpoint).
		SetTimeout(timeout).
		SetQueryParam("key", cfg.APIKey).
		SetHeader("Accept", "application/json").
		SetRetryCount(retry.MaxRetries).
		SetRetryWaitTime(retry.BaseDelay).
		SetRetryMaxWaitTime(retry.BaseDelay * 8). // Max wait time for exponential backoff
		AddRetryCondition(retryCondition)

	return &Client{
		endpoint:      cfg.Endpoint,
		spreadsheetID: cfg.SpreadsheetID,
		apiKey:        cfg.APIKey,
		ranges:        cfg.Ranges,
		timeout:       timeout,
		retry:         retry,
		httpClient:    httpClient,
		logger:        logger.With().Str("component", "sheets-client").Logger(),
	}
}

// retryCondition determines whether a request should be retried.
// Only retry on timeout, 5xx errors, or connection failures.
// Do not retry on 4xx errors.
func retryCondition(resp *resty.Response, err error) bool {
	// Retry on error (timeout, connection failure, etc.)
	if err != nil {
		return true
	}

	// Retry on 5xx server errors
	if resp != nil && resp.StatusCode() >= 500 {
		return true
	}

	// Do not retry on 4xx client errors
	return false
}

// GetValues retrieves the raw cell values for a single sheet range.
func (c *Client) GetValues(ctx context.Context, sheetRange string) (*ValuesResponse, error) {
	c.logger.Debug().Str("range", sheetRange).Msg("fetching values from sheets API")

	var result ValuesResponse
	var apiErr APIError

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&result).
		SetError(&apiErr).
		SetPathParams(map[string]string{
			"spreadsheetID": c.spreadsheetID,
			"range":         sheetRange,
		}).
		Get("/spreadsheets/{spreadsheetID}/values/{range}")

	if err != nil {
		c.logger.Error().Err(err).Str("range", sheetRange).Msg("failed to fetch values")
		return nil, fmt.Errorf("failed to fetch values for range %s: %w", sheetRange, err)
	}

	// Check HTTP status code
	if resp.StatusCode() != http.StatusOK {
		c.logger.Error().
			Int("status_code", resp.StatusCode()).
			Str("range", sheetRange).
			Str("api_status", apiErr.Error.Status).
			Str("api_message", apiErr.Error.Message).
			Msg("sheets API returned non-200 status")
		if apiErr.Error.Message != "" {
			return nil, fmt.Errorf("sheets API error for range %s: %s (%s)",
				sheetRange, apiErr.Error.Message, apiErr.Error.Status)
		}
		return nil, fmt.Errorf("sheets API returned status %d for range %s",
			resp.StatusCode(), sheetRange)
	}

	c.logger.Debug().
		Str("range", result.Range).
		Int("rows", len(result.Values)).
		Msg("fetched values successfully")
	return &result, nil
}

// GetRecords retrieves all configured ranges and converts their rows into
// inventory records. Ranges are fetched concurrently; records are returned
// in configuration order so batches are deterministic.
func (c *Client) GetRecords(ctx context.Context) ([]model.InventoryRecord, error) {
	c.logger.Debug().Strs("ranges", c.ranges).Msg("fetching inventory records")

	if len(c.ranges) == 0 {
		return []model.InventoryRecord{}, nil
	}

	perRange := make([][]model.InventoryRecord, len(c.ranges))
	g, gctx := errgroup.WithContext(ctx)

	for i, sheetRange := range c.ranges {
		i, sheetRange := i, sheetRange
		g.Go(func() error {
			result, err := c.GetValues(gctx, sheetRange)
			if err != nil {
				return err
			}
			perRange[i] = ParseRecords(result.Values)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var records []model.InventoryRecord
	for _, batch := range perRange {
		records = append(records, batch...)
	}

	c.logger.Info().
		Int("count", len(records)).
		Int("ranges", len(c.ranges)).
		Msg("fetched inventory records successfully")
	return records, nil
}
