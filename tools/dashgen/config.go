package main

import "errors"

// KnownMetrics is the set of metric names exported by ebay-lister plus
// recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// HTTP metrics.
	"lister_http_request_duration_seconds_bucket": true,
	"lister_http_requests_total":                  true,

	// Health metrics.
	"lister_healthz_up": true,
	"lister_readyz_up":  true,

	// Publish pipeline metrics.
	"lister_publish_attempts_total":                true,
	"lister_publish_stage_failures_total":          true,
	"lister_publish_stage_duration_seconds_bucket": true,
	"lister_persist_pending_listings":              true,
	"lister_reconcile_writes_total":                true,

	// Sync metrics.
	"lister_sync_runs_total":              true,
	"lister_sync_items_total":             true,
	"lister_sync_duration_seconds_bucket": true,
	"lister_sync_abandoned_total":         true,

	// Account metrics.
	"lister_token_refreshes_total":   true,
	"lister_accounts_needing_reauth": true,

	// eBay API metrics.
	"lister_ebay_api_calls_total":                  true,
	"lister_ebay_api_call_duration_seconds_bucket": true,
	"lister_ebay_daily_usage":                      true,
	"lister_ebay_daily_limit_hits_total":           true,

	// Notification metrics.
	"lister_notification_failures_total": true,

	// Recording rules.
	"lister:http_requests:rate5m":    true,
	"lister:http_errors:rate5m":      true,
	"lister:publish_attempts:rate5m": true,
	"lister:publish_failures:rate5m": true,
	"lister:sync_runs:rate5m":        true,
	"lister:ebay_api_calls:rate5m":   true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool

	// DailyLimit mirrors rate_limit.daily_limit in the server config so
	// quota panels and alerts share the same ceiling.
	DailyLimit int
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
		DailyLimit:       5000,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	if c.DailyLimit <= 0 {
		return errors.New("daily limit must be positive")
	}
	return nil
}
