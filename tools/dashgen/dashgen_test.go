package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/ebay-lister/tools/dashgen/dashboards"
	"github.com/donaldgifford/ebay-lister/tools/dashgen/rules"
	"github.com/donaldgifford/ebay-lister/tools/dashgen/validate"
)

func TestDefaultConfigValid(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "empty output dir", cfg: Config{DashboardEnabled: true, DailyLimit: 5000}},
		{name: "nothing enabled", cfg: Config{OutputDir: "/tmp", DailyLimit: 5000}},
		{name: "zero daily limit", cfg: Config{OutputDir: "/tmp", RulesEnabled: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Error(t, tt.cfg.Validate())
		})
	}
}

func TestBuildOverviewDashboard(t *testing.T) {
	t.Parallel()

	dash, err := dashboards.BuildOverview(5000).Build()
	require.NoError(t, err)

	require.NotNil(t, dash.Uid)
	assert.Equal(t, "lister-overview", *dash.Uid)

	require.NotNil(t, dash.Title)
	assert.Equal(t, "eBay Lister Overview", *dash.Title)

	require.NotNil(t, dash.Templating)
	assert.Len(t, dash.Templating.List, 1)
	assert.Equal(t, "datasource", dash.Templating.List[0].Name)

	assert.Len(t, dash.Panels, 6)

	totalPanels := 0
	for _, p := range dash.Panels {
		if p.RowPanel != nil {
			totalPanels += len(p.RowPanel.Panels)
		}
	}
	assert.Equal(t, 23, totalPanels)

	result := validate.Dashboard(dash, KnownMetrics)
	assert.True(t, result.Ok(), "validation errors: %v", result.Errors)
	assert.Empty(t, result.Warnings, "unexpected warnings: %v", result.Warnings)
}

func TestRecordingRules(t *testing.T) {
	t.Parallel()

	cr := rules.RecordingRules()
	assert.Equal(t, "monitoring.coreos.com/v1", cr.APIVersion)
	assert.Equal(t, "PrometheusRule", cr.Kind)
	assert.Equal(t, "lister-recording-rules", cr.Metadata.Name)

	require.Len(t, cr.Spec.Groups, 1)
	group := cr.Spec.Groups[0]
	assert.Equal(t, "lister-recording", group.Name)

	assert.Equal(t, []string{
		"lister:http_requests:rate5m",
		"lister:http_errors:rate5m",
		"lister:publish_attempts:rate5m",
		"lister:publish_failures:rate5m",
		"lister:sync_runs:rate5m",
		"lister:ebay_api_calls:rate5m",
	}, cr.Records())

	for _, r := range cr.Records() {
		assert.True(t, KnownMetrics[r], "recording rule %s missing from KnownMetrics", r)
	}

	result := validate.Rules(cr, KnownMetrics)
	assert.True(t, result.Ok(), "validation errors: %v", result.Errors)

	data, err := yaml.Marshal(cr)
	require.NoError(t, err)
	assert.Contains(t, string(data), "apiVersion: monitoring.coreos.com/v1")
}

func TestAlertRules(t *testing.T) {
	t.Parallel()

	cr := rules.AlertRules(5000)
	assert.Equal(t, "lister-alerts", cr.Metadata.Name)

	require.Len(t, cr.Spec.Groups, 1)
	group := cr.Spec.Groups[0]
	assert.Equal(t, "lister-alerts", group.Name)

	expectedAlerts := []string{
		"ListerDown",
		"ListerReadinessDown",
		"ListerHighErrorRate",
		"ListerPublishFailures",
		"ListerPersistPendingStuck",
		"ListerAccountNeedsReauth",
		"ListerSyncAbandoned",
		"ListerEbayQuotaHigh",
		"ListerEbayLimitReached",
		"ListerNotificationFailures",
	}
	require.Len(t, group.Rules, len(expectedAlerts))
	for i, rule := range group.Rules {
		assert.Equal(t, expectedAlerts[i], rule.Alert)
		assert.NotEmpty(t, rule.Expr)
		assert.NotEmpty(t, rule.Labels["severity"], "alert %s missing severity", rule.Alert)
		assert.NotEmpty(t, rule.Annotations["summary"], "alert %s missing summary", rule.Alert)
		assert.NotEmpty(t, rule.Annotations["description"], "alert %s missing description", rule.Alert)
	}
	assert.Equal(t, "lister_ebay_daily_usage > 4000", group.Rules[7].Expr)

	result := validate.Rules(cr, KnownMetrics)
	assert.True(t, result.Ok(), "validation errors: %v", result.Errors)
}

func TestValidateExpr(t *testing.T) {
	t.Parallel()

	known := map[string]bool{"lister_sync_runs_total": true}

	tests := []struct {
		name     string
		expr     string
		wantOk   bool
		wantWarn bool
	}{
		{name: "known metric", expr: `rate(lister_sync_runs_total[5m])`, wantOk: true},
		{name: "unknown metric", expr: `rate(lister_missing_total[5m])`},
		{name: "parse error", expr: `rate(lister_sync_runs_total[5m]`},
		{name: "nameless selector", expr: `{job="ebay-lister"}`, wantOk: true, wantWarn: true},
		{name: "no selectors", expr: `time()`, wantOk: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := validate.Expr(tt.expr, known)
			assert.Equal(t, tt.wantOk, res.Ok(), "errors: %v", res.Errors)
			assert.Equal(t, tt.wantWarn, len(res.Warnings) > 0, "warnings: %v", res.Warnings)
		})
	}
}

func TestRunWritesArtifacts(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.OutputDir = t.TempDir()

	require.NoError(t, run(cfg, false))

	dash, err := os.ReadFile(filepath.Join(cfg.OutputDir, "grafana", "data", "lister-overview.json"))
	require.NoError(t, err)
	assert.Contains(t, string(dash), `"uid": "lister-overview"`)

	for _, name := range []string{"lister-recording-rules.yaml", "lister-alerts.yaml"} {
		data, err := os.ReadFile(filepath.Join(cfg.OutputDir, "prometheus", name))
		require.NoError(t, err, name)
		assert.Contains(t, string(data), generatedHeader)
		assert.Contains(t, string(data), "kind: PrometheusRule")
	}
}

func TestRunValidateOnlyWritesNothing(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.OutputDir = t.TempDir()

	require.NoError(t, run(cfg, true))

	entries, err := os.ReadDir(cfg.OutputDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
