package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// SyncRuns returns a timeseries panel showing sync runs by outcome.
func SyncRuns() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Sync Runs").
		Description("Sync runs in the last hour by outcome").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(thirdWidth).
		WithTarget(PromQuery(`sum by (outcome) (increase(lister_sync_runs_total[1h]))`, "{{outcome}}", "A")).
		FillOpacity(30).
		LineWidth(1).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleBars)
}

// SyncDuration returns a timeseries panel showing p50 and p95 sync duration.
func SyncDuration() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Sync Duration").
		Description("Sync run duration percentiles").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(thirdWidth).
		WithTarget(PromQuery(
			`histogram_quantile(0.50, sum(rate(lister_sync_duration_seconds_bucket[1h])) by (le))`,
			"p50", "A",
		)).
		WithTarget(PromQuery(
			`histogram_quantile(0.95, sum(rate(lister_sync_duration_seconds_bucket[1h])) by (le))`,
			"p95", "B",
		)).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// SyncItems returns a timeseries panel showing local listings refreshed by syncs.
func SyncItems() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Items Synced").
		Description("Local listings refreshed per hour").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(thirdWidth).
		WithTarget(PromQuery(`increase(lister_sync_items_total[1h])`, "items", "A")).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// AbandonedSyncs returns a stat panel showing in-progress syncs that were
// marked failed after timing out.
func AbandonedSyncs() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Abandoned Syncs (24h)").
		Description("In-progress sync entries marked failed after the abandon timeout").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(`increase(lister_sync_abandoned_total[24h])`, "", "A")).
		Thresholds(ThresholdsGreenYellowRed(1, 3)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeNone)
}
