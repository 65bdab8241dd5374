package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// PublishOutcomes returns a timeseries panel showing publish attempts by
// final status.
func PublishOutcomes() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Publish Outcomes").
		Description("Publish attempts per second by final status").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(thirdWidth).
		WithTarget(PromQuery(`sum by (status) (rate(lister_publish_attempts_total[5m]))`, "{{status}}", "A")).
		Unit("ops").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// StageFailures returns a timeseries panel showing publish failures by the
// pipeline stage that failed.
func StageFailures() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Stage Failures").
		Description("Publish failures in the last hour by pipeline stage").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(thirdWidth).
		WithTarget(PromQuery(`sum by (stage) (increase(lister_publish_stage_failures_total[1h]))`, "{{stage}}", "A")).
		FillOpacity(30).
		LineWidth(1).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleBars)
}

// StageDuration returns a timeseries panel showing p95 duration of each
// publish pipeline stage.
func StageDuration() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Stage Duration (p95)").
		Description("95th percentile duration of each publish stage").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(thirdWidth).
		WithTarget(PromQuery(
			`histogram_quantile(0.95, sum by (le, stage) (rate(lister_publish_stage_duration_seconds_bucket[5m])))`,
			"{{stage}}", "A",
		)).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// ReconcileErrors returns a stat panel showing failed background persist
// retries in the past hour.
func ReconcileErrors() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Reconcile Errors (1h)").
		Description("Background persist retries that failed in the last hour").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(`sum(increase(lister_reconcile_writes_total{result="error"}[1h]))`, "", "A")).
		Thresholds(ThresholdsGreenYellowRed(1, 10)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}
