package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// APICallsByOperation returns a timeseries panel showing the eBay API call
// rate split by operation.
func APICallsByOperation() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("API Calls by Operation").
		Description("eBay API calls per second, by call").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(thirdWidth).
		WithTarget(PromQuery(`sum by (call) (rate(lister_ebay_api_calls_total[5m]))`, "{{call}}", "A")).
		Unit("reqps").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// APILatency returns a timeseries panel showing p95 eBay API latency per call.
func APILatency() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("API Latency (p95)").
		Description("95th percentile eBay API call duration by call").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(thirdWidth).
		WithTarget(PromQuery(
			`histogram_quantile(0.95, sum by (le, call) (rate(lister_ebay_api_call_duration_seconds_bucket[5m])))`,
			"{{call}}", "A",
		)).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenYellowRed(2, 5)).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// DailyUsage returns a timeseries panel showing the rolling 24h eBay API
// usage with a threshold line at dailyLimit.
func DailyUsage(dailyLimit int) *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Daily Usage vs Limit").
		Description(fmt.Sprintf("Rolling 24h eBay API call count (limit: %d)", dailyLimit)).
		Datasource(DSRef()).
		Height(TSHeight).
		Span(thirdWidth).
		WithTarget(PromQuery(fmt.Sprintf(`lister_ebay_daily_usage{job=%q}`, Job), "usage", "A")).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenYellowRed(float64(dailyLimit)*0.8, float64(dailyLimit))).
		ColorScheme(ColorSchemeThresholds()).
		DrawStyle(common.GraphDrawStyleLine)
}

// LimitHits returns a stat panel showing the number of daily limit hits
// in the past 24 hours.
func LimitHits() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Limit Hits (24h)").
		Description("Times the eBay daily limit was reached in the last 24 hours").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(thirdWidth).
		WithTarget(PromQuery(fmt.Sprintf(`increase(lister_ebay_daily_limit_hits_total{job=%q}[24h])`, Job), "", "A")).
		Thresholds(ThresholdsGreenYellowRed(1, 3)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}
