package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// ReauthStat returns a stat panel showing accounts whose refresh token was
// rejected and need the seller to reconnect.
func ReauthStat() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Accounts Needing Reauth").
		Description("Connected accounts that must be re-authorized").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(`lister_accounts_needing_reauth`, "", "A")).
		Thresholds(ThresholdsGreenYellowRed(1, 2)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeNone).
		TextMode(common.BigValueTextModeValue)
}

// TokenRefreshes returns a timeseries panel showing token refresh results.
func TokenRefreshes() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Token Refreshes").
		Description("Refresh token exchanges per hour by result").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`sum by (result) (increase(lister_token_refreshes_total[1h]))`, "{{result}}", "A")).
		FillOpacity(30).
		LineWidth(1).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleBars)
}

// NotificationFailures returns a stat panel showing notification failures
// in the past 24 hours.
func NotificationFailures() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Notification Failures (24h)").
		Description("Failed webhook notification deliveries in the last 24 hours").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`increase(lister_notification_failures_total[24h])`, "", "A")).
		Thresholds(ThresholdsGreenYellowRed(1, 5)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}
