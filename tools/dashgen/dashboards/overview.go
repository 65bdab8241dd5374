// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/donaldgifford/ebay-lister/tools/dashgen/panels"
)

// UID is the stable Grafana UID of the overview dashboard.
const UID = "lister-overview"

// BuildOverview constructs the listing engine overview dashboard with all
// metric rows.
func BuildOverview(dailyLimit int) *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("eBay Lister Overview").
		Uid(UID).
		Tags([]string{"lister", "ebay-lister"}).
		Refresh("30s").
		Time("now-6h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	// Row 1: Overview.
	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.HealthzStat()).
		WithPanel(panels.ReadyzStat()).
		WithPanel(panels.QuotaGauge(dailyLimit)).
		WithPanel(panels.PersistPendingStat()).
		WithPanel(panels.UptimeStat()))

	// Row 2: HTTP.
	b.WithRow(dashboard.NewRowBuilder("HTTP").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ErrorRate()))

	// Row 3: Publish pipeline.
	b.WithRow(dashboard.NewRowBuilder("Publishing").
		WithPanel(panels.PublishOutcomes()).
		WithPanel(panels.StageFailures()).
		WithPanel(panels.StageDuration()).
		WithPanel(panels.ReconcileErrors()))

	// Row 4: Sync.
	b.WithRow(dashboard.NewRowBuilder("Sync").
		WithPanel(panels.SyncRuns()).
		WithPanel(panels.SyncDuration()).
		WithPanel(panels.SyncItems()).
		WithPanel(panels.AbandonedSyncs()))

	// Row 5: eBay API.
	b.WithRow(dashboard.NewRowBuilder("eBay API").
		WithPanel(panels.APICallsByOperation()).
		WithPanel(panels.APILatency()).
		WithPanel(panels.DailyUsage(dailyLimit)).
		WithPanel(panels.LimitHits()))

	// Row 6: Accounts and notifications.
	b.WithRow(dashboard.NewRowBuilder("Accounts").
		WithPanel(panels.ReauthStat()).
		WithPanel(panels.TokenRefreshes()).
		WithPanel(panels.NotificationFailures()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
