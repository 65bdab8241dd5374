// Package metrics defines Prometheus metrics for ebay-lister.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "lister"

// HTTP metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})

	HealthzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "healthz_up",
		Help:      "1 if the last liveness probe succeeded, 0 otherwise.",
	})

	ReadyzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "readyz_up",
		Help:      "1 if the last readiness probe succeeded, 0 otherwise.",
	})
)

// Publish pipeline metrics.
var (
	PublishAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "publish_attempts_total",
		Help:      "Publish attempts by final status (listed, failed, persist_pending).",
	}, []string{"environment", "status"})

	PublishStageFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "publish_stage_failures_total",
		Help:      "Publish failures by pipeline stage.",
	}, []string{"stage"})

	PublishStageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "publish_stage_duration_seconds",
		Help:      "Duration of each publish pipeline stage in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"stage"})

	PersistPending = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "persist_pending_listings",
		Help:      "Listings live on eBay whose final local write is still queued.",
	})

	ReconcileWritesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reconcile_writes_total",
		Help:      "Background persist retries by result (success, error).",
	}, []string{"result"})
)

// Sync metrics.
var (
	SyncRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sync_runs_total",
		Help:      "Sync runs by outcome (completed, failed, rate_limited).",
	}, []string{"outcome"})

	SyncItemsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sync_items_total",
		Help:      "Total local listings updated by syncs.",
	})

	SyncDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "sync_duration_seconds",
		Help:      "Duration of sync runs in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	SyncAbandonedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sync_abandoned_total",
		Help:      "In-progress sync entries marked failed after the abandon timeout.",
	})
)

// Token metrics.
var (
	TokenRefreshesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refreshes_total",
		Help:      "Token refresh exchanges by result (success, rejected, error).",
	}, []string{"result"})

	AccountsNeedingReauth = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "accounts_needing_reauth",
		Help:      "Accounts whose refresh token was rejected.",
	})
)

// eBay API metrics.
var (
	EbayAPICallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ebay_api_calls_total",
		Help:      "Total eBay API calls by operation and status class.",
	}, []string{"call", "status"})

	EbayAPICallDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "ebay_api_call_duration_seconds",
		Help:      "Duration of eBay API calls in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"call"})

	EbayDailyUsage = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "ebay_daily_usage",
		Help:      "Current daily eBay API call count within the rolling 24-hour window.",
	})

	EbayDailyLimitHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ebay_daily_limit_hits_total",
		Help:      "Total number of times the daily eBay API limit was reached.",
	})
)

// Notification metrics.
var (
	NotificationFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_failures_total",
		Help:      "Total number of notification send failures.",
	})

	NotificationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "notification_duration_seconds",
		Help:      "Duration of webhook notification sends in seconds.",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5},
	})
)
