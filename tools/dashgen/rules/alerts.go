package rules

import "fmt"

// AlertRules returns a PrometheusRule CR containing alert rules for
// ebay-lister operational monitoring. dailyLimit is the configured eBay
// daily call ceiling.
func AlertRules(dailyLimit int) PrometheusRule {
	quotaWarn := dailyLimit * 8 / 10

	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "lister-alerts",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "lister-alerts",
					Rules: []Rule{
						{
							Alert: "ListerDown",
							Expr:  `absent(up{job="ebay-lister"})`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "eBay lister is down",
								"description": "The ebay-lister job has been absent for more than 2 minutes.",
							},
						},
						{
							Alert: "ListerReadinessDown",
							Expr:  `lister_readyz_up == 0`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "eBay lister readiness check is failing",
								"description": "The readiness probe has been reporting not-ready for more than 2 minutes.",
							},
						},
						{
							Alert: "ListerHighErrorRate",
							Expr:  `lister:http_errors:rate5m / lister:http_requests:rate5m > 0.05`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "High HTTP error rate on eBay lister",
								"description": "More than 5% of HTTP requests are returning 5xx errors over the last 5 minutes.",
							},
						},
						{
							Alert: "ListerPublishFailures",
							Expr:  `lister:publish_failures:rate5m / lister:publish_attempts:rate5m > 0.25`,
							For:   "15m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Publish failure rate is elevated",
								"description": "More than a quarter of publish attempts have failed over the last 15 minutes.",
							},
						},
						{
							Alert: "ListerPersistPendingStuck",
							Expr:  `lister_persist_pending_listings > 0`,
							For:   "30m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Live listings are missing their local record",
								"description": "Listings published to eBay have been waiting for their final database write for more than 30 minutes.",
							},
						},
						{
							Alert: "ListerAccountNeedsReauth",
							Expr:  `lister_accounts_needing_reauth > 0`,
							For:   "0m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "A seller account must be reconnected",
								"description": "eBay rejected a refresh token. Publishing and sync for that account fail until the seller reconnects.",
							},
						},
						{
							Alert: "ListerSyncAbandoned",
							Expr:  `increase(lister_sync_abandoned_total[1h]) > 0`,
							For:   "0m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "A sync run was abandoned",
								"description": "An in-progress sync exceeded the abandon timeout and was marked failed.",
							},
						},
						{
							Alert: "ListerEbayQuotaHigh",
							Expr:  fmt.Sprintf(`lister_ebay_daily_usage > %d`, quotaWarn),
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "eBay API daily usage is above 80% of the quota",
								"description": fmt.Sprintf("Daily eBay API usage has exceeded %d calls (limit is %d).", quotaWarn, dailyLimit),
							},
						},
						{
							Alert: "ListerEbayLimitReached",
							Expr:  `increase(lister_ebay_daily_limit_hits_total[5m]) > 0`,
							For:   "0m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "eBay API daily limit has been reached",
								"description": "The eBay daily call quota has been exhausted. Publishing and sync are refused until reset.",
							},
						},
						{
							Alert: "ListerNotificationFailures",
							Expr:  `increase(lister_notification_failures_total[5m]) > 0`,
							For:   "1m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Notification delivery failures detected",
								"description": "One or more Discord webhook notifications have failed to send.",
							},
						},
					},
				},
			},
		},
	}
}
