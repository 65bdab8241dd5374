package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "lister-recording-rules",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "lister-recording",
					Rules: []Rule{
						{
							Record: "lister:http_requests:rate5m",
							Expr:   `sum(rate(lister_http_requests_total[5m]))`,
						},
						{
							Record: "lister:http_errors:rate5m",
							Expr:   `sum(rate(lister_http_requests_total{status=~"5.."}[5m]))`,
						},
						{
							Record: "lister:publish_attempts:rate5m",
							Expr:   `sum(rate(lister_publish_attempts_total[5m]))`,
						},
						{
							Record: "lister:publish_failures:rate5m",
							Expr:   `sum(rate(lister_publish_attempts_total{status="failed"}[5m]))`,
						},
						{
							Record: "lister:sync_runs:rate5m",
							Expr:   `sum by (outcome) (rate(lister_sync_runs_total[5m]))`,
						},
						{
							Record: "lister:ebay_api_calls:rate5m",
							Expr:   `sum(rate(lister_ebay_api_calls_total[5m]))`,
						},
					},
				},
			},
		},
	}
}
