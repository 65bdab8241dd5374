package ebay

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const userRateLimitPath = "/developer/analytics/v1_beta/user_rate_limit/"

// rateLimitResponse is the top-level Analytics API response.
type rateLimitResponse struct {
	RateLimits []rateLimitEntry `json:"rateLimits"`
}

// rateLimitEntry represents one API context in the Analytics response.
type rateLimitEntry struct {
	APIContext string     `json:"apiContext"`
	APIName    string     `json:"apiName"`
	APIVersion string     `json:"apiVersion"`
	Resources  []resource `json:"resources"`
}

type resource struct {
	Name  string      `json:"name"`
	Rates []quotaRate `json:"rates"`
}

type quotaRate struct {
	Count      int64  `json:"count"`
	Limit      int64  `json:"limit"`
	Remaining  int64  `json:"remaining"`
	Reset      string `json:"reset"`
	TimeWindow int64  `json:"timeWindow"`
}

// QuotaState holds the remote quota for a single eBay API resource.
type QuotaState struct {
	APIContext string        `json:"api_context"`
	APIName    string        `json:"api_name"`
	Resource   string        `json:"resource"`
	Count      int64         `json:"count"`
	Limit      int64         `json:"limit"`
	Remaining  int64         `json:"remaining"`
	ResetAt    time.Time     `json:"reset_at"`
	TimeWindow time.Duration `json:"time_window"`
}

// GetUserRateLimits returns the per-user quota of every API resource the
// account has touched, as reported by the Developer Analytics API.
func (c *Client) GetUserRateLimits(ctx context.Context, auth Auth) ([]QuotaState, error) {
	cfg, err := c.env(auth.Environment)
	if err != nil {
		return nil, err
	}

	u := strings.TrimRight(cfg.APIURL, "/") + userRateLimitPath

	var resp rateLimitResponse
	if _, err := c.sendJSON(ctx, "analytics_user_rate_limit", http.MethodGet, u, auth, nil, &resp); err != nil {
		return nil, fmt.Errorf("getting user rate limits: %w", err)
	}

	return flattenQuota(resp)
}

// flattenQuota turns the nested response into one QuotaState per resource,
// using the first rate window of each.
func flattenQuota(resp rateLimitResponse) ([]QuotaState, error) {
	var out []QuotaState
	for _, entry := range resp.RateLimits {
		for _, res := range entry.Resources {
			if len(res.Rates) == 0 {
				continue
			}
			r := res.Rates[0]

			var resetAt time.Time
			if r.Reset != "" {
				t, err := time.Parse(time.RFC3339, r.Reset)
				if err != nil {
					return nil, fmt.Errorf("parsing reset time %q for %s: %w", r.Reset, res.Name, err)
				}
				resetAt = t
			}

			out = append(out, QuotaState{
				APIContext: entry.APIContext,
				APIName:    entry.APIName,
				Resource:   res.Name,
				Count:      r.Count,
				Limit:      r.Limit,
				Remaining:  r.Remaining,
				ResetAt:    resetAt,
				TimeWindow: time.Duration(r.TimeWindow) * time.Second,
			})
		}
	}
	return out, nil
}
