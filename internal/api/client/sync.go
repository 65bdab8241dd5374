package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/donaldgifford/ebay-lister/internal/ebay"
	domain "github.com/donaldgifford/ebay-lister/pkg/types"
)

// CooldownResponse reports when the next sync is allowed.
type CooldownResponse struct {
	CanSync          bool `json:"can_sync"`
	RemainingSeconds int  `json:"remaining_seconds"`
}

// Sync refreshes listing metrics for key, or the active account when key is
// empty.
func (c *Client) Sync(ctx context.Context, key string) (*domain.SyncLogEntry, error) {
	body := map[string]string{}
	if key != "" {
		body["account_key"] = key
	}

	var result domain.SyncLogEntry
	if err := c.post(ctx, "/api/v1/sync", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SyncHistory returns the newest sync attempts for key.
func (c *Client) SyncHistory(ctx context.Context, key string, limit int) ([]domain.SyncLogEntry, error) {
	q := url.Values{}
	if key != "" {
		q.Set("account_key", key)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	path := "/api/v1/sync/history"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var result struct {
		Entries []domain.SyncLogEntry `json:"entries"`
	}
	if err := c.get(ctx, path, &result); err != nil {
		return nil, err
	}
	return result.Entries, nil
}

// SyncCooldown reports the remaining cooldown for key.
func (c *Client) SyncCooldown(ctx context.Context, key string) (*CooldownResponse, error) {
	path := "/api/v1/sync/cooldown"
	if key != "" {
		path += "?account_key=" + url.QueryEscape(key)
	}

	var result CooldownResponse
	if err := c.get(ctx, path, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Quota returns the server's local eBay call budget.
func (c *Client) Quota(ctx context.Context) (*ebay.Usage, error) {
	var result ebay.Usage
	if err := c.get(ctx, "/api/v1/quota", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// RemoteQuota returns the per-resource quota eBay reports for key.
func (c *Client) RemoteQuota(ctx context.Context, key string) ([]ebay.QuotaState, error) {
	path := "/api/v1/quota/remote"
	if key != "" {
		path += "?account_key=" + url.QueryEscape(key)
	}

	var result struct {
		Resources []ebay.QuotaState `json:"resources"`
	}
	if err := c.get(ctx, path, &result); err != nil {
		return nil, err
	}
	return result.Resources, nil
}
