package client

import (
	"context"
	"net/url"

	domain "github.com/donaldgifford/ebay-lister/pkg/types"
)

// AccountInfo is an account as listed by the server.
type AccountInfo struct {
	domain.Account
	Active bool `json:"active"`
}

// ConnectResponse carries the consent URL for a new account.
type ConnectResponse struct {
	AuthorizeURL string `json:"authorize_url"`
	State        string `json:"state"`
}

// ListAccounts returns all connected accounts.
func (c *Client) ListAccounts(ctx context.Context) ([]AccountInfo, error) {
	var result struct {
		Accounts []AccountInfo `json:"accounts"`
	}
	if err := c.get(ctx, "/api/v1/accounts", &result); err != nil {
		return nil, err
	}
	return result.Accounts, nil
}

// SwitchAccount makes key the active account.
func (c *Client) SwitchAccount(ctx context.Context, key string) error {
	body := map[string]string{"account_key": key}
	return c.put(ctx, "/api/v1/accounts/active", body, nil)
}

// DisconnectAccount removes an account's credentials.
func (c *Client) DisconnectAccount(ctx context.Context, key string) error {
	return c.del(ctx, "/api/v1/accounts/"+url.PathEscape(key), nil)
}

// Connect starts the authorization flow for env.
func (c *Client) Connect(ctx context.Context, env string) (*ConnectResponse, error) {
	body := map[string]string{"environment": env}
	var result ConnectResponse
	if err := c.post(ctx, "/api/v1/accounts/connect", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CompleteConnect hands the code and state from the consent redirect to
// the server.
func (c *Client) CompleteConnect(ctx context.Context, state, code string) (*domain.Account, error) {
	q := url.Values{}
	q.Set("state", state)
	q.Set("code", code)

	var result domain.Account
	if err := c.get(ctx, "/api/v1/accounts/callback?"+q.Encode(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}
