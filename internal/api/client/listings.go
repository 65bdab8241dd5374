package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	domain "github.com/donaldgifford/ebay-lister/pkg/types"
)

// ListingsResponse wraps a paginated listings response.
type ListingsResponse struct {
	Listings []domain.Listing `json:"listings"`
	Total    int              `json:"total"`
	Limit    int              `json:"limit"`
	Offset   int              `json:"offset"`
}

// ListListingsParams defines query parameters for listing queries.
type ListListingsParams struct {
	AccountKey  string
	Environment string
	Statuses    []string
	CardID      string
	Limit       int
	Offset      int
	OrderBy     string
}

// Publish lists one item. A listing that went live but is still waiting on
// its final local write comes back with status persist_pending.
func (c *Client) Publish(ctx context.Context, req *domain.ListingRequest) (*domain.Listing, error) {
	var result domain.Listing
	if err := c.post(ctx, "/api/v1/listings", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListListings returns listings matching the given parameters.
func (c *Client) ListListings(
	ctx context.Context,
	params *ListListingsParams,
) (*ListingsResponse, error) {
	q := url.Values{}
	if params.AccountKey != "" {
		q.Set("account_key", params.AccountKey)
	}
	if params.Environment != "" {
		q.Set("environment", params.Environment)
	}
	if len(params.Statuses) > 0 {
		q.Set("status", strings.Join(params.Statuses, ","))
	}
	if params.CardID != "" {
		q.Set("card_id", params.CardID)
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Offset > 0 {
		q.Set("offset", strconv.Itoa(params.Offset))
	}
	if params.OrderBy != "" {
		q.Set("order_by", params.OrderBy)
	}

	path := "/api/v1/listings"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var result ListingsResponse
	if err := c.get(ctx, path, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetListing returns the local record for a SKU.
func (c *Client) GetListing(ctx context.Context, sku string) (*domain.Listing, error) {
	var result domain.Listing
	if err := c.get(ctx, fmt.Sprintf("/api/v1/listings/%s", url.PathEscape(sku)), &result); err != nil {
		return nil, err
	}
	return &result, nil
}
