package ebay

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/donaldgifford/ebay-lister/internal/apperror"
)

const (
	inventoryPath = "/sell/inventory/v1"

	formatFixedPrice = "FIXED_PRICE"
	locationsPerPage = 100
	maxLocationPages = 10
)

func (c *Client) inventoryURL(auth Auth, path string) (string, error) {
	cfg, err := c.env(auth.Environment)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(cfg.APIURL, "/") + inventoryPath + path, nil
}

// ListLocations returns every inventory location of the seller.
func (c *Client) ListLocations(ctx context.Context, auth Auth) ([]Location, error) {
	var all []Location

	for page := range maxLocationPages {
		base, err := c.inventoryURL(auth, "/location")
		if err != nil {
			return nil, err
		}
		u := fmt.Sprintf("%s?limit=%d&offset=%d", base, locationsPerPage, page*locationsPerPage)

		var resp locationsResponse
		if _, err := c.sendJSON(ctx, "inventory_list_locations", http.MethodGet, u, auth, nil, &resp); err != nil {
			return nil, fmt.Errorf("listing inventory locations: %w", err)
		}

		all = append(all, resp.Locations...)
		if resp.Next == "" || len(resp.Locations) == 0 {
			break
		}
	}

	return all, nil
}

// CreateLocation creates a merchant inventory location under key.
func (c *Client) CreateLocation(ctx context.Context, auth Auth, key string, loc LocationInput) error {
	if key == "" {
		return apperror.Validation("merchant_location_key", "location key is required")
	}
	u, err := c.inventoryURL(auth, "/location/"+url.PathEscape(key))
	if err != nil {
		return err
	}
	if _, err := c.sendJSON(ctx, "inventory_create_location", http.MethodPost, u, auth, loc, nil); err != nil {
		return fmt.Errorf("creating inventory location %s: %w", key, err)
	}
	return nil
}

// PutInventoryItem creates or replaces the inventory item for sku.
func (c *Client) PutInventoryItem(ctx context.Context, auth Auth, sku string, item InventoryItem) error {
	u, err := c.inventoryURL(auth, "/inventory_item/"+url.PathEscape(sku))
	if err != nil {
		return err
	}
	if _, err := c.sendJSON(ctx, "inventory_put_item", http.MethodPut, u, auth, item, nil); err != nil {
		return fmt.Errorf("creating inventory item %s: %w", sku, err)
	}
	return nil
}

// CreateOffer creates an unpublished fixed-price offer and returns its ID.
// MarketplaceID and Format default when empty.
func (c *Client) CreateOffer(ctx context.Context, auth Auth, offer Offer) (string, error) {
	if offer.MarketplaceID == "" {
		offer.MarketplaceID = c.marketplace
	}
	if offer.Format == "" {
		offer.Format = formatFixedPrice
	}
	if offer.AvailableQuantity == 0 {
		offer.AvailableQuantity = 1
	}

	u, err := c.inventoryURL(auth, "/offer")
	if err != nil {
		return "", err
	}

	var resp offerResponse
	if _, err := c.sendJSON(ctx, "inventory_create_offer", http.MethodPost, u, auth, offer, &resp); err != nil {
		return "", fmt.Errorf("creating offer for %s: %w", offer.SKU, err)
	}
	if resp.OfferID == "" {
		return "", fmt.Errorf("creating offer for %s: response has no offerId", offer.SKU)
	}
	return resp.OfferID, nil
}

// PublishOffer publishes an offer and returns the eBay listing (item) ID.
func (c *Client) PublishOffer(ctx context.Context, auth Auth, offerID string) (string, error) {
	u, err := c.inventoryURL(auth, "/offer/"+url.PathEscape(offerID)+"/publish")
	if err != nil {
		return "", err
	}

	var resp publishResponse
	if _, err := c.sendJSON(ctx, "inventory_publish_offer", http.MethodPost, u, auth, nil, &resp); err != nil {
		return "", fmt.Errorf("publishing offer %s: %w", offerID, err)
	}
	if resp.ListingID == "" {
		return "", fmt.Errorf("publishing offer %s: response has no listingId", offerID)
	}
	return resp.ListingID, nil
}
