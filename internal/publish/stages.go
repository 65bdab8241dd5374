package publish

import (
	"context"
	"fmt"
	"strings"

	"github.com/donaldgifford/ebay-lister/internal/apperror"
	"github.com/donaldgifford/ebay-lister/internal/ebay"
	domain "github.com/donaldgifford/ebay-lister/pkg/types"
)

// ensureLocation picks the merchant location offers will reference. The
// configured key is preferred, then any enabled location. A location is only
// created when the account has no enabled location at all.
func (p *Pipeline) ensureLocation(ctx context.Context, a *attempt) error {
	var locations []ebay.Location
	err := p.calls.Call(ctx, a.account.AccountKey, func(ctx context.Context, auth ebay.Auth) error {
		var err error
		locations, err = p.seller.ListLocations(ctx, auth)
		return err
	})
	if err != nil {
		return fmt.Errorf("listing inventory locations: %w", err)
	}

	key := p.settings.LocationKey
	var firstEnabled string
	for i := range locations {
		loc := &locations[i]
		if loc.MerchantLocationKey == key {
			if !loc.Enabled() {
				return apperror.Validation("location",
					fmt.Sprintf("inventory location %q is disabled; enable it on eBay or configure another key", key))
			}
			a.listing.LocationKey = key
			return nil
		}
		if firstEnabled == "" && loc.Enabled() {
			firstEnabled = loc.MerchantLocationKey
		}
	}
	if firstEnabled != "" {
		a.listing.LocationKey = firstEnabled
		return nil
	}

	if key == "" {
		return apperror.Validation("location", "no enabled inventory location and no location key configured")
	}
	err = p.calls.Call(ctx, a.account.AccountKey, func(ctx context.Context, auth ebay.Auth) error {
		return p.seller.CreateLocation(ctx, auth, key, p.settings.Location)
	})
	if err != nil {
		return fmt.Errorf("creating inventory location %s: %w", key, err)
	}

	p.logger.Info("created inventory location", "account", a.account.AccountKey, "location_key", key)
	a.listing.LocationKey = key
	return nil
}

// uploadImages resolves every image reference to a hosted URL. Remote URLs
// are used as given and local files are uploaded in order. Any single
// failure fails the stage.
func (p *Pipeline) uploadImages(ctx context.Context, a *attempt) error {
	refs := a.req.ImageRefs
	if len(refs) == 0 {
		return apperror.Validation("image_refs", "at least one image is required")
	}

	urls := make([]string, 0, len(refs))
	for i, ref := range refs {
		ref = strings.TrimSpace(ref)
		if isRemoteURL(ref) {
			urls = append(urls, ref)
			continue
		}

		var img *ebay.Image
		err := p.calls.Call(ctx, a.account.AccountKey, func(ctx context.Context, auth ebay.Auth) error {
			var err error
			img, err = p.seller.UploadImage(ctx, auth, ref)
			return err
		})
		if err != nil {
			return fmt.Errorf("uploading image %d of %d: %w", i+1, len(refs), err)
		}
		urls = append(urls, img.ImageURL)
	}

	a.imageURLs = urls
	a.listing.ImageURLs = urls
	return nil
}

func (p *Pipeline) createInventoryItem(ctx context.Context, a *attempt) error {
	l := a.listing
	title, truncated := truncateTitle(l.Title)
	if truncated {
		p.logger.Warn("title truncated to marketplace limit",
			"sku", l.SKU,
			"original_length", len([]rune(l.Title)),
			"limit", maxTitleRunes,
		)
		l.Title = title
	}

	item := ebay.NewInventoryItem(title, l.Description, string(l.Condition), a.imageURLs)
	err := p.calls.Call(ctx, a.account.AccountKey, func(ctx context.Context, auth ebay.Auth) error {
		return p.seller.PutInventoryItem(ctx, auth, l.SKU, item)
	})
	if err != nil {
		return fmt.Errorf("creating inventory item: %w", err)
	}
	return nil
}

// createOffer requires all three business policies before calling out; a
// missing one is a configuration problem the marketplace would reject anyway.
func (p *Pipeline) createOffer(ctx context.Context, a *attempt) error {
	l := a.listing
	policies := p.settings.Policies[l.Environment]
	switch {
	case policies.FulfillmentPolicyID == "":
		return missingPolicy("fulfillment_policy_id", l.Environment)
	case policies.PaymentPolicyID == "":
		return missingPolicy("payment_policy_id", l.Environment)
	case policies.ReturnPolicyID == "":
		return missingPolicy("return_policy_id", l.Environment)
	}

	offer := ebay.Offer{
		SKU:                 l.SKU,
		CategoryID:          l.CategoryID,
		ListingDescription:  l.Description,
		ListingPolicies:     policies,
		MerchantLocationKey: l.LocationKey,
		PricingSummary:      ebay.PricingSummary{Price: ebay.NewAmount(l.Price, p.settings.Currency)},
	}

	var offerID string
	err := p.calls.Call(ctx, a.account.AccountKey, func(ctx context.Context, auth ebay.Auth) error {
		var err error
		offerID, err = p.seller.CreateOffer(ctx, auth, offer)
		return err
	})
	if err != nil {
		return fmt.Errorf("creating offer: %w", err)
	}

	l.RemoteOfferID = &offerID
	return nil
}

func (p *Pipeline) publishOffer(ctx context.Context, a *attempt) error {
	l := a.listing
	var itemID string
	err := p.calls.Call(ctx, a.account.AccountKey, func(ctx context.Context, auth ebay.Auth) error {
		var err error
		itemID, err = p.seller.PublishOffer(ctx, auth, deref(l.RemoteOfferID))
		return err
	})
	if err != nil {
		return fmt.Errorf("publishing offer %s: %w", deref(l.RemoteOfferID), err)
	}

	listedAt := p.nowFunc()
	l.RemoteItemID = &itemID
	l.ListingURL = p.settings.ListingURL(l.Environment, itemID)
	l.ListedAt = &listedAt
	l.ErrorMessage = ""
	l.FailedStage = ""
	return nil
}

func missingPolicy(field string, env domain.Environment) error {
	return apperror.Validation(field, fmt.Sprintf("not configured for %s", env))
}

func isRemoteURL(ref string) bool {
	return strings.HasPrefix(ref, "https://") || strings.HasPrefix(ref, "http://")
}
