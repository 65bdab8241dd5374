package publish

import (
	"strings"

	"github.com/donaldgifford/ebay-lister/internal/config"
	"github.com/donaldgifford/ebay-lister/internal/ebay"
	domain "github.com/donaldgifford/ebay-lister/pkg/types"
)

// Settings are the seller defaults applied to every listing.
type Settings struct {
	Currency            string
	LocationKey         string
	Location            ebay.LocationInput
	Policies            map[domain.Environment]ebay.ListingPolicies
	ListingURLTemplates map[domain.Environment]string
}

// SettingsFromConfig builds pipeline settings from the loaded configuration.
func SettingsFromConfig(cfg *config.Config) Settings {
	loc := cfg.Listing.Location
	s := Settings{
		Currency:    cfg.Listing.Currency,
		LocationKey: loc.Key,
		Location: ebay.LocationInput{
			Name: loc.Name,
			Location: ebay.LocationDetail{Address: ebay.Address{
				AddressLine1:    loc.AddressLine1,
				City:            loc.City,
				StateOrProvince: loc.StateOrProvince,
				PostalCode:      loc.PostalCode,
				Country:         loc.Country,
			}},
			LocationTypes:          []string{"WAREHOUSE"},
			MerchantLocationStatus: ebay.LocationEnabled,
		},
		Policies:            make(map[domain.Environment]ebay.ListingPolicies, 2),
		ListingURLTemplates: make(map[domain.Environment]string, 2),
	}

	for _, env := range []domain.Environment{domain.EnvSandbox, domain.EnvProduction} {
		pc := cfg.Listing.Policies(env)
		s.Policies[env] = ebay.ListingPolicies{
			FulfillmentPolicyID: pc.FulfillmentPolicyID,
			PaymentPolicyID:     pc.PaymentPolicyID,
			ReturnPolicyID:      pc.ReturnPolicyID,
		}
		s.ListingURLTemplates[env] = cfg.Ebay.Environment(env).ListingURLTemplate
	}
	return s
}

// ListingURL expands the environment's listing URL template.
func (s *Settings) ListingURL(env domain.Environment, itemID string) string {
	tmpl := s.ListingURLTemplates[env]
	if tmpl == "" {
		return ""
	}
	return strings.ReplaceAll(tmpl, "{id}", itemID)
}
