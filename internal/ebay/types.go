package ebay

import "github.com/shopspring/decimal"

// Location status values.
const (
	LocationEnabled  = "ENABLED"
	LocationDisabled = "DISABLED"
)

// Location is a merchant inventory location.
type Location struct {
	MerchantLocationKey    string          `json:"merchantLocationKey"`
	Name                   string          `json:"name,omitempty"`
	MerchantLocationStatus string          `json:"merchantLocationStatus"`
	LocationTypes          []string        `json:"locationTypes,omitempty"`
	Location               *LocationDetail `json:"location,omitempty"`
}

// Enabled reports whether offers may reference this location.
func (l *Location) Enabled() bool {
	return l.MerchantLocationStatus == "" || l.MerchantLocationStatus == LocationEnabled
}

// LocationDetail wraps the postal address of a location.
type LocationDetail struct {
	Address Address `json:"address"`
}

// Address is a postal address.
type Address struct {
	AddressLine1    string `json:"addressLine1,omitempty"`
	City            string `json:"city,omitempty"`
	StateOrProvince string `json:"stateOrProvince,omitempty"`
	PostalCode      string `json:"postalCode,omitempty"`
	Country         string `json:"country"`
}

// LocationInput is the body of a create-location call.
type LocationInput struct {
	Name                   string         `json:"name,omitempty"`
	Location               LocationDetail `json:"location"`
	LocationTypes          []string       `json:"locationTypes"`
	MerchantLocationStatus string         `json:"merchantLocationStatus"`
}

type locationsResponse struct {
	Locations []Location `json:"locations"`
	Total     int        `json:"total"`
	Next      string     `json:"next"`
}

// Image is a picture hosted by eBay Picture Services.
type Image struct {
	ImageURL       string `json:"imageUrl"`
	ExpirationDate string `json:"expirationDate,omitempty"`
}

// InventoryItem is the body of a create-or-replace inventory item call.
// Quantity is always 1 for the unique items this service lists.
type InventoryItem struct {
	Availability Availability `json:"availability"`
	Condition    string       `json:"condition"`
	Product      Product      `json:"product"`
}

// Availability holds ship-to-location quantity.
type Availability struct {
	ShipToLocationAvailability ShipToLocationAvailability `json:"shipToLocationAvailability"`
}

// ShipToLocationAvailability holds the available quantity.
type ShipToLocationAvailability struct {
	Quantity int `json:"quantity"`
}

// Product holds the descriptive fields of an inventory item.
type Product struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	ImageURLs   []string `json:"imageUrls"`
}

// NewInventoryItem builds a single-quantity inventory item.
func NewInventoryItem(title, description, condition string, imageURLs []string) InventoryItem {
	return InventoryItem{
		Availability: Availability{ShipToLocationAvailability: ShipToLocationAvailability{Quantity: 1}},
		Condition:    condition,
		Product: Product{
			Title:       title,
			Description: description,
			ImageURLs:   imageURLs,
		},
	}
}

// Offer is the body of a create-offer call.
type Offer struct {
	SKU                 string          `json:"sku"`
	MarketplaceID       string          `json:"marketplaceId"`
	Format              string          `json:"format"`
	AvailableQuantity   int             `json:"availableQuantity"`
	CategoryID          string          `json:"categoryId"`
	ListingDescription  string          `json:"listingDescription,omitempty"`
	ListingPolicies     ListingPolicies `json:"listingPolicies"`
	MerchantLocationKey string          `json:"merchantLocationKey"`
	PricingSummary      PricingSummary  `json:"pricingSummary"`
}

// ListingPolicies references the seller's business policies.
type ListingPolicies struct {
	FulfillmentPolicyID string `json:"fulfillmentPolicyId"`
	PaymentPolicyID     string `json:"paymentPolicyId"`
	ReturnPolicyID      string `json:"returnPolicyId"`
}

// PricingSummary holds the offer price.
type PricingSummary struct {
	Price Amount `json:"price"`
}

// Amount is a currency amount. Value is a fixed-point decimal string.
type Amount struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

// NewAmount formats d with two decimal places.
func NewAmount(d decimal.Decimal, currency string) Amount {
	return Amount{Value: d.StringFixed(2), Currency: currency}
}

type offerResponse struct {
	OfferID string `json:"offerId"`
}

type publishResponse struct {
	ListingID string `json:"listingId"`
}

// SellingItem is one active listing from GetMyeBaySelling.
type SellingItem struct {
	ItemID        string
	SKU           string
	WatchCount    int
	HitCount      int
	BidCount      int
	CurrentPrice  *decimal.Decimal
	Currency      string
	TimeRemaining string
}

// SellingPage is one page of the active listing report.
type SellingPage struct {
	Items      []SellingItem
	Page       int
	TotalPages int
	TotalItems int
	HasMore    bool
}
