package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/donaldgifford/ebay-lister/internal/store"
	domain "github.com/donaldgifford/ebay-lister/pkg/types"
)

// ListingsHandler handles publish and listing query endpoints.
type ListingsHandler struct {
	svc ListingService
}

// NewListingsHandler creates a new ListingsHandler.
func NewListingsHandler(svc ListingService) *ListingsHandler {
	return &ListingsHandler{svc: svc}
}

// --- Input/Output types ---

// PublishInput is the request to list a card.
type PublishInput struct {
	Body struct {
		CardID      string          `json:"card_id"               doc:"Caller's identifier for the item"                    minLength:"1"`
		SKU         string          `json:"sku,omitempty"         doc:"Explicit SKU; generated when empty"                  maxLength:"50"`
		Title       string          `json:"title"                 doc:"Listing title, cut to 80 characters"                 minLength:"1"`
		Description string          `json:"description,omitempty" doc:"Listing description"`
		Price       decimal.Decimal `json:"price"                 doc:"Fixed price in the configured currency"              example:"249.50"`
		Condition   string          `json:"condition"             doc:"Condition label or marketplace code"                 example:"excellent"`
		CategoryID  string          `json:"category_id"           doc:"Marketplace category ID"                             example:"183454"`
		ImageRefs   []string        `json:"image_refs"            doc:"Image URLs or local file paths"                      maxItems:"24"`
		AccountKey  string          `json:"account_key,omitempty" doc:"Account to list with; the active account when empty" example:"seller1:production"`
	}
}

// ListingOutput is a single listing response.
type ListingOutput struct {
	Body domain.Listing
}

// ListListingsInput is the input for listing listings with optional filters.
type ListListingsInput struct {
	AccountKey  string   `query:"account_key" doc:"Filter by account key"`
	Environment string   `query:"environment" doc:"Filter by environment"          enum:"sandbox,production,"`
	Status      []string `query:"status"      doc:"Filter by one or more statuses"`
	CardID      string   `query:"card_id"     doc:"Filter by card ID"`
	Limit       int      `query:"limit"       doc:"Number of results (default 50)" minimum:"0"                                       maximum:"500"`
	Offset      int      `query:"offset"      doc:"Pagination offset"              minimum:"0"`
	OrderBy     string   `query:"order_by"    doc:"Sort field"                     enum:"created_at,last_updated,price,watch_count,"`
}

// ListListingsOutput is the response for listing listings.
type ListListingsOutput struct {
	Body struct {
		Listings []domain.Listing `json:"listings"`
		Total    int              `json:"total"`
		Limit    int              `json:"limit"`
		Offset   int              `json:"offset"`
	}
}

// GetListingInput is the input for getting a single listing.
type GetListingInput struct {
	SKU string `path:"sku" doc:"Listing SKU"`
}

// --- Handlers ---

// Publish runs the publish pipeline. A listing that is live but whose
// final write is still queued comes back with status persist_pending.
func (h *ListingsHandler) Publish(ctx context.Context, input *PublishInput) (*ListingOutput, error) {
	req := domain.ListingRequest{
		CardID:      input.Body.CardID,
		SKU:         input.Body.SKU,
		Title:       input.Body.Title,
		Description: input.Body.Description,
		Price:       input.Body.Price,
		Condition:   input.Body.Condition,
		CategoryID:  input.Body.CategoryID,
		ImageRefs:   input.Body.ImageRefs,
		AccountKey:  input.Body.AccountKey,
	}

	l, err := h.svc.Publish(ctx, req)
	if err != nil {
		return nil, toHTTPError(err)
	}
	return &ListingOutput{Body: *l}, nil
}

// ListListings returns listings with optional filters and pagination.
func (h *ListingsHandler) ListListings(
	ctx context.Context,
	input *ListListingsInput,
) (*ListListingsOutput, error) {
	q := &store.ListingQuery{
		Statuses: input.Status,
		Limit:    input.Limit,
		Offset:   input.Offset,
		OrderBy:  input.OrderBy,
	}
	if input.AccountKey != "" {
		q.AccountKey = &input.AccountKey
	}
	if input.Environment != "" {
		q.Environment = &input.Environment
	}
	if input.CardID != "" {
		q.CardID = &input.CardID
	}

	listings, total, err := h.svc.ListListings(ctx, q)
	if err != nil {
		return nil, toHTTPError(err)
	}

	limit, offset := q.Normalized()
	resp := &ListListingsOutput{}
	resp.Body.Listings = listings
	if resp.Body.Listings == nil {
		resp.Body.Listings = []domain.Listing{}
	}
	resp.Body.Total = total
	resp.Body.Limit = limit
	resp.Body.Offset = offset

	return resp, nil
}

// GetListing returns the cached local record for a SKU.
func (h *ListingsHandler) GetListing(ctx context.Context, input *GetListingInput) (*ListingOutput, error) {
	l, err := h.svc.GetCachedListing(ctx, input.SKU)
	if err != nil {
		return nil, toHTTPError(err)
	}
	return &ListingOutput{Body: *l}, nil
}

// RegisterListingRoutes registers listing endpoints with the Huma API.
func RegisterListingRoutes(api huma.API, h *ListingsHandler) {
	huma.Register(api, huma.Operation{
		OperationID:   "publish-listing",
		Method:        http.MethodPost,
		Path:          "/api/v1/listings",
		Summary:       "Publish a listing",
		Description:   "Runs the publish pipeline for one item and returns the resulting listing record.",
		Tags:          []string{"listings"},
		DefaultStatus: http.StatusCreated,
		Errors: []int{
			http.StatusUnauthorized,
			http.StatusNotFound,
			http.StatusUnprocessableEntity,
			http.StatusServiceUnavailable,
		},
	}, h.Publish)

	huma.Register(api, huma.Operation{
		OperationID: "list-listings",
		Method:      http.MethodGet,
		Path:        "/api/v1/listings",
		Summary:     "List listings",
		Description: "Returns listings with optional filters for account, environment, status, and pagination.",
		Tags:        []string{"listings"},
	}, h.ListListings)

	huma.Register(api, huma.Operation{
		OperationID: "get-listing",
		Method:      http.MethodGet,
		Path:        "/api/v1/listings/{sku}",
		Summary:     "Get a listing by SKU",
		Description: "Returns the locally cached listing record, including synced metrics.",
		Tags:        []string{"listings"},
		Errors:      []int{http.StatusNotFound},
	}, h.GetListing)
}
