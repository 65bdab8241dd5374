package handlers_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/ebay-lister/internal/api/handlers"
	"github.com/donaldgifford/ebay-lister/internal/api/handlers/mocks"
	"github.com/donaldgifford/ebay-lister/internal/apperror"
	"github.com/donaldgifford/ebay-lister/internal/publish"
	"github.com/donaldgifford/ebay-lister/internal/store"
	domain "github.com/donaldgifford/ebay-lister/pkg/types"
)

func publishBody() map[string]any {
	return map[string]any{
		"card_id":     "card-1",
		"title":       "Charizard Holo",
		"description": "Base set",
		"price":       "249.50",
		"condition":   "excellent",
		"category_id": "183454",
		"image_refs":  []string{"https://img.example.com/1.jpg"},
	}
}

func listedListing() *domain.Listing {
	item := "110554433"
	return &domain.Listing{
		SKU:          "CARD-CARD-1-20260101",
		CardID:       "card-1",
		RemoteItemID: &item,
		Status:       domain.StatusListed,
		Environment:  domain.EnvSandbox,
		AccountKey:   "seller1:sandbox",
		Title:        "Charizard Holo",
		Price:        decimal.RequireFromString("249.50"),
		Condition:    domain.ConditionUsedExcellent,
		ListingURL:   "https://sandbox.ebay.com/itm/110554433",
	}
}

func TestPublish(t *testing.T) {
	t.Parallel()

	svc := mocks.NewMockListingService(t)
	svc.EXPECT().
		Publish(mock.Anything, mock.MatchedBy(func(r domain.ListingRequest) bool {
			return r.CardID == "card-1" &&
				r.Price.Equal(decimal.RequireFromString("249.50")) &&
				r.Condition == "excellent" &&
				len(r.ImageRefs) == 1
		})).
		Return(listedListing(), nil).
		Once()

	_, api := humatest.New(t)
	handlers.RegisterListingRoutes(api, handlers.NewListingsHandler(svc))

	resp := api.Post("/api/v1/listings", publishBody())
	require.Equal(t, http.StatusCreated, resp.Code)

	var got domain.Listing
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	assert.Equal(t, domain.StatusListed, got.Status)
	assert.Equal(t, "110554433", *got.RemoteItemID)
	assert.Equal(t, "https://sandbox.ebay.com/itm/110554433", got.ListingURL)
}

func TestPublish_PersistPending(t *testing.T) {
	t.Parallel()

	l := listedListing()
	l.Status = domain.StatusPersistPending

	svc := mocks.NewMockListingService(t)
	svc.EXPECT().Publish(mock.Anything, mock.Anything).Return(l, nil).Once()

	_, api := humatest.New(t)
	handlers.RegisterListingRoutes(api, handlers.NewListingsHandler(svc))

	resp := api.Post("/api/v1/listings", publishBody())
	require.Equal(t, http.StatusCreated, resp.Code)
	assert.Contains(t, resp.Body.String(), `"status":"persist_pending"`)
}

func TestPublish_SchemaRejection(t *testing.T) {
	t.Parallel()

	svc := mocks.NewMockListingService(t)

	_, api := humatest.New(t)
	handlers.RegisterListingRoutes(api, handlers.NewListingsHandler(svc))

	body := publishBody()
	body["title"] = ""
	resp := api.Post("/api/v1/listings", body)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	svc.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestPublish_ErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   []string
		wantHeader string
	}{
		{
			name:       "validation",
			err:        apperror.Validation("price", "must be positive"),
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   []string{`"location":"price"`, "must be positive"},
		},
		{
			name: "stage failure keeps stage and sku",
			err: &publish.StageError{
				Stage: publish.StageCreateOffer,
				SKU:   "CARD-X",
				Err:   apperror.Validation("fulfillment_policy_id", "not configured for sandbox"),
			},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   []string{`"value":"create_offer"`, `"value":"CARD-X"`},
		},
		{
			name:       "auth",
			err:        &apperror.AuthError{AccountKey: "seller1:sandbox"},
			wantStatus: http.StatusUnauthorized,
			wantBody:   []string{"re-authorization required"},
		},
		{
			name:       "rate limited",
			err:        &apperror.RateLimitedError{RetryAfter: 90 * time.Second, Message: "sync cooldown"},
			wantStatus: http.StatusTooManyRequests,
			wantBody:   []string{`"location":"retry_after_seconds"`, `"value":90`},
			wantHeader: "90",
		},
		{
			name:       "not found",
			err:        apperror.NotFound("account", "nobody:sandbox"),
			wantStatus: http.StatusNotFound,
		},
		{
			name: "transient",
			err: &publish.StageError{
				Stage: publish.StagePublishOffer,
				SKU:   "CARD-Y",
				Err:   apperror.Transient(errors.New("connection reset")),
			},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   []string{"connection reset"},
		},
		{
			name:       "unknown",
			err:        fmt.Errorf("boom"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := mocks.NewMockListingService(t)
			svc.EXPECT().Publish(mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			_, api := humatest.New(t)
			handlers.RegisterListingRoutes(api, handlers.NewListingsHandler(svc))

			resp := api.Post("/api/v1/listings", publishBody())
			require.Equal(t, tt.wantStatus, resp.Code)
			for _, s := range tt.wantBody {
				assert.Contains(t, resp.Body.String(), s)
			}
			if tt.wantHeader != "" {
				assert.Equal(t, tt.wantHeader, resp.Header().Get("Retry-After"))
			}
		})
	}
}

func TestListListings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		url        string
		setupMock  func(*mocks.MockListingService)
		wantStatus int
		wantBody   string
	}{
		{
			name: "filters are passed through",
			url:  "/api/v1/listings?account_key=seller1:sandbox&status=listed,failed&limit=10",
			setupMock: func(m *mocks.MockListingService) {
				m.EXPECT().
					ListListings(mock.Anything, mock.MatchedBy(func(q *store.ListingQuery) bool {
						return q.AccountKey != nil && *q.AccountKey == "seller1:sandbox" &&
							len(q.Statuses) == 2 && q.Limit == 10 && q.Environment == nil
					})).
					Return([]domain.Listing{*listedListing()}, 1, nil).
					Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"total":1`,
		},
		{
			name: "empty result is an empty array",
			url:  "/api/v1/listings",
			setupMock: func(m *mocks.MockListingService) {
				m.EXPECT().ListListings(mock.Anything, mock.Anything).Return(nil, 0, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"listings":[]`,
		},
		{
			name: "default limit is reported",
			url:  "/api/v1/listings?offset=5",
			setupMock: func(m *mocks.MockListingService) {
				m.EXPECT().ListListings(mock.Anything, mock.Anything).Return(nil, 7, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"limit":50,"offset":5`,
		},
		{
			name:       "unknown environment is rejected",
			url:        "/api/v1/listings?environment=staging",
			setupMock:  func(*mocks.MockListingService) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "store error",
			url:  "/api/v1/listings",
			setupMock: func(m *mocks.MockListingService) {
				m.EXPECT().ListListings(mock.Anything, mock.Anything).
					Return(nil, 0, errors.New("db down")).Once()
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := mocks.NewMockListingService(t)
			tt.setupMock(svc)

			_, api := humatest.New(t)
			handlers.RegisterListingRoutes(api, handlers.NewListingsHandler(svc))

			resp := api.Get(tt.url)
			require.Equal(t, tt.wantStatus, resp.Code)
			if tt.wantBody != "" {
				assert.Contains(t, resp.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestGetListing(t *testing.T) {
	t.Parallel()

	svc := mocks.NewMockListingService(t)
	svc.EXPECT().GetCachedListing(mock.Anything, "CARD-CARD-1-20260101").Return(listedListing(), nil).Once()
	svc.EXPECT().GetCachedListing(mock.Anything, "missing").
		Return(nil, apperror.NotFound("listing", "missing")).Once()

	_, api := humatest.New(t)
	handlers.RegisterListingRoutes(api, handlers.NewListingsHandler(svc))

	resp := api.Get("/api/v1/listings/CARD-CARD-1-20260101")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"sku":"CARD-CARD-1-20260101"`)

	resp = api.Get("/api/v1/listings/missing")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
