package ebay_test

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/ebay-lister/internal/apperror"
	"github.com/donaldgifford/ebay-lister/internal/ebay"
	domain "github.com/donaldgifford/ebay-lister/pkg/types"
)

var sandboxAuth = ebay.Auth{Environment: domain.EnvSandbox, Token: "user-token"}

func newTestClient(t *testing.T, handler http.Handler, opts ...ebay.Option) *ebay.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	envs := map[domain.Environment]ebay.EnvironmentConfig{
		domain.EnvSandbox: {
			AppID:       "app-id",
			CertID:      "cert-id",
			RuName:      "Seller-RuName",
			AuthURL:     srv.URL + "/oauth2/authorize",
			TokenURL:    srv.URL + "/identity/v1/oauth2/token",
			APIURL:      srv.URL,
			IdentityURL: srv.URL + "/commerce/identity/v1/user/",
			MediaURL:    srv.URL + "/commerce/media/v1_beta",
			TradingURL:  srv.URL + "/ws/api.dll",
		},
	}

	opts = append([]ebay.Option{ebay.WithHTTPClient(srv.Client())}, opts...)
	return ebay.NewClient(envs, opts...)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	assert.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestClient_UnconfiguredEnvironment(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.NotFoundHandler())

	_, err := c.ListLocations(context.Background(), ebay.Auth{Environment: domain.EnvProduction, Token: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrValidation)
	assert.Contains(t, err.Error(), "production environment is not configured")
}

func TestClient_ListLocations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		handler   http.HandlerFunc
		wantKeys  []string
		wantErrIs error
	}{
		{
			name: "follows pages until next is empty",
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/sell/inventory/v1/location", r.URL.Path)
				assert.Equal(t, "Bearer user-token", r.Header.Get("Authorization"))
				assert.Equal(t, "EBAY_US", r.Header.Get("X-EBAY-C-MARKETPLACE-ID"))

				if r.URL.Query().Get("offset") == "0" {
					writeJSON(t, w, http.StatusOK, map[string]any{
						"locations": []map[string]any{{"merchantLocationKey": "a", "merchantLocationStatus": "ENABLED"}},
						"next":      "more",
					})
					return
				}
				writeJSON(t, w, http.StatusOK, map[string]any{
					"locations": []map[string]any{{"merchantLocationKey": "b", "merchantLocationStatus": "DISABLED"}},
				})
			},
			wantKeys: []string{"a", "b"},
		},
		{
			name: "no locations",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(t, w, http.StatusOK, map[string]any{"total": 0})
			},
		},
		{
			name: "401 is an auth error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(t, w, http.StatusUnauthorized, map[string]any{
					"errors": []map[string]any{{"errorId": 1001, "message": "Invalid access token"}},
				})
			},
			wantErrIs: apperror.ErrAuth,
		},
		{
			name: "503 is transient",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
			},
			wantErrIs: apperror.ErrTransient,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newTestClient(t, tt.handler)
			locs, err := c.ListLocations(context.Background(), sandboxAuth)

			if tt.wantErrIs != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErrIs)
				return
			}

			require.NoError(t, err)
			keys := make([]string, 0, len(locs))
			for _, l := range locs {
				keys = append(keys, l.MerchantLocationKey)
			}
			if tt.wantKeys == nil {
				assert.Empty(t, keys)
			} else {
				assert.Equal(t, tt.wantKeys, keys)
			}
		})
	}
}

func TestClient_CreateLocation(t *testing.T) {
	t.Parallel()

	var gotPath string
	var got ebay.LocationInput
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "en-US", r.Header.Get("Content-Language"))
		gotPath = r.URL.EscapedPath()
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))

	err := c.CreateLocation(context.Background(), sandboxAuth, "home base", ebay.LocationInput{
		Name:                   "Home",
		Location:               ebay.LocationDetail{Address: ebay.Address{PostalCode: "95125", Country: "US"}},
		LocationTypes:          []string{"WAREHOUSE"},
		MerchantLocationStatus: ebay.LocationEnabled,
	})
	require.NoError(t, err)
	assert.Equal(t, "/sell/inventory/v1/location/home%20base", gotPath)
	assert.Equal(t, "95125", got.Location.Address.PostalCode)
	assert.Equal(t, []string{"WAREHOUSE"}, got.LocationTypes)

	err = c.CreateLocation(context.Background(), sandboxAuth, "", ebay.LocationInput{})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestClient_PutInventoryItem(t *testing.T) {
	t.Parallel()

	var body map[string]any
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/sell/inventory/v1/inventory_item/CARD-1-1700000000000", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusNoContent)
	}))

	item := ebay.NewInventoryItem("Charizard", "Holo", "USED_EXCELLENT", []string{"https://i.ebayimg.com/1.jpg"})
	require.NoError(t, c.PutInventoryItem(context.Background(), sandboxAuth, "CARD-1-1700000000000", item))

	avail := body["availability"].(map[string]any)["shipToLocationAvailability"].(map[string]any)
	assert.InDelta(t, 1, avail["quantity"], 0)
	assert.Equal(t, "USED_EXCELLENT", body["condition"])
}

func TestClient_CreateOffer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantID     string
		wantErrIs  error
		errContain string
	}{
		{
			name: "fills defaults and returns offer id",
			handler: func(w http.ResponseWriter, r *http.Request) {
				var got ebay.Offer
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
				assert.Equal(t, "EBAY_US", got.MarketplaceID)
				assert.Equal(t, "FIXED_PRICE", got.Format)
				assert.Equal(t, 1, got.AvailableQuantity)
				assert.Equal(t, "12.50", got.PricingSummary.Price.Value)
				assert.Equal(t, "pay-1", got.ListingPolicies.PaymentPolicyID)
				writeJSON(t, w, http.StatusCreated, map[string]string{"offerId": "offer-9"})
			},
			wantID: "offer-9",
		},
		{
			name: "400 keeps the marketplace message",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(t, w, http.StatusBadRequest, map[string]any{
					"errors": []map[string]any{{
						"errorId":     25002,
						"message":     "A user error has occurred.",
						"longMessage": "The fulfillment policy is invalid.",
					}},
				})
			},
			wantErrIs:  apperror.ErrValidation,
			errContain: "[25002] The fulfillment policy is invalid.",
		},
		{
			name: "429 is transient",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Retry-After", "3")
				w.WriteHeader(http.StatusTooManyRequests)
			},
			wantErrIs: apperror.ErrTransient,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newTestClient(t, tt.handler)
			id, err := c.CreateOffer(context.Background(), sandboxAuth, ebay.Offer{
				SKU:        "S1",
				CategoryID: "183454",
				ListingPolicies: ebay.ListingPolicies{
					FulfillmentPolicyID: "ful-1",
					PaymentPolicyID:     "pay-1",
					ReturnPolicyID:      "ret-1",
				},
				PricingSummary: ebay.PricingSummary{Price: ebay.NewAmount(mustDecimal(t, "12.5"), "USD")},
			})

			if tt.wantErrIs != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErrIs)
				if tt.errContain != "" {
					assert.Contains(t, err.Error(), tt.errContain)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestClient_CreateOffer_RetryAfter(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Retry-After", "7")
		w.WriteHeader(http.StatusTooManyRequests)
	}))

	_, err := c.CreateOffer(context.Background(), sandboxAuth, ebay.Offer{SKU: "S1"})
	var apiErr *ebay.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 7*time.Second, apiErr.RetryAfter)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
}

func TestClient_PublishOffer(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/sell/inventory/v1/offer/offer-9/publish", r.URL.Path)
		writeJSON(t, w, http.StatusOK, map[string]string{"listingId": "110551234567"})
	}))

	id, err := c.PublishOffer(context.Background(), sandboxAuth, "offer-9")
	require.NoError(t, err)
	assert.Equal(t, "110551234567", id)
}

func TestClient_UploadImage(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "front.jpg")
	require.NoError(t, os.WriteFile(path, []byte("jpeg-bytes"), 0o600))

	mux := http.NewServeMux()
	var base string
	mux.HandleFunc("POST /commerce/media/v1_beta/image/create_image_from_file", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer user-token", r.Header.Get("Authorization"))
		f, hdr, err := r.FormFile("image")
		if !assert.NoError(t, err) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer f.Close()
		b, _ := io.ReadAll(f)
		assert.Equal(t, "jpeg-bytes", string(b))
		assert.Equal(t, "front.jpg", hdr.Filename)

		w.Header().Set("Location", base+"/commerce/media/v1_beta/image/img-1")
		w.WriteHeader(http.StatusCreated)
	})
	mux.HandleFunc("GET /commerce/media/v1_beta/image/img-1", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]string{"imageUrl": "https://i.ebayimg.com/images/g/abc/s-l1600.jpg"})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	base = srv.URL

	c := ebay.NewClient(map[domain.Environment]ebay.EnvironmentConfig{
		domain.EnvSandbox: {AppID: "app", CertID: "cert", MediaURL: srv.URL + "/commerce/media/v1_beta"},
	}, ebay.WithHTTPClient(srv.Client()))

	img, err := c.UploadImage(context.Background(), sandboxAuth, path)
	require.NoError(t, err)
	assert.Equal(t, "https://i.ebayimg.com/images/g/abc/s-l1600.jpg", img.ImageURL)

	_, err = c.UploadImage(context.Background(), sandboxAuth, filepath.Join(dir, "missing.jpg"))
	assert.ErrorIs(t, err, apperror.ErrValidation)

	empty := filepath.Join(dir, "empty.jpg")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))
	_, err = c.UploadImage(context.Background(), sandboxAuth, empty)
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

const sellingPage1 = `<?xml version="1.0" encoding="UTF-8"?>
<GetMyeBaySellingResponse xmlns="urn:ebay:apis:eBLBaseComponents">
  <Ack>Success</Ack>
  <ActiveList>
    <ItemArray>
      <Item>
        <ItemID>110001</ItemID>
        <SKU>CARD-1-1700000000000</SKU>
        <WatchCount>4</WatchCount>
        <HitCount>52</HitCount>
        <TimeLeft>P6DT2H</TimeLeft>
        <SellingStatus>
          <CurrentPrice currencyID="USD">19.99</CurrentPrice>
          <BidCount>0</BidCount>
        </SellingStatus>
      </Item>
      <Item>
        <ItemID>110002</ItemID>
      </Item>
    </ItemArray>
    <PaginationResult>
      <TotalNumberOfPages>2</TotalNumberOfPages>
      <TotalNumberOfEntries>3</TotalNumberOfEntries>
    </PaginationResult>
  </ActiveList>
</GetMyeBaySellingResponse>`

func TestClient_GetMyeBaySelling(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ws/api.dll", r.URL.Path)
		assert.Equal(t, "GetMyeBaySelling", r.Header.Get("X-EBAY-API-CALL-NAME"))
		assert.Equal(t, "user-token", r.Header.Get("X-EBAY-API-IAF-TOKEN"))
		assert.Equal(t, "0", r.Header.Get("X-EBAY-API-SITEID"))

		var req struct {
			ActiveList struct {
				Include    bool `xml:"Include"`
				Pagination struct {
					EntriesPerPage int `xml:"EntriesPerPage"`
					PageNumber     int `xml:"PageNumber"`
				} `xml:"Pagination"`
			} `xml:"ActiveList"`
		}
		assert.NoError(t, xml.NewDecoder(r.Body).Decode(&req))
		assert.True(t, req.ActiveList.Include)
		assert.Equal(t, 200, req.ActiveList.Pagination.EntriesPerPage)
		assert.Equal(t, 1, req.ActiveList.Pagination.PageNumber)

		w.Header().Set("Content-Type", "text/xml")
		_, _ = w.Write([]byte(sellingPage1))
	}))

	page, err := c.GetMyeBaySelling(context.Background(), sandboxAuth, 0, 500)
	require.NoError(t, err)

	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 3, page.TotalItems)
	assert.True(t, page.HasMore)
	require.Len(t, page.Items, 2)

	first := page.Items[0]
	assert.Equal(t, "110001", first.ItemID)
	assert.Equal(t, 4, first.WatchCount)
	assert.Equal(t, 52, first.HitCount)
	assert.Equal(t, "P6DT2H", first.TimeRemaining)
	assert.Equal(t, "USD", first.Currency)
	require.NotNil(t, first.CurrentPrice)
	assert.Equal(t, "19.99", first.CurrentPrice.StringFixed(2))

	assert.Nil(t, page.Items[1].CurrentPrice)
}

func TestClient_GetMyeBaySelling_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		body      string
		wantErrIs error
	}{
		{
			name: "expired token is an auth error",
			body: `<GetMyeBaySellingResponse><Ack>Failure</Ack><Errors>
				<ShortMessage>Auth token is hard expired.</ShortMessage>
				<ErrorCode>932</ErrorCode><SeverityCode>Error</SeverityCode>
			</Errors></GetMyeBaySellingResponse>`,
			wantErrIs: apperror.ErrAuth,
		},
		{
			name: "internal error is transient",
			body: `<GetMyeBaySellingResponse><Ack>Failure</Ack><Errors>
				<ShortMessage>Internal error</ShortMessage>
				<ErrorCode>10007</ErrorCode><SeverityCode>Error</SeverityCode>
			</Errors></GetMyeBaySellingResponse>`,
			wantErrIs: apperror.ErrTransient,
		},
		{
			name: "unknown failure is validation",
			body: `<GetMyeBaySellingResponse><Ack>Failure</Ack><Errors>
				<ShortMessage>Bad input</ShortMessage>
				<ErrorCode>37</ErrorCode><SeverityCode>Error</SeverityCode>
			</Errors></GetMyeBaySellingResponse>`,
			wantErrIs: apperror.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))

			_, err := c.GetMyeBaySelling(context.Background(), sandboxAuth, 1, 100)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErrIs)
		})
	}
}

func TestClient_GetMyeBaySelling_WarningsIgnored(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<GetMyeBaySellingResponse><Ack>Warning</Ack><Errors>
			<ShortMessage>Deprecated</ShortMessage><ErrorCode>21917</ErrorCode><SeverityCode>Warning</SeverityCode>
		</Errors><ActiveList><PaginationResult><TotalNumberOfPages>1</TotalNumberOfPages></PaginationResult></ActiveList>
		</GetMyeBaySellingResponse>`))
	}))

	page, err := c.GetMyeBaySelling(context.Background(), sandboxAuth, 1, 100)
	require.NoError(t, err)
	assert.False(t, page.HasMore)
	assert.Empty(t, page.Items)
}

func TestClient_AuthorizeURL(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.NotFoundHandler(), ebay.WithScopes("https://api.ebay.com/oauth/api_scope"))

	raw, err := c.AuthorizeURL(domain.EnvSandbox, "state-123")
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "/oauth2/authorize", u.Path)
	q := u.Query()
	assert.Equal(t, "app-id", q.Get("client_id"))
	assert.Equal(t, "Seller-RuName", q.Get("redirect_uri"))
	assert.Equal(t, "state-123", q.Get("state"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "https://api.ebay.com/oauth/api_scope", q.Get("scope"))
}

func TestClient_ExchangeCode(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/identity/v1/oauth2/token", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "app-id", user)
		assert.Equal(t, "cert-id", pass)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		assert.Equal(t, "the-code", r.PostForm.Get("code"))

		writeJSON(t, w, http.StatusOK, map[string]any{
			"access_token":  "access-1",
			"refresh_token": "refresh-1",
			"token_type":    "User Access Token",
			"expires_in":    7200,
		})
	}))

	before := time.Now()
	ts, err := c.ExchangeCode(context.Background(), domain.EnvSandbox, "the-code")
	require.NoError(t, err)
	assert.Equal(t, "access-1", ts.AccessToken)
	assert.Equal(t, "refresh-1", ts.RefreshToken)
	assert.WithinDuration(t, before.Add(2*time.Hour), ts.Expiry, time.Minute)
}

func TestClient_RefreshToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		status      int
		body        map[string]any
		wantAccess  string
		wantRefresh string
		wantErrIs   error
	}{
		{
			name:   "keeps refresh token when response omits it",
			status: http.StatusOK,
			body: map[string]any{
				"access_token": "access-2",
				"token_type":   "User Access Token",
				"expires_in":   7200,
			},
			wantAccess:  "access-2",
			wantRefresh: "refresh-1",
		},
		{
			name:   "invalid grant is an auth error",
			status: http.StatusBadRequest,
			body: map[string]any{
				"error":             "invalid_grant",
				"error_description": "the provided authorization refresh token is invalid",
			},
			wantErrIs: apperror.ErrAuth,
		},
		{
			name:      "server error is transient",
			status:    http.StatusServiceUnavailable,
			body:      map[string]any{"error": "temporarily_unavailable"},
			wantErrIs: apperror.ErrTransient,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.NoError(t, r.ParseForm())
				assert.Equal(t, "refresh_token", r.PostForm.Get("grant_type"))
				assert.Equal(t, "refresh-1", r.PostForm.Get("refresh_token"))
				writeJSON(t, w, tt.status, tt.body)
			}))

			ts, err := c.RefreshToken(context.Background(), domain.EnvSandbox, "refresh-1")
			if tt.wantErrIs != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErrIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAccess, ts.AccessToken)
			assert.Equal(t, tt.wantRefresh, ts.RefreshToken)
		})
	}
}

func TestClient_GetUser(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.URL.Path, "/commerce/identity/v1/user"))
		writeJSON(t, w, http.StatusOK, map[string]string{"userId": "u-1", "username": "cardshop"})
	}))

	u, err := c.GetUser(context.Background(), sandboxAuth)
	require.NoError(t, err)
	assert.Equal(t, "u-1", u.UserID)
	assert.Equal(t, "cardshop", u.Username)
}

func TestClient_GetUserRateLimits(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/developer/analytics/v1_beta/user_rate_limit/", r.URL.Path)
		_, _ = w.Write([]byte(`{"rateLimits":[{"apiContext":"TradingAPI","apiName":"TradingAPI","resources":[
			{"name":"GetMyeBaySelling","rates":[{"count":12,"limit":300,"remaining":288,"reset":"2025-01-16T08:00:00.000Z","timeWindow":86400}]},
			{"name":"Unused","rates":[]}
		]}]}`))
	}))

	quotas, err := c.GetUserRateLimits(context.Background(), sandboxAuth)
	require.NoError(t, err)
	require.Len(t, quotas, 1)
	assert.Equal(t, "GetMyeBaySelling", quotas[0].Resource)
	assert.Equal(t, int64(288), quotas[0].Remaining)
	assert.Equal(t, 24*time.Hour, quotas[0].TimeWindow)
	assert.Equal(t, 2025, quotas[0].ResetAt.Year())
}

func TestClient_DailyLimit(t *testing.T) {
	t.Parallel()

	calls := 0
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		writeJSON(t, w, http.StatusOK, map[string]any{})
	}), ebay.WithRateLimiter(ebay.NewRateLimiter(100, 10, 1)))

	_, err := c.ListLocations(context.Background(), sandboxAuth)
	require.NoError(t, err)

	_, err = c.ListLocations(context.Background(), sandboxAuth)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrRateLimited)
	assert.Equal(t, 1, calls)
}
