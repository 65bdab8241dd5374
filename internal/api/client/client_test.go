package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/donaldgifford/ebay-lister/pkg/types"
)

func TestClient_ConnectionRefused(t *testing.T) {
	t.Parallel()

	c := New("http://127.0.0.1:1") // nothing listening
	_, err := c.ListAccounts(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API server not running")
}

func TestClient_ProblemError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		status      int
		header      map[string]string
		body        string
		wantMessage string
		wantRetry   time.Duration
		wantErrors  int
	}{
		{
			name:        "problem document",
			status:      http.StatusUnprocessableEntity,
			body:        `{"title":"Unprocessable Entity","status":422,"detail":"price: must be positive","errors":[{"location":"price","message":"must be positive"}]}`,
			wantMessage: "API error (HTTP 422): price: must be positive",
			wantErrors:  1,
		},
		{
			name:        "cooldown carries retry after",
			status:      http.StatusTooManyRequests,
			header:      map[string]string{"Retry-After": "540"},
			body:        `{"title":"Too Many Requests","status":429,"detail":"sync cooldown"}`,
			wantMessage: "retry in 9m0s",
			wantRetry:   9 * time.Minute,
		},
		{
			name:        "plain body",
			status:      http.StatusInternalServerError,
			body:        `oops`,
			wantMessage: "API error (HTTP 500): oops",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				for k, v := range tt.header {
					w.Header().Set(k, v)
				}
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := New(srv.URL).Sync(context.Background(), "")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMessage)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantRetry, apiErr.RetryAfter)
			assert.Len(t, apiErr.Errors, tt.wantErrors)
		})
	}
}

func TestClient_Publish(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/listings", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "249.5", req["price"])
		assert.Equal(t, "card-1", req["card_id"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"sku":"CARD-CARD-1-20260101","status":"listed","price":"249.5"}`))
	}))
	defer srv.Close()

	got, err := New(srv.URL).Publish(context.Background(), &domain.ListingRequest{
		CardID:    "card-1",
		Title:     "Charizard",
		Price:     decimal.RequireFromString("249.50"),
		Condition: "excellent",
		ImageRefs: []string{"https://img.example.com/1.jpg"},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusListed, got.Status)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("249.50")))
}

func TestClient_ListListings(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/listings", r.URL.Path)
		assert.Equal(t, "seller1:sandbox", r.URL.Query().Get("account_key"))
		assert.Equal(t, "listed,failed", r.URL.Query().Get("status"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		assert.Empty(t, r.URL.Query().Get("offset"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"listings":[{"sku":"A"}],"total":1,"limit":10,"offset":0}`))
	}))
	defer srv.Close()

	result, err := New(srv.URL).ListListings(context.Background(), &ListListingsParams{
		AccountKey: "seller1:sandbox",
		Statuses:   []string{"listed", "failed"},
		Limit:      10,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Total)
	require.Len(t, result.Listings, 1)
	assert.Equal(t, "A", result.Listings[0].SKU)
}

func TestClient_Accounts(t *testing.T) {
	t.Parallel()

	var (
		mu    sync.Mutex
		calls []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls = append(calls, r.Method+" "+r.URL.Path)
		mu.Unlock()
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/accounts":
			_, _ = w.Write([]byte(`{"accounts":[{"account_key":"seller1:sandbox","active":true}]}`))
		case r.Method == http.MethodPut && r.URL.Path == "/api/v1/accounts/active":
			var body map[string]string
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "seller1:sandbox", body["account_key"])
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodPost && r.URL.Path == "/api/v1/accounts/connect":
			_, _ = w.Write([]byte(`{"authorize_url":"https://auth.example.com","state":"st"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	ctx := context.Background()

	accts, err := c.ListAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, accts, 1)
	assert.True(t, accts[0].Active)
	assert.Equal(t, "seller1:sandbox", accts[0].AccountKey)

	require.NoError(t, c.SwitchAccount(ctx, "seller1:sandbox"))
	require.NoError(t, c.DisconnectAccount(ctx, "seller1:sandbox"))

	conn, err := c.Connect(ctx, "sandbox")
	require.NoError(t, err)
	assert.Equal(t, "st", conn.State)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{
		"GET /api/v1/accounts",
		"PUT /api/v1/accounts/active",
		"DELETE /api/v1/accounts/seller1:sandbox",
		"POST /api/v1/accounts/connect",
	}, calls)
}

func TestClient_SyncCooldown(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/sync/cooldown", r.URL.Path)
		assert.Equal(t, "seller1:sandbox", r.URL.Query().Get("account_key"))
		_, _ = w.Write([]byte(`{"can_sync":false,"remaining_seconds":120}`))
	}))
	defer srv.Close()

	got, err := New(srv.URL).SyncCooldown(context.Background(), "seller1:sandbox")
	require.NoError(t, err)
	assert.False(t, got.CanSync)
	assert.Equal(t, 120, got.RemainingSeconds)
}

func TestWithHTTPClient(t *testing.T) {
	t.Parallel()

	custom := &http.Client{}
	c := New("http://localhost", WithHTTPClient(custom))
	assert.Equal(t, custom, c.httpClient)
}
