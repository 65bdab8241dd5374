package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/ebay-lister/internal/api/handlers"
	"github.com/donaldgifford/ebay-lister/internal/api/handlers/mocks"
	"github.com/donaldgifford/ebay-lister/internal/apperror"
	domain "github.com/donaldgifford/ebay-lister/pkg/types"
)

func newSyncAPI(t *testing.T, svc *mocks.MockSyncService) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	handlers.RegisterSyncRoutes(api, handlers.NewSyncHandler(svc))
	return api
}

func TestRunSync(t *testing.T) {
	t.Parallel()

	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	completed := started.Add(4 * time.Second)

	tests := []struct {
		name       string
		body       any
		key        string
		entry      *domain.SyncLogEntry
		err        error
		wantStatus int
		wantBody   []string
		wantRetry  string
	}{
		{
			name: "explicit account",
			body: map[string]any{"account_key": "seller1:production"},
			key:  "seller1:production",
			entry: &domain.SyncLogEntry{
				SyncID:       "s-1",
				AccountKey:   "seller1:production",
				StartedAt:    started,
				CompletedAt:  &completed,
				ItemsSynced:  12,
				APICallsMade: 1,
				Status:       domain.SyncCompleted,
			},
			wantStatus: http.StatusOK,
			wantBody:   []string{`"items_synced":12`, `"status":"completed"`},
		},
		{
			name:       "active account when body is empty",
			key:        "",
			entry:      &domain.SyncLogEntry{SyncID: "s-2", Status: domain.SyncCompleted},
			wantStatus: http.StatusOK,
		},
		{
			name:       "inside cooldown",
			body:       map[string]any{},
			key:        "",
			err:        &apperror.RateLimitedError{RetryAfter: 9*time.Minute + 30*time.Second, Message: "sync cooldown"},
			wantStatus: http.StatusTooManyRequests,
			wantBody:   []string{`"value":570`},
			wantRetry:  "570",
		},
		{
			name:       "account needs reauth",
			body:       map[string]any{"account_key": "seller1:sandbox"},
			key:        "seller1:sandbox",
			err:        &apperror.AuthError{AccountKey: "seller1:sandbox"},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := mocks.NewMockSyncService(t)
			svc.EXPECT().RefreshListingCache(mock.Anything, tt.key).Return(tt.entry, tt.err).Once()

			api := newSyncAPI(t, svc)
			var resp *httptest.ResponseRecorder
			if tt.body != nil {
				resp = api.Post("/api/v1/sync", tt.body)
			} else {
				resp = api.Post("/api/v1/sync")
			}

			require.Equal(t, tt.wantStatus, resp.Code)
			for _, s := range tt.wantBody {
				assert.Contains(t, resp.Body.String(), s)
			}
			if tt.wantRetry != "" {
				assert.Equal(t, tt.wantRetry, resp.Header().Get("Retry-After"))
			}
		})
	}
}

func TestSyncHistory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		url       string
		key       string
		limit     int
		entries   []domain.SyncLogEntry
		wantParts []string
	}{
		{
			name:  "passes account and limit",
			url:   "/api/v1/sync/history?account_key=seller1:sandbox&limit=5",
			key:   "seller1:sandbox",
			limit: 5,
			entries: []domain.SyncLogEntry{
				{SyncID: "s-2", Status: domain.SyncFailed, ErrorMessage: "abandoned: no result within 1h0m0s"},
				{SyncID: "s-1", Status: domain.SyncCompleted},
			},
			wantParts: []string{`"sync_id":"s-2"`, "abandoned"},
		},
		{
			name:      "empty history",
			url:       "/api/v1/sync/history",
			wantParts: []string{`"entries":[]`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := mocks.NewMockSyncService(t)
			svc.EXPECT().SyncHistory(mock.Anything, tt.key, tt.limit).Return(tt.entries, nil).Once()

			resp := newSyncAPI(t, svc).Get(tt.url)
			require.Equal(t, http.StatusOK, resp.Code)
			for _, p := range tt.wantParts {
				assert.Contains(t, resp.Body.String(), p)
			}
		})
	}
}

func TestSyncCooldown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		d        time.Duration
		wantBody string
	}{
		{name: "can sync", d: 0, wantBody: `"can_sync":true,"remaining_seconds":0`},
		{name: "rounds up", d: 90*time.Second + 200*time.Millisecond, wantBody: `"can_sync":false,"remaining_seconds":91`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := mocks.NewMockSyncService(t)
			svc.EXPECT().SyncCooldown(mock.Anything, "").Return(tt.d, nil).Once()

			resp := newSyncAPI(t, svc).Get("/api/v1/sync/cooldown")
			require.Equal(t, http.StatusOK, resp.Code)
			assert.Contains(t, resp.Body.String(), tt.wantBody)
		})
	}
}
