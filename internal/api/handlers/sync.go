package handlers

import (
	"context"
	"math"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	domain "github.com/donaldgifford/ebay-lister/pkg/types"
)

// SyncHandler handles listing metric sync endpoints.
type SyncHandler struct {
	svc SyncService
}

// NewSyncHandler creates a new SyncHandler.
func NewSyncHandler(svc SyncService) *SyncHandler {
	return &SyncHandler{svc: svc}
}

// RunSyncInput requests a sync for one account.
type RunSyncInput struct {
	Body *struct {
		AccountKey string `json:"account_key,omitempty" doc:"Account to sync; the active account when empty"`
	}
}

// SyncEntryOutput is one sync log entry.
type SyncEntryOutput struct {
	Body domain.SyncLogEntry
}

// SyncHistoryInput selects sync log entries.
type SyncHistoryInput struct {
	AccountKey string `query:"account_key" doc:"Account key; the active account when empty"`
	Limit      int    `query:"limit"       doc:"Number of entries (default 20)"             minimum:"0" maximum:"200"`
}

// SyncHistoryOutput is the sync log for one account, newest first.
type SyncHistoryOutput struct {
	Body struct {
		Entries []domain.SyncLogEntry `json:"entries"`
	}
}

// SyncCooldownInput selects the account to check.
type SyncCooldownInput struct {
	AccountKey string `query:"account_key" doc:"Account key; the active account when empty"`
}

// SyncCooldownOutput reports when the next sync is allowed.
type SyncCooldownOutput struct {
	Body struct {
		CanSync          bool `json:"can_sync"`
		RemainingSeconds int  `json:"remaining_seconds" example:"540"`
	}
}

// RunSync refreshes the cached metrics of the account's listings. Inside
// the cooldown window it answers 429 with the seconds to wait.
func (h *SyncHandler) RunSync(ctx context.Context, input *RunSyncInput) (*SyncEntryOutput, error) {
	var key string
	if input.Body != nil {
		key = input.Body.AccountKey
	}

	entry, err := h.svc.RefreshListingCache(ctx, key)
	if err != nil {
		return nil, toHTTPError(err)
	}
	return &SyncEntryOutput{Body: *entry}, nil
}

// History returns recent sync attempts.
func (h *SyncHandler) History(ctx context.Context, input *SyncHistoryInput) (*SyncHistoryOutput, error) {
	entries, err := h.svc.SyncHistory(ctx, input.AccountKey, input.Limit)
	if err != nil {
		return nil, toHTTPError(err)
	}

	resp := &SyncHistoryOutput{}
	resp.Body.Entries = entries
	if resp.Body.Entries == nil {
		resp.Body.Entries = []domain.SyncLogEntry{}
	}
	return resp, nil
}

// Cooldown reports the remaining sync cooldown.
func (h *SyncHandler) Cooldown(ctx context.Context, input *SyncCooldownInput) (*SyncCooldownOutput, error) {
	d, err := h.svc.SyncCooldown(ctx, input.AccountKey)
	if err != nil {
		return nil, toHTTPError(err)
	}

	resp := &SyncCooldownOutput{}
	resp.Body.CanSync = d <= 0
	resp.Body.RemainingSeconds = int(math.Ceil(d.Seconds()))
	return resp, nil
}

// RegisterSyncRoutes registers sync endpoints with the Huma API.
func RegisterSyncRoutes(api huma.API, h *SyncHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "run-sync",
		Method:      http.MethodPost,
		Path:        "/api/v1/sync",
		Summary:     "Sync listing metrics",
		Description: "Fetches views, watchers, bids, price, and time remaining for every active listing of the account.",
		Tags:        []string{"sync"},
		Errors: []int{
			http.StatusUnauthorized,
			http.StatusNotFound,
			http.StatusTooManyRequests,
			http.StatusServiceUnavailable,
		},
	}, h.RunSync)

	huma.Register(api, huma.Operation{
		OperationID: "sync-history",
		Method:      http.MethodGet,
		Path:        "/api/v1/sync/history",
		Summary:     "Sync history",
		Description: "Returns the newest sync attempts for the account.",
		Tags:        []string{"sync"},
		Errors:      []int{http.StatusNotFound},
	}, h.History)

	huma.Register(api, huma.Operation{
		OperationID: "sync-cooldown",
		Method:      http.MethodGet,
		Path:        "/api/v1/sync/cooldown",
		Summary:     "Sync cooldown",
		Description: "Reports whether the account may sync now and how long until it may.",
		Tags:        []string{"sync"},
		Errors:      []int{http.StatusNotFound},
	}, h.Cooldown)
}
