package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/ebay-lister/internal/ebay"
)

// QuotaHandler provides the eBay API quota endpoints.
type QuotaHandler struct {
	rl     *ebay.RateLimiter
	remote QuotaService
}

// NewQuotaHandler creates a new QuotaHandler. remote may be nil.
func NewQuotaHandler(rl *ebay.RateLimiter, remote QuotaService) *QuotaHandler {
	return &QuotaHandler{rl: rl, remote: remote}
}

// QuotaOutput is the response body for the local quota endpoint.
type QuotaOutput struct {
	Body ebay.Usage
}

// RemoteQuotaInput selects the account whose remote quota is read.
type RemoteQuotaInput struct {
	AccountKey string `query:"account_key" doc:"Account key; the active account when empty"`
}

// RemoteQuotaOutput lists the remote quota per API resource.
type RemoteQuotaOutput struct {
	Body struct {
		Resources []ebay.QuotaState `json:"resources"`
	}
}

// GetQuota returns the shared local call budget.
func (h *QuotaHandler) GetQuota(_ context.Context, _ *struct{}) (*QuotaOutput, error) {
	resp := &QuotaOutput{}
	if h.rl == nil {
		return resp, nil
	}
	resp.Body = h.rl.Usage()
	return resp, nil
}

// GetRemoteQuota returns the quota eBay reports for the account.
func (h *QuotaHandler) GetRemoteQuota(ctx context.Context, input *RemoteQuotaInput) (*RemoteQuotaOutput, error) {
	if h.remote == nil {
		return nil, huma.Error501NotImplemented("remote quota lookups are not configured")
	}

	states, err := h.remote.RemoteQuota(ctx, input.AccountKey)
	if err != nil {
		return nil, toHTTPError(err)
	}

	resp := &RemoteQuotaOutput{}
	resp.Body.Resources = states
	if resp.Body.Resources == nil {
		resp.Body.Resources = []ebay.QuotaState{}
	}
	return resp, nil
}

// RegisterQuotaRoutes registers the quota endpoints with the Huma API.
func RegisterQuotaRoutes(api huma.API, h *QuotaHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-quota",
		Method:      http.MethodGet,
		Path:        "/api/v1/quota",
		Summary:     "Get local eBay call budget",
		Description: "Returns the daily call count, remaining budget, and window reset time of the shared limiter.",
		Tags:        []string{"ebay"},
	}, h.GetQuota)

	huma.Register(api, huma.Operation{
		OperationID: "get-remote-quota",
		Method:      http.MethodGet,
		Path:        "/api/v1/quota/remote",
		Summary:     "Get eBay per-user quota",
		Description: "Returns the per-resource quota eBay reports for the account.",
		Tags:        []string{"ebay"},
		Errors:      []int{http.StatusUnauthorized, http.StatusNotFound, http.StatusServiceUnavailable},
	}, h.GetRemoteQuota)
}
