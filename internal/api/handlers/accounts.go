package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/ebay-lister/internal/engine"
	domain "github.com/donaldgifford/ebay-lister/pkg/types"
)

// AccountsHandler handles seller account endpoints.
type AccountsHandler struct {
	svc AccountService
}

// NewAccountsHandler creates a new AccountsHandler.
func NewAccountsHandler(svc AccountService) *AccountsHandler {
	return &AccountsHandler{svc: svc}
}

// --- Input/Output types ---

// ListAccountsOutput is the response for listing accounts.
type ListAccountsOutput struct {
	Body struct {
		Accounts []engine.AccountInfo `json:"accounts"`
	}
}

// SwitchAccountInput selects the active account.
type SwitchAccountInput struct {
	Body struct {
		AccountKey string `json:"account_key" doc:"Key of the account to activate" example:"seller1:production"`
	}
}

// AccountKeyInput addresses one account by key.
type AccountKeyInput struct {
	Key string `path:"key" doc:"Account key (user_id:environment)"`
}

// ConnectInput starts the authorization flow.
type ConnectInput struct {
	Body struct {
		Environment string `json:"environment" enum:"sandbox,production" doc:"Environment to connect"`
	}
}

// ConnectOutput carries the consent URL the seller must open.
type ConnectOutput struct {
	Body struct {
		AuthorizeURL string `json:"authorize_url"`
		State        string `json:"state"`
	}
}

// CallbackInput is the redirect eBay sends after consent.
type CallbackInput struct {
	Code  string `query:"code"  doc:"Authorization code"`
	State string `query:"state" doc:"State issued by the connect call"`
}

// AccountOutput is a single account response.
type AccountOutput struct {
	Body domain.Account
}

// --- Handlers ---

// ListAccounts returns every connected account with the active one flagged.
func (h *AccountsHandler) ListAccounts(ctx context.Context, _ *struct{}) (*ListAccountsOutput, error) {
	accts, err := h.svc.ListAccounts(ctx)
	if err != nil {
		return nil, toHTTPError(err)
	}

	resp := &ListAccountsOutput{}
	resp.Body.Accounts = accts
	if resp.Body.Accounts == nil {
		resp.Body.Accounts = []engine.AccountInfo{}
	}
	return resp, nil
}

// SwitchAccount makes an account the active one.
func (h *AccountsHandler) SwitchAccount(ctx context.Context, input *SwitchAccountInput) (*struct{}, error) {
	if err := h.svc.SwitchAccount(ctx, input.Body.AccountKey); err != nil {
		return nil, toHTTPError(err)
	}
	return nil, nil
}

// DisconnectAccount removes an account. Its listings keep their attribution.
func (h *AccountsHandler) DisconnectAccount(ctx context.Context, input *AccountKeyInput) (*struct{}, error) {
	if err := h.svc.DisconnectAccount(ctx, input.Key); err != nil {
		return nil, toHTTPError(err)
	}
	return nil, nil
}

// Connect returns the consent URL for a new account.
func (h *AccountsHandler) Connect(_ context.Context, input *ConnectInput) (*ConnectOutput, error) {
	u, state, err := h.svc.ConnectURL(domain.Environment(input.Body.Environment))
	if err != nil {
		return nil, toHTTPError(err)
	}

	resp := &ConnectOutput{}
	resp.Body.AuthorizeURL = u
	resp.Body.State = state
	return resp, nil
}

// Callback completes the authorization flow and stores the account.
func (h *AccountsHandler) Callback(ctx context.Context, input *CallbackInput) (*AccountOutput, error) {
	acct, err := h.svc.CompleteConnect(ctx, input.State, input.Code)
	if err != nil {
		return nil, toHTTPError(err)
	}
	return &AccountOutput{Body: *acct}, nil
}

// RegisterAccountRoutes registers account endpoints with the Huma API.
func RegisterAccountRoutes(api huma.API, h *AccountsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-accounts",
		Method:      http.MethodGet,
		Path:        "/api/v1/accounts",
		Summary:     "List accounts",
		Description: "Returns every connected seller account, most recently used first.",
		Tags:        []string{"accounts"},
	}, h.ListAccounts)

	huma.Register(api, huma.Operation{
		OperationID:   "switch-account",
		Method:        http.MethodPut,
		Path:          "/api/v1/accounts/active",
		Summary:       "Switch the active account",
		Description:   "Makes the given account the default for publish and sync calls.",
		Tags:          []string{"accounts"},
		DefaultStatus: http.StatusNoContent,
		Errors:        []int{http.StatusNotFound},
	}, h.SwitchAccount)

	huma.Register(api, huma.Operation{
		OperationID:   "disconnect-account",
		Method:        http.MethodDelete,
		Path:          "/api/v1/accounts/{key}",
		Summary:       "Disconnect an account",
		Description:   "Removes the stored credentials. Listings stay attributed to the account.",
		Tags:          []string{"accounts"},
		DefaultStatus: http.StatusNoContent,
		Errors:        []int{http.StatusNotFound},
	}, h.DisconnectAccount)

	huma.Register(api, huma.Operation{
		OperationID: "connect-account",
		Method:      http.MethodPost,
		Path:        "/api/v1/accounts/connect",
		Summary:     "Start connecting an account",
		Description: "Returns the eBay consent URL. eBay redirects back to the callback endpoint.",
		Tags:        []string{"accounts"},
		Errors:      []int{http.StatusUnprocessableEntity},
	}, h.Connect)

	huma.Register(api, huma.Operation{
		OperationID: "connect-callback",
		Method:      http.MethodGet,
		Path:        "/api/v1/accounts/callback",
		Summary:     "Finish connecting an account",
		Description: "Exchanges the authorization code and stores the seller account.",
		Tags:        []string{"accounts"},
		Errors:      []int{http.StatusUnauthorized, http.StatusUnprocessableEntity, http.StatusServiceUnavailable},
	}, h.Callback)
}
