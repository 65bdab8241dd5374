package ebay

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/donaldgifford/ebay-lister/internal/apperror"
	"github.com/donaldgifford/ebay-lister/internal/metrics"
	domain "github.com/donaldgifford/ebay-lister/pkg/types"
)

// User is the identity of the seller that owns a token.
type User struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

func (c *Client) oauthConfig(env domain.Environment) (*oauth2.Config, error) {
	cfg, err := c.env(env)
	if err != nil {
		return nil, err
	}
	return &oauth2.Config{
		ClientID:     cfg.AppID,
		ClientSecret: cfg.CertID,
		// eBay expects the RuName, not a URL, as redirect_uri.
		RedirectURL: cfg.RuName,
		Scopes:      c.scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:   cfg.AuthURL,
			TokenURL:  cfg.TokenURL,
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}, nil
}

// AuthorizeURL returns the consent page URL a seller visits to grant access.
func (c *Client) AuthorizeURL(env domain.Environment, state string) (string, error) {
	cfg, err := c.oauthConfig(env)
	if err != nil {
		return "", err
	}
	if cfg.RedirectURL == "" {
		return "", apperror.Validation("ru_name", fmt.Sprintf("eBay %s ru_name is not configured", env))
	}
	return cfg.AuthCodeURL(state), nil
}

// ExchangeCode trades an authorization code for a user token set.
func (c *Client) ExchangeCode(
	ctx context.Context,
	env domain.Environment,
	code string,
) (*domain.TokenSet, error) {
	cfg, err := c.oauthConfig(env)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	tok, err := cfg.Exchange(c.oauthContext(ctx), code)
	c.observeOAuth("oauth_exchange", start, err)
	if err != nil {
		return nil, classifyOAuthError("exchanging authorization code", err)
	}

	return toTokenSet(tok, ""), nil
}

// RefreshToken exchanges a refresh token for a new access token. eBay keeps
// the refresh token unchanged, so the input is carried over when the response
// omits one.
func (c *Client) RefreshToken(
	ctx context.Context,
	env domain.Environment,
	refreshToken string,
) (*domain.TokenSet, error) {
	cfg, err := c.oauthConfig(env)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	tok, err := cfg.TokenSource(c.oauthContext(ctx), &oauth2.Token{RefreshToken: refreshToken}).Token()
	c.observeOAuth("oauth_refresh", start, err)
	if err != nil {
		return nil, classifyOAuthError("refreshing token", err)
	}

	return toTokenSet(tok, refreshToken), nil
}

// GetUser looks up the seller identity behind a token.
func (c *Client) GetUser(ctx context.Context, auth Auth) (*User, error) {
	cfg, err := c.env(auth.Environment)
	if err != nil {
		return nil, err
	}

	var u User
	if _, err := c.sendJSON(ctx, "identity_get_user", http.MethodGet, cfg.IdentityURL, auth, nil, &u); err != nil {
		return nil, fmt.Errorf("getting user identity: %w", err)
	}
	if u.UserID == "" {
		return nil, fmt.Errorf("getting user identity: response has no userId")
	}
	return &u, nil
}

func (c *Client) oauthContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, c.client)
}

func (c *Client) observeOAuth(call string, start time.Time, err error) {
	metrics.EbayAPICallDuration.WithLabelValues(call).Observe(time.Since(start).Seconds())
	status := "2xx"
	var re *oauth2.RetrieveError
	switch {
	case errors.As(err, &re) && re.Response != nil:
		status = statusClass(re.Response.StatusCode)
	case err != nil:
		status = "error"
	}
	metrics.EbayAPICallsTotal.WithLabelValues(call, status).Inc()
}

func toTokenSet(tok *oauth2.Token, fallbackRefresh string) *domain.TokenSet {
	refresh := tok.RefreshToken
	if refresh == "" {
		refresh = fallbackRefresh
	}
	return &domain.TokenSet{
		AccessToken:  tok.AccessToken,
		RefreshToken: refresh,
		Expiry:       tok.Expiry,
	}
}

// classifyOAuthError maps token endpoint failures: 429 and 5xx are
// transient, any other rejection means the grant is unusable.
func classifyOAuthError(action string, err error) error {
	var re *oauth2.RetrieveError
	if !errors.As(err, &re) || re.Response == nil {
		return apperror.Transient(fmt.Errorf("%s: %w", action, err))
	}

	apiErr := newAPIError("oauth", re.Response.StatusCode, re.Body)
	if re.ErrorCode != "" && len(apiErr.Errors) == 0 {
		apiErr.Errors = []ErrorDetail{{Message: re.ErrorCode + ": " + re.ErrorDescription}}
	}
	if !errors.Is(apiErr, apperror.ErrTransient) {
		apiErr.category = apperror.ErrAuth
	}
	return fmt.Errorf("%s: %w", action, apiErr)
}
