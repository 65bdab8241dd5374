// Package ebay provides the eBay marketplace client used by the account,
// publish and sync layers: OAuth user tokens, Identity, Media, the Sell
// Inventory API and the Trading API's GetMyeBaySelling. Every call names the
// environment it targets so sandbox and production are never conflated.
package ebay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/donaldgifford/ebay-lister/internal/apperror"
	"github.com/donaldgifford/ebay-lister/internal/metrics"
	domain "github.com/donaldgifford/ebay-lister/pkg/types"
)

const (
	defaultMarketplace     = "EBAY_US"
	defaultContentLanguage = "en-US"
	maxErrorBody           = 4096
)

// Auth identifies the environment and bearer token for one call.
type Auth struct {
	Environment domain.Environment
	Token       string
}

// Authenticator covers the OAuth user-token flow and identity lookup.
type Authenticator interface {
	AuthorizeURL(env domain.Environment, state string) (string, error)
	ExchangeCode(ctx context.Context, env domain.Environment, code string) (*domain.TokenSet, error)
	RefreshToken(ctx context.Context, env domain.Environment, refreshToken string) (*domain.TokenSet, error)
	GetUser(ctx context.Context, auth Auth) (*User, error)
}

// Seller covers the calls made while publishing a listing.
type Seller interface {
	ListLocations(ctx context.Context, auth Auth) ([]Location, error)
	CreateLocation(ctx context.Context, auth Auth, key string, loc LocationInput) error
	UploadImage(ctx context.Context, auth Auth, path string) (*Image, error)
	PutInventoryItem(ctx context.Context, auth Auth, sku string, item InventoryItem) error
	CreateOffer(ctx context.Context, auth Auth, offer Offer) (string, error)
	PublishOffer(ctx context.Context, auth Auth, offerID string) (string, error)
}

// SellingReporter covers the seller's active listing report used by sync.
type SellingReporter interface {
	GetMyeBaySelling(ctx context.Context, auth Auth, page, perPage int) (*SellingPage, error)
}

// QuotaReporter reads the remote per-user API quota.
type QuotaReporter interface {
	GetUserRateLimits(ctx context.Context, auth Auth) ([]QuotaState, error)
}

// Marketplace is the full client surface.
type Marketplace interface {
	Authenticator
	Seller
	SellingReporter
	QuotaReporter
}

// EnvironmentConfig holds application keys and endpoints for one environment.
type EnvironmentConfig struct {
	AppID       string
	CertID      string
	RuName      string
	AuthURL     string
	TokenURL    string
	APIURL      string
	IdentityURL string
	MediaURL    string
	TradingURL  string
}

// Client implements Marketplace over HTTP.
type Client struct {
	envs            map[domain.Environment]EnvironmentConfig
	scopes          []string
	marketplace     string
	contentLanguage string
	client          *http.Client
	rateLimiter     *RateLimiter
	logger          *slog.Logger
}

var _ Marketplace = (*Client)(nil)

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithRateLimiter injects a rate limiter that controls per-second and daily
// API call limits. When set, every remote call goes through Wait() first.
func WithRateLimiter(r *RateLimiter) Option {
	return func(c *Client) {
		c.rateLimiter = r
	}
}

// WithScopes sets the OAuth scopes requested at authorization.
func WithScopes(scopes ...string) Option {
	return func(c *Client) {
		c.scopes = scopes
	}
}

// WithMarketplace overrides the default marketplace ID.
func WithMarketplace(m string) Option {
	return func(c *Client) {
		c.marketplace = m
	}
}

// WithContentLanguage overrides the Content-Language sent to Sell APIs.
func WithContentLanguage(lang string) Option {
	return func(c *Client) {
		c.contentLanguage = lang
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates a marketplace client for the configured environments.
func NewClient(envs map[domain.Environment]EnvironmentConfig, opts ...Option) *Client {
	c := &Client{
		envs:            envs,
		marketplace:     defaultMarketplace,
		contentLanguage: defaultContentLanguage,
		client:          &http.Client{Timeout: 60 * time.Second},
		logger:          slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RateLimiter returns the shared limiter, or nil when none is configured.
func (c *Client) RateLimiter() *RateLimiter {
	return c.rateLimiter
}

func (c *Client) env(env domain.Environment) (EnvironmentConfig, error) {
	cfg, ok := c.envs[env]
	if !ok || cfg.AppID == "" {
		return EnvironmentConfig{}, apperror.Validation("environment", fmt.Sprintf("eBay %s environment is not configured", env))
	}
	return cfg, nil
}

// send waits on the limiter, executes req and returns the body of a 2xx
// response. Non-2xx responses become *APIError; transport failures are
// transient.
func (c *Client) send(ctx context.Context, call string, req *http.Request) ([]byte, http.Header, error) {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			if errors.Is(err, ErrDailyLimitReached) {
				metrics.EbayDailyLimitHits.Inc()
			}
			return nil, nil, fmt.Errorf("rate limit: %w", err)
		}
		metrics.EbayDailyUsage.Set(float64(c.rateLimiter.DailyCount()))
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	metrics.EbayAPICallDuration.WithLabelValues(call).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.EbayAPICallsTotal.WithLabelValues(call, "error").Inc()
		return nil, nil, apperror.Transient(fmt.Errorf("executing %s request: %w", call, err))
	}
	defer resp.Body.Close()

	metrics.EbayAPICallsTotal.WithLabelValues(call, statusClass(resp.StatusCode)).Inc()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, apperror.Transient(fmt.Errorf("reading %s response: %w", call, err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newAPIError(call, resp.StatusCode, body)
		if ra := resp.Header.Get("Retry-After"); ra != "" {
			if secs, err := strconv.Atoi(ra); err == nil {
				apiErr.RetryAfter = time.Duration(secs) * time.Second
			}
		}
		c.logger.Debug("eBay API error", "call", call, "status", resp.StatusCode, "error", apiErr)
		return nil, nil, apiErr
	}

	return body, resp.Header, nil
}

// sendJSON issues a REST call with an optional JSON body and decodes a JSON
// response into out when out is non-nil.
func (c *Client) sendJSON(
	ctx context.Context,
	call, method, url string,
	auth Auth,
	in, out any,
) (http.Header, error) {
	var body io.Reader = http.NoBody
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encoding %s request: %w", call, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("creating %s request: %w", call, err)
	}
	req.Header.Set("Authorization", "Bearer "+auth.Token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-EBAY-C-MARKETPLACE-ID", c.marketplace)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Content-Language", c.contentLanguage)
	}

	respBody, header, err := c.send(ctx, call, req)
	if err != nil {
		return nil, err
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return nil, fmt.Errorf("parsing %s response: %w", call, err)
		}
	}

	return header, nil
}

func statusClass(code int) string {
	return strconv.Itoa(code/100) + "xx"
}
