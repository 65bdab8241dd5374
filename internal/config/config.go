// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/ebay-lister/internal/retry"
	domain "github.com/donaldgifford/ebay-lister/pkg/types"
)

// Config is the top-level application configuration.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Database      DatabaseConfig      `yaml:"database"`
	Ebay          EbayConfig          `yaml:"ebay"`
	Listing       ListingConfig       `yaml:"listing"`
	Sync          SyncConfig          `yaml:"sync"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Tracing       TracingConfig       `yaml:"tracing"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// DatabaseConfig defines PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	PoolSize int    `yaml:"pool_size"`
}

// DSN returns a PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		d.Host, d.Port, d.Name, d.User, d.Password, d.SSLMode,
	)
}

// EbayConfig defines eBay API settings shared by both environments plus the
// per-environment application credentials and endpoints.
type EbayConfig struct {
	Sandbox           EnvironmentConfig `yaml:"sandbox"`
	Production        EnvironmentConfig `yaml:"production"`
	Scopes            []string          `yaml:"scopes"`
	RateLimit         RateLimitConfig   `yaml:"rate_limit"`
	CallTimeout       time.Duration     `yaml:"call_timeout"`
	Retry             retry.Policy      `yaml:"retry"`
	TokenSafetyMargin time.Duration     `yaml:"token_safety_margin"`
	LegacyTokenFile   string            `yaml:"legacy_token_file"`
}

// EnvironmentConfig holds the developer application keys and endpoint set
// for one eBay environment. An environment without an app_id is disabled.
type EnvironmentConfig struct {
	AppID              string `yaml:"app_id"`
	CertID             string `yaml:"cert_id"`
	RuName             string `yaml:"ru_name"`
	AuthURL            string `yaml:"auth_url"`
	TokenURL           string `yaml:"token_url"`
	APIURL             string `yaml:"api_url"`
	IdentityURL        string `yaml:"identity_url"`
	MediaURL           string `yaml:"media_url"`
	TradingURL         string `yaml:"trading_url"`
	ListingURLTemplate string `yaml:"listing_url_template"`
}

// Enabled reports whether application credentials are configured.
func (e *EnvironmentConfig) Enabled() bool {
	return e.AppID != ""
}

// ListingURL renders the public listing URL for a listing ID.
func (e *EnvironmentConfig) ListingURL(listingID string) string {
	return strings.ReplaceAll(e.ListingURLTemplate, "{id}", listingID)
}

// Environment returns the endpoint set for env.
func (e *EbayConfig) Environment(env domain.Environment) *EnvironmentConfig {
	if env == domain.EnvProduction {
		return &e.Production
	}
	return &e.Sandbox
}

// RateLimitConfig defines eBay API rate limiting settings.
type RateLimitConfig struct {
	PerSecond  float64 `yaml:"per_second"`
	Burst      int     `yaml:"burst"`
	DailyLimit int64   `yaml:"daily_limit"`
}

// ListingConfig defines the defaults applied to every published offer.
type ListingConfig struct {
	Marketplace     string         `yaml:"marketplace"`
	Currency        string         `yaml:"currency"`
	ContentLanguage string         `yaml:"content_language"`
	Location        LocationConfig `yaml:"location"`
	Sandbox         PolicyConfig   `yaml:"sandbox_policies"`
	Production      PolicyConfig   `yaml:"production_policies"`
}

// Policies returns the business policy IDs configured for env.
func (l *ListingConfig) Policies(env domain.Environment) PolicyConfig {
	if env == domain.EnvProduction {
		return l.Production
	}
	return l.Sandbox
}

// PolicyConfig holds the seller business policy IDs referenced by offers.
type PolicyConfig struct {
	FulfillmentPolicyID string `yaml:"fulfillment_policy_id"`
	PaymentPolicyID     string `yaml:"payment_policy_id"`
	ReturnPolicyID      string `yaml:"return_policy_id"`
}

// LocationConfig describes the merchant inventory location created when an
// account has none.
type LocationConfig struct {
	Key             string `yaml:"key"`
	Name            string `yaml:"name"`
	AddressLine1    string `yaml:"address_line1"`
	City            string `yaml:"city"`
	StateOrProvince string `yaml:"state_or_province"`
	PostalCode      string `yaml:"postal_code"`
	Country         string `yaml:"country"`
}

// SyncConfig defines listing metrics sync settings.
type SyncConfig struct {
	Interval          time.Duration `yaml:"interval"`
	MinInterval       time.Duration `yaml:"min_interval"`
	AbandonTimeout    time.Duration `yaml:"abandon_timeout"`
	PageSize          int           `yaml:"page_size"`
	ReconcileInterval time.Duration `yaml:"reconcile_interval"`
}

// NotificationsConfig defines notification targets.
type NotificationsConfig struct {
	Discord DiscordConfig `yaml:"discord"`
}

// DiscordConfig defines Discord webhook settings.
type DiscordConfig struct {
	Enabled    bool   `yaml:"enabled"`
	WebhookURL string `yaml:"webhook_url"`
}

// TracingConfig defines the OpenTelemetry exporter.
type TracingConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Endpoint    string  `yaml:"endpoint"`
	Insecure    bool    `yaml:"insecure"`
	ServiceName string  `yaml:"service_name"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML config bytes, applies defaults and validates.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyDatabaseDefaults(&cfg.Database)
	applyEbayDefaults(&cfg.Ebay)
	applyListingDefaults(&cfg.Listing)
	applySyncDefaults(&cfg.Sync)
	applyTracingDefaults(&cfg.Tracing)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 2 * time.Minute
	}
}

func applyDatabaseDefaults(d *DatabaseConfig) {
	if d.Port == 0 {
		d.Port = 5432
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}
	if d.PoolSize == 0 {
		d.PoolSize = 10
	}
}

func applyEbayDefaults(e *EbayConfig) {
	applyEnvironmentDefaults(&e.Production, "ebay.com", "www.ebay.com")
	applyEnvironmentDefaults(&e.Sandbox, "sandbox.ebay.com", "sandbox.ebay.com")

	if len(e.Scopes) == 0 {
		e.Scopes = []string{
			"https://api.ebay.com/oauth/api_scope",
			"https://api.ebay.com/oauth/api_scope/sell.inventory",
			"https://api.ebay.com/oauth/api_scope/sell.account",
			"https://api.ebay.com/oauth/api_scope/commerce.identity.readonly",
		}
	}
	if e.CallTimeout == 0 {
		e.CallTimeout = 30 * time.Second
	}
	if e.TokenSafetyMargin == 0 {
		e.TokenSafetyMargin = 5 * time.Minute
	}
	if e.Retry.MaxAttempts == 0 {
		e.Retry = retry.DefaultPolicy()
	}
	applyRateLimitDefaults(&e.RateLimit)
}

// applyEnvironmentDefaults fills endpoints from the environment's domain,
// e.g. "ebay.com" gives api.ebay.com, apiz.ebay.com and apim.ebay.com.
func applyEnvironmentDefaults(env *EnvironmentConfig, domainSuffix, webHost string) {
	if env.AuthURL == "" {
		env.AuthURL = "https://auth." + domainSuffix + "/oauth2/authorize"
	}
	if env.TokenURL == "" {
		env.TokenURL = "https://api." + domainSuffix + "/identity/v1/oauth2/token"
	}
	if env.APIURL == "" {
		env.APIURL = "https://api." + domainSuffix
	}
	if env.IdentityURL == "" {
		env.IdentityURL = "https://apiz." + domainSuffix + "/commerce/identity/v1/user/"
	}
	if env.MediaURL == "" {
		env.MediaURL = "https://apim." + domainSuffix + "/commerce/media/v1_beta"
	}
	if env.TradingURL == "" {
		env.TradingURL = "https://api." + domainSuffix + "/ws/api.dll"
	}
	if env.ListingURLTemplate == "" {
		env.ListingURLTemplate = "https://" + webHost + "/itm/{id}"
	}
}

func applyRateLimitDefaults(r *RateLimitConfig) {
	if r.PerSecond == 0 {
		r.PerSecond = 5.0
	}
	if r.Burst == 0 {
		r.Burst = 10
	}
	if r.DailyLimit == 0 {
		r.DailyLimit = 5000
	}
}

func applyListingDefaults(l *ListingConfig) {
	if l.Marketplace == "" {
		l.Marketplace = "EBAY_US"
	}
	if l.Currency == "" {
		l.Currency = "USD"
	}
	if l.ContentLanguage == "" {
		l.ContentLanguage = "en-US"
	}
	if l.Location.Key == "" {
		l.Location.Key = "default"
	}
	if l.Location.Name == "" {
		l.Location.Name = "Default location"
	}
	if l.Location.Country == "" {
		l.Location.Country = "US"
	}
}

func applySyncDefaults(s *SyncConfig) {
	if s.Interval == 0 {
		s.Interval = time.Hour
	}
	if s.MinInterval == 0 {
		s.MinInterval = 15 * time.Minute
	}
	if s.AbandonTimeout == 0 {
		s.AbandonTimeout = time.Hour
	}
	if s.PageSize == 0 {
		s.PageSize = 100
	}
	if s.ReconcileInterval == 0 {
		s.ReconcileInterval = time.Minute
	}
}

func applyTracingDefaults(t *TracingConfig) {
	if t.ServiceName == "" {
		t.ServiceName = "ebay-lister"
	}
	if t.SampleRatio == 0 {
		t.SampleRatio = 1.0
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Database.Host == "" {
		errs = append(errs, fmt.Errorf("database.host is required"))
	}
	if cfg.Database.Name == "" {
		errs = append(errs, fmt.Errorf("database.name is required"))
	}
	if cfg.Database.User == "" {
		errs = append(errs, fmt.Errorf("database.user is required"))
	}

	if !cfg.Ebay.Sandbox.Enabled() && !cfg.Ebay.Production.Enabled() {
		errs = append(errs, fmt.Errorf("ebay: at least one of sandbox.app_id or production.app_id is required"))
	}
	for _, env := range []domain.Environment{domain.EnvSandbox, domain.EnvProduction} {
		ec := cfg.Ebay.Environment(env)
		if ec.Enabled() && ec.CertID == "" {
			errs = append(errs, fmt.Errorf("ebay.%s.cert_id is required when app_id is set", env))
		}
		if !strings.Contains(ec.ListingURLTemplate, "{id}") {
			errs = append(errs, fmt.Errorf("ebay.%s.listing_url_template must contain {id}", env))
		}
	}
	if cfg.Ebay.RateLimit.PerSecond < 0 || cfg.Ebay.RateLimit.Burst < 0 {
		errs = append(errs, fmt.Errorf("ebay.rate_limit values must not be negative"))
	}

	loc := cfg.Listing.Location
	if loc.PostalCode == "" && (loc.City == "" || loc.StateOrProvince == "") {
		errs = append(errs, fmt.Errorf("listing.location requires postal_code or city and state_or_province"))
	}

	if cfg.Sync.MinInterval < 0 {
		errs = append(errs, fmt.Errorf("sync.min_interval must not be negative"))
	}
	if cfg.Sync.AbandonTimeout <= cfg.Ebay.CallTimeout {
		errs = append(errs, fmt.Errorf("sync.abandon_timeout must exceed ebay.call_timeout"))
	}
	if cfg.Sync.PageSize < 1 || cfg.Sync.PageSize > 200 {
		errs = append(errs, fmt.Errorf("sync.page_size must be between 1 and 200 (got %d)", cfg.Sync.PageSize))
	}

	if cfg.Notifications.Discord.Enabled && cfg.Notifications.Discord.WebhookURL == "" {
		errs = append(errs, fmt.Errorf("notifications.discord.webhook_url is required when discord is enabled"))
	}
	if cfg.Tracing.Enabled && cfg.Tracing.Endpoint == "" {
		errs = append(errs, fmt.Errorf("tracing.endpoint is required when tracing is enabled"))
	}

	return errors.Join(errs...)
}
