package account

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/donaldgifford/ebay-lister/internal/apperror"
	"github.com/donaldgifford/ebay-lister/internal/ebay"
	"github.com/donaldgifford/ebay-lister/internal/store"
	domain "github.com/donaldgifford/ebay-lister/pkg/types"
)

// SettingLegacyImported marks that the single-account credential file has
// been imported.
const SettingLegacyImported = "legacy_token_imported_at"

// Manager adds, removes and switches seller accounts and resolves the
// active one. It is safe for concurrent use.
type Manager struct {
	store    store.AccountStore
	auth     ebay.Authenticator
	tokens   *Tokens
	activeMu sync.Mutex
	nowFunc  func() time.Time
	logger   *slog.Logger
}

// ManagerOption configures the Manager.
type ManagerOption func(*Manager)

// WithManagerNowFunc overrides the clock for testing.
func WithManagerNowFunc(f func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.nowFunc = f
	}
}

// WithManagerLogger sets the logger.
func WithManagerLogger(l *slog.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = l
	}
}

// NewManager creates an account manager. It shares the per-account locks
// of tokens so refreshes and account mutations never interleave.
func NewManager(s store.AccountStore, auth ebay.Authenticator, tokens *Tokens, opts ...ManagerOption) *Manager {
	m := &Manager{
		store:   s,
		auth:    auth,
		tokens:  tokens,
		nowFunc: time.Now,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Tokens returns the token lifecycle used by this manager.
func (m *Manager) Tokens() *Tokens {
	return m.tokens
}

// AddAccount stores (or updates) a seller account and returns its key. The
// account becomes active when no account is active yet. Re-adding an
// existing account keeps its original connection time.
func (m *Manager) AddAccount(
	ctx context.Context,
	userID, username string,
	env domain.Environment,
	tokens domain.TokenSet,
) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return "", apperror.Validation("user_id", "user id is required")
	}
	if !env.Valid() {
		return "", apperror.Validation("environment", fmt.Sprintf("unknown environment %q", env))
	}
	if tokens.AccessToken == "" {
		return "", apperror.Validation("access_token", "access token is required")
	}

	key := domain.AccountKey(userID, env)
	now := m.nowFunc()

	m.activeMu.Lock()
	defer m.activeMu.Unlock()

	unlock := m.tokens.locks.Lock(key)
	acct := &domain.Account{
		AccountKey:   key,
		UserID:       userID,
		Username:     username,
		Environment:  env,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		TokenExpiry:  tokens.Expiry,
		ConnectedAt:  now,
		LastUsedAt:   &now,
	}
	err := m.store.UpsertAccount(ctx, acct)
	unlock()
	if err != nil {
		return "", fmt.Errorf("saving account %s: %w", key, err)
	}

	active, err := m.resolveActiveKey(ctx)
	if err != nil {
		return "", err
	}
	if active == "" {
		if err := m.store.SetActiveAccountKey(ctx, key); err != nil {
			return "", fmt.Errorf("activating account %s: %w", key, err)
		}
		m.logger.Info("account activated", "account", key)
	}

	m.logger.Info("account connected", "account", key, "username", username)
	updateReauthGauge(ctx, m.store, m.logger)
	return key, nil
}

// RemoveAccount deletes the account and reports whether it existed. Listings
// keep their attribution. When the active account is removed the most
// recently used remaining account becomes active, or none.
func (m *Manager) RemoveAccount(ctx context.Context, key string) (bool, error) {
	m.activeMu.Lock()
	defer m.activeMu.Unlock()

	active, err := m.store.GetActiveAccountKey(ctx)
	if err != nil {
		return false, fmt.Errorf("reading active account: %w", err)
	}

	unlock := m.tokens.locks.Lock(key)
	deleted, err := m.store.DeleteAccount(ctx, key)
	unlock()
	if err != nil {
		return false, fmt.Errorf("deleting account %s: %w", key, err)
	}
	if !deleted {
		return false, nil
	}
	m.logger.Info("account removed", "account", key)

	if active == key {
		next, err := m.reselect(ctx)
		if err != nil {
			return true, err
		}
		m.logger.Info("active account reselected", "removed", key, "active", next)
	}

	updateReauthGauge(ctx, m.store, m.logger)
	return true, nil
}

// SetActiveAccount makes key the active account. It reports false, and
// changes nothing, when the account does not exist. No remote call is made.
func (m *Manager) SetActiveAccount(ctx context.Context, key string) (bool, error) {
	m.activeMu.Lock()
	defer m.activeMu.Unlock()

	if _, err := m.store.GetAccount(ctx, key); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("loading account %s: %w", key, err)
	}

	if err := m.store.SetActiveAccountKey(ctx, key); err != nil {
		return false, fmt.Errorf("activating account %s: %w", key, err)
	}

	unlock := m.tokens.locks.Lock(key)
	err := m.store.TouchAccount(ctx, key, m.nowFunc())
	unlock()
	if err != nil {
		return true, fmt.Errorf("touching account %s: %w", key, err)
	}

	m.logger.Info("active account switched", "account", key)
	return true, nil
}

// ActiveAccount returns the active account, or nil when there is none. A
// pointer to a missing account is repaired by reselecting.
func (m *Manager) ActiveAccount(ctx context.Context) (*domain.Account, error) {
	m.activeMu.Lock()
	defer m.activeMu.Unlock()

	key, err := m.resolveActiveKey(ctx)
	if err != nil {
		return nil, err
	}
	if key == "" {
		return nil, nil
	}

	acct, err := m.store.GetAccount(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("loading active account %s: %w", key, err)
	}
	return acct, nil
}

// Resolve returns the account for key, or the active account when key is
// empty. A missing account is an apperror.ErrNotFound error.
func (m *Manager) Resolve(ctx context.Context, key string) (*domain.Account, error) {
	if key == "" {
		acct, err := m.ActiveAccount(ctx)
		if err != nil {
			return nil, err
		}
		if acct == nil {
			return nil, apperror.NotFound("active account", "")
		}
		return acct, nil
	}

	acct, err := m.store.GetAccount(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("loading account %s: %w", key, err)
	}
	return acct, nil
}

// ListAccounts returns every account, most recently used first.
func (m *Manager) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	accts, err := m.store.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	return accts, nil
}

// AuthorizeURL returns the consent URL for connecting a seller in env.
func (m *Manager) AuthorizeURL(env domain.Environment, state string) (string, error) {
	if !env.Valid() {
		return "", apperror.Validation("environment", fmt.Sprintf("unknown environment %q", env))
	}
	return m.auth.AuthorizeURL(env, state)
}

// Connect completes the authorization-code flow: it exchanges code for
// tokens, looks up the seller identity and stores the account.
func (m *Manager) Connect(ctx context.Context, env domain.Environment, code string) (*domain.Account, error) {
	if !env.Valid() {
		return nil, apperror.Validation("environment", fmt.Sprintf("unknown environment %q", env))
	}
	if code == "" {
		return nil, apperror.Validation("code", "authorization code is required")
	}

	ctx = context.WithoutCancel(ctx)
	callCtx, cancel := context.WithTimeout(ctx, m.tokens.callTimeout)
	defer cancel()

	ts, err := m.auth.ExchangeCode(callCtx, env, code)
	if err != nil {
		return nil, fmt.Errorf("connecting %s account: %w", env, err)
	}

	user, err := m.auth.GetUser(callCtx, ebay.Auth{Environment: env, Token: ts.AccessToken})
	if err != nil {
		return nil, fmt.Errorf("connecting %s account: %w", env, err)
	}

	key, err := m.AddAccount(ctx, user.UserID, user.Username, env, *ts)
	if err != nil {
		return nil, err
	}

	acct, err := m.store.GetAccount(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("loading account %s: %w", key, err)
	}
	return acct, nil
}

// legacyCredential is the single-account token file written by earlier
// releases.
type legacyCredential struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	Environment  string    `json:"environment"`
	UserID       string    `json:"user_id"`
	Username     string    `json:"username"`
}

// ImportLegacy imports a single-account credential file once. It runs only
// when no account exists and the import has not happened before. A missing
// file is not an error. Once the file has been read the attempt is recorded
// whatever its outcome, so a broken file is never retried. It reports
// whether an account was imported.
func (m *Manager) ImportLegacy(ctx context.Context, path string) (bool, error) {
	if path == "" {
		return false, nil
	}

	if _, done, err := m.store.GetSetting(ctx, SettingLegacyImported); err != nil {
		return false, fmt.Errorf("reading legacy import flag: %w", err)
	} else if done {
		return false, nil
	}

	accts, err := m.store.ListAccounts(ctx)
	if err != nil {
		return false, fmt.Errorf("listing accounts: %w", err)
	}
	if len(accts) > 0 {
		return false, m.markLegacyImported(ctx)
	}

	data, err := os.ReadFile(path) //nolint:gosec // operator-supplied path
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("reading legacy token file: %w", err)
	}

	key, importErr := m.importLegacyFile(ctx, path, data)
	if err := m.markLegacyImported(ctx); err != nil {
		return false, errors.Join(importErr, err)
	}
	if importErr != nil {
		return false, importErr
	}

	m.logger.Info("imported legacy credential file", "account", key, "path", path)
	return true, nil
}

func (m *Manager) importLegacyFile(ctx context.Context, path string, data []byte) (string, error) {
	var cred legacyCredential
	if err := json.Unmarshal(data, &cred); err != nil {
		return "", fmt.Errorf("parsing legacy token file %s: %w", path, err)
	}

	env := domain.EnvProduction
	if cred.Environment != "" {
		var err error
		env, err = domain.ParseEnvironment(cred.Environment)
		if err != nil {
			return "", fmt.Errorf("parsing legacy token file %s: %w", path, err)
		}
	}

	// Old files usually hold an expired access token.
	expired := !cred.ExpiresAt.IsZero() && !m.nowFunc().Before(cred.ExpiresAt)
	if expired && cred.RefreshToken != "" {
		callCtx, cancel := context.WithTimeout(ctx, m.tokens.callTimeout)
		ts, err := m.auth.RefreshToken(callCtx, env, cred.RefreshToken)
		cancel()
		if err != nil {
			return "", fmt.Errorf("refreshing legacy token: %w", err)
		}
		cred.AccessToken, cred.ExpiresAt = ts.AccessToken, ts.Expiry
		if ts.RefreshToken != "" {
			cred.RefreshToken = ts.RefreshToken
		}
	}

	if cred.UserID == "" {
		callCtx, cancel := context.WithTimeout(ctx, m.tokens.callTimeout)
		user, err := m.auth.GetUser(callCtx, ebay.Auth{Environment: env, Token: cred.AccessToken})
		cancel()
		if err != nil {
			return "", fmt.Errorf("identifying legacy account: %w", err)
		}
		cred.UserID, cred.Username = user.UserID, user.Username
	}

	key, err := m.AddAccount(ctx, cred.UserID, cred.Username, env, domain.TokenSet{
		AccessToken:  cred.AccessToken,
		RefreshToken: cred.RefreshToken,
		Expiry:       cred.ExpiresAt,
	})
	if err != nil {
		return "", fmt.Errorf("importing legacy account: %w", err)
	}
	return key, nil
}

func (m *Manager) markLegacyImported(ctx context.Context) error {
	if err := m.store.SetSetting(ctx, SettingLegacyImported, m.nowFunc().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("saving legacy import flag: %w", err)
	}
	return nil
}

// resolveActiveKey returns the active key after repairing a pointer to a
// missing account. Callers hold activeMu.
func (m *Manager) resolveActiveKey(ctx context.Context) (string, error) {
	key, err := m.store.GetActiveAccountKey(ctx)
	if err != nil {
		return "", fmt.Errorf("reading active account: %w", err)
	}
	if key == "" {
		return "", nil
	}

	_, err = m.store.GetAccount(ctx, key)
	switch {
	case err == nil:
		return key, nil
	case errors.Is(err, store.ErrNotFound):
		m.logger.Warn("active account pointer is dangling, reselecting", "account", key)
		return m.reselect(ctx)
	default:
		return "", fmt.Errorf("loading active account %s: %w", key, err)
	}
}

// reselect points at the most recently used account, ties broken by key,
// or clears the pointer when no account is left.
func (m *Manager) reselect(ctx context.Context) (string, error) {
	accts, err := m.store.ListAccounts(ctx)
	if err != nil {
		return "", fmt.Errorf("listing accounts: %w", err)
	}

	next := ""
	if len(accts) > 0 {
		next = accts[0].AccountKey
	}
	if err := m.store.SetActiveAccountKey(ctx, next); err != nil {
		return "", fmt.Errorf("setting active account: %w", err)
	}
	return next, nil
}
