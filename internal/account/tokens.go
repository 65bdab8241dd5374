// Package account manages connected seller accounts and their OAuth tokens.
// Tokens owns refresh and the authorized-call helper; Manager owns the
// account set and the active account pointer.
package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/donaldgifford/ebay-lister/internal/apperror"
	"github.com/donaldgifford/ebay-lister/internal/ebay"
	"github.com/donaldgifford/ebay-lister/internal/metrics"
	"github.com/donaldgifford/ebay-lister/internal/retry"
	"github.com/donaldgifford/ebay-lister/internal/store"
	domain "github.com/donaldgifford/ebay-lister/pkg/types"
)

const (
	defaultSafetyMargin = 5 * time.Minute
	defaultCallTimeout  = 30 * time.Second
)

// Tokens hands out valid access tokens and refreshes them. At most one
// refresh exchange runs per account at a time; concurrent callers share it.
type Tokens struct {
	store       store.AccountStore
	auth        ebay.Authenticator
	locks       *keyedMutex
	group       singleflight.Group
	margin      time.Duration
	callTimeout time.Duration
	policy      retry.Policy
	nowFunc     func() time.Time
	logger      *slog.Logger
}

// TokensOption configures Tokens.
type TokensOption func(*Tokens)

// WithSafetyMargin sets how long before expiry a token is treated as stale.
func WithSafetyMargin(d time.Duration) TokensOption {
	return func(t *Tokens) {
		t.margin = d
	}
}

// WithCallTimeout bounds each remote call, including refresh exchanges.
func WithCallTimeout(d time.Duration) TokensOption {
	return func(t *Tokens) {
		t.callTimeout = d
	}
}

// WithRetryPolicy sets the retry budget for transient failures.
func WithRetryPolicy(p retry.Policy) TokensOption {
	return func(t *Tokens) {
		t.policy = p
	}
}

// WithNowFunc overrides the clock for testing.
func WithNowFunc(f func() time.Time) TokensOption {
	return func(t *Tokens) {
		t.nowFunc = f
	}
}

// WithTokensLogger sets the logger.
func WithTokensLogger(l *slog.Logger) TokensOption {
	return func(t *Tokens) {
		t.logger = l
	}
}

// NewTokens creates a token lifecycle manager.
func NewTokens(s store.AccountStore, auth ebay.Authenticator, opts ...TokensOption) *Tokens {
	t := &Tokens{
		store:       s,
		auth:        auth,
		locks:       newKeyedMutex(),
		margin:      defaultSafetyMargin,
		callTimeout: defaultCallTimeout,
		policy:      retry.DefaultPolicy(),
		nowFunc:     time.Now,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// ValidToken returns the account with an access token that is good for at
// least the safety margin, refreshing first when needed.
func (t *Tokens) ValidToken(ctx context.Context, key string) (*domain.Account, error) {
	acct, err := t.load(ctx, key)
	if err != nil {
		return nil, err
	}
	if t.fresh(acct) {
		return acct, nil
	}
	return t.refresh(ctx, key, acct.AccessToken)
}

// Refresh forces a refresh-token exchange for the account and persists the
// new tokens. A rejected refresh marks the account as needing
// re-authorization and returns *apperror.AuthError; the account is kept.
func (t *Tokens) Refresh(ctx context.Context, key string) (*domain.Account, error) {
	return t.refresh(ctx, key, "")
}

// Call runs fn with a valid token under the retry policy. When the
// marketplace rejects the token, Call refreshes once and retries once. If
// another caller already refreshed, the stored token is reused instead of
// exchanging again. fn runs detached from ctx cancellation, bounded by the
// per-call timeout.
func (t *Tokens) Call(ctx context.Context, key string, fn func(ctx context.Context, auth ebay.Auth) error) error {
	acct, err := t.ValidToken(ctx, key)
	if err != nil {
		return err
	}

	err = t.attempt(ctx, acct, fn)
	if err == nil || !errors.Is(err, apperror.ErrAuth) {
		return err
	}

	t.logger.Info("access token rejected, refreshing", "account", key)

	acct, rerr := t.refresh(ctx, key, acct.AccessToken)
	if rerr != nil {
		return rerr
	}

	err = t.attempt(ctx, acct, fn)
	if errors.Is(err, apperror.ErrAuth) {
		return &apperror.AuthError{AccountKey: key, Err: err}
	}
	return err
}

func (t *Tokens) attempt(ctx context.Context, acct *domain.Account, fn func(context.Context, ebay.Auth) error) error {
	auth := ebay.Auth{Environment: acct.Environment, Token: acct.AccessToken}
	return retry.Do(context.WithoutCancel(ctx), t.policy, func(ctx context.Context) error {
		callCtx, cancel := context.WithTimeout(ctx, t.callTimeout)
		defer cancel()
		return fn(callCtx, auth)
	}, retry.WithNotify(func(err error, attempt int, wait time.Duration) {
		t.logger.Warn("remote call failed, retrying",
			"account", acct.AccountKey, "attempt", attempt, "wait", wait, "error", err)
	}))
}

// refresh exchanges the refresh token unless the stored access token no
// longer equals stale and is still fresh, meaning a concurrent refresh won.
func (t *Tokens) refresh(ctx context.Context, key, stale string) (*domain.Account, error) {
	v, err, shared := t.group.Do(key, func() (any, error) {
		unlock := t.locks.Lock(key)
		defer unlock()

		ctx := context.WithoutCancel(ctx)

		acct, err := t.load(ctx, key)
		if err != nil {
			return nil, err
		}
		if stale != "" && acct.AccessToken != stale && t.fresh(acct) {
			return acct, nil
		}
		if acct.RefreshToken == "" {
			return nil, t.reject(ctx, key, errors.New("no refresh token stored"))
		}

		var ts *domain.TokenSet
		err = retry.Do(ctx, t.policy, func(ctx context.Context) error {
			callCtx, cancel := context.WithTimeout(ctx, t.callTimeout)
			defer cancel()
			var rerr error
			ts, rerr = t.auth.RefreshToken(callCtx, acct.Environment, acct.RefreshToken)
			return rerr
		})
		if err != nil {
			if errors.Is(err, apperror.ErrAuth) {
				metrics.TokenRefreshesTotal.WithLabelValues("rejected").Inc()
				return nil, t.reject(ctx, key, err)
			}
			metrics.TokenRefreshesTotal.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("refreshing token for %s: %w", key, err)
		}

		if err := t.store.UpdateAccountTokens(ctx, key, *ts); err != nil {
			return nil, fmt.Errorf("saving refreshed token for %s: %w", key, err)
		}
		metrics.TokenRefreshesTotal.WithLabelValues("success").Inc()
		t.logger.Info("access token refreshed", "account", key, "expires", ts.Expiry)

		acct.AccessToken = ts.AccessToken
		acct.RefreshToken = ts.RefreshToken
		acct.TokenExpiry = ts.Expiry
		acct.NeedsReauth = false
		acct.ReauthReason = ""
		return acct, nil
	})
	if err != nil {
		return nil, err
	}

	acct := v.(*domain.Account)
	if shared {
		cp := *acct
		acct = &cp
	}
	return acct, nil
}

// reject flags the account for re-authorization and returns the AuthError
// callers see.
func (t *Tokens) reject(ctx context.Context, key string, cause error) error {
	if err := t.store.MarkAccountNeedsReauth(ctx, key, cause.Error()); err != nil {
		t.logger.Error("marking account for re-authorization", "account", key, "error", err)
	}
	t.logger.Warn("refresh token rejected, account needs re-authorization", "account", key, "error", cause)
	updateReauthGauge(ctx, t.store, t.logger)
	return &apperror.AuthError{AccountKey: key, Err: cause}
}

func (t *Tokens) load(ctx context.Context, key string) (*domain.Account, error) {
	acct, err := t.store.GetAccount(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("loading account %s: %w", key, err)
	}
	if acct.NeedsReauth {
		var cause error
		if acct.ReauthReason != "" {
			cause = errors.New(acct.ReauthReason)
		}
		return nil, &apperror.AuthError{AccountKey: key, Err: cause}
	}
	return acct, nil
}

func (t *Tokens) fresh(a *domain.Account) bool {
	return a.AccessToken != "" && t.nowFunc().Before(a.TokenExpiry.Add(-t.margin))
}

func updateReauthGauge(ctx context.Context, s store.AccountStore, logger *slog.Logger) {
	accts, err := s.ListAccounts(ctx)
	if err != nil {
		logger.Debug("counting accounts needing re-authorization", "error", err)
		return
	}
	n := 0
	for i := range accts {
		if accts[i].NeedsReauth {
			n++
		}
	}
	metrics.AccountsNeedingReauth.Set(float64(n))
}
