// Package engine is the entry point other components use: it ties account
// management, publishing and sync together behind one Service and runs the
// periodic jobs.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/donaldgifford/ebay-lister/internal/account"
	"github.com/donaldgifford/ebay-lister/internal/apperror"
	"github.com/donaldgifford/ebay-lister/internal/ebay"
	"github.com/donaldgifford/ebay-lister/internal/publish"
	"github.com/donaldgifford/ebay-lister/internal/store"
	"github.com/donaldgifford/ebay-lister/internal/syncer"
	domain "github.com/donaldgifford/ebay-lister/pkg/types"
)

const (
	defaultConnectStateTTL = 10 * time.Minute
	defaultHistoryLimit    = 20
)

// AccountInfo is an account together with whether it is the active one.
type AccountInfo struct {
	domain.Account
	Active bool `json:"active"`
}

type pendingConnect struct {
	env     domain.Environment
	expires time.Time
}

// Service is the collaborator surface of the listing engine.
type Service struct {
	accounts *account.Manager
	pipeline *publish.Pipeline
	syncer   *syncer.Syncer
	listings store.ListingStore
	quota    ebay.QuotaReporter

	stateTTL time.Duration
	statesMu sync.Mutex
	states   map[string]pendingConnect

	nowFunc func() time.Time
	log     *slog.Logger
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.log = l
	}
}

// WithNowFunc overrides the clock for testing.
func WithNowFunc(f func() time.Time) Option {
	return func(s *Service) {
		s.nowFunc = f
	}
}

// WithConnectStateTTL sets how long an authorization state stays valid.
func WithConnectStateTTL(d time.Duration) Option {
	return func(s *Service) {
		s.stateTTL = d
	}
}

// WithQuotaReporter enables remote quota lookups.
func WithQuotaReporter(q ebay.QuotaReporter) Option {
	return func(s *Service) {
		s.quota = q
	}
}

// NewService creates a Service with injected dependencies.
func NewService(
	accounts *account.Manager,
	pipeline *publish.Pipeline,
	sy *syncer.Syncer,
	listings store.ListingStore,
	opts ...Option,
) *Service {
	s := &Service{
		accounts: accounts,
		pipeline: pipeline,
		syncer:   sy,
		listings: listings,
		stateTTL: defaultConnectStateTTL,
		states:   make(map[string]pendingConnect),
		nowFunc:  time.Now,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Publish lists a card through the publish pipeline.
func (s *Service) Publish(ctx context.Context, req domain.ListingRequest) (*domain.Listing, error) {
	return s.pipeline.Publish(ctx, req)
}

// ListAccounts returns every connected account, most recently used first.
func (s *Service) ListAccounts(ctx context.Context) ([]AccountInfo, error) {
	accts, err := s.accounts.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	active, err := s.accounts.ActiveAccount(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]AccountInfo, len(accts))
	for i := range accts {
		out[i] = AccountInfo{Account: accts[i]}
		if active != nil && accts[i].AccountKey == active.AccountKey {
			out[i].Active = true
		}
	}
	return out, nil
}

// SwitchAccount makes key the active account.
func (s *Service) SwitchAccount(ctx context.Context, key string) error {
	ok, err := s.accounts.SetActiveAccount(ctx, key)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.NotFound("account", key)
	}
	return nil
}

// DisconnectAccount removes the account. Its listings stay attributed to it.
func (s *Service) DisconnectAccount(ctx context.Context, key string) error {
	ok, err := s.accounts.RemoveAccount(ctx, key)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.NotFound("account", key)
	}
	return nil
}

// GetCachedListing returns the local record for sku. A listing whose final
// write is still queued is returned from the queue with status
// persist_pending.
func (s *Service) GetCachedListing(ctx context.Context, sku string) (*domain.Listing, error) {
	if l, ok := s.pipeline.Reconciler().Lookup(sku); ok {
		return l, nil
	}
	l, err := s.listings.GetListing(ctx, sku)
	if err != nil {
		return nil, fmt.Errorf("loading listing %s: %w", sku, err)
	}
	return l, nil
}

// ListListings returns listings matching q and the total match count.
func (s *Service) ListListings(ctx context.Context, q *store.ListingQuery) ([]domain.Listing, int, error) {
	listings, total, err := s.listings.ListListings(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("listing listings: %w", err)
	}
	return listings, total, nil
}

// RefreshListingCache runs a sync for the account, or the active account
// when key is empty. The sync cooldown applies.
func (s *Service) RefreshListingCache(ctx context.Context, key string) (*domain.SyncLogEntry, error) {
	acct, err := s.accounts.Resolve(ctx, key)
	if err != nil {
		return nil, err
	}
	return s.syncer.RunSync(ctx, acct.AccountKey)
}

// SyncHistory returns the newest sync log entries for the account, or the
// active account when key is empty.
func (s *Service) SyncHistory(ctx context.Context, key string, limit int) ([]domain.SyncLogEntry, error) {
	acct, err := s.accounts.Resolve(ctx, key)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return s.syncer.History(ctx, acct.AccountKey, limit)
}

// SyncCooldown returns how long until the account may sync again.
func (s *Service) SyncCooldown(ctx context.Context, key string) (time.Duration, error) {
	acct, err := s.accounts.Resolve(ctx, key)
	if err != nil {
		return 0, err
	}
	return s.syncer.CooldownRemaining(ctx, acct.AccountKey, s.syncer.MinInterval())
}

// ConnectURL starts the authorization flow for env. The returned state must
// come back with the authorization code.
func (s *Service) ConnectURL(env domain.Environment) (authURL, state string, err error) {
	if !env.Valid() {
		return "", "", apperror.Validation("environment", fmt.Sprintf("unknown environment %q", env))
	}

	state = uuid.NewString()
	authURL, err = s.accounts.AuthorizeURL(env, state)
	if err != nil {
		return "", "", err
	}

	now := s.nowFunc()
	s.statesMu.Lock()
	for k, p := range s.states {
		if now.After(p.expires) {
			delete(s.states, k)
		}
	}
	s.states[state] = pendingConnect{env: env, expires: now.Add(s.stateTTL)}
	s.statesMu.Unlock()

	return authURL, state, nil
}

// CompleteConnect exchanges the authorization code for the state issued by
// ConnectURL and stores the resulting account.
func (s *Service) CompleteConnect(ctx context.Context, state, code string) (*domain.Account, error) {
	s.statesMu.Lock()
	p, ok := s.states[state]
	delete(s.states, state)
	s.statesMu.Unlock()

	if !ok || s.nowFunc().After(p.expires) {
		return nil, apperror.Validation("state", "unknown or expired authorization state")
	}
	if code == "" {
		return nil, apperror.Validation("code", "authorization code is required")
	}
	return s.accounts.Connect(ctx, p.env, code)
}

// SyncAll syncs every account that does not need re-authorization and
// returns how many syncs completed. Accounts in cooldown are skipped.
func (s *Service) SyncAll(ctx context.Context) (int, error) {
	accts, err := s.accounts.ListAccounts(ctx)
	if err != nil {
		return 0, err
	}

	var (
		completed int
		errs      []error
	)
	for i := range accts {
		if ctx.Err() != nil {
			return completed, ctx.Err()
		}

		a := &accts[i]
		if a.NeedsReauth {
			s.log.Debug("skipping sync, account needs re-authorization", "account", a.AccountKey)
			continue
		}

		_, err := s.syncer.RunSync(ctx, a.AccountKey)
		switch {
		case err == nil:
			completed++
		case errors.Is(err, apperror.ErrRateLimited):
			s.log.Debug("skipping sync, cooldown active", "account", a.AccountKey)
		default:
			errs = append(errs, fmt.Errorf("syncing %s: %w", a.AccountKey, err))
		}
	}
	return completed, errors.Join(errs...)
}

// Reconcile retries queued final listing writes.
func (s *Service) Reconcile(ctx context.Context) (int, error) {
	return s.pipeline.Reconciler().Run(ctx)
}

// RecoverAbandonedSyncs closes sync log entries that never finished.
func (s *Service) RecoverAbandonedSyncs(ctx context.Context) (int, error) {
	return s.syncer.RecoverAbandoned(ctx)
}

// PendingPersists returns the SKUs whose final write is still queued.
func (s *Service) PendingPersists() []string {
	return s.pipeline.Reconciler().Pending()
}

// RemoteQuota returns the marketplace's own per-user call quota for the
// account, or the active account when key is empty.
func (s *Service) RemoteQuota(ctx context.Context, key string) ([]ebay.QuotaState, error) {
	if s.quota == nil {
		return nil, errors.New("remote quota lookups are not configured")
	}
	acct, err := s.accounts.Resolve(ctx, key)
	if err != nil {
		return nil, err
	}

	var states []ebay.QuotaState
	err = s.accounts.Tokens().Call(ctx, acct.AccountKey, func(ctx context.Context, auth ebay.Auth) error {
		var err error
		states, err = s.quota.GetUserRateLimits(ctx, auth)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("reading remote quota for %s: %w", acct.AccountKey, err)
	}
	return states, nil
}
