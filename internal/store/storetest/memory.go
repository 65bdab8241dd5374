// Package storetest provides an in-memory store.Store for unit tests.
package storetest

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/donaldgifford/ebay-lister/internal/store"
	domain "github.com/donaldgifford/ebay-lister/pkg/types"
)

// Store is a goroutine-safe in-memory implementation of store.Store. The
// exported hook fields let tests inject failures; a nil hook means success.
type Store struct {
	mu sync.Mutex

	accounts  map[string]domain.Account
	activeKey string
	settings  map[string]string
	listings  map[string]domain.Listing
	syncLog   []domain.SyncLogEntry

	// UpdateListingErr, when set, is consulted before every UpdateListing.
	UpdateListingErr func(l *domain.Listing) error
	// CreateListingErr, when set, is consulted before every CreateListing.
	CreateListingErr func(l *domain.Listing) error

	// TokenUpdates counts UpdateAccountTokens calls.
	TokenUpdates int
}

var _ store.Store = (*Store)(nil)

// New returns an empty Store.
func New() *Store {
	return &Store{
		accounts: make(map[string]domain.Account),
		settings: make(map[string]string),
		listings: make(map[string]domain.Listing),
	}
}

// Migrate is a no-op.
func (s *Store) Migrate(context.Context) error { return nil }

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) UpsertAccount(_ context.Context, a *domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *a
	if existing, ok := s.accounts[a.AccountKey]; ok {
		stored.ConnectedAt = existing.ConnectedAt
		if stored.LastUsedAt == nil {
			stored.LastUsedAt = existing.LastUsedAt
		}
	} else if stored.ConnectedAt.IsZero() {
		stored.ConnectedAt = time.Now()
	}
	stored.NeedsReauth = false
	stored.ReauthReason = ""
	s.accounts[a.AccountKey] = stored

	a.ConnectedAt = stored.ConnectedAt
	a.NeedsReauth = false
	a.ReauthReason = ""
	return nil
}

func (s *Store) GetAccount(_ context.Context, key string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[key]
	if !ok {
		return nil, fmt.Errorf("account %q: %w", key, store.ErrNotFound)
	}
	return &a, nil
}

func (s *Store) ListAccounts(context.Context) ([]domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		li, lj := out[i].LastUsedAt, out[j].LastUsedAt
		switch {
		case li != nil && lj != nil && !li.Equal(*lj):
			return li.After(*lj)
		case li != nil && lj == nil:
			return true
		case li == nil && lj != nil:
			return false
		}
		return out[i].AccountKey < out[j].AccountKey
	})
	return out, nil
}

func (s *Store) UpdateAccountTokens(_ context.Context, key string, t domain.TokenSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[key]
	if !ok {
		return fmt.Errorf("account %q: %w", key, store.ErrNotFound)
	}
	a.AccessToken = t.AccessToken
	a.RefreshToken = t.RefreshToken
	a.TokenExpiry = t.Expiry
	a.NeedsReauth = false
	a.ReauthReason = ""
	s.accounts[key] = a
	s.TokenUpdates++
	return nil
}

func (s *Store) MarkAccountNeedsReauth(_ context.Context, key, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[key]
	if !ok {
		return fmt.Errorf("account %q: %w", key, store.ErrNotFound)
	}
	a.NeedsReauth = true
	a.ReauthReason = reason
	s.accounts[key] = a
	return nil
}

func (s *Store) TouchAccount(_ context.Context, key string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[key]
	if !ok {
		return fmt.Errorf("account %q: %w", key, store.ErrNotFound)
	}
	a.LastUsedAt = &at
	s.accounts[key] = a
	return nil
}

func (s *Store) DeleteAccount(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[key]; !ok {
		return false, nil
	}
	delete(s.accounts, key)
	if s.activeKey == key {
		s.activeKey = ""
	}
	return true, nil
}

func (s *Store) GetActiveAccountKey(context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeKey, nil
}

func (s *Store) SetActiveAccountKey(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeKey = key
	return nil
}

// ForceActiveAccountKey sets the pointer without any checks, to simulate a
// dangling reference left by an older store.
func (s *Store) ForceActiveAccountKey(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeKey = key
}

func (s *Store) GetSetting(_ context.Context, name string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.settings[name]
	return v, ok, nil
}

func (s *Store) SetSetting(_ context.Context, name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings[name] = value
	return nil
}

func (s *Store) CreateListing(_ context.Context, l *domain.Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.CreateListingErr != nil {
		if err := s.CreateListingErr(l); err != nil {
			return err
		}
	}
	if _, ok := s.listings[l.SKU]; ok {
		return fmt.Errorf("sku %q: %w", l.SKU, store.ErrDuplicateSKU)
	}
	s.listings[l.SKU] = cloneListing(*l)
	return nil
}

func (s *Store) UpdateListing(_ context.Context, l *domain.Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.UpdateListingErr != nil {
		if err := s.UpdateListingErr(l); err != nil {
			return err
		}
	}
	existing, ok := s.listings[l.SKU]
	if !ok {
		return fmt.Errorf("listing %q: %w", l.SKU, store.ErrNotFound)
	}
	updated := cloneListing(*l)
	updated.CardID = existing.CardID
	updated.Environment = existing.Environment
	updated.AccountKey = existing.AccountKey
	updated.AccountUserID = existing.AccountUserID
	updated.AccountUsername = existing.AccountUsername
	updated.CreatedAt = existing.CreatedAt
	updated.Cache = existing.Cache
	s.listings[l.SKU] = updated
	return nil
}

func (s *Store) GetListing(_ context.Context, sku string) (*domain.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.listings[sku]
	if !ok {
		return nil, fmt.Errorf("listing %q: %w", sku, store.ErrNotFound)
	}
	out := cloneListing(l)
	return &out, nil
}

func (s *Store) ListListings(_ context.Context, q *store.ListingQuery) ([]domain.Listing, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if q == nil {
		q = &store.ListingQuery{}
	}

	var matched []domain.Listing
	for _, l := range s.listings {
		if q.AccountKey != nil && l.AccountKey != *q.AccountKey {
			continue
		}
		if q.Environment != nil && string(l.Environment) != *q.Environment {
			continue
		}
		if q.CardID != nil && l.CardID != *q.CardID {
			continue
		}
		if len(q.Statuses) > 0 && !slices.Contains(q.Statuses, string(l.Status)) {
			continue
		}
		matched = append(matched, cloneListing(l))
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return strings.Compare(matched[i].SKU, matched[j].SKU) < 0
	})

	total := len(matched)
	limit, offset := q.Normalized()
	if offset >= total {
		return nil, total, nil
	}
	end := min(offset+limit, total)
	return matched[offset:end], total, nil
}

func (s *Store) UpdateListingCache(
	_ context.Context,
	env domain.Environment,
	remoteItemID string,
	c domain.ListingCache,
) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := false
	for sku, l := range s.listings {
		if l.Environment != env || l.RemoteItemID == nil || *l.RemoteItemID != remoteItemID {
			continue
		}
		l.Cache = c
		s.listings[sku] = l
		matched = true
	}
	return matched, nil
}

func (s *Store) InsertSyncLog(_ context.Context, e *domain.SyncLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.syncLog = append(s.syncLog, *e)
	return nil
}

func (s *Store) CompleteSyncLog(_ context.Context, e *domain.SyncLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.syncLog {
		if s.syncLog[i].SyncID == e.SyncID {
			s.syncLog[i].CompletedAt = e.CompletedAt
			s.syncLog[i].ItemsSynced = e.ItemsSynced
			s.syncLog[i].APICallsMade = e.APICallsMade
			s.syncLog[i].Status = e.Status
			s.syncLog[i].ErrorMessage = e.ErrorMessage
			return nil
		}
	}
	return fmt.Errorf("sync %q: %w", e.SyncID, store.ErrNotFound)
}

func (s *Store) LatestSync(
	_ context.Context,
	key string,
	status domain.SyncStatus,
) (*domain.SyncLogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var latest *domain.SyncLogEntry
	for i := range s.syncLog {
		e := s.syncLog[i]
		if e.AccountKey != key || e.Status != status {
			continue
		}
		if latest == nil || e.StartedAt.After(latest.StartedAt) {
			latest = &e
		}
	}
	return latest, nil
}

func (s *Store) ListSyncLog(_ context.Context, key string, limit int) ([]domain.SyncLogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.SyncLogEntry
	for _, e := range s.syncLog {
		if e.AccountKey == key {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartedAt.After(out[j].StartedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) RecoverAbandonedSyncs(_ context.Context, cutoff, now time.Time, reason string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for i := range s.syncLog {
		e := &s.syncLog[i]
		if e.Status == domain.SyncInProgress && e.StartedAt.Before(cutoff) {
			e.Status = domain.SyncFailed
			e.CompletedAt = &now
			e.ErrorMessage = reason
			n++
		}
	}
	return n, nil
}

// SyncLog returns a copy of every sync log entry in insertion order.
func (s *Store) SyncLog() []domain.SyncLogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.syncLog)
}

func cloneListing(l domain.Listing) domain.Listing {
	l.ImageURLs = slices.Clone(l.ImageURLs)
	return l
}
