// Package store defines the datastore abstraction for ebay-lister.
// All business logic depends on the Store interface, never on concrete
// implementations. PostgresStore is the production implementation and
// storetest.Store is an in-memory one for tests.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/donaldgifford/ebay-lister/internal/apperror"
	domain "github.com/donaldgifford/ebay-lister/pkg/types"
)

// ErrNotFound is returned when a keyed lookup matches no row.
var ErrNotFound = apperror.ErrNotFound

// ErrDuplicateSKU is returned by CreateListing when the SKU already exists.
var ErrDuplicateSKU = errors.New("duplicate sku")

// ListingQuery defines optional filters for listing queries.
type ListingQuery struct {
	AccountKey  *string
	Environment *string
	Statuses    []string
	CardID      *string
	Limit       int // default 50
	Offset      int
	OrderBy     string // "created_at", "last_updated", "price", "watch_count"
}

// AccountStore persists seller credentials, the active account pointer and
// small application settings.
type AccountStore interface {
	// UpsertAccount inserts or overwrites by account key. An existing row keeps
	// its connected_at. a.ConnectedAt is set from the stored row.
	UpsertAccount(ctx context.Context, a *domain.Account) error
	GetAccount(ctx context.Context, accountKey string) (*domain.Account, error)
	// ListAccounts orders by last use, most recent first, then by key.
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	// UpdateAccountTokens stores a new token set and clears needs_reauth.
	UpdateAccountTokens(ctx context.Context, accountKey string, tokens domain.TokenSet) error
	MarkAccountNeedsReauth(ctx context.Context, accountKey, reason string) error
	TouchAccount(ctx context.Context, accountKey string, at time.Time) error
	DeleteAccount(ctx context.Context, accountKey string) (bool, error)

	// GetActiveAccountKey returns "" when no account is active.
	GetActiveAccountKey(ctx context.Context) (string, error)
	// SetActiveAccountKey points at accountKey, or clears the pointer for "".
	SetActiveAccountKey(ctx context.Context, accountKey string) error

	GetSetting(ctx context.Context, name string) (string, bool, error)
	SetSetting(ctx context.Context, name, value string) error
}

// ListingStore persists listing records keyed by SKU.
type ListingStore interface {
	// CreateListing inserts a new row and returns ErrDuplicateSKU on conflict.
	CreateListing(ctx context.Context, l *domain.Listing) error
	// UpdateListing overwrites every mutable column of an existing row.
	UpdateListing(ctx context.Context, l *domain.Listing) error
	GetListing(ctx context.Context, sku string) (*domain.Listing, error)
	ListListings(ctx context.Context, q *ListingQuery) ([]domain.Listing, int, error)
	// UpdateListingCache writes the metrics block of the listing with the
	// given remote item ID. It reports false when no listing matches.
	UpdateListingCache(
		ctx context.Context,
		env domain.Environment,
		remoteItemID string,
		cache domain.ListingCache,
	) (bool, error)
}

// SyncLogStore persists the append-only sync history.
type SyncLogStore interface {
	InsertSyncLog(ctx context.Context, e *domain.SyncLogEntry) error
	// CompleteSyncLog writes the terminal status, counts and completion time.
	CompleteSyncLog(ctx context.Context, e *domain.SyncLogEntry) error
	// LatestSync returns the newest entry for the account with the given
	// status, or nil when there is none.
	LatestSync(ctx context.Context, accountKey string, status domain.SyncStatus) (*domain.SyncLogEntry, error)
	ListSyncLog(ctx context.Context, accountKey string, limit int) ([]domain.SyncLogEntry, error)
	// RecoverAbandonedSyncs fails in_progress entries started before cutoff.
	RecoverAbandonedSyncs(ctx context.Context, cutoff, now time.Time, reason string) (int, error)
}

// Store defines all data access operations for ebay-lister.
type Store interface {
	AccountStore
	ListingStore
	SyncLogStore

	// Migrations
	Migrate(ctx context.Context) error

	// Health
	Ping(ctx context.Context) error
}
