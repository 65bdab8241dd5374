package handlers

import (
	"context"
	"time"

	"github.com/donaldgifford/ebay-lister/internal/ebay"
	"github.com/donaldgifford/ebay-lister/internal/engine"
	"github.com/donaldgifford/ebay-lister/internal/store"
	domain "github.com/donaldgifford/ebay-lister/pkg/types"
)

// AccountService manages connected seller accounts.
type AccountService interface {
	ListAccounts(ctx context.Context) ([]engine.AccountInfo, error)
	SwitchAccount(ctx context.Context, key string) error
	DisconnectAccount(ctx context.Context, key string) error
	ConnectURL(env domain.Environment) (string, string, error)
	CompleteConnect(ctx context.Context, state, code string) (*domain.Account, error)
}

// ListingService publishes and reads listings.
type ListingService interface {
	Publish(ctx context.Context, req domain.ListingRequest) (*domain.Listing, error)
	GetCachedListing(ctx context.Context, sku string) (*domain.Listing, error)
	ListListings(ctx context.Context, q *store.ListingQuery) ([]domain.Listing, int, error)
}

// SyncService runs and reports listing metric syncs.
type SyncService interface {
	RefreshListingCache(ctx context.Context, key string) (*domain.SyncLogEntry, error)
	SyncHistory(ctx context.Context, key string, limit int) ([]domain.SyncLogEntry, error)
	SyncCooldown(ctx context.Context, key string) (time.Duration, error)
}

// QuotaService reads the marketplace's per-user quota.
type QuotaService interface {
	RemoteQuota(ctx context.Context, key string) ([]ebay.QuotaState, error)
}

var (
	_ AccountService = (*engine.Service)(nil)
	_ ListingService = (*engine.Service)(nil)
	_ SyncService    = (*engine.Service)(nil)
	_ QuotaService   = (*engine.Service)(nil)
)
