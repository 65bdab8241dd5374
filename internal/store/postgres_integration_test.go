//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/donaldgifford/ebay-lister/internal/store"
	domain "github.com/donaldgifford/ebay-lister/pkg/types"
)

func setupPostgres(t *testing.T) *store.PostgresStore {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("lister_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, pgContainer.Terminate(ctx))
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	s, err := store.NewPostgresStore(ctx, connStr, store.WithPoolSize(4))
	require.NoError(t, err)

	t.Cleanup(func() {
		s.Close()
	})

	require.NoError(t, s.Migrate(ctx))

	return s
}

func testAccount(userID string, env domain.Environment) *domain.Account {
	return &domain.Account{
		AccountKey:   domain.AccountKey(userID, env),
		UserID:       userID,
		Username:     userID + "_seller",
		Environment:  env,
		AccessToken:  "access-" + userID,
		RefreshToken: "refresh-" + userID,
		TokenExpiry:  time.Now().Add(2 * time.Hour).Truncate(time.Microsecond),
	}
}

func testListing(sku string) *domain.Listing {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.Listing{
		SKU:             sku,
		CardID:          "card-1",
		Status:          domain.StatusDraft,
		Environment:     domain.EnvSandbox,
		AccountKey:      "u1:sandbox",
		AccountUserID:   "u1",
		AccountUsername: "u1_seller",
		Title:           "1908 Niagara Falls postcard",
		Description:     "Divided back, unposted.",
		Price:           decimal.RequireFromString("9.99"),
		Condition:       domain.ConditionUsedExcellent,
		CategoryID:      "914",
		CreatedAt:       now,
		LastUpdated:     now,
	}
}

func TestPostgresStore_Ping(t *testing.T) {
	s := setupPostgres(t)
	require.NoError(t, s.Ping(context.Background()))
}

func TestPostgresStore_Migrate_Idempotent(t *testing.T) {
	s := setupPostgres(t)
	require.NoError(t, s.Migrate(context.Background()))
}

func TestPostgresStore_Accounts(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	a := testAccount("u1", domain.EnvSandbox)
	require.NoError(t, s.UpsertAccount(ctx, a))
	connectedAt := a.ConnectedAt
	require.False(t, connectedAt.IsZero())

	t.Run("upsert preserves connected_at", func(t *testing.T) {
		again := testAccount("u1", domain.EnvSandbox)
		again.AccessToken = "access-2"
		again.ConnectedAt = connectedAt.Add(time.Hour)
		require.NoError(t, s.UpsertAccount(ctx, again))
		assert.True(t, connectedAt.Equal(again.ConnectedAt))

		got, err := s.GetAccount(ctx, a.AccountKey)
		require.NoError(t, err)
		assert.Equal(t, "access-2", got.AccessToken)
	})

	t.Run("get unknown account", func(t *testing.T) {
		_, err := s.GetAccount(ctx, "nobody:sandbox")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("mark needs reauth then update tokens clears it", func(t *testing.T) {
		require.NoError(t, s.MarkAccountNeedsReauth(ctx, a.AccountKey, "invalid_grant"))
		got, err := s.GetAccount(ctx, a.AccountKey)
		require.NoError(t, err)
		assert.True(t, got.NeedsReauth)
		assert.Equal(t, "invalid_grant", got.ReauthReason)

		require.NoError(t, s.UpdateAccountTokens(ctx, a.AccountKey, domain.TokenSet{
			AccessToken: "access-3", RefreshToken: "refresh-3", Expiry: time.Now().Add(time.Hour),
		}))
		got, err = s.GetAccount(ctx, a.AccountKey)
		require.NoError(t, err)
		assert.False(t, got.NeedsReauth)
		assert.Equal(t, "refresh-3", got.RefreshToken)
	})

	t.Run("list orders by last use", func(t *testing.T) {
		b := testAccount("u2", domain.EnvProduction)
		require.NoError(t, s.UpsertAccount(ctx, b))
		require.NoError(t, s.TouchAccount(ctx, b.AccountKey, time.Now()))

		list, err := s.ListAccounts(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, b.AccountKey, list[0].AccountKey)
	})

	t.Run("active pointer cleared by delete", func(t *testing.T) {
		require.NoError(t, s.SetActiveAccountKey(ctx, a.AccountKey))
		key, err := s.GetActiveAccountKey(ctx)
		require.NoError(t, err)
		assert.Equal(t, a.AccountKey, key)

		ok, err := s.DeleteAccount(ctx, a.AccountKey)
		require.NoError(t, err)
		assert.True(t, ok)

		key, err = s.GetActiveAccountKey(ctx)
		require.NoError(t, err)
		assert.Empty(t, key)

		ok, err = s.DeleteAccount(ctx, a.AccountKey)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestPostgresStore_Settings(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	_, ok, err := s.GetSetting(ctx, "legacy_import_attempted")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SetSetting(ctx, "legacy_import_attempted", "true"))
	v, ok, err := s.GetSetting(ctx, "legacy_import_attempted")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "true", v)
}

func TestPostgresStore_Listings(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	l := testListing("card-1-1700000000000")
	require.NoError(t, s.CreateListing(ctx, l))

	t.Run("duplicate sku rejected", func(t *testing.T) {
		err := s.CreateListing(ctx, testListing(l.SKU))
		require.ErrorIs(t, err, store.ErrDuplicateSKU)
	})

	t.Run("update and read back", func(t *testing.T) {
		itemID := "110553"
		offerID := "9001"
		listedAt := time.Now().UTC().Truncate(time.Microsecond)
		l.RemoteItemID = &itemID
		l.RemoteOfferID = &offerID
		l.Status = domain.StatusListed
		l.ImageURLs = []string{"https://i.ebayimg.com/1.jpg"}
		l.ListingURL = "https://sandbox.ebay.com/itm/110553"
		l.ListedAt = &listedAt
		require.NoError(t, s.UpdateListing(ctx, l))

		got, err := s.GetListing(ctx, l.SKU)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusListed, got.Status)
		assert.Equal(t, itemID, *got.RemoteItemID)
		assert.True(t, decimal.RequireFromString("9.99").Equal(got.Price))
		assert.Equal(t, []string{"https://i.ebayimg.com/1.jpg"}, got.ImageURLs)
		assert.Nil(t, got.Cache.CurrentPrice)
	})

	t.Run("update cache by remote item id", func(t *testing.T) {
		price := decimal.RequireFromString("12.50")
		synced := time.Now().UTC().Truncate(time.Microsecond)
		ok, err := s.UpdateListingCache(ctx, domain.EnvSandbox, "110553", domain.ListingCache{
			WatchCount: 3, ViewCount: 40, CurrentPrice: &price, TimeRemaining: "P2DT3H", LastSyncedAt: &synced,
		})
		require.NoError(t, err)
		assert.True(t, ok)

		got, err := s.GetListing(ctx, l.SKU)
		require.NoError(t, err)
		assert.Equal(t, 3, got.Cache.WatchCount)
		require.NotNil(t, got.Cache.CurrentPrice)
		assert.True(t, price.Equal(*got.Cache.CurrentPrice))

		ok, err = s.UpdateListingCache(ctx, domain.EnvProduction, "110553", domain.ListingCache{})
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("list with filter", func(t *testing.T) {
		listings, total, err := s.ListListings(ctx, &store.ListingQuery{Statuses: []string{"listed"}})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, listings, 1)
	})

	t.Run("unknown sku", func(t *testing.T) {
		_, err := s.GetListing(ctx, "missing")
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestPostgresStore_SyncLog(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()
	start := time.Now().UTC().Add(-2 * time.Hour).Truncate(time.Microsecond)

	done := &domain.SyncLogEntry{
		SyncID: uuid.NewString(), AccountKey: "u1:sandbox", StartedAt: start, Status: domain.SyncInProgress,
	}
	require.NoError(t, s.InsertSyncLog(ctx, done))
	completed := start.Add(time.Minute)
	done.CompletedAt = &completed
	done.Status = domain.SyncCompleted
	done.ItemsSynced = 4
	done.APICallsMade = 2
	require.NoError(t, s.CompleteSyncLog(ctx, done))

	stale := &domain.SyncLogEntry{
		SyncID: uuid.NewString(), AccountKey: "u1:sandbox", StartedAt: start.Add(time.Minute), Status: domain.SyncInProgress,
	}
	require.NoError(t, s.InsertSyncLog(ctx, stale))

	latest, err := s.LatestSync(ctx, "u1:sandbox", domain.SyncCompleted)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, done.SyncID, latest.SyncID)
	assert.Equal(t, 2, latest.APICallsMade)

	none, err := s.LatestSync(ctx, "u2:sandbox", domain.SyncCompleted)
	require.NoError(t, err)
	assert.Nil(t, none)

	n, err := s.RecoverAbandonedSyncs(ctx, time.Now().Add(-time.Hour), time.Now(), "abandoned")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	entries, err := s.ListSyncLog(ctx, "u1:sandbox", 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, domain.SyncFailed, entries[0].Status)
	assert.Equal(t, "abandoned", entries[0].ErrorMessage)
}
