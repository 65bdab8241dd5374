package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	domain "github.com/donaldgifford/ebay-lister/pkg/types"
)

const (
	defaultPoolSize = 10

	pgUniqueViolation = "23505"
)

// PostgresStore implements Store using pgxpool (connection-pooled PostgreSQL).
// Methods are covered by the integration tests.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// PostgresOption configures a PostgresStore.
type PostgresOption func(*pgxpool.Config)

// WithPoolSize sets the maximum number of pooled connections.
func WithPoolSize(n int) PostgresOption {
	return func(c *pgxpool.Config) {
		if n > 0 {
			c.MaxConns = int32(n) //nolint:gosec // bounded by config validation
		}
	}
}

// NewPostgresStore creates a new PostgresStore with connection pooling.
func NewPostgresStore(ctx context.Context, connString string, opts ...PostgresOption) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	cfg.MaxConns = defaultPoolSize
	for _, opt := range opts {
		opt(cfg)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close gracefully shuts down the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate applies pending SQL schema migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return RunMigrations(ctx, s.pool)
}

// --- accounts ---

// UpsertAccount inserts or overwrites an account, preserving connected_at.
func (s *PostgresStore) UpsertAccount(ctx context.Context, a *domain.Account) error {
	connectedAt := a.ConnectedAt
	if connectedAt.IsZero() {
		connectedAt = time.Now()
	}

	args := pgx.NamedArgs{
		"account_key":   a.AccountKey,
		"user_id":       a.UserID,
		"username":      a.Username,
		"environment":   string(a.Environment),
		"access_token":  a.AccessToken,
		"refresh_token": a.RefreshToken,
		"token_expiry":  a.TokenExpiry,
		"connected_at":  connectedAt,
		"last_used_at":  a.LastUsedAt,
	}

	if err := s.pool.QueryRow(ctx, queryUpsertAccount, args).Scan(&a.ConnectedAt); err != nil {
		return fmt.Errorf("upserting account: %w", err)
	}
	a.NeedsReauth = false
	a.ReauthReason = ""
	return nil
}

// GetAccount retrieves an account by key.
func (s *PostgresStore) GetAccount(ctx context.Context, accountKey string) (*domain.Account, error) {
	a := &domain.Account{}
	err := scanAccount(s.pool.QueryRow(ctx, queryGetAccount, accountKey), a)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("account %q: %w", accountKey, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting account: %w", err)
	}
	return a, nil
}

// ListAccounts returns every account, most recently used first.
func (s *PostgresStore) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	rows, err := s.pool.Query(ctx, queryListAccounts)
	if err != nil {
		return nil, fmt.Errorf("querying accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var a domain.Account
		if err := scanAccount(rows, &a); err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// UpdateAccountTokens stores a refreshed token set.
func (s *PostgresStore) UpdateAccountTokens(
	ctx context.Context,
	accountKey string,
	tokens domain.TokenSet,
) error {
	tag, err := s.pool.Exec(ctx, queryUpdateAccountTokens,
		accountKey, tokens.AccessToken, tokens.RefreshToken, tokens.Expiry,
	)
	if err != nil {
		return fmt.Errorf("updating account tokens: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("account %q: %w", accountKey, ErrNotFound)
	}
	return nil
}

// MarkAccountNeedsReauth flags an account whose refresh token was rejected.
func (s *PostgresStore) MarkAccountNeedsReauth(ctx context.Context, accountKey, reason string) error {
	tag, err := s.pool.Exec(ctx, queryMarkAccountNeedsReauth, accountKey, reason)
	if err != nil {
		return fmt.Errorf("marking account needs reauth: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("account %q: %w", accountKey, ErrNotFound)
	}
	return nil
}

// TouchAccount sets last_used_at.
func (s *PostgresStore) TouchAccount(ctx context.Context, accountKey string, at time.Time) error {
	tag, err := s.pool.Exec(ctx, queryTouchAccount, accountKey, at)
	if err != nil {
		return fmt.Errorf("touching account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("account %q: %w", accountKey, ErrNotFound)
	}
	return nil
}

// DeleteAccount removes an account. The active pointer is cleared by the
// foreign key when it referenced this account.
func (s *PostgresStore) DeleteAccount(ctx context.Context, accountKey string) (bool, error) {
	tag, err := s.pool.Exec(ctx, queryDeleteAccount, accountKey)
	if err != nil {
		return false, fmt.Errorf("deleting account: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// GetActiveAccountKey returns the active account key or "".
func (s *PostgresStore) GetActiveAccountKey(ctx context.Context) (string, error) {
	var key string
	err := s.pool.QueryRow(ctx, queryGetActiveAccountKey).Scan(&key)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("getting active account: %w", err)
	}
	return key, nil
}

// SetActiveAccountKey moves the active pointer; "" clears it.
func (s *PostgresStore) SetActiveAccountKey(ctx context.Context, accountKey string) error {
	if _, err := s.pool.Exec(ctx, querySetActiveAccountKey, accountKey); err != nil {
		return fmt.Errorf("setting active account: %w", err)
	}
	return nil
}

// GetSetting reads an application setting.
func (s *PostgresStore) GetSetting(ctx context.Context, name string) (string, bool, error) {
	var value string
	err := s.pool.QueryRow(ctx, queryGetSetting, name).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("getting setting %s: %w", name, err)
	}
	return value, true, nil
}

// SetSetting writes an application setting.
func (s *PostgresStore) SetSetting(ctx context.Context, name, value string) error {
	if _, err := s.pool.Exec(ctx, querySetSetting, name, value); err != nil {
		return fmt.Errorf("setting %s: %w", name, err)
	}
	return nil
}

// --- listings ---

// CreateListing inserts a new listing row.
func (s *PostgresStore) CreateListing(ctx context.Context, l *domain.Listing) error {
	args := listingArgs(l)
	args["card_id"] = l.CardID
	args["environment"] = string(l.Environment)
	args["account_key"] = l.AccountKey
	args["account_user_id"] = l.AccountUserID
	args["account_username"] = l.AccountUsername
	args["created_at"] = l.CreatedAt

	_, err := s.pool.Exec(ctx, queryCreateListing, args)
	if isUniqueViolation(err) {
		return fmt.Errorf("sku %q: %w", l.SKU, ErrDuplicateSKU)
	}
	if err != nil {
		return fmt.Errorf("creating listing: %w", err)
	}
	return nil
}

// UpdateListing writes the mutable columns of an existing listing.
func (s *PostgresStore) UpdateListing(ctx context.Context, l *domain.Listing) error {
	tag, err := s.pool.Exec(ctx, queryUpdateListing, listingArgs(l))
	if err != nil {
		return fmt.Errorf("updating listing: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("listing %q: %w", l.SKU, ErrNotFound)
	}
	return nil
}

// GetListing retrieves a listing by SKU.
func (s *PostgresStore) GetListing(ctx context.Context, sku string) (*domain.Listing, error) {
	l := &domain.Listing{}
	err := scanListing(s.pool.QueryRow(ctx, queryGetListing, sku), l)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("listing %q: %w", sku, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting listing: %w", err)
	}
	return l, nil
}

// ListListings queries listings with optional filters, returning results and total count.
func (s *PostgresStore) ListListings(
	ctx context.Context,
	opts *ListingQuery,
) ([]domain.Listing, int, error) {
	if opts == nil {
		opts = &ListingQuery{}
	}
	dataSQL, countSQL, args := opts.ToSQL()

	var total int
	if err := s.pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting listings: %w", err)
	}

	rows, err := s.pool.Query(ctx, dataSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying listings: %w", err)
	}
	defer rows.Close()

	var listings []domain.Listing
	for rows.Next() {
		var l domain.Listing
		if err := scanListing(rows, &l); err != nil {
			return nil, 0, fmt.Errorf("scanning listing: %w", err)
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating listings: %w", err)
	}

	return listings, total, nil
}

// UpdateListingCache writes synced metrics for a remote item.
func (s *PostgresStore) UpdateListingCache(
	ctx context.Context,
	env domain.Environment,
	remoteItemID string,
	c domain.ListingCache,
) (bool, error) {
	var current decimal.NullDecimal
	if c.CurrentPrice != nil {
		current = decimal.NewNullDecimal(*c.CurrentPrice)
	}

	args := pgx.NamedArgs{
		"environment":    string(env),
		"remote_item_id": remoteItemID,
		"watch_count":    c.WatchCount,
		"view_count":     c.ViewCount,
		"bid_count":      c.BidCount,
		"current_price":  current,
		"time_remaining": c.TimeRemaining,
		"last_synced_at": c.LastSyncedAt,
	}

	tag, err := s.pool.Exec(ctx, queryUpdateListingCache, args)
	if err != nil {
		return false, fmt.Errorf("updating listing cache: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// --- sync log ---

// InsertSyncLog records the start of a sync.
func (s *PostgresStore) InsertSyncLog(ctx context.Context, e *domain.SyncLogEntry) error {
	_, err := s.pool.Exec(ctx, queryInsertSyncLog,
		e.SyncID, e.AccountKey, e.StartedAt, string(e.Status),
	)
	if err != nil {
		return fmt.Errorf("inserting sync log: %w", err)
	}
	return nil
}

// CompleteSyncLog records the outcome of a sync.
func (s *PostgresStore) CompleteSyncLog(ctx context.Context, e *domain.SyncLogEntry) error {
	_, err := s.pool.Exec(ctx, queryCompleteSyncLog,
		e.SyncID, e.CompletedAt, e.ItemsSynced, e.APICallsMade, string(e.Status), e.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("completing sync log: %w", err)
	}
	return nil
}

// LatestSync returns the newest entry with status, or nil.
func (s *PostgresStore) LatestSync(
	ctx context.Context,
	accountKey string,
	status domain.SyncStatus,
) (*domain.SyncLogEntry, error) {
	e := &domain.SyncLogEntry{}
	err := scanSyncLog(s.pool.QueryRow(ctx, queryLatestSync, accountKey, string(status)), e)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting latest sync: %w", err)
	}
	return e, nil
}

// ListSyncLog returns an account's sync history, newest first.
func (s *PostgresStore) ListSyncLog(
	ctx context.Context,
	accountKey string,
	limit int,
) ([]domain.SyncLogEntry, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	rows, err := s.pool.Query(ctx, queryListSyncLog, accountKey, limit)
	if err != nil {
		return nil, fmt.Errorf("querying sync log: %w", err)
	}
	defer rows.Close()

	var entries []domain.SyncLogEntry
	for rows.Next() {
		var e domain.SyncLogEntry
		if err := scanSyncLog(rows, &e); err != nil {
			return nil, fmt.Errorf("scanning sync log: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// RecoverAbandonedSyncs marks stale in_progress entries as failed and returns
// how many were changed.
func (s *PostgresStore) RecoverAbandonedSyncs(
	ctx context.Context,
	cutoff, now time.Time,
	reason string,
) (int, error) {
	tag, err := s.pool.Exec(ctx, queryRecoverAbandonedSyncs, cutoff, now, reason)
	if err != nil {
		return 0, fmt.Errorf("recovering abandoned syncs: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// --- helpers ---

// scannable abstracts pgx.Row and pgx.Rows for reuse.
type scannable interface {
	Scan(dest ...any) error
}

func scanAccount(row scannable, a *domain.Account) error {
	return row.Scan(
		&a.AccountKey, &a.UserID, &a.Username, &a.Environment,
		&a.AccessToken, &a.RefreshToken, &a.TokenExpiry,
		&a.NeedsReauth, &a.ReauthReason, &a.ConnectedAt, &a.LastUsedAt,
	)
}

func scanListing(row scannable, l *domain.Listing) error {
	var current decimal.NullDecimal
	if err := row.Scan(
		&l.SKU, &l.CardID, &l.RemoteItemID, &l.RemoteOfferID, &l.Status, &l.Environment,
		&l.AccountKey, &l.AccountUserID, &l.AccountUsername,
		&l.Title, &l.Description, &l.Price, &l.Condition, &l.CategoryID, &l.ImageURLs,
		&l.LocationKey, &l.ListingURL, &l.ErrorMessage, &l.FailedStage,
		&l.CreatedAt, &l.ListedAt, &l.LastUpdated,
		&l.Cache.WatchCount, &l.Cache.ViewCount, &l.Cache.BidCount, &current,
		&l.Cache.TimeRemaining, &l.Cache.LastSyncedAt,
	); err != nil {
		return err
	}
	if current.Valid {
		l.Cache.CurrentPrice = &current.Decimal
	}
	return nil
}

func scanSyncLog(row scannable, e *domain.SyncLogEntry) error {
	return row.Scan(
		&e.SyncID, &e.AccountKey, &e.StartedAt, &e.CompletedAt,
		&e.ItemsSynced, &e.APICallsMade, &e.Status, &e.ErrorMessage,
	)
}

// listingArgs builds the named arguments shared by insert and update.
func listingArgs(l *domain.Listing) pgx.NamedArgs {
	images := l.ImageURLs
	if images == nil {
		images = []string{}
	}

	return pgx.NamedArgs{
		"sku":             l.SKU,
		"remote_item_id":  l.RemoteItemID,
		"remote_offer_id": l.RemoteOfferID,
		"status":          string(l.Status),
		"title":           l.Title,
		"description":     l.Description,
		"price":           l.Price,
		"condition":       string(l.Condition),
		"category_id":     l.CategoryID,
		"image_urls":      images,
		"location_key":    l.LocationKey,
		"listing_url":     l.ListingURL,
		"error_message":   l.ErrorMessage,
		"failed_stage":    l.FailedStage,
		"listed_at":       l.ListedAt,
		"last_updated":    l.LastUpdated,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
