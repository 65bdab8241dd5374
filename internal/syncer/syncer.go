// Package syncer refreshes the cached marketplace metrics of local listings.
// Full syncs for one account are spaced by a cooldown and every attempt is
// recorded in the sync log.
package syncer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/donaldgifford/ebay-lister/internal/apperror"
	"github.com/donaldgifford/ebay-lister/internal/ebay"
	"github.com/donaldgifford/ebay-lister/internal/metrics"
	"github.com/donaldgifford/ebay-lister/internal/store"
	domain "github.com/donaldgifford/ebay-lister/pkg/types"
)

const (
	tracerName = "github.com/donaldgifford/ebay-lister/internal/syncer"

	defaultMinInterval    = 15 * time.Minute
	defaultAbandonTimeout = time.Hour
	defaultPageSize       = 100
	maxPages              = 500
)

// Caller runs a remote call with a valid token for the account.
type Caller interface {
	Call(ctx context.Context, key string, fn func(ctx context.Context, auth ebay.Auth) error) error
}

// Store is the persistence the syncer needs.
type Store interface {
	store.ListingStore
	store.SyncLogStore
}

// Syncer runs metric syncs. It is safe for concurrent use; at most one sync
// per account runs at a time.
type Syncer struct {
	calls    Caller
	reporter ebay.SellingReporter
	store    Store

	minInterval    time.Duration
	abandonTimeout time.Duration
	pageSize       int

	mu      sync.Mutex
	running map[string]struct{}

	tracer  trace.Tracer
	nowFunc func() time.Time
	logger  *slog.Logger
}

// Option configures a Syncer.
type Option func(*Syncer)

// WithMinInterval sets the cooldown between completed syncs of one account.
func WithMinInterval(d time.Duration) Option {
	return func(s *Syncer) {
		s.minInterval = d
	}
}

// WithAbandonTimeout sets how long an in_progress entry may stay open
// before it is considered abandoned.
func WithAbandonTimeout(d time.Duration) Option {
	return func(s *Syncer) {
		s.abandonTimeout = d
	}
}

// WithPageSize sets the number of listings requested per page.
func WithPageSize(n int) Option {
	return func(s *Syncer) {
		s.pageSize = n
	}
}

// WithNowFunc overrides the clock for testing.
func WithNowFunc(f func() time.Time) Option {
	return func(s *Syncer) {
		s.nowFunc = f
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Syncer) {
		s.logger = l
	}
}

// WithTracerProvider sets the provider sync spans are recorded with.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Syncer) {
		s.tracer = tp.Tracer(tracerName)
	}
}

// New creates a Syncer.
func New(calls Caller, reporter ebay.SellingReporter, st Store, opts ...Option) *Syncer {
	s := &Syncer{
		calls:          calls,
		reporter:       reporter,
		store:          st,
		minInterval:    defaultMinInterval,
		abandonTimeout: defaultAbandonTimeout,
		pageSize:       defaultPageSize,
		running:        make(map[string]struct{}),
		tracer:         otel.Tracer(tracerName),
		nowFunc:        time.Now,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MinInterval returns the configured cooldown.
func (s *Syncer) MinInterval() time.Duration {
	return s.minInterval
}

// CanSync reports whether no completed sync for the account started within
// minInterval.
func (s *Syncer) CanSync(ctx context.Context, key string, minInterval time.Duration) (bool, error) {
	remaining, err := s.CooldownRemaining(ctx, key, minInterval)
	if err != nil {
		return false, err
	}
	return remaining == 0, nil
}

// CooldownRemaining returns how long until the account may sync again, or
// zero when it may sync now.
func (s *Syncer) CooldownRemaining(ctx context.Context, key string, minInterval time.Duration) (time.Duration, error) {
	last, err := s.store.LatestSync(ctx, key, domain.SyncCompleted)
	if err != nil {
		return 0, fmt.Errorf("loading last completed sync for %s: %w", key, err)
	}
	if last == nil {
		return 0, nil
	}

	remaining := last.StartedAt.Add(minInterval).Sub(s.nowFunc())
	if remaining <= 0 {
		return 0, nil
	}
	return remaining, nil
}

// RunSync fetches every active listing of the account and writes the
// metrics onto the matching local listings. Inside the cooldown, or while
// another sync for the account is open, it returns a RateLimitedError
// without calling the marketplace or writing a log entry. The returned
// entry is the completed or failed log record.
func (s *Syncer) RunSync(ctx context.Context, key string) (*domain.SyncLogEntry, error) {
	release, ok := s.acquire(key)
	if !ok {
		metrics.SyncRunsTotal.WithLabelValues("rate_limited").Inc()
		return nil, &apperror.RateLimitedError{
			RetryAfter: s.minInterval,
			Message:    "a sync is already running for " + key,
		}
	}
	defer release()

	if err := s.checkAllowed(ctx, key); err != nil {
		metrics.SyncRunsTotal.WithLabelValues("rate_limited").Inc()
		return nil, err
	}

	ctx, span := s.tracer.Start(ctx, "sync", trace.WithAttributes(attribute.String("account", key)))
	defer span.End()

	entry := &domain.SyncLogEntry{
		SyncID:     uuid.NewString(),
		AccountKey: key,
		StartedAt:  s.nowFunc(),
		Status:     domain.SyncInProgress,
	}
	if err := s.store.InsertSyncLog(ctx, entry); err != nil {
		return nil, fmt.Errorf("recording sync start for %s: %w", key, err)
	}

	log := s.logger.With("account", key, "sync_id", entry.SyncID)
	log.Info("sync started")

	start := time.Now()
	runErr := s.fetchAll(ctx, key, entry)
	metrics.SyncDuration.Observe(time.Since(start).Seconds())

	completedAt := s.nowFunc()
	entry.CompletedAt = &completedAt
	entry.Status = domain.SyncCompleted
	if runErr != nil {
		entry.Status = domain.SyncFailed
		entry.ErrorMessage = runErr.Error()
	}

	span.SetAttributes(
		attribute.Int("items_synced", entry.ItemsSynced),
		attribute.Int("api_calls", entry.APICallsMade),
	)

	if err := s.store.CompleteSyncLog(context.WithoutCancel(ctx), entry); err != nil {
		log.Error("recording sync result", "status", entry.Status, "error", err)
		if runErr == nil {
			runErr = fmt.Errorf("recording sync result for %s: %w", key, err)
		}
	}

	if runErr != nil {
		span.RecordError(runErr)
		span.SetStatus(codes.Error, runErr.Error())
		metrics.SyncRunsTotal.WithLabelValues(string(domain.SyncFailed)).Inc()
		log.Error("sync failed",
			"items_synced", entry.ItemsSynced,
			"api_calls", entry.APICallsMade,
			"error", runErr,
		)
		return entry, runErr
	}

	metrics.SyncRunsTotal.WithLabelValues(string(domain.SyncCompleted)).Inc()
	metrics.SyncItemsTotal.Add(float64(entry.ItemsSynced))
	log.Info("sync completed", "items_synced", entry.ItemsSynced, "api_calls", entry.APICallsMade)
	return entry, nil
}

// fetchAll pages through the active listing report until the marketplace
// reports no more pages. Items with no local listing are skipped.
func (s *Syncer) fetchAll(ctx context.Context, key string, entry *domain.SyncLogEntry) error {
	skipped := 0
	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("sync cancelled at page %d: %w", page, err)
		}
		if page > maxPages {
			return fmt.Errorf("stopped after %d pages", maxPages)
		}

		var (
			result *ebay.SellingPage
			env    domain.Environment
		)
		err := s.calls.Call(ctx, key, func(ctx context.Context, auth ebay.Auth) error {
			entry.APICallsMade++
			env = auth.Environment
			var err error
			result, err = s.reporter.GetMyeBaySelling(ctx, auth, page, s.pageSize)
			return err
		})
		if err != nil {
			return fmt.Errorf("fetching active listings page %d: %w", page, err)
		}

		syncedAt := s.nowFunc()
		for i := range result.Items {
			item := &result.Items[i]
			matched, err := s.store.UpdateListingCache(ctx, env, item.ItemID, cacheFromItem(item, syncedAt))
			if err != nil {
				return fmt.Errorf("updating cache for item %s: %w", item.ItemID, err)
			}
			if !matched {
				skipped++
				continue
			}
			entry.ItemsSynced++
		}

		if !result.HasMore {
			break
		}
	}

	if skipped > 0 {
		s.logger.Debug("sync skipped unknown items", "account", key, "skipped", skipped)
	}
	return nil
}

// checkAllowed refuses a sync inside the cooldown window or while a
// non-abandoned in_progress entry exists for the account.
func (s *Syncer) checkAllowed(ctx context.Context, key string) error {
	remaining, err := s.CooldownRemaining(ctx, key, s.minInterval)
	if err != nil {
		return err
	}
	if remaining > 0 {
		return &apperror.RateLimitedError{
			RetryAfter: remaining,
			Message:    "sync cooldown active for " + key,
		}
	}

	open, err := s.store.LatestSync(ctx, key, domain.SyncInProgress)
	if err != nil {
		return fmt.Errorf("loading open sync for %s: %w", key, err)
	}
	if open == nil {
		return nil
	}

	now := s.nowFunc()
	if now.Sub(open.StartedAt) >= s.abandonTimeout {
		return nil
	}
	retry := open.StartedAt.Add(s.minInterval).Sub(now)
	if retry < time.Second {
		retry = time.Second
	}
	return &apperror.RateLimitedError{
		RetryAfter: retry,
		Message:    "a sync is already in progress for " + key,
	}
}

// RecoverAbandoned marks in_progress entries older than the abandon
// timeout as failed and returns how many it closed.
func (s *Syncer) RecoverAbandoned(ctx context.Context) (int, error) {
	now := s.nowFunc()
	reason := fmt.Sprintf("abandoned: no result within %s", s.abandonTimeout)

	n, err := s.store.RecoverAbandonedSyncs(ctx, now.Add(-s.abandonTimeout), now, reason)
	if err != nil {
		return 0, fmt.Errorf("recovering abandoned syncs: %w", err)
	}
	if n > 0 {
		metrics.SyncAbandonedTotal.Add(float64(n))
		s.logger.Warn("marked abandoned syncs as failed", "count", n)
	}
	return n, nil
}

// History returns the newest sync log entries for the account.
func (s *Syncer) History(ctx context.Context, key string, limit int) ([]domain.SyncLogEntry, error) {
	entries, err := s.store.ListSyncLog(ctx, key, limit)
	if err != nil {
		return nil, fmt.Errorf("listing sync log for %s: %w", key, err)
	}
	return entries, nil
}

func (s *Syncer) acquire(key string) (func(), bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.running[key]; busy {
		return nil, false
	}
	s.running[key] = struct{}{}
	return func() {
		s.mu.Lock()
		delete(s.running, key)
		s.mu.Unlock()
	}, true
}

func cacheFromItem(item *ebay.SellingItem, at time.Time) domain.ListingCache {
	return domain.ListingCache{
		WatchCount:    item.WatchCount,
		ViewCount:     item.HitCount,
		BidCount:      item.BidCount,
		CurrentPrice:  item.CurrentPrice,
		TimeRemaining: item.TimeRemaining,
		LastSyncedAt:  &at,
	}
}
