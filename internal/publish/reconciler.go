package publish

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/donaldgifford/ebay-lister/internal/metrics"
	"github.com/donaldgifford/ebay-lister/internal/store"
	domain "github.com/donaldgifford/ebay-lister/pkg/types"
)

// Reconciler holds listings that went live but whose final write failed,
// and retries the write until it lands. The queue lives in memory; a
// restart loses it, and the next sync repairs the cache fields.
type Reconciler struct {
	store  store.ListingStore
	logger *slog.Logger

	mu      sync.Mutex
	pending map[string]domain.Listing
}

// ReconcilerOption configures a Reconciler.
type ReconcilerOption func(*Reconciler)

// WithReconcilerLogger sets the logger.
func WithReconcilerLogger(l *slog.Logger) ReconcilerOption {
	return func(r *Reconciler) {
		r.logger = l
	}
}

// NewReconciler creates an empty reconciler.
func NewReconciler(ls store.ListingStore, opts ...ReconcilerOption) *Reconciler {
	r := &Reconciler{
		store:   ls,
		logger:  slog.Default(),
		pending: make(map[string]domain.Listing),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Enqueue queues l for a retried write. A newer entry for the same SKU
// replaces the older one.
func (r *Reconciler) Enqueue(l domain.Listing) {
	l.ImageURLs = append([]string(nil), l.ImageURLs...)

	r.mu.Lock()
	r.pending[l.SKU] = l
	n := len(r.pending)
	r.mu.Unlock()

	metrics.PersistPending.Set(float64(n))
}

// Lookup returns the queued listing for sku, with status persist_pending.
func (r *Reconciler) Lookup(sku string) (*domain.Listing, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.pending[sku]
	if !ok {
		return nil, false
	}
	out := l
	out.ImageURLs = append([]string(nil), l.ImageURLs...)
	out.Status = domain.StatusPersistPending
	return &out, true
}

// Pending returns the queued SKUs in sorted order.
func (r *Reconciler) Pending() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	skus := make([]string, 0, len(r.pending))
	for sku := range r.pending {
		skus = append(skus, sku)
	}
	sort.Strings(skus)
	return skus
}

// Run retries every queued write once and returns how many landed. Entries
// that fail again stay queued. It stops early when ctx is done.
func (r *Reconciler) Run(ctx context.Context) (int, error) {
	r.mu.Lock()
	batch := make([]domain.Listing, 0, len(r.pending))
	for _, l := range r.pending {
		batch = append(batch, l)
	}
	r.mu.Unlock()

	written := 0
	for i := range batch {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		l := &batch[i]
		if err := r.store.UpdateListing(ctx, l); err != nil {
			metrics.ReconcileWritesTotal.WithLabelValues("error").Inc()
			r.logger.Warn("reconcile write failed", "sku", l.SKU, "error", err)
			continue
		}
		metrics.ReconcileWritesTotal.WithLabelValues("success").Inc()
		r.logger.Info("reconciled listing", "sku", l.SKU, "item_id", deref(l.RemoteItemID))
		written++

		r.mu.Lock()
		// A later Enqueue for the same SKU carries newer state; keep it.
		if cur, ok := r.pending[l.SKU]; ok && cur.LastUpdated.Equal(l.LastUpdated) {
			delete(r.pending, l.SKU)
		}
		r.mu.Unlock()
	}

	r.mu.Lock()
	metrics.PersistPending.Set(float64(len(r.pending)))
	r.mu.Unlock()
	return written, nil
}
