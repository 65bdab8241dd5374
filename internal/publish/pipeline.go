// Package publish turns a listing request into a live marketplace listing.
// The Pipeline runs six strictly ordered stages and persists the listing
// after each one; a failed attempt is recorded, never resumed.
package publish

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/donaldgifford/ebay-lister/internal/apperror"
	"github.com/donaldgifford/ebay-lister/internal/ebay"
	"github.com/donaldgifford/ebay-lister/internal/metrics"
	"github.com/donaldgifford/ebay-lister/internal/notify"
	"github.com/donaldgifford/ebay-lister/internal/store"
	domain "github.com/donaldgifford/ebay-lister/pkg/types"
)

const tracerName = "github.com/donaldgifford/ebay-lister/internal/publish"

// AccountResolver resolves an account key, or the active account for "".
type AccountResolver interface {
	Resolve(ctx context.Context, key string) (*domain.Account, error)
}

// AuthorizedCaller runs a remote call with a valid token for the account,
// applying the refresh and retry policy.
type AuthorizedCaller interface {
	Call(ctx context.Context, key string, fn func(ctx context.Context, auth ebay.Auth) error) error
}

// Pipeline publishes listings. It is safe for concurrent use; attempts for
// different SKUs run independently.
type Pipeline struct {
	accounts   AccountResolver
	calls      AuthorizedCaller
	seller     ebay.Seller
	store      store.ListingStore
	settings   Settings
	reconciler *Reconciler
	notifier   notify.Notifier
	tracer     trace.Tracer
	nowFunc    func() time.Time
	logger     *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithNotifier sets the notifier for listed and failed events.
func WithNotifier(n notify.Notifier) Option {
	return func(p *Pipeline) {
		p.notifier = n
	}
}

// WithReconciler sets the queue that retries failed final writes.
func WithReconciler(r *Reconciler) Option {
	return func(p *Pipeline) {
		p.reconciler = r
	}
}

// WithTracerProvider sets the provider stage spans are recorded with.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(p *Pipeline) {
		p.tracer = tp.Tracer(tracerName)
	}
}

// WithNowFunc overrides the clock for testing.
func WithNowFunc(f func() time.Time) Option {
	return func(p *Pipeline) {
		p.nowFunc = f
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = l
	}
}

// NewPipeline creates a publish pipeline.
func NewPipeline(
	accounts AccountResolver,
	calls AuthorizedCaller,
	seller ebay.Seller,
	ls store.ListingStore,
	settings Settings,
	opts ...Option,
) *Pipeline {
	p := &Pipeline{
		accounts: accounts,
		calls:    calls,
		seller:   seller,
		store:    ls,
		settings: settings,
		tracer:   otel.Tracer(tracerName),
		nowFunc:  time.Now,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.reconciler == nil {
		p.reconciler = NewReconciler(ls, WithReconcilerLogger(p.logger))
	}
	return p
}

// Reconciler returns the persist retry queue.
func (p *Pipeline) Reconciler() *Reconciler {
	return p.reconciler
}

// attempt carries the state of one publish attempt between stages.
type attempt struct {
	req       domain.ListingRequest
	account   *domain.Account
	listing   *domain.Listing
	imageURLs []string
}

type stage struct {
	name   Stage
	status domain.ListingStatus
	run    func(ctx context.Context, a *attempt) error
}

func (p *Pipeline) stages() []stage {
	return []stage{
		{StageEnsureLocation, domain.StatusLocationEnsured, p.ensureLocation},
		{StageUploadImages, domain.StatusImagesAttached, p.uploadImages},
		{StageCreateInventoryItem, domain.StatusInventoryCreated, p.createInventoryItem},
		{StageCreateOffer, domain.StatusOfferCreated, p.createOffer},
		{StagePublishOffer, domain.StatusListed, p.publishOffer},
	}
}

// Publish runs a publish attempt. Invalid requests are rejected before any
// record is written. Once the draft exists every outcome is recorded on the
// listing, which is returned together with any error. A listing that went
// live but could not be saved is returned with status persist_pending and no
// error; the final write is retried in the background.
func (p *Pipeline) Publish(ctx context.Context, req domain.ListingRequest) (*domain.Listing, error) {
	ctx, span := p.tracer.Start(ctx, "publish")
	defer span.End()

	cond, err := validateRequest(&req)
	if err != nil {
		return nil, err
	}

	acct, err := p.accounts.Resolve(ctx, req.AccountKey)
	if err != nil {
		return nil, fmt.Errorf("resolving account: %w", err)
	}
	if acct.NeedsReauth {
		var cause error
		if acct.ReauthReason != "" {
			cause = errors.New(acct.ReauthReason)
		}
		return nil, &apperror.AuthError{AccountKey: acct.AccountKey, Err: cause}
	}

	listing, err := p.createDraft(ctx, &req, acct, cond)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(
		attribute.String("sku", listing.SKU),
		attribute.String("environment", string(listing.Environment)),
	)
	log := p.logger.With("sku", listing.SKU, "account", acct.AccountKey)
	log.Info("publish started", "card_id", req.CardID)

	a := &attempt{req: req, account: acct, listing: listing}

	for _, st := range p.stages() {
		if err := ctx.Err(); err != nil {
			log.Warn("publish abandoned by caller", "next_stage", st.name, "status", listing.Status)
			return cloneListing(listing), fmt.Errorf("publishing %s: abandoned before %s: %w", listing.SKU, st.name, err)
		}

		if err := p.runStage(ctx, st, a); err != nil {
			return p.fail(ctx, a, st.name, err)
		}
		listing.Status = st.status
		listing.LastUpdated = p.nowFunc()

		if st.name == StagePublishOffer {
			break
		}
		if err := p.store.UpdateListing(context.WithoutCancel(ctx), listing); err != nil {
			return p.fail(ctx, a, st.name, fmt.Errorf("saving listing after %s: %w", st.name, err))
		}
		log.Debug("stage complete", "stage", st.name, "status", listing.Status)
	}

	return p.persist(ctx, a)
}

func (p *Pipeline) runStage(ctx context.Context, st stage, a *attempt) error {
	ctx, span := p.tracer.Start(ctx, "publish."+string(st.name),
		trace.WithAttributes(attribute.String("stage", string(st.name))))
	defer span.End()

	start := time.Now()
	err := st.run(ctx, a)
	metrics.PublishStageDuration.WithLabelValues(string(st.name)).Observe(time.Since(start).Seconds())

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, remoteMessage(err))
		metrics.PublishStageFailuresTotal.WithLabelValues(string(st.name)).Inc()
	}
	return err
}

// persist writes the listed record. A failed write does not fail the
// publish: the caller gets the live listing marked persist_pending and the
// reconciler retries the write.
func (p *Pipeline) persist(ctx context.Context, a *attempt) (*domain.Listing, error) {
	l := a.listing
	log := p.logger.With("sku", l.SKU, "account", a.account.AccountKey)

	err := p.store.UpdateListing(context.WithoutCancel(ctx), l)
	if err == nil {
		metrics.PublishAttemptsTotal.WithLabelValues(string(l.Environment), string(domain.StatusListed)).Inc()
		log.Info("listing published", "item_id", deref(l.RemoteItemID), "url", l.ListingURL)
		p.notify(ctx, notify.EventListed, a, "")
		return cloneListing(l), nil
	}

	metrics.PublishStageFailuresTotal.WithLabelValues(string(StagePersist)).Inc()
	metrics.PublishAttemptsTotal.WithLabelValues(string(l.Environment), string(domain.StatusPersistPending)).Inc()
	log.Error("listing is live but could not be saved, queued for reconciliation",
		"item_id", deref(l.RemoteItemID), "url", l.ListingURL, "error", err)

	p.reconciler.Enqueue(*l)
	p.notify(ctx, notify.EventPersistPending, a, err.Error())

	out := cloneListing(l)
	out.Status = domain.StatusPersistPending
	return out, nil
}

// fail records the failure on the listing and returns a StageError. The
// marketplace's error text is stored unmodified.
func (p *Pipeline) fail(ctx context.Context, a *attempt, st Stage, cause error) (*domain.Listing, error) {
	l := a.listing
	l.Status = domain.StatusFailed
	l.FailedStage = string(st)
	l.ErrorMessage = remoteMessage(cause)
	l.LastUpdated = p.nowFunc()

	if err := p.store.UpdateListing(context.WithoutCancel(ctx), l); err != nil {
		p.logger.Error("saving failed listing", "sku", l.SKU, "stage", st, "error", err)
	}

	metrics.PublishAttemptsTotal.WithLabelValues(string(l.Environment), string(domain.StatusFailed)).Inc()
	p.logger.Warn("publish failed",
		"sku", l.SKU,
		"account", a.account.AccountKey,
		"stage", st,
		"error", cause,
	)
	p.notify(ctx, notify.EventPublishFailed, a, l.ErrorMessage)

	return cloneListing(l), &StageError{Stage: st, SKU: l.SKU, Err: cause}
}

// createDraft inserts the draft row, generating a SKU when the request has
// none. A generated SKU that collides is regenerated from a fresh clock
// reading with a growing suffix until one is free.
func (p *Pipeline) createDraft(
	ctx context.Context,
	req *domain.ListingRequest,
	acct *domain.Account,
	cond domain.ConditionCode,
) (*domain.Listing, error) {
	now := p.nowFunc()
	l := &domain.Listing{
		CardID:          req.CardID,
		Status:          domain.StatusDraft,
		Environment:     acct.Environment,
		AccountKey:      acct.AccountKey,
		AccountUserID:   acct.UserID,
		AccountUsername: acct.Username,
		Title:           req.Title,
		Description:     req.Description,
		Price:           req.Price,
		Condition:       cond,
		CategoryID:      req.CategoryID,
		CreatedAt:       now,
		LastUpdated:     now,
	}

	if req.SKU != "" {
		l.SKU = req.SKU
		if err := p.store.CreateListing(ctx, l); err != nil {
			if errors.Is(err, store.ErrDuplicateSKU) {
				return nil, apperror.Validation("sku", fmt.Sprintf("%s already exists", req.SKU))
			}
			return nil, fmt.Errorf("creating draft listing: %w", err)
		}
		return l, nil
	}

	// Terminates: every retry either succeeds or moves past an existing row.
	for seq := 0; ; seq++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("creating draft listing: %w", err)
		}
		l.SKU = newSKU(req.CardID, p.nowFunc(), seq)
		err := p.store.CreateListing(ctx, l)
		if err == nil {
			return l, nil
		}
		if !errors.Is(err, store.ErrDuplicateSKU) {
			return nil, fmt.Errorf("creating draft listing: %w", err)
		}
		p.logger.Debug("sku collision, regenerating", "sku", l.SKU)
	}
}

func (p *Pipeline) notify(ctx context.Context, kind notify.EventKind, a *attempt, errText string) {
	if p.notifier == nil {
		return
	}

	l := a.listing
	e := &notify.Event{
		Kind:        kind,
		SKU:         l.SKU,
		Title:       l.Title,
		Price:       l.Price.StringFixed(2) + " " + p.settings.Currency,
		Environment: string(l.Environment),
		Account:     l.AccountUsername,
		ListingURL:  l.ListingURL,
		Stage:       l.FailedStage,
		Error:       errText,
		At:          p.nowFunc(),
	}
	if len(l.ImageURLs) > 0 {
		e.ImageURL = l.ImageURLs[0]
	}

	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if err := p.notifier.Send(sendCtx, e); err != nil {
		metrics.NotificationFailuresTotal.Inc()
		p.logger.Warn("sending notification", "sku", l.SKU, "kind", kind, "error", err)
	}
}

// validateRequest checks the request before anything is written and returns
// the mapped condition code.
func validateRequest(req *domain.ListingRequest) (domain.ConditionCode, error) {
	req.CardID = strings.TrimSpace(req.CardID)
	req.Title = strings.TrimSpace(req.Title)

	switch {
	case req.CardID == "":
		return "", apperror.Validation("card_id", "is required")
	case req.Title == "":
		return "", apperror.Validation("title", "is required")
	case !req.Price.IsPositive():
		return "", apperror.Validation("price", "must be positive")
	case strings.TrimSpace(req.CategoryID) == "":
		return "", apperror.Validation("category_id", "is required")
	case len(req.ImageRefs) > maxImages:
		return "", apperror.Validation("image_refs", fmt.Sprintf("at most %d images are allowed", maxImages))
	}

	if req.SKU != "" {
		if err := validateSKU(req.SKU); err != nil {
			return "", err
		}
	}

	cond, ok := domain.ParseCondition(req.Condition)
	if !ok {
		return "", apperror.Validation("condition", fmt.Sprintf("unknown condition %q", req.Condition))
	}
	return cond, nil
}

func cloneListing(l *domain.Listing) *domain.Listing {
	out := *l
	out.ImageURLs = append([]string(nil), l.ImageURLs...)
	return &out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
