package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/donaldgifford/ebay-lister/api/openapi"
	"github.com/donaldgifford/ebay-lister/internal/account"
	"github.com/donaldgifford/ebay-lister/internal/api/handlers"
	mw "github.com/donaldgifford/ebay-lister/internal/api/middleware"
	"github.com/donaldgifford/ebay-lister/internal/config"
	"github.com/donaldgifford/ebay-lister/internal/ebay"
	"github.com/donaldgifford/ebay-lister/internal/engine"
	"github.com/donaldgifford/ebay-lister/internal/notify"
	"github.com/donaldgifford/ebay-lister/internal/publish"
	"github.com/donaldgifford/ebay-lister/internal/store"
	"github.com/donaldgifford/ebay-lister/internal/syncer"
	"github.com/donaldgifford/ebay-lister/internal/tracing"
	"github.com/donaldgifford/ebay-lister/pkg/logger"
	domain "github.com/donaldgifford/ebay-lister/pkg/types"
)

const (
	shutdownTimeout = 10 * time.Second
	recoverInterval = 10 * time.Minute
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server and scheduler",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Setup(ctx, cfg.Tracing, Version)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Error("flushing traces", "error", err)
		}
	}()

	st, err := store.NewPostgresStore(ctx, cfg.Database.DSN(), store.WithPoolSize(cfg.Database.PoolSize))
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer st.Close()

	if err := st.Migrate(ctx); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	rl := ebay.NewRateLimiter(cfg.Ebay.RateLimit.PerSecond, cfg.Ebay.RateLimit.Burst, cfg.Ebay.RateLimit.DailyLimit)
	client := ebay.NewClient(ebayEnvironments(&cfg.Ebay),
		ebay.WithRateLimiter(rl),
		ebay.WithScopes(cfg.Ebay.Scopes...),
		ebay.WithMarketplace(cfg.Listing.Marketplace),
		ebay.WithContentLanguage(cfg.Listing.ContentLanguage),
		ebay.WithLogger(log),
	)

	svc, err := buildService(ctx, cfg, st, client, log)
	if err != nil {
		return err
	}

	sched, err := engine.NewScheduler(svc, cfg.Sync.Interval, cfg.Sync.ReconcileInterval, recoverInterval, log)
	if err != nil {
		return fmt.Errorf("creating scheduler: %w", err)
	}
	sched.Start()
	defer func() {
		<-sched.Stop().Done()
		log.Info("scheduler stopped")
	}()

	e := newEcho(cfg, log)
	e.GET("/healthz", handlers.NewHealthHandler(st).Healthz)
	e.GET("/readyz", handlers.NewHealthHandler(st).Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	openapi.RegisterRoutes(e)
	registerRoutes(newAPI(e), svc, rl)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("starting server", "addr", addr, "version", Version)

	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	log.Info("shutting down server")

	sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(sctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	if n, err := svc.Reconcile(sctx); err != nil {
		log.Warn("final reconcile incomplete", "written", n, "pending", len(svc.PendingPersists()), "error", err)
	}

	log.Info("server stopped")
	return nil
}

// buildService wires the account, publish and sync layers behind the
// engine facade and runs the one-time legacy credential import.
func buildService(
	ctx context.Context,
	cfg *config.Config,
	st store.Store,
	client ebay.Marketplace,
	log *slog.Logger,
) (*engine.Service, error) {
	tokens := account.NewTokens(st, client,
		account.WithSafetyMargin(cfg.Ebay.TokenSafetyMargin),
		account.WithCallTimeout(cfg.Ebay.CallTimeout),
		account.WithRetryPolicy(cfg.Ebay.Retry),
		account.WithTokensLogger(log),
	)
	accounts := account.NewManager(st, client, tokens, account.WithManagerLogger(log))

	imported, err := accounts.ImportLegacy(ctx, cfg.Ebay.LegacyTokenFile)
	switch {
	case err != nil:
		log.Warn("legacy credential import failed, continuing without it",
			"path", cfg.Ebay.LegacyTokenFile, "error", err)
	case imported:
		log.Info("imported legacy credential file", "path", cfg.Ebay.LegacyTokenFile)
	}

	var notifier notify.Notifier = notify.NewNoOpNotifier(log)
	if cfg.Notifications.Discord.Enabled {
		notifier = notify.NewDiscordNotifier(cfg.Notifications.Discord.WebhookURL)
	}

	pipeline := publish.NewPipeline(accounts, tokens, client, st, publish.SettingsFromConfig(cfg),
		publish.WithNotifier(notifier),
		publish.WithReconciler(publish.NewReconciler(st, publish.WithReconcilerLogger(log))),
		publish.WithLogger(log),
	)

	sy := syncer.New(tokens, client, st,
		syncer.WithMinInterval(cfg.Sync.MinInterval),
		syncer.WithAbandonTimeout(cfg.Sync.AbandonTimeout),
		syncer.WithPageSize(cfg.Sync.PageSize),
		syncer.WithLogger(log),
	)

	return engine.NewService(accounts, pipeline, sy, st,
		engine.WithLogger(log),
		engine.WithQuotaReporter(client),
	), nil
}

func newEcho(cfg *config.Config, log *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	e.Use(mw.RequestLog(log))
	e.Use(mw.Metrics())
	e.Use(mw.Recovery(log))
	return e
}

func newAPI(e *echo.Echo) huma.API {
	humaCfg := huma.DefaultConfig("eBay Lister API", Version)
	humaCfg.Info.Description = "Multi-account eBay listing engine: publish pipeline, listing records, and metric sync."
	return humaecho.New(e, humaCfg)
}

// registerRoutes mounts every API operation. svc and rl may be nil when
// the API is built only to render its OpenAPI document.
func registerRoutes(api huma.API, svc *engine.Service, rl *ebay.RateLimiter) {
	var quota handlers.QuotaService
	if svc != nil {
		quota = svc
	}

	handlers.RegisterAccountRoutes(api, handlers.NewAccountsHandler(svc))
	handlers.RegisterListingRoutes(api, handlers.NewListingsHandler(svc))
	handlers.RegisterSyncRoutes(api, handlers.NewSyncHandler(svc))
	handlers.RegisterQuotaRoutes(api, handlers.NewQuotaHandler(rl, quota))
}

// ebayEnvironments converts the configured environments that have
// application keys into client endpoint sets.
func ebayEnvironments(cfg *config.EbayConfig) map[domain.Environment]ebay.EnvironmentConfig {
	envs := make(map[domain.Environment]ebay.EnvironmentConfig, 2)
	for _, env := range []domain.Environment{domain.EnvSandbox, domain.EnvProduction} {
		ec := cfg.Environment(env)
		if !ec.Enabled() {
			continue
		}
		envs[env] = ebay.EnvironmentConfig{
			AppID:       ec.AppID,
			CertID:      ec.CertID,
			RuName:      ec.RuName,
			AuthURL:     ec.AuthURL,
			TokenURL:    ec.TokenURL,
			APIURL:      ec.APIURL,
			IdentityURL: ec.IdentityURL,
			MediaURL:    ec.MediaURL,
			TradingURL:  ec.TradingURL,
		}
	}
	return envs
}
