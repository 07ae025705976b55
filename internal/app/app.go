package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/caselookup-backend/internal/adapter/gotrue"
	"github.com/heartmarshall/caselookup-backend/internal/adapter/postgres"
	"github.com/heartmarshall/caselookup-backend/internal/adapter/postgrest"
	"github.com/heartmarshall/caselookup-backend/internal/auth"
	"github.com/heartmarshall/caselookup-backend/internal/authevents"
	"github.com/heartmarshall/caselookup-backend/internal/config"
	"github.com/heartmarshall/caselookup-backend/internal/gateway"
	"github.com/heartmarshall/caselookup-backend/internal/i18n"
	"github.com/heartmarshall/caselookup-backend/internal/metrics"
	"github.com/heartmarshall/caselookup-backend/internal/repository/cases"
	"github.com/heartmarshall/caselookup-backend/internal/repository/person"
	"github.com/heartmarshall/caselookup-backend/internal/repository/profile"
	"github.com/heartmarshall/caselookup-backend/internal/repository/searchlog"
	"github.com/heartmarshall/caselookup-backend/internal/service/admin"
	"github.com/heartmarshall/caselookup-backend/internal/service/lookup"
	"github.com/heartmarshall/caselookup-backend/internal/service/session"
	"github.com/heartmarshall/caselookup-backend/internal/transport/middleware"
	"github.com/heartmarshall/caselookup-backend/internal/transport/respond"
	"github.com/heartmarshall/caselookup-backend/internal/transport/rest"
)

const authEventBuffer = 256

// Run is the application entry point. It loads configuration, wires the
// store, identity provider, services and HTTP server, and serves until ctx
// is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("store_driver", cfg.Store.Driver),
	)

	gw, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	idp := gotrue.NewClient(gotrue.Config{
		URL:        cfg.Store.URL,
		PublicKey:  cfg.Store.PublicKey,
		ServiceKey: cfg.Store.ServiceKey,
		Timeout:    cfg.Store.Timeout,
	}, logger)
	if !idp.CanProvision() {
		logger.Warn("no service key configured, user provisioning is unavailable")
	}

	if cfg.Session.Secret == "" {
		logger.Warn("no session secret configured, tokens will not survive a restart")
	}
	tokens, err := auth.NewTokenManager(cfg.Session.Secret, cfg.Session.Issuer, cfg.Session.TokenTTL)
	if err != nil {
		return fmt.Errorf("app: token manager: %w", err)
	}

	profiles := profile.New(gw)
	people := person.New(gw)
	caseRepo := cases.New(gw)
	logs := searchlog.New(gw)

	bus := authevents.NewBus(logger, authEventBuffer)
	defer bus.Close()

	m := metrics.New(nil)
	m.TrackAuthEventsDropped(bus.Dropped)
	tr := i18n.NewTranslator(cfg.I18n.DefaultLocale)
	rs := respond.New(tr, logger)

	sessions := session.NewService(logger, idp, profiles, tokens, bus, m, cfg.Session)
	lookups := lookup.NewService(logger, people, caseRepo, logs, m)
	admins := admin.NewService(logger, idp, profiles, people, caseRepo, logs, bus, m)

	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval, rs)
	defer limiter.Stop()

	handler := rest.NewRouter(rest.RouterDeps{
		Logger:      logger,
		Responder:   rs,
		Metrics:     m,
		CORS:        cfg.CORS,
		RateLimiter: limiter,
		SignInLimit: cfg.RateLimit.SignInPerMinute,
		Auth:        sessions,
		Session:     rest.NewSessionHandler(sessions, rs, logger),
		Lookup:      rest.NewLookupHandler(lookups, rs, logger),
		Admin:       rest.NewAdminHandler(admins, rs, logger),
		Health: rest.NewHealthHandler(rs, BuildVersion(),
			rest.Component{Name: "store", Pinger: gw},
			rest.Component{Name: "identity", Pinger: rest.PingFunc(idp.Health)},
		),
	})

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return sessions.Run(gctx)
	})

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("app: serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), cfg.Server.ShutdownTimeout)
		defer cancel()

		err := srv.Shutdown(shutdownCtx)
		lookups.Wait()
		if err != nil {
			return fmt.Errorf("app: shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("stopped")
	return nil
}

// openStore connects the row gateway selected by cfg.Store.Driver.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storeGateway, func(), error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("app: connect database: %w", err)
		}
		return postgres.NewGateway(pool, logger), pool.Close, nil
	default:
		client := postgrest.NewClient(postgrest.Config{
			URL:       cfg.Store.URL,
			PublicKey: cfg.Store.PublicKey,
			Timeout:   cfg.Store.Timeout,
		}, logger)
		return client, func() {}, nil
	}
}

// storeGateway is a row gateway that can also report its reachability.
type storeGateway interface {
	gateway.Gateway
	Ping(ctx context.Context) error
}
