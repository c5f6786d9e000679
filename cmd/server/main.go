package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/socialauth/pkg/config"
	"github.com/dmitrymomot/socialauth/pkg/cookie"
	"github.com/dmitrymomot/socialauth/pkg/flow"
	"github.com/dmitrymomot/socialauth/pkg/gateway"
	"github.com/dmitrymomot/socialauth/pkg/identity"
	"github.com/dmitrymomot/socialauth/pkg/logger"
	"github.com/dmitrymomot/socialauth/pkg/mongo"
	"github.com/dmitrymomot/socialauth/pkg/pg"
	"github.com/dmitrymomot/socialauth/pkg/provider"
	"github.com/dmitrymomot/socialauth/pkg/redis"
)

type serverConfig struct {
	Port            int           `env:"PORT" envDefault:"8080"`
	Env             string        `env:"APP_ENV" envDefault:"development"`
	AccountStore    string        `env:"ACCOUNT_STORE" envDefault:"postgres"` // postgres or mongo
	MongoDatabase   string        `env:"MONGODB_DATABASE" envDefault:"socialauth"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg serverConfig
	config.MustLoad(&cfg)

	log := logger.New(logger.WithEnvironment(cfg.Env, "socialauth"))
	logger.SetAsDefault(log)

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg serverConfig, log *slog.Logger) error {
	var gwCfg gateway.Config
	config.MustLoad(&gwCfg)
	var provCfg provider.Config
	config.MustLoad(&provCfg)
	var redisCfg redis.Config
	config.MustLoad(&redisCfg)

	descriptors, secrets, err := provider.LoadInventory(provCfg.InventoryPath)
	if err != nil {
		return fmt.Errorf("load provider inventory: %w", err)
	}
	registry := provider.NewRegistry(descriptors)
	resolver := provider.NewResolver(registry, secrets)

	redisClient, err := redis.Connect(ctx, redisCfg)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer func() { _ = redisClient.Close() }()
	flows := flow.NewRedisStore(redisClient, gwCfg.FlowTTL)

	store, closeStore, err := newAccountStore(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("init account store: %w", err)
	}
	defer closeStore()

	policy, err := identity.ParseDuplicateEmailPolicy(gwCfg.DuplicateEmails)
	if err != nil {
		return err
	}
	reconciler := identity.NewReconciler(store, policy, identity.WithLogger(log))

	cookies, err := cookie.New(
		[]string{gwCfg.CookieSecret},
		cookie.WithSecure(gwCfg.SecureCookies),
	)
	if err != nil {
		return fmt.Errorf("init cookie manager: %w", err)
	}

	opts := []gateway.Option{
		gateway.WithLogger(log),
		gateway.WithCookieName(gwCfg.CookieName),
		gateway.WithFlowTTL(gwCfg.FlowTTL),
		gateway.WithSuccessURL(gwCfg.SuccessURL),
	}
	if gwCfg.CallbackURL != "" {
		opts = append(opts, gateway.WithFixedCallbackURL(gwCfg.CallbackURL))
	}
	svc, err := gateway.New(registry, resolver, flows, reconciler, cookies, opts...)
	if err != nil {
		return err
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Mount("/auth", svc.Handler())

	redisProbe := redis.Healthcheck(redisClient)
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if err := redisProbe(req.Context()); err != nil {
			http.Error(w, "unhealthy", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", slog.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info("server stopped")
	return nil
}

func newAccountStore(ctx context.Context, cfg serverConfig, log *slog.Logger) (identity.AccountStore, func(), error) {
	switch cfg.AccountStore {
	case "mongo":
		var mongoCfg mongo.Config
		config.MustLoad(&mongoCfg)

		db, err := mongo.NewWithDatabase(ctx, mongoCfg, cfg.MongoDatabase)
		if err != nil {
			return nil, nil, err
		}
		store := identity.NewMongoStore(db)
		if err := store.EnsureIndexes(ctx); err != nil {
			return nil, nil, err
		}
		return store, func() { _ = db.Client().Disconnect(context.Background()) }, nil

	case "postgres":
		var pgCfg pg.Config
		config.MustLoad(&pgCfg)

		pool, err := pg.Connect(ctx, pgCfg)
		if err != nil {
			return nil, nil, err
		}
		if err := pg.Migrate(ctx, pool, pgCfg, log); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return identity.NewPostgresStore(pool), pool.Close, nil

	default:
		return nil, nil, errors.New("ACCOUNT_STORE must be postgres or mongo")
	}
}
