package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/fitkit/modules/billing"
	"github.com/dmitrymomot/fitkit/pkg/config"
	"github.com/dmitrymomot/fitkit/pkg/httpserver"
	"github.com/dmitrymomot/fitkit/pkg/logger"
	"github.com/dmitrymomot/fitkit/pkg/pg"
	"github.com/dmitrymomot/fitkit/pkg/redis"
	"github.com/dmitrymomot/fitkit/svc/catalog"
	"github.com/dmitrymomot/fitkit/svc/entitlement"
	"github.com/dmitrymomot/fitkit/svc/subscription"
)

type appConfig struct {
	// AuthTokenSecret verifies the access tokens minted by the auth system.
	AuthTokenSecret string `env:"AUTH_TOKEN_SECRET,required"`

	CacheTTL time.Duration `env:"CATALOG_CACHE_TTL" envDefault:"1m"`

	LogLevel  slog.Level    `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat logger.Format `env:"LOG_FORMAT" envDefault:"json"`
}

func main() {
	ctx := context.Background()

	var (
		appCfg     appConfig
		pgCfg      pg.Config
		redisCfg   redis.Config
		httpCfg    httpserver.Config
		billingCfg subscription.Config
	)
	config.MustLoad(&appCfg)
	config.MustLoad(&pgCfg)
	config.MustLoad(&redisCfg)
	config.MustLoad(&httpCfg)
	config.MustLoad(&billingCfg)

	log := logger.New(
		logger.WithLevel(appCfg.LogLevel),
		logger.WithFormat(appCfg.LogFormat),
		logger.WithAttrs(slog.String("service", "fitkit")),
	)
	logger.SetAsDefault(log)

	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		log.Error("postgres connection failed", logger.Error(err))
		os.Exit(1)
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, pgCfg, log); err != nil {
		log.Error("migrations failed", logger.Error(err))
		os.Exit(1)
	}

	redisClient, err := redis.Connect(ctx, redisCfg)
	if err != nil {
		log.Error("redis connection failed", logger.Error(err))
		os.Exit(1)
	}
	defer redisClient.Close()

	subStore := subscription.NewPGStore(pool)
	catalogSvc := catalog.NewService(catalog.NewPGStore(pool),
		catalog.WithCache(catalog.NewRedisCache(redisClient, appCfg.CacheTTL)),
		catalog.WithReferenceChecker(subStore.ExistsLiveByPlan),
	)
	subscriptionSvc := subscription.NewService(subStore, catalogSvc,
		subscription.NewSimulatedAuthorizer(), billingCfg,
		subscription.WithLogger(log),
	)
	guard := entitlement.NewGuard(
		entitlement.NewTokenAccountSource(appCfg.AuthTokenSecret),
		subscriptionSvc,
	)

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer)
	r.Get("/healthz", httpserver.HealthCheckHandler(log))
	r.Get("/readyz", httpserver.HealthCheckHandler(log,
		pg.Healthcheck(pool),
		redis.Healthcheck(redisClient),
	))
	r.Mount("/billing", billing.Router(billing.RouterOptions{
		Catalog:       catalogSvc,
		Subscriptions: subscriptionSvc,
		Guard:         guard,
		Logger:        log,
	}))

	srv := httpserver.New(httpCfg, httpserver.WithLogger(log))
	if err := srv.Run(ctx, r); err != nil {
		log.Error("server stopped", logger.Error(err))
		os.Exit(1)
	}
}
