// Command server runs the reference platform backend: the auth API under
// /api, the edge route guard in front of everything else, and a health
// endpoint probing the backing stores.
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/fanvault/accesskit/modules/authapi"
	"github.com/fanvault/accesskit/pkg/config"
	"github.com/fanvault/accesskit/pkg/guard"
	"github.com/fanvault/accesskit/pkg/httpserver"
	"github.com/fanvault/accesskit/pkg/logger"
	"github.com/fanvault/accesskit/pkg/pg"
	"github.com/fanvault/accesskit/pkg/redis"
	"github.com/fanvault/accesskit/pkg/refreshstore"
	"github.com/fanvault/accesskit/pkg/routes"
	"github.com/fanvault/accesskit/pkg/userstore"
	"github.com/fanvault/accesskit/pkg/userstore/migrations"
)

type appConfig struct {
	HTTP httpserver.Config
	PG   pg.Config
	Auth authapi.Config

	LogFormat  logger.Format `env:"LOG_FORMAT" envDefault:"json"`
	RedisURL   string        `env:"REDIS_URL"`
	RoutesFile string        `env:"ROUTES_FILE"`

	// GoogleEnabled gates the optional OAuth endpoints; the GOOGLE_OAUTH_*
	// settings are only required when it is on.
	GoogleEnabled bool `env:"GOOGLE_OAUTH_ENABLED" envDefault:"false"`
}

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.New(
		logger.WithFormat(cfg.LogFormat),
		logger.WithAttrs(slog.String("service", "accesskit")),
	)

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("server exited", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	pool, err := pg.Connect(ctx, cfg.PG)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := migrations.Up(ctx, stdlib.OpenDBFromPool(pool)); err != nil {
		return err
	}

	probes := map[string]httpserver.Probe{"postgres": pg.Healthcheck(pool)}

	// Refresh credentials live in Redis when one is configured, in memory
	// otherwise. Memory is fine for a single instance; renewals that may
	// land on any instance need Redis.
	var tokens refreshstore.Store = refreshstore.NewMemoryStore()
	if cfg.RedisURL != "" {
		redisCfg := redis.Config{
			ConnectionURL:  cfg.RedisURL,
			RetryAttempts:  3,
			RetryInterval:  5 * time.Second,
			ConnectTimeout: 30 * time.Second,
		}
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return err
		}
		defer client.Close()
		tokens = refreshstore.NewRedisStore(client)
		probes["redis"] = redis.Healthcheck(client)
	}

	svc, err := authapi.NewService(cfg.Auth, userstore.NewPostgres(pool), tokens,
		authapi.WithServiceLogger(log),
	)
	if err != nil {
		return err
	}

	routerOpts := []authapi.RouterOption{authapi.WithRouterLogger(log)}
	if cfg.GoogleEnabled {
		var googleCfg authapi.GoogleConfig
		if err := config.Load(&googleCfg); err != nil {
			return err
		}
		routerOpts = append(routerOpts, authapi.WithGoogle(
			authapi.NewGoogleOAuth(googleCfg, svc, authapi.WithGoogleLogger(log)),
		))
	}

	table := routes.DefaultTable()
	if cfg.RoutesFile != "" {
		if table, err = routes.LoadTable(cfg.RoutesFile); err != nil {
			return err
		}
	}
	edge := guard.NewEdge(table, guard.WithEdgeLogger(log))

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer)
	r.Get("/healthz", httpserver.Healthcheck(probes))
	r.Mount("/api", authapi.Router(svc, routerOpts...))
	// Page routes sit behind the edge guard; the frontend itself is served
	// elsewhere, so allowed paths get a placeholder.
	r.Handle("/*", edge.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})))

	return httpserver.New(cfg.HTTP, httpserver.WithLogger(log)).Run(ctx, r)
}
