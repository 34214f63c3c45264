package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	validator "github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	redis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/emprendia/backend-tienda/internal/checkout"
	"github.com/emprendia/backend-tienda/internal/config"
	"github.com/emprendia/backend-tienda/internal/health"
	"github.com/emprendia/backend-tienda/internal/obs"
	"github.com/emprendia/backend-tienda/internal/ratelimit"
	"github.com/emprendia/backend-tienda/internal/record"
	"github.com/emprendia/backend-tienda/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := obs.NewLogger(cfg.LogFormat, cfg.LogLevel).With().Str("env", cfg.AppEnv).Logger()

	obs.MustRegisterDomainMetrics(cfg.MetricsNamespace, nil)
	httpMetrics := obs.NewHTTPMetrics(cfg.MetricsNamespace, obs.ParseBucketsCSV(cfg.MetricsBuckets), nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	probes := map[string]health.Probe{}

	var pool *pgxpool.Pool
	if cfg.DatabaseURL != "" {
		pool, err = pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("connect database")
		}
		defer pool.Close()
		if err := pool.Ping(ctx); err != nil {
			logger.Fatal().Err(err).Msg("ping database")
		}
		probes["postgres"] = func(ctx context.Context) error { return pool.Ping(ctx) }
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("parse redis url")
		}
		redisClient = redis.NewClient(opts)
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Error().Err(err).Msg("close redis")
			}
		}()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Fatal().Err(err).Msg("ping redis")
		}
		probes["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}

	records, backend := newRecordStore(ctx, logger, pool, redisClient)
	logger.Info().Str("backend", backend).Msg("record store ready")

	storeSvc := &store.Service{
		Records: records,
		Cache:   store.NewCache(redisClient, cfg.CacheTTL),
	}
	validate := validator.New()
	storeHandler := &store.Handler{Svc: storeSvc, Validate: validate}
	checkoutHandler := &checkout.Handler{
		Svc:      &checkout.Service{Stores: storeSvc},
		Validate: validate,
	}

	quoteLimit := ratelimit.Handler{
		Limiter: ratelimit.Limiter{Client: redisClient, Prefix: "ratelimit:quote:"},
		Config: ratelimit.Config{
			Key:    ratelimit.StoreAndIPKey,
			Window: cfg.RateLimitWindow,
			Max:    cfg.RateLimitMax,
		},
		OnError: func(err error) {
			logger.Warn().Err(err).Msg("rate limiter unavailable")
		},
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(obs.RoutePatternMiddleware)
	r.Use(obs.HTTPObs{Metrics: httpMetrics}.Middleware)
	r.Use(obs.RequestLogger{Logger: logger}.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins(cfg),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Handle("/metrics", promhttp.Handler())

	healthHandler := health.Handler{Probes: probes}
	r.Get("/health/live", healthHandler.Live)
	r.Get("/health/ready", healthHandler.Ready)

	r.Route("/api/v1/stores/{storeID}", func(s chi.Router) {
		s.Get("/", storeHandler.Get)
		s.Put("/", storeHandler.Put)
		s.Get("/products", storeHandler.ListProducts)
		s.Post("/products", storeHandler.UpsertProduct)
		s.Put("/products/{productID}", storeHandler.UpsertProduct)
		s.Delete("/products/{productID}", storeHandler.DeleteProduct)

		s.Group(func(q chi.Router) {
			q.Use(quoteLimit.Middleware)
			q.Post("/quote", checkoutHandler.Quote)
			q.Post("/order-message", checkoutHandler.OrderMessage)
			q.Post("/invoice", checkoutHandler.Invoice)
		})
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("server starting")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server exited unexpectedly")
		}
	case <-shutdownCtx.Done():
		logger.Info().Msg("shutdown signal received")
		health.SetReady(false)
		drainCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(drainCtx); err != nil {
			logger.Error().Err(err).Msg("graceful shutdown failed")
		}
	}
}

// newRecordStore picks the persistence backend from what is configured:
// Postgres when available, otherwise Redis, otherwise in-memory.
func newRecordStore(ctx context.Context, logger zerolog.Logger, pool *pgxpool.Pool, redisClient *redis.Client) (record.Store, string) {
	if pool != nil {
		pg, err := record.NewPostgres(ctx, pool)
		if err != nil {
			logger.Fatal().Err(err).Msg("initialise postgres record store")
		}
		return pg, "postgres"
	}
	if redisClient != nil {
		return record.Redis{Client: redisClient}, "redis"
	}
	return record.NewMemory(), "memory"
}

func allowedOrigins(cfg *config.Config) []string {
	if len(cfg.CORSAllowedOrigins) == 0 {
		return []string{"*"}
	}
	return cfg.CORSAllowedOrigins
}
