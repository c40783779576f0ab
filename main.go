package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/elcukro/home-budget-sub000/internal/activity"
	"github.com/elcukro/home-budget-sub000/internal/auth"
	"github.com/elcukro/home-budget-sub000/internal/budgetapi"
	"github.com/elcukro/home-budget-sub000/internal/config"
	"github.com/elcukro/home-budget-sub000/internal/draft"
	"github.com/elcukro/home-budget-sub000/internal/engine"
	"github.com/elcukro/home-budget-sub000/internal/handler"
	"github.com/elcukro/home-budget-sub000/internal/submit"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on system env vars")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Onboarding engine failed", zap.Error(err))
	}
}

func newLogger(cfg config.AppConfig) (*zap.Logger, error) {
	if cfg.Development() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(cfg config.AppConfig, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openDraftStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	debouncer := draft.NewDebouncer(store, cfg.DraftDebounce, logger.Named("draft"))
	defer debouncer.Close()

	var events activity.Publisher = activity.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		events = activity.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger.Named("activity"))
		logger.Info("Activity publisher initialized",
			zap.Strings("brokers", cfg.KafkaBrokers),
			zap.String("topic", cfg.KafkaTopic),
		)
	}
	defer events.Close()

	api := budgetapi.New(cfg.BudgetAPIURL, cfg.BudgetAPITimeout, logger.Named("budgetapi"))
	submitter := submit.New(api, logger.Named("submit"), submit.WithRollback(cfg.SubmitRollback))

	eng := engine.New(engine.Config{
		Drafts:     store,
		Debouncer:  debouncer,
		Prefill:    api,
		Submitter:  submitter,
		Events:     events,
		Logger:     logger.Named("engine"),
		CacheSize:  cfg.SessionCacheSize,
		SessionTTL: cfg.SessionTTL,
	})

	verifier := auth.NewVerifier(cfg.JWTSecret, cfg.JWTIssuer)
	if verifier.DevMode() {
		logger.Warn("JWT_SECRET is not set, trusting the " + auth.DevUserHeader + " header")
	}

	h := handler.New(eng, verifier, logger.Named("http"))
	srv := &fasthttp.Server{
		Handler:      h.Serve,
		Name:         "onboarding-engine",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Onboarding engine starting",
			zap.String("addr", cfg.HTTPAddr),
			zap.String("draft_backend", cfg.DraftBackend),
			zap.String("budget_api", cfg.BudgetAPIURL),
		)
		errCh <- srv.ListenAndServe(cfg.HTTPAddr)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Onboarding engine shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Warn("Shutdown did not complete", zap.Error(err))
	}
	return nil
}

// openDraftStore connects the configured draft backend and returns a
// function that releases it.
func openDraftStore(ctx context.Context, cfg config.AppConfig, logger *zap.Logger) (draft.Store, func(), error) {
	switch cfg.DraftBackend {
	case config.BackendRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:         cfg.RedisAddr,
			Password:     cfg.RedisPass,
			MaxRetries:   3,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			rdb.Close()
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		logger.Info("Redis draft store connected", zap.String("addr", cfg.RedisAddr))
		return draft.NewRedisStore(rdb, cfg.DraftTTL), func() { rdb.Close() }, nil

	case config.BackendPostgres:
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		store := draft.NewPostgresStore(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("prepare draft table: %w", err)
		}
		logger.Info("Postgres draft store connected")
		return store, pool.Close, nil

	default:
		store, err := draft.NewMemoryStore(cfg.SessionCacheSize * 4)
		if err != nil {
			return nil, nil, fmt.Errorf("memory draft store: %w", err)
		}
		return store, func() {}, nil
	}
}
