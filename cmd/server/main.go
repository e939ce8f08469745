package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/inodbandara-official/recommendation/internal/cache"
	"github.com/inodbandara-official/recommendation/internal/config"
	"github.com/inodbandara-official/recommendation/internal/dataset"
	"github.com/inodbandara-official/recommendation/internal/handler"
	"github.com/inodbandara-official/recommendation/internal/hybrid"
	"github.com/inodbandara-official/recommendation/internal/logging"
	"github.com/inodbandara-official/recommendation/internal/repository"
	"github.com/inodbandara-official/recommendation/internal/router"
	"github.com/inodbandara-official/recommendation/internal/service"
	"github.com/inodbandara-official/recommendation/seeds"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	var store service.Store
	switch cfg.DataSource {
	case "csv":
		store = dataset.NewCSVStore(cfg.DataDir)
		log.Info().Str("data_dir", cfg.DataDir).Msg("using CSV data source")

	default:
		pool := connectPostgres(ctx, cfg)
		defer pool.Close()

		// for migrate-down using CLI command
		if len(os.Args) > 1 && os.Args[1] == "migrate-down" {
			if err := migrateDown(ctx, pool); err != nil {
				log.Fatal().Err(err).Msg("failed to migrate down")
			}
			log.Info().Msg("migrations dropped")
			return
		}

		if err := migrateUp(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("failed to migrate up")
		}
		if err := checkSeed(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("failed to check seed")
		}
		store = repository.NewRepository(pool)
	}

	var resultCache service.ResultCache
	if redisOpts, err := redis.ParseURL(cfg.RedisURL); err != nil {
		log.Warn().Err(err).Msg("invalid redis url, caching disabled")
	} else {
		client := redis.NewClient(redisOpts)
		c := cache.NewCache(client, cfg.CacheTTL)
		if err := c.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("redis unreachable, caching disabled")
		} else {
			resultCache = c
			log.Info().Msg("connected to Redis")
		}
	}

	svc := service.NewService(store, resultCache, service.Options{
		SimilarityAlpha:      cfg.SimilarityAlpha,
		InteractionThreshold: cfg.InteractionThreshold,
		TrendWindowDays:      cfg.TrendWindowDays,
		Weights:              hybrid.DefaultWeights(),
	})
	h := handler.NewHandler(svc)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router.Setup(h),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 35 * time.Second,
	}

	log.Info().Str("addr", cfg.Addr()).Msg("server running")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func connectPostgres(ctx context.Context, cfg *config.Config) *pgxpool.Pool {
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse database config")
	}
	poolConfig.MaxConns = int32(cfg.DBPoolSize)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := waitForDB(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("database not ready")
	}
	log.Info().Msg("connected to PostgreSQL")
	return pool
}

func waitForDB(ctx context.Context, pool *pgxpool.Pool) error {
	for i := 0; i < 30; i++ {
		if err := pool.Ping(ctx); err == nil {
			return nil
		}
		log.Info().Int("attempt", i+1).Msg("waiting for database")
		time.Sleep(1 * time.Second)
	}
	return fmt.Errorf("database connection timeout after 30s")
}

func migrateDown(ctx context.Context, pool *pgxpool.Pool) error {
	sql, err := os.ReadFile("migrations/create_tables.down.sql")
	if err != nil {
		return fmt.Errorf("read migration file: %w", err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("execute migration: %w", err)
	}
	return nil
}

func migrateUp(ctx context.Context, pool *pgxpool.Pool) error {
	sql, err := os.ReadFile("migrations/create_tables.up.sql")
	if err != nil {
		return fmt.Errorf("read migration file: %w", err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("execute migration: %w", err)
	}
	log.Info().Msg("migrations applied")
	return nil
}

func checkSeed(ctx context.Context, pool *pgxpool.Pool) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("check users count: %w", err)
	}
	if count > 0 {
		log.Info().Int("users", count).Msg("database already seeded, skipping")
		return nil
	}
	return seeds.Setup(ctx, pool)
}
