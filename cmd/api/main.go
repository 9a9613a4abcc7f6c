package main

import (
	"context"
	"database/sql"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	server "daleel/internal/adapters/http_server"
	"daleel/internal/adapters/observability"
	redisad "daleel/internal/adapters/redis"
	"daleel/internal/app"
	"daleel/internal/directory"
	"daleel/internal/domain"
	"daleel/internal/shared"
	"daleel/internal/storage/memory"
	mysqlstore "daleel/internal/storage/mysql"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)
	observability.SetLevel(cfg.LogLevel)

	reg := observability.InitRegistry()
	metricsSrv := observability.Serve(cfg.MetricsAddr, reg)

	dir, err := directory.Load(cfg.DirectoryFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.DirectoryFile).Msg("load directory failed")
	}
	rdb := redisad.NewClient(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer rdb.Close()

	kv := openKV(ctx, cfg, rdb)
	cache := openCache(ctx, cfg, rdb)

	q := app.NewDirectoryService(dir, cache, cfg.DefaultCity)
	reviews := app.NewReviewService(kv)

	log.Info().
		Int("doctors", dir.Len()).
		Int("reviews", reviews.TotalReviews(ctx, dir.IDs())).
		Strs("cities", dir.AvailableCities()).
		Str("default_city", q.DefaultCity()).
		Str("storage", cfg.StorageBackend).
		Msg("directory loaded")

	// http
	srv := server.New(cfg.RequestTimeout)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Q: q, Reviews: reviews})

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	if metricsSrv != nil {
		_ = metricsSrv.Shutdown(shutdownCtx)
	}
}

// openKV picks the review store. The process exits when the configured
// backend is unreachable at startup.
func openKV(ctx context.Context, cfg shared.Config, rdb *redis.Client) domain.KV {
	switch cfg.StorageBackend {
	case shared.BackendRedis:
		st := redisad.NewStore(rdb)
		if err := st.Ping(ctx); err != nil {
			log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("redis ping failed")
		}
		log.Info().Msg("redis connection ok")
		return st

	case shared.BackendMySQL:
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		if err := db.PingContext(ctx); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		st := mysqlstore.New(db)
		if err := st.Migrate(ctx); err != nil {
			log.Fatal().Err(err).Msg("kv migration failed")
		}
		log.Info().Msg("database connection ok")
		return st
	}
	return memory.New()
}

// openCache returns the image status cache, or nil when redis is not
// reachable and the backend does not require it.
func openCache(ctx context.Context, cfg shared.Config, rdb *redis.Client) domain.Cache {
	if cfg.StorageBackend != shared.BackendRedis {
		pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := rdb.Ping(pctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis unavailable, image fallbacks disabled")
			return nil
		}
	}
	return redisad.NewCache(rdb)
}
