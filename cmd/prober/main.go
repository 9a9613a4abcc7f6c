package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"daleel/internal/adapters/imagecheck"
	"daleel/internal/adapters/observability"
	redisad "daleel/internal/adapters/redis"
	"daleel/internal/app"
	"daleel/internal/directory"
	"daleel/internal/shared"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)
	observability.SetLevel(cfg.LogLevel)

	log.Info().
		Int("workers", cfg.ProbeWorkers).
		Int("rps", cfg.ProbeRPS).
		Dur("ttl", cfg.ProbeTTL).
		Msg("prober starting")

	dir, err := directory.Load(cfg.DirectoryFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.DirectoryFile).Msg("load directory failed")
	}

	rdb := redisad.NewClient(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Msg("redis ping failed")
	}
	log.Info().Msg("redis ping ok")

	probe := app.NewProbeService(imagecheck.New(cfg.ProbeRPS), redisad.NewCache(rdb), int(cfg.ProbeTTL.Seconds()))
	n, err := probe.ProbeAll(ctx, dir.All(), cfg.ProbeWorkers)
	if err != nil {
		log.Error().Err(err).Int("probed", n).Msg("probing interrupted")
		return
	}
	log.Info().Int("probed", n).Int("doctors", dir.Len()).Msg("probing completed")
}
