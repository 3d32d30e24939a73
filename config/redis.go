package config

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ConnectRedis returns nil when Redis is not configured or unreachable; the
// server then runs without a read cache.
func ConnectRedis(ctx context.Context, cfg RedisConfig, logger zerolog.Logger) *redis.Client {
	if !cfg.Enabled() {
		logger.Info().Msg("redis not configured, running without cache")
		return nil
	}

	var opt *redis.Options
	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to parse redis url, running without cache")
			return nil
		}
		opt = parsed
	} else {
		opt = &redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       0,
		}
	}

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn().Err(err).Msg("redis connection failed, running without cache")
		_ = client.Close()
		return nil
	}

	logger.Info().Str("addr", opt.Addr).Msg("redis connected")
	return client
}
