package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/nurpe/moto-rental/internal/config"
)

const (
	pingAttempts = 5
	pingBackoff  = 2 * time.Second
)

// NewClient connects to Redis and waits until it answers PING.
func NewClient(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	var err error
	for attempt := 1; attempt <= pingAttempts; attempt++ {
		if err = rdb.Ping(ctx).Err(); err == nil {
			log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")
			return rdb, nil
		}
		log.Warn().Err(err).Int("attempt", attempt).Msg("redis not ready, retrying")

		select {
		case <-ctx.Done():
			_ = rdb.Close()
			return nil, ctx.Err()
		case <-time.After(pingBackoff):
		}
	}

	_ = rdb.Close()
	return nil, fmt.Errorf("ping redis %s: %w", cfg.Redis.Addr, err)
}
