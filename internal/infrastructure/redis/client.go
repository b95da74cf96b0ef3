package redis

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/wordly-app/backend/internal/config"
)

// NewClient creates a Redis client and verifies connectivity with a short
// ping. A failed ping is logged but not fatal — the client reconnects lazily
// and registration endpoints surface store errors per request.
func NewClient(cfg *config.Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		slog.Warn("redis not reachable at startup", "addr", cfg.RedisAddr, "err", err)
	}
	return client
}
