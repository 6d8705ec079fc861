package bootstrap

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/habitquest/habitquest-go/internal/config"
	"github.com/habitquest/habitquest-go/internal/ratelimit"
	"github.com/habitquest/habitquest-go/internal/server"
)

// InitializeRateLimiter builds the per-IP limiter. With REDIS_ADDR set and
// reachable the window is shared across replicas; otherwise it is kept in
// process. The returned client is nil in the in-process case.
func InitializeRateLimiter(ctx context.Context, cfg *config.Config) (*ratelimit.Limiter, *redis.Client) {
	keyFn := server.ClientIP(cfg.TrustedProxies)

	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})

		pingCtx, cancel := context.WithTimeout(ctx, RedisPingTimeout)
		err := client.Ping(pingCtx).Err()
		cancel()

		if err == nil {
			slog.Info(LogMsgRateLimitRedis, "addr", cfg.RedisAddr)
			store := ratelimit.NewRedisStore(client)
			return ratelimit.NewLimiter(store, cfg.RateLimitRequests, cfg.RateLimitWindow, keyFn), client
		}

		slog.Warn(LogMsgRedisUnreachable, "addr", cfg.RedisAddr, "error", err)
		_ = client.Close()
	}

	slog.Info(LogMsgRateLimitMemory, "requests", cfg.RateLimitRequests, "window", cfg.RateLimitWindow)
	store := ratelimit.NewMemoryStore(ratelimit.DefaultMemoryKeys, cfg.RateLimitRequests+1, cfg.RateLimitWindow)
	return ratelimit.NewLimiter(store, cfg.RateLimitRequests, cfg.RateLimitWindow, keyFn), nil
}
