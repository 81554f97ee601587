package bootstrap

import (
	"context"

	"madebuy/internal/pkg/clock"
	"madebuy/internal/pkg/config"
	"madebuy/internal/pkg/ratelimit"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RateLimitModule = fx.Module("ratelimit",
	fx.Provide(
		NewRateLimitStore,
		ratelimit.NewLimiter,
	),
)

// NewRateLimitStore picks the limiter backend from config: Redis when an
// address is configured (counters shared across instances), otherwise the
// in-process store.
func NewRateLimitStore(lc fx.Lifecycle, cfg config.Config, clk clock.Clock) ratelimit.Store {
	if cfg.Redis.Addr == "" {
		return ratelimit.NewMemoryStore(clk)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return ratelimit.NewRedisStore(client)
}
