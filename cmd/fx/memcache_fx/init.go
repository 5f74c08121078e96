package memcache_fx

import (
	"context"
	"log/slog"
	"time"

	"go.uber.org/fx"

	mem "mindcare/pkg/memcache"
)

const purgeInterval = 10 * time.Minute

var Module = fx.Options(
	fx.Provide(provideRefreshTokenStore),
	fx.Invoke(startPurger))

func provideRefreshTokenStore() mem.RefreshTokenStore {
	return mem.NewRefreshTokens()
}

// startPurger drops expired refresh tokens in the background until shutdown.
func startPurger(lc fx.Lifecycle, store mem.RefreshTokenStore) {
	stop := make(chan struct{})
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				ticker := time.NewTicker(purgeInterval)
				defer ticker.Stop()
				for {
					select {
					case <-stop:
						return
					case <-ticker.C:
						if n := store.PurgeExpired(); n > 0 {
							slog.Debug("purged expired refresh tokens", "count", n)
						}
					}
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			close(stop)
			return nil
		},
	})
}
