package http_fx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"mindcare/internal/api"
	"mindcare/internal/config"
	"mindcare/pkg/middleware"
)

var Module = fx.Options(
	fx.Provide(provideAuthLimiter),
	fx.Provide(api.NewRouter),
	fx.Invoke(StartServer))

func provideAuthLimiter(lc fx.Lifecycle, cfg config.Config) *middleware.IPRateLimiter {
	limiter := middleware.NewIPRateLimiter(cfg.AuthRateLimitRPS, cfg.AuthRateLimitBurst)
	lc.Append(fx.StopHook(limiter.Stop))
	return limiter
}

func StartServer(lc fx.Lifecycle, shutdowner fx.Shutdowner, cfg config.Config, engine *gin.Engine) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				slog.Info("starting HTTP server", "addr", srv.Addr, "env", cfg.Env)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					slog.Error("HTTP server failed", "error", err)
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			slog.Info("stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}
