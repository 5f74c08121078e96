package config_fx

import (
	"log/slog"

	"go.uber.org/fx"

	"mindcare/internal/config"
	"mindcare/internal/logger"
)

var Module = fx.Provide(
	config.Load,
	provideLogger)

func provideLogger(cfg config.Config) *slog.Logger {
	return logger.SetupDefault(nil, cfg.LogLevel)
}
