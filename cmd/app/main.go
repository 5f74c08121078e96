package main

import (
	"log/slog"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"mindcare/cmd/fx/account_fx"
	"mindcare/cmd/fx/chat_fx"
	"mindcare/cmd/fx/config_fx"
	"mindcare/cmd/fx/controllers_fx"
	"mindcare/cmd/fx/db_fx"
	"mindcare/cmd/fx/http_fx"
	"mindcare/cmd/fx/journal_fx"
	"mindcare/cmd/fx/memcache_fx"
	"mindcare/cmd/fx/metrics_fx"
	"mindcare/cmd/fx/mood_fx"
	"mindcare/cmd/fx/stats_fx"
)

func main() {
	app := fx.New(
		fx.WithLogger(func(logger *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger}
		}),
		config_fx.Module,
		metrics_fx.Module,
		db_fx.Module,
		memcache_fx.Module,
		account_fx.Module,
		mood_fx.Module,
		journal_fx.Module,
		stats_fx.Module,
		chat_fx.Module,
		controllers_fx.Module,
		http_fx.Module,
	)

	app.Run()
}
