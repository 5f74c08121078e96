package stats_fx

import (
	"go.uber.org/fx"

	"mindcare/internal/config"
	"mindcare/internal/repositories"
	"mindcare/internal/services"
)

var Module = fx.Provide(
	provideStatsService,
)

func provideStatsService(
	moodRepo repositories.MoodRepository,
	journalRepo repositories.JournalRepository,
	cfg config.Config,
) services.StatsServiceInterface {
	insights := services.DefaultInsightConfig()
	insights.TrendThreshold = cfg.InsightTrendThreshold
	return services.NewStatsService(moodRepo, journalRepo, insights)
}
