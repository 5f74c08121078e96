package mood_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"mindcare/internal/repositories"
	"mindcare/internal/services"
)

var Module = fx.Provide(
	provideMoodRepo, provideMoodService)

func provideMoodRepo(db *gorm.DB) repositories.MoodRepository {
	return repositories.NewMoodRepository(db)
}

func provideMoodService(moodRepo repositories.MoodRepository) services.MoodServiceInterface {
	return services.NewMoodService(moodRepo)
}
