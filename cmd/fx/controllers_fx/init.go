package controllers_fx

import (
	"go.uber.org/fx"

	"mindcare/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewMoodController),
	fx.Provide(controllers.NewJournalController),
	fx.Provide(controllers.NewChatController))
