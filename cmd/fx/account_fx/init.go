package account_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"mindcare/internal/config"
	"mindcare/internal/repositories"
	"mindcare/internal/services"
	mem "mindcare/pkg/memcache"
	"mindcare/pkg/metrics"
	"mindcare/pkg/utils"
)

var Module = fx.Provide(
	provideAccountService, provideAccountRepo, provideJWTManager)

func provideAccountRepo(db *gorm.DB) repositories.AccountRepository {
	return repositories.NewAccountRepository(db)
}

func provideJWTManager(cfg config.Config) *utils.JWTManager {
	return utils.NewJWTManager(cfg.JWTSecret, cfg.AccessTokenTTL)
}

func provideAccountService(
	accountRepo repositories.AccountRepository,
	jwt *utils.JWTManager,
	refreshTokens mem.RefreshTokenStore,
	cfg config.Config,
	recorder metrics.Recorder,
) services.AccountServiceInterface {
	return services.NewAccountService(accountRepo, jwt, refreshTokens, cfg.RefreshTokenTTL, recorder)
}
