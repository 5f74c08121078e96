package infra

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"mindcare/internal/config"
	"mindcare/internal/models/db_models"
)

// InitPostgresql opens the pool and migrates the schema. Driver errors are
// translated so duplicate keys surface as gorm.ErrDuplicatedKey.
func InitPostgresql(cfg config.Config) (*gorm.DB, error) {
	logLevel := logger.Warn
	if cfg.Env == "production" {
		logLevel = logger.Error
	}

	db, err := gorm.Open(postgres.Open(cfg.PostgresURL), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&db_models.Account{},
		&db_models.MoodEntry{},
		&db_models.JournalEntry{},
	); err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}
	return nil
}

func ClosePostgresql(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("error getting database instance", "error", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		slog.Error("error closing database connection", "error", err)
	} else {
		slog.Info("PostgreSQL database connection closed successfully")
	}
}
