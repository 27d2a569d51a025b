package db

import (
	"errors"
	"fmt"

	"escapenote-server/config"
	"escapenote-server/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg config.Config) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
	}
	if cfg.IsProduction() {
		gormConfig.Logger = logger.Default.LogMode(logger.Warn)
	}

	database, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return database, nil
}

// Migrate creates or updates all tables
func Migrate(database *gorm.DB) error {
	return database.AutoMigrate(
		&model.User{},
		&model.Account{},
		&model.VerificationCode{},
		&model.Cafe{},
		&model.Genre{},
		&model.Theme{},
		&model.CafeReview{},
		&model.ThemeReview{},
		&model.BlogReview{},
		&model.CafeSave{},
		&model.ThemeSave{},
		&model.Faq{},
	)
}

func CloseDBConnection(database *gorm.DB) error {
	sqlDB, err := database.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ResetTestDatabase removes all user generated data. Cafes, themes, genres and
// faq are loaded from a dataset and are kept, only their aggregates are reset.
func ResetTestDatabase(database *gorm.DB, cfg config.Config) error {
	if !cfg.IsTestMode() {
		return errors.New("wrong test mode")
	}

	return database.Transaction(func(tx *gorm.DB) error {
		for _, table := range []string{"cafe_reviews", "theme_reviews", "cafe_saves", "theme_saves", "accounts", "verification_codes", "users"} {
			// DELETE instead of TRUNCATE so that the statement also runs on sqlite
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return err
			}
		}
		if err := tx.Exec("UPDATE cafes SET reviews_count = 0, reviews_rating = 0").Error; err != nil {
			return err
		}
		return tx.Exec("UPDATE themes SET reviews_count = 0, reviews_rating = 0, reviews_level = 0, reviews_fear = 0, reviews_activity = 0").Error
	})
}
