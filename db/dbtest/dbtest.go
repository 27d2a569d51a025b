// Package dbtest opens throwaway sqlite databases with the escapenote schema,
// for tests of the db and handlers packages.
package dbtest

import (
	"testing"
	"time"

	"escapenote-server/db"
	"escapenote-server/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB returns a migrated in-memory database that is closed at the end of the test
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// every connection to :memory: is a different database
	sqlDB, err := database.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(database))
	t.Cleanup(func() {
		_ = db.CloseDBConnection(database)
	})

	return database
}

func AddUser(t *testing.T, database *gorm.DB, nickname string) model.User {
	t.Helper()

	email := nickname + "@escapenote.test"
	user := model.User{
		UserID:   uuid.NewString(),
		Email:    &email,
		Nickname: nickname,
	}
	require.NoError(t, database.Create(&user).Error)
	return user
}

func AddCafe(t *testing.T, database *gorm.DB, cafe model.Cafe) model.Cafe {
	t.Helper()

	if cafe.CafeID == "" {
		cafe.CafeID = uuid.NewString()
	}
	if cafe.Status == "" {
		cafe.Status = model.StatusPublished
	}
	require.NoError(t, database.Create(&cafe).Error)
	return cafe
}

func AddTheme(t *testing.T, database *gorm.DB, theme model.Theme) model.Theme {
	t.Helper()

	if theme.ThemeID == "" {
		theme.ThemeID = uuid.NewString()
	}
	if theme.Status == "" {
		theme.Status = model.StatusPublished
	}
	require.NoError(t, database.Create(&theme).Error)
	return theme
}

// CreatedAt returns distinct creation times, one per index, so that ordering by
// created_at is deterministic
func CreatedAt(index int) time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(index) * time.Hour)
}
