package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"mentorlink-backend/models/connect"
	"mentorlink-backend/models/notify"
	"mentorlink-backend/models/sessions"
	"mentorlink-backend/models/users"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// an in-memory sqlite database exists per connection; keep the pool at one
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&users.User{},
		&users.Skill{},
		&connect.Connection{},
		&sessions.Session{},
		&notify.Notification{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, name, role string) *users.User {
	t.Helper()
	user := &users.User{
		Name:     name,
		Email:    name + "@example.com",
		Password: "secret",
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func inboxOf(t *testing.T, db *gorm.DB, userID uint) []notify.Notification {
	t.Helper()
	var entries []notify.Notification
	require.NoError(t, db.Where("user_id = ?", userID).Order("id").Find(&entries).Error)
	return entries
}

func inboxOfType(t *testing.T, db *gorm.DB, userID uint, kind string) []notify.Notification {
	t.Helper()
	var entries []notify.Notification
	require.NoError(t, db.Where("user_id = ? AND type = ?", userID, kind).Order("id").Find(&entries).Error)
	return entries
}
