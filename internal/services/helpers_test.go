package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/homebase/internal/database"
	"github.com/yukikurage/homebase/internal/models"
	"github.com/yukikurage/homebase/internal/storage"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	database.SetDB(db)
	require.NoError(t, database.Migrate(zap.NewNop()))

	return db
}

func setupTestUploader(t *testing.T) storage.FileUploader {
	t.Helper()
	uploader, err := storage.NewLocalUploader(t.TempDir(), "/media")
	require.NoError(t, err)
	return uploader
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		Nickname:     username,
		PasswordHash: "hashedpassword",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func boolPtr(v bool) *bool { return &v }
