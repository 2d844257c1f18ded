package services

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"github.com/workzen-dev/workzen/db"
	"github.com/workzen-dev/workzen/internal/models"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "workzen.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.Migrate(conn))

	return conn
}

func createTestUser(t *testing.T, conn *gorm.DB, email string) models.User {
	t.Helper()

	user := models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "irrelevant",
	}
	require.NoError(t, conn.Create(&user).Error)

	return user
}
