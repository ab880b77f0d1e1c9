package service

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nutritrack/backend/internal/models"
	"github.com/nutritrack/backend/internal/testhelpers"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	return testhelpers.SetupSQLiteDatabase(t)
}

func createTestUser(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()
	user := models.User{
		Name:         "Test User",
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "not-a-real-hash",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user.ID
}
