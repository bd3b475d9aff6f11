package testutil

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"auditionhub_backend/internal/auth"
	"auditionhub_backend/internal/database"
	"auditionhub_backend/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewTestDB opens a migrated sqlite database in the test's temp dir.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path+"?_foreign_keys=on&_busy_timeout=5000"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// CreateUser inserts a parent with a FREE subscription. The password is "password123".
func CreateUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	if email == "" {
		email = UniqueEmail("parent")
	}
	hash, err := auth.HashPassword("password123")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	user := &models.User{
		Email:        strings.ToLower(email),
		PasswordHash: hash,
		Name:         "Test Parent",
		Role:         models.UserRoleParent,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}

	sub := &models.Subscription{
		UserID:    user.ID,
		Tier:      models.SubscriptionTierFree,
		Status:    models.SubscriptionStatusActive,
		StartDate: time.Now().UTC(),
	}
	if err := db.Create(sub).Error; err != nil {
		t.Fatalf("create subscription: %v", err)
	}
	user.Subscription = sub
	return user
}

// SetTier switches the user's subscription, used to lift FREE limits in tests.
func SetTier(t *testing.T, db *gorm.DB, userID string, tier models.SubscriptionTier) {
	t.Helper()
	err := db.Model(&models.Subscription{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{"tier": tier, "status": models.SubscriptionStatusActive}).Error
	if err != nil {
		t.Fatalf("set tier: %v", err)
	}
}

func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s_%d@test.com", prefix, time.Now().UnixNano())
}

func TimePtr(t time.Time) *time.Time { return &t }

func StrPtr(s string) *string { return &s }
