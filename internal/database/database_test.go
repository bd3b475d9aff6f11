package database

import (
	"path/filepath"
	"testing"

	"auditionhub_backend/internal/config"
	"auditionhub_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAndMigrate_SQLite(t *testing.T) {
	cfg := config.Default()
	cfg.Database.DSN = filepath.Join(t.TempDir(), "hub.db")

	db, err := Open(cfg)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	require.NoError(t, Migrate(db))
	assert.True(t, db.Migrator().HasTable(&models.Audition{}))
	assert.True(t, db.Migrator().HasTable(&models.EmailLog{}))

	var fk int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&fk).Error)
	assert.Equal(t, 1, fk)
}

func TestOpen_UnknownDriver(t *testing.T) {
	cfg := config.Default()
	cfg.Database.Driver = "oracle"

	_, err := Open(cfg)
	assert.ErrorContains(t, err, "unsupported database driver")
}
