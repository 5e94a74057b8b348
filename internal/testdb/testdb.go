// Package testdb opens throwaway SQLite databases with the catalog schema for tests.
package testdb

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"larana.GO/model/entity/catalog"
)

// Open returns a temp-file SQLite DB migrated with the catalog tables.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	// Use a temp file DB so multiple connections see the same tables
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	tmpFile := filepath.Join(os.TempDir(), fmt.Sprintf("larana_test_%s_%d.db", name, time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(tmpFile), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
		os.Remove(tmpFile)
	})
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// Migrate creates the catalog tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(catalog.Models()...)
}
