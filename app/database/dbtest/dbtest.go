// Package dbtest opens throwaway SQLite databases with the catalog schema.
package dbtest

import (
	"path/filepath"
	"testing"

	"github.com/mytheresa/product-catalog/app/database"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// DB returns a migrated database stored in the test's temp dir. It is closed
// when the test finishes.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	dsn := filepath.Join(tb.TempDir(), "catalog.db") + "?_foreign_keys=1"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		tb.Fatalf("open test db: %v", err)
	}
	tb.Cleanup(func() {
		_ = database.Close(db)
	})

	if err := database.Migrate(db); err != nil {
		tb.Fatalf("migrate test db: %v", err)
	}
	return db
}
