// Package dbtest opens isolated, migrated in-memory databases for tests.
package dbtest

import (
	"strings"
	"testing"

	"physio-service/pkg/database"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns a migrated SQLite database private to the calling test.
// Foreign keys are left off so tests can plant dangling references.
func Open(tb testing.TB) *gorm.DB {
	tb.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(tb.Name())
	dsn := "file:" + name + "?mode=memory&cache=shared"

	db, err := database.Open(sqlite.Open(dsn), logger.Silent)
	if err != nil {
		tb.Fatalf("open db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		tb.Fatalf("migrate: %v", err)
	}
	tb.Cleanup(func() { _ = database.Close(db) })
	return db
}
