// Package dbtest provides throwaway databases for tests.
package dbtest

import (
	"testing"

	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"

	"github.com/emilythestrangee/blog/backend/internal/database"
)

// NewSQLite returns a migrated in-memory sqlite database. The pool is pinned
// to one connection because every sqlite :memory: connection is its own
// database.
func NewSQLite(t testing.TB) database.Service {
	t.Helper()

	svc, err := database.Open(sqlite.Open(":memory:"), database.PoolConfig{
		MaxIdleConns: 1,
		MaxOpenConns: 1,
	}, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = svc.Close() })

	if err := database.Migrate(svc.GetDB()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return svc
}
