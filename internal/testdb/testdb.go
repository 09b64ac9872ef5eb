// AngelaMos | 2026
// testdb.go

// Package testdb opens migrated in-memory SQLite databases for tests.
package testdb

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/mindtrack/internal/core"
	"github.com/carterperez-dev/mindtrack/internal/migration"
)

// New returns a fresh, fully migrated database that is closed when the
// test ends.
func New(tb testing.TB) *sqlx.DB {
	tb.Helper()

	ctx := context.Background()

	db, err := core.OpenSQLite(ctx, ":memory:")
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	tb.Cleanup(func() { _ = db.Close() })

	runner, err := migration.ForDriver(db.DB, nil)
	if err != nil {
		tb.Fatalf("migration runner: %v", err)
	}

	if _, err := runner.Apply(ctx); err != nil {
		tb.Fatalf("apply migrations: %v", err)
	}

	return db.DB
}

// SeedUser inserts a bare user row and returns its id.
func SeedUser(tb testing.TB, db *sqlx.DB, id, email string) string {
	tb.Helper()

	_, err := db.Exec(
		`INSERT INTO users (id, email, password_hash, role, created_at, updated_at)
		 VALUES (?, ?, 'x', 'user', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
		id, email,
	)
	if err != nil {
		tb.Fatalf("seed user: %v", err)
	}

	return id
}
