// Package dbtest opens migrated SQLite databases for tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"thewall/internal/config"
	"thewall/internal/database"
)

// Open returns a fresh, fully migrated database in the test's temp dir.
// It is closed when the test finishes.
func Open(t testing.TB) *sqlx.DB {
	t.Helper()

	cfg := config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "thewall_test.db"),
	}
	db, err := database.Open(cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(context.Background(), db, database.MigrateUp, zerolog.Nop()))
	return db
}

// CreateUser inserts a user row directly and returns its id.
func CreateUser(t testing.TB, db *sqlx.DB, email, firstName string) int64 {
	t.Helper()

	var id int64
	err := db.QueryRowx(
		db.Rebind(`INSERT INTO users (email, first_name, password_hash) VALUES (?, ?, ?) RETURNING id`),
		email, firstName, "x",
	).Scan(&id)
	require.NoError(t, err)
	return id
}
