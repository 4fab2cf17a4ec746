package database_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thewall/internal/config"
	"thewall/internal/database"
	"thewall/internal/database/dbtest"
)

func countUsers(t *testing.T, db *sqlx.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.Get(&n, `SELECT COUNT(*) FROM users`))
	return n
}

func TestTransact_CommitsOnSuccess(t *testing.T) {
	db := dbtest.Open(t)

	err := database.Transact(context.Background(), db, func(tx *sqlx.Tx) error {
		_, err := tx.Exec(`INSERT INTO users (email, first_name, password_hash) VALUES ('a@x.io', 'A', 'h')`)
		return err
	})

	require.NoError(t, err)
	assert.Equal(t, 1, countUsers(t, db))
}

func TestTransact_RollsBackOnError(t *testing.T) {
	db := dbtest.Open(t)
	boom := errors.New("boom")

	err := database.Transact(context.Background(), db, func(tx *sqlx.Tx) error {
		if _, err := tx.Exec(`INSERT INTO users (email, first_name, password_hash) VALUES ('a@x.io', 'A', 'h')`); err != nil {
			return err
		}
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, countUsers(t, db))
}

func TestTransact_RollsBackOnPanic(t *testing.T) {
	db := dbtest.Open(t)

	assert.Panics(t, func() {
		_ = database.Transact(context.Background(), db, func(tx *sqlx.Tx) error {
			_, _ = tx.Exec(`INSERT INTO users (email, first_name, password_hash) VALUES ('a@x.io', 'A', 'h')`)
			panic("kaboom")
		})
	})

	// The single pooled connection must have been released.
	assert.Equal(t, 0, countUsers(t, db))
}

func TestConstraintClassification(t *testing.T) {
	db := dbtest.Open(t)
	dbtest.CreateUser(t, db, "dup@x.io", "Dup")

	_, err := db.Exec(`INSERT INTO users (email, first_name, password_hash) VALUES ('dup@x.io', 'Again', 'h')`)
	require.Error(t, err)
	assert.True(t, database.IsUniqueViolation(err))
	assert.False(t, database.IsForeignKeyViolation(err))

	_, err = db.Exec(`INSERT INTO posts (user_id, content) VALUES (999, 'orphan')`)
	require.Error(t, err)
	assert.True(t, database.IsForeignKeyViolation(err))
	assert.False(t, database.IsUniqueViolation(err))

	assert.False(t, database.IsForeignKeyViolation(errors.New("plain")))
}

func TestMigrate_DownAndVersion(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()

	version, err := database.SchemaVersion(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	require.NoError(t, database.Migrate(ctx, db, database.MigrateStatus, zerolog.Nop()))
	require.NoError(t, database.Migrate(ctx, db, database.MigrateDown, zerolog.Nop()))

	version, err = database.SchemaVersion(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(0), version)

	assert.Error(t, database.Migrate(ctx, db, "sideways", zerolog.Nop()))
}

func TestOpen_UnreachablePath(t *testing.T) {
	cfg := config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "missing", "dir", "db.sqlite"),
	}
	_, err := database.Open(cfg, zerolog.Nop())
	assert.Error(t, err)
}
