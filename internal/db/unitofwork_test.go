package db_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/alexanderramin/pomo/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openUoW(t *testing.T) (*sql.DB, *db.SQLiteUnitOfWork) {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database, db.NewSQLiteUnitOfWork(database)
}

func putSetting(ctx context.Context, tx db.DBTX, key, value string) error {
	_, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO settings (key, value, updated_at) VALUES (?, ?, 'now')`, key, value)
	return err
}

func settingExists(t *testing.T, database *sql.DB, key string) bool {
	t.Helper()
	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM settings WHERE key = ?`, key).Scan(&n))
	return n > 0
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	database, uow := openUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := putSetting(ctx, tx, "focus_minutes", "25"); err != nil {
			return err
		}
		return putSetting(ctx, tx, "short_break_minutes", "5")
	})
	require.NoError(t, err)

	assert.True(t, settingExists(t, database, "focus_minutes"))
	assert.True(t, settingExists(t, database, "short_break_minutes"))
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	database, uow := openUoW(t)
	failure := errors.New("deliberate failure")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := putSetting(ctx, tx, "focus_minutes", "25"); err != nil {
			return err
		}
		return failure
	})
	require.ErrorIs(t, err, failure)

	assert.False(t, settingExists(t, database, "focus_minutes"), "row should not exist after rollback")
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	database, uow := openUoW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = putSetting(ctx, tx, "long_break_minutes", "15")
			panic("boom")
		})
	})

	assert.False(t, settingExists(t, database, "long_break_minutes"), "row should not exist after panic rollback")
}
