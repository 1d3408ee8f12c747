package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/pomo/internal/db"
	"github.com/stretchr/testify/require"
)

// NewTestDB opens a private in-memory settings database, migrated and
// closed when the test ends.
func NewTestDB(t testing.TB) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err, "opening test database")
	t.Cleanup(func() { _ = database.Close() })
	return database
}

// NewTestUoW creates a UnitOfWork backed by the given test database.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}

// SeedSettings writes raw stored values, bypassing the repository, so
// tests can plant values the application itself would never write.
func SeedSettings(t testing.TB, database *sql.DB, values map[string]string) {
	t.Helper()
	for key, value := range values {
		_, err := database.Exec(
			`INSERT OR REPLACE INTO settings (key, value, updated_at) VALUES (?, ?, '2026-01-01T00:00:00Z')`,
			key, value)
		require.NoError(t, err, "seeding %s", key)
	}
}
