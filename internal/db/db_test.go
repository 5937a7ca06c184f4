package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate(t *testing.T) {
	t.Run("creates tables and is idempotent", func(t *testing.T) {
		// Given: a fresh file database in a nested directory
		dsn := filepath.Join(t.TempDir(), "data", "app.db")
		db, err := Open(dsn)
		require.NoError(t, err)
		defer db.Close()

		// When: migrating twice
		require.NoError(t, Migrate(db))
		require.NoError(t, Migrate(db))

		// Then: each migration is recorded once
		var n int
		require.NoError(t, db.QueryRow(`SELECT COUNT(1) FROM _migrations`).Scan(&n))
		assert.Equal(t, 2, n)

		for _, table := range []string{"users", "player_stats", "daily_results", "games"} {
			var name string
			err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
			assert.NoError(t, err, table)
		}
	})

	t.Run("in-memory", func(t *testing.T) {
		db, err := OpenMigrated(":memory:")
		require.NoError(t, err)
		defer db.Close()

		_, err = db.Exec(`INSERT INTO games (id, player_id, status, started_at) VALUES ('g1','p1','in_progress','now')`)
		assert.NoError(t, err)
	})
}
