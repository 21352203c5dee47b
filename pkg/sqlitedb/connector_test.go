package sqlitedb_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/userspacekit/userspace/pkg/sqlitedb"
	"github.com/userspacekit/userspace/userspace"
)

func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("missing path fails", func(t *testing.T) {
		t.Parallel()

		_, err := sqlitedb.New().Open(context.Background(), userspace.Params{})
		assert.ErrorIs(t, err, sqlitedb.ErrMissingPath)
	})

	t.Run("creates the database file on demand", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "fresh.db")
		db, err := sqlitedb.New().Open(context.Background(), userspace.Params{Name: path})
		require.NoError(t, err)
		defer db.Close()

		require.NoError(t, db.Ping())
	})
}

func TestSchemaIdempotence(t *testing.T) {
	t.Parallel()

	c := sqlitedb.New()
	path := filepath.Join(t.TempDir(), "schema.db")
	db, err := c.Open(context.Background(), userspace.Params{Name: path})
	require.NoError(t, err)
	defer db.Close()

	// Running the DDL twice against the same store must be a no-op, not a
	// failure: that is what makes concurrent first construction safe.
	for range 2 {
		for _, stmt := range c.Schema() {
			_, err := db.Exec(stmt)
			require.NoError(t, err)
		}
	}
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	c := sqlitedb.New()
	path := filepath.Join(t.TempDir(), "uniq.db")
	db, err := c.Open(context.Background(), userspace.Params{Name: path})
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE things (name TEXT NOT NULL UNIQUE)`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO things (name) VALUES ('a')`)
	require.NoError(t, err)

	t.Run("duplicate insert is detected", func(t *testing.T) {
		_, err := db.Exec(`INSERT INTO things (name) VALUES ('a')`)
		require.Error(t, err)
		assert.True(t, c.IsUniqueViolation(err))
	})

	t.Run("other errors are not", func(t *testing.T) {
		_, err := db.Exec(`INSERT INTO missing_table (name) VALUES ('a')`)
		require.Error(t, err)
		assert.False(t, c.IsUniqueViolation(err))
	})

	t.Run("nil and foreign errors are not", func(t *testing.T) {
		assert.False(t, c.IsUniqueViolation(nil))
		assert.False(t, c.IsUniqueViolation(errors.New("plain error")))
	})
}

func TestRebindIsIdentity(t *testing.T) {
	t.Parallel()

	const q = `SELECT userid FROM identities WHERE username = ? AND email = ?`
	assert.Equal(t, q, sqlitedb.New().Rebind(q))
}
