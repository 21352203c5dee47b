package userspace_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/userspacekit/userspace/pkg/sqlitedb"
	"github.com/userspacekit/userspace/userspace"
)

// fakeClock is a settable time source for TTL scenarios.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock(start time.Time) *fakeClock {
	return &fakeClock{t: start}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// newSpace opens a fresh store in a temp dir and returns it with the backing
// file path, for tests that need to inspect rows behind the API.
func newSpace(t *testing.T, opts ...userspace.Option) (*userspace.UserSpace, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "users.db")
	reg := userspace.New(sqlitedb.New(), opts...)

	space, err := reg.Open(context.Background(), path, userspace.Params{})
	require.NoError(t, err)
	return space, path
}

// rawDB opens a second connection to the store file, bypassing the API.
func rawDB(t *testing.T, path string) *sql.DB {
	t.Helper()

	db, err := sqlitedb.New().Open(context.Background(), userspace.Params{Name: path})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func countSessions(t *testing.T, path string, userid int64) int {
	t.Helper()

	db := rawDB(t, path)
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sessions WHERE userid = ?`, userid).Scan(&n)
	require.NoError(t, err)
	return n
}
