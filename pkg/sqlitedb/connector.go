package sqlitedb

import (
	"context"
	"database/sql"
	"errors"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/userspacekit/userspace/userspace"
)

// Connector opens file-backed SQLite stores.
type Connector struct{}

// New returns a SQLite connector.
func New() *Connector {
	return &Connector{}
}

// Open opens (creating if needed) the database file named by params.Name.
func (c *Connector) Open(ctx context.Context, params userspace.Params) (*sql.DB, error) {
	if params.Name == "" {
		return nil, ErrMissingPath
	}

	dsn := params.Name +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=foreign_keys(1)" +
		"&_pragma=busy_timeout(5000)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Join(ErrFailedToOpenDB, err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Join(ErrConnectionNotAlive, err)
	}
	return db, nil
}

// Schema returns the identity and session DDL in SQLite dialect.
func (c *Connector) Schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS identities (
			userid        INTEGER PRIMARY KEY AUTOINCREMENT,
			username      TEXT NOT NULL UNIQUE,
			email         TEXT NOT NULL UNIQUE,
			salt          TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			extra_data    BLOB
		)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			userid     INTEGER NOT NULL,
			key        TEXT NOT NULL UNIQUE,
			expiration INTEGER NOT NULL,
			extra_data BLOB
		)`,
	}
}

// Rebind is the identity: SQLite accepts `?` placeholders natively.
func (c *Connector) Rebind(query string) string {
	return query
}

// IsUniqueViolation reports SQLite unique or primary key constraint failures.
func (c *Connector) IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.Code() {
	case sqlite3.SQLITE_CONSTRAINT,
		sqlite3.SQLITE_CONSTRAINT_UNIQUE,
		sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	}
	return false
}

var _ userspace.Connector = (*Connector)(nil)
