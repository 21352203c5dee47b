package userspace

import (
	"context"
	"database/sql"
)

// Params carries the connection settings handed to a Connector. Which fields
// matter is up to the connector: pkg/sqlitedb treats Name as a file path and
// ignores the rest, pkg/pg assembles a DSN from all of them. Name is always
// overwritten by the Registry with the store name being opened.
type Params struct {
	Name     string
	User     string
	Password string
	Host     string
	Port     int
}

// Connector yields database handles and dialect specifics for one backend.
type Connector interface {
	// Open returns a ready connection to the store described by params.
	Open(ctx context.Context, params Params) (*sql.DB, error)

	// Schema returns idempotent DDL (create-if-not-exists) for the identity
	// and session tables, in execution order.
	Schema() []string

	// Rebind translates `?` placeholders into the backend's notation.
	Rebind(query string) string

	// IsUniqueViolation reports whether err is a unique-constraint failure.
	IsUniqueViolation(err error) bool
}
