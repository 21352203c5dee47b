// Package sqlitedb implements the userspace Connector contract over SQLite
// using the pure-Go modernc.org/sqlite driver.
//
// The store name is used as the database file path; user, password, host and
// port parameters are ignored. Connections are opened with WAL journaling,
// foreign keys enabled and a busy timeout so concurrent callers queue on
// writes instead of failing.
//
// This is the default backend for local and test use: no server required.
package sqlitedb
