// Package userspace manages identity records and session tokens backed by a
// relational store.
//
// A UserSpace owns one named store. It creates, finds, modifies and deletes
// identity records (username, email, salted password credential, opaque
// application data), and issues, renews and expires session tokens for them.
// Instances are obtained through a Registry, which guarantees a single live
// UserSpace per store name for the life of the process: repeated Open calls
// with the same name return the identical instance, and concurrent first
// callers are serialized so schema initialization runs once.
//
// Storage is reached through the Connector contract. Two connectors ship with
// this module: pkg/sqlitedb (default, file-backed) and pkg/pg (PostgreSQL).
// All SQL issued by this package uses `?` placeholders and is translated by
// the connector's Rebind.
//
// # Usage
//
//	import (
//	    "github.com/userspacekit/userspace/pkg/sqlitedb"
//	    "github.com/userspacekit/userspace/userspace"
//	)
//
//	reg := userspace.New(sqlitedb.New())
//	us, err := reg.Open(ctx, "accounts.db", userspace.Params{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	uid, err := us.CreateUser(ctx, "ada", "s3cret", "ada@example.com", nil)
//	key, uid, err := us.ValidateUser(ctx, "ada", "s3cret", nil)
//	st, info, err := us.CheckKey(ctx, key)
//
// # Outcomes and errors
//
// Expected outcomes (not found, expired, rejected) are reported through the
// Status result, never as errors; callers branch on them. ErrBadCall covers
// invalid argument combinations and wrapped store failures, and
// ErrOrphanedSession signals a session whose identity row has been removed
// behind this package's back — a consistency violation, never repaired or
// downgraded to a not-found result.
//
// Operations are synchronous and carry no internal retries or timeouts;
// cancellation is whatever the provided context and driver support.
package userspace
