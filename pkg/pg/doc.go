// Package pg implements the userspace Connector contract over PostgreSQL
// using the pgx/v5 stdlib driver.
//
// The connection DSN is assembled from the store parameters: the store name
// becomes the database name, with optional user, password, host and port.
// Connecting retries with linear backoff so process startup survives a
// database that is still coming up.
//
// # Usage
//
//	var cfg pg.Config
//	if err := env.Parse(&cfg); err != nil {
//	    log.Fatal(err)
//	}
//
//	reg := userspace.New(pg.New(cfg))
//	us, err := reg.Open(ctx, "accounts", userspace.Params{
//	    User: "app", Password: "secret", Host: "db.internal",
//	})
//
// Unique-constraint violations are detected from `*pgconn.PgError`
// (SQLSTATE 23505) so the core can classify duplicate usernames and emails
// without importing driver types.
package pg
