package pg

import (
	"context"
	"database/sql"
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver "pgx"

	"github.com/userspacekit/userspace/userspace"
)

// Connector opens PostgreSQL-backed stores.
type Connector struct {
	cfg Config
}

// New returns a PostgreSQL connector. A zero Config is usable; fields left
// at zero fall back to the documented defaults.
func New(cfg Config) *Connector {
	return &Connector{cfg: cfg.normalized()}
}

// Open connects to the database named by params.Name, retrying with linear
// backoff. Each attempt is verified with a ping to catch authentication and
// permission failures, not just refused sockets.
func (c *Connector) Open(ctx context.Context, params userspace.Params) (*sql.DB, error) {
	dsn, err := buildDSN(params, c.cfg.SSLMode)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for i := range c.cfg.RetryAttempts {
		db, err := sql.Open("pgx", dsn)
		if err != nil {
			lastErr = err
			time.Sleep(time.Duration(i+1) * c.cfg.RetryInterval)
			continue
		}

		if err := db.PingContext(ctx); err != nil {
			db.Close()
			lastErr = err
			time.Sleep(time.Duration(i+1) * c.cfg.RetryInterval)
			continue
		}

		db.SetMaxOpenConns(c.cfg.MaxOpenConns)
		db.SetMaxIdleConns(c.cfg.MaxIdleConns)
		db.SetConnMaxIdleTime(c.cfg.ConnMaxIdleTime)
		db.SetConnMaxLifetime(c.cfg.ConnMaxLifetime)
		return db, nil
	}

	if lastErr != nil {
		return nil, errors.Join(ErrFailedToOpenDBConnection, lastErr)
	}
	return nil, ErrFailedToOpenDBConnection
}

// Schema returns the identity and session DDL in PostgreSQL dialect.
func (c *Connector) Schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS identities (
			userid        BIGSERIAL PRIMARY KEY,
			username      TEXT NOT NULL UNIQUE,
			email         TEXT NOT NULL UNIQUE,
			salt          TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			extra_data    BYTEA
		)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			userid     BIGINT NOT NULL,
			key        TEXT NOT NULL UNIQUE,
			expiration BIGINT NOT NULL,
			extra_data BYTEA
		)`,
	}
}

// Rebind rewrites `?` placeholders into PostgreSQL's $1..$n notation.
func (c *Connector) Rebind(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// IsUniqueViolation reports PostgreSQL unique constraint failures.
func (c *Connector) IsUniqueViolation(err error) bool {
	return isDuplicateKeyError(err)
}

// buildDSN assembles a postgres:// URL from the store parameters. Absent
// fields are left out so libpq-style defaults (local socket, current OS
// user) apply.
func buildDSN(params userspace.Params, sslMode string) (string, error) {
	if params.Name == "" {
		return "", ErrMissingDatabase
	}

	u := url.URL{
		Scheme: "postgres",
		Path:   "/" + params.Name,
	}

	if params.User != "" {
		if params.Password != "" {
			u.User = url.UserPassword(params.User, params.Password)
		} else {
			u.User = url.User(params.User)
		}
	}

	host := params.Host
	if host == "" {
		host = "localhost"
	}
	if params.Port > 0 {
		host += ":" + strconv.Itoa(params.Port)
	}
	u.Host = host

	q := url.Values{}
	if sslMode != "" {
		q.Set("sslmode", sslMode)
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}

var _ userspace.Connector = (*Connector)(nil)
