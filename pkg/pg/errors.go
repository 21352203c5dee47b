package pg

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrMissingDatabase          = errors.New("postgres database name is required")
	ErrFailedToOpenDBConnection = errors.New("failed to open db connection")
)

// isDuplicateKeyError detects PostgreSQL unique constraint violations
// (SQLSTATE 23505), the mechanism behind username and email uniqueness.
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
