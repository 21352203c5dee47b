package userspace

import (
	"context"
	"database/sql"
	"fmt"
)

// ensureSchema runs the connector's create-if-not-exists DDL. Safe against a
// store that already has the tables and against concurrent invocation; any
// failure is the connector's, propagated unchanged.
func ensureSchema(ctx context.Context, db *sql.DB, conn Connector) error {
	for _, stmt := range conn.Schema() {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
