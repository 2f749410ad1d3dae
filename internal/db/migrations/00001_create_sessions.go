package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateSessions, downCreateSessions)
}

// sessionsDDL matches the schema each scs store adapter expects.
var sessionsDDL = map[string]string{
	"sqlite3": `CREATE TABLE IF NOT EXISTS sessions (
    token  TEXT PRIMARY KEY,
    data   BLOB NOT NULL,
    expiry REAL NOT NULL
)`,
	"postgres": `CREATE TABLE IF NOT EXISTS sessions (
    token  TEXT PRIMARY KEY,
    data   BYTEA NOT NULL,
    expiry TIMESTAMPTZ NOT NULL
)`,
	"mysql": `CREATE TABLE IF NOT EXISTS sessions (
    token  VARCHAR(43) PRIMARY KEY,
    data   BLOB NOT NULL,
    expiry TIMESTAMP(6) NOT NULL
)`,
}

func upCreateSessions(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, byDialect(sessionsDDL)); err != nil {
		return fmt.Errorf("create sessions table: %w", err)
	}
	// MySQL has no CREATE INDEX IF NOT EXISTS.
	idx := byDialect(map[string]string{
		"sqlite3":  `CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions (expiry)`,
		"postgres": `CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions (expiry)`,
		"mysql":    `CREATE INDEX sessions_expiry_idx ON sessions (expiry)`,
	})
	if _, err := tx.ExecContext(ctx, idx); err != nil {
		return fmt.Errorf("create sessions expiry index: %w", err)
	}
	return nil
}

func downCreateSessions(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS sessions`)
	return err
}
