package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	poolMaxConns          = 5
	poolHealthCheckPeriod = time.Minute
	poolMaxConnIdleTime   = 5 * time.Minute
	dbPingTimeout         = 5 * time.Second

	errFailedParseDatabaseConfigFmt = "failed to parse database config: %w"
	errFailedCreatePoolFmt          = "failed to create connection pool: %w"
	errFailedPingDatabaseFmt        = "failed to ping database: %w"
	errFailedEnsureSchemaFmt        = "failed to create audit schema: %w"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS admin_audit_events (
	id            UUID PRIMARY KEY,
	event_type    TEXT NOT NULL,
	actor         TEXT NOT NULL,
	session_id    TEXT NOT NULL,
	resource_type TEXT NOT NULL,
	resource_id   TEXT NOT NULL,
	action        TEXT NOT NULL,
	status        TEXT NOT NULL,
	ip_address    TEXT NOT NULL,
	user_agent    TEXT NOT NULL,
	request_id    TEXT NOT NULL,
	metadata      JSONB,
	error_message TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS admin_audit_events_created_at_idx ON admin_audit_events (created_at DESC);
`

// Connect opens a small pool for the audit trail and makes sure its table
// exists.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf(errFailedParseDatabaseConfigFmt, err)
	}
	poolConfig.MaxConns = poolMaxConns
	poolConfig.HealthCheckPeriod = poolHealthCheckPeriod
	poolConfig.MaxConnIdleTime = poolMaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf(errFailedCreatePoolFmt, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf(errFailedPingDatabaseFmt, err)
	}

	if _, err := pool.Exec(pingCtx, schemaSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf(errFailedEnsureSchemaFmt, err)
	}

	return pool, nil
}
