package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

// ConnProvider hands out a live connection for the duration of one store call.
// Release must accept nil and connections that are already released.
type ConnProvider interface {
	Acquire(ctx context.Context) (*sql.Conn, error)
	Release(conn *sql.Conn)
}

var _ ConnProvider = (*DB)(nil)

// Acquire reserves a dedicated connection from the database handle
func (db *DB) Acquire(ctx context.Context) (*sql.Conn, error) {
	if db == nil || db.DB == nil {
		return nil, fmt.Errorf("database not initialized")
	}
	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}
	return conn, nil
}

// Release returns a connection acquired with Acquire. Failures are logged, not returned.
func (db *DB) Release(conn *sql.Conn) {
	if conn == nil {
		return
	}
	if err := conn.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
		log.Warn().Err(err).Msg("Failed to release database connection")
	}
}
