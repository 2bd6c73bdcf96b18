package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // registers the postgres driver
)

// Connections are recycled well under typical LB idle timeouts so the pool
// never hands out a half-dead socket.
const (
	connMaxLifetime = 5 * time.Minute
	connMaxIdleTime = time.Minute
)

// NewPostgresConnection opens a pooled connection to Postgres and verifies it
// with a ping. maxConns bounds both open and idle connections; values below 1
// fall back to a single connection.
func NewPostgresConnection(dsn string, maxConns int) (*sql.DB, error) {
	if maxConns < 1 {
		maxConns = 1
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns)
	db.SetConnMaxLifetime(connMaxLifetime)
	db.SetConnMaxIdleTime(connMaxIdleTime)

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
