package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// DB wraps the sql.DB connection
type DB struct {
	Conn   *sql.DB
	Driver string
}

// New opens a connection with the given driver ("sqlite3", "pgx" or "postgres")
// and bootstraps the schema
func New(ctx context.Context, driver, databaseURL string, logger *zap.Logger) (*DB, error) {
	conn, err := sql.Open(driver, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if driver == "sqlite3" {
		// Every sqlite connection to :memory: is a separate database.
		conn.SetMaxOpenConns(1)
	} else {
		conn.SetConnMaxIdleTime(5 * time.Minute)
		conn.SetConnMaxLifetime(30 * time.Minute)
		conn.SetMaxIdleConns(10)
		conn.SetMaxOpenConns(20)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{Conn: conn, Driver: driver}

	if err := db.runMigrations(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("database initialized", zap.String("driver", driver))
	return db, nil
}

// runMigrations creates the tables the dashboard reads from. The schema is
// written in the subset of SQL shared by sqlite and postgres.
func (db *DB) runMigrations(ctx context.Context) error {
	schema := `
CREATE TABLE IF NOT EXISTS therapists (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS bookings (
    id TEXT PRIMARY KEY,
    invitee_name TEXT NOT NULL DEFAULT '',
    invitee_email TEXT,
    invitee_phone TEXT,
    booking_status TEXT NOT NULL DEFAULT 'confirmed',
    booking_invitee_time TEXT NOT NULL DEFAULT '',
    session_type TEXT NOT NULL DEFAULT '',
    therapist_name TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS booking_requests (
    id TEXT PRIMARY KEY,
    invitee_name TEXT NOT NULL DEFAULT '',
    invitee_email TEXT,
    invitee_phone TEXT,
    session_type TEXT NOT NULL DEFAULT '',
    therapist_name TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL DEFAULT 'pending',
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS session_notes (
    id TEXT PRIMARY KEY,
    booking_id TEXT NOT NULL REFERENCES bookings(id),
    body TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_bookings_email ON bookings(invitee_email);
CREATE INDEX IF NOT EXISTS idx_bookings_phone ON bookings(invitee_phone);
CREATE INDEX IF NOT EXISTS idx_session_notes_booking ON session_notes(booking_id);
`
	if _, err := db.Conn.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// Ping checks the connection is alive
func (db *DB) Ping(ctx context.Context) error {
	return db.Conn.PingContext(ctx)
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.Conn.Close()
}
