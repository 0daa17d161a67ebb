// Package sqlite implements the persistence repositories on top of SQLite
// using the CGO-free modernc.org driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/example/slot-scheduler/internal/persistence"
	_ "modernc.org/sqlite"
)

// DB wraps the shared database handle passed to the repositories.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database at the given DSN.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", dsn, err)
	}

	// SQLite serializes writers anyway; a single connection avoids
	// SQLITE_BUSY churn and keeps in-memory databases coherent.
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enable foreign keys: %w", err)
	}

	return &DB{conn: conn}, nil
}

// Close releases the underlying database handle.
func (db *DB) Close() error {
	if db == nil || db.conn == nil {
		return nil
	}
	return db.conn.Close()
}

// Ping verifies the database connection.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		time_zone     TEXT NOT NULL DEFAULT '',
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS availabilities (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL UNIQUE REFERENCES users(id),
		start_time TEXT NOT NULL,
		end_time   TEXT NOT NULL,
		days       TEXT NOT NULL,
		duration   INTEGER NOT NULL DEFAULT 30,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS meetings (
		id              TEXT PRIMARY KEY,
		title           TEXT NOT NULL,
		description     TEXT NOT NULL DEFAULT '',
		date            TEXT NOT NULL,
		time            TEXT NOT NULL,
		organizer_id    TEXT NOT NULL REFERENCES users(id),
		requester_name  TEXT NOT NULL DEFAULT '',
		requester_email TEXT NOT NULL DEFAULT '',
		notes           TEXT NOT NULL DEFAULT '',
		status          TEXT NOT NULL DEFAULT 'proposed',
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,
	// The unique slot index is the authoritative double-booking guard: two
	// concurrent bookings can both pass the read check, but only one insert
	// survives.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_meetings_slot
		ON meetings (organizer_id, date, time)`,
	`CREATE TABLE IF NOT EXISTS meeting_participants (
		meeting_id TEXT NOT NULL REFERENCES meetings(id) ON DELETE CASCADE,
		user_id    TEXT NOT NULL,
		PRIMARY KEY (meeting_id, user_id)
	)`,
}

// Migrate creates the schema. Every statement is idempotent, so Migrate is
// safe to run on every startup.
func (db *DB) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("sqlite: apply schema: %w", err)
		}
	}
	return nil
}

// mapError translates driver errors into persistence sentinels.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return persistence.ErrNotFound
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "constraint failed: UNIQUE") {
		return persistence.ErrDuplicate
	}
	return err
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTimestamp(value string) (time.Time, error) {
	ts, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("sqlite: parse timestamp %q: %w", value, err)
	}
	return ts, nil
}

func joinDays(days []string) string {
	return strings.Join(days, ",")
}

func splitDays(value string) []string {
	if value == "" {
		return nil
	}
	return strings.Split(value, ",")
}
