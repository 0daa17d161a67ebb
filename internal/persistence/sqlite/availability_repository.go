package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/example/slot-scheduler/internal/persistence"
)

// AvailabilityRepository implements persistence.AvailabilityRepository on SQLite.
type AvailabilityRepository struct {
	db *DB
}

// NewAvailabilityRepository wires an availability repository onto the shared handle.
func NewAvailabilityRepository(db *DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

// UpsertAvailability replaces or creates the owner's single availability
// record and returns the stored row.
func (r *AvailabilityRepository) UpsertAvailability(ctx context.Context, availability persistence.Availability) (persistence.Availability, error) {
	now := time.Now().UTC()
	if availability.CreatedAt.IsZero() {
		availability.CreatedAt = now
	}
	availability.UpdatedAt = now

	_, err := r.db.conn.ExecContext(ctx, `
		INSERT INTO availabilities (id, user_id, start_time, end_time, days, duration, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			start_time = excluded.start_time,
			end_time   = excluded.end_time,
			days       = excluded.days,
			duration   = excluded.duration,
			updated_at = excluded.updated_at`,
		availability.ID,
		availability.UserID,
		availability.StartTime,
		availability.EndTime,
		joinDays(availability.Days),
		availability.Duration,
		formatTimestamp(availability.CreatedAt),
		formatTimestamp(availability.UpdatedAt),
	)
	if err != nil {
		return persistence.Availability{}, mapError(err)
	}

	return r.GetAvailabilityByOwner(ctx, availability.UserID)
}

// GetAvailabilityByOwner retrieves the owner's availability record.
func (r *AvailabilityRepository) GetAvailabilityByOwner(ctx context.Context, userID string) (persistence.Availability, error) {
	return r.scanAvailability(r.db.conn.QueryRowContext(ctx, `
		SELECT id, user_id, start_time, end_time, days, duration, created_at, updated_at
		FROM availabilities WHERE user_id = ?`, userID))
}

// GetAvailabilityForDay returns the first availability record active on the
// given weekday, optionally constrained to one owner. Day matching happens
// against the comma separated canonical names stored in the days column.
func (r *AvailabilityRepository) GetAvailabilityForDay(ctx context.Context, userID, day string) (persistence.Availability, error) {
	query := `
		SELECT id, user_id, start_time, end_time, days, duration, created_at, updated_at
		FROM availabilities
		WHERE (',' || days || ',') LIKE ('%,' || ? || ',%')`
	args := []any{day}
	if userID != "" {
		query += ` AND user_id = ?`
		args = append(args, userID)
	}
	query += ` ORDER BY created_at ASC LIMIT 1`

	return r.scanAvailability(r.db.conn.QueryRowContext(ctx, query, args...))
}

func (r *AvailabilityRepository) scanAvailability(row *sql.Row) (persistence.Availability, error) {
	var availability persistence.Availability
	var days, createdAt, updatedAt string

	err := row.Scan(
		&availability.ID,
		&availability.UserID,
		&availability.StartTime,
		&availability.EndTime,
		&days,
		&availability.Duration,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.Availability{}, persistence.ErrNotFound
		}
		return persistence.Availability{}, mapError(err)
	}

	availability.Days = splitDays(days)
	if availability.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return persistence.Availability{}, err
	}
	if availability.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return persistence.Availability{}, err
	}
	return availability, nil
}
