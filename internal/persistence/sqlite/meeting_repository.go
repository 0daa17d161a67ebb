package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/slot-scheduler/internal/persistence"
)

// MeetingRepository implements persistence.MeetingRepository on SQLite.
type MeetingRepository struct {
	db *DB
}

// NewMeetingRepository wires a meeting repository onto the shared handle.
func NewMeetingRepository(db *DB) *MeetingRepository {
	return &MeetingRepository{db: db}
}

const meetingColumns = `id, title, description, date, time, organizer_id,
	requester_name, requester_email, notes, status, created_at, updated_at`

// CreateMeeting inserts a meeting and its participant list. An occupied
// (organizer, date, time) slot surfaces as ErrDuplicate via the unique index.
func (r *MeetingRepository) CreateMeeting(ctx context.Context, meeting persistence.Meeting) error {
	now := time.Now().UTC()
	if meeting.CreatedAt.IsZero() {
		meeting.CreatedAt = now
	}
	if meeting.UpdatedAt.IsZero() {
		meeting.UpdatedAt = now
	}

	tx, err := r.db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin transaction: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO meetings (`+meetingColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		meeting.ID,
		meeting.Title,
		meeting.Description,
		meeting.Date,
		meeting.Time,
		meeting.OrganizerID,
		meeting.RequesterName,
		meeting.RequesterEmail,
		meeting.Notes,
		meeting.Status,
		formatTimestamp(meeting.CreatedAt),
		formatTimestamp(meeting.UpdatedAt),
	)
	if err != nil {
		tx.Rollback()
		return mapError(err)
	}

	for _, participantID := range meeting.ParticipantIDs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO meeting_participants (meeting_id, user_id) VALUES (?, ?)`,
			meeting.ID, participantID); err != nil {
			tx.Rollback()
			return mapError(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit meeting: %w", err)
	}
	return nil
}

// GetMeeting retrieves a meeting by ID.
func (r *MeetingRepository) GetMeeting(ctx context.Context, id string) (persistence.Meeting, error) {
	meeting, err := r.scanMeeting(r.db.conn.QueryRowContext(ctx, `
		SELECT `+meetingColumns+` FROM meetings WHERE id = ?`, id))
	if err != nil {
		return persistence.Meeting{}, err
	}
	return r.attachParticipants(ctx, meeting)
}

// GetMeetingBySlot resolves a meeting by its compound slot key.
func (r *MeetingRepository) GetMeetingBySlot(ctx context.Context, organizerID, date, timeOfDay string) (persistence.Meeting, error) {
	meeting, err := r.scanMeeting(r.db.conn.QueryRowContext(ctx, `
		SELECT `+meetingColumns+` FROM meetings
		WHERE organizer_id = ? AND date = ? AND time = ?`, organizerID, date, timeOfDay))
	if err != nil {
		return persistence.Meeting{}, err
	}
	return r.attachParticipants(ctx, meeting)
}

// ListMeetings returns all meetings ordered by date then time.
func (r *MeetingRepository) ListMeetings(ctx context.Context) ([]persistence.Meeting, error) {
	rows, err := r.db.conn.QueryContext(ctx, `
		SELECT `+meetingColumns+` FROM meetings ORDER BY date ASC, time ASC, id ASC`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var meetings []persistence.Meeting
	for rows.Next() {
		meeting, err := r.scanMeetingRow(rows)
		if err != nil {
			return nil, err
		}
		meetings = append(meetings, meeting)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}

	for i := range meetings {
		if meetings[i], err = r.attachParticipants(ctx, meetings[i]); err != nil {
			return nil, err
		}
	}
	return meetings, nil
}

// UpdateMeeting rewrites the mutable fields of an existing meeting.
func (r *MeetingRepository) UpdateMeeting(ctx context.Context, meeting persistence.Meeting) error {
	result, err := r.db.conn.ExecContext(ctx, `
		UPDATE meetings
		SET title = ?, description = ?, date = ?, time = ?, notes = ?, status = ?, updated_at = ?
		WHERE id = ?`,
		meeting.Title,
		meeting.Description,
		meeting.Date,
		meeting.Time,
		meeting.Notes,
		meeting.Status,
		formatTimestamp(time.Now().UTC()),
		meeting.ID,
	)
	if err != nil {
		return mapError(err)
	}
	return requireAffected(result)
}

// UpdateMeetingStatus transitions the meeting status and returns the updated
// record. There is deliberately no guard against re-transitioning an already
// accepted or declined meeting; storage applies whatever status it is given.
func (r *MeetingRepository) UpdateMeetingStatus(ctx context.Context, id, status string) (persistence.Meeting, error) {
	result, err := r.db.conn.ExecContext(ctx, `
		UPDATE meetings SET status = ?, updated_at = ? WHERE id = ?`,
		status, formatTimestamp(time.Now().UTC()), id)
	if err != nil {
		return persistence.Meeting{}, mapError(err)
	}
	if err := requireAffected(result); err != nil {
		return persistence.Meeting{}, err
	}
	return r.GetMeeting(ctx, id)
}

// DeleteMeeting removes a meeting and, through the cascade, its participants.
func (r *MeetingRepository) DeleteMeeting(ctx context.Context, id string) error {
	result, err := r.db.conn.ExecContext(ctx, `DELETE FROM meetings WHERE id = ?`, id)
	if err != nil {
		return mapError(err)
	}
	return requireAffected(result)
}

func (r *MeetingRepository) attachParticipants(ctx context.Context, meeting persistence.Meeting) (persistence.Meeting, error) {
	rows, err := r.db.conn.QueryContext(ctx, `
		SELECT user_id FROM meeting_participants WHERE meeting_id = ? ORDER BY user_id ASC`,
		meeting.ID)
	if err != nil {
		return persistence.Meeting{}, mapError(err)
	}
	defer rows.Close()

	for rows.Next() {
		var participantID string
		if err := rows.Scan(&participantID); err != nil {
			return persistence.Meeting{}, mapError(err)
		}
		meeting.ParticipantIDs = append(meeting.ParticipantIDs, participantID)
	}
	if err := rows.Err(); err != nil {
		return persistence.Meeting{}, mapError(err)
	}
	return meeting, nil
}

type scannable interface {
	Scan(dest ...any) error
}

func (r *MeetingRepository) scanMeeting(row *sql.Row) (persistence.Meeting, error) {
	meeting, err := scanMeetingFrom(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.Meeting{}, persistence.ErrNotFound
		}
		return persistence.Meeting{}, err
	}
	return meeting, nil
}

func (r *MeetingRepository) scanMeetingRow(rows *sql.Rows) (persistence.Meeting, error) {
	return scanMeetingFrom(rows)
}

func scanMeetingFrom(src scannable) (persistence.Meeting, error) {
	var meeting persistence.Meeting
	var createdAt, updatedAt string

	err := src.Scan(
		&meeting.ID,
		&meeting.Title,
		&meeting.Description,
		&meeting.Date,
		&meeting.Time,
		&meeting.OrganizerID,
		&meeting.RequesterName,
		&meeting.RequesterEmail,
		&meeting.Notes,
		&meeting.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return persistence.Meeting{}, err
	}

	if meeting.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return persistence.Meeting{}, err
	}
	if meeting.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return persistence.Meeting{}, err
	}
	return meeting, nil
}

func requireAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: rows affected: %w", err)
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}
